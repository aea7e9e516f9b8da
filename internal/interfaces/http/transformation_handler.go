package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/logicshaper19/palmtrace/internal/application/dto"
	"github.com/logicshaper19/palmtrace/internal/application/traceability"
	"github.com/logicshaper19/palmtrace/internal/domain/entity"
)

// TransformationHandler handles transformation events and mass-balance
// validation (protected).
type TransformationHandler struct {
	uc *traceability.TransformationUseCase
}

// NewTransformationHandler builds the handler.
func NewTransformationHandler(uc *traceability.TransformationUseCase) *TransformationHandler {
	return &TransformationHandler{uc: uc}
}

// Create godoc
// @Summary      Record a transformation event
// @Description  Optionally executes an inventory draw-down for the inputs and
// @Description  creates the output batches with inherited provenance, all in
// @Description  one transaction.
// @Tags         transformations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransformationRequest  true  "Event data"
// @Success      201   {object}  dto.TransformationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transformations [post]
func (h *TransformationHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.CreateTransformationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if !entity.ValidTransformationType(in.Type) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "unknown transformation type"})
	}
	out, err := h.uc.Create(c.Context(), companyID, userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Get a transformation event by ID
// @Tags         transformations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Transformation ID"
// @Success      200  {object}  dto.TransformationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transformations/{id} [get]
func (h *TransformationHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	out, err := h.uc.GetByID(c.Context(), companyID, id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "transformation not found"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      List transformation events
// @Tags         transformations
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limit"   default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.TransformationListResponse
// @Router       /api/transformations [get]
func (h *TransformationHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Context(), companyID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ValidateBalance godoc
// @Summary      Run a mass-balance validation on an event
// @Description  Records the outcome whether or not the event balances; the
// @Description  is_balanced flag in the response tells the caller which.
// @Tags         transformations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Transformation ID"
// @Param        body  body  dto.ValidateBalanceRequest  true  "Validation parameters"
// @Success      201   {object}  dto.MassBalanceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transformations/{id}/validate-balance [post]
func (h *TransformationHandler) ValidateBalance(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	var in dto.ValidateBalanceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.ValidateBalance(c.Context(), companyID, userID, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// BalanceHistory godoc
// @Summary      Mass-balance validation history of an event
// @Tags         transformations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Transformation ID"
// @Success      200  {object}  dto.MassBalanceListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transformations/{id}/mass-balance [get]
func (h *TransformationHandler) BalanceHistory(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	out, err := h.uc.BalanceHistory(c.Context(), companyID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
