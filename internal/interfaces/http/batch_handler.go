package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/logicshaper19/palmtrace/internal/application/dto"
	"github.com/logicshaper19/palmtrace/internal/application/traceability"
	"github.com/logicshaper19/palmtrace/internal/application/usecase"
	"github.com/logicshaper19/palmtrace/internal/domain/repository"
)

// BatchHandler handles HTTP requests for batches (protected).
type BatchHandler struct {
	uc       *usecase.BatchUseCase
	reportUC *traceability.ReportUseCase
}

// NewBatchHandler builds the handler.
func NewBatchHandler(uc *usecase.BatchUseCase, reportUC *traceability.ReportUseCase) *BatchHandler {
	return &BatchHandler{uc: uc, reportUC: reportUC}
}

// Create godoc
// @Summary      Create a batch
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBatchRequest  true  "Batch data"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/batches [post]
func (h *BatchHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.CreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if in.ProductID == "" || in.BatchNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id and batch_number are required"})
	}
	if !in.Quantity.IsPositive() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity must be positive"})
	}
	out, err := h.uc.Create(companyID, userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Get a batch by ID
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Batch ID"
// @Success      200  {object}  dto.BatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id} [get]
func (h *BatchHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	out, err := h.uc.GetByID(companyID, id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "batch not found"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      List batches
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filter by product"
// @Param        status      query  string  false  "Filter by status"
// @Param        type        query  string  false  "Filter by type"
// @Param        limit       query  int     false  "Limit"   default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.BatchListResponse
// @Router       /api/batches [get]
func (h *BatchHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	filter := repository.BatchFilter{
		ProductID: c.Query("product_id"),
		Status:    c.Query("status"),
		Type:      c.Query("type"),
	}
	limit, offset := pageParams(c)
	out, err := h.uc.List(companyID, filter, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TraceabilityPDF godoc
// @Summary      Download a batch's traceability report
// @Tags         batches
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "Batch ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/traceability.pdf [get]
func (h *BatchHandler) TraceabilityPDF(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	pdfBytes, err := h.reportUC.Generate(c.Context(), companyID, id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="traceability-`+id+`.pdf"`)
	return c.Send(pdfBytes)
}
