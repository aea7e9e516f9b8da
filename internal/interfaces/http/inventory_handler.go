package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/logicshaper19/palmtrace/internal/application/dto"
	"github.com/logicshaper19/palmtrace/internal/application/traceability"
	"github.com/logicshaper19/palmtrace/internal/domain/entity"
)

// InventoryHandler handles pool queries and allocation draw-downs (protected).
type InventoryHandler struct {
	uc *traceability.AllocateUseCase
}

// NewInventoryHandler builds the handler.
func NewInventoryHandler(uc *traceability.AllocateUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// GetPool godoc
// @Summary      Inventory pool snapshot for a product
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  true  "Product ID"
// @Success      200  {object}  dto.PoolResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/pool [get]
func (h *InventoryHandler) GetPool(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	productID := c.Query("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id is required"})
	}
	out, err := h.uc.GetPool(c.Context(), companyID, productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Allocate godoc
// @Summary      Allocate inventory from a product pool
// @Description  Computes an allocation plan and, unless dry_run is set,
// @Description  draws the quantities down from the source batches atomically.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AllocationRequest  true  "Allocation parameters"
// @Success      201   {object}  dto.AllocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/allocations [post]
func (h *InventoryHandler) Allocate(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.AllocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id is required"})
	}
	if in.Method == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "method is required"})
	}
	if in.Method == entity.AllocationManual && len(in.ManualQuantities) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "manual method requires manual_quantities"})
	}
	if in.Method != entity.AllocationManual && !in.Quantity.IsPositive() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity must be positive"})
	}
	out, err := h.uc.Allocate(c.Context(), companyID, userID, in)
	if err != nil {
		return respondError(c, err)
	}
	status := fiber.StatusCreated
	if in.DryRun {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(out)
}
