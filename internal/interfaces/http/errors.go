package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/logicshaper19/palmtrace/internal/application/dto"
	"github.com/logicshaper19/palmtrace/internal/domain"
)

// respondError maps application errors to HTTP responses. DomainError kinds
// carry structured details (e.g. requested vs available quantities) through
// to the client; plain sentinels map to their status code with a fixed body.
func respondError(c *fiber.Ctx, err error) error {
	var de *domain.DomainError
	if errors.As(err, &de) {
		return c.Status(domainErrorStatus(de)).JSON(dto.ErrorResponse{
			Code:    de.Kind,
			Message: de.Message,
			Details: de.Details,
		})
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "resource not found"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "access denied"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "resource already exists"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientInventory):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: domain.KindInsufficientInventory, Message: "insufficient inventory"})
	case errors.Is(err, domain.ErrInvalidAllocation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: domain.KindInvalidAllocation, Message: "invalid allocation method"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func domainErrorStatus(de *domain.DomainError) int {
	switch de.Kind {
	case domain.KindInsufficientInventory:
		return fiber.StatusConflict
	case domain.KindInvalidAllocation:
		return fiber.StatusBadRequest
	case domain.KindMassBalanceFailed:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusBadRequest
	}
}
