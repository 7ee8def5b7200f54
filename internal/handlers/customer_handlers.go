package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"marketplace-api/internal/services"
	"marketplace-api/internal/utils"
)

type CustomerHandler struct {
	svc services.ProductService
	log *zap.SugaredLogger
}

func NewCustomerHandler(svc services.ProductService, log *zap.SugaredLogger) *CustomerHandler {
	return &CustomerHandler{svc: svc, log: log}
}

func (h *CustomerHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.svc.ListActiveProducts(c.Context())
	if err != nil {
		h.log.Errorw("list active products failed", "error", err)
		return utils.JSONError(c, fiber.StatusInternalServerError, "Server error")
	}
	return utils.JSONSuccess(c, fiber.StatusOK, "", products)
}

// GetProduct answers 404 for inactive products the same as for missing
// ones; customers never learn that a hidden product exists.
func (h *CustomerHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.svc.GetActiveProduct(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return utils.JSONError(c, fiber.StatusNotFound, "Product not found")
		}
		h.log.Errorw("get product failed", "error", err)
		return utils.JSONError(c, fiber.StatusInternalServerError, "Server error")
	}
	return utils.JSONSuccess(c, fiber.StatusOK, "", product)
}
