package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"marketplace-api/internal/services"
	"marketplace-api/internal/utils"
)

type AdminHandler struct {
	svc services.AuthService
	log *zap.SugaredLogger
}

func NewAdminHandler(svc services.AuthService, log *zap.SugaredLogger) *AdminHandler {
	return &AdminHandler{svc: svc, log: log}
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.svc.ListUsers(c.Context())
	if err != nil {
		h.log.Errorw("list users failed", "error", err)
		return utils.JSONError(c, fiber.StatusInternalServerError, "Server error")
	}
	return utils.JSONSuccess(c, fiber.StatusOK, "Users retrieved successfully", users)
}
