package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"marketplace-api/internal/models"
	"marketplace-api/internal/services"
	"marketplace-api/internal/utils"
)

type AuthHandler struct {
	svc services.AuthService
	log *zap.SugaredLogger
}

func NewAuthHandler(svc services.AuthService, log *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

type registerReq struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Role      string `json:"role" validate:"omitempty,oneof=customer vendor admin"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerReq
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return utils.JSONValidationError(c, errs)
	}

	role := models.RoleCustomer
	if req.Role != "" {
		role, _ = models.ParseRole(req.Role)
	}

	user, err := h.svc.Register(c.Context(), services.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateUser):
			return utils.JSONError(c, fiber.StatusBadRequest, "User already exists")
		case errors.Is(err, services.ErrAdminLimit):
			return utils.JSONError(c, fiber.StatusBadRequest, "System already has one admin. Only one admin is allowed.")
		}
		h.log.Errorw("register failed", "error", err)
		return utils.JSONError(c, fiber.StatusInternalServerError, "Server error")
	}

	return utils.JSONSuccess(c, fiber.StatusCreated, "User registered successfully", fiber.Map{"user": user})
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return utils.JSONValidationError(c, errs)
	}

	user, tokens, err := h.svc.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return utils.JSONError(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		h.log.Errorw("login failed", "error", err)
		return utils.JSONError(c, fiber.StatusInternalServerError, "Server error")
	}

	return utils.JSONSuccess(c, fiber.StatusOK, "Login successful", fiber.Map{
		"user":   user,
		"tokens": tokens,
	})
}

type refreshReq struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req refreshReq
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return utils.JSONValidationError(c, errs)
	}

	tokens, err := h.svc.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRefreshToken) {
			return utils.JSONError(c, fiber.StatusUnauthorized, "Invalid refresh token")
		}
		h.log.Errorw("refresh failed", "error", err)
		return utils.JSONError(c, fiber.StatusInternalServerError, "Server error")
	}

	return utils.JSONSuccess(c, fiber.StatusOK, "Token refreshed successfully", tokens)
}

// Logout always reports success: the operation is idempotent and the
// response must not reveal whether the token was valid.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req refreshReq
	if err := c.BodyParser(&req); err == nil && req.RefreshToken != "" {
		_ = h.svc.Logout(c.Context(), req.RefreshToken)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, "Logout successful", nil)
}
