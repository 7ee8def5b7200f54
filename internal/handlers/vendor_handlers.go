package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"marketplace-api/internal/middleware"
	"marketplace-api/internal/models"
	"marketplace-api/internal/services"
	"marketplace-api/internal/utils"
)

type VendorHandler struct {
	svc services.ProductService
	log *zap.SugaredLogger
}

func NewVendorHandler(svc services.ProductService, log *zap.SugaredLogger) *VendorHandler {
	return &VendorHandler{svc: svc, log: log}
}

func (h *VendorHandler) ListProducts(c *fiber.Ctx) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.JSONError(c, fiber.StatusUnauthorized, "Access denied. No token provided.")
	}
	products, err := h.svc.ListVendorProducts(c.Context(), u.ID)
	if err != nil {
		h.log.Errorw("list vendor products failed", "error", err)
		return utils.JSONError(c, fiber.StatusInternalServerError, "Server error")
	}
	return utils.JSONSuccess(c, fiber.StatusOK, "", products)
}

type createProductReq struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Category    string  `json:"category" validate:"required"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Status      string  `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (h *VendorHandler) CreateProduct(c *fiber.Ctx) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.JSONError(c, fiber.StatusUnauthorized, "Access denied. No token provided.")
	}
	var req createProductReq
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return utils.JSONValidationError(c, errs)
	}

	status, _ := models.ParseProductStatus(req.Status)
	product, err := h.svc.CreateProduct(c.Context(), u.ID, services.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		Status:      status,
	})
	if err != nil {
		h.log.Errorw("create product failed", "error", err)
		return utils.JSONError(c, fiber.StatusInternalServerError, "Server error")
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, "Product added successfully", product)
}

type updateProductReq struct {
	Name        *string  `json:"name" validate:"omitempty,min=1"`
	Description *string  `json:"description" validate:"omitempty,min=1"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Category    *string  `json:"category" validate:"omitempty,min=1"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Status      *string  `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (h *VendorHandler) UpdateProduct(c *fiber.Ctx) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.JSONError(c, fiber.StatusUnauthorized, "Access denied. No token provided.")
	}
	var req updateProductReq
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return utils.JSONValidationError(c, errs)
	}

	in := services.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
	}
	if req.Status != nil {
		st, _ := models.ParseProductStatus(*req.Status)
		in.Status = &st
	}

	product, err := h.svc.UpdateProduct(c.Context(), u.ID, c.Params("id"), in)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return utils.JSONError(c, fiber.StatusNotFound, "Product not found")
		}
		h.log.Errorw("update product failed", "error", err)
		return utils.JSONError(c, fiber.StatusInternalServerError, "Server error")
	}
	return utils.JSONSuccess(c, fiber.StatusOK, "Product updated successfully", product)
}

func (h *VendorHandler) DeleteProduct(c *fiber.Ctx) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.JSONError(c, fiber.StatusUnauthorized, "Access denied. No token provided.")
	}
	if err := h.svc.DeleteProduct(c.Context(), u.ID, c.Params("id")); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return utils.JSONError(c, fiber.StatusNotFound, "Product not found")
		}
		h.log.Errorw("delete product failed", "error", err)
		return utils.JSONError(c, fiber.StatusInternalServerError, "Server error")
	}
	return utils.JSONSuccess(c, fiber.StatusOK, "Product deleted successfully", nil)
}
