package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"marketplace-api/internal/handlers"
	"marketplace-api/internal/middleware"
	"marketplace-api/internal/models"
	"marketplace-api/internal/utils"
)

// Deps carries everything route registration needs. Authenticate runs on
// every protected group, followed by the role gate for that group.
type Deps struct {
	Env          string
	Authenticate fiber.Handler
	Auth         *handlers.AuthHandler
	Admin        *handlers.AdminHandler
	Vendor       *handlers.VendorHandler
	Customer     *handlers.CustomerHandler
}

func Register(app *fiber.App, d Deps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"success":     true,
			"message":     "Server is running",
			"environment": d.Env,
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	auth := app.Group("/auth")
	auth.Post("/register", d.Auth.Register)
	auth.Post("/login", d.Auth.Login)
	auth.Post("/refresh", d.Auth.Refresh)
	auth.Post("/logout", d.Auth.Logout)

	admin := app.Group("/admin", d.Authenticate, middleware.RequireRoles(models.RoleAdmin))
	admin.Get("/users", d.Admin.ListUsers)

	vendor := app.Group("/vendor", d.Authenticate, middleware.RequireRoles(models.RoleVendor))
	vendor.Get("/products", d.Vendor.ListProducts)
	vendor.Post("/products", d.Vendor.CreateProduct)
	vendor.Put("/products/:id", d.Vendor.UpdateProduct)
	vendor.Delete("/products/:id", d.Vendor.DeleteProduct)

	customer := app.Group("/customer", d.Authenticate, middleware.RequireRoles(models.RoleCustomer))
	customer.Get("/products", d.Customer.ListProducts)
	customer.Get("/products/:id", d.Customer.GetProduct)

	app.Use(func(c *fiber.Ctx) error {
		return utils.JSONError(c, fiber.StatusNotFound, "Route not found")
	})
}
