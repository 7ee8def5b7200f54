// Seeding CLI: creates the admin account and optional sample catalog data.
// Safe to run repeatedly; existing accounts and products are left alone.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"marketplace-api/internal/config"
	"marketplace-api/internal/database"
	"marketplace-api/internal/models"
	"marketplace-api/internal/repository"
	"marketplace-api/internal/utils"
)

func main() {
	seedAdmin := flag.Bool("admin", false, "create the admin account if none exists")
	seedSamples := flag.Bool("samples", false, "create a demo vendor with sample products")
	flag.Parse()

	if !*seedAdmin && !*seedSamples {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	sugar := utils.NewLogger(cfg.App.Env).Sugar()
	db, client, err := database.OpenMongo(cfg.Mongo, sugar)
	if err != nil {
		sugar.Fatal(err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users, err := repository.NewMongoUserRepo(db, cfg.Mongo.UserCollection)
	if err != nil {
		sugar.Fatal(err)
	}
	products, err := repository.NewMongoProductRepo(db, cfg.Mongo.ProductCollection)
	if err != nil {
		sugar.Fatal(err)
	}

	if *seedAdmin {
		if err := createAdmin(ctx, users, cfg); err != nil {
			sugar.Fatalf("seed admin: %v", err)
		}
		sugar.Info("admin account ready")
	}
	if *seedSamples {
		if err := createSamples(ctx, users, products, cfg); err != nil {
			sugar.Fatalf("seed samples: %v", err)
		}
		sugar.Info("sample catalog ready")
	}
}

func createAdmin(ctx context.Context, users repository.UserRepository, cfg *config.Config) error {
	if _, err := users.FindAdmin(ctx); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}

	email := envOr("ADMIN_EMAIL", "admin@marketplace.local")
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		return errors.New("ADMIN_PASSWORD is required to seed the admin account")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.Security.PasswordHashCost)
	if err != nil {
		return err
	}
	return users.Create(ctx, &models.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "System",
		LastName:     "Admin",
		Role:         models.RoleAdmin,
	})
}

func createSamples(ctx context.Context, users repository.UserRepository, products repository.ProductRepository, cfg *config.Config) error {
	const vendorEmail = "vendor@marketplace.local"

	vendor, err := users.FindByEmail(ctx, vendorEmail)
	if errors.Is(err, repository.ErrUserNotFound) {
		hash, herr := bcrypt.GenerateFromPassword([]byte("vendor123"), cfg.Security.PasswordHashCost)
		if herr != nil {
			return herr
		}
		vendor = &models.User{
			Email:        vendorEmail,
			PasswordHash: string(hash),
			FirstName:    "Demo",
			LastName:     "Vendor",
			Role:         models.RoleVendor,
		}
		if err := users.Create(ctx, vendor); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	existing, err := products.FindByVendor(ctx, vendor.ID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	samples := []models.Product{
		{Name: "Wireless Headphones", Description: "Over-ear bluetooth headphones with noise cancellation", Price: 89.99, Category: "Electronics", Stock: 25, Status: models.ProductActive},
		{Name: "Ceramic Mug Set", Description: "Set of four hand-glazed ceramic mugs", Price: 24.50, Category: "Home", Stock: 40, Status: models.ProductActive},
		{Name: "Trail Backpack", Description: "30L water-resistant hiking backpack", Price: 59.00, Category: "Outdoors", Stock: 12, Status: models.ProductActive},
		{Name: "Legacy Phone Case", Description: "Discontinued model, kept for order history", Price: 9.99, Category: "Electronics", Stock: 0, Status: models.ProductInactive},
	}
	for i := range samples {
		samples[i].Vendor = vendor.ID
		if err := products.Create(ctx, &samples[i]); err != nil {
			return err
		}
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
