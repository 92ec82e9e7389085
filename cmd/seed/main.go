package main

import (
	"context"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sweetshop/internal/config"
	"sweetshop/internal/db"
	"sweetshop/internal/model"
	"sweetshop/internal/repository"
)

const bcryptCost = 10

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Sweet{}, &model.StockMovement{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Clear existing data
	for _, m := range []interface{}{&model.StockMovement{}, &model.Sweet{}, &model.User{}} {
		if err := gormDB.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
			log.Fatalf("Failed to clear existing data: %v", err)
		}
	}
	log.Println("Cleared existing data")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	sweetRepo := repository.NewSweetRepository(gormDB)

	// Create admin and regular users
	users := []struct {
		email    string
		password string
		role     model.Role
	}{
		{"admin@sweetshop.com", "admin123", model.RoleAdmin},
		{"user@sweetshop.com", "user123", model.RoleUser},
	}
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcryptCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		user := &model.User{
			Email:        u.email,
			PasswordHash: string(hash),
			Role:         u.role,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", u.email, err)
		}
		log.Printf("Created %s user: %s / %s", u.role, u.email, u.password)
	}

	// Create sample sweets
	sweets := []model.Sweet{
		{
			Name:        "Milk Chocolate Bar",
			Category:    "Chocolate",
			Price:       decimal.NewFromFloat(2.99),
			Quantity:    50,
			Description: "Smooth and creamy milk chocolate",
			ImageURL:    "https://images.unsplash.com/photo-1511381939415-e44015466834?w=400",
		},
		{
			Name:        "Gummy Bears",
			Category:    "Gummy",
			Price:       decimal.NewFromFloat(1.99),
			Quantity:    100,
			Description: "Colorful fruity gummy bears",
			ImageURL:    "https://images.unsplash.com/photo-1582058091505-f87a2e55a40f?w=400",
		},
		{
			Name:        "Lollipops",
			Category:    "Lollipop",
			Price:       decimal.NewFromFloat(0.99),
			Quantity:    200,
			Description: "Classic swirl lollipops",
			ImageURL:    "https://images.unsplash.com/photo-1624378354834-c468d3c8e0b0?w=400",
		},
		{
			Name:        "Caramel Chews",
			Category:    "Caramel",
			Price:       decimal.NewFromFloat(3.49),
			Quantity:    75,
			Description: "Soft and chewy caramel candies",
			ImageURL:    "https://images.unsplash.com/photo-1621939514649-280e2ee25f60?w=400",
		},
		{
			Name:        "Dark Chocolate Truffles",
			Category:    "Chocolate",
			Price:       decimal.NewFromFloat(5.99),
			Quantity:    30,
			Description: "Premium dark chocolate truffles",
			ImageURL:    "https://images.unsplash.com/photo-1548848722-6f00c2e2ba90?w=400",
		},
		{
			Name:        "Sour Gummy Worms",
			Category:    "Gummy",
			Price:       decimal.NewFromFloat(2.49),
			Quantity:    80,
			Description: "Tangy sour gummy worms",
			ImageURL:    "https://images.unsplash.com/photo-1556679343-c7306c1976bc?w=400",
		},
		{
			Name:        "Peppermint Hard Candy",
			Category:    "Hard Candy",
			Price:       decimal.NewFromFloat(1.49),
			Quantity:    150,
			Description: "Refreshing peppermint candies",
			ImageURL:    "https://images.unsplash.com/photo-1576958545827-0e67f27c5f6b?w=400",
		},
		{
			Name:        "Toffee Brittle",
			Category:    "Toffee",
			Price:       decimal.NewFromFloat(4.49),
			Quantity:    40,
			Description: "Crunchy butter toffee brittle",
			ImageURL:    "https://images.unsplash.com/photo-1587222086960-986f298987ea?w=400",
		},
	}
	for i := range sweets {
		if err := sweetRepo.Create(ctx, &sweets[i]); err != nil {
			log.Fatalf("Failed to create sweet %q: %v", sweets[i].Name, err)
		}
	}
	log.Printf("Created %d sample sweets", len(sweets))

	log.Println("Database seeded successfully!")
	log.Println("You can now login with:")
	log.Println("  Admin: admin@sweetshop.com / admin123")
	log.Println("  User:  user@sweetshop.com / user123")
}
