package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/edith131299/amazon-checkout/internal/http/middleware"
	"github.com/edith131299/amazon-checkout/internal/modules/cart"
	"github.com/edith131299/amazon-checkout/internal/modules/orders"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&cart.Cart{},
		&cart.Item{},
		&orders.Order{},
		&middleware.Session{},
	); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	// users is owned by the accounts service; create a minimal shape for
	// local development only.
	usersSQL := `
	CREATE TABLE IF NOT EXISTS users (
	  id CHAR(36) NOT NULL,
	  name VARCHAR(255) NOT NULL,
	  email VARCHAR(255) NOT NULL,
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`
	if err := db.Exec(usersSQL).Error; err != nil {
		log.Fatalf("Failed to create users table: %v", err)
	}

	log.Println("tables ready")
}
