package main

import (
	"log"
	"os"
	"time"

	"log/slog"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	apphttp "github.com/edith131299/amazon-checkout/internal/http"
	"github.com/edith131299/amazon-checkout/internal/mailer"
	"github.com/edith131299/amazon-checkout/internal/modules/cart"
	"github.com/edith131299/amazon-checkout/internal/modules/checkout"
	"github.com/edith131299/amazon-checkout/internal/modules/email"
	"github.com/edith131299/amazon-checkout/internal/modules/events"
	"github.com/edith131299/amazon-checkout/internal/modules/orders"
	"github.com/edith131299/amazon-checkout/internal/modules/payments"
)

func main() {
	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	cookieSecret := os.Getenv("COOKIE_SECRET")
	if cookieSecret == "" {
		log.Fatal("COOKIE_SECRET environment variable is required")
	}

	paymentAPI := os.Getenv("PAYMENT_API_URL")
	if paymentAPI == "" {
		log.Fatal("PAYMENT_API_URL environment variable is required")
	}
	gatewayURL := os.Getenv("PAYMENT_GATEWAY_URL")
	if gatewayURL == "" {
		log.Fatal("PAYMENT_GATEWAY_URL environment variable is required")
	}

	// Both remote calls run without cancellation support; 30s bounds them.
	intents := payments.NewIntentClient(paymentAPI, 30*time.Second)
	confirmer := payments.NewCardGateway(gatewayURL, 30*time.Second)

	var fanout events.Fanout
	if amqpURL := os.Getenv("AMQP_URL"); amqpURL != "" {
		conn, err := amqp.Dial(amqpURL)
		if err != nil {
			log.Fatalf("failed to connect to rabbitmq: %v", err)
		}
		pub, err := events.NewPublisher(conn)
		if err != nil {
			log.Fatalf("failed to set up publisher: %v", err)
		}
		defer pub.Close()
		fanout = append(fanout, pub)
	} else {
		logger.Warn("AMQP_URL not set; order completed events disabled")
	}

	if smtpHost := os.Getenv("SMTP_HOST"); smtpHost != "" {
		smtp := mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:    smtpHost,
			Port:    envOr("SMTP_PORT", "1025"),
			User:    os.Getenv("SMTP_USER"),
			Pass:    os.Getenv("SMTP_PASS"),
			TLSMode: os.Getenv("SMTP_TLS_MODE"),
		})
		fanout = append(fanout, email.NewOrderNotifier(
			smtp,
			envOr("EMAIL_FROM", "no-reply@localhost"),
			os.Getenv("EMAIL_FROM_NAME"),
		))
	} else {
		logger.Warn("SMTP_HOST not set; order confirmation emails disabled")
	}

	var publisher checkout.EventPublisher
	if len(fanout) > 0 {
		publisher = fanout
	}

	checkoutSvc := checkout.NewService(
		intents,
		confirmer,
		orders.NewService(db),
		cart.NewRepo(db),
		publisher,
		logger,
	)

	r := apphttp.NewRouter(logger, apphttp.RouterCfg{
		DB:           db,
		CookieSecret: []byte(cookieSecret),
		SecureCookie: os.Getenv("COOKIE_SECURE") == "true",
		Checkout:     checkoutSvc,
	})

	addr := os.Getenv("BIND_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	_ = r.Run(addr)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
