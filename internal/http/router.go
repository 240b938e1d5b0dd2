package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/edith131299/amazon-checkout/internal/http/checkoutcookie"
	"github.com/edith131299/amazon-checkout/internal/http/flash"
	"github.com/edith131299/amazon-checkout/internal/http/handlers"
	"github.com/edith131299/amazon-checkout/internal/http/middleware"
	"github.com/edith131299/amazon-checkout/internal/modules/cart"
	"github.com/edith131299/amazon-checkout/internal/modules/checkout"
	"github.com/edith131299/amazon-checkout/internal/modules/orders"
)

type RouterCfg struct {
	DB           *gorm.DB
	CookieSecret []byte
	SecureCookie bool
	Checkout     *checkout.Service
}

func NewRouter(l *slog.Logger, cfg RouterCfg) *gin.Engine {
	flashCodec := flash.NewCodec(cfg.CookieSecret, "flash", cfg.SecureCookie)
	breakdownCodec := checkoutcookie.New(cfg.CookieSecret, "checkout_summary", cfg.SecureCookie)

	cartRepo := cart.NewRepo(cfg.DB)
	orderSvc := orders.NewService(cfg.DB)

	payment := handlers.NewPaymentHandler(cartRepo, cfg.Checkout, flashCodec, breakdownCodec, l)
	shipping := handlers.NewShippingHandler(cartRepo, flashCodec)
	confirm := handlers.NewConfirmHandler(cartRepo, flashCodec, breakdownCodec)
	order := handlers.NewOrderHandler(orderSvc, flashCodec)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(l),
		middleware.Recovery(l),
		middleware.ErrorHandler(l),
		middleware.FlashMiddleware(flashCodec),
		middleware.SessionMiddleware(middleware.SessionCfg{
			DB:         cfg.DB,
			CookieName: "sid",
			Secure:     cfg.SecureCookie,
			TTL:        30 * 24 * time.Hour,
		}),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authed := r.Group("", middleware.RequireAuth(flashCodec))
	{
		authed.GET(handlers.ShippingPath, shipping.Get)
		authed.POST(handlers.ShippingPath, shipping.Post)
		authed.GET(handlers.ConfirmPath, confirm.Get)
		authed.POST(handlers.ConfirmPath, confirm.Post)
		authed.GET(handlers.PaymentPath, payment.Get)
		authed.POST(handlers.PaymentPath, payment.Post)
		authed.GET(handlers.SuccessPath, order.Success)
		authed.GET("/orders/:id", order.Get)
	}

	return r
}
