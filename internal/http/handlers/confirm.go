package handlers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edith131299/amazon-checkout/internal/http/checkoutcookie"
	"github.com/edith131299/amazon-checkout/internal/http/flash"
	"github.com/edith131299/amazon-checkout/internal/http/middleware"
	"github.com/edith131299/amazon-checkout/internal/http/render"
	"github.com/edith131299/amazon-checkout/internal/modules/cart"
	"github.com/edith131299/amazon-checkout/internal/modules/checkout"
	"github.com/edith131299/amazon-checkout/internal/shared/apperr"
	"github.com/edith131299/amazon-checkout/pkg/view"
)

const (
	freeShippingAbove = 200.0
	flatShipping      = 25.0
	taxRate           = 0.05
)

// ConfirmHandler is the order-review step. It computes the price breakdown
// and hands it to the payment step through the signed summary cookie; the
// payment handler then passes the value into the workflow explicitly.
type ConfirmHandler struct {
	Carts     CartStore
	Flash     *flash.Codec
	Breakdown *checkoutcookie.Codec
}

func NewConfirmHandler(carts CartStore, fl *flash.Codec, bd *checkoutcookie.Codec) *ConfirmHandler {
	return &ConfirmHandler{Carts: carts, Flash: fl, Breakdown: bd}
}

func (h *ConfirmHandler) Get(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)

	crt, items, err := h.Carts.ForUser(c.Request.Context(), u.ID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	payload := gin.H{
		"items":        items,
		"shippingInfo": crt.Shipping(),
		"breakdown":    breakdownForItems(items),
	}
	if f := middleware.GetFlash(c); f != nil {
		payload["flash"] = f
	}
	c.JSON(http.StatusOK, payload)
}

func (h *ConfirmHandler) Post(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)

	crt, items, err := h.Carts.ForUser(c.Request.Context(), u.ID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if len(items) == 0 {
		render.RedirectWithFlash(c, h.Flash, "/cart", view.FlashError, "Your cart is empty.")
		return
	}
	if err := checkout.ValidateShipping(crt.Shipping()); err != nil {
		c.Redirect(http.StatusFound, ShippingPath)
		return
	}

	if err := h.Breakdown.Set(c, breakdownForItems(items)); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.Redirect(http.StatusFound, PaymentPath)
}

func breakdownForItems(items []cart.Item) checkout.PriceBreakdown {
	var subTotal float64
	for _, it := range items {
		subTotal += it.Price * float64(it.Quantity)
	}
	subTotal = round2(subTotal)

	shipping := flatShipping
	if subTotal > freeShippingAbove {
		shipping = 0
	}
	tax := round2(subTotal * taxRate)

	return checkout.PriceBreakdown{
		SubTotal:   subTotal,
		Shipping:   shipping,
		TaxPrice:   tax,
		TotalPrice: round2(subTotal + shipping + tax),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
