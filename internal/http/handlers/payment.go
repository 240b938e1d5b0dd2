package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edith131299/amazon-checkout/internal/http/checkoutcookie"
	"github.com/edith131299/amazon-checkout/internal/http/flash"
	"github.com/edith131299/amazon-checkout/internal/http/middleware"
	"github.com/edith131299/amazon-checkout/internal/http/render"
	"github.com/edith131299/amazon-checkout/internal/modules/checkout"
	"github.com/edith131299/amazon-checkout/internal/modules/payments"
	"github.com/edith131299/amazon-checkout/internal/shared/apperr"
	"github.com/edith131299/amazon-checkout/pkg/view"
)

// PaymentHandler drives the payment step: the entry guard on GET and the
// submission workflow on POST.
type PaymentHandler struct {
	Carts     CartStore
	Checkout  CheckoutSubmitter
	Flash     *flash.Codec
	Breakdown *checkoutcookie.Codec
	Logger    *slog.Logger
}

func NewPaymentHandler(carts CartStore, co CheckoutSubmitter, fl *flash.Codec, bd *checkoutcookie.Codec, l *slog.Logger) *PaymentHandler {
	return &PaymentHandler{Carts: carts, Checkout: co, Flash: fl, Breakdown: bd, Logger: l}
}

type paymentInput struct {
	// Opaque card token from the provider's hosted fields; never raw card data.
	PaymentMethod string `form:"payment_method" json:"payment_method" binding:"required,max=128"`
}

// Get runs the precondition guard and returns the payment page data.
func (h *PaymentHandler) Get(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)

	crt, items, err := h.Carts.ForUser(c.Request.Context(), u.ID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	// Incomplete shipping aborts the step entirely; a redirect, not an error.
	if err := checkout.ValidateShipping(crt.Shipping()); err != nil {
		c.Redirect(http.StatusFound, ShippingPath)
		return
	}

	payload := gin.H{
		"itemCount":     len(items),
		"submitEnabled": h.Checkout.SubmitEnabled(crt.ID),
	}

	if f := middleware.GetFlash(c); f != nil {
		payload["flash"] = f
	}

	// A failure carried over from a prior attempt is shown exactly once.
	if msg, ok, err := h.Carts.TakePendingError(c.Request.Context(), crt.ID); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	} else if ok {
		payload["notice"] = view.Flash{Kind: view.FlashError, Message: msg}
	}

	if bd, ok := h.Breakdown.Get(c); ok {
		payload["amountDue"] = bd.TotalPrice
	}

	c.JSON(http.StatusOK, payload)
}

// Post runs one checkout attempt.
func (h *PaymentHandler) Post(c *gin.Context) {
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

	var in paymentInput
	if err := c.ShouldBind(&in); err != nil {
		render.RedirectWithFlash(c, h.Flash, PaymentPath, view.FlashError, "Card details are missing. Please try again.")
		return
	}

	var breakdown *checkout.PriceBreakdown
	if bd, ok := h.Breakdown.Get(c); ok {
		breakdown = &bd
	}

	res, err := h.Checkout.Submit(c.Request.Context(), checkout.SubmitInput{
		CartID:        crt.ID,
		UserID:        u.ID,
		Billing:       checkout.Billing{Name: u.Name, Email: u.Email},
		Items:         items,
		Shipping:      crt.Shipping(),
		Breakdown:     breakdown,
		PaymentMethod: in.PaymentMethod,
	})
	if err != nil {
		h.failedSubmit(c, err)
		return
	}

	switch res.Outcome {
	case payments.OutcomeFailed:
		// Gateway message shown verbatim; submission is enabled again.
		render.RedirectWithFlash(c, h.Flash, PaymentPath, view.FlashError, res.Message)
	case payments.OutcomeIncomplete:
		render.RedirectWithFlash(c, h.Flash, PaymentPath, view.FlashWarning, "Please Try again")
	default:
		h.Breakdown.Clear(c)
		render.RedirectWithFlash(c, h.Flash, SuccessPath, view.FlashSuccess, "Payment Success!")
	}
}

func (h *PaymentHandler) failedSubmit(c *gin.Context, err error) {
	var remote *payments.RemoteRequestError
	var dispatch *checkout.DispatchError

	switch {
	case errors.Is(err, checkout.ErrSubmissionInFlight):
		render.RedirectWithFlash(c, h.Flash, PaymentPath, view.FlashWarning, "A payment is already in progress.")
	case errors.Is(err, checkout.ErrShippingIncomplete):
		c.Redirect(http.StatusFound, ShippingPath)
	case errors.Is(err, checkout.ErrPricingUnavailable):
		render.RedirectWithFlash(c, h.Flash, ConfirmPath, view.FlashWarning, "Your order summary has expired. Please review your order.")
	case errors.As(err, &remote):
		h.Logger.Warn("payment intent request failed", slog.Any("err", err))
		render.RedirectWithFlash(c, h.Flash, PaymentPath, view.FlashError, "Payment could not be started. Please try again.")
	case errors.As(err, &dispatch):
		// Pending order error was recorded; the guard surfaces it once.
		c.Redirect(http.StatusFound, PaymentPath)
	default:
		middleware.Fail(c, apperr.Wrap(err))
	}
}
