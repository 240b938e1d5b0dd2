package handlers

import (
	"context"

	"github.com/edith131299/amazon-checkout/internal/modules/cart"
	"github.com/edith131299/amazon-checkout/internal/modules/checkout"
	"github.com/edith131299/amazon-checkout/internal/modules/orders"
)

// Checkout step paths. The guard redirects to the shipping step; a dispatched
// order lands on the success view.
const (
	ShippingPath = "/checkout/shipping"
	ConfirmPath  = "/checkout/confirm"
	PaymentPath  = "/checkout/payment"
	SuccessPath  = "/order/success"
)

type CartStore interface {
	ForUser(ctx context.Context, userID string) (cart.Cart, []cart.Item, error)
	SaveShipping(ctx context.Context, cartID string, s cart.ShippingInfo) error
	TakePendingError(ctx context.Context, cartID string) (string, bool, error)
}

type CheckoutSubmitter interface {
	Submit(ctx context.Context, in checkout.SubmitInput) (checkout.SubmitResult, error)
	SubmitEnabled(cartID string) bool
}

type OrderGetter interface {
	Get(ctx context.Context, id string) (orders.Order, error)
}
