package checkout

import (
	"github.com/go-playground/validator/v10"

	"github.com/edith131299/amazon-checkout/internal/modules/cart"
)

var validate = validator.New()

// ValidateShipping checks that every shipping field is populated. An
// incomplete address sends the shopper back to the shipping step; it is a
// redirect, not an error notice.
func ValidateShipping(s cart.ShippingInfo) error {
	if err := validate.Struct(s); err != nil {
		return ErrShippingIncomplete
	}
	return nil
}
