package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edith131299/amazon-checkout/internal/modules/cart"
)

func completeShipping() cart.ShippingInfo {
	return cart.ShippingInfo{
		Address:    "221B Baker Street",
		City:       "London",
		State:      "Greater London",
		PostalCode: "NW1 6XE",
		Country:    "GB",
		PhoneNo:    "02079460000",
	}
}

func TestValidateShipping_Complete(t *testing.T) {
	require.NoError(t, ValidateShipping(completeShipping()))
}

func TestValidateShipping_EachMissingFieldFails(t *testing.T) {
	cases := map[string]func(*cart.ShippingInfo){
		"address":    func(s *cart.ShippingInfo) { s.Address = "" },
		"city":       func(s *cart.ShippingInfo) { s.City = "" },
		"state":      func(s *cart.ShippingInfo) { s.State = "" },
		"postalCode": func(s *cart.ShippingInfo) { s.PostalCode = "" },
		"country":    func(s *cart.ShippingInfo) { s.Country = "" },
		"phoneNo":    func(s *cart.ShippingInfo) { s.PhoneNo = "" },
	}

	for name, clear := range cases {
		t.Run(name, func(t *testing.T) {
			s := completeShipping()
			clear(&s)
			assert.ErrorIs(t, ValidateShipping(s), ErrShippingIncomplete)
		})
	}
}
