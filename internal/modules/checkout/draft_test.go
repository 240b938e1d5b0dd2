package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edith131299/amazon-checkout/internal/modules/cart"
)

func TestBuildDraft_CopiesBreakdownVerbatim(t *testing.T) {
	items := []cart.Item{
		{ID: "i1", ProductID: "p1", Name: "Headphones", Price: 49.99, Quantity: 1},
	}
	shipping := cart.ShippingInfo{
		Address: "1 Main St", City: "Springfield", State: "IL",
		PostalCode: "62701", Country: "US", PhoneNo: "5551234567",
	}
	bd := &PriceBreakdown{SubTotal: 49.99, Shipping: 25, TaxPrice: 2.5, TotalPrice: 77.49}

	d := BuildDraft(items, shipping, bd)

	assert.True(t, d.HasPricing)
	assert.Equal(t, 49.99, d.ItemsPrice)
	assert.Equal(t, 25.0, d.ShippingPrice)
	assert.Equal(t, 2.5, d.TaxPrice)
	assert.Equal(t, 77.49, d.TotalPrice)
	assert.Equal(t, items, d.Items)
	assert.Equal(t, shipping, d.ShippingInfo)
	assert.Nil(t, d.PaymentInfo, "payment info must be absent until confirmation")
}

func TestBuildDraft_AbsentBreakdownOmitsPricing(t *testing.T) {
	d := BuildDraft(nil, cart.ShippingInfo{}, nil)

	assert.False(t, d.HasPricing)
	assert.Zero(t, d.ItemsPrice)
	assert.Zero(t, d.ShippingPrice)
	assert.Zero(t, d.TaxPrice)
	assert.Zero(t, d.TotalPrice)
}
