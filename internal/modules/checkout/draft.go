package checkout

import "github.com/edith131299/amazon-checkout/internal/modules/cart"

// PriceBreakdown is the pricing computed at the order-review step. The
// submission workflow copies it verbatim and never recomputes it.
type PriceBreakdown struct {
	SubTotal   float64 `json:"subTotal"`
	Shipping   float64 `json:"shipping"`
	TaxPrice   float64 `json:"taxPrice"`
	TotalPrice float64 `json:"totalPrice"`
}

// PaymentInfo is attached to a draft only after confirmation succeeds.
type PaymentInfo struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// OrderDraft is the in-memory order for one checkout attempt. It is owned by
// the workflow and discarded after dispatch.
type OrderDraft struct {
	Items        []cart.Item
	ShippingInfo cart.ShippingInfo

	ItemsPrice    float64
	ShippingPrice float64
	TaxPrice      float64
	TotalPrice    float64
	// HasPricing is false when no breakdown was available; the pricing
	// fields are then left at zero and no error is raised here.
	HasPricing bool

	PaymentInfo *PaymentInfo
}

// BuildDraft assembles an order draft. Pure; the only validation of the
// breakdown happens later, before money moves.
func BuildDraft(items []cart.Item, shipping cart.ShippingInfo, breakdown *PriceBreakdown) OrderDraft {
	d := OrderDraft{
		Items:        items,
		ShippingInfo: shipping,
	}
	if breakdown != nil {
		d.ItemsPrice = breakdown.SubTotal
		d.ShippingPrice = breakdown.Shipping
		d.TaxPrice = breakdown.TaxPrice
		d.TotalPrice = breakdown.TotalPrice
		d.HasPricing = true
	}
	return d
}
