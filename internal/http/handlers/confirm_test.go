package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edith131299/amazon-checkout/internal/http/checkoutcookie"
	"github.com/edith131299/amazon-checkout/internal/http/flash"
	"github.com/edith131299/amazon-checkout/internal/modules/cart"
	"github.com/edith131299/amazon-checkout/internal/modules/checkout"
)

func TestBreakdownForItems(t *testing.T) {
	cases := []struct {
		name  string
		items []cart.Item
		want  checkout.PriceBreakdown
	}{
		{
			name:  "flat shipping under the threshold",
			items: []cart.Item{{Price: 49.99, Quantity: 1}},
			want:  checkout.PriceBreakdown{SubTotal: 49.99, Shipping: 25, TaxPrice: 2.5, TotalPrice: 77.49},
		},
		{
			name:  "free shipping above the threshold",
			items: []cart.Item{{Price: 150, Quantity: 2}},
			want:  checkout.PriceBreakdown{SubTotal: 300, Shipping: 0, TaxPrice: 15, TotalPrice: 315},
		},
		{
			name:  "quantities multiply",
			items: []cart.Item{{Price: 10, Quantity: 3}, {Price: 5.5, Quantity: 2}},
			want:  checkout.PriceBreakdown{SubTotal: 41, Shipping: 25, TaxPrice: 2.05, TotalPrice: 68.05},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, breakdownForItems(tc.items))
		})
	}
}

func newConfirmRouter(store *fakeCartStore) (*gin.Engine, *checkoutcookie.Codec) {
	fl := flash.NewCodec(testSecret, "flash", false)
	bd := checkoutcookie.New(testSecret, "checkout_summary", false)
	h := NewConfirmHandler(store, fl, bd)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", "user-1")
	})
	r.GET(ConfirmPath, h.Get)
	r.POST(ConfirmPath, h.Post)
	return r, bd
}

func TestConfirmPost_SetsSummaryCookieAndRedirects(t *testing.T) {
	store := &fakeCartStore{cart: shippedCart(), items: oneItem()}
	r, bd := newConfirmRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, ConfirmPath, nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, PaymentPath, w.Header().Get("Location"))

	var summary *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "checkout_summary" {
			summary = ck
		}
	}
	require.NotNil(t, summary)

	got, err := bd.Decode(summary.Value)
	require.NoError(t, err)
	assert.Equal(t, 77.49, got.TotalPrice)
}

func TestConfirmPost_IncompleteShippingRedirects(t *testing.T) {
	crt := shippedCart()
	crt.ShippingAddress = ""
	store := &fakeCartStore{cart: crt, items: oneItem()}
	r, _ := newConfirmRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, ConfirmPath, nil))

	assert.Equal(t, ShippingPath, w.Header().Get("Location"))
}

func TestConfirmPost_EmptyCartRedirects(t *testing.T) {
	store := &fakeCartStore{cart: shippedCart()}
	r, _ := newConfirmRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, ConfirmPath, nil))

	assert.Equal(t, "/cart", w.Header().Get("Location"))
}
