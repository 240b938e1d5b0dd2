package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edith131299/amazon-checkout/internal/http/flash"
	"github.com/edith131299/amazon-checkout/internal/http/middleware"
	"github.com/edith131299/amazon-checkout/internal/modules/cart"
)

type recordingCartStore struct {
	fakeCartStore
	savedID   string
	savedInfo cart.ShippingInfo
}

func (r *recordingCartStore) SaveShipping(_ context.Context, cartID string, s cart.ShippingInfo) error {
	r.savedID = cartID
	r.savedInfo = s
	return nil
}

func newShippingRouter(store CartStore) *gin.Engine {
	fl := flash.NewCodec(testSecret, "flash", false)
	h := NewShippingHandler(store, fl)

	r := gin.New()
	r.Use(middleware.ErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil))))
	r.Use(func(c *gin.Context) {
		c.Set("user_id", "user-1")
	})
	r.GET(ShippingPath, h.Get)
	r.POST(ShippingPath, h.Post)
	return r
}

func postShipping(r *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, ShippingPath, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validShippingForm() url.Values {
	return url.Values{
		"address":     {"  221B Baker Street "},
		"city":        {"London"},
		"state":       {"Greater London"},
		"postal_code": {"NW1 6XE"},
		"country":     {"GB"},
		"phone_no":    {"02079460000"},
	}
}

func TestShippingPost_SavesTrimmedAddressAndRedirects(t *testing.T) {
	store := &recordingCartStore{fakeCartStore: fakeCartStore{cart: cart.Cart{ID: "cart-1", UserID: "user-1"}}}
	r := newShippingRouter(store)

	w := postShipping(r, validShippingForm())

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, ConfirmPath, w.Header().Get("Location"))

	assert.Equal(t, "cart-1", store.savedID)
	assert.Equal(t, "221B Baker Street", store.savedInfo.Address)
	assert.Equal(t, "NW1 6XE", store.savedInfo.PostalCode)
}

func TestShippingPost_MissingFieldIsRejectedPerField(t *testing.T) {
	fields := []string{"address", "city", "state", "postal_code", "country", "phone_no"}
	for _, missing := range fields {
		t.Run(missing, func(t *testing.T) {
			store := &recordingCartStore{fakeCartStore: fakeCartStore{cart: cart.Cart{ID: "cart-1"}}}
			r := newShippingRouter(store)

			form := validShippingForm()
			form.Del(missing)

			w := postShipping(r, form)

			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), missing)
			assert.Empty(t, store.savedID, "nothing saved on a rejected form")
		})
	}
}

func TestShippingGet_ReturnsCurrentAddress(t *testing.T) {
	store := &recordingCartStore{fakeCartStore: fakeCartStore{cart: shippedCart()}}
	r := newShippingRouter(store)

	req := httptest.NewRequest(http.MethodGet, ShippingPath, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "221B Baker Street")
}
