package checkoutcookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edith131299/amazon-checkout/internal/modules/checkout"
)

var ErrInvalid = errors.New("invalid checkout summary cookie")

// Codec carries the price breakdown computed at the order-review step to the
// payment step as a signed cookie. The payment handler decodes it and passes
// the value into the submission workflow explicitly.
type Codec struct {
	Secret     []byte
	CookieName string
	Secure     bool
}

func New(secret []byte, name string, secure bool) *Codec {
	return &Codec{Secret: secret, CookieName: name, Secure: secure}
}

// value format: base64(json).base64(hmac)
func (c *Codec) Encode(b checkout.PriceBreakdown) (string, error) {
	raw, err := json.Marshal(b)
	if err != nil {
		return "", err
	}
	payload := base64.RawURLEncoding.EncodeToString(raw)
	return payload + "." + sign(c.Secret, payload), nil
}

func (c *Codec) Decode(v string) (checkout.PriceBreakdown, error) {
	parts := strings.Split(v, ".")
	if len(parts) != 2 {
		return checkout.PriceBreakdown{}, ErrInvalid
	}
	payload, sig := parts[0], parts[1]
	if !verify(c.Secret, payload, sig) {
		return checkout.PriceBreakdown{}, ErrInvalid
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return checkout.PriceBreakdown{}, ErrInvalid
	}
	var b checkout.PriceBreakdown
	if err := json.Unmarshal(raw, &b); err != nil {
		return checkout.PriceBreakdown{}, ErrInvalid
	}
	return b, nil
}

// Get reads and verifies the breakdown cookie. A malformed or tampered cookie
// is cleared and reported as absent rather than failing the request.
func (c *Codec) Get(ctx *gin.Context) (checkout.PriceBreakdown, bool) {
	v, err := ctx.Cookie(c.CookieName)
	if err != nil || v == "" {
		return checkout.PriceBreakdown{}, false
	}
	b, err := c.Decode(v)
	if err != nil {
		c.Clear(ctx)
		return checkout.PriceBreakdown{}, false
	}
	return b, true
}

func (c *Codec) Set(ctx *gin.Context, b checkout.PriceBreakdown) error {
	val, err := c.Encode(b)
	if err != nil {
		return err
	}
	maxAge := int((30 * time.Minute).Seconds())
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, val, maxAge, "/", "", c.Secure, true)
	return nil
}

func (c *Codec) Clear(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, "", -1, "/", "", c.Secure, true)
}

func sign(secret []byte, payload string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func verify(secret []byte, payload, sig string) bool {
	return hmac.Equal([]byte(sign(secret, payload)), []byte(sig))
}
