package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/edith131299/amazon-checkout/internal/http/flash"
	"github.com/edith131299/amazon-checkout/internal/http/middleware"
	"github.com/edith131299/amazon-checkout/internal/http/validation"
	"github.com/edith131299/amazon-checkout/internal/modules/cart"
	"github.com/edith131299/amazon-checkout/internal/shared/apperr"
)

type ShippingHandler struct {
	Carts CartStore
	Flash *flash.Codec
}

func NewShippingHandler(carts CartStore, fl *flash.Codec) *ShippingHandler {
	return &ShippingHandler{Carts: carts, Flash: fl}
}

type shippingInput struct {
	Address    string `form:"address" json:"address" binding:"required,min=5,max=255"`
	City       string `form:"city" json:"city" binding:"required,min=2,max=100"`
	State      string `form:"state" json:"state" binding:"required,min=2,max=100"`
	PostalCode string `form:"postal_code" json:"postal_code" binding:"required,min=2,max=32"`
	Country    string `form:"country" json:"country" binding:"required,min=2,max=64"`
	PhoneNo    string `form:"phone_no" json:"phone_no" binding:"required,min=5,max=32"`
}

func (h *ShippingHandler) Get(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)

	crt, _, err := h.Carts.ForUser(c.Request.Context(), u.ID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	payload := gin.H{"shippingInfo": crt.Shipping()}
	if f := middleware.GetFlash(c); f != nil {
		payload["flash"] = f
	}
	c.JSON(http.StatusOK, payload)
}

func (h *ShippingHandler) Post(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)

	crt, _, err := h.Carts.ForUser(c.Request.Context(), u.ID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	var in shippingInput
	if err := c.ShouldBind(&in); err != nil {
		errs := validation.FromBindError(err, &in)
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", errs))
		return
	}

	info := cart.ShippingInfo{
		Address:    strings.TrimSpace(in.Address),
		City:       strings.TrimSpace(in.City),
		State:      strings.TrimSpace(in.State),
		PostalCode: strings.TrimSpace(in.PostalCode),
		Country:    strings.TrimSpace(in.Country),
		PhoneNo:    strings.TrimSpace(in.PhoneNo),
	}
	if err := h.Carts.SaveShipping(c.Request.Context(), crt.ID, info); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.Redirect(http.StatusFound, ConfirmPath)
}
