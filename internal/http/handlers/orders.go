package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/edith131299/amazon-checkout/internal/http/flash"
	"github.com/edith131299/amazon-checkout/internal/http/middleware"
	"github.com/edith131299/amazon-checkout/internal/shared/apperr"
)

type OrderHandler struct {
	Orders OrderGetter
	Flash  *flash.Codec
}

func NewOrderHandler(o OrderGetter, fl *flash.Codec) *OrderHandler {
	return &OrderHandler{Orders: o, Flash: fl}
}

// Success is the terminal view after a dispatched order.
func (h *OrderHandler) Success(c *gin.Context) {
	payload := gin.H{"status": "success"}
	if f := middleware.GetFlash(c); f != nil {
		payload["flash"] = f
	}
	c.JSON(http.StatusOK, payload)
}

func (h *OrderHandler) Get(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)

	o, err := h.Orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Order not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if o.UserID != u.ID {
		middleware.Fail(c, apperr.ForbiddenErr("You cannot view this order."))
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": o})
}
