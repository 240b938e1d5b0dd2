package orders

import (
	"time"

	"gorm.io/datatypes"
)

const StatusCompleted = "completed"

// Order is a persisted, paid order. Items and the shipping address are stored
// as JSON snapshots so the order survives later catalog changes.
type Order struct {
	ID     string `gorm:"type:char(36);primaryKey"`
	UserID string `gorm:"type:char(36);not null;index:ix_orders_user_id"`
	Status string `gorm:"type:varchar(32);not null"`

	Items        datatypes.JSON `gorm:"not null"`
	ShippingInfo datatypes.JSON `gorm:"not null"`

	ItemsPrice    float64 `gorm:"type:decimal(12,2);not null"`
	ShippingPrice float64 `gorm:"type:decimal(12,2);not null"`
	TaxPrice      float64 `gorm:"type:decimal(12,2);not null"`
	TotalPrice    float64 `gorm:"type:decimal(12,2);not null"`

	PaymentID     string `gorm:"type:varchar(128);not null;uniqueIndex:ux_orders_payment_id"`
	PaymentStatus string `gorm:"type:varchar(32);not null"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Order) TableName() string { return "orders" }

// OrderItem is the JSON shape of one stored line.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image,omitempty"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}
