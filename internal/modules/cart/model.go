package cart

import "time"

// Cart is one shopper's active cart. Fulfilled is flipped exactly once by a
// successful checkout; the items themselves are kept.
type Cart struct {
	ID           string  `gorm:"type:char(36);primaryKey"`
	UserID       string  `gorm:"type:char(36);not null;uniqueIndex:ux_carts_user_id"`
	Fulfilled    bool    `gorm:"not null;default:0"`
	PendingError *string `gorm:"type:varchar(255)"`

	ShippingAddress    string `gorm:"type:varchar(255);not null;default:''"`
	ShippingCity       string `gorm:"type:varchar(100);not null;default:''"`
	ShippingState      string `gorm:"type:varchar(100);not null;default:''"`
	ShippingPostalCode string `gorm:"type:varchar(32);not null;default:''"`
	ShippingCountry    string `gorm:"type:varchar(64);not null;default:''"`
	ShippingPhoneNo    string `gorm:"type:varchar(32);not null;default:''"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Cart) TableName() string { return "carts" }

// Item is a cart line. Read-only to the checkout workflow.
type Item struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	CartID    string    `gorm:"type:char(36);not null;index:ix_cart_items_cart_id"`
	ProductID string    `gorm:"type:char(36);not null"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Image     string    `gorm:"type:varchar(512);not null;default:''"`
	Price     float64   `gorm:"type:decimal(12,2);not null"`
	Quantity  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Item) TableName() string { return "cart_items" }

// ShippingInfo is the delivery address held on the cart. All fields must be
// populated before the payment step may run.
type ShippingInfo struct {
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
	PhoneNo    string `json:"phoneNo" validate:"required"`
}

// Shipping assembles the cart's shipping columns into a ShippingInfo value.
func (c Cart) Shipping() ShippingInfo {
	return ShippingInfo{
		Address:    c.ShippingAddress,
		City:       c.ShippingCity,
		State:      c.ShippingState,
		PostalCode: c.ShippingPostalCode,
		Country:    c.ShippingCountry,
		PhoneNo:    c.ShippingPhoneNo,
	}
}
