package cart

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// GetOrCreateForUser returns the user's active cart, creating an empty one on
// first touch.
func (r *Repo) GetOrCreateForUser(ctx context.Context, userID string) (Cart, error) {
	var c Cart
	err := r.db.WithContext(ctx).First(&c, "user_id = ? AND fulfilled = 0", userID).Error
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Cart{}, err
	}

	now := time.Now()
	c = Cart{ID: uuid.NewString(), UserID: userID, CreatedAt: now, UpdatedAt: now}
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return Cart{}, err
	}
	return c, nil
}

func (r *Repo) Items(ctx context.Context, cartID string) ([]Item, error) {
	var items []Item
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&items, "cart_id = ?", cartID).Error
	return items, err
}

// ForUser loads the active cart together with its items.
func (r *Repo) ForUser(ctx context.Context, userID string) (Cart, []Item, error) {
	c, err := r.GetOrCreateForUser(ctx, userID)
	if err != nil {
		return Cart{}, nil, err
	}
	items, err := r.Items(ctx, c.ID)
	if err != nil {
		return Cart{}, nil, err
	}
	return c, items, nil
}

func (r *Repo) SaveShipping(ctx context.Context, cartID string, s ShippingInfo) error {
	return r.db.WithContext(ctx).Model(&Cart{}).
		Where("id = ?", cartID).
		Updates(map[string]any{
			"shipping_address":     s.Address,
			"shipping_city":        s.City,
			"shipping_state":       s.State,
			"shipping_postal_code": s.PostalCode,
			"shipping_country":     s.Country,
			"shipping_phone_no":    s.PhoneNo,
			"updated_at":           time.Now(),
		}).Error
}

// MarkFulfilled flips the fulfilled flag. The WHERE guard makes the write
// idempotent: a cart already flagged stays flagged and no error is raised.
func (r *Repo) MarkFulfilled(ctx context.Context, cartID string) error {
	return r.db.WithContext(ctx).Model(&Cart{}).
		Where("id = ? AND fulfilled = 0", cartID).
		Updates(map[string]any{"fulfilled": true, "updated_at": time.Now()}).Error
}

// RecordPendingError stores an order-level failure so the payment page can
// surface it once on the next visit.
func (r *Repo) RecordPendingError(ctx context.Context, cartID string, msg string) error {
	return r.db.WithContext(ctx).Model(&Cart{}).
		Where("id = ?", cartID).
		Updates(map[string]any{"pending_error": msg, "updated_at": time.Now()}).Error
}

// TakePendingError reads and clears the pending order error in one
// transaction, so the notice is shown exactly once.
func (r *Repo) TakePendingError(ctx context.Context, cartID string) (string, bool, error) {
	var msg string
	var found bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c Cart
		if err := tx.First(&c, "id = ?", cartID).Error; err != nil {
			return err
		}
		if c.PendingError == nil || *c.PendingError == "" {
			return nil
		}
		msg = *c.PendingError
		found = true
		return tx.Model(&Cart{}).
			Where("id = ?", cartID).
			Updates(map[string]any{"pending_error": nil, "updated_at": time.Now()}).Error
	})
	if err != nil {
		return "", false, err
	}
	return msg, found, nil
}
