package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edith131299/amazon-checkout/internal/modules/checkout"
)

var ErrMissingPayment = errors.New("order draft has no payment info")

type Service struct {
	repo *Repo
}

func NewService(db *gorm.DB) *Service { return &Service{repo: NewRepo(db)} }

// CreateCompleted persists a paid order draft. Idempotent on the payment ID:
// if the same payment was already stored, the existing order ID is returned.
func (s *Service) CreateCompleted(ctx context.Context, userID string, draft checkout.OrderDraft) (string, error) {
	if draft.PaymentInfo == nil {
		return "", ErrMissingPayment
	}

	items := make([]OrderItem, 0, len(draft.Items))
	for _, it := range draft.Items {
		items = append(items, OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Image:     it.Image,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("marshal items: %w", err)
	}
	shippingJSON, err := json.Marshal(draft.ShippingInfo)
	if err != nil {
		return "", fmt.Errorf("marshal shipping: %w", err)
	}

	o := Order{
		ID:            uuid.NewString(),
		UserID:        userID,
		Status:        StatusCompleted,
		Items:         itemsJSON,
		ShippingInfo:  shippingJSON,
		ItemsPrice:    draft.ItemsPrice,
		ShippingPrice: draft.ShippingPrice,
		TaxPrice:      draft.TaxPrice,
		TotalPrice:    draft.TotalPrice,
		PaymentID:     draft.PaymentInfo.ID,
		PaymentStatus: draft.PaymentInfo.Status,
		CreatedAt:     time.Now(),
	}

	if err := s.repo.Create(ctx, &o); err != nil {
		if IsDuplicate(err) {
			existing, lerr := s.repo.ByPaymentID(ctx, draft.PaymentInfo.ID)
			if lerr == nil {
				return existing.ID, nil
			}
		}
		return "", err
	}
	return o.ID, nil
}

func (s *Service) Get(ctx context.Context, id string) (Order, error) {
	return s.repo.Get(ctx, id)
}
