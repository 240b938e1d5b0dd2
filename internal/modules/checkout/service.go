package checkout

import (
	"context"
	"log/slog"
	"time"

	"github.com/edith131299/amazon-checkout/internal/modules/cart"
	"github.com/edith131299/amazon-checkout/internal/modules/payments"
)

// Ports consumed by the submission workflow. Data flows strictly forward:
// guard -> draft -> intent -> confirmation -> dispatch; no port calls back
// into the workflow.

type IntentCreator interface {
	CreateIntent(ctx context.Context, req payments.IntentRequest) (payments.IntentResponse, error)
}

type OrderCreator interface {
	CreateCompleted(ctx context.Context, userID string, draft OrderDraft) (orderID string, err error)
}

type CartState interface {
	MarkFulfilled(ctx context.Context, cartID string) error
	RecordPendingError(ctx context.Context, cartID string, msg string) error
}

// OrderCompletedEvent announces a dispatched order to the rest of the system.
// It carries the customer contact so notifiers need no extra lookup.
type OrderCompletedEvent struct {
	OrderID       string    `json:"order_id"`
	CartID        string    `json:"cart_id"`
	UserID        string    `json:"user_id"`
	PaymentID     string    `json:"payment_id"`
	Total         float64   `json:"total"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	Timestamp     time.Time `json:"timestamp"`
}

type EventPublisher interface {
	PublishOrderCompleted(ctx context.Context, ev OrderCompletedEvent) error
}

type Service struct {
	intents   IntentCreator
	confirmer payments.CardConfirmer
	orders    OrderCreator
	carts     CartState
	events    EventPublisher // optional
	attempts  *AttemptRegistry
	logger    *slog.Logger
}

func NewService(intents IntentCreator, confirmer payments.CardConfirmer, orders OrderCreator, carts CartState, events EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		intents:   intents,
		confirmer: confirmer,
		orders:    orders,
		carts:     carts,
		events:    events,
		attempts:  NewAttemptRegistry(),
		logger:    logger,
	}
}

// SubmitEnabled reports whether a new attempt may start for the cart.
func (s *Service) SubmitEnabled(cartID string) bool {
	return s.attempts.For(cartID).SubmitEnabled()
}

type Billing struct {
	Name  string
	Email string
}

type SubmitInput struct {
	CartID  string
	UserID  string
	Billing Billing

	Items     []cart.Item
	Shipping  cart.ShippingInfo
	Breakdown *PriceBreakdown

	// PaymentMethod is the opaque card token from the provider's hosted
	// fields.
	PaymentMethod string
}

type SubmitResult struct {
	Outcome   payments.Outcome
	OrderID   string
	PaymentID string
	Message   string // gateway message, verbatim, for OutcomeFailed
}

// Submit runs one checkout attempt end to end. The two remote calls are
// strictly sequential; the confirmation only starts after the intent call
// resolved. Errors and non-succeeded outcomes are terminal for the attempt
// but never for the session.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (SubmitResult, error) {
	attempt := s.attempts.For(in.CartID)
	if !attempt.Begin() {
		return SubmitResult{}, ErrSubmissionInFlight
	}

	if err := ValidateShipping(in.Shipping); err != nil {
		attempt.Fail()
		return SubmitResult{}, err
	}

	draft := BuildDraft(in.Items, in.Shipping, in.Breakdown)
	if !draft.HasPricing {
		attempt.Fail()
		return SubmitResult{}, ErrPricingUnavailable
	}

	intent, err := s.intents.CreateIntent(ctx, payments.IntentRequest{
		Amount: payments.AmountMinorUnits(draft.TotalPrice),
		Shipping: payments.IntentShipping{
			Name: in.Billing.Name,
			Address: payments.IntentAddress{
				City:       draft.ShippingInfo.City,
				PostalCode: draft.ShippingInfo.PostalCode,
				Country:    draft.ShippingInfo.Country,
				State:      draft.ShippingInfo.State,
				Line1:      draft.ShippingInfo.Address,
			},
			Phone: draft.ShippingInfo.PhoneNo,
		},
	})
	if err != nil {
		attempt.Fail()
		s.logger.Warn("payment intent request failed",
			slog.String("cart_id", in.CartID), slog.Any("err", err))
		return SubmitResult{}, err
	}

	attempt.Confirm()

	res, err := s.confirmer.ConfirmCardPayment(ctx, intent.ClientSecret, payments.ConfirmParams{
		PaymentMethod: in.PaymentMethod,
		BillingName:   in.Billing.Name,
		BillingEmail:  in.Billing.Email,
	})
	if err != nil {
		attempt.Fail()
		return SubmitResult{}, err
	}

	switch res.Outcome {
	case payments.OutcomeFailed:
		attempt.Fail()
		return SubmitResult{Outcome: res.Outcome, Message: res.Message}, nil
	case payments.OutcomeIncomplete:
		attempt.Fail()
		s.logger.Info("confirmation incomplete",
			slog.String("cart_id", in.CartID), slog.String("status", res.Status))
		return SubmitResult{Outcome: res.Outcome}, nil
	}

	return s.dispatch(ctx, attempt, in, draft, res)
}

// dispatch persists the order, flags the cart and announces the completion.
// The order is written before the cart is flagged so a persistence failure
// can be retried against an unflagged cart.
func (s *Service) dispatch(ctx context.Context, attempt *Attempt, in SubmitInput, draft OrderDraft, res payments.ConfirmationResult) (SubmitResult, error) {
	draft.PaymentInfo = &PaymentInfo{ID: res.PaymentID, Status: res.Status}

	orderID, err := s.orders.CreateCompleted(ctx, in.UserID, draft)
	if err != nil {
		attempt.Fail()
		s.logger.Error("order persistence failed after successful payment",
			slog.String("cart_id", in.CartID),
			slog.String("payment_id", res.PaymentID),
			slog.Any("err", err))
		if rerr := s.carts.RecordPendingError(ctx, in.CartID, "Your payment went through but the order could not be saved. Please try again."); rerr != nil {
			s.logger.Error("recording pending order error failed",
				slog.String("cart_id", in.CartID), slog.Any("err", rerr))
		}
		return SubmitResult{}, &DispatchError{OrderErr: err}
	}

	if err := s.carts.MarkFulfilled(ctx, in.CartID); err != nil {
		// The order exists; the flag is best-effort at this point.
		s.logger.Error("marking cart fulfilled failed",
			slog.String("cart_id", in.CartID), slog.Any("err", err))
	}

	if s.events != nil {
		ev := OrderCompletedEvent{
			OrderID:       orderID,
			CartID:        in.CartID,
			UserID:        in.UserID,
			PaymentID:     res.PaymentID,
			Total:         draft.TotalPrice,
			CustomerName:  in.Billing.Name,
			CustomerEmail: in.Billing.Email,
			Timestamp:     time.Now().UTC(),
		}
		if err := s.events.PublishOrderCompleted(ctx, ev); err != nil {
			s.logger.Warn("order completed event not published",
				slog.String("order_id", orderID), slog.Any("err", err))
		}
	}

	attempt.Dispatch()
	s.logger.Info("order dispatched",
		slog.String("order_id", orderID),
		slog.String("cart_id", in.CartID),
		slog.String("payment_id", res.PaymentID))

	return SubmitResult{Outcome: res.Outcome, OrderID: orderID, PaymentID: res.PaymentID}, nil
}
