package checkout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edith131299/amazon-checkout/internal/modules/cart"
	"github.com/edith131299/amazon-checkout/internal/modules/payments"
)

type mockIntents struct {
	calls   int
	lastReq payments.IntentRequest
	resp    payments.IntentResponse
	err     error
}

func (m *mockIntents) CreateIntent(_ context.Context, req payments.IntentRequest) (payments.IntentResponse, error) {
	m.calls++
	m.lastReq = req
	return m.resp, m.err
}

type mockConfirmer struct {
	calls      int
	lastSecret string
	lastParams payments.ConfirmParams
	res        payments.ConfirmationResult
	err        error

	started chan struct{} // optional: closed on first call
	release chan struct{} // optional: call blocks until closed
}

func (m *mockConfirmer) ConfirmCardPayment(_ context.Context, clientSecret string, p payments.ConfirmParams) (payments.ConfirmationResult, error) {
	m.calls++
	m.lastSecret = clientSecret
	m.lastParams = p
	if m.started != nil {
		close(m.started)
		m.started = nil
	}
	if m.release != nil {
		<-m.release
	}
	return m.res, m.err
}

type mockOrders struct {
	calls      int
	lastUserID string
	lastDraft  OrderDraft
	id         string
	err        error
}

func (m *mockOrders) CreateCompleted(_ context.Context, userID string, draft OrderDraft) (string, error) {
	m.calls++
	m.lastUserID = userID
	m.lastDraft = draft
	return m.id, m.err
}

type mockCarts struct {
	fulfilled []string
	pending   map[string]string
}

func (m *mockCarts) MarkFulfilled(_ context.Context, cartID string) error {
	m.fulfilled = append(m.fulfilled, cartID)
	return nil
}

func (m *mockCarts) RecordPendingError(_ context.Context, cartID, msg string) error {
	if m.pending == nil {
		m.pending = map[string]string{}
	}
	m.pending[cartID] = msg
	return nil
}

type mockEvents struct {
	published []OrderCompletedEvent
	err       error
}

func (m *mockEvents) PublishOrderCompleted(_ context.Context, ev OrderCompletedEvent) error {
	m.published = append(m.published, ev)
	return m.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validInput() SubmitInput {
	return SubmitInput{
		CartID:  "cart-1",
		UserID:  "user-1",
		Billing: Billing{Name: "Ada Lovelace", Email: "ada@example.com"},
		Items: []cart.Item{
			{ID: "i1", ProductID: "p1", Name: "Headphones", Price: 49.99, Quantity: 1},
		},
		Shipping:      completeShipping(),
		Breakdown:     &PriceBreakdown{SubTotal: 49.99, Shipping: 0, TaxPrice: 0, TotalPrice: 49.99},
		PaymentMethod: "pm_card_tok",
	}
}

func TestSubmit_HappyPath(t *testing.T) {
	intents := &mockIntents{resp: payments.IntentResponse{ClientSecret: "pi_123_secret"}}
	confirmer := &mockConfirmer{res: payments.ConfirmationResult{
		Outcome: payments.OutcomeSucceeded, PaymentID: "pi_123", Status: "succeeded",
	}}
	ords := &mockOrders{id: "order-1"}
	carts := &mockCarts{}
	evs := &mockEvents{}

	s := NewService(intents, confirmer, ords, carts, evs, testLogger())

	res, err := s.Submit(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, payments.OutcomeSucceeded, res.Outcome)
	assert.Equal(t, "order-1", res.OrderID)
	assert.Equal(t, "pi_123", res.PaymentID)

	// amount in minor units, shipping copied from the cart
	assert.Equal(t, int64(4999), intents.lastReq.Amount)
	assert.Equal(t, "Ada Lovelace", intents.lastReq.Shipping.Name)
	assert.Equal(t, "221B Baker Street", intents.lastReq.Shipping.Address.Line1)

	// confirmation uses the intent's client secret and the billing details
	assert.Equal(t, "pi_123_secret", confirmer.lastSecret)
	assert.Equal(t, "pm_card_tok", confirmer.lastParams.PaymentMethod)
	assert.Equal(t, "ada@example.com", confirmer.lastParams.BillingEmail)

	// persisted draft carries the payment info and the verbatim total
	require.Equal(t, 1, ords.calls)
	require.NotNil(t, ords.lastDraft.PaymentInfo)
	assert.Equal(t, PaymentInfo{ID: "pi_123", Status: "succeeded"}, *ords.lastDraft.PaymentInfo)
	assert.Equal(t, 49.99, ords.lastDraft.TotalPrice)

	// cart flagged exactly once, event published, submission stays disabled
	assert.Equal(t, []string{"cart-1"}, carts.fulfilled)
	require.Len(t, evs.published, 1)
	assert.Equal(t, "order-1", evs.published[0].OrderID)
	assert.False(t, s.SubmitEnabled("cart-1"))
}

func TestSubmit_IntentFailureSurfacesAndSkipsConfirmation(t *testing.T) {
	intents := &mockIntents{err: &payments.RemoteRequestError{
		Op: "create intent", Reason: payments.FailureNetwork, Err: errors.New("connection refused"),
	}}
	confirmer := &mockConfirmer{}
	ords := &mockOrders{}
	carts := &mockCarts{}

	s := NewService(intents, confirmer, ords, carts, nil, testLogger())

	_, err := s.Submit(context.Background(), validInput())

	var remote *payments.RemoteRequestError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, payments.FailureNetwork, remote.Reason)

	assert.Zero(t, confirmer.calls, "no confirmation after a failed intent request")
	assert.Zero(t, ords.calls)
	assert.Empty(t, carts.fulfilled)
	assert.True(t, s.SubmitEnabled("cart-1"), "submission is enabled again after the failure")
}

func TestSubmit_FailedOutcomeKeepsMessageVerbatim(t *testing.T) {
	intents := &mockIntents{resp: payments.IntentResponse{ClientSecret: "cs"}}
	confirmer := &mockConfirmer{res: payments.ConfirmationResult{
		Outcome: payments.OutcomeFailed, Message: "Your card was declined.",
	}}
	ords := &mockOrders{}
	carts := &mockCarts{}

	s := NewService(intents, confirmer, ords, carts, nil, testLogger())

	res, err := s.Submit(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, payments.OutcomeFailed, res.Outcome)
	assert.Equal(t, "Your card was declined.", res.Message)
	assert.Zero(t, ords.calls, "no dispatch after a declined card")
	assert.Empty(t, carts.fulfilled)
	assert.True(t, s.SubmitEnabled("cart-1"))
}

func TestSubmit_IncompleteOutcomeDoesNotDispatch(t *testing.T) {
	intents := &mockIntents{resp: payments.IntentResponse{ClientSecret: "cs"}}
	confirmer := &mockConfirmer{res: payments.ConfirmationResult{
		Outcome: payments.OutcomeIncomplete, Status: "processing",
	}}
	ords := &mockOrders{}
	carts := &mockCarts{}

	s := NewService(intents, confirmer, ords, carts, nil, testLogger())

	res, err := s.Submit(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, payments.OutcomeIncomplete, res.Outcome)
	assert.Zero(t, ords.calls)
	assert.True(t, s.SubmitEnabled("cart-1"))
}

func TestSubmit_IncompleteShippingAbortsBeforeAnyCall(t *testing.T) {
	intents := &mockIntents{}
	s := NewService(intents, &mockConfirmer{}, &mockOrders{}, &mockCarts{}, nil, testLogger())

	in := validInput()
	in.Shipping.PostalCode = ""

	_, err := s.Submit(context.Background(), in)
	assert.ErrorIs(t, err, ErrShippingIncomplete)
	assert.Zero(t, intents.calls, "the draft builder and intent client never run")
	assert.True(t, s.SubmitEnabled("cart-1"))
}

func TestSubmit_MissingBreakdownAborts(t *testing.T) {
	intents := &mockIntents{}
	s := NewService(intents, &mockConfirmer{}, &mockOrders{}, &mockCarts{}, nil, testLogger())

	in := validInput()
	in.Breakdown = nil

	_, err := s.Submit(context.Background(), in)
	assert.ErrorIs(t, err, ErrPricingUnavailable)
	assert.Zero(t, intents.calls)
	assert.True(t, s.SubmitEnabled("cart-1"))
}

func TestSubmit_RejectsConcurrentAttempt(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	intents := &mockIntents{resp: payments.IntentResponse{ClientSecret: "cs"}}
	confirmer := &mockConfirmer{
		res:     payments.ConfirmationResult{Outcome: payments.OutcomeIncomplete, Status: "processing"},
		started: started,
		release: release,
	}

	s := NewService(intents, confirmer, &mockOrders{}, &mockCarts{}, nil, testLogger())

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background(), validInput())
		done <- err
	}()

	<-started
	assert.False(t, s.SubmitEnabled("cart-1"))

	_, err := s.Submit(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.True(t, s.SubmitEnabled("cart-1"))
}

func TestSubmit_OrderPersistenceFailureRecordsPendingError(t *testing.T) {
	intents := &mockIntents{resp: payments.IntentResponse{ClientSecret: "cs"}}
	confirmer := &mockConfirmer{res: payments.ConfirmationResult{
		Outcome: payments.OutcomeSucceeded, PaymentID: "pi_9", Status: "succeeded",
	}}
	ords := &mockOrders{err: errors.New("db down")}
	carts := &mockCarts{}
	evs := &mockEvents{}

	s := NewService(intents, confirmer, ords, carts, evs, testLogger())

	_, err := s.Submit(context.Background(), validInput())

	var de *DispatchError
	require.ErrorAs(t, err, &de)

	assert.Empty(t, carts.fulfilled, "cart stays unflagged so the attempt can be retried")
	assert.Empty(t, evs.published)
	assert.NotEmpty(t, carts.pending["cart-1"], "failure recorded for one-shot display")
	assert.True(t, s.SubmitEnabled("cart-1"))
}
