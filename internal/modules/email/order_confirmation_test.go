package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edith131299/amazon-checkout/internal/mailer"
	"github.com/edith131299/amazon-checkout/internal/modules/checkout"
)

func TestOrderNotifier_SendsConfirmation(t *testing.T) {
	mock := &mailer.Mock{}
	n := NewOrderNotifier(mock, "no-reply@shop.test", "The Shop")

	err := n.PublishOrderCompleted(context.Background(), checkout.OrderCompletedEvent{
		OrderID:       "order-1",
		Total:         77.49,
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
	})
	require.NoError(t, err)

	require.Len(t, mock.Sent, 1)
	sent := mock.Sent[0]
	assert.Equal(t, []string{"ada@example.com"}, sent.To)
	assert.Equal(t, "no-reply@shop.test", sent.From)
	assert.Contains(t, sent.Subject, "order-1")
	assert.Contains(t, sent.TextBody, "$77.49")
	assert.Contains(t, sent.HTMLBody, "Ada Lovelace")
}

func TestOrderNotifier_SkipsWithoutAddress(t *testing.T) {
	mock := &mailer.Mock{}
	n := NewOrderNotifier(mock, "no-reply@shop.test", "The Shop")

	err := n.PublishOrderCompleted(context.Background(), checkout.OrderCompletedEvent{OrderID: "order-2"})
	require.NoError(t, err)
	assert.Empty(t, mock.Sent)
}
