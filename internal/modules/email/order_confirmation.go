package email

import (
	"context"
	"fmt"

	"github.com/edith131299/amazon-checkout/internal/mailer"
	"github.com/edith131299/amazon-checkout/internal/modules/checkout"
)

// OrderNotifier emails the customer when an order is dispatched. It plugs into
// the checkout workflow as an event publisher, next to the queue publisher.
type OrderNotifier struct {
	mail     mailer.Service
	fromAddr string
	fromName string
}

func NewOrderNotifier(mail mailer.Service, fromAddr, fromName string) *OrderNotifier {
	return &OrderNotifier{mail: mail, fromAddr: fromAddr, fromName: fromName}
}

func (n *OrderNotifier) PublishOrderCompleted(ctx context.Context, ev checkout.OrderCompletedEvent) error {
	if ev.CustomerEmail == "" {
		return nil
	}

	total := fmt.Sprintf("$%.2f", ev.Total)
	subject := fmt.Sprintf("Order confirmation #%s", ev.OrderID)

	textBody := fmt.Sprintf(
		"Hi %s,\n\nWe received your order #%s. Total: %s\n\nThank you for shopping with us!\n",
		ev.CustomerName, ev.OrderID, total)

	htmlBody := fmt.Sprintf(`
<html>
  <body style="font-family: sans-serif;">
    <h2>Order confirmation</h2>
    <p>Hi %s,</p>
    <p>We received your order.</p>
    <p><strong>Order:</strong> #%s</p>
    <p><strong>Total:</strong> %s</p>
    <p>Thank you for shopping with us!</p>
  </body>
</html>
`, ev.CustomerName, ev.OrderID, total)

	return n.mail.Send(ctx, mailer.Email{
		From:     n.fromAddr,
		FromName: n.fromName,
		To:       []string{ev.CustomerEmail},
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	})
}
