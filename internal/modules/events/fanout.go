package events

import (
	"context"
	"errors"

	"github.com/edith131299/amazon-checkout/internal/modules/checkout"
)

// Fanout delivers one event to several publishers. Every publisher is tried;
// their errors are joined.
type Fanout []checkout.EventPublisher

func (f Fanout) PublishOrderCompleted(ctx context.Context, ev checkout.OrderCompletedEvent) error {
	var errs []error
	for _, p := range f {
		if err := p.PublishOrderCompleted(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
