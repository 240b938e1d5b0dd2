package payments

import "context"

const StatusSucceeded = "succeeded"

type Outcome string

const (
	// OutcomeSucceeded: the intent reached status "succeeded".
	OutcomeSucceeded Outcome = "succeeded"
	// OutcomeFailed: the gateway rejected the confirmation (declined card,
	// validation, transport). Message carries the gateway text verbatim.
	OutcomeFailed Outcome = "failed"
	// OutcomeIncomplete: the gateway answered but the intent did not reach
	// "succeeded". The shopper should retry.
	OutcomeIncomplete Outcome = "incomplete"
)

// ConfirmationResult is the terminal outcome of one confirmation call.
type ConfirmationResult struct {
	Outcome   Outcome
	PaymentID string // set when Outcome == OutcomeSucceeded
	Status    string // raw intent status as reported by the gateway
	Message   string // set when Outcome == OutcomeFailed
}

// ConfirmParams carries what the gateway needs besides the client secret.
// PaymentMethod is an opaque token minted by the provider's hosted fields;
// raw card data never passes through this service.
type ConfirmParams struct {
	PaymentMethod string
	BillingName   string
	BillingEmail  string
}

// CardConfirmer confirms a charge against a previously created intent.
type CardConfirmer interface {
	ConfirmCardPayment(ctx context.Context, clientSecret string, p ConfirmParams) (ConfirmationResult, error)
}
