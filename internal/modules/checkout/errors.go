package checkout

import (
	"errors"
	"fmt"
)

var (
	// ErrShippingIncomplete: the precondition guard failed; redirect to the
	// shipping step.
	ErrShippingIncomplete = errors.New("shipping information incomplete")
	// ErrPricingUnavailable: no price breakdown reached the payment step;
	// the shopper must review the order again before paying.
	ErrPricingUnavailable = errors.New("price breakdown unavailable")
	// ErrSubmissionInFlight: an attempt for this cart is already between
	// Submitting and a terminal outcome.
	ErrSubmissionInFlight = errors.New("submission already in progress")
)

// DispatchError: payment succeeded but the order could not be persisted. The
// cart stays unflagged and the failure is surfaced once on the next visit.
type DispatchError struct {
	OrderErr error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("order dispatch failed after successful payment: %v", e.OrderErr)
}

func (e *DispatchError) Unwrap() error { return e.OrderErr }
