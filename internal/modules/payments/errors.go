package payments

import "fmt"

type FailureReason string

const (
	// FailureNetwork covers transport errors, timeouts and an open breaker.
	FailureNetwork FailureReason = "network"
	// FailureStatus is a non-2xx response from the payment backend.
	FailureStatus FailureReason = "status"
	// FailureBody is a 2xx response whose body could not be decoded.
	FailureBody FailureReason = "body"
)

// RemoteRequestError is a failed call to the payment backend. Every failure
// mode of the intent request surfaces as one of these; none are swallowed.
type RemoteRequestError struct {
	Op     string
	Reason FailureReason
	Status int // HTTP status for FailureStatus, 0 otherwise
	Err    error
}

func (e *RemoteRequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (http %d): %v", e.Op, e.Reason, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Reason, e.Err)
}

func (e *RemoteRequestError) Unwrap() error { return e.Err }
