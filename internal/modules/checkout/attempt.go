package checkout

import "sync"

// AttemptState tracks one cart's checkout attempt. Submitting and Confirming
// forbid re-entrant submission; the derived submit-enabled flag replaces any
// direct toggling of UI state.
type AttemptState string

const (
	StateIdle       AttemptState = "idle"
	StateSubmitting AttemptState = "submitting"
	StateConfirming AttemptState = "confirming"
	StateDispatched AttemptState = "dispatched"
)

type Attempt struct {
	mu    sync.Mutex
	state AttemptState
}

func NewAttempt() *Attempt { return &Attempt{state: StateIdle} }

// Begin moves Idle -> Submitting. Returns false while another attempt is in
// flight or the cart is already dispatched.
func (a *Attempt) Begin() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != StateIdle {
		return false
	}
	a.state = StateSubmitting
	return true
}

// Confirm moves Submitting -> Confirming, after the intent call resolved.
func (a *Attempt) Confirm() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != StateSubmitting {
		return false
	}
	a.state = StateConfirming
	return true
}

// Fail returns to Idle from any in-flight state. Failed and Incomplete
// outcomes re-enable submission; nothing else does.
func (a *Attempt) Fail() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == StateSubmitting || a.state == StateConfirming {
		a.state = StateIdle
	}
}

// Dispatch moves Confirming -> Dispatched. Terminal: submission is never
// re-enabled after a successful dispatch.
func (a *Attempt) Dispatch() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != StateConfirming {
		return false
	}
	a.state = StateDispatched
	return true
}

func (a *Attempt) State() AttemptState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// SubmitEnabled derives the submit control's state from the machine.
func (a *Attempt) SubmitEnabled() bool {
	return a.State() == StateIdle
}

// AttemptRegistry hands out one Attempt per cart.
type AttemptRegistry struct {
	mu       sync.Mutex
	attempts map[string]*Attempt
}

func NewAttemptRegistry() *AttemptRegistry {
	return &AttemptRegistry{attempts: make(map[string]*Attempt)}
}

func (r *AttemptRegistry) For(cartID string) *Attempt {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.attempts[cartID]
	if !ok {
		a = NewAttempt()
		r.attempts[cartID] = a
	}
	return a
}
