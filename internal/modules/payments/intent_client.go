package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
)

const processPath = "/api/v1/payment/process"

// AmountMinorUnits converts a dollar total to integer minor currency units.
// The upstream total may be fractional beyond cents, so it is rounded.
func AmountMinorUnits(totalPrice float64) int64 {
	return int64(math.Round(totalPrice * 100))
}

type IntentRequest struct {
	Amount   int64          `json:"amount"`
	Shipping IntentShipping `json:"shipping"`
}

type IntentShipping struct {
	Name    string        `json:"name"`
	Address IntentAddress `json:"address"`
	Phone   string        `json:"phone"`
}

type IntentAddress struct {
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	State      string `json:"state"`
	Line1      string `json:"line1"`
}

type IntentResponse struct {
	ClientSecret string `json:"client_secret"`
}

// IntentClient creates payment intents against the payment backend. One call
// per checkout attempt; a circuit breaker sheds load when the backend is down.
type IntentClient struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[IntentResponse]
}

func NewIntentClient(baseURL string, timeout time.Duration) *IntentClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	cb := gobreaker.NewCircuitBreaker[IntentResponse](gobreaker.Settings{
		Name:    "payment-intent",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &IntentClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		breaker: cb,
	}
}

// CreateIntent posts the amount and shipping address and returns the client
// secret authorizing one confirmation. Network errors, non-2xx responses and
// malformed bodies each come back as a distinguishable *RemoteRequestError.
func (c *IntentClient) CreateIntent(ctx context.Context, req IntentRequest) (IntentResponse, error) {
	resp, err := c.breaker.Execute(func() (IntentResponse, error) {
		return c.doCreate(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return IntentResponse{}, &RemoteRequestError{Op: "create intent", Reason: FailureNetwork, Err: err}
		}
		return IntentResponse{}, err
	}
	return resp, nil
}

func (c *IntentClient) doCreate(ctx context.Context, req IntentRequest) (IntentResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return IntentResponse{}, &RemoteRequestError{Op: "create intent", Reason: FailureBody, Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+processPath, bytes.NewReader(body))
	if err != nil {
		return IntentResponse{}, &RemoteRequestError{Op: "create intent", Reason: FailureNetwork, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return IntentResponse{}, &RemoteRequestError{Op: "create intent", Reason: FailureNetwork, Err: err}
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(httpResp.Body, 512))
		return IntentResponse{}, &RemoteRequestError{
			Op:     "create intent",
			Reason: FailureStatus,
			Status: httpResp.StatusCode,
			Err:    fmt.Errorf("payment backend: %s", strings.TrimSpace(string(snippet))),
		}
	}

	var out IntentResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&out); err != nil {
		return IntentResponse{}, &RemoteRequestError{Op: "create intent", Reason: FailureBody, Err: err}
	}
	if out.ClientSecret == "" {
		return IntentResponse{}, &RemoteRequestError{
			Op:     "create intent",
			Reason: FailureBody,
			Err:    errors.New("response missing client_secret"),
		}
	}
	return out, nil
}
