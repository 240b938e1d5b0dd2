package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

const confirmPath = "/v1/payment_intents/confirm"

// CardGateway is the HTTP implementation of CardConfirmer against the payment
// provider's confirmation endpoint.
type CardGateway struct {
	baseURL string
	client  *http.Client
}

func NewCardGateway(baseURL string, timeout time.Duration) *CardGateway {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &CardGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type confirmRequest struct {
	ClientSecret  string               `json:"client_secret"`
	PaymentMethod confirmPaymentMethod `json:"payment_method"`
}

type confirmPaymentMethod struct {
	Card           string                `json:"card"`
	BillingDetails confirmBillingDetails `json:"billing_details"`
}

type confirmBillingDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type confirmResponse struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
	PaymentIntent *struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"paymentIntent"`
}

// ConfirmCardPayment maps the gateway's answer onto the three terminal
// outcomes. Transport problems are an OutcomeFailed, not a Go error: the
// shopper can retry them the same way as a declined card.
func (g *CardGateway) ConfirmCardPayment(ctx context.Context, clientSecret string, p ConfirmParams) (ConfirmationResult, error) {
	body, err := json.Marshal(confirmRequest{
		ClientSecret: clientSecret,
		PaymentMethod: confirmPaymentMethod{
			Card: p.PaymentMethod,
			BillingDetails: confirmBillingDetails{
				Name:  p.BillingName,
				Email: p.BillingEmail,
			},
		},
	})
	if err != nil {
		return ConfirmationResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+confirmPath, bytes.NewReader(body))
	if err != nil {
		return ConfirmationResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return ConfirmationResult{
			Outcome: OutcomeFailed,
			Message: "Payment confirmation could not be completed. Please try again.",
		}, nil
	}
	defer resp.Body.Close()

	var out confirmResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return ConfirmationResult{
			Outcome: OutcomeFailed,
			Message: "Payment confirmation could not be completed. Please try again.",
		}, nil
	}

	if out.Error != nil {
		return ConfirmationResult{Outcome: OutcomeFailed, Message: out.Error.Message}, nil
	}
	if out.PaymentIntent == nil {
		return ConfirmationResult{
			Outcome: OutcomeFailed,
			Message: "Payment confirmation could not be completed. Please try again.",
		}, nil
	}
	if out.PaymentIntent.Status != StatusSucceeded {
		return ConfirmationResult{Outcome: OutcomeIncomplete, Status: out.PaymentIntent.Status}, nil
	}
	return ConfirmationResult{
		Outcome:   OutcomeSucceeded,
		PaymentID: out.PaymentIntent.ID,
		Status:    out.PaymentIntent.Status,
	}, nil
}
