// mockpayment is a local stand-in for the payment backend and the card
// gateway. It serves the intent endpoint and the confirmation endpoint so the
// checkout flow can be exercised end to end without real credentials.
//
// Card tokens steer the confirmation outcome:
//
//	pm_card_declined   -> error with a decline message
//	pm_card_incomplete -> paymentIntent with a non-succeeded status
//	anything else      -> succeeded
package main

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

type intentRequest struct {
	Amount   int64 `json:"amount"`
	Shipping struct {
		Name string `json:"name"`
	} `json:"shipping"`
}

type confirmRequest struct {
	ClientSecret  string `json:"client_secret"`
	PaymentMethod struct {
		Card string `json:"card"`
	} `json:"payment_method"`
}

func main() {
	addr := flag.String("addr", ":4242", "Listen address")
	delay := flag.Duration("delay", 0, "Artificial latency per request")
	flag.Parse()

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/payment/process", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(*delay)

		var in intentRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if in.Amount <= 0 {
			http.Error(w, "amount must be positive", http.StatusBadRequest)
			return
		}

		secret := "pi_" + randomHex(8) + "_secret_" + randomHex(12)
		log.Printf("intent: amount=%d name=%q secret=%s", in.Amount, in.Shipping.Name, secret)
		writeJSON(w, map[string]string{"client_secret": secret})
	})

	mux.HandleFunc("POST /v1/payment_intents/confirm", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(*delay)

		var in confirmRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if in.ClientSecret == "" {
			writeJSON(w, map[string]any{"error": map[string]string{
				"message": "Missing client secret.",
			}})
			return
		}

		switch in.PaymentMethod.Card {
		case "pm_card_declined":
			log.Printf("confirm: declined card=%s", in.PaymentMethod.Card)
			writeJSON(w, map[string]any{"error": map[string]string{
				"message": "Your card was declined.",
			}})
		case "pm_card_incomplete":
			log.Printf("confirm: incomplete card=%s", in.PaymentMethod.Card)
			writeJSON(w, map[string]any{"paymentIntent": map[string]string{
				"id":     intentID(in.ClientSecret),
				"status": "requires_action",
			}})
		default:
			log.Printf("confirm: succeeded card=%s", in.PaymentMethod.Card)
			writeJSON(w, map[string]any{"paymentIntent": map[string]string{
				"id":     intentID(in.ClientSecret),
				"status": "succeeded",
			}})
		}
	})

	log.Printf("mock payment backend listening on %s", *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		fmt.Fprintf(os.Stderr, "serve: %v\n", err)
		os.Exit(1)
	}
}

// intentID recovers the intent ID from a "pi_xxx_secret_yyy" client secret.
func intentID(clientSecret string) string {
	if i := strings.Index(clientSecret, "_secret_"); i > 0 {
		return clientSecret[:i]
	}
	return "pi_" + randomHex(8)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
