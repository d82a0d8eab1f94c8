package backend

import (
	"context"
	"net/http"
	"net/url"
)

// CheckoutSessionRequest asks the backend to open a hosted payment
// session for an order. The success URL carries the processor's
// session-id placeholder so the confirmation screen can verify it.
type CheckoutSessionRequest struct {
	OrderID    int64   `json:"commandeId"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	SuccessURL string  `json:"successUrl"`
	CancelURL  string  `json:"cancelUrl"`
}

type CheckoutSession struct {
	URL       string `json:"url"`
	SessionID string `json:"sessionId"`
}

func (c *Client) CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (CheckoutSession, error) {
	var session CheckoutSession
	if err := c.do(ctx, http.MethodPost, "/payments/create-checkout-session", req, &session); err != nil {
		return CheckoutSession{}, err
	}
	return session, nil
}

// PaymentRequest is the embedded-form variant: a payment record tied to
// an existing order. Card fields are forwarded for processing and never
// stored on this side.
type PaymentRequest struct {
	OrderID    int64   `json:"commandeId"`
	Amount     float64 `json:"montant"`
	Method     string  `json:"modePaiement"`
	CardHolder string  `json:"nomCarte,omitempty"`
	CardNumber string  `json:"numeroCarte,omitempty"`
	CardExpiry string  `json:"dateExpiration,omitempty"`
	CardCVV    string  `json:"cvv,omitempty"`
}

type PaymentRecord struct {
	TransactionID int64   `json:"idTransaction"`
	Amount        float64 `json:"montant"`
	Status        string  `json:"statut"`
	Reference     string  `json:"referencePaiement"`
}

func (c *Client) CreatePayment(ctx context.Context, req PaymentRequest) (PaymentRecord, error) {
	var record PaymentRecord
	if err := c.do(ctx, http.MethodPost, "/payments", req, &record); err != nil {
		return PaymentRecord{}, err
	}
	return record, nil
}

// CheckoutVerification is the settlement result of a hosted session.
// Success=false with an Error message is a verified failure, distinct
// from a transport error.
type CheckoutVerification struct {
	Success bool   `json:"success"`
	OrderID int64  `json:"orderId"`
	Error   string `json:"error"`
}

func (c *Client) VerifyCheckoutSession(ctx context.Context, sessionID string) (CheckoutVerification, error) {
	var verification CheckoutVerification
	path := "/payments/checkout-success?session_id=" + url.QueryEscape(sessionID)
	if err := c.do(ctx, http.MethodGet, path, nil, &verification); err != nil {
		return CheckoutVerification{}, err
	}
	return verification, nil
}
