package checkout

import (
	"context"
	"errors"

	"storefront/internal/backend"
)

// CardDetails is only carried for the embedded variant and forwarded
// verbatim; card data is never persisted on this side.
type CardDetails struct {
	Holder string `json:"nomCarte"`
	Number string `json:"numeroCarte"`
	Expiry string `json:"dateExpiration"`
	CVV    string `json:"cvv"`
}

// PaymentOutcome reports how the payment step ended. Completed means
// the order is settled now (embedded variant); otherwise RedirectURL
// points at the processor's hosted page and settlement is confirmed
// later through Confirm.
type PaymentOutcome struct {
	OrderID     int64  `json:"orderId"`
	Completed   bool   `json:"completed"`
	RedirectURL string `json:"redirectUrl,omitempty"`
}

var ErrCardRequired = errors.New("card details are required")

// PaymentsAPI is the slice of the backend client the strategies use.
type PaymentsAPI interface {
	CreateCheckoutSession(ctx context.Context, req backend.CheckoutSessionRequest) (backend.CheckoutSession, error)
	CreatePayment(ctx context.Context, req backend.PaymentRequest) (backend.PaymentRecord, error)
}

// PaymentStrategy is one of the two observed payment variants, selected
// by configuration.
type PaymentStrategy interface {
	Name() string
	Pay(ctx context.Context, orderID int64, amount float64, card *CardDetails) (PaymentOutcome, error)
}

type hostedRedirect struct {
	payments      PaymentsAPI
	publicBaseURL string
}

// NewHostedRedirect pays through the processor's hosted page: the
// backend opens a session and the storefront redirects the browser to
// it. The session id placeholder in the success URL is substituted by
// the processor.
func NewHostedRedirect(payments PaymentsAPI, publicBaseURL string) PaymentStrategy {
	return &hostedRedirect{payments: payments, publicBaseURL: publicBaseURL}
}

func (h *hostedRedirect) Name() string { return "hosted-redirect" }

func (h *hostedRedirect) Pay(ctx context.Context, orderID int64, amount float64, _ *CardDetails) (PaymentOutcome, error) {
	session, err := h.payments.CreateCheckoutSession(ctx, backend.CheckoutSessionRequest{
		OrderID:    orderID,
		Amount:     amount,
		Currency:   "usd",
		SuccessURL: h.publicBaseURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  h.publicBaseURL + "/checkout",
	})
	if err != nil {
		return PaymentOutcome{}, err
	}
	return PaymentOutcome{OrderID: orderID, RedirectURL: session.URL}, nil
}

type embeddedForm struct {
	payments PaymentsAPI
}

// NewEmbeddedForm pays with card fields collected by the storefront: a
// payment record is created against the order and success is immediate.
func NewEmbeddedForm(payments PaymentsAPI) PaymentStrategy {
	return &embeddedForm{payments: payments}
}

func (e *embeddedForm) Name() string { return "embedded-form" }

func (e *embeddedForm) Pay(ctx context.Context, orderID int64, amount float64, card *CardDetails) (PaymentOutcome, error) {
	if card == nil {
		return PaymentOutcome{}, ErrCardRequired
	}
	_, err := e.payments.CreatePayment(ctx, backend.PaymentRequest{
		OrderID:    orderID,
		Amount:     amount,
		Method:     "CARTE_BANCAIRE",
		CardHolder: card.Holder,
		CardNumber: card.Number,
		CardExpiry: card.Expiry,
		CardCVV:    card.CVV,
	})
	if err != nil {
		return PaymentOutcome{}, err
	}
	return PaymentOutcome{OrderID: orderID, Completed: true}, nil
}
