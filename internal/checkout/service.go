package checkout

import (
	"context"
	"errors"
	"log"

	"storefront/internal/backend"
	"storefront/internal/cart"
	"storefront/internal/models"
)

// Order totals. VAT is computed for the summary; item prices already
// include it, so the grand total is subtotal plus shipping only.
const (
	FreeShippingThreshold = 50.0
	ShippingFee           = 9.99
	VATRate               = 0.20
)

var ErrEmptyCart = errors.New("cart is empty")

type Totals struct {
	Subtotal float64 `json:"sousTotal"`
	Shipping float64 `json:"livraison"`
	Tax      float64 `json:"tva"`
	Total    float64 `json:"total"`
}

func ComputeTotals(view models.CartView) Totals {
	shipping := ShippingFee
	if view.Total >= FreeShippingThreshold {
		shipping = 0
	}
	return Totals{
		Subtotal: view.Total,
		Shipping: shipping,
		Tax:      view.Total * VATRate,
		Total:    view.Total + shipping,
	}
}

// CommerceAPI is the slice of the backend client the sequencer uses.
type CommerceAPI interface {
	CreateClient(ctx context.Context, client models.Client) (models.Client, error)
	CreateOrder(ctx context.Context, req backend.CreateOrderRequest) (int64, error)
	SendConfirmationEmail(ctx context.Context, orderID int64) error
	VerifyCheckoutSession(ctx context.Context, sessionID string) (backend.CheckoutVerification, error)
}

// Service runs the payment step: create the client record, create the
// order with price snapshots, then hand off to the payment strategy.
type Service struct {
	api      CommerceAPI
	strategy PaymentStrategy
	wizard   *Wizard
	cart     *cart.Service
}

func NewService(api CommerceAPI, strategy PaymentStrategy, wizard *Wizard, cartSvc *cart.Service) *Service {
	return &Service{api: api, strategy: strategy, wizard: wizard, cart: cartSvc}
}

func (s *Service) Wizard() *Wizard { return s.wizard }

// Pay executes the backend sequence. Any failure surfaces to the
// caller and leaves the wizard on the payment step; client and order
// records already created are not rolled back.
func (s *Service) Pay(ctx context.Context, sessionID string, card *CardDetails) (PaymentOutcome, error) {
	state, err := s.wizard.State(ctx, sessionID)
	if err != nil {
		return PaymentOutcome{}, err
	}
	if state.Step < StepPayment {
		return PaymentOutcome{}, ErrStepOrder
	}

	view, err := s.cart.View(ctx, sessionID)
	if err != nil {
		return PaymentOutcome{}, err
	}
	if len(view.Items) == 0 {
		return PaymentOutcome{}, ErrEmptyCart
	}
	totals := ComputeTotals(view)

	client, err := s.api.CreateClient(ctx, models.Client{
		Name:  state.Identity.Name,
		Email: state.Identity.Email,
		Phone: state.Identity.Phone,
		Address: models.ShippingAddress{
			Street:     state.Shipping.Street,
			City:       state.Shipping.City,
			PostalCode: state.Shipping.PostalCode,
			Country:    state.Shipping.Country,
		},
	})
	if err != nil {
		return PaymentOutcome{}, err
	}
	log.Printf("[CHECKOUT] client %d created for session %s", client.ID, sessionID)

	lines := make([]models.OrderLine, 0, len(view.Items))
	for _, item := range view.Items {
		lines = append(lines, models.OrderLine{
			Quantity:  item.Quantity,
			UnitPrice: item.Product.Price,
			Product:   models.ProductRef{ID: item.Product.ID},
		})
	}

	orderID, err := s.api.CreateOrder(ctx, backend.CreateOrderRequest{
		ClientID: client.ID,
		Total:    totals.Total,
		Lines:    lines,
	})
	if err != nil {
		return PaymentOutcome{}, err
	}
	log.Printf("[CHECKOUT] order %d created for session %s", orderID, sessionID)

	outcome, err := s.strategy.Pay(ctx, orderID, totals.Total, card)
	if err != nil {
		return PaymentOutcome{}, err
	}
	outcome.OrderID = orderID

	if outcome.Completed {
		s.finalize(ctx, sessionID, orderID)
	}
	return outcome, nil
}

// ConfirmResult is the confirmation screen state for the hosted
// variant. Success=false is a verified failure directing the user to
// support, never a fabricated success.
type ConfirmResult struct {
	Success bool   `json:"success"`
	OrderID int64  `json:"orderId,omitempty"`
	Message string `json:"message,omitempty"`
}

// Confirm settles a hosted payment session after the processor
// redirects back. An empty session id means the user landed here
// without paying.
func (s *Service) Confirm(ctx context.Context, sessionID, paymentSessionID string) (ConfirmResult, error) {
	if paymentSessionID == "" {
		return ConfirmResult{Success: false, Message: "no payment session found"}, nil
	}

	verification, err := s.api.VerifyCheckoutSession(ctx, paymentSessionID)
	if err != nil {
		return ConfirmResult{}, err
	}
	if !verification.Success {
		message := verification.Error
		if message == "" {
			message = "payment verification failed"
		}
		return ConfirmResult{Success: false, Message: message}, nil
	}

	s.finalize(ctx, sessionID, verification.OrderID)
	return ConfirmResult{Success: true, OrderID: verification.OrderID}, nil
}

// finalize clears the session after a settled payment and requests the
// confirmation email. The email is best-effort: a failure is logged
// and never undoes the completed order.
func (s *Service) finalize(ctx context.Context, sessionID string, orderID int64) {
	if err := s.cart.Clear(ctx, sessionID); err != nil {
		log.Printf("[CHECKOUT] cart clear failed for session %s: %v", sessionID, err)
	}
	if err := s.wizard.Reset(ctx, sessionID); err != nil {
		log.Printf("[CHECKOUT] wizard reset failed for session %s: %v", sessionID, err)
	}
	if err := s.api.SendConfirmationEmail(ctx, orderID); err != nil {
		log.Printf("[CHECKOUT] confirmation email failed for order %d: %v", orderID, err)
	}
}
