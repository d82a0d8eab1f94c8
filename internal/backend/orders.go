package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"storefront/internal/models"
)

// CreateOrderRequest is the order creation payload: the client
// reference, the grand total, and one line per cart entry with its
// unit price snapshot.
type CreateOrderRequest struct {
	ClientID int64              `json:"clientId"`
	Total    float64            `json:"total"`
	Lines    []models.OrderLine `json:"lignesCommande"`
}

// CreateOrder returns the backend-assigned order id. Older backend
// versions return it as "idCommande" instead of "id".
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (int64, error) {
	var created struct {
		ID       *int64 `json:"id"`
		LegacyID *int64 `json:"idCommande"`
	}
	if err := c.do(ctx, http.MethodPost, "/orders", req, &created); err != nil {
		return 0, err
	}
	switch {
	case created.ID != nil:
		return *created.ID, nil
	case created.LegacyID != nil:
		return *created.LegacyID, nil
	}
	return 0, errors.New("order created without an id")
}

func (c *Client) GetOrder(ctx context.Context, id int64) (models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, &order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) GetTracking(ctx context.Context, id int64) (models.TrackingInfo, error) {
	var tracking models.TrackingInfo
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d/tracking", id), nil, &tracking); err != nil {
		return models.TrackingInfo{}, err
	}
	return tracking, nil
}

func (c *Client) GetHistory(ctx context.Context, id int64) ([]models.StatusHistoryEntry, error) {
	var history []models.StatusHistoryEntry
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d/history", id), nil, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// SendConfirmationEmail is best-effort from the caller's point of view:
// the checkout sequencer logs a failure but never fails the order.
func (c *Client) SendConfirmationEmail(ctx context.Context, orderID int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/orders/%d/send-confirmation-email", orderID), nil, nil)
}

// StatusChange is the shared payload of the admin status mutations.
type StatusChange struct {
	Status         models.OrderStatus `json:"statut,omitempty"`
	Comment        string             `json:"commentaire,omitempty"`
	Actor          string             `json:"utilisateur,omitempty"`
	TrackingNumber string             `json:"numeroSuivi,omitempty"`
	Carrier        string             `json:"transporteur,omitempty"`
	ShippedAt      string             `json:"dateExpedition,omitempty"`
	DeliveredAt    string             `json:"dateLivraison,omitempty"`
	Reason         string             `json:"raison,omitempty"`
}

func (c *Client) SetOrderStatus(ctx context.Context, id int64, change StatusChange) (models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d/status", id), change, &order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (c *Client) ShipOrder(ctx context.Context, id int64, change StatusChange) (models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/orders/%d/ship", id), change, &order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (c *Client) DeliverOrder(ctx context.Context, id int64, change StatusChange) (models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d/deliver", id), change, &order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (c *Client) CancelOrder(ctx context.Context, id int64, change StatusChange) (models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/orders/%d/cancel", id), change, &order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}
