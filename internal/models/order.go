package models

// OrderStatus is the backend's order lifecycle enumeration. Forward
// progress runs PENDING through DELIVERED; CANCELLED is terminal and
// reachable from any non-terminal state.
type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusConfirmed  OrderStatus = "CONFIRMED"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusShipped    OrderStatus = "SHIPPED"
	StatusDelivered  OrderStatus = "DELIVERED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

// ProgressSteps is the number of forward steps in the lifecycle.
const ProgressSteps = 5

var statusSteps = map[OrderStatus]int{
	StatusPending:    1,
	StatusConfirmed:  2,
	StatusProcessing: 3,
	StatusShipped:    4,
	StatusDelivered:  5,
	StatusCancelled:  0,
}

// Step returns the 1..5 position of the status, 0 for CANCELLED or an
// unknown status.
func (s OrderStatus) Step() int {
	return statusSteps[s]
}

// Progress is the customer-facing completion fraction, step/5. A
// cancelled order reports 0 regardless of how far it previously got.
func (s OrderStatus) Progress() float64 {
	return float64(s.Step()) / float64(ProgressSteps)
}

func (s OrderStatus) Valid() bool {
	_, ok := statusSteps[s]
	return ok
}

// ProductRef identifies a product inside an order line payload.
type ProductRef struct {
	ID int64 `json:"id"`
}

// OrderLine snapshots the unit price at order time alongside the
// product reference.
type OrderLine struct {
	Quantity  int        `json:"quantite"`
	UnitPrice float64    `json:"prixUnitaire"`
	Product   ProductRef `json:"produit"`
}

// Order mirrors the backend order record. Identifiers are assigned by
// the backend; status is mutated only through the admin operations.
type Order struct {
	ID        int64       `json:"id"`
	Total     float64     `json:"total"`
	Status    OrderStatus `json:"statut"`
	Lines     []OrderLine `json:"lignesCommande,omitempty"`
	Client    *Client     `json:"client,omitempty"`
	CreatedAt string      `json:"dateCommande,omitempty"`
}

// TrackingInfo is the shipment view of an order. Absent fields mean the
// backend has not set them yet, which renders as "not set" placeholders
// rather than errors.
type TrackingInfo struct {
	OrderID           int64       `json:"commandeId"`
	Status            OrderStatus `json:"statut"`
	TrackingNumber    *string     `json:"numeroSuivi"`
	Carrier           *string     `json:"transporteur"`
	ShippedAt         *string     `json:"dateExpedition"`
	EstimatedDelivery *string     `json:"dateLivraisonEstimee"`
	DeliveredAt       *string     `json:"dateLivraisonReelle"`
	DeliveryNotes     *string     `json:"notesLivraison"`
}

// StatusHistoryEntry is one append-only audit trail row. The first
// entry of an order has no previous status.
type StatusHistoryEntry struct {
	ID        int64        `json:"id"`
	OldStatus *OrderStatus `json:"ancienStatut"`
	NewStatus OrderStatus  `json:"nouveauStatut"`
	ChangedAt string       `json:"dateChangement"`
	Comment   *string      `json:"commentaire"`
	Actor     *string      `json:"utilisateur"`
}
