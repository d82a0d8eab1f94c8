package models

// ShippingAddress is the nested address entity the backend expects on
// client creation.
type ShippingAddress struct {
	Street     string `json:"rue"`
	City       string `json:"ville"`
	PostalCode string `json:"codePostal"`
	Country    string `json:"pays"`
}

// Client is created once per checkout attempt and never reused across
// sessions.
type Client struct {
	ID      int64           `json:"id,omitempty"`
	Name    string          `json:"nom"`
	Email   string          `json:"email"`
	Phone   string          `json:"telephone"`
	Address ShippingAddress `json:"adresseLivraison"`
}
