package models

// Review is a customer rating for one food of a received order.
// The backend creates pending reviews when an order is received; the
// client fills in rating and comment. Once Reviewed is true the entity
// is immutable from the client's perspective.
type Review struct {
	ID       string `json:"_id"`
	Order    Order  `json:"orderId"`
	Food     Food   `json:"foodId"`
	Rating   int    `json:"rating" validate:"min=1,max=5"`
	Comment  string `json:"comment,omitempty"`
	Reviewed bool   `json:"reviewed"`
}
