package repositories

import (
	"context"

	"quanan/internal/models"
)

// OrderUpdate carries the fields a customer may change while an order
// is still in the creating status. Nil fields are left untouched.
type OrderUpdate struct {
	Note            *string               `json:"note,omitempty"`
	PaymentMethod   *models.PaymentMethod `json:"paymentMethod,omitempty" validate:"omitempty,oneof=cash credit_card e_wallet"`
	DeliveryAddress *string               `json:"deliveryAddress,omitempty"`
}

// OrderRepository defines the adapter contract to the remote order API.
// The remote system is the sole arbiter of the authoritative status;
// implementations only submit well-formed requests and interpret the
// responses, surfacing failures as typed errors (RemoteError, ErrTimeout).
type OrderRepository interface {
	// List returns the orders visible to the authenticated actor.
	List(ctx context.Context) ([]models.Order, error)
	// UpdateStatusByCustomer submits a customer-side status change.
	// idempotencyKey lets the backend dedupe a resubmitted request;
	// the client never retries on its own.
	UpdateStatusByCustomer(ctx context.Context, orderID string, status models.OrderStatus, idempotencyKey string) (*models.Order, error)
	// UpdateStatusByShop submits a shop-side status change.
	UpdateStatusByShop(ctx context.Context, orderID string, status models.OrderStatus, idempotencyKey string) (*models.Order, error)
	// Update changes the editable fields of an order; only legal while
	// the order status is creating.
	Update(ctx context.Context, orderID string, update OrderUpdate) (*models.Order, error)
	// CreateItem adds an item to the actor's creating order for the
	// item's shop, creating the order if none exists yet.
	CreateItem(ctx context.Context, item models.OrderItem) (*models.Order, error)
}

// ReviewRepository defines the adapter contract to the review API.
type ReviewRepository interface {
	// Submit fills in a pending review with the rating and comment.
	Submit(ctx context.Context, reviewID string, rating int, comment string) (*models.Review, error)
	// ListMine returns every review entity belonging to the
	// authenticated customer, pending and submitted alike.
	ListMine(ctx context.Context) ([]models.Review, error)
}
