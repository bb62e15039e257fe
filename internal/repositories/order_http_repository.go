package repositories

import (
	"context"
	"fmt"
	"net/http"

	"quanan/internal/models"
	"quanan/pkg/apiclient"
)

// HTTPOrderRepository implements OrderRepository and ReviewRepository
// against the backend REST API.
type HTTPOrderRepository struct {
	client *apiclient.Client
}

// NewHTTPOrderRepository creates a new instance of HTTPOrderRepository.
func NewHTTPOrderRepository(client *apiclient.Client) *HTTPOrderRepository {
	return &HTTPOrderRepository{
		client: client,
	}
}

// List retrieves the authenticated actor's orders.
func (r *HTTPOrderRepository) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.client.Get(ctx, "/orders", &orders); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

type statusUpdateRequest struct {
	Status models.OrderStatus `json:"status"`
}

// UpdateStatusByCustomer submits a customer-side status change. The
// idempotency key travels as a header so the backend can dedupe; status
// updates are not proven idempotent server-side, so the client never
// retries on its own.
func (r *HTTPOrderRepository) UpdateStatusByCustomer(ctx context.Context, orderID string, status models.OrderStatus, idempotencyKey string) (*models.Order, error) {
	return r.updateStatus(ctx, orderID, "update_status_by_customer", status, idempotencyKey)
}

// UpdateStatusByShop submits a shop-side status change.
func (r *HTTPOrderRepository) UpdateStatusByShop(ctx context.Context, orderID string, status models.OrderStatus, idempotencyKey string) (*models.Order, error) {
	return r.updateStatus(ctx, orderID, "update_status_by_shop", status, idempotencyKey)
}

func (r *HTTPOrderRepository) updateStatus(ctx context.Context, orderID, action string, status models.OrderStatus, idempotencyKey string) (*models.Order, error) {
	header := http.Header{}
	if idempotencyKey != "" {
		header.Set("Idempotency-Key", idempotencyKey)
	}

	var order models.Order
	path := fmt.Sprintf("/orders/%s/%s", orderID, action)
	if err := r.client.Post(ctx, path, statusUpdateRequest{Status: status}, &order, header); err != nil {
		return nil, fmt.Errorf("update order %s status: %w", orderID, err)
	}
	return &order, nil
}

// Update changes the editable fields of a creating order.
func (r *HTTPOrderRepository) Update(ctx context.Context, orderID string, update OrderUpdate) (*models.Order, error) {
	var order models.Order
	if err := r.client.Put(ctx, "/orders/"+orderID, update, &order); err != nil {
		return nil, fmt.Errorf("update order %s: %w", orderID, err)
	}
	return &order, nil
}

// CreateItem adds an item to the actor's creating order.
func (r *HTTPOrderRepository) CreateItem(ctx context.Context, item models.OrderItem) (*models.Order, error) {
	var order models.Order
	if err := r.client.Post(ctx, "/orders/items", item, &order, nil); err != nil {
		return nil, fmt.Errorf("create order item: %w", err)
	}
	return &order, nil
}

type reviewSubmitRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

// Submit fills in a pending review.
func (r *HTTPOrderRepository) Submit(ctx context.Context, reviewID string, rating int, comment string) (*models.Review, error) {
	var review models.Review
	if err := r.client.Put(ctx, "/reviews/"+reviewID, reviewSubmitRequest{Rating: rating, Comment: comment}, &review); err != nil {
		return nil, fmt.Errorf("submit review %s: %w", reviewID, err)
	}
	return &review, nil
}

// ListMine retrieves the authenticated customer's reviews.
func (r *HTTPOrderRepository) ListMine(ctx context.Context) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.client.Get(ctx, "/reviews/my-reviews", &reviews); err != nil {
		return nil, fmt.Errorf("list my reviews: %w", err)
	}
	return reviews, nil
}
