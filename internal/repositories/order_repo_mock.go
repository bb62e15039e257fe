package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"quanan/internal/models"
	"quanan/internal/pricing"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository
// and ReviewRepository. It emulates the backend's behavior closely
// enough for tests and offline runs: status updates are applied as
// requested (the fake backend trusts the caller the way the real one
// arbitrates), item creation groups items into the creating order of
// the item's shop, and field updates are rejected once the order has
// left the creating status.
type MockOrderRepository struct {
	orders  map[string]models.Order
	reviews map[string]models.Review
	mu      sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders:  make(map[string]models.Order),
		reviews: make(map[string]models.Review),
	}
}

// Seed inserts an order directly, generating an ID when absent.
func (r *MockOrderRepository) Seed(order models.Order) models.Order {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.TotalAmount = pricing.OrderTotal(order.Items)
	r.orders[order.ID] = order
	return order
}

// SeedReview inserts a review directly, generating an ID when absent.
func (r *MockOrderRepository) SeedReview(review models.Review) models.Review {
	r.mu.Lock()
	defer r.mu.Unlock()

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	r.reviews[review.ID] = review
	return review
}

// List returns all orders.
func (r *MockOrderRepository) List(ctx context.Context) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orderList = append(orderList, order)
	}
	return orderList, nil
}

// UpdateStatusByCustomer applies a customer-side status change.
func (r *MockOrderRepository) UpdateStatusByCustomer(ctx context.Context, orderID string, status models.OrderStatus, idempotencyKey string) (*models.Order, error) {
	return r.updateStatus(orderID, status)
}

// UpdateStatusByShop applies a shop-side status change.
func (r *MockOrderRepository) UpdateStatusByShop(ctx context.Context, orderID string, status models.OrderStatus, idempotencyKey string) (*models.Order, error) {
	return r.updateStatus(orderID, status)
}

func (r *MockOrderRepository) updateStatus(orderID string, status models.OrderStatus) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok {
		return nil, &models.RemoteError{StatusCode: 404, Message: fmt.Sprintf("order with ID %s not found", orderID)}
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	r.orders[orderID] = order
	return &order, nil
}

// Update changes the editable order fields; rejected once the order has
// left the creating status, mirroring the backend rule.
func (r *MockOrderRepository) Update(ctx context.Context, orderID string, update OrderUpdate) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok {
		return nil, &models.RemoteError{StatusCode: 404, Message: fmt.Sprintf("order with ID %s not found", orderID)}
	}
	if order.Status != models.StatusCreating {
		return nil, &models.RemoteError{StatusCode: 400, Message: "order is no longer editable"}
	}
	if update.Note != nil {
		order.Note = *update.Note
	}
	if update.PaymentMethod != nil {
		order.PaymentMethod = *update.PaymentMethod
	}
	if update.DeliveryAddress != nil {
		order.DeliveryAddress = *update.DeliveryAddress
	}
	order.UpdatedAt = time.Now()
	r.orders[orderID] = order
	return &order, nil
}

// CreateItem appends the item to the creating order of the item's shop,
// creating one if none exists. Totals are recomputed on every mutation.
func (r *MockOrderRepository) CreateItem(ctx context.Context, item models.OrderItem) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	for id, order := range r.orders {
		if order.Status == models.StatusCreating && order.Shop.ID == item.Food.ShopID {
			order.Items = append(order.Items, item)
			order.TotalAmount = pricing.OrderTotal(order.Items)
			order.UpdatedAt = time.Now()
			r.orders[id] = order
			return &order, nil
		}
	}

	order := models.Order{
		ID:          uuid.New().String(),
		Shop:        models.Shop{ID: item.Food.ShopID},
		Items:       []models.OrderItem{item},
		Status:      models.StatusCreating,
		TotalAmount: pricing.ItemTotal(item),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	r.orders[order.ID] = order
	return &order, nil
}

// Submit fills in a pending review; a second submission is rejected.
func (r *MockOrderRepository) Submit(ctx context.Context, reviewID string, rating int, comment string) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	review, ok := r.reviews[reviewID]
	if !ok {
		return nil, &models.RemoteError{StatusCode: 404, Message: fmt.Sprintf("review with ID %s not found", reviewID)}
	}
	if review.Reviewed {
		return nil, &models.RemoteError{StatusCode: 400, Message: "review was already submitted"}
	}
	review.Rating = rating
	review.Comment = comment
	review.Reviewed = true
	r.reviews[reviewID] = review
	return &review, nil
}

// ListMine returns all reviews.
func (r *MockOrderRepository) ListMine(ctx context.Context) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reviewList := make([]models.Review, 0, len(r.reviews))
	for _, review := range r.reviews {
		reviewList = append(reviewList, review)
	}
	return reviewList, nil
}
