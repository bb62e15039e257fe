package services

import (
	"context"
	"fmt"
	"time"

	"quanan/internal/models"
	"quanan/internal/policy"
	"quanan/internal/pricing"
	"quanan/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// EventPublisher is the narrow messaging interface the order service
// publishes refresh signals through. Satisfied by rabbitmq.Client,
// which routes events onto the order event queue; a nil publisher
// disables the signal.
type EventPublisher interface {
	PublishOrderEvent(event models.OrderEvent) error
}

// OrderService orchestrates order lifecycle transitions: it validates
// the requesting actor and the transition against the policy, delegates
// the legal ones to the remote order API, and fans out a refresh event
// on success. It holds no state between calls; every call takes the
// order snapshot as a parameter.
type OrderService struct {
	orderRepo repositories.OrderRepository
	events    EventPublisher
	validate  *validator.Validate
}

// NewOrderService creates a new OrderService. events may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, events EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		events:    events,
		validate:  validator.New(),
	}
}

// RequestTransition moves the order into the target status on behalf of
// the actor. Ownership and policy are checked before any network call:
// an unauthorized or illegal request never reaches the repository.
// Remote failures surface as RemoteError or ErrTimeout; there is no
// automatic retry, but every update carries an idempotency key so the
// backend can dedupe a caller-initiated resubmission.
func (s *OrderService) RequestTransition(ctx context.Context, order *models.Order, actor models.ActorContext, target models.OrderStatus) (*models.Order, error) {
	if err := s.authorize(order, actor); err != nil {
		return nil, err
	}

	if err := policy.Check(actor.Role, order.Status, target); err != nil {
		log.Warn().
			Str("order_id", order.ID).
			Str("actor_role", actor.Role.String()).
			Str("current_status", order.Status.String()).
			Str("target_status", target.String()).
			Msg("rejected status transition")
		return nil, err
	}

	// Precondition on the one legal path into placed: the cart must not
	// be empty. Checked after the table so illegal pairs keep reporting
	// as invalid transitions.
	if target == models.StatusPlaced && len(order.Items) == 0 {
		return nil, &models.ValidationError{Message: "cannot place an order with no items"}
	}

	idempotencyKey := uuid.New().String()

	var updated *models.Order
	var err error
	switch actor.Role {
	case models.RoleShop:
		updated, err = s.orderRepo.UpdateStatusByShop(ctx, order.ID, target, idempotencyKey)
	default:
		updated, err = s.orderRepo.UpdateStatusByCustomer(ctx, order.ID, target, idempotencyKey)
	}
	if err != nil {
		return nil, fmt.Errorf("transition order %s to %s: %w", order.ID, target, err)
	}

	log.Info().
		Str("order_id", updated.ID).
		Str("actor_role", actor.Role.String()).
		Str("old_status", order.Status.String()).
		Str("new_status", updated.Status.String()).
		Msg("order status updated")

	s.publishStatusChanged(updated, actor.Role)

	return updated, nil
}

// authorize checks that the actor owns the order in the required role.
func (s *OrderService) authorize(order *models.Order, actor models.ActorContext) error {
	switch actor.Role {
	case models.RoleCustomer:
		if actor.ActorID != order.CustomerID {
			return models.ErrUnauthorized
		}
	case models.RoleShop:
		if actor.ActorID != order.Shop.UserID {
			return models.ErrUnauthorized
		}
	default:
		return models.ErrUnauthorized
	}
	return nil
}

// publishStatusChanged emits the order-list refresh signal. A publish
// failure is logged and swallowed: the authoritative state already
// changed remotely, and consumers refetch on their own schedule anyway.
func (s *OrderService) publishStatusChanged(order *models.Order, actor models.Role) {
	if s.events == nil {
		return
	}
	event := models.OrderEvent{
		OrderID:  order.ID,
		Status:   order.Status,
		Actor:    actor,
		Occurred: time.Now(),
	}
	if err := s.events.PublishOrderEvent(event); err != nil {
		log.Warn().Err(err).Str("order_id", order.ID).Msg("publish order event")
	}
}

// Place submits a creating order.
func (s *OrderService) Place(ctx context.Context, order *models.Order, actor models.ActorContext) (*models.Order, error) {
	return s.RequestTransition(ctx, order, actor, models.StatusPlaced)
}

// Cancel cancels the order on behalf of the actor.
func (s *OrderService) Cancel(ctx context.Context, order *models.Order, actor models.ActorContext) (*models.Order, error) {
	return s.RequestTransition(ctx, order, actor, models.StatusCancelled)
}

// Receive confirms delivery receipt on behalf of the customer.
func (s *OrderService) Receive(ctx context.Context, order *models.Order, actor models.ActorContext) (*models.Order, error) {
	return s.RequestTransition(ctx, order, actor, models.StatusReceived)
}

// ListOrders retrieves the actor's orders.
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.orderRepo.List(ctx)
}

// StatusCounts returns the per-status order counts backing the status
// tab badges.
func (s *OrderService) StatusCounts(ctx context.Context) (map[models.OrderStatus]int, error) {
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[models.OrderStatus]int)
	for _, order := range orders {
		counts[order.Status]++
	}
	return counts, nil
}

// Capabilities derives the actor's action affordances for an order.
func (s *OrderService) Capabilities(order *models.Order, actor models.ActorContext) policy.Capabilities {
	return policy.CapabilitiesFor(actor.Role, order.Status)
}

// UpdateOrder changes note, payment method or delivery address. Only
// the owning customer may edit, and only while the order is creating.
func (s *OrderService) UpdateOrder(ctx context.Context, order *models.Order, actor models.ActorContext, update repositories.OrderUpdate) (*models.Order, error) {
	if actor.Role != models.RoleCustomer || actor.ActorID != order.CustomerID {
		return nil, models.ErrUnauthorized
	}
	if !order.Editable() {
		return nil, &models.ValidationError{Message: fmt.Sprintf("order in status %s is no longer editable", order.Status)}
	}
	if err := s.validate.Struct(update); err != nil {
		return nil, &models.ValidationError{Message: "invalid order update", Err: err}
	}
	return s.orderRepo.Update(ctx, order.ID, update)
}

// AddItem adds a food selection to the actor's creating order. The
// quantity is clamped to a minimum of 1 and the base price is
// snapshotted from the food so later catalog changes do not reprice
// the cart silently.
func (s *OrderService) AddItem(ctx context.Context, item models.OrderItem) (*models.Order, error) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	if item.BasePrice == 0 {
		item.BasePrice = item.Food.Price
	}
	seen := make(map[string]bool, len(item.Options))
	for _, opt := range item.Options {
		if seen[opt.Name] {
			return nil, &models.ValidationError{Message: fmt.Sprintf("duplicate option %q on item", opt.Name)}
		}
		seen[opt.Name] = true
	}
	if err := s.validate.Struct(item); err != nil {
		return nil, &models.ValidationError{Message: "invalid order item", Err: err}
	}

	order, err := s.orderRepo.CreateItem(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("add item: %w", err)
	}

	// Guard against a backend that returns stale totals.
	order.TotalAmount = pricing.OrderTotal(order.Items)
	return order, nil
}
