package services

import (
	"context"
	"errors"
	"testing"

	"quanan/internal/models"
	"quanan/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOrderLifecycle drives a full order through the in-memory backend:
// the customer builds and places it, the shop works it to delivered,
// the customer receives it and rates the food.
func TestOrderLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMockOrderRepository()
	orderService := NewOrderService(repo, nil)
	reviewService := NewReviewService(repo)

	cust := models.ActorContext{ActorID: "cust-1", Role: models.RoleCustomer}
	owner := models.ActorContext{ActorID: "owner-1", Role: models.RoleShop}

	// Build the cart.
	order, err := orderService.AddItem(ctx, models.OrderItem{
		Food:      models.Food{ID: "food-1", Name: "Pho bo", Price: 50000, ShopID: "shop-1"},
		BasePrice: 50000,
		Options:   []models.Option{{Name: "size", Value: "XL", PriceDiff: 10000}},
		Quantity:  2,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCreating, order.Status)
	assert.Equal(t, float64(120000), order.TotalAmount)

	order, err = orderService.AddItem(ctx, models.OrderItem{
		Food:      models.Food{ID: "food-2", Name: "Tra da", Price: 5000, ShopID: "shop-1"},
		BasePrice: 5000,
		Quantity:  1,
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 2)
	assert.Equal(t, float64(125000), order.TotalAmount)

	// The in-memory backend does not know the owners; stamp them the way
	// the real backend would have.
	order.CustomerID = cust.ActorID
	order.Shop.UserID = owner.ActorID

	note := "extra herbs"
	order, err = orderService.UpdateOrder(ctx, order, cust, repositories.OrderUpdate{Note: &note})
	require.NoError(t, err)
	assert.Equal(t, note, order.Note)
	order.CustomerID = cust.ActorID
	order.Shop.UserID = owner.ActorID

	// Customer places, shop works the order to delivered.
	steps := []struct {
		actor  models.ActorContext
		target models.OrderStatus
	}{
		{cust, models.StatusPlaced},
		{owner, models.StatusPreparing},
		{owner, models.StatusDelivering},
		{owner, models.StatusDelivered},
		{cust, models.StatusReceived},
	}
	for _, step := range steps {
		order, err = orderService.RequestTransition(ctx, order, step.actor, step.target)
		require.NoErrorf(t, err, "transition to %s", step.target)
		assert.Equal(t, step.target, order.Status)
		order.CustomerID = cust.ActorID
		order.Shop.UserID = owner.ActorID
	}

	assert.True(t, order.Status.Terminal())

	// Editing after placement was already impossible, and the terminal
	// order rejects everything.
	_, err = orderService.Cancel(ctx, order, cust)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	// The received order can now be rated, once.
	pending := repo.SeedReview(models.Review{
		Order: models.Order{ID: order.ID},
		Food:  models.Food{ID: "food-1"},
	})

	review, err := reviewService.Submit(ctx, pending, 5, "best pho in town")
	require.NoError(t, err)
	assert.True(t, review.Reviewed)

	_, err = reviewService.Submit(ctx, *review, 1, "changed my mind")
	var validationErr *models.ValidationError
	assert.True(t, errors.As(err, &validationErr))

	mine, err := reviewService.ReviewsForOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, 5, mine[0].Rating)
}

// TestOrderLifecycle_EditRejectedAfterPlacement checks the backend-side
// edit lock on top of the client-side one.
func TestOrderLifecycle_EditRejectedAfterPlacement(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMockOrderRepository()

	seeded := repo.Seed(models.Order{
		CustomerID: "cust-1",
		Shop:       models.Shop{ID: "shop-1", UserID: "owner-1"},
		Items:      []models.OrderItem{{BasePrice: 30000, Quantity: 1}},
		Status:     models.StatusPlaced,
	})

	note := "too late"
	_, err := repo.Update(ctx, seeded.ID, repositories.OrderUpdate{Note: &note})

	var remoteErr *models.RemoteError
	assert.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, 400, remoteErr.StatusCode)
}
