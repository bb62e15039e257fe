package repositories

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quanan/internal/models"
	"quanan/pkg/apiclient"
)

// staticToken is a fixed-token TokenSource for tests.
type staticToken string

func (s staticToken) Token() string { return string(s) }

// startBackend boots a fiber app standing in for the remote API on a
// random local port and returns its base URL.
func startBackend(t *testing.T, setup func(api fiber.Router)) string {
	t.Helper()

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	setup(app.Group("/api"))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() {
		_ = app.Listener(ln)
	}()
	t.Cleanup(func() {
		_ = app.Shutdown()
	})

	// Give the listener goroutine a moment to start serving.
	time.Sleep(100 * time.Millisecond)

	return "http://" + ln.Addr().String() + "/api"
}

func newTestClient(t *testing.T, baseURL string) *apiclient.Client {
	t.Helper()
	client, err := apiclient.New(baseURL, 5*time.Second, staticToken("test-token"))
	require.NoError(t, err)
	return client
}

func TestHTTPOrderRepository_UpdateStatusByCustomer(t *testing.T) {
	var gotAuth, gotIdempotency string

	baseURL := startBackend(t, func(api fiber.Router) {
		api.Post("/orders/:id/update_status_by_customer", func(c *fiber.Ctx) error {
			gotAuth = c.Get("Authorization")
			gotIdempotency = c.Get("Idempotency-Key")

			var body struct {
				Status models.OrderStatus `json:"status"`
			}
			if err := c.BodyParser(&body); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "bad body"})
			}
			return c.JSON(models.Order{
				ID:     c.Params("id"),
				Status: body.Status,
			})
		})
	})

	repo := NewHTTPOrderRepository(newTestClient(t, baseURL))

	order, err := repo.UpdateStatusByCustomer(context.Background(), "order-1", models.StatusPlaced, "key-123")

	assert.NoError(t, err)
	assert.Equal(t, "order-1", order.ID)
	assert.Equal(t, models.StatusPlaced, order.Status)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "key-123", gotIdempotency)
}

func TestHTTPOrderRepository_UpdateStatusByShop_RemoteError(t *testing.T) {
	baseURL := startBackend(t, func(api fiber.Router) {
		api.Post("/orders/:id/update_status_by_shop", func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "order already cancelled",
			})
		})
	})

	repo := NewHTTPOrderRepository(newTestClient(t, baseURL))

	order, err := repo.UpdateStatusByShop(context.Background(), "order-1", models.StatusPreparing, "key-456")

	assert.Nil(t, order)
	var remoteErr *models.RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, fiber.StatusBadRequest, remoteErr.StatusCode)
	assert.Equal(t, "order already cancelled", remoteErr.Message)
}

func TestHTTPOrderRepository_List(t *testing.T) {
	baseURL := startBackend(t, func(api fiber.Router) {
		api.Get("/orders", func(c *fiber.Ctx) error {
			return c.JSON([]models.Order{
				{
					ID:          "order-1",
					CustomerID:  "cust-1",
					Status:      models.StatusPlaced,
					TotalAmount: 110000,
					Items: []models.OrderItem{
						{
							Food:      models.Food{ID: "food-1", Name: "Pho bo", Price: 50000},
							BasePrice: 50000,
							Options:   []models.Option{{Name: "size", Value: "XL", PriceDiff: 5000}},
							Quantity:  2,
						},
					},
				},
				{ID: "order-2", CustomerID: "cust-1", Status: models.StatusReceived},
			})
		})
	})

	repo := NewHTTPOrderRepository(newTestClient(t, baseURL))

	orders, err := repo.List(context.Background())

	assert.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, models.StatusPlaced, orders[0].Status)
	assert.Equal(t, "Pho bo", orders[0].Items[0].Food.Name)
	assert.Equal(t, float64(5000), orders[0].Items[0].Options[0].PriceDiff)
	assert.Equal(t, models.StatusReceived, orders[1].Status)
}

func TestHTTPOrderRepository_Timeout(t *testing.T) {
	baseURL := startBackend(t, func(api fiber.Router) {
		api.Post("/orders/:id/update_status_by_customer", func(c *fiber.Ctx) error {
			time.Sleep(500 * time.Millisecond)
			return c.JSON(models.Order{ID: c.Params("id")})
		})
	})

	repo := NewHTTPOrderRepository(newTestClient(t, baseURL))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	order, err := repo.UpdateStatusByCustomer(ctx, "order-1", models.StatusPlaced, "key-789")

	assert.Nil(t, order)
	assert.ErrorIs(t, err, models.ErrTimeout)
}

func TestHTTPOrderRepository_SubmitReview(t *testing.T) {
	baseURL := startBackend(t, func(api fiber.Router) {
		api.Put("/reviews/:id", func(c *fiber.Ctx) error {
			var body struct {
				Rating  int    `json:"rating"`
				Comment string `json:"comment"`
			}
			if err := c.BodyParser(&body); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "bad body"})
			}
			return c.JSON(models.Review{
				ID:       c.Params("id"),
				Rating:   body.Rating,
				Comment:  body.Comment,
				Reviewed: true,
			})
		})
	})

	repo := NewHTTPOrderRepository(newTestClient(t, baseURL))

	review, err := repo.Submit(context.Background(), "review-1", 5, "great")

	assert.NoError(t, err)
	assert.True(t, review.Reviewed)
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, "great", review.Comment)
}

func TestHTTPOrderRepository_ListMine(t *testing.T) {
	baseURL := startBackend(t, func(api fiber.Router) {
		api.Get("/reviews/my-reviews", func(c *fiber.Ctx) error {
			return c.JSON([]models.Review{
				{ID: "r1", Order: models.Order{ID: "order-1"}},
				{ID: "r2", Order: models.Order{ID: "order-2"}, Reviewed: true},
			})
		})
	})

	repo := NewHTTPOrderRepository(newTestClient(t, baseURL))

	reviews, err := repo.ListMine(context.Background())

	assert.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "order-1", reviews[0].Order.ID)
	assert.True(t, reviews[1].Reviewed)
}

func TestHTTPCatalogRepository_ListWithQuery(t *testing.T) {
	var gotCategory, gotShop string

	baseURL := startBackend(t, func(api fiber.Router) {
		api.Get("/foods", func(c *fiber.Ctx) error {
			gotCategory = c.Query("categoryId")
			gotShop = c.Query("shopId")
			return c.JSON([]models.Food{
				{ID: "food-1", Name: "Pho bo", Price: 50000, CategoryID: gotCategory, ShopID: gotShop},
			})
		})
	})

	repo := NewHTTPCatalogRepository(newTestClient(t, baseURL))

	foods, err := repo.List(context.Background(), "categoryId=cat-1&shopId=shop-1")

	assert.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, "cat-1", gotCategory)
	assert.Equal(t, "shop-1", gotShop)
}

func TestHTTPCatalogRepository_TopSelling(t *testing.T) {
	baseURL := startBackend(t, func(api fiber.Router) {
		api.Get("/foods/top-selling", func(c *fiber.Ctx) error {
			return c.JSON([]models.Food{
				{ID: "food-1", Name: "Com tam", Price: 35000, OriginalPrice: 50000, SoldCount: 120},
			})
		})
		api.Get("/categories", func(c *fiber.Ctx) error {
			return c.JSON([]models.Category{{ID: "cat-1", Name: "Rice"}})
		})
	})

	repo := NewHTTPCatalogRepository(newTestClient(t, baseURL))

	foods, err := repo.TopSelling(context.Background())
	assert.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, 120, foods[0].SoldCount)

	categories, err := repo.Categories().List(context.Background())
	assert.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Rice", categories[0].Name)
}
