package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"quanan/internal/config"
	"quanan/internal/models"
	"quanan/internal/repositories"
	"quanan/internal/services"
	"quanan/pkg/apiclient"
	"quanan/pkg/rabbitmq"
)

// main wires the order domain against the remote backend and prints an
// order overview for the configured session. It is the headless entry
// point; the mobile screens consume the same services.
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg := config.Load()

	// The session is the HTTP client's token source and the auth
	// repository needs that client, so the session is built first and
	// the repository attached afterwards.
	session := services.NewSessionService()
	client, err := apiclient.New(cfg.APIBaseURL, cfg.HTTPTimeout, session)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build API client")
	}
	session.SetAuthRepository(repositories.NewHTTPAuthRepository(client))

	// The refresh-signal publisher is optional; without a broker the
	// module still works, consumers just have to poll.
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ unavailable, refresh events disabled")
		} else {
			defer mqClient.Close()
			events = mqClient
		}
	}

	orderRepo := repositories.NewHTTPOrderRepository(client)
	catalogRepo := repositories.NewHTTPCatalogRepository(client)

	orderService := services.NewOrderService(orderRepo, events)
	reviewService := services.NewReviewService(orderRepo)
	catalogService := services.NewCatalogService(catalogRepo, catalogRepo.Categories(), catalogRepo)

	if cfg.AccessToken == "" {
		log.Info().Msg("no ACCESS_TOKEN configured; set one to fetch the order overview")
		return
	}
	actor, err := session.Seed(cfg.AccessToken)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed session from ACCESS_TOKEN")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout)
	defer cancel()

	printOverview(ctx, *actor, orderService, reviewService, catalogService)
}

func printOverview(ctx context.Context, actor models.ActorContext, orders *services.OrderService, reviews *services.ReviewService, catalog *services.CatalogService) {
	counts, err := orders.StatusCounts(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to fetch orders")
	}
	for status, count := range counts {
		log.Info().Str("status", status.String()).Int("orders", count).Msg("status tab")
	}

	list, err := orders.ListOrders(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to fetch orders")
	}
	for i := range list {
		order := &list[i]
		caps := orders.Capabilities(order, actor)
		log.Info().
			Str("order_id", order.ID).
			Str("status", order.Status.String()).
			Float64("total", order.TotalAmount).
			Bool("can_place", caps.CanPlace).
			Bool("can_cancel", caps.CanCancel).
			Bool("can_receive", caps.CanReceive).
			Bool("can_rate", caps.CanRate).
			Msg("order")
	}

	if actor.Role == models.RoleCustomer {
		myReviews, err := reviews.MyReviews(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("failed to fetch reviews")
		} else {
			log.Info().Int("reviews", len(myReviews)).Msg("review entities")
		}
	}

	topSelling, err := catalog.TopSellingFoods(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to fetch top-selling foods")
		return
	}
	for _, food := range topSelling {
		log.Info().
			Str("food", food.Name).
			Float64("price", food.Price).
			Int("discount_percent", catalog.DiscountFor(food)).
			Msg("top seller")
	}
}
