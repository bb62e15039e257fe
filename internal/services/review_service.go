package services

import (
	"context"
	"fmt"

	"quanan/internal/models"
	"quanan/internal/repositories"

	"github.com/rs/zerolog/log"
)

// ReviewService handles rating submission for received orders. The
// backend creates one pending review per food when an order reaches
// the received status; the client only fills them in.
type ReviewService struct {
	reviewRepo repositories.ReviewRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviewRepo repositories.ReviewRepository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
	}
}

// Submit fills in the pending review with a rating and optional
// comment. An already-submitted review is immutable and rejected
// client-side without a network call.
func (s *ReviewService) Submit(ctx context.Context, review models.Review, rating int, comment string) (*models.Review, error) {
	if review.Reviewed {
		return nil, &models.ValidationError{Message: "review was already submitted"}
	}
	if rating < 1 || rating > 5 {
		return nil, &models.ValidationError{Message: fmt.Sprintf("rating must be between 1 and 5, got %d", rating)}
	}

	submitted, err := s.reviewRepo.Submit(ctx, review.ID, rating, comment)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("review_id", submitted.ID).
		Int("rating", rating).
		Msg("review submitted")
	return submitted, nil
}

// MyReviews retrieves all of the customer's review entities.
func (s *ReviewService) MyReviews(ctx context.Context) ([]models.Review, error) {
	return s.reviewRepo.ListMine(ctx)
}

// ReviewsForOrder returns the customer's reviews belonging to one
// order. The backend has no per-order review endpoint, so this filters
// the my-reviews listing client-side.
func (s *ReviewService) ReviewsForOrder(ctx context.Context, orderID string) ([]models.Review, error) {
	reviews, err := s.reviewRepo.ListMine(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]models.Review, 0, len(reviews))
	for _, review := range reviews {
		if review.Order.ID == orderID {
			matched = append(matched, review)
		}
	}
	return matched, nil
}
