package repositories

import (
	"context"

	"quanan/internal/models"
)

// FoodRepository defines the adapter contract to the food catalog API.
type FoodRepository interface {
	// List returns foods matching the given raw query string
	// (e.g. "categoryId=...&shopId=..."); empty lists everything.
	List(ctx context.Context, query string) ([]models.Food, error)
	// TopSelling returns the backend's top-selling foods.
	TopSelling(ctx context.Context) ([]models.Food, error)
	Create(ctx context.Context, food *models.Food) (*models.Food, error)
	Update(ctx context.Context, id string, food *models.Food) (*models.Food, error)
	Delete(ctx context.Context, id string) error
}

// CategoryRepository defines the adapter contract to the category API.
type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
}

// ShopRepository defines the adapter contract to the shop API.
type ShopRepository interface {
	Register(ctx context.Context, shop *models.Shop) (*models.Shop, error)
}

// UserRepository defines the adapter contract to the user API.
type UserRepository interface {
	// Me returns the profile of the authenticated user.
	Me(ctx context.Context) (*models.User, error)
}
