package repositories

import (
	"context"
	"fmt"

	"quanan/internal/models"
	"quanan/pkg/apiclient"
)

// HTTPCatalogRepository implements FoodRepository, CategoryRepository,
// ShopRepository and UserRepository against the backend REST API.
type HTTPCatalogRepository struct {
	client *apiclient.Client
}

// NewHTTPCatalogRepository creates a new instance of HTTPCatalogRepository.
func NewHTTPCatalogRepository(client *apiclient.Client) *HTTPCatalogRepository {
	return &HTTPCatalogRepository{
		client: client,
	}
}

// List retrieves foods, optionally filtered by a raw query string.
func (r *HTTPCatalogRepository) List(ctx context.Context, query string) ([]models.Food, error) {
	path := "/foods"
	if query != "" {
		path += "?" + query
	}
	var foods []models.Food
	if err := r.client.Get(ctx, path, &foods); err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	return foods, nil
}

// TopSelling retrieves the backend's top-selling foods.
func (r *HTTPCatalogRepository) TopSelling(ctx context.Context) ([]models.Food, error) {
	var foods []models.Food
	if err := r.client.Get(ctx, "/foods/top-selling", &foods); err != nil {
		return nil, fmt.Errorf("list top-selling foods: %w", err)
	}
	return foods, nil
}

// Create adds a food to the shop's menu.
func (r *HTTPCatalogRepository) Create(ctx context.Context, food *models.Food) (*models.Food, error) {
	var created models.Food
	if err := r.client.Post(ctx, "/foods", food, &created, nil); err != nil {
		return nil, fmt.Errorf("create food: %w", err)
	}
	return &created, nil
}

// Update modifies an existing food.
func (r *HTTPCatalogRepository) Update(ctx context.Context, id string, food *models.Food) (*models.Food, error) {
	var updated models.Food
	if err := r.client.Put(ctx, "/foods/"+id, food, &updated); err != nil {
		return nil, fmt.Errorf("update food %s: %w", id, err)
	}
	return &updated, nil
}

// Delete removes a food from the shop's menu.
func (r *HTTPCatalogRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, "/foods/"+id); err != nil {
		return fmt.Errorf("delete food %s: %w", id, err)
	}
	return nil
}

// ListCategories retrieves all categories.
func (r *HTTPCatalogRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.client.Get(ctx, "/categories", &categories); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Register registers a new shop for the authenticated user.
func (r *HTTPCatalogRepository) Register(ctx context.Context, shop *models.Shop) (*models.Shop, error) {
	var registered models.Shop
	if err := r.client.Post(ctx, "/shops/register", shop, &registered, nil); err != nil {
		return nil, fmt.Errorf("register shop: %w", err)
	}
	return &registered, nil
}

// Me retrieves the authenticated user's profile.
func (r *HTTPCatalogRepository) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := r.client.Get(ctx, "/users/me", &user); err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	return &user, nil
}

// categoryLister adapts HTTPCatalogRepository to CategoryRepository.
type categoryLister struct {
	repo *HTTPCatalogRepository
}

func (c categoryLister) List(ctx context.Context) ([]models.Category, error) {
	return c.repo.ListCategories(ctx)
}

// Categories returns the repository viewed as a CategoryRepository.
func (r *HTTPCatalogRepository) Categories() CategoryRepository {
	return categoryLister{repo: r}
}
