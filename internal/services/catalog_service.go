package services

import (
	"context"

	"quanan/internal/models"
	"quanan/internal/pricing"
	"quanan/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// CatalogService handles browsing and shop-side management of foods,
// categories and shops.
type CatalogService struct {
	foodRepo     repositories.FoodRepository
	categoryRepo repositories.CategoryRepository
	shopRepo     repositories.ShopRepository
	validate     *validator.Validate
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(foodRepo repositories.FoodRepository, categoryRepo repositories.CategoryRepository, shopRepo repositories.ShopRepository) *CatalogService {
	return &CatalogService{
		foodRepo:     foodRepo,
		categoryRepo: categoryRepo,
		shopRepo:     shopRepo,
		validate:     validator.New(),
	}
}

// Foods retrieves foods, optionally filtered by a raw query string.
func (s *CatalogService) Foods(ctx context.Context, query string) ([]models.Food, error) {
	return s.foodRepo.List(ctx, query)
}

// TopSellingFoods retrieves the backend's top-selling foods.
func (s *CatalogService) TopSellingFoods(ctx context.Context) ([]models.Food, error) {
	return s.foodRepo.TopSelling(ctx)
}

// CreateFood adds a food to the shop's menu.
func (s *CatalogService) CreateFood(ctx context.Context, food *models.Food) (*models.Food, error) {
	if err := s.validate.Struct(food); err != nil {
		return nil, &models.ValidationError{Message: "invalid food", Err: err}
	}
	return s.foodRepo.Create(ctx, food)
}

// UpdateFood modifies an existing food.
func (s *CatalogService) UpdateFood(ctx context.Context, id string, food *models.Food) (*models.Food, error) {
	if err := s.validate.Struct(food); err != nil {
		return nil, &models.ValidationError{Message: "invalid food", Err: err}
	}
	return s.foodRepo.Update(ctx, id, food)
}

// DeleteFood removes a food from the shop's menu.
func (s *CatalogService) DeleteFood(ctx context.Context, id string) error {
	return s.foodRepo.Delete(ctx, id)
}

// Categories retrieves all categories.
func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.List(ctx)
}

// RegisterShop registers a new shop for the authenticated user.
func (s *CatalogService) RegisterShop(ctx context.Context, shop *models.Shop) (*models.Shop, error) {
	if err := s.validate.Struct(shop); err != nil {
		return nil, &models.ValidationError{Message: "invalid shop", Err: err}
	}
	return s.shopRepo.Register(ctx, shop)
}

// DiscountFor returns the discount badge percentage for a food, 0 when
// the food has no real discount.
func (s *CatalogService) DiscountFor(food models.Food) int {
	return pricing.DiscountPercent(food.OriginalPrice, food.Price)
}
