package pricing

import (
	"testing"

	"quanan/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name      string
		basePrice float64
		options   []models.Option
		quantity  int
		expected  float64
	}{
		{
			name:      "base price only",
			basePrice: 45000,
			quantity:  1,
			expected:  45000,
		},
		{
			name:      "options with surcharge and discount",
			basePrice: 50000,
			options: []models.Option{
				{Name: "size", Value: "XL", PriceDiff: 10000},
				{Name: "combo", Value: "no drink", PriceDiff: -5000},
			},
			quantity: 2,
			expected: 110000,
		},
		{
			name:      "quantity zero clamps to one",
			basePrice: 30000,
			quantity:  0,
			expected:  30000,
		},
		{
			name:      "negative quantity clamps to one",
			basePrice: 30000,
			options:   []models.Option{{Name: "size", PriceDiff: 5000}},
			quantity:  -3,
			expected:  35000,
		},
		{
			name:      "zero-diff options do not change the total",
			basePrice: 20000,
			options: []models.Option{
				{Name: "spice", Value: "medium"},
				{Name: "cutlery", Value: "yes"},
			},
			quantity: 3,
			expected: 60000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LineTotal(tt.basePrice, tt.options, tt.quantity))
		})
	}
}

func TestLineTotal_Deterministic(t *testing.T) {
	options := []models.Option{
		{Name: "size", Value: "L", PriceDiff: 7000},
		{Name: "topping", Value: "cheese", PriceDiff: 8000},
	}

	first := LineTotal(55000, options, 4)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, LineTotal(55000, options, 4))
	}
}

func TestOrderTotal(t *testing.T) {
	items := []models.OrderItem{
		{
			BasePrice: 50000,
			Options:   []models.Option{{Name: "size", Value: "XL", PriceDiff: 10000}},
			Quantity:  2,
		},
		{
			BasePrice: 25000,
			Quantity:  1,
		},
	}

	assert.Equal(t, float64(145000), OrderTotal(items))
	assert.Equal(t, float64(0), OrderTotal(nil))
}

func TestItemTotal_UsesSnapshotPrice(t *testing.T) {
	// The catalog price changed after the item was added; the line total
	// must keep using the snapshot.
	item := models.OrderItem{
		Food:      models.Food{Price: 99000},
		BasePrice: 40000,
		Quantity:  2,
	}
	assert.Equal(t, float64(80000), ItemTotal(item))
}

func TestDiscountPercent(t *testing.T) {
	tests := []struct {
		name     string
		original float64
		price    float64
		expected int
	}{
		{"half price", 100000, 50000, 50},
		{"rounded up", 30000, 20000, 33},
		{"no discount when equal", 40000, 40000, 0},
		{"no discount when price above original", 40000, 45000, 0},
		{"zero original is malformed", 0, 25000, 0},
		{"negative original is malformed", -10000, 5000, 0},
		{"full discount", 20000, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DiscountPercent(tt.original, tt.price))
		})
	}
}
