// Package pricing holds the pure money math for orders. Every function
// is deterministic and side-effect free so callers can recompute totals
// at will without touching remote state.
package pricing

import (
	"math"

	"quanan/internal/models"
)

// LineTotal computes the price of one order line:
// (basePrice + sum of option price deltas) * quantity.
// A quantity below 1 is clamped to 1 rather than rejected; decrementing
// past the minimum is a no-op in the UI, not an error.
func LineTotal(basePrice float64, options []models.Option, quantity int) float64 {
	if quantity < 1 {
		quantity = 1
	}
	total := basePrice
	for _, opt := range options {
		total += opt.PriceDiff
	}
	return total * float64(quantity)
}

// ItemTotal computes the line total of an order item from its snapshot
// base price.
func ItemTotal(item models.OrderItem) float64 {
	return LineTotal(item.BasePrice, item.Options, item.Quantity)
}

// OrderTotal sums the line totals of all items. An order's TotalAmount
// must always equal this value.
func OrderTotal(items []models.OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += ItemTotal(item)
	}
	return total
}

// DiscountPercent computes the rounded discount badge percentage for a
// food, dividing by the original price. It returns 0 when there is no
// real discount or the catalog row is malformed (original <= 0), so bad
// data renders as "no discount" instead of a junk percentage.
func DiscountPercent(originalPrice, price float64) int {
	if originalPrice <= 0 || originalPrice <= price {
		return 0
	}
	return int(math.Round((originalPrice - price) / originalPrice * 100))
}
