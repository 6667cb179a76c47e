package cart

import (
	"math"

	"pizzeria-system/internal/models"
)

// Totals is the order-level money breakdown
type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	Tax         float64 `json:"tax"`
	DeliveryFee float64 `json:"delivery_fee"`
	Total       float64 `json:"total_amount"`
}

// Calculator computes order-level totals from priced line items.
// Per-pizza pricing happens in the customization engine; the calculator
// only aggregates.
type Calculator struct {
	taxRate     float64
	deliveryFee float64
}

// NewCalculator creates a totals calculator
func NewCalculator(taxRate, deliveryFee float64) *Calculator {
	return &Calculator{
		taxRate:     taxRate,
		deliveryFee: deliveryFee,
	}
}

// Totals aggregates line items into a money breakdown. The delivery fee
// is only charged for delivery orders.
func (c *Calculator) Totals(lines []models.CartLineItem, orderType models.OrderType) Totals {
	var subtotal float64
	for _, line := range lines {
		subtotal += line.TotalPrice
	}
	subtotal = roundToCents(subtotal)

	tax := roundToCents(subtotal * c.taxRate)

	var fee float64
	if orderType == models.Delivery {
		fee = c.deliveryFee
	}

	return Totals{
		Subtotal:    subtotal,
		Tax:         tax,
		DeliveryFee: fee,
		Total:       roundToCents(subtotal + tax + fee),
	}
}

// LineTotal computes the total for one line
func LineTotal(price float64, quantity int) float64 {
	return roundToCents(price * float64(quantity))
}

func roundToCents(v float64) float64 {
	return math.Round(v*100) / 100
}
