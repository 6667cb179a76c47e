package cart

import (
	"testing"

	"pizzeria-system/internal/models"
)

func TestTotals(t *testing.T) {
	calc := NewCalculator(0.10, 3.50)

	lines := []models.CartLineItem{
		{Name: "Classic Pizza", Price: 17.00, Quantity: 1, TotalPrice: 17.00},
		{Name: "Garlic Bread", Price: 4.50, Quantity: 2, TotalPrice: 9.00},
	}

	tests := []struct {
		name      string
		orderType models.OrderType
		want      Totals
	}{
		{
			name:      "takeout skips delivery fee",
			orderType: models.Takeout,
			want:      Totals{Subtotal: 26.00, Tax: 2.60, DeliveryFee: 0, Total: 28.60},
		},
		{
			name:      "dine in skips delivery fee",
			orderType: models.DineIn,
			want:      Totals{Subtotal: 26.00, Tax: 2.60, DeliveryFee: 0, Total: 28.60},
		},
		{
			name:      "delivery adds fee",
			orderType: models.Delivery,
			want:      Totals{Subtotal: 26.00, Tax: 2.60, DeliveryFee: 3.50, Total: 32.10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.Totals(lines, tt.orderType)
			if got != tt.want {
				t.Errorf("Totals() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTotalsEmptyCart(t *testing.T) {
	calc := NewCalculator(0.10, 3.50)

	got := calc.Totals(nil, models.Takeout)
	if got.Subtotal != 0 || got.Tax != 0 || got.Total != 0 {
		t.Errorf("expected zero totals for empty cart, got %+v", got)
	}
}

func TestTotalsRounding(t *testing.T) {
	calc := NewCalculator(0.0875, 0)

	lines := []models.CartLineItem{
		{Name: "Wings", Price: 10.99, Quantity: 1, TotalPrice: 10.99},
	}

	got := calc.Totals(lines, models.Takeout)
	// 10.99 * 0.0875 = 0.961625, rounds to 0.96
	if got.Tax != 0.96 {
		t.Errorf("Tax = %v, want 0.96", got.Tax)
	}
	if got.Total != 11.95 {
		t.Errorf("Total = %v, want 11.95", got.Total)
	}
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		quantity int
		want     float64
	}{
		{"single item", 17.00, 1, 17.00},
		{"multiple items", 4.50, 3, 13.50},
		{"fractional price", 10.99, 2, 21.98},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineTotal(tt.price, tt.quantity); got != tt.want {
				t.Errorf("LineTotal(%v, %d) = %v, want %v", tt.price, tt.quantity, got, tt.want)
			}
		})
	}
}
