package models

import (
	"testing"
	"time"
)

func TestTicketRoutingKey(t *testing.T) {
	if got := TicketRoutingKey(CategoryPizza, 10); got != "kitchen.pizza.10" {
		t.Errorf("TicketRoutingKey() = %q, want kitchen.pizza.10", got)
	}
	if got := TicketRoutingKey(CategoryOther, 1); got != "kitchen.other.1" {
		t.Errorf("TicketRoutingKey() = %q, want kitchen.other.1", got)
	}
}

func TestDominantCategory(t *testing.T) {
	tests := []struct {
		name       string
		categories []Category
		want       Category
	}{
		{"empty defaults to other", nil, CategoryOther},
		{"pizza wins over everything", []Category{CategoryOther, CategoryWings, CategoryPizza}, CategoryPizza},
		{"wings beat other", []Category{CategoryOther, CategoryWings}, CategoryWings},
		{"other only", []Category{CategoryOther, CategoryOther}, CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DominantCategory(tt.categories); got != tt.want {
				t.Errorf("DominantCategory() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetPrepTime(t *testing.T) {
	if got := GetPrepTime(CategoryPizza); got != 12*time.Minute {
		t.Errorf("GetPrepTime(pizza) = %v, want 12m", got)
	}
	if got := GetPrepTime(CategoryWings); got != 10*time.Minute {
		t.Errorf("GetPrepTime(wings) = %v, want 10m", got)
	}
	if got := GetPrepTime(CategoryOther); got != 5*time.Minute {
		t.Errorf("GetPrepTime(other) = %v, want 5m", got)
	}
}

func TestResolveSizeTier(t *testing.T) {
	tests := []struct {
		name string
		want SizeTier
	}{
		{"Small", TierSmall},
		{"Medium", TierMedium},
		{"Large", TierLarge},
		{"Gluten Free Medium", TierGlutenFree},
		{"Family", TierMedium},
	}

	for _, tt := range tests {
		if got := ResolveSizeTier(tt.name); got != tt.want {
			t.Errorf("ResolveSizeTier(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
