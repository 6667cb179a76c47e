package pricing

import (
	"testing"

	"pizzeria-system/internal/models"
)

func TestPriceBaseSizeOnly(t *testing.T) {
	tests := []struct {
		sizeID string
		want   float64
	}{
		{"size-s", 9.00},
		{"size-m", 12.00},
		{"size-l", 16.00},
	}
	for _, tt := range tests {
		s := newTestSession(t, tt.sizeID)
		if got := s.Price(); got != tt.want {
			t.Errorf("Price() for %s = %.2f, want %.2f", tt.sizeID, got, tt.want)
		}
	}
}

func TestPriceRequiresSize(t *testing.T) {
	s := NewSession(testOptions(), ModeCustomer, DefaultPolicy())
	if got := s.Price(); got != 0 {
		t.Errorf("Price() without size = %.2f, want 0", got)
	}
	if s.CanAddToOrder() {
		t.Error("CanAddToOrder() should be false without size and crust")
	}
}

func TestDefaultCheeseIsFree(t *testing.T) {
	for _, sizeID := range []string{"size-s", "size-m", "size-l"} {
		s := newTestSession(t, sizeID)
		base := s.Price()
		if err := s.SelectCheese("Mozzarella"); err != nil {
			t.Fatalf("SelectCheese returned error: %v", err)
		}
		if got := s.Price(); got != base {
			t.Errorf("default cheese at regular quantity changed price for %s: %.2f -> %.2f", sizeID, base, got)
		}
	}
}

func TestCheesePricing(t *testing.T) {
	tests := []struct {
		name   string
		sizeID string
		cheese string
		qty    models.CheeseQuantity
		want   float64
	}{
		{"extra mozzarella small", "size-s", "Mozzarella", models.CheeseExtra, 9.00 + 2.0},
		{"extra mozzarella medium", "size-m", "Mozzarella", models.CheeseExtra, 12.00 + 2.5},
		{"extra mozzarella large", "size-l", "Mozzarella", models.CheeseExtra, 16.00 + 3.0},
		{"dairy free small", "size-s", CheeseDairyFree, models.CheeseRegular, 9.00 + 2.0},
		{"dairy free medium", "size-m", CheeseDairyFree, models.CheeseRegular, 12.00 + 3.0},
		{"dairy free large", "size-l", CheeseDairyFree, models.CheeseRegular, 16.00 + 3.0},
		{"no cheese", "size-m", CheeseNone, models.CheeseRegular, 12.00},
		{"non-default cheese", "size-m", "Feta", models.CheeseRegular, 12.00 + 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, tt.sizeID)
			if err := s.SelectCheese(tt.cheese); err != nil {
				t.Fatalf("SelectCheese returned error: %v", err)
			}
			if err := s.SetCheeseQuantity(tt.qty); err != nil {
				t.Fatalf("SetCheeseQuantity returned error: %v", err)
			}
			if got := s.Price(); got != tt.want {
				t.Errorf("Price() = %.2f, want %.2f", got, tt.want)
			}
		})
	}
}

func TestGlutenFreeCrustSurcharge(t *testing.T) {
	s := newTestSession(t, "size-m")
	if err := s.SelectCrust("crust-gf"); err != nil {
		t.Fatalf("SelectCrust returned error: %v", err)
	}
	if got, want := s.Price(), 12.00+2.50; got != want {
		t.Errorf("Price() with gluten-free crust = %.2f, want %.2f", got, want)
	}
}

func TestGlutenFreeCrustFilteredOutsideMedium(t *testing.T) {
	for _, sizeID := range []string{"size-s", "size-l"} {
		s := NewSession(testOptions(), ModeCustomer, DefaultPolicy())
		if err := s.SelectSize(sizeID); err != nil {
			t.Fatalf("SelectSize returned error: %v", err)
		}
		for _, crust := range s.AvailableCrusts() {
			if crust.IsGlutenFree() {
				t.Errorf("gluten-free crust offered for size %s", sizeID)
			}
		}
		if err := s.SelectCrust("crust-gf"); err == nil {
			t.Errorf("SelectCrust(crust-gf) succeeded for size %s, want error", sizeID)
		}
	}
}

func TestDefaultSauceIdempotence(t *testing.T) {
	s := newTestSession(t, "size-m")
	base := s.Price()
	if err := s.SelectSauce("sauce-tomato"); err != nil {
		t.Fatalf("SelectSauce returned error: %v", err)
	}
	if got := s.Price(); got != base {
		t.Errorf("default sauce at regular quantity changed price: %.2f -> %.2f", base, got)
	}
}

func TestSaucePricing(t *testing.T) {
	tests := []struct {
		name    string
		sauceID string
		qty     models.SauceQuantity
		want    float64
	}{
		{"default sauce regular", "sauce-tomato", models.SauceRegular, 12.00},
		{"default sauce extra", "sauce-tomato", models.SauceExtra, 12.00 + 1.00},
		{"non-default sauce regular", "sauce-garlic", models.SauceRegular, 12.00 + 1.50},
		{"non-default sauce extra", "sauce-garlic", models.SauceExtra, 12.00 + 3.00},
		{"no sauce", "", models.SauceRegular, 12.00},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, "size-m")
			if err := s.SelectSauce(tt.sauceID); err != nil {
				t.Fatalf("SelectSauce returned error: %v", err)
			}
			if tt.sauceID != "" {
				if err := s.SetSauceQuantity(tt.qty); err != nil {
					t.Fatalf("SetSauceQuantity returned error: %v", err)
				}
			}
			if got := s.Price(); got != tt.want {
				t.Errorf("Price() = %.2f, want %.2f", got, tt.want)
			}
		})
	}
}

func TestDefaultToppingPricing(t *testing.T) {
	tests := []struct {
		name string
		qty  models.ToppingQuantity
		want float64
	}{
		{"removed is free", models.QuantityNone, 12.00},
		{"less is free", models.QuantityLess, 12.00},
		{"regular is free", models.QuantityRegular, 12.00},
		{"extra charges tier rate", models.QuantityExtra, 12.00 + 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, "size-m")
			if err := s.SetDefaultToppingQuantity("top-onion", tt.qty); err != nil {
				t.Fatalf("SetDefaultToppingQuantity returned error: %v", err)
			}
			if got := s.Price(); got != tt.want {
				t.Errorf("Price() = %.2f, want %.2f", got, tt.want)
			}
		})
	}
}

func TestExtraToppingPricing(t *testing.T) {
	s := newTestSession(t, "size-m")
	if err := s.ToggleExtraTopping("top-pepperoni"); err != nil {
		t.Fatalf("ToggleExtraTopping returned error: %v", err)
	}
	if got, want := s.Price(), 12.00+2.5; got != want {
		t.Errorf("Price() with extra topping = %.2f, want %.2f", got, want)
	}

	if err := s.SetExtraToppingQuantity("top-pepperoni", models.QuantityExtra); err != nil {
		t.Fatalf("SetExtraToppingQuantity returned error: %v", err)
	}
	if got, want := s.Price(), 12.00+3.75; got != want {
		t.Errorf("Price() with extra quantity topping = %.2f, want %.2f", got, want)
	}

	// Toggling again removes the topping and its charge
	if err := s.ToggleExtraTopping("top-pepperoni"); err != nil {
		t.Fatalf("ToggleExtraTopping returned error: %v", err)
	}
	if got := s.Price(); got != 12.00 {
		t.Errorf("Price() after removing extra topping = %.2f, want 12.00", got)
	}
}

func TestExtraQuantityMultiplier(t *testing.T) {
	for _, sizeID := range []string{"size-s", "size-m", "size-l"} {
		regular := newTestSession(t, sizeID)
		if err := regular.ToggleExtraTopping("top-pepperoni"); err != nil {
			t.Fatalf("ToggleExtraTopping returned error: %v", err)
		}
		regularDelta := regular.Price() - newTestSession(t, sizeID).Price()

		upgraded := newTestSession(t, sizeID)
		if err := upgraded.ToggleExtraTopping("top-pepperoni"); err != nil {
			t.Fatalf("ToggleExtraTopping returned error: %v", err)
		}
		if err := upgraded.SetExtraToppingQuantity("top-pepperoni", models.QuantityExtra); err != nil {
			t.Fatalf("SetExtraToppingQuantity returned error: %v", err)
		}
		upgradedDelta := upgraded.Price() - newTestSession(t, sizeID).Price()

		if upgradedDelta != 1.5*regularDelta {
			t.Errorf("size %s: extra quantity delta = %.2f, want 1.5 x %.2f", sizeID, upgradedDelta, regularDelta)
		}
	}
}

func TestExtraToppingRateMonotonicity(t *testing.T) {
	p := DefaultPolicy()
	small := p.ExtraToppingRateFor(models.TierSmall)
	medium := p.ExtraToppingRateFor(models.TierMedium)
	large := p.ExtraToppingRateFor(models.TierLarge)

	if !(small < medium) {
		t.Errorf("extra topping rate small (%.2f) should be below medium (%.2f)", small, medium)
	}
	if !(medium <= large) {
		t.Errorf("extra topping rate medium (%.2f) should not exceed large (%.2f)", medium, large)
	}
	if p.ExtraToppingRateFor(models.TierGlutenFree) != medium {
		t.Errorf("gluten-free tier should share the medium rate")
	}
}

func TestMonotonicPricing(t *testing.T) {
	s := newTestSession(t, "size-l")
	prev := s.Price()

	steps := []struct {
		name  string
		apply func() error
	}{
		{"add extra topping", func() error { return s.ToggleExtraTopping("top-pepperoni") }},
		{"upgrade topping quantity", func() error { return s.SetExtraToppingQuantity("top-pepperoni", models.QuantityExtra) }},
		{"upgrade cheese to extra", func() error { return s.SetCheeseQuantity(models.CheeseExtra) }},
		{"select non-default sauce", func() error { return s.SelectSauce("sauce-garlic") }},
		{"upgrade sauce to extra", func() error { return s.SetSauceQuantity(models.SauceExtra) }},
		{"upgrade default topping", func() error { return s.SetDefaultToppingQuantity("top-onion", models.QuantityExtra) }},
	}

	for _, step := range steps {
		if err := step.apply(); err != nil {
			t.Fatalf("%s returned error: %v", step.name, err)
		}
		got := s.Price()
		if got < prev {
			t.Errorf("%s decreased price: %.2f -> %.2f", step.name, prev, got)
		}
		prev = got
	}
}

// The worked checkout scenario: medium pizza, extra mozzarella, onion
// removed, pepperoni added, whole-pizza hot, default sauce untouched.
func TestMediumPizzaScenario(t *testing.T) {
	s := newTestSession(t, "size-m")

	if err := s.SetCheeseQuantity(models.CheeseExtra); err != nil {
		t.Fatalf("SetCheeseQuantity returned error: %v", err)
	}
	if err := s.SetDefaultToppingQuantity("top-onion", models.QuantityNone); err != nil {
		t.Fatalf("SetDefaultToppingQuantity returned error: %v", err)
	}
	if err := s.ToggleExtraTopping("top-pepperoni"); err != nil {
		t.Fatalf("ToggleExtraTopping returned error: %v", err)
	}
	if err := s.SetSpicySelection(SpicyKindHot, models.TargetWhole); err != nil {
		t.Fatalf("SetSpicySelection returned error: %v", err)
	}

	if got := s.Price(); got != 17.00 {
		t.Errorf("Price() = %.2f, want 17.00", got)
	}

	c := s.Customization()
	if c.SpicyLevel.Left != models.SpicyHot || c.SpicyLevel.Right != models.SpicyHot {
		t.Errorf("spicy level = %+v, want hot on both sides", c.SpicyLevel)
	}
	if !c.IsDefaultSauce && c.SauceID != "" {
		t.Errorf("default sauce should be marked as default")
	}
}

func TestSizeChangeReprices(t *testing.T) {
	s := newTestSession(t, "size-s")
	if err := s.ToggleExtraTopping("top-pepperoni"); err != nil {
		t.Fatalf("ToggleExtraTopping returned error: %v", err)
	}
	if got, want := s.Price(), 9.00+2.0; got != want {
		t.Fatalf("Price() on small = %.2f, want %.2f", got, want)
	}

	if err := s.SelectSize("size-l"); err != nil {
		t.Fatalf("SelectSize returned error: %v", err)
	}
	if err := s.SelectCrust("crust-original"); err != nil {
		t.Fatalf("SelectCrust returned error: %v", err)
	}
	if got, want := s.Price(), 16.00+3.0; got != want {
		t.Errorf("Price() after growing to large = %.2f, want %.2f (stale small rate kept?)", got, want)
	}
}

func TestExtraAmountPOSOnly(t *testing.T) {
	customer := newTestSession(t, "size-m")
	if err := customer.SetExtraAmount(5); err == nil {
		t.Error("SetExtraAmount should fail in customer mode")
	}

	pos := NewSession(testOptions(), ModePOS, DefaultPolicy())
	if err := pos.SelectSize("size-m"); err != nil {
		t.Fatalf("SelectSize returned error: %v", err)
	}
	if err := pos.SelectCrust("crust-original"); err != nil {
		t.Fatalf("SelectCrust returned error: %v", err)
	}
	if err := pos.SetExtraAmount(1.25); err != nil {
		t.Fatalf("SetExtraAmount returned error: %v", err)
	}
	if got, want := pos.Price(), 13.25; got != want {
		t.Errorf("Price() with extra amount = %.2f, want %.2f", got, want)
	}

	// A manual discount can never push the line below zero
	if err := pos.SetExtraAmount(-50); err != nil {
		t.Fatalf("SetExtraAmount returned error: %v", err)
	}
	if got := pos.Price(); got != 0 {
		t.Errorf("Price() with oversized discount = %.2f, want 0", got)
	}
}
