package pricing

import (
	"math"

	"pizzeria-system/internal/models"
)

// Price computes the all-inclusive unit price of the pizza under the
// current selection. Pure function of the session state; returns 0
// until a size is selected.
//
// The charge order mirrors the legacy engine: size base, gluten crust
// surcharge, cheese, sauce, default-topping upgrades, extra toppings,
// manual extra amount.
func (s *Session) Price() float64 {
	if s.size == nil {
		return 0
	}

	price := s.size.Price
	tier := s.size.Tier

	if s.crust != nil && s.crust.IsGlutenFree() {
		price += s.policy.GlutenFreeSurcharge
	}

	price += s.cheeseCharge(tier)
	price += s.sauceCharge()

	for _, t := range s.defaultToppings {
		if t.Quantity == models.QuantityExtra {
			price += s.policy.ExtraToppingRateFor(tier)
		}
	}

	for _, t := range s.extraToppings {
		price += t.Price
	}

	price += s.extraAmount
	if price < 0 {
		price = 0
	}
	return roundToCents(price)
}

// cheeseCharge computes the cheese contribution. The default cheese at
// regular or less quantity is free; dairy free carries its own
// surcharge; no cheese never charges; any other cheese, or the default
// at extra quantity, charges the tier cheese rate once.
func (s *Session) cheeseCharge(tier models.SizeTier) float64 {
	switch s.cheese {
	case "", CheeseNone:
		return 0
	case CheeseDairyFree:
		return s.policy.DairyFreeSurchargeFor(tier)
	case s.opts.DefaultCheeseName():
		if s.cheeseQty == models.CheeseExtra {
			return s.policy.CheeseRateFor(tier)
		}
		return 0
	default:
		return s.policy.CheeseRateFor(tier)
	}
}

// sauceCharge computes the sauce contribution. A non-default sauce
// charges its listed price once; extra quantity charges the price one
// more time on any sauce, so a non-default sauce at extra quantity
// costs double while a default sauce at extra costs its price once.
func (s *Session) sauceCharge() float64 {
	if s.sauceID == "" {
		return 0
	}
	sauce, ok := s.opts.SauceByID(s.sauceID)
	if !ok {
		return 0
	}

	charge := 0.0
	if !s.opts.IsDefaultSauce(s.sauceID) {
		charge += sauce.Price
	}
	if s.sauceQty == models.SauceExtra {
		charge += sauce.Price
	}
	return charge
}

// roundToCents keeps float arithmetic from leaking sub-cent residue
// into persisted prices
func roundToCents(v float64) float64 {
	return math.Round(v*100) / 100
}
