package pricing

import "pizzeria-system/internal/models"

// Policy is the pricing-policy table: every business constant the
// engine charges with. Surfaces share one engine and one policy; the
// legacy hard-coded values live in DefaultPolicy and must be preserved
// for parity with historical orders.
type Policy struct {
	// GlutenFreeSurcharge is added once when the selected crust is a
	// gluten-free crust.
	GlutenFreeSurcharge float64

	// CheeseRate is the per-tier charge for extra default cheese or a
	// non-default cheese selection.
	CheeseRate map[models.SizeTier]float64

	// ExtraToppingRate is the per-tier charge for one extra topping at
	// regular quantity, and for upgrading a default topping to extra.
	ExtraToppingRate map[models.SizeTier]float64

	// DairyFreeSurcharge is the per-tier charge for dairy-free cheese.
	DairyFreeSurcharge map[models.SizeTier]float64

	// ExtraQuantityMultiplier scales the extra-topping rate when an
	// extra topping itself is upgraded to extra quantity.
	ExtraQuantityMultiplier float64
}

// DefaultPolicy returns the production pricing constants.
func DefaultPolicy() Policy {
	return Policy{
		GlutenFreeSurcharge: 2.50,
		CheeseRate: map[models.SizeTier]float64{
			models.TierSmall:      2.0,
			models.TierMedium:     2.5,
			models.TierGlutenFree: 2.5,
			models.TierLarge:      3.0,
		},
		ExtraToppingRate: map[models.SizeTier]float64{
			models.TierSmall:      2.0,
			models.TierMedium:     2.5,
			models.TierGlutenFree: 2.5,
			models.TierLarge:      3.0,
		},
		DairyFreeSurcharge: map[models.SizeTier]float64{
			models.TierSmall:      2.0,
			models.TierMedium:     3.0,
			models.TierGlutenFree: 3.0,
			models.TierLarge:      3.0,
		},
		ExtraQuantityMultiplier: 1.5,
	}
}

// CheeseRateFor returns the cheese surcharge for a size tier
func (p Policy) CheeseRateFor(tier models.SizeTier) float64 {
	return p.CheeseRate[tier]
}

// ExtraToppingRateFor returns the extra-topping rate for a size tier
func (p Policy) ExtraToppingRateFor(tier models.SizeTier) float64 {
	return p.ExtraToppingRate[tier]
}

// DairyFreeSurchargeFor returns the dairy-free cheese surcharge for a size tier
func (p Policy) DairyFreeSurchargeFor(tier models.SizeTier) float64 {
	return p.DairyFreeSurcharge[tier]
}
