package pricing

import "pizzeria-system/internal/models"

func fptr(v float64) *float64 { return &v }

// testOptions returns a catalog bundle for a classic pizza: three
// sizes, a gluten-free crust offered on every size row (the engine is
// expected to filter it outside medium), one default topping and one
// default sauce.
func testOptions() *models.ItemOptions {
	original := models.Crust{ID: "crust-original", Name: "Original", Price: 0}
	thin := models.Crust{ID: "crust-thin", Name: "Thin Crust", Price: 0}
	glutenFree := models.Crust{ID: "crust-gf", Name: "Gluten Free", Price: 0}

	return &models.ItemOptions{
		Item: models.MenuItem{
			ID:       "item-classic",
			Name:     "Classic Pizza",
			Category: models.CategoryPizza,
		},
		Sizes: []models.Size{
			{ID: "size-s", Name: "Small", Price: 9.00, Tier: models.TierSmall},
			{ID: "size-m", Name: "Medium", Price: 12.00, Tier: models.TierMedium},
			{ID: "size-l", Name: "Large", Price: 16.00, Tier: models.TierLarge},
		},
		CrustsBySize: map[string][]models.Crust{
			"size-s": {original},
			"size-m": {original, thin, glutenFree},
			"size-l": {original, thin, glutenFree},
		},
		Toppings: []models.Topping{
			{ID: "top-onion", Name: "Onion", IsVeg: true, Available: true, SortOrder: 1,
				PriceSmall: fptr(2.0), PriceMedium: fptr(2.5), PriceLarge: fptr(3.0)},
			{ID: "top-pepperoni", Name: "Pepperoni", Available: true, SortOrder: 2,
				PriceSmall: fptr(2.0), PriceMedium: fptr(2.5), PriceLarge: fptr(3.0)},
			{ID: "top-mushroom", Name: "Mushroom", IsVeg: true, Available: true, SortOrder: 3, Price: 2.5},
			{ID: "top-anchovy", Name: "Anchovy", Available: false, SortOrder: 4, Price: 2.5},
		},
		Sauces: []models.Sauce{
			{ID: "sauce-tomato", Name: "Tomato", Price: 1.00},
			{ID: "sauce-garlic", Name: "Garlic", Price: 1.50},
			{ID: "sauce-bbq", Name: "BBQ", Price: 1.50},
		},
		Cheeses: []models.Cheese{
			{ID: "cheese-mozz", Name: "Mozzarella", IsDefault: true},
			{ID: "cheese-feta", Name: "Feta"},
		},
		FreeToppings:    []string{"Oregano", "Chili Flakes"},
		DefaultToppings: []models.DefaultTopping{{ToppingID: "top-onion", Removable: true}},
		DefaultSauceIDs: []string{"sauce-tomato"},
	}
}

// newTestSession starts a customer session with size and crust already
// selected, which is the minimum state for a priceable pizza.
func newTestSession(t interface{ Fatalf(string, ...interface{}) }, sizeID string) *Session {
	s := NewSession(testOptions(), ModeCustomer, DefaultPolicy())
	if err := s.SelectSize(sizeID); err != nil {
		t.Fatalf("SelectSize(%s) returned error: %v", sizeID, err)
	}
	if err := s.SelectCrust("crust-original"); err != nil {
		t.Fatalf("SelectCrust returned error: %v", err)
	}
	return s
}
