package models

import "strings"

// Category represents the menu category of an item
type Category string

const (
	CategoryPizza Category = "pizza"
	CategoryWings Category = "wings"
	CategoryOther Category = "other"
)

// SizeTier represents the coarse size bucket used by pricing rules.
// Display names are resolved to a tier once at catalog load so that
// pricing rules never do substring matching themselves.
type SizeTier string

const (
	TierSmall      SizeTier = "small"
	TierMedium     SizeTier = "medium"
	TierLarge      SizeTier = "large"
	TierGlutenFree SizeTier = "gluten_free"
)

// ResolveSizeTier maps a size display name to its tier. Gluten-free
// variants are checked first because their names usually embed a base
// size as well ("Gluten Free Medium"). Unrecognized names fall back to
// the medium tier, which carries the middle surcharge rates.
func ResolveSizeTier(displayName string) SizeTier {
	name := strings.ToLower(displayName)
	switch {
	case strings.Contains(name, "gluten"):
		return TierGlutenFree
	case strings.Contains(name, "small"):
		return TierSmall
	case strings.Contains(name, "large"):
		return TierLarge
	default:
		return TierMedium
	}
}

// Size represents a size option for a menu item
type Size struct {
	ID    string   `json:"id" db:"id"`
	Name  string   `json:"name" db:"name"`
	Price float64  `json:"price" db:"price"`
	Tier  SizeTier `json:"tier"`
}

// IsLarge reports whether side-level customization is permitted for
// this size. Only large pizzas can be split left/right.
func (s Size) IsLarge() bool {
	return s.Tier == TierLarge
}

// Crust represents a crust option
type Crust struct {
	ID    string  `json:"id" db:"id"`
	Name  string  `json:"name" db:"name"`
	Price float64 `json:"price" db:"price"`
}

// IsGlutenFree reports whether the crust carries the gluten-free surcharge
func (c Crust) IsGlutenFree() bool {
	return strings.Contains(strings.ToLower(c.Name), "gluten")
}

// Topping represents a topping in the catalog with per-size prices
type Topping struct {
	ID          string   `json:"id" db:"id"`
	Name        string   `json:"name" db:"name"`
	IsVeg       bool     `json:"is_veg" db:"is_veg"`
	PriceSmall  *float64 `json:"price_small,omitempty" db:"price_small"`
	PriceMedium *float64 `json:"price_medium,omitempty" db:"price_medium"`
	PriceLarge  *float64 `json:"price_large,omitempty" db:"price_large"`
	Price       float64  `json:"price" db:"price"`
	Available   bool     `json:"available" db:"available"`
	SortOrder   int      `json:"sort_order" db:"sort_order"`
}

// PriceForTier returns the catalog display price of the topping for a
// size tier, falling back to the generic price when no size-specific
// price is set. Gluten-free sizes use the medium column.
func (t Topping) PriceForTier(tier SizeTier) float64 {
	var p *float64
	switch tier {
	case TierSmall:
		p = t.PriceSmall
	case TierLarge:
		p = t.PriceLarge
	default:
		p = t.PriceMedium
	}
	if p != nil {
		return *p
	}
	return t.Price
}

// Sauce represents a sauce option
type Sauce struct {
	ID    string  `json:"id" db:"id"`
	Name  string  `json:"name" db:"name"`
	Price float64 `json:"price" db:"price"`
}

// Cheese represents a cheese option
type Cheese struct {
	ID        string `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	IsDefault bool   `json:"is_default" db:"is_default"`
}

// DefaultTopping marks a topping as included with a menu item
type DefaultTopping struct {
	ToppingID string `json:"topping_id" db:"topping_id"`
	Removable bool   `json:"removable" db:"removable"`
}

// MenuItem represents a catalog entry
type MenuItem struct {
	ID        string   `json:"id" db:"id"`
	Name      string   `json:"name" db:"name"`
	Category  Category `json:"category" db:"category"`
	BasePrice float64  `json:"base_price" db:"base_price"`
}

// ItemOptions bundles a menu item with every option the customization
// engine needs: sizes, crust availability per size, toppings, sauces,
// cheeses and the item's factory defaults. The catalog repository
// assembles one bundle per item at load time.
type ItemOptions struct {
	Item            MenuItem
	Sizes           []Size
	CrustsBySize    map[string][]Crust
	Toppings        []Topping
	Sauces          []Sauce
	Cheeses         []Cheese
	FreeToppings    []string
	DefaultToppings []DefaultTopping
	DefaultSauceIDs []string
}

// SizeByName finds a size option by display name
func (o *ItemOptions) SizeByName(name string) (Size, bool) {
	for _, s := range o.Sizes {
		if s.Name == name {
			return s, true
		}
	}
	return Size{}, false
}

// SizeByID finds a size option by id
func (o *ItemOptions) SizeByID(id string) (Size, bool) {
	for _, s := range o.Sizes {
		if s.ID == id {
			return s, true
		}
	}
	return Size{}, false
}

// ToppingByID finds a topping by id
func (o *ItemOptions) ToppingByID(id string) (Topping, bool) {
	for _, t := range o.Toppings {
		if t.ID == id {
			return t, true
		}
	}
	return Topping{}, false
}

// SauceByID finds a sauce by id
func (o *ItemOptions) SauceByID(id string) (Sauce, bool) {
	for _, s := range o.Sauces {
		if s.ID == id {
			return s, true
		}
	}
	return Sauce{}, false
}

// IsDefaultSauce reports whether a sauce belongs to the item's
// default-sauce set
func (o *ItemOptions) IsDefaultSauce(sauceID string) bool {
	for _, id := range o.DefaultSauceIDs {
		if id == sauceID {
			return true
		}
	}
	return false
}

// DefaultCheeseName returns the catalog's designated default cheese
func (o *ItemOptions) DefaultCheeseName() string {
	for _, c := range o.Cheeses {
		if c.IsDefault {
			return c.Name
		}
	}
	return ""
}

// IsDefaultTopping reports whether a topping is included with the item
func (o *ItemOptions) IsDefaultTopping(toppingID string) bool {
	for _, dt := range o.DefaultToppings {
		if dt.ToppingID == toppingID {
			return true
		}
	}
	return false
}
