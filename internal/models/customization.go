package models

// ToppingQuantity represents how much of a topping goes on the pizza
type ToppingQuantity string

const (
	QuantityNone    ToppingQuantity = "none"
	QuantityLess    ToppingQuantity = "less"
	QuantityRegular ToppingQuantity = "regular"
	QuantityExtra   ToppingQuantity = "extra"
)

// Side represents the half of the pizza a modifier applies to.
// Left/right are only legal on large pizzas.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
	SideWhole Side = "whole"
)

// SauceQuantity represents the amount of sauce
type SauceQuantity string

const (
	SauceRegular SauceQuantity = "regular"
	SauceExtra   SauceQuantity = "extra"
)

// CheeseQuantity represents the amount of cheese. The "less" tier is
// only offered on the POS surface.
type CheeseQuantity string

const (
	CheeseLess    CheeseQuantity = "less"
	CheeseRegular CheeseQuantity = "regular"
	CheeseExtra   CheeseQuantity = "extra"
)

// SpicyLevel represents the effective spice level of one side
type SpicyLevel string

const (
	SpicyNone   SpicyLevel = "none"
	SpicyMedium SpicyLevel = "medium"
	SpicyHot    SpicyLevel = "hot"
)

// SpicyTarget represents which side(s) a spicy selector applies to
type SpicyTarget string

const (
	TargetNone  SpicyTarget = "none"
	TargetLeft  SpicyTarget = "left"
	TargetWhole SpicyTarget = "whole"
	TargetRight SpicyTarget = "right"
)

// SelectedTopping is a default or extra topping on a line item.
// Default toppings keep IsDefault=true even after their quantity or
// side changes, so receipt renderers can diff against factory defaults
// without re-deriving state.
type SelectedTopping struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Quantity  ToppingQuantity `json:"quantity"`
	Side      Side            `json:"side"`
	Price     float64         `json:"price"`
	IsDefault bool            `json:"isDefault"`
	IsVeg     bool            `json:"isVeg"`
}

// FreeTopping is a no-charge add-on, purely informational for kitchen
// routing. Side is only set on large pizzas.
type FreeTopping struct {
	Name string `json:"name"`
	Side Side   `json:"side,omitempty"`
}

// SideSpicyLevel holds the effective per-side spice levels
type SideSpicyLevel struct {
	Left  SpicyLevel `json:"left"`
	Right SpicyLevel `json:"right"`
}

// PizzaCustomization is the normalized record of every modifier applied
// to one pizza line item. Field names match the JSON blobs stored with
// historical order lines and must not change.
type PizzaCustomization struct {
	Size            string            `json:"size"`
	Crust           string            `json:"crust"`
	CheeseType      string            `json:"cheeseType"`
	CheeseQuantity  CheeseQuantity    `json:"cheeseQuantity"`
	CheeseSides     []Side            `json:"cheeseSides"`
	SauceID         string            `json:"sauceId"`
	SauceName       string            `json:"sauceName"`
	SauceQuantity   SauceQuantity     `json:"sauceQuantity"`
	IsDefaultSauce  bool              `json:"isDefaultSauce"`
	FreeToppings    []FreeTopping     `json:"freeToppings"`
	SpicyLevel      SideSpicyLevel    `json:"spicyLevel"`
	DefaultToppings []SelectedTopping `json:"defaultToppings"`
	ExtraToppings   []SelectedTopping `json:"extraToppings"`
	Note            string            `json:"note"`
	ExtraAmount     float64           `json:"extraAmount,omitempty"`
	OriginalItemID  string            `json:"originalItemId"`
}

// CartLineItem is one priced line in a cart or order. For customized
// pizzas the engine computes a single all-inclusive price and quantity
// stays 1; each customization is a distinct line.
type CartLineItem struct {
	ID                 string              `json:"id"`
	MenuItemID         string              `json:"menu_item_id"`
	Name               string              `json:"name"`
	Price              float64             `json:"price"`
	Quantity           int                 `json:"quantity"`
	TotalPrice         float64             `json:"total_price"`
	PizzaCustomization *PizzaCustomization `json:"pizzaCustomization,omitempty"`
}
