package pricing

import (
	"fmt"

	"pizzeria-system/internal/models"
)

// Customization builds the normalized record for persistence and
// display. Every field a renderer needs to answer "does this differ
// from the factory defaults" is stored explicitly, never re-inferred.
func (s *Session) Customization() *models.PizzaCustomization {
	c := &models.PizzaCustomization{
		CheeseType:      s.cheese,
		CheeseQuantity:  s.cheeseQty,
		CheeseSides:     append([]models.Side(nil), s.cheeseSides...),
		SauceID:         s.sauceID,
		SauceQuantity:   s.sauceQty,
		FreeToppings:    append([]models.FreeTopping(nil), s.freeToppings...),
		SpicyLevel:      s.spicy.Levels(),
		DefaultToppings: append([]models.SelectedTopping(nil), s.defaultToppings...),
		ExtraToppings:   append([]models.SelectedTopping(nil), s.extraToppings...),
		Note:            s.note,
		ExtraAmount:     s.extraAmount,
		OriginalItemID:  s.opts.Item.ID,
	}

	if s.size != nil {
		c.Size = s.size.Name
	}
	if s.crust != nil {
		c.Crust = s.crust.Name
	}
	if s.sauceID != "" {
		if sauce, ok := s.opts.SauceByID(s.sauceID); ok {
			c.SauceName = sauce.Name
		}
		c.IsDefaultSauce = s.opts.IsDefaultSauce(s.sauceID)
	}

	return c
}

// SessionFromCustomization reconstructs engine state from a stored
// record so an existing order line can be edited. Stored topping
// prices are preserved as charged, never recomputed, to keep parity
// with what the customer already paid. The record round-trips: calling
// Customization on the result reproduces the input.
func SessionFromCustomization(opts *models.ItemOptions, mode Mode, policy Policy, c *models.PizzaCustomization) (*Session, error) {
	if c == nil {
		return nil, fmt.Errorf("customization is required")
	}
	if c.OriginalItemID != "" && c.OriginalItemID != opts.Item.ID {
		return nil, fmt.Errorf("customization belongs to item %s, not %s", c.OriginalItemID, opts.Item.ID)
	}

	s := &Session{
		mode:        mode,
		policy:      policy,
		opts:        opts,
		cheese:      c.CheeseType,
		cheeseQty:   c.CheeseQuantity,
		cheeseSides: append([]models.Side(nil), c.CheeseSides...),
		sauceID:     c.SauceID,
		sauceQty:    c.SauceQuantity,
		note:        c.Note,
		extraAmount: c.ExtraAmount,

		defaultToppings: append([]models.SelectedTopping(nil), c.DefaultToppings...),
		extraToppings:   append([]models.SelectedTopping(nil), c.ExtraToppings...),
		freeToppings:    append([]models.FreeTopping(nil), c.FreeToppings...),
	}
	if s.cheeseQty == "" {
		// Historical records predate the explicit cheese quantity field
		s.cheeseQty = models.CheeseRegular
	}
	if s.sauceQty == "" {
		s.sauceQty = models.SauceRegular
	}

	if c.Size != "" {
		size, ok := opts.SizeByName(c.Size)
		if !ok {
			return nil, fmt.Errorf("size %q is no longer in the catalog for %s", c.Size, opts.Item.Name)
		}
		s.size = &size
	}

	if c.Crust != "" {
		if s.size == nil {
			return nil, fmt.Errorf("customization has a crust but no size")
		}
		found := false
		for _, crust := range opts.CrustsBySize[s.size.ID] {
			if crust.Name == c.Crust {
				cr := crust
				s.crust = &cr
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("crust %q is no longer offered for size %s", c.Crust, c.Size)
		}
	}

	spicy, err := spicySelectionFromLevels(c.SpicyLevel, s.isLarge())
	if err != nil {
		return nil, err
	}
	s.spicy = spicy

	return s, nil
}
