package pricing

import (
	"fmt"

	"pizzeria-system/internal/models"
)

// Cheese names with special pricing rules
const (
	CheeseDairyFree = "Dairy Free"
	CheeseNone      = "No Cheese"
)

// Mode selects the surface-specific policy the engine runs under.
// There is one engine; surface divergence is configuration, not a fork.
type Mode string

const (
	// ModeCustomer pre-applies the item's modal defaults (default
	// cheese, default sauce) and offers regular/extra cheese only.
	ModeCustomer Mode = "customer"

	// ModePOS starts from a blank selection, offers the "less" cheese
	// tier and allows a manual extraAmount surcharge or discount.
	ModePOS Mode = "pos"
)

// Session holds the selection state for one pizza being customized.
// It is pure in-memory state owned by a single editing surface; every
// transition is synchronous and either applies or returns an error
// without mutating anything.
type Session struct {
	mode   Mode
	policy Policy
	opts   *models.ItemOptions

	size  *models.Size
	crust *models.Crust

	cheese      string
	cheeseQty   models.CheeseQuantity
	cheeseSides []models.Side

	sauceID  string
	sauceQty models.SauceQuantity

	spicy SpicySelection

	defaultToppings []models.SelectedTopping
	extraToppings   []models.SelectedTopping
	freeToppings    []models.FreeTopping

	note        string
	extraAmount float64
}

// NewSession starts a customization session for a menu item. Default
// toppings are seeded at regular quantity on the whole pizza; in
// customer mode the default cheese and sauce are pre-selected the way
// the customer modal does, while POS starts blank.
func NewSession(opts *models.ItemOptions, mode Mode, policy Policy) *Session {
	s := &Session{
		mode:      mode,
		policy:    policy,
		opts:      opts,
		cheeseQty: models.CheeseRegular,
		sauceQty:  models.SauceRegular,
		spicy:     NewSpicySelection(),
	}

	for _, dt := range opts.DefaultToppings {
		topping, ok := opts.ToppingByID(dt.ToppingID)
		if !ok {
			continue
		}
		s.defaultToppings = append(s.defaultToppings, models.SelectedTopping{
			ID:        topping.ID,
			Name:      topping.Name,
			Quantity:  models.QuantityRegular,
			Side:      models.SideWhole,
			Price:     0,
			IsDefault: true,
			IsVeg:     topping.IsVeg,
		})
	}

	if mode == ModeCustomer {
		s.cheese = opts.DefaultCheeseName()
		if len(opts.DefaultSauceIDs) > 0 {
			s.sauceID = opts.DefaultSauceIDs[0]
		}
	}

	return s
}

// Mode returns the surface mode the session runs under
func (s *Session) Mode() Mode { return s.mode }

// Size returns the currently selected size, or nil
func (s *Session) Size() *models.Size { return s.size }

// Crust returns the currently selected crust, or nil
func (s *Session) Crust() *models.Crust { return s.crust }

// Spicy returns the current spicy selector state
func (s *Session) Spicy() SpicySelection { return s.spicy }

// DefaultToppings returns the seeded default toppings with their
// current quantity/side state
func (s *Session) DefaultToppings() []models.SelectedTopping { return s.defaultToppings }

// ExtraToppings returns the toppings added beyond the item's defaults
func (s *Session) ExtraToppings() []models.SelectedTopping { return s.extraToppings }

// isLarge reports whether side-level customization is currently legal
func (s *Session) isLarge() bool {
	return s.size != nil && s.size.IsLarge()
}

// tier returns the active size tier; pricing transitions are only
// reachable once a size is selected.
func (s *Session) tier() models.SizeTier {
	if s.size == nil {
		return models.TierMedium
	}
	return s.size.Tier
}

// CanAddToOrder reports whether the selection is complete enough to be
// added to a cart or order: size and crust both chosen. This is the
// engine's only guard condition; there is no other failure mode.
func (s *Session) CanAddToOrder() bool {
	return s.size != nil && s.crust != nil
}

// AvailableCrusts returns the crusts legal for the selected size.
// Gluten-free crusts are only offered on medium pizzas, so they are
// filtered out rather than mispriced elsewhere.
func (s *Session) AvailableCrusts() []models.Crust {
	if s.size == nil {
		return nil
	}
	crusts := s.opts.CrustsBySize[s.size.ID]
	allowed := make([]models.Crust, 0, len(crusts))
	for _, c := range crusts {
		if c.IsGlutenFree() && s.size.Tier != models.TierMedium {
			continue
		}
		allowed = append(allowed, c)
	}
	return allowed
}

// SelectSize selects a size by id. Changing size re-resolves every
// tier-dependent charge and collapses side-level state when the new
// size is not large.
func (s *Session) SelectSize(sizeID string) error {
	size, ok := s.opts.SizeByID(sizeID)
	if !ok {
		return fmt.Errorf("size %s is not available for %s", sizeID, s.opts.Item.Name)
	}
	s.size = &size

	// A crust carried over from the previous size may not be legal anymore
	if s.crust != nil {
		stillLegal := false
		for _, c := range s.AvailableCrusts() {
			if c.ID == s.crust.ID {
				stillLegal = true
				break
			}
		}
		if !stillLegal {
			s.crust = nil
		}
	}

	if !s.isLarge() {
		s.collapseSides()
	}
	s.repriceToppings()
	return nil
}

// SelectCrust selects a crust from the size's available set
func (s *Session) SelectCrust(crustID string) error {
	if s.size == nil {
		return fmt.Errorf("select a size before choosing a crust")
	}
	for _, c := range s.AvailableCrusts() {
		if c.ID == crustID {
			crust := c
			s.crust = &crust
			return nil
		}
	}
	return fmt.Errorf("crust %s is not available for size %s", crustID, s.size.Name)
}

// SelectCheese selects a cheese by name and resets its quantity
func (s *Session) SelectCheese(name string) error {
	if name != CheeseDairyFree && name != CheeseNone {
		found := false
		for _, c := range s.opts.Cheeses {
			if c.Name == name {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("cheese %q is not available for %s", name, s.opts.Item.Name)
		}
	}
	s.cheese = name
	s.cheeseQty = models.CheeseRegular
	return nil
}

// SetCheeseQuantity sets the cheese quantity. The "less" tier is a POS
// affordance the customer flow does not offer.
func (s *Session) SetCheeseQuantity(qty models.CheeseQuantity) error {
	switch qty {
	case models.CheeseRegular, models.CheeseExtra:
	case models.CheeseLess:
		if s.mode != ModePOS {
			return fmt.Errorf("cheese quantity %q is only available on the POS surface", qty)
		}
	default:
		return fmt.Errorf("invalid cheese quantity %q", qty)
	}
	s.cheeseQty = qty
	return nil
}

// ToggleCheeseSide toggles a half-pizza cheese marker. Large only;
// informational for the kitchen, never priced.
func (s *Session) ToggleCheeseSide(side models.Side) error {
	if side != models.SideWhole && !s.isLarge() {
		return fmt.Errorf("side-level cheese is only available on large pizzas")
	}
	for i, existing := range s.cheeseSides {
		if existing == side {
			s.cheeseSides = append(s.cheeseSides[:i], s.cheeseSides[i+1:]...)
			return nil
		}
	}
	s.cheeseSides = append(s.cheeseSides, side)
	return nil
}

// SelectSauce selects a sauce by id; empty id means "No Sauce".
// Quantity resets to regular on every change.
func (s *Session) SelectSauce(sauceID string) error {
	if sauceID != "" {
		if _, ok := s.opts.SauceByID(sauceID); !ok {
			return fmt.Errorf("sauce %s is not available for %s", sauceID, s.opts.Item.Name)
		}
	}
	s.sauceID = sauceID
	s.sauceQty = models.SauceRegular
	return nil
}

// SetSauceQuantity sets the sauce quantity
func (s *Session) SetSauceQuantity(qty models.SauceQuantity) error {
	if qty != models.SauceRegular && qty != models.SauceExtra {
		return fmt.Errorf("invalid sauce quantity %q", qty)
	}
	if s.sauceID == "" && qty == models.SauceExtra {
		return fmt.Errorf("cannot set extra quantity without a sauce selected")
	}
	s.sauceQty = qty
	return nil
}

// SetDefaultToppingQuantity changes the quantity of a seeded default
// topping. Removing or reducing never charges; only the extra upgrade
// carries the tier rate.
func (s *Session) SetDefaultToppingQuantity(toppingID string, qty models.ToppingQuantity) error {
	switch qty {
	case models.QuantityNone, models.QuantityLess, models.QuantityRegular, models.QuantityExtra:
	default:
		return fmt.Errorf("invalid topping quantity %q", qty)
	}
	for i := range s.defaultToppings {
		if s.defaultToppings[i].ID != toppingID {
			continue
		}
		if qty == models.QuantityNone && !s.isRemovable(toppingID) {
			return fmt.Errorf("topping %s cannot be removed from %s", s.defaultToppings[i].Name, s.opts.Item.Name)
		}
		s.defaultToppings[i].Quantity = qty
		s.defaultToppings[i].Price = 0
		if qty == models.QuantityExtra {
			s.defaultToppings[i].Price = s.policy.ExtraToppingRateFor(s.tier())
		}
		return nil
	}
	return fmt.Errorf("topping %s is not a default topping of %s", toppingID, s.opts.Item.Name)
}

// SetDefaultToppingSide moves a default topping to one half of the pizza
func (s *Session) SetDefaultToppingSide(toppingID string, side models.Side) error {
	if err := s.checkSide(side); err != nil {
		return err
	}
	for i := range s.defaultToppings {
		if s.defaultToppings[i].ID == toppingID {
			s.defaultToppings[i].Side = side
			return nil
		}
	}
	return fmt.Errorf("topping %s is not a default topping of %s", toppingID, s.opts.Item.Name)
}

// ToggleExtraTopping adds a topping beyond the item's defaults, or
// removes it when it is already present. New entries are charged the
// tier rate at the moment of addition.
func (s *Session) ToggleExtraTopping(toppingID string) error {
	for i := range s.extraToppings {
		if s.extraToppings[i].ID == toppingID {
			s.extraToppings = append(s.extraToppings[:i], s.extraToppings[i+1:]...)
			return nil
		}
	}

	topping, ok := s.opts.ToppingByID(toppingID)
	if !ok || !topping.Available {
		return fmt.Errorf("topping %s is not available for %s", toppingID, s.opts.Item.Name)
	}
	if s.opts.IsDefaultTopping(toppingID) {
		return fmt.Errorf("topping %s is already included with %s", topping.Name, s.opts.Item.Name)
	}

	s.extraToppings = append(s.extraToppings, models.SelectedTopping{
		ID:        topping.ID,
		Name:      topping.Name,
		Quantity:  models.QuantityRegular,
		Side:      models.SideWhole,
		Price:     s.policy.ExtraToppingRateFor(s.tier()),
		IsDefault: false,
		IsVeg:     topping.IsVeg,
	})
	return nil
}

// SetExtraToppingQuantity upgrades or downgrades an extra topping.
// Extras only exist at regular or extra quantity; extra costs 1.5x the
// tier rate.
func (s *Session) SetExtraToppingQuantity(toppingID string, qty models.ToppingQuantity) error {
	if qty != models.QuantityRegular && qty != models.QuantityExtra {
		return fmt.Errorf("extra toppings only support regular or extra quantity")
	}
	for i := range s.extraToppings {
		if s.extraToppings[i].ID != toppingID {
			continue
		}
		s.extraToppings[i].Quantity = qty
		s.extraToppings[i].Price = s.extraToppingPrice(qty)
		return nil
	}
	return fmt.Errorf("topping %s has not been added to %s", toppingID, s.opts.Item.Name)
}

// SetExtraToppingSide moves an extra topping to one half of the pizza
func (s *Session) SetExtraToppingSide(toppingID string, side models.Side) error {
	if err := s.checkSide(side); err != nil {
		return err
	}
	for i := range s.extraToppings {
		if s.extraToppings[i].ID == toppingID {
			s.extraToppings[i].Side = side
			return nil
		}
	}
	return fmt.Errorf("topping %s has not been added to %s", toppingID, s.opts.Item.Name)
}

// ToggleFreeTopping adds or removes a free add-on. Always $0.
func (s *Session) ToggleFreeTopping(name string, side models.Side) error {
	if side != "" && side != models.SideWhole {
		if err := s.checkSide(side); err != nil {
			return err
		}
	}
	for i, ft := range s.freeToppings {
		if ft.Name == name {
			s.freeToppings = append(s.freeToppings[:i], s.freeToppings[i+1:]...)
			return nil
		}
	}

	available := false
	for _, ft := range s.opts.FreeToppings {
		if ft == name {
			available = true
			break
		}
	}
	if !available {
		return fmt.Errorf("free topping %q is not available for %s", name, s.opts.Item.Name)
	}

	s.freeToppings = append(s.freeToppings, models.FreeTopping{Name: name, Side: side})
	return nil
}

// SetSpicySelection applies a tap on one of the two spicy selectors
func (s *Session) SetSpicySelection(kind SpicyKind, target models.SpicyTarget) error {
	next, err := s.spicy.Toggle(kind, target, s.isLarge())
	if err != nil {
		return err
	}
	s.spicy = next
	return nil
}

// SpicyOptions returns the currently legal targets for each selector
func (s *Session) SpicyOptions() (medium, hot []models.SpicyTarget) {
	return s.spicy.AllowedTargets(s.isLarge())
}

// SetNote sets the free-form kitchen note
func (s *Session) SetNote(note string) {
	s.note = note
}

// SetExtraAmount sets the POS-only manual surcharge or discount
func (s *Session) SetExtraAmount(amount float64) error {
	if s.mode != ModePOS {
		return fmt.Errorf("extra amount is only available on the POS surface")
	}
	s.extraAmount = amount
	return nil
}

// checkSide validates side targeting against the current size
func (s *Session) checkSide(side models.Side) error {
	switch side {
	case models.SideWhole:
		return nil
	case models.SideLeft, models.SideRight:
		if !s.isLarge() {
			return fmt.Errorf("side-level customization is only available on large pizzas")
		}
		return nil
	default:
		return fmt.Errorf("invalid side %q", side)
	}
}

// isRemovable reports whether a default topping may be removed entirely
func (s *Session) isRemovable(toppingID string) bool {
	for _, dt := range s.opts.DefaultToppings {
		if dt.ToppingID == toppingID {
			return dt.Removable
		}
	}
	return false
}

// collapseSides forces every side-targeted modifier back to the whole
// pizza after a size change away from large
func (s *Session) collapseSides() {
	for i := range s.defaultToppings {
		s.defaultToppings[i].Side = models.SideWhole
	}
	for i := range s.extraToppings {
		s.extraToppings[i].Side = models.SideWhole
	}
	for i := range s.freeToppings {
		if s.freeToppings[i].Side == models.SideLeft || s.freeToppings[i].Side == models.SideRight {
			s.freeToppings[i].Side = models.SideWhole
		}
	}
	s.cheeseSides = nil
	if s.spicy.MediumHot == models.TargetLeft || s.spicy.MediumHot == models.TargetRight {
		s.spicy.MediumHot = models.TargetNone
	}
	if s.spicy.Hot == models.TargetLeft || s.spicy.Hot == models.TargetRight {
		s.spicy.Hot = models.TargetNone
	}
}

// repriceToppings re-resolves every tier-dependent topping charge after
// a size change, so a stored rate from the old size never leaks into
// the price
func (s *Session) repriceToppings() {
	for i := range s.defaultToppings {
		if s.defaultToppings[i].Quantity == models.QuantityExtra {
			s.defaultToppings[i].Price = s.policy.ExtraToppingRateFor(s.tier())
		} else {
			s.defaultToppings[i].Price = 0
		}
	}
	for i := range s.extraToppings {
		s.extraToppings[i].Price = s.extraToppingPrice(s.extraToppings[i].Quantity)
	}
}

// extraToppingPrice returns the charge for one extra topping at the
// given quantity under the current tier
func (s *Session) extraToppingPrice(qty models.ToppingQuantity) float64 {
	rate := s.policy.ExtraToppingRateFor(s.tier())
	if qty == models.QuantityExtra {
		return rate * s.policy.ExtraQuantityMultiplier
	}
	return rate
}
