package ticket

import (
	"fmt"
	"strings"

	"pizzeria-system/internal/models"
)

// FormatLines renders a customization as human-readable modifier lines
// for kitchen tickets and receipts. Only deviations from the item's
// factory defaults are printed, so an untouched pizza renders as just
// its size and crust. defaultCheese is the item's standard cheese; pass
// empty when unknown and cheese swaps will not be called out.
func FormatLines(c *models.PizzaCustomization, defaultCheese string) []string {
	if c == nil {
		return nil
	}

	var lines []string

	if c.Size != "" {
		head := c.Size
		if c.Crust != "" {
			head = fmt.Sprintf("%s, %s", c.Size, c.Crust)
		}
		lines = append(lines, head)
	}

	lines = append(lines, cheeseLines(c, defaultCheese)...)
	lines = append(lines, sauceLines(c)...)
	lines = append(lines, toppingLines(c.DefaultToppings, true)...)
	lines = append(lines, toppingLines(c.ExtraToppings, false)...)

	for _, ft := range c.FreeToppings {
		lines = append(lines, fmt.Sprintf("ADD %s%s", ft.Name, sideSuffix(ft.Side)))
	}

	lines = append(lines, spicyLines(c.SpicyLevel)...)

	if c.Note != "" {
		lines = append(lines, fmt.Sprintf("NOTE: %s", c.Note))
	}
	if c.ExtraAmount != 0 {
		lines = append(lines, fmt.Sprintf("SURCHARGE $%.2f", c.ExtraAmount))
	}

	return lines
}

// Format renders the modifier lines as a single indented block
func Format(c *models.PizzaCustomization, defaultCheese string) string {
	lines := FormatLines(c, defaultCheese)
	if len(lines) == 0 {
		return ""
	}
	return "  " + strings.Join(lines, "\n  ")
}

func cheeseLines(c *models.PizzaCustomization, defaultCheese string) []string {
	var lines []string

	switch {
	case c.CheeseType == "" || c.CheeseType == "No Cheese":
		lines = append(lines, "NO CHEESE")
	default:
		switch c.CheeseQuantity {
		case models.CheeseLess:
			lines = append(lines, fmt.Sprintf("LIGHT %s", strings.ToUpper(c.CheeseType)))
		case models.CheeseExtra:
			lines = append(lines, fmt.Sprintf("EXTRA %s", strings.ToUpper(c.CheeseType)))
		default:
			if defaultCheese != "" && c.CheeseType != defaultCheese {
				lines = append(lines, strings.ToUpper(c.CheeseType))
			}
		}
	}

	if len(c.CheeseSides) == 1 && c.CheeseSides[0] != models.SideWhole {
		lines = append(lines, fmt.Sprintf("CHEESE %s ONLY", strings.ToUpper(string(c.CheeseSides[0]))))
	}

	return lines
}

func sauceLines(c *models.PizzaCustomization) []string {
	var lines []string

	if c.SauceID == "" {
		lines = append(lines, "NO SAUCE")
		return lines
	}

	if !c.IsDefaultSauce {
		lines = append(lines, strings.ToUpper(c.SauceName))
	}
	if c.SauceQuantity == models.SauceExtra {
		lines = append(lines, fmt.Sprintf("EXTRA %s", strings.ToUpper(c.SauceName)))
	}

	return lines
}

func toppingLines(toppings []models.SelectedTopping, isDefault bool) []string {
	var lines []string

	for _, t := range toppings {
		switch t.Quantity {
		case models.QuantityNone:
			lines = append(lines, fmt.Sprintf("NO %s", strings.ToUpper(t.Name)))
		case models.QuantityLess:
			lines = append(lines, fmt.Sprintf("LIGHT %s%s", strings.ToUpper(t.Name), sideSuffix(t.Side)))
		case models.QuantityExtra:
			lines = append(lines, fmt.Sprintf("EXTRA %s%s", strings.ToUpper(t.Name), sideSuffix(t.Side)))
		case models.QuantityRegular:
			if !isDefault {
				lines = append(lines, fmt.Sprintf("ADD %s%s", strings.ToUpper(t.Name), sideSuffix(t.Side)))
			} else if t.Side != models.SideWhole && t.Side != "" {
				lines = append(lines, fmt.Sprintf("%s %s ONLY", strings.ToUpper(t.Name), strings.ToUpper(string(t.Side))))
			}
		}
	}

	return lines
}

func spicyLines(level models.SideSpicyLevel) []string {
	if level.Left == models.SpicyNone && level.Right == models.SpicyNone {
		return nil
	}

	if level.Left == level.Right {
		return []string{fmt.Sprintf("SPICY %s", strings.ToUpper(string(level.Left)))}
	}

	var lines []string
	if level.Left != models.SpicyNone {
		lines = append(lines, fmt.Sprintf("SPICY %s (LEFT)", strings.ToUpper(string(level.Left))))
	}
	if level.Right != models.SpicyNone {
		lines = append(lines, fmt.Sprintf("SPICY %s (RIGHT)", strings.ToUpper(string(level.Right))))
	}
	return lines
}

func sideSuffix(side models.Side) string {
	switch side {
	case models.SideLeft:
		return " (LEFT)"
	case models.SideRight:
		return " (RIGHT)"
	default:
		return ""
	}
}
