package pricing

import (
	"fmt"

	"pizzeria-system/internal/models"
)

// SpicyKind identifies one of the two spicy selectors
type SpicyKind string

const (
	SpicyKindMedium SpicyKind = "medium"
	SpicyKindHot    SpicyKind = "hot"
)

// SpicySelection is the spicy-level state machine: two selectors, each
// targeting none, left, whole or right. Effective per-side levels are
// derived on read, never stored, so one selector can never clobber the
// other's side when it is toggled off.
type SpicySelection struct {
	MediumHot models.SpicyTarget
	Hot       models.SpicyTarget
}

// NewSpicySelection returns the empty selection
func NewSpicySelection() SpicySelection {
	return SpicySelection{MediumHot: models.TargetNone, Hot: models.TargetNone}
}

// Levels derives the effective per-side spice levels. Medium is applied
// first, then hot overwrites whichever side(s) it targets.
func (s SpicySelection) Levels() models.SideSpicyLevel {
	levels := models.SideSpicyLevel{Left: models.SpicyNone, Right: models.SpicyNone}

	switch s.MediumHot {
	case models.TargetWhole:
		levels.Left = models.SpicyMedium
		levels.Right = models.SpicyMedium
	case models.TargetLeft:
		levels.Left = models.SpicyMedium
	case models.TargetRight:
		levels.Right = models.SpicyMedium
	}

	switch s.Hot {
	case models.TargetWhole:
		levels.Left = models.SpicyHot
		levels.Right = models.SpicyHot
	case models.TargetLeft:
		levels.Left = models.SpicyHot
	case models.TargetRight:
		levels.Right = models.SpicyHot
	}

	return levels
}

// CanSelect reports whether setting the given selector to the given
// target is a legal move in the current state. TargetNone (clearing a
// selector) is always legal.
func (s SpicySelection) CanSelect(kind SpicyKind, target models.SpicyTarget, large bool) bool {
	if target == models.TargetNone {
		return true
	}
	if !large && (target == models.TargetLeft || target == models.TargetRight) {
		return false
	}

	var other models.SpicyTarget
	if kind == SpicyKindMedium {
		other = s.Hot
	} else {
		other = s.MediumHot
	}

	switch other {
	case models.TargetNone:
		return true
	case models.TargetWhole:
		// Whole-pizza selection on one selector disables the other entirely
		return false
	case models.TargetLeft:
		// Left side already taken; only the right side remains
		return target == models.TargetRight
	case models.TargetRight:
		return target == models.TargetLeft
	}

	return false
}

// Toggle applies a user tap on a selector option. Tapping the active
// target clears that selector; tapping a new legal target moves the
// selector there. Illegal moves return an error and leave the state
// unchanged.
func (s SpicySelection) Toggle(kind SpicyKind, target models.SpicyTarget, large bool) (SpicySelection, error) {
	current := s.MediumHot
	if kind == SpicyKindHot {
		current = s.Hot
	}

	if current == target {
		target = models.TargetNone
	} else if !s.CanSelect(kind, target, large) {
		return s, fmt.Errorf("spicy %s cannot target %s in current state", kind, target)
	}

	if kind == SpicyKindMedium {
		s.MediumHot = target
	} else {
		s.Hot = target
	}
	return s, nil
}

// AllowedTargets returns the targets each selector may legally move to
// from the current state, so UI surfaces can disable the rest.
func (s SpicySelection) AllowedTargets(large bool) (medium, hot []models.SpicyTarget) {
	all := []models.SpicyTarget{models.TargetNone, models.TargetLeft, models.TargetWhole, models.TargetRight}
	for _, t := range all {
		if s.CanSelect(SpicyKindMedium, t, large) {
			medium = append(medium, t)
		}
		if s.CanSelect(SpicyKindHot, t, large) {
			hot = append(hot, t)
		}
	}
	return medium, hot
}

// spicySelectionFromLevels reconstructs the selector state from stored
// per-side levels (edit-an-existing-line flow). Every legal level pair
// maps to exactly one selection.
func spicySelectionFromLevels(levels models.SideSpicyLevel, large bool) (SpicySelection, error) {
	if !large && levels.Left != levels.Right {
		return SpicySelection{}, fmt.Errorf("split-side spicy level is only allowed on large pizzas")
	}

	sel := NewSpicySelection()

	switch {
	case levels.Left == models.SpicyMedium && levels.Right == models.SpicyMedium:
		sel.MediumHot = models.TargetWhole
	case levels.Left == models.SpicyMedium:
		sel.MediumHot = models.TargetLeft
	case levels.Right == models.SpicyMedium:
		sel.MediumHot = models.TargetRight
	}

	switch {
	case levels.Left == models.SpicyHot && levels.Right == models.SpicyHot:
		sel.Hot = models.TargetWhole
	case levels.Left == models.SpicyHot:
		sel.Hot = models.TargetLeft
	case levels.Right == models.SpicyHot:
		sel.Hot = models.TargetRight
	}

	return sel, nil
}
