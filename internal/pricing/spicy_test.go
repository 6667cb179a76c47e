package pricing

import (
	"testing"

	"pizzeria-system/internal/models"
)

var allTargets = []models.SpicyTarget{models.TargetNone, models.TargetLeft, models.TargetWhole, models.TargetRight}

// reachableStates walks every Toggle sequence breadth-first and
// collects the states the machine can actually reach.
func reachableStates(large bool) map[SpicySelection]bool {
	seen := map[SpicySelection]bool{NewSpicySelection(): true}
	queue := []SpicySelection{NewSpicySelection()}

	for len(queue) > 0 {
		state := queue[0]
		queue = queue[1:]
		for _, kind := range []SpicyKind{SpicyKindMedium, SpicyKindHot} {
			for _, target := range allTargets {
				next, err := state.Toggle(kind, target, large)
				if err != nil {
					continue
				}
				if !seen[next] {
					seen[next] = true
					queue = append(queue, next)
				}
			}
		}
	}
	return seen
}

func TestSpicyNoSideIsBothMediumAndHot(t *testing.T) {
	for state := range reachableStates(true) {
		levels := state.Levels()
		// Derivation makes a double level unrepresentable, but the
		// selector pair backing it must also never collide
		if state.MediumHot != models.TargetNone && state.MediumHot == state.Hot {
			t.Errorf("state %+v has both selectors on the same target", state)
		}
		if state.MediumHot == models.TargetWhole && state.Hot != models.TargetNone {
			t.Errorf("state %+v has hot active while whole-pizza medium is set", state)
		}
		if state.Hot == models.TargetWhole && state.MediumHot != models.TargetNone {
			t.Errorf("state %+v has medium active while whole-pizza hot is set", state)
		}
		_ = levels
	}
}

func TestSpicyNonLargeSidesStayEqual(t *testing.T) {
	for state := range reachableStates(false) {
		levels := state.Levels()
		if levels.Left != levels.Right {
			t.Errorf("non-large pizza reached split spicy state %+v -> %+v", state, levels)
		}
	}
}

func TestSpicySplitSidesReachableOnLarge(t *testing.T) {
	want := SpicySelection{MediumHot: models.TargetLeft, Hot: models.TargetRight}
	if !reachableStates(true)[want] {
		t.Errorf("medium-left / hot-right should be reachable on a large pizza")
	}

	levels := want.Levels()
	if levels.Left != models.SpicyMedium || levels.Right != models.SpicyHot {
		t.Errorf("Levels() = %+v, want left medium right hot", levels)
	}
}

func TestSpicyWholeDisablesOtherSelector(t *testing.T) {
	state := NewSpicySelection()
	state, err := state.Toggle(SpicyKindMedium, models.TargetWhole, true)
	if err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}

	for _, target := range []models.SpicyTarget{models.TargetLeft, models.TargetWhole, models.TargetRight} {
		if state.CanSelect(SpicyKindHot, target, true) {
			t.Errorf("hot %s should be disabled while whole-pizza medium is active", target)
		}
	}

	// Clearing medium re-enables hot
	state, err = state.Toggle(SpicyKindMedium, models.TargetWhole, true)
	if err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	if state.MediumHot != models.TargetNone {
		t.Fatalf("re-tapping the active target should clear the selector, got %v", state.MediumHot)
	}
	if !state.CanSelect(SpicyKindHot, models.TargetWhole, true) {
		t.Error("hot whole should be selectable after medium is cleared")
	}
}

func TestSpicySideExclusivity(t *testing.T) {
	state := NewSpicySelection()
	state, err := state.Toggle(SpicyKindHot, models.TargetLeft, true)
	if err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}

	if state.CanSelect(SpicyKindMedium, models.TargetLeft, true) {
		t.Error("medium may not target left while left is hot")
	}
	if state.CanSelect(SpicyKindMedium, models.TargetWhole, true) {
		t.Error("medium may not target whole while left is hot")
	}
	if !state.CanSelect(SpicyKindMedium, models.TargetRight, true) {
		t.Error("medium should still be able to target right")
	}
}

func TestSpicyToggleOffPreservesOtherSelector(t *testing.T) {
	state := NewSpicySelection()
	state, _ = state.Toggle(SpicyKindMedium, models.TargetLeft, true)
	state, _ = state.Toggle(SpicyKindHot, models.TargetRight, true)

	// Turning medium off must not touch the hot side
	state, err := state.Toggle(SpicyKindMedium, models.TargetLeft, true)
	if err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}

	levels := state.Levels()
	if levels.Left != models.SpicyNone {
		t.Errorf("left side should be reset, got %v", levels.Left)
	}
	if levels.Right != models.SpicyHot {
		t.Errorf("right side should stay hot, got %v", levels.Right)
	}
}

func TestSpicyNonLargeRejectsSides(t *testing.T) {
	state := NewSpicySelection()
	for _, target := range []models.SpicyTarget{models.TargetLeft, models.TargetRight} {
		if _, err := state.Toggle(SpicyKindMedium, target, false); err == nil {
			t.Errorf("medium %s should be illegal on a non-large pizza", target)
		}
		if _, err := state.Toggle(SpicyKindHot, target, false); err == nil {
			t.Errorf("hot %s should be illegal on a non-large pizza", target)
		}
	}
	if _, err := state.Toggle(SpicyKindHot, models.TargetWhole, false); err != nil {
		t.Errorf("whole-pizza hot should stay legal on non-large pizzas: %v", err)
	}
}

func TestSpicyAllowedTargets(t *testing.T) {
	state := NewSpicySelection()
	medium, hot := state.AllowedTargets(false)
	for _, targets := range [][]models.SpicyTarget{medium, hot} {
		for _, target := range targets {
			if target == models.TargetLeft || target == models.TargetRight {
				t.Errorf("AllowedTargets on non-large offered %s", target)
			}
		}
	}
}

func TestSpicySelectionFromLevelsRoundTrip(t *testing.T) {
	for state := range reachableStates(true) {
		got, err := spicySelectionFromLevels(state.Levels(), true)
		if err != nil {
			t.Fatalf("spicySelectionFromLevels(%+v) returned error: %v", state.Levels(), err)
		}
		if got != state {
			t.Errorf("levels %+v reconstructed to %+v, want %+v", state.Levels(), got, state)
		}
	}
}

func TestSpicySelectionFromLevelsRejectsSplitOnNonLarge(t *testing.T) {
	levels := models.SideSpicyLevel{Left: models.SpicyMedium, Right: models.SpicyNone}
	if _, err := spicySelectionFromLevels(levels, false); err == nil {
		t.Error("split levels should be rejected for non-large pizzas")
	}
}
