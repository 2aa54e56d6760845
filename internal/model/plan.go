package model

import "fmt"

// PlanKind identifies which of the two artifact kinds a pipeline call
// operates on. There is exactly one live artifact per (client, kind).
type PlanKind string

const (
	PlanMeal     PlanKind = "meal"
	PlanTraining PlanKind = "training"
)

// ParsePlanKind validates a kind string from a URL segment.
func ParsePlanKind(s string) (PlanKind, error) {
	switch PlanKind(s) {
	case PlanMeal, PlanTraining:
		return PlanKind(s), nil
	}
	return "", fmt.Errorf("unknown plan kind %q", s)
}

// StorageKey is the deterministic identity of a plan artifact in the store.
// The same (kind, clientID) pair always yields the same key, which is what
// keeps the stored pointer URL stable across regenerations.
func (k PlanKind) StorageKey(clientID int64) string {
	if k == PlanMeal {
		return fmt.Sprintf("meal-plan-%d.pdf", clientID)
	}
	return fmt.Sprintf("training-plan-%d.pdf", clientID)
}

// Title is the human-readable label used in document headings and
// email subjects.
func (k PlanKind) Title() string {
	if k == PlanMeal {
		return "Meal Plan"
	}
	return "Training Plan"
}
