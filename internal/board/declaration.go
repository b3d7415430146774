package board

import "revealboard/internal/transition"

// DepType names a dependency relation between two cards
type DepType string

const (
	// DepHide: the source's status controls the target's visibility
	DepHide DepType = "hide"
	// DepOpen: an opened source forces the target open (reference counted)
	DepOpen DepType = "open"
	// DepActivator: the target is interactable only while the source is open
	DepActivator DepType = "activator"
)

// Valid reports whether t is a known relation
func (t DepType) Valid() bool {
	switch t {
	case DepHide, DepOpen, DepActivator:
		return true
	}
	return false
}

// CardDecl is the static declaration of one card
type CardDecl struct {
	Key             string          `json:"key"`
	Title           string          `json:"title"`
	Kind            Kind            `json:"kind"`
	Position        transition.Vec3 `json:"position"`
	ZoomOffset      transition.Vec3 `json:"zoom_offset"`
	ZoomSize        float64         `json:"zoom_size"`
	CostsBudget     bool            `json:"costs_budget"`
	InitiallyOpen   bool            `json:"initially_open"`
	Interaction     Interaction     `json:"interaction"`
	SpecialRotation bool            `json:"special_rotation"`
	Reserve         bool            `json:"reserve"`
}

// DepDecl is one directed relation, keyed by card keys
type DepDecl struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Type   DepType `json:"type"`
}

// Declaration is an immutable board layout; many sessions may share one
type Declaration struct {
	Title  string     `json:"title"`
	Budget int        `json:"budget"`
	Cards  []CardDecl `json:"cards"`
	Deps   []DepDecl  `json:"deps"`
}
