package board

import (
	"fmt"
	"slices"

	"revealboard/internal/transition"
)

// NodeID indexes a node in the graph's arena
type NodeID int

// NoNode is the zero target for events that hit no card
const NoNode NodeID = -1

// Status is the face of a card. Opening and Closing are transient.
type Status int

const (
	Closed Status = iota
	Opening
	Opened
	Closing
)

var statusNames = [...]string{"closed", "opening", "opened", "closing"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("status(%d)", int(s))
	}
	return statusNames[s]
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Transient reports whether a flip is in flight
func (s Status) Transient() bool { return s == Opening || s == Closing }

// Interaction is whether a card accepts clicks
type Interaction int

const (
	Active Interaction = iota
	Inactive
	Hidden
)

var interactionNames = [...]string{"active", "inactive", "hidden"}

func (i Interaction) String() string {
	if i < 0 || int(i) >= len(interactionNames) {
		return fmt.Sprintf("interaction(%d)", int(i))
	}
	return interactionNames[i]
}

func (i Interaction) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

// ParseInteraction maps a stored name to an Interaction; empty means Active
func ParseInteraction(s string) (Interaction, error) {
	switch s {
	case "", "active":
		return Active, nil
	case "inactive":
		return Inactive, nil
	case "hidden":
		return Hidden, nil
	}
	return Active, fmt.Errorf("unknown interaction state %q", s)
}

// Kind selects kind-specific behaviour of a card
type Kind int

const (
	KindCard Kind = iota
	// KindLocation frames a region of the board rather than a single card
	KindLocation
)

func (k Kind) String() string {
	if k == KindLocation {
		return "location"
	}
	return "card"
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// ParseKind maps a stored name to a Kind; empty means KindCard
func ParseKind(s string) (Kind, error) {
	switch s {
	case "", "card":
		return KindCard, nil
	case "location":
		return KindLocation, nil
	}
	return KindCard, fmt.Errorf("unknown card kind %q", s)
}

// hasCustomFraming reports whether the kind carries its own zoom offset and size
func (k Kind) hasCustomFraming() bool { return k == KindLocation }

// Node is one card. Fields are read-only outside this package; they change
// only through the flip protocol.
type Node struct {
	ID              NodeID          `json:"id"`
	Key             string          `json:"key"`
	Title           string          `json:"title"`
	Kind            Kind            `json:"kind"`
	Status          Status          `json:"status"`
	Interaction     Interaction     `json:"interaction"`
	CostsBudget     bool            `json:"costs_budget"`
	Reserve         bool            `json:"reserve"`
	InitiallyOpen   bool            `json:"initially_open"`
	SpecialRotation bool            `json:"special_rotation"`
	Position        transition.Vec3 `json:"position"`
	ZoomOffset      transition.Vec3 `json:"zoom_offset"`
	ZoomSize        float64         `json:"zoom_size"`
	HideDeps        []NodeID        `json:"hide_deps"`
	OpenDeps        []NodeID        `json:"open_deps"`
	Activators      []NodeID        `json:"activators"`
	RefCount        int             `json:"ref_count"`

	// Rotation is the flip pose: Size is yaw in degrees, Pos.Z is roll
	Rotation transition.Pose `json:"rotation"`

	flip       transition.Driver
	cascade    cascadeID
	dependents []NodeID // nodes gated by this one
}

// ZoomFraming returns where and how tightly the camera frames this card
func (n *Node) ZoomFraming(defaultSize float64) (transition.Vec3, float64) {
	if !n.Kind.hasCustomFraming() {
		return n.Position, defaultSize
	}
	size := n.ZoomSize
	if size <= 0 {
		size = defaultSize
	}
	return n.Position.Add(n.ZoomOffset), size
}

func (n *Node) clone() Node {
	c := *n
	c.HideDeps = slices.Clone(n.HideDeps)
	c.OpenDeps = slices.Clone(n.OpenDeps)
	c.Activators = slices.Clone(n.Activators)
	c.dependents = nil
	return c
}

// flipTarget is the rotation a flip in the given direction ends at
func (n *Node) flipTarget(opening bool) transition.Pose {
	if !opening {
		return transition.Pose{}
	}
	p := transition.Pose{Size: 180}
	if n.SpecialRotation {
		p.Pos.Z = 90
	}
	return p
}
