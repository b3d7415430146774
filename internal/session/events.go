package session

import (
	"revealboard/internal/board"
	"revealboard/internal/viewport"
)

// Button is a pointer button
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// KeyCode is a keyboard key the session reacts to
type KeyCode int

const (
	KeyOther KeyCode = iota
	KeyF
	KeyZ
	KeyEscape
)

// TargetKind says what a pointer event landed on
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetNode
	TargetOverlay
)

// Target is the object under the pointer
type Target struct {
	Kind TargetKind
	Node board.NodeID
}

// NoTarget is a pointer event over empty board
var NoTarget = Target{Kind: TargetNone, Node: board.NoNode}

// OverlayTarget is a pointer event over the overlay trigger
var OverlayTarget = Target{Kind: TargetOverlay, Node: board.NoNode}

// NodeTarget is a pointer event over card id
func NodeTarget(id board.NodeID) Target {
	return Target{Kind: TargetNode, Node: id}
}

// Event is a logical input. Hosts translate their raw input into these.
type Event interface {
	event()
}

type PointerDown struct {
	Button Button
	Screen viewport.Point
	Target Target
}

type PointerUp struct {
	Button Button
	Screen viewport.Point
}

type PointerMove struct {
	Screen viewport.Point
}

// Scroll carries wheel movement; positive zooms in
type Scroll struct {
	Amount float64
}

type Key struct {
	Code KeyCode
}

func (PointerDown) event() {}

func (PointerUp) event() {}

func (PointerMove) event() {}

func (Scroll) event() {}

func (Key) event() {}
