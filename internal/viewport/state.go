package viewport

import "fmt"

// ViewState is the framing mode of the viewport
type ViewState int

const (
	FullView ViewState = iota
	FreeMovement
	Zoomed
	ZoomedGroup
)

var viewStateNames = [...]string{"full_view", "free_movement", "zoomed", "zoomed_group"}

func (s ViewState) String() string {
	if s < 0 || int(s) >= len(viewStateNames) {
		return fmt.Sprintf("view_state(%d)", int(s))
	}
	return viewStateNames[s]
}

func (s ViewState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// IsZoomed reports whether s frames a single card or a card group
func (s ViewState) IsZoomed() bool { return s == Zoomed || s == ZoomedGroup }

// Lock is the exclusive interaction lock for one-shot transitions and panning
type Lock int

const (
	Free Lock = iota
	Busy
)

func (l Lock) String() string {
	if l == Busy {
		return "busy"
	}
	return "free"
}

func (l Lock) MarshalText() ([]byte, error) { return []byte(l.String()), nil }
