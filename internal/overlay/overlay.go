// Package overlay is the help panel shown over the board. It has no
// coupling to the viewport or the cards.
package overlay

// Toggle tracks whether the overlay is shown.
type Toggle struct {
	visible bool
}

// Show displays the overlay.
func (t *Toggle) Show() { t.visible = true }

// Hide removes the overlay.
func (t *Toggle) Hide() { t.visible = false }

// Visible reports whether the overlay is shown.
func (t *Toggle) Visible() bool { return t.visible }
