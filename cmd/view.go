package cmd

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"revealboard/internal/board"
	"revealboard/internal/session"
	"revealboard/internal/transition"
	"revealboard/internal/viewport"
)

// Card footprint in world units, measured from the card's centre
const (
	cardHalfW = 1.5
	cardHalfH = 1.0
)

// cellAspect is how much taller a terminal cell is than it is wide
const cellAspect = 2.0

const cameraDepth = -10

// fitCamera frames every card of decl on a w x h screen
func fitCamera(decl *board.Declaration, w, h, aspect float64) *viewport.OrthoCamera {
	if len(decl.Cards) == 0 {
		cam := viewport.NewOrthoCamera(10, transition.Vec3{Z: cameraDepth}, w, h)
		cam.Aspect = aspect
		return cam
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range decl.Cards {
		minX = math.Min(minX, c.Position.X-cardHalfW)
		maxX = math.Max(maxX, c.Position.X+cardHalfW)
		minY = math.Min(minY, c.Position.Y-cardHalfH)
		maxY = math.Max(maxY, c.Position.Y+cardHalfH)
	}
	halfW, halfH := (maxX-minX)/2, (maxY-minY)/2
	size := halfH
	if w > 0 && h > 0 {
		size = math.Max(halfH, halfW*h*aspect/w)
	}
	center := transition.Vec3{X: (minX + maxX) / 2, Y: (minY + maxY) / 2, Z: cameraDepth}
	cam := viewport.NewOrthoCamera(size*1.1, center, w, h)
	cam.Aspect = aspect
	return cam
}

// screenRect is a half-open cell rectangle
type screenRect struct {
	x0, y0, x1, y1 int
}

func (r screenRect) contains(x, y int) bool {
	return x >= r.x0 && x < r.x1 && y >= r.y0 && y < r.y1
}

// cardRect projects a card's footprint onto the screen
func cardRect(cam *viewport.OrthoCamera, pos transition.Vec3) screenRect {
	tl := cam.WorldToScreen(transition.Vec3{X: pos.X - cardHalfW, Y: pos.Y + cardHalfH})
	br := cam.WorldToScreen(transition.Vec3{X: pos.X + cardHalfW, Y: pos.Y - cardHalfH})
	return screenRect{
		x0: int(math.Round(tl.X)), y0: int(math.Round(tl.Y)),
		x1: int(math.Round(br.X)), y1: int(math.Round(br.Y)),
	}
}

// overlayButton is the cell range of the help trigger on the status line
func overlayButton(w, h int) screenRect {
	return screenRect{x0: w - 3, y0: h - 1, x1: w, y1: h}
}

// hitTest maps a cell to the session target under it. Later cards are
// drawn on top, so they win.
func hitTest(cam *viewport.OrthoCamera, snap session.Snapshot, x, y int) session.Target {
	if overlayButton(int(cam.Width), int(cam.Height)+1).contains(x, y) {
		return session.OverlayTarget
	}
	for i := len(snap.Nodes) - 1; i >= 0; i-- {
		n := snap.Nodes[i]
		if cardRect(cam, n.Position).contains(x, y) {
			return session.NodeTarget(n.ID)
		}
	}
	return session.NoTarget
}

var (
	styleOpened   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleClosed   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleHidden   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleInactive = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleStatus   = lipgloss.NewStyle().Reverse(true)
	styleOverlay  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func cardStyle(n session.NodeView) lipgloss.Style {
	switch {
	case n.Interaction == board.Hidden:
		return styleHidden
	case n.Interaction == board.Inactive:
		return styleInactive
	case n.Status == board.Opened || n.Status == board.Opening:
		return styleOpened
	default:
		return styleClosed
	}
}

type cell struct {
	ch    rune
	style *lipgloss.Style
}

// canvas is a grid of styled runes
type canvas struct {
	w, h  int
	cells [][]cell
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, cells: make([][]cell, h)}
	for y := range c.cells {
		c.cells[y] = make([]cell, w)
		for x := range c.cells[y] {
			c.cells[y][x].ch = ' '
		}
	}
	return c
}

func (c *canvas) set(x, y int, ch rune, st *lipgloss.Style) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = cell{ch: ch, style: st}
}

func (c *canvas) text(x, y int, s string, st *lipgloss.Style) {
	for i, r := range []rune(s) {
		c.set(x+i, y, r, st)
	}
}

func (c *canvas) String() string {
	var b strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].style == row[start].style {
				continue
			}
			var run strings.Builder
			for _, cl := range row[start:x] {
				run.WriteRune(cl.ch)
			}
			if st := row[start].style; st != nil {
				b.WriteString(st.Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			start = x
		}
	}
	return b.String()
}

// drawCard outlines a card and labels it with its face
func (c *canvas) drawCard(r screenRect, n session.NodeView) {
	st := cardStyle(n)
	edge, fill := '-', ' '
	if n.Kind == board.KindLocation {
		edge = '='
	}
	if n.Interaction == board.Hidden {
		edge, fill = '.', '.'
	}
	for y := r.y0; y < r.y1; y++ {
		for x := r.x0; x < r.x1; x++ {
			ch := fill
			switch {
			case (y == r.y0 || y == r.y1-1) && (x == r.x0 || x == r.x1-1):
				ch = '+'
			case y == r.y0 || y == r.y1-1:
				ch = edge
			case x == r.x0 || x == r.x1-1:
				ch = '|'
			}
			c.set(x, y, ch, &st)
		}
	}
	if n.Interaction == board.Hidden {
		return
	}
	label := cardFace(n)
	inner := r.x1 - r.x0 - 2
	if inner <= 0 {
		return
	}
	if len([]rune(label)) > inner {
		label = string([]rune(label)[:inner])
	}
	c.text(r.x0+1, (r.y0+r.y1)/2, label, &st)
}

// cardFace is what the player sees: the title once the card faces up
func cardFace(n session.NodeView) string {
	switch n.Status {
	case board.Opened:
		return n.Title
	case board.Opening, board.Closing:
		return "~" + n.Key + "~"
	default:
		return n.Key
	}
}

const helpText = `left click   zoom to a card / location
right click  turn a card over
middle drag  pan       wheel  zoom
F  full view   Z  undo   Esc  close help
q  quit`

// render draws the board, the status line and the overlay
func render(cam *viewport.OrthoCamera, snap session.Snapshot, w, h int) string {
	if w <= 0 || h <= 1 {
		return ""
	}
	cv := newCanvas(w, h-1)
	for _, n := range snap.Nodes {
		cv.drawCard(cardRect(cam, n.Position), n)
	}
	out := cv.String()

	if snap.Overlay {
		box := styleOverlay.Render(helpText)
		out = lipgloss.Place(w, h-1, lipgloss.Center, lipgloss.Center, box)
	}

	status := statusLine(snap)
	pad := w - 3 - lipgloss.Width(status)
	if pad < 0 {
		pad = 0
	}
	return out + "\n" + styleStatus.Render(status+strings.Repeat(" ", pad)) + "[?]"
}

func statusLine(snap session.Snapshot) string {
	return fmt.Sprintf(" %s  %s  budget %d/%d  undo %d",
		snap.View, snap.Lock, snap.BudgetRemaining, snap.BudgetTotal, snap.HistoryLen)
}
