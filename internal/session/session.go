// Package session wires a viewport, a reveal board and the overlay into one
// player's view of a shared board declaration, and routes logical input events.
package session

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"revealboard/internal/board"
	"revealboard/internal/budget"
	"revealboard/internal/config"
	"revealboard/internal/overlay"
	"revealboard/internal/viewport"
)

// Option customises a Session
type Option func(*Session)

// WithLogger routes session and board diagnostics to l
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// Session is one player's board. It is single-threaded: Post, Tick and the
// accessors must be called from the goroutine that owns it.
type Session struct {
	ID string

	cfg     config.Config
	cam     viewport.Camera
	view    *viewport.Controller
	board   *board.Graph
	overlay overlay.Toggle
	queue   []Event
	logger  *log.Logger
}

// New builds a session over decl. The declaration's own budget, when set,
// takes precedence over cfg.BudgetTotal.
func New(cfg config.Config, decl *board.Declaration, cam viewport.Camera, opts ...Option) (*Session, error) {
	s := &Session{cfg: cfg, cam: cam, logger: log.New(io.Discard, "", 0)}
	for _, opt := range opts {
		opt(s)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session config: %w", err)
	}

	view, err := viewport.New(cam, viewport.Config{
		ZoomDuration:     cfg.ZoomDuration,
		ZoomedSize:       cfg.ZoomedSize,
		MinZoom:          cfg.MinZoom,
		ZoomScrollFactor: cfg.ZoomScrollFactor,
		ZoomSpeed:        cfg.ZoomSpeed,
		HistoryCapacity:  cfg.HistoryCapacity,
	})
	if err != nil {
		var cerr *viewport.ConfigurationError
		if errors.As(err, &cerr) {
			s.logger.Printf("[session] %v", cerr)
		}
		return nil, err
	}

	total := cfg.BudgetTotal
	if decl != nil && decl.Budget > 0 {
		total = decl.Budget
	}
	b, err := budget.New(total)
	if err != nil {
		return nil, err
	}

	g, err := board.New(decl, b, board.Options{
		FlipDuration: cfg.FlipDuration,
		ZoomSize:     cfg.ZoomedSize,
		Logger:       s.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build board: %w", err)
	}

	s.view = view
	s.board = g
	g.Start()
	return s, nil
}

// Post queues ev for the next Tick
func (s *Session) Post(ev Event) {
	s.queue = append(s.queue, ev)
}

// Tick processes queued input, then advances the viewport and the board by dt
func (s *Session) Tick(dt time.Duration) {
	queue := s.queue
	s.queue = nil
	for _, ev := range queue {
		s.handle(ev)
	}
	s.view.Tick(dt)
	s.board.Tick(dt)
}

func (s *Session) handle(ev Event) {
	switch ev := ev.(type) {
	case PointerDown:
		s.pointerDown(ev)
	case PointerUp:
		if ev.Button == ButtonMiddle {
			s.view.PanEnd()
		}
	case PointerMove:
		s.view.PanMove(ev.Screen)
	case Scroll:
		s.view.SetFreeView()
		s.view.ScrollZoom(ev.Amount)
	case Key:
		switch ev.Code {
		case KeyF:
			s.view.SetFullView()
		case KeyZ:
			s.view.Undo()
		case KeyEscape:
			s.overlay.Hide()
		}
	}
}

func (s *Session) pointerDown(ev PointerDown) {
	switch ev.Button {
	case ButtonLeft:
		switch ev.Target.Kind {
		case TargetOverlay:
			s.overlay.Show()
		case TargetNode:
			n, ok := s.board.Node(ev.Target.Node)
			if !ok || n.Interaction == board.Hidden {
				return
			}
			pos, size, _ := s.board.ZoomFraming(n.ID)
			s.view.ToggleZoom(pos, size)
		}
	case ButtonRight:
		if ev.Target.Kind != TargetNode {
			return
		}
		n, ok := s.board.Node(ev.Target.Node)
		if !ok || n.Interaction != board.Active {
			return
		}
		if !s.board.RequestFlip(n.ID) {
			s.logger.Printf("[session] flip %s refused", n.Key)
		}
	case ButtonMiddle:
		s.view.SetFreeView()
		s.view.PanBegin(ev.Screen)
	}
}

// Subscribe forwards the board's opened/closed notifications to fn
func (s *Session) Subscribe(fn func(board.Event)) {
	s.board.Subscribe(fn)
}

// Lookup resolves a card key
func (s *Session) Lookup(key string) (board.NodeID, bool) {
	return s.board.Lookup(key)
}

// Camera returns the camera the session drives
func (s *Session) Camera() viewport.Camera { return s.cam }

// Idle reports whether nothing is queued or animating
func (s *Session) Idle() bool {
	return len(s.queue) == 0 && !s.view.Busy() && !s.view.Scrolling() && !s.board.Flipping()
}

// OverlayVisible reports whether the overlay is shown
func (s *Session) OverlayVisible() bool { return s.overlay.Visible() }
