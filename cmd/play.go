package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"revealboard/internal/session"
	"revealboard/internal/viewport"
)

var (
	playFPS        int
	playWheelSteps float64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the stored board in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		if playFPS < 1 {
			return fmt.Errorf("--fps must be >= 1")
		}
		cfg, decl, err := loadBoard()
		if err != nil {
			return err
		}

		// Sized for a typical terminal; the first WindowSizeMsg corrects it
		cam := fitCamera(decl, 80, 23, cellAspect)
		logger := newLogger("play")
		s, err := session.New(cfg, decl, cam, session.WithLogger(newLogger("session")))
		if err != nil {
			return err
		}
		logger.Printf("board %q: %d cards, budget %d", decl.Title, len(decl.Cards), s.Snapshot().BudgetTotal)

		m := newPlayModel(s, cam, time.Second/time.Duration(playFPS))
		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
		_, err = p.Run()
		return err
	},
}

func init() {
	playCmd.Flags().IntVar(&playFPS, "fps", 30, "Frames per second")
	playCmd.Flags().Float64Var(&playWheelSteps, "wheel", 0.1, "Scroll amount per wheel notch")
	rootCmd.AddCommand(playCmd)
}

type frameMsg time.Time

func nextFrame(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return frameMsg(t) })
}

type playModel struct {
	s      *session.Session
	cam    *viewport.OrthoCamera
	frame  time.Duration
	last   time.Time
	width  int
	height int
}

func newPlayModel(s *session.Session, cam *viewport.OrthoCamera, frame time.Duration) *playModel {
	return &playModel{
		s:      s,
		cam:    cam,
		frame:  frame,
		width:  int(cam.Width),
		height: int(cam.Height) + 1,
	}
}

func (m *playModel) Init() tea.Cmd {
	return nextFrame(m.frame)
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.cam.Width = float64(msg.Width)
		m.cam.Height = float64(msg.Height - 1)
		return m, nil

	case frameMsg:
		now := time.Time(msg)
		dt := m.frame
		if !m.last.IsZero() {
			dt = now.Sub(m.last)
		}
		m.last = now
		m.s.Tick(dt)
		return m, nextFrame(m.frame)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "f", "F":
			m.s.Post(session.Key{Code: session.KeyF})
		case "z", "Z":
			m.s.Post(session.Key{Code: session.KeyZ})
		case "esc":
			m.s.Post(session.Key{Code: session.KeyEscape})
		}
		return m, nil

	case tea.MouseMsg:
		if ev, ok := m.translateMouse(msg); ok {
			m.s.Post(ev)
		}
		return m, nil
	}
	return m, nil
}

// translateMouse turns a terminal mouse report into a session event
func (m *playModel) translateMouse(msg tea.MouseMsg) (session.Event, bool) {
	p := viewport.Point{X: float64(msg.X), Y: float64(msg.Y)}

	switch msg.Action {
	case tea.MouseActionMotion:
		return session.PointerMove{Screen: p}, true

	case tea.MouseActionRelease:
		if msg.Button == tea.MouseButtonMiddle {
			return session.PointerUp{Button: session.ButtonMiddle, Screen: p}, true
		}
		return nil, false

	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return session.Scroll{Amount: playWheelSteps}, true
		case tea.MouseButtonWheelDown:
			return session.Scroll{Amount: -playWheelSteps}, true
		case tea.MouseButtonLeft:
			target := hitTest(m.cam, m.s.Snapshot(), msg.X, msg.Y)
			return session.PointerDown{Button: session.ButtonLeft, Screen: p, Target: target}, true
		case tea.MouseButtonRight:
			target := hitTest(m.cam, m.s.Snapshot(), msg.X, msg.Y)
			return session.PointerDown{Button: session.ButtonRight, Screen: p, Target: target}, true
		case tea.MouseButtonMiddle:
			return session.PointerDown{Button: session.ButtonMiddle, Screen: p, Target: session.NoTarget}, true
		}
	}
	return nil, false
}

func (m *playModel) View() string {
	return render(m.cam, m.s.Snapshot(), m.width, m.height)
}
