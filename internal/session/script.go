package session

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"revealboard/internal/transition"
	"revealboard/internal/viewport"
)

// Step is one line of an input script: an input event or a pause
type Step struct {
	Line  int
	Event Event
	// Card is the key a left or right click targets, resolved when run
	Card string
	Wait time.Duration
}

// ParseScript reads a line-oriented input script:
//
//	left <card>          right <card>
//	middle-down <x> <y>  move <x> <y>  middle-up
//	scroll <amount>      key <F|Z|ESC>
//	overlay              wait <duration>
//
// Blank lines and lines starting with # are skipped.
func ParseScript(r io.Reader) ([]Step, error) {
	var steps []Step
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		step, err := parseStep(strings.Fields(text))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		step.Line = line
		steps = append(steps, step)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return steps, nil
}

func parseStep(f []string) (Step, error) {
	op, args := f[0], f[1:]
	want := map[string]int{
		"left": 1, "right": 1, "middle-down": 2, "move": 2, "middle-up": 0,
		"scroll": 1, "key": 1, "overlay": 0, "wait": 1,
	}
	n, ok := want[op]
	if !ok {
		return Step{}, fmt.Errorf("unknown command %q", op)
	}
	if len(args) != n {
		return Step{}, fmt.Errorf("%s takes %d argument(s), got %d", op, n, len(args))
	}

	switch op {
	case "left":
		return Step{Event: PointerDown{Button: ButtonLeft}, Card: args[0]}, nil
	case "right":
		return Step{Event: PointerDown{Button: ButtonRight}, Card: args[0]}, nil
	case "middle-down":
		p, err := parsePoint(args)
		if err != nil {
			return Step{}, err
		}
		return Step{Event: PointerDown{Button: ButtonMiddle, Screen: p, Target: NoTarget}}, nil
	case "move":
		p, err := parsePoint(args)
		if err != nil {
			return Step{}, err
		}
		return Step{Event: PointerMove{Screen: p}}, nil
	case "middle-up":
		return Step{Event: PointerUp{Button: ButtonMiddle}}, nil
	case "scroll":
		amount, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return Step{}, fmt.Errorf("scroll amount: %w", err)
		}
		return Step{Event: Scroll{Amount: amount}}, nil
	case "key":
		code, err := parseKey(args[0])
		if err != nil {
			return Step{}, err
		}
		return Step{Event: Key{Code: code}}, nil
	case "overlay":
		return Step{Event: PointerDown{Button: ButtonLeft, Target: OverlayTarget}}, nil
	default: // wait
		d, err := time.ParseDuration(args[0])
		if err != nil {
			return Step{}, fmt.Errorf("wait: %w", err)
		}
		if d <= 0 {
			return Step{}, fmt.Errorf("wait must be positive, got %s", d)
		}
		return Step{Wait: d}, nil
	}
}

func parsePoint(args []string) (viewport.Point, error) {
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return viewport.Point{}, fmt.Errorf("x: %w", err)
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return viewport.Point{}, fmt.Errorf("y: %w", err)
	}
	return viewport.Point{X: x, Y: y}, nil
}

func parseKey(s string) (KeyCode, error) {
	switch strings.ToUpper(s) {
	case "F":
		return KeyF, nil
	case "Z":
		return KeyZ, nil
	case "ESC", "ESCAPE":
		return KeyEscape, nil
	}
	return KeyOther, fmt.Errorf("unknown key %q", s)
}

// projector is implemented by cameras that can map world to screen
type projector interface {
	WorldToScreen(w transition.Vec3) viewport.Point
}

// Run feeds steps into the session. Each input is followed by one frame;
// a wait runs whole frames until its duration has elapsed.
func (s *Session) Run(steps []Step, frame time.Duration) error {
	if frame <= 0 {
		return fmt.Errorf("frame duration must be positive, got %s", frame)
	}
	for _, st := range steps {
		if st.Wait > 0 {
			for elapsed := time.Duration(0); elapsed < st.Wait; elapsed += frame {
				s.Tick(frame)
			}
			continue
		}
		ev := st.Event
		if st.Card != "" {
			down, ok := ev.(PointerDown)
			if !ok {
				return fmt.Errorf("line %d: card given for non-click step", st.Line)
			}
			id, ok := s.Lookup(st.Card)
			if !ok {
				return fmt.Errorf("line %d: unknown card %q", st.Line, st.Card)
			}
			down.Target = NodeTarget(id)
			if p, ok := s.cam.(projector); ok {
				n, _ := s.board.Node(id)
				down.Screen = p.WorldToScreen(n.Position)
			}
			ev = down
		}
		s.Post(ev)
		s.Tick(frame)
	}
	return nil
}

// Settle ticks whole frames until the session is idle or limit has elapsed.
// It reports whether the session became idle.
func (s *Session) Settle(frame, limit time.Duration) bool {
	if frame <= 0 {
		return s.Idle()
	}
	for elapsed := time.Duration(0); elapsed < limit; elapsed += frame {
		if s.Idle() {
			return true
		}
		s.Tick(frame)
	}
	return s.Idle()
}
