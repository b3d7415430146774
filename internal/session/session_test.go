package session

import (
	"bytes"
	"errors"
	"log"
	"math"
	"strings"
	"testing"
	"time"

	"revealboard/internal/board"
	"revealboard/internal/config"
	"revealboard/internal/transition"
	"revealboard/internal/viewport"
)

const frame = 50 * time.Millisecond

func testConfig() config.Config {
	cfg := config.Default()
	cfg.ZoomDuration = 100 * time.Millisecond
	cfg.FlipDuration = 100 * time.Millisecond
	cfg.BudgetTotal = 2
	return cfg
}

func testDecl() *board.Declaration {
	return &board.Declaration{
		Title: "test board",
		Cards: []board.CardDecl{
			{Key: "door", Title: "Door", CostsBudget: true},
			{Key: "secret", Title: "Secret", Position: transition.Vec3{X: 3}},
			{Key: "room", Title: "Room", Kind: board.KindLocation,
				Position: transition.Vec3{X: 10}, ZoomOffset: transition.Vec3{X: 1, Y: 1}, ZoomSize: 12},
			{Key: "locked", Title: "Locked", Position: transition.Vec3{Y: 4}},
		},
		Deps: []board.DepDecl{
			{Source: "door", Target: "secret", Type: board.DepHide},
			{Source: "door", Target: "locked", Type: board.DepActivator},
		},
	}
}

func testCamera() *viewport.OrthoCamera {
	return viewport.NewOrthoCamera(20, transition.Vec3{Z: -10}, 800, 600)
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := New(testConfig(), testDecl(), testCamera())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func mustLookup(t *testing.T, s *Session, key string) board.NodeID {
	t.Helper()
	id, ok := s.Lookup(key)
	if !ok {
		t.Fatalf("card %q not found", key)
	}
	return id
}

func settle(t *testing.T, s *Session) Snapshot {
	t.Helper()
	if !s.Settle(frame, 5*time.Second) {
		t.Fatal("session did not settle")
	}
	return s.Snapshot()
}

func TestNew_NoCamera(t *testing.T) {
	var buf bytes.Buffer
	_, err := New(testConfig(), testDecl(), nil, WithLogger(log.New(&buf, "", 0)))
	if err == nil {
		t.Fatal("expected error without camera")
	}
	var cerr *viewport.ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigurationError, got %T", err)
	}
	if !errors.Is(err, viewport.ErrNoCamera) {
		t.Errorf("expected ErrNoCamera in chain, got %v", err)
	}
	if !strings.Contains(buf.String(), "[session]") {
		t.Errorf("expected logged configuration error, got %q", buf.String())
	}
}

func TestNew_BadDeclaration(t *testing.T) {
	decl := testDecl()
	decl.Deps = append(decl.Deps, board.DepDecl{Source: "door", Target: "nowhere", Type: board.DepOpen})
	if _, err := New(testConfig(), decl, testCamera()); err == nil {
		t.Fatal("expected error for unknown dependency target")
	}
}

func TestNew_DeclarationBudgetWins(t *testing.T) {
	decl := testDecl()
	decl.Budget = 7
	s, err := New(testConfig(), decl, testCamera())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if snap := s.Snapshot(); snap.BudgetTotal != 7 || snap.BudgetRemaining != 7 {
		t.Errorf("budget = %d/%d, want 7/7", snap.BudgetRemaining, snap.BudgetTotal)
	}
}

func TestInitialState(t *testing.T) {
	snap := newTestSession(t).Snapshot()
	if snap.View != viewport.FullView || snap.Lock != viewport.Free {
		t.Errorf("view = %s/%s, want full_view/free", snap.View, snap.Lock)
	}
	secret, _ := snap.Node("secret")
	if secret.Interaction != board.Hidden {
		t.Errorf("secret interaction = %s, want hidden", secret.Interaction)
	}
	locked, _ := snap.Node("locked")
	if locked.Interaction != board.Inactive {
		t.Errorf("locked interaction = %s, want inactive", locked.Interaction)
	}
}

func TestLeftClickZoomsCard(t *testing.T) {
	s := newTestSession(t)
	s.Post(PointerDown{Button: ButtonLeft, Target: NodeTarget(mustLookup(t, s, "door"))})
	s.Tick(0)
	if got := s.Snapshot().Lock; got != viewport.Busy {
		t.Fatalf("lock during zoom = %s, want busy", got)
	}
	snap := settle(t, s)
	if snap.View != viewport.Zoomed {
		t.Fatalf("view = %s, want zoomed", snap.View)
	}
	want := transition.Pose{Size: 5.25, Pos: transition.Vec3{Z: -10}}
	if snap.Camera != want {
		t.Errorf("camera = %+v, want %+v", snap.Camera, want)
	}
	if snap.HistoryLen != 1 {
		t.Errorf("history = %d, want 1", snap.HistoryLen)
	}
}

func TestLeftClickLocationFramesGroup(t *testing.T) {
	s := newTestSession(t)
	s.Post(PointerDown{Button: ButtonLeft, Target: NodeTarget(mustLookup(t, s, "room"))})
	snap := settle(t, s)
	if snap.View != viewport.ZoomedGroup {
		t.Fatalf("view = %s, want zoomed_group", snap.View)
	}
	want := transition.Pose{Size: 12, Pos: transition.Vec3{X: 11, Y: 1, Z: -10}}
	if snap.Camera != want {
		t.Errorf("camera = %+v, want %+v", snap.Camera, want)
	}
}

func TestHiddenCardIgnoresClicks(t *testing.T) {
	s := newTestSession(t)
	id := mustLookup(t, s, "secret")
	s.Post(PointerDown{Button: ButtonLeft, Target: NodeTarget(id)})
	s.Post(PointerDown{Button: ButtonRight, Target: NodeTarget(id)})
	s.Tick(frame)

	snap := s.Snapshot()
	if snap.View != viewport.FullView || snap.Lock != viewport.Free {
		t.Errorf("hidden card moved the viewport: %s/%s", snap.View, snap.Lock)
	}
	if n, _ := snap.Node("secret"); n.Status != board.Closed {
		t.Errorf("hidden card flipped: %s", n.Status)
	}
}

func TestRightClickFlipsAndReveals(t *testing.T) {
	s := newTestSession(t)
	var events []board.Event
	s.Subscribe(func(ev board.Event) { events = append(events, ev) })

	s.Post(PointerDown{Button: ButtonRight, Target: NodeTarget(mustLookup(t, s, "door"))})
	s.Tick(0)
	if n, _ := s.Snapshot().Node("door"); n.Status != board.Opening {
		t.Fatalf("door status = %s, want opening", n.Status)
	}

	snap := settle(t, s)
	door, _ := snap.Node("door")
	secret, _ := snap.Node("secret")
	locked, _ := snap.Node("locked")
	if door.Status != board.Opened {
		t.Errorf("door status = %s, want opened", door.Status)
	}
	if secret.Interaction != board.Active {
		t.Errorf("secret interaction = %s, want active", secret.Interaction)
	}
	if locked.Interaction != board.Active {
		t.Errorf("locked interaction = %s, want active", locked.Interaction)
	}
	if snap.BudgetRemaining != 1 {
		t.Errorf("budget remaining = %d, want 1", snap.BudgetRemaining)
	}
	if len(events) != 1 || events[0].Kind != board.EventOpened || events[0].Key != "door" {
		t.Errorf("events = %+v", events)
	}
}

func TestRightClickInactiveIgnored(t *testing.T) {
	s := newTestSession(t)
	s.Post(PointerDown{Button: ButtonRight, Target: NodeTarget(mustLookup(t, s, "locked"))})
	snap := settle(t, s)
	if n, _ := snap.Node("locked"); n.Status != board.Closed {
		t.Errorf("inactive card flipped: %s", n.Status)
	}
}

func TestKeys(t *testing.T) {
	s := newTestSession(t)
	door := mustLookup(t, s, "door")

	s.Post(PointerDown{Button: ButtonLeft, Target: NodeTarget(door)})
	settle(t, s)
	s.Post(Key{Code: KeyF})
	snap := settle(t, s)
	if snap.View != viewport.FullView {
		t.Fatalf("after F view = %s, want full_view", snap.View)
	}
	if snap.Camera.Size != 20 {
		t.Errorf("full view size = %g, want 20", snap.Camera.Size)
	}

	s.Post(Key{Code: KeyZ})
	snap = settle(t, s)
	if snap.View != viewport.Zoomed {
		t.Errorf("after Z view = %s, want zoomed", snap.View)
	}

	s.Post(Key{Code: KeyOther})
	s.Tick(frame)
	if got := s.Snapshot().View; got != viewport.Zoomed {
		t.Errorf("unbound key changed view to %s", got)
	}
}

func TestOverlay(t *testing.T) {
	s := newTestSession(t)
	s.Post(PointerDown{Button: ButtonLeft, Target: OverlayTarget})
	s.Tick(frame)
	if !s.OverlayVisible() {
		t.Fatal("overlay should show after click")
	}
	if s.Snapshot().View != viewport.FullView {
		t.Error("overlay click must not move the viewport")
	}
	s.Post(Key{Code: KeyEscape})
	s.Tick(frame)
	if s.OverlayVisible() {
		t.Fatal("overlay should hide after escape")
	}
}

func TestScrollZoom(t *testing.T) {
	s := newTestSession(t)
	s.Post(Scroll{Amount: 1})
	s.Tick(frame)
	if got := s.Snapshot().View; got != viewport.FreeMovement {
		t.Fatalf("view = %s, want free_movement", got)
	}
	snap := settle(t, s)
	if math.Abs(snap.Camera.Size-10) > 1e-9 {
		t.Errorf("size = %g, want 10", snap.Camera.Size)
	}
}

func TestMiddleDragPans(t *testing.T) {
	s := newTestSession(t)
	s.Post(PointerDown{Button: ButtonMiddle, Screen: viewport.Point{X: 400, Y: 300}})
	s.Post(PointerMove{Screen: viewport.Point{X: 460, Y: 300}})
	s.Tick(frame)

	snap := s.Snapshot()
	if snap.View != viewport.FreeMovement || snap.Lock != viewport.Busy {
		t.Fatalf("during drag = %s/%s, want free_movement/busy", snap.View, snap.Lock)
	}
	if math.Abs(snap.Camera.Pos.X+4) > 1e-9 {
		t.Errorf("camera x = %g, want -4", snap.Camera.Pos.X)
	}
	if s.Idle() {
		t.Error("session with a drag held should not be idle")
	}

	s.Post(PointerUp{Button: ButtonMiddle})
	s.Tick(frame)
	if got := s.Snapshot().Lock; got != viewport.Free {
		t.Errorf("lock after release = %s, want free", got)
	}
}

func TestInputsProcessedBeforeDrivers(t *testing.T) {
	s := newTestSession(t)
	door := mustLookup(t, s, "door")
	s.Post(PointerDown{Button: ButtonLeft, Target: NodeTarget(door)})
	s.Tick(100 * time.Millisecond)
	// the zoom started and finished inside one tick
	if got := s.Snapshot().View; got != viewport.Zoomed {
		t.Errorf("view = %s, want zoomed", got)
	}
}
