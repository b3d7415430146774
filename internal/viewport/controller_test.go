package viewport

import (
	"errors"
	"math"
	"testing"
	"time"

	"revealboard/internal/transition"
)

const frame = 16 * time.Millisecond

var home = transition.Vec3{X: 0, Y: 0, Z: -10}

func newTestController(t *testing.T) (*Controller, *OrthoCamera) {
	t.Helper()
	cam := NewOrthoCamera(20, home, 800, 600)
	c, err := New(cam, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	return c, cam
}

// settle ticks until the lock is released
func settle(t *testing.T, c *Controller) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		if !c.driver.Active() {
			return
		}
		c.Tick(frame)
	}
	t.Fatal("transition did not finish")
}

func TestNew_NoCameraIsConfigurationError(t *testing.T) {
	_, err := New(nil, DefaultConfig())
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("err = %v, want *ConfigurationError", err)
	}
	if !errors.Is(err, ErrNoCamera) {
		t.Errorf("err should wrap ErrNoCamera: %v", err)
	}
}

func TestInitialState(t *testing.T) {
	c, _ := newTestController(t)
	if c.State() != FullView || c.Lock() != Free || c.HistoryLen() != 0 {
		t.Errorf("got state=%v lock=%v history=%d", c.State(), c.Lock(), c.HistoryLen())
	}
	if c.SetFullView() {
		t.Error("SetFullView from FullView should be a no-op")
	}
}

func TestToggleZoom_ZoomsAndTakesLock(t *testing.T) {
	c, cam := newTestController(t)
	target := transition.Vec3{X: 3, Y: 4, Z: 0}

	if !c.ToggleZoom(target, 5.25) {
		t.Fatal("toggle zoom rejected")
	}
	if !c.Busy() {
		t.Fatal("lock should be busy during transition")
	}
	if c.State() != FullView {
		t.Errorf("state should commit only on completion, got %v", c.State())
	}
	if c.HistoryLen() != 1 {
		t.Errorf("history = %d, want 1", c.HistoryLen())
	}

	settle(t, c)
	if c.State() != Zoomed || c.Busy() {
		t.Errorf("after settle: state=%v lock=%v", c.State(), c.Lock())
	}
	want := transition.Vec3{X: 3, Y: 4, Z: -10}
	if cam.Position() != want || cam.Size() != 5.25 {
		t.Errorf("camera = %+v size %v, want %+v size 5.25", cam.Position(), cam.Size(), want)
	}
	if c.ZoomTarget() != want {
		t.Errorf("committed zoom target = %+v, want %+v", c.ZoomTarget(), want)
	}
}

func TestToggleZoom_SameTargetTwiceActsAsUndo(t *testing.T) {
	c, cam := newTestController(t)
	target := transition.Vec3{X: 7, Y: -2}
	before := c.HistoryLen()

	c.ToggleZoom(target, 5.25)
	settle(t, c)
	c.ToggleZoom(target, 5.25)
	settle(t, c)

	if c.State() != FullView {
		t.Errorf("state = %v, want full_view", c.State())
	}
	if cam.Position() != home || cam.Size() != 20 {
		t.Errorf("camera at %+v size %v, want pre-zoom framing", cam.Position(), cam.Size())
	}
	if c.HistoryLen() != before {
		t.Errorf("history = %d, want %d (pushed entry consumed)", c.HistoryLen(), before)
	}
}

func TestToggleZoom_DifferentTargetDoesNotPush(t *testing.T) {
	c, cam := newTestController(t)
	c.ToggleZoom(transition.Vec3{X: 1}, 5.25)
	settle(t, c)
	c.ToggleZoom(transition.Vec3{X: 9}, 5.25)
	settle(t, c)

	if c.HistoryLen() != 1 {
		t.Errorf("history = %d, want 1", c.HistoryLen())
	}
	if cam.Position().X != 9 || c.State() != Zoomed {
		t.Errorf("camera x=%v state=%v", cam.Position().X, c.State())
	}

	c.Undo()
	settle(t, c)
	if c.State() != FullView || cam.Position() != home {
		t.Errorf("undo should return to full view, got %v at %+v", c.State(), cam.Position())
	}
}

func TestToggleZoom_GroupZoomIsPreserved(t *testing.T) {
	c, cam := newTestController(t)
	group := transition.Vec3{X: 10, Y: 10}
	card := transition.Vec3{X: 12, Y: 11}

	c.ToggleZoom(group, 14)
	settle(t, c)
	if c.State() != ZoomedGroup {
		t.Fatalf("state = %v, want zoomed_group", c.State())
	}

	c.ToggleZoom(card, 5.25)
	settle(t, c)
	if c.State() != Zoomed || c.HistoryLen() != 2 {
		t.Fatalf("state=%v history=%d, want zoomed with 2 records", c.State(), c.HistoryLen())
	}

	// clicking the card again returns to the group framing
	c.ToggleZoom(card, 5.25)
	settle(t, c)
	if c.State() != ZoomedGroup || cam.Size() != 14 {
		t.Errorf("state=%v size=%v, want group framing", c.State(), cam.Size())
	}
	if math.Abs(cam.Position().X-10) > 1e-9 {
		t.Errorf("camera x = %v, want 10", cam.Position().X)
	}
}

func TestBusy_DropsOneShotRequests(t *testing.T) {
	c, _ := newTestController(t)
	c.ToggleZoom(transition.Vec3{X: 1}, 5.25)

	if c.ToggleZoom(transition.Vec3{X: 5}, 5.25) {
		t.Error("toggle zoom while busy should be dropped")
	}
	if c.Undo() {
		t.Error("undo while busy should be dropped")
	}
	if c.SetFreeView() {
		t.Error("free view while busy should be dropped")
	}
	if c.HistoryLen() != 1 {
		t.Errorf("dropped requests must not touch history, got %d", c.HistoryLen())
	}
	settle(t, c)
	if c.ZoomTarget().X != 1 {
		t.Errorf("dropped request was applied: target %+v", c.ZoomTarget())
	}
}

func TestUndo_EmptyHistoryIsNoop(t *testing.T) {
	c, _ := newTestController(t)
	if c.Undo() {
		t.Error("undo with empty history should be a no-op")
	}
}

func TestSetFullView_PushesAndReturnsHome(t *testing.T) {
	c, cam := newTestController(t)
	c.ToggleZoom(transition.Vec3{X: 4, Y: 4}, 5.25)
	settle(t, c)

	if !c.SetFullView() {
		t.Fatal("SetFullView from zoomed rejected")
	}
	settle(t, c)
	if c.State() != FullView || cam.Position() != home || cam.Size() != 20 {
		t.Errorf("state=%v pos=%+v size=%v", c.State(), cam.Position(), cam.Size())
	}
	if c.HistoryLen() != 2 {
		t.Errorf("history = %d, want 2", c.HistoryLen())
	}

	// undo goes back to the zoomed framing
	c.Undo()
	settle(t, c)
	if c.State() != Zoomed || cam.Position().X != 4 {
		t.Errorf("undo after full view: state=%v pos=%+v", c.State(), cam.Position())
	}
}

func TestPan_OnlyInFreeMovement(t *testing.T) {
	c, _ := newTestController(t)
	if c.PanBegin(Point{X: 400, Y: 300}) {
		t.Fatal("pan must be rejected outside free movement")
	}
	if c.HistoryLen() != 0 || c.Busy() {
		t.Error("rejected pan mutated state")
	}
}

func TestPan_FollowsCursorAndHoldsLock(t *testing.T) {
	c, cam := newTestController(t)
	c.SetFreeView()

	if !c.PanBegin(Point{X: 400, Y: 300}) {
		t.Fatal("pan begin rejected")
	}
	if !c.Busy() || c.HistoryLen() != 1 {
		t.Fatalf("pan begin: busy=%v history=%d", c.Busy(), c.HistoryLen())
	}

	// 30px to the right at 40 world units / 600px
	c.PanMove(Point{X: 430, Y: 300})
	c.Tick(frame)
	wantX := -30 * (40.0 / 600.0)
	if math.Abs(cam.Position().X-wantX) > 1e-9 {
		t.Errorf("camera x = %v, want %v", cam.Position().X, wantX)
	}

	// holding still keeps the anchor under the cursor
	c.Tick(frame)
	if math.Abs(cam.Position().X-wantX) > 1e-9 {
		t.Errorf("camera drifted to %v", cam.Position().X)
	}
	if c.ToggleZoom(transition.Vec3{X: 1}, 5.25) {
		t.Error("zoom during pan should be dropped")
	}

	c.PanEnd()
	if c.Busy() || c.Panning() {
		t.Error("pan end should release the lock")
	}
}

func TestHistory_CapacityNeverExceedsDefault(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HistoryCapacity = 50
	c, err := New(NewOrthoCamera(20, home, 800, 600), cfg)
	if err != nil {
		t.Fatal(err)
	}
	c.SetFreeView()
	for i := 0; i < 15; i++ {
		if !c.PanBegin(Point{X: 400, Y: 300}) {
			t.Fatalf("pan %d rejected", i)
		}
		c.PanEnd()
	}
	if c.HistoryLen() != DefaultHistoryCapacity {
		t.Errorf("history len = %d, want %d", c.HistoryLen(), DefaultHistoryCapacity)
	}
}

func TestScrollZoom_DampsTowardClampedGoal(t *testing.T) {
	c, cam := newTestController(t)
	if c.ScrollZoom(1) {
		t.Fatal("scroll zoom outside free movement must be rejected")
	}
	c.SetFreeView()

	if !c.ScrollZoom(1) {
		t.Fatal("scroll zoom rejected")
	}
	if c.Busy() {
		t.Error("scroll zoom must not take the lock")
	}
	c.Tick(frame)
	if cam.Size() >= 20 || cam.Size() <= 10 {
		t.Errorf("after one frame size = %v, want between goal 10 and 20", cam.Size())
	}
	for i := 0; i < 500 && c.Scrolling(); i++ {
		c.Tick(frame)
	}
	if cam.Size() != 10 {
		t.Errorf("size = %v, want 10", cam.Size())
	}

	// goal is clamped to [MinZoom, initial size]
	c.ScrollZoom(5)
	for i := 0; i < 500 && c.Scrolling(); i++ {
		c.Tick(frame)
	}
	if cam.Size() != 5.25 {
		t.Errorf("size = %v, want clamp to 5.25", cam.Size())
	}
	c.ScrollZoom(-100)
	for i := 0; i < 500 && c.Scrolling(); i++ {
		c.Tick(frame)
	}
	if cam.Size() != 20 {
		t.Errorf("size = %v, want clamp to 20", cam.Size())
	}
}

func TestScrollZoom_StopsWhenStateChanges(t *testing.T) {
	c, cam := newTestController(t)
	c.SetFreeView()
	c.ScrollZoom(1)
	c.Tick(frame)
	c.ToggleZoom(transition.Vec3{X: 2}, 5.25)
	if c.Scrolling() {
		t.Error("one-shot transition should cancel scroll damping")
	}
	settle(t, c)
	if cam.Size() != 5.25 {
		t.Errorf("size = %v, want zoom size", cam.Size())
	}
}
