package viewport

import (
	"math"
	"time"

	"revealboard/internal/transition"
)

// Config holds the viewport tuning parameters
type Config struct {
	ZoomDuration     time.Duration
	ZoomedSize       float64 // camera size when framing a single card
	MinZoom          float64
	ZoomScrollFactor float64 // size change per scroll unit
	ZoomSpeed        float64 // exponential approach rate for scroll zoom, 1/s
	HistoryCapacity  int
}

// DefaultConfig returns the stock tuning
func DefaultConfig() Config {
	return Config{
		ZoomDuration:     250 * time.Millisecond,
		ZoomedSize:       5.25,
		MinZoom:          5.25,
		ZoomScrollFactor: 10,
		ZoomSpeed:        10,
		HistoryCapacity:  DefaultHistoryCapacity,
	}
}

// scrollSettle is the size gap under which scroll damping snaps to its goal
const scrollSettle = 1e-3

// Controller is the viewport state machine. All methods must be called
// from the single thread that drives Tick.
type Controller struct {
	cam     Camera
	cfg     Config
	state   ViewState
	lock    Lock
	history *History

	driver  transition.Driver
	pending ViewState // state committed when the driver finishes

	zoomTarget transition.Vec3
	original   transition.Pose
	maxZoom    float64

	panning   bool
	panAnchor transition.Vec3
	cursor    Point

	scrolling bool
	zoomGoal  float64
}

// New seeds a controller with the camera's current framing as the full view
func New(cam Camera, cfg Config) (*Controller, error) {
	if cam == nil {
		return nil, &ConfigurationError{Component: "viewport", Err: ErrNoCamera}
	}
	original := transition.Pose{Size: cam.Size(), Pos: cam.Position()}
	return &Controller{
		cam:        cam,
		cfg:        cfg,
		state:      FullView,
		lock:       Free,
		history:    NewHistory(cfg.HistoryCapacity),
		zoomTarget: original.Pos,
		original:   original,
		maxZoom:    original.Size,
	}, nil
}

func (c *Controller) State() ViewState { return c.state }

func (c *Controller) Lock() Lock { return c.lock }

func (c *Controller) Busy() bool { return c.lock == Busy }

// History returns the recorded framings, oldest first
func (c *Controller) History() []ViewRecord { return c.history.Records() }

func (c *Controller) HistoryLen() int { return c.history.Len() }

// ZoomTarget is the focus committed by the last finished transition
func (c *Controller) ZoomTarget() transition.Vec3 { return c.zoomTarget }

func (c *Controller) Panning() bool { return c.panning }

func (c *Controller) Scrolling() bool { return c.scrolling }

// Pose returns the camera's current framing
func (c *Controller) Pose() transition.Pose {
	return transition.Pose{Size: c.cam.Size(), Pos: c.cam.Position()}
}

func (c *Controller) record() ViewRecord {
	return ViewRecord{State: c.state, Size: c.cam.Size(), Position: c.cam.Position()}
}

// startTransition takes the lock and animates toward to, committing next on completion
func (c *Controller) startTransition(to transition.Pose, next ViewState, save bool) bool {
	if _, err := c.driver.Start(c.Pose(), to, c.cfg.ZoomDuration); err != nil {
		return false
	}
	if save {
		c.history.Push(c.record())
	}
	c.scrolling = false
	c.pending = next
	c.lock = Busy
	return true
}

// SetFullView animates back to the initial framing
func (c *Controller) SetFullView() bool {
	if c.lock == Busy || c.state == FullView {
		return false
	}
	return c.startTransition(c.original, FullView, true)
}

// SetFreeView switches to free movement immediately
func (c *Controller) SetFreeView() bool {
	if c.lock == Busy || c.state == FreeMovement {
		return false
	}
	c.state = FreeMovement
	return true
}

// ToggleZoom frames target with the given camera size. Clicking the committed
// zoom target again undoes the zoom.
func (c *Controller) ToggleZoom(target transition.Vec3, size float64) bool {
	if c.lock == Busy {
		return false
	}
	// keep camera depth
	focus := transition.Vec3{X: target.X, Y: target.Y, Z: c.cam.Position().Z}
	next := Zoomed
	if math.Abs(size-c.cfg.ZoomedSize) > transition.Epsilon {
		next = ZoomedGroup
	}
	to := transition.Pose{Size: size, Pos: focus}

	if !c.state.IsZoomed() {
		return c.startTransition(to, next, true)
	}
	if focus.ApproxEqual(c.zoomTarget) {
		return c.Undo()
	}
	// group framings stay on the history so undo can return to them
	return c.startTransition(to, next, c.state == ZoomedGroup)
}

// Undo returns to the most recent recorded framing. Undo is not recorded.
func (c *Controller) Undo() bool {
	if c.lock == Busy || c.history.Len() == 0 {
		return false
	}
	prev, _ := c.history.Pop()
	return c.startTransition(transition.Pose{Size: prev.Size, Pos: prev.Position}, prev.State, false)
}

// PanBegin starts a drag at screen point p
func (c *Controller) PanBegin(p Point) bool {
	if c.state != FreeMovement || c.lock == Busy || c.panning {
		return false
	}
	c.history.Push(c.record())
	c.lock = Busy
	c.panning = true
	c.cursor = p
	c.panAnchor = c.cam.ScreenToWorld(p)
	return true
}

// PanMove updates the cursor; the camera follows on the next Tick
func (c *Controller) PanMove(p Point) {
	c.cursor = p
}

// PanEnd releases the drag
func (c *Controller) PanEnd() bool {
	if !c.panning {
		return false
	}
	c.panning = false
	c.lock = Free
	return true
}

// ScrollZoom retargets the free-movement zoom; the size damps toward the goal each tick
func (c *Controller) ScrollZoom(amount float64) bool {
	if c.state != FreeMovement || c.driver.Active() {
		return false
	}
	base := c.cam.Size()
	if c.scrolling {
		base = c.zoomGoal
	}
	c.zoomGoal = transition.Clamp(base-amount*c.cfg.ZoomScrollFactor, c.cfg.MinZoom, c.maxZoom)
	c.scrolling = true
	return true
}

// StopScrollZoom cancels any damping in progress, leaving the current size
func (c *Controller) StopScrollZoom() {
	c.scrolling = false
}

// Tick advances the active transition, pan and scroll damping by dt
func (c *Controller) Tick(dt time.Duration) {
	if c.driver.Active() {
		pose, done := c.driver.Tick(dt)
		c.apply(pose)
		if done {
			c.state = c.pending
			c.zoomTarget = pose.Pos
			c.lock = Free
		}
	}

	if c.panning {
		diff := c.panAnchor.Sub(c.cam.ScreenToWorld(c.cursor))
		c.cam.SetPosition(c.cam.Position().Add(diff))
	}

	if c.scrolling {
		if c.state != FreeMovement {
			c.scrolling = false
			return
		}
		size := transition.Damp(c.cam.Size(), c.zoomGoal, c.cfg.ZoomSpeed, dt.Seconds())
		if math.Abs(size-c.zoomGoal) < scrollSettle {
			size = c.zoomGoal
			c.scrolling = false
		}
		c.cam.SetSize(size)
	}
}

func (c *Controller) apply(p transition.Pose) {
	c.cam.SetSize(p.Size)
	c.cam.SetPosition(p.Pos)
}
