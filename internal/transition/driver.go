package transition

import (
	"errors"
	"time"
)

// ErrActive is returned by Start while another transition is still running
var ErrActive = errors.New("transition already active")

// Pose is the interpolated pair: a scalar (camera size, flip angle) and a vector
type Pose struct {
	Size float64 `json:"size"`
	Pos  Vec3    `json:"pos"`
}

// LerpPose interpolates size and position with the same t
func LerpPose(a, b Pose, t float64) Pose {
	return Pose{
		Size: Lerp(a.Size, b.Size, t),
		Pos:  LerpVec(a.Pos, b.Pos, t),
	}
}

// Handle identifies one started transition
type Handle uint64

// Driver runs at most one time-bounded transition at a time.
// It never suspends; the owner calls Tick once per frame.
type Driver struct {
	from, to Pose
	duration time.Duration
	elapsed  time.Duration
	active   bool
	handle   Handle
	seq      Handle
}

// Start begins a transition from -> to over duration.
// Replacing a running transition requires an explicit Cancel first.
func (d *Driver) Start(from, to Pose, duration time.Duration) (Handle, error) {
	if d.active {
		return 0, ErrActive
	}
	d.seq++
	d.from = from
	d.to = to
	d.duration = duration
	d.elapsed = 0
	d.active = true
	d.handle = d.seq
	return d.handle, nil
}

// Tick advances the transition by dt and returns the current pose.
// When done is true the pose is exactly the target and the driver is idle.
func (d *Driver) Tick(dt time.Duration) (Pose, bool) {
	if !d.active {
		return d.to, true
	}
	d.elapsed += dt
	if d.duration <= 0 || d.elapsed >= d.duration {
		d.active = false
		return d.to, true
	}
	t := Clamp01(float64(d.elapsed) / float64(d.duration))
	return LerpPose(d.from, d.to, t), false
}

// Cancel stops the transition started under h. Stale handles are ignored.
func (d *Driver) Cancel(h Handle) bool {
	if !d.active || h != d.handle {
		return false
	}
	d.active = false
	return true
}

// Active reports whether a transition is in flight
func (d *Driver) Active() bool { return d.active }

// Target returns the pose the current (or last) transition ends at
func (d *Driver) Target() Pose { return d.to }
