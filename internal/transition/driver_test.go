package transition

import (
	"errors"
	"math"
	"testing"
	"time"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestDriver_LinearInterpolation(t *testing.T) {
	var d Driver
	from := Pose{Size: 10, Pos: Vec3{0, 0, -10}}
	to := Pose{Size: 5, Pos: Vec3{4, 8, -10}}
	if _, err := d.Start(from, to, 100*time.Millisecond); err != nil {
		t.Fatalf("start: %v", err)
	}

	p, done := d.Tick(25 * time.Millisecond)
	if done {
		t.Fatal("should not be done after a quarter of the duration")
	}
	if !approx(p.Size, 8.75) {
		t.Errorf("size = %v, want 8.75", p.Size)
	}
	if !approx(p.Pos.X, 1) || !approx(p.Pos.Y, 2) || !approx(p.Pos.Z, -10) {
		t.Errorf("pos = %+v, want {1 2 -10}", p.Pos)
	}

	p, done = d.Tick(25 * time.Millisecond)
	if done || !approx(p.Size, 7.5) {
		t.Errorf("halfway: size=%v done=%v", p.Size, done)
	}
}

func TestDriver_DoneReportsExactTarget(t *testing.T) {
	var d Driver
	from := Pose{Size: 1.0 / 3.0}
	to := Pose{Size: 0.1, Pos: Vec3{0.1, 0.2, 0.3}}
	if _, err := d.Start(from, to, 70*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	var p Pose
	done := false
	for i := 0; i < 100 && !done; i++ {
		p, done = d.Tick(16 * time.Millisecond)
	}
	if !done {
		t.Fatal("transition never finished")
	}
	if p != to {
		t.Errorf("final pose = %+v, want exactly %+v", p, to)
	}
	if d.Active() {
		t.Error("driver should be idle after done")
	}
}

func TestDriver_RejectsSecondStart(t *testing.T) {
	var d Driver
	h, err := d.Start(Pose{}, Pose{Size: 1}, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.Start(Pose{}, Pose{Size: 2}, time.Second); !errors.Is(err, ErrActive) {
		t.Fatalf("second start err = %v, want ErrActive", err)
	}
	if !d.Cancel(h) {
		t.Fatal("cancel with current handle should succeed")
	}
	if _, err := d.Start(Pose{}, Pose{Size: 2}, time.Second); err != nil {
		t.Fatalf("start after cancel: %v", err)
	}
	if d.Cancel(h) {
		t.Error("stale handle must not cancel the replacement")
	}
}

func TestDriver_ZeroDurationCompletesOnFirstTick(t *testing.T) {
	var d Driver
	to := Pose{Size: 3}
	d.Start(Pose{}, to, 0)
	p, done := d.Tick(0)
	if !done || p != to {
		t.Errorf("got %+v done=%v, want target and done", p, done)
	}
}

func TestDamp_ApproachesWithoutOvershoot(t *testing.T) {
	v := 20.0
	for i := 0; i < 200; i++ {
		next := Damp(v, 5, 10, 0.016)
		if next < 5 {
			t.Fatalf("overshoot at step %d: %v", i, next)
		}
		v = next
	}
	if math.Abs(v-5) > 1e-3 {
		t.Errorf("did not converge: %v", v)
	}
	if got := Damp(20, 5, 10, 1); got != 5 {
		t.Errorf("large dt should land on goal, got %v", got)
	}
}

func TestVec3_ApproxEqual(t *testing.T) {
	a := Vec3{1, 2, 3}
	if !a.ApproxEqual(Vec3{1, 2, 3.00001}) {
		t.Error("points within epsilon should be equal")
	}
	if a.ApproxEqual(Vec3{1, 2.1, 3}) {
		t.Error("points 0.1 apart should differ")
	}
}
