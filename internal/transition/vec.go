package transition

import "math"

// Epsilon is the distance under which two positions are considered equal
const Epsilon = 1e-4

// Vec3 is a world-space position
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dist returns the euclidean distance between v and o
func (v Vec3) Dist(o Vec3) float64 {
	d := v.Sub(o)
	return math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
}

// ApproxEqual reports whether v and o are within Epsilon of each other
func (v Vec3) ApproxEqual(o Vec3) bool {
	return v.Dist(o) < Epsilon
}

// LerpVec interpolates component-wise between a and b. t is not clamped.
func LerpVec(a, b Vec3, t float64) Vec3 {
	return Vec3{
		X: Lerp(a.X, b.X, t),
		Y: Lerp(a.Y, b.Y, t),
		Z: Lerp(a.Z, b.Z, t),
	}
}

// Lerp interpolates between a and b. t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 clamps t into [0, 1]
func Clamp01(t float64) float64 {
	return Clamp(t, 0, 1)
}

// Clamp clamps val into [min, max]
func Clamp(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Damp moves current toward goal by a frame-rate scaled fraction of the gap.
// speed is in 1/seconds; a step never overshoots the goal.
func Damp(current, goal, speed, dtSeconds float64) float64 {
	return Lerp(current, goal, Clamp01(speed*dtSeconds))
}
