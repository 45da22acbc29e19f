package render

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/patchwork/pkg/math3d"
)

// Orbit defaults and zoom limits.
const (
	DefaultOrbitDistance = 8.0
	DefaultOrbitAngle    = 45.0
	MinOrbitDistance     = 1.0
	MaxOrbitDistance     = 20.0
)

// Orbit is a camera on a sphere around the origin, aimed at Target.
// Angles are in degrees: AngleX is the polar angle from +Y and AngleY the
// azimuth in the XZ plane. Neither is clamped.
type Orbit struct {
	Distance float64
	AngleX   float64
	AngleY   float64
	Target   math3d.Vec3
}

// NewOrbit returns an orbit in its reset position looking at target.
func NewOrbit(target math3d.Vec3) *Orbit {
	o := &Orbit{Target: target}
	o.Reset()
	return o
}

// Rotate adds dYaw to the azimuth and dPitch to the polar angle.
func (o *Orbit) Rotate(dYaw, dPitch float64) {
	o.AngleY += dYaw
	o.AngleX += dPitch
}

// Zoom moves the eye by delta, keeping the distance within
// [MinOrbitDistance, MaxOrbitDistance].
func (o *Orbit) Zoom(delta float64) {
	o.Distance = math.Max(MinOrbitDistance, math.Min(MaxOrbitDistance, o.Distance+delta))
}

// Reset restores distance 8 and both angles to 45°.
func (o *Orbit) Reset() {
	o.Distance = DefaultOrbitDistance
	o.AngleX = DefaultOrbitAngle
	o.AngleY = DefaultOrbitAngle
}

// Eye returns the eye position
// distance·(cos(aY)·sin(aX), cos(aX), sin(aY)·sin(aX)).
func (o *Orbit) Eye() math3d.Vec3 {
	ax, ay := math3d.Radians(o.AngleX), math3d.Radians(o.AngleY)
	return math3d.V3(
		math.Cos(ay)*math.Sin(ax),
		math.Cos(ax),
		math.Sin(ay)*math.Sin(ax),
	).Scale(o.Distance)
}

// Apply places cam at the eye looking at the target with world up.
func (o *Orbit) Apply(cam *Camera) {
	cam.SetPosition(o.Eye())
	cam.LookAt(o.Target)
}

// OrbitSpring eases a displayed orbit toward a goal orbit with critically
// damped springs, one per parameter.
type OrbitSpring struct {
	spring  harmonica.Spring
	current Orbit
	vel     [3]float64
}

// NewOrbitSpring creates a spring stepped fps times per second, starting at
// start.
func NewOrbitSpring(fps int, start Orbit) *OrbitSpring {
	return &OrbitSpring{
		spring:  harmonica.NewSpring(harmonica.FPS(fps), 8.0, 1.0),
		current: start,
	}
}

// Update advances one frame toward goal and returns the displayed orbit.
// The target is not animated.
func (s *OrbitSpring) Update(goal Orbit) Orbit {
	s.current.Distance, s.vel[0] = s.spring.Update(s.current.Distance, s.vel[0], goal.Distance)
	s.current.AngleX, s.vel[1] = s.spring.Update(s.current.AngleX, s.vel[1], goal.AngleX)
	s.current.AngleY, s.vel[2] = s.spring.Update(s.current.AngleY, s.vel[2], goal.AngleY)
	s.current.Target = goal.Target
	return s.current
}

// Snap jumps to o and stops all motion.
func (s *OrbitSpring) Snap(o Orbit) {
	s.current = o
	s.vel = [3]float64{}
}

// Current returns the displayed orbit.
func (s *OrbitSpring) Current() Orbit {
	return s.current
}
