// Package scene holds the state of each demo: what it draws, where its
// camera is and how input changes either. Scenes are driven from one
// goroutine; none of them is safe for concurrent use.
package scene

import (
	"github.com/taigrr/patchwork/pkg/math3d"
	"github.com/taigrr/patchwork/pkg/render"
)

// Scene is one demo drawing into a render.Device.
type Scene interface {
	// Resize follows a change of the visible target size.
	Resize(width, height int)
	// Update advances animation by one frame.
	Update()
	// Render draws one frame into the visible target.
	Render()
	// Status is a one-line summary for the HUD.
	Status() string
}

// Options are the settings every scene shares.
type Options struct {
	Background render.Color
	FPS        int
	Smooth     bool // ease the camera toward its goal instead of jumping
}

// OrbitControl is an orbit camera driven by discrete steps. With smoothing
// the displayed orbit springs toward the goal; without it the two are equal.
type OrbitControl struct {
	goal   *render.Orbit
	spring *render.OrbitSpring
}

// NewOrbitControl returns an orbit around target in its reset position.
func NewOrbitControl(target math3d.Vec3, opts Options) *OrbitControl {
	c := &OrbitControl{goal: render.NewOrbit(target)}
	if opts.Smooth && opts.FPS > 0 {
		c.spring = render.NewOrbitSpring(opts.FPS, *c.goal)
	}
	return c
}

// Orbit returns the goal orbit.
func (c *OrbitControl) Orbit() *render.Orbit {
	return c.goal
}

// Rotate steps the goal by dYaw and dPitch degrees.
func (c *OrbitControl) Rotate(dYaw, dPitch float64) {
	c.goal.Rotate(dYaw, dPitch)
}

// Zoom steps the goal distance.
func (c *OrbitControl) Zoom(delta float64) {
	c.goal.Zoom(delta)
}

// Reset returns the goal to distance 8 and 45° angles.
func (c *OrbitControl) Reset() {
	c.goal.Reset()
}

// Update moves the displayed orbit toward the goal by one frame.
func (c *OrbitControl) Update() {
	if c.spring != nil {
		c.spring.Update(*c.goal)
	}
}

// View returns the orbit the camera shows this frame.
func (c *OrbitControl) View() render.Orbit {
	if c.spring != nil {
		return c.spring.Current()
	}
	return *c.goal
}

// Apply places cam on the displayed orbit.
func (c *OrbitControl) Apply(cam *render.Camera) {
	v := c.View()
	v.Apply(cam)
}
