package picking

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/taigrr/patchwork/pkg/logx"
	"github.com/taigrr/patchwork/pkg/math3d"
	"github.com/taigrr/patchwork/pkg/render"
)

// ErrUnavailable is returned by Init when no picking surface could be made.
// Pick keeps working and reports no hit.
var ErrUnavailable = errors.New("picking: unavailable")

// Backend is the part of a graphics device the picking pass needs.
// *render.Device implements it.
type Backend interface {
	SupportsTargets() bool
	CreateTarget(width, height int) (render.TargetID, error)
	DeleteTarget(id render.TargetID)
	BindTarget(id render.TargetID) error
	BoundTarget() render.TargetID

	ClearColor() color.RGBA
	SetClearColor(c color.RGBA)
	Clear()

	DrawFlat(mesh render.MeshRenderer, transform math3d.Mat4, c color.RGBA)
	// ReadPixel reads the bound target with the origin at the bottom left.
	ReadPixel(x, y int) (color.RGBA, error)
}

// State is a step of one pick query.
type State int

const (
	Idle State = iota
	BoundToOffscreen
	Cleared
	ObjectsRendered
	PixelRead
	Restored
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case BoundToOffscreen:
		return "bound-to-offscreen"
	case Cleared:
		return "cleared"
	case ObjectsRendered:
		return "objects-rendered-flat"
	case PixelRead:
		return "pixel-read"
	case Restored:
		return "restored"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Picker owns an offscreen surface the size of the viewport and answers
// "which object is under this point" queries against it.
//
// A Picker is not safe for concurrent use.
type Picker struct {
	backend Backend
	surface render.TargetID
	width   int
	height  int
	ready   bool
	state   State
}

// New returns a picker for backend. Call Init before the first query.
func New(backend Backend) *Picker {
	return &Picker{backend: backend}
}

// Init creates the picking surface for a width x height viewport. On
// failure the picker stays usable but every query reports no hit.
func (p *Picker) Init(width, height int) error {
	p.Release()
	p.width, p.height = width, height

	if !p.backend.SupportsTargets() {
		logx.Logger().Warn("picking unavailable", "reason", "offscreen targets unsupported")
		return fmt.Errorf("%w: offscreen targets unsupported", ErrUnavailable)
	}
	id, err := p.backend.CreateTarget(width, height)
	if err != nil {
		logx.Logger().Warn("picking unavailable", "width", width, "height", height, "err", err)
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	p.surface = id
	p.ready = true
	logx.Logger().Debug("picking surface created", "target", id, "width", width, "height", height)
	return nil
}

// Resize recreates the surface for a new viewport size.
func (p *Picker) Resize(width, height int) error {
	return p.Init(width, height)
}

// Release frees the surface. The picker is unavailable until the next Init.
func (p *Picker) Release() {
	if !p.ready {
		return
	}
	p.backend.DeleteTarget(p.surface)
	p.ready = false
}

// Available reports whether queries can hit anything.
func (p *Picker) Available() bool {
	return p.ready
}

// State returns the step the current query is at; Idle between queries.
func (p *Picker) State() State {
	return p.state
}

func (p *Picker) enter(s State) {
	p.state = s
	logx.Logger().Debug("pick state", "state", s)
}

// Pick returns the index in objects of the object drawn at the screen point
// (x, y), with y = 0 at the top of the viewport. ok is false for empty
// space, a point outside the viewport or an unavailable picker. The bound
// target and the clear color are the same after the call as before it.
//
// Objects are drawn with the backend's current camera, so call Pick after
// setting up the camera for the visible frame.
func (p *Picker) Pick(x, y int, objects []*Object) (index int, ok bool) {
	if !p.ready {
		return -1, false
	}

	prevTarget := p.backend.BoundTarget()
	prevClear := p.backend.ClearColor()
	defer func() {
		if err := p.backend.BindTarget(prevTarget); err != nil {
			logx.Logger().Warn("restore render target", "target", prevTarget, "err", err)
		}
		p.backend.SetClearColor(prevClear)
		p.enter(Restored)
		p.enter(Idle)
	}()

	if err := p.backend.BindTarget(p.surface); err != nil {
		logx.Logger().Warn("bind picking surface", "err", err)
		return -1, false
	}
	p.enter(BoundToOffscreen)

	p.backend.SetClearColor(Encode(None))
	p.backend.Clear()
	p.enter(Cleared)

	for _, o := range objects {
		p.backend.DrawFlat(o.Mesh(), o.Transform(), o.IDColor())
	}
	p.enter(ObjectsRendered)

	px, err := p.backend.ReadPixel(x, p.height-y-1)
	if err != nil {
		logx.Logger().Debug("pick outside surface", "x", x, "y", y, "err", err)
		return -1, false
	}
	p.enter(PixelRead)

	id := Decode(px)
	logx.Logger().Debug("picked pixel", "x", x, "y", y, "pixel", px, "id", id)
	if id == None {
		return -1, false
	}
	for i, o := range objects {
		if o.ID() == id {
			return i, true
		}
	}
	return -1, false
}
