/*
	Copyright 2025 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Package renderpass coordinates the per-frame lifecycle of a chart drawn
// by an immediate-mode charting library.  The library owns the render loop
// and calls into a Coordinator through the Config it exposes: four lifecycle
// hooks, a cursor override, and the path and value-label builders.
//
// Each redraw cycles through the States Idle, DrawPending and Drawn.  The
// DrawClear hook enters DrawPending: it sizes or clears the quadtree index
// and invalidates the cached paths.  The library then asks for the bar paths,
// which rebuilds both the paths and the index, and calls Draw, entering
// Drawn.  Pointer events reaching SetCursor are hit-tested only once Drawn,
// so queries never observe a half-built index.
//
// A redraw does not reset hover state.  A highlight may reference a
// rectangle from the previous frame until the next pointer event.
package renderpass

import (
	continuousaxis "github.com/ilhamster/chartcore/continuous_axis"
	"github.com/ilhamster/chartcore/frame"
	hittest "github.com/ilhamster/chartcore/hit_test"
	"github.com/ilhamster/chartcore/quadtree"
	"github.com/ilhamster/chartcore/shape"
	"github.com/ilhamster/chartcore/util"
)

// Surface is the charting library's view of one chart during a draw pass.
type Surface interface {
	// Box returns the plot area in device pixels.
	Box() util.Box
	// Frame returns the aligned data being drawn.
	Frame() *frame.Frame
	// Scale returns the value axis scale.
	Scale() continuousaxis.Scale
	// ValToPosX and ValToPosY map a value along a dimension dim device
	// pixels long starting at off.
	ValToPosX(v float64, s continuousaxis.Scale, dim, off float64) float64
	ValToPosY(v float64, s continuousaxis.Scale, dim, off float64) float64
	// Cursor returns the pointer position in CSS pixels relative to the plot
	// area, and whether the pointer is over the plot.
	Cursor() (x, y float64, ok bool)
}

// PathBuilder builds the drawable paths of a frame, adding one rectangle to
// qt for each drawn data point.  qt is empty on entry.
type PathBuilder interface {
	Build(s Surface, qt *quadtree.Quadtree) *shape.Paths
}

// LabelBuilder is implemented by PathBuilders that draw value labels.
type LabelBuilder interface {
	ValueLabels(s Surface) []shape.Label
}

// LaneBuilder is implemented by PathBuilders whose charts are hit-tested
// per lane.  LaneMidpoints returns each lane's vertical midpoint in device
// pixels relative to the plot area.
type LaneBuilder interface {
	LaneMidpoints(s Surface) []float64
}

// State is a Coordinator's position in the redraw cycle.
type State int

const (
	// Idle precedes the first redraw.
	Idle State = iota
	// DrawPending follows DrawClear until the frame has been drawn.
	DrawPending
	// Drawn means the index matches the drawn frame.
	Drawn
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case DrawPending:
		return "draw pending"
	case Drawn:
		return "drawn"
	default:
		return "unknown"
	}
}

// PathCache holds the most recently built paths until invalidated.
type PathCache struct {
	paths *shape.Paths
	valid bool
	// Builds counts cache misses.
	Builds int
}

// Invalidate forces the next Get to rebuild.
func (pc *PathCache) Invalidate() {
	pc.paths = nil
	pc.valid = false
}

// Valid reports whether the cache holds paths.
func (pc *PathCache) Valid() bool {
	return pc.valid
}

// Get returns the cached paths, invoking build first if there are none.
func (pc *PathCache) Get(build func() *shape.Paths) *shape.Paths {
	if !pc.valid {
		pc.paths = build()
		pc.valid = true
		pc.Builds++
	}
	return pc.paths
}

// Hooks are the lifecycle callbacks the charting library invokes.
type Hooks struct {
	// Init is called once, when the chart is created.
	Init func(s Surface)
	// DrawClear is called at the start of every redraw.
	DrawClear func(s Surface)
	// Draw is called after the series paths have been drawn.
	Draw func(s Surface)
	// SetCursor is called on every pointer move.
	SetCursor func(s Surface)
}

// Config bundles everything the charting library calls into.
type Config struct {
	Hooks Hooks
	// ShowCursor is false when the library's own crosshair and cursor points
	// should be hidden, hit-testing having replaced them.
	ShowCursor bool
	// Bars returns the paths to draw for the current frame.
	Bars func(s Surface) *shape.Paths
	// ValueLabels returns the text layer, or is nil if the chart has none.
	ValueLabels func(s Surface) []shape.Label
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithPixelRatio sets the device pixel ratio, the number of device pixels
// per CSS pixel.  The default is 1.
func WithPixelRatio(ratio float64) Option {
	return func(c *Coordinator) {
		if ratio > 0 {
			c.ratio = ratio
		}
	}
}

// WithIndexOptions configures the quadtree index.
func WithIndexOptions(opts ...quadtree.Option) Option {
	return func(c *Coordinator) {
		c.indexOpts = append(c.indexOpts, opts...)
	}
}

// WithCallbacks sets the hover and leave callbacks.
func WithCallbacks(callbacks hittest.Callbacks) Option {
	return func(c *Coordinator) {
		c.callbacks = callbacks
	}
}

// WithHighlighter supplies the highlight of each lane.  Single-lane charts
// only use lane 0.
func WithHighlighter(newHighlighter func(lane int) hittest.Highlighter) Option {
	return func(c *Coordinator) {
		c.newHighlighter = newHighlighter
	}
}

// Coordinator drives a PathBuilder through the redraw cycle of one chart.
type Coordinator struct {
	builder        PathBuilder
	ratio          float64
	indexOpts      []quadtree.Option
	callbacks      hittest.Callbacks
	newHighlighter func(lane int) hittest.Highlighter

	state     State
	qt        *quadtree.Quadtree
	cache     PathCache
	hover     *hittest.Controller
	lanes     *hittest.Lanes
	midpoints []float64
}

// New returns a Coordinator for builder.
func New(builder PathBuilder, opts ...Option) *Coordinator {
	c := &Coordinator{
		builder: builder,
		ratio:   1,
	}
	for _, opt := range opts {
		opt(c)
	}
	if _, ok := builder.(LaneBuilder); ok {
		c.lanes = hittest.NewLanes(c.ratio, c.callbacks, c.newHighlighter)
	} else {
		var hl hittest.Highlighter
		if c.newHighlighter != nil {
			hl = c.newHighlighter(0)
		}
		c.hover = hittest.New(c.ratio, hl, c.callbacks)
	}
	return c
}

// Config returns the callbacks to register with the charting library.
func (c *Coordinator) Config() Config {
	cfg := Config{
		Hooks: Hooks{
			Init:      c.init,
			DrawClear: c.drawClear,
			Draw:      c.draw,
			SetCursor: c.setCursor,
		},
		Bars: c.bars,
	}
	if lb, ok := c.builder.(LabelBuilder); ok {
		cfg.ValueLabels = lb.ValueLabels
	}
	return cfg
}

// State returns the receiver's position in the redraw cycle.
func (c *Coordinator) State() State {
	return c.state
}

// Index returns the quadtree of the current frame, or nil before the first
// redraw.
func (c *Coordinator) Index() *quadtree.Quadtree {
	return c.qt
}

// Cache returns the receiver's path cache.
func (c *Coordinator) Cache() *PathCache {
	return &c.cache
}

// PixelRatio returns the device pixel ratio.
func (c *Coordinator) PixelRatio() float64 {
	return c.ratio
}

// Hovered returns the hovered rectangle of each lane, in device pixels.
// Single-lane charts return one entry.
func (c *Coordinator) Hovered() []*quadtree.Rect {
	if c.lanes != nil {
		return c.lanes.Hovered()
	}
	return []*quadtree.Rect{c.hover.Hovered()}
}

// PointerLeave clears hover state when the pointer leaves the chart.
func (c *Coordinator) PointerLeave() {
	if c.lanes != nil {
		c.lanes.Leave()
		return
	}
	c.hover.Leave()
}

func (c *Coordinator) init(s Surface) {
	box := s.Box()
	util.Logger().Debug("chart init", "width", box.Width, "height", box.Height, "ratio", c.ratio)
	c.state = Idle
}

// index returns the quadtree sized to s's plot area, reallocating it only
// when that size changes.
func (c *Coordinator) index(s Surface) *quadtree.Quadtree {
	box := s.Box()
	if c.qt == nil || c.qt.W != box.Width || c.qt.H != box.Height {
		c.qt = quadtree.New(0, 0, max(box.Width, 0), max(box.Height, 0), c.indexOpts...)
	}
	return c.qt
}

func (c *Coordinator) drawClear(s Surface) {
	c.state = DrawPending
	c.index(s).Clear()
	c.cache.Invalidate()
	util.Logger().Debug("redraw pending")
}

func (c *Coordinator) bars(s Surface) *shape.Paths {
	return c.cache.Get(func() *shape.Paths {
		qt := c.index(s)
		paths := c.builder.Build(s, qt)
		if lb, ok := c.builder.(LaneBuilder); ok {
			c.midpoints = lb.LaneMidpoints(s)
		}
		return paths
	})
}

func (c *Coordinator) draw(s Surface) {
	if c.state != DrawPending {
		return
	}
	// Draw may run without Bars having been asked for, e.g. with every
	// series hidden.
	c.bars(s)
	c.state = Drawn
	util.Logger().Debug("redraw done")
}

func (c *Coordinator) setCursor(s Surface) {
	if c.state != Drawn {
		return
	}
	x, y, ok := s.Cursor()
	if !ok {
		c.PointerLeave()
		return
	}
	if c.lanes != nil {
		c.lanes.Move(c.qt, x, c.midpoints)
		return
	}
	c.hover.Move(c.qt, x, y)
}
