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

// Package hittest turns pointer movement over a chart into hover and leave
// notifications.  A Controller tracks at most one hovered rectangle; Lanes
// runs one Controller per timeline lane, each querying at its lane's fixed
// vertical midpoint.
//
// Pointer positions arrive in CSS pixels and are scaled by the device pixel
// ratio into the device-pixel space the quadtree.Rects live in.  Highlighters
// receive rectangles converted back into CSS pixels.
package hittest

import (
	"github.com/ilhamster/chartcore/quadtree"
	"github.com/ilhamster/chartcore/util"
)

// Highlighter shows the hovered shape to the user.
type Highlighter interface {
	// ShowAt moves the highlight onto r, in CSS pixels relative to the plot
	// area, or hides it if r is nil.
	ShowAt(r *quadtree.Rect)
}

// Callbacks are notified of hover transitions.  Either may be nil.
type Callbacks struct {
	OnHover func(seriesIdx, valueIdx int)
	OnLeave func(seriesIdx, valueIdx int)
}

// Controller tracks the hovered rectangle of one chart, or one lane.
type Controller struct {
	ratio     float64
	hl        Highlighter
	callbacks Callbacks
	hovered   *quadtree.Rect
}

// New returns a Controller scaling pointer positions by ratio.  hl may be
// nil.  A non-positive ratio is treated as 1.
func New(ratio float64, hl Highlighter, callbacks Callbacks) *Controller {
	if ratio <= 0 {
		ratio = 1
	}
	return &Controller{
		ratio:     ratio,
		hl:        hl,
		callbacks: callbacks,
	}
}

// Hovered returns the hovered rectangle, in device pixels, or nil.  After a
// redraw it may reference a rectangle from the previous frame until the next
// Move.
func (c *Controller) Hovered() *quadtree.Rect {
	return c.hovered
}

// Move hit-tests qt at the CSS-pixel position (cssX, cssY).
func (c *Controller) Move(qt *quadtree.Quadtree, cssX, cssY float64) {
	c.MoveDevice(qt, cssX*c.ratio, cssY*c.ratio)
}

// MoveDevice hit-tests qt at the device-pixel position (px, py).
func (c *Controller) MoveDevice(qt *quadtree.Quadtree, px, py float64) {
	var found *quadtree.Rect
	if qt != nil {
		found = qt.Hit(px, py)
	}
	c.update(found)
}

// Leave clears any hovered rectangle, as if the pointer found nothing.
func (c *Controller) Leave() {
	c.update(nil)
}

func (c *Controller) update(found *quadtree.Rect) {
	if found == c.hovered {
		return
	}
	prev := c.hovered
	c.hovered = found
	if found != nil {
		util.Logger().Debug("hover", "series", found.SeriesIdx, "value", found.ValueIdx)
		c.show(c.toCSS(found))
		if c.callbacks.OnHover != nil {
			c.callbacks.OnHover(found.SeriesIdx, found.ValueIdx)
		}
		return
	}
	util.Logger().Debug("leave", "series", prev.SeriesIdx, "value", prev.ValueIdx)
	c.show(nil)
	if c.callbacks.OnLeave != nil {
		c.callbacks.OnLeave(prev.SeriesIdx, prev.ValueIdx)
	}
}

func (c *Controller) show(r *quadtree.Rect) {
	if c.hl != nil {
		c.hl.ShowAt(r)
	}
}

func (c *Controller) toCSS(r *quadtree.Rect) *quadtree.Rect {
	return &quadtree.Rect{
		X:         r.X / c.ratio,
		Y:         r.Y / c.ratio,
		W:         r.W / c.ratio,
		H:         r.H / c.ratio,
		SeriesIdx: r.SeriesIdx,
		ValueIdx:  r.ValueIdx,
	}
}

// Lanes hit-tests each lane of a multi-lane chart independently.
type Lanes struct {
	ratio          float64
	callbacks      Callbacks
	newHighlighter func(lane int) Highlighter
	lanes          []*Controller
}

// NewLanes returns an empty Lanes.  newHighlighter, if not nil, supplies the
// Highlighter of each lane as the lane is first used.
func NewLanes(ratio float64, callbacks Callbacks, newHighlighter func(lane int) Highlighter) *Lanes {
	if ratio <= 0 {
		ratio = 1
	}
	return &Lanes{
		ratio:          ratio,
		callbacks:      callbacks,
		newHighlighter: newHighlighter,
	}
}

// Lane returns the Controller of lane idx, or nil if that lane was never
// used.
func (l *Lanes) Lane(idx int) *Controller {
	if idx < 0 || idx >= len(l.lanes) {
		return nil
	}
	return l.lanes[idx]
}

// Hovered returns the hovered rectangle of every lane.
func (l *Lanes) Hovered() []*quadtree.Rect {
	ret := make([]*quadtree.Rect, len(l.lanes))
	for idx, lane := range l.lanes {
		ret[idx] = lane.Hovered()
	}
	return ret
}

// Move hit-tests every lane at the CSS-pixel horizontal position cssX and
// the lane's device-pixel vertical midpoint.  Lanes beyond len(midpoints)
// are left.
func (l *Lanes) Move(qt *quadtree.Quadtree, cssX float64, midpoints []float64) {
	for len(l.lanes) < len(midpoints) {
		var hl Highlighter
		if l.newHighlighter != nil {
			hl = l.newHighlighter(len(l.lanes))
		}
		l.lanes = append(l.lanes, New(l.ratio, hl, l.callbacks))
	}
	px := cssX * l.ratio
	for idx, lane := range l.lanes {
		if idx >= len(midpoints) {
			lane.Leave()
			continue
		}
		lane.MoveDevice(qt, px, midpoints[idx])
	}
}

// Leave clears every lane's hovered rectangle.
func (l *Lanes) Leave() {
	for _, lane := range l.lanes {
		lane.Leave()
	}
}
