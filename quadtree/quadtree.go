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

// Package quadtree provides a region quadtree over axis-aligned rectangles,
// used to find the drawn shapes under a pointer without scanning them all.
//
// A Quadtree is rebuilt wholesale on every redraw: Clear it, then Add every
// shape drawn in the frame.  Queries with Get report every rectangle held by
// each visited node, so callers must still filter with Rect.Contains.
package quadtree

import "github.com/ilhamster/chartcore/util"

const (
	// DefaultMaxObjects is the number of rectangles a node holds before it
	// splits.
	DefaultMaxObjects = 10
	// DefaultMaxLevels is the depth below which nodes no longer split.
	DefaultMaxLevels = 4
)

// Rect is a drawn rectangle in device pixels relative to the plot area,
// tagged with the data point it represents.
type Rect struct {
	X, Y, W, H float64
	// SeriesIdx and ValueIdx identify the data point.
	SeriesIdx, ValueIdx int
}

// Contains reports whether (px, py) lies within the receiver, edges
// included.
func (r *Rect) Contains(px, py float64) bool {
	return px >= r.X && px <= r.X+r.W &&
		py >= r.Y && py <= r.Y+r.H
}

// Option configures a Quadtree.
type Option func(*options)

type options struct {
	maxObjects int
	maxLevels  int
}

// WithMaxObjects sets the number of rectangles a node may hold before
// splitting.
func WithMaxObjects(n int) Option {
	return func(o *options) {
		o.maxObjects = n
	}
}

// WithMaxLevels sets the maximum split depth.  Zero yields a single flat list.
func WithMaxLevels(n int) Option {
	return func(o *options) {
		o.maxLevels = n
	}
}

// Quadtree is one node of the tree.  The root covers the whole plot area.
type Quadtree struct {
	X, Y, W, H float64

	level int
	opts  *options
	objs  []*Rect
	// quads are NE, NW, SW, SE once split, nil before.
	quads []*Quadtree
}

// New returns an empty Quadtree covering the region (x, y, w, h).
func New(x, y, w, h float64, opts ...Option) *Quadtree {
	o := &options{
		maxObjects: DefaultMaxObjects,
		maxLevels:  DefaultMaxLevels,
	}
	for _, opt := range opts {
		opt(o)
	}
	return &Quadtree{X: x, Y: y, W: w, H: h, opts: o}
}

func (qt *Quadtree) split() {
	x, y, w, h := qt.X, qt.Y, qt.W/2, qt.H/2
	l := qt.level + 1
	qt.quads = []*Quadtree{
		{X: x + w, Y: y, W: w, H: h, level: l, opts: qt.opts},     // NE
		{X: x, Y: y, W: w, H: h, level: l, opts: qt.opts},         // NW
		{X: x, Y: y + h, W: w, H: h, level: l, opts: qt.opts},     // SW
		{X: x + w, Y: y + h, W: w, H: h, level: l, opts: qt.opts}, // SE
	}
	util.Logger().Debug("quadtree split", "level", qt.level, "objects", len(qt.objs))
}

// eachQuad invokes fn on every child quadrant overlapped by the box
// (x, y, w, h).  A box spanning the centre visits several quadrants.
func (qt *Quadtree) eachQuad(x, y, w, h float64, fn func(*Quadtree)) {
	hzMid := qt.X + qt.W/2
	vtMid := qt.Y + qt.H/2
	startNorth := y < vtMid
	startWest := x < hzMid
	endEast := x+w > hzMid
	endSouth := y+h > vtMid
	if startNorth && endEast {
		fn(qt.quads[0])
	}
	if startWest && startNorth {
		fn(qt.quads[1])
	}
	if startWest && endSouth {
		fn(qt.quads[2])
	}
	if endEast && endSouth {
		fn(qt.quads[3])
	}
}

// Add inserts r.  A rectangle straddling a quadrant boundary is held by
// every quadrant it overlaps.
func (qt *Quadtree) Add(r *Rect) {
	if qt.quads != nil {
		qt.eachQuad(r.X, r.Y, r.W, r.H, func(q *Quadtree) {
			q.Add(r)
		})
		return
	}
	qt.objs = append(qt.objs, r)
	if len(qt.objs) > qt.opts.maxObjects && qt.level < qt.opts.maxLevels {
		qt.split()
		for _, o := range qt.objs {
			qt.eachQuad(o.X, o.Y, o.W, o.H, func(q *Quadtree) {
				q.Add(o)
			})
		}
		clear(qt.objs)
		qt.objs = qt.objs[:0]
	}
}

// Get invokes fn on every rectangle held by a node whose region the box
// (x, y, w, h) may overlap, in insertion order within each node.  Rectangles
// outside the box may be reported, and a straddling rectangle may be reported
// more than once.
func (qt *Quadtree) Get(x, y, w, h float64, fn func(*Rect)) {
	for _, o := range qt.objs {
		fn(o)
	}
	if qt.quads != nil {
		qt.eachQuad(x, y, w, h, func(q *Quadtree) {
			q.Get(x, y, w, h, fn)
		})
	}
}

// Clear empties the receiver and discards its children, keeping its region.
func (qt *Quadtree) Clear() {
	clear(qt.objs)
	qt.objs = qt.objs[:0]
	qt.quads = nil
}

// FindRect returns the rectangle tagged (seriesIdx, valueIdx), searching
// depth-first, or nil if there is none.
func (qt *Quadtree) FindRect(seriesIdx, valueIdx int) *Rect {
	for _, o := range qt.objs {
		if o.SeriesIdx == seriesIdx && o.ValueIdx == valueIdx {
			return o
		}
	}
	for _, q := range qt.quads {
		if found := q.FindRect(seriesIdx, valueIdx); found != nil {
			return found
		}
	}
	return nil
}

// Hit returns the last rectangle reported by a 1x1 query at (px, py) that
// contains the point, or nil.
func (qt *Quadtree) Hit(px, py float64) *Rect {
	var found *Rect
	qt.Get(px, py, 1, 1, func(r *Rect) {
		if r.Contains(px, py) {
			found = r
		}
	})
	return found
}
