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

// Package timeline builds the geometry of state timelines: one horizontal
// lane per series, split into segments colored by value.
//
// Lane placement comes from the distribute package: count is the number of
// series and RowHeight the fraction of the plot height the lanes cover.  A
// point's segment runs from its x position to the next point's, or to the
// plot's right edge for the last point.  With MergeValues, runs of equal
// values merge into one segment.  Nulls draw nothing and end the segment
// before them.  Rows must be in ascending X order; frame.SortByX puts
// them there.
//
// Timelines are hit-tested per lane, at each lane's vertical midpoint.
package timeline

import (
	"fmt"
	"math"

	"github.com/ilhamster/chartcore/color"
	"github.com/ilhamster/chartcore/distribute"
	"github.com/ilhamster/chartcore/frame"
	"github.com/ilhamster/chartcore/label"
	"github.com/ilhamster/chartcore/quadtree"
	renderpass "github.com/ilhamster/chartcore/render_pass"
	"github.com/ilhamster/chartcore/shape"
	"github.com/ilhamster/chartcore/style"
)

// Options configure a Builder.
type Options struct {
	// RowHeight is the fraction of the plot height covered by lanes.
	RowHeight float64
	// Justify places the lanes.
	Justify     distribute.Justify
	MergeValues bool
	ShowValues  bool
	// Palette colors segments by value across the frame's range.  Defaults
	// to color.Traffic.
	Palette   *color.Space
	LineWidth float64
	Formatter *label.Formatter
}

// DefaultOptions returns Options with the default lane layout.
func DefaultOptions() Options {
	return Options{
		RowHeight:   0.9,
		Justify:     distribute.Between,
		MergeValues: true,
	}
}

// Builder builds timeline paths.
type Builder struct {
	opts Options
}

// New returns a Builder with the provided options.
func New(opts Options) (*Builder, error) {
	if !(opts.RowHeight > 0 && opts.RowHeight <= 1) {
		return nil, fmt.Errorf("row height %v must be in (0, 1]", opts.RowHeight)
	}
	if opts.Palette == nil {
		opts.Palette = color.Traffic
	}
	if opts.Formatter == nil {
		opts.Formatter = label.Default()
	}
	return &Builder{opts: opts}, nil
}

// lane returns the vertical offset and height of lane idx in absolute device
// pixels.
func (b *Builder) lane(numLanes, idx int, top, height float64) (y, h float64) {
	distribute.Distribute(numLanes, b.opts.RowHeight, b.opts.Justify, idx, func(_ int, offPct, dimPct float64) {
		y = math.Round(top + offPct*height)
		h = math.Round(dimPct * height)
	})
	return y, h
}

// LaneMidpoints implements renderpass.LaneBuilder.
func (b *Builder) LaneMidpoints(s renderpass.Surface) []float64 {
	f, box := s.Frame(), s.Box()
	if f == nil {
		return nil
	}
	ret := make([]float64, len(f.Series))
	for idx := range ret {
		y, h := b.lane(len(f.Series), idx, 0, box.Height)
		ret[idx] = math.Round(y + h/2)
	}
	return ret
}

// segment is one drawn run of a lane, in absolute device pixels.
type segment struct {
	seriesIdx, valueIdx int
	x, y, w, h          float64
	value               float64
}

func xOf(f *frame.Frame, idx int) float64 {
	if idx < len(f.X) {
		return f.X[idx]
	}
	return float64(idx)
}

func (b *Builder) layout(s renderpass.Surface, each func(segment)) {
	f, box := s.Frame(), s.Box()
	if f == nil || box.Empty() {
		return
	}
	rows := f.Len()
	scale := s.Scale()
	right := box.Left + box.Width
	for seriesIdx := range f.Series {
		y, h := b.lane(len(f.Series), seriesIdx, box.Top, box.Height)
		for valueIdx := 0; valueIdx < rows; valueIdx++ {
			v, ok := f.Value(seriesIdx, valueIdx)
			if !ok {
				continue
			}
			next := valueIdx + 1
			if b.opts.MergeValues {
				for next < rows {
					nv, ok := f.Value(seriesIdx, next)
					if !ok || nv != v {
						break
					}
					next++
				}
			}
			x0 := math.Round(s.ValToPosX(xOf(f, valueIdx), scale, box.Width, box.Left))
			x1 := right
			if next < rows {
				x1 = math.Round(s.ValToPosX(xOf(f, next), scale, box.Width, box.Left))
			}
			each(segment{
				seriesIdx: seriesIdx,
				valueIdx:  valueIdx,
				x:         x0,
				y:         y,
				w:         math.Max(x1-x0, 0),
				h:         h,
				value:     v,
			})
			valueIdx = next - 1
		}
	}
}

// Style returns the style of segments holding v, in a frame whose values
// span lo to hi.
func (b *Builder) Style(v, lo, hi float64) style.Series {
	pct := 0.0
	if hi > lo {
		pct = (v - lo) / (hi - lo)
	}
	c := b.opts.Palette.At(pct)
	return style.Series{
		Fill:      c,
		Stroke:    c,
		LineWidth: b.opts.LineWidth,
	}
}

// Build implements renderpass.PathBuilder.  Paths are grouped by segment
// color rather than by series.
func (b *Builder) Build(s renderpass.Surface, qt *quadtree.Quadtree) *shape.Paths {
	paths := shape.NewPaths(nil)
	f, box := s.Frame(), s.Box()
	if f == nil {
		return paths
	}
	lo, hi := f.Extents(false)
	b.layout(s, func(seg segment) {
		bucket := paths.Bucket(b.Style(seg.value, lo, hi))
		paths.Rect(bucket, seg.x, seg.y, seg.w, seg.h)
		if qt != nil {
			qt.Add(&quadtree.Rect{
				X:         seg.x - box.Left,
				Y:         seg.y - box.Top,
				W:         seg.w,
				H:         seg.h,
				SeriesIdx: seg.seriesIdx,
				ValueIdx:  seg.valueIdx,
			})
		}
	})
	return paths
}

// ValueLabels implements renderpass.LabelBuilder, centering each segment's
// value within it.
func (b *Builder) ValueLabels(s renderpass.Surface) []shape.Label {
	if !b.opts.ShowValues {
		return nil
	}
	var ret []shape.Label
	b.layout(s, func(seg segment) {
		ret = append(ret, shape.Label{
			Text:      b.opts.Formatter.Format(seg.value),
			X:         seg.x + seg.w/2,
			Y:         seg.y + seg.h/2,
			AnchorX:   0.5,
			AnchorY:   0.5,
			SeriesIdx: seg.seriesIdx,
			ValueIdx:  seg.valueIdx,
		})
	})
	return ret
}
