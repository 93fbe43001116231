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

// Package barchart builds the geometry of grouped and stacked bar charts.
//
// A Builder lays each row of a frame.Frame out as a group along the category
// axis, and each series as a bar within its group:
//
//	b, err := barchart.New(barchart.Options{GroupWidth: 0.8, BarWidth: 0.9})
//	paths := b.Build(surface, qt)
//
// Group and bar spans come from the distribute package with Between
// justification: groups share GroupWidth of the category axis, and bars share
// BarWidth of their group.  When Stacked, every series of a group shares one
// slot and the frame is expected to carry stacked values and bases (see
// frame.Stack).
//
// Pixel coordinates are rounded to whole device pixels before they are used
// for both drawing and the hit-test index, so the two never disagree.  Null
// points produce neither a path segment nor an index entry.
package barchart

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ilhamster/chartcore/color"
	"github.com/ilhamster/chartcore/distribute"
	"github.com/ilhamster/chartcore/label"
	"github.com/ilhamster/chartcore/quadtree"
	renderpass "github.com/ilhamster/chartcore/render_pass"
	"github.com/ilhamster/chartcore/shape"
	"github.com/ilhamster/chartcore/style"
	"github.com/ilhamster/chartcore/util"
)

// ErrInvalidWidth is returned for a group or bar width outside (0, 1].
var ErrInvalidWidth = errors.New("width must be in (0, 1]")

// Orientation selects which plot axis the categories run along.
type Orientation int

const (
	// Horizontal runs categories along x; bars grow vertically.
	Horizontal Orientation = iota
	// Vertical runs categories along y; bars grow horizontally.
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// ParseOrientation parses "horizontal" or "vertical".  The empty string is
// Horizontal.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(s) {
	case "", "horizontal":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	}
	return Horizontal, fmt.Errorf("unknown orientation '%s'", s)
}

// Label placement, in device pixels beyond the end of a bar.
const labelGap = 4

// Options configure a Builder.
type Options struct {
	Orientation Orientation
	// Direction is the direction of the category axis.  Reverse mirrors the
	// groups.
	Direction util.Direction
	// GroupWidth is the fraction of the category axis covered by groups.
	GroupWidth float64
	// BarWidth is the fraction of a group covered by its bars.
	BarWidth float64
	Stacked  bool
	// ShowValues enables the value label layer.
	ShowValues bool
	// Formatter formats value labels.  Defaults to label.Default().
	Formatter *label.Formatter
	// Palette colors series without an explicit Style.  Defaults to
	// color.Classic.
	Palette *color.Space
	// LineWidth is the stroke width of series without an explicit Style.
	LineWidth float64
	// Styles overrides the style of the first len(Styles) series.
	Styles []style.Series
}

// DefaultOptions returns Options with the default group and bar widths.
func DefaultOptions() Options {
	return Options{
		GroupWidth: 0.7,
		BarWidth:   0.97,
		LineWidth:  1,
	}
}

// Builder builds bar chart paths.  It holds no per-frame state, so building
// the same input twice yields identical output.
type Builder struct {
	opts Options
}

// New returns a Builder with the provided options.
func New(opts Options) (*Builder, error) {
	for _, w := range []struct {
		name string
		val  float64
	}{{"group", opts.GroupWidth}, {"bar", opts.BarWidth}} {
		if !(w.val > 0 && w.val <= 1) {
			return nil, fmt.Errorf("%s width %v: %w", w.name, w.val, ErrInvalidWidth)
		}
	}
	if opts.Formatter == nil {
		opts.Formatter = label.Default()
	}
	if opts.Palette == nil {
		opts.Palette = color.Classic
	}
	return &Builder{opts: opts}, nil
}

// Options returns the receiver's options, with defaults applied.
func (b *Builder) Options() Options {
	return b.opts
}

// Style returns the style of series seriesIdx.
func (b *Builder) Style(seriesIdx int) style.Series {
	if seriesIdx < len(b.opts.Styles) {
		return b.opts.Styles[seriesIdx]
	}
	return style.ForSeries(seriesIdx, b.opts.Palette, b.opts.LineWidth)
}

// bar is one laid-out data point.  x, y, w and h are absolute device pixels;
// end and base are the pixel positions of the value and the base along the
// value axis.
type bar struct {
	seriesIdx, valueIdx int
	x, y, w, h          float64
	end, base           float64
	value               float64
}

func (b *Builder) layout(s renderpass.Surface, each func(bar)) {
	f, box := s.Frame(), s.Box()
	if f == nil || box.Empty() {
		return
	}
	rows, numSeries := f.Len(), len(f.Series)
	if rows == 0 || numSeries == 0 {
		return
	}
	slots := numSeries
	if b.opts.Stacked {
		slots = 1
	}
	spans := distribute.Nested(rows, slots, b.opts.GroupWidth, b.opts.BarWidth, distribute.Between)
	catDim, catOff := box.Width, box.Left
	valDim, valOff := box.Height, box.Top
	valToPos := s.ValToPosY
	if b.opts.Orientation == Vertical {
		catDim, catOff = box.Height, box.Top
		valDim, valOff = box.Width, box.Left
		valToPos = s.ValToPosX
	}
	scale := s.Scale()
	for seriesIdx, series := range f.Series {
		slot := spans[0]
		if !b.opts.Stacked {
			slot = spans[seriesIdx]
		}
		for valueIdx := 0; valueIdx < rows; valueIdx++ {
			v, ok := f.Value(seriesIdx, valueIdx)
			if !ok {
				continue
			}
			var base float64
			if valueIdx < len(series.Base) && series.Base[valueIdx] != nil {
				base = *series.Base[valueIdx]
			}
			off := slot[valueIdx].Offset * catDim
			wid := slot[valueIdx].Size * catDim
			if b.opts.Direction == util.Reverse {
				off = catDim - off - wid
			}
			catPos := math.Round(catOff + off)
			catSize := math.Round(wid)
			end := math.Round(valToPos(v, scale, valDim, valOff))
			start := math.Round(valToPos(base, scale, valDim, valOff))
			valPos, valSize := math.Min(end, start), math.Abs(end-start)
			bb := bar{
				seriesIdx: seriesIdx,
				valueIdx:  valueIdx,
				x:         catPos,
				y:         valPos,
				w:         catSize,
				h:         valSize,
				end:       end,
				base:      start,
				value:     v - base,
			}
			if b.opts.Orientation == Vertical {
				bb.x, bb.y, bb.w, bb.h = valPos, catPos, valSize, catSize
			}
			each(bb)
		}
	}
}

// Build implements renderpass.PathBuilder.  Rectangles added to qt are
// relative to the plot area's origin.
func (b *Builder) Build(s renderpass.Surface, qt *quadtree.Quadtree) *shape.Paths {
	var styles []style.Series
	if f := s.Frame(); f != nil {
		styles = make([]style.Series, len(f.Series))
		for idx := range styles {
			styles[idx] = b.Style(idx)
		}
	}
	paths := shape.NewPaths(styles)
	box := s.Box()
	b.layout(s, func(bb bar) {
		paths.Rect(bb.seriesIdx, bb.x, bb.y, bb.w, bb.h)
		if qt != nil {
			qt.Add(&quadtree.Rect{
				X:         bb.x - box.Left,
				Y:         bb.y - box.Top,
				W:         bb.w,
				H:         bb.h,
				SeriesIdx: bb.seriesIdx,
				ValueIdx:  bb.valueIdx,
			})
		}
	})
	return paths
}

// ValueLabels implements renderpass.LabelBuilder.  Each non-null point gets
// a label just beyond the value end of its bar.  Stacked points are labeled
// with their own value, not the stack total.
func (b *Builder) ValueLabels(s renderpass.Surface) []shape.Label {
	if !b.opts.ShowValues {
		return nil
	}
	var ret []shape.Label
	b.layout(s, func(bb bar) {
		l := shape.Label{
			Text:      b.opts.Formatter.Format(bb.value),
			SeriesIdx: bb.seriesIdx,
			ValueIdx:  bb.valueIdx,
		}
		if b.opts.Orientation == Vertical {
			l.Y, l.AnchorY = bb.y+bb.h/2, 0.5
			if bb.end >= bb.base {
				l.X, l.AnchorX = bb.end+labelGap, 0
			} else {
				l.X, l.AnchorX = bb.end-labelGap, 1
			}
		} else {
			l.X, l.AnchorX = bb.x+bb.w/2, 0.5
			// Smaller y is higher up.
			if bb.end <= bb.base {
				l.Y, l.AnchorY = bb.end-labelGap, 1
			} else {
				l.Y, l.AnchorY = bb.end+labelGap, 0
			}
		}
		ret = append(ret, l)
	})
	return ret
}
