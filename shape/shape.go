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

// Package shape holds the renderer-agnostic drawing descriptors produced by
// the chart builders: one fill path and one optional stroke path per series,
// plus text labels.  Paths are gg.Path values in absolute device pixels and
// are replayed onto an immediate-mode gg.Context by Draw.
package shape

import (
	"fmt"

	"github.com/gogpu/gg"
	"github.com/ilhamster/chartcore/style"
)

// SeriesPath is the drawable geometry of one series.
type SeriesPath struct {
	Style style.Series
	Fill  *gg.Path
	// Stroke is nil when the series has no stroke.
	Stroke *gg.Path
	// Rects counts the rectangles appended.
	Rects int
}

// Paths is everything drawn for the series of one frame.
type Paths struct {
	Series []*SeriesPath
}

// NewPaths returns empty Paths for series styled by styles.
func NewPaths(styles []style.Series) *Paths {
	p := &Paths{Series: make([]*SeriesPath, 0, len(styles))}
	for _, st := range styles {
		p.add(st)
	}
	return p
}

// Bucket returns the index of the series styled st, appending a new one if
// there is none.  Builders painting per value rather than per series, such
// as timelines, group their rectangles by color this way.
func (p *Paths) Bucket(st style.Series) int {
	for idx, sp := range p.Series {
		if sp.Style == st {
			return idx
		}
	}
	return p.add(st)
}

func (p *Paths) add(st style.Series) int {
	sp := &SeriesPath{
		Style: st,
		Fill:  gg.NewPath(),
	}
	if st.LineWidth > 0 {
		sp.Stroke = gg.NewPath()
	}
	p.Series = append(p.Series, sp)
	return len(p.Series) - 1
}

// Rect appends the rectangle (x, y, w, h) to series seriesIdx.  The stroke
// outline is inset by half the line width so it stays inside the fill.
func (p *Paths) Rect(seriesIdx int, x, y, w, h float64) {
	sp := p.Series[seriesIdx]
	sp.Fill.Rectangle(x, y, w, h)
	sp.Rects++
	if sp.Stroke != nil {
		lw := sp.Style.LineWidth
		sp.Stroke.Rectangle(x+lw/2, y+lw/2, max(w-lw, 0), max(h-lw, 0))
	}
}

// Rects returns the number of rectangles across all series.
func (p *Paths) Rects() int {
	n := 0
	for _, sp := range p.Series {
		n += sp.Rects
	}
	return n
}

// Replay appends the elements of path onto dc's current path.
func Replay(dc *gg.Context, path *gg.Path) {
	for _, el := range path.Elements() {
		switch e := el.(type) {
		case gg.MoveTo:
			dc.MoveTo(e.Point.X, e.Point.Y)
		case gg.LineTo:
			dc.LineTo(e.Point.X, e.Point.Y)
		case gg.QuadTo:
			dc.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case gg.CubicTo:
			dc.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case gg.Close:
			dc.ClosePath()
		}
	}
}

// Draw fills, then strokes, every series of the receiver onto dc.
func (p *Paths) Draw(dc *gg.Context) error {
	for idx, sp := range p.Series {
		if sp.Rects == 0 {
			continue
		}
		c := sp.Style.Fill
		dc.SetRGBA(c.R, c.G, c.B, c.A)
		Replay(dc, sp.Fill)
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("filling series %d: %w", idx, err)
		}
		if sp.Stroke == nil {
			continue
		}
		c = sp.Style.Stroke
		dc.SetRGBA(c.R, c.G, c.B, c.A)
		dc.SetLineWidth(sp.Style.LineWidth)
		Replay(dc, sp.Stroke)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("stroking series %d: %w", idx, err)
		}
	}
	return nil
}

// Label is a text label anchored at (X, Y) in absolute device pixels.
// AnchorX and AnchorY place the anchor within the text's bounds: 0 is the
// left or top edge, 0.5 the centre, 1 the right or bottom edge.
type Label struct {
	Text             string
	X, Y             float64
	AnchorX, AnchorY float64
	SeriesIdx        int
	ValueIdx         int
}
