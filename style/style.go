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

// Package style supports specifying the graphic styling of rendered series
// and of CSS overlay elements.
//
// A Style instance comprises a mapping from CSS property name to value, both
// represented as strings.  Which properties are honored is up to the UI layer
// consuming the style; Overlay uses one to position the hover highlight drawn
// above the chart canvas.
package style

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gogpu/gg"
	"github.com/ilhamster/chartcore/color"
	"github.com/ilhamster/chartcore/quadtree"
)

// Style defines a set of CSS properties.
type Style struct {
	attrs map[string]string
}

// New returns a new, empty Style.
func New() *Style {
	return &Style{
		attrs: map[string]string{},
	}
}

// Px formats the provided value as a pixel specifier.
func Px(valPx float64) string {
	return fmt.Sprintf("%.2fpx", valPx)
}

// With sets the specified attribute type and value in the receiver.
func (s *Style) With(attrType string, attrVal string) *Style {
	s.attrs[attrType] = attrVal
	return s
}

// Get returns the value of the specified attribute, or "" if it is unset.
func (s *Style) Get(attrType string) string {
	return s.attrs[attrType]
}

// String renders the receiver as inline CSS, properties sorted by name.
func (s *Style) String() string {
	keys := make([]string, 0, len(s.attrs))
	for k := range s.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for idx, k := range keys {
		if idx > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s: %s;", k, s.attrs[k])
	}
	return sb.String()
}

// Series holds the paint used for one drawn series.
type Series struct {
	Fill   gg.RGBA
	Stroke gg.RGBA
	// LineWidth is the stroke width in device pixels.  Zero disables
	// stroking.
	LineWidth float64
}

// ForSeries returns the style of the idx'th series, colored from palette.
// Strokes use the fill color at full opacity; fills are translucent.
func ForSeries(idx int, palette *color.Space, lineWidth float64) Series {
	c := palette.Cycle(idx)
	fill := c
	fill.A *= 0.8
	return Series{
		Fill:      fill,
		Stroke:    c,
		LineWidth: lineWidth,
	}
}

// Overlay positions a highlight element above the chart canvas.  It is
// moved by ShowAt, which receives rectangles in CSS pixels.
type Overlay struct {
	style *Style
	rect  *quadtree.Rect
	// Shows counts ShowAt calls that displayed a rectangle.
	Shows int
}

// NewOverlay returns a hidden Overlay.
func NewOverlay() *Overlay {
	return &Overlay{
		style: New().With("display", "none").With("position", "absolute"),
	}
}

// ShowAt moves the overlay onto r, or hides it if r is nil.
func (o *Overlay) ShowAt(r *quadtree.Rect) {
	o.rect = r
	if r == nil {
		o.style.With("display", "none")
		return
	}
	o.Shows++
	o.style.
		With("display", "block").
		With("left", Px(r.X)).
		With("top", Px(r.Y)).
		With("width", Px(r.W)).
		With("height", Px(r.H))
}

// Rect returns the rectangle the overlay currently covers, or nil if it is
// hidden.
func (o *Overlay) Rect() *quadtree.Rect {
	return o.rect
}

// CSS returns the overlay's current inline style.
func (o *Overlay) CSS() string {
	return o.style.String()
}
