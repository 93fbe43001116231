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

// Package color supports declaring color spaces and resolving the colors
// used to fill and stroke rendered items.
//
// Colors are written as HTML color strings: a color name such as "red", or a
// hex specifier such as "#7EB26D" (RGB, RGBA, RRGGBB and RRGGBBAA forms are
// accepted).
//
// A color space comprises a sequence of such colors.  Items may be colored by
// their position along that sequence, ranging from 0.0 ('the leftmost color')
// to 1.0 ('the rightmost color'), in which case the color is that position in
// the linear interpolation of the sequence; or by index, cycling through the
// sequence without interpolation, as series colors are assigned:
//
//	fire := color.NewSpace("fire", "yellow", "red")
//	warm := fire.At(0.25)
//	third := color.Classic.Cycle(2)
package color

import (
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/gg"
)

var named = map[string]string{
	"black":  "#000000",
	"white":  "#ffffff",
	"grey":   "#808080",
	"gray":   "#808080",
	"red":    "#ff0000",
	"orange": "#ffa500",
	"yellow": "#ffff00",
	"green":  "#008000",
	"blue":   "#0000ff",
	"purple": "#800080",
	"cyan":   "#00ffff",
}

// Parse returns the color described by the HTML color string s.
func Parse(s string) (gg.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := named[s]; ok {
		s = hex
	}
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return gg.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	for _, r := range hex {
		if !(r >= '0' && r <= '9') && !(r >= 'a' && r <= 'f') {
			return gg.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
	}
	return gg.Hex(hex), nil
}

// Hex formats c as a #RRGGBB, or #RRGGBBAA if translucent, string.
func Hex(c gg.RGBA) string {
	b := func(v float64) int {
		return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	if c.A < 1 {
		return fmt.Sprintf("#%02x%02x%02x%02x", b(c.R), b(c.G), b(c.B), b(c.A))
	}
	return fmt.Sprintf("#%02x%02x%02x", b(c.R), b(c.G), b(c.B))
}

// Space represents a color space: a color continuum that can map double
// values to colors.
type Space struct {
	name   string
	colors []string
	parsed []gg.RGBA
	err    error
}

// Classic is the default series palette.
var Classic = NewSpace("classic",
	"#7eb26d", "#eab839", "#6ed0e0", "#ef843c", "#e24d42",
	"#1f78c1", "#ba43a9", "#705da0", "#508642", "#cca300")

// Traffic runs from green through yellow to red.
var Traffic = NewSpace("traffic", "green", "yellow", "red")

// NewSpace defines a new color space.  Colors in this space will be linearly
// interpolated between the specified colors.  Unparseable colors are reported
// by Err and render as black.
func NewSpace(name string, colors ...string) *Space {
	s := &Space{
		name:   name,
		colors: colors,
		parsed: make([]gg.RGBA, len(colors)),
	}
	for idx, c := range colors {
		rgba, err := Parse(c)
		if err != nil {
			if s.err == nil {
				s.err = fmt.Errorf("color space %q: %w", name, err)
			}
			rgba = gg.RGB(0, 0, 0)
		}
		s.parsed[idx] = rgba
	}
	return s
}

// Name returns the Space's name.
func (s *Space) Name() string {
	return s.name
}

// Colors returns the Space's color strings.
func (s *Space) Colors() []string {
	return s.colors
}

// Err returns the first color that failed to parse, if any.
func (s *Space) Err() error {
	return s.err
}

// At returns the color at position v along the receiver, clamped to [0, 1].
// An empty space yields opaque black.
func (s *Space) At(v float64) gg.RGBA {
	switch len(s.parsed) {
	case 0:
		return gg.RGB(0, 0, 0)
	case 1:
		return s.parsed[0]
	}
	if math.IsNaN(v) {
		v = 0
	}
	v = math.Max(0, math.Min(1, v))
	pos := v * float64(len(s.parsed)-1)
	lo := int(math.Floor(pos))
	if lo >= len(s.parsed)-1 {
		return s.parsed[len(s.parsed)-1]
	}
	frac := pos - float64(lo)
	a, b := s.parsed[lo], s.parsed[lo+1]
	lerp := func(x, y float64) float64 {
		return x + (y-x)*frac
	}
	return gg.RGBA{
		R: lerp(a.R, b.R),
		G: lerp(a.G, b.G),
		B: lerp(a.B, b.B),
		A: lerp(a.A, b.A),
	}
}

// Cycle returns the idx'th color of the receiver, wrapping around.
func (s *Space) Cycle(idx int) gg.RGBA {
	if len(s.parsed) == 0 {
		return gg.RGB(0, 0, 0)
	}
	idx %= len(s.parsed)
	if idx < 0 {
		idx += len(s.parsed)
	}
	return s.parsed[idx]
}
