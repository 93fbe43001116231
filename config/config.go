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

// Package config loads chart definitions from TOML or YAML files.
//
// A definition names the chart's kind, its layout parameters and the data
// file it draws.  Absent keys keep their defaults:
//
//	kind = "bars"
//	data = "fruit.csv"
//	group_width = 0.8
//	stacking = "normal"
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	barchart "github.com/ilhamster/chartcore/bar_chart"
	"github.com/ilhamster/chartcore/color"
	"github.com/ilhamster/chartcore/distribute"
	"github.com/ilhamster/chartcore/frame"
	"github.com/ilhamster/chartcore/util"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownFormat is returned for files that are neither TOML nor YAML.
	ErrUnknownFormat = errors.New("unknown config format")
	// ErrInvalid is returned for definitions failing validation.
	ErrInvalid = errors.New("invalid chart definition")
)

// Chart kinds.
const (
	KindBars     = "bars"
	KindTimeline = "timeline"
)

// Chart is a chart definition.
type Chart struct {
	Title string `toml:"title" yaml:"title"`
	Kind  string `toml:"kind" yaml:"kind"`
	// Data is the path of the CSV or XLSX data file, relative to the
	// definition's directory.
	Data string `toml:"data" yaml:"data"`
	// Sheet selects the XLSX sheet; the first sheet by default.
	Sheet string `toml:"sheet" yaml:"sheet"`

	Orientation string  `toml:"orientation" yaml:"orientation"`
	Direction   string  `toml:"direction" yaml:"direction"`
	GroupWidth  float64 `toml:"group_width" yaml:"group_width"`
	BarWidth    float64 `toml:"bar_width" yaml:"bar_width"`
	Stacking    string  `toml:"stacking" yaml:"stacking"`

	RowHeight   float64 `toml:"row_height" yaml:"row_height"`
	Justify     string  `toml:"justify" yaml:"justify"`
	MergeValues bool    `toml:"merge_values" yaml:"merge_values"`

	ShowValues bool   `toml:"show_values" yaml:"show_values"`
	Decimals   int    `toml:"decimals" yaml:"decimals"`
	Unit       string `toml:"unit" yaml:"unit"`

	// Width and Height are in CSS pixels.
	Width      int      `toml:"width" yaml:"width"`
	Height     int      `toml:"height" yaml:"height"`
	PixelRatio float64  `toml:"pixel_ratio" yaml:"pixel_ratio"`
	Palette    []string `toml:"palette" yaml:"palette"`
	LineWidth  float64  `toml:"line_width" yaml:"line_width"`
}

// Default returns a Chart holding every default.
func Default() *Chart {
	return &Chart{
		Kind:        KindBars,
		GroupWidth:  0.7,
		BarWidth:    0.97,
		RowHeight:   0.9,
		Justify:     distribute.Between.String(),
		MergeValues: true,
		Decimals:    -1,
		Width:       800,
		Height:      400,
		PixelRatio:  1,
		LineWidth:   1,
	}
}

// Parse decodes data in format, "toml" or "yaml", over the defaults and
// validates the result.
func Parse(data []byte, format string) (*Chart, error) {
	c := Default()
	var err error
	switch strings.ToLower(format) {
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(c)
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document keeps every default.
		if err = dec.Decode(c); errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		return nil, fmt.Errorf("%w '%s'", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", format, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads and parses the definition at path, choosing the format by file
// extension.  A relative Data path is resolved against path's directory.
func Load(path string) (*Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(data, strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if c.Data != "" && !filepath.IsAbs(c.Data) {
		c.Data = filepath.Join(filepath.Dir(path), c.Data)
	}
	return c, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate returns an error if any field of the receiver is out of range or
// unparseable.
func (c *Chart) Validate() error {
	switch c.Kind {
	case KindBars, KindTimeline:
	default:
		return invalid("unknown kind '%s'", c.Kind)
	}
	if _, err := barchart.ParseOrientation(c.Orientation); err != nil {
		return invalid("%v", err)
	}
	if _, err := util.ParseDirection(c.Direction); err != nil {
		return invalid("%v", err)
	}
	if _, err := frame.ParseStackMode(c.Stacking); err != nil {
		return invalid("%v", err)
	}
	if _, err := distribute.ParseJustify(c.Justify); err != nil {
		return invalid("%v", err)
	}
	for _, w := range []struct {
		name string
		val  float64
	}{{"group_width", c.GroupWidth}, {"bar_width", c.BarWidth}, {"row_height", c.RowHeight}} {
		if !(w.val > 0 && w.val <= 1) {
			return invalid("%s %v must be in (0, 1]", w.name, w.val)
		}
	}
	if c.Width <= 0 || c.Height <= 0 {
		return invalid("size %dx%d must be positive", c.Width, c.Height)
	}
	if c.PixelRatio <= 0 {
		return invalid("pixel_ratio %v must be positive", c.PixelRatio)
	}
	if c.LineWidth < 0 {
		return invalid("line_width %v must not be negative", c.LineWidth)
	}
	if p := c.palette(); p != nil && p.Err() != nil {
		return invalid("%v", p.Err())
	}
	return nil
}

func (c *Chart) palette() *color.Space {
	if len(c.Palette) == 0 {
		return nil
	}
	return color.NewSpace("palette", c.Palette...)
}

// Space returns the receiver's palette, or def if it names none.
func (c *Chart) Space(def *color.Space) *color.Space {
	if p := c.palette(); p != nil {
		return p
	}
	return def
}
