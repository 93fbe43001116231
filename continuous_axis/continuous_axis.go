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

// Package continuousaxis provides continuous value axes, and the transforms
// from axis values to device pixels.  An axis has a category, a type which
// describes that axis' domain, minimum and maximum points along that domain,
// and a direction.
package continuousaxis

import (
	"math"
	"time"

	"github.com/ilhamster/chartcore/category"
	"github.com/ilhamster/chartcore/util"
)

const (
	timestampAxisType = "timestamp"
	durationAxisType  = "duration"
	doubleAxisType    = "double"
)

// Scale maps values into fractions of an axis' extent.
type Scale interface {
	// Pct returns v's position along the scale, 0 at the minimum and 1 at the
	// maximum of a Forward scale.
	Pct(v float64) float64
}

// ValueToPixelX returns the horizontal device-pixel position of v along a
// dimension dim pixels wide starting at off.
func ValueToPixelX(v float64, s Scale, dim, off float64) float64 {
	return off + s.Pct(v)*dim
}

// ValueToPixelY returns the vertical device-pixel position of v along a
// dimension dim pixels tall starting at off.  Larger values are higher up.
func ValueToPixelY(v float64, s Scale, dim, off float64) float64 {
	return off + (1-s.Pct(v))*dim
}

// Axis is a continuous axis over values of type T.
type Axis[T float64 | time.Duration | time.Time] struct {
	axisType string
	cat      *category.Category
	// Float converts an axis value into the float domain used by Pct.
	Float    func(v T) float64
	min, max T
	dir      util.Direction
}

func newAxis[T float64 | time.Duration | time.Time](
	axisType string,
	cat *category.Category,
	floatFn func(v T) float64,
	min, max T) *Axis[T] {
	return &Axis[T]{
		axisType: axisType,
		cat:      cat,
		Float:    floatFn,
		min:      min,
		max:      max,
	}
}

// WithDirection sets the receiver's direction and returns it.
func (a *Axis[T]) WithDirection(dir util.Direction) *Axis[T] {
	a.dir = dir
	return a
}

// Type returns the receiver's domain: "timestamp", "duration" or "double".
func (a *Axis[T]) Type() string {
	return a.axisType
}

// CategoryID returns the category ID of the receiving Axis.
func (a *Axis[T]) CategoryID() string {
	return a.cat.ID()
}

// Extents returns the receiver's minimum and maximum.
func (a *Axis[T]) Extents() (min, max T) {
	return a.min, a.max
}

// Pct implements Scale.  v is in the receiver's float domain.  A scale with
// no extent maps every value to 0.
func (a *Axis[T]) Pct(v float64) float64 {
	lo, hi := a.Float(a.min), a.Float(a.max)
	if hi == lo {
		return 0
	}
	pct := (v - lo) / (hi - lo)
	if a.dir == util.Reverse {
		pct = 1 - pct
	}
	return pct
}

// NewTimestampAxis returns a new TimestampAxis with the specified category.
// If the optional extents are provided, the axis' minimum and maximum extents
// will be initialized to the lowest and highest of those extents.  Timestamps
// map to Unix milliseconds.
func NewTimestampAxis(cat *category.Category, extents ...time.Time) *Axis[time.Time] {
	var min, max time.Time
	for _, extent := range extents {
		if min.IsZero() || min.After(extent) {
			min = extent
		}
		if max.IsZero() || max.Before(extent) {
			max = extent
		}
	}
	return newAxis[time.Time](
		timestampAxisType, cat,
		func(v time.Time) float64 {
			return float64(v.UnixMilli())
		}, min, max)
}

// NewDurationAxis returns a new DurationAxis with the specified category.
// If the optional extents are provided, the axis' minimum and maximum extents
// will be initialized to the lowest and highest of those extents.  Durations
// map to nanoseconds.
func NewDurationAxis(cat *category.Category, extents ...time.Duration) *Axis[time.Duration] {
	var min, max time.Duration = time.Duration(math.MaxInt64), time.Duration(math.MinInt64)
	for _, extent := range extents {
		if extent < min {
			min = extent
		}
		if extent > max {
			max = extent
		}
	}
	if len(extents) == 0 {
		min, max = 0, 0
	}
	return newAxis[time.Duration](
		durationAxisType, cat,
		func(v time.Duration) float64 {
			return float64(v)
		}, min, max)
}

// NewDoubleAxis returns a new DoubleAxis with the specified category.
// If the optional extents are provided, the axis' minimum and maximum extents
// will be initialized to the lowest and highest of those extents.
func NewDoubleAxis(cat *category.Category, extents ...float64) *Axis[float64] {
	var min, max float64 = math.MaxFloat64, -math.MaxFloat64
	for _, extent := range extents {
		if min > extent {
			min = extent
		}
		if max < extent {
			max = extent
		}
	}
	if len(extents) == 0 {
		min, max = 0, 0
	}
	return newAxis[float64](
		doubleAxisType, cat,
		func(v float64) float64 {
			return v
		}, min, max)
}
