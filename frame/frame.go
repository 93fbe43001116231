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

// Package frame defines the aligned, columnar dataset consumed by the chart
// builders: one categorical or ordinal x field shared by any number of
// numeric series.  A nil value is a null (missing) data point.
package frame

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/ilhamster/chartcore/category"
	"github.com/ilhamster/chartcore/util"
)

var (
	// ErrEmpty is returned when a frame has no rows or no series.
	ErrEmpty = errors.New("frame has no data")
	// ErrMisaligned is returned when a series' length differs from the
	// frame's.
	ErrMisaligned = errors.New("series not aligned with frame")
)

// Series is one numeric column of a Frame.
type Series struct {
	Category *category.Category
	Values   []*float64
	// Base, if set, holds the value each point's bar starts from, as produced
	// by Stack.  A nil Base, or a nil entry, means the axis baseline 0.
	Base []*float64
}

// Frame is an aligned dataset.
type Frame struct {
	// Categories labels each row along the category axis.
	Categories []string
	// X holds ordinal positions of each row, e.g. timestamps for a timeline.
	// It may be nil for purely categorical data.
	X      []float64
	Series []*Series
}

// F returns a pointer to v, for building series literals.
func F(v float64) *float64 {
	return &v
}

// Floats returns a values slice holding vals.  NaN entries become nulls.
func Floats(vals ...float64) []*float64 {
	ret := make([]*float64, len(vals))
	for idx, v := range vals {
		if !math.IsNaN(v) {
			ret[idx] = F(v)
		}
	}
	return ret
}

// NewSeries returns a Series named name holding vals.
func NewSeries(name string, vals ...*float64) *Series {
	return &Series{
		Category: category.FromName(name),
		Values:   vals,
	}
}

// Len returns the number of rows in the receiver.
func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	if len(f.Categories) > 0 {
		return len(f.Categories)
	}
	if len(f.X) > 0 {
		return len(f.X)
	}
	if len(f.Series) > 0 {
		return len(f.Series[0].Values)
	}
	return 0
}

// Validate returns an error if the receiver is empty or any of its fields
// are misaligned.
func (f *Frame) Validate() error {
	n := f.Len()
	if n == 0 || len(f.Series) == 0 {
		return ErrEmpty
	}
	if len(f.Categories) > 0 && len(f.Categories) != n {
		return fmt.Errorf("%w: %d categories, %d rows", ErrMisaligned, len(f.Categories), n)
	}
	if len(f.X) > 0 && len(f.X) != n {
		return fmt.Errorf("%w: %d x values, %d rows", ErrMisaligned, len(f.X), n)
	}
	for idx, s := range f.Series {
		if len(s.Values) != n {
			util.Logger().Warn("misaligned series", "series", idx, "len", len(s.Values), "rows", n)
			return fmt.Errorf("%w: series %d has %d values, %d rows", ErrMisaligned, idx, len(s.Values), n)
		}
		if s.Base != nil && len(s.Base) != n {
			return fmt.Errorf("%w: series %d has %d base values, %d rows", ErrMisaligned, idx, len(s.Base), n)
		}
	}
	return nil
}

// Value returns the value of series seriesIdx at row valueIdx, and whether
// it is present.
func (f *Frame) Value(seriesIdx, valueIdx int) (float64, bool) {
	if seriesIdx < 0 || seriesIdx >= len(f.Series) {
		return 0, false
	}
	vals := f.Series[seriesIdx].Values
	if valueIdx < 0 || valueIdx >= len(vals) || vals[valueIdx] == nil {
		return 0, false
	}
	return *vals[valueIdx], true
}

// Label returns the category label of row valueIdx, or "" if there is none.
func (f *Frame) Label(valueIdx int) string {
	if valueIdx < 0 || valueIdx >= len(f.Categories) {
		return ""
	}
	return f.Categories[valueIdx]
}

// Extents returns the smallest and largest non-null values, including each
// point's base.  If includeZero is set, the range is widened to include 0.
// An all-null frame yields (0, 0) when includeZero is set and (0, 1)
// otherwise.
func (f *Frame) Extents(includeZero bool) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	see := func(vals []*float64) {
		for _, v := range vals {
			if v == nil {
				continue
			}
			lo = math.Min(lo, *v)
			hi = math.Max(hi, *v)
		}
	}
	for _, s := range f.Series {
		see(s.Values)
		see(s.Base)
	}
	if includeZero {
		lo = math.Min(lo, 0)
		hi = math.Max(hi, 0)
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	return lo, hi
}

// SortByX returns f with its rows in ascending X order, permuting
// Categories and every series' Values and Base alongside.  Rows with equal X
// keep their order.  f itself is returned if it has no X or is already
// sorted.
func SortByX(f *Frame) *Frame {
	if f == nil || sort.Float64sAreSorted(f.X) {
		return f
	}
	n := len(f.X)
	perm := make([]int, n)
	for idx := range perm {
		perm[idx] = idx
	}
	sort.SliceStable(perm, func(a, b int) bool {
		return f.X[perm[a]] < f.X[perm[b]]
	})
	permute := func(vals []*float64) []*float64 {
		if len(vals) != n {
			return vals
		}
		ret := make([]*float64, n)
		for to, from := range perm {
			ret[to] = vals[from]
		}
		return ret
	}
	ret := &Frame{
		X:      make([]float64, n),
		Series: make([]*Series, len(f.Series)),
	}
	for to, from := range perm {
		ret.X[to] = f.X[from]
	}
	if len(f.Categories) == n {
		ret.Categories = make([]string, n)
		for to, from := range perm {
			ret.Categories[to] = f.Categories[from]
		}
	} else {
		ret.Categories = f.Categories
	}
	for idx, s := range f.Series {
		ret.Series[idx] = &Series{
			Category: s.Category,
			Values:   permute(s.Values),
			Base:     permute(s.Base),
		}
	}
	return ret
}
