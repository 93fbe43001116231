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

package frame

import (
	"fmt"
	"math"
	"strings"
)

// StackMode selects how series values are combined before layout.
type StackMode int

const (
	// StackNone leaves values untouched.
	StackNone StackMode = iota
	// StackNormal stacks each series on top of the previous ones.
	StackNormal
	// StackPercent stacks each row's values as fractions of the row total.
	StackPercent
)

func (m StackMode) String() string {
	switch m {
	case StackNone:
		return "none"
	case StackNormal:
		return "normal"
	case StackPercent:
		return "percent"
	}
	return fmt.Sprintf("StackMode(%d)", int(m))
}

// ParseStackMode returns the StackMode named by s.  The empty string is
// StackNone.
func ParseStackMode(s string) (StackMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "off":
		return StackNone, nil
	case "normal", "on":
		return StackNormal, nil
	case "percent":
		return StackPercent, nil
	}
	return StackNone, fmt.Errorf("unknown stacking mode %q", s)
}

// Stack returns a copy of f with its series stacked according to mode.  Each
// stacked value is the cumulative top of the point's bar, and Base holds the
// cumulative top beneath it.  Positive and negative values accumulate
// separately, so negative bars stack downward from 0.  Null points stay null
// and contribute nothing.  Percent stacking first divides each value by the
// sum of the row's absolute values.
//
// StackNone returns f itself.
func Stack(f *Frame, mode StackMode) *Frame {
	if mode == StackNone || f == nil {
		return f
	}
	n := f.Len()
	var totals []float64
	if mode == StackPercent {
		totals = make([]float64, n)
		for _, s := range f.Series {
			for row, v := range s.Values {
				if v != nil && row < n {
					totals[row] += math.Abs(*v)
				}
			}
		}
	}
	pos := make([]float64, n)
	neg := make([]float64, n)
	ret := &Frame{
		Categories: f.Categories,
		X:          f.X,
		Series:     make([]*Series, len(f.Series)),
	}
	for idx, s := range f.Series {
		vals := make([]*float64, len(s.Values))
		base := make([]*float64, len(s.Values))
		for row, v := range s.Values {
			if v == nil || row >= n {
				continue
			}
			val := *v
			if totals != nil {
				if totals[row] == 0 {
					val = 0
				} else {
					val /= totals[row]
				}
			}
			acc := pos
			if val < 0 {
				acc = neg
			}
			base[row] = F(acc[row])
			acc[row] += val
			vals[row] = F(acc[row])
		}
		ret.Series[idx] = &Series{
			Category: s.Category,
			Values:   vals,
			Base:     base,
		}
	}
	return ret
}
