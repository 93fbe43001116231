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

// Package distribute subdivides a parent span among a number of equally
// sized items.  Offsets and sizes are fractions of the parent span.
//
// The leftover space (1 - sizeFactor) becomes gaps according to a Justify
// policy, mirroring CSS flexbox justify-content:
//
//	Between:  |X  X  X|   no leading or trailing gap
//	Around:   | X  X  X |  half gaps at either end
//	Evenly:   |  X  X  X  |  full gaps at either end
package distribute

import (
	"fmt"
	"math"
	"strings"

	"github.com/ilhamster/chartcore/util"
)

// Justify selects how the leftover space becomes gaps.
type Justify int

const (
	// Between places gaps only between items.
	Between Justify = iota
	// Around gives each item half a gap on either side.
	Around
	// Evenly makes every gap, including the outer two, the same size.
	Evenly
)

// All, passed as onlyIdx, visits every item.
const All = -1

func (j Justify) String() string {
	switch j {
	case Between:
		return "between"
	case Around:
		return "around"
	case Evenly:
		return "evenly"
	}
	return fmt.Sprintf("Justify(%d)", int(j))
}

// ParseJustify returns the Justify named by s, case-insensitively.
func ParseJustify(s string) (Justify, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "between", "space-between":
		return Between, nil
	case "around", "space-around":
		return Around, nil
	case "evenly", "space-evenly":
		return Evenly, nil
	}
	return Between, fmt.Errorf("unknown justification %q", s)
}

// Distribute lays out count items sharing sizeFactor of the parent span, and
// invokes each with every item's index, offset fraction, and size fraction.
// If onlyIdx is not All, only that item is visited; its values are the same
// as when all items are visited.
//
// Sizes are identical for every item and, like offsets, rounded to six
// decimal places.  count < 1 visits nothing.
func Distribute(count int, sizeFactor float64, justify Justify, onlyIdx int, each func(idx int, offPct, dimPct float64)) {
	if count < 1 {
		return
	}
	space := 1 - sizeFactor
	var gap, offs float64
	switch justify {
	case Between:
		gap = space / float64(count-1)
	case Around:
		gap = space / float64(count)
	case Evenly:
		gap = space / float64(count+1)
	}
	// A single item under Between divides by zero.
	if math.IsNaN(gap) || math.IsInf(gap, 0) {
		gap = 0
	}
	switch justify {
	case Around:
		offs = gap / 2
	case Evenly:
		offs = gap
	}
	iwid := sizeFactor / float64(count)
	rwid := util.Round6(iwid)
	if onlyIdx != All {
		if onlyIdx < 0 || onlyIdx >= count {
			return
		}
		each(onlyIdx, util.Round6(offs+float64(onlyIdx)*(iwid+gap)), rwid)
		return
	}
	for i := 0; i < count; i++ {
		each(i, util.Round6(offs+float64(i)*(iwid+gap)), rwid)
	}
}

// Span is one item's placement within its parent, as fractions.
type Span struct {
	Offset, Size float64
}

// Spans returns the placement of every item, as Distribute would report it.
func Spans(count int, sizeFactor float64, justify Justify) []Span {
	ret := make([]Span, 0, max(count, 0))
	Distribute(count, sizeFactor, justify, All, func(_ int, offPct, dimPct float64) {
		ret = append(ret, Span{Offset: offPct, Size: dimPct})
	})
	return ret
}

// Nested lays out outerCount groups sharing outerFactor of the parent span
// and, within each group, innerCount items sharing innerFactor of the group.
// The result is indexed [inner][outer], and its fractions are relative to the
// parent span.
func Nested(outerCount, innerCount int, outerFactor, innerFactor float64, justify Justify) [][]Span {
	ret := make([][]Span, innerCount)
	for i := range ret {
		ret[i] = make([]Span, outerCount)
	}
	Distribute(outerCount, outerFactor, justify, All, func(g int, groupOff, groupDim float64) {
		Distribute(innerCount, innerFactor, justify, All, func(b int, barOff, barDim float64) {
			ret[b][g] = Span{
				Offset: groupOff + groupDim*barOff,
				Size:   groupDim * barDim,
			}
		})
	})
	return ret
}
