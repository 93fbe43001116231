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

// Package categoryaxis places the labels of a category axis.  A category
// axis shows one group per frame row; its other, continuous, axis shows
// values.
package categoryaxis

import (
	"math"

	"github.com/ilhamster/chartcore/distribute"
	"github.com/ilhamster/chartcore/util"
)

// Tick is one category label and the device-pixel position of its group's
// centre along the axis.
type Tick struct {
	Label string
	Pos   float64
}

// Ticks returns a Tick for each label, centred on the group the bar chart
// builder draws for it along a dimension dim pixels long starting at off.
func Ticks(labels []string, groupWidth, dim, off float64, dir util.Direction) []Tick {
	ret := make([]Tick, 0, len(labels))
	distribute.Distribute(len(labels), groupWidth, distribute.Between, distribute.All, func(idx int, offPct, dimPct float64) {
		pos := offPct*dim + dimPct*dim/2
		if dir == util.Reverse {
			pos = dim - pos
		}
		ret = append(ret, Tick{
			Label: labels[idx],
			Pos:   math.Round(off + pos),
		})
	})
	return ret
}
