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

package util

import "math"

// Box is an axis-aligned region, usually the plot's drawable area in device
// pixels.
type Box struct {
	Left, Top, Width, Height float64
}

// Empty reports whether the receiver encloses no area.
func (b Box) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Scale returns the receiver with every coordinate multiplied by f.
func (b Box) Scale(f float64) Box {
	return Box{
		Left:   b.Left * f,
		Top:    b.Top * f,
		Width:  b.Width * f,
		Height: b.Height * f,
	}
}

// RoundDec rounds v to dec decimal digits.
func RoundDec(v float64, dec int) float64 {
	p := math.Pow10(dec)
	return math.Round(v*p) / p
}

// Round6 rounds v to six decimal digits, the precision at which layout
// fractions are kept.
func Round6(v float64) float64 {
	return RoundDec(v, 6)
}
