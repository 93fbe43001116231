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

// Package label formats the values shown in value labels and tooltips.
package label

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter formats numeric values for display with locale-aware digit
// grouping.
type Formatter struct {
	decimals int
	unit     string
	printer  *message.Printer
}

// New returns a Formatter for the provided language.  decimals < 0 selects
// the shortest representation of up to four decimals.  A non-empty unit is
// appended after a space, except for "%" which is appended directly.
func New(lang language.Tag, decimals int, unit string) *Formatter {
	return &Formatter{
		decimals: decimals,
		unit:     unit,
		printer:  message.NewPrinter(lang),
	}
}

// Default returns an English Formatter with automatic decimals and no unit.
func Default() *Formatter {
	return New(language.English, -1, "")
}

// Format returns v formatted for display.
func (f *Formatter) Format(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprint(v)
	}
	decimals := f.decimals
	if decimals < 0 {
		decimals = autoDecimals(v)
	}
	s := f.printer.Sprintf(fmt.Sprintf("%%.%df", decimals), v)
	switch f.unit {
	case "":
		return s
	case "%":
		return s + "%"
	}
	return s + " " + f.unit
}

// autoDecimals returns the fewest decimals, up to four, that represent v
// exactly at that precision.
func autoDecimals(v float64) int {
	for d := 0; d < 4; d++ {
		s := strings.TrimRight(fmt.Sprintf("%.4f", v), "0")
		if idx := strings.IndexByte(s, '.'); idx >= 0 && len(s)-idx-1 <= d {
			return d
		}
	}
	return 4
}
