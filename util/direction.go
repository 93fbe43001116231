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

import (
	"fmt"
	"strings"
)

// Direction is the sense in which an axis runs.
type Direction int

const (
	// Forward axes grow rightward (horizontal) or downward along the
	// category axis, and upward along a vertical value axis.
	Forward Direction = iota
	// Reverse axes run opposite to Forward.
	Reverse
)

func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// ParseDirection returns the Direction named by s.  The empty string is
// Forward.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "forward", "ltr", "ttb":
		return Forward, nil
	case "reverse", "reversed", "rtl", "btt":
		return Reverse, nil
	}
	return Forward, fmt.Errorf("unknown direction %q", s)
}
