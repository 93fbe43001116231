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

package category

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCategory(t *testing.T) {
	for _, test := range []struct {
		description     string
		cat             *Category
		wantID          string
		wantDisplayName string
	}{{
		description:     "explicit",
		cat:             New("cars", "Cars", "Personal vehicles"),
		wantID:          "cars",
		wantDisplayName: "Cars",
	}, {
		description:     "from name",
		cat:             FromName(" Requests / sec "),
		wantID:          "requests_sec",
		wantDisplayName: " Requests / sec ",
	}, {
		description:     "display name falls back to ID",
		cat:             New("buses", "", ""),
		wantID:          "buses",
		wantDisplayName: "buses",
	}} {
		t.Run(test.description, func(t *testing.T) {
			if got := test.cat.ID(); got != test.wantID {
				t.Errorf("ID() = %q, want %q", got, test.wantID)
			}
			if got := test.cat.DisplayName(); got != test.wantDisplayName {
				t.Errorf("DisplayName() = %q, want %q", got, test.wantDisplayName)
			}
		})
	}
}

func TestIDs(t *testing.T) {
	got := IDs(New("cars", "Cars", ""), New("trucks", "Trucks", ""))
	if diff := cmp.Diff([]string{"cars", "trucks"}, got); diff != "" {
		t.Errorf("IDs() diff (-want +got):\n%s", diff)
	}
}
