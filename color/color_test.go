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

package color

import (
	"testing"

	"github.com/gogpu/gg"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParse(t *testing.T) {
	for _, test := range []struct {
		description string
		in          string
		want        gg.RGBA
		wantErr     bool
	}{{
		description: "name",
		in:          "Red",
		want:        gg.RGB(1, 0, 0),
	}, {
		description: "long hex",
		in:          "#0000ff",
		want:        gg.RGB(0, 0, 1),
	}, {
		description: "short hex",
		in:          "0f0",
		want:        gg.RGB(0, 1, 0),
	}, {
		description: "not a color",
		in:          "#12345",
		wantErr:     true,
	}, {
		description: "not hex",
		in:          "#gggggg",
		wantErr:     true,
	}} {
		t.Run(test.description, func(t *testing.T) {
			got, err := Parse(test.in)
			if (err != nil) != test.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", test.in, err, test.wantErr)
			}
			if test.wantErr {
				return
			}
			if diff := cmp.Diff(test.want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("Parse(%q) diff (-want +got):\n%s", test.in, diff)
			}
		})
	}
}

func TestHex(t *testing.T) {
	if got := Hex(gg.RGB(1, 0.5, 0)); got != "#ff8000" {
		t.Errorf("Hex() = %q, want #ff8000", got)
	}
	if got := Hex(gg.RGBA{R: 0, G: 0, B: 0, A: 0}); got != "#00000000" {
		t.Errorf("Hex() = %q, want #00000000", got)
	}
}

func TestSpace(t *testing.T) {
	bw := NewSpace("bw", "black", "white")
	if err := bw.Err(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	for _, test := range []struct {
		description string
		at          float64
		want        gg.RGBA
	}{{
		description: "left",
		at:          0,
		want:        gg.RGB(0, 0, 0),
	}, {
		description: "middle",
		at:          0.5,
		want:        gg.RGB(0.5, 0.5, 0.5),
	}, {
		description: "clamped right",
		at:          3,
		want:        gg.RGB(1, 1, 1),
	}, {
		description: "clamped left",
		at:          -1,
		want:        gg.RGB(0, 0, 0),
	}} {
		t.Run(test.description, func(t *testing.T) {
			if diff := cmp.Diff(test.want, bw.At(test.at), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("At(%v) diff (-want +got):\n%s", test.at, diff)
			}
		})
	}
}

func TestCycle(t *testing.T) {
	s := NewSpace("rgb", "red", "green", "blue")
	if diff := cmp.Diff(s.Cycle(0), s.Cycle(3)); diff != "" {
		t.Errorf("Cycle should wrap, diff (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(s.Cycle(2), s.Cycle(-1)); diff != "" {
		t.Errorf("negative Cycle should wrap, diff (-want +got):\n%s", diff)
	}
	if NewSpace("bad", "nope").Err() == nil {
		t.Errorf("expected an error for an unparseable color")
	}
}
