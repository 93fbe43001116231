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

package distribute

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Offsets and sizes are each rounded at six digits, so an item's end may be
// off by up to two half-units in the sixth place.
const tolerance = 2e-6

var sizeFactors = []float64{0.05, 0.1, 0.33, 0.5, 0.8, 0.9, 1}

func TestDistributeCoverage(t *testing.T) {
	for _, justify := range []Justify{Between, Around, Evenly} {
		for count := 1; count <= 50; count++ {
			for _, sf := range sizeFactors {
				spans := Spans(count, sf, justify)
				if len(spans) != count {
					t.Fatalf("%s count=%d: got %d spans", justify, count, len(spans))
				}
				for i := 1; i < count; i++ {
					if spans[i-1].Offset+spans[i-1].Size > spans[i].Offset+tolerance {
						t.Errorf("%s count=%d sf=%v: item %d %v overlaps item %d %v", justify, count, sf, i-1, spans[i-1], i, spans[i])
					}
				}
				last := spans[count-1]
				end := last.Offset + last.Size
				if end > 1+tolerance {
					t.Errorf("%s count=%d sf=%v: last item ends at %v, past the parent span", justify, count, sf, end)
				}
				var leading, trailing float64
				switch justify {
				case Between:
					if count == 1 {
						// No gap: the lone item keeps its own size.
						trailing = 1 - sf
					}
				case Around, Evenly:
					leading = spans[0].Offset
					trailing = leading
				}
				if justify == Between && spans[0].Offset != 0 {
					t.Errorf("%s count=%d sf=%v: leading offset %v, want 0", justify, count, sf, spans[0].Offset)
				}
				if got := end + trailing; math.Abs(got-1) > tolerance {
					t.Errorf("%s count=%d sf=%v: items and gaps cover %v of the span, want 1", justify, count, sf, got)
				}
			}
		}
	}
}

func TestDistributeMonotonic(t *testing.T) {
	for _, justify := range []Justify{Between, Around, Evenly} {
		for count := 2; count <= 50; count++ {
			for _, sf := range sizeFactors {
				spans := Spans(count, sf, justify)
				for i := 1; i < count; i++ {
					if spans[i].Offset <= spans[i-1].Offset {
						t.Fatalf("%s count=%d sf=%v: offset %d (%v) not after offset %d (%v)",
							justify, count, sf, i, spans[i].Offset, i-1, spans[i-1].Offset)
					}
					if spans[i].Size != spans[0].Size {
						t.Fatalf("%s count=%d sf=%v: non-uniform size at %d", justify, count, sf, i)
					}
				}
			}
		}
	}
}

func TestDistributeGaps(t *testing.T) {
	for _, test := range []struct {
		description string
		count       int
		sizeFactor  float64
		justify     Justify
		want        []Span
	}{{
		description: "between",
		count:       2,
		sizeFactor:  0.8,
		justify:     Between,
		want:        []Span{{0, 0.4}, {0.6, 0.4}},
	}, {
		description: "around",
		count:       2,
		sizeFactor:  0.6,
		justify:     Around,
		want:        []Span{{0.1, 0.3}, {0.6, 0.3}},
	}, {
		description: "evenly",
		count:       3,
		sizeFactor:  0.6,
		justify:     Evenly,
		want:        []Span{{0.1, 0.2}, {0.4, 0.2}, {0.7, 0.2}},
	}, {
		description: "single item between has no gap",
		count:       1,
		sizeFactor:  0.5,
		justify:     Between,
		want:        []Span{{0, 0.5}},
	}, {
		description: "no items",
		count:       0,
		sizeFactor:  0.5,
		justify:     Evenly,
		want:        []Span{},
	}} {
		t.Run(test.description, func(t *testing.T) {
			got := Spans(test.count, test.sizeFactor, test.justify)
			if diff := cmp.Diff(test.want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("Spans() diff (-want +got):\n%s", diff)
			}
			for _, s := range got {
				if math.IsNaN(s.Offset) || math.IsInf(s.Offset, 0) {
					t.Errorf("non-finite offset %v", s.Offset)
				}
			}
		})
	}
}

func TestDistributeOnlyIndex(t *testing.T) {
	for _, justify := range []Justify{Between, Around, Evenly} {
		for count := 1; count <= 20; count++ {
			all := Spans(count, 0.7, justify)
			for idx := 0; idx < count; idx++ {
				calls := 0
				Distribute(count, 0.7, justify, idx, func(gotIdx int, offPct, dimPct float64) {
					calls++
					if gotIdx != idx {
						t.Errorf("visited index %d, want %d", gotIdx, idx)
					}
					if (Span{offPct, dimPct}) != all[idx] {
						t.Errorf("%s count=%d idx=%d: got %v, want %v", justify, count, idx, Span{offPct, dimPct}, all[idx])
					}
				})
				if calls != 1 {
					t.Errorf("%s count=%d idx=%d: %d calls, want 1", justify, count, idx, calls)
				}
			}
		}
	}
	Distribute(3, 0.5, Between, 7, func(int, float64, float64) {
		t.Errorf("out-of-range index should not be visited")
	})
}

func TestNested(t *testing.T) {
	got := Nested(2, 2, 0.8, 0.9, Between)
	want := [][]Span{
		{{0, 0.18}, {0.6, 0.18}},
		{{0.22, 0.18}, {0.82, 0.18}},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("Nested() diff (-want +got):\n%s", diff)
	}
}

func TestParseJustify(t *testing.T) {
	for in, want := range map[string]Justify{
		"between":      Between,
		"Space-Around": Around,
		" evenly ":     Evenly,
	} {
		got, err := ParseJustify(in)
		if err != nil || got != want {
			t.Errorf("ParseJustify(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseJustify("center"); err == nil {
		t.Errorf("ParseJustify(center) should fail")
	}
}
