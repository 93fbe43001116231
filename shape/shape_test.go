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

package shape

import (
	"testing"

	"github.com/gogpu/gg"
	"github.com/google/go-cmp/cmp"
	"github.com/ilhamster/chartcore/style"
)

func TestRect(t *testing.T) {
	p := NewPaths([]style.Series{
		{Fill: gg.RGB(1, 0, 0)},
		{Fill: gg.RGB(0, 0, 1), Stroke: gg.RGB(0, 0, 0), LineWidth: 2},
	})
	if p.Series[0].Stroke != nil {
		t.Errorf("unstroked series has a stroke path")
	}
	p.Rect(0, 0, 0, 10, 10)
	p.Rect(1, 20, 0, 10, 10)
	p.Rect(1, 40, 0, 10, 10)
	if got := p.Rects(); got != 3 {
		t.Errorf("Rects() = %d, want 3", got)
	}
	// Five elements per rectangle: move, three lines, close.
	if got := len(p.Series[1].Fill.Elements()); got != 10 {
		t.Errorf("fill path has %d elements, want 10", got)
	}
	first, ok := p.Series[1].Stroke.Elements()[0].(gg.MoveTo)
	if !ok {
		t.Fatalf("stroke path should start with a MoveTo")
	}
	if diff := cmp.Diff(gg.Pt(21, 1), first.Point); diff != "" {
		t.Errorf("stroke inset diff (-want +got):\n%s", diff)
	}
}

func TestDraw(t *testing.T) {
	dc := gg.NewContext(40, 20)
	defer dc.Close()
	p := NewPaths([]style.Series{
		{Fill: gg.RGB(1, 0, 0)},
		{Fill: gg.RGB(0, 0, 1), Stroke: gg.RGB(0, 0, 1), LineWidth: 1},
		{Fill: gg.RGB(0, 1, 0)},
	})
	p.Rect(0, 0, 0, 10, 20)
	p.Rect(1, 20, 0, 10, 20)
	if err := p.Draw(dc); err != nil {
		t.Fatalf("Draw() = %v", err)
	}
	img := dc.Image()
	if r, _, b, _ := img.At(5, 10).RGBA(); r == 0 || b != 0 {
		t.Errorf("pixel inside series 0 not red")
	}
	if r, _, b, _ := img.At(25, 10).RGBA(); b == 0 || r != 0 {
		t.Errorf("pixel inside series 1 not blue")
	}
	if _, _, _, a := img.At(15, 10).RGBA(); a != 0 {
		t.Errorf("pixel between bars was painted")
	}
}

func TestBucket(t *testing.T) {
	p := NewPaths(nil)
	red := style.Series{Fill: gg.RGB(1, 0, 0)}
	blue := style.Series{Fill: gg.RGB(0, 0, 1), LineWidth: 1}
	got := []int{p.Bucket(red), p.Bucket(blue), p.Bucket(red)}
	if diff := cmp.Diff([]int{0, 1, 0}, got); diff != "" {
		t.Errorf("bucket diff (-want +got):\n%s", diff)
	}
	if p.Series[1].Stroke == nil {
		t.Errorf("stroked bucket has no stroke path")
	}
}
