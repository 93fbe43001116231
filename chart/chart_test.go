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

package chart

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/ilhamster/chartcore/config"
	"github.com/ilhamster/chartcore/frame"
	hittest "github.com/ilhamster/chartcore/hit_test"
)

func fruit() *frame.Frame {
	return &frame.Frame{
		Categories: []string{"Mon", "Tue"},
		Series: []*frame.Series{
			frame.NewSeries("apples", frame.Floats(5, 2)...),
			frame.NewSeries("pears", frame.Floats(1, 3)...),
		},
	}
}

func small() *config.Chart {
	cfg := config.Default()
	cfg.Width, cfg.Height = 200, 100
	return cfg
}

func mustNew(t *testing.T, cfg *config.Chart, f *frame.Frame, opts ...Option) *Chart {
	t.Helper()
	c, err := New(cfg, f, opts...)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	return c
}

func TestLayout(t *testing.T) {
	c := mustNew(t, small(), fruit())
	if diff := cmp.Diff(128.0, c.Box().Width); diff != "" {
		t.Errorf("plot width diff (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(70.0, c.Box().Height); diff != "" {
		t.Errorf("plot height diff (-want +got):\n%s", diff)
	}
}

func TestRenderAndEncode(t *testing.T) {
	cfg := small()
	cfg.Title = "Fruit"
	cfg.ShowValues = true
	c := mustNew(t, cfg, fruit())
	if err := c.Render(); err != nil {
		t.Fatalf("Render() = %v", err)
	}
	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG() = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decoding rendered PNG: %v", err)
	}
	if got := img.Bounds().Size(); got.X != 200 || got.Y != 100 {
		t.Errorf("rendered %v, want 200x100", got)
	}
	// Apples on Monday fills the plot's height.
	rect := c.Coordinator().Index().FindRect(0, 0)
	if rect == nil {
		t.Fatalf("no rectangle indexed for (0,0)")
	}
	x := int(c.Box().Left + rect.X + rect.W/2)
	y := int(c.Box().Top + rect.Y + rect.H/2)
	if r, g, b, _ := img.At(x, y).RGBA(); r == 0xffff && g == 0xffff && b == 0xffff {
		t.Errorf("pixel (%d, %d) inside a bar is white", x, y)
	}
}

func TestHover(t *testing.T) {
	var hovers int
	c := mustNew(t, small(), fruit(), WithCallbacks(hittest.Callbacks{
		OnHover: func(int, int) { hovers++ },
	}))
	if err := c.Render(); err != nil {
		t.Fatalf("Render() = %v", err)
	}
	rect := c.Coordinator().Index().FindRect(0, 0)
	// At a pixel ratio of 1, CSS and device pixels agree.
	c.PointerMove(c.Box().Left+rect.X+1, c.Box().Top+rect.Y+1)
	want := []HoverInfo{{
		Series:   "apples",
		Category: "Mon",
		Value:    5,
		Text:     "5",
	}}
	got := c.Hovered()
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(HoverInfo{}, "Overlay")); diff != "" {
		t.Errorf("Hovered() diff (-want +got):\n%s", diff)
	}
	if len(got) == 1 && !strings.Contains(got[0].Overlay, "display: block") {
		t.Errorf("hover overlay %q is hidden", got[0].Overlay)
	}
	if hovers != 1 {
		t.Errorf("got %d hover callbacks, want 1", hovers)
	}
	if c.Highlights()[0].Rect() == nil {
		t.Errorf("canvas highlight not shown")
	}
	// The highlight survives the redraw, drawn where it was.
	if err := c.Render(); err != nil {
		t.Fatalf("Render() = %v", err)
	}
	if c.Highlights()[0].Rect() == nil {
		t.Errorf("redraw hid the highlight")
	}
	c.PointerLeave()
	if got := c.Hovered(); len(got) != 0 {
		t.Errorf("Hovered() after leaving = %v", got)
	}
}

func TestStackedHoverReportsRawValues(t *testing.T) {
	cfg := small()
	cfg.Stacking = "percent"
	cfg.PixelRatio = 2
	c := mustNew(t, cfg, fruit())
	if err := c.Render(); err != nil {
		t.Fatalf("Render() = %v", err)
	}
	if got := c.Box().Width; got != 256 {
		t.Errorf("device plot width = %v, want 256", got)
	}
	rect := c.Coordinator().Index().FindRect(1, 1)
	if rect == nil {
		t.Fatalf("no rectangle indexed for (1,1)")
	}
	c.PointerMove((c.Box().Left+rect.X+rect.W/2)/2, (c.Box().Top+rect.Y+rect.H/2)/2)
	got := c.Hovered()
	if len(got) != 1 || got[0].SeriesIdx != 1 || got[0].ValueIdx != 1 || got[0].Value != 3 {
		t.Errorf("Hovered() = %+v, want pears on Tue valued 3", got)
	}
}

func TestTimeline(t *testing.T) {
	cfg := small()
	cfg.Kind = config.KindTimeline
	cfg.Width = 300
	f := &frame.Frame{
		X: []float64{0, 10, 20},
		Series: []*frame.Series{
			frame.NewSeries("cpu0", frame.Floats(1, 1, 2)...),
			frame.NewSeries("cpu1", frame.Floats(2, 3, 3)...),
		},
	}
	c := mustNew(t, cfg, f)
	if err := c.Render(); err != nil {
		t.Fatalf("Render() = %v", err)
	}
	// The first third of the plot holds value 0 of both lanes.
	c.PointerMove(c.Box().Left+5, c.Box().Top+1)
	got := c.Hovered()
	if len(got) != 2 {
		t.Fatalf("Hovered() = %+v, want one point per lane", got)
	}
	for lane, h := range got {
		if h.Lane != lane || h.SeriesIdx != lane || h.ValueIdx != 0 {
			t.Errorf("lane %d hovered %+v", lane, h)
		}
	}
	if len(c.Highlights()) != 2 {
		t.Errorf("got %d lane highlights, want 2", len(c.Highlights()))
	}
}

func TestInvalidData(t *testing.T) {
	_, err := New(small(), &frame.Frame{})
	if !errors.Is(err, frame.ErrEmpty) {
		t.Errorf("New() = %v, want ErrEmpty", err)
	}
}

func TestTimelineSortsRows(t *testing.T) {
	cfg := small()
	cfg.Kind = config.KindTimeline
	cfg.Width = 300
	cfg.MergeValues = false
	f := &frame.Frame{
		Categories: []string{"late", "mid", "early", "first"},
		X:          []float64{30, 20, 10, 0},
		Series: []*frame.Series{
			frame.NewSeries("cpu0", frame.Floats(1, 2, 3, 4)...),
		},
	}
	c := mustNew(t, cfg, f)
	if err := c.Render(); err != nil {
		t.Fatalf("Render() = %v", err)
	}
	// The 196px plot spans x 0 to 40, so each row covers 49px.
	for _, test := range []struct {
		x            float64
		wantCategory string
		wantValue    float64
	}{
		{5, "first", 4},
		{60, "early", 3},
		{110, "mid", 2},
		{190, "late", 1},
	} {
		c.PointerMove(c.Box().Left+test.x, c.Box().Top+1)
		got := c.Hovered()
		if len(got) != 1 {
			t.Fatalf("Hovered() at x=%v = %+v, want one point", test.x, got)
		}
		if got[0].Category != test.wantCategory || got[0].Value != test.wantValue {
			t.Errorf("Hovered() at x=%v = %+v, want %s=%v", test.x, got[0], test.wantCategory, test.wantValue)
		}
	}
	if f.X[0] != 30 {
		t.Errorf("New reordered the caller's frame")
	}
}

func TestPointerDrawsNoCrosshair(t *testing.T) {
	c := mustNew(t, small(), fruit())
	before, err := c.Image()
	if err != nil {
		t.Fatalf("Image() = %v", err)
	}
	// Midway across the 128px plot lies the gap between the two groups.
	if got := c.PointerMove(c.Box().Left+64, c.Box().Top+35); got[0] != nil {
		t.Fatalf("PointerMove() hit %+v, want the gap", got[0])
	}
	if err := c.Render(); err != nil {
		t.Fatalf("Render() = %v", err)
	}
	after, err := c.Image()
	if err != nil {
		t.Fatalf("Image() = %v", err)
	}
	if !bytes.Equal(before.(*image.RGBA).Pix, after.(*image.RGBA).Pix) {
		t.Errorf("moving the pointer changed the rendered image")
	}
}
