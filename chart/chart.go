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

// Package chart hosts a bar chart or timeline on a gg canvas, playing the
// part of the charting library: it owns the render loop and the canvas,
// computes the plot area, and calls the lifecycle hooks, path builders and
// hit-test entry points a renderpass.Coordinator exposes.
//
// A Chart renders to an *image.RGBA: series paths and highlights are drawn
// with gg, then axis and value labels are drawn over the result with a
// fixed-size bitmap font.
package chart

import (
	"errors"
	"fmt"
	"image"
	imgcolor "image/color"
	"image/png"
	"io"
	"math"
	"sync"

	"github.com/gogpu/gg"
	barchart "github.com/ilhamster/chartcore/bar_chart"
	"github.com/ilhamster/chartcore/category"
	categoryaxis "github.com/ilhamster/chartcore/category_axis"
	"github.com/ilhamster/chartcore/color"
	"github.com/ilhamster/chartcore/config"
	continuousaxis "github.com/ilhamster/chartcore/continuous_axis"
	"github.com/ilhamster/chartcore/distribute"
	"github.com/ilhamster/chartcore/frame"
	hittest "github.com/ilhamster/chartcore/hit_test"
	"github.com/ilhamster/chartcore/label"
	"github.com/ilhamster/chartcore/quadtree"
	renderpass "github.com/ilhamster/chartcore/render_pass"
	"github.com/ilhamster/chartcore/style"
	"github.com/ilhamster/chartcore/timeline"
	"github.com/ilhamster/chartcore/util"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/language"
)

// Margins around the plot area, in CSS pixels.
const (
	marginTop        = 10
	marginTitle      = 16
	marginRight      = 16
	marginBottom     = 20
	marginLeft       = 56
	marginLeftLabels = 88
	// valueTicks is the number of labeled positions along the value axis.
	valueTicks = 5
	tickGap    = 4
)

var (
	ink      = imgcolor.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	axisRGBA = gg.RGBA{R: 0.6, G: 0.6, B: 0.6, A: 1}
	hlRGBA   = gg.RGBA{R: 0, G: 0, B: 0, A: 0.8}
)

// CanvasHighlight is a hittest.Highlighter outlining the hovered shape on
// the next render.  Its Overlay describes the same box for clients drawing
// the highlight above the canvas.
type CanvasHighlight struct {
	*style.Overlay
}

func (ch *CanvasHighlight) draw(dc *gg.Context, plot util.Box, ratio float64) error {
	r := ch.Rect()
	if r == nil {
		return nil
	}
	dc.SetRGBA(hlRGBA.R, hlRGBA.G, hlRGBA.B, hlRGBA.A)
	dc.SetLineWidth(ratio)
	dc.DrawRectangle(plot.Left+r.X*ratio, plot.Top+r.Y*ratio, r.W*ratio, r.H*ratio)
	return dc.Stroke()
}

// Option configures a Chart.
type Option func(*Chart)

// WithCallbacks sets hover and leave callbacks.
func WithCallbacks(callbacks hittest.Callbacks) Option {
	return func(c *Chart) {
		c.callbacks = callbacks
	}
}

// WithIndexOptions configures the hit-test index.
func WithIndexOptions(opts ...quadtree.Option) Option {
	return func(c *Chart) {
		c.indexOpts = append(c.indexOpts, opts...)
	}
}

// WithLanguage selects the language used to format numbers.
func WithLanguage(lang language.Tag) Option {
	return func(c *Chart) {
		c.lang = lang
	}
}

// Chart is a rendered chart and its interaction state.  Its methods may be
// called from several goroutines; they run one at a time.
type Chart struct {
	mu sync.Mutex

	cfg       *config.Chart
	raw, data *frame.Frame
	callbacks hittest.Callbacks
	indexOpts []quadtree.Option
	lang      language.Tag

	orientation barchart.Orientation
	direction   util.Direction
	axis        *continuousaxis.Axis[float64]
	formatter   *label.Formatter
	lanes       renderpass.LaneBuilder

	ratio      float64
	dc         *gg.Context
	plot       util.Box
	coord      *renderpass.Coordinator
	hooks      renderpass.Config
	highlights []*CanvasHighlight

	cursorX, cursorY float64
	cursorIn         bool
	initialized      bool
	img              *image.RGBA
}

// New returns a Chart drawing raw as defined by cfg.
func New(cfg *config.Chart, raw *frame.Frame, opts ...Option) (*Chart, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := raw.Validate(); err != nil {
		return nil, fmt.Errorf("chart data: %w", err)
	}
	c := &Chart{
		cfg:   cfg,
		raw:   raw,
		lang:  language.English,
		ratio: cfg.PixelRatio,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.formatter = label.New(c.lang, cfg.Decimals, cfg.Unit)
	// Validate has checked every enumeration.
	c.orientation, _ = barchart.ParseOrientation(cfg.Orientation)
	c.direction, _ = util.ParseDirection(cfg.Direction)
	var builder renderpass.PathBuilder
	var err error
	switch cfg.Kind {
	case config.KindTimeline:
		builder, err = c.timeline()
	default:
		builder, err = c.bars()
	}
	if err != nil {
		return nil, err
	}
	width := int(math.Round(float64(cfg.Width) * c.ratio))
	height := int(math.Round(float64(cfg.Height) * c.ratio))
	c.dc = gg.NewContext(width, height)
	c.plot = c.layout(width, height)
	c.coord = renderpass.New(builder,
		renderpass.WithPixelRatio(c.ratio),
		renderpass.WithIndexOptions(c.indexOpts...),
		renderpass.WithCallbacks(c.callbacks),
		renderpass.WithHighlighter(func(int) hittest.Highlighter {
			ch := &CanvasHighlight{Overlay: style.NewOverlay()}
			c.highlights = append(c.highlights, ch)
			return ch
		}),
	)
	c.hooks = c.coord.Config()
	return c, nil
}

func (c *Chart) bars() (renderpass.PathBuilder, error) {
	mode, _ := frame.ParseStackMode(c.cfg.Stacking)
	c.data = frame.Stack(c.raw, mode)
	lo, hi := c.data.Extents(true)
	c.axis = continuousaxis.NewDoubleAxis(category.FromName("value"), lo, hi)
	return barchart.New(barchart.Options{
		Orientation: c.orientation,
		Direction:   c.direction,
		GroupWidth:  c.cfg.GroupWidth,
		BarWidth:    c.cfg.BarWidth,
		Stacked:     mode != frame.StackNone,
		ShowValues:  c.cfg.ShowValues,
		Formatter:   c.formatter,
		Palette:     c.cfg.Space(color.Classic),
		LineWidth:   c.cfg.LineWidth * c.ratio,
	})
}

func (c *Chart) timeline() (renderpass.PathBuilder, error) {
	// Segments run forward in X, and hovers report rows of raw.
	c.raw = frame.SortByX(c.raw)
	c.data = c.raw
	n := c.data.Len()
	xs := make([]float64, n)
	for idx := range xs {
		xs[idx] = float64(idx)
		if idx < len(c.data.X) {
			xs[idx] = c.data.X[idx]
		}
	}
	lo, hi := xs[0], xs[n-1]
	// Leave one average step after the last point so its segment shows.
	step := 1.0
	if n > 1 && hi > lo {
		step = (hi - lo) / float64(n-1)
	}
	c.axis = continuousaxis.NewDoubleAxis(category.FromName("x"), lo, hi+step)
	justify, _ := distribute.ParseJustify(c.cfg.Justify)
	tb, err := timeline.New(timeline.Options{
		RowHeight:   c.cfg.RowHeight,
		Justify:     justify,
		MergeValues: c.cfg.MergeValues,
		ShowValues:  c.cfg.ShowValues,
		Palette:     c.cfg.Space(color.Traffic),
		LineWidth:   c.cfg.LineWidth * c.ratio,
		Formatter:   c.formatter,
	})
	if err != nil {
		return nil, err
	}
	c.lanes = tb
	return tb, nil
}

// layout returns the plot area of a width x height device-pixel canvas.
func (c *Chart) layout(width, height int) util.Box {
	top, left := float64(marginTop), float64(marginLeft)
	if c.cfg.Title != "" {
		top += marginTitle
	}
	if c.lanes != nil || c.orientation == barchart.Vertical {
		left = marginLeftLabels
	}
	// A canvas smaller than its margins leaves a zero-area plot.
	return util.Box{
		Left:   math.Round(left * c.ratio),
		Top:    math.Round(top * c.ratio),
		Width:  math.Max(float64(width)-math.Round((left+marginRight)*c.ratio), 0),
		Height: math.Max(float64(height)-math.Round((top+marginBottom)*c.ratio), 0),
	}
}

// Box implements renderpass.Surface.
func (c *Chart) Box() util.Box { return c.plot }

// Frame implements renderpass.Surface.  Stacked bar charts return the
// stacked frame.
func (c *Chart) Frame() *frame.Frame { return c.data }

// Scale implements renderpass.Surface.
func (c *Chart) Scale() continuousaxis.Scale { return c.axis }

// ValToPosX implements renderpass.Surface.
func (c *Chart) ValToPosX(v float64, s continuousaxis.Scale, dim, off float64) float64 {
	return continuousaxis.ValueToPixelX(v, s, dim, off)
}

// ValToPosY implements renderpass.Surface.
func (c *Chart) ValToPosY(v float64, s continuousaxis.Scale, dim, off float64) float64 {
	return continuousaxis.ValueToPixelY(v, s, dim, off)
}

// Cursor implements renderpass.Surface.
func (c *Chart) Cursor() (x, y float64, ok bool) {
	return c.cursorX, c.cursorY, c.cursorIn
}

// Coordinator returns the receiver's render-pass coordinator.
func (c *Chart) Coordinator() *renderpass.Coordinator {
	return c.coord
}

// Highlights returns the receiver's lane highlights.
func (c *Chart) Highlights() []*CanvasHighlight {
	return c.highlights
}

// Render redraws the chart.
func (c *Chart) Render() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.render()
}

func (c *Chart) render() error {
	if !c.initialized {
		c.hooks.Hooks.Init(c)
		c.initialized = true
	}
	c.dc.ClearWithColor(gg.White)
	c.hooks.Hooks.DrawClear(c)
	if err := c.hooks.Bars(c).Draw(c.dc); err != nil {
		return fmt.Errorf("drawing series: %w", err)
	}
	c.hooks.Hooks.Draw(c)
	if err := c.drawAxes(); err != nil {
		return err
	}
	for _, ch := range c.highlights {
		if err := ch.draw(c.dc, c.plot, c.ratio); err != nil {
			return fmt.Errorf("drawing highlight: %w", err)
		}
	}
	img, ok := c.dc.Image().(*image.RGBA)
	if !ok {
		return errors.New("canvas is not RGBA")
	}
	c.drawText(img)
	c.img = img
	return nil
}

func (c *Chart) drawAxes() error {
	p := c.plot
	c.dc.SetRGBA(axisRGBA.R, axisRGBA.G, axisRGBA.B, axisRGBA.A)
	c.dc.SetLineWidth(c.ratio)
	c.dc.DrawLine(p.Left, p.Top, p.Left, p.Top+p.Height)
	c.dc.DrawLine(p.Left, p.Top+p.Height, p.Left+p.Width, p.Top+p.Height)
	if err := c.dc.Stroke(); err != nil {
		return fmt.Errorf("drawing axes: %w", err)
	}
	return nil
}

// drawString draws text so that the point (x, y) sits at the fraction
// (ax, ay) of its bounds.
func drawString(img *image.RGBA, text string, x, y, ax, ay float64) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(ink),
		Face: face,
	}
	m := face.Metrics()
	w := float64(d.MeasureString(text)) / 64
	h := float64(m.Height) / 64
	left := int(math.Round(x - ax*w))
	top := int(math.Round(y - ay*h))
	d.Dot = fixed.P(left, top+m.Ascent.Ceil())
	d.DrawString(text)
}

func (c *Chart) drawText(img *image.RGBA) {
	p := c.plot
	if c.cfg.Title != "" {
		drawString(img, c.cfg.Title, float64(img.Bounds().Dx())/2, tickGap*c.ratio, 0.5, 0)
	}
	bottom := p.Top + p.Height
	lo, hi := c.axis.Extents()
	for i := 0; i < valueTicks; i++ {
		v := lo + (hi-lo)*float64(i)/float64(valueTicks-1)
		text := c.formatter.Format(v)
		if c.lanes != nil || c.orientation == barchart.Vertical {
			drawString(img, text, c.ValToPosX(v, c.axis, p.Width, p.Left), bottom+tickGap, 0.5, 0)
		} else {
			drawString(img, text, p.Left-tickGap, c.ValToPosY(v, c.axis, p.Height, p.Top), 1, 0.5)
		}
	}
	switch {
	case c.lanes != nil:
		for idx, mid := range c.lanes.LaneMidpoints(c) {
			drawString(img, c.data.Series[idx].Category.DisplayName(), p.Left-tickGap, p.Top+mid, 1, 0.5)
		}
	case c.orientation == barchart.Vertical:
		for _, tick := range categoryaxis.Ticks(c.data.Categories, c.cfg.GroupWidth, p.Height, p.Top, c.direction) {
			drawString(img, tick.Label, p.Left-tickGap, tick.Pos, 1, 0.5)
		}
	default:
		for _, tick := range categoryaxis.Ticks(c.data.Categories, c.cfg.GroupWidth, p.Width, p.Left, c.direction) {
			drawString(img, tick.Label, tick.Pos, bottom+tickGap, 0.5, 0)
		}
	}
	if c.hooks.ValueLabels != nil {
		for _, l := range c.hooks.ValueLabels(c) {
			drawString(img, l.Text, l.X, l.Y, l.AnchorX, l.AnchorY)
		}
	}
}

// Image returns the most recent render, rendering first if there is none.
func (c *Chart) Image() (image.Image, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.img == nil {
		if err := c.render(); err != nil {
			return nil, err
		}
	}
	return c.img, nil
}

// EncodePNG writes the most recent render to w as a PNG.
func (c *Chart) EncodePNG(w io.Writer) error {
	img, err := c.Image()
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// PointerMove moves the pointer to (cssX, cssY), in CSS pixels relative to
// the canvas, and returns the hovered rectangle of each lane.  The chart
// must have been rendered for the hit test to run.
func (c *Chart) PointerMove(cssX, cssY float64) []*quadtree.Rect {
	c.mu.Lock()
	defer c.mu.Unlock()
	x := cssX - c.plot.Left/c.ratio
	y := cssY - c.plot.Top/c.ratio
	c.cursorX, c.cursorY = x, y
	c.cursorIn = x >= 0 && y >= 0 && x <= c.plot.Width/c.ratio && y <= c.plot.Height/c.ratio
	c.hooks.Hooks.SetCursor(c)
	return c.coord.Hovered()
}

// PointerLeave notes the pointer leaving the canvas.
func (c *Chart) PointerLeave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cursorIn = false
	c.coord.PointerLeave()
}

// HoverInfo describes a hovered data point.
type HoverInfo struct {
	Lane      int     `json:"lane"`
	Series    string  `json:"series"`
	SeriesIdx int     `json:"series_idx"`
	ValueIdx  int     `json:"value_idx"`
	Category  string  `json:"category,omitempty"`
	Value     float64 `json:"value"`
	Text      string  `json:"text"`
	// Overlay is the inline CSS of a highlight box over the plot area.
	Overlay string `json:"overlay"`
}

// Hovered describes the hovered data point of each lane that has one.
// Values are reported unstacked.
func (c *Chart) Hovered() []HoverInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	var ret []HoverInfo
	for lane, r := range c.coord.Hovered() {
		if r == nil {
			continue
		}
		v, _ := c.raw.Value(r.SeriesIdx, r.ValueIdx)
		ret = append(ret, HoverInfo{
			Lane:      lane,
			Series:    c.raw.Series[r.SeriesIdx].Category.DisplayName(),
			SeriesIdx: r.SeriesIdx,
			ValueIdx:  r.ValueIdx,
			Category:  c.raw.Label(r.ValueIdx),
			Value:     v,
			Text:      c.formatter.Format(v),
			Overlay:   c.highlights[lane].CSS(),
		})
	}
	return ret
}
