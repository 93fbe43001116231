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

// Package testutil provides test doubles for the chart rendering core: a
// Highlighter that records its calls, a recorder of hover and leave
// notifications, and a fake charting-library Surface.
package testutil

import (
	"fmt"

	"github.com/ilhamster/chartcore/category"
	continuousaxis "github.com/ilhamster/chartcore/continuous_axis"
	"github.com/ilhamster/chartcore/frame"
	hittest "github.com/ilhamster/chartcore/hit_test"
	"github.com/ilhamster/chartcore/quadtree"
	"github.com/ilhamster/chartcore/util"
)

// HighlightRecorder is a hittest.Highlighter recording every ShowAt call.
type HighlightRecorder struct {
	Calls []*quadtree.Rect
}

// ShowAt implements hittest.Highlighter.
func (hr *HighlightRecorder) ShowAt(r *quadtree.Rect) {
	hr.Calls = append(hr.Calls, r)
}

// Last returns the argument of the most recent ShowAt call, or nil.
func (hr *HighlightRecorder) Last() *quadtree.Rect {
	if len(hr.Calls) == 0 {
		return nil
	}
	return hr.Calls[len(hr.Calls)-1]
}

// Event is one recorded hover or leave notification.
type Event struct {
	Kind                string
	SeriesIdx, ValueIdx int
}

func (e Event) String() string {
	return fmt.Sprintf("%s(%d,%d)", e.Kind, e.SeriesIdx, e.ValueIdx)
}

// Hover and Leave construct expected Events.
func Hover(seriesIdx, valueIdx int) Event {
	return Event{Kind: "hover", SeriesIdx: seriesIdx, ValueIdx: valueIdx}
}

func Leave(seriesIdx, valueIdx int) Event {
	return Event{Kind: "leave", SeriesIdx: seriesIdx, ValueIdx: valueIdx}
}

// EventRecorder records the notifications delivered to its Callbacks.
type EventRecorder struct {
	Events []Event
}

// Callbacks returns hittest.Callbacks appending to the receiver.
func (er *EventRecorder) Callbacks() hittest.Callbacks {
	return hittest.Callbacks{
		OnHover: func(seriesIdx, valueIdx int) {
			er.Events = append(er.Events, Hover(seriesIdx, valueIdx))
		},
		OnLeave: func(seriesIdx, valueIdx int) {
			er.Events = append(er.Events, Leave(seriesIdx, valueIdx))
		},
	}
}

// Take returns and forgets the recorded events.
func (er *EventRecorder) Take() []Event {
	ret := er.Events
	er.Events = nil
	return ret
}

// FakeSurface stands in for the charting library during a draw pass.
type FakeSurface struct {
	Plot       util.Box
	Data       *frame.Frame
	ValueScale continuousaxis.Scale
	// CursorX and CursorY are CSS pixels relative to the plot area, valid
	// while CursorIn is set.
	CursorX, CursorY float64
	CursorIn         bool
}

// NewFakeSurface returns a FakeSurface over the plot box plot, with a double
// value axis spanning f's extents including zero.
func NewFakeSurface(plot util.Box, f *frame.Frame) *FakeSurface {
	lo, hi := f.Extents(true)
	return &FakeSurface{
		Plot:       plot,
		Data:       f,
		ValueScale: continuousaxis.NewDoubleAxis(category.FromName("value"), lo, hi),
	}
}

// Box returns the plot area in device pixels.
func (fs *FakeSurface) Box() util.Box { return fs.Plot }

// Frame returns the drawn data.
func (fs *FakeSurface) Frame() *frame.Frame { return fs.Data }

// Scale returns the value axis scale.
func (fs *FakeSurface) Scale() continuousaxis.Scale { return fs.ValueScale }

// ValToPosX maps v along the horizontal axis.
func (fs *FakeSurface) ValToPosX(v float64, s continuousaxis.Scale, dim, off float64) float64 {
	return continuousaxis.ValueToPixelX(v, s, dim, off)
}

// ValToPosY maps v along the vertical axis.
func (fs *FakeSurface) ValToPosY(v float64, s continuousaxis.Scale, dim, off float64) float64 {
	return continuousaxis.ValueToPixelY(v, s, dim, off)
}

// Cursor returns the pointer position, if the pointer is over the plot.
func (fs *FakeSurface) Cursor() (x, y float64, ok bool) {
	return fs.CursorX, fs.CursorY, fs.CursorIn
}

// Point moves the pointer to (x, y) in CSS pixels.
func (fs *FakeSurface) Point(x, y float64) {
	fs.CursorX, fs.CursorY, fs.CursorIn = x, y, true
}

// Away moves the pointer off the plot.
func (fs *FakeSurface) Away() {
	fs.CursorIn = false
}
