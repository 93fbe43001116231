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

// Package querydispatcher provides QueryDispatcher, a type for multiplexing
// several chart sources behind one set of panel names, and for rendering
// many panels concurrently.
package querydispatcher

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ilhamster/chartcore/chart"
	"github.com/ilhamster/chartcore/util"
	"golang.org/x/sync/errgroup"
)

// panelSource represents a single source of charts.  panelSource instances
// must support concurrent Chart calls.
type panelSource interface {
	// Panels returns the names of the panels this panelSource provides.
	// Names should be unique across sources.
	Panels() []string
	// Chart returns the chart of the named panel.
	Chart(ctx context.Context, name string) (*chart.Chart, error)
}

// QueryDispatcher multiplexes multiple panel sources, which may load their
// charts from entirely different places.
type QueryDispatcher struct {
	sources []panelSource
	// Maps panel names to indices (in sources) of the sources providing
	// them.
	panelSources map[string]int
	limit        int
}

// New returns a *QueryDispatcher wrapping the provided sources.
func New(srcs ...panelSource) (*QueryDispatcher, error) {
	qd := &QueryDispatcher{
		panelSources: map[string]int{},
	}
	for srcIdx, src := range srcs {
		qd.sources = append(qd.sources, src)
		for _, name := range src.Panels() {
			if _, ok := qd.panelSources[name]; ok {
				return nil, fmt.Errorf(
					"multiple sources provide panel `%s`", name)
			}
			qd.panelSources[name] = srcIdx
		}
	}
	return qd, nil
}

// WithLimit bounds the number of panels RenderAll renders at once.  Zero or
// less means no bound.
func (qd *QueryDispatcher) WithLimit(limit int) *QueryDispatcher {
	qd.limit = limit
	return qd
}

// Panels returns every panel name the receiver serves.
func (qd *QueryDispatcher) Panels() []string {
	var ret []string
	for _, src := range qd.sources {
		ret = append(ret, src.Panels()...)
	}
	return ret
}

// Chart returns the chart of the named panel from whichever source provides
// it.
func (qd *QueryDispatcher) Chart(ctx context.Context, name string) (*chart.Chart, error) {
	srcIdx, ok := qd.panelSources[name]
	if !ok {
		return nil, fmt.Errorf("unsupported panel `%s`", name)
	}
	return qd.sources[srcIdx].Chart(ctx, name)
}

// RenderAll renders the named panels concurrently and returns their PNG
// encodings by name.  Each chart owns its own index, so renders share
// nothing.  The first error cancels the remaining renders.
func (qd *QueryDispatcher) RenderAll(ctx context.Context, names ...string) (map[string][]byte, error) {
	pngs := make([][]byte, len(names))
	errg, ctx := errgroup.WithContext(ctx)
	if qd.limit > 0 {
		errg.SetLimit(qd.limit)
	}
	seen := map[string]bool{}
	for idx, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, err := qd.Chart(ctx, name)
			if err != nil {
				return err
			}
			if err := c.Render(); err != nil {
				return fmt.Errorf("rendering `%s`: %w", name, err)
			}
			var buf bytes.Buffer
			if err := c.EncodePNG(&buf); err != nil {
				return fmt.Errorf("encoding `%s`: %w", name, err)
			}
			pngs[idx] = buf.Bytes()
			util.Logger().Debug("rendered panel", "name", name, "bytes", buf.Len())
			return nil
		})
	}
	if err := errg.Wait(); err != nil {
		return nil, err
	}
	ret := make(map[string][]byte, len(seen))
	for idx, name := range names {
		if pngs[idx] != nil {
			ret[name] = pngs[idx]
		}
	}
	return ret, nil
}
