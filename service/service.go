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


// Package service serves the charts defined in a directory of TOML and YAML
// chart definitions over HTTP.
package service

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/golang-lru/simplelru"
	"github.com/ilhamster/chartcore/chart"
	"github.com/ilhamster/chartcore/config"
	"github.com/ilhamster/chartcore/frame"
	"github.com/ilhamster/chartcore/handlers"
	querydispatcher "github.com/ilhamster/chartcore/query_dispatcher"
	"github.com/ilhamster/chartcore/util"
)

var definitionExts = map[string]bool{
	".toml": true,
	".yaml": true,
	".yml":  true,
}

type cachedChart struct {
	chart      *chart.Chart
	configPath string
	dataPath   string
}

// chartFetcher loads the charts defined under chartRoot on demand, caching
// up to a fixed number of them.  Cached charts are evicted when their
// definition or data file changes.
type chartFetcher struct {
	chartRoot string
	// Maps panel names to definition paths.
	definitions map[string]string
	opts        []chart.Option

	mu      sync.Mutex
	lru     *simplelru.LRU
	watcher *fsnotify.Watcher
	watched map[string]bool
	done    chan struct{}
	wg      sync.WaitGroup
}

func newChartFetcher(chartRoot string, cap int, opts ...chart.Option) (*chartFetcher, error) {
	lru, err := simplelru.NewLRU(cap, func(key, _ any) {
		util.Logger().Debug("chart evicted", "panel", key)
	})
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(chartRoot)
	if err != nil {
		return nil, err
	}
	cf := &chartFetcher{
		chartRoot:   chartRoot,
		definitions: map[string]string{},
		opts:        opts,
		lru:         lru,
		watched:     map[string]bool{},
		done:        make(chan struct{}),
	}
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || !definitionExts[ext] {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if prev, ok := cf.definitions[name]; ok {
			util.Logger().Warn("duplicate panel definition ignored",
				"panel", name, "kept", prev, "ignored", entry.Name())
			continue
		}
		cf.definitions[name] = filepath.Join(chartRoot, entry.Name())
	}
	if cf.watcher, err = fsnotify.NewWatcher(); err != nil {
		return nil, err
	}
	if err := cf.watch(chartRoot); err != nil {
		cf.watcher.Close()
		return nil, err
	}
	cf.wg.Add(1)
	go cf.watchLoop()
	return cf, nil
}

// watch adds dir to the watcher if it isn't already watched.  cf.mu must be
// held, or cf not yet shared.
func (cf *chartFetcher) watch(dir string) error {
	dir = filepath.Clean(dir)
	if cf.watched[dir] {
		return nil
	}
	if err := cf.watcher.Add(dir); err != nil {
		return err
	}
	cf.watched[dir] = true
	return nil
}

func (cf *chartFetcher) watchLoop() {
	defer cf.wg.Done()
	for {
		select {
		case <-cf.done:
			return
		case event, ok := <-cf.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				cf.invalidate(event.Name)
			}
		case err, ok := <-cf.watcher.Errors:
			if !ok {
				return
			}
			util.Logger().Warn("file watcher error", "err", err)
		}
	}
}

// invalidate evicts every cached chart whose definition or data is at path.
func (cf *chartFetcher) invalidate(path string) {
	path = filepath.Clean(path)
	cf.mu.Lock()
	defer cf.mu.Unlock()
	for _, key := range cf.lru.Keys() {
		v, ok := cf.lru.Peek(key)
		if !ok {
			continue
		}
		cc := v.(*cachedChart)
		if cc.configPath == path || cc.dataPath == path {
			cf.lru.Remove(key)
			util.Logger().Info("chart source changed", "panel", key, "path", path)
		}
	}
}

func (cf *chartFetcher) Panels() []string {
	ret := make([]string, 0, len(cf.definitions))
	for name := range cf.definitions {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

func (cf *chartFetcher) Chart(ctx context.Context, name string) (*chart.Chart, error) {
	configPath, ok := cf.definitions[name]
	if !ok {
		return nil, fmt.Errorf("no panel '%s'", name)
	}
	cf.mu.Lock()
	defer cf.mu.Unlock()
	if v, ok := cf.lru.Get(name); ok {
		cc, ok := v.(*cachedChart)
		if !ok {
			return nil, fmt.Errorf("cached panel '%s' wasn't a chart", name)
		}
		return cc.chart, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Data == "" {
		return nil, fmt.Errorf("panel '%s' names no data file", name)
	}
	data, err := frame.ReadFile(cfg.Data, cfg.Sheet)
	if err != nil {
		return nil, err
	}
	c, err := chart.New(cfg, data, cf.opts...)
	if err != nil {
		return nil, fmt.Errorf("panel '%s': %w", name, err)
	}
	if err := cf.watch(filepath.Dir(cfg.Data)); err != nil {
		util.Logger().Warn("data file not watched", "panel", name, "err", err)
	}
	cf.lru.Add(name, &cachedChart{
		chart:      c,
		configPath: filepath.Clean(configPath),
		dataPath:   filepath.Clean(cfg.Data),
	})
	util.Logger().Info("chart loaded", "panel", name, "data", cfg.Data)
	return c, nil
}

func (cf *chartFetcher) close() error {
	close(cf.done)
	err := cf.watcher.Close()
	cf.wg.Wait()
	return err
}

// Service serves the charts under a root directory.
type Service struct {
	fetcher      *chartFetcher
	dispatcher   *querydispatcher.QueryDispatcher
	queryHandler handlers.QueryHandler
}

// New returns a Service for the chart definitions in chartRoot, caching up
// to cap loaded charts.
func New(chartRoot string, cap int, opts ...chart.Option) (*Service, error) {
	cf, err := newChartFetcher(chartRoot, cap, opts...)
	if err != nil {
		return nil, err
	}
	qd, err := querydispatcher.New(cf)
	if err != nil {
		cf.close()
		return nil, err
	}
	util.Logger().Info("service started", "root", chartRoot, "panels", len(cf.definitions))
	return &Service{
		fetcher:      cf,
		dispatcher:   qd,
		queryHandler: handlers.NewQueryHandler(qd),
	}, nil
}

// Dispatcher returns the Service's QueryDispatcher.
func (s *Service) Dispatcher() *querydispatcher.QueryDispatcher {
	return s.dispatcher
}

// RegisterHandlers registers the Service's HTTP handlers on mux.
func (s *Service) RegisterHandlers(mux *http.ServeMux, wrappers ...handlers.WrapFunc) {
	for path, handler := range s.queryHandler.Wrap(wrappers...).HandlersByPath() {
		mux.HandleFunc(path, handler)
	}
}

// Close stops watching chart sources.
func (s *Service) Close() error {
	return s.fetcher.close()
}
