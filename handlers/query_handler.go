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

package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ilhamster/chartcore/chart"
	querydispatcher "github.com/ilhamster/chartcore/query_dispatcher"
)

// HandlerFunc is a HTTP handler function.
type HandlerFunc func(http.ResponseWriter, *http.Request)

// WrapFunc is a function that rewrites a HandlerFunc.
type WrapFunc func(HandlerFunc) HandlerFunc

// Handler describes a chart HTTP handler.
type Handler interface {
	HandlersByPath() map[string]func(http.ResponseWriter, *http.Request)
}

// QueryHandler is a Handler for chart queries.  It supports a Wrap method
// that wraps all handlers, e.g. adding cookies.
type QueryHandler interface {
	Handler
	Wrap(...WrapFunc) Handler
}

// sendJSONResponse serializes resp and sends it along the provided
// http.ResponseWriter.  Any failures during serialization yield an HTTP
// internal status error.
func sendJSONResponse(resp any, w http.ResponseWriter) {
	respStr, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Failed to marshal response: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	fmt.Fprint(w, string(respStr))
}

// queryHandler is an http.Handler serving chart images and hover queries.
type queryHandler struct {
	qd       *querydispatcher.QueryDispatcher
	wrappers []WrapFunc
}

// NewQueryHandler returns a new Handler serving chart requests using the
// provided QueryDispatcher.
func NewQueryHandler(qd *querydispatcher.QueryDispatcher) QueryHandler {
	return &queryHandler{
		qd: qd,
	}
}

const (
	chartMethod  = "/chart.png"
	hoverMethod  = "/hover"
	panelsMethod = "/panels"
)

type contextKey string

var (
	httpReqKey contextKey = "chartcore_http_req"
)

// RequestOf returns the http Request attached to the provided Context, or nil
// if no Request is attached.  Returns an error if something other than a
// Request is stored in the Context.
func RequestOf(ctx context.Context) (*http.Request, error) {
	reqIf := ctx.Value(httpReqKey)
	if reqIf == nil {
		return nil, nil
	}
	req, ok := reqIf.(*http.Request)
	if !ok {
		return nil, fmt.Errorf("expected *http.Request to be stored in context, but got something else")
	}
	return req, nil
}

func (qh *queryHandler) Wrap(wrappers ...WrapFunc) Handler {
	qh.wrappers = append(qh.wrappers, wrappers...)
	return qh
}

// HandlersByPath returns a mapping of HTTP request path to HTTP handler for
// this Handler.
func (qh *queryHandler) HandlersByPath() map[string]func(http.ResponseWriter, *http.Request) {
	ret := map[string]func(http.ResponseWriter, *http.Request){}
	for path, h := range map[string]HandlerFunc{
		chartMethod:  qh.getChartHandler,
		hoverMethod:  qh.getHoverHandler,
		panelsMethod: qh.getPanelsHandler,
	} {
		for _, wrapper := range qh.wrappers {
			h = wrapper(h)
		}
		ret[path] = h
	}
	return ret
}

// chartOf returns the chart named by req's 'name' parameter.  Failures are
// reported on w, returning nil.
func (qh *queryHandler) chartOf(w http.ResponseWriter, req *http.Request) *chart.Chart {
	if err := req.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return nil
	}
	name := req.Form.Get("name")
	if name == "" {
		http.Error(w, "Missing chart name", http.StatusBadRequest)
		return nil
	}
	c, err := qh.qd.Chart(context.WithValue(req.Context(), httpReqKey, req), name)
	if err != nil {
		http.Error(w, "Chart request failed: "+err.Error(), http.StatusNotFound)
		return nil
	}
	return c
}

func (qh *queryHandler) getChartHandler(w http.ResponseWriter, req *http.Request) {
	c := qh.chartOf(w, req)
	if c == nil {
		return
	}
	if err := c.Render(); err != nil {
		http.Error(w, "Rendering failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Add("Content-Type", "image/png")
	if err := c.EncodePNG(w); err != nil {
		http.Error(w, "Encoding failed: "+err.Error(), http.StatusInternalServerError)
	}
}

// getHoverHandler moves the pointer of the named chart to the CSS-pixel
// canvas position (x, y), or off the chart if 'leave' is set, and returns
// the hovered points.
func (qh *queryHandler) getHoverHandler(w http.ResponseWriter, req *http.Request) {
	c := qh.chartOf(w, req)
	if c == nil {
		return
	}
	// Hit testing needs a drawn frame.
	if _, err := c.Image(); err != nil {
		http.Error(w, "Rendering failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if req.Form.Get("leave") != "" {
		c.PointerLeave()
		sendJSONResponse([]chart.HoverInfo{}, w)
		return
	}
	var pos [2]float64
	for idx, key := range []string{"x", "y"} {
		v, err := strconv.ParseFloat(req.Form.Get(key), 64)
		if err != nil {
			http.Error(w, fmt.Sprintf("Bad '%s': %s", key, err), http.StatusBadRequest)
			return
		}
		pos[idx] = v
	}
	c.PointerMove(pos[0], pos[1])
	hovered := c.Hovered()
	if hovered == nil {
		hovered = []chart.HoverInfo{}
	}
	sendJSONResponse(hovered, w)
}

func (qh *queryHandler) getPanelsHandler(w http.ResponseWriter, req *http.Request) {
	panels := qh.qd.Panels()
	if panels == nil {
		panels = []string{}
	}
	sendJSONResponse(panels, w)
}

// HTTPRequestFromContext returns the *http.Request stored in the provided
// context, or nil if no request is stored in the context.
func HTTPRequestFromContext(ctx context.Context) *http.Request {
	req, _ := ctx.Value(httpReqKey).(*http.Request)
	return req
}
