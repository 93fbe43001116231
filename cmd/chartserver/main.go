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


// Binary chartserver serves the charts defined in a directory over HTTP.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/ilhamster/chartcore/service"
	"github.com/ilhamster/chartcore/util"
)

var (
	port      = flag.Int("port", 7410, "Port to serve charts on")
	chartRoot = flag.String("chart_root", ".", "The directory holding chart definitions")
	cacheSize = flag.Int("cache_size", 10, "The number of loaded charts to keep")
	verbose   = flag.Bool("verbose", false, "Log redraw and hover details")
)

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	util.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	svc, err := service.New(*chartRoot, *cacheSize)
	if err != nil {
		log.Fatalf("Failed to create chart service: %s", err)
	}
	defer svc.Close()

	mux := http.NewServeMux()
	svc.RegisterHandlers(mux)
	hostname, err := os.Hostname()
	if err != nil {
		log.Fatalf("Failed to get hostname: %s", err)
	}

	// Provide OSC 8 (https://en.wikipedia.org/wiki/ANSI_escape_code#OSC) link for
	// compatible terminals.
	fmt.Printf("Serving charts at \x1B]8;;http://%[1]s:%[2]d/panels\x07http://%[1]s:%[2]d/panels\x1B]8;;\x07\n", hostname, *port)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", *port), mux); err != nil {
		log.Fatalf("Server failed: %s", err)
	}
}
