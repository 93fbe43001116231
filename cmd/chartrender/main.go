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


// Binary chartrender renders a chart definition to a PNG file.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/ilhamster/chartcore/chart"
	"github.com/ilhamster/chartcore/config"
	"github.com/ilhamster/chartcore/frame"
	"github.com/ilhamster/chartcore/util"
	"github.com/spf13/cobra"
)

type options struct {
	dataPath   string
	outputPath string
	hover      []float64
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "chartrender [definition.toml|definition.yaml]",
		Short: "Render a chart definition to PNG",
		Long: `chartrender draws the bar chart or timeline described by a TOML or
YAML chart definition and writes it as a PNG image.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.dataPath, "data", "", "Data file overriding the definition's (CSV or XLSX)")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "chart.png", "Output PNG path")
	cmd.Flags().Float64SliceVar(&opts.hover, "hover", nil, "Hover at x,y CSS pixels and print the hovered points as JSON")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log redraw and hover details")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, definition string, opts *options) error {
	if opts.verbose {
		util.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})))
		defer util.SetLogger(nil)
	}
	if opts.hover != nil && len(opts.hover) != 2 {
		return fmt.Errorf("--hover takes x,y; got %d values", len(opts.hover))
	}
	cfg, err := config.Load(definition)
	if err != nil {
		return err
	}
	if opts.dataPath != "" {
		cfg.Data = opts.dataPath
	}
	if cfg.Data == "" {
		return fmt.Errorf("%s names no data file; pass --data", definition)
	}
	data, err := frame.ReadFile(cfg.Data, cfg.Sheet)
	if err != nil {
		return err
	}
	c, err := chart.New(cfg, data)
	if err != nil {
		return err
	}
	if err := c.Render(); err != nil {
		return fmt.Errorf("rendering failed: %w", err)
	}
	if opts.hover != nil {
		c.PointerMove(opts.hover[0], opts.hover[1])
		// Redraw to show the highlight.
		if err := c.Render(); err != nil {
			return fmt.Errorf("rendering failed: %w", err)
		}
		hovered := c.Hovered()
		if hovered == nil {
			hovered = []chart.HoverInfo{}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(hovered); err != nil {
			return err
		}
	}
	out, err := os.Create(opts.outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := c.EncodePNG(out); err != nil {
		out.Close()
		return fmt.Errorf("encoding failed: %w", err)
	}
	return out.Close()
}
