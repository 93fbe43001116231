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

package frame

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ilhamster/chartcore/category"
	"github.com/xuri/excelize/v2"
)

// ErrNoHeader is returned when tabular input lacks a header row naming at
// least one series.
var ErrNoHeader = errors.New("missing header row")

// ParseError reports a cell that could not be parsed as a number.
type ParseError struct {
	Row, Column int
	Err         error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d, column %d: %v", e.Row, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FromRows builds a Frame from tabular text.  The first row names the
// series; the first column holds category labels.  Empty and non-finite
// (NaN, Inf) cells are nulls.  If every label parses as a finite number or an
// RFC 3339 timestamp, X is populated too, timestamps as Unix milliseconds.
func FromRows(rows [][]string) (*Frame, error) {
	if len(rows) == 0 || len(rows[0]) < 2 {
		return nil, ErrNoHeader
	}
	header := rows[0]
	f := &Frame{}
	for _, name := range header[1:] {
		f.Series = append(f.Series, &Series{Category: category.FromName(name)})
	}
	for rowIdx, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		f.Categories = append(f.Categories, strings.TrimSpace(row[0]))
		for col, s := range f.Series {
			var cell string
			if col+1 < len(row) {
				cell = strings.TrimSpace(row[col+1])
			}
			if cell == "" {
				s.Values = append(s.Values, nil)
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, &ParseError{Row: rowIdx + 2, Column: col + 2, Err: err}
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				// Non-finite cells are nulls, as in Floats.
				s.Values = append(s.Values, nil)
				continue
			}
			s.Values = append(s.Values, F(v))
		}
	}
	f.X = ordinals(f.Categories)
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func ordinals(labels []string) []float64 {
	ret := make([]float64, len(labels))
	for idx, label := range labels {
		if v, err := strconv.ParseFloat(label, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			ret[idx] = v
			continue
		}
		if ts, err := time.Parse(time.RFC3339, label); err == nil {
			ret[idx] = float64(ts.UnixMilli())
			continue
		}
		return nil
	}
	return ret
}

// ReadCSV reads a Frame from comma-separated input laid out as FromRows
// expects.
func ReadCSV(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return FromRows(rows)
}

// ReadXLSXFile reads a Frame from the named sheet of a workbook, laid out as
// FromRows expects.  An empty sheet name selects the first sheet.
func ReadXLSXFile(path, sheet string) (*Frame, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer wb.Close()
	if sheet == "" {
		sheets := wb.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrEmpty
		}
		sheet = sheets[0]
	}
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return FromRows(rows)
}

// ErrUnknownFileType is returned by ReadFile for files that are neither CSV
// nor XLSX.
var ErrUnknownFileType = errors.New("unknown data file type")

// ReadFile reads a Frame from a .csv or .xlsx file.  sheet selects the XLSX
// sheet and is otherwise ignored.
func ReadFile(path, sheet string) (*Frame, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return ReadCSV(file)
	case ".xlsx":
		return ReadXLSXFile(path, sheet)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFileType, path)
}
