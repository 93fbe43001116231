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
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/ilhamster/chartcore/category"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var null *float64

func TestValidate(t *testing.T) {
	for _, test := range []struct {
		description string
		frame       *Frame
		wantErr     error
	}{{
		description: "aligned",
		frame: &Frame{
			Categories: []string{"a", "b"},
			Series:     []*Series{NewSeries("s", F(1), null)},
		},
	}, {
		description: "no series",
		frame:       &Frame{Categories: []string{"a"}},
		wantErr:     ErrEmpty,
	}, {
		description: "short series",
		frame: &Frame{
			Categories: []string{"a", "b"},
			Series:     []*Series{NewSeries("s", F(1))},
		},
		wantErr: ErrMisaligned,
	}, {
		description: "short x",
		frame: &Frame{
			Categories: []string{"a", "b"},
			X:          []float64{1},
			Series:     []*Series{NewSeries("s", F(1), F(2))},
		},
		wantErr: ErrMisaligned,
	}} {
		t.Run(test.description, func(t *testing.T) {
			err := test.frame.Validate()
			if test.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, test.wantErr), "got %v, want %v", err, test.wantErr)
		})
	}
}

func TestValueAndExtents(t *testing.T) {
	f := &Frame{
		Categories: []string{"a", "b", "c"},
		Series: []*Series{
			NewSeries("s", Floats(3, math.NaN(), -2)...),
			NewSeries("t", Floats(7, 1, 0)...),
		},
	}
	v, ok := f.Value(0, 0)
	assert.True(t, ok)
	assert.Equal(t, 3.0, v)
	_, ok = f.Value(0, 1)
	assert.False(t, ok, "null value reported present")
	_, ok = f.Value(5, 0)
	assert.False(t, ok)
	assert.Equal(t, "c", f.Label(2))
	assert.Equal(t, "", f.Label(3))

	lo, hi := f.Extents(false)
	assert.Equal(t, -2.0, lo)
	assert.Equal(t, 7.0, hi)

	pos := &Frame{Categories: []string{"a"}, Series: []*Series{NewSeries("s", F(4))}}
	lo, hi = pos.Extents(true)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 4.0, hi)
}

func TestStack(t *testing.T) {
	f := &Frame{
		Categories: []string{"x", "y", "z"},
		Series: []*Series{
			NewSeries("a", F(1), null, F(-2)),
			NewSeries("b", F(2), F(3), F(-1)),
		},
	}
	for _, test := range []struct {
		description string
		mode        StackMode
		wantValues  [][]*float64
		wantBase    [][]*float64
	}{{
		description: "normal",
		mode:        StackNormal,
		wantValues:  [][]*float64{{F(1), null, F(-2)}, {F(3), F(3), F(-3)}},
		wantBase:    [][]*float64{{F(0), null, F(0)}, {F(1), F(0), F(-2)}},
	}, {
		description: "percent",
		mode:        StackPercent,
		wantValues:  [][]*float64{{F(1.0 / 3), null, F(-2.0 / 3)}, {F(1), F(1), F(-1)}},
		wantBase:    [][]*float64{{F(0), null, F(0)}, {F(1.0 / 3), F(0), F(-2.0 / 3)}},
	}} {
		t.Run(test.description, func(t *testing.T) {
			got := Stack(f, test.mode)
			require.NoError(t, got.Validate())
			var gotValues, gotBase [][]*float64
			for _, s := range got.Series {
				gotValues = append(gotValues, s.Values)
				gotBase = append(gotBase, s.Base)
			}
			if diff := cmp.Diff(test.wantValues, gotValues, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
				t.Errorf("stacked values diff (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.wantBase, gotBase, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
				t.Errorf("stacked bases diff (-want +got):\n%s", diff)
			}
		})
	}
	if Stack(f, StackNone) != f {
		t.Errorf("StackNone should return its input")
	}
	if *f.Series[1].Values[0] != 2 {
		t.Errorf("Stack modified its input")
	}
}

func TestParseStackMode(t *testing.T) {
	for in, want := range map[string]StackMode{"": StackNone, "Normal": StackNormal, "percent": StackPercent} {
		got, err := ParseStackMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseStackMode("sideways")
	assert.Error(t, err)
}

func TestReadCSV(t *testing.T) {
	in := `time,cpu,mem
1000,0.5,
2000,,12
3000,0.25,14
`
	f, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"1000", "2000", "3000"}, f.Categories)
	assert.Equal(t, []float64{1000, 2000, 3000}, f.X)
	require.Len(t, f.Series, 2)
	assert.Equal(t, "cpu", f.Series[0].Category.ID())
	if diff := cmp.Diff([]*float64{F(0.5), null, F(0.25)}, f.Series[0].Values); diff != "" {
		t.Errorf("cpu values diff (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]*float64{null, F(12), F(14)}, f.Series[1].Values); diff != "" {
		t.Errorf("mem values diff (-want +got):\n%s", diff)
	}
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("only\n"))
	assert.True(t, errors.Is(err, ErrNoHeader), "got %v", err)

	_, err = ReadCSV(strings.NewReader("k,v\na,bogus\n"))
	var pe *ParseError
	require.True(t, errors.As(err, &pe), "got %v", err)
	assert.Equal(t, 2, pe.Row)
	assert.Equal(t, 2, pe.Column)
}

func TestCategoricalLabelsHaveNoX(t *testing.T) {
	f, err := ReadCSV(strings.NewReader("fruit,2023,2024\napples,10,12\npears,4,\n"))
	require.NoError(t, err)
	assert.Nil(t, f.X)
	assert.Equal(t, "2023", f.Series[0].Category.DisplayName())
}

func TestReadXLSXFile(t *testing.T) {
	wb := excelize.NewFile()
	defer wb.Close()
	sheet := "Sheet1"
	wb.SetCellValue(sheet, "A1", "region")
	wb.SetCellValue(sheet, "B1", "apples")
	wb.SetCellValue(sheet, "C1", "oranges")
	wb.SetCellValue(sheet, "A2", "europe")
	wb.SetCellValue(sheet, "B2", 12)
	wb.SetCellValue(sheet, "C2", 6)
	wb.SetCellValue(sheet, "A3", "asia")
	wb.SetCellValue(sheet, "B3", 8)
	path := filepath.Join(t.TempDir(), "fruit.xlsx")
	require.NoError(t, wb.SaveAs(path))

	f, err := ReadXLSXFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"europe", "asia"}, f.Categories)
	if diff := cmp.Diff([]*float64{F(12), F(8)}, f.Series[0].Values); diff != "" {
		t.Errorf("apples diff (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]*float64{F(6), null}, f.Series[1].Values); diff != "" {
		t.Errorf("oranges diff (-want +got):\n%s", diff)
	}

	_, err = ReadXLSXFile(filepath.Join(t.TempDir(), "missing.xlsx"), "")
	assert.Error(t, err)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "fruit.CSV")
	require.NoError(t, os.WriteFile(csvPath, []byte("region,apples\neurope,3\n"), 0o644))
	f, err := ReadFile(csvPath, "ignored")
	require.NoError(t, err)
	assert.Equal(t, []string{"europe"}, f.Categories)

	_, err = ReadFile(filepath.Join(dir, "fruit.json"), "")
	assert.ErrorIs(t, err, ErrUnknownFileType)
}

func TestNonFiniteCellsAreNull(t *testing.T) {
	f, err := ReadCSV(strings.NewReader("cat,a,b\nx,1,NaN\ny,-Inf,3\n"))
	require.NoError(t, err)
	if diff := cmp.Diff([][]*float64{{F(1), null}, {null, F(3)}}, [][]*float64{f.Series[0].Values, f.Series[1].Values}); diff != "" {
		t.Errorf("values diff (-want +got):\n%s", diff)
	}
	_, present := f.Value(1, 0)
	assert.False(t, present)
	lo, hi := f.Extents(false)
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 3.0, hi)
}

func TestStackToleratesMisalignedSeries(t *testing.T) {
	f := &Frame{
		Categories: []string{"x"},
		Series: []*Series{
			NewSeries("a", F(1), F(2)),
			NewSeries("b", F(3)),
		},
	}
	got := Stack(f, StackPercent)
	if diff := cmp.Diff([]*float64{F(0.25), null}, got.Series[0].Values, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("stacked values diff (-want +got):\n%s", diff)
	}
}

func TestSortByX(t *testing.T) {
	f := &Frame{
		Categories: []string{"d", "c", "b", "a"},
		X:          []float64{30, 20, 10, 0},
		Series: []*Series{
			NewSeries("s", F(1), F(2), null, F(4)),
		},
	}
	got := SortByX(f)
	want := &Frame{
		Categories: []string{"a", "b", "c", "d"},
		X:          []float64{0, 10, 20, 30},
		Series: []*Series{
			{Category: f.Series[0].Category, Values: []*float64{F(4), null, F(2), F(1)}},
		},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(category.Category{})); diff != "" {
		t.Errorf("SortByX diff (-want +got):\n%s", diff)
	}
	assert.Equal(t, 30.0, f.X[0], "SortByX modified its input")
	assert.Same(t, got, SortByX(got))
}
