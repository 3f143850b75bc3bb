package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/spatialperm/geom"
)

var (
	pointColumns = []string{"x", "y"}
	boxColumns   = []string{"minx", "miny", "maxx", "maxy"}
)

// LoadCSV reads a header row followed by one object per row.
//
// Required: a "label" column, and either "x","y" or "minx","miny","maxx","maxy"
// (header names are case-insensitive). With box columns the dataset carries
// boxes, and points come from "x","y" when present, box centres otherwise.
func LoadCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file", ErrMalformed)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	labelCol, ok := col["label"]
	if !ok {
		return nil, fmt.Errorf("%w: no label column", ErrMalformed)
	}
	hasPoints := hasAll(col, pointColumns)
	hasBoxes := hasAll(col, boxColumns)
	if !hasPoints && !hasBoxes {
		return nil, fmt.Errorf("%w: need x,y or minx,miny,maxx,maxy columns", ErrMalformed)
	}

	ds := &Dataset{Labels: []string{}, Points: []geom.Point{}}
	if hasBoxes {
		ds.Boxes = []geom.BBox{}
	}
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		num := func(name string) (float64, error) {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[col[name]]), 64)
			if err != nil {
				return 0, fmt.Errorf("%w: row %d column %q: %v", ErrMalformed, row, name, err)
			}
			return v, nil
		}

		ds.Labels = append(ds.Labels, rec[labelCol])
		if hasBoxes {
			var v [4]float64
			for k, name := range boxColumns {
				if v[k], err = num(name); err != nil {
					return nil, err
				}
			}
			b := geom.BBox{MinX: v[0], MinY: v[1], MaxX: v[2], MaxY: v[3]}
			if err := b.Validate(); err != nil {
				return nil, fmt.Errorf("row %d: %w", row, err)
			}
			ds.Boxes = append(ds.Boxes, b)
		}
		if hasPoints {
			x, err := num("x")
			if err != nil {
				return nil, err
			}
			y, err := num("y")
			if err != nil {
				return nil, err
			}
			ds.Points = append(ds.Points, geom.Point{X: x, Y: y})
		}
	}
	if hasBoxes && !hasPoints {
		ds.Points = centres(ds.Boxes)
	}
	return ds, nil
}

func hasAll(col map[string]int, names []string) bool {
	for _, n := range names {
		if _, ok := col[n]; !ok {
			return false
		}
	}
	return true
}
