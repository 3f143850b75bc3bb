// Package dataset reads labeled spatial objects from CSV and GeoJSON files.
package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/spatialperm/geom"
)

// Sentinel errors.
var (
	// ErrMalformed is returned for unreadable rows, missing columns and
	// non-numeric coordinates.
	ErrMalformed = errors.New("dataset: malformed input")

	// ErrMissingLabel is returned when a feature lacks the label property.
	ErrMissingLabel = errors.New("dataset: missing label")

	// ErrUnsupportedGeometry is returned for GeoJSON geometries other than
	// Point, Polygon and MultiPolygon.
	ErrUnsupportedGeometry = errors.New("dataset: unsupported geometry")

	// ErrMixedGeometry is returned when one file mixes points and polygons.
	ErrMixedGeometry = errors.New("dataset: points and polygons cannot be mixed")

	// ErrFormat is returned by Load for an unknown file extension.
	ErrFormat = errors.New("dataset: unknown file format")
)

// Dataset is a labeled object collection. Position i in every slice refers
// to the same object.
//
// Points is always populated; for box datasets it holds the box centres.
// Boxes is nil for point datasets.
type Dataset struct {
	Labels []string
	Points []geom.Point
	Boxes  []geom.BBox
}

// Len returns the number of objects.
func (d *Dataset) Len() int { return len(d.Labels) }

// HasBoxes reports whether the objects carry bounding boxes.
func (d *Dataset) HasBoxes() bool { return d.Boxes != nil }

// Load opens path and decodes it by extension: .csv, .geojson or .json.
// labelKey names the GeoJSON property holding the label; CSV files always
// use the "label" column.
func Load(path, labelKey string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(f)
	case ".geojson", ".json":
		return LoadGeoJSON(f, labelKey)
	default:
		return nil, fmt.Errorf("%w: %s", ErrFormat, path)
	}
}

// centres returns the midpoint of every box.
func centres(boxes []geom.BBox) []geom.Point {
	pts := make([]geom.Point, len(boxes))
	for i, b := range boxes {
		pts[i] = b.Center()
	}
	return pts
}
