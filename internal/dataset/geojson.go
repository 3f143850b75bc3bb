package dataset

import (
	"fmt"
	"io"

	"github.com/katalvlaran/spatialperm/geom"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// LoadGeoJSON reads a FeatureCollection. Point features become points;
// Polygon and MultiPolygon features become the bounding box of all their
// vertices (holes included), with the box centre as the point. The label is
// the labelKey property, formatted with %v when it is not a string.
func LoadGeoJSON(r io.Reader, labelKey string) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	labels := make([]string, 0, len(fc.Features))
	var points []geom.Point
	var polygons [][]geom.Point
	for i, f := range fc.Features {
		v, ok := f.Properties[labelKey]
		if !ok || v == nil {
			return nil, fmt.Errorf("%w: feature %d has no %q property", ErrMissingLabel, i, labelKey)
		}
		label, ok := v.(string)
		if !ok {
			label = fmt.Sprint(v)
		}
		labels = append(labels, label)

		switch g := f.Geometry.(type) {
		case orb.Point:
			points = append(points, geom.Point{X: g[0], Y: g[1]})
		case orb.Polygon:
			polygons = append(polygons, vertices(g))
		case orb.MultiPolygon:
			var vs []geom.Point
			for _, p := range g {
				vs = append(vs, vertices(p)...)
			}
			polygons = append(polygons, vs)
		default:
			name := "null"
			if g != nil {
				name = g.GeoJSONType()
			}
			return nil, fmt.Errorf("%w: feature %d is %s", ErrUnsupportedGeometry, i, name)
		}
		if len(points) > 0 && len(polygons) > 0 {
			return nil, fmt.Errorf("%w: feature %d", ErrMixedGeometry, i)
		}
	}

	if len(polygons) == 0 {
		if points == nil {
			points = []geom.Point{}
		}
		for i, p := range points {
			if !p.Finite() {
				return nil, fmt.Errorf("%w: feature %d", geom.ErrNonFinite, i)
			}
		}
		return &Dataset{Labels: labels, Points: points}, nil
	}
	boxes, err := geom.ComputeBoundingBoxes(polygons, 0)
	if err != nil {
		return nil, err
	}
	return &Dataset{Labels: labels, Points: centres(boxes), Boxes: boxes}, nil
}

func vertices(p orb.Polygon) []geom.Point {
	var out []geom.Point
	for _, ring := range p {
		for _, pt := range ring {
			out = append(out, geom.Point{X: pt[0], Y: pt[1]})
		}
	}
	return out
}
