package boundary

import (
	"encoding/json"
	"errors"
	"fmt"
	"nursery-locator/internal/domain"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

var ErrNoPolygon = errors.New("boundary contains no polygon geometry")

// Load reads a GeoJSON boundary from disk. An empty path means no overlay
// and returns a nil region.
func Load(path string) (*domain.BoundaryRegion, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load boundary: read %q: %w", path, err)
	}

	fallbackName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	region, err := Parse(data, fallbackName)
	if err != nil {
		return nil, fmt.Errorf("load boundary %q: %w", path, err)
	}

	return region, nil
}

// Parse accepts a bare Geometry, a Feature or a FeatureCollection. All polygonal
// parts are merged into one region; other geometry types are skipped.
func Parse(data []byte, fallbackName string) (*domain.BoundaryRegion, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("parse boundary: %w", err)
	}

	var (
		geoms []orb.Geometry
		name  string
	)

	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("parse boundary: feature collection: %w", err)
		}
		for _, f := range fc.Features {
			geoms = append(geoms, f.Geometry)
			if name == "" {
				name = featureName(f)
			}
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("parse boundary: feature: %w", err)
		}
		geoms = append(geoms, f.Geometry)
		name = featureName(f)
	case "":
		return nil, errors.New("parse boundary: missing GeoJSON type")
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("parse boundary: geometry: %w", err)
		}
		geoms = append(geoms, g.Geometry())
	}

	geometry := mergePolygons(geoms)
	if geometry == nil {
		return nil, ErrNoPolygon
	}

	if name == "" {
		name = fallbackName
	}

	return &domain.BoundaryRegion{Name: name, Geometry: geometry}, nil
}

func mergePolygons(geoms []orb.Geometry) orb.Geometry {
	polys := collectPolygons(nil, geoms)

	switch len(polys) {
	case 0:
		return nil
	case 1:
		return polys[0]
	default:
		return polys
	}
}

func collectPolygons(dst orb.MultiPolygon, geoms []orb.Geometry) orb.MultiPolygon {
	for _, g := range geoms {
		switch v := g.(type) {
		case orb.Polygon:
			dst = append(dst, v)
		case orb.MultiPolygon:
			dst = append(dst, v...)
		case orb.Collection:
			dst = collectPolygons(dst, v)
		}
	}
	return dst
}

func featureName(f *geojson.Feature) string {
	for _, key := range []string{"name", "NAME", "Name"} {
		if s, ok := f.Properties[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
