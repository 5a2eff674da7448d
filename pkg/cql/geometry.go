package cql

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	orbjson "github.com/paulmach/orb/geojson"
	"github.com/twpayne/go-geom"
	geomjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// ToWKT converts a geometry value to its Well-Known Text form. Accepted
// inputs: go-geom geometries (geom.T, geojson.Geometry), orb geometries
// (orb.Geometry, orb.Bound), GeoJSON text (string, []byte, json.RawMessage)
// and GeoJSON-shaped maps. Parsing and WKT emission are delegated to go-geom;
// anything it rejects comes back as an error.
func ToWKT(g any) (string, error) {
	decoded, err := decodeGeometry(g)
	if err != nil {
		return "", err
	}
	return wkt.Marshal(decoded)
}

func decodeGeometry(g any) (geom.T, error) {
	switch g := g.(type) {
	case nil:
		return nil, fmt.Errorf("nil geometry")
	case geom.T:
		return g, nil
	case *geomjson.Geometry:
		return g.Decode()
	case geomjson.Geometry:
		return g.Decode()
	case orb.Bound:
		// Check orb.Bound before orb.Geometry since Bound implements Geometry
		// but has no GeoJSON encoding of its own.
		return decodeOrb(g.ToPolygon())
	case orb.Geometry:
		return decodeOrb(g)
	case map[string]any:
		data, err := json.Marshal(g)
		if err != nil {
			return nil, err
		}
		return unmarshalGeoJSON(data)
	case json.RawMessage:
		return unmarshalGeoJSON(g)
	case []byte:
		return unmarshalGeoJSON(g)
	case string:
		return unmarshalGeoJSON([]byte(g))
	default:
		return nil, fmt.Errorf("unsupported geometry type %T", g)
	}
}

func decodeOrb(g orb.Geometry) (geom.T, error) {
	data, err := orbjson.NewGeometry(g).MarshalJSON()
	if err != nil {
		return nil, err
	}
	return unmarshalGeoJSON(data)
}

func unmarshalGeoJSON(data []byte) (geom.T, error) {
	var decoded geom.T
	if err := geomjson.Unmarshal(data, &decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}

// FormatSpatial renders one spatial predicate as OPERATOR(attribute, wkt).
// The keyword is the uppercased operator tag; spatial equality renders as
// EQUALS. A geometry the engine rejects is reported as a *SpatialError.
func FormatSpatial(op Operator, attribute string, geometry any) (string, error) {
	text, err := ToWKT(geometry)
	if err != nil {
		return "", &SpatialError{Op: op, Err: err}
	}
	return fmt.Sprintf("%s(%s, %s)", spatialKeyword(op), attribute, text), nil
}

func spatialKeyword(op Operator) string {
	if op == OpEq {
		return "EQUALS"
	}
	return strings.ToUpper(string(op))
}

func emptyGeometry(g any) bool {
	switch g := g.(type) {
	case nil:
		return true
	case string:
		return g == ""
	case []byte:
		return len(g) == 0
	case json.RawMessage:
		return len(g) == 0
	case map[string]any:
		return len(g) == 0
	default:
		return false
	}
}

// -----------------------------------------------------------------------------
// Geometry Constructors
// -----------------------------------------------------------------------------

// Point creates a Point geometry from longitude and latitude.
func Point(lon, lat float64) orb.Point {
	return orb.Point{lon, lat}
}

// LineString creates a LineString geometry from coordinate pairs.
// Each coordinate is [lon, lat].
func LineString(coords ...[]float64) orb.LineString {
	ls := make(orb.LineString, len(coords))
	for i, c := range coords {
		if len(c) >= 2 {
			ls[i] = orb.Point{c[0], c[1]}
		}
	}
	return ls
}

// Polygon creates a Polygon geometry from rings. The first ring is the
// exterior ring, subsequent rings are holes. Each ring is a slice of
// [lon, lat] coordinates.
func Polygon(rings ...[][]float64) orb.Polygon {
	poly := make(orb.Polygon, len(rings))
	for i, ring := range rings {
		r := make(orb.Ring, len(ring))
		for j, c := range ring {
			if len(c) >= 2 {
				r[j] = orb.Point{c[0], c[1]}
			}
		}
		poly[i] = r
	}
	return poly
}

// MultiPoint creates a MultiPoint geometry from [lon, lat] coordinate pairs.
func MultiPoint(coords ...[]float64) orb.MultiPoint {
	mp := make(orb.MultiPoint, len(coords))
	for i, c := range coords {
		if len(c) >= 2 {
			mp[i] = orb.Point{c[0], c[1]}
		}
	}
	return mp
}

// MultiLineString creates a MultiLineString geometry from lines of
// [lon, lat] coordinate pairs.
func MultiLineString(lines ...[][]float64) orb.MultiLineString {
	mls := make(orb.MultiLineString, len(lines))
	for i, line := range lines {
		ls := make(orb.LineString, len(line))
		for j, c := range line {
			if len(c) >= 2 {
				ls[j] = orb.Point{c[0], c[1]}
			}
		}
		mls[i] = ls
	}
	return mls
}

// MultiPolygon creates a MultiPolygon geometry from polygons of rings.
func MultiPolygon(polygons ...[][][]float64) orb.MultiPolygon {
	mpoly := make(orb.MultiPolygon, len(polygons))
	for i, poly := range polygons {
		p := make(orb.Polygon, len(poly))
		for j, ring := range poly {
			r := make(orb.Ring, len(ring))
			for k, c := range ring {
				if len(c) >= 2 {
					r[k] = orb.Point{c[0], c[1]}
				}
			}
			p[j] = r
		}
		mpoly[i] = p
	}
	return mpoly
}

// GeometryCollection creates a GeometryCollection from multiple geometries.
func GeometryCollection(geometries ...orb.Geometry) orb.Collection {
	gc := make(orb.Collection, len(geometries))
	copy(gc, geometries)
	return gc
}

// BBox creates the Polygon covering a 2D bounding box.
// Order: minLon, minLat, maxLon, maxLat
func BBox(minLon, minLat, maxLon, maxLat float64) orb.Polygon {
	bound := orb.Bound{
		Min: orb.Point{minLon, minLat},
		Max: orb.Point{maxLon, maxLat},
	}
	return bound.ToPolygon()
}
