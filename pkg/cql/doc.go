// Package cql builds OGC CQL2 filter expressions programmatically and
// serializes them to CQL text.
//
// Conditions are immutable values produced by pure constructors. Nothing is
// validated at construction, so conditions can be partially built, stored
// and composed freely; all required-field checking happens when the tree is
// rendered. Example:
//
//	q := cql.NewQuery().Filter(cql.And(
//	    cql.Eq("status", "ACTIVE"),
//	    cql.Gt("age", 18),
//	    cql.Contains("description", "important"),
//	))
//	text, err := q.ToCQL()
//	// (status = 'ACTIVE' AND age > 18 AND description LIKE '%important%')
//
// Spatial conditions take any GeoJSON-shaped value, an orb geometry or a
// go-geom geometry; conversion to Well-Known Text happens during rendering:
//
//	cql.Intersects("geometry", cql.BBox(-122.5, 37.5, -122.0, 38.0))
//
// There is no parsing path: CQL text is produced, never consumed.
package cql
