package cql

// Constructors are pure: they only record their arguments. Required-field
// validation (non-empty attribute, non-empty child list, well-formed
// geometry) happens at render time, so partially specified conditions can be
// built, stored, and composed before rendering.

// -----------------------------------------------------------------------------
// Comparison Operators
// -----------------------------------------------------------------------------

// Eq creates an equality condition (=). A nil value renders as IS NULL.
func Eq(attribute string, value any) Comparison {
	return Comparison{Operator: OpEq, Attribute: attribute, Value: value}
}

// Ne creates an inequality condition (<>). A nil value renders as IS NOT NULL.
func Ne(attribute string, value any) Comparison {
	return Comparison{Operator: OpNe, Attribute: attribute, Value: value}
}

// Lt creates a less-than condition (<).
func Lt(attribute string, value any) Comparison {
	return Comparison{Operator: OpLt, Attribute: attribute, Value: value}
}

// Lte creates a less-than-or-equal condition (<=).
func Lte(attribute string, value any) Comparison {
	return Comparison{Operator: OpLte, Attribute: attribute, Value: value}
}

// Gt creates a greater-than condition (>).
func Gt(attribute string, value any) Comparison {
	return Comparison{Operator: OpGt, Attribute: attribute, Value: value}
}

// Gte creates a greater-than-or-equal condition (>=).
func Gte(attribute string, value any) Comparison {
	return Comparison{Operator: OpGte, Attribute: attribute, Value: value}
}

// Between creates a range condition (BETWEEN lower AND upper). The bounds are
// carried in the given order; no lower <= upper check is made.
func Between(attribute string, lower, upper any) Comparison {
	return Comparison{Operator: OpBetween, Attribute: attribute, Value: []any{lower, upper}}
}

// IsNull is sugar for Eq(attribute, nil).
func IsNull(attribute string) Comparison {
	return Eq(attribute, nil)
}

// IsNotNull is sugar for Ne(attribute, nil).
func IsNotNull(attribute string) Comparison {
	return Ne(attribute, nil)
}

// -----------------------------------------------------------------------------
// Text Operators
// -----------------------------------------------------------------------------

// Like creates a pattern match condition. No wildcards are added: callers
// supply their own % and _ placeholders.
func Like(attribute string, value any) Text {
	return Text{Operator: OpLike, Attribute: attribute, Value: value}
}

// Contains creates a substring match condition. It renders as
// LIKE '%value%'; the wildcard wrapping is applied during rendering.
func Contains(attribute string, value any) Text {
	return Text{Operator: OpContains, Attribute: attribute, Value: value}
}

// -----------------------------------------------------------------------------
// Logical Operators
// -----------------------------------------------------------------------------

// And combines conditions with logical AND. Rendering an empty combination
// is an error.
func And(conditions ...Condition) Logical {
	return Logical{Operator: OpAnd, Conditions: append([]Condition{}, conditions...)}
}

// Or combines conditions with logical OR. Rendering an empty combination
// is an error.
func Or(conditions ...Condition) Logical {
	return Logical{Operator: OpOr, Conditions: append([]Condition{}, conditions...)}
}

// Not negates a condition.
func Not(condition Condition) Negation {
	return Negation{Condition: condition}
}

// -----------------------------------------------------------------------------
// Spatial Operators
// -----------------------------------------------------------------------------

// Intersects tests whether the attribute's geometry intersects the given one.
func Intersects(attribute string, geometry any) Spatial {
	return Spatial{Operator: OpIntersects, Attribute: attribute, Geometry: geometry}
}

// Disjoint tests whether the attribute's geometry is disjoint from the given one.
func Disjoint(attribute string, geometry any) Spatial {
	return Spatial{Operator: OpDisjoint, Attribute: attribute, Geometry: geometry}
}

// SpatialContains tests whether the attribute's geometry contains the given
// one. It shares the contains tag with the text operator; the Spatial variant
// selects the CONTAINS(attr, wkt) rendering.
func SpatialContains(attribute string, geometry any) Spatial {
	return Spatial{Operator: OpContains, Attribute: attribute, Geometry: geometry}
}

// Within tests whether the attribute's geometry lies within the given one.
func Within(attribute string, geometry any) Spatial {
	return Spatial{Operator: OpWithin, Attribute: attribute, Geometry: geometry}
}

// Touches tests whether the attribute's geometry touches the given one.
func Touches(attribute string, geometry any) Spatial {
	return Spatial{Operator: OpTouches, Attribute: attribute, Geometry: geometry}
}

// Overlaps tests whether the attribute's geometry overlaps the given one.
func Overlaps(attribute string, geometry any) Spatial {
	return Spatial{Operator: OpOverlaps, Attribute: attribute, Geometry: geometry}
}

// Crosses tests whether the attribute's geometry crosses the given one.
func Crosses(attribute string, geometry any) Spatial {
	return Spatial{Operator: OpCrosses, Attribute: attribute, Geometry: geometry}
}

// SpatialEquals tests geometric equality. It is tagged eq like scalar
// equality but renders through the spatial path as EQUALS(attr, wkt).
func SpatialEquals(attribute string, geometry any) Spatial {
	return Spatial{Operator: OpEq, Attribute: attribute, Geometry: geometry}
}

// -----------------------------------------------------------------------------
// Temporal Operators
// -----------------------------------------------------------------------------

// AnyInteracts tests whether the attribute's time interacts with the given
// temporal value in any way.
func AnyInteracts(attribute string, value any) Temporal {
	return Temporal{Operator: OpAnyInteracts, Attribute: attribute, Value: value}
}

// After creates a temporal "after" test.
func After(attribute string, value any) Temporal {
	return Temporal{Operator: OpAfter, Attribute: attribute, Value: value}
}

// Before creates a temporal "before" test.
func Before(attribute string, value any) Temporal {
	return Temporal{Operator: OpBefore, Attribute: attribute, Value: value}
}

// Begins creates a temporal "begins" test.
func Begins(attribute string, value any) Temporal {
	return Temporal{Operator: OpBegins, Attribute: attribute, Value: value}
}

// BegunBy creates a temporal "begun by" test.
func BegunBy(attribute string, value any) Temporal {
	return Temporal{Operator: OpBegunBy, Attribute: attribute, Value: value}
}

// TContains creates a temporal "contains" test.
func TContains(attribute string, value any) Temporal {
	return Temporal{Operator: OpTContains, Attribute: attribute, Value: value}
}

// During creates a temporal "during" test.
func During(attribute string, value any) Temporal {
	return Temporal{Operator: OpDuring, Attribute: attribute, Value: value}
}

// EndedBy creates a temporal "ended by" test.
func EndedBy(attribute string, value any) Temporal {
	return Temporal{Operator: OpEndedBy, Attribute: attribute, Value: value}
}

// Ends creates a temporal "ends" test.
func Ends(attribute string, value any) Temporal {
	return Temporal{Operator: OpEnds, Attribute: attribute, Value: value}
}

// TEquals creates a temporal "equals" test.
func TEquals(attribute string, value any) Temporal {
	return Temporal{Operator: OpTEquals, Attribute: attribute, Value: value}
}

// Meets creates a temporal "meets" test.
func Meets(attribute string, value any) Temporal {
	return Temporal{Operator: OpMeets, Attribute: attribute, Value: value}
}

// MetBy creates a temporal "met by" test.
func MetBy(attribute string, value any) Temporal {
	return Temporal{Operator: OpMetBy, Attribute: attribute, Value: value}
}

// TOverlaps creates a temporal "overlaps" test.
func TOverlaps(attribute string, value any) Temporal {
	return Temporal{Operator: OpTOverlaps, Attribute: attribute, Value: value}
}

// OverlappedBy creates a temporal "overlapped by" test.
func OverlappedBy(attribute string, value any) Temporal {
	return Temporal{Operator: OpOverlappedBy, Attribute: attribute, Value: value}
}

// TIntersects creates a temporal "intersects" test.
func TIntersects(attribute string, value any) Temporal {
	return Temporal{Operator: OpTIntersects, Attribute: attribute, Value: value}
}
