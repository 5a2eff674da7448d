package cql

// Operator is the tag identifying which predicate a Condition represents.
type Operator string

// Comparison operators.
const (
	OpEq      Operator = "eq"
	OpNe      Operator = "ne"
	OpLt      Operator = "lt"
	OpLte     Operator = "lte"
	OpGt      Operator = "gt"
	OpGte     Operator = "gte"
	OpBetween Operator = "between"
)

// Text operators. OpContains doubles as the spatial contains tag when it
// appears on a Spatial condition.
const (
	OpLike     Operator = "like"
	OpContains Operator = "contains"
)

// Logical operators.
const (
	OpAnd Operator = "and"
	OpOr  Operator = "or"
	OpNot Operator = "not"
)

// Spatial operators. Spatial equality reuses OpEq; the Spatial variant
// selects the EQUALS(attr, wkt) rendering.
const (
	OpIntersects Operator = "intersects"
	OpDisjoint   Operator = "disjoint"
	OpWithin     Operator = "within"
	OpTouches    Operator = "touches"
	OpOverlaps   Operator = "overlaps"
	OpCrosses    Operator = "crosses"
)

// Temporal operators.
const (
	OpAnyInteracts Operator = "anyinteracts"
	OpAfter        Operator = "after"
	OpBefore       Operator = "before"
	OpBegins       Operator = "begins"
	OpBegunBy      Operator = "begunby"
	OpTContains    Operator = "tcontains"
	OpDuring       Operator = "during"
	OpEndedBy      Operator = "endedby"
	OpEnds         Operator = "ends"
	OpTEquals      Operator = "tequals"
	OpMeets        Operator = "meets"
	OpMetBy        Operator = "metby"
	OpTOverlaps    Operator = "toverlaps"
	OpOverlappedBy Operator = "overlappedby"
	OpTIntersects  Operator = "tintersects"
)

// Condition is one node of a filter expression tree. Conditions are immutable
// values: constructors never validate, rendering never mutates, and a
// condition can be shared across trees and goroutines without coordination.
type Condition interface {
	Op() Operator
	isCondition()
}

// Comparison is a scalar predicate over a single attribute. For OpBetween the
// Value holds the ordered [lower, upper] pair as a []any.
type Comparison struct {
	Operator  Operator
	Attribute string
	Value     any
}

func (c Comparison) Op() Operator { return c.Operator }
func (Comparison) isCondition()   {}

// Text is a pattern predicate (like, contains) over a single attribute.
type Text struct {
	Operator  Operator
	Attribute string
	Value     any
}

func (c Text) Op() Operator { return c.Operator }
func (Text) isCondition()   {}

// Logical combines child conditions with AND or OR. Rendering requires at
// least one child.
type Logical struct {
	Operator   Operator
	Conditions []Condition
}

func (c Logical) Op() Operator { return c.Operator }
func (Logical) isCondition()   {}

// Negation inverts a single child condition.
type Negation struct {
	Condition Condition
}

func (Negation) Op() Operator { return OpNot }
func (Negation) isCondition() {}

// Spatial is a geometric predicate over a single attribute. The Geometry
// payload is opaque here; ToWKT decides what it accepts.
type Spatial struct {
	Operator  Operator
	Attribute string
	Geometry  any
}

func (c Spatial) Op() Operator { return c.Operator }
func (Spatial) isCondition()   {}

// Temporal is a time predicate over a single attribute. The Value is an
// instant (string or time.Time) or an Interval.
type Temporal struct {
	Operator  Operator
	Attribute string
	Value     any
}

func (c Temporal) Op() Operator { return c.Operator }
func (Temporal) isCondition()   {}

// Interval is a temporal range payload. Each endpoint is independently a
// string (embedded as given, so ".." expresses an open end) or a time.Time.
type Interval struct {
	Start any
	End   any
}
