package cql

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderComparisons(t *testing.T) {
	tests := []struct {
		name      string
		condition Condition
		expected  string
	}{
		{
			name:      "eq string",
			condition: Eq("status", "ACTIVE"),
			expected:  `status = 'ACTIVE'`,
		},
		{
			name:      "eq number",
			condition: Eq("count", 5),
			expected:  `count = 5`,
		},
		{
			name:      "eq bool",
			condition: Eq("active", true),
			expected:  `active = TRUE`,
		},
		{
			name:      "eq timestamp",
			condition: Eq("created", time.Date(2023, 5, 15, 10, 30, 0, 0, time.UTC)),
			expected:  `created = TIMESTAMP('2023-05-15T10:30:00.000Z')`,
		},
		{
			name:      "ne",
			condition: Ne("status", "RETIRED"),
			expected:  `status <> 'RETIRED'`,
		},
		{
			name:      "lt",
			condition: Lt("cloud_cover", 20.5),
			expected:  `cloud_cover < 20.5`,
		},
		{
			name:      "lte",
			condition: Lte("cloud_cover", 20),
			expected:  `cloud_cover <= 20`,
		},
		{
			name:      "gt",
			condition: Gt("age", 18),
			expected:  `age > 18`,
		},
		{
			name:      "gte",
			condition: Gte("quality", 80),
			expected:  `quality >= 80`,
		},
		{
			name:      "between",
			condition: Between("value", 0, 100),
			expected:  `value BETWEEN 0 AND 100`,
		},
		{
			name:      "between keeps bound order",
			condition: Between("value", 100, 0),
			expected:  `value BETWEEN 100 AND 0`,
		},
		{
			name:      "is null",
			condition: IsNull("deleted_at"),
			expected:  `deleted_at IS NULL`,
		},
		{
			name:      "is not null",
			condition: IsNotNull("deleted_at"),
			expected:  `deleted_at IS NOT NULL`,
		},
		{
			name:      "eq nil via constructor",
			condition: Eq("deleted_at", nil),
			expected:  `deleted_at IS NULL`,
		},
		{
			name:      "quote escaping",
			condition: Eq("name", "O'Brien"),
			expected:  `name = 'O\'Brien'`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Render(tt.condition, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, text)
		})
	}
}

func TestRenderText(t *testing.T) {
	tests := []struct {
		name      string
		condition Condition
		expected  string
	}{
		{
			name:      "like keeps caller wildcards",
			condition: Like("name", "te%st"),
			expected:  `name LIKE 'te%st'`,
		},
		{
			name:      "like adds no wildcards",
			condition: Like("name", "test"),
			expected:  `name LIKE 'test'`,
		},
		{
			name:      "contains wraps in wildcards",
			condition: Contains("description", "important"),
			expected:  `description LIKE '%important%'`,
		},
		{
			name:      "contains escapes quotes",
			condition: Contains("description", "it's"),
			expected:  `description LIKE '%it\'s%'`,
		},
		{
			name:      "contains stringifies non-strings",
			condition: Contains("code", 42),
			expected:  `code LIKE '%42%'`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Render(tt.condition, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, text)
		})
	}
}

func TestRenderLogical(t *testing.T) {
	tests := []struct {
		name      string
		condition Condition
		expected  string
	}{
		{
			name:      "and two",
			condition: And(Eq("a", 1), Eq("b", 2)),
			expected:  `(a = 1 AND b = 2)`,
		},
		{
			name:      "or two",
			condition: Or(Eq("type", "satellite"), Eq("type", "aerial")),
			expected:  `(type = 'satellite' OR type = 'aerial')`,
		},
		{
			name:      "single child still wrapped",
			condition: And(Eq("a", 1)),
			expected:  `(a = 1)`,
		},
		{
			name:      "nested",
			condition: And(Or(Eq("x", 1), Eq("y", 2)), Gt("z", 3)),
			expected:  `((x = 1 OR y = 2) AND z > 3)`,
		},
		{
			name:      "not",
			condition: Not(Eq("status", "closed")),
			expected:  `NOT (status = 'closed')`,
		},
		{
			name:      "not of and",
			condition: Not(And(Eq("a", 1), Eq("b", 2))),
			expected:  `NOT ((a = 1 AND b = 2))`,
		},
		{
			name: "end to end scenario",
			condition: And(
				Eq("status", "ACTIVE"),
				Gt("age", 18),
				Contains("description", "important"),
			),
			expected: `(status = 'ACTIVE' AND age > 18 AND description LIKE '%important%')`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Render(tt.condition, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, text)
		})
	}
}

func TestRenderTemporal(t *testing.T) {
	tests := []struct {
		name      string
		condition Condition
		expected  string
	}{
		{
			name:      "after string instant",
			condition: After("eventDate", "2023-01-01T00:00:00Z"),
			expected:  `AFTER(eventDate, TIMESTAMP('2023-01-01T00:00:00Z'))`,
		},
		{
			name:      "during interval",
			condition: During("eventDate", Interval{Start: "2023-01-01", End: "2023-12-31"}),
			expected:  `DURING(eventDate, INTERVAL('2023-01-01', '2023-12-31'))`,
		},
		{
			name:      "before time instant",
			condition: Before("eventDate", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)),
			expected:  `BEFORE(eventDate, TIMESTAMP('2024-01-02T03:04:05.000Z'))`,
		},
		{
			name: "interval with time endpoints",
			condition: TIntersects("datetime", Interval{
				Start: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC),
			}),
			expected: `TINTERSECTS(datetime, INTERVAL('2023-01-01T00:00:00.000Z', '2023-12-31T23:59:59.000Z'))`,
		},
		{
			name:      "open interval end",
			condition: AnyInteracts("datetime", Interval{Start: "2023-01-01T00:00:00Z", End: ".."}),
			expected:  `ANYINTERACTS(datetime, INTERVAL('2023-01-01T00:00:00Z', '..'))`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Render(tt.condition, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, text)
		})
	}
}

func TestRenderTemporalKeywords(t *testing.T) {
	constructors := map[string]func(string, any) Temporal{
		"ANYINTERACTS": AnyInteracts,
		"AFTER":        After,
		"BEFORE":       Before,
		"BEGINS":       Begins,
		"BEGUNBY":      BegunBy,
		"TCONTAINS":    TContains,
		"DURING":       During,
		"ENDEDBY":      EndedBy,
		"ENDS":         Ends,
		"TEQUALS":      TEquals,
		"MEETS":        Meets,
		"METBY":        MetBy,
		"TOVERLAPS":    TOverlaps,
		"OVERLAPPEDBY": OverlappedBy,
		"TINTERSECTS":  TIntersects,
	}

	for keyword, build := range constructors {
		text, err := Render(build("ts", "2023-01-01"), nil)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("%s(ts, TIMESTAMP('2023-01-01'))", keyword), text)
	}
}

func TestRenderSpatial(t *testing.T) {
	point := map[string]any{"type": "Point", "coordinates": []float64{0, 0}}

	tests := []struct {
		name      string
		condition Condition
		expected  string
	}{
		{
			name:      "intersects point",
			condition: Intersects("geometry", point),
			expected:  `INTERSECTS(geometry, POINT (0 0))`,
		},
		{
			name:      "disjoint",
			condition: Disjoint("geometry", point),
			expected:  `DISJOINT(geometry, POINT (0 0))`,
		},
		{
			name:      "spatial contains",
			condition: SpatialContains("geometry", point),
			expected:  `CONTAINS(geometry, POINT (0 0))`,
		},
		{
			name:      "spatial equals renders EQUALS",
			condition: SpatialEquals("geometry", point),
			expected:  `EQUALS(geometry, POINT (0 0))`,
		},
		{
			name:      "within orb polygon",
			condition: Within("geometry", Polygon([][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}})),
			expected:  `WITHIN(geometry, POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0)))`,
		},
		{
			name:      "touches geojson text",
			condition: Touches("geometry", `{"type":"LineString","coordinates":[[0,0],[1,1]]}`),
			expected:  `TOUCHES(geometry, LINESTRING (0 0, 1 1))`,
		},
		{
			name:      "crosses",
			condition: Crosses("geometry", LineString([]float64{0, 0}, []float64{2, 2})),
			expected:  `CROSSES(geometry, LINESTRING (0 0, 2 2))`,
		},
		{
			name:      "overlaps bbox",
			condition: Overlaps("geometry", BBox(0, 0, 2, 2)),
			expected:  `OVERLAPS(geometry, POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0)))`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Render(tt.condition, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, text)
		})
	}
}

func TestRenderErrors(t *testing.T) {
	point := map[string]any{"type": "Point", "coordinates": []float64{0, 0}}

	tests := []struct {
		name      string
		condition Condition
		op        Operator
		missing   string
	}{
		{
			name:      "comparison missing attribute",
			condition: Eq("", "x"),
			op:        OpEq,
			missing:   "attribute",
		},
		{
			name:      "text missing attribute",
			condition: Like("", "x"),
			op:        OpLike,
			missing:   "attribute",
		},
		{
			name:      "spatial missing attribute",
			condition: Intersects("", point),
			op:        OpIntersects,
			missing:   "attribute",
		},
		{
			name:      "temporal missing attribute",
			condition: After("", "2023-01-01"),
			op:        OpAfter,
			missing:   "attribute",
		},
		{
			name:      "and with zero children",
			condition: And(),
			op:        OpAnd,
			missing:   "conditions",
		},
		{
			name:      "or with zero children",
			condition: Or(),
			op:        OpOr,
			missing:   "conditions",
		},
		{
			name:      "not with nil child",
			condition: Not(nil),
			op:        OpNot,
			missing:   "condition",
		},
		{
			name:      "between with wrong arity",
			condition: Comparison{Operator: OpBetween, Attribute: "v", Value: []any{1}},
			op:        OpBetween,
			missing:   "values",
		},
		{
			name:      "between with non-pair payload",
			condition: Comparison{Operator: OpBetween, Attribute: "v", Value: 5},
			op:        OpBetween,
			missing:   "values",
		},
		{
			name:      "spatial missing geometry",
			condition: Intersects("geometry", nil),
			op:        OpIntersects,
			missing:   "geometry",
		},
		{
			name:      "spatial empty geometry map",
			condition: Within("geometry", map[string]any{}),
			op:        OpWithin,
			missing:   "geometry",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(tt.condition, nil)
			require.Error(t, err)
			require.ErrorIs(t, err, ErrFilter)

			var invalid *InvalidConditionError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.op, invalid.Op)
			assert.Equal(t, tt.missing, invalid.Missing)
		})
	}
}

func TestRenderErrorInNestedChild(t *testing.T) {
	_, err := Render(And(Eq("a", 1), Or()), nil)
	require.Error(t, err)

	var invalid *InvalidConditionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, OpOr, invalid.Op)
	assert.Equal(t, "conditions", invalid.Missing)
}

func TestRenderNilCondition(t *testing.T) {
	_, err := Render(nil, nil)
	require.Error(t, err)

	var invalid *InvalidConditionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "condition", invalid.Missing)
}

func TestRenderUnsupported(t *testing.T) {
	tests := []struct {
		name      string
		condition Condition
		op        Operator
	}{
		{
			name:      "unknown comparison tag",
			condition: Comparison{Operator: "regex", Attribute: "a", Value: "x"},
			op:        "regex",
		},
		{
			name:      "unknown text tag",
			condition: Text{Operator: "soundslike", Attribute: "a", Value: "x"},
			op:        "soundslike",
		},
		{
			name:      "unknown logical tag",
			condition: Logical{Operator: "xor", Conditions: []Condition{Eq("a", 1)}},
			op:        "xor",
		},
		{
			name:      "unknown spatial tag",
			condition: Spatial{Operator: "near", Attribute: "geometry", Geometry: "POINT (0 0)"},
			op:        "near",
		},
		{
			name:      "unknown temporal tag",
			condition: Temporal{Operator: "sometime", Attribute: "ts", Value: "2023-01-01"},
			op:        "sometime",
		},
		{
			name:      "foreign condition type",
			condition: legacyCondition{},
			op:        "legacy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(tt.condition, nil)
			require.Error(t, err)
			require.ErrorIs(t, err, ErrFilter)

			var unsupported *UnsupportedConditionError
			require.ErrorAs(t, err, &unsupported)
			assert.Equal(t, tt.op, unsupported.Op)
		})
	}
}

// legacyCondition is a Condition implementation the render dispatch has no
// rule for.
type legacyCondition struct{}

func (legacyCondition) Op() Operator { return "legacy" }
func (legacyCondition) isCondition() {}

func TestRenderSpatialError(t *testing.T) {
	bad := map[string]any{"type": "Point", "coordinates": "not coordinates"}

	_, err := Render(Intersects("geometry", bad), nil)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrFilter)

	var spatial *SpatialError
	require.ErrorAs(t, err, &spatial)
	assert.Equal(t, OpIntersects, spatial.Op)
	assert.Error(t, spatial.Unwrap())
}

func TestRenderSharedCondition(t *testing.T) {
	shared := Eq("status", "ACTIVE")

	first := And(shared, Gt("age", 18))
	second := Or(shared, IsNull("age"))

	firstText, err := Render(first, nil)
	require.NoError(t, err)
	secondText, err := Render(second, nil)
	require.NoError(t, err)

	assert.Equal(t, `(status = 'ACTIVE' AND age > 18)`, firstText)
	assert.Equal(t, `(status = 'ACTIVE' OR age IS NULL)`, secondText)

	// The shared condition must be untouched by either render.
	again, err := Render(shared, nil)
	require.NoError(t, err)
	assert.Equal(t, `status = 'ACTIVE'`, again)
}

func TestRenderPurity(t *testing.T) {
	assert.True(t, reflect.DeepEqual(Eq("a", 1), Eq("a", 1)))
	assert.True(t, reflect.DeepEqual(
		And(Eq("a", 1), Lt("b", 2)),
		And(Eq("a", 1), Lt("b", 2)),
	))
	assert.True(t, reflect.DeepEqual(Between("v", 0, 10), Between("v", 0, 10)))

	condition := And(Eq("a", 1), Contains("b", "x"))
	first, err := Render(condition, nil)
	require.NoError(t, err)
	second, err := Render(condition, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderCustomContext(t *testing.T) {
	ctx := &Context{
		FormatValue: func(v any) string { return "?" },
	}

	// Overridden formatter applies; unset formatters fall back to defaults.
	text, err := Render(And(Eq("a", 1), After("ts", "2023-01-01")), ctx)
	require.NoError(t, err)
	assert.Equal(t, `(a = ? AND AFTER(ts, TIMESTAMP('2023-01-01')))`, text)
}

func TestRenderLogicalWithNilChild(t *testing.T) {
	_, err := Render(And(Eq("a", 1), nil), nil)
	require.Error(t, err)

	var invalid *InvalidConditionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "condition", invalid.Missing)
}
