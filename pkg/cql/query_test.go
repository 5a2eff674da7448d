package cql

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryEmpty(t *testing.T) {
	q := NewQuery()

	text, err := q.ToCQL()
	require.NoError(t, err)
	assert.Equal(t, "", text)

	encoded, err := q.ToCQLURLSafe()
	require.NoError(t, err)
	assert.Equal(t, "", encoded)
}

func TestQueryFilterReplacesRoot(t *testing.T) {
	q := NewQuery().Filter(Eq("a", 1))
	q.Filter(Eq("b", 2))

	text, err := q.ToCQL()
	require.NoError(t, err)
	assert.Equal(t, `b = 2`, text)
}

func TestQueryComposeExplicitly(t *testing.T) {
	q := NewQuery().Filter(Eq("status", "ACTIVE"))
	q.Filter(And(q.Root(), Gt("age", 18)))

	text, err := q.ToCQL()
	require.NoError(t, err)
	assert.Equal(t, `(status = 'ACTIVE' AND age > 18)`, text)
}

func TestQueryClone(t *testing.T) {
	original := NewQuery().Filter(Eq("status", "ACTIVE"))
	clone := original.Clone()

	// The clone shares the immutable root until its filter is replaced.
	assert.Equal(t, original.Root(), clone.Root())

	clone.Filter(Eq("status", "RETIRED"))

	originalText, err := original.ToCQL()
	require.NoError(t, err)
	cloneText, err := clone.ToCQL()
	require.NoError(t, err)

	assert.Equal(t, `status = 'ACTIVE'`, originalText)
	assert.Equal(t, `status = 'RETIRED'`, cloneText)
}

func TestQueryEndToEnd(t *testing.T) {
	q := NewQuery().Filter(And(
		Eq("status", "ACTIVE"),
		Gt("age", 18),
		Contains("description", "important"),
	))

	text, err := q.ToCQL()
	require.NoError(t, err)
	assert.Equal(t, `(status = 'ACTIVE' AND age > 18 AND description LIKE '%important%')`, text)
}

func TestQueryURLSafeRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		condition Condition
	}{
		{
			name:      "spaces and quotes",
			condition: Eq("name", "Anna Maria"),
		},
		{
			name:      "url-hostile characters",
			condition: Eq("note", "50% & 'quoted' = fun?"),
		},
		{
			name: "composite filter",
			condition: And(
				Eq("status", "ACTIVE"),
				Contains("description", "a&b"),
				Or(Gt("age", 18), IsNull("age")),
			),
		},
		{
			name:      "temporal filter",
			condition: During("eventDate", Interval{Start: "2023-01-01", End: "2023-12-31"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQuery().Filter(tt.condition)

			plain, err := q.ToCQL()
			require.NoError(t, err)
			encoded, err := q.ToCQLURLSafe()
			require.NoError(t, err)

			assert.NotContains(t, encoded, " ")
			assert.NotContains(t, encoded, "'")

			decoded, err := url.QueryUnescape(encoded)
			require.NoError(t, err)
			assert.Equal(t, plain, decoded)
		})
	}
}

func TestQueryErrorPropagation(t *testing.T) {
	q := NewQuery().Filter(And())

	_, err := q.ToCQL()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrFilter)

	_, err = q.ToCQLURLSafe()
	require.Error(t, err)

	var invalid *InvalidConditionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, OpAnd, invalid.Op)
	assert.Equal(t, "conditions", invalid.Missing)
}
