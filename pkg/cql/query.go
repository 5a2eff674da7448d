package cql

import "net/url"

// Query assembles at most one root condition and drives final-string
// production. The zero value is ready to use.
type Query struct {
	root Condition
}

// NewQuery returns an empty Query.
func NewQuery() *Query {
	return &Query{}
}

// Filter sets the root condition, replacing any previous one. Combining an
// old filter with a new one is the caller's concern, typically
// q.Filter(cql.And(old, extra)).
func (q *Query) Filter(condition Condition) *Query {
	q.root = condition
	return q
}

// Root returns the current root condition, nil when unset.
func (q *Query) Root() Condition {
	return q.root
}

// Clone returns a copy of the Query. The root condition is shared between
// the two: conditions are immutable, so neither query can disturb the other
// through it, and replacing one query's filter leaves the other untouched.
func (q *Query) Clone() *Query {
	cp := *q
	return &cp
}

// ToCQL renders the root condition as CQL text through a fresh default
// Context. An empty Query renders as the empty string.
func (q *Query) ToCQL() (string, error) {
	if q.root == nil {
		return "", nil
	}
	return Render(q.root, NewContext())
}

// ToCQLURLSafe renders the root condition and percent-encodes the result for
// embedding as a URL query-string value. url.QueryUnescape recovers ToCQL's
// output exactly.
func (q *Query) ToCQLURLSafe() (string, error) {
	text, err := q.ToCQL()
	if err != nil {
		return "", err
	}
	return url.QueryEscape(text), nil
}
