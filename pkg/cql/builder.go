package cql

// Builder accumulates conditions in a fluent manner. It is sugar over the
// condition constructors: every method delegates to And, Or and Not, and the
// result is an ordinary Condition tree.
type Builder struct {
	condition Condition
}

// NewBuilder returns an empty Builder instance.
func NewBuilder() *Builder {
	return &Builder{}
}

// Where sets the condition if none exists or ANDs it with the current one.
// Nil conditions are ignored.
func (b *Builder) Where(condition Condition) *Builder {
	if condition == nil {
		return b
	}
	if b.condition == nil {
		b.condition = condition
		return b
	}
	b.condition = And(b.condition, condition)
	return b
}

// And appends conditions combined with logical AND.
func (b *Builder) And(conditions ...Condition) *Builder {
	return b.combine(OpAnd, conditions)
}

// Or combines the current condition with the provided ones using logical OR.
func (b *Builder) Or(conditions ...Condition) *Builder {
	return b.combine(OpOr, conditions)
}

// Not negates the current condition.
func (b *Builder) Not() *Builder {
	if b.condition == nil {
		return b
	}
	b.condition = Not(b.condition)
	return b
}

func (b *Builder) combine(op Operator, conditions []Condition) *Builder {
	all := make([]Condition, 0, len(conditions)+1)
	if b.condition != nil {
		all = append(all, b.condition)
	}
	for _, c := range conditions {
		if c != nil {
			all = append(all, c)
		}
	}
	switch len(all) {
	case 0:
	case 1:
		b.condition = all[0]
	default:
		b.condition = Logical{Operator: op, Conditions: all}
	}
	return b
}

// Build returns the assembled condition, nil when nothing was added.
func (b *Builder) Build() Condition {
	return b.condition
}

// Must returns the assembled condition or panics if the builder is empty.
func (b *Builder) Must() Condition {
	if b.condition == nil {
		panic("cql: builder is empty")
	}
	return b.condition
}

// Query wraps the assembled condition in a Query ready for serialization.
func (b *Builder) Query() *Query {
	return NewQuery().Filter(b.condition)
}
