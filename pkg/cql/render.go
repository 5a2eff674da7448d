package cql

import (
	"fmt"
	"strings"
)

// Context bundles the formatter functions threaded through one render pass.
// A Context is built fresh per top-level render and never stored. Nil fields
// are filled in from the package defaults, so a custom Context only needs to
// set what it overrides.
type Context struct {
	FormatValue    func(any) string
	FormatTemporal func(any) string
	FormatSpatial  func(Operator, string, any) (string, error)
}

// NewContext returns a Context wired to the package default formatters.
func NewContext() *Context {
	return &Context{
		FormatValue:    FormatValue,
		FormatTemporal: FormatTemporal,
		FormatSpatial:  FormatSpatial,
	}
}

// Render serializes a condition tree to CQL text. All required-field
// validation happens here rather than in the constructors; a malformed
// condition fails the whole call and no partial output is returned. A nil
// ctx is equivalent to NewContext().
func Render(c Condition, ctx *Context) (string, error) {
	return render(c, resolveContext(ctx))
}

func resolveContext(ctx *Context) *Context {
	if ctx == nil {
		return NewContext()
	}
	resolved := *ctx
	if resolved.FormatValue == nil {
		resolved.FormatValue = FormatValue
	}
	if resolved.FormatTemporal == nil {
		resolved.FormatTemporal = FormatTemporal
	}
	if resolved.FormatSpatial == nil {
		resolved.FormatSpatial = FormatSpatial
	}
	return &resolved
}

func render(c Condition, ctx *Context) (string, error) {
	switch c := c.(type) {
	case nil:
		return "", &InvalidConditionError{Missing: "condition"}
	case Comparison:
		return renderComparison(c, ctx)
	case Text:
		return renderText(c, ctx)
	case Logical:
		return renderLogical(c, ctx)
	case Negation:
		return renderNegation(c, ctx)
	case Spatial:
		return renderSpatial(c, ctx)
	case Temporal:
		return renderTemporal(c, ctx)
	default:
		return "", &UnsupportedConditionError{Op: c.Op(), Condition: c}
	}
}

var comparisonSymbols = map[Operator]string{
	OpEq:  "=",
	OpNe:  "<>",
	OpLt:  "<",
	OpLte: "<=",
	OpGt:  ">",
	OpGte: ">=",
}

func renderComparison(c Comparison, ctx *Context) (string, error) {
	if c.Attribute == "" {
		return "", &InvalidConditionError{Op: c.Operator, Missing: "attribute", Condition: c}
	}
	if c.Operator == OpBetween {
		bounds, ok := c.Value.([]any)
		if !ok || len(bounds) != 2 {
			return "", &InvalidConditionError{Op: c.Operator, Missing: "values", Condition: c}
		}
		return fmt.Sprintf("%s BETWEEN %s AND %s", c.Attribute, ctx.FormatValue(bounds[0]), ctx.FormatValue(bounds[1])), nil
	}
	symbol, ok := comparisonSymbols[c.Operator]
	if !ok {
		return "", &UnsupportedConditionError{Op: c.Operator, Condition: c}
	}
	if c.Value == nil {
		// Null payloads on eq/ne take the IS [NOT] NULL form instead of
		// comparing against a NULL literal.
		switch c.Operator {
		case OpEq:
			return c.Attribute + " IS NULL", nil
		case OpNe:
			return c.Attribute + " IS NOT NULL", nil
		}
	}
	return fmt.Sprintf("%s %s %s", c.Attribute, symbol, ctx.FormatValue(c.Value)), nil
}

func renderText(c Text, ctx *Context) (string, error) {
	if c.Attribute == "" {
		return "", &InvalidConditionError{Op: c.Operator, Missing: "attribute", Condition: c}
	}
	switch c.Operator {
	case OpLike:
		return fmt.Sprintf("%s LIKE %s", c.Attribute, ctx.FormatValue(c.Value)), nil
	case OpContains:
		return fmt.Sprintf("%s LIKE '%%%s%%'", c.Attribute, likeFragment(c.Value)), nil
	default:
		return "", &UnsupportedConditionError{Op: c.Operator, Condition: c}
	}
}

// likeFragment stringifies a contains payload for embedding between LIKE
// wildcards: no surrounding quotes, embedded quotes escaped.
func likeFragment(v any) string {
	if s, ok := v.(string); ok {
		return escapeString(s)
	}
	return escapeString(fmt.Sprintf("%v", v))
}

func renderLogical(c Logical, ctx *Context) (string, error) {
	if c.Operator != OpAnd && c.Operator != OpOr {
		return "", &UnsupportedConditionError{Op: c.Operator, Condition: c}
	}
	if len(c.Conditions) == 0 {
		return "", &InvalidConditionError{Op: c.Operator, Missing: "conditions", Condition: c}
	}
	parts := make([]string, len(c.Conditions))
	for i, child := range c.Conditions {
		text, err := render(child, ctx)
		if err != nil {
			return "", err
		}
		parts[i] = text
	}
	separator := " " + strings.ToUpper(string(c.Operator)) + " "
	return "(" + strings.Join(parts, separator) + ")", nil
}

func renderNegation(c Negation, ctx *Context) (string, error) {
	if c.Condition == nil {
		return "", &InvalidConditionError{Op: OpNot, Missing: "condition", Condition: c}
	}
	inner, err := render(c.Condition, ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("NOT (%s)", inner), nil
}

var spatialTags = map[Operator]bool{
	OpIntersects: true,
	OpDisjoint:   true,
	OpContains:   true,
	OpWithin:     true,
	OpTouches:    true,
	OpOverlaps:   true,
	OpCrosses:    true,
	OpEq:         true,
}

func renderSpatial(c Spatial, ctx *Context) (string, error) {
	if c.Attribute == "" {
		return "", &InvalidConditionError{Op: c.Operator, Missing: "attribute", Condition: c}
	}
	if !spatialTags[c.Operator] {
		return "", &UnsupportedConditionError{Op: c.Operator, Condition: c}
	}
	if emptyGeometry(c.Geometry) {
		return "", &InvalidConditionError{Op: c.Operator, Missing: "geometry", Condition: c}
	}
	return ctx.FormatSpatial(c.Operator, c.Attribute, c.Geometry)
}

var temporalTags = map[Operator]bool{
	OpAnyInteracts: true,
	OpAfter:        true,
	OpBefore:       true,
	OpBegins:       true,
	OpBegunBy:      true,
	OpTContains:    true,
	OpDuring:       true,
	OpEndedBy:      true,
	OpEnds:         true,
	OpTEquals:      true,
	OpMeets:        true,
	OpMetBy:        true,
	OpTOverlaps:    true,
	OpOverlappedBy: true,
	OpTIntersects:  true,
}

func renderTemporal(c Temporal, ctx *Context) (string, error) {
	if c.Attribute == "" {
		return "", &InvalidConditionError{Op: c.Operator, Missing: "attribute", Condition: c}
	}
	if !temporalTags[c.Operator] {
		return "", &UnsupportedConditionError{Op: c.Operator, Condition: c}
	}
	keyword := strings.ToUpper(string(c.Operator))
	return fmt.Sprintf("%s(%s, %s)", keyword, c.Attribute, ctx.FormatTemporal(c.Value)), nil
}
