package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/robert-malhotra/go-cql-filter/pkg/cql"
	"github.com/urfave/cli/v3"
)

func newRenderCommand() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Render flag-described conditions as CQL text",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "eq", Usage: "attr=value equality (repeatable)"},
			&cli.StringSliceFlag{Name: "ne", Usage: "attr=value inequality (repeatable)"},
			&cli.StringSliceFlag{Name: "lt", Usage: "attr=value less-than (repeatable)"},
			&cli.StringSliceFlag{Name: "lte", Usage: "attr=value less-than-or-equal (repeatable)"},
			&cli.StringSliceFlag{Name: "gt", Usage: "attr=value greater-than (repeatable)"},
			&cli.StringSliceFlag{Name: "gte", Usage: "attr=value greater-than-or-equal (repeatable)"},
			&cli.StringSliceFlag{Name: "between", Usage: "attr=low,high range (repeatable)"},
			&cli.StringSliceFlag{Name: "like", Usage: "attr=pattern, wildcards as given (repeatable)"},
			&cli.StringSliceFlag{Name: "contains", Usage: "attr=text substring match (repeatable)"},
			&cli.StringSliceFlag{Name: "is-null", Usage: "attr that must be null (repeatable)"},
			&cli.StringSliceFlag{Name: "is-not-null", Usage: "attr that must not be null (repeatable)"},
			&cli.StringSliceFlag{Name: "intersects", Usage: "attr=GeoJSON or attr=@file (repeatable)"},
			&cli.StringSliceFlag{Name: "within", Usage: "attr=GeoJSON or attr=@file (repeatable)"},
			&cli.StringSliceFlag{Name: "s-contains", Usage: "attr=GeoJSON or attr=@file spatial contains (repeatable)"},
			&cli.StringSliceFlag{Name: "s-equals", Usage: "attr=GeoJSON or attr=@file spatial equals (repeatable)"},
			&cli.StringSliceFlag{Name: "after", Usage: "attr=instant (repeatable)"},
			&cli.StringSliceFlag{Name: "before", Usage: "attr=instant (repeatable)"},
			&cli.StringSliceFlag{Name: "during", Usage: "attr=start/end interval (repeatable)"},
			&cli.StringSliceFlag{Name: "anyinteracts", Usage: "attr=instant or attr=start/end (repeatable)"},
			&cli.StringFlag{Name: "combine", Value: "and", Usage: "combine multiple conditions with and|or"},
			&cli.BoolFlag{Name: "not", Usage: "negate the combined condition"},
			&cli.BoolFlag{Name: "url-safe", Usage: "print the URL-encoded form"},
		},
		Action: renderAction,
	}
}

func renderAction(ctx context.Context, cmd *cli.Command) error {
	conditions, err := collectConditions(cmd)
	if err != nil {
		return err
	}
	if len(conditions) == 0 {
		return fmt.Errorf("no conditions given; pass at least one operator flag")
	}

	combine := cmd.String("combine")
	if combine != "and" && combine != "or" {
		return fmt.Errorf("flag --combine wants and|or, got %q", combine)
	}

	var root cql.Condition
	switch {
	case len(conditions) == 1:
		root = conditions[0]
	case combine == "or":
		root = cql.Or(conditions...)
	default:
		root = cql.And(conditions...)
	}
	if cmd.Bool("not") {
		root = cql.Not(root)
	}

	query := cql.NewQuery().Filter(root)

	var text string
	if cmd.Bool("url-safe") {
		text, err = query.ToCQLURLSafe()
	} else {
		text, err = query.ToCQL()
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, text)
	return nil
}

// collectConditions walks the operator flags in a fixed order so repeated
// invocations of the same command line always render the same expression.
func collectConditions(cmd *cli.Command) ([]cql.Condition, error) {
	var conditions []cql.Condition

	comparisons := []struct {
		flag  string
		build func(string, any) cql.Comparison
	}{
		{"eq", cql.Eq},
		{"ne", cql.Ne},
		{"lt", cql.Lt},
		{"lte", cql.Lte},
		{"gt", cql.Gt},
		{"gte", cql.Gte},
	}
	for _, spec := range comparisons {
		for _, raw := range cmd.StringSlice(spec.flag) {
			attr, value, err := splitPair(spec.flag, raw)
			if err != nil {
				return nil, err
			}
			conditions = append(conditions, spec.build(attr, parseScalar(value)))
		}
	}

	for _, raw := range cmd.StringSlice("between") {
		attr, value, err := splitPair("between", raw)
		if err != nil {
			return nil, err
		}
		low, high, ok := strings.Cut(value, ",")
		if !ok {
			return nil, fmt.Errorf("flag --between wants attr=low,high, got %q", raw)
		}
		lower := parseScalar(strings.TrimSpace(low))
		upper := parseScalar(strings.TrimSpace(high))
		conditions = append(conditions, cql.Between(attr, lower, upper))
	}

	for _, raw := range cmd.StringSlice("like") {
		attr, value, err := splitPair("like", raw)
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, cql.Like(attr, value))
	}
	for _, raw := range cmd.StringSlice("contains") {
		attr, value, err := splitPair("contains", raw)
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, cql.Contains(attr, value))
	}

	for _, attr := range cmd.StringSlice("is-null") {
		conditions = append(conditions, cql.IsNull(attr))
	}
	for _, attr := range cmd.StringSlice("is-not-null") {
		conditions = append(conditions, cql.IsNotNull(attr))
	}

	spatials := []struct {
		flag  string
		build func(string, any) cql.Spatial
	}{
		{"intersects", cql.Intersects},
		{"within", cql.Within},
		{"s-contains", cql.SpatialContains},
		{"s-equals", cql.SpatialEquals},
	}
	for _, spec := range spatials {
		for _, raw := range cmd.StringSlice(spec.flag) {
			attr, value, err := splitPair(spec.flag, raw)
			if err != nil {
				return nil, err
			}
			geometry, err := loadGeometry(value)
			if err != nil {
				return nil, err
			}
			conditions = append(conditions, spec.build(attr, geometry))
		}
	}

	temporals := []struct {
		flag  string
		build func(string, any) cql.Temporal
	}{
		{"after", cql.After},
		{"before", cql.Before},
		{"during", cql.During},
		{"anyinteracts", cql.AnyInteracts},
	}
	for _, spec := range temporals {
		for _, raw := range cmd.StringSlice(spec.flag) {
			attr, value, err := splitPair(spec.flag, raw)
			if err != nil {
				return nil, err
			}
			conditions = append(conditions, spec.build(attr, parseTemporal(value)))
		}
	}

	return conditions, nil
}

func splitPair(flag, raw string) (string, string, error) {
	attr, value, ok := strings.Cut(raw, "=")
	if !ok || attr == "" {
		return "", "", fmt.Errorf("flag --%s wants attr=value, got %q", flag, raw)
	}
	return attr, value, nil
}

// parseScalar turns a flag value into the Go type the renderer quotes it as.
func parseScalar(value string) any {
	switch strings.ToLower(value) {
	case "null":
		return nil
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}

// parseTemporal builds an interval from start/end values; anything without a
// slash passes through as an instant.
func parseTemporal(value string) any {
	if start, end, ok := strings.Cut(value, "/"); ok {
		return cql.Interval{Start: start, End: end}
	}
	return value
}

// loadGeometry resolves @file references to their contents; anything else is
// treated as inline GeoJSON text.
func loadGeometry(value string) (any, error) {
	if strings.HasPrefix(value, "@") {
		data, err := os.ReadFile(strings.TrimPrefix(value, "@"))
		if err != nil {
			return nil, err
		}
		return json.RawMessage(data), nil
	}
	return value, nil
}
