package cql

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// timestampLayout is the canonical instant form for time.Time values:
// millisecond precision, UTC, Z suffix.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// FormatValue renders a scalar as a CQL literal. It is total: every input has
// some rendering.
//
//	nil        -> NULL
//	string     -> single-quoted, embedded quotes escaped as \'
//	bool       -> TRUE / FALSE
//	time.Time  -> TIMESTAMP('2023-01-01T00:00:00.000Z')
//	anything else -> its default string form, unquoted
func FormatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + escapeString(v) + "'"
	case bool:
		return strings.ToUpper(strconv.FormatBool(v))
	case time.Time:
		return "TIMESTAMP('" + v.UTC().Format(timestampLayout) + "')"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// FormatTemporal renders a temporal payload as a CQL literal. String instants
// are embedded exactly as given, with no reformatting or validation of their
// shape; time.Time instants are normalized to UTC millisecond precision.
// Interval endpoints follow the same instant rules independently. Anything
// else falls back to its default string form.
func FormatTemporal(v any) string {
	switch v := v.(type) {
	case time.Time:
		return "TIMESTAMP('" + v.UTC().Format(timestampLayout) + "')"
	case string:
		return "TIMESTAMP('" + v + "')"
	case Interval:
		return "INTERVAL(" + intervalEndpoint(v.Start) + ", " + intervalEndpoint(v.End) + ")"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func intervalEndpoint(v any) string {
	switch v := v.(type) {
	case time.Time:
		return "'" + v.UTC().Format(timestampLayout) + "'"
	case string:
		return "'" + v + "'"
	default:
		return fmt.Sprintf("'%v'", v)
	}
}

func escapeString(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}
