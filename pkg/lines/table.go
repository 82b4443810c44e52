package lines

import "strings"

// TableRef is a parsed table reference: a table name with an optional
// schema qualifier.
type TableRef struct {
	Schema string
	Name   string
}

// ParseTableRef parses "table" or "schema.table". Anything else (empty
// input, empty segments, more than two segments) is a UsageError.
func ParseTableRef(s string) (TableRef, error) {
	if s == "" {
		return TableRef{}, &UsageError{Table: s, Message: "empty table name"}
	}

	parts := strings.Split(s, ".")
	for _, p := range parts {
		if p == "" {
			return TableRef{}, &UsageError{Table: s, Message: "empty path segment"}
		}
	}

	switch len(parts) {
	case 1:
		return TableRef{Name: parts[0]}, nil
	case 2:
		return TableRef{Schema: parts[0], Name: parts[1]}, nil
	default:
		return TableRef{}, &UsageError{Table: s, Message: "expected table or schema.table"}
	}
}

// String returns the fully-qualified table expression.
func (t TableRef) String() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}
