package lines

import (
	"fmt"
	"strings"
)

// UsageError reports a malformed table reference. It is raised before any
// query is issued, so the caller can fix the input without touching the
// database.
type UsageError struct {
	Table   string
	Message string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("invalid table reference %q: %s", e.Table, e.Message)
}

// QueryError wraps a database or driver failure and carries the SQL text
// that failed.
type QueryError struct {
	SQL string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query failed: %v (sql: %s)", e.Err, e.SQL)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// MixedSRIDError reports that the geometry column does not carry exactly
// one distinct SRID among non-null rows. A table with zero qualifying rows
// fails this check as well (distinct count 0).
type MixedSRIDError struct {
	Table  string
	Column string
	SRIDs  []int
}

func (e *MixedSRIDError) Error() string {
	if len(e.SRIDs) == 0 {
		return fmt.Sprintf("no non-null geometries in %s.%s, cannot determine SRID", e.Table, e.Column)
	}

	codes := make([]string, len(e.SRIDs))
	for i, s := range e.SRIDs {
		codes[i] = fmt.Sprint(s)
	}
	return fmt.Sprintf("expected a single SRID in %s.%s, found %d: %s",
		e.Table, e.Column, len(e.SRIDs), strings.Join(codes, ", "))
}

// GeometryParseError reports a WKT value that did not parse as a line
// geometry. The whole load aborts; no partial collection is returned.
type GeometryParseError struct {
	ID  any
	WKT string
	Err error
}

func (e *GeometryParseError) Error() string {
	return fmt.Sprintf("row %v: %q is not a line geometry: %v", e.ID, e.WKT, e.Err)
}

func (e *GeometryParseError) Unwrap() error {
	return e.Err
}
