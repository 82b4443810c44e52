// Package lines loads line geometries from a PostGIS table into an
// in-memory collection. Column names, column lists and filter fragments
// are spliced into the SQL verbatim, without escaping or validation; they
// must not be built from untrusted input.
package lines

import (
	"context"
	"database/sql"
	"fmt"

	gogeom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"

	"pglines/pkg/geom"
)

// Options controls how a table is loaded. The zero value selects the
// defaults: geometry column "geom", synthesized identifiers, all columns.
type Options struct {
	// GeomColumn names the geometry column. Defaults to "geom".
	GeomColumn string

	// IDColumn names the identifier column. When empty, a 1-based row
	// sequence number in server return order is synthesized with
	// ROW_NUMBER() OVER (). An identifier column should be unique per row;
	// uniqueness is not enforced here.
	IDColumn string

	// Columns is the attribute column list spliced into the SELECT.
	// Defaults to "*" (every column of the table). Ignored when
	// GeometryOnly is set.
	Columns string

	// GeometryOnly skips attribute columns entirely; the resulting
	// collection carries no attribute table.
	GeometryOnly bool

	// Filter is a raw SQL fragment appended to the WHERE clause after the
	// geometry not-null predicate, e.g. "AND lanes > 2" or an ORDER BY for
	// callers that need a deterministic row order. Passed through verbatim.
	Filter string
}

func (o *Options) withDefaults() Options {
	out := Options{}
	if o != nil {
		out = *o
	}

	if out.GeomColumn == "" {
		out.GeomColumn = "geom"
	}
	if out.Columns == "" {
		out.Columns = "*"
	}
	return out
}

// Load reads every row of the table whose geometry column is non-null and
// assembles the parsed lines into a collection sharing one CRS. The
// connection is caller-owned: Load neither opens nor closes it, and issues
// exactly two read-only queries (an SRID probe, then the row query).
func Load(ctx context.Context, db *sql.DB, table string, opts *Options) (*geom.LineCollection, error) {
	ref, err := ParseTableRef(table)
	if err != nil {
		return nil, err
	}
	o := opts.withDefaults()

	srid, err := probeSRID(ctx, db, ref, o.GeomColumn)
	if err != nil {
		return nil, err
	}

	query := buildRowQuery(ref, o)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, &QueryError{SQL: query, Err: err}
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, &QueryError{SQL: query, Err: err}
	}

	var features []geom.LineFeature
	var attrRows [][]any

	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, &QueryError{SQL: query, Err: err}
		}

		id := normalizeValue(vals[0])

		text, err := wktValue(id, vals[1])
		if err != nil {
			return nil, err
		}

		line, err := parseLine(id, text, srid)
		if err != nil {
			return nil, err
		}

		features = append(features, geom.LineFeature{ID: id, Geom: line})
		if !o.GeometryOnly {
			attrRows = append(attrRows, vals)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{SQL: query, Err: err}
	}

	crs := geom.CRSFromSRID(srid)
	if o.GeometryOnly {
		return geom.NewLineCollection(features, crs, nil), nil
	}

	attrs, err := buildAttrTable(cols, attrRows, o.GeomColumn)
	if err != nil {
		return nil, err
	}

	return geom.NewLineCollection(features, crs, attrs), nil
}

// probeSRID queries the distinct SRIDs of the non-null geometries. Exactly
// one distinct value is required; zero qualifying rows fails the same check.
func probeSRID(ctx context.Context, db *sql.DB, ref TableRef, geomCol string) (int, error) {
	query := fmt.Sprintf("SELECT DISTINCT ST_SRID(%s) FROM %s WHERE %s IS NOT NULL",
		geomCol, ref, geomCol)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return 0, &QueryError{SQL: query, Err: err}
	}
	defer rows.Close()

	var srids []int
	for rows.Next() {
		var srid int
		if err := rows.Scan(&srid); err != nil {
			return 0, &QueryError{SQL: query, Err: err}
		}
		srids = append(srids, srid)
	}
	if err := rows.Err(); err != nil {
		return 0, &QueryError{SQL: query, Err: err}
	}

	if len(srids) != 1 {
		return 0, &MixedSRIDError{Table: ref.String(), Column: geomCol, SRIDs: srids}
	}

	return srids[0], nil
}

func buildRowQuery(ref TableRef, o Options) string {
	idExpr := o.IDColumn
	if idExpr == "" {
		idExpr = "ROW_NUMBER() OVER ()"
	}

	sel := fmt.Sprintf("SELECT %s AS tgid, ST_AsText(%s) AS wkt", idExpr, o.GeomColumn)
	if !o.GeometryOnly {
		sel += ", " + o.Columns
	}

	query := fmt.Sprintf("%s FROM %s WHERE %s IS NOT NULL", sel, ref, o.GeomColumn)
	if o.Filter != "" {
		query += " " + o.Filter
	}

	return query
}

func wktValue(id any, v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	default:
		return "", &GeometryParseError{ID: id, WKT: fmt.Sprint(v),
			Err: fmt.Errorf("wkt column returned %T, expected text", v)}
	}
}

// parseLine parses a WKT string as a simple or multi-part line and tags it
// with the shared SRID from the probe.
func parseLine(id any, text string, srid int) (gogeom.T, error) {
	g, err := wkt.Unmarshal(text)
	if err != nil {
		return nil, &GeometryParseError{ID: id, WKT: text, Err: err}
	}

	switch line := g.(type) {
	case *gogeom.LineString:
		return line.SetSRID(srid), nil
	case *gogeom.MultiLineString:
		return line.SetSRID(srid), nil
	default:
		return nil, &GeometryParseError{ID: id, WKT: text,
			Err: fmt.Errorf("unexpected geometry type %T", g)}
	}
}

// normalizeValue maps driver values to the types surfaced in feature IDs
// and attribute rows.
func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
