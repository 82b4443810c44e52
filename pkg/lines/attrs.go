package lines

import (
	"fmt"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"pglines/pkg/geom"
)

// buildAttrTable assembles the attribute table from the row query result.
// The tgid, wkt and raw geometry columns are dropped from the visible
// columns; tgid becomes the row index.
func buildAttrTable(cols []string, rows [][]any, geomCol string) (*geom.AttrTable, error) {
	dropped := map[string]bool{
		"tgid":  true,
		"wkt":   true,
		geomCol: true,
	}

	// The first two result columns are always the aliased tgid and wkt;
	// a "*" selection can repeat those names and the raw geometry column.
	var keep []int
	for i, name := range cols {
		if i <= 1 || dropped[name] {
			continue
		}
		keep = append(keep, i)
	}

	pool := memory.NewGoAllocator()

	fields := make([]arrow.Field, len(keep))
	for fi, ci := range keep {
		// Basic type inference from the first non-nil value, string otherwise
		var fieldType arrow.DataType = arrow.BinaryTypes.String
		for _, row := range rows {
			v := normalizeValue(row[ci])
			if v == nil {
				continue
			}
			switch v.(type) {
			case int64:
				fieldType = arrow.PrimitiveTypes.Int64
			case float64:
				fieldType = arrow.PrimitiveTypes.Float64
			case bool:
				fieldType = arrow.FixedWidthTypes.Boolean
			}
			break
		}
		fields[fi] = arrow.Field{Name: cols[ci], Type: fieldType, Nullable: true}
	}

	schema := arrow.NewSchema(fields, nil)
	builder := array.NewRecordBuilder(pool, schema)
	defer builder.Release()

	ids := make([]any, len(rows))
	for ri, row := range rows {
		ids[ri] = normalizeValue(row[0])

		for fi, ci := range keep {
			v := normalizeValue(row[ci])
			if v == nil {
				builder.Field(fi).AppendNull()
				continue
			}

			switch b := builder.Field(fi).(type) {
			case *array.Int64Builder:
				iv, ok := v.(int64)
				if !ok {
					builder.Field(fi).AppendNull()
					continue
				}
				b.Append(iv)
			case *array.Float64Builder:
				fv, ok := v.(float64)
				if !ok {
					builder.Field(fi).AppendNull()
					continue
				}
				b.Append(fv)
			case *array.BooleanBuilder:
				bv, ok := v.(bool)
				if !ok {
					builder.Field(fi).AppendNull()
					continue
				}
				b.Append(bv)
			case *array.StringBuilder:
				b.Append(stringValue(v))
			default:
				builder.Field(fi).AppendNull()
			}
		}
	}

	rec := builder.NewRecordBatch()
	return geom.NewAttrTable(rec, ids), nil
}

func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case time.Time:
		return s.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}
