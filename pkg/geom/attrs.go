package geom

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// AttrTable holds the non-geometry columns of a loaded table as an Apache
// Arrow record batch, indexed by feature identifier. Row order matches the
// feature order of the owning collection. If the identifier column was not
// unique, later rows shadow earlier ones in the index; uniqueness is the
// caller's responsibility.
type AttrTable struct {
	records []arrow.RecordBatch
	ids     []any
	index   map[any]int
}

func NewAttrTable(rec arrow.RecordBatch, ids []any) *AttrTable {
	index := make(map[any]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	return &AttrTable{
		records: []arrow.RecordBatch{rec},
		ids:     ids,
		index:   index,
	}
}

// Get Apache Arrow Records of the attribute table
func (t *AttrTable) GetRecords() []arrow.RecordBatch {
	return t.records
}

// Release the Apache Arrow Records buffer
func (t *AttrTable) Release() {
	for i := range len(t.records) {
		t.records[i].Release()
	}
}

// IDs returns the feature identifiers in row order.
func (t *AttrTable) IDs() []any {
	return t.ids
}

func (t *AttrTable) NumRows() int {
	return len(t.ids)
}

// Columns returns the visible attribute column names.
func (t *AttrTable) Columns() []string {
	if len(t.records) == 0 {
		return nil
	}

	schema := t.records[0].Schema()
	out := make([]string, 0, schema.NumFields())
	for _, f := range schema.Fields() {
		out = append(out, f.Name)
	}
	return out
}

// Row returns the attribute values for the given feature identifier.
func (t *AttrTable) Row(id any) (map[string]any, bool) {
	rowIdx, ok := t.index[id]
	if !ok || len(t.records) == 0 {
		return nil, false
	}

	batch := t.records[0]
	schema := batch.Schema()

	out := make(map[string]any, batch.NumCols())
	for colIdx := 0; colIdx < int(batch.NumCols()); colIdx++ {
		val, err := columnValue(batch.Column(colIdx), rowIdx)
		if err != nil {
			continue
		}
		out[schema.Field(colIdx).Name] = val
	}

	return out, true
}

// Value returns a single attribute value by feature identifier and column.
func (t *AttrTable) Value(id any, column string) (any, bool) {
	rowIdx, ok := t.index[id]
	if !ok || len(t.records) == 0 {
		return nil, false
	}

	batch := t.records[0]
	indices := batch.Schema().FieldIndices(column)
	if len(indices) == 0 {
		return nil, false
	}

	val, err := columnValue(batch.Column(indices[0]), rowIdx)
	if err != nil {
		return nil, false
	}
	return val, true
}

// columnValue extracts a value from an Arrow column at a given index
func columnValue(col arrow.Array, idx int) (any, error) {
	switch c := col.(type) {
	case *array.Float64:
		if c.IsNull(idx) {
			return nil, nil
		}
		return c.Value(idx), nil
	case *array.Float32:
		if c.IsNull(idx) {
			return nil, nil
		}
		return float64(c.Value(idx)), nil
	case *array.Int64:
		if c.IsNull(idx) {
			return nil, nil
		}
		return c.Value(idx), nil
	case *array.Int32:
		if c.IsNull(idx) {
			return nil, nil
		}
		return int64(c.Value(idx)), nil
	case *array.String:
		if c.IsNull(idx) {
			return nil, nil
		}
		return c.Value(idx), nil
	case *array.LargeString:
		if c.IsNull(idx) {
			return nil, nil
		}
		return c.Value(idx), nil
	case *array.Boolean:
		if c.IsNull(idx) {
			return nil, nil
		}
		return c.Value(idx), nil
	case *array.Binary:
		if c.IsNull(idx) {
			return nil, nil
		}
		return string(c.Value(idx)), nil
	default:
		return nil, fmt.Errorf("unsupported column type: %T", col)
	}
}
