package geom

import (
	"github.com/apache/arrow-go/v18/arrow"
	gogeom "github.com/twpayne/go-geom"
)

// LineFeature pairs a row identifier with its parsed line geometry.
// The identifier is whatever the source table produced: int64 for integer
// identifier columns and synthesized sequence numbers, string for text
// columns. The pair is constructed once and never mutated.
type LineFeature struct {
	ID   any
	Geom gogeom.T
}

// LineCollection is an ordered set of line features sharing one CRS, with
// an optional attribute table indexed by feature identifier.
type LineCollection struct {
	features []LineFeature
	crs      string
	attrs    *AttrTable
}

func NewLineCollection(features []LineFeature, crs string, attrs *AttrTable) *LineCollection {
	return &LineCollection{
		features: features,
		crs:      crs,
		attrs:    attrs,
	}
}

// Features returns the features in the order the source rows were returned.
func (c *LineCollection) Features() []LineFeature {
	return c.features
}

func (c *LineCollection) Feature(i int) LineFeature {
	return c.features[i]
}

func (c *LineCollection) Len() int {
	return len(c.features)
}

// Attrs returns the attribute table, or nil for a geometry-only collection.
func (c *LineCollection) Attrs() *AttrTable {
	return c.attrs
}

// Get CRS
func (c *LineCollection) GetCRS() string {
	return c.crs
}

// Get geometry type
func (c *LineCollection) GetGeometryType() GeometryType {
	return LINES
}

// Get Apache Arrow Records of the attribute table
func (c *LineCollection) GetRecords() []arrow.RecordBatch {
	if c.attrs == nil {
		return nil
	}
	return c.attrs.GetRecords()
}

// Release the Apache Arrow Records buffer
func (c *LineCollection) Release() {
	if c.attrs != nil {
		c.attrs.Release()
	}
}

// Get attributes
func (c *LineCollection) GetAttributes() map[string]any {
	out := make(map[string]any)

	out["FeatureCount"] = c.Len()

	return out
}
