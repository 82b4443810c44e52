package geom

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gogeom "github.com/twpayne/go-geom"
)

func TestToGeoJSON(t *testing.T) {
	multi, err := gogeom.NewMultiLineString(gogeom.XY).SetCoords([][]gogeom.Coord{
		{{0, 0}, {1, 0}},
		{{2, 0}, {3, 0}},
	})
	require.NoError(t, err)

	features := []LineFeature{
		{ID: int64(1), Geom: testLine(t, 4326, 0, 0, 1, 1)},
		{ID: int64(2), Geom: multi.SetSRID(4326)},
	}

	coll := NewLineCollection(features, "EPSG:4326", testAttrTable(t))
	defer coll.Release()

	fc, err := coll.ToGeoJSON()
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)

	first := fc.Features[0]
	assert.Equal(t, int64(1), first.ID)
	require.True(t, first.Geometry.IsLineString())
	assert.Equal(t, [][]float64{{0, 0}, {1, 1}}, first.Geometry.LineString)
	assert.Equal(t, "main st", first.Properties["name"])
	assert.Equal(t, int64(2), first.Properties["lanes"])

	second := fc.Features[1]
	require.True(t, second.Geometry.IsMultiLineString())
	assert.Len(t, second.Geometry.MultiLineString, 2)

	// The collection serializes as a valid FeatureCollection document.
	raw, err := json.Marshal(fc)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"FeatureCollection"`)
	assert.Contains(t, string(raw), `"LineString"`)
}

func TestToGeoJSONWithoutAttrs(t *testing.T) {
	coll := NewLineCollection(
		[]LineFeature{{ID: int64(7), Geom: testLine(t, 4326, 0, 0, 1, 1)}},
		"EPSG:4326",
		nil,
	)

	fc, err := coll.ToGeoJSON()
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	assert.Empty(t, fc.Features[0].Properties)
}
