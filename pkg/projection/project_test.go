package projection

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gogeom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"

	"pglines/pkg/geom"
)

func testLine(t *testing.T, srid int, coords ...gogeom.Coord) *gogeom.LineString {
	t.Helper()

	line, err := gogeom.NewLineString(gogeom.XY).SetCoords(coords)
	require.NoError(t, err)
	return line.SetSRID(srid)
}

func TestTransform(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	src := geom.NewLineCollection(
		[]geom.LineFeature{
			{ID: int64(1), Geom: testLine(t, 4326, gogeom.Coord{0, 0}, gogeom.Coord{1, 1})},
			{ID: int64(2), Geom: testLine(t, 4326, gogeom.Coord{1, 1}, gogeom.Coord{2, 2})},
		},
		"EPSG:4326",
		nil,
	)

	const query = "SELECT ST_AsText(ST_Transform(ST_GeomFromText($1, $2), $3))"
	for i, out := range []string{
		"LINESTRING(0 0, 111319.49 111325.14)",
		"LINESTRING(111319.49 111325.14, 222638.98 222684.21)",
	} {
		text, err := wkt.Marshal(src.Feature(i).Geom)
		require.NoError(t, err)

		mock.ExpectQuery(query).
			WithArgs(text, 4326, 3857).
			WillReturnRows(sqlmock.NewRows([]string{"st_astext"}).AddRow(out))
	}

	got, err := Transform(context.Background(), db, src, 3857)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, "EPSG:3857", got.GetCRS())
	require.Equal(t, 2, got.Len())

	// Order and identifiers are preserved.
	assert.Equal(t, int64(1), got.Feature(0).ID)
	assert.Equal(t, int64(2), got.Feature(1).ID)

	line, ok := got.Feature(0).Geom.(*gogeom.LineString)
	require.True(t, ok)
	assert.Equal(t, 3857, line.SRID())
	assert.InDelta(t, 111319.49, line.Coord(1).X(), 0.01)
}

func TestTransformQueryFailure(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	src := geom.NewLineCollection(
		[]geom.LineFeature{{ID: int64(1), Geom: testLine(t, 4326, gogeom.Coord{0, 0}, gogeom.Coord{1, 1})}},
		"EPSG:4326",
		nil,
	)

	mock.ExpectQuery("SELECT ST_AsText(ST_Transform(ST_GeomFromText($1, $2), $3))").
		WillReturnError(assert.AnError)

	_, err = Transform(context.Background(), db, src, 3857)
	assert.Error(t, err)
}

func TestTransformBadCRS(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	src := geom.NewLineCollection(nil, "WGS84", nil)

	_, err = Transform(context.Background(), db, src, 3857)
	assert.Error(t, err)
}
