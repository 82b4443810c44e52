package projection

import (
	"context"
	"database/sql"
	"fmt"

	gogeom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"

	"pglines/pkg/geom"
)

// Transform reprojects a line collection to a target SRID through the
// supplied PostGIS connection, one ST_Transform round-trip per feature.
// Feature order, identifiers and the attribute table are preserved; only
// the coordinates and the CRS change.
func Transform(ctx context.Context, db *sql.DB, obj *geom.LineCollection, targetSRID int) (*geom.LineCollection, error) {
	srcSRID, err := geom.SRIDFromCRS(obj.GetCRS())
	if err != nil {
		return nil, err
	}

	const query = "SELECT ST_AsText(ST_Transform(ST_GeomFromText($1, $2), $3))"

	features := make([]geom.LineFeature, 0, obj.Len())
	for _, lf := range obj.Features() {
		text, err := wkt.Marshal(lf.Geom)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize feature %v: %w", lf.ID, err)
		}

		var transformed string
		if err := db.QueryRowContext(ctx, query, text, srcSRID, targetSRID).Scan(&transformed); err != nil {
			return nil, fmt.Errorf("failed to transform feature %v: %w", lf.ID, err)
		}

		g, err := wkt.Unmarshal(transformed)
		if err != nil {
			return nil, fmt.Errorf("failed to parse transformed feature %v: %w", lf.ID, err)
		}

		switch line := g.(type) {
		case *gogeom.LineString:
			g = line.SetSRID(targetSRID)
		case *gogeom.MultiLineString:
			g = line.SetSRID(targetSRID)
		default:
			return nil, fmt.Errorf("feature %v transformed to unexpected geometry type %T", lf.ID, g)
		}

		features = append(features, geom.LineFeature{ID: lf.ID, Geom: g})
	}

	return geom.NewLineCollection(features, geom.CRSFromSRID(targetSRID), obj.Attrs()), nil
}
