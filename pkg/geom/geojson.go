package geom

import (
	"fmt"

	geojson "github.com/paulmach/go.geojson"
	gogeom "github.com/twpayne/go-geom"
)

// ToGeoJSON converts the collection to a GeoJSON FeatureCollection. Each
// feature carries its identifier and, when the collection has an attribute
// table, its attribute row as properties.
func (c *LineCollection) ToGeoJSON() (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()

	for _, lf := range c.features {
		var f *geojson.Feature

		switch g := lf.Geom.(type) {
		case *gogeom.LineString:
			f = geojson.NewLineStringFeature(lineCoords(g.Coords()))
		case *gogeom.MultiLineString:
			parts := make([][][]float64, g.NumLineStrings())
			for i := range parts {
				parts[i] = lineCoords(g.LineString(i).Coords())
			}
			f = geojson.NewMultiLineStringFeature(parts...)
		default:
			return nil, fmt.Errorf("feature %v is not a line geometry: %T", lf.ID, lf.Geom)
		}

		f.ID = lf.ID
		if c.attrs != nil {
			if row, ok := c.attrs.Row(lf.ID); ok {
				for k, v := range row {
					f.SetProperty(k, v)
				}
			}
		}

		fc.AddFeature(f)
	}

	return fc, nil
}

func lineCoords(coords []gogeom.Coord) [][]float64 {
	out := make([][]float64, len(coords))
	for i, c := range coords {
		out[i] = []float64{c.X(), c.Y()}
	}
	return out
}
