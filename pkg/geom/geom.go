package geom

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
)

type GeometryType string

const (
	LINES GeometryType = "lines"
)

type Geometry interface {
	GetCRS() string
	GetRecords() []arrow.RecordBatch
	GetGeometryType() GeometryType
	Release()
	GetAttributes() map[string]any
}

// CRSFromSRID formats an EPSG SRID code as a CRS string.
func CRSFromSRID(srid int) string {
	return fmt.Sprintf("EPSG:%d", srid)
}

// SRIDFromCRS parses the SRID code out of an "EPSG:<code>" CRS string.
func SRIDFromCRS(crs string) (int, error) {
	code, ok := strings.CutPrefix(crs, "EPSG:")
	if !ok {
		return 0, fmt.Errorf("CRS %q is not an EPSG code", crs)
	}

	srid, err := strconv.Atoi(code)
	if err != nil {
		return 0, fmt.Errorf("CRS %q has a non-numeric SRID: %v", crs, err)
	}

	return srid, nil
}
