package geo

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// ExtensionName is the Arrow extension name of WKB geometry columns.
const ExtensionName = "geoarrow.wkb"

// ExtensionType implements Arrow extension type for geospatial data.
// Geometries are stored as WKB (Well-Known Binary) in Binary columns.
// Compatible with DuckDB spatial extension and GeoParquet format.
type ExtensionType struct {
	arrow.ExtensionBase
}

// NewExtensionType creates a new geometry extension type.
func NewExtensionType() *ExtensionType {
	return &ExtensionType{
		ExtensionBase: arrow.ExtensionBase{
			Storage: arrow.BinaryTypes.Binary,
		},
	}
}

// ArrayType returns the Go type for geometry arrays.
func (g *ExtensionType) ArrayType() reflect.Type {
	return reflect.TypeOf((*array.Binary)(nil))
}

// ExtensionName returns the extension type identifier.
func (g *ExtensionType) ExtensionName() string {
	return ExtensionName
}

func (g *ExtensionType) String() string {
	return "extension<" + ExtensionName + ">"
}

// Serialize returns the extension metadata (empty for basic WKB).
func (g *ExtensionType) Serialize() string {
	return ""
}

// Deserialize creates a geometry extension type from metadata.
func (g *ExtensionType) Deserialize(storageType arrow.DataType, data string) (arrow.ExtensionType, error) {
	if !arrow.TypeEqual(storageType, arrow.BinaryTypes.Binary) &&
		!arrow.TypeEqual(storageType, arrow.BinaryTypes.LargeBinary) {
		return nil, fmt.Errorf("invalid storage type for geometry: %s (expected Binary or LargeBinary)", storageType)
	}
	return &ExtensionType{
		ExtensionBase: arrow.ExtensionBase{Storage: storageType},
	}, nil
}

// ExtensionEquals checks equality with another extension type.
func (g *ExtensionType) ExtensionEquals(other arrow.ExtensionType) bool {
	o, ok := other.(*ExtensionType)
	if !ok {
		return false
	}
	return arrow.TypeEqual(g.StorageType(), o.StorageType())
}

// Metadata is the CRS and encoding information of a geometry column,
// stored in Arrow field metadata as JSON.
type Metadata struct {
	CRS      *CRS   `json:"crs,omitempty"`
	Encoding string `json:"encoding,omitempty"`
	// GeometryTypes lists allowed geometry types (e.g., ["Point", "Polygon"]).
	// Empty means any.
	GeometryTypes []string `json:"geometry_types,omitempty"`
}

// CRS is a coordinate reference system in simplified PROJJSON form.
type CRS struct {
	ID   *CRSID `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// CRSID identifies a CRS (typically an EPSG code).
type CRSID struct {
	Authority string `json:"authority"`
	Code      int    `json:"code"`
}

// NewField creates an Arrow field with the geometry extension type and metadata.
func NewField(name string, nullable bool, srid int, geomType string) arrow.Field {
	ext := NewExtensionType()

	md := &Metadata{
		CRS:      &CRS{ID: &CRSID{Authority: "EPSG", Code: srid}},
		Encoding: "WKB",
	}
	if geomType != "" && geomType != "GEOMETRY" {
		md.GeometryTypes = []string{geomType}
	}
	mdJSON, _ := json.Marshal(md)

	return arrow.Field{
		Name:     name,
		Type:     ext,
		Nullable: nullable,
		Metadata: arrow.MetadataFrom(map[string]string{
			"ARROW:extension:name":     ExtensionName,
			"ARROW:extension:metadata": string(mdJSON),
			"srid":                     strconv.Itoa(srid),
			"geometry_type":            geomType,
		}),
	}
}

// IsGeometry reports whether dt is the geometry extension type, or a
// binary field tagged with the geometry extension name.
func IsGeometry(f arrow.Field) bool {
	if ext, ok := f.Type.(arrow.ExtensionType); ok && ext.ExtensionName() == ExtensionName {
		return true
	}
	name, ok := f.Metadata.GetValue("ARROW:extension:name")
	return ok && name == ExtensionName
}

func init() {
	_ = arrow.RegisterExtensionType(NewExtensionType())
}
