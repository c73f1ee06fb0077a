// Package gridnc writes EWH grid products as NetCDF-4 files for downstream
// rendering and GIS tooling.
package gridnc

import (
	"fmt"

	"github.com/fhs/go-netcdf/netcdf"
)

// Grid is the in-memory grid product handed to the writer: axis vectors in
// degrees and row-major values in meters, Values[i][j] at (Lat[i], Lon[j]).
type Grid struct {
	Lat    []float64
	Lon    []float64
	Values [][]float64

	// Attributes recorded on the data variable.
	Epoch1   string
	Epoch2   string
	RadiusKm float64
}

// Validate checks that the value matrix matches the axis vectors.
func (g *Grid) Validate() error {
	if len(g.Lat) == 0 || len(g.Lon) == 0 {
		return fmt.Errorf("grid axes must be non-empty")
	}
	if len(g.Values) != len(g.Lat) {
		return fmt.Errorf("grid has %d value rows for %d latitudes", len(g.Values), len(g.Lat))
	}
	for i, row := range g.Values {
		if len(row) != len(g.Lon) {
			return fmt.Errorf("grid row %d has %d values for %d longitudes", i, len(row), len(g.Lon))
		}
	}
	return nil
}

// WriteFile writes the grid to path as a NetCDF-4 file with lat/lon
// coordinate variables and an "ewh" data variable in meters.
func WriteFile(path string, g *Grid) error {
	if err := g.Validate(); err != nil {
		return fmt.Errorf("invalid grid: %w", err)
	}

	ds, err := netcdf.CreateFile(path, netcdf.CLOBBER|netcdf.NETCDF4)
	if err != nil {
		return fmt.Errorf("failed to create NetCDF file: %w", err)
	}
	defer func() { _ = ds.Close() }()

	latDim, err := ds.AddDim("lat", uint64(len(g.Lat)))
	if err != nil {
		return fmt.Errorf("failed to add lat dimension: %w", err)
	}
	lonDim, err := ds.AddDim("lon", uint64(len(g.Lon)))
	if err != nil {
		return fmt.Errorf("failed to add lon dimension: %w", err)
	}

	latVar, err := ds.AddVar("lat", netcdf.DOUBLE, []netcdf.Dim{latDim})
	if err != nil {
		return fmt.Errorf("failed to add lat variable: %w", err)
	}
	lonVar, err := ds.AddVar("lon", netcdf.DOUBLE, []netcdf.Dim{lonDim})
	if err != nil {
		return fmt.Errorf("failed to add lon variable: %w", err)
	}
	ewhVar, err := ds.AddVar("ewh", netcdf.DOUBLE, []netcdf.Dim{latDim, lonDim})
	if err != nil {
		return fmt.Errorf("failed to add ewh variable: %w", err)
	}

	writeAttrs(ewhVar, g)

	if err := ds.EndDef(); err != nil {
		return fmt.Errorf("failed to end define mode: %w", err)
	}

	if err := latVar.WriteFloat64s(g.Lat); err != nil {
		return fmt.Errorf("failed to write lat axis: %w", err)
	}
	if err := lonVar.WriteFloat64s(g.Lon); err != nil {
		return fmt.Errorf("failed to write lon axis: %w", err)
	}

	flat := make([]float64, 0, len(g.Lat)*len(g.Lon))
	for _, row := range g.Values {
		flat = append(flat, row...)
	}
	if err := ewhVar.WriteFloat64s(flat); err != nil {
		return fmt.Errorf("failed to write ewh values: %w", err)
	}

	return nil
}

// writeAttrs records units and provenance attributes. Attribute failures are
// ignored: the product is usable from the coordinate and data variables
// alone.
func writeAttrs(v netcdf.Var, g *Grid) {
	_ = v.Attr("units").WriteBytes([]byte("m"))
	_ = v.Attr("long_name").WriteBytes([]byte("equivalent water height"))
	if g.Epoch1 != "" && g.Epoch2 != "" {
		_ = v.Attr("epochs").WriteBytes([]byte(g.Epoch1 + " to " + g.Epoch2))
	}
	if g.RadiusKm > 0 {
		_ = v.Attr("gaussian_filter_radius_km").WriteFloat64s([]float64{g.RadiusKm})
	}
}
