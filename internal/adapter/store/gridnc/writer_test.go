package gridnc

import (
	"path/filepath"
	"testing"

	"github.com/fhs/go-netcdf/netcdf"
)

func testGrid() *Grid {
	return &Grid{
		Lat:    []float64{60, 61, 62},
		Lon:    []float64{-45, -44},
		Values: [][]float64{{0.01, 0.02}, {0.03, 0.04}, {0.05, 0.06}},
		Epoch1: "2002-05",
		Epoch2: "2017-05",

		RadiusKm: 300,
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ewh.nc")
	if err := WriteFile(path, testGrid()); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	ds, err := netcdf.OpenFile(path, netcdf.NOWRITE)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer func() { _ = ds.Close() }()

	latVar, err := ds.Var("lat")
	if err != nil {
		t.Fatalf("Var(lat): %v", err)
	}
	lat := make([]float64, 3)
	if err := latVar.ReadFloat64s(lat); err != nil {
		t.Fatalf("ReadFloat64s(lat): %v", err)
	}
	if lat[0] != 60 || lat[2] != 62 {
		t.Errorf("lat = %v", lat)
	}

	ewhVar, err := ds.Var("ewh")
	if err != nil {
		t.Fatalf("Var(ewh): %v", err)
	}
	ewh := make([]float64, 6)
	if err := ewhVar.ReadFloat64s(ewh); err != nil {
		t.Fatalf("ReadFloat64s(ewh): %v", err)
	}
	// Row-major: Values[i][j] at index i*len(Lon)+j.
	if ewh[0] != 0.01 || ewh[3] != 0.04 || ewh[5] != 0.06 {
		t.Errorf("ewh = %v", ewh)
	}
}

func TestGrid_Validate(t *testing.T) {
	g := testGrid()
	g.Values = g.Values[:2]
	if err := g.Validate(); err == nil {
		t.Error("Validate accepted a row count mismatch")
	}

	g = testGrid()
	g.Values[1] = []float64{1}
	if err := g.Validate(); err == nil {
		t.Error("Validate accepted a column count mismatch")
	}

	g = testGrid()
	g.Lat = nil
	if err := g.Validate(); err == nil {
		t.Error("Validate accepted an empty axis")
	}

	if err := WriteFile(filepath.Join(t.TempDir(), "bad.nc"), g); err == nil {
		t.Error("WriteFile accepted an invalid grid")
	}
}
