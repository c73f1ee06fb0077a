// Command ewh-grid computes an EWH grid between two gravity-field solution
// files and writes it as NetCDF and/or CSV.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"go.ngs.io/ewh-api/internal/adapter/store/gfc"
	"go.ngs.io/ewh-api/internal/adapter/store/gridnc"
	"go.ngs.io/ewh-api/internal/domain"
	"go.ngs.io/ewh-api/internal/usecase"
)

func main() {
	// Command line flags.
	file1 := flag.String("file1", "", "Path to the earlier .gfc solution file (required)")
	file2 := flag.String("file2", "", "Path to the later .gfc solution file (required)")
	latMin := flag.Float64("lat-min", 60.0, "Minimum latitude (degrees)")
	latMax := flag.Float64("lat-max", 84.0, "Maximum latitude (degrees)")
	lonMin := flag.Float64("lon-min", -75.0, "Minimum longitude (degrees)")
	lonMax := flag.Float64("lon-max", -10.0, "Maximum longitude (degrees)")
	step := flag.Float64("step", 1.0, "Grid step in degrees")
	radiusKm := flag.Float64("radius", 300.0, "Gaussian filter radius in km (0 disables filtering)")
	maxDegree := flag.Int("max-degree", 0, "Truncate solutions to this degree (0 keeps full resolution)")
	minDegree := flag.Int("min-degree", 2, "Lowest degree contributing to the sum")
	earthDensity := flag.Float64("earth-density", domain.DefaultEarthDensity, "Earth bulk density (kg/m^3)")
	waterDensity := flag.Float64("water-density", domain.DefaultWaterDensity, "Water density (kg/m^3)")
	useLove := flag.Bool("love", false, "Apply PREM load Love numbers")
	ncOut := flag.String("out", "ewh.nc", "Output NetCDF file (empty to skip)")
	csvOut := flag.String("csv", "", "Optional output CSV file")

	flag.Parse()

	if *file1 == "" || *file2 == "" {
		flag.Usage()
		log.Fatal("both -file1 and -file2 are required")
	}
	if *ncOut == "" && *csvOut == "" {
		log.Fatal("nothing to do: both -out and -csv are empty")
	}

	set1, err := gfc.ParseFile(*file1)
	if err != nil {
		log.Fatalf("Failed to parse %s: %v", *file1, err)
	}
	log.Printf("Loaded %s: max degree %d, epoch %s", *file1, set1.MaxDegree, gfc.EpochLabel(*file1))

	set2, err := gfc.ParseFile(*file2)
	if err != nil {
		log.Fatalf("Failed to parse %s: %v", *file2, err)
	}
	log.Printf("Loaded %s: max degree %d, epoch %s", *file2, set2.MaxDegree, gfc.EpochLabel(*file2))

	req := usecase.GridRequest{
		Solution1:      *file1,
		Solution2:      *file2,
		LatMin:         *latMin,
		LatMax:         *latMax,
		LonMin:         *lonMin,
		LonMax:         *lonMax,
		StepDeg:        *step,
		RadiusKm:       *radiusKm,
		MaxDegree:      *maxDegree,
		MinDegree:      *minDegree,
		EarthDensity:   *earthDensity,
		WaterDensity:   *waterDensity,
		UseLoveNumbers: *useLove,
	}
	if err := req.Validate(); err != nil {
		log.Fatalf("Invalid parameters: %v", err)
	}

	resp, err := usecase.EvaluateGrid(set1, set2, req)
	if err != nil {
		log.Fatalf("Grid evaluation failed: %v", err)
	}
	resp.Epoch1 = gfc.EpochLabel(*file1)
	resp.Epoch2 = gfc.EpochLabel(*file2)
	log.Printf("Evaluated %dx%d grid (max degree %d)", len(resp.Lat), len(resp.Lon), resp.MaxDegree)
	if d, ok := resp.Meta["filter_fallback_degree"]; ok {
		log.Printf("Note: Gaussian filter used the closed form from degree %s", d)
	}

	if *ncOut != "" {
		grid := &gridnc.Grid{
			Lat:      resp.Lat,
			Lon:      resp.Lon,
			Values:   resp.Values,
			Epoch1:   resp.Epoch1,
			Epoch2:   resp.Epoch2,
			RadiusKm: resp.RadiusKm,
		}
		if err := gridnc.WriteFile(*ncOut, grid); err != nil {
			log.Fatalf("Failed to write NetCDF: %v", err)
		}
		log.Printf("Wrote %s", *ncOut)
	}

	if *csvOut != "" {
		if err := writeCSV(*csvOut, resp); err != nil {
			log.Fatalf("Failed to write CSV: %v", err)
		}
		log.Printf("Wrote %s", *csvOut)
	}
}

// writeCSV writes one row per grid point: lat, lon, ewh_m.
func writeCSV(path string, resp *usecase.GridResponse) error {
	//nolint:gosec // G304: Path comes from an operator flag.
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"lat", "lon", "ewh_m"}); err != nil {
		return err
	}
	for i, lat := range resp.Lat {
		for j, lon := range resp.Lon {
			rec := []string{
				strconv.FormatFloat(lat, 'f', -1, 64),
				strconv.FormatFloat(lon, 'f', -1, 64),
				strconv.FormatFloat(resp.Values[i][j], 'e', 6, 64),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}
