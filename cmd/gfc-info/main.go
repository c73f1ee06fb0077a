// Command gfc-info prints the metadata of a gravity-field solution file.
package main

import (
	"flag"
	"fmt"
	"log"

	"go.ngs.io/ewh-api/internal/adapter/store/gfc"
)

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		log.Fatal("usage: gfc-info <file.gfc> [...]")
	}

	for _, path := range flag.Args() {
		cs, err := gfc.ParseFile(path)
		if err != nil {
			log.Fatalf("Failed to parse %s: %v", path, err)
		}

		nCoeffs := (cs.MaxDegree + 1) * (cs.MaxDegree + 2) / 2
		fmt.Printf("%s\n", path)
		fmt.Printf("  epoch:        %s\n", gfc.EpochLabel(path))
		fmt.Printf("  max degree:   %d (%d coefficient pairs)\n", cs.MaxDegree, nCoeffs)
		fmt.Printf("  GM:           %.6e m^3/s^2\n", cs.GM)
		fmt.Printf("  radius:       %.3f m\n", cs.R)
	}
}
