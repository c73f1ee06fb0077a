package gfc

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"go.ngs.io/ewh-api/internal/domain"
)

// Write emits cs in the same textual format Parse reads: the two
// load-bearing metadata keys followed by one data line per (l,m) pair.
// Parsing the output yields an identical set of (l,m,C,S) triples.
func Write(w io.Writer, cs *domain.CoefficientSet) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%-24s %.10e\n", gmKey, cs.GM)
	fmt.Fprintf(bw, "%-24s %.10e\n", radiusKey, cs.R)
	fmt.Fprintf(bw, "%-24s %d\n", "max_degree", cs.MaxDegree)
	fmt.Fprintln(bw, "end_of_head")

	for l := 0; l <= cs.MaxDegree; l++ {
		for m := 0; m <= l; m++ {
			// 17 significant digits round-trip any float64 exactly.
			fmt.Fprintf(bw, "%s %4d %4d %+.16e %+.16e\n", dataTag, l, m, cs.C[l][m], cs.S[l][m])
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing coefficient set: %w", err)
	}
	return nil
}

// WriteFile writes cs to path, replacing any existing file.
func WriteFile(path string, cs *domain.CoefficientSet) error {
	//nolint:gosec // G306: Grid products are world-readable data files.
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create coefficient file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Write(f, cs)
}
