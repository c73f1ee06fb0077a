// Package gfc parses ICGEM-style spherical-harmonic gravity-field
// coefficient files (.gfc) into domain coefficient sets.
package gfc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.ngs.io/ewh-api/internal/domain"
)

// Line grammar. Metadata lines are "<key> <value>"; only the keys carrying
// GM and the reference radius are load-bearing, everything else is ignored.
// Data lines are "gfc l m C S [sigma_C sigma_S ...]" with trailing fields
// ignored. Line order carries no meaning.
const (
	dataTag   = "gfc"
	gmKey     = "earth_gravity_constant"
	radiusKey = "radius"
)

// ParseError reports a malformed or incomplete coefficient file. Line is
// 1-based and zero when the error concerns the file as a whole (e.g. a
// missing constant).
type ParseError struct {
	File string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Msg)
}

type dataRecord struct {
	l, m int
	c, s float64
}

// Parse reads a coefficient file from r. The stream is read to exhaustion;
// maxDegree is the highest degree encountered among the data lines.
// Duplicate (l,m) entries overwrite earlier ones. name labels the source in
// errors (typically the file path).
func Parse(r io.Reader, name string) (*domain.CoefficientSet, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	records := make([]dataRecord, 0, 4096)
	var gm, radius float64
	var gmFound, radiusFound bool

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if fields[0] == dataTag {
			rec, err := parseDataLine(fields, name, lineNo)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
			continue
		}

		// Metadata line: tag followed by its value.
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case gmKey:
			v, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, &ParseError{File: name, Line: lineNo, Msg: fmt.Sprintf("non-numeric %s value %q", gmKey, fields[1])}
			}
			gm = v
			gmFound = true
		case radiusKey:
			v, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, &ParseError{File: name, Line: lineNo, Msg: fmt.Sprintf("non-numeric %s value %q", radiusKey, fields[1])}
			}
			radius = v
			radiusFound = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	if len(records) == 0 {
		return nil, &ParseError{File: name, Msg: "no coefficient data lines found"}
	}
	if !gmFound {
		return nil, &ParseError{File: name, Msg: fmt.Sprintf("metadata key %q never declared", gmKey)}
	}
	if !radiusFound {
		return nil, &ParseError{File: name, Msg: fmt.Sprintf("metadata key %q never declared", radiusKey)}
	}

	maxDegree := 0
	for _, rec := range records {
		if rec.l > maxDegree {
			maxDegree = rec.l
		}
	}

	cs := domain.NewCoefficientSet(maxDegree)
	cs.GM = gm
	cs.R = radius
	for _, rec := range records {
		cs.C[rec.l][rec.m] = rec.c
		cs.S[rec.l][rec.m] = rec.s
	}
	return cs, nil
}

func parseDataLine(fields []string, name string, lineNo int) (dataRecord, error) {
	if len(fields) < 5 {
		return dataRecord{}, &ParseError{File: name, Line: lineNo, Msg: fmt.Sprintf("data line has %d fields, want at least 5 (tag l m C S)", len(fields))}
	}

	l, err := strconv.Atoi(fields[1])
	if err != nil {
		return dataRecord{}, &ParseError{File: name, Line: lineNo, Msg: fmt.Sprintf("non-numeric degree %q", fields[1])}
	}
	m, err := strconv.Atoi(fields[2])
	if err != nil {
		return dataRecord{}, &ParseError{File: name, Line: lineNo, Msg: fmt.Sprintf("non-numeric order %q", fields[2])}
	}
	if l < 0 || m < 0 || m > l {
		return dataRecord{}, &ParseError{File: name, Line: lineNo, Msg: fmt.Sprintf("degree/order (%d,%d) violates 0<=m<=l", l, m)}
	}

	c, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return dataRecord{}, &ParseError{File: name, Line: lineNo, Msg: fmt.Sprintf("non-numeric C coefficient %q", fields[3])}
	}
	s, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return dataRecord{}, &ParseError{File: name, Line: lineNo, Msg: fmt.Sprintf("non-numeric S coefficient %q", fields[4])}
	}

	return dataRecord{l: l, m: m, c: c, s: s}, nil
}

// ParseFile opens and parses path.
func ParseFile(path string) (*domain.CoefficientSet, error) {
	//nolint:gosec // G304: Path comes from configuration or an operator flag.
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open coefficient file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f, path)
}
