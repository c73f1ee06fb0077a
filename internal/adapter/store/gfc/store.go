package gfc

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"go.ngs.io/ewh-api/internal/domain"
)

// SolutionStore provides access to the gravity-field solution files of one
// data directory.
type SolutionStore struct {
	dataDir string
}

// Solution describes one available gravity-field solution file.
type Solution struct {
	Name  string // File name within the data directory.
	Epoch string // Display label, e.g. "2002-05".
}

// NewSolutionStore creates a store over dataDir.
func NewSolutionStore(dataDir string) *SolutionStore {
	return &SolutionStore{dataDir: dataDir}
}

// List returns the available solutions sorted by name.
func (s *SolutionStore) List() ([]Solution, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	solutions := make([]Solution, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".gfc") {
			continue
		}
		solutions = append(solutions, Solution{Name: name, Epoch: EpochLabel(name)})
	}

	sort.Slice(solutions, func(i, j int) bool { return solutions[i].Name < solutions[j].Name })
	return solutions, nil
}

// Load parses the named solution file. name must be a bare file name; path
// separators are rejected so the store cannot be walked out of its
// directory.
func (s *SolutionStore) Load(name string) (*domain.CoefficientSet, error) {
	if name == "" {
		return nil, fmt.Errorf("solution name is empty")
	}
	if filepath.Base(name) != name {
		return nil, fmt.Errorf("solution name %q must not contain path separators", name)
	}
	return ParseFile(filepath.Join(s.dataDir, name))
}

// epochPattern matches a YYYY-MM stamp as used in monthly solution file
// names (e.g. ITSG-Grace2016_n120_2002-05.gfc).
var epochPattern = regexp.MustCompile(`\d{4}-\d{2}`)

// EpochLabel derives a display label for a solution file name: the first
// YYYY-MM substring, or the base name without extension when no stamp is
// present.
func EpochLabel(name string) string {
	base := filepath.Base(name)
	if m := epochPattern.FindString(base); m != "" {
		return m
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
