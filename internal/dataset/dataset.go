// Package dataset reads labeled observations from JSON-lines files.
//
// Each non-blank line holds one observation:
//
//	{"label": "spam", "features": {"f1": 2}, "attributes": {"lang": "en"},
//	 "text": "...", "html": "...", "url": "..."}
//
// Only "label" is required; every other field feeds the feature extractor.
package dataset

import (
	"bufio"
	"bytes"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/happyhackingspace/maxent"
	"github.com/happyhackingspace/maxent/internal/features"
)

// ErrMalformed reports a line that is not a valid observation.
var ErrMalformed = errors.New("malformed observation")

// Record is the on-disk form of one observation.
type Record struct {
	Label      string             `json:"label"`
	Features   map[string]float64 `json:"features,omitempty"`
	Attributes map[string]any     `json:"attributes,omitempty"`
	Text       string             `json:"text,omitempty"`
	HTML       string             `json:"html,omitempty"`
	URL        string             `json:"url,omitempty"`
}

// Options controls loading behavior.
type Options struct {
	DropDuplicates bool // skip lines identical to an earlier line
	SkipMalformed  bool // log and skip bad lines instead of failing
}

// DefaultOptions returns the default loading options.
func DefaultOptions() Options {
	return Options{
		DropDuplicates: false,
		SkipMalformed:  false,
	}
}

// Loader reads a dataset file and extracts features for each record.
type Loader struct {
	Path      string
	Extractor *features.Extractor
	Options   Options
}

// NewLoader creates a Loader with default options.
func NewLoader(path string, extractor *features.Extractor) *Loader {
	return &Loader{
		Path:      path,
		Extractor: extractor,
		Options:   DefaultOptions(),
	}
}

// Load reads the loader's file.
func (l *Loader) Load() (maxent.Dataset[string, string], error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer func() { _ = f.Close() }()
	return l.Read(f)
}

// Read parses observations from r in order.
func (l *Loader) Read(r io.Reader) (maxent.Dataset[string, string], error) {
	extractor := l.Extractor
	if extractor == nil {
		extractor = features.NewExtractor(features.DefaultConfig())
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	seen := make(map[[md5.Size]byte]bool)
	var data maxent.Dataset[string, string]
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		if l.Options.DropDuplicates {
			hash := md5.Sum(line)
			if seen[hash] {
				slog.Debug("Dropping duplicate observation", "line", lineNo)
				continue
			}
			seen[hash] = true
		}

		obs, err := parseLine(line, extractor)
		if err != nil {
			if l.Options.SkipMalformed {
				slog.Warn("Skipping malformed observation", "line", lineNo, "error", err)
				continue
			}
			return nil, fmt.Errorf("dataset: line %d: %w", lineNo, err)
		}
		data = append(data, obs)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}

	slog.Debug("Loaded dataset", "path", l.Path, "observations", len(data))
	return data, nil
}

func parseLine(line []byte, extractor *features.Extractor) (maxent.Observation[string, string], error) {
	var rec Record
	if err := json.Unmarshal(line, &rec); err != nil {
		return maxent.Observation[string, string]{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if rec.Label == "" {
		return maxent.Observation[string, string]{}, fmt.Errorf("%w: missing label", ErrMalformed)
	}
	vec, err := extractor.Extract(features.Input{
		Counts:     rec.Features,
		Attributes: rec.Attributes,
		Text:       rec.Text,
		HTML:       rec.HTML,
		URL:        rec.URL,
	})
	if err != nil {
		return maxent.Observation[string, string]{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return maxent.Observation[string, string]{Label: rec.Label, Features: vec}, nil
}

// Labels returns the distinct gold labels of data, sorted.
func Labels(data maxent.Dataset[string, string]) []string {
	set := make(map[string]bool)
	for _, obs := range data {
		set[obs.Label] = true
	}
	labels := make([]string, 0, len(set))
	for l := range set {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}
