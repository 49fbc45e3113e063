// Package features turns raw observations (counts, attribute dicts, text,
// HTML and URLs) into sparse feature vectors keyed by string.
package features

import (
	"fmt"
	"strings"

	"github.com/happyhackingspace/maxent/sparse"
)

// Feature key prefixes.
const (
	prefixWord   = "w:"
	prefixChar   = "c:"
	prefixHTML   = "html:"
	prefixTag    = "tag="
	prefixInput  = "input="
	prefixMethod = "method="
	prefixDomain = "domain="
	prefixPath   = "path:"
)

// BiasFeature is the constant feature added when Config.Bias is set. The
// underscores keep it apart from keys supplied through Input.Counts.
const BiasFeature = "__bias__"

// Input is one raw observation. Every non-empty field contributes features.
type Input struct {
	Counts     map[string]float64 // copied verbatim
	Attributes map[string]any     // see FeaturesToAttributes
	Text       string
	HTML       string
	URL        string
}

// Config controls text analysis.
type Config struct {
	NgramRange [2]int
	Analyzer   string // "word" or "char_wb"
	Binary     bool   // count each text feature at most once
	Lowercase  bool
	Bias       bool // add a constant bias feature
}

// DefaultConfig returns unigram, lowercased word features with a bias.
func DefaultConfig() Config {
	return Config{
		NgramRange: [2]int{1, 1},
		Analyzer:   "word",
		Lowercase:  true,
		Bias:       true,
	}
}

// Extractor converts Inputs to feature vectors.
type Extractor struct {
	Config Config
}

// NewExtractor creates an extractor, filling in defaults for an invalid
// n-gram range or an unknown analyzer.
func NewExtractor(config Config) *Extractor {
	if config.NgramRange[0] < 1 {
		config.NgramRange[0] = 1
	}
	if config.NgramRange[1] < config.NgramRange[0] {
		config.NgramRange[1] = config.NgramRange[0]
	}
	if config.Analyzer != "char_wb" {
		config.Analyzer = "word"
	}
	return &Extractor{Config: config}
}

// Extract builds the feature vector for in.
func (e *Extractor) Extract(in Input) (sparse.Vector[string], error) {
	v := make(sparse.Vector[string])

	for k, val := range in.Counts {
		v.Add(k, val)
	}
	for k, val := range FeaturesToAttributes(in.Attributes) {
		v.Add(k, val)
	}
	if in.Text != "" {
		e.addText(v, in.Text)
	}
	if in.HTML != "" {
		if err := e.addHTML(v, in.HTML); err != nil {
			return nil, err
		}
	}
	if in.URL != "" {
		addURL(v, in.URL)
	}
	if e.Config.Bias {
		v[BiasFeature] = 1
	}

	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("features: %w", err)
	}
	return v, nil
}

// terms runs the configured analyzer over text.
func (e *Extractor) terms(text string) []string {
	if e.Config.Lowercase {
		text = strings.ToLower(text)
	}
	tokens := Tokenize(text)
	minN, maxN := e.Config.NgramRange[0], e.Config.NgramRange[1]
	if e.Config.Analyzer == "char_wb" {
		return CharNgrams(tokens, minN, maxN)
	}
	return TokenNgrams(tokens, minN, maxN)
}

func (e *Extractor) addText(v sparse.Vector[string], text string) {
	prefix := prefixWord
	if e.Config.Analyzer == "char_wb" {
		prefix = prefixChar
	}
	e.addTerms(v, prefix, e.terms(text))
}

func (e *Extractor) addTerms(v sparse.Vector[string], prefix string, terms []string) {
	for _, term := range terms {
		key := prefix + term
		if e.Config.Binary {
			v[key] = 1
		} else {
			v.Add(key, 1)
		}
	}
}
