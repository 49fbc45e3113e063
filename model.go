package maxent

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/happyhackingspace/maxent/sparse"
)

// Model is a string-keyed log-linear model: a label list and one sparse
// weight row per label.
type Model struct {
	Labels  []string                     `json:"labels"`
	Weights sparse.Table[string, string] `json:"weights"`
}

// NewModel creates a model with the given labels and no weights.
func NewModel(labels ...string) *Model {
	return &Model{
		Labels:  labels,
		Weights: make(sparse.Table[string, string]),
	}
}

// LabelSet returns the model's labels as a set.
func (m *Model) LabelSet() (sparse.LabelSet[string], error) {
	labels, err := sparse.NewLabelSet(m.Labels...)
	if err != nil {
		return labels, fmt.Errorf("maxent: %w: %v", ErrInvalidInput, err)
	}
	return labels, nil
}

// PredictProba returns log-probabilities for every model label.
func (m *Model) PredictProba(features sparse.Vector[string]) (sparse.Counter[string], error) {
	labels, err := m.LabelSet()
	if err != nil {
		return nil, err
	}
	return LogProbabilities(features, m.Weights, labels)
}

// Predict returns the most probable label. Ties go to the label listed
// first in the model.
func (m *Model) Predict(features sparse.Vector[string]) (string, error) {
	labels, err := m.LabelSet()
	if err != nil {
		return "", err
	}
	logProbs, err := LogProbabilities(features, m.Weights, labels)
	if err != nil {
		return "", err
	}
	best, _, _ := logProbs.ArgMaxIn(labels)
	return best, nil
}

// Save writes the model to path as indented JSON.
func (m *Model) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("maxent: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("maxent: %w", err)
	}
	return nil
}

// LoadModel reads a model written by Save.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("maxent: %w", err)
	}
	return UnmarshalModel(data)
}

// MarshalModel serializes the model to JSON bytes.
func MarshalModel(m *Model) ([]byte, error) {
	return json.Marshal(m)
}

// UnmarshalModel deserializes and validates a model.
func UnmarshalModel(data []byte) (*Model, error) {
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("maxent: %w: %v", ErrInvalidInput, err)
	}
	if _, err := m.LabelSet(); err != nil {
		return nil, err
	}
	if err := m.Weights.Validate(); err != nil {
		return nil, fmt.Errorf("maxent: %w: weights: %v", ErrInvalidInput, err)
	}
	if m.Weights == nil {
		m.Weights = make(sparse.Table[string, string])
	}
	return &m, nil
}
