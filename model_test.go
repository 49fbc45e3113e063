package maxent

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/happyhackingspace/maxent/sparse"
)

func TestModelSaveLoad(t *testing.T) {
	model := NewModel("A", "B")
	model.Weights.Add("A", "f1", 1.0)
	model.Weights.Add("B", "f2", -0.5)

	path := filepath.Join(t.TempDir(), "model.json")
	if err := model.Save(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadModel(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(loaded.Labels) != 2 || loaded.Labels[0] != "A" || loaded.Labels[1] != "B" {
		t.Errorf("Labels = %v, want [A B]", loaded.Labels)
	}
	if loaded.Weights["A"]["f1"] != 1.0 || loaded.Weights["B"]["f2"] != -0.5 {
		t.Errorf("Weights mismatch: %v", loaded.Weights)
	}
}

func TestMarshalUnmarshalModel(t *testing.T) {
	model := NewModel("x", "y", "z")
	model.Weights.Add("z", "bias", 0.25)

	data, err := MarshalModel(model)
	if err != nil {
		t.Fatal(err)
	}
	loaded, err := UnmarshalModel(data)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Weights["z"]["bias"] != 0.25 {
		t.Errorf("bias weight = %v, want 0.25", loaded.Weights["z"]["bias"])
	}
}

func TestUnmarshalModelInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"labels": [`},
		{"duplicate labels", `{"labels": ["A", "A"], "weights": {}}`},
		{"wrong shape", `{"labels": ["A"], "weights": {"A": 1}}`},
	}
	for _, tt := range tests {
		if _, err := UnmarshalModel([]byte(tt.data)); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: error = %v, want ErrInvalidInput", tt.name, err)
		}
	}

	m, err := UnmarshalModel([]byte(`{"labels": ["A", "B"]}`))
	if err != nil {
		t.Fatal(err)
	}
	if m.Weights == nil {
		t.Error("missing weights should load as an empty table")
	}
}

func TestLoadModelNonExistent(t *testing.T) {
	if _, err := LoadModel(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for nonexistent model")
	}
}

func TestModelPredict(t *testing.T) {
	model := NewModel("spam", "ham")
	model.Weights.Add("spam", "w:free", 2.0)
	model.Weights.Add("ham", "w:meeting", 1.5)

	label, err := model.Predict(sparse.Vector[string]{"w:free": 1, "w:offer": 1})
	if err != nil {
		t.Fatal(err)
	}
	if label != "spam" {
		t.Errorf("Predict = %q, want spam", label)
	}

	logProbs, err := model.PredictProba(sparse.Vector[string]{"w:meeting": 2})
	if err != nil {
		t.Fatal(err)
	}
	want := math.Exp(3.0) / (math.Exp(3.0) + 1)
	if p := math.Exp(logProbs["ham"]); math.Abs(p-want) > 1e-12 {
		t.Errorf("P(ham) = %v, want %v", p, want)
	}

	empty := NewModel()
	if _, err := empty.Predict(sparse.Vector[string]{"x": 1}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestModelPredictTieGoesToFirstLabel(t *testing.T) {
	model := NewModel("ham", "spam", "eggs")
	model.Weights.Add("spam", "w:free", 2.0)

	for range 20 {
		label, err := model.Predict(sparse.Vector[string]{})
		if err != nil {
			t.Fatal(err)
		}
		if label != "ham" {
			t.Fatalf("Predict on zero features = %q, want ham", label)
		}
	}
}
