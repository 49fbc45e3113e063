package maxent

import (
	"errors"
	"math"
	"testing"

	"github.com/happyhackingspace/maxent/sparse"
)

func mustLabels(t *testing.T, labels ...string) sparse.LabelSet[string] {
	t.Helper()
	s, err := sparse.NewLabelSet(labels...)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func probSum(c sparse.Counter[string]) float64 {
	var sum float64
	for _, v := range c {
		sum += math.Exp(v)
	}
	return sum
}

func TestLogProbabilitiesTwoLabels(t *testing.T) {
	labels := mustLabels(t, "A", "B")
	features := sparse.Vector[string]{"f1": 2.0}
	weights := sparse.Table[string, string]{
		"A": {"f1": 1.0},
		"B": {"f1": 0.0},
	}

	logProbs, err := LogProbabilities(features, weights, labels)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(logProbs["A"]-(-0.1269)) > 1e-4 {
		t.Errorf("A = %v, want ≈ -0.1269", logProbs["A"])
	}
	if math.Abs(logProbs["B"]-(-2.1269)) > 1e-4 {
		t.Errorf("B = %v, want ≈ -2.1269", logProbs["B"])
	}
	if p := math.Exp(logProbs["A"]); math.Abs(p-0.8808) > 1e-4 {
		t.Errorf("P(A) = %v, want ≈ 0.8808", p)
	}
}

func TestLogProbabilitiesZeroFeaturesUniform(t *testing.T) {
	labels := mustLabels(t, "A", "B", "C", "D")
	weights := sparse.Table[string, string]{
		"A": {"f1": 5.0, "f2": -3.0},
		"C": {"f3": 100.0},
	}
	want := math.Log(1.0 / 4.0)

	for _, features := range []sparse.Vector[string]{
		nil,
		{},
		{"f1": 0, "f2": 0, "f3": 0},
	} {
		logProbs, err := LogProbabilities(features, weights, labels)
		if err != nil {
			t.Fatal(err)
		}
		if len(logProbs) != 4 {
			t.Fatalf("got %d labels, want 4", len(logProbs))
		}
		for l, v := range logProbs {
			if math.Abs(v-want) > 1e-12 {
				t.Errorf("features %v: %s = %v, want %v", features, l, v, want)
			}
		}
	}
}

func TestLogProbabilitiesAbsentLabelIsZeroVector(t *testing.T) {
	labels := mustLabels(t, "A", "B")
	features := sparse.Vector[string]{"f1": 1.5, "f2": -2.0}

	withoutB := sparse.Table[string, string]{"A": {"f1": 0.7}}
	withZeroB := sparse.Table[string, string]{"A": {"f1": 0.7}, "B": {}}

	got, err := LogProbabilities(features, withoutB, labels)
	if err != nil {
		t.Fatal(err)
	}
	want, err := LogProbabilities(features, withZeroB, labels)
	if err != nil {
		t.Fatal(err)
	}
	for _, l := range []string{"A", "B"} {
		if math.Abs(got[l]-want[l]) > 1e-12 {
			t.Errorf("%s = %v, want %v", l, got[l], want[l])
		}
	}
	if _, ok := got["B"]; !ok {
		t.Error("label absent from weights must still be scored")
	}
}

func TestLogProbabilitiesNormalized(t *testing.T) {
	labels := mustLabels(t, "A", "B", "C")
	tests := []struct {
		name     string
		features sparse.Vector[string]
		weights  sparse.Table[string, string]
	}{
		{"small", sparse.Vector[string]{"x": 1, "y": 2}, sparse.Table[string, string]{"A": {"x": 0.1}, "B": {"y": -0.3}}},
		{"large positive", sparse.Vector[string]{"x": 100}, sparse.Table[string, string]{"A": {"x": 9}, "B": {"x": 8}, "C": {"x": 7.5}}},
		{"large negative", sparse.Vector[string]{"x": 100}, sparse.Table[string, string]{"A": {"x": -9}, "B": {"x": -8}, "C": {"x": -10}}},
		{"mixed", sparse.Vector[string]{"x": 3, "y": -4, "z": 0.5}, sparse.Table[string, string]{"A": {"x": 2, "z": 1}, "C": {"y": 1.25}}},
	}
	for _, tt := range tests {
		logProbs, err := LogProbabilities(tt.features, tt.weights, labels)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		for l, v := range logProbs {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Errorf("%s: %s is non-finite (%v)", tt.name, l, v)
			}
		}
		if sum := probSum(logProbs); math.Abs(sum-1) > 1e-9 {
			t.Errorf("%s: probabilities sum to %v, want 1", tt.name, sum)
		}
	}
}

func TestLogProbabilitiesShiftInvariant(t *testing.T) {
	labels := mustLabels(t, "A", "B", "C")
	features := sparse.Vector[string]{"x": 1.5, "y": -0.5, "bias": 1}
	weights := sparse.Table[string, string]{
		"A": {"x": 0.2, "y": 1.0},
		"B": {"x": -0.4},
		"C": {"y": 0.3},
	}
	base, err := LogProbabilities(features, weights, labels)
	if err != nil {
		t.Fatal(err)
	}

	for _, c := range []float64{-500, -1, 3, 700} {
		// The bias feature has count 1, so adding c to every label's bias
		// weight shifts every raw score by c.
		shifted := weights.Clone()
		for _, l := range labels.All() {
			shifted.Add(l, "bias", c)
		}
		got, err := LogProbabilities(features, shifted, labels)
		if err != nil {
			t.Fatal(err)
		}
		for _, l := range labels.All() {
			if math.Abs(got[l]-base[l]) > 1e-9 {
				t.Errorf("shift %v: %s = %v, want %v", c, l, got[l], base[l])
			}
		}
	}
}

func TestLogProbabilitiesDoesNotMutateInputs(t *testing.T) {
	labels := mustLabels(t, "A", "B")
	features := sparse.Vector[string]{"f1": 2.0}
	weights := sparse.Table[string, string]{"A": {"f1": 1.0}}

	if _, err := LogProbabilities(features, weights, labels); err != nil {
		t.Fatal(err)
	}
	if len(features) != 1 || features["f1"] != 2.0 {
		t.Errorf("features mutated: %v", features)
	}
	if len(weights) != 1 || len(weights["A"]) != 1 || weights["A"]["f1"] != 1.0 {
		t.Errorf("weights mutated: %v", weights)
	}
}

func TestLogProbabilitiesInvalidInput(t *testing.T) {
	labels := mustLabels(t, "A", "B")
	tests := []struct {
		name     string
		features sparse.Vector[string]
		weights  sparse.Table[string, string]
		labels   sparse.LabelSet[string]
	}{
		{"empty labels", sparse.Vector[string]{"f": 1}, nil, sparse.LabelSet[string]{}},
		{"nan feature", sparse.Vector[string]{"f": math.NaN()}, nil, labels},
		{"inf feature", sparse.Vector[string]{"f": math.Inf(-1)}, nil, labels},
		{"nan weight", sparse.Vector[string]{"f": 1}, sparse.Table[string, string]{"B": {"f": math.NaN()}}, labels},
		{"overflow", sparse.Vector[string]{"f": 1e200}, sparse.Table[string, string]{"A": {"f": 1e200}}, labels},
	}
	for _, tt := range tests {
		got, err := LogProbabilities(tt.features, tt.weights, tt.labels)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: error = %v, want ErrInvalidInput", tt.name, err)
		}
		if got != nil {
			t.Errorf("%s: expected no counter on error, got %v", tt.name, got)
		}
	}
}

func TestLogProbabilitiesIntegerKeys(t *testing.T) {
	labels, err := sparse.NewLabelSet(0, 1)
	if err != nil {
		t.Fatal(err)
	}
	weights := sparse.Table[int, int]{1: {42: math.Log(3)}}
	logProbs, err := LogProbabilities(sparse.Vector[int]{42: 1}, weights, labels)
	if err != nil {
		t.Fatal(err)
	}
	if p := math.Exp(logProbs[1]); math.Abs(p-0.75) > 1e-12 {
		t.Errorf("P(1) = %v, want 0.75", p)
	}
}
