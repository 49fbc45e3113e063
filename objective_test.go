package maxent

import (
	"errors"
	"math"
	"testing"

	"github.com/happyhackingspace/maxent/sparse"
)

func TestEmpiricalCounts(t *testing.T) {
	labels := mustLabels(t, "A", "B", "C")
	dataset := Dataset[string, string]{
		{Label: "A", Features: sparse.Vector[string]{"f1": 2.0}},
		{Label: "A", Features: sparse.Vector[string]{"f1": 1.0, "f2": 1.0}},
		{Label: "B", Features: sparse.Vector[string]{"f2": 3.0}},
	}

	counts, err := EmpiricalCounts(dataset, labels)
	if err != nil {
		t.Fatal(err)
	}
	want := sparse.Table[string, string]{
		"A": {"f1": 3.0, "f2": 1.0},
		"B": {"f2": 3.0},
		"C": {},
	}
	assertTablesClose(t, counts, want, 0)
	if _, ok := counts["C"]; !ok {
		t.Error("expected a row for label C")
	}
}

func TestEmpiricalCountsUnknownLabel(t *testing.T) {
	labels := mustLabels(t, "A")
	dataset := Dataset[string, string]{{Label: "B", Features: sparse.Vector[string]{"f": 1}}}
	if _, err := EmpiricalCounts(dataset, labels); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestGradientAtOptimumOfSingleFeature(t *testing.T) {
	labels := mustLabels(t, "A", "B")
	dataset := Dataset[string, string]{
		{Label: "A", Features: sparse.Vector[string]{"f": 1}},
		{Label: "A", Features: sparse.Vector[string]{"f": 1}},
		{Label: "A", Features: sparse.Vector[string]{"f": 1}},
		{Label: "B", Features: sparse.Vector[string]{"f": 1}},
	}
	// P(A) = 3/4 matches the empirical rate, so the gradient vanishes.
	weights := sparse.Table[string, string]{"A": {"f": math.Log(3)}}
	dists := scoreAll(t, dataset, weights, labels)

	expected := make(sparse.Table[string, string])
	if err := AccumulateExpectedCounts(dataset, labels, dists, expected); err != nil {
		t.Fatal(err)
	}
	empirical, err := EmpiricalCounts(dataset, labels)
	if err != nil {
		t.Fatal(err)
	}

	grad := Gradient(expected, empirical)
	for l, row := range grad {
		for f, g := range row {
			if math.Abs(g) > 1e-12 {
				t.Errorf("gradient[%s][%s] = %v, want 0", l, f, g)
			}
		}
	}
	if math.Abs(expected["A"]["f"]-3) > 1e-12 {
		t.Errorf("expected[A][f] = %v, want 3", expected["A"]["f"])
	}
}

func TestLogLikelihood(t *testing.T) {
	dataset := Dataset[string, string]{
		{Label: "A", Features: sparse.Vector[string]{}},
		{Label: "B", Features: sparse.Vector[string]{}},
	}
	dists := []sparse.Counter[string]{
		{"A": math.Log(0.8), "B": math.Log(0.2)},
		{"A": math.Log(0.4), "B": math.Log(0.6)},
	}

	ll, err := LogLikelihood(dataset, dists)
	if err != nil {
		t.Fatal(err)
	}
	if want := math.Log(0.8) + math.Log(0.6); math.Abs(ll-want) > 1e-12 {
		t.Errorf("LogLikelihood = %v, want %v", ll, want)
	}

	if _, err := LogLikelihood(dataset, dists[:1]); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("error = %v, want ErrLengthMismatch", err)
	}
	delete(dists[1], "B")
	if _, err := LogLikelihood(dataset, dists); !errors.Is(err, ErrMissingLabelProbability) {
		t.Errorf("error = %v, want ErrMissingLabelProbability", err)
	}
	dists[1]["B"] = math.Inf(1)
	if _, err := LogLikelihood(dataset, dists); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}
