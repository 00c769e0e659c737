package classify

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/tsawler/databook/model"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// failingModel always errors, to exercise the fallback path.
type failingModel struct{}

func (failingModel) Predict([]float64) (int, error) {
	return 0, fmt.Errorf("model artifact corrupt")
}

// panickyScaler panics, to verify runtime failures are contained.
type panickyScaler struct{}

func (panickyScaler) Transform([]float64) ([]float64, error) {
	panic("shape mismatch")
}

func brokenArtifact() *Artifact {
	return &Artifact{
		Scaler: &StandardScaler{Mean: make([]float64, NumFeatures), Scale: ones(NumFeatures)},
		Model:  failingModel{},
		Labels: []string{"header", "data", "summary", "footnote"},
	}
}

func TestHybridClassifier_FallsBackPerRow(t *testing.T) {
	learned, err := NewLearnedClassifier(brokenArtifact(), DefaultConfig())
	if err != nil {
		t.Fatalf("NewLearnedClassifier() failed: %v", err)
	}
	rules := newTestRules(t)
	h := NewHybridClassifier(learned, rules, quietLogger())

	// Every row still gets a label from the rule path.
	if got := h.Classify([]string{"1998", "230", "310", "540"}, 1, 10); got != model.LabelData {
		t.Errorf("Classify() = %s, want data from fallback", got)
	}
	if got := h.Classify([]string{"TOTAL", "1200", "3400"}, 5, 10); got != model.LabelSummary {
		t.Errorf("Classify() = %s, want summary from fallback", got)
	}
	if got := h.Classify([]string{"Source: state wildlife agencies"}, 9, 10); got != model.LabelFootnote {
		t.Errorf("Classify() = %s, want footnote from fallback", got)
	}
}

func TestHybridClassifier_ContainsPanics(t *testing.T) {
	artifact := brokenArtifact()
	artifact.Scaler = panickyScaler{}

	learned, err := NewLearnedClassifier(artifact, DefaultConfig())
	if err != nil {
		t.Fatalf("NewLearnedClassifier() failed: %v", err)
	}
	h := NewHybridClassifier(learned, newTestRules(t), quietLogger())

	if got := h.Classify([]string{"Year", "Mallard"}, 0, 5); got != model.LabelHeader {
		t.Errorf("Classify() = %s, want header despite learned panic", got)
	}
}

func TestHybridClassifier_RulesOnlyWithoutArtifact(t *testing.T) {
	h := NewHybridClassifier(nil, newTestRules(t), quietLogger())

	if got := h.Classify([]string{"1998", "230"}, 2, 10); got != model.LabelData {
		t.Errorf("Classify() = %s, want data", got)
	}
}

func TestNewClassifier_MissingArtifactDegrades(t *testing.T) {
	h, err := NewClassifier(DefaultConfig(), "/nonexistent/model.json", quietLogger())
	if err != nil {
		t.Fatalf("NewClassifier() failed: %v", err)
	}
	if h.learned != nil {
		t.Error("missing artifact should leave the learned path nil")
	}

	if got := h.Classify([]string{"TOTAL", "99"}, 4, 5); got != model.LabelSummary {
		t.Errorf("Classify() = %s, want summary", got)
	}
}

func TestClassifyRows(t *testing.T) {
	rules := newTestRules(t)
	rows := [][]string{
		{"Year", "Mallard"},
		{"1998", "230"},
		{"Total", "230"},
	}

	labeled := ClassifyRows(rules, rows)
	if len(labeled) != 3 {
		t.Fatalf("ClassifyRows() = %d rows, want 3", len(labeled))
	}

	wantLabels := []model.Label{model.LabelHeader, model.LabelData, model.LabelSummary}
	for i, lr := range labeled {
		if lr.Label != wantLabels[i] {
			t.Errorf("row %d label = %s, want %s", i, lr.Label, wantLabels[i])
		}
		if lr.RowIndex != i || lr.TotalRows != 3 {
			t.Errorf("row %d position = %d/%d, want %d/3", i, lr.RowIndex, lr.TotalRows, i)
		}
	}
}
