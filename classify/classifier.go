package classify

import (
	"log/slog"

	"github.com/tsawler/databook/model"
)

// Classifier labels one row given its position within the table. A
// Classifier is total: it always returns a label.
type Classifier interface {
	Classify(cells []string, rowIndex, totalRows int) model.Label
}

// HybridClassifier tries the learned classifier first and degrades to the
// rule-based classifier when the learned path fails. The degradation is
// scoped to the single row: one failure never aborts the table.
type HybridClassifier struct {
	learned *LearnedClassifier
	rules   *RuleClassifier
	log     *slog.Logger
}

// NewHybridClassifier composes a learned classifier (which may be nil
// when no artifact is available) with a rule-based fallback. A nil logger
// uses slog's default.
func NewHybridClassifier(learned *LearnedClassifier, rules *RuleClassifier, log *slog.Logger) *HybridClassifier {
	if log == nil {
		log = slog.Default()
	}
	return &HybridClassifier{learned: learned, rules: rules, log: log}
}

// NewClassifier builds the standard classifier for a keyword config and
// an optional artifact path. An empty path, or an artifact that fails to
// load, yields a rules-only classifier; a load failure is logged, not
// returned, because classification must keep working without the model.
func NewClassifier(cfg Config, artifactPath string, log *slog.Logger) (*HybridClassifier, error) {
	rules, err := NewRuleClassifier(cfg)
	if err != nil {
		return nil, err
	}

	if log == nil {
		log = slog.Default()
	}

	var learned *LearnedClassifier
	if artifactPath != "" {
		artifact, err := LoadArtifact(artifactPath)
		if err != nil {
			log.Warn("classifier artifact unavailable, using rules only",
				"path", artifactPath, "error", err)
		} else {
			learned, err = NewLearnedClassifier(artifact, cfg)
			if err != nil {
				log.Warn("learned classifier unusable, using rules only", "error", err)
				learned = nil
			}
		}
	}

	return NewHybridClassifier(learned, rules, log), nil
}

// Classify labels one row, preferring the learned path.
func (h *HybridClassifier) Classify(cells []string, rowIndex, totalRows int) model.Label {
	if h.learned != nil {
		label, err := h.learned.Classify(cells, rowIndex, totalRows)
		if err == nil {
			return label
		}
		h.log.Warn("learned classification failed, falling back to rules",
			"row", rowIndex, "error", err)
	}
	return h.rules.Classify(cells, rowIndex, totalRows)
}

// ClassifyRows labels every row of a table.
func ClassifyRows(c Classifier, rows [][]string) []model.LabeledRow {
	total := len(rows)
	out := make([]model.LabeledRow, 0, total)
	for i, cells := range rows {
		out = append(out, model.LabeledRow{
			Cells:     cells,
			Label:     c.Classify(cells, i, total),
			RowIndex:  i,
			TotalRows: total,
		})
	}
	return out
}
