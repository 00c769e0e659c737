package classify

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tsawler/databook/model"
)

// Scaler transforms a raw feature vector into the scaled space the model
// was trained in.
type Scaler interface {
	Transform(features []float64) ([]float64, error)
}

// Model predicts a label index from a scaled feature vector. It is
// stateless at inference time and safe for concurrent use.
type Model interface {
	Predict(features []float64) (int, error)
}

// Artifact is a previously trained classifier bundle: the feature scaler,
// the model, and the label vocabulary the model's indices resolve through.
// It is loaded once and treated as process-wide immutable state.
type Artifact struct {
	Scaler Scaler
	Model  Model
	Labels []string
}

// artifactFile is the on-disk JSON layout of an Artifact.
type artifactFile struct {
	Labels []string `json:"labels"`
	Scaler struct {
		Mean  []float64 `json:"mean"`
		Scale []float64 `json:"scale"`
	} `json:"scaler"`
	Model struct {
		Weights    [][]float64 `json:"weights"`
		Intercepts []float64   `json:"intercepts"`
	} `json:"model"`
}

// LoadArtifact reads a classifier bundle from a JSON file and validates
// its shapes against the fixed feature ordering.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading classifier artifact: %w", err)
	}

	var file artifactFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing classifier artifact: %w", err)
	}

	if len(file.Labels) == 0 {
		return nil, fmt.Errorf("classifier artifact has no label vocabulary")
	}
	if len(file.Scaler.Mean) != NumFeatures || len(file.Scaler.Scale) != NumFeatures {
		return nil, fmt.Errorf("scaler shape %dx%d does not match %d features",
			len(file.Scaler.Mean), len(file.Scaler.Scale), NumFeatures)
	}
	if len(file.Model.Weights) != len(file.Labels) {
		return nil, fmt.Errorf("model has %d weight rows for %d labels",
			len(file.Model.Weights), len(file.Labels))
	}
	for i, w := range file.Model.Weights {
		if len(w) != NumFeatures {
			return nil, fmt.Errorf("weight row %d has %d entries, want %d", i, len(w), NumFeatures)
		}
	}
	if len(file.Model.Intercepts) != len(file.Labels) {
		return nil, fmt.Errorf("model has %d intercepts for %d labels",
			len(file.Model.Intercepts), len(file.Labels))
	}

	return &Artifact{
		Scaler: &StandardScaler{Mean: file.Scaler.Mean, Scale: file.Scaler.Scale},
		Model:  &LinearModel{Weights: file.Model.Weights, Intercepts: file.Model.Intercepts},
		Labels: file.Labels,
	}, nil
}

// StandardScaler centers and scales features with fitted per-feature
// mean and scale parameters.
type StandardScaler struct {
	Mean  []float64
	Scale []float64
}

// Transform returns (x - mean) / scale per feature. A zero scale entry
// passes the centered value through unscaled.
func (s *StandardScaler) Transform(features []float64) ([]float64, error) {
	if len(features) != len(s.Mean) {
		return nil, fmt.Errorf("feature vector has %d entries, scaler expects %d", len(features), len(s.Mean))
	}
	out := make([]float64, len(features))
	for i, x := range features {
		out[i] = x - s.Mean[i]
		if s.Scale[i] != 0 {
			out[i] /= s.Scale[i]
		}
	}
	return out, nil
}

// LinearModel is a multinomial linear classifier: the predicted index is
// the argmax of w·x + b over the label classes.
type LinearModel struct {
	Weights    [][]float64
	Intercepts []float64
}

// Predict returns the index of the highest-scoring class.
func (m *LinearModel) Predict(features []float64) (int, error) {
	if len(m.Weights) == 0 {
		return 0, fmt.Errorf("model has no weights")
	}

	best := 0
	bestScore := 0.0
	for class, weights := range m.Weights {
		if len(weights) != len(features) {
			return 0, fmt.Errorf("class %d expects %d features, got %d", class, len(weights), len(features))
		}
		score := m.Intercepts[class]
		for i, w := range weights {
			score += w * features[i]
		}
		if class == 0 || score > bestScore {
			best = class
			bestScore = score
		}
	}
	return best, nil
}

// LearnedClassifier labels rows with a trained artifact: extract
// features, scale, predict, resolve through the vocabulary.
type LearnedClassifier struct {
	features *FeatureExtractor
	artifact *Artifact
}

// NewLearnedClassifier creates a learned classifier from an artifact and
// keyword configuration (the keyword sets feed the feature extractor).
func NewLearnedClassifier(artifact *Artifact, cfg Config) (*LearnedClassifier, error) {
	if artifact == nil {
		return nil, fmt.Errorf("nil classifier artifact")
	}
	extractor, err := NewFeatureExtractor(cfg)
	if err != nil {
		return nil, err
	}
	return &LearnedClassifier{features: extractor, artifact: artifact}, nil
}

// Classify predicts a label for one row. Any failure is returned to the
// caller so it can fall back to the rule-based path for that row.
func (c *LearnedClassifier) Classify(cells []string, rowIndex, totalRows int) (label model.Label, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("learned classification panicked: %v", r)
		}
	}()

	vec := c.features.Extract(cells).Vector()

	scaled, err := c.artifact.Scaler.Transform(vec)
	if err != nil {
		return 0, fmt.Errorf("scaling features: %w", err)
	}

	idx, err := c.artifact.Model.Predict(scaled)
	if err != nil {
		return 0, fmt.Errorf("predicting label: %w", err)
	}
	if idx < 0 || idx >= len(c.artifact.Labels) {
		return 0, fmt.Errorf("predicted index %d outside vocabulary of %d labels", idx, len(c.artifact.Labels))
	}

	return model.ParseLabel(c.artifact.Labels[idx])
}
