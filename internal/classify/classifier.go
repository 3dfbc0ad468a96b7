// Package classify implements the four classifier variants behind a single
// closed interface: Gaussian naive Bayes, a bagged decision forest,
// gradient-descent logistic regression, and a toy convolutional network.
package classify

import (
	"fmt"

	"github.com/ppiankov/baitcheck/internal/model"
)

// ProgressFunc receives transient training checkpoints
type ProgressFunc func(model.TrainingProgress)

// Classifier is the capability set shared by all model variants.
// Implementations own their parameters exclusively; parameters are
// immutable once Train returns, so Predict needs no external locking.
type Classifier interface {
	// Train fits the model on the given samples. onProgress may be nil.
	// Fails with ErrInsufficientData below the model's sample thresholds.
	Train(samples []model.TrainingSample, onProgress ProgressFunc) (*model.TrainingMetrics, error)

	// Predict classifies a single text.
	// Fails with ErrModelNotTrained before a successful Train.
	Predict(text string) (*model.ClassificationResult, error)

	// Reset returns the model to the untrained state and clears all
	// learned parameters.
	Reset()

	// IsTrained reports whether the model currently holds trained
	// parameters.
	IsTrained() bool

	// Type identifies the model variant.
	Type() model.ModelType
}

// New constructs a classifier of the given type from config
func New(t model.ModelType, cfg *model.Config) (Classifier, error) {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	switch t {
	case model.ModelNaiveBayes:
		return NewNaiveBayes(cfg), nil
	case model.ModelLogistic:
		return NewLogistic(cfg), nil
	case model.ModelForest:
		return NewForest(cfg), nil
	case model.ModelCNN:
		return NewTextCNN(cfg), nil
	}
	return nil, fmt.Errorf("unknown model type %q", t)
}
