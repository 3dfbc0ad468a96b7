package classify

import (
	"errors"
	"testing"

	"github.com/ppiankov/baitcheck/internal/model"
)

func TestForest_PredictBeforeTrain(t *testing.T) {
	f := NewForest(testConfig())
	_, err := f.Predict("anything")
	if !errors.Is(err, ErrModelNotTrained) {
		t.Errorf("expected ErrModelNotTrained, got %v", err)
	}
}

func TestForest_InsufficientData(t *testing.T) {
	f := NewForest(testConfig())
	_, err := f.Train([]model.TrainingSample{
		{Text: "a", Label: model.LabelNormal},
		{Text: "b", Label: model.LabelClickbait},
	}, nil)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}

func TestForest_TrainAndPredict(t *testing.T) {
	f := NewForest(testConfig())
	metrics, err := f.Train(separableSamples(), nil)
	if err != nil {
		t.Fatalf("training failed: %v", err)
	}
	if !f.IsTrained() {
		t.Fatal("expected trained forest")
	}
	// In-sample accuracy on a sharply separable set should be high.
	if metrics.Accuracy < 0.75 {
		t.Errorf("expected in-sample accuracy >= 0.75, got %f", metrics.Accuracy)
	}

	result, err := f.Predict("SHOCKING! You won't believe this weird trick!!!")
	if err != nil {
		t.Fatalf("prediction failed: %v", err)
	}
	if result.Prediction != model.LabelClickbait {
		t.Errorf("expected clickbait, got %q", result.Prediction)
	}
	// Confidence is the winning vote share: above half, at most all trees.
	if result.Confidence <= 0.5 || result.Confidence > 1 {
		t.Errorf("vote share out of range: %f", result.Confidence)
	}
}

func TestForest_SeededReproducible(t *testing.T) {
	samples := separableSamples()
	probe := "Act now! Amazing secret revealed!!!"

	a := NewForest(testConfig())
	if _, err := a.Train(samples, nil); err != nil {
		t.Fatalf("training failed: %v", err)
	}
	b := NewForest(testConfig())
	if _, err := b.Train(samples, nil); err != nil {
		t.Fatalf("training failed: %v", err)
	}

	ra, err := a.Predict(probe)
	if err != nil {
		t.Fatalf("prediction failed: %v", err)
	}
	rb, err := b.Predict(probe)
	if err != nil {
		t.Fatalf("prediction failed: %v", err)
	}
	if ra.Prediction != rb.Prediction || ra.Confidence != rb.Confidence {
		t.Errorf("same seed should give identical forests: %s/%f vs %s/%f",
			ra.Prediction, ra.Confidence, rb.Prediction, rb.Confidence)
	}
}

func TestForest_Importances(t *testing.T) {
	f := NewForest(testConfig())
	if _, err := f.Train(separableSamples(), nil); err != nil {
		t.Fatalf("training failed: %v", err)
	}

	imps := f.Importances()
	if len(imps) == 0 {
		t.Fatal("expected importances after training")
	}
	for i, imp := range imps {
		if imp.Value < 0 {
			t.Errorf("importance %s is negative: %f", imp.Name, imp.Value)
		}
		if i > 0 && imps[i-1].Value < imp.Value {
			t.Errorf("importances not sorted descending at %d: %f < %f", i, imps[i-1].Value, imp.Value)
		}
	}
	// The separable fixture splits on keyword and punctuation features, so
	// at least one feature must have accumulated gain.
	if imps[0].Value == 0 {
		t.Error("expected at least one feature with positive importance")
	}
}

func TestForest_Reset(t *testing.T) {
	f := NewForest(testConfig())
	if _, err := f.Train(separableSamples(), nil); err != nil {
		t.Fatalf("training failed: %v", err)
	}
	f.Reset()
	if f.IsTrained() {
		t.Error("expected untrained forest after reset")
	}
	if imps := f.Importances(); len(imps) != 0 {
		t.Errorf("expected empty importances after reset, got %d", len(imps))
	}
}
