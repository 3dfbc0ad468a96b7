package classify

import (
	"errors"
	"testing"

	"github.com/ppiankov/baitcheck/internal/model"
)

func TestNaiveBayes_PredictBeforeTrain(t *testing.T) {
	nb := NewNaiveBayes(testConfig())
	if nb.IsTrained() {
		t.Fatal("new classifier should not be trained")
	}
	_, err := nb.Predict("anything")
	if !errors.Is(err, ErrModelNotTrained) {
		t.Errorf("expected ErrModelNotTrained, got %v", err)
	}
}

func TestNaiveBayes_InsufficientData(t *testing.T) {
	nb := NewNaiveBayes(testConfig())

	_, err := nb.Train([]model.TrainingSample{
		{Text: "only one", Label: model.LabelNormal},
	}, nil)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData for 1 sample, got %v", err)
	}

	// Enough samples overall, but one class is missing.
	_, err = nb.Train([]model.TrainingSample{
		{Text: "a", Label: model.LabelNormal},
		{Text: "b", Label: model.LabelNormal},
		{Text: "c", Label: model.LabelNormal},
		{Text: "d", Label: model.LabelNormal},
	}, nil)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData for one-class data, got %v", err)
	}
	if nb.IsTrained() {
		t.Error("failed training must leave the model untrained")
	}
}

func TestNaiveBayes_MinimumViableDataset(t *testing.T) {
	nb := NewNaiveBayes(testConfig())

	// 2 normal + 2 clickbait sits exactly on the 4-sample floor.
	samples := []model.TrainingSample{
		{Text: "council meeting agenda published", Label: model.LabelNormal},
		{Text: "quarterly earnings were flat", Label: model.LabelNormal},
		{Text: "SHOCKING secret revealed!!!", Label: model.LabelClickbait},
		{Text: "震惊！你绝对想不到！", Label: model.LabelClickbait},
	}
	metrics, err := nb.Train(samples, nil)
	if err != nil {
		t.Fatalf("training on the minimum viable dataset failed: %v", err)
	}
	if !nb.IsTrained() {
		t.Fatal("expected trained model")
	}
	if metrics.Accuracy < 0 || metrics.Accuracy > 1 {
		t.Errorf("accuracy out of range: %f", metrics.Accuracy)
	}
	if metrics.Samples != 4 {
		t.Errorf("expected 4 samples, got %d", metrics.Samples)
	}

	// One sample fewer is below the floor.
	nb.Reset()
	if _, err := nb.Train(samples[:3], nil); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData for 3 samples, got %v", err)
	}
}

func TestNaiveBayes_TrainAndPredict(t *testing.T) {
	nb := NewNaiveBayes(testConfig())
	metrics, err := nb.Train(separableSamples(), nil)
	if err != nil {
		t.Fatalf("training failed: %v", err)
	}
	if !nb.IsTrained() {
		t.Fatal("expected trained model")
	}
	if metrics.Accuracy < 0 || metrics.Accuracy > 1 {
		t.Errorf("accuracy out of range: %f", metrics.Accuracy)
	}
	if metrics.Samples != len(separableSamples()) {
		t.Errorf("expected %d samples, got %d", len(separableSamples()), metrics.Samples)
	}
	if metrics.Duration <= 0 {
		t.Error("expected positive training duration")
	}

	result, err := nb.Predict("震惊！惊呆了！这个秘诀让你暴富！！！")
	if err != nil {
		t.Fatalf("prediction failed: %v", err)
	}
	if result.Model != model.ModelNaiveBayes {
		t.Errorf("expected model type %s, got %s", model.ModelNaiveBayes, result.Model)
	}
	if !result.Prediction.Valid() {
		t.Errorf("invalid prediction %q", result.Prediction)
	}
	if result.Confidence < 0 || result.Confidence > 1 {
		t.Errorf("confidence out of range: %f", result.Confidence)
	}
	if result.Features == nil {
		t.Error("expected features in result")
	}
	if len(result.Reasoning) == 0 {
		t.Error("expected reasoning strings")
	}
}

func TestNaiveBayes_ProgressReaches100(t *testing.T) {
	nb := NewNaiveBayes(testConfig())
	var first, last float64 = -1, -1
	_, err := nb.Train(separableSamples(), func(p model.TrainingProgress) {
		if first < 0 {
			first = p.Progress
		}
		last = p.Progress
	})
	if err != nil {
		t.Fatalf("training failed: %v", err)
	}
	if first != 0 {
		t.Errorf("expected first progress checkpoint at 0, got %f", first)
	}
	if last < 100 {
		t.Errorf("expected final progress checkpoint at 100, got %f", last)
	}
}

func TestNaiveBayes_Reset(t *testing.T) {
	nb := NewNaiveBayes(testConfig())
	if _, err := nb.Train(separableSamples(), nil); err != nil {
		t.Fatalf("training failed: %v", err)
	}
	nb.Reset()
	if nb.IsTrained() {
		t.Error("expected untrained model after reset")
	}
	if _, err := nb.Predict("text"); !errors.Is(err, ErrModelNotTrained) {
		t.Errorf("expected ErrModelNotTrained after reset, got %v", err)
	}
}
