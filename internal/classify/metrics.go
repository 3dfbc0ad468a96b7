package classify

import (
	"github.com/ppiankov/baitcheck/internal/model"
)

// Evaluate computes accuracy/precision/recall/F1 for predicted vs actual
// labels, treating clickbait as the positive class. Slices must be the same
// length; extra entries in either are ignored.
func Evaluate(predicted, actual []model.Label) model.TrainingMetrics {
	n := len(predicted)
	if len(actual) < n {
		n = len(actual)
	}
	if n == 0 {
		return model.TrainingMetrics{}
	}

	var tp, fp, tn, fn int
	for i := 0; i < n; i++ {
		switch {
		case predicted[i] == model.LabelClickbait && actual[i] == model.LabelClickbait:
			tp++
		case predicted[i] == model.LabelClickbait && actual[i] == model.LabelNormal:
			fp++
		case predicted[i] == model.LabelNormal && actual[i] == model.LabelNormal:
			tn++
		default:
			fn++
		}
	}

	m := model.TrainingMetrics{Samples: n}
	m.Accuracy = float64(tp+tn) / float64(n)
	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m
}

// splitReport builds the train/test breakdown with the overfitting
// indicator: flagged iff either gap exceeds OverfitGapThreshold.
func splitReport(train, test model.TrainingMetrics) *model.SplitReport {
	r := &model.SplitReport{
		TrainSamples:  train.Samples,
		TestSamples:   test.Samples,
		TrainAccuracy: train.Accuracy,
		TestAccuracy:  test.Accuracy,
		TrainF1:       train.F1,
		TestF1:        test.F1,
		AccuracyGap:   train.Accuracy - test.Accuracy,
		F1Gap:         train.F1 - test.F1,
	}
	r.IsOverfitting = r.AccuracyGap > model.OverfitGapThreshold || r.F1Gap > model.OverfitGapThreshold
	return r
}
