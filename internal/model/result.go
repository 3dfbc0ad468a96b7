package model

import "time"

// ModelType identifies one of the four classifier implementations
type ModelType string

const (
	ModelNaiveBayes ModelType = "naive_bayes"
	ModelLogistic   ModelType = "logistic_regression"
	ModelForest     ModelType = "decision_forest"
	ModelCNN        ModelType = "cnn"
)

// AllModelTypes returns the model types in increasing training cost order.
// TrainAll relies on this ordering (cheapest first).
func AllModelTypes() []ModelType {
	return []ModelType{ModelNaiveBayes, ModelLogistic, ModelForest, ModelCNN}
}

// ModelStatus is the lifecycle state of one classifier instance
type ModelStatus string

const (
	StatusIdle     ModelStatus = "idle"
	StatusTraining ModelStatus = "training"
	StatusTrained  ModelStatus = "trained"
	StatusError    ModelStatus = "error"
)

// ClassificationResult is the outcome of a single prediction.
// Confidence is always in [0,1]; presentation layers render percentages.
type ClassificationResult struct {
	Model          ModelType     `json:"model"`
	Prediction     Label         `json:"prediction"`
	Confidence     float64       `json:"confidence"`
	Features       *TextFeatures `json:"features,omitempty"`
	Reasoning      []string      `json:"reasoning"`
	ProcessingTime time.Duration `json:"processing_time"`
}

// TrainingMetrics summarizes one completed training run.
// Precision/recall/F1 treat clickbait as the positive class.
type TrainingMetrics struct {
	Accuracy  float64       `json:"accuracy"`
	Precision float64       `json:"precision"`
	Recall    float64       `json:"recall"`
	F1        float64       `json:"f1"`
	Samples   int           `json:"samples"`
	Duration  time.Duration `json:"duration"`

	// Split is present for models trained with an explicit train/test
	// partition (logistic regression and the CNN).
	Split *SplitReport `json:"split,omitempty"`
}

// OverfitGapThreshold is the train-vs-test gap beyond which a model is
// flagged as overfitting.
const OverfitGapThreshold = 0.15

// SplitReport is the train/test breakdown with the overfitting indicator
type SplitReport struct {
	TrainSamples  int     `json:"train_samples"`
	TestSamples   int     `json:"test_samples"`
	TrainAccuracy float64 `json:"train_accuracy"`
	TestAccuracy  float64 `json:"test_accuracy"`
	TrainF1       float64 `json:"train_f1"`
	TestF1        float64 `json:"test_f1"`
	AccuracyGap   float64 `json:"accuracy_gap"` // train - test
	F1Gap         float64 `json:"f1_gap"`
	IsOverfitting bool    `json:"is_overfitting"`
}

// TrainingProgress is a transient checkpoint emitted during training and
// discarded on completion.
type TrainingProgress struct {
	Stage    string        `json:"stage"`
	Progress float64       `json:"progress"` // 0..100
	Message  string        `json:"message"`
	Elapsed  time.Duration `json:"elapsed"`
}

// ConsensusPrediction is the majority vote across trained models
type ConsensusPrediction struct {
	Prediction Label         `json:"prediction"`
	Agreement  float64       `json:"agreement"`  // winning-vote fraction, 0..1
	Confidence float64       `json:"confidence"` // mean confidence across all voters
	Votes      map[Label]int `json:"votes"`
}

// ComparisonSummary is the orchestrator's comparative view of all models.
// FastestPred/FastestPredT are first-observation latencies: a prediction
// served from the cache keeps the processing time of the call that
// originally computed it.
type ComparisonSummary struct {
	TrainedModels int                           `json:"trained_models"`
	BestModel     ModelType                     `json:"best_model,omitempty"`
	BestAccuracy  float64                       `json:"best_accuracy"`
	FastestTrain  ModelType                     `json:"fastest_train,omitempty"`
	FastestTrainT time.Duration                 `json:"fastest_train_time"`
	FastestPred   ModelType                     `json:"fastest_predict,omitempty"`
	FastestPredT  time.Duration                 `json:"fastest_predict_time"`
	Consensus     *ConsensusPrediction          `json:"consensus,omitempty"`
	Metrics       map[ModelType]TrainingMetrics `json:"metrics"`
}
