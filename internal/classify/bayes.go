package classify

import (
	"fmt"
	"math"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/ppiankov/baitcheck/internal/feature"
	"github.com/ppiankov/baitcheck/internal/model"
)

// stdFloor keeps per-dimension standard deviations away from zero so the
// Gaussian log-likelihood never divides by zero.
const stdFloor = 1.0

// NaiveBayes is a Gaussian generative classifier over the shared feature
// vector: per-class per-dimension mean/stddev plus log class priors.
type NaiveBayes struct {
	mu           sync.RWMutex
	cfg          model.BayesConfig
	progressRate float64

	extractor *feature.Extractor
	trained   bool
	mean      map[model.Label][]float64
	std       map[model.Label][]float64
	logPrior  map[model.Label]float64
}

// NewNaiveBayes creates an untrained Gaussian naive Bayes classifier
func NewNaiveBayes(cfg *model.Config) *NaiveBayes {
	return &NaiveBayes{
		cfg:          cfg.Bayes,
		progressRate: cfg.Orchestrator.ProgressPerSecond,
		extractor:    feature.NewExtractor(),
	}
}

// Type implements Classifier
func (nb *NaiveBayes) Type() model.ModelType { return model.ModelNaiveBayes }

// IsTrained implements Classifier
func (nb *NaiveBayes) IsTrained() bool {
	nb.mu.RLock()
	defer nb.mu.RUnlock()
	return nb.trained
}

// Reset implements Classifier
func (nb *NaiveBayes) Reset() {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	nb.trained = false
	nb.mean = nil
	nb.std = nil
	nb.logPrior = nil
	nb.extractor = feature.NewExtractor()
}

// Train fits per-class Gaussians and class priors, then reports in-sample
// metrics.
func (nb *NaiveBayes) Train(samples []model.TrainingSample, onProgress ProgressFunc) (*model.TrainingMetrics, error) {
	start := time.Now()
	prog := newProgressEmitter(onProgress, nb.progressRate)
	prog.emit("validate", 0, "checking sample counts")

	if len(samples) < nb.cfg.MinSamples {
		return nil, insufficientData(nb.cfg.MinSamples, len(samples))
	}
	nNormal, nClickbait := model.CountLabels(samples)
	if nNormal < nb.cfg.MinPerClass {
		return nil, insufficientClass(string(model.LabelNormal), nb.cfg.MinPerClass, nNormal)
	}
	if nClickbait < nb.cfg.MinPerClass {
		return nil, insufficientClass(string(model.LabelClickbait), nb.cfg.MinPerClass, nClickbait)
	}

	prog.emit("tfidf", 10, "fitting term-weight index")
	extractor := feature.NewExtractor()
	docs := make([]string, len(samples))
	for i, s := range samples {
		docs[i] = s.Text
	}
	extractor.FitCorpus(docs)

	prog.emit("features", 30, "extracting feature vectors")
	byClass := map[model.Label][][]float64{}
	vectors := make([][]float64, len(samples))
	for i, s := range samples {
		v := extractor.Vector(extractor.Extract(s.Text))
		vectors[i] = v
		byClass[s.Label] = append(byClass[s.Label], v)
	}

	prog.emit("fit", 60, "fitting per-class Gaussians")
	dims := feature.VectorDim()
	mean := map[model.Label][]float64{}
	std := map[model.Label][]float64{}
	logPrior := map[model.Label]float64{}
	total := float64(len(samples))
	for label, rows := range byClass {
		m := make([]float64, dims)
		sd := make([]float64, dims)
		col := make([]float64, len(rows))
		for d := 0; d < dims; d++ {
			for i, row := range rows {
				col[i] = row[d]
			}
			mu, sigma := stat.MeanStdDev(col, nil)
			if math.IsNaN(sigma) || sigma < stdFloor {
				sigma = stdFloor
			}
			m[d] = mu
			sd[d] = sigma
		}
		mean[label] = m
		std[label] = sd
		logPrior[label] = math.Log(float64(len(rows)) / total)
	}

	prog.emit("evaluate", 85, "computing in-sample metrics")
	predicted := make([]model.Label, len(samples))
	actual := make([]model.Label, len(samples))
	for i, s := range samples {
		label, _ := scoreGaussian(vectors[i], mean, std, logPrior)
		predicted[i] = label
		actual[i] = s.Label
	}
	metrics := Evaluate(predicted, actual)
	metrics.Duration = time.Since(start)

	nb.mu.Lock()
	nb.extractor = extractor
	nb.mean = mean
	nb.std = std
	nb.logPrior = logPrior
	nb.trained = true
	nb.mu.Unlock()

	prog.emit("done", 100, "training complete")
	return &metrics, nil
}

// Predict computes the Gaussian log-likelihood per class, softmaxes the two
// scores, and explains the outcome via curated keyword hits.
func (nb *NaiveBayes) Predict(text string) (*model.ClassificationResult, error) {
	start := time.Now()

	nb.mu.RLock()
	defer nb.mu.RUnlock()
	if !nb.trained {
		return nil, fmt.Errorf("%w: naive bayes", ErrModelNotTrained)
	}

	features := nb.extractor.Extract(text)
	v := nb.extractor.Vector(features)
	label, confidence := scoreGaussian(v, nb.mean, nb.std, nb.logPrior)

	reasoning := []string{
		fmt.Sprintf("gaussian log-likelihood favors %q with probability %.2f", label, confidence),
	}
	clickbait, urgency, emotional := feature.KeywordHits(text)
	if len(clickbait) > 0 {
		reasoning = append(reasoning, fmt.Sprintf("clickbait keywords present: %v", clickbait))
	}
	if len(urgency) > 0 {
		reasoning = append(reasoning, fmt.Sprintf("urgency keywords present: %v", urgency))
	}
	if len(emotional) > 0 {
		reasoning = append(reasoning, fmt.Sprintf("emotional keywords present: %v", emotional))
	}
	margin := confidence - 0.5
	switch {
	case margin > 0.25:
		reasoning = append(reasoning, "the class probability is far from the decision boundary")
	case margin > 0.05:
		reasoning = append(reasoning, "the class probability is moderately above the decision boundary")
	default:
		reasoning = append(reasoning, "the class probability is close to the decision boundary")
	}

	return &model.ClassificationResult{
		Model:          model.ModelNaiveBayes,
		Prediction:     label,
		Confidence:     confidence,
		Features:       &features,
		Reasoning:      reasoning,
		ProcessingTime: time.Since(start),
	}, nil
}

// scoreGaussian sums per-dimension Gaussian log-likelihoods plus the log
// prior for each class, normalizes by the max to avoid overflow, and
// softmaxes. Returns the argmax label and its normalized probability.
func scoreGaussian(v []float64, mean, std map[model.Label][]float64, logPrior map[model.Label]float64) (model.Label, float64) {
	classes := []model.Label{model.LabelNormal, model.LabelClickbait}
	scores := make([]float64, len(classes))
	for c, label := range classes {
		m, s := mean[label], std[label]
		score := logPrior[label]
		for d := range v {
			if d >= len(m) {
				break
			}
			sigma := s[d]
			diff := v[d] - m[d]
			score += -0.5*math.Log(2*math.Pi*sigma*sigma) - diff*diff/(2*sigma*sigma)
		}
		scores[c] = score
	}

	max := scores[0]
	for _, s := range scores[1:] {
		if s > max {
			max = s
		}
	}
	sum := 0.0
	probs := make([]float64, len(scores))
	for i, s := range scores {
		probs[i] = math.Exp(s - max)
		sum += probs[i]
	}
	best := 0
	for i := range probs {
		probs[i] /= sum
		if probs[i] > probs[best] {
			best = i
		}
	}
	return classes[best], probs[best]
}
