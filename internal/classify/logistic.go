package classify

import (
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"
	"unicode"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/ppiankov/baitcheck/internal/feature"
	"github.com/ppiankov/baitcheck/internal/model"
)

// Logistic is a linear classifier trained by batch gradient descent on
// binary cross-entropy over standardized features. Its feature set (basic
// counts plus character-ratio features) is deliberately distinct from the
// shared vector used by the Bayes and forest models.
type Logistic struct {
	mu           sync.RWMutex
	cfg          model.LogisticConfig
	seed         int64
	progressRate float64

	trained bool
	weights *mat.VecDense
	bias    float64
	// Standardization statistics from the training partition, reused at
	// inference.
	featMean []float64
	featStd  []float64
}

// NewLogistic creates an untrained logistic regression classifier
func NewLogistic(cfg *model.Config) *Logistic {
	return &Logistic{
		cfg:          cfg.Logistic,
		seed:         cfg.Seed,
		progressRate: cfg.Orchestrator.ProgressPerSecond,
	}
}

// Type implements Classifier
func (l *Logistic) Type() model.ModelType { return model.ModelLogistic }

// IsTrained implements Classifier
func (l *Logistic) IsTrained() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.trained
}

// Reset implements Classifier
func (l *Logistic) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.trained = false
	l.weights = nil
	l.bias = 0
	l.featMean = nil
	l.featStd = nil
}

// Train runs a stratified split, standardizes on train-set statistics, and
// fits by batch gradient descent. The returned metrics come from the test
// partition, with the train/test breakdown attached.
func (l *Logistic) Train(samples []model.TrainingSample, onProgress ProgressFunc) (*model.TrainingMetrics, error) {
	start := time.Now()
	prog := newProgressEmitter(onProgress, l.progressRate)
	prog.emit("validate", 0, "checking sample counts")

	if len(samples) < l.cfg.MinSamples {
		return nil, insufficientData(l.cfg.MinSamples, len(samples))
	}
	nNormal, nClickbait := model.CountLabels(samples)
	if nNormal < l.cfg.MinPerClass {
		return nil, insufficientClass(string(model.LabelNormal), l.cfg.MinPerClass, nNormal)
	}
	if nClickbait < l.cfg.MinPerClass {
		return nil, insufficientClass(string(model.LabelClickbait), l.cfg.MinPerClass, nClickbait)
	}

	prog.emit("split", 5, "stratified train/test split")
	rng := newRand(l.seed)
	train, test := StratifiedSplit(samples, l.cfg.TestRatio, rng)
	if len(train) == 0 {
		train = samples
	}

	prog.emit("features", 10, "building and standardizing feature vectors")
	trainX := make([][]float64, len(train))
	trainY := make([]float64, len(train))
	for i, s := range train {
		trainX[i] = logisticFeatures(s.Text)
		if s.Label == model.LabelClickbait {
			trainY[i] = 1
		}
	}
	dims := len(trainX[0])

	featMean := make([]float64, dims)
	featStd := make([]float64, dims)
	col := make([]float64, len(trainX))
	for d := 0; d < dims; d++ {
		for i, row := range trainX {
			col[i] = row[d]
		}
		mu, sigma := stat.MeanStdDev(col, nil)
		if math.IsNaN(sigma) || sigma == 0 {
			sigma = 1
		}
		featMean[d] = mu
		featStd[d] = sigma
	}

	n := len(trainX)
	X := mat.NewDense(n, dims, nil)
	for i, row := range trainX {
		for d, val := range row {
			X.Set(i, d, (val-featMean[d])/featStd[d])
		}
	}
	prog.emit("descend", 20, "running batch gradient descent")
	weights := mat.NewVecDense(dims, nil)
	for d := 0; d < dims; d++ {
		weights.SetVec(d, rng.NormFloat64()*0.01)
	}
	bias := 0.0
	prevLoss := math.Inf(1)

	z := mat.NewVecDense(n, nil)
	diff := mat.NewVecDense(n, nil)
	grad := mat.NewVecDense(dims, nil)

	for iter := 0; iter < l.cfg.MaxIterations; iter++ {
		z.MulVec(X, weights)
		loss := 0.0
		biasGrad := 0.0
		for i := 0; i < n; i++ {
			pi := sigmoid(z.AtVec(i) + bias)
			di := pi - trainY[i]
			diff.SetVec(i, di)
			biasGrad += di
			loss += bceLoss(trainY[i], pi)
		}
		loss /= float64(n)

		grad.MulVec(X.T(), diff)
		grad.ScaleVec(l.cfg.LearningRate/float64(n), grad)
		weights.SubVec(weights, grad)
		bias -= l.cfg.LearningRate * biasGrad / float64(n)

		if math.Abs(prevLoss-loss) < l.cfg.Tolerance {
			break
		}
		prevLoss = loss

		// Yield periodically so long descents don't starve other work.
		if iter%100 == 99 {
			runtime.Gosched()
			prog.emit("descend", 20+60*float64(iter+1)/float64(l.cfg.MaxIterations),
				fmt.Sprintf("iteration %d, loss %.5f", iter+1, loss))
		}
	}

	prog.emit("evaluate", 85, "evaluating both partitions")
	evalSet := func(set []model.TrainingSample) model.TrainingMetrics {
		predicted := make([]model.Label, len(set))
		actual := make([]model.Label, len(set))
		for i, s := range set {
			pVal := predictProb(logisticFeatures(s.Text), weights, bias, featMean, featStd)
			predicted[i] = probLabel(pVal)
			actual[i] = s.Label
		}
		return Evaluate(predicted, actual)
	}
	trainMetrics := evalSet(train)
	testMetrics := trainMetrics
	if len(test) > 0 {
		testMetrics = evalSet(test)
	}

	metrics := testMetrics
	metrics.Samples = len(samples)
	metrics.Duration = time.Since(start)
	metrics.Split = splitReport(trainMetrics, testMetrics)
	metrics.Split.TrainSamples = len(train)
	metrics.Split.TestSamples = len(test)

	l.mu.Lock()
	l.weights = weights
	l.bias = bias
	l.featMean = featMean
	l.featStd = featStd
	l.trained = true
	l.mu.Unlock()

	prog.emit("done", 100, "training complete")
	return &metrics, nil
}

// Predict standardizes with the stored training statistics and applies the
// sigmoid. Confidence is |p - 0.5| * 2.
func (l *Logistic) Predict(text string) (*model.ClassificationResult, error) {
	start := time.Now()

	l.mu.RLock()
	defer l.mu.RUnlock()
	if !l.trained {
		return nil, fmt.Errorf("%w: logistic regression", ErrModelNotTrained)
	}

	p := predictProb(logisticFeatures(text), l.weights, l.bias, l.featMean, l.featStd)
	label := probLabel(p)

	reasoning := []string{
		fmt.Sprintf("sigmoid output %.3f (clickbait above 0.5)", p),
		fmt.Sprintf("decision margin %.3f from the boundary", math.Abs(p-0.5)),
	}

	return &model.ClassificationResult{
		Model:          model.ModelLogistic,
		Prediction:     label,
		Confidence:     math.Abs(p-0.5) * 2,
		Reasoning:      reasoning,
		ProcessingTime: time.Since(start),
	}, nil
}

func predictProb(raw []float64, w *mat.VecDense, bias float64, mean, std []float64) float64 {
	z := bias
	for d, val := range raw {
		z += w.AtVec(d) * (val - mean[d]) / std[d]
	}
	return sigmoid(z)
}

func probLabel(p float64) model.Label {
	if p > 0.5 {
		return model.LabelClickbait
	}
	return model.LabelNormal
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func bceLoss(y, p float64) float64 {
	const eps = 1e-12
	if p < eps {
		p = eps
	}
	if p > 1-eps {
		p = 1 - eps
	}
	return -(y*math.Log(p) + (1-y)*math.Log(1-p))
}

// logisticFeatures builds the linear model's own vector: raw counts plus
// character-class ratios.
func logisticFeatures(text string) []float64 {
	var total, digits, uppers, puncts, spaces, cjk, letters int
	var exclaim, question int
	for _, r := range text {
		total++
		switch {
		case unicode.IsDigit(r):
			digits++
		case unicode.IsSpace(r):
			spaces++
		case r == '!' || r == '！':
			exclaim++
			puncts++
		case r == '?' || r == '？':
			question++
			puncts++
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			puncts++
		case unicode.Is(unicode.Han, r):
			cjk++
		case unicode.IsLetter(r):
			letters++
			if unicode.IsUpper(r) {
				uppers++
			}
		}
	}
	words := feature.Words(text)
	avgWord := 0.0
	if len(words) > 0 {
		runes := 0
		for _, w := range words {
			runes += len([]rune(w))
		}
		avgWord = float64(runes) / float64(len(words))
	}
	ratio := func(part int) float64 {
		if total == 0 {
			return 0
		}
		return float64(part) / float64(total)
	}
	upperRatio := 0.0
	if letters > 0 {
		upperRatio = float64(uppers) / float64(letters)
	}
	return []float64{
		float64(total) / 100.0,
		float64(len(words)) / 20.0,
		float64(exclaim),
		float64(question),
		ratio(digits),
		upperRatio,
		ratio(puncts),
		ratio(spaces),
		ratio(cjk),
		avgWord / 10.0,
	}
}
