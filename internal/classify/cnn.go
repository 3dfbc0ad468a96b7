package classify

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/ppiankov/baitcheck/internal/feature"
	"github.com/ppiankov/baitcheck/internal/model"
)

// Token indices reserved in every vocabulary.
const (
	padIndex = 0
	unkIndex = 1
)

// TextCNN is a minimal 1-D convolutional text classifier: embedding lookup,
// parallel filter banks of distinct widths with ReLU and max-pooling, and a
// single dense sigmoid unit.
//
// Training is a documented bounded-effort approximation, not full
// backpropagation: each step updates the dense layer and, through the
// max-pool positions only, the first (narrowest) filter bank. The embedding
// and remaining banks stay at their random initialization. A wall-clock
// timeout bounds the whole run.
type TextCNN struct {
	mu           sync.RWMutex
	cfg          model.CNNConfig
	seed         int64
	progressRate float64

	trained   bool
	vocab     map[string]int
	embedding [][]float64 // vocab x embedding dim
	banks     []convBank
	denseW    []float64
	denseB    float64
}

type convBank struct {
	width   int
	kernels [][][]float64 // filters x width x embedding dim
	biases  []float64
}

// NewTextCNN creates an untrained convolutional classifier
func NewTextCNN(cfg *model.Config) *TextCNN {
	return &TextCNN{
		cfg:          cfg.CNN,
		seed:         cfg.Seed,
		progressRate: cfg.Orchestrator.ProgressPerSecond,
	}
}

// Type implements Classifier
func (c *TextCNN) Type() model.ModelType { return model.ModelCNN }

// IsTrained implements Classifier
func (c *TextCNN) IsTrained() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.trained
}

// Reset implements Classifier
func (c *TextCNN) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trained = false
	c.vocab = nil
	c.embedding = nil
	c.banks = nil
	c.denseW = nil
	c.denseB = 0
}

// Train builds the vocabulary, initializes the network, and runs the
// simplified gradient updates under the configured wall-clock timeout.
// Exceeding the timeout fails with ErrTrainingTimeout.
func (c *TextCNN) Train(samples []model.TrainingSample, onProgress ProgressFunc) (*model.TrainingMetrics, error) {
	start := time.Now()
	deadline := start.Add(c.cfg.Timeout)
	prog := newProgressEmitter(onProgress, c.progressRate)
	prog.emit("validate", 0, "checking sample counts")

	if len(samples) < c.cfg.MinSamples {
		return nil, insufficientData(c.cfg.MinSamples, len(samples))
	}
	nNormal, nClickbait := model.CountLabels(samples)
	if nNormal < c.cfg.MinPerClass {
		return nil, insufficientClass(string(model.LabelNormal), c.cfg.MinPerClass, nNormal)
	}
	if nClickbait < c.cfg.MinPerClass {
		return nil, insufficientClass(string(model.LabelClickbait), c.cfg.MinPerClass, nClickbait)
	}

	prog.emit("split", 5, "stratified train/test split")
	rng := newRand(c.seed)
	train, test := StratifiedSplit(samples, c.cfg.TestRatio, rng)
	if len(train) == 0 {
		train = samples
	}

	prog.emit("vocab", 10, "building vocabulary")
	vocab := buildVocab(train, c.cfg.VocabSize)
	sequences := make([][]int, len(train))
	targets := make([]float64, len(train))
	for i, s := range train {
		sequences[i] = encode(s.Text, vocab, c.cfg.SequenceLength)
		if s.Label == model.LabelClickbait {
			targets[i] = 1
		}
	}

	prog.emit("init", 15, "initializing network weights")
	net := newCNNWeights(c.cfg, len(vocab), rng)

	prog.emit("train", 20, "running simplified gradient updates")
	order := make([]int, len(train))
	for i := range order {
		order[i] = i
	}
	for epoch := 0; epoch < c.cfg.Epochs; epoch++ {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		epochLoss := 0.0
		counted := 0
		for _, i := range order {
			if time.Now().After(deadline) {
				return nil, fmt.Errorf("%w: cnn exceeded %v budget", ErrTrainingTimeout, c.cfg.Timeout)
			}
			pooled, maxPos, p := net.forward(sequences[i])
			if math.IsNaN(p) || math.IsInf(p, 0) {
				// Numeric failure is contained to this sample.
				continue
			}
			net.step(sequences[i], pooled, maxPos, p, targets[i], c.cfg.LearningRate)
			epochLoss += bceLoss(targets[i], p)
			counted++
		}
		if counted > 0 {
			prog.emit("train", 20+65*float64(epoch+1)/float64(c.cfg.Epochs),
				fmt.Sprintf("epoch %d/%d, loss %.4f", epoch+1, c.cfg.Epochs, epochLoss/float64(counted)))
		}
	}

	prog.emit("evaluate", 90, "evaluating both partitions")
	evalSet := func(set []model.TrainingSample) model.TrainingMetrics {
		predicted := make([]model.Label, len(set))
		actual := make([]model.Label, len(set))
		for i, s := range set {
			_, _, p := net.forward(encode(s.Text, vocab, c.cfg.SequenceLength))
			predicted[i] = probLabel(p)
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

	c.mu.Lock()
	c.vocab = vocab
	c.embedding = net.embedding
	c.banks = net.banks
	c.denseW = net.denseW
	c.denseB = net.denseB
	c.trained = true
	c.mu.Unlock()

	prog.emit("done", 100, "training complete")
	return &metrics, nil
}

// Predict runs the forward pass. Confidence is the winning class
// probability.
func (c *TextCNN) Predict(text string) (*model.ClassificationResult, error) {
	start := time.Now()

	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.trained {
		return nil, fmt.Errorf("%w: cnn", ErrModelNotTrained)
	}

	net := &cnnWeights{embedding: c.embedding, banks: c.banks, denseW: c.denseW, denseB: c.denseB}
	seq := encode(text, c.vocab, c.cfg.SequenceLength)
	_, _, p := net.forward(seq)
	if math.IsNaN(p) || math.IsInf(p, 0) {
		p = 0.5
	}
	label := probLabel(p)
	confidence := p
	if label == model.LabelNormal {
		confidence = 1 - p
	}

	known := 0
	for _, id := range seq {
		if id != padIndex && id != unkIndex {
			known++
		}
	}
	reasoning := []string{
		fmt.Sprintf("dense sigmoid output %.3f (clickbait above 0.5)", p),
		fmt.Sprintf("%d of %d sequence positions map to known vocabulary", known, len(seq)),
	}

	return &model.ClassificationResult{
		Model:          model.ModelCNN,
		Prediction:     label,
		Confidence:     confidence,
		Reasoning:      reasoning,
		ProcessingTime: time.Since(start),
	}, nil
}

// buildVocab keeps the top-N most frequent tokens plus <PAD>/<UNK>.
// Ordering is deterministic (frequency desc, then token).
func buildVocab(samples []model.TrainingSample, size int) map[string]int {
	if size < 4 {
		size = 4
	}
	freq := map[string]int{}
	for _, s := range samples {
		for _, tok := range feature.Tokenize(s.Text) {
			freq[tok]++
		}
	}
	tokens := make([]string, 0, len(freq))
	for tok := range freq {
		tokens = append(tokens, tok)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if freq[tokens[i]] != freq[tokens[j]] {
			return freq[tokens[i]] > freq[tokens[j]]
		}
		return tokens[i] < tokens[j]
	})
	if len(tokens) > size-2 {
		tokens = tokens[:size-2]
	}
	vocab := make(map[string]int, len(tokens)+2)
	vocab["<PAD>"] = padIndex
	vocab["<UNK>"] = unkIndex
	for i, tok := range tokens {
		vocab[tok] = i + 2
	}
	return vocab
}

// encode maps text to a fixed-length index sequence, truncating or
// right-padding with <PAD>.
func encode(text string, vocab map[string]int, length int) []int {
	seq := make([]int, length)
	for i, tok := range feature.Tokenize(text) {
		if i >= length {
			break
		}
		id, ok := vocab[tok]
		if !ok {
			id = unkIndex
		}
		seq[i] = id
	}
	return seq
}

type cnnWeights struct {
	embedding [][]float64
	banks     []convBank
	denseW    []float64
	denseB    float64
}

func newCNNWeights(cfg model.CNNConfig, vocabSize int, rng *rand.Rand) *cnnWeights {
	scale := 0.1
	embedding := make([][]float64, vocabSize)
	for i := range embedding {
		row := make([]float64, cfg.EmbeddingDim)
		if i != padIndex {
			for d := range row {
				row[d] = rng.NormFloat64() * scale
			}
		}
		embedding[i] = row
	}

	banks := make([]convBank, len(cfg.FilterWidths))
	total := 0
	for b, width := range cfg.FilterWidths {
		kernels := make([][][]float64, cfg.FiltersPerWidth)
		biases := make([]float64, cfg.FiltersPerWidth)
		for k := range kernels {
			kernel := make([][]float64, width)
			for w := range kernel {
				kernel[w] = make([]float64, cfg.EmbeddingDim)
				for d := range kernel[w] {
					kernel[w][d] = rng.NormFloat64() * scale
				}
			}
			kernels[k] = kernel
		}
		banks[b] = convBank{width: width, kernels: kernels, biases: biases}
		total += cfg.FiltersPerWidth
	}

	denseW := make([]float64, total)
	for i := range denseW {
		denseW[i] = rng.NormFloat64() * scale
	}
	return &cnnWeights{embedding: embedding, banks: banks, denseW: denseW}
}

// forward embeds the sequence, convolves each bank with ReLU and
// max-pooling, and applies the dense sigmoid unit. maxPos records the
// pooled window position per filter (needed for the simplified update).
func (n *cnnWeights) forward(seq []int) (pooled []float64, maxPos []int, prob float64) {
	embDim := len(n.embedding[0])
	embedded := make([][]float64, len(seq))
	for i, id := range seq {
		if id >= 0 && id < len(n.embedding) {
			embedded[i] = n.embedding[id]
		} else {
			embedded[i] = n.embedding[unkIndex]
		}
	}

	totalFilters := 0
	for _, bank := range n.banks {
		totalFilters += len(bank.kernels)
	}
	pooled = make([]float64, 0, totalFilters)
	maxPos = make([]int, 0, totalFilters)

	for _, bank := range n.banks {
		for k, kernel := range bank.kernels {
			best := 0.0
			bestPos := -1
			for pos := 0; pos+bank.width <= len(seq); pos++ {
				sum := bank.biases[k]
				for w := 0; w < bank.width; w++ {
					row := embedded[pos+w]
					for d := 0; d < embDim; d++ {
						sum += kernel[w][d] * row[d]
					}
				}
				if sum > best { // ReLU folded into max-pooling
					best = sum
					bestPos = pos
				}
			}
			pooled = append(pooled, best)
			maxPos = append(maxPos, bestPos)
		}
	}

	z := n.denseB
	for i, v := range pooled {
		z += n.denseW[i] * v
	}
	return pooled, maxPos, sigmoid(z)
}

// step applies the simplified update: full gradient on the dense layer,
// and gradient through the max-pool position for the first bank's kernels
// only.
func (n *cnnWeights) step(seq []int, pooled []float64, maxPos []int, p, target, lr float64) {
	dz := p - target

	oldDense := make([]float64, len(n.denseW))
	copy(oldDense, n.denseW)
	for i, v := range pooled {
		n.denseW[i] -= lr * dz * v
	}
	n.denseB -= lr * dz

	if len(n.banks) == 0 {
		return
	}
	bank := &n.banks[0]
	embDim := len(n.embedding[0])
	for k := range bank.kernels {
		pos := maxPos[k]
		if pos < 0 || pooled[k] <= 0 {
			continue
		}
		delta := dz * oldDense[k]
		for w := 0; w < bank.width; w++ {
			id := seq[pos+w]
			row := n.embedding[id]
			for d := 0; d < embDim; d++ {
				bank.kernels[k][w][d] -= lr * delta * row[d]
			}
		}
		bank.biases[k] -= lr * delta
	}
}
