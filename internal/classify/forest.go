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

// Forest is a bootstrap-aggregated collection of CART trees with random
// feature sub-sampling at each split. The most compute-intensive model:
// split search is O(trees * nodes * samples * featureSubset) in the worst
// case, bounded by the tree count and depth in config.
type Forest struct {
	mu           sync.RWMutex
	cfg          model.ForestConfig
	seed         int64
	progressRate float64

	extractor  *feature.Extractor
	trained    bool
	trees      []*treeNode
	importance []float64
}

type treeNode struct {
	leaf       bool
	label      model.Label
	gini       float64
	featureIdx int
	threshold  float64
	left       *treeNode
	right      *treeNode
}

// FeatureImportance pairs a feature name with its accumulated Gini gain
type FeatureImportance struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// NewForest creates an untrained decision forest
func NewForest(cfg *model.Config) *Forest {
	return &Forest{
		cfg:          cfg.Forest,
		seed:         cfg.Seed,
		progressRate: cfg.Orchestrator.ProgressPerSecond,
		extractor:    feature.NewExtractor(),
	}
}

// Type implements Classifier
func (f *Forest) Type() model.ModelType { return model.ModelForest }

// IsTrained implements Classifier
func (f *Forest) IsTrained() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.trained
}

// Reset implements Classifier
func (f *Forest) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trained = false
	f.trees = nil
	f.importance = nil
	f.extractor = feature.NewExtractor()
}

// Train grows the forest: one bootstrap sample per tree, Gini-impurity
// split selection over a random sqrt-sized feature subset per node.
func (f *Forest) Train(samples []model.TrainingSample, onProgress ProgressFunc) (*model.TrainingMetrics, error) {
	start := time.Now()
	prog := newProgressEmitter(onProgress, f.progressRate)
	prog.emit("validate", 0, "checking sample counts")

	if len(samples) < f.cfg.MinSamples {
		return nil, insufficientData(f.cfg.MinSamples, len(samples))
	}
	nNormal, nClickbait := model.CountLabels(samples)
	if nNormal < f.cfg.MinPerClass {
		return nil, insufficientClass(string(model.LabelNormal), f.cfg.MinPerClass, nNormal)
	}
	if nClickbait < f.cfg.MinPerClass {
		return nil, insufficientClass(string(model.LabelClickbait), f.cfg.MinPerClass, nClickbait)
	}

	prog.emit("features", 10, "fitting term index and extracting vectors")
	extractor := feature.NewExtractor()
	docs := make([]string, len(samples))
	for i, s := range samples {
		docs[i] = s.Text
	}
	extractor.FitCorpus(docs)

	X := make([][]float64, len(samples))
	y := make([]model.Label, len(samples))
	for i, s := range samples {
		X[i] = extractor.Vector(extractor.Extract(s.Text))
		y[i] = s.Label
	}

	dims := feature.VectorDim()
	subset := int(math.Floor(math.Sqrt(float64(dims))))
	if subset < 1 {
		subset = 1
	}
	rng := newRand(f.seed)
	importance := make([]float64, dims)
	trees := make([]*treeNode, 0, f.cfg.Trees)

	grower := &treeGrower{
		X:          X,
		y:          y,
		maxDepth:   f.cfg.MaxDepth,
		minSplit:   f.cfg.MinSplit,
		subset:     subset,
		dims:       dims,
		rng:        rng,
		importance: importance,
	}

	for t := 0; t < f.cfg.Trees; t++ {
		indices := make([]int, len(samples))
		for i := range indices {
			indices[i] = rng.Intn(len(samples))
		}
		trees = append(trees, grower.grow(indices, 0))
		prog.emit("grow", 10+80*float64(t+1)/float64(f.cfg.Trees),
			fmt.Sprintf("grew tree %d/%d", t+1, f.cfg.Trees))
	}

	prog.emit("evaluate", 92, "computing in-sample metrics")
	predicted := make([]model.Label, len(samples))
	for i := range X {
		predicted[i], _, _ = vote(trees, X[i])
	}
	metrics := Evaluate(predicted, y)
	metrics.Duration = time.Since(start)

	f.mu.Lock()
	f.extractor = extractor
	f.trees = trees
	f.importance = importance
	f.trained = true
	f.mu.Unlock()

	prog.emit("done", 100, "training complete")
	return &metrics, nil
}

// Predict routes the feature vector through every tree and takes the
// majority vote. Confidence is the winning vote share.
func (f *Forest) Predict(text string) (*model.ClassificationResult, error) {
	start := time.Now()

	f.mu.RLock()
	defer f.mu.RUnlock()
	if !f.trained {
		return nil, fmt.Errorf("%w: decision forest", ErrModelNotTrained)
	}

	features := f.extractor.Extract(text)
	v := f.extractor.Vector(features)
	label, share, leafConf := vote(f.trees, v)

	reasoning := []string{
		fmt.Sprintf("%d of %d trees voted %q", int(share*float64(len(f.trees))+0.5), len(f.trees), label),
		fmt.Sprintf("mean leaf purity across trees: %.2f", leafConf),
	}
	if top := f.topImportances(3); len(top) > 0 {
		names := make([]string, len(top))
		for i, imp := range top {
			names[i] = imp.Name
		}
		reasoning = append(reasoning, fmt.Sprintf("most informative features: %v", names))
	}

	return &model.ClassificationResult{
		Model:          model.ModelForest,
		Prediction:     label,
		Confidence:     share,
		Features:       &features,
		Reasoning:      reasoning,
		ProcessingTime: time.Since(start),
	}, nil
}

// Importances returns the accumulated per-feature Gini gains, sorted
// descending. Empty before training.
func (f *Forest) Importances() []FeatureImportance {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.topImportances(len(f.importance))
}

func (f *Forest) topImportances(n int) []FeatureImportance {
	names := feature.VectorNames()
	out := make([]FeatureImportance, 0, len(f.importance))
	for i, v := range f.importance {
		out = append(out, FeatureImportance{Name: names[i], Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}

// vote returns the majority label, its vote share, and the mean per-tree
// leaf confidence (1 - leaf Gini).
func vote(trees []*treeNode, v []float64) (model.Label, float64, float64) {
	votes := map[model.Label]int{}
	leafConf := 0.0
	for _, tree := range trees {
		leaf := tree.route(v)
		votes[leaf.label]++
		leafConf += 1 - leaf.gini
	}
	label := model.LabelNormal
	if votes[model.LabelClickbait] > votes[model.LabelNormal] {
		label = model.LabelClickbait
	}
	share := float64(votes[label]) / float64(len(trees))
	return label, share, leafConf / float64(len(trees))
}

func (n *treeNode) route(v []float64) *treeNode {
	if n.leaf {
		return n
	}
	if v[n.featureIdx] <= n.threshold {
		return n.left.route(v)
	}
	return n.right.route(v)
}

// treeGrower holds the shared training matrix so recursion only passes
// index slices.
type treeGrower struct {
	X          [][]float64
	y          []model.Label
	maxDepth   int
	minSplit   int
	subset     int
	dims       int
	rng        *rand.Rand
	importance []float64
}

func (g *treeGrower) grow(indices []int, depth int) *treeNode {
	parentGini := giniOf(g.y, indices)

	if depth >= g.maxDepth || len(indices) < g.minSplit || parentGini == 0 {
		return g.leaf(indices, parentGini)
	}

	bestGain := 0.0
	bestFeature := -1
	bestThreshold := 0.0
	var bestLeft, bestRight []int

	for _, d := range g.rng.Perm(g.dims)[:g.subset] {
		values := make([]float64, 0, len(indices))
		seen := map[float64]struct{}{}
		for _, i := range indices {
			val := g.X[i][d]
			if _, dup := seen[val]; !dup {
				seen[val] = struct{}{}
				values = append(values, val)
			}
		}
		if len(values) < 2 {
			continue
		}
		sort.Float64s(values)

		for k := 0; k+1 < len(values); k++ {
			threshold := (values[k] + values[k+1]) / 2
			var left, right []int
			for _, i := range indices {
				if g.X[i][d] <= threshold {
					left = append(left, i)
				} else {
					right = append(right, i)
				}
			}
			if len(left) == 0 || len(right) == 0 {
				continue
			}
			weighted := (float64(len(left))*giniOf(g.y, left) +
				float64(len(right))*giniOf(g.y, right)) / float64(len(indices))
			gain := parentGini - weighted
			if gain > bestGain {
				bestGain = gain
				bestFeature = d
				bestThreshold = threshold
				bestLeft, bestRight = left, right
			}
		}
	}

	if bestFeature < 0 {
		return g.leaf(indices, parentGini)
	}
	g.importance[bestFeature] += bestGain

	return &treeNode{
		featureIdx: bestFeature,
		threshold:  bestThreshold,
		left:       g.grow(bestLeft, depth+1),
		right:      g.grow(bestRight, depth+1),
	}
}

func (g *treeGrower) leaf(indices []int, gini float64) *treeNode {
	clickbait := 0
	for _, i := range indices {
		if g.y[i] == model.LabelClickbait {
			clickbait++
		}
	}
	label := model.LabelNormal
	if clickbait*2 > len(indices) {
		label = model.LabelClickbait
	}
	return &treeNode{leaf: true, label: label, gini: gini}
}

func giniOf(y []model.Label, indices []int) float64 {
	if len(indices) == 0 {
		return 0
	}
	clickbait := 0
	for _, i := range indices {
		if y[i] == model.LabelClickbait {
			clickbait++
		}
	}
	p := float64(clickbait) / float64(len(indices))
	return 1 - p*p - (1-p)*(1-p)
}
