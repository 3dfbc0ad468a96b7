// Package compare owns one instance of each classifier, tracks per-model
// lifecycle state, serializes training, and aggregates predictions into
// comparative summaries.
package compare

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ppiankov/baitcheck/internal/classify"
	"github.com/ppiankov/baitcheck/internal/model"
	"github.com/ppiankov/baitcheck/internal/worker"
)

// slot is one model's lifecycle: idle -> training -> {trained | error}
type slot struct {
	classifier classify.Classifier
	status     model.ModelStatus
	metrics    *model.TrainingMetrics
	lastErr    error
	// inFlight stays true until the training goroutine actually exits.
	// A timed-out run is abandoned (status flips to error) but its
	// goroutine is still inside Train; the flag keeps the slot busy so no
	// second Train can overlap it on the same classifier instance.
	inFlight bool
}

// Orchestrator manages the four classifiers. All slot access goes through
// the mutex; trained model parameters themselves are immutable after
// training completes, so predictions run without it.
type Orchestrator struct {
	mu      sync.Mutex
	cfg     *model.Config
	slots   map[model.ModelType]*slot
	busyAll bool
	cache   *gocache.Cache // nil when disabled
	verbose bool
}

// New builds an orchestrator with one untrained classifier per type
func New(cfg *model.Config) (*Orchestrator, error) {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	slots := make(map[model.ModelType]*slot, 4)
	for _, t := range model.AllModelTypes() {
		c, err := classify.New(t, cfg)
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", t, err)
		}
		slots[t] = &slot{classifier: c, status: model.StatusIdle}
	}
	var cache *gocache.Cache
	if cfg.Cache.Enabled {
		cache = gocache.New(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	}
	return &Orchestrator{
		cfg:     cfg,
		slots:   slots,
		cache:   cache,
		verbose: cfg.Output.Verbose,
	}, nil
}

// ProgressFunc receives per-model training checkpoints
type ProgressFunc func(model.ModelType, model.TrainingProgress)

// TrainModel trains a single model. Fails with ErrAlreadyTraining when that
// model is mid-training, and with ErrTrainingTimeout when the per-model
// budget is exceeded.
func (o *Orchestrator) TrainModel(ctx context.Context, t model.ModelType, samples []model.TrainingSample, onProgress ProgressFunc) (*model.TrainingMetrics, error) {
	o.mu.Lock()
	s, ok := o.slots[t]
	if !ok {
		o.mu.Unlock()
		return nil, fmt.Errorf("unknown model type %q", t)
	}
	if s.status == model.StatusTraining || s.inFlight {
		o.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", classify.ErrAlreadyTraining, t)
	}
	s.status = model.StatusTraining
	s.inFlight = true
	s.metrics = nil
	s.lastErr = nil
	o.mu.Unlock()

	metrics, err := o.runTraining(ctx, s, t, samples, onProgress)

	o.mu.Lock()
	if err != nil {
		s.status = model.StatusError
		s.lastErr = err
	} else {
		s.status = model.StatusTrained
		s.metrics = metrics
	}
	o.mu.Unlock()
	o.dropCached(t)

	return metrics, err
}

// runTraining executes the classifier's Train under the per-model timeout.
// A timed-out training goroutine keeps running to completion; its late
// result is discarded, and the slot's error status keeps the model out of
// prediction queries. The slot's in-flight flag is cleared only when the
// goroutine exits, so a new Train on the same instance cannot start while
// an abandoned one is still running (and a stale run can never overwrite a
// newer run's parameters).
func (o *Orchestrator) runTraining(ctx context.Context, s *slot, t model.ModelType, samples []model.TrainingSample, onProgress ProgressFunc) (*model.TrainingMetrics, error) {
	timeout := o.timeoutFor(t)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		metrics *model.TrainingMetrics
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		var cb classify.ProgressFunc
		if onProgress != nil {
			cb = func(p model.TrainingProgress) { onProgress(t, p) }
		}
		m, err := s.classifier.Train(samples, cb)
		// Clear the busy flag before signaling completion so the slot is
		// already free when the caller observes the result. The send never
		// blocks: done is buffered, and after a timeout nobody receives.
		o.mu.Lock()
		s.inFlight = false
		o.mu.Unlock()
		done <- outcome{metrics: m, err: err}
	}()

	select {
	case out := <-done:
		return out.metrics, out.err
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %s exceeded %v budget", classify.ErrTrainingTimeout, t, timeout)
	}
}

func (o *Orchestrator) timeoutFor(t model.ModelType) time.Duration {
	if t == model.ModelCNN {
		return o.cfg.Orchestrator.CNNTimeout
	}
	return o.cfg.Orchestrator.FastTimeout
}

// TrainAll trains every model sequentially in increasing complexity order.
// A model that times out or fails gets neutral default metrics and the run
// continues; one model's failure never aborts its siblings.
func (o *Orchestrator) TrainAll(ctx context.Context, samples []model.TrainingSample, onProgress ProgressFunc) (map[model.ModelType]*model.TrainingMetrics, error) {
	o.mu.Lock()
	if o.busyAll {
		o.mu.Unlock()
		return nil, fmt.Errorf("%w: multi-model training in progress", classify.ErrAlreadyTraining)
	}
	o.busyAll = true
	o.mu.Unlock()
	defer func() {
		o.mu.Lock()
		o.busyAll = false
		o.mu.Unlock()
	}()

	results := make(map[model.ModelType]*model.TrainingMetrics, 4)
	for _, t := range model.AllModelTypes() {
		metrics, err := o.TrainModel(ctx, t, samples, onProgress)
		if err != nil {
			o.logf("training %s failed: %v (substituting neutral metrics)", t, err)
			metrics = defaultMetrics(len(samples))
			o.mu.Lock()
			o.slots[t].metrics = metrics
			o.mu.Unlock()
		}
		results[t] = metrics
	}
	return results, nil
}

// defaultMetrics is the neutral substitute for a model that timed out or
// failed during TrainAll.
func defaultMetrics(samples int) *model.TrainingMetrics {
	return &model.TrainingMetrics{
		Accuracy:  0.5,
		Precision: 0.5,
		Recall:    0.5,
		F1:        0.5,
		Samples:   samples,
	}
}

// PredictAll queries every model currently in the trained state, fanning
// out over the worker pool. Individual failures are logged and skipped.
// Fails with ErrModelNotTrained when no model is trained.
func (o *Orchestrator) PredictAll(ctx context.Context, text string) ([]*model.ClassificationResult, error) {
	type target struct {
		t model.ModelType
		c classify.Classifier
	}
	var targets []target
	o.mu.Lock()
	for _, t := range model.AllModelTypes() {
		s := o.slots[t]
		if s.status == model.StatusTrained {
			targets = append(targets, target{t: t, c: s.classifier})
		}
	}
	o.mu.Unlock()
	if len(targets) == 0 {
		return nil, fmt.Errorf("%w: no trained models", classify.ErrModelNotTrained)
	}

	byType := make(map[model.ModelType]*model.ClassificationResult, len(targets))
	var missing []target
	for _, tg := range targets {
		if cached, ok := o.getCached(tg.t, text); ok {
			byType[tg.t] = cached
			continue
		}
		missing = append(missing, tg)
	}

	if len(missing) > 0 {
		pool := worker.NewPool(ctx, o.cfg.Orchestrator.PredictWorkers)
		pool.Start()
		for _, tg := range missing {
			c := tg.c
			pool.Submit(worker.Job{
				Model: tg.t,
				Run: func(context.Context) (*model.ClassificationResult, error) {
					return c.Predict(text)
				},
			})
		}
		for _, r := range pool.Wait() {
			if r.Err != nil {
				o.logf("prediction with %s failed: %v", r.Model, r.Err)
				continue
			}
			byType[r.Model] = r.Result
			o.setCached(r.Model, text, r.Result)
		}
	}

	results := make([]*model.ClassificationResult, 0, len(byType))
	for _, t := range model.AllModelTypes() {
		if r, ok := byType[t]; ok {
			results = append(results, r)
		}
	}
	return results, nil
}

// Summary derives the comparative view: best accuracy, fastest training
// and prediction, and (when text is given) the consensus prediction.
// Prediction timings are first-observation latencies: cached results keep
// the processing time of the call that computed them.
func (o *Orchestrator) Summary(ctx context.Context, text string) (*model.ComparisonSummary, error) {
	summary := &model.ComparisonSummary{
		Metrics: make(map[model.ModelType]model.TrainingMetrics),
	}

	o.mu.Lock()
	for t, s := range o.slots {
		if s.status == model.StatusTrained {
			summary.TrainedModels++
		}
		if s.metrics == nil {
			continue
		}
		summary.Metrics[t] = *s.metrics
		if s.metrics.Accuracy > summary.BestAccuracy {
			summary.BestAccuracy = s.metrics.Accuracy
			summary.BestModel = t
		}
		if s.metrics.Duration > 0 &&
			(summary.FastestTrainT == 0 || s.metrics.Duration < summary.FastestTrainT) {
			summary.FastestTrainT = s.metrics.Duration
			summary.FastestTrain = t
		}
	}
	o.mu.Unlock()

	if text == "" {
		return summary, nil
	}

	results, err := o.PredictAll(ctx, text)
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		if summary.FastestPred == "" || r.ProcessingTime < summary.FastestPredT {
			summary.FastestPredT = r.ProcessingTime
			summary.FastestPred = r.Model
		}
	}
	summary.Consensus = Consensus(results)
	return summary, nil
}

// Consensus is the majority vote across the given predictions. Agreement
// is the winning-vote fraction; confidence is the mean across all voters.
// Ties go to the side with the higher summed confidence.
func Consensus(results []*model.ClassificationResult) *model.ConsensusPrediction {
	if len(results) == 0 {
		return nil
	}
	votes := map[model.Label]int{}
	confSum := map[model.Label]float64{}
	total := 0.0
	for _, r := range results {
		votes[r.Prediction]++
		confSum[r.Prediction] += r.Confidence
		total += r.Confidence
	}
	winner := model.LabelNormal
	nc, cc := votes[model.LabelNormal], votes[model.LabelClickbait]
	switch {
	case cc > nc:
		winner = model.LabelClickbait
	case cc == nc && confSum[model.LabelClickbait] > confSum[model.LabelNormal]:
		winner = model.LabelClickbait
	}
	return &model.ConsensusPrediction{
		Prediction: winner,
		Agreement:  float64(votes[winner]) / float64(len(results)),
		Confidence: total / float64(len(results)),
		Votes:      votes,
	}
}

// Explanations returns each trained model's reasoning for the given text
func (o *Orchestrator) Explanations(ctx context.Context, text string) (map[model.ModelType][]string, error) {
	results, err := o.PredictAll(ctx, text)
	if err != nil {
		return nil, err
	}
	out := make(map[model.ModelType][]string, len(results))
	for _, r := range results {
		out[r.Model] = r.Reasoning
	}
	return out, nil
}

// ResetModel forces one model back to idle and discards its metrics.
// Fails with ErrAlreadyTraining while a training run is still in flight,
// since resetting under a live Train would race its parameter publish.
func (o *Orchestrator) ResetModel(t model.ModelType) error {
	o.mu.Lock()
	s, ok := o.slots[t]
	if !ok {
		o.mu.Unlock()
		return fmt.Errorf("unknown model type %q", t)
	}
	if s.status == model.StatusTraining || s.inFlight {
		o.mu.Unlock()
		return fmt.Errorf("%w: %s", classify.ErrAlreadyTraining, t)
	}
	s.classifier.Reset()
	s.status = model.StatusIdle
	s.metrics = nil
	s.lastErr = nil
	o.mu.Unlock()
	o.dropCached(t)
	return nil
}

// ResetAll resets every model
func (o *Orchestrator) ResetAll() {
	for _, t := range model.AllModelTypes() {
		_ = o.ResetModel(t)
	}
	if o.cache != nil {
		o.cache.Flush()
	}
}

// Status returns each model's lifecycle state
func (o *Orchestrator) Status() map[model.ModelType]model.ModelStatus {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make(map[model.ModelType]model.ModelStatus, len(o.slots))
	for t, s := range o.slots {
		out[t] = s.status
	}
	return out
}

// Model returns the classifier instance for a type
func (o *Orchestrator) Model(t model.ModelType) (classify.Classifier, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	s, ok := o.slots[t]
	if !ok {
		return nil, fmt.Errorf("unknown model type %q", t)
	}
	return s.classifier, nil
}

func cacheKey(t model.ModelType, text string) string {
	return string(t) + "|" + text
}

func (o *Orchestrator) getCached(t model.ModelType, text string) (*model.ClassificationResult, bool) {
	if o.cache == nil {
		return nil, false
	}
	if v, ok := o.cache.Get(cacheKey(t, text)); ok {
		return v.(*model.ClassificationResult), true
	}
	return nil, false
}

func (o *Orchestrator) setCached(t model.ModelType, text string, r *model.ClassificationResult) {
	if o.cache == nil {
		return
	}
	o.cache.Set(cacheKey(t, text), r, gocache.DefaultExpiration)
}

// dropCached removes all cached predictions for a model; called whenever
// that model's parameters change.
func (o *Orchestrator) dropCached(t model.ModelType) {
	if o.cache == nil {
		return
	}
	prefix := string(t) + "|"
	for key := range o.cache.Items() {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			o.cache.Delete(key)
		}
	}
}

func (o *Orchestrator) logf(format string, args ...interface{}) {
	if o.verbose {
		fmt.Fprintf(os.Stderr, "[compare] "+format+"\n", args...)
	}
}
