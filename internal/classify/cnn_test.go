package classify

import (
	"errors"
	"testing"
	"time"

	"github.com/ppiankov/baitcheck/internal/model"
)

// cnnTestConfig shrinks the network so tests stay fast.
func cnnTestConfig() *model.Config {
	cfg := testConfig()
	cfg.CNN.VocabSize = 100
	cfg.CNN.SequenceLength = 16
	cfg.CNN.EmbeddingDim = 8
	cfg.CNN.FilterWidths = []int{2, 3}
	cfg.CNN.FiltersPerWidth = 4
	cfg.CNN.Epochs = 10
	cfg.CNN.Timeout = 10 * time.Second
	return cfg
}

func TestTextCNN_PredictBeforeTrain(t *testing.T) {
	c := NewTextCNN(cnnTestConfig())
	_, err := c.Predict("anything")
	if !errors.Is(err, ErrModelNotTrained) {
		t.Errorf("expected ErrModelNotTrained, got %v", err)
	}
}

func TestTextCNN_InsufficientData(t *testing.T) {
	c := NewTextCNN(cnnTestConfig())
	// 8 samples is below the CNN's 10-sample floor.
	_, err := c.Train(separableSamples()[:8], nil)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}

	// Enough samples, but below the per-class floor of 3.
	samples := separableSamples()[:8]
	samples = append(samples,
		model.TrainingSample{Text: "bait one!", Label: model.LabelClickbait},
		model.TrainingSample{Text: "bait two!", Label: model.LabelClickbait},
	)
	_, err = c.Train(samples, nil)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData for 2 clickbait samples, got %v", err)
	}
}

func TestTextCNN_TrainAndPredict(t *testing.T) {
	c := NewTextCNN(cnnTestConfig())
	metrics, err := c.Train(separableSamples(), nil)
	if err != nil {
		t.Fatalf("training failed: %v", err)
	}
	if !c.IsTrained() {
		t.Fatal("expected trained model")
	}
	if metrics.Split == nil {
		t.Fatal("expected a train/test split report")
	}
	if metrics.Accuracy < 0 || metrics.Accuracy > 1 {
		t.Errorf("accuracy out of range: %f", metrics.Accuracy)
	}

	result, err := c.Predict("震惊！这个方法让你月入十万！")
	if err != nil {
		t.Fatalf("prediction failed: %v", err)
	}
	if !result.Prediction.Valid() {
		t.Errorf("invalid prediction %q", result.Prediction)
	}
	if result.Confidence < 0 || result.Confidence > 1 {
		t.Errorf("confidence out of range: %f", result.Confidence)
	}
	// Confidence is the winning class probability, so it is at least 0.5.
	if result.Confidence < 0.5 {
		t.Errorf("winning class probability below 0.5: %f", result.Confidence)
	}
}

func TestTextCNN_Timeout(t *testing.T) {
	cfg := cnnTestConfig()
	cfg.CNN.Timeout = time.Nanosecond
	c := NewTextCNN(cfg)
	_, err := c.Train(separableSamples(), nil)
	if !errors.Is(err, ErrTrainingTimeout) {
		t.Errorf("expected ErrTrainingTimeout, got %v", err)
	}
	if c.IsTrained() {
		t.Error("timed-out training must leave the model untrained")
	}
}

func TestBuildVocab_ReservedIndices(t *testing.T) {
	vocab := buildVocab(separableSamples(), 50)
	if vocab["<PAD>"] != padIndex {
		t.Errorf("expected <PAD> at %d, got %d", padIndex, vocab["<PAD>"])
	}
	if vocab["<UNK>"] != unkIndex {
		t.Errorf("expected <UNK> at %d, got %d", unkIndex, vocab["<UNK>"])
	}
	if len(vocab) > 50 {
		t.Errorf("vocabulary exceeds size cap: %d", len(vocab))
	}
	seen := make(map[int]string, len(vocab))
	for tok, id := range vocab {
		if prev, dup := seen[id]; dup {
			t.Errorf("index %d assigned to both %q and %q", id, prev, tok)
		}
		seen[id] = tok
	}
}

func TestBuildVocab_Deterministic(t *testing.T) {
	a := buildVocab(separableSamples(), 30)
	b := buildVocab(separableSamples(), 30)
	if len(a) != len(b) {
		t.Fatalf("vocab sizes differ: %d vs %d", len(a), len(b))
	}
	for tok, id := range a {
		if b[tok] != id {
			t.Errorf("token %q: index %d vs %d", tok, id, b[tok])
		}
	}
}

func TestEncode_PadAndTruncate(t *testing.T) {
	vocab := map[string]int{"<PAD>": padIndex, "<UNK>": unkIndex, "secret": 2, "trick": 3}

	seq := encode("secret trick", vocab, 5)
	if len(seq) != 5 {
		t.Fatalf("expected length 5, got %d", len(seq))
	}
	if seq[0] != 2 || seq[1] != 3 {
		t.Errorf("expected [2 3 ...], got %v", seq)
	}
	for i := 2; i < 5; i++ {
		if seq[i] != padIndex {
			t.Errorf("expected padding at %d, got %d", i, seq[i])
		}
	}

	// Unknown tokens map to <UNK>.
	seq = encode("mystery secret", vocab, 4)
	if seq[0] != unkIndex || seq[1] != 2 {
		t.Errorf("expected [<UNK> secret ...], got %v", seq)
	}

	// Overlong input is truncated.
	seq = encode("secret trick secret trick secret", vocab, 2)
	if len(seq) != 2 {
		t.Errorf("expected truncation to 2, got %d", len(seq))
	}
}
