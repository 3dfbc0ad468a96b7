package classify

import (
	"testing"

	"github.com/ppiankov/baitcheck/internal/model"
)

func makeBalanced(nPerClass int) []model.TrainingSample {
	var samples []model.TrainingSample
	for i := 0; i < nPerClass; i++ {
		samples = append(samples,
			model.TrainingSample{Text: "normal " + string(rune('a'+i)), Label: model.LabelNormal},
			model.TrainingSample{Text: "bait " + string(rune('a'+i)), Label: model.LabelClickbait},
		)
	}
	return samples
}

func TestStratifiedSplit_PreservesRatios(t *testing.T) {
	samples := makeBalanced(10)
	train, test := StratifiedSplit(samples, 0.2, newRand(1))

	if len(train)+len(test) != len(samples) {
		t.Fatalf("samples lost in split: %d train + %d test != %d", len(train), len(test), len(samples))
	}
	trainN, trainC := model.CountLabels(train)
	testN, testC := model.CountLabels(test)
	if trainN != 8 || trainC != 8 {
		t.Errorf("expected 8+8 training samples, got %d normal, %d clickbait", trainN, trainC)
	}
	if testN != 2 || testC != 2 {
		t.Errorf("expected 2+2 test samples, got %d normal, %d clickbait", testN, testC)
	}
}

func TestStratifiedSplit_InvalidRatioDefaults(t *testing.T) {
	samples := makeBalanced(10)
	for _, ratio := range []float64{0, -0.5, 1, 1.5} {
		_, test := StratifiedSplit(samples, ratio, newRand(1))
		if len(test) != 4 {
			t.Errorf("ratio %f: expected default 0.2 split (4 test), got %d", ratio, len(test))
		}
	}
}

func TestStratifiedSplit_TinyClassStaysInTrain(t *testing.T) {
	samples := []model.TrainingSample{
		{Text: "n1", Label: model.LabelNormal},
		{Text: "n2", Label: model.LabelNormal},
		{Text: "n3", Label: model.LabelNormal},
		{Text: "c1", Label: model.LabelClickbait},
	}
	train, test := StratifiedSplit(samples, 0.2, newRand(1))
	// Neither class is large enough to contribute a test sample at 0.2.
	if len(test) != 0 {
		t.Errorf("expected empty test set, got %d", len(test))
	}
	if len(train) != 4 {
		t.Errorf("expected all 4 samples in train, got %d", len(train))
	}
}

func TestStratifiedSplit_SeededReproducible(t *testing.T) {
	samples := makeBalanced(10)
	trainA, testA := StratifiedSplit(samples, 0.2, newRand(7))
	trainB, testB := StratifiedSplit(samples, 0.2, newRand(7))

	if len(trainA) != len(trainB) || len(testA) != len(testB) {
		t.Fatalf("seeded splits differ in size")
	}
	for i := range trainA {
		if trainA[i] != trainB[i] {
			t.Fatalf("seeded splits differ at train[%d]: %v vs %v", i, trainA[i], trainB[i])
		}
	}
	for i := range testA {
		if testA[i] != testB[i] {
			t.Fatalf("seeded splits differ at test[%d]: %v vs %v", i, testA[i], testB[i])
		}
	}
}
