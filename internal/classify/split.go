package classify

import (
	"math/rand"
	"time"

	"github.com/ppiankov/baitcheck/internal/model"
)

// newRand returns a generator for the given seed. Seed 0 derives from the
// wall clock and is non-deterministic by design; tests pass explicit seeds.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// StratifiedSplit partitions samples into train/test sets preserving label
// ratios. Each class is shuffled independently with rng, then its first
// testRatio fraction goes to the test set. A class too small to contribute
// a test sample stays entirely in the training set.
func StratifiedSplit(samples []model.TrainingSample, testRatio float64, rng *rand.Rand) (train, test []model.TrainingSample) {
	if testRatio <= 0 || testRatio >= 1 {
		testRatio = 0.2
	}
	if rng == nil {
		rng = newRand(0)
	}

	normal, clickbait := model.SplitByLabel(samples)
	for _, class := range [][]model.TrainingSample{normal, clickbait} {
		shuffled := make([]model.TrainingSample, len(class))
		copy(shuffled, class)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		nTest := int(float64(len(shuffled)) * testRatio)
		test = append(test, shuffled[:nTest]...)
		train = append(train, shuffled[nTest:]...)
	}

	// Interleave-shuffle the merged sets so class runs don't bias
	// order-sensitive consumers.
	rng.Shuffle(len(train), func(i, j int) { train[i], train[j] = train[j], train[i] })
	rng.Shuffle(len(test), func(i, j int) { test[i], test[j] = test[j], test[i] })
	return train, test
}
