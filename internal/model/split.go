package model

import (
	"math"
	"math/rand"
)

// trainTestSplit shuffles example indices with the configured seed and
// splits them into train and held-out test sets. The fixed seed keeps the
// split reproducible across calls. Both sides always get at least one index.
func trainTestSplit(n int, testRatio float64, seed int64) (train, test []int) {
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(n)

	testN := int(math.Round(float64(n) * testRatio))
	if testN < 1 {
		testN = 1
	}
	if testN >= n {
		testN = n - 1
	}

	return perm[testN:], perm[:testN]
}
