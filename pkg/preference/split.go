package preference

import (
	"fmt"
	"math/rand"
)

// Split partitions the comparisons into train and test sets using a seeded
// shuffle, so the same data, fraction and seed always produce the same
// partitions. The test set gets ceil(len*testFraction) records but never all
// of them.
func Split(comparisons []Comparison, testFraction float64, seed int64) (train, test []Comparison, err error) {
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, fmt.Errorf("test fraction must be in (0, 1), got %g", testFraction)
	}
	if len(comparisons) < 2 {
		return nil, nil, fmt.Errorf("need at least 2 records to split, got %d", len(comparisons))
	}

	shuffled := make([]Comparison, len(comparisons))
	copy(shuffled, comparisons)

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	nTest := int(float64(len(shuffled))*testFraction + 0.5)
	if nTest == 0 {
		nTest = 1
	}
	if nTest == len(shuffled) {
		nTest = len(shuffled) - 1
	}

	return shuffled[nTest:], shuffled[:nTest], nil
}
