// Package benchmark orchestrates repeated train/test evaluation of a GP
// regressor over a fixed feature matrix and label vector, reporting aggregate
// regression metrics across trials.
package benchmark

import (
	"math"
	"math/rand/v2"

	"github.com/YuminosukeSato/molgp/pkg/errors"
)

// TrainTestSplit is a partition of row indices into disjoint train and test
// sets.
type TrainTestSplit struct {
	TrainIndices []int
	TestIndices  []int
}

// Split partitions [0, nSamples) into shuffled train/test index sets with the
// requested test fraction. The seed fully determines the shuffle, so the same
// (nSamples, testSize, seed) triple reproduces the same split on any rerun;
// the benchmark uses the trial index as the seed.
//
// The test set size is rounded up, matching scikit-learn's train_test_split.
func Split(nSamples int, testSize float64, seed int64) (TrainTestSplit, error) {
	if nSamples <= 0 {
		return TrainTestSplit{}, errors.NewValueError("benchmark.Split", "nSamples must be positive")
	}
	if testSize <= 0 || testSize >= 1 {
		return TrainTestSplit{}, errors.NewValueError("benchmark.Split", "testSize must be in (0, 1)")
	}

	nTest := int(math.Ceil(float64(nSamples) * testSize))
	nTrain := nSamples - nTest
	if nTest == 0 || nTrain == 0 {
		return TrainTestSplit{}, errors.NewSplitError(nSamples, testSize, nTrain, nTest)
	}

	indices := make([]int, nSamples)
	for i := range indices {
		indices[i] = i
	}

	r := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	r.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	split := TrainTestSplit{
		TestIndices:  make([]int, nTest),
		TrainIndices: make([]int, nTrain),
	}
	copy(split.TestIndices, indices[:nTest])
	copy(split.TrainIndices, indices[nTest:])
	return split, nil
}
