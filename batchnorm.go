package norms

import (
	"fmt"

	"github.com/lth/pure-go-norms/internal/kernels"
)

// BatchNorm normalizes each feature channel across the batch axis. In
// training mode it computes biased per-feature statistics over all rows of
// the current batch, normalizes with them, and folds them into the running
// statistics by exponential moving average; in inference mode it normalizes
// with the running statistics and mutates nothing.
//
// The running-statistic update is a plain read-modify-write: concurrent
// training-mode Apply calls on one instance must be serialized by the
// caller, one update per training step.
type BatchNorm struct {
	dim      int
	eps      float32
	momentum float32

	weight []float32
	bias   []float32

	runningMean []float32
	runningVar  []float32
}

// NewBatchNorm creates a BatchNorm layer for feature vectors of length
// featureDim. weight starts at ones, bias at zeros, running mean at zeros
// and running variance at ones.
func NewBatchNorm(featureDim int, eps, momentum float32) (*BatchNorm, error) {
	if featureDim <= 0 {
		return nil, fmt.Errorf("batchnorm: feature dim must be positive, got %d", featureDim)
	}
	if eps <= 0 {
		return nil, fmt.Errorf("batchnorm: eps must be positive, got %g", eps)
	}
	if momentum < 0 || momentum > 1 {
		return nil, fmt.Errorf("batchnorm: momentum must be in [0,1], got %g", momentum)
	}
	return &BatchNorm{
		dim:         featureDim,
		eps:         eps,
		momentum:    momentum,
		weight:      onesVec(featureDim),
		bias:        make([]float32, featureDim),
		runningMean: make([]float32, featureDim),
		runningVar:  onesVec(featureDim),
	}, nil
}

// Apply normalizes x. All axes before the last one count as batch; a
// rank-1 input has no batch axis and is rejected. A single-row training
// batch is legal but degenerate: every feature has variance 0 and only eps
// keeps the division finite.
func (bn *BatchNorm) Apply(x *Tensor, mode Mode) (*Tensor, error) {
	if err := checkFeatureDim(x, bn.dim); err != nil {
		return nil, err
	}
	if x.Rank() < 2 {
		return nil, fmt.Errorf("batchnorm: input must have a batch axis, got shape %v", x.Shape())
	}

	rows := x.Rows()
	out := x.like()

	if mode == Training {
		mean := make([]float32, bn.dim)
		variance := make([]float32, bn.dim)
		kernels.BatchStats(mean, variance, x.data, rows, bn.dim)

		// Normalize with the fresh batch statistics, not the updated running ones.
		kernels.NormalizeWithStats(out.data, x.data, rows, bn.dim, mean, variance, bn.weight, bn.bias, bn.eps)

		kernels.UpdateRunning(bn.runningMean, mean, bn.momentum)
		kernels.UpdateRunning(bn.runningVar, variance, bn.momentum)
		return out, nil
	}

	kernels.NormalizeWithStats(out.data, x.data, rows, bn.dim, bn.runningMean, bn.runningVar, bn.weight, bn.bias, bn.eps)
	return out, nil
}

// FeatureDim returns the configured feature-vector length.
func (bn *BatchNorm) FeatureDim() int { return bn.dim }

// Eps returns the numerical-stability constant.
func (bn *BatchNorm) Eps() float32 { return bn.eps }

// Momentum returns the running-statistic EMA coefficient.
func (bn *BatchNorm) Momentum() float32 { return bn.momentum }

// Weight returns the backing scale vector. An optimizer may update it in place.
func (bn *BatchNorm) Weight() []float32 { return bn.weight }

// Bias returns the backing shift vector. An optimizer may update it in place.
func (bn *BatchNorm) Bias() []float32 { return bn.bias }

// RunningMean returns a copy of the running mean.
func (bn *BatchNorm) RunningMean() []float32 {
	return append([]float32(nil), bn.runningMean...)
}

// RunningVar returns a copy of the running variance.
func (bn *BatchNorm) RunningVar() []float32 {
	return append([]float32(nil), bn.runningVar...)
}
