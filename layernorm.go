package norms

import (
	"fmt"

	"github.com/lth/pure-go-norms/internal/kernels"
)

// LayerNorm normalizes each row's feature vector independently: per-row
// mean and biased variance over the last axis, then scale and shift.
// Stateless; training and inference are the same computation.
type LayerNorm struct {
	dim    int
	eps    float32
	weight []float32
	bias   []float32
}

// NewLayerNorm creates a LayerNorm layer for feature vectors of length
// featureDim, with weight initialized to ones and bias to zeros.
func NewLayerNorm(featureDim int, eps float32) (*LayerNorm, error) {
	if featureDim <= 0 {
		return nil, fmt.Errorf("layernorm: feature dim must be positive, got %d", featureDim)
	}
	if eps <= 0 {
		return nil, fmt.Errorf("layernorm: eps must be positive, got %g", eps)
	}
	return &LayerNorm{
		dim:    featureDim,
		eps:    eps,
		weight: onesVec(featureDim),
		bias:   make([]float32, featureDim),
	}, nil
}

// Apply normalizes every row of x. The mode argument is ignored.
func (ln *LayerNorm) Apply(x *Tensor, _ Mode) (*Tensor, error) {
	if err := checkFeatureDim(x, ln.dim); err != nil {
		return nil, err
	}

	out := x.like()
	forEachRow(x.Rows(), func(r int) {
		off := r * ln.dim
		kernels.LayerNorm(out.data[off:off+ln.dim], x.data[off:off+ln.dim], ln.weight, ln.bias, ln.eps)
	})
	return out, nil
}

// FeatureDim returns the configured feature-vector length.
func (ln *LayerNorm) FeatureDim() int { return ln.dim }

// Eps returns the numerical-stability constant.
func (ln *LayerNorm) Eps() float32 { return ln.eps }

// Weight returns the backing scale vector. An optimizer may update it in place.
func (ln *LayerNorm) Weight() []float32 { return ln.weight }

// Bias returns the backing shift vector. An optimizer may update it in place.
func (ln *LayerNorm) Bias() []float32 { return ln.bias }
