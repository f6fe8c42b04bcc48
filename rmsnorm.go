package norms

import (
	"fmt"

	"github.com/lth/pure-go-norms/internal/kernels"
)

// RMSNorm normalizes each row's feature vector by its root-mean-square
// magnitude: out = weight * x / sqrt(mean(x^2) + eps). No mean subtraction
// and no bias term, which makes it one reduction cheaper than LayerNorm.
// Stateless and mode-independent.
type RMSNorm struct {
	dim    int
	eps    float32
	weight []float32
}

// NewRMSNorm creates an RMSNorm layer for feature vectors of length
// featureDim, with weight initialized to ones.
func NewRMSNorm(featureDim int, eps float32) (*RMSNorm, error) {
	if featureDim <= 0 {
		return nil, fmt.Errorf("rmsnorm: feature dim must be positive, got %d", featureDim)
	}
	if eps <= 0 {
		return nil, fmt.Errorf("rmsnorm: eps must be positive, got %g", eps)
	}
	return &RMSNorm{
		dim:    featureDim,
		eps:    eps,
		weight: onesVec(featureDim),
	}, nil
}

// Apply normalizes every row of x. The mode argument is ignored.
func (rn *RMSNorm) Apply(x *Tensor, _ Mode) (*Tensor, error) {
	if err := checkFeatureDim(x, rn.dim); err != nil {
		return nil, err
	}

	out := x.like()
	forEachRow(x.Rows(), func(r int) {
		off := r * rn.dim
		kernels.RMSNorm(out.data[off:off+rn.dim], x.data[off:off+rn.dim], rn.weight, rn.eps)
	})
	return out, nil
}

// ApplyF16 normalizes rows of IEEE-754 binary16 activations given as raw
// bits, rows*featureDim elements in row-major order. The normalization runs
// in float32, is rounded back to binary16, and only then scaled, so reduced
// precision inputs keep their magnitude stability.
func (rn *RMSNorm) ApplyF16(src []uint16, rows int) ([]uint16, error) {
	if rows <= 0 {
		return nil, fmt.Errorf("rmsnorm: rows must be positive, got %d", rows)
	}
	if len(src) != rows*rn.dim {
		return nil, fmt.Errorf("rmsnorm: %d half values do not fit %d rows of %d features", len(src), rows, rn.dim)
	}

	dst := make([]uint16, len(src))
	forEachRow(rows, func(r int) {
		off := r * rn.dim
		kernels.RMSNormF16(dst[off:off+rn.dim], src[off:off+rn.dim], rn.weight, rn.eps)
	})
	return dst, nil
}

// ApplyBF16 is ApplyF16 for bfloat16 activations encoded as little-endian
// byte pairs, rows*featureDim values in row-major order.
func (rn *RMSNorm) ApplyBF16(src []byte, rows int) ([]byte, error) {
	if rows <= 0 {
		return nil, fmt.Errorf("rmsnorm: rows must be positive, got %d", rows)
	}
	if len(src) != rows*rn.dim*2 {
		return nil, fmt.Errorf("rmsnorm: %d bytes do not fit %d rows of %d bfloat16 features", len(src), rows, rn.dim)
	}

	dst := make([]byte, len(src))
	stride := rn.dim * 2
	forEachRow(rows, func(r int) {
		off := r * stride
		kernels.RMSNormBF16(dst[off:off+stride], src[off:off+stride], rn.weight, rn.eps)
	})
	return dst, nil
}

// FeatureDim returns the configured feature-vector length.
func (rn *RMSNorm) FeatureDim() int { return rn.dim }

// Eps returns the numerical-stability constant.
func (rn *RMSNorm) Eps() float32 { return rn.eps }

// Weight returns the backing scale vector. An optimizer may update it in place.
func (rn *RMSNorm) Weight() []float32 { return rn.weight }
