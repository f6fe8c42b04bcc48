// Package kernels provides the float32 slice kernels behind the
// normalization layers. Kernels operate on one row (or one batch) per call,
// write into caller-provided buffers, and panic on short buffers: a size
// mismatch at this level is a caller bug, not a runtime condition.
package kernels

import "math"

// RMSNorm applies RMS normalization to a single row
// out[i] = x[i] / RMS(x) * weight[i]
// RMS(x) = sqrt(mean(x^2) + eps)
func RMSNorm(dst, src, weight []float32, eps float32) {
	n := len(src)
	if len(dst) < n || len(weight) < n {
		panic("RMSNorm: buffer size mismatch")
	}

	meanSq := reduceSumSq(src) / float32(n)
	inv := float32(1.0 / math.Sqrt(float64(meanSq+eps)))

	for i := 0; i < n; i++ {
		dst[i] = (src[i] * inv) * weight[i]
	}
}

// LayerNorm applies layer normalization to a single row
// out[i] = (x[i] - mean(x)) / sqrt(var(x) + eps) * gamma[i] + beta[i]
// The variance is biased (divide by n).
func LayerNorm(dst, src, gamma, beta []float32, eps float32) {
	n := len(src)
	if len(dst) < n || len(gamma) < n || len(beta) < n {
		panic("LayerNorm: buffer size mismatch")
	}

	mean := reduceSum(src) / float32(n)
	variance := reduceCenteredSumSq(src, mean) / float32(n)

	invStd := float32(1.0 / math.Sqrt(float64(variance+eps)))
	for i := 0; i < n; i++ {
		dst[i] = (src[i]-mean)*invStd*gamma[i] + beta[i]
	}
}
