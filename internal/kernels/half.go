package kernels

import (
	"math"

	"github.com/d4l3k/go-bfloat16"
	"github.com/x448/float16"
)

// RMSNormF16 applies RMS normalization to a row of IEEE-754 binary16 values
// (raw bits). The reduction and the division run in float32; the normalized
// value is rounded back to binary16 before the weight is applied, so the
// scale sees the same magnitudes a half-precision consumer would.
func RMSNormF16(dst, src []uint16, weight []float32, eps float32) {
	n := len(src)
	if len(dst) < n || len(weight) < n {
		panic("RMSNormF16: buffer size mismatch")
	}

	xs := make([]float32, n)
	for i := 0; i < n; i++ {
		xs[i] = float16.Frombits(src[i]).Float32()
	}

	meanSq := reduceSumSq(xs) / float32(n)
	inv := float32(1.0 / math.Sqrt(float64(meanSq+eps)))

	for i := 0; i < n; i++ {
		normalized := float16.Fromfloat32(xs[i] * inv)
		dst[i] = float16.Fromfloat32(normalized.Float32() * weight[i]).Bits()
	}
}

// RMSNormBF16 applies RMS normalization to a row of bfloat16 values encoded
// as little-endian byte pairs (the layout go-bfloat16 decodes). Same
// precision contract as RMSNormF16: normalize in float32, round back to
// bfloat16, then scale.
func RMSNormBF16(dst, src []byte, weight []float32, eps float32) {
	if len(src)%2 != 0 {
		panic("RMSNormBF16: odd source length")
	}
	n := len(src) / 2
	if len(dst) < len(src) || len(weight) < n {
		panic("RMSNormBF16: buffer size mismatch")
	}

	xs := bfloat16.DecodeFloat32(src)

	meanSq := reduceSumSq(xs) / float32(n)
	inv := float32(1.0 / math.Sqrt(float64(meanSq+eps)))

	out := make([]float32, n)
	for i := 0; i < n; i++ {
		normalized := bfloat16.ToFloat32(bfloat16.FromFloat32(xs[i] * inv))
		out[i] = normalized * weight[i]
	}
	copy(dst, bfloat16.EncodeFloat32(out))
}
