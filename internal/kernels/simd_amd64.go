//go:build amd64 && !noasm

package kernels

import "golang.org/x/sys/cpu"

// SIMD support flags
var (
	hasAVX2   = cpu.X86.HasAVX2
	hasAVX512 = cpu.X86.HasAVX512F
)

// fastReduce reports whether the unrolled multi-accumulator reductions are
// worth dispatching for a row of length n. Wide vector units keep the four
// accumulator lanes in flight; without them the scalar loop wins on short rows.
func fastReduce(n int) bool {
	return hasAVX2 && n >= unrollMinLen
}

// reduceSum returns sum(x) using the fastest available path.
func reduceSum(x []float32) float32 {
	if fastReduce(len(x)) {
		return sumUnrolled(x)
	}
	return sumScalar(x)
}

// reduceSumSq returns sum(x^2) using the fastest available path.
func reduceSumSq(x []float32) float32 {
	if fastReduce(len(x)) {
		return sumSqUnrolled(x)
	}
	return sumSqScalar(x)
}

// reduceCenteredSumSq returns sum((x-mean)^2) using the fastest available path.
func reduceCenteredSumSq(x []float32, mean float32) float32 {
	if fastReduce(len(x)) {
		return centeredSumSqUnrolled(x, mean)
	}
	return centeredSumSqScalar(x, mean)
}
