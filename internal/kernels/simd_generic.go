//go:build (!amd64 && !arm64) || noasm

package kernels

// No runtime feature detection on this platform; scalar reductions only.

func reduceSum(x []float32) float32 {
	return sumScalar(x)
}

func reduceSumSq(x []float32) float32 {
	return sumSqScalar(x)
}

func reduceCenteredSumSq(x []float32, mean float32) float32 {
	return centeredSumSqScalar(x, mean)
}
