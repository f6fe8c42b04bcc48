package kernels

// Minimum row length before the unrolled reductions pay for themselves.
// Below this the loop setup costs more than it saves.
const unrollMinLen = 16

// sumScalar is the portable reduction: sum(x)
func sumScalar(x []float32) float32 {
	sum := float32(0)
	for i := 0; i < len(x); i++ {
		sum += x[i]
	}
	return sum
}

// sumSqScalar is the portable reduction: sum(x^2)
func sumSqScalar(x []float32) float32 {
	sum := float32(0)
	for i := 0; i < len(x); i++ {
		sum += x[i] * x[i]
	}
	return sum
}

// centeredSumSqScalar is the portable reduction: sum((x-mean)^2)
func centeredSumSqScalar(x []float32, mean float32) float32 {
	sum := float32(0)
	for i := 0; i < len(x); i++ {
		d := x[i] - mean
		sum += d * d
	}
	return sum
}

// sumUnrolled accumulates in four independent lanes so the adds pipeline
// instead of serializing on one register.
func sumUnrolled(x []float32) float32 {
	n := len(x)
	var s0, s1, s2, s3 float32
	i := 0
	for ; i+4 <= n; i += 4 {
		s0 += x[i]
		s1 += x[i+1]
		s2 += x[i+2]
		s3 += x[i+3]
	}
	sum := s0 + s1 + s2 + s3
	for ; i < n; i++ {
		sum += x[i]
	}
	return sum
}

// sumSqUnrolled is the four-lane variant of sumSqScalar.
func sumSqUnrolled(x []float32) float32 {
	n := len(x)
	var s0, s1, s2, s3 float32
	i := 0
	for ; i+4 <= n; i += 4 {
		s0 += x[i] * x[i]
		s1 += x[i+1] * x[i+1]
		s2 += x[i+2] * x[i+2]
		s3 += x[i+3] * x[i+3]
	}
	sum := s0 + s1 + s2 + s3
	for ; i < n; i++ {
		sum += x[i] * x[i]
	}
	return sum
}

// centeredSumSqUnrolled is the four-lane variant of centeredSumSqScalar.
func centeredSumSqUnrolled(x []float32, mean float32) float32 {
	n := len(x)
	var s0, s1, s2, s3 float32
	i := 0
	for ; i+4 <= n; i += 4 {
		d0 := x[i] - mean
		d1 := x[i+1] - mean
		d2 := x[i+2] - mean
		d3 := x[i+3] - mean
		s0 += d0 * d0
		s1 += d1 * d1
		s2 += d2 * d2
		s3 += d3 * d3
	}
	sum := s0 + s1 + s2 + s3
	for ; i < n; i++ {
		d := x[i] - mean
		sum += d * d
	}
	return sum
}
