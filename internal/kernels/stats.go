package kernels

import "math"

// BatchStats computes per-feature mean and biased variance across the batch
// axis of a row-major [rows, dim] buffer. mean and variance must each hold
// dim elements.
func BatchStats(mean, variance, src []float32, rows, dim int) {
	if rows <= 0 || dim <= 0 {
		panic("BatchStats: non-positive rows or dim")
	}
	if len(src) < rows*dim || len(mean) < dim || len(variance) < dim {
		panic("BatchStats: buffer size mismatch")
	}

	for j := 0; j < dim; j++ {
		mean[j] = 0
		variance[j] = 0
	}

	// Column sums, row-major traversal for locality
	for r := 0; r < rows; r++ {
		row := src[r*dim : r*dim+dim]
		for j := 0; j < dim; j++ {
			mean[j] += row[j]
		}
	}
	invRows := 1.0 / float32(rows)
	for j := 0; j < dim; j++ {
		mean[j] *= invRows
	}

	for r := 0; r < rows; r++ {
		row := src[r*dim : r*dim+dim]
		for j := 0; j < dim; j++ {
			d := row[j] - mean[j]
			variance[j] += d * d
		}
	}
	for j := 0; j < dim; j++ {
		variance[j] *= invRows
	}
}

// UpdateRunning folds a batch statistic into a running statistic in place:
// running[i] = (1-momentum)*running[i] + momentum*batch[i]
func UpdateRunning(running, batch []float32, momentum float32) {
	n := len(batch)
	if len(running) < n {
		panic("UpdateRunning: buffer size mismatch")
	}
	for i := 0; i < n; i++ {
		running[i] = (1-momentum)*running[i] + momentum*batch[i]
	}
}

// NormalizeWithStats normalizes every row of a row-major [rows, dim] buffer
// with the given per-feature statistics:
// out[r][j] = (x[r][j] - mean[j]) / sqrt(variance[j] + eps) * gamma[j] + beta[j]
// Both BatchNorm modes reduce to this call; only the statistics differ.
func NormalizeWithStats(dst, src []float32, rows, dim int, mean, variance, gamma, beta []float32, eps float32) {
	if rows <= 0 || dim <= 0 {
		panic("NormalizeWithStats: non-positive rows or dim")
	}
	if len(dst) < rows*dim || len(src) < rows*dim {
		panic("NormalizeWithStats: buffer size mismatch")
	}
	if len(mean) < dim || len(variance) < dim || len(gamma) < dim || len(beta) < dim {
		panic("NormalizeWithStats: statistic size mismatch")
	}

	invStd := make([]float32, dim)
	for j := 0; j < dim; j++ {
		invStd[j] = float32(1.0 / math.Sqrt(float64(variance[j]+eps)))
	}

	for r := 0; r < rows; r++ {
		in := src[r*dim : r*dim+dim]
		out := dst[r*dim : r*dim+dim]
		for j := 0; j < dim; j++ {
			out[j] = (in[j]-mean[j])*invStd[j]*gamma[j] + beta[j]
		}
	}
}
