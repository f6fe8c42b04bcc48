package norms

import (
	"math"
	"testing"

	"github.com/d4l3k/go-bfloat16"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func TestNewRMSNormValidation(t *testing.T) {
	_, err := NewRMSNorm(0, 1e-6)
	assert.Error(t, err)

	_, err = NewRMSNorm(4, 0)
	assert.Error(t, err)

	rn, err := NewRMSNorm(4, 1e-6)
	require.NoError(t, err)
	assert.Equal(t, 4, rn.FeatureDim())
	assert.Equal(t, []float32{1, 1, 1, 1}, rn.Weight())
}

func rowRMS(row []float32) float64 {
	sumSq := 0.0
	for _, v := range row {
		sumSq += float64(v) * float64(v)
	}
	return math.Sqrt(sumSq / float64(len(row)))
}

func TestRMSNormUnitRMS(t *testing.T) {
	rn, err := NewRMSNorm(4, 1e-12)
	require.NoError(t, err)

	x, err := FromSlice([]float32{
		1, 2, 3, 4,
		-5, 0, 5, 10,
		0.01, 0.02, 0.04, 0.08,
	}, 3, 4)
	require.NoError(t, err)

	out, err := rn.Apply(x, Inference)
	require.NoError(t, err)

	for r := 0; r < 3; r++ {
		rms := rowRMS(out.Data()[r*4 : r*4+4])
		assert.InDelta(t, 1, rms, 1e-3, "row %d", r)
	}
}

func TestRMSNormScaleInvariance(t *testing.T) {
	rn, err := NewRMSNorm(3, 1e-12)
	require.NoError(t, err)

	base := []float32{0.3, -1.2, 2.5}
	for _, c := range []float32{0.25, 4, 1000} {
		scaled := make([]float32, len(base))
		for i, v := range base {
			scaled[i] = v * c
		}

		xa, err := FromSlice(append([]float32(nil), base...), 1, 3)
		require.NoError(t, err)
		xb, err := FromSlice(scaled, 1, 3)
		require.NoError(t, err)

		a, err := rn.Apply(xa, Inference)
		require.NoError(t, err)
		b, err := rn.Apply(xb, Inference)
		require.NoError(t, err)

		for i := range a.Data() {
			assert.InDelta(t, float64(a.Data()[i]), float64(b.Data()[i]), 1e-4, "c=%v i=%d", c, i)
		}
	}
}

func TestRMSNormIdempotentOnUnitRMSInput(t *testing.T) {
	rn, err := NewRMSNorm(4, 1e-12)
	require.NoError(t, err)

	x, err := FromSlice([]float32{2, -1, 0.5, 3}, 1, 4)
	require.NoError(t, err)

	once, err := rn.Apply(x, Inference)
	require.NoError(t, err)
	twice, err := rn.Apply(once, Inference)
	require.NoError(t, err)

	for i := range once.Data() {
		assert.InDelta(t, float64(once.Data()[i]), float64(twice.Data()[i]), 1e-4)
	}
}

func TestRMSNormZeroInputZeroOutput(t *testing.T) {
	rn, err := NewRMSNorm(6, 0.5)
	require.NoError(t, err)

	x, err := NewTensor(3, 6)
	require.NoError(t, err)

	out, err := rn.Apply(x, Inference)
	require.NoError(t, err)
	for _, v := range out.Data() {
		assert.Equal(t, float32(0), v)
	}
}

func TestRMSNormShapeMismatch(t *testing.T) {
	rn, err := NewRMSNorm(4, 1e-6)
	require.NoError(t, err)

	x, err := FromSlice([]float32{1, 2, 3}, 1, 3)
	require.NoError(t, err)

	_, err = rn.Apply(x, Inference)
	assert.Error(t, err)
}

func TestRMSNormApplyF16(t *testing.T) {
	rn, err := NewRMSNorm(4, 1e-6)
	require.NoError(t, err)

	vals := []float32{1, 2, 3, 4, 2, 2, 2, 2}
	src := make([]uint16, len(vals))
	for i, v := range vals {
		src[i] = float16.Fromfloat32(v).Bits()
	}

	out, err := rn.ApplyF16(src, 2)
	require.NoError(t, err)
	require.Len(t, out, len(src))

	row0 := make([]float32, 4)
	for i := 0; i < 4; i++ {
		row0[i] = float16.Frombits(out[i]).Float32()
	}
	assert.InDelta(t, 1, rowRMS(row0), 5e-3)

	// Constant row normalizes to all ones
	for i := 4; i < 8; i++ {
		assert.InDelta(t, 1, float64(float16.Frombits(out[i]).Float32()), 5e-3)
	}

	// Row count must match the data
	_, err = rn.ApplyF16(src, 3)
	assert.Error(t, err)
}

func TestRMSNormApplyBF16(t *testing.T) {
	rn, err := NewRMSNorm(4, 1e-6)
	require.NoError(t, err)

	vals := []float32{1, 2, 3, 4}
	src := bfloat16.EncodeFloat32(vals)

	out, err := rn.ApplyBF16(src, 1)
	require.NoError(t, err)
	require.Len(t, out, len(src))

	got := bfloat16.DecodeFloat32(out)
	assert.InDelta(t, 1, rowRMS(got), 2e-2)

	_, err = rn.ApplyBF16(src[:6], 1)
	assert.Error(t, err)
}

func TestRMSNormDoesNotMutateInput(t *testing.T) {
	rn, err := NewRMSNorm(2, 1e-6)
	require.NoError(t, err)

	x, err := FromSlice([]float32{3, 4}, 1, 2)
	require.NoError(t, err)

	_, err = rn.Apply(x, Inference)
	require.NoError(t, err)
	assert.Equal(t, []float32{3, 4}, x.Data())
}

func TestLayerInterface(t *testing.T) {
	bn, err := NewBatchNorm(3, 1e-5, 0.1)
	require.NoError(t, err)
	ln, err := NewLayerNorm(3, 1e-5)
	require.NoError(t, err)
	rn, err := NewRMSNorm(3, 1e-5)
	require.NoError(t, err)

	x, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)

	for _, layer := range []Layer{bn, ln, rn} {
		out, err := layer.Apply(x, Inference)
		require.NoError(t, err)
		assert.Equal(t, x.Shape(), out.Shape())
		assert.Equal(t, 3, layer.FeatureDim())
	}
}
