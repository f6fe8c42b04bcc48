package norms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTensor(t *testing.T) {
	x, err := NewTensor(2, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, x.Shape())
	assert.Equal(t, 3, x.FeatureDim())
	assert.Equal(t, 2, x.Rows())
	assert.Len(t, x.Data(), 6)
}

func TestNewTensorRejectsBadShapes(t *testing.T) {
	_, err := NewTensor()
	assert.Error(t, err)

	_, err = NewTensor(2, 0)
	assert.Error(t, err)

	_, err = NewTensor(-1, 3)
	assert.Error(t, err)
}

func TestFromSliceLengthMustMatch(t *testing.T) {
	_, err := FromSlice([]float32{1, 2, 3}, 2, 2)
	assert.Error(t, err)

	x, err := FromSlice([]float32{1, 2, 3, 4}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, x.Rows())
}

func TestRowsFoldsLeadingAxes(t *testing.T) {
	x, err := NewTensor(2, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, 6, x.Rows())
	assert.Equal(t, 4, x.FeatureDim())

	y, err := NewTensor(5)
	require.NoError(t, err)
	assert.Equal(t, 1, y.Rows())
	assert.Equal(t, 5, y.FeatureDim())
}
