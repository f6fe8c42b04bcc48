package norms

import "fmt"

// Tensor is a row-major float32 activation tensor of shape [..., F]. The
// last axis is the feature axis; every leading axis folds into rows. Layers
// read their input and return a fresh tensor, never mutating the argument.
type Tensor struct {
	data  []float32
	shape []int
}

// NewTensor allocates a zero-filled tensor with the given shape.
func NewTensor(shape ...int) (*Tensor, error) {
	n, err := checkShape(shape)
	if err != nil {
		return nil, err
	}
	return &Tensor{
		data:  make([]float32, n),
		shape: append([]int(nil), shape...),
	}, nil
}

// FromSlice wraps data in a tensor with the given shape. The slice is used
// directly, not copied; its length must match the shape exactly.
func FromSlice(data []float32, shape ...int) (*Tensor, error) {
	n, err := checkShape(shape)
	if err != nil {
		return nil, err
	}
	if len(data) != n {
		return nil, fmt.Errorf("tensor: %d elements do not fit shape %v (want %d)", len(data), shape, n)
	}
	return &Tensor{
		data:  data,
		shape: append([]int(nil), shape...),
	}, nil
}

func checkShape(shape []int) (int, error) {
	if len(shape) == 0 {
		return 0, fmt.Errorf("tensor: empty shape")
	}
	n := 1
	for _, d := range shape {
		if d <= 0 {
			return 0, fmt.Errorf("tensor: non-positive dimension in shape %v", shape)
		}
		n *= d
	}
	return n, nil
}

// Shape returns a copy of the tensor's shape.
func (t *Tensor) Shape() []int {
	return append([]int(nil), t.shape...)
}

// Data returns the backing slice. Shared, not a copy.
func (t *Tensor) Data() []float32 {
	return t.data
}

// FeatureDim returns the length of the last axis.
func (t *Tensor) FeatureDim() int {
	return t.shape[len(t.shape)-1]
}

// Rows returns the product of all axes before the last one; 1 for rank-1.
func (t *Tensor) Rows() int {
	rows := 1
	for _, d := range t.shape[:len(t.shape)-1] {
		rows *= d
	}
	return rows
}

// Rank returns the number of axes.
func (t *Tensor) Rank() int {
	return len(t.shape)
}

// like allocates a zero-filled tensor with the same shape as t.
func (t *Tensor) like() *Tensor {
	return &Tensor{
		data:  make([]float32, len(t.data)),
		shape: append([]int(nil), t.shape...),
	}
}
