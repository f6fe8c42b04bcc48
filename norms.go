// Package norms implements the three standard activation-normalization
// transforms: batch normalization, layer normalization and RMS
// normalization. Each is an independent layer over a float32 [..., F]
// tensor; they differ only in which axis is reduced and whether a running
// statistic is tracked.
package norms

import "fmt"

// Mode selects which statistics BatchNorm uses. LayerNorm and RMSNorm are
// mode-independent and ignore it.
type Mode int

const (
	// Inference uses running statistics and mutates nothing.
	Inference Mode = iota
	// Training uses fresh batch statistics and updates the running ones.
	Training
)

func (m Mode) String() string {
	switch m {
	case Inference:
		return "inference"
	case Training:
		return "training"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Layer is the contract shared by the three transforms. Apply returns a new
// tensor of identical shape and leaves the input untouched.
type Layer interface {
	Apply(x *Tensor, mode Mode) (*Tensor, error)
	FeatureDim() int
}

func checkFeatureDim(x *Tensor, dim int) error {
	if got := x.FeatureDim(); got != dim {
		return fmt.Errorf("norms: input feature axis is %d, layer expects %d", got, dim)
	}
	return nil
}

func onesVec(n int) []float32 {
	v := make([]float32, n)
	for i := range v {
		v[i] = 1.0
	}
	return v
}
