package evo

import "errors"

// ErrInvalidInput rejects empty or mismatched training samples.
var ErrInvalidInput = errors.New("dataset requires equal-length, non-empty x and y samples")

// Dataset is an immutable set of (x, y) training samples shared by every
// fitness evaluation in a run.
type Dataset struct {
	xs []float64
	ys []float64
}

func NewDataset(xs, ys []float64) (*Dataset, error) {
	if len(xs) == 0 || len(xs) != len(ys) {
		return nil, ErrInvalidInput
	}
	d := &Dataset{
		xs: make([]float64, len(xs)),
		ys: make([]float64, len(ys)),
	}
	copy(d.xs, xs)
	copy(d.ys, ys)
	return d, nil
}

func (d *Dataset) Len() int {
	return len(d.xs)
}

func (d *Dataset) At(i int) (x, y float64) {
	return d.xs[i], d.ys[i]
}
