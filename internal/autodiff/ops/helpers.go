package ops

import (
	"fmt"

	"github.com/sumedhvaidy/ml-tutorials/internal/tensor"
)

// reduceBroadcast reduces a gradient to the shape of the input it
// belongs to. When the forward pass broadcast an input, the gradient
// must be summed along the broadcast dimensions.
//
//	Forward:  a[1,3] + b[2,3] -> c[2,3]
//	Backward: grad_c[2,3] -> grad_a[1,3] (sum along dim 0)
func reduceBroadcast(grad *tensor.RawTensor, targetShape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	gradShape := grad.Shape()

	// Clone when shapes already match so the caller gets an alias that
	// is protected from in-place updates elsewhere.
	if gradShape.Equal(targetShape) {
		return grad.Clone()
	}

	// Sum away leading dimensions the target does not have.
	result := grad
	for len(result.Shape()) > len(targetShape) {
		result = sumAlongDim(result, 0)
		result = backend.Reshape(result, result.Shape()[1:])
	}

	// Sum along dimensions where the target is 1.
	for d, size := range targetShape {
		if size == 1 && result.Shape()[d] > 1 {
			result = sumAlongDim(result, d)
		}
	}

	if !result.Shape().Equal(targetShape) {
		result = backend.Reshape(result, targetShape)
	}
	return result
}

// sumAlongDim sums a tensor along one dimension, keeping it as size 1.
func sumAlongDim(t *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := t.Shape()
	if dim < 0 || dim >= len(shape) {
		panic(fmt.Sprintf("sumAlongDim: invalid dimension %d for shape %v", dim, shape))
	}

	outShape := shape.Clone()
	outShape[dim] = 1

	result, err := tensor.NewRaw(outShape, t.DType(), t.Device())
	if err != nil {
		panic(fmt.Sprintf("sumAlongDim: %v", err))
	}

	strides := shape.ComputeStrides()
	outStrides := outShape.ComputeStrides()
	n := shape.NumElements()

	// Map a linear source index to the linear index of the reduced
	// element it accumulates into.
	outIndex := func(i int) int {
		out := 0
		for d := range shape {
			coord := i / strides[d]
			i %= strides[d]
			if d != dim {
				out += coord * outStrides[d]
			}
		}
		return out
	}

	switch t.DType() {
	case tensor.Float32:
		src, dst := t.AsFloat32(), result.AsFloat32()
		for i := 0; i < n; i++ {
			dst[outIndex(i)] += src[i]
		}
	case tensor.Float64:
		src, dst := t.AsFloat64(), result.AsFloat64()
		for i := 0; i < n; i++ {
			dst[outIndex(i)] += src[i]
		}
	default:
		panic(fmt.Sprintf("sumAlongDim: unsupported dtype %s", t.DType()))
	}

	return result
}

// onesLike creates a tensor of ones with the same shape and dtype.
func onesLike(t *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(t.Shape(), t.DType(), t.Device())
	if err != nil {
		panic(fmt.Sprintf("onesLike: %v", err))
	}
	fillConst(result, 1)
	return result
}

// fullLike creates a tensor filled with a constant, matching shape and dtype.
func fullLike(t *tensor.RawTensor, value float64) *tensor.RawTensor {
	result, err := tensor.NewRaw(t.Shape(), t.DType(), t.Device())
	if err != nil {
		panic(fmt.Sprintf("fullLike: %v", err))
	}
	fillConst(result, value)
	return result
}

func fillConst(t *tensor.RawTensor, value float64) {
	switch t.DType() {
	case tensor.Float32:
		data := t.AsFloat32()
		v := float32(value)
		for i := range data {
			data[i] = v
		}
	case tensor.Float64:
		data := t.AsFloat64()
		for i := range data {
			data[i] = value
		}
	default:
		panic(fmt.Sprintf("fillConst: unsupported dtype %s", t.DType()))
	}
}

// negate returns -t as a fresh tensor.
func negate(t *tensor.RawTensor, backend tensor.Backend) *tensor.RawTensor {
	zeros, err := tensor.NewRaw(t.Shape(), t.DType(), backend.Device())
	if err != nil {
		panic(fmt.Sprintf("negate: %v", err))
	}
	defer t.ForceNonUnique()()
	return backend.Sub(zeros, t)
}
