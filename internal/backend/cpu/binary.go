package cpu

import (
	"fmt"

	"github.com/sumedhvaidy/ml-tutorials/internal/tensor"
)

// binary implements the shared shape logic of the element-wise binary
// ops: broadcast validation, the same-shape fast path (in place when
// the left operand's buffer is unique), and the stride-walking
// broadcast path.
func (cpu *Backend) binary(
	name string,
	a, b *tensor.RawTensor,
	f32 func(x, y float32) float32,
	f64 func(x, y float64) float64,
) *tensor.RawTensor {
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	if !needsBroadcast && a.Shape().Equal(b.Shape()) {
		if a.IsUnique() {
			applySameShape(name, a, a, b, f32, f64)
			return a
		}
		result := newResult(name, outShape, a)
		applySameShape(name, result, a, b, f32, f64)
		return result
	}

	result := newResult(name, outShape, a)
	applyBroadcast(name, result, a, b, outShape, f32, f64)
	return result
}

func newResult(name string, shape tensor.Shape, like *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(shape, like.DType(), like.Device())
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}
	return result
}

func applySameShape(
	name string,
	dst, a, b *tensor.RawTensor,
	f32 func(x, y float32) float32,
	f64 func(x, y float64) float64,
) {
	switch a.DType() {
	case tensor.Float32:
		dstData, aData, bData := dst.AsFloat32(), a.AsFloat32(), b.AsFloat32()
		for i := range dstData {
			dstData[i] = f32(aData[i], bData[i])
		}
	case tensor.Float64:
		dstData, aData, bData := dst.AsFloat64(), a.AsFloat64(), b.AsFloat64()
		for i := range dstData {
			dstData[i] = f64(aData[i], bData[i])
		}
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, a.DType()))
	}
}

func applyBroadcast(
	name string,
	dst, a, b *tensor.RawTensor,
	outShape tensor.Shape,
	f32 func(x, y float32) float32,
	f64 func(x, y float64) float64,
) {
	aStrides := broadcastStrides(a.Shape(), outShape)
	bStrides := broadcastStrides(b.Shape(), outShape)
	outStrides := outShape.ComputeStrides()
	n := outShape.NumElements()

	// Map the linear output index to a linear index into each operand,
	// using zero strides for broadcast dimensions.
	index := func(i int, strides []int) int {
		src := 0
		for d := 0; d < len(outShape); d++ {
			coord := i / outStrides[d]
			i %= outStrides[d]
			src += coord * strides[d]
		}
		return src
	}

	switch a.DType() {
	case tensor.Float32:
		dstData, aData, bData := dst.AsFloat32(), a.AsFloat32(), b.AsFloat32()
		for i := 0; i < n; i++ {
			dstData[i] = f32(aData[index(i, aStrides)], bData[index(i, bStrides)])
		}
	case tensor.Float64:
		dstData, aData, bData := dst.AsFloat64(), a.AsFloat64(), b.AsFloat64()
		for i := 0; i < n; i++ {
			dstData[i] = f64(aData[index(i, aStrides)], bData[index(i, bStrides)])
		}
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, a.DType()))
	}
}

// broadcastStrides computes per-output-dimension strides for an input
// shape, right-aligned against the output shape. Broadcast dimensions
// (size 1 in the input, or missing entirely) get stride 0 so every
// output coordinate reads the same input element.
func broadcastStrides(in, out tensor.Shape) []int {
	inStrides := in.ComputeStrides()
	strides := make([]int, len(out))
	offset := len(out) - len(in)
	for d := range out {
		if d < offset {
			continue
		}
		if in[d-offset] == 1 && out[d] != 1 {
			continue
		}
		strides[d] = inStrides[d-offset]
	}
	return strides
}
