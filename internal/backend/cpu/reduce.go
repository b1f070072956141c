package cpu

import (
	"fmt"

	"github.com/sumedhvaidy/ml-tutorials/internal/tensor"
)

// Sum reduces all elements to their total as a [1]-shaped tensor.
func (cpu *Backend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.reduce("sum", x, false)
}

// Mean reduces all elements to their average as a [1]-shaped tensor.
func (cpu *Backend) Mean(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.reduce("mean", x, true)
}

func (cpu *Backend) reduce(name string, x *tensor.RawTensor, average bool) *tensor.RawTensor {
	result, err := tensor.NewRaw(tensor.Shape{1}, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}

	switch x.DType() {
	case tensor.Float32:
		var sum float32
		for _, v := range x.AsFloat32() {
			sum += v
		}
		if average {
			sum /= float32(x.NumElements())
		}
		result.AsFloat32()[0] = sum
	case tensor.Float64:
		var sum float64
		for _, v := range x.AsFloat64() {
			sum += v
		}
		if average {
			sum /= float64(x.NumElements())
		}
		result.AsFloat64()[0] = sum
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s (only float32/float64 supported)", name, x.DType()))
	}

	return result
}
