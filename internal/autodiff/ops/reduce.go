package ops

import "github.com/sumedhvaidy/ml-tutorials/internal/tensor"

// SumOp records output = sum(input), a full reduction to a [1]-shaped
// tensor. The gradient broadcasts the scalar back to the input shape.
type SumOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSumOp creates a new SumOp.
func NewSumOp(input, output *tensor.RawTensor) *SumOp {
	return &SumOp{input: input, output: output}
}

func (op *SumOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{spreadScalar(outputGrad, op.input, 1)}
}

func (op *SumOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *SumOp) Output() *tensor.RawTensor   { return op.output }

// MeanOp records output = mean(input), a full reduction to a
// [1]-shaped tensor. The gradient is the scalar spread over the input
// shape, scaled by 1/N.
type MeanOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewMeanOp creates a new MeanOp.
func NewMeanOp(input, output *tensor.RawTensor) *MeanOp {
	return &MeanOp{input: input, output: output}
}

func (op *MeanOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	scale := 1.0 / float64(op.input.NumElements())
	return []*tensor.RawTensor{spreadScalar(outputGrad, op.input, scale)}
}

func (op *MeanOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *MeanOp) Output() *tensor.RawTensor   { return op.output }

// spreadScalar fills a tensor shaped like `like` with the single value
// of grad times scale.
func spreadScalar(grad, like *tensor.RawTensor, scale float64) *tensor.RawTensor {
	var v float64
	switch grad.DType() {
	case tensor.Float32:
		v = float64(grad.AsFloat32()[0])
	case tensor.Float64:
		v = grad.AsFloat64()[0]
	}
	return fullLike(like, v*scale)
}
