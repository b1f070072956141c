package ops

import "github.com/sumedhvaidy/ml-tutorials/internal/tensor"

// SigmoidOp records output = 1 / (1 + exp(-input)).
//
// The derivative is expressed through the saved output:
// d(sigma)/dx = sigma * (1 - sigma).
type SigmoidOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSigmoidOp creates a new SigmoidOp.
func NewSigmoidOp(input, output *tensor.RawTensor) *SigmoidOp {
	return &SigmoidOp{input: input, output: output}
}

func (op *SigmoidOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	defer op.output.ForceNonUnique()()
	defer outputGrad.ForceNonUnique()()

	d := backend.Sub(onesLike(op.output), op.output)
	d = backend.Mul(d, op.output)
	return []*tensor.RawTensor{backend.Mul(d, outputGrad)}
}

func (op *SigmoidOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *SigmoidOp) Output() *tensor.RawTensor   { return op.output }

// TanhOp records output = tanh(input).
//
// d(tanh)/dx = 1 - tanh^2, again from the saved output.
type TanhOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewTanhOp creates a new TanhOp.
func NewTanhOp(input, output *tensor.RawTensor) *TanhOp {
	return &TanhOp{input: input, output: output}
}

func (op *TanhOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	defer op.output.ForceNonUnique()()
	defer outputGrad.ForceNonUnique()()

	sq := backend.Mul(op.output, op.output)
	d := backend.Sub(onesLike(op.output), sq)
	return []*tensor.RawTensor{backend.Mul(d, outputGrad)}
}

func (op *TanhOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *TanhOp) Output() *tensor.RawTensor   { return op.output }

// ReLUOp records output = max(0, input).
//
// The gradient passes through where the input was positive and is
// zero elsewhere.
type ReLUOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewReLUOp creates a new ReLUOp.
func NewReLUOp(input, output *tensor.RawTensor) *ReLUOp {
	return &ReLUOp{input: input, output: output}
}

func (op *ReLUOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	mask := fullLike(op.input, 0)

	switch op.input.DType() {
	case tensor.Float32:
		src, dst := op.input.AsFloat32(), mask.AsFloat32()
		for i, v := range src {
			if v > 0 {
				dst[i] = 1
			}
		}
	case tensor.Float64:
		src, dst := op.input.AsFloat64(), mask.AsFloat64()
		for i, v := range src {
			if v > 0 {
				dst[i] = 1
			}
		}
	}

	defer outputGrad.ForceNonUnique()()
	return []*tensor.RawTensor{backend.Mul(mask, outputGrad)}
}

func (op *ReLUOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *ReLUOp) Output() *tensor.RawTensor   { return op.output }
