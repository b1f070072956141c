package ops

import (
	"fmt"
	"math"

	"github.com/sumedhvaidy/ml-tutorials/internal/tensor"
)

// bceEpsilon keeps predictions away from exactly 0 or 1 so the logs
// and the backward division stay finite.
const bceEpsilon = 1e-7

// BCEForward computes binary cross-entropy loss over probabilities:
//
//	loss = -mean(y*log(p) + (1-y)*log(1-p))
//
// predictions and targets must have the same shape and contain values
// in [0, 1]. Returns a [1]-shaped tensor with the mean loss.
func BCEForward(predictions, targets *tensor.RawTensor, device tensor.Device) *tensor.RawTensor {
	if !predictions.Shape().Equal(targets.Shape()) {
		panic(fmt.Sprintf("bce: shape mismatch %v vs %v", predictions.Shape(), targets.Shape()))
	}

	result, err := tensor.NewRaw(tensor.Shape{1}, predictions.DType(), device)
	if err != nil {
		panic(fmt.Sprintf("bce: %v", err))
	}

	n := predictions.NumElements()
	switch predictions.DType() {
	case tensor.Float32:
		p, y := predictions.AsFloat32(), targets.AsFloat32()
		var sum float64
		for i := range p {
			pc := clampProb(float64(p[i]))
			sum += float64(y[i])*math.Log(pc) + (1-float64(y[i]))*math.Log(1-pc)
		}
		result.AsFloat32()[0] = float32(-sum / float64(n))
	case tensor.Float64:
		p, y := predictions.AsFloat64(), targets.AsFloat64()
		var sum float64
		for i := range p {
			pc := clampProb(p[i])
			sum += y[i]*math.Log(pc) + (1-y[i])*math.Log(1-pc)
		}
		result.AsFloat64()[0] = -sum / float64(n)
	default:
		panic(fmt.Sprintf("bce: unsupported dtype %s", predictions.DType()))
	}

	return result
}

func clampProb(p float64) float64 {
	if p < bceEpsilon {
		return bceEpsilon
	}
	if p > 1-bceEpsilon {
		return 1 - bceEpsilon
	}
	return p
}

// BCEOp records the binary cross-entropy loss between predicted
// probabilities and targets.
//
// Backward, per element:
//
//	dL/dp = (p - y) / (p * (1 - p) * N)
//
// Composed with the sigmoid derivative p*(1-p) this collapses to the
// familiar (p - y) / N at the pre-activation, which is what makes
// sigmoid + BCE numerically pleasant to train.
type BCEOp struct {
	inputs []*tensor.RawTensor // [predictions, targets]
	output *tensor.RawTensor
}

// NewBCEOp creates a new BCEOp.
func NewBCEOp(predictions, targets, output *tensor.RawTensor) *BCEOp {
	return &BCEOp{
		inputs: []*tensor.RawTensor{predictions, targets},
		output: output,
	}
}

// Backward returns the gradient for predictions only; targets are not
// differentiated.
func (op *BCEOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	predictions, targets := op.inputs[0], op.inputs[1]

	grad, err := tensor.NewRaw(predictions.Shape(), predictions.DType(), predictions.Device())
	if err != nil {
		panic(fmt.Sprintf("bce backward: %v", err))
	}

	n := float64(predictions.NumElements())
	switch predictions.DType() {
	case tensor.Float32:
		p, y, g := predictions.AsFloat32(), targets.AsFloat32(), grad.AsFloat32()
		scale := float64(outputGrad.AsFloat32()[0])
		for i := range p {
			pc := clampProb(float64(p[i]))
			g[i] = float32(scale * (pc - float64(y[i])) / (pc * (1 - pc) * n))
		}
	case tensor.Float64:
		p, y, g := predictions.AsFloat64(), targets.AsFloat64(), grad.AsFloat64()
		scale := outputGrad.AsFloat64()[0]
		for i := range p {
			pc := clampProb(p[i])
			g[i] = scale * (pc - y[i]) / (pc * (1 - pc) * n)
		}
	default:
		panic(fmt.Sprintf("bce backward: unsupported dtype %s", predictions.DType()))
	}

	return []*tensor.RawTensor{grad, nil}
}

func (op *BCEOp) Inputs() []*tensor.RawTensor { return op.inputs }
func (op *BCEOp) Output() *tensor.RawTensor   { return op.output }
