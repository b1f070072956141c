// Package optim implements the optimizers used to train networks:
// SGD with optional momentum, and Adam.
//
// Optimizers consume the gradient map produced by the autodiff
// backward pass and update parameters in place:
//
//	opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.5}, backend)
//	for epoch := 0; epoch < epochs; epoch++ {
//	    opt.ZeroGrad()
//	    grads := autodiff.Backward(loss, backend)
//	    opt.Step(grads)
//	}
package optim

import (
	"github.com/sumedhvaidy/ml-tutorials/internal/nn"
	"github.com/sumedhvaidy/ml-tutorials/internal/tensor"
)

// Optimizer updates parameters from a gradient map.
type Optimizer interface {
	// Step applies one update to every parameter that has a gradient
	// in the map. Parameters absent from the map are skipped.
	Step(grads map[*tensor.RawTensor]*tensor.RawTensor)

	// ZeroGrad clears all parameter gradients before the next step.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float32
}

// getGradient looks up the gradient recorded for a parameter's tensor.
// Returns nil when the parameter was not part of the recorded graph.
func getGradient[B tensor.Backend](param *nn.Parameter[B], grads map[*tensor.RawTensor]*tensor.RawTensor) *tensor.RawTensor {
	if param == nil {
		return nil
	}
	return grads[param.Tensor().Raw()]
}
