// Copyright 2026 ML Tutorials Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms for training.
//
// # Optimizers
//
// SGD (Stochastic Gradient Descent with optional momentum):
//
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{
//	    LR:       0.5,
//	    Momentum: 0.9,
//	})
//
// Adam (Adaptive Moment Estimation with bias correction):
//
//	optimizer := optim.NewAdam(model.Parameters(), optim.AdamConfig{
//	    LR: 0.001,
//	})
//
// # Training Loop Pattern
//
//	for epoch := 0; epoch < numEpochs; epoch++ {
//	    optimizer.ZeroGrad()
//	    loss := criterion.Forward(model.Forward(x), y)
//	    grads := autodiff.Backward(loss, backend)
//	    optimizer.Step(grads)
//	}
package optim

import (
	"github.com/sumedhvaidy/ml-tutorials/internal/nn"
	"github.com/sumedhvaidy/ml-tutorials/internal/optim"
	"github.com/sumedhvaidy/ml-tutorials/internal/tensor"
)

// Optimizer is the common interface implemented by all optimizers.
type Optimizer = optim.Optimizer

// SGD is the stochastic gradient descent optimizer.
type SGD[B tensor.Backend] = optim.SGD[B]

// SGDConfig configures the SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates an SGD optimizer over the given parameters.
func NewSGD[B tensor.Backend](params []*nn.Parameter[B], config SGDConfig) *SGD[B] {
	return optim.NewSGD(params, config)
}

// Adam is the adaptive moment estimation optimizer.
type Adam[B tensor.Backend] = optim.Adam[B]

// AdamConfig configures the Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates an Adam optimizer over the given parameters.
func NewAdam[B tensor.Backend](params []*nn.Parameter[B], config AdamConfig) *Adam[B] {
	return optim.NewAdam(params, config)
}
