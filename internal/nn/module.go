// Package nn provides the building blocks for feed-forward networks:
// the Module interface, trainable Parameters, the Linear layer,
// activation modules, loss functions and weight initializers.
//
// Modules compose into networks:
//
//	model := nn.NewSequential(
//	    nn.NewLinear(2, 4, backend),
//	    nn.NewSigmoid[Backend](),
//	    nn.NewLinear(4, 1, backend),
//	    nn.NewSigmoid[Backend](),
//	)
package nn

import "github.com/sumedhvaidy/ml-tutorials/internal/tensor"

// Module is the interface every network component implements.
type Module[B tensor.Backend] interface {
	// Forward computes the module's output for the given input.
	// Linear expects [batch_size, in_features].
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns the module's trainable parameters, including
	// those of nested modules. Empty for parameterless modules such as
	// activations.
	Parameters() []*Parameter[B]
}
