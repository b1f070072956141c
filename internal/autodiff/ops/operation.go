// Package ops defines the differentiable operations recorded on the
// gradient tape.
//
// Each operation captures its input and output tensors during the
// forward pass and knows how to turn the gradient of its output into
// gradients of its inputs. The tape walks recorded operations in
// reverse and accumulates the results.
package ops

import "github.com/sumedhvaidy/ml-tutorials/internal/tensor"

// Operation is one node of the recorded computation graph.
type Operation interface {
	// Backward computes input gradients given the gradient of the
	// output, in the same order as Inputs(). A nil entry means the
	// corresponding input is not differentiated (e.g. targets).
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the forward-pass input tensors.
	Inputs() []*tensor.RawTensor

	// Output returns the forward-pass output tensor.
	Output() *tensor.RawTensor
}
