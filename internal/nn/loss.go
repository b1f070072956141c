package nn

import (
	"fmt"

	"github.com/sumedhvaidy/ml-tutorials/internal/tensor"
)

// BCEBackend is implemented by backends that provide a fused binary
// cross-entropy operation. The autodiff backend implements it; the
// fused path clamps probabilities away from 0 and 1 so the loss and
// its gradient stay finite.
type BCEBackend interface {
	BCE(predictions, targets *tensor.RawTensor) *tensor.RawTensor
}

// BCELoss computes binary cross-entropy over predicted probabilities:
//
//	loss = -mean(y*log(p) + (1-y)*log(1-p))
//
// Predictions must come from a sigmoid (or otherwise lie in (0, 1)).
// Paired with sigmoid outputs the gradient at the pre-activation
// reduces to (p - y) / N, which keeps training stable even when the
// network is confidently wrong.
type BCELoss[B tensor.Backend] struct{}

// NewBCELoss creates a BCE loss function.
func NewBCELoss[B tensor.Backend]() *BCELoss[B] {
	return &BCELoss[B]{}
}

// Forward computes the mean BCE loss as a [1]-shaped tensor.
func (l *BCELoss[B]) Forward(predictions, targets *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if !predictions.Shape().Equal(targets.Shape()) {
		panic(fmt.Sprintf("bce loss: predictions %v and targets %v must have the same shape",
			predictions.Shape(), targets.Shape()))
	}

	backend := predictions.Backend()
	if bce, ok := any(backend).(BCEBackend); ok {
		return tensor.New[float32, B](bce.BCE(predictions.Raw(), targets.Raw()), backend)
	}

	// Composed fallback from primitive ops. Unlike the fused path this
	// does not clamp, so predictions of exactly 0 or 1 produce Inf.
	//
	// The ForceNonUnique guards keep a plain backend from reusing the
	// operand buffers in place: predictions and targets belong to the
	// caller, and ones appears on the left of two subtractions.
	defer predictions.Raw().ForceNonUnique()()
	defer targets.Raw().ForceNonUnique()()
	ones := Ones[B](predictions.Shape(), backend)
	defer ones.Raw().ForceNonUnique()()

	term1 := targets.Mul(predictions.Log())
	term2 := ones.Sub(targets).Mul(ones.Sub(predictions).Log())
	mean := term1.Add(term2).Mean()
	return Zeros[B](tensor.Shape{1}, backend).Sub(mean)
}

// Parameters returns nil; loss functions have no trainable parameters.
func (l *BCELoss[B]) Parameters() []*Parameter[B] { return nil }

// MSELoss computes mean squared error: mean((p - y)^2). Included for
// regression experiments and as a sanity baseline against BCE.
type MSELoss[B tensor.Backend] struct{}

// NewMSELoss creates an MSE loss function.
func NewMSELoss[B tensor.Backend]() *MSELoss[B] {
	return &MSELoss[B]{}
}

// Forward computes the mean squared error as a [1]-shaped tensor.
// Built entirely from primitive ops, so it differentiates on any
// recording backend.
func (l *MSELoss[B]) Forward(predictions, targets *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if !predictions.Shape().Equal(targets.Shape()) {
		panic(fmt.Sprintf("mse loss: predictions %v and targets %v must have the same shape",
			predictions.Shape(), targets.Shape()))
	}

	// Without the guard a plain backend would write the difference into
	// the caller's predictions buffer in place.
	defer predictions.Raw().ForceNonUnique()()
	diff := predictions.Sub(targets)
	return diff.Mul(diff).Mean()
}

// Parameters returns nil.
func (l *MSELoss[B]) Parameters() []*Parameter[B] { return nil }
