package autodiff

import (
	"fmt"

	"github.com/sumedhvaidy/ml-tutorials/internal/tensor"
)

// BackwardCapable is the backend interface the training loop needs:
// a regular compute backend that also exposes a gradient tape.
type BackwardCapable interface {
	tensor.Backend
	GetTape() *GradientTape
}

// GetTape returns the gradient tape.
func (b *Backend[B]) GetTape() *GradientTape { return b.tape }

// Backward seeds the gradient of t with ones and runs the tape in
// reverse. t is normally the scalar loss.
//
// Returns a map from forward-pass tensor to its gradient; parameter
// gradients are looked up by the tensors' Raw() pointers.
func Backward[T tensor.DType, B BackwardCapable](t *tensor.Tensor[T, B], backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	tape := backend.GetTape()
	if tape.NumOps() == 0 {
		panic("backward: no operations recorded (did you forget Tape().StartRecording()?)")
	}

	seed, err := tensor.NewRaw(t.Shape(), t.DType(), backend.Device())
	if err != nil {
		panic(fmt.Sprintf("backward: failed to create seed gradient: %v", err))
	}

	switch t.DType() {
	case tensor.Float32:
		data := seed.AsFloat32()
		for i := range data {
			data[i] = 1
		}
	case tensor.Float64:
		data := seed.AsFloat64()
		for i := range data {
			data[i] = 1
		}
	default:
		panic(fmt.Sprintf("backward: unsupported dtype %s", t.DType()))
	}

	return tape.Backward(seed, backend)
}
