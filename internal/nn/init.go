package nn

import (
	"math"
	"math/rand"

	"github.com/sumedhvaidy/ml-tutorials/internal/tensor"
)

// initRNG drives weight initialization. Reseed it with SeedInit before
// building a model for reproducible weights.
var initRNG = rand.New(rand.NewSource(1))

// SeedInit reseeds the weight initialization source.
func SeedInit(seed int64) {
	initRNG = rand.New(rand.NewSource(seed))
}

// Xavier initializes a weight tensor with the Glorot uniform
// distribution U(-bound, bound) where bound = sqrt(6 / (fanIn + fanOut)).
// It keeps activation variance roughly constant across layers, which
// matters for sigmoid networks that saturate easily.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	raw, err := tensor.NewRaw(shape, tensor.Float32, backend.Device())
	if err != nil {
		panic(err)
	}

	data := raw.AsFloat32()
	for i := range data {
		data[i] = float32((initRNG.Float64()*2 - 1) * bound)
	}

	return tensor.New[float32, B](raw, backend)
}

// Zeros creates a zero-filled float32 tensor. The usual bias init.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Zeros[float32](shape, backend)
}

// Ones creates a one-filled float32 tensor.
func Ones[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Ones[float32](shape, backend)
}

// Randn creates a float32 tensor with values drawn from N(0, 1).
func Randn[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Randn[float32](shape, backend)
}
