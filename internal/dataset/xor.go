// Package dataset provides the XOR truth table and batching over it.
//
// XOR is the classic minimal dataset that a linear model cannot fit:
// no single line separates the two classes, so solving it requires at
// least one hidden layer.
package dataset

import (
	"fmt"
	"math/rand"

	"github.com/sumedhvaidy/ml-tutorials/internal/tensor"
)

// Sample is one truth-table row: two binary inputs and their XOR.
type Sample struct {
	Input  [2]float32
	Target float32
}

// XOR returns the four-row truth table.
func XOR() []Sample {
	return []Sample{
		{Input: [2]float32{0, 0}, Target: 0},
		{Input: [2]float32{0, 1}, Target: 1},
		{Input: [2]float32{1, 0}, Target: 1},
		{Input: [2]float32{1, 1}, Target: 0},
	}
}

// Batch is a contiguous slice of samples flattened for tensor
// construction: Inputs is row-major [Size, 2], Targets is [Size, 1].
type Batch struct {
	Inputs  []float32
	Targets []float32
	Size    int
}

// Batches splits samples into batches of batchSize. When shuffle is
// set the sample order is permuted with rng first (Fisher-Yates), so
// runs are reproducible from the seed. The final batch may be smaller
// when the sizes do not divide evenly.
func Batches(samples []Sample, batchSize int, shuffle bool, rng *rand.Rand) ([]Batch, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("dataset: batch size must be > 0 (got %d)", batchSize)
	}
	if batchSize > len(samples) {
		return nil, fmt.Errorf("dataset: batch size %d exceeds dataset size %d", batchSize, len(samples))
	}

	order := make([]int, len(samples))
	for i := range order {
		order[i] = i
	}
	if shuffle {
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}

	var batches []Batch
	for start := 0; start < len(order); start += batchSize {
		end := min(start+batchSize, len(order))
		batch := Batch{
			Inputs:  make([]float32, 0, (end-start)*2),
			Targets: make([]float32, 0, end-start),
			Size:    end - start,
		}
		for _, idx := range order[start:end] {
			s := samples[idx]
			batch.Inputs = append(batch.Inputs, s.Input[0], s.Input[1])
			batch.Targets = append(batch.Targets, s.Target)
		}
		batches = append(batches, batch)
	}

	return batches, nil
}

// Tensors builds the input and target tensors for a batch on the given
// backend: inputs [Size, 2], targets [Size, 1].
func Tensors[B tensor.Backend](batch Batch, backend B) (*tensor.Tensor[float32, B], *tensor.Tensor[float32, B], error) {
	inputs, err := tensor.FromSlice(batch.Inputs, tensor.Shape{batch.Size, 2}, backend)
	if err != nil {
		return nil, nil, fmt.Errorf("dataset: building inputs: %w", err)
	}
	targets, err := tensor.FromSlice(batch.Targets, tensor.Shape{batch.Size, 1}, backend)
	if err != nil {
		return nil, nil, fmt.Errorf("dataset: building targets: %w", err)
	}
	return inputs, targets, nil
}
