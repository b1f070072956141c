// Package trainer runs the training loop: forward pass, loss,
// backward pass on the gradient tape, optimizer step, and periodic
// metric logging.
package trainer

import (
	"errors"
	"log"
	"math/rand"
	"time"

	"github.com/sumedhvaidy/ml-tutorials/internal/autodiff"
	"github.com/sumedhvaidy/ml-tutorials/internal/dataset"
	"github.com/sumedhvaidy/ml-tutorials/internal/metrics"
	"github.com/sumedhvaidy/ml-tutorials/internal/nn"
	"github.com/sumedhvaidy/ml-tutorials/internal/optim"
	"github.com/sumedhvaidy/ml-tutorials/internal/tensor"
)

// Criterion is a loss function over predictions and targets.
// nn.BCELoss and nn.MSELoss both satisfy it.
type Criterion[B tensor.Backend] interface {
	Forward(predictions, targets *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]
}

// RunConfig captures the knobs of one training run.
type RunConfig struct {
	Epochs    int
	BatchSize int
	Shuffle   bool
	Seed      int64
	LogEvery  int // epochs between log lines, default 500
}

// Trainer drives gradient descent for a model on a recording backend.
type Trainer[B autodiff.BackwardCapable] struct {
	model     nn.Module[B]
	criterion Criterion[B]
	opt       optim.Optimizer
	backend   B
}

// New creates a Trainer.
func New[B autodiff.BackwardCapable](model nn.Module[B], criterion Criterion[B], opt optim.Optimizer, backend B) *Trainer[B] {
	return &Trainer[B]{
		model:     model,
		criterion: criterion,
		opt:       opt,
		backend:   backend,
	}
}

// Run trains for cfg.Epochs epochs over the samples and returns the
// per-epoch loss history.
//
// Each step clears the tape, records the forward pass, walks it
// backward, and applies the optimizer update. The tape is cleared
// again afterwards so forward-pass intermediates do not accumulate
// across steps.
func (t *Trainer[B]) Run(samples []dataset.Sample, cfg RunConfig) (*History, error) {
	if cfg.Epochs <= 0 {
		return nil, errors.New("trainer: epochs must be > 0")
	}
	if cfg.BatchSize <= 0 {
		return nil, errors.New("trainer: batch size must be > 0")
	}
	if cfg.LogEvery <= 0 {
		cfg.LogEvery = 500
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	tape := t.backend.GetTape()
	history := &History{}
	var window metrics.Window

	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		batches, err := dataset.Batches(samples, cfg.BatchSize, cfg.Shuffle, rng)
		if err != nil {
			return nil, err
		}

		var epochLoss float64
		for _, batch := range batches {
			start := time.Now()

			t.opt.ZeroGrad()
			tape.Clear()
			tape.StartRecording()

			x, y, err := dataset.Tensors(batch, t.backend)
			if err != nil {
				return nil, err
			}
			loss := t.criterion.Forward(t.model.Forward(x), y)
			grads := autodiff.Backward(loss, t.backend)

			tape.StopRecording()
			tape.Clear()

			t.opt.Step(grads)

			lossValue := float64(loss.Item())
			epochLoss += lossValue
			window.Record(batch.Size, time.Since(start), lossValue)
		}

		history.Record(epochLoss / float64(len(batches)))

		if epoch%cfg.LogEvery == 0 || epoch == cfg.Epochs {
			snap := window.Snapshot()
			log.Printf("epoch=%d loss=%.6f avg_loss=%.6f samples_per_sec=%.0f",
				epoch, history.Final(), snap.AvgLoss, snap.SamplesPerSec)
		}
	}

	return history, nil
}

// Predict runs a forward pass over all samples in their canonical
// order and returns the raw model outputs.
func Predict[B tensor.Backend](model nn.Module[B], samples []dataset.Sample, backend B) ([]float32, error) {
	batches, err := dataset.Batches(samples, len(samples), false, nil)
	if err != nil {
		return nil, err
	}
	x, _, err := dataset.Tensors(batches[0], backend)
	if err != nil {
		return nil, err
	}

	output := model.Forward(x)
	return append([]float32(nil), output.Data()...), nil
}

// Accuracy thresholds probabilities at 0.5 and returns the fraction of
// samples classified correctly.
func Accuracy(predictions []float32, samples []dataset.Sample) float64 {
	if len(predictions) == 0 || len(predictions) != len(samples) {
		return 0
	}

	correct := 0
	for i, p := range predictions {
		label := float32(0)
		if p >= 0.5 {
			label = 1
		}
		if label == samples[i].Target {
			correct++
		}
	}
	return float64(correct) / float64(len(samples))
}
