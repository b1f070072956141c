package trainer

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumedhvaidy/ml-tutorials/internal/autodiff"
	"github.com/sumedhvaidy/ml-tutorials/internal/backend/cpu"
	"github.com/sumedhvaidy/ml-tutorials/internal/dataset"
	"github.com/sumedhvaidy/ml-tutorials/internal/nn"
	"github.com/sumedhvaidy/ml-tutorials/internal/optim"
)

type xorBackend = *autodiff.Backend[*cpu.Backend]

func newXORModel(hidden int, backend xorBackend) *nn.Sequential[xorBackend] {
	return nn.NewSequential[xorBackend](
		nn.NewLinear(2, hidden, backend),
		nn.NewSigmoid[xorBackend](),
		nn.NewLinear(hidden, 1, backend),
		nn.NewSigmoid[xorBackend](),
	)
}

func TestRunValidatesConfig(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tr := New[xorBackend](newXORModel(4, backend), nn.NewBCELoss[xorBackend](), nil, backend)

	_, err := tr.Run(dataset.XOR(), RunConfig{Epochs: 0, BatchSize: 4})
	assert.Error(t, err)

	_, err = tr.Run(dataset.XOR(), RunConfig{Epochs: 1, BatchSize: 0})
	assert.Error(t, err)
}

func TestRunRecordsHistoryAndClearsTape(t *testing.T) {
	backend := autodiff.New(cpu.New())
	model := newXORModel(4, backend)
	opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.1})
	tr := New[xorBackend](model, nn.NewBCELoss[xorBackend](), opt, backend)

	history, err := tr.Run(dataset.XOR(), RunConfig{Epochs: 3, BatchSize: 4, LogEvery: 100})
	require.NoError(t, err)

	assert.Len(t, history.Losses, 3)
	assert.Equal(t, 0, backend.Tape().NumOps(), "tape must be cleared after training")
}

func TestXORTrainingConverges(t *testing.T) {
	nn.SeedInit(42)

	backend := autodiff.New(cpu.New())
	model := newXORModel(8, backend)
	opt := optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: 0.05})
	tr := New[xorBackend](model, nn.NewBCELoss[xorBackend](), opt, backend)

	samples := dataset.XOR()
	history, err := tr.Run(samples, RunConfig{
		Epochs:    3000,
		BatchSize: 4,
		Seed:      42,
		LogEvery:  1000,
	})
	require.NoError(t, err)

	require.NotEmpty(t, history.Losses)
	assert.Less(t, history.Final(), history.Losses[0], "loss should decrease")
	assert.Less(t, history.Final(), 0.1, "loss should approach zero")

	predictions, err := Predict[xorBackend](model, samples, backend)
	require.NoError(t, err)
	require.Len(t, predictions, 4)

	for i, s := range samples {
		assert.InDelta(t, s.Target, predictions[i], 0.5,
			"prediction for %v should land on the right side of 0.5", s.Input)
	}
	assert.Equal(t, 1.0, Accuracy(predictions, samples))
}

func TestAccuracy(t *testing.T) {
	samples := dataset.XOR()
	assert.Equal(t, 1.0, Accuracy([]float32{0.1, 0.9, 0.8, 0.2}, samples))
	assert.Equal(t, 0.75, Accuracy([]float32{0.9, 0.9, 0.8, 0.2}, samples))
	assert.Zero(t, Accuracy(nil, samples))
}

func TestHistoryCSV(t *testing.T) {
	h := &History{Losses: []float64{0.7, 0.5}}

	var buf bytes.Buffer
	require.NoError(t, h.WriteCSV(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "epoch,loss", lines[0])
	assert.Equal(t, "1,0.7", lines[1])
	assert.Equal(t, "2,0.5", lines[2])
}

func TestHistorySaveCSV(t *testing.T) {
	h := &History{Losses: []float64{0.3}}
	path := filepath.Join(t.TempDir(), "loss.csv")
	require.NoError(t, h.SaveCSV(path))

	sum := h.Summary()
	assert.InDelta(t, 0.3, sum.Final, 1e-9)
}
