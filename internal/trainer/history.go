package trainer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sumedhvaidy/ml-tutorials/internal/metrics"
)

// History is the per-epoch loss curve of a training run.
type History struct {
	Losses []float64
}

// Record appends one epoch's mean loss.
func (h *History) Record(loss float64) {
	h.Losses = append(h.Losses, loss)
}

// Final returns the last recorded loss, or 0 for an empty history.
func (h *History) Final() float64 {
	if len(h.Losses) == 0 {
		return 0
	}
	return h.Losses[len(h.Losses)-1]
}

// Summary computes summary statistics over the loss curve.
func (h *History) Summary() metrics.Summary {
	return metrics.Summarize(h.Losses)
}

// WriteCSV writes the loss curve as "epoch,loss" rows.
func (h *History) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"epoch", "loss"}); err != nil {
		return err
	}
	for i, loss := range h.Losses {
		row := []string{strconv.Itoa(i + 1), strconv.FormatFloat(loss, 'g', -1, 64)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the loss curve to a file.
func (h *History) SaveCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create loss csv: %w", err)
	}
	defer f.Close()

	if err := h.WriteCSV(f); err != nil {
		return fmt.Errorf("write loss csv: %w", err)
	}
	return nil
}
