// Command xor trains a small feed-forward network on the XOR truth
// table and prints the learned predictions.
//
// Hyperparameters come from an optional YAML config, with flags
// overriding individual values:
//
//	xor -config train.yaml -epochs 2000 -optimizer adam
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/sumedhvaidy/ml-tutorials/internal/autodiff"
	"github.com/sumedhvaidy/ml-tutorials/internal/backend/cpu"
	"github.com/sumedhvaidy/ml-tutorials/internal/config"
	"github.com/sumedhvaidy/ml-tutorials/internal/dataset"
	"github.com/sumedhvaidy/ml-tutorials/internal/nn"
	"github.com/sumedhvaidy/ml-tutorials/internal/optim"
	"github.com/sumedhvaidy/ml-tutorials/internal/trainer"
)

type backendT = *autodiff.Backend[*cpu.Backend]

func main() {
	configPath := flag.String("config", "", "path to YAML config (optional)")
	epochs := flag.Int("epochs", 0, "override: number of training epochs")
	batch := flag.Int("batch", 0, "override: batch size (1..4)")
	lr := flag.Float64("lr", 0, "override: learning rate")
	momentum := flag.Float64("momentum", 0, "override: SGD momentum")
	optimizerName := flag.String("optimizer", "", `override: "sgd" or "adam"`)
	hidden := flag.Int("hidden", 0, "override: hidden layer width")
	seed := flag.Int64("seed", 0, "override: RNG seed")
	lossCSV := flag.String("loss-csv", "", "override: write per-epoch loss to this CSV file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	cfg.ApplyOverrides(config.Overrides{
		Epochs:       *epochs,
		BatchSize:    *batch,
		LearningRate: float32(*lr),
		Momentum:     float32(*momentum),
		Optimizer:    *optimizerName,
		Hidden:       *hidden,
		Seed:         *seed,
		LossCSV:      *lossCSV,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	nn.SeedInit(cfg.Seed)

	backend := autodiff.New(cpu.New())
	model := nn.NewSequential[backendT](
		nn.NewLinear(2, cfg.Hidden, backend),
		nn.NewSigmoid[backendT](),
		nn.NewLinear(cfg.Hidden, 1, backend),
		nn.NewSigmoid[backendT](),
	)

	var opt optim.Optimizer
	switch cfg.Optimizer {
	case "adam":
		opt = optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: cfg.LearningRate})
	default:
		opt = optim.NewSGD(model.Parameters(), optim.SGDConfig{
			LR:       cfg.LearningRate,
			Momentum: cfg.Momentum,
		})
	}

	samples := dataset.XOR()
	log.Printf("training 2-%d-1 network: optimizer=%s lr=%g epochs=%d batch_size=%d seed=%d",
		cfg.Hidden, cfg.Optimizer, cfg.LearningRate, cfg.Epochs, cfg.BatchSize, cfg.Seed)

	tr := trainer.New[backendT](model, nn.NewBCELoss[backendT](), opt, backend)
	history, err := tr.Run(samples, trainer.RunConfig{
		Epochs:    cfg.Epochs,
		BatchSize: cfg.BatchSize,
		Shuffle:   cfg.BatchSize < len(samples),
		Seed:      cfg.Seed,
		LogEvery:  cfg.LogEvery,
	})
	if err != nil {
		log.Fatalf("training: %v", err)
	}

	predictions, err := trainer.Predict[backendT](model, samples, backend)
	if err != nil {
		log.Fatalf("predict: %v", err)
	}

	fmt.Println()
	fmt.Println("  x1  x2 | prediction | target")
	fmt.Println(" --------+------------+-------")
	for i, s := range samples {
		fmt.Printf("   %g   %g |     %.4f |      %g\n",
			s.Input[0], s.Input[1], predictions[i], s.Target)
	}

	summary := history.Summary()
	fmt.Printf("\naccuracy=%.0f%% final_loss=%.6f min_loss=%.6f mean_loss=%.6f\n",
		trainer.Accuracy(predictions, samples)*100, summary.Final, summary.Min, summary.Mean)

	if cfg.LossCSV != "" {
		if err := history.SaveCSV(cfg.LossCSV); err != nil {
			log.Fatalf("loss csv: %v", err)
		}
		log.Printf("wrote loss curve to %s", cfg.LossCSV)
	}
}
