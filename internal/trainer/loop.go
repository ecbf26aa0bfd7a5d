// Package trainer drives a network through epochs of online gradient descent.
package trainer

import (
	"errors"
	"fmt"
	"log"

	"github.com/born-ml/tinynet/internal/metrics"
	"github.com/born-ml/tinynet/internal/nn"
	"github.com/born-ml/tinynet/internal/optim"
)

// Trainer errors.
var (
	ErrLabelCount     = errors.New("number of samples and labels differ")
	ErrNegativeEpochs = errors.New("epochs must be >= 0")
	ErrNilNetwork     = errors.New("nil network")
)

// Config captures the knobs of the training loop.
type Config struct {
	Epochs    int
	Optimizer optim.Optimizer // Default: SGD with optim.DefaultLR
	Logger    *log.Logger     // Epoch loss is logged here; nil disables logging
	LogEvery  int             // Log every N epochs (default: 1)

	// OnEpoch, when set, receives every epoch's snapshot.
	OnEpoch func(metrics.Snapshot)
}

// Run trains net on data/labels for cfg.Epochs epochs and returns the
// trained network with one loss snapshot per epoch.
//
// Samples are visited in the order given, and every sample replaces the
// network with the optimizer's result. A sample's loss is the MSE of the
// prediction made just before its update. With zero epochs or no samples the
// input network is returned unchanged.
//
// net itself is never modified. On error no network is returned.
func Run(net *nn.Network, data, labels [][]float64, cfg Config) (*nn.Network, []metrics.Snapshot, error) {
	if net == nil {
		return nil, nil, ErrNilNetwork
	}
	if len(data) != len(labels) {
		return nil, nil, fmt.Errorf("trainer: %w: %d samples, %d labels", ErrLabelCount, len(data), len(labels))
	}
	if cfg.Epochs < 0 {
		return nil, nil, fmt.Errorf("trainer: %w (got %d)", ErrNegativeEpochs, cfg.Epochs)
	}
	if cfg.Epochs == 0 || len(data) == 0 {
		return net, nil, nil
	}
	if cfg.Optimizer == nil {
		cfg.Optimizer = optim.NewSGD(optim.SGDConfig{})
	}
	if cfg.LogEvery <= 0 {
		cfg.LogEvery = 1
	}

	var history []metrics.Snapshot
	var window metrics.Window

	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		for i, sample := range data {
			preds, err := net.FeedForward(sample)
			if err != nil {
				return nil, nil, fmt.Errorf("trainer: epoch %d sample %d: %w", epoch, i, err)
			}
			loss, err := nn.MSE(labels[i], preds)
			if err != nil {
				return nil, nil, fmt.Errorf("trainer: epoch %d sample %d: %w", epoch, i, err)
			}

			net, err = cfg.Optimizer.Step(net, sample, labels[i])
			if err != nil {
				return nil, nil, fmt.Errorf("trainer: epoch %d sample %d: %w", epoch, i, err)
			}
			window.Record(loss)
		}

		snap := window.Snapshot(epoch)
		history = append(history, snap)
		if cfg.OnEpoch != nil {
			cfg.OnEpoch(snap)
		}
		if cfg.Logger != nil && (epoch%cfg.LogEvery == 0 || epoch == cfg.Epochs-1) {
			cfg.Logger.Printf("epoch=%d loss=%.6f mean_loss=%.6f last_loss=%.6f",
				snap.Epoch, snap.TotalLoss, snap.MeanLoss, snap.LastLoss)
		}
	}

	return net, history, nil
}
