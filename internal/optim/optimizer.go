// Package optim implements the update rule that drives training.
//
// This package provides:
//   - Optimizer interface: one training step for one sample
//   - SGD: plain per-sample gradient descent
//
// Example usage:
//
//	optimizer := optim.NewSGD(optim.SGDConfig{LR: 0.1})
//
//	for epoch := range epochs {
//	    for i := range data {
//	        net, err = optimizer.Step(net, data[i], labels[i])
//	        if err != nil {
//	            return err
//	        }
//	    }
//	}
package optim

import (
	"github.com/born-ml/tinynet/internal/nn"
)

// Optimizer is the interface for training-step algorithms.
//
// Step never modifies net. It returns the network that should replace it.
type Optimizer interface {
	// Step performs one update for a single (inputs, expected) sample.
	Step(net *nn.Network, inputs, expected []float64) (*nn.Network, error)

	// GetLR returns the learning rate.
	GetLR() float64
}
