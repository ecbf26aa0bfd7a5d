// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"fmt"
	"io"
	"log"
	"slices"

	"github.com/born-ml/tinynet/internal/metrics"
	"github.com/born-ml/tinynet/internal/nn"
	"github.com/born-ml/tinynet/internal/optim"
	"github.com/born-ml/tinynet/internal/trainer"
)

// Snapshot is the loss summary of one training epoch.
type Snapshot = metrics.Snapshot

// Config holds optional network and training settings.
type Config struct {
	Init         Initializer  // Weight initialiser (default: Ones)
	HiddenUpdate HiddenUpdate // Hidden-layer update rule (default: FirstOutput)
	LearningRate float64      // Default: 0.1
	Logger       *log.Logger  // Receives epoch loss lines during Train; nil is silent
	LogEvery     int          // Log every N epochs (default: 1)
}

// Network is a trainable two-layer sigmoid network.
//
// Use NewNetwork, NewNetworkWithConfig, FromLayers or Load to create one; the
// zero value has no layers and every operation on it returns ErrInvalidShape.
// A Network is not safe for concurrent use while Train is running.
type Network struct {
	net     *nn.Network
	config  Config
	history []Snapshot
	epochs  int // Epochs completed across every Train call and the loaded checkpoint
}

// NewNetwork creates a network with numInputs inputs, numHidden hidden
// neurons and numOutputs output neurons. All weights start at 1 and all
// biases at 0.
//
// Example:
//
//	net, err := nn.NewNetwork(2, 2, 1)
func NewNetwork(numInputs, numHidden, numOutputs int) (*Network, error) {
	return NewNetworkWithConfig(numInputs, numHidden, numOutputs, Config{})
}

// NewNetworkWithConfig creates a network using config.
func NewNetworkWithConfig(numInputs, numHidden, numOutputs int, config Config) (*Network, error) {
	if err := (optim.SGDConfig{LR: config.LearningRate}).Validate(); err != nil {
		return nil, err
	}
	net, err := nn.NewNetwork(numInputs, numHidden, numOutputs, nn.NetworkConfig{
		Init:         config.Init,
		HiddenUpdate: config.HiddenUpdate,
	})
	if err != nil {
		return nil, err
	}
	return &Network{net: net, config: config}, nil
}

// FromLayers creates a network from explicit neurons.
func FromLayers(hidden, outputs []Neuron, config Config) (*Network, error) {
	if err := (optim.SGDConfig{LR: config.LearningRate}).Validate(); err != nil {
		return nil, err
	}
	net, err := nn.FromLayers(hidden, outputs, nn.NetworkConfig{HiddenUpdate: config.HiddenUpdate})
	if err != nil {
		return nil, err
	}
	return &Network{net: net, config: config}, nil
}

// Train runs epochs passes of online gradient descent over data/labels.
//
// On success the network adopts the trained weights. On error it is left
// exactly as it was. Zero epochs or an empty dataset leave it unchanged.
func (n *Network) Train(data, labels [][]float64, epochs int) error {
	net, err := n.inner()
	if err != nil {
		return err
	}
	trained, history, err := trainer.Run(net, data, labels, trainer.Config{
		Epochs:    epochs,
		Optimizer: optim.NewSGD(optim.SGDConfig{LR: n.config.LearningRate}),
		Logger:    n.config.Logger,
		LogEvery:  n.config.LogEvery,
	})
	if err != nil {
		return err
	}

	n.net = trained
	n.history = history
	n.epochs += len(history)
	return nil
}

// Predict returns the network output for input. It never changes the network.
func (n *Network) Predict(input []float64) ([]float64, error) {
	net, err := n.inner()
	if err != nil {
		return nil, err
	}
	return net.Predict(input)
}

// History returns the per-epoch loss of the most recent Train call.
func (n *Network) History() []Snapshot {
	return slices.Clone(n.history)
}

// Epochs returns the number of epochs trained so far, including those
// recorded in the checkpoint the network was loaded from.
func (n *Network) Epochs() int { return n.epochs }

// NumInputs returns the input dimensionality.
func (n *Network) NumInputs() int { return n.layers().NumInputs() }

// NumHidden returns the hidden-layer width.
func (n *Network) NumHidden() int { return n.layers().NumHidden() }

// NumOutputs returns the output-layer width.
func (n *Network) NumOutputs() int { return n.layers().NumOutputs() }

// Hidden returns a copy of the hidden layer.
func (n *Network) Hidden() []Neuron { return n.layers().Hidden() }

// Outputs returns a copy of the output layer.
func (n *Network) Outputs() []Neuron { return n.layers().Outputs() }

// Save writes the network's parameters as a YAML checkpoint.
func (n *Network) Save(w io.Writer) error {
	net, err := n.inner()
	if err != nil {
		return err
	}
	ckpt := &nn.Checkpoint{
		Network:      net,
		Epoch:        n.epochs,
		LearningRate: optim.NewSGD(optim.SGDConfig{LR: n.config.LearningRate}).GetLR(),
	}
	if len(n.history) > 0 {
		ckpt.Loss = n.history[len(n.history)-1].TotalLoss
	}
	return ckpt.Save(w)
}

// Load reads a network written by Save. The learning rate recorded in the
// checkpoint becomes the network's learning rate.
func Load(r io.Reader) (*Network, error) {
	ckpt, err := nn.LoadCheckpoint(r)
	if err != nil {
		return nil, err
	}
	if err := (optim.SGDConfig{LR: ckpt.LearningRate}).Validate(); err != nil {
		return nil, err
	}
	return &Network{
		net: ckpt.Network,
		config: Config{
			HiddenUpdate: ckpt.Network.HiddenUpdate(),
			LearningRate: ckpt.LearningRate,
		},
		epochs: ckpt.Epoch,
	}, nil
}

func (n *Network) inner() (*nn.Network, error) {
	if n == nil || n.net == nil {
		return nil, fmt.Errorf("%w: network was not created by a constructor", ErrInvalidShape)
	}
	return n.net, nil
}

// layers returns the inner network, or an empty one for the zero value.
func (n *Network) layers() *nn.Network {
	if n == nil || n.net == nil {
		return &nn.Network{}
	}
	return n.net
}
