package optim

import (
	"errors"
	"fmt"
	"math"

	"github.com/born-ml/tinynet/internal/nn"
)

// DefaultLR is the learning rate used when SGDConfig.LR is zero.
const DefaultLR = 0.1

// ErrInvalidLR is returned for a negative or non-finite learning rate.
var ErrInvalidLR = errors.New("invalid learning rate")

// SGD implements online stochastic gradient descent.
//
// Update rule:
//
//	param = param - lr * gradient
//
// applied after every sample. There is no momentum and no batching.
type SGD struct {
	lr float64
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR float64 // Learning rate (default: 0.1)
}

// Validate checks the configuration.
func (c SGDConfig) Validate() error {
	if c.LR < 0 || math.IsNaN(c.LR) || math.IsInf(c.LR, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidLR, c.LR)
	}
	return nil
}

// NewSGD creates a new SGD optimizer.
//
// A zero LR selects DefaultLR.
//
// Example:
//
//	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.1})
func NewSGD(config SGDConfig) *SGD {
	// Set defaults
	if config.LR == 0 {
		config.LR = DefaultLR
	}
	return &SGD{lr: config.LR}
}

// Step backpropagates one sample through net and returns the updated network.
func (s *SGD) Step(net *nn.Network, inputs, expected []float64) (*nn.Network, error) {
	return net.BackPropagate(inputs, expected, s.lr)
}

// GetLR returns the learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}
