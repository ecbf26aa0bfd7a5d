// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/tinynet/internal/nn"
)

// Errors

// ErrShapeMismatch matches every error caused by a vector of the wrong length.
var ErrShapeMismatch = nn.ErrShapeMismatch

// ErrInvalidShape is returned when a network dimension is not positive.
var ErrInvalidShape = nn.ErrInvalidShape

// ShapeError describes the offending lengths of a shape mismatch.
type ShapeError = nn.ShapeError

// Building blocks

// Neuron is a single sigmoid unit: a weight vector and a bias.
type Neuron = nn.Neuron

// NewNeuron creates a neuron that owns a copy of weights.
func NewNeuron(weights []float64, bias float64) Neuron {
	return nn.NewNeuron(weights, bias)
}

// HiddenUpdate selects how the loss reaches the hidden layer.
type HiddenUpdate = nn.HiddenUpdate

// Hidden-layer update rules.
const (
	FirstOutput = nn.FirstOutput
	SumOutputs  = nn.SumOutputs
)

// Initializer produces the starting value of one weight.
type Initializer = nn.Initializer

// Initializers.
var (
	Ones  Initializer = nn.Ones
	Zeros Initializer = nn.Zeros
)

// Constant returns an Initializer that sets every weight to v.
func Constant(v float64) Initializer {
	return nn.Constant(v)
}

// Numeric primitives

// Dot returns Σ xs[i]·ys[i].
func Dot(xs, ys []float64) (float64, error) {
	return nn.Dot(xs, ys)
}

// Sigmoid computes 1 / (1 + exp(-x)).
func Sigmoid(x float64) float64 {
	return nn.Sigmoid(x)
}

// DerivSigmoid computes σ(x)·(1 − σ(x)) at the pre-activation x.
func DerivSigmoid(x float64) float64 {
	return nn.DerivSigmoid(x)
}

// MSE computes the mean squared error between two vectors.
func MSE(expected, actual []float64) (float64, error) {
	return nn.MSE(expected, actual)
}
