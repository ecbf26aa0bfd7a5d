// Package nn implements a two-layer feed-forward network of sigmoid units
// trained by hand-derived backpropagation.
//
// This package provides:
//   - Numeric primitives: Dot, Sigmoid, DerivSigmoid, MSE, LossDerivative
//   - Neuron: weight vector and bias with forward and local-gradient math
//   - Network: hidden + output layer, forward pass, gradients, update step
//   - Initializers: Ones, Zeros, Constant (deterministic only)
//   - Checkpoint: YAML snapshot of a trained network
//
// Every value in this package is treated as immutable once built: a training
// step produces a new Network instead of editing the old one.
package nn
