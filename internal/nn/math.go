package nn

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Dot returns the dot product Σ xs[i]·ys[i].
//
// Returns a *ShapeError when the lengths differ; nothing is truncated or padded.
func Dot(xs, ys []float64) (float64, error) {
	if err := checkLen("dot", len(xs), len(ys)); err != nil {
		return 0, err
	}
	return floats.Dot(xs, ys), nil
}

// Sigmoid computes σ(x) = 1 / (1 + exp(-x)).
//
// The result lies in (0, 1) for every finite x and σ(0) is exactly 0.5.
func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// DerivSigmoid computes σ(x)·(1 − σ(x)).
//
// x is the raw pre-activation sum, not an activation value.
func DerivSigmoid(x float64) float64 {
	fx := Sigmoid(x)
	return fx * (1.0 - fx)
}

// MSE computes the mean squared error between two vectors.
//
// Loss = mean((expected - actual)²)
//
// MSE is only used to report training progress; the gradient path uses
// LossDerivative directly. Two empty vectors have zero error.
func MSE(expected, actual []float64) (float64, error) {
	if err := checkLen("mse", len(expected), len(actual)); err != nil {
		return 0, err
	}
	if len(expected) == 0 {
		return 0, nil
	}

	diff := make([]float64, len(expected))
	floats.SubTo(diff, expected, actual)

	return floats.Dot(diff, diff) / float64(len(expected)), nil
}

// LossDerivative is ∂L/∂predicted for the squared error L = (expected − predicted)².
func LossDerivative(expected, predicted float64) float64 {
	return -2 * (expected - predicted)
}
