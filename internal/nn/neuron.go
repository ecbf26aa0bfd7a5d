package nn

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Neuron is a single sigmoid unit: a weight vector and a bias.
//
// Neurons are values. Training never mutates one in place; Step returns a
// new Neuron and the Network adopts it. Hidden and output neurons share this
// type and differ only by the layer that holds them.
type Neuron struct {
	Weights []float64 // One weight per input
	Bias    float64
}

// LocalGradient is a neuron's own contribution to the chain rule.
//
// It holds ∂activation/∂weight for every weight and ∂activation/∂bias,
// without the loss derivative or any inter-layer term.
type LocalGradient struct {
	Weights []float64
	Bias    float64
}

// NewNeuron creates a neuron that owns a copy of weights.
func NewNeuron(weights []float64, bias float64) Neuron {
	return Neuron{Weights: slices.Clone(weights), Bias: bias}
}

// NumInputs returns the number of inputs the neuron accepts.
func (n Neuron) NumInputs() int {
	return len(n.Weights)
}

// FeedForward computes σ(inputs·weights + bias).
func (n Neuron) FeedForward(inputs []float64) (float64, error) {
	sum, err := n.preActivation("feed_forward", inputs)
	if err != nil {
		return 0, err
	}
	return Sigmoid(sum + n.Bias), nil
}

// LocalGradient computes the neuron's local gradient for the activations
// preds that fed it.
//
// The derivative is taken at preds·weights; the bias is not part of that sum.
func (n Neuron) LocalGradient(preds []float64) (LocalGradient, error) {
	sum, err := n.preActivation("local_gradient", preds)
	if err != nil {
		return LocalGradient{}, err
	}

	dsum := DerivSigmoid(sum)
	weights := make([]float64, len(preds))
	for i, p := range preds {
		weights[i] = p * dsum
	}

	return LocalGradient{Weights: weights, Bias: dsum}, nil
}

// Step returns a new neuron moved against the gradient:
//
//	w'[i] = w[i] - scale·weightGrads[i]
//	b'    = b    - scale·biasGrad
//
// The receiver is left untouched.
func (n Neuron) Step(scale float64, weightGrads []float64, biasGrad float64) (Neuron, error) {
	if err := checkLen("step", len(n.Weights), len(weightGrads)); err != nil {
		return Neuron{}, err
	}

	weights := make([]float64, len(n.Weights))
	for i, w := range n.Weights {
		weights[i] = w - scale*weightGrads[i]
	}

	return Neuron{Weights: weights, Bias: n.Bias - scale*biasGrad}, nil
}

// Equal reports whether both neurons hold exactly the same weights and bias.
func (n Neuron) Equal(other Neuron) bool {
	return n.Bias == other.Bias && slices.Equal(n.Weights, other.Weights)
}

// String implements fmt.Stringer.
func (n Neuron) String() string {
	return fmt.Sprintf("Neuron(weights=%v, bias=%v)", n.Weights, n.Bias)
}

func (n Neuron) preActivation(op string, inputs []float64) (float64, error) {
	if err := checkLen(op, len(n.Weights), len(inputs)); err != nil {
		return 0, err
	}
	return floats.Dot(inputs, n.Weights), nil
}
