package nn

// Initializer produces the starting value of one weight.
//
// Parameters:
//   - fanIn: Number of inputs of the neuron that owns the weight
//   - fanOut: Number of neurons in that neuron's layer
//   - index: Position of the weight within the neuron's weight vector
//
// Initialisation is deterministic so that training runs are reproducible.
type Initializer func(fanIn, fanOut, index int) float64

// Ones initialises every weight to 1. It is the default.
func Ones(_, _, _ int) float64 {
	return 1
}

// Zeros initialises every weight to 0.
//
// With all-zero weights every hidden unit starts symmetric and stays that way.
func Zeros(_, _, _ int) float64 {
	return 0
}

// Constant returns an Initializer that sets every weight to v.
func Constant(v float64) Initializer {
	return func(_, _, _ int) float64 {
		return v
	}
}

// newLayer creates size neurons with fanIn weights each and zero bias.
func newLayer(fanIn, size int, initFn Initializer) []Neuron {
	layer := make([]Neuron, size)
	for i := range layer {
		weights := make([]float64, fanIn)
		for j := range weights {
			weights[j] = initFn(fanIn, size, j)
		}
		layer[i] = Neuron{Weights: weights, Bias: 0}
	}
	return layer
}
