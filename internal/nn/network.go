package nn

import (
	"fmt"
	"slices"
)

// HiddenUpdate selects how the loss is routed back into the hidden layer.
type HiddenUpdate int

const (
	// FirstOutput scales every hidden update by the loss derivative and
	// influence of output unit 0 only. Exact for a single output unit.
	FirstOutput HiddenUpdate = iota

	// SumOutputs scales each hidden update by Σ_k dL_k·influence_k[j],
	// accounting for every output unit.
	SumOutputs
)

// String implements fmt.Stringer.
func (h HiddenUpdate) String() string {
	switch h {
	case FirstOutput:
		return "first_output"
	case SumOutputs:
		return "sum_outputs"
	default:
		return fmt.Sprintf("HiddenUpdate(%d)", int(h))
	}
}

// ParseHiddenUpdate converts a name produced by String back to a HiddenUpdate.
// The empty string selects FirstOutput.
func ParseHiddenUpdate(s string) (HiddenUpdate, error) {
	switch s {
	case "", "first_output":
		return FirstOutput, nil
	case "sum_outputs":
		return SumOutputs, nil
	default:
		return 0, fmt.Errorf("unknown hidden update mode %q", s)
	}
}

// NetworkConfig holds optional construction settings.
type NetworkConfig struct {
	Init         Initializer  // Weight initialiser (default: Ones)
	HiddenUpdate HiddenUpdate // Hidden-layer update rule (default: FirstOutput)
}

// Network is a feed-forward network with one hidden layer and one output
// layer of sigmoid neurons.
//
// Architecture:
//   - Hidden: NumHidden neurons, NumInputs weights each
//   - Output: NumOutputs neurons, NumHidden weights each
//
// A Network is never modified after construction. BackPropagate and Apply
// return a new Network holding freshly computed layers; the caller adopts it.
type Network struct {
	hidden  []Neuron
	outputs []Neuron
	update  HiddenUpdate
}

// NewNetwork creates a network with deterministic initial weights and zero
// biases.
//
// Example:
//
//	net, err := nn.NewNetwork(2, 2, 1, nn.NetworkConfig{})
func NewNetwork(numInputs, numHidden, numOutputs int, config NetworkConfig) (*Network, error) {
	if numInputs <= 0 || numHidden <= 0 || numOutputs <= 0 {
		return nil, fmt.Errorf("%w: inputs=%d hidden=%d outputs=%d",
			ErrInvalidShape, numInputs, numHidden, numOutputs)
	}
	if config.Init == nil {
		config.Init = Ones
	}

	return &Network{
		hidden:  newLayer(numInputs, numHidden, config.Init),
		outputs: newLayer(numHidden, numOutputs, config.Init),
		update:  config.HiddenUpdate,
	}, nil
}

// FromLayers builds a network from explicit neurons.
//
// Every hidden neuron must have the same, non-zero number of weights and
// every output neuron must have one weight per hidden neuron. The neurons are
// copied. config.Init is ignored.
func FromLayers(hidden, outputs []Neuron, config NetworkConfig) (*Network, error) {
	if len(hidden) == 0 || len(outputs) == 0 {
		return nil, fmt.Errorf("%w: hidden=%d outputs=%d", ErrInvalidShape, len(hidden), len(outputs))
	}
	numInputs := hidden[0].NumInputs()
	if numInputs == 0 {
		return nil, fmt.Errorf("%w: hidden neurons have no weights", ErrInvalidShape)
	}
	for i, n := range hidden {
		if err := checkLen(fmt.Sprintf("hidden[%d]", i), numInputs, n.NumInputs()); err != nil {
			return nil, err
		}
	}
	for i, n := range outputs {
		if err := checkLen(fmt.Sprintf("outputs[%d]", i), len(hidden), n.NumInputs()); err != nil {
			return nil, err
		}
	}

	return &Network{
		hidden:  cloneLayer(hidden),
		outputs: cloneLayer(outputs),
		update:  config.HiddenUpdate,
	}, nil
}

// NumInputs returns the input dimensionality, or 0 for a Network that was
// not built by NewNetwork or FromLayers.
func (n *Network) NumInputs() int {
	if len(n.hidden) == 0 {
		return 0
	}
	return n.hidden[0].NumInputs()
}

// NumHidden returns the hidden-layer width.
func (n *Network) NumHidden() int { return len(n.hidden) }

// NumOutputs returns the output-layer width.
func (n *Network) NumOutputs() int { return len(n.outputs) }

// HiddenUpdate returns the hidden-layer update rule.
func (n *Network) HiddenUpdate() HiddenUpdate { return n.update }

// Hidden returns a copy of the hidden layer.
func (n *Network) Hidden() []Neuron { return cloneLayer(n.hidden) }

// Outputs returns a copy of the output layer.
func (n *Network) Outputs() []Neuron { return cloneLayer(n.outputs) }

// FeedForward computes the network's output for one input vector.
//
// Hidden activations are computed from inputs, then every output neuron is
// applied to the hidden activation vector.
func (n *Network) FeedForward(inputs []float64) ([]float64, error) {
	_, preds, err := n.forward(inputs)
	return preds, err
}

// Predict is FeedForward, used for inference after training.
func (n *Network) Predict(inputs []float64) ([]float64, error) {
	return n.FeedForward(inputs)
}

// forward returns the hidden activations and the predictions.
func (n *Network) forward(inputs []float64) (hiddenOuts, preds []float64, err error) {
	if len(n.hidden) == 0 || len(n.outputs) == 0 {
		return nil, nil, fmt.Errorf("%w: network has no layers", ErrInvalidShape)
	}
	if err := checkLen("feed_forward", n.NumInputs(), len(inputs)); err != nil {
		return nil, nil, err
	}

	hiddenOuts, err = feedLayer(n.hidden, inputs)
	if err != nil {
		return nil, nil, err
	}
	preds, err = feedLayer(n.outputs, hiddenOuts)
	if err != nil {
		return nil, nil, err
	}
	return hiddenOuts, preds, nil
}

// Gradients holds everything one backpropagation step needs for one sample.
type Gradients struct {
	Predictions []float64 // Network output before the update
	LossDerivs  []float64 // dL_k = -2·(expected_k − predicted_k), per output unit

	// HiddenActivations is the hidden-layer output that fed the output layer.
	HiddenActivations []float64

	Output []LocalGradient // Local gradient of each output neuron over HiddenActivations

	// Influence[k][j] is output k's weight j scaled by output k's local bias
	// gradient: how strongly hidden unit j moves output k's pre-activation.
	Influence [][]float64

	Hidden []LocalGradient // Local gradient of each hidden neuron over the inputs
}

// Gradients runs the forward pass for one sample and collects the terms of
// the chain rule.
func (n *Network) Gradients(inputs, expected []float64) (*Gradients, error) {
	if len(n.hidden) == 0 || len(n.outputs) == 0 {
		return nil, fmt.Errorf("%w: network has no layers", ErrInvalidShape)
	}
	if err := checkLen("back_propagate", n.NumOutputs(), len(expected)); err != nil {
		return nil, err
	}

	hiddenOuts, preds, err := n.forward(inputs)
	if err != nil {
		return nil, err
	}

	lossDerivs := make([]float64, len(preds))
	for k, p := range preds {
		lossDerivs[k] = LossDerivative(expected[k], p)
	}

	outGrads := make([]LocalGradient, len(n.outputs))
	influence := make([][]float64, len(n.outputs))
	for k, out := range n.outputs {
		g, err := out.LocalGradient(hiddenOuts)
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", k, err)
		}
		outGrads[k] = g

		infl := make([]float64, len(out.Weights))
		for j, w := range out.Weights {
			infl[j] = w * g.Bias
		}
		influence[k] = infl
	}

	hiddenGrads := make([]LocalGradient, len(n.hidden))
	for j, h := range n.hidden {
		g, err := h.LocalGradient(inputs)
		if err != nil {
			return nil, fmt.Errorf("hidden %d: %w", j, err)
		}
		hiddenGrads[j] = g
	}

	return &Gradients{
		Predictions:       preds,
		LossDerivs:        lossDerivs,
		HiddenActivations: hiddenOuts,
		Output:            outGrads,
		Influence:         influence,
		Hidden:            hiddenGrads,
	}, nil
}

// Apply performs one gradient-descent update with learning rate lr and
// returns the resulting network.
//
// Update rule:
//
//	output k:  w' = w - lr·dL_k·g
//	hidden j:  w' = w - lr·dL·g·influence[j]
//
// where the hidden scale dL·influence[j] follows the network's HiddenUpdate.
// The receiver is not modified.
func (n *Network) Apply(g *Gradients, lr float64) (*Network, error) {
	if g == nil {
		return nil, ErrNilGradients
	}
	if len(n.hidden) == 0 || len(n.outputs) == 0 {
		return nil, fmt.Errorf("%w: network has no layers", ErrInvalidShape)
	}
	if err := n.checkGradients(g); err != nil {
		return nil, err
	}

	outputs := make([]Neuron, len(n.outputs))
	for k, out := range n.outputs {
		next, err := out.Step(lr*g.LossDerivs[k], g.Output[k].Weights, g.Output[k].Bias)
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", k, err)
		}
		outputs[k] = next
	}

	hidden := make([]Neuron, len(n.hidden))
	for j, h := range n.hidden {
		next, err := h.Step(lr*n.hiddenScale(g, j), g.Hidden[j].Weights, g.Hidden[j].Bias)
		if err != nil {
			return nil, fmt.Errorf("hidden %d: %w", j, err)
		}
		hidden[j] = next
	}

	return &Network{hidden: hidden, outputs: outputs, update: n.update}, nil
}

// BackPropagate performs a single-sample gradient step and returns the
// updated network. The receiver is not modified.
func (n *Network) BackPropagate(inputs, expected []float64, lr float64) (*Network, error) {
	g, err := n.Gradients(inputs, expected)
	if err != nil {
		return nil, err
	}
	return n.Apply(g, lr)
}

// Equal reports whether both networks hold exactly the same parameters and
// update rule.
func (n *Network) Equal(other *Network) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.update == other.update &&
		slices.EqualFunc(n.hidden, other.hidden, Neuron.Equal) &&
		slices.EqualFunc(n.outputs, other.outputs, Neuron.Equal)
}

func (n *Network) hiddenScale(g *Gradients, j int) float64 {
	if n.update == SumOutputs {
		var scale float64
		for k := range g.LossDerivs {
			scale += g.LossDerivs[k] * g.Influence[k][j]
		}
		return scale
	}
	return g.LossDerivs[0] * g.Influence[0][j]
}

func (n *Network) checkGradients(g *Gradients) error {
	if err := checkLen("apply: loss derivatives", len(n.outputs), len(g.LossDerivs)); err != nil {
		return err
	}
	if err := checkLen("apply: output gradients", len(n.outputs), len(g.Output)); err != nil {
		return err
	}
	if err := checkLen("apply: influence", len(n.outputs), len(g.Influence)); err != nil {
		return err
	}
	for k, infl := range g.Influence {
		if err := checkLen(fmt.Sprintf("apply: influence[%d]", k), len(n.hidden), len(infl)); err != nil {
			return err
		}
	}
	return checkLen("apply: hidden gradients", len(n.hidden), len(g.Hidden))
}

func feedLayer(layer []Neuron, inputs []float64) ([]float64, error) {
	outs := make([]float64, len(layer))
	for i, neuron := range layer {
		v, err := neuron.FeedForward(inputs)
		if err != nil {
			return nil, err
		}
		outs[i] = v
	}
	return outs, nil
}

func cloneLayer(layer []Neuron) []Neuron {
	out := make([]Neuron, len(layer))
	for i, n := range layer {
		out[i] = NewNeuron(n.Weights, n.Bias)
	}
	return out
}
