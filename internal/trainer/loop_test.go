package trainer

import (
	"bytes"
	"fmt"
	"log"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tinynet/internal/metrics"
	"github.com/born-ml/tinynet/internal/nn"
	"github.com/born-ml/tinynet/internal/optim"
)

// Weight (minus 135 lb) and height (minus 66 in); label 1 for female.
var (
	genderData = [][]float64{
		{-2, -1},
		{25, 6},
		{17, 4},
		{-15, -6},
	}
	genderLabels = [][]float64{{1}, {0}, {0}, {1}}
)

func newNetwork(t *testing.T, inputs, hidden, outputs int) *nn.Network {
	t.Helper()
	net, err := nn.NewNetwork(inputs, hidden, outputs, nn.NetworkConfig{})
	require.NoError(t, err)
	return net
}

func TestRun_Converges(t *testing.T) {
	net := newNetwork(t, 2, 2, 1)

	trained, history, err := Run(net, genderData, genderLabels, Config{Epochs: 1000})
	require.NoError(t, err)
	require.Len(t, history, 1000)

	emily, err := trained.Predict([]float64{-7, -3})
	require.NoError(t, err)
	frank, err := trained.Predict([]float64{20, 2})
	require.NoError(t, err)

	assert.Greater(t, emily[0], 0.9)
	assert.Less(t, frank[0], 0.4)
	assert.Less(t, history[len(history)-1].TotalLoss, history[0].TotalLoss)
}

func TestRun_DoesNotMutateInput(t *testing.T) {
	net := newNetwork(t, 2, 2, 1)
	before, err := nn.FromLayers(net.Hidden(), net.Outputs(), nn.NetworkConfig{})
	require.NoError(t, err)

	trained, _, err := Run(net, genderData, genderLabels, Config{Epochs: 3})
	require.NoError(t, err)

	assert.True(t, net.Equal(before))
	assert.False(t, trained.Equal(net))
}

func TestRun_MatchesManualLoop(t *testing.T) {
	net := newNetwork(t, 2, 2, 1)
	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.1})

	manual := net
	var firstEpochLoss float64
	for epoch := 0; epoch < 2; epoch++ {
		for i := range genderData {
			if epoch == 0 {
				preds, err := manual.Predict(genderData[i])
				require.NoError(t, err)
				loss, err := nn.MSE(genderLabels[i], preds)
				require.NoError(t, err)
				firstEpochLoss += loss
			}
			var err error
			manual, err = manual.BackPropagate(genderData[i], genderLabels[i], 0.1)
			require.NoError(t, err)
		}
	}

	trained, history, err := Run(net, genderData, genderLabels, Config{Epochs: 2, Optimizer: sgd})
	require.NoError(t, err)

	assert.True(t, trained.Equal(manual))
	assert.InDelta(t, firstEpochLoss, history[0].TotalLoss, 1e-12)
	assert.Equal(t, 0, history[0].Epoch)
	assert.Equal(t, 1, history[1].Epoch)
	assert.Equal(t, len(genderData), history[1].Samples)
}

func TestRun_EmptyDataset(t *testing.T) {
	net := newNetwork(t, 2, 2, 1)

	trained, history, err := Run(net, nil, nil, Config{Epochs: 10})
	require.NoError(t, err)
	assert.Same(t, net, trained)
	assert.Empty(t, history)

	trained, history, err = Run(net, genderData, genderLabels, Config{Epochs: 0})
	require.NoError(t, err)
	assert.Same(t, net, trained)
	assert.Empty(t, history)
}

func TestRun_Errors(t *testing.T) {
	net := newNetwork(t, 2, 2, 1)

	_, _, err := Run(nil, genderData, genderLabels, Config{Epochs: 1})
	assert.ErrorIs(t, err, ErrNilNetwork)

	_, _, err = Run(net, genderData, genderLabels[:3], Config{Epochs: 1})
	assert.ErrorIs(t, err, ErrLabelCount)

	_, _, err = Run(net, genderData, genderLabels, Config{Epochs: -1})
	assert.ErrorIs(t, err, ErrNegativeEpochs)

	badInput := [][]float64{{1, 2}, {1, 2, 3}}
	_, _, err = Run(net, badInput, [][]float64{{1}, {0}}, Config{Epochs: 1})
	require.ErrorIs(t, err, nn.ErrShapeMismatch)
	assert.Contains(t, err.Error(), "epoch 0 sample 1")

	badLabel := [][]float64{{1}, {0, 1}}
	_, _, err = Run(net, [][]float64{{1, 2}, {3, 4}}, badLabel, Config{Epochs: 1})
	assert.ErrorIs(t, err, nn.ErrShapeMismatch)
}

func TestRun_TwoOutputs(t *testing.T) {
	data := [][]float64{
		{2.7810836, 2.550537003},
		{1.465489372, 2.362125076},
		{3.396561688, 4.400293529},
		{1.38807019, 1.850220317},
		{3.06407232, 3.005305973},
		{7.627531214, 2.759262235},
		{5.332441248, 2.088626775},
		{6.922596716, 1.77106367},
		{8.675418651, -0.242068655},
		{7.673756466, 3.508563011},
	}
	labels := make([][]float64, len(data))
	for i := range labels {
		if i < 5 {
			labels[i] = []float64{1, 0}
		} else {
			labels[i] = []float64{0, 1}
		}
	}

	for _, update := range []nn.HiddenUpdate{nn.FirstOutput, nn.SumOutputs} {
		net, err := nn.FromLayers(
			[]nn.Neuron{nn.NewNeuron([]float64{0.13436424411240122, 0.8474337369372327}, 0.763774618976614)},
			[]nn.Neuron{
				nn.NewNeuron([]float64{0.2550690257394217}, 0.49543508709194095),
				nn.NewNeuron([]float64{0.4494910647887381}, 0.651592972722763),
			},
			nn.NetworkConfig{HiddenUpdate: update},
		)
		require.NoError(t, err)

		_, history, err := Run(net, data, labels, Config{Epochs: 20})
		require.NoError(t, err)
		assert.Less(t, history[19].TotalLoss, history[0].TotalLoss, "mode %s", update)
	}
}

func TestRun_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	var seen []metrics.Snapshot
	_, _, err := Run(newNetwork(t, 2, 2, 1), genderData, genderLabels, Config{
		Epochs:   10,
		Logger:   logger,
		LogEvery: 4,
		OnEpoch:  func(s metrics.Snapshot) { seen = append(seen, s) },
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4) // epochs 0, 4, 8 and the final epoch 9
	assert.True(t, strings.HasPrefix(lines[0], "epoch=0 loss="))
	assert.True(t, strings.HasPrefix(lines[3], "epoch=9 loss="))
	assert.Contains(t, lines[3], fmt.Sprintf("last_loss=%.6f", seen[9].LastLoss))
	assert.Len(t, seen, 10)
}

func TestRun_LargeEpochCount(t *testing.T) {
	net := newNetwork(t, 2, 2, 1)

	// The second sample fails on the first epoch, so a huge epoch count must
	// reach the loop and surface that error.
	data := [][]float64{{1, 2}, {1, 2, 3}}
	var err error
	require.NotPanics(t, func() {
		_, _, err = Run(net, data, [][]float64{{1}, {0}}, Config{Epochs: math.MaxInt})
	})
	require.ErrorIs(t, err, nn.ErrShapeMismatch)
	assert.Contains(t, err.Error(), "epoch 0 sample 1")
}
