package nn_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tinynet/internal/nn"
)

func TestCheckpoint_RoundTrip(t *testing.T) {
	net := twoOutputNetwork(t, nn.SumOutputs)
	trained, err := net.BackPropagate([]float64{1, 0}, []float64{0, 1}, 0.1)
	require.NoError(t, err)

	created := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	ckpt := &nn.Checkpoint{
		Network:      trained,
		Epoch:        20,
		Loss:         0.123456789,
		LearningRate: 0.1,
		CreatedAt:    created,
	}

	var buf bytes.Buffer
	require.NoError(t, ckpt.Save(&buf))

	loaded, err := nn.LoadCheckpoint(&buf)
	require.NoError(t, err)

	assert.True(t, loaded.Network.Equal(trained), "parameters must round-trip bit for bit")
	assert.Equal(t, nn.SumOutputs, loaded.Network.HiddenUpdate())
	assert.Equal(t, 20, loaded.Epoch)
	assert.Equal(t, 0.123456789, loaded.Loss)
	assert.Equal(t, 0.1, loaded.LearningRate)
	assert.True(t, created.Equal(loaded.CreatedAt))
}

func TestCheckpoint_ChecksumMismatch(t *testing.T) {
	net, err := nn.NewNetwork(2, 2, 1, nn.NetworkConfig{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, (&nn.Checkpoint{Network: net}).Save(&buf))

	tampered := strings.Replace(buf.String(), "bias: 0", "bias: 0.5", 1)
	require.NotEqual(t, buf.String(), tampered)

	_, err = nn.LoadCheckpoint(strings.NewReader(tampered))
	assert.ErrorIs(t, err, nn.ErrChecksumMismatch)
}

func TestCheckpoint_UnsupportedVersion(t *testing.T) {
	doc := "version: 99\nhidden: []\noutputs: []\n"
	_, err := nn.LoadCheckpoint(strings.NewReader(doc))
	assert.ErrorIs(t, err, nn.ErrUnsupportedVersion)
}

func TestCheckpoint_InvalidLayers(t *testing.T) {
	doc := `version: 1
hidden:
  - weights: [1, 1]
    bias: 0
outputs:
  - weights: [1, 1]
    bias: 0
checksum: ""
`
	_, err := nn.LoadCheckpoint(strings.NewReader(doc))
	assert.ErrorIs(t, err, nn.ErrShapeMismatch)
}

func TestCheckpoint_SaveWithoutNetwork(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, (&nn.Checkpoint{}).Save(&buf))
}
