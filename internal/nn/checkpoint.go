package nn

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"gopkg.in/yaml.v3"
)

// CheckpointVersion is the current checkpoint format version.
const CheckpointVersion = 1

// Checkpoint errors.
var (
	ErrChecksumMismatch   = errors.New("checksum mismatch: checkpoint may be corrupted")
	ErrUnsupportedVersion = errors.New("unsupported checkpoint version")
)

// Checkpoint is a snapshot of a trained network plus training metadata.
//
// Example:
//
//	ckpt := &nn.Checkpoint{Network: net, Epoch: 1000, Loss: 0.01, LearningRate: 0.1}
//	err := ckpt.Save(f)
//
// To restore:
//
//	ckpt, err := nn.LoadCheckpoint(f)
//	net := ckpt.Network
type Checkpoint struct {
	Network      *Network
	Epoch        int       // Epochs completed when the checkpoint was taken
	Loss         float64   // Total loss of the last epoch
	LearningRate float64   // Learning rate used for training
	CreatedAt    time.Time // When the checkpoint was created
}

type checkpointFile struct {
	Version      int            `yaml:"version"`
	CreatedAt    time.Time      `yaml:"created_at"`
	Epoch        int            `yaml:"epoch"`
	Loss         float64        `yaml:"loss"`
	LearningRate float64        `yaml:"learning_rate"`
	HiddenUpdate string         `yaml:"hidden_update"`
	Hidden       []neuronRecord `yaml:"hidden"`
	Outputs      []neuronRecord `yaml:"outputs"`
	Checksum     string         `yaml:"checksum"`
}

type neuronRecord struct {
	Weights []float64 `yaml:"weights,flow"`
	Bias    float64   `yaml:"bias"`
}

// Save writes the checkpoint as a YAML document.
//
// The document carries a SHA-256 checksum over the exact bit patterns of
// every weight and bias, verified by LoadCheckpoint.
func (c *Checkpoint) Save(w io.Writer) error {
	if c.Network == nil {
		return errors.New("checkpoint has no network")
	}
	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	file := checkpointFile{
		Version:      CheckpointVersion,
		CreatedAt:    createdAt,
		Epoch:        c.Epoch,
		Loss:         c.Loss,
		LearningRate: c.LearningRate,
		HiddenUpdate: c.Network.update.String(),
		Hidden:       toRecords(c.Network.hidden),
		Outputs:      toRecords(c.Network.outputs),
		Checksum:     networkChecksum(c.Network),
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&file); err != nil {
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	return enc.Close()
}

// LoadCheckpoint reads a checkpoint written by Save.
//
// The network layers are validated like FromLayers and the checksum must
// match the decoded parameters.
func LoadCheckpoint(r io.Reader) (*Checkpoint, error) {
	var file checkpointFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to read checkpoint: %w", err)
	}
	if file.Version != CheckpointVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, file.Version)
	}

	update, err := ParseHiddenUpdate(file.HiddenUpdate)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint: %w", err)
	}

	net, err := FromLayers(fromRecords(file.Hidden), fromRecords(file.Outputs), NetworkConfig{HiddenUpdate: update})
	if err != nil {
		return nil, fmt.Errorf("invalid checkpoint network: %w", err)
	}
	if networkChecksum(net) != file.Checksum {
		return nil, ErrChecksumMismatch
	}

	return &Checkpoint{
		Network:      net,
		Epoch:        file.Epoch,
		Loss:         file.Loss,
		LearningRate: file.LearningRate,
		CreatedAt:    file.CreatedAt,
	}, nil
}

func toRecords(layer []Neuron) []neuronRecord {
	records := make([]neuronRecord, len(layer))
	for i, n := range layer {
		records[i] = neuronRecord{Weights: n.Weights, Bias: n.Bias}
	}
	return records
}

func fromRecords(records []neuronRecord) []Neuron {
	layer := make([]Neuron, len(records))
	for i, r := range records {
		layer[i] = Neuron{Weights: r.Weights, Bias: r.Bias}
	}
	return layer
}

// networkChecksum hashes layer sizes and parameter bit patterns in order.
func networkChecksum(n *Network) string {
	h := sha256.New()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	for _, layer := range [][]Neuron{n.hidden, n.outputs} {
		put(uint64(len(layer)))
		for _, neuron := range layer {
			put(uint64(len(neuron.Weights)))
			for _, w := range neuron.Weights {
				put(math.Float64bits(w))
			}
			put(math.Float64bits(neuron.Bias))
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
