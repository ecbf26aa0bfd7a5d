// Package config loads the YAML description of a training run.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/tinynet/internal/nn"
	"github.com/born-ml/tinynet/internal/optim"
)

// Defaults applied by Validate.
const (
	DefaultEpochs   = 1000
	DefaultLogEvery = 100
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config captures a complete training run.
type Config struct {
	Network  NetworkSpec  `yaml:"network"`
	Training TrainingSpec `yaml:"training"`
	Samples  []Sample     `yaml:"samples"`
	Queries  []Query      `yaml:"queries"`
}

// NetworkSpec describes the network shape and construction options.
type NetworkSpec struct {
	Inputs       int     `yaml:"inputs"`
	Hidden       int     `yaml:"hidden"`
	Outputs      int     `yaml:"outputs"`
	Init         string  `yaml:"init"`          // "ones" (default), "zeros" or "constant"
	InitValue    float64 `yaml:"init_value"`    // Used with init: constant
	HiddenUpdate string  `yaml:"hidden_update"` // "first_output" (default) or "sum_outputs"
}

// TrainingSpec holds the training loop knobs.
type TrainingSpec struct {
	Epochs       int     `yaml:"epochs"`
	LearningRate float64 `yaml:"learning_rate"`
	LogEvery     int     `yaml:"log_every"`
}

// Sample is one labelled training example.
type Sample struct {
	Input []float64 `yaml:"input,flow"`
	Label []float64 `yaml:"label,flow"`
}

// Query is an input to predict after training.
type Query struct {
	Name  string    `yaml:"name"`
	Input []float64 `yaml:"input,flow"`
}

// Overrides captures CLI supplied values.
type Overrides struct {
	Epochs       int
	LearningRate float64
	LogEvery     int
	HiddenUpdate string
}

// Load reads and validates a Config from a YAML file.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a Config. Unknown keys are rejected.
func Parse(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	cfg := &Config{}
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides updates c using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Epochs > 0 {
		c.Training.Epochs = o.Epochs
	}
	if o.LearningRate > 0 {
		c.Training.LearningRate = o.LearningRate
	}
	if o.LogEvery > 0 {
		c.Training.LogEvery = o.LogEvery
	}
	if o.HiddenUpdate != "" {
		c.Network.HiddenUpdate = o.HiddenUpdate
	}
}

// Validate verifies the config is runnable and fills defaults.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	n := c.Network
	if n.Inputs <= 0 || n.Hidden <= 0 || n.Outputs <= 0 {
		return fmt.Errorf("%w: network inputs, hidden and outputs must be > 0 (got %d, %d, %d)",
			ErrInvalidConfig, n.Inputs, n.Hidden, n.Outputs)
	}
	if _, err := c.initializer(); err != nil {
		return err
	}
	if _, err := nn.ParseHiddenUpdate(n.HiddenUpdate); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if c.Training.Epochs < 0 {
		return fmt.Errorf("%w: epochs must be >= 0 (got %d)", ErrInvalidConfig, c.Training.Epochs)
	}
	if c.Training.Epochs == 0 {
		c.Training.Epochs = DefaultEpochs
	}
	if err := (optim.SGDConfig{LR: c.Training.LearningRate}).Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Training.LearningRate == 0 {
		c.Training.LearningRate = optim.DefaultLR
	}
	if c.Training.LogEvery <= 0 {
		c.Training.LogEvery = DefaultLogEvery
	}

	for i, s := range c.Samples {
		if len(s.Input) != n.Inputs {
			return fmt.Errorf("%w: samples[%d]: input has %d values, network expects %d",
				ErrInvalidConfig, i, len(s.Input), n.Inputs)
		}
		if len(s.Label) != n.Outputs {
			return fmt.Errorf("%w: samples[%d]: label has %d values, network expects %d",
				ErrInvalidConfig, i, len(s.Label), n.Outputs)
		}
	}
	for i, q := range c.Queries {
		if len(q.Input) != n.Inputs {
			return fmt.Errorf("%w: queries[%d] (%s): input has %d values, network expects %d",
				ErrInvalidConfig, i, q.Name, len(q.Input), n.Inputs)
		}
	}
	return nil
}

// NetworkConfig returns the nn construction options described by c.
func (c *Config) NetworkConfig() (nn.NetworkConfig, error) {
	initFn, err := c.initializer()
	if err != nil {
		return nn.NetworkConfig{}, err
	}
	update, err := nn.ParseHiddenUpdate(c.Network.HiddenUpdate)
	if err != nil {
		return nn.NetworkConfig{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nn.NetworkConfig{Init: initFn, HiddenUpdate: update}, nil
}

// Dataset splits the samples into parallel input and label slices.
func (c *Config) Dataset() (data, labels [][]float64) {
	data = make([][]float64, len(c.Samples))
	labels = make([][]float64, len(c.Samples))
	for i, s := range c.Samples {
		data[i] = s.Input
		labels[i] = s.Label
	}
	return data, labels
}

func (c *Config) initializer() (nn.Initializer, error) {
	switch c.Network.Init {
	case "", "ones":
		return nn.Ones, nil
	case "zeros":
		return nn.Zeros, nil
	case "constant":
		return nn.Constant(c.Network.InitValue), nil
	default:
		return nil, fmt.Errorf("%w: unknown init %q", ErrInvalidConfig, c.Network.Init)
	}
}
