// Package main provides the tinynet CLI.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/born-ml/tinynet/internal/config"
	"github.com/born-ml/tinynet/internal/nn"
	"github.com/born-ml/tinynet/internal/optim"
	"github.com/born-ml/tinynet/internal/trainer"
)

const version = "v0.1.0"

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "version":
		fmt.Printf("tinynet %s\n", version)
	case "train":
		err = runTrain(os.Args[2:])
	case "predict":
		err = runPredict(os.Args[2:])
	case "help", "-h", "--help":
		usage()
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func usage() {
	fmt.Println("tinynet - two-layer sigmoid network trained by backpropagation")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version                                   Show version")
	fmt.Println("  train -config run.yaml [-save out.yaml]   Train on the samples of a run file")
	fmt.Println("  predict -checkpoint out.yaml -- x1,x2,... Predict with a saved network")
}

func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	cfgPath := fs.String("config", "configs/gender.yaml", "Path to YAML run config")
	savePath := fs.String("save", "", "Write the trained network to this checkpoint file")
	epochs := fs.Int("epochs", 0, "Override number of epochs")
	lr := fs.Float64("lr", 0, "Override learning rate")
	logEvery := fs.Int("log-every", 0, "Log every N epochs")
	hiddenUpdate := fs.String("hidden-update", "", "Override hidden update rule (first_output, sum_outputs)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	cfg.ApplyOverrides(config.Overrides{
		Epochs:       *epochs,
		LearningRate: *lr,
		LogEvery:     *logEvery,
		HiddenUpdate: *hiddenUpdate,
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	netCfg, err := cfg.NetworkConfig()
	if err != nil {
		return err
	}
	net, err := nn.NewNetwork(cfg.Network.Inputs, cfg.Network.Hidden, cfg.Network.Outputs, netCfg)
	if err != nil {
		return err
	}

	log.Printf("network inputs=%d hidden=%d outputs=%d hidden_update=%s",
		net.NumInputs(), net.NumHidden(), net.NumOutputs(), net.HiddenUpdate())
	log.Printf("training samples=%d epochs=%d lr=%g", len(cfg.Samples), cfg.Training.Epochs, cfg.Training.LearningRate)

	data, labels := cfg.Dataset()
	trained, history, err := trainer.Run(net, data, labels, trainer.Config{
		Epochs:    cfg.Training.Epochs,
		Optimizer: optim.NewSGD(optim.SGDConfig{LR: cfg.Training.LearningRate}),
		Logger:    log.Default(),
		LogEvery:  cfg.Training.LogEvery,
	})
	if err != nil {
		return err
	}

	for _, q := range cfg.Queries {
		out, err := trained.Predict(q.Input)
		if err != nil {
			return fmt.Errorf("query %s: %w", q.Name, err)
		}
		log.Printf("predict name=%s input=%v output=%v", q.Name, q.Input, out)
	}

	if *savePath == "" {
		return nil
	}
	ckpt := &nn.Checkpoint{
		Network:      trained,
		Epoch:        len(history),
		LearningRate: cfg.Training.LearningRate,
	}
	if len(history) > 0 {
		ckpt.Loss = history[len(history)-1].TotalLoss
	}
	return writeCheckpoint(*savePath, ckpt)
}

func runPredict(args []string) error {
	fs := flag.NewFlagSet("predict", flag.ExitOnError)
	ckptPath := fs.String("checkpoint", "", "Checkpoint written by train -save")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *ckptPath == "" {
		return fmt.Errorf("-checkpoint is required")
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("at least one input vector is required")
	}

	f, err := os.Open(*ckptPath)
	if err != nil {
		return fmt.Errorf("open checkpoint: %w", err)
	}
	defer f.Close()

	ckpt, err := nn.LoadCheckpoint(f)
	if err != nil {
		return err
	}

	for _, arg := range fs.Args() {
		input, err := parseVector(arg)
		if err != nil {
			return err
		}
		out, err := ckpt.Network.Predict(input)
		if err != nil {
			return fmt.Errorf("input %s: %w", arg, err)
		}
		fmt.Printf("%v -> %v\n", input, out)
	}
	return nil
}

func writeCheckpoint(path string, ckpt *nn.Checkpoint) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create checkpoint: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := ckpt.Save(f); err != nil {
		return err
	}
	log.Printf("checkpoint path=%s epoch=%d loss=%.6f", path, ckpt.Epoch, ckpt.Loss)
	return nil
}

// parseVector parses a comma-separated list such as "-7,-3".
// Vectors starting with a minus sign must follow "--" on the command line.
func parseVector(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("parse input %q: %w", s, err)
		}
		out[i] = v
	}
	return out, nil
}
