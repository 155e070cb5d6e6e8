// mlp-train: trains a dense perceptron with plain gradient descent
//
// Usage:
//
//	mlp-train --arch="1 2 2 1" --hidden=sigmoid --output=linear --lr=0.001 --stop=0.1
//	mlp-train --arch="784 32 32 10" --data=mnist_train.csv --format=mnist --batch=64
//
// Without --data the network learns the identity on {0, 1}.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"mlp/dataset"
	"mlp/nn"
	"mlp/train"
	"mlp/utils"
)

var defaults = utils.DefaultConfig()

var (
	arch         = flag.String("arch", "1 2 2 1", "Layer sizes: input, hidden widths, output")
	hidden       = flag.String("hidden", defaults.HiddenActivation, "Hidden activation: linear, relu, leakyrelu, sigmoid, tanh")
	output       = flag.String("output", defaults.OutputActivation, "Output activation")
	errorFn      = flag.String("error", defaults.ErrorFunction, "Error function: mse")
	learningRate = flag.Float64("lr", defaults.LearningRate, "Learning rate")
	epochs       = flag.Int("epochs", defaults.Epochs, "Maximum number of epochs")
	stopError    = flag.Float64("stop", defaults.StopError, "Stop once the average epoch error is below this")
	batchSize    = flag.Int("batch", 0, "Samples per weight update (0 = whole dataset)")
	seed         = flag.Int64("seed", 0, "Weight initialization seed")
	dataPath     = flag.String("data", "", "Training samples (CSV); empty uses the identity dataset")
	dataFormat   = flag.String("format", defaults.DataFormat, "Data format: csv (inputs then targets) or mnist (label then pixels)")
	normalize    = flag.Bool("normalize", false, "Standardize input features")
	verbose      = flag.Bool("verbose", true, "Print per-epoch progress")
)

func main() {
	flag.Parse()
	utils.Verbose = *verbose

	layers, err := utils.ParseArchitecture(*arch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid architecture: %v\n", err)
		os.Exit(1)
	}
	cfg := utils.Config{
		Architecture:     layers,
		HiddenActivation: *hidden,
		OutputActivation: *output,
		ErrorFunction:    *errorFn,
		LearningRate:     *learningRate,
		Epochs:           *epochs,
		StopError:        *stopError,
		BatchSize:        *batchSize,
		Seed:             *seed,
		DataPath:         *dataPath,
		DataFormat:       *dataFormat,
		Normalize:        *normalize,
	}
	if err := utils.ValidateConfig(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nConfiguration:\n")
	fmt.Printf("  Architecture:  %s\n", strings.Trim(fmt.Sprint(cfg.Architecture), "[]"))
	fmt.Printf("  Activations:   %s / %s\n", cfg.HiddenActivation, cfg.OutputActivation)
	fmt.Printf("  Error:         %s\n", cfg.ErrorFunction)
	fmt.Printf("  Learning Rate: %.4f\n", cfg.LearningRate)
	fmt.Printf("  Epochs:        %d\n", cfg.Epochs)
	fmt.Printf("  Stop Error:    %.4f\n", cfg.StopError)
	fmt.Printf("  Seed:          %d\n", cfg.Seed)
	fmt.Println()

	stats := &utils.TimingStats{}
	totalStart := time.Now()

	start := time.Now()
	lines, err := loadLines(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading data: %v\n", err)
		os.Exit(1)
	}
	stats.DataLoadingTime = time.Since(start)
	fmt.Printf("Loaded %d samples\n", len(lines))

	start = time.Now()
	net := buildNetwork(&cfg)
	stats.ModelInitTime = time.Since(start)
	fmt.Printf("Parameters: %d\n", net.VectorSize())

	trainer := train.New(net, cfg)
	trainer.Stats = stats
	res, err := trainer.Run(lines)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Training failed: %v\n", err)
		os.Exit(1)
	}
	stats.TotalTime = time.Since(totalStart)

	fmt.Printf("\nTraining complete after %d epochs | Error: %.6f | Time: %.2fs\n",
		res.Epochs, res.Error, stats.TotalTime.Seconds())
	utils.PrintTimingStats(stats, res.Steps)

	if len(lines) <= 16 {
		printPredictions(net, lines)
	}
}

func buildNetwork(cfg *utils.Config) *nn.Network {
	inputSize, width, depth, outputSize := cfg.Topology()
	// validated already
	hiddenAct, outputAct, errFn, _ := cfg.Functions()
	net := nn.NewNetwork(inputSize, width, depth, outputSize, hiddenAct, outputAct, errFn)
	net.Initialize(cfg.Seed)
	return net
}

func loadLines(cfg *utils.Config) (dataset.Lines, error) {
	inputSize, _, _, outputSize := cfg.Topology()

	var lines dataset.Lines
	if cfg.DataPath == "" {
		if inputSize != 1 || outputSize != 1 {
			return nil, fmt.Errorf("the identity dataset needs one input and one output")
		}
		lines = dataset.Lines{
			{Inputs: []float64{0}, Targets: []float64{0}},
			{Inputs: []float64{1}, Targets: []float64{1}},
		}
	} else {
		f, err := os.Open(cfg.DataPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if lines, err = readLines(f, cfg.DataFormat, inputSize, outputSize); err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.DataPath, err)
		}
	}

	if cfg.Normalize {
		lines = dataset.NormalizeLines(lines, dataset.CalculateStdDev(lines), dataset.CalculateMean(lines))
	}
	return lines, nil
}

func readLines(r io.Reader, format string, inputSize, outputSize int) (dataset.Lines, error) {
	if format == "mnist" {
		if outputSize != 10 {
			return nil, fmt.Errorf("mnist needs 10 outputs, got %d", outputSize)
		}
		return dataset.GetLinesMNIST(r, inputSize)
	}
	return dataset.GetLines(r, inputSize, outputSize)
}

func printPredictions(net *nn.Network, lines dataset.Lines) {
	fmt.Println("\nPredictions:")
	for _, line := range lines {
		if err := net.SetInput(line.Inputs); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		net.PropagateForward()
		fmt.Printf("  input: %v, expected: %v, output: %v\n", line.Inputs, line.Targets, net.Output())
	}
}
