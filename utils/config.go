package utils

import (
	"fmt"
	"strconv"
	"strings"

	"mlp/nn"
)

// Config holds training configuration
type Config struct {
	Architecture     []int
	HiddenActivation string
	OutputActivation string
	ErrorFunction    string
	LearningRate     float64
	Epochs           int
	StopError        float64
	BatchSize        int
	Seed             int64
	DataPath         string
	DataFormat       string
	Normalize        bool
}

// DefaultConfig mirrors the reference 1-2-2-1 identity experiment.
func DefaultConfig() Config {
	return Config{
		Architecture:     []int{1, 2, 2, 1},
		HiddenActivation: "sigmoid",
		OutputActivation: "linear",
		ErrorFunction:    "mse",
		LearningRate:     0.001,
		Epochs:           1000000,
		StopError:        0.1,
		DataFormat:       "csv",
	}
}

// ParseArchitecture parses architecture string into slice of integers
func ParseArchitecture(archStr string) ([]int, error) {
	archParts := strings.Fields(strings.ReplaceAll(archStr, ",", " "))
	arch := make([]int, len(archParts))
	for i, s := range archParts {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, err
		}
		arch[i] = n
	}
	return arch, nil
}

// Topology splits the architecture into input size, hidden width, hidden
// depth and output size. Call ValidateConfig first.
func (c *Config) Topology() (inputSize, width, depth, outputSize int) {
	n := len(c.Architecture)
	inputSize = c.Architecture[0]
	outputSize = c.Architecture[n-1]
	depth = n - 2
	if depth > 0 {
		width = c.Architecture[1]
	}
	return inputSize, width, depth, outputSize
}

// Functions resolves the configured activation and error function names.
func (c *Config) Functions() (hidden, output nn.Activation, errorFn nn.ErrorFunction, err error) {
	if hidden, err = nn.ParseActivation(c.HiddenActivation); err != nil {
		return hidden, output, errorFn, fmt.Errorf("hidden activation: %w", err)
	}
	if output, err = nn.ParseActivation(c.OutputActivation); err != nil {
		return hidden, output, errorFn, fmt.Errorf("output activation: %w", err)
	}
	if errorFn, err = nn.ParseErrorFunction(c.ErrorFunction); err != nil {
		return hidden, output, errorFn, err
	}
	return hidden, output, errorFn, nil
}

// ValidateConfig validates training configuration
func ValidateConfig(config *Config) error {
	if len(config.Architecture) < 2 {
		return fmt.Errorf("architecture must have at least 2 layers (input and output)")
	}

	for i, n := range config.Architecture {
		if n <= 0 {
			return fmt.Errorf("layer %d must have a positive size, got %d", i, n)
		}
	}

	hidden := config.Architecture[1 : len(config.Architecture)-1]
	for _, n := range hidden {
		if n != hidden[0] {
			return fmt.Errorf("hidden layers must share one width, got %v", hidden)
		}
	}

	if config.LearningRate <= 0 {
		return fmt.Errorf("learning rate must be positive")
	}

	if config.Epochs <= 0 {
		return fmt.Errorf("epochs must be positive")
	}

	if config.BatchSize < 0 {
		return fmt.Errorf("batch size must not be negative")
	}

	if config.DataFormat != "csv" && config.DataFormat != "mnist" {
		return fmt.Errorf("data format must be 'csv' or 'mnist'")
	}

	if _, _, _, err := config.Functions(); err != nil {
		return err
	}

	return nil
}
