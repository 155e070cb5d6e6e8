package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mlp/nn"
)

func TestParseArchitecture(t *testing.T) {
	arch, err := ParseArchitecture("1 2 2 1")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 2, 1}, arch)

	arch, err = ParseArchitecture("784,32,10")
	require.NoError(t, err)
	assert.Equal(t, []int{784, 32, 10}, arch)

	_, err = ParseArchitecture("1 two 1")
	assert.Error(t, err)
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, ValidateConfig(&cfg))

	in, width, depth, out := cfg.Topology()
	assert.Equal(t, []int{1, 2, 2, 1}, []int{in, width, depth, out})

	hidden, output, errorFn, err := cfg.Functions()
	require.NoError(t, err)
	assert.Equal(t, nn.Sigmoid, hidden)
	assert.Equal(t, nn.Linear, output)
	assert.Equal(t, nn.MeanSquareError, errorFn)
}

func TestTopologyWithoutHiddenLayers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Architecture = []int{3, 2}
	require.NoError(t, ValidateConfig(&cfg))

	in, width, depth, out := cfg.Topology()
	assert.Equal(t, 3, in)
	assert.Equal(t, 0, width)
	assert.Equal(t, 0, depth)
	assert.Equal(t, 2, out)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"single layer", func(c *Config) { c.Architecture = []int{3} }},
		{"zero layer size", func(c *Config) { c.Architecture = []int{1, 0, 1} }},
		{"ragged hidden widths", func(c *Config) { c.Architecture = []int{1, 2, 3, 1} }},
		{"zero learning rate", func(c *Config) { c.LearningRate = 0 }},
		{"zero epochs", func(c *Config) { c.Epochs = 0 }},
		{"negative batch size", func(c *Config) { c.BatchSize = -1 }},
		{"unknown data format", func(c *Config) { c.DataFormat = "parquet" }},
		{"unknown hidden activation", func(c *Config) { c.HiddenActivation = "swish" }},
		{"unknown output activation", func(c *Config) { c.OutputActivation = "softmax" }},
		{"unknown error function", func(c *Config) { c.ErrorFunction = "hinge" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, ValidateConfig(&cfg))
		})
	}
}
