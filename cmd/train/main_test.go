package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mlp/utils"
)

func TestLoadLinesIdentity(t *testing.T) {
	cfg := utils.DefaultConfig()
	lines, err := loadLines(&cfg)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, lines[1].Inputs, lines[1].Targets)

	cfg.Architecture = []int{2, 3, 1}
	_, err = loadLines(&cfg)
	assert.Error(t, err)
}

func TestLoadLinesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xor.csv")
	require.NoError(t, os.WriteFile(path, []byte("0,0,0\n0,1,1\n1,0,1\n1,1,0\n"), 0o644))

	cfg := utils.DefaultConfig()
	cfg.Architecture = []int{2, 4, 1}
	cfg.DataPath = path
	cfg.Normalize = true
	lines, err := loadLines(&cfg)
	require.NoError(t, err)
	require.Len(t, lines, 4)
	assert.Equal(t, []float64{-1, -1}, lines[0].Inputs)
	assert.Equal(t, []float64{1}, lines[1].Targets)
}

func TestReadLinesMNISTNeedsTenOutputs(t *testing.T) {
	_, err := readLines(strings.NewReader("1,0\n"), "mnist", 1, 2)
	assert.Error(t, err)

	lines, err := readLines(strings.NewReader("1,0\n"), "mnist", 1, 10)
	require.NoError(t, err)
	assert.Len(t, lines[0].Targets, 10)
}

func TestBuildNetworkUsesSeed(t *testing.T) {
	cfg := utils.DefaultConfig()
	cfg.Seed = 4
	a, b := buildNetwork(&cfg), buildNetwork(&cfg)
	wa, err := a.WeightsVector(nil)
	require.NoError(t, err)
	wb, err := b.WeightsVector(nil)
	require.NoError(t, err)
	assert.Equal(t, wa, wb)
	assert.Equal(t, 13, a.VectorSize())
}
