// Package train runs fixed-learning-rate gradient descent on an nn.Network
// through its flat weight and nabla vectors.
package train

import (
	"errors"
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"

	"mlp/dataset"
	"mlp/nn"
	"mlp/utils"
)

// Trainer owns the optimization policy; the network only computes losses
// and gradients.
type Trainer struct {
	Net          *nn.Network
	LearningRate float64
	Epochs       int
	// StopError ends training once an epoch's average error drops below it.
	StopError float64
	// BatchSize splits every epoch into batches with one update each; 0 uses
	// the whole dataset as a single batch.
	BatchSize int
	Stats     *utils.TimingStats

	weights  []float64
	gradient []float64
	average  []float64
}

// Result summarizes a Run.
type Result struct {
	Epochs int
	// Error is the average error of the last epoch, measured before its
	// weight update.
	Error float64
	Steps int
}

// New returns a trainer for net using the learning rate, epoch limit, stop
// threshold and batch size of cfg.
func New(net *nn.Network, cfg utils.Config) *Trainer {
	return &Trainer{
		Net:          net,
		LearningRate: cfg.LearningRate,
		Epochs:       cfg.Epochs,
		StopError:    cfg.StopError,
		BatchSize:    cfg.BatchSize,
		Stats:        &utils.TimingStats{},
	}
}

// Run trains until the epoch limit or until an epoch's average error falls
// below StopError. The weights of the stopping epoch are left unchanged.
func (t *Trainer) Run(lines dataset.Lines) (Result, error) {
	if len(lines) == 0 {
		return Result{}, errors.New("no training samples")
	}
	if t.Stats == nil {
		t.Stats = &utils.TimingStats{}
	}
	size := t.Net.VectorSize()
	t.weights = make([]float64, size)
	t.gradient = make([]float64, size)
	t.average = make([]float64, size)

	batchSize := t.BatchSize
	if batchSize <= 0 || batchSize > len(lines) {
		batchSize = len(lines)
	}
	batches := (len(lines) + batchSize - 1) / batchSize

	var res Result
	for epoch := 0; epoch < t.Epochs; epoch++ {
		utils.Printf("epoch: %d\n", epoch)
		res.Epochs = epoch + 1

		var epochError float64
		stop := false
		for b := 0; b < batches; b++ {
			batch := dataset.LineSplitter(batchSize, b, lines)
			batchError, err := t.accumulate(batch)
			if err != nil {
				return res, fmt.Errorf("epoch %d: %w", epoch, err)
			}
			res.Steps += len(batch)
			epochError += batchError * float64(len(batch)) / float64(len(lines))

			if b == batches-1 && epochError < t.StopError {
				stop = true
				break
			}
			if err := t.update(); err != nil {
				return res, fmt.Errorf("epoch %d: %w", epoch, err)
			}
		}
		res.Error = epochError

		utils.Printf("weights:      %v\n", t.weights)
		utils.Printf("avg gradient: %v\n", t.average)
		utils.Printf("avg error:    %8.6f\n", epochError)
		utils.Printf("learn rate:   %8.6f\n\n", t.LearningRate)

		if stop {
			break
		}
	}
	return res, nil
}

// accumulate runs every sample of batch through the network and leaves the
// mean gradient in t.average. It returns the mean error.
func (t *Trainer) accumulate(batch dataset.Lines) (float64, error) {
	net := t.Net
	clear(t.average)
	scale := 1 / float64(len(batch))

	var avgError float64
	for i, line := range batch {
		if err := net.SetInput(line.Inputs); err != nil {
			return 0, fmt.Errorf("sample %d: %w", i, err)
		}
		if err := net.SetExpected(line.Targets); err != nil {
			return 0, fmt.Errorf("sample %d: %w", i, err)
		}

		start := time.Now()
		net.PropagateForward()
		t.Stats.ForwardPassTime += time.Since(start)

		start = time.Now()
		loss := net.Loss()
		t.Stats.LossComputationTime += time.Since(start)

		utils.Printf("training; expected: %v, output: %v\n", line.Targets, net.Output())

		start = time.Now()
		net.PropagateBackward()
		grad, err := net.NablaVector(t.gradient)
		if err != nil {
			return 0, err
		}
		t.Stats.BackwardPassTime += time.Since(start)

		floats.AddScaled(t.average, scale, grad)
		avgError += loss * scale
	}

	var err error
	t.weights, err = net.WeightsVector(t.weights)
	return avgError, err
}

// update applies w ← w − lr·avgGradient and writes the weights back.
func (t *Trainer) update() error {
	start := time.Now()
	defer func() { t.Stats.UpdateTime += time.Since(start) }()

	floats.AddScaled(t.weights, -t.LearningRate, t.average)
	return t.Net.SetWeightsVector(t.weights)
}
