// Package nn implements a dense feed-forward network with backpropagation
// and a flat parameter vector for external optimizers.
package nn

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Network is a dense feed-forward perceptron with a fixed topology of
// inputSize → depth hidden layers of width nodes → outputSize.
//
// Every layer transition l owns a weight matrix of layerSizes[l+1] rows and
// layerSizes[l]+1 columns; the last column of each row is the bias of that
// destination node. The gradient ("nabla") has the same shape.
//
// The caller drives the sequence SetInput/SetExpected → PropagateForward →
// Output/Loss/PropagateBackward → NablaVector. Calling out of order is not
// detected and reads whatever the buffers last held. A Network is not safe
// for concurrent use.
type Network struct {
	layerSizes []int
	vectorSize int

	hidden  Activation
	output  Activation
	errorFn ErrorFunction

	weights []*mat.Dense
	nabla   []*mat.Dense

	// [layer][node]
	nodeIn  [][]float64
	nodeOut [][]float64
	// backward scratch: loss gradient w.r.t. nodeOut and nodeIn per layer
	outError [][]float64
	delta    [][]float64

	expected []float64
}

// NewNetwork builds a network and initializes its weights with seed 0.
// All sizes must be positive, except depth which may be zero; this is not
// checked.
func NewNetwork(inputSize, width, depth, outputSize int, hidden, output Activation, errorFn ErrorFunction) *Network {
	layers := depth + 2
	sizes := make([]int, layers)
	sizes[0] = inputSize
	sizes[layers-1] = outputSize
	for i := 1; i < layers-1; i++ {
		sizes[i] = width
	}

	n := &Network{
		layerSizes: sizes,
		hidden:     hidden,
		output:     output,
		errorFn:    errorFn,
		weights:    make([]*mat.Dense, layers-1),
		nabla:      make([]*mat.Dense, layers-1),
		nodeIn:     make([][]float64, layers),
		nodeOut:    make([][]float64, layers),
		outError:   make([][]float64, layers),
		delta:      make([][]float64, layers),
		expected:   make([]float64, outputSize),
	}
	for l, size := range sizes {
		n.nodeIn[l] = make([]float64, size)
		n.nodeOut[l] = make([]float64, size)
		n.outError[l] = make([]float64, size)
		n.delta[l] = make([]float64, size)
		if l < layers-1 {
			n.weights[l] = mat.NewDense(sizes[l+1], size+1, nil)
			n.nabla[l] = mat.NewDense(sizes[l+1], size+1, nil)
			n.vectorSize += sizes[l+1] * (size + 1)
		}
	}

	n.Initialize(0)
	return n
}

// VectorSize returns the closed-form flat parameter count of a network with
// at least one hidden layer.
func VectorSize(inputSize, width, depth, outputSize int) int {
	return width*(inputSize+1) + max(0, depth-1)*width*(width+1) + outputSize*(width+1)
}

// Initialize redraws every weight, bias included, uniformly from [-1, 1)
// using a PCG generator seeded with seed, and clears the gradient, node state
// and expected output. Equal seeds give equal weights.
func (n *Network) Initialize(seed int64) {
	dist := distuv.Uniform{Min: -1, Max: 1, Src: rand.NewSource(uint64(seed))}

	// draw in canonical vector order
	for l, w := range n.weights {
		data := w.RawMatrix().Data
		for i := range data {
			data[i] = dist.Rand()
		}
		n.nabla[l].Zero()
	}
	for l := range n.layerSizes {
		clear(n.nodeIn[l])
		clear(n.nodeOut[l])
	}
	clear(n.expected)
}

// LayerSizes returns a copy of the topology, input layer first.
func (n *Network) LayerSizes() []int {
	return append([]int(nil), n.layerSizes...)
}

// VectorSize returns the length of the flat weight and nabla vectors.
func (n *Network) VectorSize() int {
	return n.vectorSize
}

// Weight returns weight[layer][dst][src]; src == LayerSizes()[layer] is the bias.
func (n *Network) Weight(layer, dst, src int) float64 {
	return n.weights[layer].At(dst, src)
}

// SetWeight sets weight[layer][dst][src].
func (n *Network) SetWeight(layer, dst, src int, v float64) {
	n.weights[layer].Set(dst, src, v)
}

// Nabla returns ∂loss/∂weight[layer][dst][src] from the last backward pass.
func (n *Network) Nabla(layer, dst, src int) float64 {
	return n.nabla[layer].At(dst, src)
}

// SetInput copies values into the input layer.
func (n *Network) SetInput(values []float64) error {
	if err := checkLen("input", len(values), n.layerSizes[0]); err != nil {
		return err
	}
	copy(n.nodeOut[0], values)
	return nil
}

// SetExpected copies the target output used by Loss and PropagateBackward.
func (n *Network) SetExpected(values []float64) error {
	if err := checkLen("expected", len(values), len(n.expected)); err != nil {
		return err
	}
	copy(n.expected, values)
	return nil
}

// Output returns a copy of the output layer's activations.
func (n *Network) Output() []float64 {
	return append([]float64(nil), n.nodeOut[len(n.nodeOut)-1]...)
}

// Loss applies the error function to the current output and expected values.
func (n *Network) Loss() float64 {
	return n.errorFn.apply(n.nodeOut[len(n.nodeOut)-1], n.expected)
}

// PropagateForward computes every layer's pre-activation sums and
// activations from the input set by SetInput.
func (n *Network) PropagateForward() {
	last := len(n.layerSizes) - 1
	for l := 0; l <= last; l++ {
		if l > 0 {
			sigma := n.hidden
			if l == last {
				sigma = n.output
			}
			for i, x := range n.nodeIn[l] {
				n.nodeOut[l][i] = sigma.Apply(x)
			}
		}

		if l < last {
			src := n.nodeOut[l]
			bias := len(src)
			for dst := range n.nodeIn[l+1] {
				row := n.weights[l].RawRowView(dst)
				sum := row[bias]
				for s, v := range src {
					sum += row[s] * v
				}
				n.nodeIn[l+1][dst] = sum
			}
		}
	}
}

// PropagateBackward overwrites the nabla with the gradient for the current
// sample. It must follow PropagateForward.
//
// The output error is the error function derivative multiplied by the loss
// itself, so the nabla is Loss() times the plain chain-rule gradient.
func (n *Network) PropagateBackward() {
	last := len(n.layerSizes) - 1

	outErr := n.outError[last]
	n.errorFn.derivative(outErr, n.nodeOut[last], n.expected)
	floats.Scale(n.Loss(), outErr)

	delta := n.delta[last]
	for i, x := range n.nodeIn[last] {
		delta[i] = outErr[i] * n.output.Derivative(x)
	}

	for l := last - 1; l >= 0; l-- {
		src := n.nodeOut[l]
		bias := len(src)
		for dst, d := range delta {
			row := n.nabla[l].RawRowView(dst)
			floats.ScaleTo(row[:bias], d, src)
			row[bias] = d
		}

		if l > 0 {
			// outError[l] = Wᵀ·delta with the bias column excluded
			rows := len(delta)
			errVec := mat.NewVecDense(bias, n.outError[l])
			errVec.MulVec(n.weights[l].Slice(0, rows, 0, bias).T(), mat.NewVecDense(rows, delta))

			next := n.delta[l]
			for i, x := range n.nodeIn[l] {
				next[i] = n.outError[l][i] * n.hidden.Derivative(x)
			}
			delta = next
		}
	}
}
