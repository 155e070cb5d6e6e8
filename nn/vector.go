package nn

import "gonum.org/v1/gonum/mat"

// Flat vectors concatenate the layer matrices in layer order, each matrix
// row by row (destination-major), each row holding its sources followed by
// the bias.

// WeightsVector writes the weights into dst, which must be nil or exactly
// VectorSize long, and returns it. A nil dst is allocated.
func (n *Network) WeightsVector(dst []float64) ([]float64, error) {
	return n.flatten("weights vector", n.weights, dst)
}

// SetWeightsVector overwrites the weights from a flat vector of VectorSize
// values laid out as WeightsVector returns them.
func (n *Network) SetWeightsVector(values []float64) error {
	if err := checkLen("weights vector", len(values), n.vectorSize); err != nil {
		return err
	}
	pos := 0
	for _, w := range n.weights {
		data := w.RawMatrix().Data
		pos += copy(data, values[pos:])
	}
	return nil
}

// NablaVector writes the gradient from the last backward pass into dst using
// the same layout and buffer rules as WeightsVector.
func (n *Network) NablaVector(dst []float64) ([]float64, error) {
	return n.flatten("nabla vector", n.nabla, dst)
}

func (n *Network) flatten(what string, ms []*mat.Dense, dst []float64) ([]float64, error) {
	if dst == nil {
		dst = make([]float64, n.vectorSize)
	}
	if err := checkLen(what, len(dst), n.vectorSize); err != nil {
		return nil, err
	}
	pos := 0
	for _, m := range ms {
		pos += copy(dst[pos:], m.RawMatrix().Data)
	}
	return dst, nil
}
