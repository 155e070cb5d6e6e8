package nn

import (
	"fmt"
	"math"
	"strings"
)

// Activation is a scalar nonlinearity applied elementwise to a layer's
// pre-activation sums.
type Activation int

const (
	Linear Activation = iota
	ReLU
	LeakyReLU
	Sigmoid
	Tanh
)

// leakyAlpha is the negative-side slope of LeakyReLU.
const leakyAlpha = 0.1

// ActivationLookup maps the names accepted on the command line to activations.
var ActivationLookup = map[string]Activation{
	"linear":    Linear,
	"relu":      ReLU,
	"leakyrelu": LeakyReLU,
	"sigmoid":   Sigmoid,
	"tanh":      Tanh,
}

// ParseActivation resolves a case-insensitive activation name.
func ParseActivation(name string) (Activation, error) {
	a, ok := ActivationLookup[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown activation %q", name)
	}
	return a, nil
}

// Apply evaluates the activation at x.
func (a Activation) Apply(x float64) float64 {
	switch a {
	case Linear:
		return x
	case ReLU:
		if x > 0 {
			return x
		}
		return 0
	case LeakyReLU:
		if x > 0 {
			return x
		}
		return leakyAlpha * x
	case Sigmoid:
		return 1.0 / (1.0 + math.Exp(-x))
	case Tanh:
		return math.Tanh(x)
	}
	panic(fmt.Sprintf("nn: unknown activation %d", int(a)))
}

// Derivative evaluates the derivative at the pre-activation value x, not at
// Apply(x).
//
// ReLU and LeakyReLU are not differentiable at zero; there the derivative is
// the midpoint of the left and right slopes.
func (a Activation) Derivative(x float64) float64 {
	switch a {
	case Linear:
		return 1
	case ReLU:
		switch {
		case x > 0:
			return 1
		case x < 0:
			return 0
		}
		return 0.5
	case LeakyReLU:
		switch {
		case x > 0:
			return 1
		case x < 0:
			return leakyAlpha
		}
		return 0.5 + 0.5*leakyAlpha
	case Sigmoid:
		s := a.Apply(x)
		return s * (1 - s)
	case Tanh:
		t := math.Tanh(x)
		return 1 - t*t
	}
	panic(fmt.Sprintf("nn: unknown activation %d", int(a)))
}

// ApplyAll returns a new slice holding Apply of every element of xs.
func (a Activation) ApplyAll(xs []float64) []float64 {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = a.Apply(x)
	}
	return ys
}

// DerivativeAll returns a new slice holding Derivative of every element of xs.
func (a Activation) DerivativeAll(xs []float64) []float64 {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = a.Derivative(x)
	}
	return ys
}

func (a Activation) String() string {
	switch a {
	case Linear:
		return "linear"
	case ReLU:
		return "relu"
	case LeakyReLU:
		return "leakyrelu"
	case Sigmoid:
		return "sigmoid"
	case Tanh:
		return "tanh"
	}
	return fmt.Sprintf("Activation(%d)", int(a))
}
