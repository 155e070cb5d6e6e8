package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allActivations = []Activation{Linear, ReLU, LeakyReLU, Sigmoid, Tanh}

func TestActivationApply(t *testing.T) {
	tests := []struct {
		a    Activation
		x    float64
		want float64
	}{
		{Linear, -3, -3},
		{Linear, 2.5, 2.5},
		{ReLU, -2, 0},
		{ReLU, 0, 0},
		{ReLU, 3, 3},
		{LeakyReLU, -2, -0.2},
		{LeakyReLU, 4, 4},
		{Sigmoid, 0, 0.5},
		{Tanh, 0, 0},
		{Tanh, 1, 0.7615941559557649},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, tt.a.Apply(tt.x), 1e-12, "%s(%v)", tt.a, tt.x)
	}
}

func TestActivationDerivativeAtZero(t *testing.T) {
	assert.Equal(t, 1.0, Linear.Derivative(0))
	assert.Equal(t, 0.5, ReLU.Derivative(0))
	assert.Equal(t, 0.55, LeakyReLU.Derivative(0))
	assert.Equal(t, 0.25, Sigmoid.Derivative(0))
	assert.Equal(t, 1.0, Tanh.Derivative(0))
}

func TestActivationDerivativeOneSided(t *testing.T) {
	assert.Equal(t, 1.0, ReLU.Derivative(0.3))
	assert.Equal(t, 0.0, ReLU.Derivative(-0.3))
	assert.Equal(t, 1.0, LeakyReLU.Derivative(0.3))
	assert.Equal(t, 0.1, LeakyReLU.Derivative(-0.3))
}

func TestSigmoidDerivativeIdentity(t *testing.T) {
	for _, x := range []float64{-6, -1.5, -0.1, 0, 0.1, 1.5, 6} {
		s := Sigmoid.Apply(x)
		assert.Equal(t, s*(1-s), Sigmoid.Derivative(x), "x=%v", x)
	}
}

func TestTanhMatchesExponentialForm(t *testing.T) {
	for _, x := range []float64{-3, -0.5, 0.25, 2} {
		ex, enx := math.Exp(x), math.Exp(-x)
		assert.InDelta(t, (ex-enx)/(ex+enx), Tanh.Apply(x), 1e-12)
		th := Tanh.Apply(x)
		assert.InDelta(t, 1-th*th, Tanh.Derivative(x), 1e-12)
	}
}

// The derivative is taken at the pre-activation value, so a central
// difference of Apply must agree with it away from kinks.
func TestActivationDerivativeNumeric(t *testing.T) {
	const h = 1e-6
	for _, a := range allActivations {
		for _, x := range []float64{-2.3, -0.7, 0.4, 1.9} {
			num := (a.Apply(x+h) - a.Apply(x-h)) / (2 * h)
			assert.InDelta(t, num, a.Derivative(x), 1e-6, "%s at %v", a, x)
		}
	}
}

func TestActivationAll(t *testing.T) {
	xs := []float64{-1, 0, 2}
	for _, a := range allActivations {
		ys := a.ApplyAll(xs)
		ds := a.DerivativeAll(xs)
		require.Len(t, ys, len(xs))
		require.Len(t, ds, len(xs))
		for i, x := range xs {
			assert.Equal(t, a.Apply(x), ys[i])
			assert.Equal(t, a.Derivative(x), ds[i])
		}
	}
	assert.Equal(t, []float64{-1, 0, 2}, xs, "input must not be modified")
}

func TestParseActivation(t *testing.T) {
	for _, a := range allActivations {
		got, err := ParseActivation(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}

	got, err := ParseActivation("Sigmoid")
	require.NoError(t, err)
	assert.Equal(t, Sigmoid, got)

	_, err = ParseActivation("softplus")
	assert.Error(t, err)
}

func TestUnknownActivationPanics(t *testing.T) {
	bad := Activation(42)
	assert.Panics(t, func() { bad.Apply(1) })
	assert.Panics(t, func() { bad.Derivative(1) })
	assert.Equal(t, "Activation(42)", bad.String())
}
