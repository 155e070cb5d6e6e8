package nn

import (
	"fmt"
	"strings"
)

// ErrorFunction is the loss minimized during training. It compares a
// produced output vector to the expected one.
type ErrorFunction int

const (
	MeanSquareError ErrorFunction = iota
)

// ErrorFunctionLookup maps the names accepted on the command line to error functions.
var ErrorFunctionLookup = map[string]ErrorFunction{
	"mse": MeanSquareError,
}

// ParseErrorFunction resolves a case-insensitive error function name.
func ParseErrorFunction(name string) (ErrorFunction, error) {
	e, ok := ErrorFunctionLookup[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown error function %q", name)
	}
	return e, nil
}

// Apply returns the scalar loss of produced against expected.
func (e ErrorFunction) Apply(produced, expected []float64) (float64, error) {
	if err := checkLen("expected", len(expected), len(produced)); err != nil {
		return 0, err
	}
	return e.apply(produced, expected), nil
}

// Derivative returns the per-element gradient of the loss with respect to
// produced.
//
// For MeanSquareError this is 2·(z−y) without the 1/n factor of Apply.
func (e ErrorFunction) Derivative(produced, expected []float64) ([]float64, error) {
	if err := checkLen("expected", len(expected), len(produced)); err != nil {
		return nil, err
	}
	dst := make([]float64, len(produced))
	e.derivative(dst, produced, expected)
	return dst, nil
}

// apply and derivative assume equal lengths.
func (e ErrorFunction) apply(zs, ys []float64) float64 {
	switch e {
	case MeanSquareError:
		var sum float64
		for i := range zs {
			d := zs[i] - ys[i]
			sum += d * d
		}
		return sum / float64(len(zs))
	}
	panic(fmt.Sprintf("nn: unknown error function %d", int(e)))
}

func (e ErrorFunction) derivative(dst, zs, ys []float64) {
	switch e {
	case MeanSquareError:
		for i := range zs {
			dst[i] = 2 * (zs[i] - ys[i])
		}
		return
	}
	panic(fmt.Sprintf("nn: unknown error function %d", int(e)))
}

func (e ErrorFunction) String() string {
	switch e {
	case MeanSquareError:
		return "mse"
	}
	return fmt.Sprintf("ErrorFunction(%d)", int(e))
}
