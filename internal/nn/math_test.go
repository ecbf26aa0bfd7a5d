package nn

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
)

func TestDot(t *testing.T) {
	got, err := Dot([]float64{1, 2, 3}, []float64{4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, 32.0, got)

	got, err = Dot(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestDot_ShapeMismatch(t *testing.T) {
	_, err := Dot([]float64{1, 2}, []float64{1})
	require.ErrorIs(t, err, ErrShapeMismatch)

	var shapeErr *ShapeError
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, "dot", shapeErr.Op)
	assert.Equal(t, 2, shapeErr.Want)
	assert.Equal(t, 1, shapeErr.Got)
}

func TestSigmoid(t *testing.T) {
	assert.Equal(t, 0.5, Sigmoid(0))

	// Beyond |x| ≈ 37 float64 rounds σ(x) to exactly 1; stay inside that range.
	for x := -30.0; x <= 30.0; x += 0.25 {
		s := Sigmoid(x)
		assert.Greater(t, s, 0.0, "Sigmoid(%v)", x)
		assert.Less(t, s, 1.0, "Sigmoid(%v)", x)
	}

	// Monotonic.
	prev := Sigmoid(-10)
	for x := -9.5; x <= 10; x += 0.5 {
		s := Sigmoid(x)
		assert.Greater(t, s, prev, "Sigmoid not increasing at %v", x)
		prev = s
	}
}

func TestDerivSigmoid(t *testing.T) {
	assert.Equal(t, 0.25, DerivSigmoid(0))

	for _, x := range []float64{-7, -3, -1, -0.5, 0, 0.5, 1, 3, 7} {
		s := Sigmoid(x)
		assert.Equal(t, s*(1-s), DerivSigmoid(x), "identity at %v", x)

		numeric := fd.Derivative(Sigmoid, x, &fd.Settings{Formula: fd.Central})
		assert.InDelta(t, numeric, DerivSigmoid(x), 1e-8, "numeric derivative at %v", x)
	}
}

func TestMSE(t *testing.T) {
	got, err := MSE([]float64{0, 0, 0, 0}, []float64{1, 0, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, 0.5, got)

	v := []float64{0.3, -1.2, 4.5}
	got, err = MSE(v, v)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	a := []float64{1, 2, 3}
	b := []float64{3, 1, 7}
	ab, err := MSE(a, b)
	require.NoError(t, err)
	ba, err := MSE(b, a)
	require.NoError(t, err)
	assert.Equal(t, ab, ba)
	assert.InDelta(t, 7.0, ab, 1e-12)

	got, err = MSE(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestMSE_ShapeMismatch(t *testing.T) {
	_, err := MSE([]float64{1, 2}, []float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestLossDerivative(t *testing.T) {
	assert.Equal(t, -1.0, LossDerivative(1, 0.5))
	assert.Equal(t, 1.0, LossDerivative(0, 0.5))
	assert.Equal(t, 0.0, LossDerivative(0.25, 0.25))

	// Matches d/dp (e - p)².
	e := 0.8
	numeric := fd.Derivative(func(p float64) float64 {
		return math.Pow(e-p, 2)
	}, 0.3, &fd.Settings{Formula: fd.Central})
	assert.InDelta(t, numeric, LossDerivative(e, 0.3), 1e-8)
}
