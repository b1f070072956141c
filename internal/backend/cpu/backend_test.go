package cpu

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumedhvaidy/ml-tutorials/internal/tensor"
)

func rawFromFloat32(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	copy(raw.AsFloat32(), data)
	return raw
}

func TestBackendIdentity(t *testing.T) {
	b := New()
	assert.Equal(t, "CPU", b.Name())
	assert.Equal(t, tensor.CPU, b.Device())
}

func TestAddSameShape(t *testing.T) {
	b := New()
	a := rawFromFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	c := rawFromFloat32(t, []float32{10, 20, 30, 40}, tensor.Shape{2, 2})

	out := b.Add(a, c)
	assert.Equal(t, []float32{11, 22, 33, 44}, out.AsFloat32())
}

func TestAddReusesUniqueBuffer(t *testing.T) {
	b := New()
	a := rawFromFloat32(t, []float32{1, 2}, tensor.Shape{2})
	c := rawFromFloat32(t, []float32{3, 4}, tensor.Shape{2})

	out := b.Add(a, c)
	assert.Same(t, a, out, "unique left operand should be updated in place")
}

func TestAddSharedBufferNotMutated(t *testing.T) {
	b := New()
	a := rawFromFloat32(t, []float32{1, 2}, tensor.Shape{2})
	alias := a.Clone()
	c := rawFromFloat32(t, []float32{3, 4}, tensor.Shape{2})

	out := b.Add(a, c)
	assert.NotSame(t, a, out)
	assert.Equal(t, []float32{1, 2}, alias.AsFloat32())
	assert.Equal(t, []float32{4, 6}, out.AsFloat32())
}

func TestAddBroadcastRowVector(t *testing.T) {
	b := New()
	a := rawFromFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	bias := rawFromFloat32(t, []float32{10, 20, 30}, tensor.Shape{1, 3})

	out := b.Add(a, bias)
	assert.Equal(t, tensor.Shape{2, 3}, out.Shape())
	assert.Equal(t, []float32{11, 22, 33, 14, 25, 36}, out.AsFloat32())
}

func TestAddBroadcastMissingDim(t *testing.T) {
	b := New()
	a := rawFromFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	bias := rawFromFloat32(t, []float32{10, 20, 30}, tensor.Shape{3})

	out := b.Add(a, bias)
	assert.Equal(t, []float32{11, 22, 33, 14, 25, 36}, out.AsFloat32())
}

func TestSubMulDiv(t *testing.T) {
	b := New()
	a := rawFromFloat32(t, []float32{8, 6, 4, 2}, tensor.Shape{4})
	c := rawFromFloat32(t, []float32{2, 2, 2, 2}, tensor.Shape{4})

	assert.Equal(t, []float32{6, 4, 2, 0}, b.Sub(a.Clone(), c).AsFloat32())
	assert.Equal(t, []float32{16, 12, 8, 4}, b.Mul(a.Clone(), c).AsFloat32())
	assert.Equal(t, []float32{4, 3, 2, 1}, b.Div(a.Clone(), c).AsFloat32())
}

func TestAddShapeMismatchPanics(t *testing.T) {
	b := New()
	a := rawFromFloat32(t, []float32{1, 2, 3}, tensor.Shape{3})
	c := rawFromFloat32(t, []float32{1, 2}, tensor.Shape{2})

	assert.Panics(t, func() { b.Add(a, c) })
}

func TestMatMul(t *testing.T) {
	b := New()
	// [1 2; 3 4] @ [5 6; 7 8] = [19 22; 43 50]
	a := rawFromFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	c := rawFromFloat32(t, []float32{5, 6, 7, 8}, tensor.Shape{2, 2})

	out := b.MatMul(a, c)
	assert.Equal(t, tensor.Shape{2, 2}, out.Shape())
	assert.Equal(t, []float32{19, 22, 43, 50}, out.AsFloat32())
}

func TestMatMulRectangular(t *testing.T) {
	b := New()
	a := rawFromFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	c := rawFromFloat32(t, []float32{7, 8, 9, 10, 11, 12}, tensor.Shape{3, 2})

	out := b.MatMul(a, c)
	assert.Equal(t, tensor.Shape{2, 2}, out.Shape())
	assert.Equal(t, []float32{58, 64, 139, 154}, out.AsFloat32())
}

func TestMatMulFloat64(t *testing.T) {
	b := New()
	a, err := tensor.NewRaw(tensor.Shape{2, 2}, tensor.Float64, tensor.CPU)
	require.NoError(t, err)
	copy(a.AsFloat64(), []float64{1, 2, 3, 4})
	c, err := tensor.NewRaw(tensor.Shape{2, 2}, tensor.Float64, tensor.CPU)
	require.NoError(t, err)
	copy(c.AsFloat64(), []float64{5, 6, 7, 8})

	out := b.MatMul(a, c)
	assert.Equal(t, []float64{19, 22, 43, 50}, out.AsFloat64())
}

func TestMatMulShapeMismatchPanics(t *testing.T) {
	b := New()
	a := rawFromFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	c := rawFromFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})

	assert.Panics(t, func() { b.MatMul(a, c) })
}

func TestTranspose2D(t *testing.T) {
	b := New()
	a := rawFromFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	out := b.Transpose(a)
	assert.Equal(t, tensor.Shape{3, 2}, out.Shape())
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, out.AsFloat32())
}

func TestTransposeExplicitAxes(t *testing.T) {
	b := New()
	a := rawFromFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{1, 2, 3})

	out := b.Transpose(a, 1, 0, 2)
	assert.Equal(t, tensor.Shape{2, 1, 3}, out.Shape())
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, out.AsFloat32())
}

func TestReshape(t *testing.T) {
	b := New()
	a := rawFromFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	out := b.Reshape(a, tensor.Shape{3, 2})
	assert.Equal(t, tensor.Shape{3, 2}, out.Shape())
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, out.AsFloat32())

	assert.Panics(t, func() { b.Reshape(a, tensor.Shape{4, 2}) })
}

func TestSigmoid(t *testing.T) {
	b := New()
	a := rawFromFloat32(t, []float32{0, 2, -2}, tensor.Shape{3})

	out := b.Sigmoid(a).AsFloat32()
	assert.InDelta(t, 0.5, out[0], 1e-6)
	assert.InDelta(t, 1.0/(1.0+math.Exp(-2)), out[1], 1e-6)
	assert.InDelta(t, 1.0/(1.0+math.Exp(2)), out[2], 1e-6)
}

func TestTanhReLU(t *testing.T) {
	b := New()
	a := rawFromFloat32(t, []float32{-1, 0, 1}, tensor.Shape{3})

	tanh := b.Tanh(a).AsFloat32()
	assert.InDelta(t, math.Tanh(-1), tanh[0], 1e-6)
	assert.InDelta(t, 0, tanh[1], 1e-6)

	relu := b.ReLU(a).AsFloat32()
	assert.Equal(t, []float32{0, 0, 1}, relu)
}

func TestExpLog(t *testing.T) {
	b := New()
	a := rawFromFloat32(t, []float32{0, 1}, tensor.Shape{2})

	exp := b.Exp(a).AsFloat32()
	assert.InDelta(t, 1, exp[0], 1e-6)
	assert.InDelta(t, math.E, exp[1], 1e-5)

	c := rawFromFloat32(t, []float32{1, math.E}, tensor.Shape{2})
	log := b.Log(c).AsFloat32()
	assert.InDelta(t, 0, log[0], 1e-6)
	assert.InDelta(t, 1, log[1], 1e-6)
}

func TestMulScalar(t *testing.T) {
	b := New()
	a := rawFromFloat32(t, []float32{1, -2, 3}, tensor.Shape{3})

	out := b.MulScalar(a, float32(2.5))
	assert.Equal(t, []float32{2.5, -5, 7.5}, out.AsFloat32())
	assert.Equal(t, []float32{1, -2, 3}, a.AsFloat32(), "input must not change")
}

func TestAddScalar(t *testing.T) {
	b := New()
	a := rawFromFloat32(t, []float32{1, -2, 3}, tensor.Shape{3})

	out := b.AddScalar(a, float32(10))
	assert.Equal(t, []float32{11, 8, 13}, out.AsFloat32())
}

func TestScalarFloat64(t *testing.T) {
	b := New()
	raw, err := tensor.NewRaw(tensor.Shape{2}, tensor.Float64, tensor.CPU)
	require.NoError(t, err)
	copy(raw.AsFloat64(), []float64{1.5, -0.5})

	out := b.MulScalar(raw, 4.0)
	assert.Equal(t, []float64{6, -2}, out.AsFloat64())
}

func TestScalarTypeMismatchPanics(t *testing.T) {
	b := New()
	a := rawFromFloat32(t, []float32{1}, tensor.Shape{1})

	assert.Panics(t, func() { b.MulScalar(a, 2.0) }, "float64 scalar on float32 tensor")
}

func TestSumMean(t *testing.T) {
	b := New()
	a := rawFromFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})

	sum := b.Sum(a)
	assert.Equal(t, tensor.Shape{1}, sum.Shape())
	assert.InDelta(t, 10, sum.AsFloat32()[0], 1e-6)

	mean := b.Mean(a)
	assert.Equal(t, tensor.Shape{1}, mean.Shape())
	assert.InDelta(t, 2.5, mean.AsFloat32()[0], 1e-6)
}
