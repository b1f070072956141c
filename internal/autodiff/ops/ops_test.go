package ops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumedhvaidy/ml-tutorials/internal/backend/cpu"
	"github.com/sumedhvaidy/ml-tutorials/internal/tensor"
)

func raw(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	copy(r.AsFloat32(), data)
	return r
}

func TestAddOpBackward(t *testing.T) {
	b := cpu.New()
	a := raw(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	c := raw(t, []float32{5, 6, 7, 8}, tensor.Shape{2, 2})
	out := raw(t, []float32{6, 8, 10, 12}, tensor.Shape{2, 2})
	grad := raw(t, []float32{1, 1, 1, 1}, tensor.Shape{2, 2})

	grads := NewAddOp(a, c, out).Backward(grad, b)
	require.Len(t, grads, 2)
	assert.Equal(t, []float32{1, 1, 1, 1}, grads[0].AsFloat32())
	assert.Equal(t, []float32{1, 1, 1, 1}, grads[1].AsFloat32())
}

func TestAddOpBackwardReducesBroadcast(t *testing.T) {
	b := cpu.New()
	a := raw(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	bias := raw(t, []float32{1, 1, 1}, tensor.Shape{1, 3})
	out := b.Add(a.Clone(), bias)
	grad := raw(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	grads := NewAddOp(a, bias, out).Backward(grad, b)
	assert.Equal(t, tensor.Shape{2, 3}, grads[0].Shape())
	assert.Equal(t, tensor.Shape{1, 3}, grads[1].Shape())
	assert.Equal(t, []float32{5, 7, 9}, grads[1].AsFloat32())
}

func TestSubOpBackward(t *testing.T) {
	b := cpu.New()
	a := raw(t, []float32{3, 4}, tensor.Shape{2})
	c := raw(t, []float32{1, 2}, tensor.Shape{2})
	out := raw(t, []float32{2, 2}, tensor.Shape{2})
	grad := raw(t, []float32{1, 2}, tensor.Shape{2})

	grads := NewSubOp(a, c, out).Backward(grad, b)
	assert.Equal(t, []float32{1, 2}, grads[0].AsFloat32())
	assert.Equal(t, []float32{-1, -2}, grads[1].AsFloat32())
}

func TestMulOpBackward(t *testing.T) {
	b := cpu.New()
	a := raw(t, []float32{2, 3}, tensor.Shape{2})
	c := raw(t, []float32{5, 7}, tensor.Shape{2})
	out := raw(t, []float32{10, 21}, tensor.Shape{2})
	grad := raw(t, []float32{1, 1}, tensor.Shape{2})

	grads := NewMulOp(a, c, out).Backward(grad, b)
	assert.Equal(t, []float32{5, 7}, grads[0].AsFloat32())
	assert.Equal(t, []float32{2, 3}, grads[1].AsFloat32())
	// The incoming gradient must not be clobbered by in-place reuse.
	assert.Equal(t, []float32{1, 1}, grad.AsFloat32())
}

func TestDivOpBackward(t *testing.T) {
	b := cpu.New()
	a := raw(t, []float32{6}, tensor.Shape{1})
	c := raw(t, []float32{2}, tensor.Shape{1})
	out := b.Div(a.Clone(), c) // 3
	grad := raw(t, []float32{1}, tensor.Shape{1})

	grads := NewDivOp(a, c, out).Backward(grad, b)
	assert.InDelta(t, 0.5, grads[0].AsFloat32()[0], 1e-6)   // 1/b
	assert.InDelta(t, -1.5, grads[1].AsFloat32()[0], 1e-6)  // -a/b^2
}

func TestMatMulOpBackward(t *testing.T) {
	b := cpu.New()
	a := raw(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	c := raw(t, []float32{5, 6, 7, 8}, tensor.Shape{2, 2})
	out := b.MatMul(a, c)
	grad := raw(t, []float32{1, 1, 1, 1}, tensor.Shape{2, 2})

	grads := NewMatMulOp(a, c, out).Backward(grad, b)
	// grad_a = grad @ c^T, grad_b = a^T @ grad
	assert.Equal(t, []float32{11, 15, 11, 15}, grads[0].AsFloat32())
	assert.Equal(t, []float32{4, 4, 6, 6}, grads[1].AsFloat32())
}

func TestTransposeOpBackward(t *testing.T) {
	b := cpu.New()
	in := raw(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	out := b.Transpose(in, 1, 0)
	grad := raw(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2})

	grads := NewTransposeOp(in, out, []int{1, 0}).Backward(grad, b)
	assert.Equal(t, tensor.Shape{2, 3}, grads[0].Shape())
	assert.Equal(t, []float32{1, 3, 5, 2, 4, 6}, grads[0].AsFloat32())
}

func TestSigmoidOpBackward(t *testing.T) {
	b := cpu.New()
	in := raw(t, []float32{0}, tensor.Shape{1})
	out := b.Sigmoid(in) // 0.5
	grad := raw(t, []float32{1}, tensor.Shape{1})

	grads := NewSigmoidOp(in, out).Backward(grad, b)
	assert.InDelta(t, 0.25, grads[0].AsFloat32()[0], 1e-6) // 0.5 * (1 - 0.5)
	// Saved forward output must survive the backward pass.
	assert.InDelta(t, 0.5, out.AsFloat32()[0], 1e-6)
}

func TestTanhOpBackward(t *testing.T) {
	b := cpu.New()
	in := raw(t, []float32{1}, tensor.Shape{1})
	out := b.Tanh(in)
	grad := raw(t, []float32{1}, tensor.Shape{1})

	grads := NewTanhOp(in, out).Backward(grad, b)
	th := math.Tanh(1)
	assert.InDelta(t, 1-th*th, grads[0].AsFloat32()[0], 1e-5)
}

func TestReLUOpBackward(t *testing.T) {
	b := cpu.New()
	in := raw(t, []float32{-1, 0, 2}, tensor.Shape{3})
	out := b.ReLU(in)
	grad := raw(t, []float32{5, 5, 5}, tensor.Shape{3})

	grads := NewReLUOp(in, out).Backward(grad, b)
	assert.Equal(t, []float32{0, 0, 5}, grads[0].AsFloat32())
}

func TestMulScalarOpBackward(t *testing.T) {
	b := cpu.New()
	x := raw(t, []float32{1, 2, 3}, tensor.Shape{3})
	out := raw(t, []float32{3, 6, 9}, tensor.Shape{3})
	grad := raw(t, []float32{1, 2, 3}, tensor.Shape{3})

	grads := NewMulScalarOp(x, out, float32(3)).Backward(grad, b)
	require.Len(t, grads, 1)
	assert.Equal(t, []float32{3, 6, 9}, grads[0].AsFloat32())
}

func TestAddScalarOpBackward(t *testing.T) {
	b := cpu.New()
	x := raw(t, []float32{1, 2}, tensor.Shape{2})
	out := raw(t, []float32{6, 7}, tensor.Shape{2})
	grad := raw(t, []float32{4, 5}, tensor.Shape{2})

	grads := NewAddScalarOp(x, out).Backward(grad, b)
	require.Len(t, grads, 1)
	assert.Equal(t, []float32{4, 5}, grads[0].AsFloat32())
}

func TestMeanOpBackward(t *testing.T) {
	b := cpu.New()
	in := raw(t, []float32{1, 2, 3, 4}, tensor.Shape{4})
	out := b.Mean(in)
	grad := raw(t, []float32{2}, tensor.Shape{1})

	grads := NewMeanOp(in, out).Backward(grad, b)
	assert.Equal(t, []float32{0.5, 0.5, 0.5, 0.5}, grads[0].AsFloat32())
}

func TestBCEForward(t *testing.T) {
	p := raw(t, []float32{0.9, 0.1}, tensor.Shape{2, 1})
	y := raw(t, []float32{1, 0}, tensor.Shape{2, 1})

	loss := BCEForward(p, y, tensor.CPU)
	require.Equal(t, tensor.Shape{1}, loss.Shape())
	assert.InDelta(t, -math.Log(0.9), float64(loss.AsFloat32()[0]), 1e-5)
}

func TestBCEForwardClampsExtremes(t *testing.T) {
	p := raw(t, []float32{0, 1}, tensor.Shape{2})
	y := raw(t, []float32{1, 0}, tensor.Shape{2})

	loss := BCEForward(p, y, tensor.CPU)
	v := float64(loss.AsFloat32()[0])
	assert.False(t, math.IsInf(v, 0) || math.IsNaN(v))
}

func TestBCEOpBackward(t *testing.T) {
	b := cpu.New()
	p := raw(t, []float32{0.8, 0.3}, tensor.Shape{2, 1})
	y := raw(t, []float32{1, 0}, tensor.Shape{2, 1})
	out := BCEForward(p, y, tensor.CPU)
	grad := raw(t, []float32{1}, tensor.Shape{1})

	grads := NewBCEOp(p, y, out).Backward(grad, b)
	require.Len(t, grads, 2)
	assert.Nil(t, grads[1], "targets are not differentiated")

	// dL/dp = (p - y) / (p * (1-p) * N)
	g := grads[0].AsFloat32()
	assert.InDelta(t, (0.8-1)/(0.8*0.2*2), float64(g[0]), 1e-5)
	assert.InDelta(t, (0.3-0)/(0.3*0.7*2), float64(g[1]), 1e-5)
}

func TestBCEForwardShapeMismatchPanics(t *testing.T) {
	p := raw(t, []float32{0.5}, tensor.Shape{1})
	y := raw(t, []float32{1, 0}, tensor.Shape{2})
	assert.Panics(t, func() { BCEForward(p, y, tensor.CPU) })
}

func TestReduceBroadcastLeadingDim(t *testing.T) {
	b := cpu.New()
	grad := raw(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	out := reduceBroadcast(grad, tensor.Shape{3}, b)
	assert.Equal(t, tensor.Shape{3}, out.Shape())
	assert.Equal(t, []float32{5, 7, 9}, out.AsFloat32())
}
