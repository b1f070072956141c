package tensor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBackend satisfies Backend for tests that only exercise tensor
// storage and indexing. Compute methods are covered by the cpu package.
type stubBackend struct{}

func (stubBackend) Add(a, b *RawTensor) *RawTensor                { panic("not implemented") }
func (stubBackend) Sub(a, b *RawTensor) *RawTensor                { panic("not implemented") }
func (stubBackend) Mul(a, b *RawTensor) *RawTensor                { panic("not implemented") }
func (stubBackend) Div(a, b *RawTensor) *RawTensor                { panic("not implemented") }
func (stubBackend) MulScalar(x *RawTensor, s any) *RawTensor      { panic("not implemented") }
func (stubBackend) AddScalar(x *RawTensor, s any) *RawTensor      { panic("not implemented") }
func (stubBackend) MatMul(a, b *RawTensor) *RawTensor             { panic("not implemented") }
func (stubBackend) Reshape(t *RawTensor, s Shape) *RawTensor      { panic("not implemented") }
func (stubBackend) Transpose(t *RawTensor, axes ...int) *RawTensor { panic("not implemented") }
func (stubBackend) Exp(x *RawTensor) *RawTensor                   { panic("not implemented") }
func (stubBackend) Log(x *RawTensor) *RawTensor                   { panic("not implemented") }
func (stubBackend) Sigmoid(x *RawTensor) *RawTensor               { panic("not implemented") }
func (stubBackend) Tanh(x *RawTensor) *RawTensor                  { panic("not implemented") }
func (stubBackend) ReLU(x *RawTensor) *RawTensor                  { panic("not implemented") }
func (stubBackend) Sum(x *RawTensor) *RawTensor                   { panic("not implemented") }
func (stubBackend) Mean(x *RawTensor) *RawTensor                  { panic("not implemented") }
func (stubBackend) Name() string                                  { return "stub" }
func (stubBackend) Device() Device                                { return CPU }

func TestFromSlice(t *testing.T) {
	x, err := FromSlice[float32](
		[]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, stubBackend{})
	require.NoError(t, err)

	assert.Equal(t, Shape{2, 3}, x.Shape())
	assert.Equal(t, Float32, x.DType())
	assert.Equal(t, 6, x.NumElements())
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, x.Data())
}

func TestFromSliceLengthMismatch(t *testing.T) {
	_, err := FromSlice[float32]([]float32{1, 2, 3}, Shape{2, 2}, stubBackend{})
	assert.Error(t, err)
}

func TestAtSet(t *testing.T) {
	x, err := FromSlice[float32](
		[]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, stubBackend{})
	require.NoError(t, err)

	assert.Equal(t, float32(6), x.At(1, 2))
	x.Set(42, 0, 1)
	assert.Equal(t, float32(42), x.At(0, 1))

	assert.Panics(t, func() { x.At(2, 0) })
	assert.Panics(t, func() { x.At(0) })
}

func TestItem(t *testing.T) {
	x, err := FromSlice[float32]([]float32{7}, Shape{1}, stubBackend{})
	require.NoError(t, err)
	assert.Equal(t, float32(7), x.Item())

	y, err := FromSlice[float32]([]float32{1, 2}, Shape{2}, stubBackend{})
	require.NoError(t, err)
	assert.Panics(t, func() { y.Item() })
}

func TestZerosOnesFull(t *testing.T) {
	z := Zeros[float32](Shape{2, 2}, stubBackend{})
	assert.Equal(t, []float32{0, 0, 0, 0}, z.Data())

	o := Ones[float32](Shape{3}, stubBackend{})
	assert.Equal(t, []float32{1, 1, 1}, o.Data())

	f := Full[float64](Shape{2}, 2.5, stubBackend{})
	assert.Equal(t, []float64{2.5, 2.5}, f.Data())
}

func TestRandRange(t *testing.T) {
	x := Rand[float32](Shape{100}, stubBackend{})
	for _, v := range x.Data() {
		require.GreaterOrEqual(t, v, float32(0))
		require.Less(t, v, float32(1))
	}
}

func TestRandnFinite(t *testing.T) {
	x := Randn[float64](Shape{101}, stubBackend{})
	for _, v := range x.Data() {
		require.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
}

func TestCloneSharesBuffer(t *testing.T) {
	x, err := FromSlice[float32]([]float32{1, 2}, Shape{2}, stubBackend{})
	require.NoError(t, err)
	assert.True(t, x.Raw().IsUnique())

	c := x.Clone()
	assert.False(t, x.Raw().IsUnique())
	assert.False(t, c.Raw().IsUnique())

	// Writes through one alias are visible through the other.
	x.Set(9, 0)
	assert.Equal(t, float32(9), c.At(0))

	c.Raw().Release()
	assert.True(t, x.Raw().IsUnique())
}

func TestDetachSharesDataWithFreshIdentity(t *testing.T) {
	x, err := FromSlice[float32]([]float32{1, 2}, Shape{2}, stubBackend{})
	require.NoError(t, err)

	d := x.Detach()
	assert.NotSame(t, x.Raw(), d.Raw())
	assert.Equal(t, []float32{1, 2}, d.Data())

	// Zero-copy: the detached tensor still sees writes to the original.
	x.Set(9, 0)
	assert.Equal(t, float32(9), d.At(0))
}

func TestForceNonUnique(t *testing.T) {
	raw, err := NewRaw(Shape{2}, Float32, CPU)
	require.NoError(t, err)

	restore := raw.ForceNonUnique()
	assert.False(t, raw.IsUnique())
	restore()
	assert.True(t, raw.IsUnique())
}

func TestRawTensorDTypeViews(t *testing.T) {
	raw, err := NewRaw(Shape{2}, Float32, CPU)
	require.NoError(t, err)

	assert.Len(t, raw.AsFloat32(), 2)
	assert.Panics(t, func() { raw.AsFloat64() })
	assert.Panics(t, func() { raw.AsInt32() })
	assert.Equal(t, 8, raw.ByteSize())
}
