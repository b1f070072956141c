// Copyright 2026 ML Tutorials Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// The backend implements element-wise math with NumPy-compatible
// broadcasting and matrix multiplication via gonum BLAS routines.
// Float32 and Float64 tensors are supported.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	z := x.Add(y)
package cpu

import (
	internalcpu "github.com/sumedhvaidy/ml-tutorials/internal/backend/cpu"
	"github.com/sumedhvaidy/ml-tutorials/tensor"
)

// Backend is the CPU backend implementation.
type Backend = internalcpu.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
func New() *Backend {
	return internalcpu.New()
}
