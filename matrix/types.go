// SPDX-License-Identifier: MIT

// Package matrix: shape-level types shared by every operand kind.
package matrix

// Shape is the minimal view every matrix operand exposes: its dimensions.
// gonum mat.Matrix, *Dense[T] and the wrappers built on top of it all
// satisfy Shape, which lets validators run before any element is read.
//
// Complexity notes: Dims is expected O(1).
type Shape interface {
	// Dims returns the number of rows and columns.
	Dims() (rows, cols int)
}
