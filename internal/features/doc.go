// Package features computes handwriting descriptors from a sample.Wrapper.
//
// Functions return either a slice (one value per stroke, per point, or a
// fixed-size vector) or a scalar. A surface without strokes yields the NaN
// sentinel rather than an error; errors are reserved for invalid arguments.
package features
