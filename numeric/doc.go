// Package numeric provides the arithmetic backends the fractal engine is
// generic over.
//
// Every viewport transform and every escape-time iteration is written once
// against the [Arith] contract and instantiated with one of two backends:
//
//   - [Float64]: machine floats, cheap, about 16 significant digits.
//   - [BigFloat]: math/big floats with a configurable mantissa precision in
//     bits. Slower, but stays correct at arbitrarily deep zoom.
//
// Values are always handled by pointer so that the big.Float backend can
// reuse mantissa storage across operations:
//
//	var m numeric.BigFloat = numeric.BigFloat{Prec: 256}
//	var x, y big.Float
//	m.Init(&x)
//	m.Init(&y)
//	m.SetFloat64(&x, 0.5)
//	m.Mul(&y, &x, &x) // y = x*x
//
// Backends are plain values rather than process-wide singletons, so two
// engines with different precisions can run side by side.
//
// # Modes
//
// [Mode] enumerates the backends an engine can be asked for. Only
// [ModeFast] and [ModeExact] have implementations; the remaining modes are
// declared so that a request for them can be rejected up front.
package numeric
