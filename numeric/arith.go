package numeric

// Arith is the arithmetic contract shared by all numeric backends.
//
// All destination arguments may alias source arguments. Values must be
// prepared with Init before first use and may be handed back with Release
// when no longer needed. Division by an exact zero is left to the caller to
// avoid.
type Arith[T any] interface {
	// Init prepares z for use by this backend.
	Init(z *T)

	// Release drops any storage held by z. z must be re-initialized before
	// it is used again.
	Release(z *T)

	// SetInt sets z = i.
	SetInt(z *T, i int)

	// SetFloat64 sets z = f.
	SetFloat64(z *T, f float64)

	// Set copies x into z.
	Set(z, x *T)

	// Add sets z = x + y.
	Add(z, x, y *T)

	// Sub sets z = x - y.
	Sub(z, x, y *T)

	// Mul sets z = x * y.
	Mul(z, x, y *T)

	// Quo sets z = x / y.
	Quo(z, x, y *T)

	// Cmp returns -1, 0 or +1 depending on whether x is less than, equal
	// to, or greater than y.
	Cmp(x, y *T) int

	// CmpInt compares x with the integer i like Cmp.
	CmpInt(x *T, i int) int

	// Int returns x truncated toward zero. Lossy.
	Int(x *T) int

	// Float64 returns the float64 nearest to x. Lossy.
	Float64(x *T) float64

	// Text formats x as a decimal string for display.
	Text(x *T) string
}
