package numeric

import "math/big"

// DefaultPrecision is the mantissa precision, in bits, used by a BigFloat
// backend whose Prec is zero.
const DefaultPrecision uint = 128

// BigFloat is the arbitrary-precision backend built on math/big.
//
// Prec is the mantissa precision in bits applied by Init. All operations
// round to nearest even. Results never become incorrect as the zoom
// deepens; higher precision only costs more time.
type BigFloat struct {
	Prec uint
}

var _ Arith[big.Float] = BigFloat{}

// NewBigFloat returns a backend with the given precision. A zero precision
// selects DefaultPrecision.
func NewBigFloat(prec uint) BigFloat {
	if prec == 0 {
		prec = DefaultPrecision
	}
	return BigFloat{Prec: prec}
}

// Precision returns the effective mantissa precision in bits.
func (m BigFloat) Precision() uint {
	if m.Prec == 0 {
		return DefaultPrecision
	}
	return m.Prec
}

func (m BigFloat) Init(z *big.Float) {
	z.SetPrec(m.Precision()).SetMode(big.ToNearestEven)
}

func (BigFloat) Release(z *big.Float) { *z = big.Float{} }

func (BigFloat) SetInt(z *big.Float, i int)         { z.SetInt64(int64(i)) }
func (BigFloat) SetFloat64(z *big.Float, f float64) { z.SetFloat64(f) }
func (BigFloat) Set(z, x *big.Float)                { z.Set(x) }

func (BigFloat) Add(z, x, y *big.Float) { z.Add(x, y) }
func (BigFloat) Sub(z, x, y *big.Float) { z.Sub(x, y) }
func (BigFloat) Mul(z, x, y *big.Float) { z.Mul(x, y) }
func (BigFloat) Quo(z, x, y *big.Float) { z.Quo(x, y) }

func (BigFloat) Cmp(x, y *big.Float) int { return x.Cmp(y) }

func (BigFloat) CmpInt(x *big.Float, i int) int {
	var y big.Float
	y.SetInt64(int64(i))
	return x.Cmp(&y)
}

// Int truncates toward zero. Values outside the int64 range saturate.
func (BigFloat) Int(x *big.Float) int {
	i, _ := x.Int64()
	return int(i)
}

func (BigFloat) Float64(x *big.Float) float64 {
	f, _ := x.Float64()
	return f
}

// Text returns the shortest decimal that identifies x at its precision.
func (BigFloat) Text(x *big.Float) string {
	return x.Text('g', -1)
}
