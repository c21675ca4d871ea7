package numeric

import (
	"math"
	"strconv"
)

// Float64 is the machine-float backend. It has no state; Init and Release
// are no-ops.
type Float64 struct{}

var _ Arith[float64] = Float64{}

func (Float64) Init(*float64)    {}
func (Float64) Release(*float64) {}

func (Float64) SetInt(z *float64, i int)         { *z = float64(i) }
func (Float64) SetFloat64(z *float64, f float64) { *z = f }
func (Float64) Set(z, x *float64)                { *z = *x }

func (Float64) Add(z, x, y *float64) { *z = *x + *y }
func (Float64) Sub(z, x, y *float64) { *z = *x - *y }
func (Float64) Mul(z, x, y *float64) { *z = *x * *y }
func (Float64) Quo(z, x, y *float64) { *z = *x / *y }

func (Float64) Cmp(x, y *float64) int {
	switch {
	case *x < *y:
		return -1
	case *x > *y:
		return 1
	}
	return 0
}

// CmpInt compares against float64(i) without truncating x.
func (f Float64) CmpInt(x *float64, i int) int {
	y := float64(i)
	return f.Cmp(x, &y)
}

// Int truncates toward zero. Values outside the int range saturate.
func (Float64) Int(x *float64) int {
	switch {
	case math.IsNaN(*x):
		return 0
	case *x >= math.MaxInt64:
		return math.MaxInt
	case *x <= math.MinInt64:
		return math.MinInt
	}
	return int(*x)
}

func (Float64) Float64(x *float64) float64 { return *x }

func (Float64) Text(x *float64) string {
	return strconv.FormatFloat(*x, 'g', -1, 64)
}
