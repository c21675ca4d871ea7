package fractal

import (
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatMagnification renders a zoom accumulator, as returned by
// Engine.ZoomAccumulator, for display in the given locale:
//
//	1         -> "1.00×"
//	1234567   -> "1,234,567×"
//	2.5e+40   -> "2.500×10^40"
//
// Values that cannot be parsed are returned unchanged.
func FormatMagnification(tag language.Tag, acc string) string {
	f, _, err := big.ParseFloat(acc, 10, 64, big.ToNearestEven)
	if err != nil || f.Sign() <= 0 {
		return acc
	}
	p := message.NewPrinter(tag)

	v, _ := f.Float64()
	switch {
	case v >= 0.01 && v < 10:
		return p.Sprintf("%.2f×", v)
	case v >= 10 && v < 1e9:
		return p.Sprintf("%.0f×", v)
	}

	// Scientific: the value may be out of float64 range, so split the
	// decimal exponent off the big.Float text.
	mant, exp, ok := strings.Cut(f.Text('e', 3), "e")
	if !ok {
		return acc
	}
	m, err := strconv.ParseFloat(mant, 64)
	if err != nil {
		return acc
	}
	e, err := strconv.Atoi(exp)
	if err != nil {
		return acc
	}
	return p.Sprintf("%.3f×10^%s", m, strconv.Itoa(e))
}
