package numeric

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned by ParseMode for names that match no mode.
var ErrUnknownMode = errors.New("numeric: unknown mode")

// Mode selects the arithmetic used for a render.
type Mode int

// Mode constants.
const (
	// ModeFast renders with float64 arithmetic.
	ModeFast Mode = iota

	// ModeExact renders with big.Float arithmetic at the configured precision.
	ModeExact

	// ModeFloat32 is a single-precision mode. Declared, not implemented.
	ModeFloat32

	// ModeRational is an exact rational mode. Declared, not implemented.
	ModeRational
)

var modeNames = map[Mode]string{
	ModeFast:     "fast",
	ModeExact:    "exact",
	ModeFloat32:  "float32",
	ModeRational: "rational",
}

// modeAliases maps accepted spellings to modes.
var modeAliases = map[string]Mode{
	"fast":     ModeFast,
	"double":   ModeFast,
	"float64":  ModeFast,
	"exact":    ModeExact,
	"big":      ModeExact,
	"mpfr":     ModeExact,
	"float32":  ModeFloat32,
	"float":    ModeFloat32,
	"rational": ModeRational,
	"mpq":      ModeRational,
}

// String returns the canonical name of the mode.
func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Supported reports whether the mode has a backend implementation.
func (m Mode) Supported() bool {
	return m == ModeFast || m == ModeExact
}

// ParseMode returns the mode named by s. Matching is case-insensitive and
// accepts a few aliases ("double", "mpfr", "mpq", ...).
func ParseMode(s string) (Mode, error) {
	if m, ok := modeAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Modes returns all declared modes in ascending order.
func Modes() []Mode {
	return []Mode{ModeFast, ModeExact, ModeFloat32, ModeRational}
}
