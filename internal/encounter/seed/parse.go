package seed

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSeed indicates a seed string that is not a hex or decimal integer.
var ErrInvalidSeed = errors.New("invalid seed")

// Hex renders a packed seed as uppercase hexadecimal without a prefix.
func Hex(value uint64) string {
	return strings.ToUpper(strconv.FormatUint(value, 16))
}

// Parse reads a seed as displayed by audit tools.
//
// Hex is the default and may carry a 0x prefix. Decimal input needs a "d:"
// prefix, since a decimal string is also valid hex.
func Parse(value string) (uint64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidSeed)
	}

	base := 16
	digits := value
	switch lower := strings.ToLower(value); {
	case strings.HasPrefix(lower, "d:"):
		base = 10
		digits = value[2:]
	case strings.HasPrefix(lower, "0x"):
		digits = value[2:]
	}

	parsed, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrInvalidSeed, value, err)
	}
	return parsed, nil
}
