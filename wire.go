package hyperliquid

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FloatToWire renders a float as the shortest decimal string that round-trips
// within the venue's eight decimal places of precision. Inputs that would be
// altered by the rounding are rejected rather than silently truncated.
func FloatToWire(x float64) (string, error) {
	rounded := fmt.Sprintf("%.8f", x)
	parsed, err := strconv.ParseFloat(rounded, 64)
	if err != nil {
		return "", fmt.Errorf("%w: reparse %q: %w", ErrEncoding, rounded, err)
	}
	if math.Abs(parsed-x) >= 1e-12 {
		return "", fmt.Errorf("%w: float_to_wire causes rounding: %v", ErrEncoding, x)
	}
	if parsed == 0 {
		// Covers negative zero as well.
		return "0", nil
	}
	return decimal.NewFromFloat(parsed).String(), nil
}

func floatToInt(x float64, power int) (int64, error) {
	withDecimals := x * math.Pow10(power)
	rounded := math.Round(withDecimals)
	if math.Abs(rounded-withDecimals) >= 1e-3 {
		return 0, fmt.Errorf("%w: float_to_int causes rounding: %v", ErrEncoding, x)
	}
	return int64(rounded), nil
}

// FloatToIntForHashing scales a quantity by 1e8 and rounds to the nearest
// integer, for action fields the venue hashes as integers.
func FloatToIntForHashing(x float64) (int64, error) {
	return floatToInt(x, 8)
}

// FloatToUSDInt scales a USD-denominated amount by 1e6 and rounds to the
// nearest integer.
func FloatToUSDInt(x float64) (int64, error) {
	return floatToInt(x, 6)
}

// addressToBytes decodes a 0x-prefixed hex address into its 20 raw bytes.
// Anything that does not decode to exactly 20 bytes fails; the hash input is
// never zero-padded.
func addressToBytes(addr string) ([]byte, error) {
	trimmed := strings.TrimPrefix(strings.ToLower(addr), "0x")
	raw, err := hex.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: decode address %q: %w", ErrEncoding, addr, err)
	}
	if len(raw) != 20 {
		return nil, fmt.Errorf("%w: %q", errInvalidAddressLength, addr)
	}
	return raw, nil
}
