package common

import (
	"fmt"
	"math/big"
	"strings"
)

const (
	EtherDecimals = 18 // MATIC, Ez-POL and Ez-SUSHI all use 18 decimals (wei)
)

// WeiToEther converts wei to an ether string without float precision loss
func WeiToEther(wei *big.Int) string {
	return FormatUnits(wei, EtherDecimals)
}

// EtherToWei converts an ether string to wei without float precision loss
func EtherToWei(ether string) (*big.Int, error) {
	return ParseUnits(ether, EtherDecimals)
}

// FormatUnits converts a base-unit integer to a decimal string.
// Trailing zeros are trimmed but at least one fractional digit is kept.
// Example: FormatUnits(1500000000000000000, 18) = "1.5", FormatUnits(0, 18) = "0.0"
func FormatUnits(value *big.Int, decimals int) string {
	if value == nil {
		value = new(big.Int)
	}
	s := formatWithDecimals(value, decimals)
	if decimals == 0 {
		return s
	}
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}

// FormatFixed converts a base-unit integer to a decimal string with exactly
// places fractional digits, rounding half up.
// Example: FormatFixed(1234567, 6, 2) = "1.23"
func FormatFixed(value *big.Int, decimals, places int) string {
	if value == nil {
		value = new(big.Int)
	}
	if places >= decimals {
		s := formatWithDecimals(value, decimals)
		if decimals == 0 && places > 0 {
			s += "."
		}
		return s + strings.Repeat("0", places-decimals)
	}

	divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals-places)), nil)
	half := new(big.Int).Rsh(divisor, 1)
	rounded := new(big.Int).Add(value, half)
	rounded.Quo(rounded, divisor)

	return formatWithDecimals(rounded, places)
}

// ParseUnits converts a decimal string to a base-unit integer.
// Extra fractional digits beyond decimals are truncated.
func ParseUnits(s string, decimals int) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty string")
	}
	if strings.HasPrefix(s, "-") {
		return nil, fmt.Errorf("negative amount: %s", s)
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return nil, fmt.Errorf("invalid decimal format")
	}

	whole := parts[0]
	if whole == "" {
		whole = "0"
	}
	frac := ""
	if len(parts) == 2 {
		frac = parts[1]
	}

	// Pad or truncate fractional part to exact decimals
	if len(frac) < decimals {
		frac += strings.Repeat("0", decimals-len(frac))
	} else if len(frac) > decimals {
		frac = frac[:decimals]
	}

	n, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return nil, fmt.Errorf("invalid decimal format: %s", s)
	}
	return n, nil
}

// Units returns whole * 10^decimals
func Units(whole int64, decimals int) *big.Int {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	return scale.Mul(scale, big.NewInt(whole))
}

// CompareAmounts compares two decimal string amounts with the given decimals.
// Returns: -1 if a < b, 0 if a == b, 1 if a > b, and error if parsing fails
func CompareAmounts(a, b string, decimals int) (int, error) {
	aVal, err := ParseUnits(a, decimals)
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount '%s': %w", a, err)
	}

	bVal, err := ParseUnits(b, decimals)
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount '%s': %w", b, err)
	}

	return aVal.Cmp(bVal), nil
}

// ShortAddress renders 0x1234...abcd
func ShortAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}

// formatWithDecimals converts integer to decimal string by inserting decimal point
// Example: formatWithDecimals(24981836, 9) = "0.024981836"
func formatWithDecimals(value *big.Int, decimals int) string {
	s := value.String()
	if decimals == 0 {
		return s
	}

	// Pad with leading zeros if needed
	if len(s) <= decimals {
		s = strings.Repeat("0", decimals-len(s)+1) + s
	}

	// Insert decimal point
	pos := len(s) - decimals
	return s[:pos] + "." + s[pos:]
}
