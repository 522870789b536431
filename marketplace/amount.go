package marketplace

import (
	"math/big"
	"strings"
)

// FormatAmount renders v as a fixed-point decimal with the given number of
// fractional digits, trimming trailing zeros. A nil amount renders as "0".
func FormatAmount(v *big.Int, decimals int) string {
	if v == nil {
		return "0"
	}
	if decimals <= 0 {
		return v.String()
	}

	abs := new(big.Int).Abs(v)
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).QuoRem(abs, scale, new(big.Int))

	var sb strings.Builder
	if v.Sign() < 0 {
		sb.WriteByte('-')
	}
	sb.WriteString(whole.String())
	if frac.Sign() != 0 {
		digits := frac.String()
		digits = strings.Repeat("0", decimals-len(digits)) + digits
		sb.WriteByte('.')
		sb.WriteString(strings.TrimRight(digits, "0"))
	}
	return sb.String()
}

// PriceSymbol is the token prices are denominated in.
const PriceSymbol = "STRK"

// FormatPrice renders a listing price for display: "Free" for zero, otherwise
// rounded to 6 places below 0.001, 4 places below 1 and 2 places above that,
// followed by PriceSymbol.
func FormatPrice(v *big.Int, decimals int) string {
	if v == nil || v.Sign() == 0 {
		return "Free"
	}
	if decimals < 0 {
		decimals = 0
	}
	unit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	abs := new(big.Int).Abs(v)

	places := 2
	switch {
	case new(big.Int).Mul(abs, big.NewInt(1000)).Cmp(unit) < 0:
		places = 6
	case abs.Cmp(unit) < 0:
		places = 4
	}
	return formatFixed(v, decimals, places) + " " + PriceSymbol
}

// formatFixed renders v / 10^decimals rounded half away from zero to exactly
// places fractional digits.
func formatFixed(v *big.Int, decimals, places int) string {
	scaled := new(big.Int).Abs(v)
	if places >= decimals {
		scaled.Mul(scaled, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(places-decimals)), nil))
	} else {
		div := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals-places)), nil)
		rem := new(big.Int)
		scaled.QuoRem(scaled, div, rem)
		if rem.Lsh(rem, 1).Cmp(div) >= 0 {
			scaled.Add(scaled, big.NewInt(1))
		}
	}

	digits := scaled.String()
	if len(digits) <= places {
		digits = strings.Repeat("0", places-len(digits)+1) + digits
	}
	var sb strings.Builder
	if v.Sign() < 0 {
		sb.WriteByte('-')
	}
	sb.WriteString(digits[:len(digits)-places])
	if places > 0 {
		sb.WriteByte('.')
		sb.WriteString(digits[len(digits)-places:])
	}
	return sb.String()
}
