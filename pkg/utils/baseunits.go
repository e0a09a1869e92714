package utils

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// NativeDecimals is the number of decimals of the chain's native currency.
const NativeDecimals = 18

// ToBaseUnits converts a human-readable price into the chain's base unit
// (wei-equivalent). The conversion goes through the decimal string form so
// that integer prices map to exact base-unit amounts instead of picking up
// binary float drift.
func ToBaseUnits(amount float64) (*big.Int, error) {
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, fmt.Errorf("invalid amount %v", amount)
	}

	s := strconv.FormatFloat(amount, 'f', -1, 64)
	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) > NativeDecimals {
		frac = frac[:NativeDecimals]
	}
	frac += strings.Repeat("0", NativeDecimals-len(frac))

	wei, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return nil, fmt.Errorf("unparseable amount %q", s)
	}
	return wei, nil
}

// ApplyMarkup scales a base-unit amount by a markup factor using integer
// math, so a factor of 1.2 on 10 whole units yields exactly 12 whole units.
// The factor is taken with four decimal places of precision.
func ApplyMarkup(wei *big.Int, factor float64) *big.Int {
	num := big.NewInt(int64(math.Round(factor * 10000)))
	out := new(big.Int).Mul(wei, num)
	return out.Div(out, big.NewInt(10000))
}
