// Package units converts human denominated amounts to wei without
// floating point arithmetic.
package units

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/params"
	"github.com/trebuchet-org/deploykit/internal/domain"
)

// GasPriceUnit is the suffix required on gas price inputs.
const GasPriceUnit = "gwei"

// Unit is a named denomination and its size in wei.
type Unit struct {
	Name string
	Wei  *big.Int
}

// GWei is the gas price denomination.
var GWei = Unit{Name: GasPriceUnit, Wei: big.NewInt(params.GWei)}

// ParseGasPrice parses a gwei denominated gas price such as "5 gwei" or
// "3.5gwei" into wei.
func ParseGasPrice(s string) (*big.Int, error) {
	return ParseWithUnit(s, GWei, "gas price")
}

// ParseWithUnit parses "<decimal><unit>" into wei. The unit suffix is
// mandatory and matched case-insensitively; whitespace between number and
// unit is allowed. Values that are not an exact number of wei are rejected.
func ParseWithUnit(s string, unit Unit, field string) (*big.Int, error) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) < len(unit.Name) || !strings.EqualFold(trimmed[len(trimmed)-len(unit.Name):], unit.Name) {
		return nil, &domain.ConfigError{
			Field:  field,
			Value:  s,
			Reason: fmt.Sprintf("expected a value ending with %q, e.g. \"5 %s\"", unit.Name, unit.Name),
		}
	}

	number := strings.TrimSpace(trimmed[:len(trimmed)-len(unit.Name)])
	if number == "" {
		return nil, &domain.ConfigError{Field: field, Value: s, Reason: "missing amount"}
	}
	if !isDecimal(number) {
		return nil, &domain.ConfigError{Field: field, Value: s, Reason: "amount must be a non-negative decimal number"}
	}

	amount, ok := new(big.Rat).SetString(number)
	if !ok {
		return nil, &domain.ConfigError{Field: field, Value: s, Reason: "amount is not a number"}
	}

	wei := amount.Mul(amount, new(big.Rat).SetInt(unit.Wei))
	if !wei.IsInt() {
		return nil, &domain.ConfigError{
			Field:  field,
			Value:  s,
			Reason: fmt.Sprintf("amount has more precision than 1 wei (%s)", wei.FloatString(3)),
		}
	}
	return new(big.Int).Set(wei.Num()), nil
}

// Format renders wei in the given unit, trimming trailing zeros.
func Format(wei *big.Int, unit Unit) string {
	if wei == nil {
		return "0 " + unit.Name
	}
	r := new(big.Rat).SetFrac(wei, unit.Wei)
	s := r.FloatString(18)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s + " " + unit.Name
}

// isDecimal reports whether s is digits with at most one decimal point.
// big.Rat alone would also accept fractions ("1/2") and exponents.
func isDecimal(s string) bool {
	dot := false
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return digits > 0
}
