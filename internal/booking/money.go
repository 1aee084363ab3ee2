package booking

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidPrice is returned when a price is not a non-negative number.
var ErrInvalidPrice = errors.New("price must be a non-negative number")

// Money is a non-negative amount held in cents.
type Money int64

// ParseMoney parses user input such as "15", "15.5", "15,50" or "€15.00".
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "€")
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, ErrInvalidPrice
	}

	// Plain decimals only: no signs, exponents, hex or NaN/Inf spellings
	if strings.Trim(s, "0123456789.") != "" {
		return 0, ErrInvalidPrice
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidPrice
	}
	return MoneyFromFloat(f)
}

// MoneyFromFloat converts a decimal amount to Money, rounding to the nearest cent.
// Negative, NaN, infinite and out of range amounts return ErrInvalidPrice.
func MoneyFromFloat(f float64) (Money, error) {
	if math.IsNaN(f) || f < 0 {
		return 0, ErrInvalidPrice
	}
	cents := f*100 + 0.5
	if cents >= math.MaxInt64 {
		return 0, ErrInvalidPrice
	}
	return Money(cents), nil
}

// Float returns the amount as a decimal number.
func (m Money) Float() float64 {
	return float64(m) / 100
}

// String formats the amount with two decimals, e.g. "15.00".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", int64(m)/100, int64(m)%100)
}

// Format formats the amount with a currency symbol prefix, e.g. "€15.00".
func (m Money) Format(currency string) string {
	return currency + m.String()
}
