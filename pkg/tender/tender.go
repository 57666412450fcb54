package tender

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrInvalidAmount is returned when a string is not a decimal amount with at most two fraction digits.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNegativeAmount is returned for amounts below zero.
	ErrNegativeAmount = errors.New("amount must not be negative")
	// ErrInsufficientCash is returned when the cash given is positive but below the total.
	ErrInsufficientCash = errors.New("cash amount is less than total")
)

// Currency is the prefix used by Format.
const Currency = "Rs."

// maxUnits is the largest whole part that still fits with two decimals.
const maxUnits = (math.MaxInt64 - 99) / 100

// Amount is a money value in minor units.
type Amount int64

// Cents returns the amount for a number of minor units.
func Cents(c int64) Amount { return Amount(c) }

// Rupees returns the amount for whole units and cents.
func Rupees(units, cents int64) Amount { return Amount(units*100 + cents) }

// Parse reads an amount such as "1250.5", "1,250.50" or "Rs. 99". Thousands
// separators and the currency prefix are ignored.
func Parse(s string) (Amount, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, Currency))
	raw = strings.ReplaceAll(raw, ",", "")
	if raw == "" {
		return 0, errors.Join(ErrInvalidAmount, fmt.Errorf("empty amount %q", s))
	}

	neg := false
	if raw[0] == '-' {
		neg = true
		raw = raw[1:]
	}

	whole, frac, hasFrac := strings.Cut(raw, ".")
	if whole == "" && !hasFrac || hasFrac && (frac == "" && whole == "" || len(frac) > 2) {
		return 0, errors.Join(ErrInvalidAmount, fmt.Errorf("malformed amount %q", s))
	}
	if whole == "" {
		whole = "0"
	}
	if !digitsOnly(whole) || !digitsOnly(frac) {
		return 0, errors.Join(ErrInvalidAmount, fmt.Errorf("malformed amount %q", s))
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, errors.Join(ErrInvalidAmount, err)
	}
	if units > maxUnits {
		return 0, errors.Join(ErrInvalidAmount, fmt.Errorf("amount %q out of range", s))
	}
	for len(frac) < 2 {
		frac += "0"
	}
	cents, _ := strconv.ParseInt(frac, 10, 64)

	a := Rupees(units, cents)
	if neg {
		a = -a
	}
	return a, nil
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// String formats the amount as "Rs. 1250.50".
func (a Amount) String() string { return Format(a) }

// Format renders a with two decimals and the currency prefix, without
// thousands separators.
func Format(a Amount) string {
	sign := ""
	v := int64(a)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s %s%d.%02d", Currency, sign, v/100, v%100)
}

// Change returns the change due for cash given against total. It is never negative.
func Change(total, cash Amount) Amount {
	return max(cash-total, 0)
}

// Validate checks a tender. Cash of zero passes; cash that is positive but
// short of the total fails with ErrInsufficientCash.
func Validate(total, cash Amount) error {
	if total < 0 || cash < 0 {
		return ErrNegativeAmount
	}
	if cash > 0 && cash < total {
		return errors.Join(ErrInsufficientCash,
			fmt.Errorf("short by %s", Format(total-cash)))
	}
	return nil
}
