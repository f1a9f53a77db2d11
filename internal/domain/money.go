package domain

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Money is an amount in cents. It travels over JSON as a decimal number (19.99).
type Money int64

// Cents builds Money from a whole cent amount.
func Cents(v int64) Money { return Money(v) }

func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	raw := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	if raw == "" || raw == "null" {
		*m = 0
		return nil
	}
	v, err := ParseMoney(raw)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseMoney parses a decimal string into cents. Digits beyond the second
// fractional place are rounded half-even.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, "eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("parse money %q: %w", s, err)
		}
		s = strconv.FormatFloat(f, 'f', -1, 64)
	}
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimLeft(s, "+-")
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if !digitsOnly(whole) || !digitsOnly(frac) {
		return 0, errors.New("parse money: invalid amount " + s)
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse money %q: %w", s, err)
	}
	padded := frac + "000"
	cents, _ := strconv.ParseInt(padded[:2], 10, 64)
	total := units*100 + cents

	rest := strings.TrimRight(frac, "0")
	if len(rest) > 2 {
		first := rest[2]
		tail := strings.TrimRight(rest[3:], "0")
		switch {
		case first > '5', first == '5' && tail != "":
			total++
		case first == '5' && total%2 == 1:
			total++
		}
	}
	if neg {
		total = -total
	}
	return Money(total), nil
}

// Times multiplies an amount by a quantity.
func (m Money) Times(n int) Money {
	return m * Money(n)
}

// Percent applies a rate expressed in basis points, rounding half-even to the cent.
func (m Money) Percent(basisPoints int64) Money {
	num := int64(m) * basisPoints
	q, r := num/10000, num%10000
	if r < 0 {
		r = -r
	}
	switch {
	case r*2 > 10000, r*2 == 10000 && q%2 != 0:
		if num < 0 {
			q--
		} else {
			q++
		}
	}
	return Money(q)
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
