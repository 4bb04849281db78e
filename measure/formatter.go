// seehuhn.de/go/dimlayer - scoped layer sessions for dimension drawings
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package measure

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// eps absorbs rounding errors when splitting a value into whole units.
const eps = 1e-9

// Format converts a length into text, using the given chain of number
// formats.
//
// Every format except the last one shows the whole units of the value and
// passes the remainder on to the next format.  The last format shows the
// remaining value according to its FractionFormat.  Parts which are zero
// are omitted, unless the whole value is zero.
func Format(value float64, formats []*NumberFormat) (string, error) {
	if len(formats) == 0 {
		return "", errors.New("measure: no number formats provided")
	}
	for _, nf := range formats {
		if nf.FractionFormat == FractionFraction && nf.Precision <= 0 {
			return "", errPrecision
		}
	}

	v := math.Abs(value)
	var parts []string
	for i, nf := range formats {
		v *= nf.ConversionFactor
		if i == len(formats)-1 {
			if s := nf.formatLast(v); s != "" {
				parts = append(parts, s)
			}
			break
		}

		whole := math.Floor(v + eps)
		if whole > 0 {
			parts = append(parts, nf.label(nf.integer(int64(whole))))
		}
		v = max(v-whole, 0)
		if v < eps {
			break
		}
	}

	if len(parts) == 0 {
		last := formats[len(formats)-1]
		return last.label("0"), nil
	}
	res := strings.Join(parts, " ")
	if value < 0 {
		res = "-" + res
	}
	return res, nil
}

// formatLast formats the remaining value with the last format of a chain.
// The result is empty if the value rounds to zero, except in decimal mode.
func (nf *NumberFormat) formatLast(v float64) string {
	switch nf.FractionFormat {
	case FractionRound:
		n := int64(math.Round(v))
		if n == 0 {
			return ""
		}
		return nf.label(nf.integer(n))
	case FractionTruncate:
		n := int64(math.Floor(v + eps))
		if n == 0 {
			return ""
		}
		return nf.label(nf.integer(n))
	case FractionFraction:
		return nf.fraction(v)
	default:
		return nf.label(nf.decimal(v))
	}
}

// decimal formats v with the configured number of decimals.
func (nf *NumberFormat) decimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', nf.decimals(), 64)
	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	intPart = nf.group(intPart)
	if !hasFrac {
		return intPart
	}
	return intPart + nf.decimalSeparator() + fracPart
}

// fraction formats v as a whole number followed by a fraction with
// denominator nf.Precision.
func (nf *NumberFormat) fraction(v float64) string {
	whole := int64(math.Floor(v + eps))
	den := int64(nf.Precision)
	num := int64(math.Round((v - float64(whole)) * float64(den)))
	if num >= den {
		whole++
		num = 0
	} else if num < 0 {
		num = 0
	}
	if num > 0 && !nf.ForceExactFraction {
		g := greatestCommonDivisor(num, den)
		num /= g
		den /= g
	}

	var s string
	switch {
	case whole == 0 && num == 0:
		return ""
	case num == 0:
		s = nf.integer(whole)
	case whole == 0:
		s = strconv.FormatInt(num, 10) + "/" + strconv.FormatInt(den, 10)
	default:
		s = nf.integer(whole) + " " + strconv.FormatInt(num, 10) + "/" + strconv.FormatInt(den, 10)
	}
	return nf.label(s)
}

func (nf *NumberFormat) integer(n int64) string {
	return nf.group(strconv.FormatInt(n, 10))
}

// group inserts the thousands separator into a string of digits.
func (nf *NumberFormat) group(digits string) string {
	if nf.ThousandsSeparator == "" || len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteString(nf.ThousandsSeparator)
		}
		b.WriteRune(c)
	}
	return b.String()
}

// greatestCommonDivisor calculates the GCD of two integers.
func greatestCommonDivisor(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}

// Label returns the two-line dimension label for a length given in
// millimetres: the length in centimetres on the first line and in inches
// on the second, for example "12,3 cm\n4,8\"".
func Label(mm float64) string {
	cm, _ := Format(mm, []*NumberFormat{Centimetres})
	in, _ := Format(mm, []*NumberFormat{Inches})
	return cm + "\n" + in
}
