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

import "errors"

// FractionalFormat specifies how fractional values are displayed.
type FractionalFormat byte

const (
	FractionDecimal  FractionalFormat = 0 // show as decimal
	FractionFraction FractionalFormat = 1 // show as fraction
	FractionRound    FractionalFormat = 2 // round to whole unit
	FractionTruncate FractionalFormat = 3 // truncate to whole unit
)

// NumberFormat describes how a length is shown in one unit.
type NumberFormat struct {
	// Unit is the unit label, for example "cm" or `"`.
	Unit string

	// ConversionFactor converts from the previous unit, or from model
	// units for the first format, to this unit.
	ConversionFactor float64

	// Precision is a power of ten giving the number of decimals for
	// decimal display, or the denominator for fractions.
	Precision int

	// FractionFormat specifies how fractional values are shown.
	FractionFormat FractionalFormat

	// ForceExactFraction prevents reduction of fractions.
	ForceExactFraction bool

	// ThousandsSeparator is inserted between groups of three digits.
	ThousandsSeparator string

	// DecimalSeparator replaces the decimal point.
	// An empty string uses ".".
	DecimalSeparator string

	// Spacing is inserted between the number and the unit label.
	Spacing string

	// PrefixLabel places the unit label before the number.
	PrefixLabel bool
}

// Centimetres shows millimetre values as centimetres with one decimal and a
// decimal comma.
var Centimetres = &NumberFormat{
	Unit:             "cm",
	ConversionFactor: 0.1,
	Precision:        10,
	DecimalSeparator: ",",
	Spacing:          " ",
}

// Inches shows millimetre values as inches with one decimal and a decimal
// comma, using the inch sign as unit label.
var Inches = &NumberFormat{
	Unit:             `"`,
	ConversionFactor: 1 / 25.4,
	Precision:        10,
	DecimalSeparator: ",",
}

var errPrecision = errors.New("measure: precision must be positive")

// decimals returns the number of decimal places for decimal display.
func (nf *NumberFormat) decimals() int {
	n := 0
	for p := nf.Precision; p >= 10; p /= 10 {
		n++
	}
	return n
}

func (nf *NumberFormat) decimalSeparator() string {
	if nf.DecimalSeparator == "" {
		return "."
	}
	return nf.DecimalSeparator
}

// label attaches the unit label to a formatted number.
func (nf *NumberFormat) label(num string) string {
	if nf.Unit == "" {
		return num
	}
	if nf.PrefixLabel {
		return nf.Unit + nf.Spacing + num
	}
	return num + nf.Spacing + nf.Unit
}
