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

// Package measure formats lengths for dimension labels.
//
// A [NumberFormat] describes how a value is shown in one unit: the
// conversion factor from the previous unit, the precision, the separators
// and the position of the unit label.  [Format] applies a chain of number
// formats, so that a length can be shown in mixed units:
//
//	feet := &measure.NumberFormat{
//		Unit:             "ft",
//		ConversionFactor: 1,
//		Precision:        1,
//		Spacing:          " ",
//	}
//	inch := &measure.NumberFormat{
//		Unit:             "in",
//		ConversionFactor: 12,
//		Precision:        8,
//		FractionFormat:   measure.FractionFraction,
//		Spacing:          " ",
//	}
//	s, err := measure.Format(1.75, []*measure.NumberFormat{feet, inch})
//	// s == "1 ft 9 in"
//
// Dimension labels show the measured length, given in millimetres, both in
// centimetres and in inches.  [Label] produces this text.
package measure
