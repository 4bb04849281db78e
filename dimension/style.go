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

package dimension

import (
	"errors"

	"seehuhn.de/go/dimlayer/host"
)

// Default values used for zero fields of a [Style].
const (
	DefaultDimStyle    = "Base"
	DefaultArrowLength = 10.0
	DefaultArrowAngle  = 150.0
	DefaultTextHeight  = 35.0
)

// Style describes the look of the annotations of one brand.
type Style struct {
	// Name identifies the style, for example "DEPOT".  It is used in the
	// name of the human scale layer.
	Name string

	// BaseLayer is the layer which collects the annotation sub-layers.
	BaseLayer string

	// Color and PrintWidth apply to the layers, the curves and the labels.
	Color      host.Color
	PrintWidth float64

	// Font and TextHeight are applied to labels.  If TextHeight is zero,
	// exploded dimension labels keep their height and new labels use
	// DefaultTextHeight.
	Font       string
	TextHeight float64

	// DimStyle is the dimension style used while dimensioning.
	DimStyle string

	// ArrowLength is the length of the wings of drawn arrowheads.
	// ArrowAngle is the angle in degrees between a wing and the direction
	// the arrow points to.
	ArrowLength float64
	ArrowAngle  float64

	// Prefix (optional) is the prefix of sub-layer names.
	Prefix string
}

// Check reports missing or invalid fields of s.
func (s *Style) Check() error {
	if s == nil {
		return errors.New("missing style")
	}
	if s.Name == "" {
		return errors.New("style without name")
	}
	if s.BaseLayer == "" {
		return errors.New("style " + s.Name + ": missing base layer")
	}
	if s.PrintWidth < 0 || s.TextHeight < 0 || s.ArrowLength < 0 {
		return errors.New("style " + s.Name + ": negative size")
	}
	return nil
}

func (s *Style) dimStyle() string {
	if s.DimStyle == "" {
		return DefaultDimStyle
	}
	return s.DimStyle
}

func (s *Style) arrowLength() float64 {
	if s.ArrowLength <= 0 {
		return DefaultArrowLength
	}
	return s.ArrowLength
}

func (s *Style) arrowAngle() float64 {
	if s.ArrowAngle == 0 {
		return DefaultArrowAngle
	}
	return s.ArrowAngle
}

func (s *Style) textHeight() float64 {
	if s.TextHeight <= 0 {
		return DefaultTextHeight
	}
	return s.TextHeight
}
