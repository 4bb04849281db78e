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

package host

import (
	"fmt"
	"strings"
)

// ObjectID identifies an entity in a host document.
// The zero value never refers to an entity.
type ObjectID uint64

// Kind describes the type of an entity.
type Kind uint8

// These are the entity kinds known to annotation sessions.
const (
	KindUnknown Kind = iota
	KindLine
	KindPolyline
	KindText
	KindHatch
	KindDimension
)

// KindAnnotation is used with [Prompter.GetObject] to accept either text or
// dimension objects.
const KindAnnotation Kind = 255

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindPolyline:
		return "polyline"
	case KindText:
		return "text"
	case KindHatch:
		return "hatch"
	case KindDimension:
		return "dimension"
	case KindAnnotation:
		return "annotation"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// IsCurve reports whether entities of this kind have curve geometry.
func (k Kind) IsCurve() bool {
	return k == KindLine || k == KindPolyline
}

// Matches reports whether an entity of kind k is acceptable where
// an entity of kind want is requested.
func (k Kind) Matches(want Kind) bool {
	if want == KindAnnotation {
		return k == KindText || k == KindDimension
	}
	return k == want
}

// Color is an 8-bit sRGB colour.
type Color struct {
	R, G, B uint8
}

// Black is the colour (0, 0, 0).
var Black = Color{}

// RGB returns the colour with the given components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Hex returns the colour in "#rrggbb" notation.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.R, c.G, c.B)
}

// Separator separates the components of a full layer name.
const Separator = "::"

// LayerPath returns the full name of the layer child below parent.
// If parent is empty, child is returned unchanged.
func LayerPath(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + Separator + child
}

// SplitLayerPath splits a full layer name into the name of the parent
// layer and the short name of the layer.  For top-level layers the parent
// is empty.
func SplitLayerPath(name string) (parent, short string) {
	idx := strings.LastIndex(name, Separator)
	if idx < 0 {
		return "", name
	}
	return name[:idx], name[idx+len(Separator):]
}
