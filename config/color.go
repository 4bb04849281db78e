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

package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"seehuhn.de/go/dimlayer/host"
)

// Color is a layer colour in a configuration file.  It is written either
// as "#rrggbb" or as a list of three integers.
type Color host.Color

// UnmarshalYAML implements the [yaml.Unmarshaler] interface.
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		col, err := parseHex(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*c = col
		return nil
	case yaml.SequenceNode:
		var rgb []int
		if err := node.Decode(&rgb); err != nil {
			return err
		}
		if len(rgb) != 3 {
			return fmt.Errorf("line %d: colour needs 3 components, got %d", node.Line, len(rgb))
		}
		var comp [3]uint8
		for i, v := range rgb {
			if v < 0 || v > 255 {
				return fmt.Errorf("line %d: colour component %d out of range", node.Line, v)
			}
			comp[i] = uint8(v)
		}
		*c = Color{R: comp[0], G: comp[1], B: comp[2]}
		return nil
	default:
		return fmt.Errorf("line %d: invalid colour", node.Line)
	}
}

// MarshalYAML implements the [yaml.Marshaler] interface.
func (c Color) MarshalYAML() (any, error) {
	return host.Color(c).Hex(), nil
}

func parseHex(s string) (Color, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid colour %q", s)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}
