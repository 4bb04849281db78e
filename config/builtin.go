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
	"seehuhn.de/go/dimlayer/dimension"
	"seehuhn.de/go/dimlayer/host"
)

// Builtin returns the styles of the supported brands, indexed by [Key].
// Every call returns new values, which the caller may modify.
func Builtin() map[string]*dimension.Style {
	styles := []*dimension.Style{
		{
			Name:       "B\u00c1SICO",
			BaseLayer:  "Cotas B\u00c1SICO",
			Color:      host.RGB(255, 5, 5),
			PrintWidth: 2,
			Font:       "LibelSuitRg-Regular",
			TextHeight: 40,
		},
		{
			Name:       "DEPOT",
			BaseLayer:  "Cotas DEPOT",
			Color:      host.Black,
			PrintWidth: 1.1,
			Font:       "Kanit-Regular",
			TextHeight: 35,
		},
		{
			Name:       "TU-HOME",
			BaseLayer:  "Cotas TU-HOME",
			Color:      host.Black,
			PrintWidth: 2,
			Font:       "Myriad Pro",
			TextHeight: 30,
		},
		{
			Name:       "WE-HAVE",
			BaseLayer:  "Cotas WE-HAVE",
			Color:      host.RGB(231, 91, 103),
			PrintWidth: 2,
			Font:       "MADETommySoft-Light",
			TextHeight: 35,
		},
		{
			Name:       "FM-FURNITURE",
			BaseLayer:  "Cotas FM",
			Color:      host.RGB(237, 118, 32),
			PrintWidth: 2,
			Font:       "Bahnschrift",
			TextHeight: 40,
		},
	}

	res := make(map[string]*dimension.Style, len(styles))
	for _, st := range styles {
		st.DimStyle = dimension.DefaultDimStyle
		res[Key(st.Name)] = st
	}
	return res
}
