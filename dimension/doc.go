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

// Package dimension implements the annotation operations of a drawing
// office: aligned, linear, manual and isometric dimensions, and the human
// scale reference figure.
//
// Every operation runs inside a [session.Session].  All entities an
// operation creates end up on a fresh sub-layer of the base layer of the
// [Style], and everything is removed again if the operator cancels or a
// step fails.
//
// The operations are methods of [Annotator]:
//
//	a := &dimension.Annotator{Host: doc, Style: style}
//	err := a.Linear(ctx)
//
// The package level functions [Aligned], [Linear], [Manual], [Isometric]
// and [HumanScale] are shortcuts for one-off calls.
package dimension
