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
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/dimlayer/host"
	"seehuhn.de/go/dimlayer/session"
)

// solid is the hatch pattern used to fill arrowheads.
const solid = "Solid"

// arrowPoints returns the closed outline of an arrowhead with its point at
// tip, pointing in direction dir.  The wings have the given length and
// enclose the given angle with dir.
func arrowPoints(tip, dir vec.Vec2, length, angle float64) []vec.Vec2 {
	u := dir.Normalize().Mul(length)
	x1, y1 := matrix.RotateDeg(angle).Apply(u.X, u.Y)
	x2, y2 := matrix.RotateDeg(-angle).Apply(u.X, u.Y)
	return []vec.Vec2{
		tip,
		tip.Add(vec.Vec2{X: x1, Y: y1}),
		tip.Add(vec.Vec2{X: x2, Y: y2}),
		tip,
	}
}

// arrow draws a filled arrowhead.  It returns the outline and the hatch.
func (a *Annotator) arrow(s *session.Session, tip, dir vec.Vec2) (curve, hatch host.ObjectID, err error) {
	h := a.Host
	if dir.Length() < tipTolerance {
		return 0, 0, &host.PreconditionError{What: "arrow without direction"}
	}

	pts := arrowPoints(tip, dir, a.Style.arrowLength(), a.Style.arrowAngle())
	curve, err = s.Keep(h.AddPolyline(pts))
	if err != nil {
		return 0, 0, err
	}
	hatch, err = s.Keep(h.AddHatch(curve, solid))
	if err != nil {
		return 0, 0, err
	}
	for _, id := range []host.ObjectID{curve, hatch} {
		if err := h.SetObjectColor(id, a.Style.Color); err != nil {
			return 0, 0, err
		}
	}
	return curve, hatch, nil
}

// arrowPair draws arrowheads at both ends of the segment from start to
// end, pointing outwards.  The result lists the outline and the hatch of
// the start arrow, followed by those of the end arrow.
func (a *Annotator) arrowPair(s *session.Session, start, end vec.Vec2) ([]host.ObjectID, error) {
	u := end.Sub(start)
	c1, h1, err := a.arrow(s, start, u.Mul(-1))
	if err != nil {
		return nil, err
	}
	c2, h2, err := a.arrow(s, end, u)
	if err != nil {
		return nil, err
	}
	return []host.ObjectID{c1, h1, c2, h2}, nil
}
