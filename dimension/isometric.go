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
	"context"
	"fmt"
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/dimlayer/host"
	"seehuhn.de/go/dimlayer/session"
)

// Names of the measured edges of an isometric view, in drawing order.
var (
	edges2 = []string{"Altura", "Anchura"}
	edges3 = []string{"Altura", "Profundidad", "Anchura"}
)

// Isometric dimensions the edges of an isometric view.
//
// The operator draws a polyline along two or three edges of the view
// (height, optional depth, and width), and picks two points whose distance
// gives the offset of the dimension lines.  The polyline is replaced by an
// offset copy, and for every segment the operator picks an annotation
// whose text is copied to the midpoint of the segment.
func (a *Annotator) Isometric(ctx context.Context) error {
	return a.run(ctx, OpIsometric, a.isometric)
}

func (a *Annotator) isometric(ctx context.Context, s *session.Session) error {
	h := a.Host

	h.ShowMessage("Draw the edges to dimension: height, depth (optional), width.")
	draw := host.DrawPolyline{}
	res, err := s.Run(ctx, draw)
	if err != nil {
		return err
	}
	polys := res.OfKind(h, host.KindPolyline)
	if len(polys) != 1 {
		return &host.UnexpectedResultError{
			Command: draw.CommandName(),
			Want:    "one polyline",
			Got:     len(polys),
		}
	}
	source := polys[0]

	vertices, err := h.PolylineVertices(source)
	if err != nil {
		return err
	}
	var names []string
	switch len(vertices) - 1 {
	case 2:
		names = edges2
	case 3:
		names = edges3
	default:
		return &host.PreconditionError{
			What: fmt.Sprintf("polyline has %d segments, need 2 or 3", len(vertices)-1),
		}
	}
	for i := 1; i < len(vertices); i++ {
		if vertices[i].Sub(vertices[i-1]).Length() < tipTolerance {
			return &host.PreconditionError{
				What: fmt.Sprintf("segment %d of the polyline has zero length", i),
			}
		}
	}

	from, err := host.RequirePoint(ctx, h, "Start of the offset distance", nil)
	if err != nil {
		return err
	}
	to, err := host.RequirePoint(ctx, h, "End of the offset distance", &from)
	if err != nil {
		return err
	}
	dist := to.Sub(from).Length()
	if dist < tipTolerance {
		return &host.PreconditionError{What: "offset distance is zero"}
	}

	off := host.Offset{Curve: source, Distance: dist, Side: to}
	res, err = s.Run(ctx, off)
	if err != nil {
		return err
	}
	if len(res.Created) != 1 {
		return &host.UnexpectedResultError{
			Command: off.CommandName(),
			Want:    "one curve",
			Got:     len(res.Created),
		}
	}
	moved := res.Created[0]
	if err := h.SetObjectColor(moved, a.Style.Color); err != nil {
		return err
	}
	if err := h.SetObjectPrintWidth(moved, a.Style.PrintWidth); err != nil {
		return err
	}

	vertices, err = h.PolylineVertices(moved)
	if err != nil {
		return err
	}
	if len(vertices) != len(names)+1 || !finite(vertices) {
		return &host.UnexpectedResultError{
			Command: off.CommandName(),
			Want:    fmt.Sprintf("a polyline with %d segments", len(names)),
			Got:     -1,
		}
	}

	members := []host.ObjectID{moved}
	for i, name := range names {
		ann, err := h.GetObject(ctx, "Annotation for "+name, host.KindAnnotation)
		if err != nil {
			return err
		}
		text, err := annotationText(h, ann)
		if err != nil {
			return err
		}
		label, err := a.addLabel(s, text, midpoint(vertices[i], vertices[i+1]))
		if err != nil {
			return err
		}
		members = append(members, label)
	}

	if err := h.DeleteObject(source); err != nil {
		return err
	}
	_, err = s.Group(members...)
	return err
}

func finite(points []vec.Vec2) bool {
	for _, p := range points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return false
		}
	}
	return true
}

func midpoint(p, q vec.Vec2) vec.Vec2 {
	return p.Add(q).Mul(0.5)
}
