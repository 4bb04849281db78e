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

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/dimlayer/host"
	"seehuhn.de/go/dimlayer/session"
)

// Manual asks for the two ends of a dimension and for a point the
// dimension line is moved to, draws the line with arrowheads, and labels
// it with the text of an annotation picked by the operator.
//
// The line, the arrowheads and the label form one group.
func (a *Annotator) Manual(ctx context.Context) error {
	return a.run(ctx, OpManual, a.manual)
}

func (a *Annotator) manual(ctx context.Context, s *session.Session) error {
	h := a.Host

	p1, err := host.RequirePoint(ctx, h, "First point of the dimension", nil)
	if err != nil {
		return err
	}
	p2, err := host.RequirePoint(ctx, h, "Second point of the dimension", &p1)
	if err != nil {
		return err
	}
	line, err := s.Keep(h.AddLine(p1, p2))
	if err != nil {
		return err
	}
	to, err := host.RequirePoint(ctx, h, "Position of the dimension line", &p2)
	if err != nil {
		return err
	}
	if err := h.MoveObject(line, to.Sub(p2)); err != nil {
		return err
	}

	start, end, err := h.CurveEndpoints(line)
	if err != nil {
		return err
	}
	arrows, err := a.arrowPair(s, start, end)
	if err != nil {
		return err
	}

	ann, err := h.GetObject(ctx, "Dimension to copy the text from", host.KindAnnotation)
	if err != nil {
		return err
	}
	text, err := annotationText(h, ann)
	if err != nil {
		return err
	}
	mid, err := h.CurveMidpoint(line)
	if err != nil {
		return err
	}
	label, err := a.addLabel(s, text, mid)
	if err != nil {
		return err
	}

	for _, id := range []host.ObjectID{line, arrows[0], arrows[2]} {
		if err := h.SetObjectPrintWidth(id, a.Style.PrintWidth); err != nil {
			return err
		}
	}

	members := append([]host.ObjectID{line}, arrows...)
	members = append(members, label)
	_, err = s.Group(members...)
	return err
}

// annotationText returns the text shown by a text entity or a dimension.
func annotationText(h host.Objects, id host.ObjectID) (string, error) {
	kind, err := h.Kind(id)
	if err != nil {
		return "", err
	}
	switch kind {
	case host.KindText:
		return h.TextContent(id)
	case host.KindDimension:
		return h.DimensionText(id)
	default:
		return "", &host.PreconditionError{
			What: fmt.Sprintf("object %d is a %s, not an annotation", id, kind),
		}
	}
}

// addLabel places a new label centred at the given point.
func (a *Annotator) addLabel(s *session.Session, text string, at vec.Vec2) (host.ObjectID, error) {
	h := a.Host
	label, err := s.Keep(h.AddText(text, at, a.Style.textHeight()))
	if err != nil {
		return 0, err
	}
	if a.Style.Font != "" {
		if err := h.SetTextFont(label, a.Style.Font); err != nil {
			return 0, err
		}
	}
	if err := h.SetObjectColor(label, a.Style.Color); err != nil {
		return 0, err
	}
	return label, nil
}
