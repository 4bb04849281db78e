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
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/dimlayer/host"
	"seehuhn.de/go/dimlayer/measure"
	"seehuhn.de/go/dimlayer/session"
)

// tipTolerance is the largest distance at which a curve end counts as
// touching an arrow tip.
const tipTolerance = 1e-6

// Aligned asks for two points and the position of the dimension line, and
// adds an exploded dimension showing the distance in centimetres and
// inches.
//
// The parts of the dimension are left on the sub-layer: the label, the
// extension lines and the dimension line, which is put into a group of
// its own.  Labels of dimension lines which are closer to vertical than to
// horizontal are turned by 90 degrees.
func (a *Annotator) Aligned(ctx context.Context) error {
	return a.run(ctx, OpAligned, func(ctx context.Context, s *session.Session) error {
		return a.dimension(ctx, s, host.AlignedDim{}, false)
	})
}

// Linear works like [Annotator.Aligned], but the dimension is horizontal
// or vertical, and filled arrowheads are drawn at both ends of the
// dimension line.  The arrowheads are grouped with the line.
func (a *Annotator) Linear(ctx context.Context) error {
	return a.run(ctx, OpLinear, func(ctx context.Context, s *session.Session) error {
		return a.dimension(ctx, s, host.LinearDim{}, true)
	})
}

func (a *Annotator) dimension(ctx context.Context, s *session.Session, cmd host.Command, arrows bool) error {
	h := a.Host

	res, err := s.Run(ctx, cmd)
	if err != nil {
		return err
	}
	dims := res.OfKind(h, host.KindDimension)
	if len(dims) != 1 {
		return &host.UnexpectedResultError{
			Command: cmd.CommandName(),
			Want:    "one dimension",
			Got:     len(dims),
		}
	}
	dim := dims[0]

	value, err := h.DimensionValue(dim)
	if err != nil {
		return err
	}
	err = h.SetDimensionText(dim, measure.Label(value))
	if err != nil {
		return err
	}

	explode := host.Explode{Target: dim}
	res, err = s.Run(ctx, explode)
	if err != nil {
		return err
	}
	p, err := sortParts(h, res.Created)
	if err != nil {
		return err
	}
	if len(p.texts) != 1 {
		return &host.UnexpectedResultError{
			Command: explode.CommandName(),
			Want:    "one label",
			Got:     len(p.texts),
		}
	}
	label := p.texts[0]

	box, err := h.BoundingBox(label)
	if err != nil {
		return err
	}
	line, ok := dimensionLine(h, p.open, p.tips, center(box))
	if !ok {
		return &host.UnexpectedResultError{
			Command: explode.CommandName(),
			Want:    "a dimension line",
			Got:     len(p.open),
		}
	}
	for _, id := range p.closed {
		if err := h.DeleteObject(id); err != nil {
			return err
		}
	}

	curves := p.open
	members := []host.ObjectID{line}
	if arrows {
		start, end, err := h.CurveEndpoints(line)
		if err != nil {
			return err
		}
		ids, err := a.arrowPair(s, start, end)
		if err != nil {
			return err
		}
		members = append(members, ids...)
		curves = append(curves, ids[0], ids[2])
	}
	if _, err := s.Group(members...); err != nil {
		return err
	}

	if err := a.placeLabel(label, line); err != nil {
		return err
	}
	for _, id := range curves {
		if err := h.SetObjectPrintWidth(id, a.Style.PrintWidth); err != nil {
			return err
		}
	}
	return nil
}

// parts sorts the entities of an exploded dimension.
type parts struct {
	texts  []host.ObjectID
	open   []host.ObjectID
	closed []host.ObjectID

	// tips holds the first vertex of every closed curve.  For arrowheads
	// this is the point of the arrow.
	tips []vec.Vec2
}

func sortParts(h host.Objects, ids []host.ObjectID) (*parts, error) {
	p := &parts{}
	for _, id := range ids {
		kind, err := h.Kind(id)
		if err != nil {
			return nil, err
		}
		switch {
		case kind == host.KindText:
			p.texts = append(p.texts, id)
		case kind.IsCurve():
			closed, err := h.IsCurveClosed(id)
			if err != nil {
				return nil, err
			}
			if !closed {
				p.open = append(p.open, id)
				continue
			}
			start, _, err := h.CurveEndpoints(id)
			if err != nil {
				return nil, err
			}
			p.closed = append(p.closed, id)
			p.tips = append(p.tips, start)
		}
	}
	return p, nil
}

// dimensionLine picks the dimension line among the open curves of an
// exploded dimension.  A curve running from one arrow tip to another is
// preferred.  Otherwise the curve whose midpoint is closest to the label
// is used.
func dimensionLine(h host.Objects, open []host.ObjectID, tips []vec.Vec2, label vec.Vec2) (host.ObjectID, bool) {
	touches := func(p vec.Vec2) bool {
		for _, tip := range tips {
			if p.Sub(tip).Length() <= tipTolerance {
				return true
			}
		}
		return false
	}

	var best host.ObjectID
	bestDist := math.Inf(1)
	for _, id := range open {
		start, end, err := h.CurveEndpoints(id)
		if err != nil {
			continue
		}
		if len(tips) > 1 && touches(start) && touches(end) {
			return id, true
		}
		mid, err := h.CurveMidpoint(id)
		if err != nil {
			continue
		}
		if d := mid.Sub(label).Length(); d < bestDist {
			best, bestDist = id, d
		}
	}
	return best, best != 0
}

// placeLabel sets the text attributes of a dimension label.  Labels of
// steep lines are turned clockwise and centred on the line.
func (a *Annotator) placeLabel(label, line host.ObjectID) error {
	h := a.Host
	st := a.Style

	if st.Font != "" {
		if err := h.SetTextFont(label, st.Font); err != nil {
			return err
		}
	}
	if st.TextHeight > 0 {
		if err := h.SetTextHeight(label, st.TextHeight); err != nil {
			return err
		}
	}

	start, end, err := h.CurveEndpoints(line)
	if err != nil {
		return err
	}
	d := end.Sub(start)
	if math.Abs(d.Y) > math.Abs(d.X) {
		mid, err := h.CurveMidpoint(line)
		if err != nil {
			return err
		}
		if err := h.RotateObject(label, mid, -90); err != nil {
			return err
		}
		box, err := h.BoundingBox(label)
		if err != nil {
			return err
		}
		if err := h.MoveObject(label, mid.Sub(center(box))); err != nil {
			return err
		}
	}

	return h.SetObjectColor(label, st.Color)
}

func center(r rect.Rect) vec.Vec2 {
	return vec.Vec2{X: (r.LLx + r.URx) / 2, Y: (r.LLy + r.URy) / 2}
}
