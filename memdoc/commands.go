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

package memdoc

import (
	"context"
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/dimlayer/host"
)

var errDegenerate = errors.New("degenerate dimension")

// Run implements the [host.Commander] interface.
func (d *Document) Run(ctx context.Context, cmd host.Command) (*host.Result, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	switch cmd := cmd.(type) {
	case host.AlignedDim:
		return d.runDim(ctx, true)
	case host.LinearDim:
		return d.runDim(ctx, false)
	case host.Explode:
		return d.explode(cmd.Target)
	case host.DrawPolyline:
		return d.drawPolyline(ctx)
	case host.Offset:
		return d.offset(cmd)
	case host.Import:
		return d.importFigure(cmd.Name)
	default:
		return nil, fmt.Errorf("unsupported command %q", cmd.CommandName())
	}
}

// runDim asks for the two measured points and the location of the
// dimension line, and adds a dimension to the current layer.
func (d *Document) runDim(ctx context.Context, aligned bool) (*host.Result, error) {
	p1, err := host.RequirePoint(ctx, d, "First dimension point", nil)
	if err != nil {
		return nil, err
	}
	p2, err := host.RequirePoint(ctx, d, "Second dimension point", &p1)
	if err != nil {
		return nil, err
	}
	loc, err := host.RequirePoint(ctx, d, "Dimension line location", &p2)
	if err != nil {
		return nil, err
	}

	var a1, a2 vec.Vec2
	if aligned {
		a1, a2, err = alignedLine(p1, p2, loc)
	} else {
		a1, a2, err = linearLine(p1, p2, loc)
	}
	if err != nil {
		return nil, err
	}

	obj := d.newObject(host.KindDimension)
	obj.dim = &dimension{
		origin: [2]vec.Vec2{p1, p2},
		line:   [2]vec.Vec2{a1, a2},
	}
	return &host.Result{Created: []host.ObjectID{obj.id}}, nil
}

// alignedLine places the dimension line parallel to p1-p2, through loc.
func alignedLine(p1, p2, loc vec.Vec2) (a1, a2 vec.Vec2, err error) {
	d := p2.Sub(p1)
	if d.Length() < minLength {
		return a1, a2, errDegenerate
	}
	n := d.Normalize().Rot90()
	shift := n.Mul(dot(loc.Sub(p1), n))
	return p1.Add(shift), p2.Add(shift), nil
}

// linearLine places a horizontal or vertical dimension line through loc.
// The dimension is horizontal if loc is moved away from the measured points
// more vertically than horizontally.
func linearLine(p1, p2, loc vec.Vec2) (a1, a2 vec.Vec2, err error) {
	mid := lerp(p1, p2, 0.5)
	off := loc.Sub(mid)
	if math.Abs(off.Y) >= math.Abs(off.X) {
		if math.Abs(p2.X-p1.X) < minLength {
			return a1, a2, errDegenerate
		}
		a1 = vec.Vec2{X: p1.X, Y: loc.Y}
		a2 = vec.Vec2{X: p2.X, Y: loc.Y}
	} else {
		if math.Abs(p2.Y-p1.Y) < minLength {
			return a1, a2, errDegenerate
		}
		a1 = vec.Vec2{X: loc.X, Y: p1.Y}
		a2 = vec.Vec2{X: loc.X, Y: p2.Y}
	}
	return a1, a2, nil
}

// explode replaces a dimension by its parts.  The parts are created on the
// layer of the dimension, in the order: extension lines, arrowheads,
// dimension line, label.
func (d *Document) explode(id host.ObjectID) (*host.Result, error) {
	obj, err := d.getKind(id, host.KindDimension)
	if err != nil {
		return nil, err
	}
	dim := obj.dim
	l := obj.layer
	res := &host.Result{}

	add := func(kind host.Kind, points ...vec.Vec2) {
		part := d.newObjectOn(kind, l)
		part.points = points
		res.Created = append(res.Created, part.id)
	}

	for i := range 2 {
		from, to, ok := leaderLine(dim.origin[i], dim.line[i], d.extGap, d.extOvershoot)
		if ok {
			add(host.KindLine, from, to)
		}
	}

	a1, a2 := dim.line[0], dim.line[1]
	u := a2.Sub(a1)
	add(host.KindPolyline, arrowhead(a1, u.Mul(-1), d.arrowSize)...)
	add(host.KindPolyline, arrowhead(a2, u, d.arrowSize)...)
	add(host.KindLine, a1, a2)

	// The label sits on the side of the dimension line facing away from
	// the measured points.
	n := u.Normalize().Rot90()
	if dot(dim.origin[0].Sub(a1), n) > 0 {
		n = n.Mul(-1)
	}
	text := dim.text()
	_, h := d.measure.Size(text, d.textHeight)
	label := d.newObjectOn(host.KindText, l)
	label.text = text
	label.height = d.textHeight
	label.at = lerp(a1, a2, 0.5).Add(n.Mul(d.extGap + h/2))
	res.Created = append(res.Created, label.id)

	d.deleteObject(id)
	return res, nil
}

// drawPolyline asks for vertices until the operator finishes the input.
// Fewer than two vertices produce no entity.
func (d *Document) drawPolyline(ctx context.Context) (*host.Result, error) {
	var points []vec.Vec2
	for {
		var base *vec.Vec2
		prompt := "Start of polyline, empty to finish"
		if len(points) > 0 {
			base = &points[len(points)-1]
			prompt = "Next point of polyline, empty to finish"
		}
		p, err := d.GetPoint(ctx, prompt, base)
		if errors.Is(err, host.ErrDone) {
			break
		} else if err != nil {
			return nil, err
		}
		if len(points) > 0 && p.Sub(points[len(points)-1]).Length() < minLength {
			// repeated pick
			continue
		}
		points = append(points, p)
	}

	if len(points) < 2 {
		return &host.Result{}, nil
	}
	id, err := d.AddPolyline(points)
	if err != nil {
		return nil, err
	}
	return &host.Result{Created: []host.ObjectID{id}}, nil
}

// offset adds a parallel copy of an open curve to the current layer.
func (d *Document) offset(cmd host.Offset) (*host.Result, error) {
	obj, err := d.getKind(cmd.Curve, host.KindLine, host.KindPolyline)
	if err != nil {
		return nil, err
	}
	if cmd.Distance <= 0 {
		return nil, fmt.Errorf("invalid offset distance %g", cmd.Distance)
	}
	if isClosed(obj.points) {
		return nil, fmt.Errorf("cannot offset closed curve %d", cmd.Curve)
	}

	dist := cmd.Distance * side(obj.points, cmd.Side)
	points, ok := offsetPolyline(obj.points, dist)
	if !ok {
		return nil, fmt.Errorf("cannot offset curve %d of zero length", cmd.Curve)
	}
	par := d.newObject(obj.kind)
	par.points = points
	return &host.Result{Created: []host.ObjectID{par.id}}, nil
}
