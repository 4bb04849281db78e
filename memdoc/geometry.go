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
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// minLength is the shortest segment length which is treated as non-degenerate.
const minLength = 1e-6

func dot(a, b vec.Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

func lerp(a, b vec.Vec2, t float64) vec.Vec2 {
	return a.Add(b.Sub(a).Mul(t))
}

// rotation returns the matrix which rotates by deg degrees
// counter-clockwise about c.
func rotation(c vec.Vec2, deg float64) matrix.Matrix {
	return matrix.Translate(-c.X, -c.Y).Mul(matrix.RotateDeg(deg)).Mul(matrix.Translate(c.X, c.Y))
}

// apply maps p through M.
func apply(M matrix.Matrix, p vec.Vec2) vec.Vec2 {
	x, y := M.Apply(p.X, p.Y)
	return vec.Vec2{X: x, Y: y}
}

// boundsOf returns the smallest rectangle containing all points.
func boundsOf(points ...vec.Vec2) rect.Rect {
	if len(points) == 0 {
		return rect.Rect{}
	}
	b := rect.Rect{
		LLx: points[0].X,
		LLy: points[0].Y,
		URx: points[0].X,
		URy: points[0].Y,
	}
	for _, p := range points[1:] {
		b.Add(p.X, p.Y)
	}
	return b
}

// pathLength returns the length of the polyline through points.
func pathLength(points []vec.Vec2) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += points[i].Sub(points[i-1]).Length()
	}
	return total
}

// pointAt returns the point at arc length s along the polyline.
func pointAt(points []vec.Vec2, s float64) vec.Vec2 {
	for i := 1; i < len(points); i++ {
		seg := points[i].Sub(points[i-1]).Length()
		if s <= seg && seg > 0 {
			return lerp(points[i-1], points[i], s/seg)
		}
		s -= seg
	}
	return points[len(points)-1]
}

// textCorners returns the corners of a text block of size w×h, centred at
// c and rotated by deg degrees.
func textCorners(c vec.Vec2, w, h, deg float64) []vec.Vec2 {
	M := rotation(c, deg)
	corners := []vec.Vec2{
		{X: c.X - w/2, Y: c.Y - h/2},
		{X: c.X + w/2, Y: c.Y - h/2},
		{X: c.X + w/2, Y: c.Y + h/2},
		{X: c.X - w/2, Y: c.Y + h/2},
	}
	for i, p := range corners {
		corners[i] = apply(M, p)
	}
	return corners
}

// arrowhead returns the closed outline of a triangular arrowhead with its
// tip at tip, pointing in direction dir.  The base of the triangle is half
// as wide as the arrow is long.
func arrowhead(tip, dir vec.Vec2, size float64) []vec.Vec2 {
	u := dir.Normalize()
	n := u.Rot90()
	base := tip.Sub(u.Mul(size))
	return []vec.Vec2{
		tip,
		base.Add(n.Mul(0.25 * size)),
		base.Sub(n.Mul(0.25 * size)),
		tip,
	}
}

// leaderLine returns the extension line from the measured point origin to
// the point at on the dimension line.  The line starts gap units away from
// origin and overshoots at by the given amount.  If origin and at coincide,
// ok is false.
func leaderLine(origin, at vec.Vec2, gap, overshoot float64) (from, to vec.Vec2, ok bool) {
	d := at.Sub(origin)
	length := d.Length()
	if length < minLength {
		return vec.Vec2{}, vec.Vec2{}, false
	}
	u := d.Mul(1 / length)
	if gap > length {
		gap = length
	}
	return origin.Add(u.Mul(gap)), at.Add(u.Mul(overshoot)), true
}

// offsetPolyline returns the polyline parallel to points at distance dist.
// Positive distances offset to the left of the direction of travel.
// Interior vertices are mitred.  Repeated vertices are offset to the same
// point.  If the polyline has zero length, ok is false.
func offsetPolyline(points []vec.Vec2, dist float64) (res []vec.Vec2, ok bool) {
	// distinct vertices, and the index of each input vertex among them
	var uniq []vec.Vec2
	idx := make([]int, len(points))
	for i, p := range points {
		if len(uniq) == 0 || p.Sub(uniq[len(uniq)-1]).Length() >= minLength {
			uniq = append(uniq, p)
		}
		idx[i] = len(uniq) - 1
	}
	n := len(uniq)
	if n < 2 {
		return nil, false
	}

	normals := make([]vec.Vec2, n-1)
	for i := range normals {
		normals[i] = uniq[i+1].Sub(uniq[i]).Normalize().Rot90()
	}

	off := make([]vec.Vec2, n)
	off[0] = uniq[0].Add(normals[0].Mul(dist))
	off[n-1] = uniq[n-1].Add(normals[n-2].Mul(dist))
	for i := 1; i < n-1; i++ {
		n1, n2 := normals[i-1], normals[i]
		bisector := n1.Add(n2)
		if bisector.Length() < minLength {
			// the polyline turns back on itself
			off[i] = uniq[i].Add(n1.Mul(dist))
			continue
		}
		bisector = bisector.Normalize()
		cos := dot(bisector, n1)
		off[i] = uniq[i].Add(bisector.Mul(dist / cos))
	}

	res = make([]vec.Vec2, len(points))
	for i, j := range idx {
		res[i] = off[j]
	}
	return res, true
}

// side returns +1 if p lies to the left of the polyline segment closest
// to p, and -1 otherwise.
func side(points []vec.Vec2, p vec.Vec2) float64 {
	best := math.Inf(1)
	var sign float64 = 1
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		d := b.Sub(a)
		l2 := dot(d, d)
		if l2 < minLength*minLength {
			continue
		}
		t := max(0, min(1, dot(p.Sub(a), d)/l2))
		dist := p.Sub(lerp(a, b, t)).Length()
		if dist < best {
			best = dist
			if dot(p.Sub(a), d.Rot90()) >= 0 {
				sign = 1
			} else {
				sign = -1
			}
		}
	}
	return sign
}

func isClosed(points []vec.Vec2) bool {
	return len(points) >= 4 && points[0].Sub(points[len(points)-1]).Length() < minLength
}
