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
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/exp/slices"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/dimlayer/host"
)

// object is an entity of the document.
type object struct {
	id    host.ObjectID
	kind  host.Kind
	layer *layer
	name  string

	// color and width override the layer settings, if set
	color    *host.Color
	width    float64
	hasWidth bool

	// points holds the vertices of lines, polylines and hatch boundaries.
	points []vec.Vec2

	// text objects
	text   string
	font   string
	height float64
	at     vec.Vec2 // centre of the text block
	angle  float64  // degrees, counter-clockwise

	dim     *dimension
	pattern string
}

// dimension holds the geometry of a dimension entity.
type dimension struct {
	// origin holds the two measured points.
	origin [2]vec.Vec2

	// line holds the end points of the dimension line.  The arrowheads
	// point at these.
	line [2]vec.Vec2

	// userText replaces the measured value, if non-empty.
	userText string
}

func (dim *dimension) value() float64 {
	return dim.line[1].Sub(dim.line[0]).Length()
}

func (dim *dimension) text() string {
	if dim.userText != "" {
		return dim.userText
	}
	return strconv.FormatFloat(dim.value(), 'f', 1, 64)
}

func errObject(id host.ObjectID) error {
	return fmt.Errorf("object %d: %w", id, host.ErrNotFound)
}

func (d *Document) get(id host.ObjectID) (*object, error) {
	obj, ok := d.objects[id]
	if !ok {
		return nil, errObject(id)
	}
	return obj, nil
}

func (d *Document) getKind(id host.ObjectID, kinds ...host.Kind) (*object, error) {
	obj, err := d.get(id)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(kinds, obj.kind) {
		return nil, fmt.Errorf("object %d is a %s", id, obj.kind)
	}
	return obj, nil
}

// newObject adds an entity of the given kind to the current layer.
func (d *Document) newObject(kind host.Kind) *object {
	return d.newObjectOn(kind, d.current)
}

func (d *Document) newObjectOn(kind host.Kind, l *layer) *object {
	d.lastID++
	obj := &object{
		id:    d.lastID,
		kind:  kind,
		layer: l,
	}
	d.objects[obj.id] = obj
	d.order = append(d.order, obj.id)
	return obj
}

// deleteObject removes an entity together with its group memberships and
// its selection state.  Groups which become empty are removed.
func (d *Document) deleteObject(id host.ObjectID) {
	delete(d.objects, id)
	delete(d.selected, id)
	d.order = slices.DeleteFunc(d.order, func(x host.ObjectID) bool { return x == id })
	for name, members := range d.groups {
		members = slices.DeleteFunc(members, func(x host.ObjectID) bool { return x == id })
		if len(members) == 0 {
			d.removeGroup(name)
		} else {
			d.groups[name] = members
		}
	}
}

// ObjectExists implements the [host.Objects] interface.
func (d *Document) ObjectExists(id host.ObjectID) bool {
	_, ok := d.objects[id]
	return ok
}

// DeleteObject implements the [host.Objects] interface.
func (d *Document) DeleteObject(id host.ObjectID) error {
	if _, err := d.get(id); err != nil {
		return err
	}
	d.deleteObject(id)
	return nil
}

// Kind implements the [host.Objects] interface.
func (d *Document) Kind(id host.ObjectID) (host.Kind, error) {
	obj, err := d.get(id)
	if err != nil {
		return host.KindUnknown, err
	}
	return obj.kind, nil
}

// ObjectLayer implements the [host.Objects] interface.
func (d *Document) ObjectLayer(id host.ObjectID) (string, error) {
	obj, err := d.get(id)
	if err != nil {
		return "", err
	}
	return obj.layer.fullName(), nil
}

// SetObjectLayer implements the [host.Objects] interface.
func (d *Document) SetObjectLayer(id host.ObjectID, name string) error {
	obj, err := d.get(id)
	if err != nil {
		return err
	}
	l := d.find(name)
	if l == nil {
		return errLayer(name)
	}
	obj.layer = l
	return nil
}

// ObjectsByLayer implements the [host.Objects] interface.
// Only objects placed directly on the layer are returned, in creation order.
func (d *Document) ObjectsByLayer(name string) ([]host.ObjectID, error) {
	l := d.find(name)
	if l == nil {
		return nil, errLayer(name)
	}
	var res []host.ObjectID
	for _, id := range d.order {
		if d.objects[id].layer == l {
			res = append(res, id)
		}
	}
	return res, nil
}

// ObjectName implements the [host.Objects] interface.
func (d *Document) ObjectName(id host.ObjectID) (string, error) {
	obj, err := d.get(id)
	if err != nil {
		return "", err
	}
	return obj.name, nil
}

// SetObjectName implements the [host.Objects] interface.
func (d *Document) SetObjectName(id host.ObjectID, name string) error {
	obj, err := d.get(id)
	if err != nil {
		return err
	}
	obj.name = name
	return nil
}

// SetObjectColor implements the [host.Objects] interface.
func (d *Document) SetObjectColor(id host.ObjectID, color host.Color) error {
	obj, err := d.get(id)
	if err != nil {
		return err
	}
	obj.color = &color
	return nil
}

// SetObjectPrintWidth implements the [host.Objects] interface.
func (d *Document) SetObjectPrintWidth(id host.ObjectID, width float64) error {
	obj, err := d.get(id)
	if err != nil {
		return err
	}
	if width < 0 {
		return fmt.Errorf("invalid print width %g", width)
	}
	obj.width = width
	obj.hasWidth = true
	return nil
}

// AddLine implements the [host.Objects] interface.
func (d *Document) AddLine(from, to vec.Vec2) (host.ObjectID, error) {
	if to.Sub(from).Length() < minLength {
		return 0, errors.New("degenerate line")
	}
	obj := d.newObject(host.KindLine)
	obj.points = []vec.Vec2{from, to}
	return obj.id, nil
}

// AddPolyline implements the [host.Objects] interface.
// A polyline whose last vertex equals the first is closed.
func (d *Document) AddPolyline(points []vec.Vec2) (host.ObjectID, error) {
	if len(points) < 2 || pathLength(points) < minLength {
		return 0, errors.New("degenerate polyline")
	}
	obj := d.newObject(host.KindPolyline)
	obj.points = slices.Clone(points)
	return obj.id, nil
}

// AddText implements the [host.Objects] interface.
// The text block is centred at the given point.
func (d *Document) AddText(text string, at vec.Vec2, height float64) (host.ObjectID, error) {
	if height <= 0 {
		return 0, fmt.Errorf("invalid text height %g", height)
	}
	obj := d.newObject(host.KindText)
	obj.text = text
	obj.at = at
	obj.height = height
	return obj.id, nil
}

// AddHatch implements the [host.Objects] interface.
func (d *Document) AddHatch(boundary host.ObjectID, pattern string) (host.ObjectID, error) {
	b, err := d.getKind(boundary, host.KindPolyline)
	if err != nil {
		return 0, err
	}
	if !isClosed(b.points) {
		return 0, fmt.Errorf("hatch boundary %d is not closed", boundary)
	}
	if pattern == "" {
		pattern = "Solid"
	}
	obj := d.newObject(host.KindHatch)
	obj.points = slices.Clone(b.points)
	obj.pattern = pattern
	return obj.id, nil
}

// TextContent implements the [host.Objects] interface.
func (d *Document) TextContent(id host.ObjectID) (string, error) {
	obj, err := d.getKind(id, host.KindText)
	if err != nil {
		return "", err
	}
	return obj.text, nil
}

// SetTextFont implements the [host.Objects] interface.
func (d *Document) SetTextFont(id host.ObjectID, font string) error {
	obj, err := d.getKind(id, host.KindText)
	if err != nil {
		return err
	}
	obj.font = font
	return nil
}

// SetTextHeight implements the [host.Objects] interface.
func (d *Document) SetTextHeight(id host.ObjectID, height float64) error {
	obj, err := d.getKind(id, host.KindText)
	if err != nil {
		return err
	}
	if height <= 0 {
		return fmt.Errorf("invalid text height %g", height)
	}
	obj.height = height
	return nil
}

// RotateObject implements the [host.Objects] interface.
func (d *Document) RotateObject(id host.ObjectID, center vec.Vec2, degrees float64) error {
	obj, err := d.get(id)
	if err != nil {
		return err
	}
	M := rotation(center, degrees)
	for i, p := range obj.points {
		obj.points[i] = apply(M, p)
	}
	if obj.kind == host.KindText {
		obj.at = apply(M, obj.at)
		obj.angle += degrees
	}
	if dim := obj.dim; dim != nil {
		for i := range 2 {
			dim.origin[i] = apply(M, dim.origin[i])
			dim.line[i] = apply(M, dim.line[i])
		}
	}
	return nil
}

// MoveObject implements the [host.Objects] interface.
func (d *Document) MoveObject(id host.ObjectID, delta vec.Vec2) error {
	obj, err := d.get(id)
	if err != nil {
		return err
	}
	for i, p := range obj.points {
		obj.points[i] = p.Add(delta)
	}
	obj.at = obj.at.Add(delta)
	if dim := obj.dim; dim != nil {
		for i := range 2 {
			dim.origin[i] = dim.origin[i].Add(delta)
			dim.line[i] = dim.line[i].Add(delta)
		}
	}
	return nil
}

// CurveEndpoints implements the [host.Objects] interface.
func (d *Document) CurveEndpoints(id host.ObjectID) (start, end vec.Vec2, err error) {
	obj, err := d.getKind(id, host.KindLine, host.KindPolyline)
	if err != nil {
		return vec.Vec2{}, vec.Vec2{}, err
	}
	return obj.points[0], obj.points[len(obj.points)-1], nil
}

// CurveMidpoint implements the [host.Objects] interface.
// The midpoint is taken with respect to arc length.
func (d *Document) CurveMidpoint(id host.ObjectID) (vec.Vec2, error) {
	obj, err := d.getKind(id, host.KindLine, host.KindPolyline)
	if err != nil {
		return vec.Vec2{}, err
	}
	return pointAt(obj.points, pathLength(obj.points)/2), nil
}

// IsCurveClosed implements the [host.Objects] interface.
func (d *Document) IsCurveClosed(id host.ObjectID) (bool, error) {
	obj, err := d.getKind(id, host.KindLine, host.KindPolyline)
	if err != nil {
		return false, err
	}
	return isClosed(obj.points), nil
}

// PolylineVertices implements the [host.Objects] interface.
func (d *Document) PolylineVertices(id host.ObjectID) ([]vec.Vec2, error) {
	obj, err := d.getKind(id, host.KindLine, host.KindPolyline)
	if err != nil {
		return nil, err
	}
	return slices.Clone(obj.points), nil
}

// BoundingBox implements the [host.Objects] interface.
func (d *Document) BoundingBox(id host.ObjectID) (rect.Rect, error) {
	obj, err := d.get(id)
	if err != nil {
		return rect.Rect{}, err
	}
	switch obj.kind {
	case host.KindText:
		w, h := d.measure.Size(obj.text, obj.height)
		return boundsOf(textCorners(obj.at, w, h, obj.angle)...), nil
	case host.KindDimension:
		dim := obj.dim
		return boundsOf(dim.origin[0], dim.origin[1], dim.line[0], dim.line[1]), nil
	default:
		return boundsOf(obj.points...), nil
	}
}

// DimensionValue implements the [host.Objects] interface.
func (d *Document) DimensionValue(id host.ObjectID) (float64, error) {
	obj, err := d.getKind(id, host.KindDimension)
	if err != nil {
		return 0, err
	}
	return obj.dim.value(), nil
}

// DimensionText implements the [host.Objects] interface.
// Without user text, the value is shown with one decimal.
func (d *Document) DimensionText(id host.ObjectID) (string, error) {
	obj, err := d.getKind(id, host.KindDimension)
	if err != nil {
		return "", err
	}
	return obj.dim.text(), nil
}

// SetDimensionText implements the [host.Objects] interface.
func (d *Document) SetDimensionText(id host.ObjectID, text string) error {
	obj, err := d.getKind(id, host.KindDimension)
	if err != nil {
		return err
	}
	obj.dim.userText = text
	return nil
}

// Group implements the [host.Objects] interface.
// Group names are "Group01", "Group02", ...
func (d *Document) Group(ids []host.ObjectID) (string, error) {
	if len(ids) == 0 {
		return "", errors.New("empty group")
	}
	var members []host.ObjectID
	for _, id := range ids {
		if _, err := d.get(id); err != nil {
			return "", err
		}
		if !slices.Contains(members, id) {
			members = append(members, id)
		}
	}

	d.lastGroup++
	name := fmt.Sprintf("Group%02d", d.lastGroup)
	d.groups[name] = members
	d.groupOrder = append(d.groupOrder, name)
	return name, nil
}

// Ungroup implements the [host.Objects] interface.
// The members of the group are not deleted.
func (d *Document) Ungroup(name string) error {
	if _, ok := d.groups[name]; !ok {
		return fmt.Errorf("group %q: %w", name, host.ErrNotFound)
	}
	d.removeGroup(name)
	return nil
}

func (d *Document) removeGroup(name string) {
	delete(d.groups, name)
	d.groupOrder = slices.DeleteFunc(d.groupOrder, func(x string) bool { return x == name })
}

// GroupNames implements the [host.Objects] interface.
func (d *Document) GroupNames() []string {
	return slices.Clone(d.groupOrder)
}

// GroupMembers implements the [host.Objects] interface.
func (d *Document) GroupMembers(name string) ([]host.ObjectID, error) {
	members, ok := d.groups[name]
	if !ok {
		return nil, fmt.Errorf("group %q: %w", name, host.ErrNotFound)
	}
	return slices.Clone(members), nil
}

// Select implements the [host.Objects] interface.
func (d *Document) Select(ids ...host.ObjectID) error {
	for _, id := range ids {
		if _, err := d.get(id); err != nil {
			return err
		}
	}
	for _, id := range ids {
		d.selected[id] = true
	}
	return nil
}

// UnselectAll implements the [host.Objects] interface.
func (d *Document) UnselectAll() {
	clear(d.selected)
}

// Selected returns the selected objects, in creation order.
func (d *Document) Selected() []host.ObjectID {
	var res []host.ObjectID
	for _, id := range d.order {
		if d.selected[id] {
			res = append(res, id)
		}
	}
	return res
}
