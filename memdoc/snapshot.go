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
	"golang.org/x/exp/slices"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/dimlayer/host"
)

// Snapshot is a copy of the state of a document.
type Snapshot struct {
	Layers       []LayerInfo
	Objects      []ObjectInfo
	Groups       map[string][]host.ObjectID
	Selected     []host.ObjectID
	CurrentLayer string
	DimStyle     string
}

// LayerInfo describes one layer of a [Snapshot].
type LayerInfo struct {
	Name       string
	Color      host.Color
	PrintWidth float64
}

// ObjectInfo describes one entity of a [Snapshot].
type ObjectInfo struct {
	ID    host.ObjectID
	Kind  host.Kind
	Layer string
	Name  string

	// Color is the display colour, taken from the layer unless the object
	// overrides it.
	Color host.Color

	// PrintWidth is the print width, taken from the layer unless the
	// object overrides it.
	PrintWidth float64

	// Points holds the vertices of curves and hatches, and the end points
	// of the dimension line for dimensions.
	Points []vec.Vec2

	// Text, Font, Height, Angle and the centre At describe text objects.
	// For dimensions, Text is the displayed text.
	Text   string
	Font   string
	Height float64
	Angle  float64
	At     vec.Vec2

	Pattern string
}

// Snapshot returns the current state of the document.
// Layers are listed depth-first, in creation order.
func (d *Document) Snapshot() *Snapshot {
	s := &Snapshot{
		Groups:       make(map[string][]host.ObjectID, len(d.groups)),
		Selected:     d.Selected(),
		CurrentLayer: d.CurrentLayer(),
		DimStyle:     d.style,
	}

	var walk func([]*layer)
	walk = func(list []*layer) {
		for _, l := range list {
			s.Layers = append(s.Layers, LayerInfo{
				Name:       l.fullName(),
				Color:      l.color,
				PrintWidth: l.width,
			})
			walk(l.children)
		}
	}
	walk(d.roots)

	for _, id := range d.order {
		s.Objects = append(s.Objects, d.info(d.objects[id]))
	}
	for name, members := range d.groups {
		s.Groups[name] = slices.Clone(members)
	}
	return s
}

func (d *Document) info(obj *object) ObjectInfo {
	info := ObjectInfo{
		ID:         obj.id,
		Kind:       obj.kind,
		Layer:      obj.layer.fullName(),
		Name:       obj.name,
		Color:      obj.layer.color,
		PrintWidth: obj.layer.width,
		Points:     slices.Clone(obj.points),
		Text:       obj.text,
		Font:       obj.font,
		Height:     obj.height,
		Angle:      obj.angle,
		At:         obj.at,
		Pattern:    obj.pattern,
	}
	if obj.color != nil {
		info.Color = *obj.color
	}
	if obj.hasWidth {
		info.PrintWidth = obj.width
	}
	if obj.dim != nil {
		info.Points = []vec.Vec2{obj.dim.line[0], obj.dim.line[1]}
		info.Text = obj.dim.text()
	}
	return info
}

// Layer returns the layer info for name, or false if the layer does not
// exist.
func (s *Snapshot) Layer(name string) (LayerInfo, bool) {
	for _, l := range s.Layers {
		if l.Name == name {
			return l, true
		}
	}
	return LayerInfo{}, false
}

// Object returns the object info for id, or false if the object does not
// exist.
func (s *Snapshot) Object(id host.ObjectID) (ObjectInfo, bool) {
	for _, obj := range s.Objects {
		if obj.ID == id {
			return obj, true
		}
	}
	return ObjectInfo{}, false
}

// LayerNames returns the full names of all layers.
func (s *Snapshot) LayerNames() []string {
	res := make([]string, len(s.Layers))
	for i, l := range s.Layers {
		res[i] = l.Name
	}
	return res
}
