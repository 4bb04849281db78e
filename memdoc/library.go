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
	"fmt"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/dimlayer/host"
)

// Figure is a reference drawing which can be inserted with [host.Import].
type Figure struct {
	// Layers lists the layers of the figure, parents before children.
	// Layers which already exist in the document are reused.
	Layers []FigureLayer

	Objects []FigureObject
}

// FigureLayer describes a layer of a [Figure].
type FigureLayer struct {
	Name       string
	Color      host.Color
	PrintWidth float64
}

// FigureObject describes an entity of a [Figure].
// Objects of kind [host.KindText] use Text and Height, and are centred at
// Points[0].  All other kinds are curves through Points.
type FigureObject struct {
	Layer  string
	Name   string
	Kind   host.Kind
	Points []vec.Vec2
	Text   string
	Height float64
}

// importFigure inserts a library figure and groups the new entities.
func (d *Document) importFigure(name string) (*host.Result, error) {
	fig, ok := d.library[name]
	if !ok || fig == nil {
		return nil, fmt.Errorf("figure %q: %w", name, host.ErrNotFound)
	}

	for _, l := range fig.Layers {
		if d.LayerExists(l.Name) {
			continue
		}
		err := d.CreateLayer(l.Name, l.Color, l.PrintWidth)
		if err != nil {
			return nil, err
		}
	}

	res := &host.Result{}
	for _, fo := range fig.Objects {
		l := d.find(fo.Layer)
		if l == nil {
			d.rollbackImport(res)
			return nil, errLayer(fo.Layer)
		}

		var obj *object
		switch fo.Kind {
		case host.KindText:
			if len(fo.Points) != 1 || fo.Height <= 0 {
				d.rollbackImport(res)
				return nil, fmt.Errorf("figure %q: invalid text %q", name, fo.Text)
			}
			obj = d.newObjectOn(host.KindText, l)
			obj.text = fo.Text
			obj.height = fo.Height
			obj.at = fo.Points[0]
		case host.KindLine, host.KindPolyline:
			if len(fo.Points) < 2 {
				d.rollbackImport(res)
				return nil, fmt.Errorf("figure %q: curve with %d points", name, len(fo.Points))
			}
			obj = d.newObjectOn(fo.Kind, l)
			obj.points = append([]vec.Vec2(nil), fo.Points...)
		default:
			d.rollbackImport(res)
			return nil, fmt.Errorf("figure %q: cannot import %s", name, fo.Kind)
		}
		obj.name = fo.Name
		res.Created = append(res.Created, obj.id)
	}

	if len(res.Created) > 0 {
		group, err := d.Group(res.Created)
		if err != nil {
			return nil, err
		}
		res.Groups = append(res.Groups, group)
	}
	return res, nil
}

func (d *Document) rollbackImport(res *host.Result) {
	for _, id := range res.Created {
		d.deleteObject(id)
	}
}

// HumanFigureName is the library name of [HumanFigure].
const HumanFigureName = "referencia_dim_hombre-objeto"

// HumanFigure returns a reference figure of a standing person, 1750 units
// tall, with its height label.
//
// The figure uses the layers "Figura-Humana", "Figura-Humana::Figura-Humana_linea"
// and "Figura-Humana::Figura-Humana_cota".  Every object is named after the
// short name of its layer.
func HumanFigure() *Figure {
	const (
		top  = "Figura-Humana"
		line = top + host.Separator + "Figura-Humana_linea"
		cota = top + host.Separator + "Figura-Humana_cota"
	)
	grey := host.RGB(128, 128, 128)

	outline := []vec.Vec2{
		{X: -150, Y: 0}, {X: -60, Y: 0}, {X: 0, Y: 850}, {X: 60, Y: 0},
		{X: 150, Y: 0}, {X: 80, Y: 900}, {X: 240, Y: 850}, {X: 250, Y: 1400},
		{X: 100, Y: 1480}, {X: 0, Y: 1500}, {X: -100, Y: 1480},
		{X: -250, Y: 1400}, {X: -240, Y: 850}, {X: -80, Y: 900},
		{X: -150, Y: 0},
	}
	head := []vec.Vec2{
		{X: -90, Y: 1500}, {X: -90, Y: 1750}, {X: 90, Y: 1750},
		{X: 90, Y: 1500}, {X: -90, Y: 1500},
	}

	return &Figure{
		Layers: []FigureLayer{
			{Name: top, Color: host.Black},
			{Name: line, Color: grey},
			{Name: cota, Color: grey},
		},
		Objects: []FigureObject{
			{
				Layer:  top,
				Name:   "Figura-Humana",
				Kind:   host.KindLine,
				Points: []vec.Vec2{{X: -400, Y: 0}, {X: 400, Y: 0}},
			},
			{
				Layer:  line,
				Name:   "Figura-Humana_linea",
				Kind:   host.KindPolyline,
				Points: outline,
			},
			{
				Layer:  line,
				Name:   "Figura-Humana_linea",
				Kind:   host.KindPolyline,
				Points: head,
			},
			{
				Layer:  cota,
				Name:   "Figura-Humana_cota",
				Kind:   host.KindText,
				Points: []vec.Vec2{{X: 0, Y: 1850}},
				Text:   "1,75 m",
				Height: 60,
			},
		},
	}
}

// DefaultLibrary returns a library containing the built-in figures.
func DefaultLibrary() map[string]*Figure {
	return map[string]*Figure{
		HumanFigureName: HumanFigure(),
	}
}
