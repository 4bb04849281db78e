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

// Package svgout writes drawings as SVG files.
//
// Every layer becomes a group which Inkscape shows as a layer, nested in
// the same way as the layers of the drawing.  Document information is
// stored as an XMP packet in the metadata element of the file.
package svgout

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/dimlayer/host"
	"seehuhn.de/go/dimlayer/memdoc"
)

// lineSpacing is the distance between lines of text, relative to the text
// height.
const lineSpacing = 1.25

// Options control the output of [Write].
// The zero value, or a nil pointer, selects the defaults.
type Options struct {
	Info

	// Margin is the space around the drawing, in drawing units.  The
	// default is 20.
	Margin float64

	// HiddenLayers lists full layer names which are not written.
	HiddenLayers []string
}

// Write writes the drawing described by snap as an SVG file.
//
// Drawing coordinates use a y axis pointing up, so the y coordinates are
// negated in the output.
func Write(w io.Writer, snap *memdoc.Snapshot, opt *Options) error {
	if opt == nil {
		opt = &Options{}
	}
	margin := opt.Margin
	if margin <= 0 {
		margin = 20
	}

	meta, err := opt.Info.packet()
	if err != nil {
		return err
	}

	hidden := make(map[string]bool)
	for _, name := range opt.HiddenLayers {
		hidden[name] = true
	}
	visible := func(name string) bool {
		for name != "" {
			if hidden[name] {
				return false
			}
			name, _ = host.SplitLayerPath(name)
		}
		return true
	}
	objects := make(map[string][]memdoc.ObjectInfo)
	var shown []memdoc.ObjectInfo
	for _, obj := range snap.Objects {
		objects[obj.Layer] = append(objects[obj.Layer], obj)
		if visible(obj.Layer) {
			shown = append(shown, obj)
		}
	}

	box := bounds(shown)
	box.LLx -= margin
	box.LLy -= margin
	box.URx += margin
	box.URy += margin

	out := bufio.NewWriter(w)
	e := &svgWriter{w: out}
	e.printf(`<?xml version="1.0" encoding="UTF-8"?>`+"\n")
	e.printf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape" version="1.1" viewBox="%s %s %s %s" width="%smm" height="%smm">`+"\n",
		num(box.LLx), num(-box.URy), num(box.URx-box.LLx), num(box.URy-box.LLy),
		num(box.URx-box.LLx), num(box.URy-box.LLy))
	if opt.Title != "" {
		e.printf("<title>%s</title>\n", escape(opt.Title))
	}
	e.printf("<metadata>\n")
	e.write(meta)
	e.printf("</metadata>\n")

	children := make(map[string][]string)
	for _, l := range snap.Layers {
		parent, _ := host.SplitLayerPath(l.Name)
		children[parent] = append(children[parent], l.Name)
	}
	layers := make(map[string]memdoc.LayerInfo)
	for _, l := range snap.Layers {
		layers[l.Name] = l
	}
	var writeLayer func(name string, depth int)
	writeLayer = func(name string, depth int) {
		if hidden[name] {
			return
		}
		_, short := host.SplitLayerPath(name)
		l := layers[name]
		e.printf(`%s<g inkscape:groupmode="layer" inkscape:label="%s" stroke="%s">`+"\n",
			indent(depth), escape(short), l.Color.Hex())
		for _, obj := range objects[name] {
			e.object(obj, depth+1)
		}
		for _, child := range children[name] {
			writeLayer(child, depth+1)
		}
		e.printf("%s</g>\n", indent(depth))
	}
	for _, name := range children[""] {
		writeLayer(name, 0)
	}

	e.printf("</svg>\n")
	if e.err != nil {
		return e.err
	}
	return out.Flush()
}

type svgWriter struct {
	w   *bufio.Writer
	err error
}

func (e *svgWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *svgWriter) write(data []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(data)
}

func (e *svgWriter) object(obj memdoc.ObjectInfo, depth int) {
	ind := indent(depth)
	width := obj.PrintWidth
	if width <= 0 {
		width = 1
	}
	color := obj.Color.Hex()

	switch obj.Kind {
	case host.KindLine, host.KindPolyline:
		e.printf(`%s<polyline id="obj%d" points="%s" fill="none" stroke="%s" stroke-width="%s"/>`+"\n",
			ind, obj.ID, points(obj.Points), color, num(width))
	case host.KindHatch:
		e.printf(`%s<polygon id="obj%d" points="%s" fill="%s" stroke="none"/>`+"\n",
			ind, obj.ID, points(obj.Points), color)
	case host.KindText:
		e.text(obj, obj.At, obj.Angle, depth)
	case host.KindDimension:
		e.printf(`%s<g id="obj%d">`+"\n", ind, obj.ID)
		e.printf(`%s  <polyline points="%s" fill="none" stroke="%s" stroke-width="%s"/>`+"\n",
			ind, points(obj.Points), color, num(width))
		if len(obj.Points) == 2 {
			a, b := obj.Points[0], obj.Points[1]
			d := b.Sub(a)
			angle := math.Atan2(d.Y, d.X) * 180 / math.Pi
			if angle > 90 || angle <= -90 {
				angle -= math.Copysign(180, angle)
			}
			at := a.Add(b).Mul(0.5)
			obj.Height = max(obj.Height, 10)
			e.text(obj, at, angle, depth+1)
		}
		e.printf("%s</g>\n", ind)
	}
}

// text writes a block of text centred at at.  The angle is in degrees,
// counter-clockwise.
func (e *svgWriter) text(obj memdoc.ObjectInfo, at vec.Vec2, angle float64, depth int) {
	lines := strings.Split(obj.Text, "\n")
	h := obj.Height
	first := -float64(len(lines)-1) * h * lineSpacing / 2

	attr := ""
	if obj.Font != "" {
		attr = fmt.Sprintf(` font-family="%s"`, escape(obj.Font))
	}
	if angle != 0 {
		attr += fmt.Sprintf(` transform="rotate(%s %s %s)"`, num(-angle), num(at.X), num(-at.Y))
	}
	e.printf(`%s<text id="obj%d" x="%s" y="%s" font-size="%s" fill="%s" stroke="none" text-anchor="middle" dominant-baseline="central"%s>`,
		indent(depth), obj.ID, num(at.X), num(-at.Y), num(h), obj.Color.Hex(), attr)
	for i, line := range lines {
		dy := h * lineSpacing
		if i == 0 {
			dy = first
		}
		e.printf(`<tspan x="%s" dy="%s">%s</tspan>`, num(at.X), num(dy), escape(line))
	}
	e.printf("</text>\n")
}

// bounds returns the bounding box of all objects.  Text is represented by
// its anchor point.
func bounds(objs []memdoc.ObjectInfo) rect.Rect {
	box := rect.Rect{}
	first := true
	add := func(p vec.Vec2) {
		if first {
			box = rect.Rect{LLx: p.X, LLy: p.Y, URx: p.X, URy: p.Y}
			first = false
			return
		}
		box.LLx = min(box.LLx, p.X)
		box.LLy = min(box.LLy, p.Y)
		box.URx = max(box.URx, p.X)
		box.URy = max(box.URy, p.Y)
	}
	for _, obj := range objs {
		if obj.Kind == host.KindText {
			add(obj.At)
			continue
		}
		for _, p := range obj.Points {
			add(p)
		}
	}
	return box
}

func points(pts []vec.Vec2) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = num(p.X) + "," + num(-p.Y)
	}
	return strings.Join(parts, " ")
}

// num formats a coordinate with at most three decimals.
func num(x float64) string {
	x = math.Round(x*1000) / 1000
	if x == 0 {
		x = 0 // avoid "-0"
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func escape(s string) string {
	buf := &bytes.Buffer{}
	xml.EscapeText(buf, []byte(s))
	return buf.String()
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}
