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

package svgout

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/dimlayer/host"
	"seehuhn.de/go/dimlayer/memdoc"
)

func testDocument(t *testing.T) *memdoc.Document {
	t.Helper()
	doc := memdoc.New(nil)
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(doc.CreateLayer("Cotas DEPOT", host.Black, 1.1))
	must(doc.CreateLayer("Cotas DEPOT::cota-1", host.Black, 1.1))
	must(doc.CreateLayer("Hidden", host.RGB(1, 2, 3), 0))
	must(doc.SetCurrentLayer("Cotas DEPOT::cota-1"))

	_, err := doc.AddLine(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 100, Y: 0})
	must(err)
	arrow, err := doc.AddPolyline([]vec.Vec2{{X: 0, Y: 0}, {X: 8, Y: 3}, {X: 8, Y: -3}, {X: 0, Y: 0}})
	must(err)
	_, err = doc.AddHatch(arrow, "Solid")
	must(err)
	label, err := doc.AddText("10,0 cm\n3,9\"", vec.Vec2{X: 50, Y: 10}, 35)
	must(err)
	must(doc.SetTextFont(label, "Kanit-Regular"))
	must(doc.RotateObject(label, vec.Vec2{X: 50, Y: 10}, 90))

	must(doc.SetCurrentLayer("Hidden"))
	_, err = doc.AddLine(vec.Vec2{X: -500, Y: 0}, vec.Vec2{X: 0, Y: 0})
	must(err)
	return doc
}

const (
	svgNS = "http://www.w3.org/2000/svg"
	dcNS  = "http://purl.org/dc/elements/1.1/"
)

// element is a simplified parse tree of an XML element.
type element struct {
	Space    string
	Name     string
	Attr     map[string]string
	Text     string
	Children []*element
}

func parse(t *testing.T, data []byte) *element {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader(data))
	root := &element{}
	stack := []*element{root}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			t.Fatalf("invalid XML: %v\n%s", err, data)
		}
		top := stack[len(stack)-1]
		switch tok := tok.(type) {
		case xml.StartElement:
			el := &element{
				Space: tok.Name.Space,
				Name:  tok.Name.Local,
				Attr:  map[string]string{},
			}
			for _, a := range tok.Attr {
				el.Attr[a.Name.Local] = a.Value
			}
			top.Children = append(top.Children, el)
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			top.Text += string(tok)
		}
	}
	if len(root.Children) != 1 {
		t.Fatalf("%d root elements", len(root.Children))
	}
	return root.Children[0]
}

// find returns all SVG elements with the given name below el.
func (el *element) find(name string) []*element {
	return el.findNS(svgNS, name)
}

func (el *element) findNS(space, name string) []*element {
	var res []*element
	for _, c := range el.Children {
		if c.Space == space && c.Name == name {
			res = append(res, c)
		}
		res = append(res, c.findNS(space, name)...)
	}
	return res
}

func (el *element) allText() string {
	s := el.Text
	for _, c := range el.Children {
		s += c.allText()
	}
	return s
}

func TestWrite(t *testing.T) {
	doc := testDocument(t)
	buf := &bytes.Buffer{}
	opt := &Options{
		Info: Info{
			Title:    "Kitchen <A>",
			Authors:  []string{"Ana"},
			Language: language.Spanish,
			Style:    "DEPOT",
			Producer: "dimlayer",
		},
		HiddenLayers: []string{"Hidden"},
	}
	err := Write(buf, doc.Snapshot(), opt)
	if err != nil {
		t.Fatal(err)
	}

	svg := parse(t, buf.Bytes())
	if svg.Name != "svg" {
		t.Fatalf("root element %q", svg.Name)
	}
	if got := svg.Attr["viewBox"]; got != "-20 -30 140 53" {
		t.Errorf("viewBox %q", got)
	}

	var labels []string
	for _, g := range svg.find("g") {
		if l, ok := g.Attr["label"]; ok {
			labels = append(labels, l)
		}
	}
	if d := cmp.Diff([]string{memdoc.DefaultLayer, "Cotas DEPOT", "cota-1"}, labels); d != "" {
		t.Errorf("layers (-want +got):\n%s", d)
	}

	if n := len(svg.find("polyline")); n != 2 {
		t.Errorf("%d polylines, want 2", n)
	}
	polygons := svg.find("polygon")
	if len(polygons) != 1 || polygons[0].Attr["fill"] != "#000000" {
		t.Errorf("polygons %v", polygons)
	}

	texts := svg.find("text")
	if len(texts) != 1 {
		t.Fatalf("%d texts", len(texts))
	}
	text := texts[0]
	if got := text.allText(); got != "10,0 cm3,9\"" {
		t.Errorf("text %q", got)
	}
	if got := text.Attr["transform"]; got != "rotate(-90 50 -10)" {
		t.Errorf("transform %q", got)
	}
	if got := text.Attr["font-family"]; got != "Kanit-Regular" {
		t.Errorf("font %q", got)
	}

	titles := svg.find("title")
	if len(titles) != 1 || titles[0].Text != "Kitchen <A>" {
		t.Errorf("title %v", titles)
	}
	meta := svg.find("metadata")
	if len(meta) != 1 {
		t.Fatalf("%d metadata elements", len(meta))
	}
	// the XMP packet has its own title, in the Dublin Core namespace
	if dcTitles := meta[0].findNS(dcNS, "title"); len(dcTitles) != 1 {
		t.Errorf("%d dc:title elements in metadata", len(dcTitles))
	}
	m := meta[0].allText()
	for _, want := range []string{"Kitchen <A>", "Ana", "DEPOT"} {
		if !strings.Contains(m, want) {
			t.Errorf("metadata does not contain %q", want)
		}
	}
}

func TestWriteEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	err := Write(buf, memdoc.New(nil).Snapshot(), nil)
	if err != nil {
		t.Fatal(err)
	}
	svg := parse(t, buf.Bytes())
	if got := svg.Attr["viewBox"]; got != "-20 -20 40 40" {
		t.Errorf("viewBox %q", got)
	}
}

func TestNum(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{-0.0001, "0"},
		{1.23456, "1.235"},
		{-2.5, "-2.5"},
		{100, "100"},
	}
	for _, c := range cases {
		if got := num(c.in); got != c.want {
			t.Errorf("num(%g) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestStripDeclaration(t *testing.T) {
	in := []byte("<?xml version=\"1.0\"?>\n<a/>")
	if got := string(stripDeclaration(in)); got != "<a/>" {
		t.Errorf("got %q", got)
	}
	in = []byte("<?xpacket begin=\"\"?><a/>")
	if got := string(stripDeclaration(in)); got != string(in) {
		t.Errorf("got %q", got)
	}
}
