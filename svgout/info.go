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

	"golang.org/x/text/language"
	"seehuhn.de/go/xmp"
)

// Info is the document information stored in the metadata of a file.
type Info struct {
	Title       string
	Description string
	Authors     []string

	// Language is the language of Title and Description.  If this is
	// not set, the texts are stored only as the default language.
	Language language.Tag

	// Style is the name of the annotation style used in the drawing.
	Style string

	// Producer names the program which wrote the file.
	Producer string
}

// Drawing is the XMP namespace for information about annotated drawings.
type Drawing struct {
	_        xmp.Namespace `xmp:"https://seehuhn.de/ns/dimlayer/1.0/"`
	_        xmp.Prefix    `xmp:"dimlayer"`
	Style    xmp.Text
	Producer xmp.AgentName
}

var defaultLanguage = language.MustParse("x-default")

// packet returns the XMP packet describing the document.
func (info *Info) packet() ([]byte, error) {
	dc := &xmp.DublinCore{}
	if info.Title != "" {
		dc.Title.Set(defaultLanguage, info.Title)
		if info.Language != language.Und {
			dc.Title.Set(info.Language, info.Title)
		}
	}
	if info.Description != "" {
		dc.Description.Set(defaultLanguage, info.Description)
		if info.Language != language.Und {
			dc.Description.Set(info.Language, info.Description)
		}
	}
	for _, name := range info.Authors {
		dc.Creator.Append(xmp.NewProperName(name))
	}

	drawing := &Drawing{}
	if info.Style != "" {
		drawing.Style = xmp.NewText(info.Style)
	}
	if info.Producer != "" {
		drawing.Producer = xmp.NewAgentName(info.Producer)
	}

	packet := xmp.NewPacket()
	if err := packet.Set(dc, drawing); err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	err := packet.Write(buf, &xmp.PacketOptions{Pretty: true})
	if err != nil {
		return nil, err
	}
	return stripDeclaration(buf.Bytes()), nil
}

// stripDeclaration removes an XML declaration, which is not allowed inside
// the SVG file.
func stripDeclaration(data []byte) []byte {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if !bytes.HasPrefix(trimmed, []byte("<?xml ")) {
		return data
	}
	_, rest, ok := bytes.Cut(trimmed, []byte("?>"))
	if !ok {
		return data
	}
	return bytes.TrimLeft(rest, "\r\n")
}
