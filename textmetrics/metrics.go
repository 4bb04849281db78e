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

// Package textmetrics computes the extent of text blocks from the glyph
// metrics of an OpenType font.
//
// Annotation labels are laid out without kerning or shaping: the width of a
// line is the sum of the advance widths of its glyphs, and lines are
// stacked at a fixed multiple of the text height.  This is the level of
// precision needed to centre labels on dimension lines.
package textmetrics

import (
	"bytes"
	"errors"
	"strings"
	"sync"

	"golang.org/x/image/font/gofont/goregular"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyph"
)

// DefaultLineSpacing is the distance between baselines of consecutive lines,
// as a multiple of the text height.
const DefaultLineSpacing = 1.2

// Metrics measures text set in one font.
type Metrics struct {
	font   *sfnt.Font
	lookup func(rune) glyph.ID

	// ascent and descent as fractions of the em size, descent is negative
	ascent, descent float64

	// LineSpacing is the baseline distance as a multiple of the text height.
	LineSpacing float64
}

// New reads an OpenType or TrueType font and returns a Metrics object for
// it.
func New(data []byte) (*Metrics, error) {
	f, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if f.UnitsPerEm == 0 {
		return nil, errors.New("textmetrics: invalid unitsPerEm")
	}
	subtable, err := f.CMapTable.GetBest()
	if err != nil {
		return nil, err
	}

	q := 1 / float64(f.UnitsPerEm)
	m := &Metrics{
		font:        f,
		lookup:      subtable.Lookup,
		ascent:      float64(f.Ascent) * q,
		descent:     float64(f.Descent) * q,
		LineSpacing: DefaultLineSpacing,
	}
	if m.ascent <= m.descent {
		// some fonts leave the hhea metrics empty
		m.ascent, m.descent = 0.8, -0.2
	}
	return m, nil
}

var loadDefault = sync.OnceValues(func() (*Metrics, error) {
	return New(goregular.TTF)
})

// Default returns metrics for the Go Regular font.
func Default() *Metrics {
	m, err := loadDefault()
	if err != nil {
		// goregular.TTF is compiled into the binary
		panic("textmetrics: cannot load Go Regular: " + err.Error())
	}
	return m
}

// LineWidth returns the advance width of a single line of text set at the
// given height.
func (m *Metrics) LineWidth(line string, height float64) float64 {
	var w float64
	for _, r := range line {
		gid := m.lookup(r)
		w += m.font.GlyphWidthPDF(gid)
	}
	return w / 1000 * height
}

// Size returns the width and height of the block of text.  Lines are
// separated by "\n".
func (m *Metrics) Size(text string, height float64) (w, h float64) {
	lines := strings.Split(text, "\n")
	for _, line := range lines {
		w = max(w, m.LineWidth(line, height))
	}
	h = (m.ascent - m.descent) * height
	h += float64(len(lines)-1) * m.LineSpacing * height
	return w, h
}
