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

// Package memdoc implements an in-memory drawing document which provides
// all host capabilities needed by annotation sessions.
//
// A [Document] holds a layer tree, a table of entities, groups, a selection
// and the current layer and dimension style.  Interactive input is
// delegated to a [host.Prompter]; [Script] provides pre-recorded answers
// for tests and batch runs.
//
// Geometry is restricted to what annotation sessions need: straight line
// segments, text blocks measured with [textmetrics], solid hatches, and
// dimensions which are exploded into extension lines, a dimension line,
// two arrowheads and a label.
//
// A Document is not safe for concurrent use.
package memdoc
