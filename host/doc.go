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

// Package host describes the capabilities which a CAD host application
// offers to annotation sessions.
//
// The interfaces in this package are deliberately small and opaque.  A
// host owns the geometry kernel, the text renderer and the command
// interpreter; callers only create, query and delete entities by
// [ObjectID], manage layers by their full path name, and ask the operator
// for input through a [Prompter].
//
// Layer names are full paths, with [Separator] between the components:
//
//	Cotas BÁSICO::cota-1a2b3c4d
//
// Host commands are represented by values implementing [Command].  Running
// a command returns a [Result] listing every entity the command produced,
// so that callers never need to inspect an implicit "last created objects"
// slot of the host.
//
// # Errors
//
// A prompt which the operator cancels returns [ErrCancelled].  Open-ended
// input (for example the points of a polyline) is finished by [ErrDone].
// Commands which do not produce what the caller expected are reported as
// [*UnexpectedResultError], and missing prerequisites as
// [*PreconditionError].
package host
