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

package host

import "seehuhn.de/go/geom/vec"

// Command is a host command which can be passed to [Commander.Run].
type Command interface {
	// CommandName returns the name of the host command, for messages.
	CommandName() string
}

// Result lists the entities produced by a host command.
type Result struct {
	// Created holds the new entities, in creation order.
	Created []ObjectID

	// Groups holds the names of groups created by the command.
	Groups []string
}

// OfKind returns the entities in r.Created for which the host reports the
// given kind.
func (r *Result) OfKind(obj Objects, kind Kind) []ObjectID {
	if r == nil {
		return nil
	}
	var res []ObjectID
	for _, id := range r.Created {
		k, err := obj.Kind(id)
		if err == nil && k.Matches(kind) {
			res = append(res, id)
		}
	}
	return res
}

// AlignedDim interactively creates a dimension measuring the true distance
// between two picked points.
type AlignedDim struct{}

// CommandName implements the [Command] interface.
func (AlignedDim) CommandName() string { return "_DimAligned" }

// LinearDim interactively creates a horizontal or vertical dimension.
type LinearDim struct{}

// CommandName implements the [Command] interface.
func (LinearDim) CommandName() string { return "_Dim" }

// Explode decomposes an entity into simpler entities.  The exploded entity
// is deleted.
type Explode struct {
	Target ObjectID
}

// CommandName implements the [Command] interface.
func (Explode) CommandName() string { return "_Explode" }

// DrawPolyline interactively creates a polyline.
type DrawPolyline struct{}

// CommandName implements the [Command] interface.
func (DrawPolyline) CommandName() string { return "_Polyline" }

// Offset creates a copy of a curve at the given distance, on the side of the
// curve where Side lies.
type Offset struct {
	Curve    ObjectID
	Distance float64
	Side     vec.Vec2
}

// CommandName implements the [Command] interface.
func (Offset) CommandName() string { return "_Offset" }

// Import inserts a reference drawing into the document.  How Name is
// resolved is up to the host.
type Import struct {
	Name string
}

// CommandName implements the [Command] interface.
func (Import) CommandName() string { return "_Import" }
