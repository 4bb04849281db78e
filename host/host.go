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

import (
	"context"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Layers gives access to the layer table of a document.
//
// All layer names are full paths, see [LayerPath].  Methods which modify
// a layer return an error wrapping [ErrNotFound] if the layer does not
// exist.
type Layers interface {
	LayerExists(name string) bool

	// CreateLayer adds a new layer.  The parent layer, if any, must exist.
	CreateLayer(name string, color Color, printWidth float64) error

	LayerColor(name string) (Color, error)
	SetLayerColor(name string, color Color) error
	LayerPrintWidth(name string) (float64, error)
	SetLayerPrintWidth(name string, width float64) error

	// LayerChildren returns the full names of the direct children of a
	// layer, in creation order.
	LayerChildren(name string) ([]string, error)

	// IsLayerEmpty reports whether a layer has neither objects nor
	// child layers.
	IsLayerEmpty(name string) (bool, error)

	// DeleteLayer removes an empty layer.  The current layer cannot be
	// deleted.
	DeleteLayer(name string) error

	// PurgeLayer removes a layer together with its child layers and all
	// objects on them.
	PurgeLayer(name string) error

	RenameLayer(oldName, newName string) error

	CurrentLayer() string
	SetCurrentLayer(name string) error
}

// Styles gives access to the dimension styles of a document.
type Styles interface {
	DimStyleNames() []string
	CurrentDimStyle() string
	SetCurrentDimStyle(name string) error
}

// Objects gives access to the entities of a document.
//
// New entities are created on the current layer.  Methods taking an
// ObjectID return an error wrapping [ErrNotFound] if the entity does not
// exist.
type Objects interface {
	ObjectExists(id ObjectID) bool
	DeleteObject(id ObjectID) error
	Kind(id ObjectID) (Kind, error)

	ObjectLayer(id ObjectID) (string, error)
	SetObjectLayer(id ObjectID, layer string) error
	ObjectsByLayer(layer string) ([]ObjectID, error)
	ObjectName(id ObjectID) (string, error)
	SetObjectName(id ObjectID, name string) error

	SetObjectColor(id ObjectID, color Color) error
	SetObjectPrintWidth(id ObjectID, width float64) error

	AddLine(from, to vec.Vec2) (ObjectID, error)
	AddPolyline(points []vec.Vec2) (ObjectID, error)
	AddText(text string, at vec.Vec2, height float64) (ObjectID, error)

	// AddHatch fills the closed curve boundary with the named pattern.
	AddHatch(boundary ObjectID, pattern string) (ObjectID, error)

	TextContent(id ObjectID) (string, error)
	SetTextFont(id ObjectID, font string) error
	SetTextHeight(id ObjectID, height float64) error

	// RotateObject rotates an entity about center.  Positive angles,
	// given in degrees, turn counter-clockwise.
	RotateObject(id ObjectID, center vec.Vec2, degrees float64) error
	MoveObject(id ObjectID, delta vec.Vec2) error

	CurveEndpoints(id ObjectID) (start, end vec.Vec2, err error)
	CurveMidpoint(id ObjectID) (vec.Vec2, error)
	IsCurveClosed(id ObjectID) (bool, error)
	PolylineVertices(id ObjectID) ([]vec.Vec2, error)
	BoundingBox(id ObjectID) (rect.Rect, error)

	// DimensionValue returns the measured length of a dimension, in model
	// units (millimetres).
	DimensionValue(id ObjectID) (float64, error)

	// DimensionText returns the text displayed by a dimension.
	DimensionText(id ObjectID) (string, error)

	// SetDimensionText replaces the displayed text of a dimension.
	SetDimensionText(id ObjectID, text string) error

	// Group collects entities into a new group and returns its name.
	Group(ids []ObjectID) (string, error)
	Ungroup(name string) error
	GroupNames() []string
	GroupMembers(name string) ([]ObjectID, error)

	Select(ids ...ObjectID) error
	UnselectAll()
}

// Prompter asks the operator for input.
//
// All prompt methods block until the operator answers.  They return
// [ErrCancelled] if the operator aborts, or if ctx is cancelled.
type Prompter interface {
	// GetPoint asks for a point.  If base is not nil, the host may use it
	// as a reference for rubber-band feedback.  Open-ended input is
	// finished with [ErrDone].
	GetPoint(ctx context.Context, prompt string, base *vec.Vec2) (vec.Vec2, error)

	// GetObject asks the operator to pick an existing entity of the given
	// kind.
	GetObject(ctx context.Context, prompt string, kind Kind) (ObjectID, error)

	// ShowMessage displays a message to the operator.
	ShowMessage(msg string)
}

// Commander executes host commands.
type Commander interface {
	// Run executes cmd and returns the entities it produced.
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// Host combines all capabilities used by annotation sessions.
type Host interface {
	Layers
	Styles
	Objects
	Prompter
	Commander
}
