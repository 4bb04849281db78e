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

package dimension

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/exp/slices"

	"seehuhn.de/go/dimlayer/host"
	"seehuhn.de/go/dimlayer/session"
)

// Operation names an annotation operation.
type Operation string

// These are the supported operations.
const (
	OpAligned    Operation = "aligned"
	OpLinear     Operation = "linear"
	OpManual     Operation = "manual"
	OpIsometric  Operation = "isometric"
	OpHumanScale Operation = "human"
	OpDimStyle   Operation = "dimstyle"
)

// Operations lists all operations, in the order they are shown to users.
func Operations() []Operation {
	return []Operation{OpAligned, OpLinear, OpManual, OpIsometric, OpHumanScale, OpDimStyle}
}

// ParseOperation converts a name into an Operation.
func ParseOperation(name string) (Operation, error) {
	op := Operation(name)
	if !slices.Contains(Operations(), op) {
		return "", fmt.Errorf("unknown operation %q", name)
	}
	return op, nil
}

// An Annotator runs annotation operations in one document, using one style.
type Annotator struct {
	Host  host.Host
	Style *Style

	// Logger (optional) receives diagnostic messages.
	Logger *slog.Logger

	// Token (optional) generates the random part of sub-layer names.
	Token func() string
}

// Do runs the operation op.
func (a *Annotator) Do(ctx context.Context, op Operation) error {
	switch op {
	case OpAligned:
		return a.Aligned(ctx)
	case OpLinear:
		return a.Linear(ctx)
	case OpManual:
		return a.Manual(ctx)
	case OpIsometric:
		return a.Isometric(ctx)
	case OpHumanScale:
		return a.HumanScale(ctx)
	case OpDimStyle:
		return a.UseDimStyle()
	default:
		return fmt.Errorf("unknown operation %q", op)
	}
}

func (a *Annotator) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// run executes body inside a new session.
func (a *Annotator) run(ctx context.Context, op Operation, body session.Body) error {
	if err := a.Style.Check(); err != nil {
		return err
	}
	log := a.logger().With("operation", string(op), "style", a.Style.Name)
	p := &session.Params{
		BaseLayer:  a.Style.BaseLayer,
		Color:      a.Style.Color,
		PrintWidth: a.Style.PrintWidth,
		Prefix:     a.Style.Prefix,
		DimStyle:   a.Style.dimStyle(),
		Token:      a.Token,
		Logger:     log,
	}
	err := session.Run(ctx, a.Host, p, body)
	if err != nil {
		log.Debug("operation failed", "error", err)
		return err
	}
	log.Debug("operation finished")
	return nil
}

// Aligned adds an aligned dimension between two picked points.
func Aligned(ctx context.Context, h host.Host, style *Style) error {
	return (&Annotator{Host: h, Style: style}).Aligned(ctx)
}

// Linear adds a horizontal or vertical dimension with drawn arrowheads.
func Linear(ctx context.Context, h host.Host, style *Style) error {
	return (&Annotator{Host: h, Style: style}).Linear(ctx)
}

// Manual draws a dimension line between two picked points and labels it
// with the text of an existing annotation.
func Manual(ctx context.Context, h host.Host, style *Style) error {
	return (&Annotator{Host: h, Style: style}).Manual(ctx)
}

// Isometric dimensions the edges of an isometric view.
func Isometric(ctx context.Context, h host.Host, style *Style) error {
	return (&Annotator{Host: h, Style: style}).Isometric(ctx)
}

// HumanScale imports the human scale reference figure for a brand.
func HumanScale(ctx context.Context, h host.Host, brand *Style) error {
	return (&Annotator{Host: h, Style: brand}).HumanScale(ctx)
}
