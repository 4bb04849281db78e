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
	"context"
	"fmt"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/dimlayer/host"
)

// Answer is a pre-recorded reply to a prompt.
type Answer struct {
	point  *vec.Vec2
	object host.ObjectID
	err    error
}

// Point answers a point prompt.
func Point(x, y float64) Answer {
	return Answer{point: &vec.Vec2{X: x, Y: y}}
}

// Pick answers an object prompt.
func Pick(id host.ObjectID) Answer {
	return Answer{object: id}
}

// Done finishes open-ended point input.
func Done() Answer {
	return Answer{err: host.ErrDone}
}

// Cancel aborts the prompt.
func Cancel() Answer {
	return Answer{err: host.ErrCancelled}
}

func (a Answer) String() string {
	switch {
	case a.err != nil:
		return a.err.Error()
	case a.point != nil:
		return fmt.Sprintf("point (%g, %g)", a.point.X, a.point.Y)
	default:
		return fmt.Sprintf("object %d", a.object)
	}
}

// Script is a [host.Prompter] which replays a fixed list of answers.
// Once all answers are used up, every further prompt is cancelled.
type Script struct {
	answers []Answer

	// Prompts records the prompts shown, in order.
	Prompts []string

	// Messages records the messages shown, in order.
	Messages []string
}

// NewScript returns a prompter which gives the answers in order.
func NewScript(answers ...Answer) *Script {
	return &Script{answers: answers}
}

// Append adds answers to the end of the script.
func (s *Script) Append(answers ...Answer) {
	s.answers = append(s.answers, answers...)
}

// Remaining returns the number of unused answers.
func (s *Script) Remaining() int {
	return len(s.answers)
}

func (s *Script) next(ctx context.Context, prompt string) (Answer, error) {
	s.Prompts = append(s.Prompts, prompt)
	if err := ctx.Err(); err != nil {
		return Answer{}, fmt.Errorf("%w: %w", host.ErrCancelled, err)
	}
	if len(s.answers) == 0 {
		return Answer{}, host.ErrCancelled
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	if a.err != nil {
		return Answer{}, a.err
	}
	return a, nil
}

// GetPoint implements the [host.Prompter] interface.
func (s *Script) GetPoint(ctx context.Context, prompt string, base *vec.Vec2) (vec.Vec2, error) {
	a, err := s.next(ctx, prompt)
	if err != nil {
		return vec.Vec2{}, err
	}
	if a.point == nil {
		return vec.Vec2{}, fmt.Errorf("script: %q answered with %s", prompt, a)
	}
	return *a.point, nil
}

// GetObject implements the [host.Prompter] interface.
func (s *Script) GetObject(ctx context.Context, prompt string, kind host.Kind) (host.ObjectID, error) {
	a, err := s.next(ctx, prompt)
	if err != nil {
		return 0, err
	}
	if a.point != nil {
		return 0, fmt.Errorf("script: %q answered with %s", prompt, a)
	}
	return a.object, nil
}

// ShowMessage implements the [host.Prompter] interface.
func (s *Script) ShowMessage(msg string) {
	s.Messages = append(s.Messages, msg)
}
