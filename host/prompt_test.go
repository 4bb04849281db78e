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
	"errors"
	"testing"

	"seehuhn.de/go/geom/vec"
)

// answer is a prompter which gives the same reply to every point prompt.
type answer struct {
	pt  vec.Vec2
	err error
}

func (a answer) GetPoint(context.Context, string, *vec.Vec2) (vec.Vec2, error) {
	return a.pt, a.err
}

func (a answer) GetObject(context.Context, string, Kind) (ObjectID, error) {
	return 0, ErrCancelled
}

func (a answer) ShowMessage(string) {}

func TestRequirePoint(t *testing.T) {
	other := errors.New("broken")
	cases := []struct {
		in      answer
		want    vec.Vec2
		wantErr error
	}{
		{answer{pt: vec.Vec2{X: 1, Y: 2}}, vec.Vec2{X: 1, Y: 2}, nil},
		{answer{err: ErrDone}, vec.Vec2{}, ErrCancelled},
		{answer{err: ErrCancelled}, vec.Vec2{}, ErrCancelled},
		{answer{err: other}, vec.Vec2{}, other},
	}
	for i, c := range cases {
		got, err := RequirePoint(context.Background(), c.in, "Point", nil)
		if !errors.Is(err, c.wantErr) || (c.wantErr == nil && err != nil) {
			t.Errorf("%d: got error %v, want %v", i, err, c.wantErr)
		}
		if errors.Is(err, ErrDone) {
			t.Errorf("%d: finished input was not turned into a cancel", i)
		}
		if got != c.want {
			t.Errorf("%d: got %v, want %v", i, got, c.want)
		}
	}
}
