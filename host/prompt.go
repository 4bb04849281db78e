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

	"seehuhn.de/go/geom/vec"
)

// RequirePoint asks for a point which the caller cannot do without.
// Finishing the input without giving a point is reported as
// [ErrCancelled] instead of [ErrDone].
func RequirePoint(ctx context.Context, p Prompter, prompt string, base *vec.Vec2) (vec.Vec2, error) {
	pt, err := p.GetPoint(ctx, prompt, base)
	if errors.Is(err, ErrDone) {
		return vec.Vec2{}, ErrCancelled
	}
	return pt, err
}
