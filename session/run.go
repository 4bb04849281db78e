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

package session

import (
	"context"
	"fmt"

	"seehuhn.de/go/dimlayer/host"
)

// Body is the work done inside a session.
type Body func(ctx context.Context, s *Session) error

// Run starts a session, runs body, and then commits the session if body
// succeeded or rolls it back if body failed.  [Session.End] runs on every
// exit path, including a panic in body.
//
// The returned error is the error returned by body, or the error which
// prevented the session from starting or committing.  Problems found while
// cleaning up are logged but not returned.
func Run(ctx context.Context, h host.Host, p *Params, body Body) (err error) {
	s, err := Begin(h, p)
	if err != nil {
		return err
	}

	defer func() {
		if endErr := s.End(); endErr != nil {
			s.log.Warn("cleanup incomplete", "error", endErr)
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			s.Rollback(fmt.Errorf("panic: %v", r))
			panic(r)
		}
	}()

	if err := ctx.Err(); err != nil {
		err = fmt.Errorf("%w: %w", host.ErrCancelled, err)
		s.Rollback(err)
		return err
	}

	err = body(ctx, s)
	if err == nil {
		err = s.Commit()
	}
	if err != nil {
		s.Rollback(err)
		return err
	}
	return nil
}
