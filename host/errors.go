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
	"errors"
	"strconv"
)

var (
	// ErrCancelled is returned by prompts and commands when the operator
	// aborts the current input.
	ErrCancelled = errors.New("cancelled by user")

	// ErrDone is returned by a point prompt when the operator finishes
	// open-ended input without giving a point.
	ErrDone = errors.New("input finished")

	// ErrNotFound indicates that a layer or an object does not exist.
	ErrNotFound = errors.New("not found")
)

// UnexpectedResultError indicates that a host command did not produce the
// expected entities.
type UnexpectedResultError struct {
	Command string
	Want    string
	Got     int
}

func (err *UnexpectedResultError) Error() string {
	msg := err.Command + ": expected " + err.Want
	if err.Got >= 0 {
		msg += ", got " + strconv.Itoa(err.Got) + " objects"
	}
	return msg
}

// PreconditionError indicates that something required by an annotation
// operation was missing or malformed.
type PreconditionError struct {
	What string
	Err  error
}

func (err *PreconditionError) Error() string {
	if err.Err != nil {
		return "precondition failed: " + err.What + ": " + err.Err.Error()
	}
	return "precondition failed: " + err.What
}

func (err *PreconditionError) Unwrap() error {
	return err.Err
}

// IsCancel reports whether err was caused by the operator cancelling a
// prompt or by the context of the operation being cancelled.
func IsCancel(err error) bool {
	return errors.Is(err, ErrCancelled)
}
