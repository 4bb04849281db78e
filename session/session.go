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

// Package session implements scoped annotation sessions.
//
// A session creates a uniquely named sub-layer below a shared base layer,
// makes it the current layer, and keeps track of every entity created while
// the session is active.  When the session succeeds, [Session.Commit] keeps
// the entities and restores the previous drawing context.  When it fails,
// [Session.Rollback] deletes the tracked entities together with the
// sub-layer.  In both cases [Session.End] finally removes every empty child
// layer of the base layer, including sub-layers left behind by earlier
// sessions which were interrupted.
//
// Most callers use [Run], which guarantees this sequence:
//
//	err := session.Run(ctx, h, params, func(ctx context.Context, s *session.Session) error {
//		res, err := s.Run(ctx, host.AlignedDim{})
//		...
//	})
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"seehuhn.de/go/dimlayer/host"
)

type state int

const (
	stateActive state = iota
	stateCommitted
	stateRolledBack
)

var (
	errNotActive   = errors.New("session is not active")
	errNotFinished = errors.New("session ended without commit")
)

// Session is one scoped annotation session.
//
// A Session is created by [Begin] and must be finished by either
// [Session.Commit] or [Session.Rollback], followed by [Session.End].
type Session struct {
	h   host.Host
	log *slog.Logger

	base string
	sub  string

	// drawing context active before Begin
	prevLayer string
	prevStyle string

	tracked []host.ObjectID
	groups  []string
	state   state
}

// Begin starts a new session.
//
// The base layer is created if needed; its colour and print width are set
// to the values in p in either case.  A new sub-layer with the same
// properties is created below it and made current.  If p.DimStyle is set,
// it becomes the current dimension style.
func Begin(h host.Host, p *Params) (*Session, error) {
	if p == nil || p.BaseLayer == "" {
		return nil, errors.New("session: missing base layer name")
	}
	log := p.logger()

	err := ensureLayer(h, p.BaseLayer, p.Color, p.PrintWidth)
	if err != nil {
		return nil, fmt.Errorf("session: base layer %q: %w", p.BaseLayer, err)
	}

	sub, err := p.subLayerName(h)
	if err != nil {
		return nil, err
	}
	err = h.CreateLayer(sub, p.Color, p.PrintWidth)
	if err != nil {
		return nil, fmt.Errorf("session: sub-layer %q: %w", sub, err)
	}

	s := &Session{
		h:         h,
		log:       log.With("layer", sub),
		base:      p.BaseLayer,
		sub:       sub,
		prevLayer: h.CurrentLayer(),
		prevStyle: h.CurrentDimStyle(),
	}

	h.UnselectAll()
	if p.DimStyle != "" {
		err = h.SetCurrentDimStyle(p.DimStyle)
	}
	if err == nil {
		err = h.SetCurrentLayer(sub)
	}
	if err != nil {
		s.restore()
		if delErr := h.DeleteLayer(sub); delErr != nil {
			log.Warn("cannot remove sub-layer", "layer", sub, "error", delErr)
		}
		return nil, fmt.Errorf("session: activate %q: %w", sub, err)
	}

	s.log.Debug("session started", "base", p.BaseLayer, "previous", s.prevLayer)
	return s, nil
}

// ensureLayer creates a layer, or updates colour and print width of an
// existing one.
func ensureLayer(h host.Layers, name string, color host.Color, width float64) error {
	if !h.LayerExists(name) {
		return h.CreateLayer(name, color, width)
	}
	err := h.SetLayerColor(name, color)
	if err != nil {
		return err
	}
	return h.SetLayerPrintWidth(name, width)
}

// BaseLayer returns the full name of the base layer.
func (s *Session) BaseLayer() string {
	return s.base
}

// SubLayer returns the full name of the layer owned by this session.
func (s *Session) SubLayer() string {
	return s.sub
}

// Host returns the host the session works on.
func (s *Session) Host() host.Host {
	return s.h
}

// Track adds entities to the list of objects which are deleted if the
// session is rolled back.  Zero IDs are ignored.
func (s *Session) Track(ids ...host.ObjectID) {
	for _, id := range ids {
		if id != 0 {
			s.tracked = append(s.tracked, id)
		}
	}
}

// Tracked returns the tracked entities, in the order they were tracked.
func (s *Session) Tracked() []host.ObjectID {
	res := make([]host.ObjectID, len(s.tracked))
	copy(res, s.tracked)
	return res
}

// Keep tracks id if err is nil, and passes both values through.
// This allows to write
//
//	line, err := s.Keep(h.AddLine(a, b))
func (s *Session) Keep(id host.ObjectID, err error) (host.ObjectID, error) {
	if err == nil {
		s.Track(id)
	}
	return id, err
}

// Run executes a host command and tracks all entities it produced.
// Entities are tracked even if the command returns an error, so that a
// partial result is removed by a rollback.
func (s *Session) Run(ctx context.Context, cmd host.Command) (*host.Result, error) {
	if s.state != stateActive {
		return nil, errNotActive
	}
	res, err := s.h.Run(ctx, cmd)
	if res != nil {
		s.Track(res.Created...)
		s.groups = append(s.groups, res.Groups...)
	}
	if err != nil {
		return res, fmt.Errorf("%s: %w", cmd.CommandName(), err)
	}
	s.log.Debug("command finished", "command", cmd.CommandName(), "created", len(res.Created))
	return res, nil
}

// Group puts the given entities into a new group and returns the group
// name.
func (s *Session) Group(ids ...host.ObjectID) (string, error) {
	name, err := s.h.Group(ids)
	if err != nil {
		return "", err
	}
	s.groups = append(s.groups, name)
	return name, nil
}

// Groups returns the names of the groups created through this session.
func (s *Session) Groups() []string {
	res := make([]string, len(s.groups))
	copy(res, s.groups)
	return res
}

// Commit finishes a successful session.  The tracked entities and the
// sub-layer are kept, the previous layer and dimension style are restored
// and the selection is cleared.
func (s *Session) Commit() error {
	if s.state != stateActive {
		return errNotActive
	}
	s.h.UnselectAll()
	if errs := s.restore(); len(errs) > 0 {
		return fmt.Errorf("session: commit: %w", errors.Join(errs...))
	}
	s.state = stateCommitted
	s.log.Info("session committed", "objects", len(s.tracked))
	return nil
}

// Rollback finishes a failed session.
//
// Every tracked entity which still exists is deleted, the previous layer
// and dimension style are restored, and the sub-layer is deleted if it is
// empty.  The cause is shown to the operator.  Rollback never returns
// cause; the returned error only reports problems encountered during the
// cleanup itself.
func (s *Session) Rollback(cause error) error {
	if s.state != stateActive {
		return errNotActive
	}
	s.state = stateRolledBack

	var errs []error
	removed := 0
	for _, id := range s.tracked {
		if !s.h.ObjectExists(id) {
			continue
		}
		err := s.h.DeleteObject(id)
		if err != nil && !errors.Is(err, host.ErrNotFound) {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	s.h.UnselectAll()
	errs = append(errs, s.restore()...)

	if s.h.LayerExists(s.sub) {
		empty, err := s.h.IsLayerEmpty(s.sub)
		switch {
		case err != nil:
			errs = append(errs, err)
		case empty:
			if err := s.h.DeleteLayer(s.sub); err != nil {
				errs = append(errs, err)
			}
		default:
			s.log.Warn("sub-layer keeps untracked objects")
		}
	}

	if cause != nil {
		s.log.Info("session rolled back", "cause", cause, "removed", removed)
		s.h.ShowMessage(Message(cause))
	}

	err := errors.Join(errs...)
	if err != nil {
		s.log.Warn("rollback incomplete", "error", err)
	}
	return err
}

// End activates the base layer and deletes all empty child layers of it.
// If the session was neither committed nor rolled back, it is rolled back
// first.  End can be called more than once.
func (s *Session) End() error {
	var errs []error
	if s.state == stateActive {
		if err := s.Rollback(errNotFinished); err != nil {
			errs = append(errs, err)
		}
	}

	if err := s.h.SetCurrentLayer(s.base); err != nil {
		errs = append(errs, err)
	}
	deleted, err := Sweep(s.h, s.base)
	if err != nil {
		errs = append(errs, err)
	}
	if len(deleted) > 0 {
		s.log.Debug("empty layers removed", "layers", deleted)
	}
	return errors.Join(errs...)
}

// restore reactivates the layer and dimension style which were current
// when the session started.
func (s *Session) restore() []error {
	var errs []error
	layer := s.prevLayer
	if layer == "" || !s.h.LayerExists(layer) {
		layer = s.base
	}
	if err := s.h.SetCurrentLayer(layer); err != nil {
		errs = append(errs, err)
	}
	if s.prevStyle != "" && s.h.CurrentDimStyle() != s.prevStyle {
		if err := s.h.SetCurrentDimStyle(s.prevStyle); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Sweep deletes every empty child layer of base and returns the names of
// the deleted layers.  Layers which cannot be deleted are skipped and
// reported in the returned error.
func Sweep(h host.Layers, base string) ([]string, error) {
	children, err := h.LayerChildren(base)
	if err != nil {
		return nil, err
	}

	var deleted []string
	var errs []error
	for _, name := range children {
		empty, err := h.IsLayerEmpty(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !empty {
			continue
		}
		if err := h.DeleteLayer(name); err != nil {
			errs = append(errs, err)
			continue
		}
		deleted = append(deleted, name)
	}
	return deleted, errors.Join(errs...)
}

// Message returns the text shown to the operator when a session is rolled
// back because of err.
func Message(err error) string {
	var unexpected *host.UnexpectedResultError
	var precondition *host.PreconditionError
	switch {
	case host.IsCancel(err):
		return "Cancelled, the created objects were removed."
	case errors.As(err, &unexpected):
		return "The command did not produce the expected result: " + err.Error()
	case errors.As(err, &precondition):
		return "Cannot continue: " + err.Error()
	default:
		return "An error occurred: " + err.Error()
	}
}
