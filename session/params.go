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
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"seehuhn.de/go/dimlayer/host"
)

// DefaultPrefix is the prefix of sub-layer names if Params.Prefix is empty.
const DefaultPrefix = "cota-"

// defaultNameAttempts is used if Params.MaxNameAttempts is zero.
const defaultNameAttempts = 8

// Params describes the layers used by a session.
type Params struct {
	// BaseLayer is the full name of the shared base layer.
	BaseLayer string

	// Color and PrintWidth are applied to both the base layer and the
	// sub-layer.
	Color      host.Color
	PrintWidth float64

	// Prefix (optional) is prepended to the random token in sub-layer
	// names.  The default is [DefaultPrefix].
	Prefix string

	// DimStyle (optional) is the dimension style made current for the
	// duration of the session.
	DimStyle string

	// Token (optional) generates the random part of sub-layer names.
	// The default uses the first eight characters of a random UUID.
	Token func() string

	// MaxNameAttempts (optional) limits the number of tokens tried when
	// generated sub-layer names collide with existing layers.
	MaxNameAttempts int

	// Logger (optional) receives diagnostic messages.
	Logger *slog.Logger
}

func (p *Params) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (p *Params) token() string {
	if p.Token != nil {
		return p.Token()
	}
	return uuid.NewString()[:8]
}

// subLayerName returns the full name of a sub-layer of p.BaseLayer which
// does not exist yet.
func (p *Params) subLayerName(h host.Layers) (string, error) {
	prefix := p.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	attempts := p.MaxNameAttempts
	if attempts <= 0 {
		attempts = defaultNameAttempts
	}

	for range attempts {
		name := host.LayerPath(p.BaseLayer, prefix+p.token())
		if !h.LayerExists(name) {
			return name, nil
		}
	}
	return "", fmt.Errorf("session: no unused sub-layer name after %d attempts", attempts)
}
