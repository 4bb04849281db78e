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
	"fmt"

	"golang.org/x/exp/slices"

	"seehuhn.de/go/dimlayer/host"
)

// UseDimStyle makes the dimension style of the annotator's style current.
// If the drawing does not have this dimension style, the operator is told
// to import it and a [host.PreconditionError] is returned.
// No session is used.
func (a *Annotator) UseDimStyle() error {
	if err := a.Style.Check(); err != nil {
		return err
	}
	h := a.Host
	name := a.Style.dimStyle()

	if !slices.Contains(h.DimStyleNames(), name) {
		h.ShowMessage(fmt.Sprintf("Dimension style %q not found, import it into the drawing first.", name))
		return &host.PreconditionError{What: fmt.Sprintf("dimension style %q is missing", name)}
	}
	if err := h.SetCurrentDimStyle(name); err != nil {
		return err
	}
	h.ShowMessage(fmt.Sprintf("Dimension style %q is current.", name))
	a.logger().Info("dimension style selected", "dimstyle", name)
	return nil
}
