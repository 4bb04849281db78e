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

	"seehuhn.de/go/dimlayer/host"
	"seehuhn.de/go/dimlayer/session"
)

// FigureName is the name under which the host finds the human scale
// reference figure.
const FigureName = "referencia_dim_hombre-objeto"

// Layers of the reference figure.  The sub-layers hold the outline and the
// height label.
const (
	FigureLayer  = "Figura-Humana"
	figureLines  = "Figura-Humana_linea"
	figureLabels = "Figura-Humana_cota"
)

// FigureLayerName returns the name of the layer which holds the human
// scale figure of a brand.
func FigureLayerName(brand string) string {
	return FigureLayer + " " + brand
}

// HumanScale imports the human scale reference figure and adapts it to the
// brand given by the style.
//
// The sub-layers of the imported figure get the brand colour and the
// height label gets the brand font.  The imported layer tree is then
// renamed to [FigureLayerName], replacing the figure of an earlier run.
// If anything fails, everything imported is removed again and the earlier
// figure is left as it was.
func (a *Annotator) HumanScale(ctx context.Context) error {
	return a.run(ctx, OpHumanScale, a.humanScale)
}

func (a *Annotator) humanScale(ctx context.Context, s *session.Session) (err error) {
	h := a.Host

	if h.LayerExists(FigureLayer) {
		return &host.PreconditionError{
			What: fmt.Sprintf("layer %q exists already", FigureLayer),
		}
	}
	target := FigureLayerName(a.Style.Name)

	// The imported layers are not part of the session.  On failure they
	// are removed here, and an earlier figure which was moved aside is
	// put back.
	imported := FigureLayer
	aside := ""
	defer func() {
		if err == nil {
			return
		}
		if h.LayerExists(imported) {
			if purgeErr := h.PurgeLayer(imported); purgeErr != nil {
				a.logger().Warn("cannot remove imported figure", "layer", imported, "error", purgeErr)
			}
		}
		if aside != "" && h.LayerExists(aside) {
			if renameErr := h.RenameLayer(aside, target); renameErr != nil {
				a.logger().Warn("cannot restore earlier figure", "layer", aside, "error", renameErr)
			}
		}
	}()

	imp := host.Import{Name: FigureName}
	res, err := s.Run(ctx, imp)
	if err != nil {
		return err
	}
	if len(res.Groups) == 0 {
		return &host.UnexpectedResultError{
			Command: imp.CommandName(),
			Want:    "a grouped figure",
			Got:     -1,
		}
	}
	members, err := h.GroupMembers(res.Groups[len(res.Groups)-1])
	if err != nil {
		return err
	}
	if err := checkFigure(h, members); err != nil {
		return err
	}
	labels, err := figureLabelIDs(h)
	if err != nil {
		return err
	}

	for _, sub := range []string{figureLines, figureLabels} {
		err := h.SetLayerColor(host.LayerPath(FigureLayer, sub), a.Style.Color)
		if err != nil {
			return err
		}
	}
	if a.Style.Font != "" {
		for _, id := range labels {
			if err := h.SetTextFont(id, a.Style.Font); err != nil {
				return err
			}
		}
	}

	// The figure of an earlier run stays in place until the new one has
	// taken its name.
	if h.LayerExists(target) {
		aside = asideName(h, target)
		if err := h.RenameLayer(target, aside); err != nil {
			aside = ""
			return fmt.Errorf("replace %q: %w", target, err)
		}
	}
	if err := h.RenameLayer(FigureLayer, target); err != nil {
		return err
	}
	imported = target
	if aside != "" {
		if err := h.PurgeLayer(aside); err != nil {
			return fmt.Errorf("replace %q: %w", target, err)
		}
		aside = ""
	}

	a.logger().Info("human scale figure placed", "layer", target)
	return nil
}

// figureLabelIDs returns the text entities on the label layer of the
// imported figure.  At least one label is required.
func figureLabelIDs(h host.Objects) ([]host.ObjectID, error) {
	ids, err := h.ObjectsByLayer(host.LayerPath(FigureLayer, figureLabels))
	if err != nil {
		return nil, err
	}
	var labels []host.ObjectID
	for _, id := range ids {
		kind, err := h.Kind(id)
		if err != nil {
			return nil, err
		}
		if kind == host.KindText {
			labels = append(labels, id)
		}
	}
	if len(labels) == 0 {
		return nil, &host.PreconditionError{What: "reference figure has no height label"}
	}
	return labels, nil
}

// asideName returns an unused layer name next to name.
func asideName(h host.Layers, name string) string {
	for i := 1; ; i++ {
		cand := fmt.Sprintf("%s (%d)", name, i)
		if !h.LayerExists(cand) {
			return cand
		}
	}
}

// checkFigure verifies that every entity of the reference figure lies on
// one of the figure layers and is named after that layer.
func checkFigure(h host.Objects, ids []host.ObjectID) error {
	allowed := map[string]bool{FigureLayer: true}
	for _, sub := range []string{figureLines, figureLabels} {
		allowed[host.LayerPath(FigureLayer, sub)] = true
	}
	for _, id := range ids {
		layer, err := h.ObjectLayer(id)
		if err != nil {
			return err
		}
		if !allowed[layer] {
			return &host.PreconditionError{
				What: fmt.Sprintf("reference figure: object %d on unexpected layer %q", id, layer),
			}
		}
		name, err := h.ObjectName(id)
		if err != nil {
			return err
		}
		if _, short := host.SplitLayerPath(layer); name != short {
			return &host.PreconditionError{
				What: fmt.Sprintf("reference figure: object %d is named %q, want %q", id, name, short),
			}
		}
	}
	return nil
}
