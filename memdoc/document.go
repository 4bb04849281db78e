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
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
	"golang.org/x/text/unicode/norm"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/dimlayer/host"
	"seehuhn.de/go/dimlayer/textmetrics"
)

// DefaultLayer is the layer which is current in a new document.
const DefaultLayer = "Default"

// TextMeasurer computes the extent of a block of text.
type TextMeasurer interface {
	Size(text string, height float64) (w, h float64)
}

// Options control the behaviour of a new document.
// The zero value, or a nil pointer, selects the defaults.
type Options struct {
	// Prompter answers interactive prompts.  If this is nil, every prompt
	// is cancelled.
	Prompter host.Prompter

	// Library holds the reference drawings available to [host.Import].
	Library map[string]*Figure

	// DimStyles lists the dimension styles of the document.  The first
	// style is current.  The default is "Default" and "Base".
	DimStyles []string

	// TextHeight is the label height of exploded dimensions.
	// The default is 10.
	TextHeight float64

	// ArrowSize is the length of arrowheads of exploded dimensions.
	// The default is 5.
	ArrowSize float64

	// ExtensionGap is the gap between the measured point and the start of
	// an extension line.  ExtensionOvershoot is the length by which an
	// extension line extends past the dimension line.  The defaults are
	// 1 and 2.
	ExtensionGap       float64
	ExtensionOvershoot float64

	// Measure computes text extents.  The default uses the metrics of the
	// Go Regular font.
	Measure TextMeasurer
}

// Document is an in-memory drawing.
type Document struct {
	roots   []*layer
	current *layer

	objects map[host.ObjectID]*object
	order   []host.ObjectID
	lastID  host.ObjectID

	groups     map[string][]host.ObjectID
	groupOrder []string
	lastGroup  int

	selected map[host.ObjectID]bool

	styles []string
	style  string

	prompter host.Prompter
	library  map[string]*Figure
	measure  TextMeasurer
	messages []string

	textHeight, arrowSize float64
	extGap, extOvershoot  float64
}

// New creates an empty document with a single layer, [DefaultLayer],
// which is current.
func New(opt *Options) *Document {
	if opt == nil {
		opt = &Options{}
	}
	d := &Document{
		objects:      make(map[host.ObjectID]*object),
		groups:       make(map[string][]host.ObjectID),
		selected:     make(map[host.ObjectID]bool),
		prompter:     opt.Prompter,
		library:      opt.Library,
		measure:      opt.Measure,
		textHeight:   opt.TextHeight,
		arrowSize:    opt.ArrowSize,
		extGap:       opt.ExtensionGap,
		extOvershoot: opt.ExtensionOvershoot,
	}
	if d.measure == nil {
		d.measure = textmetrics.Default()
	}
	if d.textHeight <= 0 {
		d.textHeight = 10
	}
	if d.arrowSize <= 0 {
		d.arrowSize = 5
	}
	if d.extGap <= 0 {
		d.extGap = 1
	}
	if d.extOvershoot <= 0 {
		d.extOvershoot = 2
	}

	d.styles = opt.DimStyles
	if len(d.styles) == 0 {
		d.styles = []string{"Default", "Base"}
	}
	d.style = d.styles[0]

	def := &layer{short: DefaultLayer}
	d.roots = []*layer{def}
	d.current = def
	return d
}

// layer is a node of the layer tree.
type layer struct {
	short    string
	parent   *layer
	children []*layer
	color    host.Color
	width    float64
}

func (l *layer) fullName() string {
	if l.parent == nil {
		return l.short
	}
	return l.parent.fullName() + host.Separator + l.short
}

// contains reports whether other is l or a descendant of l.
func (l *layer) contains(other *layer) bool {
	for x := other; x != nil; x = x.parent {
		if x == l {
			return true
		}
	}
	return false
}

func errLayer(name string) error {
	return fmt.Errorf("layer %q: %w", name, host.ErrNotFound)
}

// find returns the layer with the given full name, or nil.
// Names are compared in Unicode normalization form C.
func (d *Document) find(name string) *layer {
	if name == "" {
		return nil
	}
	list := d.roots
	var cur *layer
	for _, part := range strings.Split(norm.NFC.String(name), host.Separator) {
		cur = nil
		for _, l := range list {
			if l.short == part {
				cur = l
				break
			}
		}
		if cur == nil {
			return nil
		}
		list = cur.children
	}
	return cur
}

func (d *Document) siblings(l *layer) *[]*layer {
	if l.parent == nil {
		return &d.roots
	}
	return &l.parent.children
}

// LayerExists implements the [host.Layers] interface.
func (d *Document) LayerExists(name string) bool {
	return d.find(name) != nil
}

// CreateLayer implements the [host.Layers] interface.
func (d *Document) CreateLayer(name string, color host.Color, printWidth float64) error {
	parentName, short := host.SplitLayerPath(norm.NFC.String(name))
	if short == "" {
		return fmt.Errorf("invalid layer name %q", name)
	}
	if d.find(name) != nil {
		return fmt.Errorf("layer %q already exists", name)
	}

	l := &layer{short: short, color: color, width: printWidth}
	if parentName == "" {
		d.roots = append(d.roots, l)
		return nil
	}
	parent := d.find(parentName)
	if parent == nil {
		return errLayer(parentName)
	}
	l.parent = parent
	parent.children = append(parent.children, l)
	return nil
}

// LayerColor implements the [host.Layers] interface.
func (d *Document) LayerColor(name string) (host.Color, error) {
	l := d.find(name)
	if l == nil {
		return host.Color{}, errLayer(name)
	}
	return l.color, nil
}

// SetLayerColor implements the [host.Layers] interface.
func (d *Document) SetLayerColor(name string, color host.Color) error {
	l := d.find(name)
	if l == nil {
		return errLayer(name)
	}
	l.color = color
	return nil
}

// LayerPrintWidth implements the [host.Layers] interface.
func (d *Document) LayerPrintWidth(name string) (float64, error) {
	l := d.find(name)
	if l == nil {
		return 0, errLayer(name)
	}
	return l.width, nil
}

// SetLayerPrintWidth implements the [host.Layers] interface.
func (d *Document) SetLayerPrintWidth(name string, width float64) error {
	l := d.find(name)
	if l == nil {
		return errLayer(name)
	}
	l.width = width
	return nil
}

// LayerChildren implements the [host.Layers] interface.
func (d *Document) LayerChildren(name string) ([]string, error) {
	l := d.find(name)
	if l == nil {
		return nil, errLayer(name)
	}
	res := make([]string, len(l.children))
	for i, c := range l.children {
		res[i] = c.fullName()
	}
	return res, nil
}

// IsLayerEmpty implements the [host.Layers] interface.
func (d *Document) IsLayerEmpty(name string) (bool, error) {
	l := d.find(name)
	if l == nil {
		return false, errLayer(name)
	}
	return len(l.children) == 0 && d.countObjects(l) == 0, nil
}

func (d *Document) countObjects(l *layer) int {
	n := 0
	for _, obj := range d.objects {
		if obj.layer == l {
			n++
		}
	}
	return n
}

// DeleteLayer implements the [host.Layers] interface.
func (d *Document) DeleteLayer(name string) error {
	l := d.find(name)
	if l == nil {
		return errLayer(name)
	}
	if l == d.current {
		return fmt.Errorf("layer %q is the current layer", name)
	}
	if len(l.children) > 0 || d.countObjects(l) > 0 {
		return fmt.Errorf("layer %q is not empty", name)
	}
	d.unlink(l)
	return nil
}

// PurgeLayer implements the [host.Layers] interface.
func (d *Document) PurgeLayer(name string) error {
	l := d.find(name)
	if l == nil {
		return errLayer(name)
	}
	if l.contains(d.current) {
		return fmt.Errorf("layer %q contains the current layer", name)
	}
	for _, id := range slices.Clone(d.order) {
		if l.contains(d.objects[id].layer) {
			d.deleteObject(id)
		}
	}
	d.unlink(l)
	return nil
}

func (d *Document) unlink(l *layer) {
	list := d.siblings(l)
	*list = slices.DeleteFunc(*list, func(x *layer) bool { return x == l })
	l.parent = nil
}

// RenameLayer implements the [host.Layers] interface.
// The new name must be a full name below the same parent layer.
func (d *Document) RenameLayer(oldName, newName string) error {
	l := d.find(oldName)
	if l == nil {
		return errLayer(oldName)
	}
	newParent, short := host.SplitLayerPath(norm.NFC.String(newName))
	oldParent, _ := host.SplitLayerPath(l.fullName())
	if newParent != oldParent {
		return fmt.Errorf("cannot move layer %q to %q", oldName, newName)
	}
	if short == "" {
		return fmt.Errorf("invalid layer name %q", newName)
	}
	if other := d.find(newName); other != nil && other != l {
		return fmt.Errorf("layer %q already exists", newName)
	}
	l.short = short
	return nil
}

// CurrentLayer implements the [host.Layers] interface.
func (d *Document) CurrentLayer() string {
	return d.current.fullName()
}

// SetCurrentLayer implements the [host.Layers] interface.
func (d *Document) SetCurrentLayer(name string) error {
	l := d.find(name)
	if l == nil {
		return errLayer(name)
	}
	d.current = l
	return nil
}

// DimStyleNames implements the [host.Styles] interface.
func (d *Document) DimStyleNames() []string {
	return slices.Clone(d.styles)
}

// CurrentDimStyle implements the [host.Styles] interface.
func (d *Document) CurrentDimStyle() string {
	return d.style
}

// SetCurrentDimStyle implements the [host.Styles] interface.
func (d *Document) SetCurrentDimStyle(name string) error {
	if !slices.Contains(d.styles, name) {
		return fmt.Errorf("dimension style %q: %w", name, host.ErrNotFound)
	}
	d.style = name
	return nil
}

// AddDimStyle adds a dimension style to the document.
func (d *Document) AddDimStyle(name string) {
	if !slices.Contains(d.styles, name) {
		d.styles = append(d.styles, name)
	}
}

// GetPoint implements the [host.Prompter] interface.
func (d *Document) GetPoint(ctx context.Context, prompt string, base *vec.Vec2) (vec.Vec2, error) {
	if err := ctxErr(ctx); err != nil {
		return vec.Vec2{}, err
	}
	if d.prompter == nil {
		return vec.Vec2{}, host.ErrCancelled
	}
	return d.prompter.GetPoint(ctx, prompt, base)
}

// GetObject implements the [host.Prompter] interface.
// The picked entity must exist and be of the requested kind.
func (d *Document) GetObject(ctx context.Context, prompt string, kind host.Kind) (host.ObjectID, error) {
	if err := ctxErr(ctx); err != nil {
		return 0, err
	}
	if d.prompter == nil {
		return 0, host.ErrCancelled
	}
	id, err := d.prompter.GetObject(ctx, prompt, kind)
	if err != nil {
		return 0, err
	}
	obj, err := d.get(id)
	if err != nil {
		return 0, err
	}
	if !obj.kind.Matches(kind) {
		return 0, fmt.Errorf("picked %s, want %s", obj.kind, kind)
	}
	return id, nil
}

// ShowMessage implements the [host.Prompter] interface.
// Messages are recorded and can be retrieved with [Document.Messages].
func (d *Document) ShowMessage(msg string) {
	d.messages = append(d.messages, msg)
	if d.prompter != nil {
		d.prompter.ShowMessage(msg)
	}
}

// Messages returns all messages shown to the operator so far.
func (d *Document) Messages() []string {
	return slices.Clone(d.messages)
}

func ctxErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(host.ErrCancelled, err)
	}
	return nil
}
