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
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/dimlayer/host"
	"seehuhn.de/go/dimlayer/memdoc"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

var (
	basico = &Style{
		Name:       "B\u00c1SICO",
		BaseLayer:  "Cotas B\u00c1SICO",
		Color:      host.RGB(255, 5, 5),
		PrintWidth: 2,
		Font:       "LibelSuitRg-Regular",
		TextHeight: 40,
	}
	depot = &Style{
		Name:       "DEPOT",
		BaseLayer:  "Cotas DEPOT",
		Color:      host.Black,
		PrintWidth: 1.1,
		Font:       "Kanit-Regular",
		TextHeight: 35,
	}
	weHave = &Style{
		Name:       "WE-HAVE",
		BaseLayer:  "Cotas WE-HAVE",
		Color:      host.RGB(231, 91, 103),
		PrintWidth: 2,
		Font:       "MADETommySoft-Light",
		TextHeight: 35,
	}
	tuHome = &Style{
		Name:       "TU-HOME",
		BaseLayer:  "Cotas TU-HOME",
		Color:      host.Black,
		PrintWidth: 2,
		Font:       "Myriad Pro",
		TextHeight: 30,
	}
)

// setup returns a document using a scripted prompter, together with an
// annotator which names its sub-layers "cota-t1".
func setup(style *Style, answers ...memdoc.Answer) (*memdoc.Document, *memdoc.Script, *Annotator) {
	script := memdoc.NewScript(answers...)
	doc := memdoc.New(&memdoc.Options{
		Prompter: script,
		Library:  memdoc.DefaultLibrary(),
	})
	a := &Annotator{
		Host:  doc,
		Style: style,
		Token: func() string { return "t1" },
	}
	return doc, script, a
}

func subLayer(style *Style) string {
	return host.LayerPath(style.BaseLayer, "cota-t1")
}

func onLayer(snap *memdoc.Snapshot, layer string) []memdoc.ObjectInfo {
	var res []memdoc.ObjectInfo
	for _, obj := range snap.Objects {
		if obj.Layer == layer {
			res = append(res, obj)
		}
	}
	return res
}

func kinds(objs []memdoc.ObjectInfo) []host.Kind {
	res := make([]host.Kind, len(objs))
	for i, obj := range objs {
		res[i] = obj.Kind
	}
	return res
}

// checkWings verifies that obj is a closed arrowhead at tip, pointing in
// direction dir, with the default wing length and angle.
func checkWings(t *testing.T, obj memdoc.ObjectInfo, tip, dir vec.Vec2) {
	t.Helper()
	if len(obj.Points) != 4 {
		t.Fatalf("arrowhead has %d points", len(obj.Points))
	}
	if d := cmp.Diff(tip, obj.Points[0], approx); d != "" {
		t.Errorf("tip (-want +got):\n%s", d)
	}
	if d := cmp.Diff(tip, obj.Points[3], approx); d != "" {
		t.Errorf("outline not closed (-want +got):\n%s", d)
	}
	u := dir.Normalize()
	for _, p := range obj.Points[1:3] {
		w := p.Sub(tip)
		if l := w.Length(); math.Abs(l-DefaultArrowLength) > 1e-9 {
			t.Errorf("wing length %g", l)
		}
		cos := (w.X*u.X + w.Y*u.Y) / w.Length()
		want := math.Cos(DefaultArrowAngle * math.Pi / 180)
		if math.Abs(cos-want) > 1e-9 {
			t.Errorf("wing angle: cos=%g, want %g", cos, want)
		}
	}
}

func TestAlignedHorizontal(t *testing.T) {
	doc, _, a := setup(basico, memdoc.Point(0, 0), memdoc.Point(100, 0), memdoc.Point(50, 20))

	err := a.Aligned(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	snap := doc.Snapshot()
	sub := subLayer(basico)
	l, ok := snap.Layer(sub)
	if !ok {
		t.Fatalf("sub-layer %q missing", sub)
	}
	if l.Color != basico.Color || l.PrintWidth != basico.PrintWidth {
		t.Errorf("sub-layer properties %v", l)
	}

	objs := onLayer(snap, sub)
	wantKinds := []host.Kind{host.KindLine, host.KindLine, host.KindLine, host.KindText}
	if d := cmp.Diff(wantKinds, kinds(objs)); d != "" {
		t.Fatalf("entities (-want +got):\n%s", d)
	}

	label := objs[3]
	if label.Text != "10,0 cm\n3,9\"" {
		t.Errorf("label %q", label.Text)
	}
	if label.Font != basico.Font || label.Height != 40 || label.Color != basico.Color {
		t.Errorf("label style: font %q, height %g, colour %v", label.Font, label.Height, label.Color)
	}
	if label.Angle != 0 {
		t.Errorf("horizontal label turned by %g", label.Angle)
	}

	if len(snap.Groups) != 1 {
		t.Fatalf("%d groups", len(snap.Groups))
	}
	for _, members := range snap.Groups {
		if len(members) != 1 {
			t.Fatalf("group members %v", members)
		}
		line, _ := snap.Object(members[0])
		want := []vec.Vec2{{X: 0, Y: 20}, {X: 100, Y: 20}}
		if d := cmp.Diff(want, line.Points, approx); d != "" {
			t.Errorf("dimension line (-want +got):\n%s", d)
		}
		if line.PrintWidth != 2 {
			t.Errorf("print width %g", line.PrintWidth)
		}
	}

	if snap.CurrentLayer != basico.BaseLayer {
		t.Errorf("current layer %q", snap.CurrentLayer)
	}
	if snap.DimStyle != "Default" {
		t.Errorf("dimension style %q not restored", snap.DimStyle)
	}
	if len(snap.Selected) != 0 {
		t.Errorf("selection %v", snap.Selected)
	}
}

func TestAlignedVertical(t *testing.T) {
	doc, _, a := setup(basico, memdoc.Point(0, 0), memdoc.Point(0, 100), memdoc.Point(20, 50))

	err := a.Aligned(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	var label memdoc.ObjectInfo
	for _, obj := range onLayer(doc.Snapshot(), subLayer(basico)) {
		if obj.Kind == host.KindText {
			label = obj
		}
	}
	if label.Angle != -90 {
		t.Errorf("label angle %g, want -90", label.Angle)
	}
	if d := cmp.Diff(vec.Vec2{X: 20, Y: 50}, label.At, approx); d != "" {
		t.Errorf("label position (-want +got):\n%s", d)
	}
}

func TestLinear(t *testing.T) {
	doc, _, a := setup(depot, memdoc.Point(0, 0), memdoc.Point(100, 0), memdoc.Point(50, 20))

	err := a.Linear(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	snap := doc.Snapshot()
	objs := onLayer(snap, subLayer(depot))
	if len(objs) != 8 {
		t.Fatalf("%d entities on the sub-layer, want 8", len(objs))
	}

	if len(snap.Groups) != 1 {
		t.Fatalf("%d groups", len(snap.Groups))
	}
	var members []host.ObjectID
	for _, m := range snap.Groups {
		members = m
	}
	var got []host.Kind
	for _, id := range members {
		obj, _ := snap.Object(id)
		got = append(got, obj.Kind)
	}
	want := []host.Kind{
		host.KindLine,
		host.KindPolyline, host.KindHatch,
		host.KindPolyline, host.KindHatch,
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Fatalf("group (-want +got):\n%s", d)
	}

	start, _ := snap.Object(members[1])
	checkWings(t, start, vec.Vec2{X: 0, Y: 20}, vec.Vec2{X: -1})
	end, _ := snap.Object(members[3])
	checkWings(t, end, vec.Vec2{X: 100, Y: 20}, vec.Vec2{X: 1})
	for _, id := range members[1:] {
		obj, _ := snap.Object(id)
		if obj.Color != host.Black {
			t.Errorf("arrow colour %v", obj.Color)
		}
		if obj.Kind == host.KindHatch && obj.Pattern != "Solid" {
			t.Errorf("hatch pattern %q", obj.Pattern)
		}
		if obj.Kind == host.KindPolyline && obj.PrintWidth != 1.1 {
			t.Errorf("arrow print width %g", obj.PrintWidth)
		}
	}

	for _, obj := range objs {
		if obj.Kind != host.KindText {
			continue
		}
		if obj.Text != "10,0 cm\n3,9\"" || obj.Font != "Kanit-Regular" || obj.Height != 35 {
			t.Errorf("label %q %q %g", obj.Text, obj.Font, obj.Height)
		}
	}
}

func TestDimensionCancelled(t *testing.T) {
	for _, op := range []Operation{OpAligned, OpLinear} {
		t.Run(string(op), func(t *testing.T) {
			doc, _, a := setup(basico, memdoc.Point(0, 0), memdoc.Cancel())

			err := a.Do(context.Background(), op)
			if !host.IsCancel(err) {
				t.Fatalf("got %v, want cancellation", err)
			}

			snap := doc.Snapshot()
			want := []string{memdoc.DefaultLayer, basico.BaseLayer}
			if d := cmp.Diff(want, snap.LayerNames()); d != "" {
				t.Errorf("layers (-want +got):\n%s", d)
			}
			if len(snap.Objects) != 0 {
				t.Errorf("%d entities left", len(snap.Objects))
			}
			msgs := doc.Messages()
			if len(msgs) == 0 || msgs[len(msgs)-1] != "Cancelled, the created objects were removed." {
				t.Errorf("messages %q", msgs)
			}
		})
	}
}

func TestDimensionDegenerate(t *testing.T) {
	doc, _, a := setup(basico, memdoc.Point(10, 10), memdoc.Point(10, 10), memdoc.Point(20, 20))

	err := a.Aligned(context.Background())
	if err == nil || host.IsCancel(err) {
		t.Fatalf("got %v, want a command error", err)
	}
	if n := len(doc.Snapshot().Objects); n != 0 {
		t.Errorf("%d entities left", n)
	}
	msgs := doc.Messages()
	if len(msgs) == 0 || !strings.HasPrefix(msgs[len(msgs)-1], "An error occurred: ") {
		t.Errorf("messages %q", msgs)
	}
}

func TestManual(t *testing.T) {
	doc, script, a := setup(depot)
	ctx := context.Background()

	note, err := doc.AddText("85,0 cm", vec.Vec2{X: 0, Y: -100}, 10)
	if err != nil {
		t.Fatal(err)
	}
	script.Append(memdoc.Point(100, -200), memdoc.Point(300, -200), memdoc.Point(200, -230))
	res, err := doc.Run(ctx, host.AlignedDim{})
	if err != nil {
		t.Fatal(err)
	}
	dim := res.Created[0]

	cases := []struct {
		name string
		pick host.ObjectID
		want string
	}{
		{"text", note, "85,0 cm"},
		{"dimension", dim, "200.0"},
	}
	for i, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a.Token = func() string { return c.name }
			script.Append(
				memdoc.Point(0, 0), memdoc.Point(100, 0), memdoc.Point(100, 30),
				memdoc.Pick(c.pick),
			)

			err := a.Manual(ctx)
			if err != nil {
				t.Fatal(err)
			}

			snap := doc.Snapshot()
			if len(snap.Groups) != i+1 {
				t.Fatalf("%d groups", len(snap.Groups))
			}
			objs := onLayer(snap, host.LayerPath(depot.BaseLayer, "cota-"+c.name))
			want := []host.Kind{
				host.KindLine,
				host.KindPolyline, host.KindHatch,
				host.KindPolyline, host.KindHatch,
				host.KindText,
			}
			if d := cmp.Diff(want, kinds(objs)); d != "" {
				t.Fatalf("entities (-want +got):\n%s", d)
			}

			line := objs[0]
			wantLine := []vec.Vec2{{X: 0, Y: 30}, {X: 100, Y: 30}}
			if d := cmp.Diff(wantLine, line.Points, approx); d != "" {
				t.Errorf("line (-want +got):\n%s", d)
			}
			if line.PrintWidth != 1.1 {
				t.Errorf("print width %g", line.PrintWidth)
			}
			checkWings(t, objs[1], wantLine[0], vec.Vec2{X: -1})
			checkWings(t, objs[3], wantLine[1], vec.Vec2{X: 1})

			label := objs[5]
			if label.Text != c.want {
				t.Errorf("label %q, want %q", label.Text, c.want)
			}
			if d := cmp.Diff(vec.Vec2{X: 50, Y: 30}, label.At, approx); d != "" {
				t.Errorf("label position (-want +got):\n%s", d)
			}
			if label.Height != 35 || label.Font != "Kanit-Regular" {
				t.Errorf("label style %g %q", label.Height, label.Font)
			}
		})
	}
}

func TestManualWrongPick(t *testing.T) {
	doc, script, a := setup(depot)

	other, err := doc.AddLine(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 1, Y: 1})
	if err != nil {
		t.Fatal(err)
	}
	script.Append(
		memdoc.Point(0, 0), memdoc.Point(100, 0), memdoc.Point(100, 30),
		memdoc.Pick(other),
	)

	err = a.Manual(context.Background())
	if err == nil {
		t.Fatal("picking a line succeeded")
	}
	snap := doc.Snapshot()
	if len(snap.Objects) != 1 || snap.Objects[0].ID != other {
		t.Errorf("entities left: %v", snap.Objects)
	}
}

func TestIsometric(t *testing.T) {
	doc, script, a := setup(weHave)

	var notes []host.ObjectID
	for i, s := range []string{"50 cm", "120 cm"} {
		id, err := doc.AddText(s, vec.Vec2{X: 500, Y: float64(100 * i)}, 10)
		if err != nil {
			t.Fatal(err)
		}
		notes = append(notes, id)
	}
	script.Append(
		memdoc.Point(0, 100), memdoc.Point(0, 0), memdoc.Point(100, 0), memdoc.Done(),
		memdoc.Point(0, 0), memdoc.Point(-6, -8),
		memdoc.Pick(notes[0]), memdoc.Pick(notes[1]),
	)

	err := a.Isometric(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	snap := doc.Snapshot()
	objs := onLayer(snap, subLayer(weHave))
	want := []host.Kind{host.KindPolyline, host.KindText, host.KindText}
	if d := cmp.Diff(want, kinds(objs)); d != "" {
		t.Fatalf("entities (-want +got):\n%s", d)
	}

	moved := objs[0]
	wantPoints := []vec.Vec2{{X: -10, Y: 100}, {X: -10, Y: -10}, {X: 100, Y: -10}}
	if d := cmp.Diff(wantPoints, moved.Points, approx); d != "" {
		t.Errorf("offset polyline (-want +got):\n%s", d)
	}
	if moved.Color != weHave.Color || moved.PrintWidth != 2 {
		t.Errorf("offset polyline style %v %g", moved.Color, moved.PrintWidth)
	}

	labels := []struct {
		text string
		at   vec.Vec2
	}{
		{"50 cm", vec.Vec2{X: -10, Y: 45}},
		{"120 cm", vec.Vec2{X: 45, Y: -10}},
	}
	for i, l := range labels {
		got := objs[i+1]
		if got.Text != l.text {
			t.Errorf("label %d: %q, want %q", i, got.Text, l.text)
		}
		if d := cmp.Diff(l.at, got.At, approx); d != "" {
			t.Errorf("label %d position (-want +got):\n%s", i, d)
		}
		if got.Font != weHave.Font || got.Height != 35 || got.Color != weHave.Color {
			t.Errorf("label %d style %q %g %v", i, got.Font, got.Height, got.Color)
		}
	}

	if len(snap.Groups) != 1 {
		t.Fatalf("%d groups", len(snap.Groups))
	}
	for _, members := range snap.Groups {
		if d := cmp.Diff([]host.ObjectID{moved.ID, objs[1].ID, objs[2].ID}, members); d != "" {
			t.Errorf("group (-want +got):\n%s", d)
		}
	}
}

func TestIsometricThreeSegments(t *testing.T) {
	doc, script, a := setup(weHave)

	var notes []host.ObjectID
	for i, s := range []string{"a", "b", "c"} {
		id, err := doc.AddText(s, vec.Vec2{X: 500, Y: float64(100 * i)}, 10)
		if err != nil {
			t.Fatal(err)
		}
		notes = append(notes, id)
	}
	script.Append(
		memdoc.Point(0, 100), memdoc.Point(0, 0), memdoc.Point(100, -50), memdoc.Point(200, 0), memdoc.Done(),
		memdoc.Point(0, 0), memdoc.Point(0, 5),
		memdoc.Pick(notes[0]), memdoc.Pick(notes[1]), memdoc.Pick(notes[2]),
	)

	err := a.Isometric(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	var texts []string
	for _, obj := range onLayer(doc.Snapshot(), subLayer(weHave)) {
		if obj.Kind == host.KindText {
			texts = append(texts, obj.Text)
		}
	}
	if d := cmp.Diff([]string{"a", "b", "c"}, texts); d != "" {
		t.Errorf("labels (-want +got):\n%s", d)
	}
	if script.Remaining() != 0 {
		t.Errorf("%d answers unused", script.Remaining())
	}
}

func TestIsometricSegments(t *testing.T) {
	cases := []struct {
		name   string
		points []memdoc.Answer
	}{
		{"one", []memdoc.Answer{memdoc.Point(0, 0), memdoc.Point(10, 0)}},
		{"four", []memdoc.Answer{
			memdoc.Point(0, 0), memdoc.Point(10, 0), memdoc.Point(10, 10),
			memdoc.Point(20, 10), memdoc.Point(20, 20),
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			doc, script, a := setup(weHave, c.points...)
			script.Append(memdoc.Done())

			err := a.Isometric(context.Background())
			var pre *host.PreconditionError
			if !errors.As(err, &pre) {
				t.Fatalf("got %v, want a precondition error", err)
			}
			if n := len(doc.Snapshot().Objects); n != 0 {
				t.Errorf("%d entities left", n)
			}
			msgs := doc.Messages()
			if !strings.HasPrefix(msgs[len(msgs)-1], "Cannot continue: ") {
				t.Errorf("message %q", msgs[len(msgs)-1])
			}
		})
	}
}

func TestIsometricRepeatedPicks(t *testing.T) {
	doc, script, a := setup(weHave)

	var notes []host.ObjectID
	for i, s := range []string{"50 cm", "120 cm"} {
		id, err := doc.AddText(s, vec.Vec2{X: 500, Y: float64(100 * i)}, 10)
		if err != nil {
			t.Fatal(err)
		}
		notes = append(notes, id)
	}
	script.Append(
		memdoc.Point(0, 100), memdoc.Point(0, 100), memdoc.Point(0, 0),
		memdoc.Point(100, 0), memdoc.Point(100, 0), memdoc.Done(),
		memdoc.Point(0, 0), memdoc.Point(-6, -8),
		memdoc.Pick(notes[0]), memdoc.Pick(notes[1]),
	)

	err := a.Isometric(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	objs := onLayer(doc.Snapshot(), subLayer(weHave))
	want := []host.Kind{host.KindPolyline, host.KindText, host.KindText}
	if d := cmp.Diff(want, kinds(objs)); d != "" {
		t.Fatalf("entities (-want +got):\n%s", d)
	}
	wantPoints := []vec.Vec2{{X: -10, Y: 100}, {X: -10, Y: -10}, {X: 100, Y: -10}}
	if d := cmp.Diff(wantPoints, objs[0].Points, approx); d != "" {
		t.Errorf("offset polyline (-want +got):\n%s", d)
	}
	for _, obj := range objs[1:] {
		if math.IsNaN(obj.At.X) || math.IsNaN(obj.At.Y) {
			t.Errorf("label %q at %v", obj.Text, obj.At)
		}
	}
}

// nanOffset is a host whose offset command produces invalid coordinates.
type nanOffset struct {
	*memdoc.Document
}

func (h nanOffset) Run(ctx context.Context, cmd host.Command) (*host.Result, error) {
	if _, ok := cmd.(host.Offset); !ok {
		return h.Document.Run(ctx, cmd)
	}
	nan := math.NaN()
	id, err := h.AddPolyline([]vec.Vec2{{X: nan, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: math.Inf(1)}})
	if err != nil {
		return nil, err
	}
	return &host.Result{Created: []host.ObjectID{id}}, nil
}

func TestIsometricInvalidOffset(t *testing.T) {
	doc, _, _ := setup(weHave,
		memdoc.Point(0, 100), memdoc.Point(0, 0), memdoc.Point(100, 0), memdoc.Done(),
		memdoc.Point(0, 0), memdoc.Point(-6, -8),
	)
	a := &Annotator{Host: nanOffset{doc}, Style: weHave}

	err := a.Isometric(context.Background())
	var unexpected *host.UnexpectedResultError
	if !errors.As(err, &unexpected) {
		t.Fatalf("got %v, want an unexpected result", err)
	}
	if n := len(doc.Snapshot().Objects); n != 0 {
		t.Errorf("%d entities left", n)
	}
}

func TestFinishedInputCancels(t *testing.T) {
	cases := []struct {
		name    string
		op      Operation
		answers []memdoc.Answer
	}{
		{"aligned", OpAligned, []memdoc.Answer{memdoc.Point(0, 0), memdoc.Done()}},
		{"linear", OpLinear, []memdoc.Answer{memdoc.Point(0, 0), memdoc.Point(10, 0), memdoc.Done()}},
		{"manual", OpManual, []memdoc.Answer{memdoc.Done()}},
		{"isometric", OpIsometric, []memdoc.Answer{
			memdoc.Point(0, 100), memdoc.Point(0, 0), memdoc.Point(100, 0), memdoc.Done(),
			memdoc.Point(0, 0), memdoc.Done(),
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			doc, _, a := setup(depot, c.answers...)
			err := a.Do(context.Background(), c.op)
			if !errors.Is(err, host.ErrCancelled) {
				t.Fatalf("got %v, want %v", err, host.ErrCancelled)
			}
			msgs := doc.Messages()
			if len(msgs) == 0 || !strings.HasPrefix(msgs[len(msgs)-1], "Cancelled") {
				t.Errorf("messages %q", msgs)
			}
			if n := len(doc.Snapshot().Objects); n != 0 {
				t.Errorf("%d entities left", n)
			}
		})
	}
}

func TestIsometricNoPolyline(t *testing.T) {
	doc, _, a := setup(weHave, memdoc.Point(0, 0), memdoc.Done())

	err := a.Isometric(context.Background())
	var unexpected *host.UnexpectedResultError
	if !errors.As(err, &unexpected) {
		t.Fatalf("got %v, want an unexpected result", err)
	}
	if unexpected.Got != 0 {
		t.Errorf("got count %d", unexpected.Got)
	}
	if _, ok := doc.Snapshot().Layer(subLayer(weHave)); ok {
		t.Error("sub-layer not removed")
	}
}

func TestHumanScale(t *testing.T) {
	doc, _, a := setup(tuHome)
	ctx := context.Background()

	for run := range 2 {
		err := a.HumanScale(ctx)
		if err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
	}

	snap := doc.Snapshot()
	top := FigureLayerName("TU-HOME")
	want := []string{
		memdoc.DefaultLayer,
		tuHome.BaseLayer,
		top,
		host.LayerPath(top, figureLines),
		host.LayerPath(top, figureLabels),
	}
	if d := cmp.Diff(want, snap.LayerNames(), cmpopts.SortSlices(func(a, b string) bool { return a < b })); d != "" {
		t.Errorf("layers (-want +got):\n%s", d)
	}
	for _, name := range want[3:] {
		l, _ := snap.Layer(name)
		if l.Color != host.Black {
			t.Errorf("layer %q has colour %v", name, l.Color)
		}
	}

	var count int
	for _, obj := range snap.Objects {
		if obj.Layer == top || strings.HasPrefix(obj.Layer, top+host.Separator) {
			count++
		}
		if obj.Kind == host.KindText && obj.Font != "Myriad Pro" {
			t.Errorf("label font %q", obj.Font)
		}
	}
	if count != len(memdoc.HumanFigure().Objects) {
		t.Errorf("%d figure entities, want %d", count, len(memdoc.HumanFigure().Objects))
	}
}

func TestHumanScaleBadFigure(t *testing.T) {
	fig := memdoc.HumanFigure()
	fig.Objects[1].Name = "Figura"
	script := memdoc.NewScript()
	doc := memdoc.New(&memdoc.Options{
		Prompter: script,
		Library:  map[string]*memdoc.Figure{FigureName: fig},
	})
	a := &Annotator{Host: doc, Style: weHave}

	err := a.HumanScale(context.Background())
	var pre *host.PreconditionError
	if !errors.As(err, &pre) {
		t.Fatalf("got %v, want a precondition error", err)
	}

	snap := doc.Snapshot()
	want := []string{memdoc.DefaultLayer, weHave.BaseLayer}
	if d := cmp.Diff(want, snap.LayerNames()); d != "" {
		t.Errorf("layers (-want +got):\n%s", d)
	}
	if len(snap.Objects) != 0 || len(snap.Groups) != 0 {
		t.Errorf("%d entities and %d groups left", len(snap.Objects), len(snap.Groups))
	}
}

// oldFigure adds a brand figure layer with a single line, as left by an
// earlier run.
func oldFigure(t *testing.T, doc *memdoc.Document, brand string) host.ObjectID {
	t.Helper()
	layer := FigureLayerName(brand)
	if err := doc.CreateLayer(layer, host.Black, 0); err != nil {
		t.Fatal(err)
	}
	prev := doc.CurrentLayer()
	if err := doc.SetCurrentLayer(layer); err != nil {
		t.Fatal(err)
	}
	id, err := doc.AddLine(vec.Vec2{}, vec.Vec2{X: 100})
	if err != nil {
		t.Fatal(err)
	}
	if err := doc.SetCurrentLayer(prev); err != nil {
		t.Fatal(err)
	}
	return id
}

func TestHumanScaleKeepsEarlierFigure(t *testing.T) {
	fig := memdoc.HumanFigure()
	fig.Objects = fig.Objects[:3] // no height label
	doc := memdoc.New(&memdoc.Options{
		Prompter: memdoc.NewScript(),
		Library:  map[string]*memdoc.Figure{FigureName: fig},
	})
	old := oldFigure(t, doc, depot.Name)
	a := &Annotator{Host: doc, Style: depot}

	err := a.HumanScale(context.Background())
	var pre *host.PreconditionError
	if !errors.As(err, &pre) {
		t.Fatalf("got %v, want a precondition error", err)
	}

	snap := doc.Snapshot()
	want := []string{memdoc.DefaultLayer, FigureLayerName(depot.Name), depot.BaseLayer}
	if d := cmp.Diff(want, snap.LayerNames(), cmpopts.SortSlices(func(a, b string) bool { return a < b })); d != "" {
		t.Errorf("layers (-want +got):\n%s", d)
	}
	obj, ok := snap.Object(old)
	if !ok {
		t.Fatal("earlier figure was removed")
	}
	if obj.Layer != FigureLayerName(depot.Name) {
		t.Errorf("earlier figure moved to %q", obj.Layer)
	}
	if len(snap.Objects) != 1 {
		t.Errorf("%d entities left, want 1", len(snap.Objects))
	}
}

func TestHumanScaleReplacesEarlierFigure(t *testing.T) {
	doc, _, a := setup(depot)
	old := oldFigure(t, doc, depot.Name)

	if err := a.HumanScale(context.Background()); err != nil {
		t.Fatal(err)
	}

	snap := doc.Snapshot()
	if _, ok := snap.Object(old); ok {
		t.Error("earlier figure was kept")
	}
	top := FigureLayerName(depot.Name)
	want := []string{
		memdoc.DefaultLayer,
		depot.BaseLayer,
		top,
		host.LayerPath(top, figureLines),
		host.LayerPath(top, figureLabels),
	}
	if d := cmp.Diff(want, snap.LayerNames(), cmpopts.SortSlices(func(a, b string) bool { return a < b })); d != "" {
		t.Errorf("layers (-want +got):\n%s", d)
	}
}

func TestHumanScaleErrors(t *testing.T) {
	t.Run("missing figure", func(t *testing.T) {
		doc := memdoc.New(nil)
		err := HumanScale(context.Background(), doc, weHave)
		if !errors.Is(err, host.ErrNotFound) {
			t.Errorf("got %v, want %v", err, host.ErrNotFound)
		}
	})
	t.Run("layer exists", func(t *testing.T) {
		doc, _, a := setup(weHave)
		if err := doc.CreateLayer(FigureLayer, host.Black, 0); err != nil {
			t.Fatal(err)
		}
		err := a.HumanScale(context.Background())
		var pre *host.PreconditionError
		if !errors.As(err, &pre) {
			t.Fatalf("got %v, want a precondition error", err)
		}
		if !doc.LayerExists(FigureLayer) {
			t.Error("existing layer was removed")
		}
	})
}

func TestArrowPoints(t *testing.T) {
	got := arrowPoints(vec.Vec2{X: 5, Y: 5}, vec.Vec2{X: 0, Y: 3}, 10, 90)
	want := []vec.Vec2{{X: 5, Y: 5}, {X: -5, Y: 5}, {X: 15, Y: 5}, {X: 5, Y: 5}}
	if d := cmp.Diff(want, got, approx); d != "" {
		t.Errorf("arrow (-want +got):\n%s", d)
	}
}

func TestDimensionLine(t *testing.T) {
	doc := memdoc.New(nil)
	ext, _ := doc.AddLine(vec.Vec2{X: 0, Y: 1}, vec.Vec2{X: 0, Y: 22})
	far, _ := doc.AddLine(vec.Vec2{X: 0, Y: 200}, vec.Vec2{X: 100, Y: 200})
	line, _ := doc.AddLine(vec.Vec2{X: 0, Y: 20}, vec.Vec2{X: 100, Y: 20})
	tips := []vec.Vec2{{X: 0, Y: 20}, {X: 100, Y: 20}}
	label := vec.Vec2{X: 50, Y: 190}

	id, ok := dimensionLine(doc, []host.ObjectID{ext, far, line}, tips, label)
	if !ok || id != line {
		t.Errorf("got %d, want %d", id, line)
	}

	id, ok = dimensionLine(doc, []host.ObjectID{ext, far, line}, nil, label)
	if !ok || id != far {
		t.Errorf("without tips: got %d, want %d", id, far)
	}

	if _, ok := dimensionLine(doc, nil, tips, label); ok {
		t.Error("found a line in an empty list")
	}
}

func TestParseOperation(t *testing.T) {
	for _, op := range Operations() {
		got, err := ParseOperation(string(op))
		if err != nil || got != op {
			t.Errorf("%q: got %q, %v", op, got, err)
		}
	}
	if _, err := ParseOperation("radial"); err == nil {
		t.Error("unknown operation accepted")
	}
}

func TestUseDimStyle(t *testing.T) {
	doc, _, a := setup(depot)
	before := doc.Snapshot()
	if err := a.Do(context.Background(), OpDimStyle); err != nil {
		t.Fatal(err)
	}
	if got := doc.CurrentDimStyle(); got != DefaultDimStyle {
		t.Errorf("current dimension style %q, want %q", got, DefaultDimStyle)
	}
	if d := cmp.Diff(before.LayerNames(), doc.Snapshot().LayerNames()); d != "" {
		t.Errorf("layers changed (-before +after):\n%s", d)
	}

	custom := *depot
	custom.DimStyle = "Cotas 2026"
	doc, _, a = setup(&custom)
	prev := doc.CurrentDimStyle()
	err := a.Do(context.Background(), OpDimStyle)
	var pre *host.PreconditionError
	if !errors.As(err, &pre) {
		t.Fatalf("got %v, want a precondition error", err)
	}
	if got := doc.CurrentDimStyle(); got != prev {
		t.Errorf("current dimension style changed to %q", got)
	}
	msgs := doc.Messages()
	if len(msgs) != 1 || !strings.Contains(msgs[0], "Cotas 2026") {
		t.Errorf("messages %q", msgs)
	}
}

func TestStyleCheck(t *testing.T) {
	cases := []struct {
		name  string
		style *Style
		ok    bool
	}{
		{"nil", nil, false},
		{"no name", &Style{BaseLayer: "x"}, false},
		{"no layer", &Style{Name: "x"}, false},
		{"negative", &Style{Name: "x", BaseLayer: "x", TextHeight: -1}, false},
		{"valid", basico, true},
	}
	for _, c := range cases {
		err := c.style.Check()
		if (err == nil) != c.ok {
			t.Errorf("%s: got %v", c.name, err)
		}
	}
}
