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

// Package termprompt answers annotation prompts from a text terminal.
//
// Points are entered as "x,y", or as "@dx,dy" relative to the base point
// of the prompt.  Entities are picked by their numeric ID.  An empty line
// finishes open-ended point input, and one of the words "q", "esc" and
// "cancel" aborts the current operation.
package termprompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/dimlayer/host"
)

// lineReader reads one line of input after showing a prompt.
type lineReader interface {
	SetPrompt(prompt string)
	ReadLine() (string, error)
}

// Prompter implements [host.Prompter] on top of line based input.
//
// Context cancellation is noticed before and after every line of input,
// but it does not interrupt a pending read.
type Prompter struct {
	lines   lineReader
	out     io.Writer
	restore func() error
}

var _ host.Prompter = (*Prompter)(nil)

// New returns a Prompter which reads lines from in and writes prompts and
// messages to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		lines: &plainReader{in: bufio.NewReader(in), out: out},
		out:   out,
	}
}

// Open returns a Prompter for standard input and output.  If standard
// input is a terminal, it is put into raw mode and line editing is
// provided; [Prompter.Close] restores the terminal.
func Open() (*Prompter, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return New(os.Stdin, os.Stdout), nil
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	rw := struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}
	t := term.NewTerminal(rw, "")
	if w, h, err := term.GetSize(fd); err == nil {
		t.SetSize(w, h)
	}
	return &Prompter{
		lines:   t,
		out:     t,
		restore: func() error { return term.Restore(fd, state) },
	}, nil
}

// Close restores the terminal state, if needed.
func (p *Prompter) Close() error {
	if p.restore == nil {
		return nil
	}
	err := p.restore()
	p.restore = nil
	return err
}

// GetPoint implements the [host.Prompter] interface.
func (p *Prompter) GetPoint(ctx context.Context, prompt string, base *vec.Vec2) (vec.Vec2, error) {
	for {
		line, err := p.read(ctx, prompt+" (x,y)")
		if err != nil {
			return vec.Vec2{}, err
		}
		if line == "" {
			return vec.Vec2{}, host.ErrDone
		}
		pt, err := parsePoint(line, base)
		if err == nil {
			return pt, nil
		}
		fmt.Fprintln(p.out, err)
	}
}

// GetObject implements the [host.Prompter] interface.
func (p *Prompter) GetObject(ctx context.Context, prompt string, kind host.Kind) (host.ObjectID, error) {
	for {
		line, err := p.read(ctx, prompt+" ("+kind.String()+" ID)")
		if err != nil {
			return 0, err
		}
		if line == "" {
			return 0, host.ErrCancelled
		}
		id, err := strconv.ParseUint(line, 10, 64)
		if err == nil && id > 0 {
			return host.ObjectID(id), nil
		}
		fmt.Fprintf(p.out, "invalid object ID %q\n", line)
	}
}

// ShowMessage implements the [host.Prompter] interface.
func (p *Prompter) ShowMessage(msg string) {
	fmt.Fprintln(p.out, msg)
}

// read shows a prompt and returns the next line of input, without
// surrounding white space.  Cancel words and the end of input are reported
// as [host.ErrCancelled].
func (p *Prompter) read(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", host.ErrCancelled, err)
	}
	p.lines.SetPrompt(prompt + ": ")
	line, err := p.lines.ReadLine()
	if errors.Is(err, io.EOF) && line == "" {
		return "", host.ErrCancelled
	} else if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", host.ErrCancelled, err)
	}

	line = strings.TrimSpace(line)
	switch strings.ToLower(line) {
	case "q", "esc", "cancel":
		return "", host.ErrCancelled
	}
	return line, nil
}

// parsePoint parses "x,y" or "x y".  A leading "@" makes the point
// relative to base.
func parsePoint(s string, base *vec.Vec2) (vec.Vec2, error) {
	rel := strings.HasPrefix(s, "@")
	if rel {
		if base == nil {
			return vec.Vec2{}, errors.New("no base point for relative input")
		}
		s = s[1:]
	}

	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 2 {
		return vec.Vec2{}, fmt.Errorf("invalid point %q", s)
	}
	var xy [2]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return vec.Vec2{}, fmt.Errorf("invalid coordinate %q", f)
		}
		xy[i] = v
	}

	pt := vec.Vec2{X: xy[0], Y: xy[1]}
	if rel {
		pt = base.Add(pt)
	}
	return pt, nil
}

// plainReader reads lines from a non-interactive input.
type plainReader struct {
	in     *bufio.Reader
	out    io.Writer
	prompt string
}

func (r *plainReader) SetPrompt(prompt string) {
	r.prompt = prompt
}

func (r *plainReader) ReadLine() (string, error) {
	fmt.Fprint(r.out, r.prompt)
	line, err := r.in.ReadString('\n')
	return strings.TrimRight(line, "\r\n"), err
}
