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

// Dimlayer adds annotations to a drawing, asking for points and objects on
// the terminal, and writes the drawing as an SVG file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"golang.org/x/text/language"

	"seehuhn.de/go/dimlayer/cmd/internal/buildinfo"
	"seehuhn.de/go/dimlayer/cmd/internal/profile"
	"seehuhn.de/go/dimlayer/config"
	"seehuhn.de/go/dimlayer/dimension"
	"seehuhn.de/go/dimlayer/host"
	"seehuhn.de/go/dimlayer/memdoc"
	"seehuhn.de/go/dimlayer/svgout"
	"seehuhn.de/go/dimlayer/termprompt"
)

// options holds all command-line flag values.
type options struct {
	style      string
	configFile string
	output     string
	input      string
	title      string
	lang       string
	logLevel   string
	logFormat  string
	force      bool
	list       bool
}

func main() {
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile := flag.String("memprofile", "", "write memory profile to `file`")

	var opts options
	flag.StringVar(&opts.style, "s", "", "annotation `style` (default from the configuration)")
	flag.StringVar(&opts.configFile, "c", "", "read styles from the YAML `file`")
	flag.StringVar(&opts.output, "o", "out.svg", "output file name, or - for stdout")
	flag.StringVar(&opts.input, "i", "", "read answers from `file` instead of the terminal")
	flag.StringVar(&opts.title, "title", "", "document title")
	flag.StringVar(&opts.lang, "lang", "", "`language` of the document title")
	flag.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn or error)")
	flag.StringVar(&opts.logFormat, "log-format", "", "log format (text or json)")
	flag.BoolVar(&opts.force, "f", false, "overwrite output file if it exists")
	flag.BoolVar(&opts.list, "l", false, "list the available styles and exit")
	help := flag.Bool("help", false, "show help information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "dimlayer - add dimensions to a drawing\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("dimlayer"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  dimlayer [options] <operation>...\n\n")
		fmt.Fprintf(os.Stderr, "Operations:\n")
		fmt.Fprintf(os.Stderr, "  aligned     dimension between two points\n")
		fmt.Fprintf(os.Stderr, "  linear      horizontal or vertical dimension with arrowheads\n")
		fmt.Fprintf(os.Stderr, "  manual      dimension line labelled with the text of another annotation\n")
		fmt.Fprintf(os.Stderr, "  isometric   dimensions for the edges of an isometric view\n")
		fmt.Fprintf(os.Stderr, "  human       human scale reference figure\n")
		fmt.Fprintf(os.Stderr, "  dimstyle    make the dimension style of the style current\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nInput:\n")
		fmt.Fprintf(os.Stderr, "  x,y         a point\n")
		fmt.Fprintf(os.Stderr, "  @dx,dy      a point relative to the previous one\n")
		fmt.Fprintf(os.Stderr, "  N           the object with ID N\n")
		fmt.Fprintf(os.Stderr, "  (empty)     finish a polyline\n")
		fmt.Fprintf(os.Stderr, "  q           cancel the current operation\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  dimlayer -s DEPOT linear linear\n")
		fmt.Fprintf(os.Stderr, "  dimlayer -c styles.yaml -s STUDIO -o kitchen.svg isometric\n")
		fmt.Fprintf(os.Stderr, "  dimlayer -l\n")
	}

	flag.Parse()

	if *help {
		flag.Usage()
		return
	}

	if flag.NArg() < 1 && !opts.list {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(opts, flag.Args(), *cpuprofile, *memprofile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(opts options, args []string, cpuprofile, memprofile string) (err error) {
	stop, err := profile.Start(cpuprofile, memprofile)
	if err != nil {
		return err
	}
	defer func() {
		if stopErr := stop(); err == nil {
			err = stopErr
		}
	}()

	cfg, err := config.LoadFile(opts.configFile)
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.logFormat != "" {
		cfg.Log.Format = opts.logFormat
	}
	logger, err := cfg.Logger(os.Stderr)
	if err != nil {
		return err
	}

	if opts.list {
		return listStyles(os.Stdout, cfg)
	}

	style, err := cfg.Style(opts.style)
	if err != nil {
		return err
	}
	var ops []dimension.Operation
	for _, arg := range args {
		op, err := dimension.ParseOperation(arg)
		if err != nil {
			return err
		}
		ops = append(ops, op)
	}
	info := svgout.Info{
		Title:    opts.title,
		Style:    style.Name,
		Producer: buildinfo.Short("dimlayer"),
	}
	if opts.lang != "" {
		info.Language, err = language.Parse(opts.lang)
		if err != nil {
			return err
		}
	}

	if !opts.force && opts.output != "-" {
		if _, err := os.Stat(opts.output); !os.IsNotExist(err) {
			return fmt.Errorf("output file %q already exists", opts.output)
		}
	}

	var prompter *termprompt.Prompter
	if opts.input != "" {
		fd, err := os.Open(opts.input)
		if err != nil {
			return err
		}
		defer fd.Close()
		prompter = termprompt.New(fd, os.Stdout)
	} else {
		prompter, err = termprompt.Open()
		if err != nil {
			return err
		}
		defer prompter.Close()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	doc := memdoc.New(&memdoc.Options{
		Prompter: prompter,
		Library:  memdoc.DefaultLibrary(),
	})
	if style.DimStyle != "" {
		doc.AddDimStyle(style.DimStyle)
	}
	failed := annotate(ctx, doc, style, ops, logger)

	if err := writeSVG(opts.output, doc.Snapshot(), &svgout.Options{Info: info}); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d operations failed", failed, len(ops))
	}
	return nil
}

// annotate runs the operations in order and returns the number of failed
// operations.  Operations cancelled by the operator do not count as
// failures.  If ctx is cancelled, the remaining operations are skipped.
func annotate(ctx context.Context, h host.Host, style *dimension.Style, ops []dimension.Operation, logger *slog.Logger) int {
	a := &dimension.Annotator{Host: h, Style: style, Logger: logger}
	failed := 0
	for _, op := range ops {
		if ctx.Err() != nil {
			logger.Warn("interrupted, skipping remaining operations")
			break
		}
		err := a.Do(ctx, op)
		switch {
		case err == nil:
			logger.Info("operation finished", "operation", string(op))
		case host.IsCancel(err):
			logger.Info("operation cancelled", "operation", string(op))
		default:
			failed++
			logger.Error("operation failed", "operation", string(op), "error", err)
		}
	}
	return failed
}

func writeSVG(fname string, snap *memdoc.Snapshot, opt *svgout.Options) (err error) {
	if fname == "-" {
		return svgout.Write(os.Stdout, snap, opt)
	}
	fd, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, fd.Close())
	}()
	return svgout.Write(fd, snap, opt)
}

func listStyles(w io.Writer, cfg *config.Config) error {
	def, _ := cfg.Style("")
	for _, name := range cfg.Names() {
		st, err := cfg.Style(name)
		if err != nil {
			return err
		}
		mark := " "
		if st == def {
			mark = "*"
		}
		_, err = fmt.Fprintf(w, "%s %-14s %-16s %s %4.1f %s %g\n",
			mark, st.Name, st.BaseLayer, st.Color.Hex(), st.PrintWidth, st.Font, st.TextHeight)
		if err != nil {
			return err
		}
	}
	return nil
}
