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

// Package config provides the annotation styles of the drawing office and
// reads additional styles from YAML files.
//
// The file format is
//
//	default: DEPOT
//	styles:
//	  DEPOT:
//	    layer: Cotas DEPOT
//	    color: "#000000"
//	    width: 1.1
//	    font: Kanit-Regular
//	    height: 35
//	log:
//	  level: debug
//	  format: json
//
// Styles in a file replace the built-in style of the same name.  Fields
// missing from a file entry keep the value of the built-in style, if there
// is one.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/exp/slices"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"seehuhn.de/go/dimlayer/dimension"
	"seehuhn.de/go/dimlayer/host"
)

// Config holds the annotation styles available to a program.
type Config struct {
	// Styles maps normalised style names, see [Key], to styles.
	Styles map[string]*dimension.Style

	// Default is the name of the style used when none is given.
	Default string

	Log LogConfig
}

// LogConfig selects the level and the format of log output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// file is the YAML representation of a configuration file.
type file struct {
	Default string                `yaml:"default"`
	Styles  map[string]*styleFile `yaml:"styles"`
	Log     LogConfig             `yaml:"log"`
}

type styleFile struct {
	Layer       *string  `yaml:"layer"`
	Color       *Color   `yaml:"color"`
	Width       *float64 `yaml:"width"`
	Font        *string  `yaml:"font"`
	Height      *float64 `yaml:"height"`
	DimStyle    *string  `yaml:"dimstyle"`
	ArrowLength *float64 `yaml:"arrow-length"`
	ArrowAngle  *float64 `yaml:"arrow-angle"`
	Prefix      *string  `yaml:"prefix"`
}

// Key returns the normalised form of a style name.  Style names are
// compared without regard to case and Unicode normalisation.
func Key(name string) string {
	return strings.ToUpper(norm.NFC.String(strings.TrimSpace(name)))
}

// Default returns a configuration which contains the built-in styles.
func Default() *Config {
	return &Config{
		Styles:  Builtin(),
		Default: Key("B\u00c1SICO"),
	}
}

// Load reads a configuration file in YAML format and merges it into the
// built-in configuration.
func Load(r io.Reader) (*Config, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err := dec.Decode(&f)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg := Default()
	for name, sf := range f.Styles {
		if sf == nil {
			sf = &styleFile{}
		}
		key := Key(name)
		st, ok := cfg.Styles[key]
		if ok {
			c := *st
			st = &c
		} else {
			st = &dimension.Style{Name: norm.NFC.String(strings.TrimSpace(name))}
		}
		sf.apply(st)
		if err := st.Check(); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		cfg.Styles[key] = st
	}

	if f.Default != "" {
		cfg.Default = Key(f.Default)
		if _, ok := cfg.Styles[cfg.Default]; !ok {
			return nil, fmt.Errorf("config: unknown default style %q", f.Default)
		}
	}
	cfg.Log = f.Log
	return cfg, nil
}

// LoadFile reads the configuration file at path.  If path is empty, the
// built-in configuration is returned.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return Load(fd)
}

func (sf *styleFile) apply(st *dimension.Style) {
	if sf.Layer != nil {
		st.BaseLayer = *sf.Layer
	}
	if sf.Color != nil {
		st.Color = host.Color(*sf.Color)
	}
	if sf.Width != nil {
		st.PrintWidth = *sf.Width
	}
	if sf.Font != nil {
		st.Font = *sf.Font
	}
	if sf.Height != nil {
		st.TextHeight = *sf.Height
	}
	if sf.DimStyle != nil {
		st.DimStyle = *sf.DimStyle
	}
	if sf.ArrowLength != nil {
		st.ArrowLength = *sf.ArrowLength
	}
	if sf.ArrowAngle != nil {
		st.ArrowAngle = *sf.ArrowAngle
	}
	if sf.Prefix != nil {
		st.Prefix = *sf.Prefix
	}
}

// Style returns the style with the given name.  If name is empty, the
// default style is returned.
func (c *Config) Style(name string) (*dimension.Style, error) {
	if name == "" {
		name = c.Default
	}
	st, ok := c.Styles[Key(name)]
	if !ok {
		return nil, fmt.Errorf("unknown style %q", name)
	}
	return st, nil
}

// Names returns the names of all styles, in alphabetical order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Styles))
	for _, st := range c.Styles {
		names = append(names, st.Name)
	}
	slices.Sort(names)
	return names
}
