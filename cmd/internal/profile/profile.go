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

// Package profile writes CPU and memory profiles of the command line
// tools.
package profile

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// Start begins CPU profiling, if cpuprofile is not empty.  The returned
// function stops CPU profiling and writes a memory profile, if memprofile
// is not empty.  It returns the first error encountered.
func Start(cpuprofile, memprofile string) (stop func() error, err error) {
	var cpuFile *os.File
	if cpuprofile != "" {
		cpuFile, err = os.Create(cpuprofile)
		if err != nil {
			return nil, fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err = pprof.StartCPUProfile(cpuFile); err != nil {
			cpuFile.Close()
			return nil, fmt.Errorf("could not start CPU profile: %w", err)
		}
	}

	stop = func() error {
		var errs []error
		if cpuFile != nil {
			pprof.StopCPUProfile()
			errs = append(errs, cpuFile.Close())
			cpuFile = nil
		}
		if memprofile != "" {
			errs = append(errs, writeHeap(memprofile))
		}
		return errors.Join(errs...)
	}
	return stop, nil
}

func writeHeap(fname string) error {
	f, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("could not create memory profile: %w", err)
	}
	runtime.GC()
	allocs := pprof.Lookup("allocs")
	if allocs == nil {
		f.Close()
		return errors.New("could not lookup memory profile")
	}
	if err := allocs.WriteTo(f, 0); err != nil {
		f.Close()
		return fmt.Errorf("could not write memory profile: %w", err)
	}
	return f.Close()
}
