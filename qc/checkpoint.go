/*
 * checkpoint.go, part of gopw.
 *
 *
 * Copyright 2026 The gopw authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package qc

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"
	"gonum.org/v1/gonum/mat"

	mol "github.com/molspace/gopw"
)

//The on-disk checkpoint is a zstd-compressed gob snapshot. Version goes
//first so a future layout change can be detected before decoding the
//rest.
type snapshot struct {
	Version  int
	Opts     Options
	Symbols  []string
	Coords   []float64
	Charge   int
	Unpaired int
	HaveE    bool
	LastE    float64
	Eigs     []float64
	Nocc     int
}

const snapshotVersion = 1

//Checkpoint persists the internal state of the engine to path.
//CheckpointAll includes the cached electronic results (energy, orbital
//eigenvalues), so a restored engine can re-serve them without
//recomputation; CheckpointMinimal persists the configuration and
//geometry only. An unattached engine checkpoints its configuration
//alone.
func (P *PW) Checkpoint(path string, mode CheckpointMode) error {
	if P.closed {
		return Error{ErrFinalized, "PW", []string{"Checkpoint"}, false}
	}
	switch mode {
	case CheckpointAll, CheckpointMinimal:
	default:
		return Error{fmt.Sprintf("%s: unknown checkpoint mode %q", ErrBadOption, mode), "PW", []string{"Checkpoint"}, false}
	}
	s := snapshot{Version: snapshotVersion, Opts: P.opts}
	if P.mol != nil {
		s.Symbols = make([]string, P.mol.Len())
		s.Coords = make([]float64, 0, P.mol.Len()*3)
		for i := range s.Symbols {
			s.Symbols[i] = P.mol.Atom(i).Symbol
			s.Coords = append(s.Coords, P.mol.Coords.At(i, 0), P.mol.Coords.At(i, 1), P.mol.Coords.At(i, 2))
		}
		s.Charge = P.mol.Charge()
		s.Unpaired = P.mol.Multi() - 1
	}
	if mode == CheckpointAll {
		s.HaveE = P.haveE
		s.LastE = P.lastE
		s.Eigs = append([]float64{}, P.eigs...)
		s.Nocc = P.nocc
	}
	f, err := os.Create(path)
	if err != nil {
		return Error{fmt.Sprintf("%s: %v", ErrNoCheckpoint, err), "PW", []string{"os.Create", "Checkpoint"}, false}
	}
	defer f.Close()
	zw, err := zstd.NewWriter(f)
	if err != nil {
		return Error{fmt.Sprintf("%s: %v", ErrNoCheckpoint, err), "PW", []string{"zstd.NewWriter", "Checkpoint"}, false}
	}
	if err := gob.NewEncoder(zw).Encode(s); err != nil {
		zw.Close()
		return Error{fmt.Sprintf("%s: %v", ErrNoCheckpoint, err), "PW", []string{"gob.Encode", "Checkpoint"}, false}
	}
	if err := zw.Close(); err != nil {
		return Error{fmt.Sprintf("%s: %v", ErrNoCheckpoint, err), "PW", []string{"zstd.Close", "Checkpoint"}, false}
	}
	fmt.Fprintf(P.trace, "checkpoint (%s) written to %s\n", mode, path)
	P.trace.Flush()
	return nil
}

//LoadCheckpoint reconstructs an engine from a checkpoint written by
//Checkpoint. A restored engine re-serves the persisted results without
//recomputation; attaching a molecule to it switches it back to live
//evaluation. The restored engine's diagnostic stream is discarded
//rather than clobbering the original trace file.
func LoadCheckpoint(path string) (*PW, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Error{fmt.Sprintf("%s: %v", ErrNoCheckpoint, err), "PW", []string{"os.Open", "LoadCheckpoint"}, true}
	}
	defer f.Close()
	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, Error{fmt.Sprintf("%s: %v", ErrNoCheckpoint, err), "PW", []string{"zstd.NewReader", "LoadCheckpoint"}, true}
	}
	defer zr.Close()
	s := new(snapshot)
	if err := gob.NewDecoder(zr).Decode(s); err != nil {
		return nil, Error{fmt.Sprintf("%s: %v", ErrNoCheckpoint, err), "PW", []string{"gob.Decode", "LoadCheckpoint"}, true}
	}
	if s.Version != snapshotVersion {
		return nil, Error{fmt.Sprintf("%s: unsupported checkpoint version %d", ErrNoCheckpoint, s.Version), "PW", []string{"LoadCheckpoint"}, true}
	}
	opts := s.Opts
	opts.Trace = ""
	P, err := New(opts)
	if err != nil {
		return nil, err
	}
	if len(s.Symbols) > 0 {
		ats := make([]*mol.Atom, len(s.Symbols))
		for i, sym := range s.Symbols {
			ats[i] = &mol.Atom{Symbol: sym, Mass: mol.Mass(sym)}
		}
		M, err := mol.New(ats, mat.NewDense(len(ats), 3, s.Coords), s.Charge, s.Unpaired)
		if err != nil {
			return nil, Error{fmt.Sprintf("%s: %v", ErrNoCheckpoint, err), "PW", []string{"mol.New", "LoadCheckpoint"}, true}
		}
		if err := P.Attach(M); err != nil {
			return nil, err
		}
	}
	P.restored = true
	P.haveE = s.HaveE
	P.lastE = s.LastE
	P.eigs = append([]float64{}, s.Eigs...)
	P.nocc = s.Nocc
	return P, nil
}
