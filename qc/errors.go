/*
 * errors.go, part of gopw.
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

import "fmt"

//Failure messages for the conditions an engine can report. Kept as
//constants so tests and callers can match on them.
const (
	ErrBadOption    = "invalid option combination"
	ErrNotAttached  = "engine not attached to a molecule"
	ErrAttached     = "engine already attached to a molecule"
	ErrFinalized    = "engine already finalized"
	ErrUnknownAtom  = "element not covered by the engine"
	ErrNoTrace      = "can't open the diagnostic stream"
	ErrNoCheckpoint = "can't write or read the checkpoint"
)

//Error is the error type for engine failures. The deco slice records the
//functions the error passed through, one entry per call, in the style of
//the rest of the library.
type Error struct {
	message  string
	engine   string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("qc: %s (engine: %s)", err.message, err.engine)
}

//Decorate adds dec to the decoration slice of the error and returns the
//resulting slice. An empty dec returns the current value without adding
//anything.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical reports whether the failure invalidates the engine (as opposed
//to a single query).
func (err Error) Critical() bool {
	return err.critical
}
