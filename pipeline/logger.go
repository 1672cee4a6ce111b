/*
 * logger.go, part of gopw.
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

package pipeline

import (
	"fmt"
	"io"
	"os"
)

//Logger appends plain text records to a persistent log file and echoes
//them to standard output. The file is opened and closed on every single
//record: each record survives an abrupt termination right after it was
//written. No batching, no buffering.
type Logger struct {
	Path string
	Out  io.Writer //echo target, defaults to os.Stdout
}

//Record writes msg to the echo target and appends msg plus a newline to
//the log file, creating it if absent. Record never fails from the
//caller's point of view: the log is a best-effort side channel, and a
//log store that can't be written has no recovery at this layer anyway.
func (L *Logger) Record(msg string) {
	out := L.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintln(out, msg)
	if L.Path == "" {
		return
	}
	f, err := os.OpenFile(L.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	f.WriteString(msg + "\n")
	f.Close()
}
