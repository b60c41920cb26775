// This file is part of timercore.
//
// timercore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// timercore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with timercore.  If not, see <https://www.gnu.org/licenses/>.

// Package dump writes the state of chips for human consumption. Registers()
// is a monitor style hex dump. Graph() writes a graphviz description of any
// value, following pointers, which is useful when checking how a board has
// been assembled.
package dump

import (
	"fmt"
	"io"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/timercore/curated"
	"github.com/spf13/afero"
)

// sentinal error patterns.
const (
	DumpError = "dump: %v"
)

// Peeker is implemented by chips that can be read without side effects.
type Peeker interface {
	Label() string
	Peek(addr uint16) uint8
}

// number of values on each row of Registers() output.
const rowLength = 8

// Registers writes the peeked value of size registers, starting at address
// zero.
func Registers(w io.Writer, c Peeker, size int) {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s\n", c.Label()))
	for a := 0; a < size; a++ {
		if a%rowLength == 0 {
			if a > 0 {
				s.WriteString("\n")
			}
			s.WriteString(fmt.Sprintf("%02x:", a))
		}
		s.WriteString(fmt.Sprintf(" %02x", c.Peek(uint16(a))))
	}
	s.WriteString("\n")
	io.WriteString(w, s.String())
}

// Graph writes a graphviz description of the values.
func Graph(w io.Writer, values ...interface{}) {
	memviz.Map(w, values...)
}

// GraphFile writes a graphviz description of the values to the named file.
func GraphFile(fs afero.Fs, filename string, values ...interface{}) error {
	f, err := fs.Create(filename)
	if err != nil {
		return curated.Errorf(DumpError, err)
	}

	Graph(f, values...)

	if err := f.Close(); err != nil {
		return curated.Errorf(DumpError, err)
	}
	return nil
}
