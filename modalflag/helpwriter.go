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

package modalflag

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// writeHelp prints the help message for the current mode to output. The flag
// information is produced by the flag package itself, the banner and sub-mode
// information is added around it.
func (md *Modes) writeHelp(output io.Writer) {
	if output == nil {
		return
	}

	var flags strings.Builder
	md.flags.SetOutput(&flags)
	md.flags.PrintDefaults()
	md.flags.SetOutput(io.Discard)

	if flags.Len() == 0 && len(md.subModes) == 0 {
		io.WriteString(output, "No help available")
		if p := md.Path(); p != "" {
			fmt.Fprintf(output, " for %s", p)
		}
		io.WriteString(output, "\n")
		return
	}

	if p := md.Path(); p != "" {
		fmt.Fprintf(output, "Usage for %s mode:\n", p)
	} else {
		io.WriteString(output, "Usage:\n")
	}

	io.WriteString(output, flags.String())

	if len(md.subModes) > 0 {
		if flags.Len() > 0 {
			io.WriteString(output, "\n")
		}
		fmt.Fprintf(output, "  available sub-modes: %s\n", strings.Join(md.subModes, ", "))
		fmt.Fprintf(output, "    default: %s\n", md.subModes[0])
	}

	if md.additionalHelp != "" {
		fmt.Fprintf(output, "\n%s\n", md.additionalHelp)
	}
}

// newFlagSet creates a flag set that never prints anything itself.
func newFlagSet() *flag.FlagSet {
	f := flag.NewFlagSet("", flag.ContinueOnError)
	f.SetOutput(io.Discard)
	f.Usage = func() {}
	return f
}
