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

package via

import (
	"fmt"
	"io"

	"github.com/jetsetilly/timercore/hardware/clocks"
)

// Dump writes the state of the VIA to w in a form suitable for a monitor.
// Register values are peeked and the VIA is not changed.
func (via *VIA) Dump(w io.Writer) {
	fmt.Fprintf(w, "%s\n", via.name)
	for r := 0; r < len(RegisterNames); r++ {
		fmt.Fprintf(w, "%-6s %02x", RegisterNames[r], via.Peek(uint16(r)))
		if r%4 == 3 {
			fmt.Fprintln(w)
		} else {
			fmt.Fprint(w, "  ")
		}
	}

	fmt.Fprintf(w, "T1 latch %04x", uint16(via.tal))
	if via.tai != clocks.Never {
		fmt.Fprintf(w, " (interrupt at %d)", via.tai)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "T2 latch %02x", via.regs[T2LL])
	if via.tbi != clocks.Never {
		fmt.Fprintf(w, " (underflow at %d)", via.tbi)
	}
	fmt.Fprintln(w)

	if via.shiftState < shiftPhases {
		fmt.Fprintf(w, "SR mode %d phase %d\n", shiftMode(via.regs[ACR]), via.shiftState)
	} else {
		fmt.Fprintf(w, "SR mode %d idle\n", shiftMode(via.regs[ACR]))
	}

	fmt.Fprintf(w, "CA2 %v  CB2 %v  IRQ %v\n", via.ca2State, via.cb2State, via.irqAsserted)
}
