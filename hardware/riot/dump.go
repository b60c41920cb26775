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

package riot

import (
	"fmt"
	"io"

	"github.com/jetsetilly/timercore/hardware/clocks"
)

// Dump writes a human readable description of the RIOT to the io.Writer.
// Dump has no side effects.
func (r *RIOT) Dump(w io.Writer) {
	fmt.Fprintf(w, "%s\n", r.name)
	fmt.Fprintf(w, "ORA: $%02x DDRA: $%02x\n", r.io[SWCHA], r.io[SWACNT])
	fmt.Fprintf(w, "ORB: $%02x DDRB: $%02x\n", r.io[SWCHB], r.io[SWBCNT])

	fmt.Fprintf(w, "Timer: $%02x (%s)", r.Peek(INTIM), r.interval)
	if r.ti != clocks.Never {
		fmt.Fprintf(w, " due at %d", r.ti)
	}
	fmt.Fprintln(w)

	var polarity string
	if r.edgeCtrl&edgePositive == edgePositive {
		polarity = "positive"
	} else {
		polarity = "negative"
	}
	fmt.Fprintf(w, "PA7: %s edge, IRQ %v\n", polarity, r.edgeCtrl&edgeIRQ == edgeIRQ)
	fmt.Fprintf(w, "Flags: $%02x IRQ: %v\n", r.flags, r.irqLine)
}
