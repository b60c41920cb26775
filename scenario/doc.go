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

// Package scenario runs a scripted sequence of chip accesses on a board. A
// scenario is a YAML file that describes the chips on the board and a list
// of steps. For example:
//
//	machine: PET
//	chips:
//	  - name: VIA
//	    kind: via
//	steps:
//	  - at: 998
//	    store: {chip: VIA, addr: 0x0e, value: 0xc0}
//	  - at: 1000
//	    store: {chip: VIA, addr: 0x05, value: 0x00}
//	  - at: 1257
//	    peek: {chip: VIA, addr: 0x0d, expect: 0xc0}
//	    irq: true
//
// Within a step, the actions happen in the following order:
//
//	at, advance     the clock is moved
//	restore         a named snapshot is restored, including the clock
//	signal, feed    a line is signalled or a recording is attached to it
//	store           a register is written
//	read, peek      a register is read and compared
//	snapshot        a named snapshot is taken
//	digest          the digest of the board is recorded or compared
//	irq, pending    the interrupt line and the next pending alarm are checked
//	dump            the board is described on the output
//
// Restoring before the accesses means a step can restore a snapshot and
// check the restored state in one go.
//
// Moving the clock dispatches alarms in the same way as Board.AdvanceTo().
package scenario
