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

// Port registers. These addresses are the same for reading and writing.
const (
	SWCHA  uint16 = 0x00 // port A data
	SWACNT uint16 = 0x01 // port A direction
	SWCHB  uint16 = 0x02 // port B data
	SWBCNT uint16 = 0x03 // port B direction
)

// Read-only registers.
const (
	// read the timer and disable the timer interrupt
	INTIM uint16 = 0x04

	// read the timer and enable the timer interrupt
	INTIMIRQ uint16 = 0x0c

	// read the interrupt flags. reading clears the edge flag
	TIMINT uint16 = 0x05
)

// Write-only registers.
const (
	// edge detect control. bit 0 of the address selects the positive edge,
	// bit 1 enables the edge interrupt
	EDGCTL uint16 = 0x04

	// added to a timer address to enable the timer interrupt. see
	// TimerAddress()
	timerIRQ uint16 = 0x08
)

// Interrupt flags as returned by a read of TIMINT.
const (
	TimerFlag uint8 = 0x80
	EdgeFlag  uint8 = 0x40
)

// Edge detect control values.
const (
	edgePositive uint8 = 0x01
	edgeIRQ      uint8 = 0x02
)

// Edge of a signal on PA7.
type Edge int

// List of valid Edge values.
const (
	Fall Edge = iota
	Rise
)

func (e Edge) String() string {
	if e == Rise {
		return "rise"
	}
	return "fall"
}
