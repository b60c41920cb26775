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

// Package clocks defines the virtual clock type that drives every emulated
// chip, along with the speeds of the machines the chips are found in.
//
// The virtual clock is a simple cycle counter. It is advanced by the CPU
// emulation (or by a test harness standing in for the CPU) and is shared by
// reference with every chip. Chips never advance the clock themselves.
//
// Because the counter only ever increases it will eventually need to be
// renormalised. The Guard type does that and informs interested parties of
// the amount by which the clock has been reduced.
//
// Speed values taken from:
// http://www.zimmers.net/anonftp/pub/cbm/documents/chipdata/
package clocks

import "math"

// Clock is a count of CPU cycles.
type Clock uint64

// Never is the clock value that is never reached. It is used to indicate
// that nothing is pending.
const Never = Clock(math.MaxUint64)

// Machine clock speeds in MHz.
const (
	PET       = 1.000000
	VIC20PAL  = 1.108405
	VIC20NTSC = 1.022727
	Drive     = 1.000000
	C64PAL    = 0.985248
	C64NTSC   = 1.022727
)

// Cycles returns the number of cycles of a clock running at mhz that fit
// into the number of seconds.
func Cycles(mhz float64, seconds float64) Clock {
	return Clock(mhz * 1000000 * seconds)
}
