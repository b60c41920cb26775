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

// Package riot represents the active part of the 6532 RAM-I/O-Timer. It does
// not handle the RAM part of the 6532.
//
// The active parts of the RIOT are:
//
//	Timer
//	I/O ports
//	Edge detection on PA7
//
// The timer is an 8 bit counter that is decremented once every Interval
// cycles. The interval is selected by the address used to write the initial
// value of the counter. Once the counter has passed zero the interval
// becomes one, so that a program can measure how late it is. Writing to the
// timer or reading from it returns the interval to its original value.
//
// The timer does not tick. The value of the counter is derived from the
// clock at which the timer was written and an alarm is set for the clock at
// which the counter reaches zero.
//
// The RIOT address space is only partially decoded. The low five bits of an
// address are significant.
package riot
