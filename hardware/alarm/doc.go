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

// Package alarm conceptualises events that are due at some point on the
// virtual clock. An alarm, in this context, is a named callback that a chip
// arms for an absolute clock value. For example, when a program writes the
// high byte of a VIA timer, the interrupt for that timer is not raised
// immediately. Instead an alarm is set for the clock at which the timer will
// reach zero.
//
// Alarms are not instantiated directly. Instead they are created with the
// NewAlarm() function of the Context type. Every chip in a cluster (a disk
// drive, for example) shares a single Context. The Context keeps a compact
// array of the alarms that are currently pending and caches the earliest
// target clock, so that the driving loop can ask how far the clock can be
// advanced before anything needs to happen:
//
//	for clk < end {
//		clk = min(ctx.NextPendingClock(), end)
//		ctx.Dispatch(clk)
//	}
//
// Dispatch() calls the callback of every alarm whose target clock is at or
// before the current clock. The alarm is removed from the pending array
// before the callback is called, so the callback is free to set the alarm
// again. The offset argument of the callback is the number of cycles by which
// the alarm is late. Alarms with the same target clock are dispatched in no
// particular order.
//
// The Observer interface exposes only those functions of the Context that are
// useful to debuggers.
package alarm
