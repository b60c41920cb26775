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

// Package hardware assembles the timer chips into a board. The Board type owns
// the virtual clock and the resources shared by the chips: the alarm context,
// the interrupt status and the clock guard.
//
// The Board stands in for the CPU. Advance() moves the clock forward,
// dispatching every alarm as it falls due, and the Store() and Read()
// functions of the chips can be called between advances in the same way as a
// CPU would access them on the cycle given by the Clock field.
//
// A snapshot of the board contains a module for the board itself, recording
// the clock, and a module for every chip.
package hardware
