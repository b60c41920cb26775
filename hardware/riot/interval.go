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

import "fmt"

// Interval indicates how often (in CPU cycles) the timer value decreases.
// the following rules apply
//   - set to 1, 8, 64 or 1024 depending on which address has been written to
//     by the CPU
//   - is changed to 1 once the timer has passed zero
//   - is restored whenever the timer is written to
type Interval int

// List of valid Interval values.
const (
	TIM1T  Interval = 1
	TIM8T  Interval = 8
	TIM64T Interval = 64
	T1024T Interval = 1024
)

// IntervalList is a list of all possible string representations of the
// Interval type.
var IntervalList = []string{"TIM1T", "TIM8T", "TIM64T", "T1024T"}

// the interval selected by the low two bits of a timer address.
var intervals = [4]Interval{TIM1T, TIM8T, TIM64T, T1024T}

func (in Interval) String() string {
	switch in {
	case TIM1T:
		return "TIM1T"
	case TIM8T:
		return "TIM8T"
	case TIM64T:
		return "TIM64T"
	case T1024T:
		return "T1024T"
	}
	return fmt.Sprintf("unknown interval (%d)", int(in))
}

// valid returns true if the interval is one of the four intervals supported
// by the timer.
func (in Interval) valid() bool {
	switch in {
	case TIM1T, TIM8T, TIM64T, T1024T:
		return true
	}
	return false
}

// TimerAddress returns the address that should be written to in order to
// start the timer with the specified interval.
func TimerAddress(in Interval, irq bool) uint16 {
	var addr uint16
	switch in {
	case TIM1T:
		addr = 0x14
	case TIM8T:
		addr = 0x15
	case TIM64T:
		addr = 0x16
	case T1024T:
		addr = 0x17
	default:
		panic(fmt.Sprintf("riot: %s", in))
	}
	if irq {
		addr |= timerIRQ
	}
	return addr
}
