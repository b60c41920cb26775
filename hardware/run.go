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

package hardware

import (
	"github.com/jetsetilly/timercore/hardware/clocks"
)

// PerformanceBrake is the number of cycles Run() advances the clock between
// calls to the continue check.
const PerformanceBrake = 10000

// AdvanceTo moves the clock forward to the specified value. Alarms due before
// that clock are dispatched with the clock set to the target of the alarm,
// so that a chip sees the clock at which the event happened.
//
// Alarms due at exactly the end clock are not dispatched. Chips catch up on
// any such alarm the next time they are accessed.
//
// Returns the amount by which the clock was reduced by the clock guard. The
// end clock is reduced by the same amount.
func (b *Board) AdvanceTo(to clocks.Clock) clocks.Clock {
	for {
		next := b.Alarms.NextPendingClock()
		if next >= to {
			break
		}
		now := b.Clock
		b.Clock = next
		b.Alarms.Dispatch(next)
		b.Clock = max(now, next)
	}
	b.Clock = to

	return b.Guard.Prevent(&b.Clock)
}

// Advance the clock by the number of cycles. See AdvanceTo().
func (b *Board) Advance(cycles clocks.Clock) clocks.Clock {
	return b.AdvanceTo(b.Clock + cycles)
}

// Run the board until the continue check returns false or an error. The
// check is called every PerformanceBrake cycles. A nil check runs forever.
func (b *Board) Run(continueCheck func() (bool, error)) error {
	if continueCheck == nil {
		continueCheck = func() (bool, error) { return true, nil }
	}

	for {
		b.Advance(PerformanceBrake)
		cont, err := continueCheck()
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
}

// RunFor advances the board by the number of cycles, calling the continue
// check every PerformanceBrake cycles. The check can end the run early.
func (b *Board) RunFor(cycles clocks.Clock, continueCheck func() (bool, error)) error {
	for cycles > 0 {
		step := min(cycles, clocks.Clock(PerformanceBrake))
		b.Advance(step)
		cycles -= step

		if continueCheck != nil {
			cont, err := continueCheck()
			if err != nil {
				return err
			}
			if !cont {
				return nil
			}
		}
	}
	return nil
}
