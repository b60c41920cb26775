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

import "github.com/jetsetilly/timercore/hardware/clocks"

// t1Value is the live value of the timer 1 counter. the value is derived
// from the clock at which the counter last reloaded.
func (via *VIA) t1Value() clocks.Clock {
	clk := *via.clk
	if clk < via.tau+1 {
		return via.tau - clk - 1
	}
	return via.tal - (clk-via.tau-1)%(via.tal+2)
}

// t2Value is the live value of the timer 2 counter.
func (via *VIA) t2Value() clocks.Clock {
	if via.regs[ACR]&0x20 == 0x20 {
		return clocks.Clock(via.t2ch)<<8 | clocks.Clock(via.t2cl)
	}

	clk := *via.clk
	t := via.tbu - clk - 2

	if via.tbi != clocks.Never {
		hi := via.t2ch
		if clk == via.tbi {
			hi--
		}
		t = clocks.Clock(hi)<<8 | (t & 0xff)
	}

	return t & 0xffff
}

// updateTAL brings the PB7 state up to date for the clock rclk and then
// reloads the timer 1 latch value from the latch registers.
func (via *VIA) updateTAL(rclk clocks.Clock) {
	via.pb7x = 0
	via.pb7xx = 0

	if rclk > via.tau {
		nuf := (via.tal + 1 + rclk - via.tau) / (via.tal + 2)

		if via.regs[ACR]&0x40 == 0 {
			if int64(nuf)-int64(via.pb7sx) > 1 || via.pb7 == 0 {
				via.pb7o = 1
				via.pb7sx = 0
			}
		}
		via.pb7 ^= uint8(nuf & 1)

		via.tau = via.tal + 1 + (rclk - (rclk-via.tau-1)%(via.tal+2))
		if rclk == via.tau-via.tal-1 {
			via.pb7xx = 1
		}
	}

	if via.tau == rclk {
		via.pb7x = 1
	}

	via.tal = clocks.Clock(via.regs[T1LL]) | clocks.Clock(via.regs[T1LH])<<8
}

// intt1 is called when timer 1 reaches zero.
func (via *VIA) intt1(offset clocks.Clock) {
	rclk := *via.clk - offset

	if via.regs[ACR]&0x40 == 0 {
		// one-shot. no further interrupt until the high counter byte is
		// written to
		via.unsetAlarm(via.t1Alarm)
		via.tai = clocks.Never
	} else {
		// free-running. reload from latch
		via.tai += via.tal + 2
		via.setAlarm(via.t1Alarm, via.tai)
		via.tau += via.tal + 2
		via.pb7 ^= 1
	}

	via.ifr |= IntT1
	via.updateIRQ(rclk)

	if via.debug {
		via.log("timer 1 underflow at %d", rclk)
	}
}

// t2Is8Bit returns true if the shift register mode in the ACR value places
// timer 2 in 8 bit mode. the high byte of the counter is still decremented
// on every underflow of the low byte.
func t2Is8Bit(acr uint8) bool {
	switch shiftMode(acr) {
	case 1, 4, 5:
		return true
	}
	return false
}

// intt2 is called when the low byte of timer 2 underflows.
func (via *VIA) intt2(offset clocks.Clock) {
	rclk := *via.clk - offset

	var next clocks.Clock

	if t2Is8Bit(via.regs[ACR]) {
		via.t2cl = via.regs[T2LL]
		next = clocks.Clock(via.regs[T2LL]) + 2

		// every underflow is one phase of the shift register
		via.shiftStep(rclk)
	} else {
		via.t2cl = 0xff
		if via.t2ch != 0 {
			next = 256
		}
	}

	via.t2ch--

	if next != 0 {
		via.tbu += next
		via.tbi += next
		via.setAlarm(via.t2Alarm, via.tbi)
	} else {
		via.unsetAlarm(via.t2Alarm)
		via.tbi = clocks.Never
	}

	if via.t2ch == 0xff {
		via.ifr |= IntT2
		via.updateIRQ(rclk)
	}
}

// SetPB6 sets the level of the PB6 input. In pulse counting mode, timer 2
// is decremented on every falling edge.
func (via *VIA) SetPB6(level bool) {
	if via.regs[ACR]&0x20 == 0x20 && via.pb6 && !level {
		t := uint16(via.t2ch)<<8 | uint16(via.t2cl)
		t--
		via.t2ch = uint8(t >> 8)
		via.t2cl = uint8(t)

		if t == 0 && via.t2pulse {
			via.t2pulse = false
			via.ifr |= IntT2
			via.updateIRQ(*via.clk)
		}
	}
	via.pb6 = level
}
