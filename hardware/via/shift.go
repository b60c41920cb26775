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

// shift register modes selected by bits 2 to 4 of the ACR.
//
//	0	disabled
//	1	shift in under control of timer 2
//	2	shift in under control of the system clock
//	3	shift in under control of an external clock on CB1
//	4	shift out free-running at the timer 2 rate
//	5	shift out under control of timer 2
//	6	shift out under control of the system clock
//	7	shift out under control of an external clock on CB1
func shiftMode(acr uint8) int {
	return int(acr>>2) & 0x07
}

// number of phases in a complete byte. the shift state is idle when it
// reaches this value.
const shiftPhases = 16

// ShiftState returns the phase of the shift register. A value of 16 means
// that the shift register is idle.
func (via *VIA) ShiftState() int {
	return via.shiftState
}

// shiftRestart is called on every access of the SR register.
func (via *VIA) shiftRestart() {
	if via.ifr&IntSR == IntSR {
		via.ifr &^= IntSR
		via.updateIRQ(*via.clk)
	}
	via.shiftState = 0
	via.armShiftClock()
}

// armShiftClock sets or unsets the system clock alarm depending on the
// current shift mode.
func (via *VIA) armShiftClock() {
	switch shiftMode(via.regs[ACR]) {
	case 2, 6:
		if via.shiftState < shiftPhases {
			if via.sri == clocks.Never {
				via.sri = *via.clk + 1
				via.setAlarm(via.srAlarm, via.sri)
			}
			return
		}
	}
	via.sri = clocks.Never
	via.unsetAlarm(via.srAlarm)
}

// intsr is called by the system clock alarm of the shift register.
func (via *VIA) intsr(offset clocks.Clock) {
	rclk := *via.clk - offset

	via.sri = clocks.Never
	via.unsetAlarm(via.srAlarm)

	via.shiftStep(rclk)

	switch shiftMode(via.regs[ACR]) {
	case 2, 6:
		if via.shiftState < shiftPhases {
			via.sri = rclk + 1
			via.setAlarm(via.srAlarm, via.sri)
		}
	}
}

// shiftStep advances the shift register by one phase. even phases drive CB1
// low and odd phases drive CB1 high.
func (via *VIA) shiftStep(rclk clocks.Clock) {
	if via.shiftState >= shiftPhases {
		return
	}

	mode := shiftMode(via.regs[ACR])
	if mode == 0 {
		return
	}

	if via.shiftState&0x01 == 0 {
		via.setCB1(false)

		// output modes rotate the register so that after a complete byte
		// the register holds the original value
		if mode >= 4 {
			bit := via.regs[SR] & 0x80
			via.regs[SR] = via.regs[SR]<<1 | bit>>7
			via.setCB2(bit == 0x80)
		}
	} else {
		via.setCB1(true)

		if mode <= 3 {
			via.regs[SR] <<= 1
			if via.cb2In {
				via.regs[SR] |= 0x01
			}
		}
	}

	via.shiftState++
	if via.shiftState < shiftPhases {
		return
	}

	if via.observer != nil && !via.shadow {
		via.observer.ShiftComplete(via.regs[SR])
	}

	// free-running mode never finishes and never raises the interrupt
	if mode == 4 {
		via.shiftState = 0
		return
	}

	via.ifr |= IntSR
	via.updateIRQ(rclk)
}

func (via *VIA) setCB1(level bool) {
	if via.cb1 != nil && !via.shadow {
		via.cb1.SetCB1(level)
	}
}

// SetSR loads the shift register from an external source. Only has an
// effect when the shift register is in an input mode.
func (via *VIA) SetSR(data uint8) {
	if via.regs[ACR]&0x10 == 0 && via.regs[ACR]&0x0c != 0 {
		via.regs[SR] = data
		via.ifr |= IntSR
		via.updateIRQ(*via.clk)
	}
}
