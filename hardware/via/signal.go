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

// Signal an edge on one of the control lines.
func (via *VIA) Signal(line Line, edge Edge) {
	via.catchUp()

	switch line {
	case CA1:
		// bit 0 of the PCR selects the active edge
		if (edge == Rise) == (via.regs[PCR]&0x01 == 0x01) {
			if via.isCA2ToggleMode() && !via.ca2State {
				via.setCA2(true)
			}
			via.ifr |= IntCA1
			via.updateIRQ(*via.clk)
		}

	case CA2:
		if via.regs[PCR]&0x08 == 0 {
			if (edge == Rise) == (via.regs[PCR]&0x04 == 0x04) {
				via.ifr |= IntCA2
				via.updateIRQ(*via.clk)
			}
		}

	case CB1:
		if (edge == Rise) == (via.regs[PCR]&0x10 == 0x10) {
			if via.isCB2ToggleMode() && !via.cb2State {
				via.setCB2(true)
			}
			via.ifr |= IntCB1
			via.updateIRQ(*via.clk)
		}

		// external clock for the shift register
		switch shiftMode(via.regs[ACR]) {
		case 3, 7:
			if via.shiftState < shiftPhases {
				if (via.shiftState&0x01 == 0) == (edge == Fall) {
					via.shiftStep(*via.clk)
				}
			}
		}

	case CB2:
		via.cb2In = edge == Rise
		if via.regs[PCR]&0x80 == 0 {
			if (edge == Rise) == (via.regs[PCR]&0x40 == 0x40) {
				via.ifr |= IntCB2
				via.updateIRQ(*via.clk)
			}
		}
	}

	if via.debug {
		via.log("signal %s %s at %d", line, edge, *via.clk)
	}
}
