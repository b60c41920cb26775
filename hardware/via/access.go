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

// Store a value in a VIA register. Only the low four bits of the address are
// significant.
//
// If the CPU has indicated that a read-modify-write instruction is in
// progress then the value most recently read is stored one cycle earlier
// before the real store takes place.
func (via *VIA) Store(addr uint16, data uint8) {
	if via.rmw != nil && *via.rmw {
		*via.clk--
		*via.rmw = false
		via.Store(addr, via.lastRead)
		*via.clk++
	}

	via.catchUp()

	// stores take effect WriteOffset cycles before the current clock
	rclk := *via.clk - via.WriteOffset

	reg := uint8(addr & 0x0f)

	if via.debug {
		via.log("store %s=%02x at %d", RegisterNames[reg], data, *via.clk)
	}

	switch reg {
	case PRA, PRANHS:
		if reg == PRA {
			via.ifr &^= IntCA1
			if !via.isCA2IndInput() {
				via.ifr &^= IntCA2
			}
			via.handshakeCA2()
			if via.ier&(IntCA1|IntCA2) != 0 {
				via.updateIRQ(*via.clk)
			}
		}
		via.regs[PRANHS] = data
		via.regs[PRA] = data
		via.storePRA(PRA)

	case DDRA:
		via.regs[DDRA] = data
		via.storePRA(DDRA)

	case PRB:
		via.ifr &^= IntCB1
		if !via.isCB2IndInput() {
			via.ifr &^= IntCB2
		}
		via.handshakeCB2()
		if via.ier&(IntCB1|IntCB2) != 0 {
			via.updateIRQ(*via.clk)
		}
		via.regs[PRB] = data
		via.storePRB(PRB)

	case DDRB:
		via.regs[DDRB] = data
		via.storePRB(DDRB)

	case SR:
		via.regs[SR] = data
		via.shiftRestart()
		via.prp.StoreSR(data)

	case T1CL, T1LL:
		via.regs[T1LL] = data
		via.updateTAL(rclk)

	case T1CH:
		via.regs[T1LH] = data
		via.updateTAL(rclk)

		// writing the high byte always loads the counter from the latch
		via.tau = rclk + via.tal + 2
		via.tai = rclk + via.tal + 2
		via.setAlarm(via.t1Alarm, via.tai)

		via.pb7 = 0
		via.pb7o = 0

		via.ifr &^= IntT1
		via.updateIRQ(*via.clk)

	case T1LH:
		// does not change the T1 interrupt flag
		via.regs[T1LH] = data
		via.updateTAL(rclk)

	case T2LL:
		via.regs[T2LL] = data
		via.prp.StoreT2L(data)

	case T2CH:
		via.regs[T2LH] = data
		via.t2cl = via.regs[T2LL]
		via.t2ch = data

		if via.regs[ACR]&0x20 == 0 {
			via.tbu = rclk + clocks.Clock(via.t2cl) + 3
			via.tbi = rclk + clocks.Clock(via.t2cl) + 2
			via.setAlarm(via.t2Alarm, via.tbi)
		} else {
			via.t2pulse = true
		}

		via.ifr &^= IntT2
		via.updateIRQ(*via.clk)

	case IFR:
		via.ifr &^= data
		via.updateIRQ(*via.clk)

	case IER:
		if data&IntIRQ == IntIRQ {
			via.ier |= data & 0x7f
		} else {
			via.ier &^= data
		}
		via.updateIRQ(*via.clk)

	case ACR:
		via.storeACR(rclk, data)

	case PCR:
		via.storePCR(data)
	}
}

// port A and port B values as seen by the peripheral. input pins are high.
func (via *VIA) storePRA(reg uint8) {
	v := via.regs[PRA] | ^via.regs[DDRA]
	via.prp.StorePRA(v, via.oldpa, reg)
	via.oldpa = v
}

func (via *VIA) storePRB(reg uint8) {
	v := via.regs[PRB] | ^via.regs[DDRB]
	via.prp.StorePRB(v, via.oldpb, reg)
	via.oldpb = v
}

// handshake output on CA2 and CB2 following an access to the port.
func (via *VIA) handshakeCA2() {
	if via.isCA2Handshake() {
		via.setCA2(false)
		if via.isCA2PulseMode() {
			via.setCA2(true)
		}
	}
}

func (via *VIA) handshakeCB2() {
	if via.isCB2Handshake() {
		via.setCB2(false)
		if via.isCB2PulseMode() {
			via.setCB2(true)
		}
	}
}

func (via *VIA) setCA2(level bool) {
	via.ca2State = level
	if !via.shadow {
		via.prp.SetCA2(level)
	}
}

func (via *VIA) setCB2(level bool) {
	via.cb2State = level
	if !via.shadow {
		via.prp.SetCB2(level)
	}
}

func (via *VIA) storeACR(rclk clocks.Clock, data uint8) {
	old := via.regs[ACR]

	// bit 7 timer 1 output to PB7
	via.updateTAL(rclk)
	if (old^data)&0x80 != 0 {
		if data&0x80 != 0 {
			via.pb7 = 1 ^ via.pb7x
		}
	}
	if (old^data)&0x40 != 0 {
		via.pb7 ^= via.pb7sx
		if data&0x40 != 0 {
			if via.pb7x != 0 || via.pb7xx != 0 {
				if via.tal != 0 {
					via.pb7o = 1
				} else {
					via.pb7o = 0
					if old&0x80 != 0 && via.pb7x != 0 && via.pb7xx == 0 {
						via.pb7 ^= 1
					}
				}
			}
		}
	}
	via.pb7sx = via.pb7x

	// bit 5 switches timer 2 between timing and pulse counting
	if (old^data)&0x20 != 0 {
		if data&0x20 != 0 {
			t := via.t2Value()
			via.t2cl = uint8(t)
			via.t2ch = uint8(t >> 8)
			via.unsetAlarm(via.t2Alarm)
			via.tbi = clocks.Never
		} else {
			via.tbu = rclk + clocks.Clock(via.t2cl) + 3
			via.tbi = rclk + clocks.Clock(via.t2cl) + 2
			via.setAlarm(via.t2Alarm, via.tbi)
		}
	} else if data&0x20 == 0 && t2Is8Bit(old) != t2Is8Bit(data) {
		// the counter must be resampled when timer 2 changes between 8 and
		// 16 bit operation
		if via.tbi != clocks.Never || t2Is8Bit(data) {
			t := via.t2Value()
			via.t2cl = uint8(t)
			via.t2ch = uint8(t >> 8)
			via.tbu = rclk + clocks.Clock(via.t2cl) + 3
			via.tbi = rclk + clocks.Clock(via.t2cl) + 2
			via.setAlarm(via.t2Alarm, via.tbi)
		}
	}

	via.regs[ACR] = data

	// bits 2 to 4 shift register control
	if shiftMode(old) != shiftMode(data) {
		via.armShiftClock()
	}

	via.prp.StoreACR(data)
}

func (via *VIA) storePCR(data uint8) {
	// bits 1 to 3 control CA2
	switch data & 0x0e {
	case 0x0c:
		via.setCA2(false)
	case 0x0e:
		via.setCA2(true)
	default:
		via.setCA2(true)
	}

	// bits 5 to 7 control CB2
	switch data & 0xe0 {
	case 0xc0:
		via.setCB2(false)
	case 0xe0:
		via.setCB2(true)
	default:
		via.setCB2(true)
	}

	via.prp.StorePCR(data)
	via.regs[PCR] = data
}

// Read a VIA register. Reading some registers has side effects. Only the low
// four bits of the address are significant.
func (via *VIA) Read(addr uint16) uint8 {
	via.catchUp()
	v := via.read(uint8(addr & 0x0f))
	via.lastRead = v

	if via.debug {
		via.log("read %s=%02x at %d", RegisterNames[addr&0x0f], v, *via.clk)
	}

	return v
}

// Peek returns the same value as Read() but without any side effects.
func (via *VIA) Peek(addr uint16) uint8 {
	shadow := *via
	shadow.shadow = true
	shadow.catchUp()

	reg := uint8(addr & 0x0f)
	if reg == PRA {
		reg = PRANHS
	}
	return shadow.read(reg)
}

func (via *VIA) read(reg uint8) uint8 {
	rclk := *via.clk

	switch reg {
	case PRA:
		via.ifr &^= IntCA1
		if !via.isCA2IndInput() {
			via.ifr &^= IntCA2
		}
		via.handshakeCA2()
		if via.ier&(IntCA1|IntCA2) != 0 {
			via.updateIRQ(*via.clk)
		}
		v := via.prp.ReadPRA(reg)
		via.ila = v
		return v

	case PRANHS:
		// the no-handshake address reads the voltage on the pins
		v := via.prp.ReadPRA(reg)
		via.ila = v
		return v

	case PRB:
		via.ifr &^= IntCB1
		if !via.isCB2IndInput() {
			via.ifr &^= IntCB2
		}
		if via.ier&(IntCB1|IntCB2) != 0 {
			via.updateIRQ(*via.clk)
		}

		// output pins read the output register, not the voltage
		v := via.prp.ReadPRB()
		via.ilb = v
		v = (v &^ via.regs[DDRB]) | (via.regs[PRB] & via.regs[DDRB])

		if via.regs[ACR]&0x80 != 0 {
			via.updateTAL(rclk)
			v &= 0x7f
			if (via.pb7^via.pb7x)|via.pb7o != 0 {
				v |= 0x80
			}
		}
		return v

	case T1CL:
		via.ifr &^= IntT1
		via.updateIRQ(*via.clk)
		return uint8(via.t1Value())

	case T1CH:
		return uint8(via.t1Value() >> 8)

	case T2CL:
		via.ifr &^= IntT2
		via.updateIRQ(*via.clk)
		return uint8(via.t2Value())

	case T2CH:
		return uint8(via.t2Value() >> 8)

	case SR:
		via.shiftRestart()
		return via.regs[SR]

	case IFR:
		return via.ifrValue()

	case IER:
		return via.ier | IntIRQ
	}

	return via.regs[reg]
}
