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

import (
	"github.com/jetsetilly/timercore/hardware/clocks"
	"github.com/jetsetilly/timercore/logger"
)

// Store a value in a RIOT register. Only the low five bits of the address are
// significant.
func (r *RIOT) Store(addr uint16, data uint8) {
	if r.rmw != nil && *r.rmw {
		*r.clk--
		*r.rmw = false
		r.Store(addr, r.lastRead)
		*r.clk++
	}

	r.catchUp()

	// stores have a one cycle offset
	rclk := *r.clk - 1

	addr &= 0x1f

	if r.debug {
		logger.Logf(r, r.name, "store %02x=%02x at %d", addr, data, *r.clk)
	}

	switch {
	case addr&0x04 == 0:
		reg := addr & 0x03
		r.io[reg] = data
		switch reg {
		case SWCHA, SWACNT:
			v := r.io[SWCHA] | ^r.io[SWACNT]
			r.prp.StorePRA(v)
			r.oldpa = v
		case SWCHB, SWBCNT:
			v := r.io[SWCHB] | ^r.io[SWBCNT]
			r.prp.StorePRB(v)
			r.oldpb = v
		}

	case addr&0x14 == 0x14:
		flags := r.flags &^ TimerFlag

		r.interval = intervals[addr&0x03]
		r.writeClk = rclk + 1
		r.n = clocks.Clock(data)
		r.irqEnabled = addr&timerIRQ == timerIRQ

		if data != 0 {
			r.n--
			if r.irqEnabled {
				r.armTimer()
			}
		} else {
			r.n = 255
			r.interval = TIM1T
			if r.irqEnabled {
				flags |= TimerFlag
			}
		}

		r.updateIRQ(flags, *r.clk)

		if !r.irqEnabled || data == 0 {
			r.unsetTimer()
		}

	case addr&0x14 == 0x04:
		r.edgeCtrl = uint8(addr & 0x03)
		r.updateIRQ(r.flags, *r.clk)
	}
}

// Read a RIOT register. Reading the timer or the interrupt flags has side
// effects.
func (r *RIOT) Read(addr uint16) uint8 {
	r.catchUp()
	v := r.read(addr)
	r.lastRead = v

	if r.debug {
		logger.Logf(r, r.name, "read %02x=%02x at %d", addr&0x1f, v, *r.clk)
	}

	return v
}

// Peek returns the same value as Read() but without any side effects.
func (r *RIOT) Peek(addr uint16) uint8 {
	shadow := *r
	shadow.shadow = true
	shadow.catchUp()
	return shadow.read(addr)
}

func (r *RIOT) read(addr uint16) uint8 {
	var rclk clocks.Clock
	if *r.clk <= r.readClk {
		r.readOffset++
		rclk = r.readClk + r.readOffset
	} else {
		r.readClk = *r.clk
		r.readOffset = 0
		rclk = *r.clk
	}

	addr &= 0x1f

	switch {
	case addr&0x04 == 0:
		switch addr & 0x03 {
		case SWCHA:
			return r.prp.ReadPRA()
		case SWACNT:
			return r.io[SWACNT]
		case SWCHB:
			return r.prp.ReadPRB()
		case SWBCNT:
			return r.io[SWBCNT]
		}

	case addr&0x05 == 0x04:
		r.updateIRQ(r.flags&^TimerFlag, *r.clk)
		r.updateTimer()

		r.irqEnabled = addr&timerIRQ == timerIRQ
		if r.irqEnabled {
			r.armTimer()
		} else {
			r.unsetTimer()
		}

		return r.counter(rclk)

	case addr&0x05 == 0x05:
		v := r.flags

		if r.irqEnabled {
			r.updateTimer()
			r.armTimer()
		}

		// reading the flags clears the edge flag
		r.updateIRQ(r.flags&^EdgeFlag, *r.clk)

		return v
	}

	return 0xff
}
