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

import (
	"github.com/jetsetilly/timercore/curated"
	"github.com/jetsetilly/timercore/hardware/clocks"
	"github.com/jetsetilly/timercore/hardware/interrupt"
	"github.com/jetsetilly/timercore/snapshot"
)

// Version of the snapshot module. Version 1.1 modules can still be read.
const (
	SnapshotMajor = 1
	SnapshotMinor = 2
)

// bits in the armed byte.
const (
	armedT1 = 0x80
	armedT2 = 0x40
)

// bits in the flags byte of the version 1.2 tail.
const (
	tailT1MinusOne = 0x01
	tailT2MinusOne = 0x02
	tailCB2In      = 0x04
	tailT2Pulse    = 0x08
	tailSR         = 0x10
)

// WriteModule writes the state of the VIA to the snapshot. Timer values are
// written as live counter values rather than as internal clock values.
func (via *VIA) WriteModule(s *snapshot.Snapshot) error {
	via.catchUp()

	m, err := s.CreateModule(via.name, SnapshotMajor, SnapshotMinor)
	if err != nil {
		return err
	}

	clk := *via.clk

	t1 := via.t1Value()
	t2 := via.t2Value()

	var armed uint8
	if via.tai != clocks.Never {
		armed |= armedT1
	}
	if via.tbi != clocks.Never {
		armed |= armedT2
	}

	var pb7 uint8
	if (via.pb7^via.pb7x)|via.pb7o != 0 {
		pb7 = 0x80
	}

	var cab uint8
	if via.ca2State {
		cab |= 0x80
	}
	if via.cb2State {
		cab |= 0x40
	}

	var flags uint8
	if t1 == clocks.Never {
		flags |= tailT1MinusOne
	}
	if via.tbi != clocks.Never && via.tbi == clk {
		flags |= tailT2MinusOne
	}
	if via.cb2In {
		flags |= tailCB2In
	}
	if via.t2pulse {
		flags |= tailT2Pulse
	}
	var srDelta uint8
	if via.sri != clocks.Never {
		flags |= tailSR
		srDelta = uint8(via.sri - clk)
	}

	raw := via.pb7 | via.pb7x<<1 | via.pb7o<<2 | via.pb7xx<<3 | via.pb7sx<<4

	w := func(v uint8) {
		if err == nil {
			err = m.WriteByte(v)
		}
	}
	ww := func(v uint16) {
		if err == nil {
			err = m.WriteWord(v)
		}
	}

	w(via.regs[PRA])
	w(via.regs[DDRA])
	w(via.regs[PRB])
	w(via.regs[DDRB])
	ww(uint16(via.tal))
	ww(uint16(t1))
	w(via.regs[T2LL])
	w(via.regs[T2LH])
	w(via.t2cl)
	w(via.t2ch)
	ww(uint16(t2))
	w(armed)
	w(via.regs[SR])
	w(via.regs[ACR])
	w(via.regs[PCR])
	w(via.ifr)
	w(via.ier)
	w(pb7)
	w(uint8(via.shiftState))
	w(cab)
	w(via.ila)
	w(via.ilb)

	// version 1.2
	w(flags)
	w(srDelta)
	w(raw)

	if err != nil {
		return err
	}

	return m.Close()
}

// state read from a snapshot before being applied to the VIA.
type undump struct {
	pra, ddra, prb, ddrb uint8
	tal, t1              uint16
	t2ll, t2lh           uint8
	t2cl, t2ch           uint8
	t2                   uint16
	armed                uint8
	sr, acr, pcr         uint8
	ifr, ier             uint8
	pb7                  uint8
	shiftState           uint8
	cab                  uint8
	ila, ilb             uint8
	flags                uint8
	srDelta              uint8
	raw                  uint8
}

// ReadModule restores the state of the VIA from the snapshot. The module is
// looked for under the name of the VIA and then under each of the alternative
// names.
//
// If the module is of an unsupported version or if the data is truncated then
// an error is returned and the VIA is left unchanged.
func (via *VIA) ReadModule(s *snapshot.Snapshot) error {
	m, err := s.OpenModuleAlt(append([]string{via.name}, via.altNames...)...)
	if err != nil {
		return err
	}

	if m.Major != SnapshotMajor {
		return curated.Errorf(snapshot.ModuleVersion, m.Name, m.Major, m.Minor, SnapshotMajor, SnapshotMinor)
	}

	var u undump

	r := func(v *uint8) {
		if err == nil {
			*v, err = m.ReadByte()
		}
	}
	rw := func(v *uint16) {
		if err == nil {
			*v, err = m.ReadWord()
		}
	}

	r(&u.pra)
	r(&u.ddra)
	r(&u.prb)
	r(&u.ddrb)
	rw(&u.tal)
	rw(&u.t1)
	r(&u.t2ll)
	r(&u.t2lh)
	r(&u.t2cl)
	r(&u.t2ch)
	rw(&u.t2)
	r(&u.armed)
	r(&u.sr)
	r(&u.acr)
	r(&u.pcr)
	r(&u.ifr)
	r(&u.ier)
	r(&u.pb7)
	r(&u.shiftState)
	r(&u.cab)
	r(&u.ila)
	r(&u.ilb)

	if m.Minor >= 2 {
		r(&u.flags)
		r(&u.srDelta)
		r(&u.raw)
	} else {
		u.flags = tailCB2In
		if u.pb7 != 0 {
			u.raw = 0x01
		}
	}

	if err != nil {
		return err
	}

	if err := m.Close(); err != nil {
		return err
	}

	via.restore(u)

	return nil
}

func (via *VIA) restore(u undump) {
	clk := *via.clk

	via.t1Alarm.Unset()
	via.t2Alarm.Unset()
	via.srAlarm.Unset()
	via.tai = clocks.Never
	via.tbi = clocks.Never
	via.sri = clocks.Never

	via.regs[PRA] = u.pra
	via.regs[PRANHS] = u.pra
	via.regs[DDRA] = u.ddra
	via.regs[PRB] = u.prb
	via.regs[DDRB] = u.ddrb

	via.oldpa = via.regs[PRA] | ^via.regs[DDRA]
	via.prp.UndumpPRA(via.oldpa)
	via.oldpb = via.regs[PRB] | ^via.regs[DDRB]
	via.prp.UndumpPRB(via.oldpb)

	// timer 1
	via.tal = clocks.Clock(u.tal)
	via.regs[T1LL] = uint8(u.tal)
	via.regs[T1LH] = uint8(u.tal >> 8)
	if u.flags&tailT1MinusOne == tailT1MinusOne {
		via.tau = clk
	} else {
		via.tau = clk + clocks.Clock(u.t1) + 1
	}
	if u.armed&armedT1 == armedT1 {
		via.tai = via.tau
		via.t1Alarm.Set(via.tai)
	}

	// timer 2
	via.regs[T2LL] = u.t2ll
	via.regs[T2LH] = u.t2lh
	via.t2cl = u.t2cl
	via.t2ch = u.t2ch
	if u.armed&armedT2 == armedT2 {
		if u.flags&tailT2MinusOne == tailT2MinusOne {
			via.tbu = clk + 1
		} else {
			via.tbu = clk + clocks.Clock(u.t2&0xff) + 2
		}
		via.tbi = via.tbu - 1
		via.t2Alarm.Set(via.tbi)
	} else {
		via.tbu = clk + clocks.Clock(u.t2) + 2
	}
	via.t2pulse = u.flags&tailT2Pulse == tailT2Pulse

	via.regs[SR] = u.sr
	via.regs[ACR] = u.acr
	via.regs[PCR] = u.pcr

	via.ifr = u.ifr
	via.ier = u.ier
	via.irqAsserted = via.ifr&via.ier&0x7f != 0
	if via.irqAsserted {
		via.sink.RestoreInterrupt(via.source, via.line)
	} else {
		via.sink.RestoreInterrupt(via.source, interrupt.None)
	}

	via.pb7 = u.raw & 0x01
	via.pb7x = (u.raw >> 1) & 0x01
	via.pb7o = (u.raw >> 2) & 0x01
	via.pb7xx = (u.raw >> 3) & 0x01
	via.pb7sx = (u.raw >> 4) & 0x01

	via.shiftState = int(u.shiftState)
	if u.flags&tailSR == tailSR {
		via.sri = clk + clocks.Clock(u.srDelta)
		via.srAlarm.Set(via.sri)
	}

	via.ca2State = u.cab&0x80 == 0x80
	via.cb2State = u.cab&0x40 == 0x40
	via.cb2In = u.flags&tailCB2In == tailCB2In

	via.prp.UndumpPCR(via.regs[PCR])
	via.prp.StoreSR(via.regs[SR])
	via.prp.UndumpACR(via.regs[ACR])

	via.ila = u.ila
	via.ilb = u.ilb
}
