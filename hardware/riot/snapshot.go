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
	"github.com/jetsetilly/timercore/curated"
	"github.com/jetsetilly/timercore/hardware/clocks"
	"github.com/jetsetilly/timercore/hardware/interrupt"
	"github.com/jetsetilly/timercore/snapshot"
)

// Version of the snapshot module. Version 0.0 modules can still be read.
const (
	SnapshotMajor = 0
	SnapshotMinor = 1
)

// sentinal error patterns.
const (
	BadInterval = "riot: snapshot module %s has an invalid timer interval (%d)"
)

// WriteModule writes the state of the RIOT to the snapshot. The timer is
// written as the live counter value, the interval and the number of cycles
// already spent in the current interval.
func (r *RIOT) WriteModule(s *snapshot.Snapshot) error {
	r.catchUp()
	r.updateTimer()

	m, err := s.CreateModule(r.name, SnapshotMajor, SnapshotMinor)
	if err != nil {
		return err
	}

	clk := *r.clk
	d := clocks.Clock(r.interval)

	var count uint8
	var rest uint16
	if clk >= r.writeClk {
		count = r.counter(clk)
		rest = uint16((clk - r.writeClk) % d)
	} else {
		count = uint8(r.n)
	}

	flags := r.flags
	if r.irqLine {
		flags |= 0x01
	}

	var irqen uint8
	if r.irqEnabled {
		irqen = 0x01
	}

	var pending uint8
	if r.ti != clocks.Never {
		pending = 0x01
	}

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

	w(r.io[SWCHA])
	w(r.io[SWACNT])
	w(r.io[SWCHB])
	w(r.io[SWBCNT])
	w(r.edgeCtrl)
	w(flags)
	w(count)
	ww(uint16(r.interval))
	ww(rest)
	w(irqen)

	// version 0.1
	w(pending)

	if err != nil {
		return err
	}

	return m.Close()
}

// ReadModule restores the state of the RIOT from the snapshot. If the module
// is of an unsupported version, is truncated or has an invalid interval then
// an error is returned and the RIOT is left unchanged.
func (r *RIOT) ReadModule(s *snapshot.Snapshot) error {
	m, err := s.OpenModule(r.name)
	if err != nil {
		return err
	}

	if snapshot.VersionIsBigger(m.Major, m.Minor, SnapshotMajor, SnapshotMinor) {
		return curated.Errorf(snapshot.ModuleVersion, m.Name, m.Major, m.Minor, SnapshotMajor, SnapshotMinor)
	}

	var io [4]uint8
	var edgeCtrl, flags, count, irqen, pending uint8
	var interval, rest uint16

	rb := func(v *uint8) {
		if err == nil {
			*v, err = m.ReadByte()
		}
	}
	rw := func(v *uint16) {
		if err == nil {
			*v, err = m.ReadWord()
		}
	}

	rb(&io[SWCHA])
	rb(&io[SWACNT])
	rb(&io[SWCHB])
	rb(&io[SWBCNT])
	rb(&edgeCtrl)
	rb(&flags)
	rb(&count)
	rw(&interval)
	rw(&rest)
	rb(&irqen)

	if m.Minor >= 1 {
		rb(&pending)
	} else {
		pending = irqen
	}

	if err != nil {
		return err
	}

	if err := m.Close(); err != nil {
		return err
	}

	if !Interval(interval).valid() {
		return curated.Errorf(BadInterval, m.Name, interval)
	}

	clk := *r.clk

	r.unsetTimer()

	r.io = io
	r.oldpa = io[SWCHA] | ^io[SWACNT]
	r.prp.UndumpPRA(r.oldpa)
	r.oldpb = io[SWCHB] | ^io[SWBCNT]
	r.prp.UndumpPRB(r.oldpb)

	r.edgeCtrl = edgeCtrl & 0x03
	r.flags = flags & (TimerFlag | EdgeFlag)
	r.irqLine = flags&0x01 == 0x01
	if r.irqLine {
		r.sink.RestoreInterrupt(r.source, r.line)
	} else {
		r.sink.RestoreInterrupt(r.source, interrupt.None)
	}

	r.n = clocks.Clock(count)
	r.interval = Interval(interval)
	if clk > clocks.Clock(rest) {
		r.writeClk = clk - clocks.Clock(rest)
	} else {
		r.writeClk = 0
	}
	r.irqEnabled = irqen != 0

	r.readClk = 0
	r.readOffset = 0

	if pending != 0 {
		r.armTimer()
	}

	return nil
}
