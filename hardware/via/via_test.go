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

package via_test

import (
	"testing"

	"github.com/jetsetilly/timercore/curated"
	"github.com/jetsetilly/timercore/hardware/alarm"
	"github.com/jetsetilly/timercore/hardware/clocks"
	"github.com/jetsetilly/timercore/hardware/interrupt"
	"github.com/jetsetilly/timercore/hardware/via"
	"github.com/jetsetilly/timercore/snapshot"
	"github.com/jetsetilly/timercore/test"
)

type write struct {
	value uint8
	clk   clocks.Clock
}

// recorder is a peripheral that records the activity of the VIA.
type recorder struct {
	via.NullPeripheral
	clk *clocks.Clock

	ca2     []bool
	cb2     []bool
	prb     []write
	shifted []uint8
}

func (r *recorder) SetCA2(level bool) {
	r.ca2 = append(r.ca2, level)
}

func (r *recorder) SetCB2(level bool) {
	r.cb2 = append(r.cb2, level)
}

func (r *recorder) StorePRB(value uint8, _ uint8, _ uint8) {
	r.prb = append(r.prb, write{value: value, clk: *r.clk})
}

func (r *recorder) ShiftComplete(sr uint8) {
	r.shifted = append(r.shifted, sr)
}

func (r *recorder) clear() {
	r.ca2 = r.ca2[:0]
	r.cb2 = r.cb2[:0]
	r.prb = r.prb[:0]
	r.shifted = r.shifted[:0]
}

type harness struct {
	clk clocks.Clock
	rmw bool
	ctx *alarm.Context
	irq *interrupt.Status
	prp *recorder
	via *via.VIA
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		ctx: alarm.NewContext("test"),
		irq: interrupt.NewStatus(),
	}
	h.prp = &recorder{clk: &h.clk}

	var err error
	h.via, err = via.NewVIA(via.Config{
		Name:       "VIA1",
		Clock:      &h.clk,
		RMW:        &h.rmw,
		Alarms:     h.ctx,
		Interrupts: h.irq,
		Source:     h.irq.NewSource("VIA1"),
		Peripheral: h.prp,
	})
	test.DemandSuccess(t, err)

	return h
}

// advance the clock to the specified value. alarms due before that clock are
// dispatched with the clock set to the target of the alarm.
func (h *harness) advance(to clocks.Clock) {
	for {
		next := h.ctx.NextPendingClock()
		if next >= to {
			break
		}
		now := h.clk
		h.clk = next
		h.ctx.Dispatch(next)
		h.clk = max(now, next)
	}
	h.clk = to
}

func TestConfig(t *testing.T) {
	_, err := via.NewVIA(via.Config{Name: "VIA1"})
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, via.ConfigError))
}

func TestTimer1OneShot(t *testing.T) {
	h := newHarness(t)

	h.clk = 998
	h.via.Store(uint16(via.IER), via.IntIRQ|via.IntT1)
	h.clk = 999
	h.via.Store(uint16(via.T1LL), 0xff)
	h.clk = 1000
	h.via.Store(uint16(via.T1CH), 0x00)

	// live counter value
	h.advance(1100)
	test.ExpectEquality(t, h.via.Peek(uint16(via.T1CL)), 155)
	test.ExpectEquality(t, h.via.Peek(uint16(via.T1CH)), 0)

	h.advance(1256)
	test.ExpectEquality(t, h.via.Peek(uint16(via.IFR))&via.IntT1, 0)
	test.ExpectEquality(t, h.irq.IRQ(), false)

	h.advance(1257)
	test.ExpectEquality(t, h.via.Peek(uint16(via.IFR)), via.IntIRQ|via.IntT1)
	test.ExpectEquality(t, h.irq.IRQ(), true)
	test.ExpectEquality(t, h.irq.IRQAt(1257), false)
	test.ExpectEquality(t, h.irq.IRQAt(1258), true)

	// one-shot timer does not interrupt again
	test.ExpectEquality(t, h.ctx.NextPendingClock(), clocks.Never)

	h.advance(1260)
	h.via.Read(uint16(via.T1CL))
	test.ExpectEquality(t, h.via.Peek(uint16(via.IFR)), 0)
	test.ExpectEquality(t, h.irq.IRQ(), false)

	h.advance(300000)
	test.ExpectEquality(t, h.via.Peek(uint16(via.IFR)), 0)
}

func TestTimer1CatchUp(t *testing.T) {
	h := newHarness(t)

	h.clk = 999
	h.via.Store(uint16(via.T1LL), 0xff)
	h.clk = 1000
	h.via.Store(uint16(via.T1CH), 0x00)

	// without alarm dispatch the register access brings the VIA up to date
	h.clk = 1256
	test.ExpectEquality(t, h.via.Read(uint16(via.IFR))&via.IntT1, 0)
	h.clk = 1257
	test.ExpectEquality(t, h.via.Read(uint16(via.IFR))&via.IntT1, via.IntT1)
	test.ExpectEquality(t, h.ctx.NextPendingClock(), clocks.Never)
}

func TestTimer1FreeRunning(t *testing.T) {
	h := newHarness(t)

	h.clk = 1000
	h.via.Store(uint16(via.T1LL), 0x10)
	h.via.Store(uint16(via.ACR), 0xc0)
	h.via.Store(uint16(via.T1CH), 0x00)

	h.advance(1010)
	test.ExpectEquality(t, h.via.Read(uint16(via.PRB)), 0x7f)

	const first = 1017
	const period = 0x10 + 2

	for k := 1; k <= 6; k++ {
		at := clocks.Clock(first + (k-1)*period + 4)
		h.advance(at)

		test.ExpectEquality(t, h.via.Read(uint16(via.IFR))&via.IntT1, via.IntT1, k)
		test.ExpectEquality(t, h.via.Read(uint16(via.T1CL)), 13, k)
		test.ExpectEquality(t, h.via.Read(uint16(via.IFR))&via.IntT1, 0, k)

		pb7 := h.via.Read(uint16(via.PRB)) & 0x80
		if k%2 == 1 {
			test.ExpectEquality(t, pb7, 0x80, k)
		} else {
			test.ExpectEquality(t, pb7, 0x00, k)
		}
	}

	test.ExpectEquality(t, h.ctx.NextPendingClock(), clocks.Clock(first+6*period))
}

func TestTimer2OneShot(t *testing.T) {
	h := newHarness(t)

	h.clk = 999
	h.via.Store(uint16(via.T2LL), 0x10)
	h.clk = 1000
	h.via.Store(uint16(via.T2CH), 0x00)

	h.advance(1017)
	test.ExpectEquality(t, h.via.Peek(uint16(via.IFR))&via.IntT2, 0)
	h.advance(1018)
	test.ExpectEquality(t, h.via.Peek(uint16(via.IFR))&via.IntT2, via.IntT2)
	test.ExpectEquality(t, h.ctx.NextPendingClock(), clocks.Never)

	// the counter continues to count down after the interrupt
	h.advance(1020)
	test.ExpectEquality(t, h.via.Peek(uint16(via.T2CL)), 0xfc)
	test.ExpectEquality(t, h.via.Peek(uint16(via.T2CH)), 0xff)

	h.via.Read(uint16(via.T2CL))
	test.ExpectEquality(t, h.via.Peek(uint16(via.IFR))&via.IntT2, 0)
}

func TestTimer2PulseCounting(t *testing.T) {
	h := newHarness(t)

	h.clk = 100
	h.via.Store(uint16(via.ACR), 0x20)
	h.via.Store(uint16(via.T2LL), 0x03)
	h.via.Store(uint16(via.T2CH), 0x00)
	test.ExpectEquality(t, h.ctx.NextPendingClock(), clocks.Never)

	for i := 0; i < 3; i++ {
		test.ExpectEquality(t, h.via.Peek(uint16(via.IFR))&via.IntT2, 0, i)
		h.via.SetPB6(false)
		h.via.SetPB6(true)
	}
	test.ExpectEquality(t, h.via.Peek(uint16(via.IFR))&via.IntT2, via.IntT2)
	test.ExpectEquality(t, h.via.Peek(uint16(via.T2CL)), 0)

	// the interrupt is only raised once for each load of the counter
	h.via.Read(uint16(via.T2CL))
	h.via.SetPB6(false)
	test.ExpectEquality(t, h.via.Peek(uint16(via.IFR))&via.IntT2, 0)
	test.ExpectEquality(t, h.via.Peek(uint16(via.T2CL)), 0xff)
	test.ExpectEquality(t, h.via.Peek(uint16(via.T2CH)), 0xff)
}

func TestShiftOutSystemClock(t *testing.T) {
	h := newHarness(t)

	h.clk = 100
	h.via.Store(uint16(via.ACR), 0x18)
	h.prp.clear()

	h.clk = 101
	h.via.Store(uint16(via.SR), 0xa5)
	test.ExpectEquality(t, h.via.ShiftState(), 0)

	h.advance(117)
	test.ExpectEquality(t, h.via.Peek(uint16(via.IFR))&via.IntSR, 0)
	test.ExpectEquality(t, h.via.ShiftState(), 15)

	h.advance(118)
	test.ExpectEquality(t, h.via.Peek(uint16(via.IFR))&via.IntSR, via.IntSR)
	test.ExpectEquality(t, h.via.ShiftState(), 16)
	test.ExpectEquality(t, h.ctx.NextPendingClock(), clocks.Never)

	// most significant bit first
	expected := []bool{true, false, true, false, false, true, false, true}
	test.DemandEquality(t, len(h.prp.cb2), len(expected))
	for i := range expected {
		test.ExpectEquality(t, h.prp.cb2[i], expected[i], i)
	}

	// the register is rotated back to its original value
	test.ExpectEquality(t, h.via.Peek(uint16(via.SR)), 0xa5)
	test.DemandEquality(t, len(h.prp.shifted), 1)
	test.ExpectEquality(t, h.prp.shifted[0], 0xa5)

	// reading the register clears the interrupt and starts another byte
	h.via.Read(uint16(via.SR))
	test.ExpectEquality(t, h.via.Peek(uint16(via.IFR))&via.IntSR, 0)
	test.ExpectEquality(t, h.ctx.NextPendingClock(), clocks.Clock(119))
}

func TestShiftInExternalClock(t *testing.T) {
	h := newHarness(t)

	h.clk = 100
	h.via.Store(uint16(via.ACR), 0x0c)
	h.via.Store(uint16(via.SR), 0x00)

	bits := []via.Edge{via.Rise, via.Fall, via.Fall, via.Rise, via.Rise, via.Rise, via.Fall, via.Rise}
	for _, b := range bits {
		h.via.Signal(via.CB2, b)
		h.via.Signal(via.CB1, via.Fall)
		h.via.Signal(via.CB1, via.Rise)
	}

	test.ExpectEquality(t, h.via.Peek(uint16(via.SR)), 0x9d)
	test.ExpectEquality(t, h.via.Peek(uint16(via.IFR))&via.IntSR, via.IntSR)
}

func TestControlLines(t *testing.T) {
	h := newHarness(t)

	h.clk = 100
	h.via.Store(uint16(via.IER), via.IntIRQ|via.IntCA1)

	// PCR bit 0 is clear so CA1 is active on the falling edge
	h.via.Signal(via.CA1, via.Rise)
	test.ExpectEquality(t, h.via.Peek(uint16(via.IFR)), 0)
	h.via.Signal(via.CA1, via.Fall)
	test.ExpectEquality(t, h.via.Peek(uint16(via.IFR)), via.IntIRQ|via.IntCA1)
	test.ExpectEquality(t, h.irq.IRQ(), true)

	h.via.Read(uint16(via.PRA))
	test.ExpectEquality(t, h.via.Peek(uint16(via.IFR)), 0)
	test.ExpectEquality(t, h.irq.IRQ(), false)

	// pulse output on CA2 after a read of port A
	h.via.Store(uint16(via.PCR), 0x0a)
	h.prp.clear()
	h.via.Read(uint16(via.PRA))
	test.DemandEquality(t, len(h.prp.ca2), 2)
	test.ExpectEquality(t, h.prp.ca2[0], false)
	test.ExpectEquality(t, h.prp.ca2[1], true)

	// handshake output on CA2 is restored by the active edge of CA1
	h.via.Store(uint16(via.PCR), 0x08)
	h.prp.clear()
	h.via.Read(uint16(via.PRA))
	h.via.Signal(via.CA1, via.Fall)
	test.DemandEquality(t, len(h.prp.ca2), 2)
	test.ExpectEquality(t, h.prp.ca2[0], false)
	test.ExpectEquality(t, h.prp.ca2[1], true)
}

func TestPeek(t *testing.T) {
	h := newHarness(t)

	h.clk = 99
	h.via.Store(uint16(via.T1LL), 0x20)
	h.clk = 100
	h.via.Store(uint16(via.T1CH), 0x00)
	h.advance(200)

	for i := 0; i < 3; i++ {
		test.ExpectEquality(t, h.via.Peek(uint16(via.T1CL)), h.via.Peek(uint16(via.T1CL)))
		test.ExpectEquality(t, h.via.Peek(uint16(via.IFR)), via.IntT1)
		h.via.Peek(uint16(via.SR))
		test.ExpectEquality(t, h.via.ShiftState(), 16)
	}

	h.via.Read(uint16(via.T1CL))
	test.ExpectEquality(t, h.via.Peek(uint16(via.IFR)), 0)
}

func TestReadModifyWrite(t *testing.T) {
	h := newHarness(t)

	h.clk = 100
	h.via.Store(uint16(via.DDRB), 0xff)
	h.via.Store(uint16(via.PRB), 0x0f)
	test.ExpectEquality(t, h.via.Read(uint16(via.PRB)), 0x0f)
	h.prp.clear()

	h.clk = 110
	h.rmw = true
	h.via.Store(uint16(via.PRB), 0xf0)
	test.ExpectEquality(t, h.rmw, false)

	test.DemandEquality(t, len(h.prp.prb), 2)
	test.ExpectEquality(t, h.prp.prb[0], write{value: 0x0f, clk: 109})
	test.ExpectEquality(t, h.prp.prb[1], write{value: 0xf0, clk: 110})
}

func TestDisable(t *testing.T) {
	h := newHarness(t)

	h.clk = 100
	h.via.Store(uint16(via.T1CH), 0x00)
	test.ExpectInequality(t, h.ctx.NextPendingClock(), clocks.Never)

	h.via.Disable()
	test.ExpectEquality(t, h.via.Enabled(), false)
	test.ExpectEquality(t, h.ctx.NextPendingClock(), clocks.Never)

	h.via.Reset()
	test.ExpectEquality(t, h.via.Enabled(), true)
}

func TestSnapshotRoundTrip(t *testing.T) {
	a := newHarness(t)

	a.clk = 999
	a.via.Store(uint16(via.T1LL), 0x40)
	a.via.Store(uint16(via.T2LL), 0x34)
	a.via.Store(uint16(via.IER), via.IntIRQ|via.IntT1|via.IntT2)
	a.via.Store(uint16(via.ACR), 0xc0)
	a.via.Store(uint16(via.PCR), 0xcc)
	a.clk = 1000
	a.via.Store(uint16(via.T1CH), 0x00)
	a.via.Store(uint16(via.T2CH), 0x12)
	a.advance(5000)

	s := snapshot.NewSnapshot("test")
	test.DemandSuccess(t, a.via.WriteModule(s))

	b := newHarness(t)
	b.clk = 5000
	test.DemandSuccess(t, b.via.ReadModule(s))
	test.ExpectEquality(t, b.irq.IRQ(), a.irq.IRQ())
	test.ExpectEquality(t, b.ctx.NextPendingClock(), a.ctx.NextPendingClock())

	for clk := clocks.Clock(5000); clk < 5300; clk++ {
		a.advance(clk)
		b.advance(clk)
		for r := uint16(0); r < 16; r++ {
			test.ExpectEquality(t, b.via.Peek(r), a.via.Peek(r), clk, via.RegisterNames[r])
		}
		test.ExpectEquality(t, b.ctx.NextPendingClock(), a.ctx.NextPendingClock(), clk)
	}
}

func TestSnapshotErrors(t *testing.T) {
	h := newHarness(t)
	h.clk = 100
	h.via.Store(uint16(via.T1LL), 0x40)
	h.via.Store(uint16(via.T1CH), 0x00)

	before := make([]uint8, 16)
	for r := range before {
		before[r] = h.via.Peek(uint16(r))
	}
	next := h.ctx.NextPendingClock()

	unchanged := func() {
		t.Helper()
		for r := range before {
			test.ExpectEquality(t, h.via.Peek(uint16(r)), before[r], via.RegisterNames[r])
		}
		test.ExpectEquality(t, h.ctx.NextPendingClock(), next)
	}

	// missing module
	s := snapshot.NewSnapshot("test")
	err := h.via.ReadModule(s)
	test.ExpectSuccess(t, curated.Is(err, snapshot.ModuleNotFound))
	unchanged()

	// newer major version
	m, err := s.CreateModule("VIA1", via.SnapshotMajor+1, 0)
	test.DemandSuccess(t, err)
	for i := 0; i < 32; i++ {
		test.DemandSuccess(t, m.WriteByte(0))
	}
	test.DemandSuccess(t, m.Close())
	err = h.via.ReadModule(s)
	test.ExpectSuccess(t, curated.Is(err, snapshot.ModuleVersion))
	unchanged()

	// truncated data
	s = snapshot.NewSnapshot("test")
	m, err = s.CreateModule("VIA1", via.SnapshotMajor, via.SnapshotMinor)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, m.WriteByte(0xff))
	test.DemandSuccess(t, m.Close())
	err = h.via.ReadModule(s)
	test.ExpectSuccess(t, curated.Is(err, snapshot.Truncated))
	unchanged()
}
