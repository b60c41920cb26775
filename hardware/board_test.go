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

package hardware_test

import (
	"testing"

	"github.com/jetsetilly/timercore/curated"
	"github.com/jetsetilly/timercore/hardware"
	"github.com/jetsetilly/timercore/hardware/clocks"
	"github.com/jetsetilly/timercore/hardware/riot"
	"github.com/jetsetilly/timercore/hardware/via"
	"github.com/jetsetilly/timercore/test"
	"github.com/spf13/afero"
)

func newBoard(t *testing.T) (*hardware.Board, *via.VIA, *riot.RIOT) {
	t.Helper()

	b := hardware.NewBoard("PET")

	v, err := b.AddVIA(via.Config{Name: "VIA"})
	test.DemandSuccess(t, err)

	r, err := b.AddRIOT(riot.Config{Name: "RIOT"})
	test.DemandSuccess(t, err)

	return b, v, r
}

func TestAddChip(t *testing.T) {
	b, _, _ := newBoard(t)

	_, err := b.AddVIA(via.Config{Name: "RIOT"})
	test.ExpectSuccess(t, curated.Is(err, hardware.BoardError))

	c, ok := b.Chip("VIA")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, c.Label(), "VIA")

	_, ok = b.Chip("PIA")
	test.ExpectFailure(t, ok)

	test.ExpectEquality(t, len(b.Chips()), 2)
}

func TestAdvance(t *testing.T) {
	b, v, _ := newBoard(t)

	b.Clock = 998
	v.Store(uint16(via.IER), via.IntIRQ|via.IntT1)
	b.Clock = 999
	v.Store(uint16(via.T1LL), 0xff)
	b.Clock = 1000
	v.Store(uint16(via.T1CH), 0x00)

	b.AdvanceTo(1256)
	test.ExpectEquality(t, b.Interrupts.IRQ(), false)

	b.Advance(1)
	test.ExpectEquality(t, b.Clock, 1257)
	test.ExpectEquality(t, b.Interrupts.IRQ(), true)
	test.ExpectEquality(t, b.Interrupts.IRQAt(1258), true)
}

func TestRunFor(t *testing.T) {
	b, _, _ := newBoard(t)

	var checks int
	err := b.RunFor(hardware.PerformanceBrake*3+5, func() (bool, error) {
		checks++
		return true, nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, checks, 4)
	test.ExpectEquality(t, b.Clock, hardware.PerformanceBrake*3+5)

	checks = 0
	err = b.Run(func() (bool, error) {
		checks++
		return checks < 10, nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, checks, 10)
}

func TestSnapshot(t *testing.T) {
	a, av, ar := newBoard(t)
	a.Clock = 2000
	av.Store(uint16(via.T1LL), 0x34)
	av.Store(uint16(via.T1CH), 0x12)
	ar.Store(riot.TimerAddress(riot.TIM64T, true), 0x80)
	a.Advance(3000)

	fs := afero.NewMemMapFs()
	test.DemandSuccess(t, a.Save(fs, "board.snap"))

	b, bv, br := newBoard(t)
	test.DemandSuccess(t, b.Load(fs, "board.snap"))
	test.ExpectEquality(t, b.Clock, a.Clock)
	test.ExpectEquality(t, b.Alarms.NextPendingClock(), a.Alarms.NextPendingClock())

	for i := 0; i < 40; i++ {
		a.Advance(211)
		b.Advance(211)
		test.ExpectEquality(t, bv.Peek(uint16(via.T1CL)), av.Peek(uint16(via.T1CL)), i)
		test.ExpectEquality(t, bv.Peek(uint16(via.IFR)), av.Peek(uint16(via.IFR)), i)
		test.ExpectEquality(t, br.Peek(riot.INTIM), ar.Peek(riot.INTIM), i)
		test.ExpectEquality(t, br.Peek(riot.TIMINT), ar.Peek(riot.TIMINT), i)
	}

	// snapshot from a different machine
	c := hardware.NewBoard("VIC20")
	s, err := a.Snapshot()
	test.DemandSuccess(t, err)
	err = c.Restore(s)
	test.ExpectSuccess(t, curated.Is(err, hardware.WrongMachine))
}

func TestClockGuard(t *testing.T) {
	a, av, ar := newBoard(t)
	a.Guard.Limit = 1 << 20
	a.Guard.Interval = 1 << 16

	b, bv, br := newBoard(t)
	b.Guard.Limit = clocks.Never

	start := clocks.Clock(1<<20 - 5000)
	for _, brd := range []*hardware.Board{a, b} {
		brd.Clock = start
		brd.Reset()
	}
	for _, v := range []*via.VIA{av, bv} {
		v.Store(uint16(via.ACR), 0x40)
		v.Store(uint16(via.T1LL), 0x00)
		v.Store(uint16(via.T1CH), 0x02)
	}
	for _, r := range []*riot.RIOT{ar, br} {
		r.Store(riot.TimerAddress(riot.TIM8T, true), 100)
	}

	var shifted clocks.Clock
	for i := 0; i < 300; i++ {
		shifted += a.Advance(37)
		b.Advance(37)

		test.ExpectEquality(t, av.Peek(uint16(via.T1CL)), bv.Peek(uint16(via.T1CL)), i)
		test.ExpectEquality(t, av.Peek(uint16(via.T1CH)), bv.Peek(uint16(via.T1CH)), i)
		test.ExpectEquality(t, av.Peek(uint16(via.IFR)), bv.Peek(uint16(via.IFR)), i)
		test.ExpectEquality(t, ar.Peek(riot.INTIM), br.Peek(riot.INTIM), i)
		test.ExpectEquality(t, ar.Peek(riot.TIMINT), br.Peek(riot.TIMINT), i)
		test.ExpectEquality(t, a.Alarms.NextPendingClock()-a.Clock, b.Alarms.NextPendingClock()-b.Clock, i)
	}

	test.ExpectEquality(t, shifted, 1<<16)
	test.ExpectEquality(t, a.Clock+shifted, b.Clock)
}
