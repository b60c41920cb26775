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

// Package interrupt connects the interrupt outputs of the emulated chips to
// the interrupt lines of the CPU. The CPU itself is not emulated. The Status
// type records the state of the lines so that the state can be inspected by
// whatever is standing in for the CPU.
package interrupt

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/timercore/hardware/clocks"
)

// Kind of interrupt that a source is asserting.
type Kind int

// List of valid Kind values.
const (
	None Kind = iota
	IRQ
	NMI
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case IRQ:
		return "IRQ"
	case NMI:
		return "NMI"
	}
	panic("unknown interrupt kind")
}

// Sink is implemented by anything that can receive interrupts from a chip.
// The source is the value returned by NewSource() when the chip was
// connected.
type Sink interface {
	// SetInterrupt is called whenever the interrupt output of the source
	// changes. The clock is the clock at which the change logically occurred
	SetInterrupt(source int, kind Kind, at clocks.Clock)

	// RestoreInterrupt is called when the state of the source is restored
	// from a snapshot. There is no timing information
	RestoreInterrupt(source int, kind Kind)
}

// DefaultDelay is the number of cycles between an interrupt being asserted
// and the CPU seeing it.
const DefaultDelay = 2

// maximum number of transitions recorded by Status.
const maxHistory = 64

// Transition of an interrupt source.
type Transition struct {
	Source string
	Kind   Kind
	At     clocks.Clock
}

func (t Transition) String() string {
	return fmt.Sprintf("%s: %s @ %d", t.Source, t.Kind, t.At)
}

// Status is an implementation of the Sink interface. The CPU lines are the
// logical OR of every source.
type Status struct {
	// number of cycles before an asserted line is seen by the CPU
	Delay clocks.Clock

	names []string
	kinds []Kind

	// the clock at which each line was most recently asserted. only
	// meaningful if the line is asserted
	irqClk clocks.Clock
	nmiClk clocks.Clock

	// number of sources currently asserting each line
	irqCount int
	nmiCount int

	history []Transition
}

// NewStatus is the preferred method of initialisation for the Status type.
func NewStatus() *Status {
	return &Status{
		Delay: DefaultDelay,
	}
}

// NewSource adds a new named source of interrupts. The returned value should
// be used as the source argument to SetInterrupt().
func (st *Status) NewSource(name string) int {
	st.names = append(st.names, name)
	st.kinds = append(st.kinds, None)
	return len(st.names) - 1
}

func (st *Status) String() string {
	s := strings.Builder{}
	for i := range st.names {
		s.WriteString(fmt.Sprintf("%s: %s\n", st.names[i], st.kinds[i]))
	}
	return s.String()
}

func (st *Status) change(source int, kind Kind, at clocks.Clock, timed bool) bool {
	if source < 0 || source >= len(st.kinds) {
		panic(fmt.Sprintf("interrupt: unknown source (%d)", source))
	}

	old := st.kinds[source]
	if old == kind {
		return false
	}
	st.kinds[source] = kind

	switch old {
	case IRQ:
		st.irqCount--
	case NMI:
		st.nmiCount--
	}

	switch kind {
	case IRQ:
		st.irqCount++
		if st.irqCount == 1 && timed {
			st.irqClk = at
		}
	case NMI:
		st.nmiCount++
		if st.nmiCount == 1 && timed {
			st.nmiClk = at
		}
	}

	return true
}

// SetInterrupt implements the Sink interface.
func (st *Status) SetInterrupt(source int, kind Kind, at clocks.Clock) {
	if !st.change(source, kind, at, true) {
		return
	}

	st.history = append(st.history, Transition{Source: st.names[source], Kind: kind, At: at})
	if len(st.history) > maxHistory {
		st.history = st.history[len(st.history)-maxHistory:]
	}
}

// RestoreInterrupt implements the Sink interface. A restored line is seen by
// the CPU immediately.
func (st *Status) RestoreInterrupt(source int, kind Kind) {
	if !st.change(source, kind, 0, false) {
		return
	}
	switch kind {
	case IRQ:
		st.irqClk = 0
	case NMI:
		st.nmiClk = 0
	}
}

// IRQ returns true if any source is asserting the IRQ line.
func (st *Status) IRQ() bool {
	return st.irqCount > 0
}

// NMI returns true if any source is asserting the NMI line.
func (st *Status) NMI() bool {
	return st.nmiCount > 0
}

// IRQAt returns true if the CPU sees the IRQ line as asserted at the
// specified clock.
func (st *Status) IRQAt(clk clocks.Clock) bool {
	return st.irqCount > 0 && clk >= st.irqClk+st.Delay
}

// NMIAt returns true if the CPU sees the NMI line as asserted at the
// specified clock.
func (st *Status) NMIAt(clk clocks.Clock) bool {
	return st.nmiCount > 0 && clk >= st.nmiClk+st.Delay
}

// Source returns the kind of interrupt currently being asserted by the
// source.
func (st *Status) Source(source int) Kind {
	return st.kinds[source]
}

// History returns a copy of the most recent transitions, oldest first.
func (st *Status) History() []Transition {
	h := make([]Transition, len(st.history))
	copy(h, st.history)
	return h
}

// ShiftTime rebases the recorded clocks. It is suitable for use as a
// clocks.Guard callback.
func (st *Status) ShiftTime(sub clocks.Clock) {
	rebase := func(c clocks.Clock) clocks.Clock {
		if c > sub {
			return c - sub
		}
		return 0
	}
	st.irqClk = rebase(st.irqClk)
	st.nmiClk = rebase(st.nmiClk)
	for i := range st.history {
		st.history[i].At = rebase(st.history[i].At)
	}
}
