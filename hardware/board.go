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

package hardware

import (
	"fmt"
	"io"
	"strings"

	"github.com/jetsetilly/timercore/curated"
	"github.com/jetsetilly/timercore/hardware/alarm"
	"github.com/jetsetilly/timercore/hardware/clocks"
	"github.com/jetsetilly/timercore/hardware/interrupt"
	"github.com/jetsetilly/timercore/hardware/riot"
	"github.com/jetsetilly/timercore/hardware/via"
	"github.com/jetsetilly/timercore/snapshot"
)

// sentinal error patterns.
const (
	BoardError  = "board: %s"
	UnknownChip = "board: no chip named %s"
)

// Chip is implemented by every chip that can be added to a Board.
type Chip interface {
	Label() string
	Store(addr uint16, data uint8)
	Read(addr uint16) uint8
	Peek(addr uint16) uint8
	Reset()
	Disable()
	ShiftTime(sub clocks.Clock)
	Dump(w io.Writer)
	WriteModule(s *snapshot.Snapshot) error
	ReadModule(s *snapshot.Snapshot) error
}

// Board is a cluster of chips sharing a clock.
type Board struct {
	Name string

	// the virtual clock. chips hold a pointer to this field
	Clock clocks.Clock

	// the CPU sets this flag before a read-modify-write store
	RMW bool

	Alarms     *alarm.Context
	Interrupts *interrupt.Status
	Guard      *clocks.Guard

	// chips in the order they were added
	chips []Chip
}

// NewBoard is the preferred method of initialisation for the Board type.
func NewBoard(name string) *Board {
	b := &Board{
		Name:       name,
		Alarms:     alarm.NewContext(name),
		Interrupts: interrupt.NewStatus(),
		Guard:      clocks.NewGuard(),
	}

	b.Guard.AddCallback(func(sub clocks.Clock) {
		b.Alarms.ShiftTime(sub, alarm.Backward)
		b.Interrupts.ShiftTime(sub)
	})

	return b
}

func (b *Board) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s: clock %d", b.Name, b.Clock))
	for _, c := range b.chips {
		s.WriteString("\n")
		s.WriteString(fmt.Sprintf("%v", c))
	}
	return s.String()
}

func (b *Board) exists(name string) bool {
	_, ok := b.Chip(name)
	return ok
}

// AddVIA creates a new VIA on the board. The clock, read-modify-write flag,
// alarm context and interrupt fields of the Config are filled in by the
// board.
func (b *Board) AddVIA(cfg via.Config) (*via.VIA, error) {
	if b.exists(cfg.Name) {
		return nil, curated.Errorf(BoardError, fmt.Sprintf("chip %s already exists", cfg.Name))
	}

	cfg.Clock = &b.Clock
	cfg.RMW = &b.RMW
	cfg.Alarms = b.Alarms
	cfg.Interrupts = b.Interrupts
	cfg.Source = b.Interrupts.NewSource(cfg.Name)

	v, err := via.NewVIA(cfg)
	if err != nil {
		return nil, curated.Errorf(BoardError, err)
	}

	b.chips = append(b.chips, v)
	b.Guard.AddCallback(v.ShiftTime)

	return v, nil
}

// AddRIOT creates a new RIOT on the board. See AddVIA() for the fields of the
// Config that are filled in by the board.
func (b *Board) AddRIOT(cfg riot.Config) (*riot.RIOT, error) {
	if b.exists(cfg.Name) {
		return nil, curated.Errorf(BoardError, fmt.Sprintf("chip %s already exists", cfg.Name))
	}

	cfg.Clock = &b.Clock
	cfg.RMW = &b.RMW
	cfg.Alarms = b.Alarms
	cfg.Interrupts = b.Interrupts
	cfg.Source = b.Interrupts.NewSource(cfg.Name)

	r, err := riot.NewRIOT(cfg)
	if err != nil {
		return nil, curated.Errorf(BoardError, err)
	}

	b.chips = append(b.chips, r)
	b.Guard.AddCallback(r.ShiftTime)

	return r, nil
}

// Chip returns the named chip.
func (b *Board) Chip(name string) (Chip, bool) {
	for _, c := range b.chips {
		if c.Label() == name {
			return c, true
		}
	}
	return nil, false
}

// Chips returns every chip on the board in the order they were added.
func (b *Board) Chips() []Chip {
	return b.chips
}

// Reset every chip on the board. The clock is not changed.
func (b *Board) Reset() {
	b.RMW = false
	for _, c := range b.chips {
		c.Reset()
	}
}

// Dump writes the state of every chip to w.
func (b *Board) Dump(w io.Writer) {
	fmt.Fprintf(w, "%s: clock %d\n", b.Name, b.Clock)
	for _, c := range b.chips {
		c.Dump(w)
	}
	if s := b.Alarms.String(); s != "" {
		io.WriteString(w, s)
	}
}
