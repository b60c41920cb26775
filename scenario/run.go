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

package scenario

import (
	"fmt"
	"io"
	"strings"

	"github.com/jetsetilly/timercore/curated"
	"github.com/jetsetilly/timercore/digest"
	"github.com/jetsetilly/timercore/hardware"
	"github.com/jetsetilly/timercore/hardware/clocks"
	"github.com/jetsetilly/timercore/hardware/linefeed"
	"github.com/jetsetilly/timercore/hardware/riot"
	"github.com/jetsetilly/timercore/hardware/via"
	"github.com/jetsetilly/timercore/logger"
	"github.com/jetsetilly/timercore/snapshot"
	"github.com/spf13/afero"
)

// default hysteresis for recordings fed to a chip line.
const defaultHysteresis = 0.25

const logTag = "scenario"

// Build a board with the chips listed in the scenario.
func (sc *Scenario) Build() (*hardware.Board, error) {
	b := hardware.NewBoard(sc.Machine)

	for _, c := range sc.Chips {
		switch strings.ToLower(c.Kind) {
		case "via":
			v, err := b.AddVIA(via.Config{
				Name:     c.Name,
				AltNames: c.AltNames,
				Debug:    c.Debug,
			})
			if err != nil {
				return nil, err
			}
			if c.WriteOffset > 0 {
				v.WriteOffset = clocks.Clock(c.WriteOffset)
			}
		case "riot":
			_, err := b.AddRIOT(riot.Config{
				Name:  c.Name,
				Debug: c.Debug,
			})
			if err != nil {
				return nil, err
			}
		}
	}

	return b, nil
}

// Run the scenario on a new board. Returns an error for the first step that
// does not behave as expected.
func (sc *Scenario) Run(output io.Writer) (*hardware.Board, error) {
	b, err := sc.Build()
	if err != nil {
		return nil, err
	}

	rs := &runState{
		snapshots: make(map[string]*snapshot.Snapshot),
		digests:   make(map[string]string),
	}

	for i, step := range sc.Steps {
		if err := sc.step(output, b, i, step, rs); err != nil {
			return b, err
		}
	}

	logger.Logf(logger.Allow, logTag, "%d steps completed on %s", len(sc.Steps), sc.Machine)

	return b, nil
}

// named snapshots and digests collected while running a scenario.
type runState struct {
	snapshots map[string]*snapshot.Snapshot
	digests   map[string]string
}

func chip(b *hardware.Board, i int, name string) (hardware.Chip, error) {
	c, ok := b.Chip(name)
	if !ok {
		return nil, curated.Errorf(StepError, i, curated.Errorf(hardware.UnknownChip, name))
	}
	return c, nil
}

func (sc *Scenario) step(output io.Writer, b *hardware.Board, i int, st Step, rs *runState) error {
	if st.At != nil {
		if *st.At < b.Clock {
			return curated.Errorf(StepError, i, fmt.Sprintf("clock cannot go backwards (%d to %d)", b.Clock, *st.At))
		}
		b.AdvanceTo(*st.At)
	}
	if st.Advance > 0 {
		b.Advance(st.Advance)
	}

	if st.Restore != "" {
		s, ok := rs.snapshots[st.Restore]
		if !ok {
			return curated.Errorf(StepError, i, fmt.Sprintf("no snapshot named %s", st.Restore))
		}
		if err := b.Restore(s); err != nil {
			return curated.Errorf(StepError, i, err)
		}
	}

	if st.Signal != nil {
		if err := signal(b, i, st.Signal); err != nil {
			return err
		}
	}

	if st.Feed != nil {
		if err := sc.feed(b, i, st.Feed); err != nil {
			return err
		}
	}

	if st.Store != nil {
		c, err := chip(b, i, st.Store.Chip)
		if err != nil {
			return err
		}
		b.RMW = st.Store.RMW
		c.Store(st.Store.Addr, st.Store.Value)
		b.RMW = false
	}

	if st.Read != nil {
		c, err := chip(b, i, st.Read.Chip)
		if err != nil {
			return err
		}
		v := c.Read(st.Read.Addr)
		if st.Read.Expect != nil && v != *st.Read.Expect {
			return curated.Errorf(Mismatch, i, fmt.Sprintf("read %s $%02x at %d: got $%02x, expected $%02x",
				st.Read.Chip, st.Read.Addr, b.Clock, v, *st.Read.Expect))
		}
	}

	if st.Peek != nil {
		c, err := chip(b, i, st.Peek.Chip)
		if err != nil {
			return err
		}
		v := c.Peek(st.Peek.Addr)
		if st.Peek.Expect != nil && v != *st.Peek.Expect {
			return curated.Errorf(Mismatch, i, fmt.Sprintf("peek %s $%02x at %d: got $%02x, expected $%02x",
				st.Peek.Chip, st.Peek.Addr, b.Clock, v, *st.Peek.Expect))
		}
	}

	if st.Snapshot != "" {
		s, err := b.Snapshot()
		if err != nil {
			return curated.Errorf(StepError, i, err)
		}
		rs.snapshots[st.Snapshot] = s
	}

	if st.Digest != "" {
		s, err := b.Snapshot()
		if err != nil {
			return curated.Errorf(StepError, i, err)
		}
		h, err := digest.Snapshot(s)
		if err != nil {
			return curated.Errorf(StepError, i, err)
		}
		if d, ok := rs.digests[st.Digest]; !ok {
			rs.digests[st.Digest] = h
		} else if d != h {
			return curated.Errorf(Mismatch, i, fmt.Sprintf("digest %s at %d: got %s, expected %s", st.Digest, b.Clock, h, d))
		}
	}

	if st.IRQ != nil && b.Interrupts.IRQ() != *st.IRQ {
		return curated.Errorf(Mismatch, i, fmt.Sprintf("irq at %d: got %v, expected %v", b.Clock, b.Interrupts.IRQ(), *st.IRQ))
	}

	if st.Pending != nil && b.Alarms.NextPendingClock() != *st.Pending {
		return curated.Errorf(Mismatch, i, fmt.Sprintf("next pending alarm: got %d, expected %d", b.Alarms.NextPendingClock(), *st.Pending))
	}

	if st.Dump && output != nil {
		b.Dump(output)
	}

	return nil
}

func signal(b *hardware.Board, i int, sig *Signal) error {
	var rise bool
	switch strings.ToLower(sig.Edge) {
	case "rise", "high":
		rise = true
	case "fall", "low":
	default:
		return curated.Errorf(StepError, i, fmt.Sprintf("unknown edge (%s)", sig.Edge))
	}

	set, err := line(b, i, sig.Chip, sig.Line)
	if err != nil {
		return err
	}
	set(rise)

	return nil
}

func (sc *Scenario) feed(b *hardware.Board, i int, fd *Feed) error {
	set, err := line(b, i, fd.Chip, fd.Line)
	if err != nil {
		return err
	}

	fs := sc.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	rec, err := linefeed.Open(fs, fd.File)
	if err != nil {
		return curated.Errorf(StepError, i, err)
	}

	hyst := fd.Hysteresis
	if hyst == 0 {
		hyst = defaultHysteresis
	}

	f := linefeed.NewFeed(b.Alarms, &b.Clock, fmt.Sprintf("%s %s feed", fd.Chip, fd.Line), rec.Edges(sc.Speed, hyst), set)
	b.Guard.AddCallback(f.ShiftTime)
	f.Start(b.Clock)

	logger.Logf(logger.Allow, logTag, "feeding %s (%.2fs) to %s %s", fd.File, rec.Duration(), fd.Chip, fd.Line)

	return nil
}

// line returns a function that sets the level of the named line of a chip.
func line(b *hardware.Board, i int, chipName string, lineName string) (func(level bool), error) {
	c, err := chip(b, i, chipName)
	if err != nil {
		return nil, err
	}

	switch c := c.(type) {
	case *via.VIA:
		for _, l := range []via.Line{via.CA1, via.CA2, via.CB1, via.CB2} {
			if strings.EqualFold(l.String(), lineName) {
				return func(level bool) {
					if level {
						c.Signal(l, via.Rise)
					} else {
						c.Signal(l, via.Fall)
					}
				}, nil
			}
		}
		if strings.EqualFold(lineName, "PB6") {
			return c.SetPB6, nil
		}
	case *riot.RIOT:
		if strings.EqualFold(lineName, "PA7") {
			return c.SetPA7, nil
		}
	}

	return nil, curated.Errorf(StepError, i, fmt.Sprintf("%s has no line %s", chipName, lineName))
}
