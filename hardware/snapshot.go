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
	"github.com/jetsetilly/timercore/curated"
	"github.com/jetsetilly/timercore/hardware/clocks"
	"github.com/jetsetilly/timercore/snapshot"
	"github.com/spf13/afero"
)

// the name of the board module in a snapshot.
const boardModule = "BOARD"

// Version of the board module.
const (
	SnapshotMajor = 1
	SnapshotMinor = 0
)

// sentinal error patterns.
const (
	WrongMachine = "board: snapshot is for %s not %s"
)

// Snapshot writes the state of the board and of every chip to a new
// snapshot.
func (b *Board) Snapshot() (*snapshot.Snapshot, error) {
	s := snapshot.NewSnapshot(b.Name)

	m, err := s.CreateModule(boardModule, SnapshotMajor, SnapshotMinor)
	if err != nil {
		return nil, err
	}

	if err := m.WriteDWord(uint32(b.Clock)); err != nil {
		return nil, err
	}
	if err := m.WriteDWord(uint32(b.Clock >> 32)); err != nil {
		return nil, err
	}
	if err := m.Close(); err != nil {
		return nil, err
	}

	for _, c := range b.chips {
		if err := c.WriteModule(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Restore the state of the board from a snapshot. The clock is restored
// first so that chips rebuild their timers relative to the clock at which
// the snapshot was taken.
//
// Chips are restored in the order they were added. If a chip fails to
// restore then the error is returned and chips later in the order are not
// changed.
func (b *Board) Restore(s *snapshot.Snapshot) error {
	if s.Machine != b.Name {
		return curated.Errorf(WrongMachine, s.Machine, b.Name)
	}

	m, err := s.OpenModule(boardModule)
	if err != nil {
		return err
	}
	if m.Major != SnapshotMajor {
		return curated.Errorf(snapshot.ModuleVersion, m.Name, m.Major, m.Minor, SnapshotMajor, SnapshotMinor)
	}

	lo, err := m.ReadDWord()
	if err != nil {
		return err
	}
	hi, err := m.ReadDWord()
	if err != nil {
		return err
	}
	if err := m.Close(); err != nil {
		return err
	}

	b.Clock = clocks.Clock(hi)<<32 | clocks.Clock(lo)
	b.RMW = false

	for _, c := range b.chips {
		if err := c.ReadModule(s); err != nil {
			return err
		}
	}

	return nil
}

// Save a snapshot of the board to a file.
func (b *Board) Save(fs afero.Fs, filename string) error {
	s, err := b.Snapshot()
	if err != nil {
		return err
	}
	return snapshot.Save(fs, filename, s)
}

// Load a snapshot from a file and restore the board.
func (b *Board) Load(fs afero.Fs, filename string) error {
	s, err := snapshot.Load(fs, filename)
	if err != nil {
		return err
	}
	return b.Restore(s)
}
