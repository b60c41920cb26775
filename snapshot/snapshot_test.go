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

package snapshot_test

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"

	"github.com/jetsetilly/timercore/curated"
	"github.com/jetsetilly/timercore/snapshot"
	"github.com/jetsetilly/timercore/test"
)

func TestModule(t *testing.T) {
	s := snapshot.NewSnapshot("PET")

	m, err := s.CreateModule("VIA1", 1, 2)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, m.WriteByte(0x12))
	test.ExpectSuccess(t, m.WriteWord(0x3456))
	test.ExpectSuccess(t, m.WriteDWord(0x789abcde))
	test.ExpectSuccess(t, m.Close())
	test.ExpectEquality(t, m.Size(), 7)

	// writing to a closed module is an error
	test.ExpectFailure(t, m.WriteByte(0))

	// modules must have unique names
	_, err = s.CreateModule("VIA1", 1, 2)
	test.ExpectSuccess(t, curated.Is(err, snapshot.ModuleExists))

	m, err = s.OpenModule("VIA1")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, m.Major, uint8(1))
	test.ExpectEquality(t, m.Minor, uint8(2))

	b, err := m.ReadByte()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, b, uint8(0x12))
	w, err := m.ReadWord()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, w, uint16(0x3456))
	d, err := m.ReadDWord()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, d, uint32(0x789abcde))

	// reading past the end of the module
	_, err = m.ReadByte()
	test.ExpectSuccess(t, curated.Is(err, snapshot.Truncated))
}

func TestModuleNotFound(t *testing.T) {
	s := snapshot.NewSnapshot("PET")
	_, err := s.OpenModule("VIA1")
	test.ExpectSuccess(t, curated.Is(err, snapshot.ModuleNotFound))

	_, err = s.CreateModule("a name that is far too long", 0, 0)
	test.ExpectSuccess(t, curated.Is(err, snapshot.ModuleName))

	m, err := s.CreateModule("VIA2", 0, 0)
	test.DemandSuccess(t, err)
	m.Close()

	m, err = s.OpenModuleAlt("VIA1", "VIA2")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, m.Name, "VIA2")
}

func TestVersionIsBigger(t *testing.T) {
	test.ExpectSuccess(t, snapshot.VersionIsBigger(1, 0, 0, 9))
	test.ExpectSuccess(t, snapshot.VersionIsBigger(1, 2, 1, 1))
	test.ExpectFailure(t, snapshot.VersionIsBigger(1, 1, 1, 1))
	test.ExpectFailure(t, snapshot.VersionIsBigger(0, 9, 1, 0))
}

func TestFile(t *testing.T) {
	s := snapshot.NewSnapshot("VIC20")
	m, _ := s.CreateModule("VIA1", 1, 2)
	m.WriteWord(0xffee)
	m.Close()
	m, _ = s.CreateModule("RIOT", 0, 0)
	m.WriteByte(0x55)
	m.Close()

	fs := afero.NewMemMapFs()
	test.DemandSuccess(t, snapshot.Save(fs, "/snapshots/test.snap", s))

	l, err := snapshot.Load(fs, "/snapshots/test.snap")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, l.Machine, "VIC20")
	test.DemandEquality(t, len(l.Modules()), 2)
	test.ExpectEquality(t, l.Modules()[0], "VIA1")
	test.ExpectEquality(t, l.Modules()[1], "RIOT")

	m, err = l.OpenModule("VIA1")
	test.DemandSuccess(t, err)
	w, err := m.ReadWord()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, w, uint16(0xffee))

	_, err = snapshot.Load(fs, "/snapshots/missing.snap")
	test.ExpectFailure(t, err)
}

func TestBadFile(t *testing.T) {
	s := snapshot.NewSnapshot("")
	_, err := s.ReadFrom(bytes.NewReader([]byte("not a snapshot file at all")))
	test.ExpectFailure(t, err)

	// truncated module data
	good := snapshot.NewSnapshot("PET")
	m, _ := good.CreateModule("VIA1", 1, 2)
	m.WriteDWord(0)
	m.Close()

	var buf bytes.Buffer
	_, err = good.WriteTo(&buf)
	test.DemandSuccess(t, err)

	data := buf.Bytes()
	_, err = s.ReadFrom(bytes.NewReader(data[:len(data)-1]))
	test.ExpectFailure(t, err)
}
