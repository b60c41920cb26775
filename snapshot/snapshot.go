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

package snapshot

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/timercore/curated"
)

// Sentinal error patterns.
const (
	ModuleNotFound = "snapshot: module %s not found"
	ModuleExists   = "snapshot: module %s already exists"
	ModuleVersion  = "snapshot: module %s version %d.%d is not supported (%d.%d)"
	ModuleName     = "snapshot: module name %q is too long"
	ModuleClosed   = "snapshot: module %s is closed"
	Truncated      = "snapshot: module %s is truncated"
	FileFormat     = "snapshot: %v"
)

// maximum length of a module or machine name.
const maxNameLen = 16

// Snapshot is a list of modules.
type Snapshot struct {
	// the name of the machine the snapshot was taken from
	Machine string

	modules []*Module
}

// NewSnapshot is the preferred method of initialisation for the Snapshot type.
func NewSnapshot(machine string) *Snapshot {
	return &Snapshot{
		Machine: machine,
	}
}

func (s *Snapshot) String() string {
	b := strings.Builder{}
	b.WriteString(s.Machine)
	for _, m := range s.modules {
		b.WriteString("\n  ")
		b.WriteString(m.String())
	}
	return b.String()
}

// Modules returns the names of all modules in the snapshot.
func (s *Snapshot) Modules() []string {
	n := make([]string, 0, len(s.modules))
	for _, m := range s.modules {
		n = append(n, m.Name)
	}
	return n
}

func (s *Snapshot) find(name string) *Module {
	for _, m := range s.modules {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// CreateModule adds a new module to the snapshot and returns it ready for
// writing.
func (s *Snapshot) CreateModule(name string, major uint8, minor uint8) (*Module, error) {
	if len(name) > maxNameLen {
		return nil, curated.Errorf(ModuleName, name)
	}
	if s.find(name) != nil {
		return nil, curated.Errorf(ModuleExists, name)
	}

	m := &Module{
		Name:    name,
		Major:   major,
		Minor:   minor,
		writing: true,
	}
	s.modules = append(s.modules, m)

	return m, nil
}

// OpenModule returns the named module ready for reading. The version of the
// module can be checked with the Major and Minor fields.
func (s *Snapshot) OpenModule(name string) (*Module, error) {
	m := s.find(name)
	if m == nil {
		return nil, curated.Errorf(ModuleNotFound, name)
	}

	// a new reader over the same data so that the module can be opened more
	// than once
	return &Module{
		Name:  m.Name,
		Major: m.Major,
		Minor: m.Minor,
		data:  m.data,
	}, nil
}

// OpenModuleAlt tries each of the names in turn and returns the first module
// found.
func (s *Snapshot) OpenModuleAlt(names ...string) (*Module, error) {
	for _, n := range names {
		if m, err := s.OpenModule(n); err == nil {
			return m, nil
		}
	}
	if len(names) == 0 {
		return nil, curated.Errorf(ModuleNotFound, "")
	}
	return nil, curated.Errorf(ModuleNotFound, names[0])
}

// VersionIsBigger returns true if version major.minor is bigger than version
// otherMajor.otherMinor.
func VersionIsBigger(major uint8, minor uint8, otherMajor uint8, otherMinor uint8) bool {
	if major != otherMajor {
		return major > otherMajor
	}
	return minor > otherMinor
}

// Module is a named and versioned sequence of values.
type Module struct {
	Name  string
	Major uint8
	Minor uint8

	data []byte

	// read position
	pos int

	writing bool
	closed  bool
}

func (m *Module) String() string {
	return fmt.Sprintf("%s %d.%d (%d bytes)", m.Name, m.Major, m.Minor, len(m.data))
}

// Size of module data in bytes.
func (m *Module) Size() int {
	return len(m.data)
}

func (m *Module) canWrite() error {
	if m.closed || !m.writing {
		return curated.Errorf(ModuleClosed, m.Name)
	}
	return nil
}

// WriteByte writes a single byte to the module.
func (m *Module) WriteByte(v byte) error {
	if err := m.canWrite(); err != nil {
		return err
	}
	m.data = append(m.data, v)
	return nil
}

// WriteWord writes a 16 bit value to the module.
func (m *Module) WriteWord(v uint16) error {
	if err := m.canWrite(); err != nil {
		return err
	}
	m.data = append(m.data, uint8(v), uint8(v>>8))
	return nil
}

// WriteDWord writes a 32 bit value to the module.
func (m *Module) WriteDWord(v uint32) error {
	if err := m.canWrite(); err != nil {
		return err
	}
	m.data = append(m.data, uint8(v), uint8(v>>8), uint8(v>>16), uint8(v>>24))
	return nil
}

func (m *Module) next(n int) ([]byte, error) {
	if m.closed || m.writing {
		return nil, curated.Errorf(ModuleClosed, m.Name)
	}
	if m.pos+n > len(m.data) {
		m.pos = len(m.data)
		return nil, curated.Errorf(Truncated, m.Name)
	}
	b := m.data[m.pos : m.pos+n]
	m.pos += n
	return b, nil
}

// ReadByte reads a single byte from the module.
func (m *Module) ReadByte() (byte, error) {
	b, err := m.next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadWord reads a 16 bit value from the module.
func (m *Module) ReadWord() (uint16, error) {
	b, err := m.next(2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0]) | uint16(b[1])<<8, nil
}

// ReadDWord reads a 32 bit value from the module.
func (m *Module) ReadDWord() (uint32, error) {
	b, err := m.next(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
}

// Close the module. No more values can be written or read.
func (m *Module) Close() error {
	if m.closed {
		return curated.Errorf(ModuleClosed, m.Name)
	}
	m.closed = true
	return nil
}
