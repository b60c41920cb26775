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

// Package snapshot is the container used to save and restore the state of
// the emulated chips. A snapshot is a list of named modules. Each module has
// a major and minor version number and a sequence of bytes, words and double
// words, written and read in the same order. Words and double words are
// little-endian.
//
// Chips write their state with CreateModule():
//
//	m, err := snap.CreateModule("VIA1", 1, 2)
//	if err != nil {
//		return err
//	}
//	m.WriteByte(ora)
//	m.WriteWord(latch)
//	return m.Close()
//
// and read it back with OpenModule(). A chip should refuse a module with a
// major version it does not understand:
//
//	m, err := snap.OpenModule("VIA1")
//	if err != nil {
//		return err
//	}
//	if m.Major != 1 {
//		return curated.Errorf(snapshot.ModuleVersion, m.Name, m.Major, m.Minor, 1, 2)
//	}
//
// Reading past the end of a module results in a Truncated error. Errors are
// curated errors and can be checked with curated.Is().
//
// A snapshot can be written to and read from any afero.Fs with the Save()
// and Load() functions. The file format is:
//
//	magic     [16]byte
//	machine   [16]byte   (padded with zeroes)
//	count     dword
//	modules   ...
//
// and each module is:
//
//	name      [16]byte   (padded with zeroes)
//	major     byte
//	minor     byte
//	size      dword
//	data      [size]byte
package snapshot
