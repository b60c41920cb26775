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
	"bufio"
	"bytes"
	"encoding/binary"
	"io"

	"github.com/spf13/afero"

	"github.com/jetsetilly/timercore/curated"
)

// the first 14 bytes of a snapshot file followed by the file format version
const magic = "timercore-snap"

// file format version
const (
	fileMajor = 1
	fileMinor = 0
)

func padName(s string) []byte {
	b := make([]byte, maxNameLen)
	copy(b, s)
	return b
}

func unpadName(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// WriteTo writes the snapshot to the io.Writer. Implements the io.WriterTo
// interface.
func (s *Snapshot) WriteTo(w io.Writer) (int64, error) {
	buf := &bytes.Buffer{}

	buf.WriteString(magic)
	buf.WriteByte(fileMajor)
	buf.WriteByte(fileMinor)
	buf.Write(padName(s.Machine))
	binary.Write(buf, binary.LittleEndian, uint32(len(s.modules)))

	for _, m := range s.modules {
		buf.Write(padName(m.Name))
		buf.WriteByte(m.Major)
		buf.WriteByte(m.Minor)
		binary.Write(buf, binary.LittleEndian, uint32(len(m.data)))
		buf.Write(m.data)
	}

	n, err := w.Write(buf.Bytes())
	if err != nil {
		return int64(n), curated.Errorf(FileFormat, err)
	}
	return int64(n), nil
}

// ReadFrom replaces the contents of the snapshot with the data read from the
// io.Reader. Implements the io.ReaderFrom interface.
func (s *Snapshot) ReadFrom(r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return int64(len(data)), curated.Errorf(FileFormat, err)
	}
	n := int64(len(data))

	buf := bytes.NewReader(data)

	hdr := make([]byte, len(magic)+2+maxNameLen)
	if _, err := io.ReadFull(buf, hdr); err != nil {
		return n, curated.Errorf(FileFormat, "file too short")
	}
	if string(hdr[:len(magic)]) != magic {
		return n, curated.Errorf(FileFormat, "not a snapshot file")
	}
	if hdr[len(magic)] != fileMajor {
		return n, curated.Errorf(FileFormat, "unsupported file version")
	}

	var count uint32
	if err := binary.Read(buf, binary.LittleEndian, &count); err != nil {
		return n, curated.Errorf(FileFormat, "file too short")
	}

	machine := unpadName(hdr[len(magic)+2:])
	var modules []*Module

	for i := uint32(0); i < count; i++ {
		mhdr := make([]byte, maxNameLen+2)
		if _, err := io.ReadFull(buf, mhdr); err != nil {
			return n, curated.Errorf(FileFormat, "module header truncated")
		}
		var size uint32
		if err := binary.Read(buf, binary.LittleEndian, &size); err != nil {
			return n, curated.Errorf(FileFormat, "module header truncated")
		}
		if int64(size) > int64(buf.Len()) {
			return n, curated.Errorf(FileFormat, "module data truncated")
		}
		m := &Module{
			Name:  unpadName(mhdr[:maxNameLen]),
			Major: mhdr[maxNameLen],
			Minor: mhdr[maxNameLen+1],
			data:  make([]byte, size),
		}
		io.ReadFull(buf, m.data)
		modules = append(modules, m)
	}

	s.Machine = machine
	s.modules = modules

	return n, nil
}

// Save snapshot to the named file in the filesystem.
func Save(fs afero.Fs, filename string, s *Snapshot) error {
	f, err := fs.Create(filename)
	if err != nil {
		return curated.Errorf(FileFormat, err)
	}

	w := bufio.NewWriter(f)
	_, err = s.WriteTo(w)
	if err == nil {
		err = w.Flush()
	}
	if err != nil {
		f.Close()
		return curated.Errorf(FileFormat, err)
	}

	if err := f.Close(); err != nil {
		return curated.Errorf(FileFormat, err)
	}

	return nil
}

// Load snapshot from the named file in the filesystem.
func Load(fs afero.Fs, filename string) (*Snapshot, error) {
	f, err := fs.Open(filename)
	if err != nil {
		return nil, curated.Errorf(FileFormat, err)
	}
	defer f.Close()

	s := &Snapshot{}
	if _, err := s.ReadFrom(f); err != nil {
		return nil, err
	}

	return s, nil
}
