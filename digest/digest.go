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

package digest

import (
	"bytes"
	"crypto/sha1"
	"fmt"

	"github.com/jetsetilly/timercore/curated"
	"github.com/jetsetilly/timercore/snapshot"
)

// DigestError is the sentinal error pattern for the package.
const DigestError = "digest: %v"

// Digest is a running hash of snapshots.
type Digest struct {
	digest [sha1.Size]byte
	buffer bytes.Buffer
	count  int
}

// NewDigest is the preferred method of initialisation for the Digest type.
func NewDigest() *Digest {
	return &Digest{}
}

// Hash returns the current digest value as a hex string.
func (dig *Digest) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

func (dig *Digest) String() string {
	return fmt.Sprintf("%s (%d)", dig.Hash(), dig.count)
}

// Count returns the number of snapshots that have been added since the last
// reset.
func (dig *Digest) Count() int {
	return dig.count
}

// ResetDigest resets the current digest value to 0.
func (dig *Digest) ResetDigest() {
	for i := range dig.digest {
		dig.digest[i] = 0
	}
	dig.count = 0
}

// Add the snapshot to the digest.
func (dig *Digest) Add(s *snapshot.Snapshot) error {
	dig.buffer.Reset()

	// the previous digest value is the first part of the hashed data
	dig.buffer.Write(dig.digest[:])

	if _, err := s.WriteTo(&dig.buffer); err != nil {
		return curated.Errorf(DigestError, err)
	}

	dig.digest = sha1.Sum(dig.buffer.Bytes())
	dig.count++

	return nil
}

// Snapshot returns the hash of a single snapshot.
func Snapshot(s *snapshot.Snapshot) (string, error) {
	dig := NewDigest()
	if err := dig.Add(s); err != nil {
		return "", err
	}
	return dig.Hash(), nil
}
