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

package assert

import (
	"bytes"
	"runtime"
	"strconv"
)

// GetGoRoutineID returns an identify for a goroutine. it returns a result that
// is different between goroutines and consistent for a given goroutine. It
// should only ever be used for debugging or testing purposes.
func GetGoRoutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// Owner records the first goroutine to call Check() and, when assertions are
// enabled, panics if a different goroutine calls it later. The emulated chips
// and their alarm contexts are not safe for concurrent use and an Owner is a
// cheap way of catching accidental sharing during development.
type Owner struct {
	id uint64
}

// Check that the calling goroutine is the owner.
func (o *Owner) Check() {
	if !Enabled {
		return
	}
	id := GetGoRoutineID()
	if o.id == 0 {
		o.id = id
		return
	}
	Check(o.id == id, "goroutine %d is not the owner (%d)", id, o.id)
}

// Release ownership so that another goroutine can take over.
func (o *Owner) Release() {
	o.id = 0
}
