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

package digest_test

import (
	"testing"

	"github.com/jetsetilly/timercore/digest"
	"github.com/jetsetilly/timercore/snapshot"
	"github.com/jetsetilly/timercore/test"
)

func module(t *testing.T, v uint8) *snapshot.Snapshot {
	t.Helper()
	s := snapshot.NewSnapshot("test")
	m, err := s.CreateModule("CHIP", 1, 0)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, m.WriteByte(v))
	test.DemandSuccess(t, m.Close())
	return s
}

func TestSnapshot(t *testing.T) {
	a, err := digest.Snapshot(module(t, 10))
	test.DemandSuccess(t, err)
	b, err := digest.Snapshot(module(t, 10))
	test.DemandSuccess(t, err)
	c, err := digest.Snapshot(module(t, 11))
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, len(a), 40)
	test.ExpectEquality(t, a, b)
	test.ExpectInequality(t, a, c)
}

func TestChain(t *testing.T) {
	dig := digest.NewDigest()
	zero := dig.Hash()
	test.ExpectEquality(t, zero, "0000000000000000000000000000000000000000")

	test.DemandSuccess(t, dig.Add(module(t, 1)))
	single := dig.Hash()
	test.ExpectInequality(t, single, zero)

	// the same snapshot added twice does not produce the same value twice
	test.DemandSuccess(t, dig.Add(module(t, 1)))
	test.ExpectInequality(t, dig.Hash(), single)
	test.ExpectEquality(t, dig.Count(), 2)

	// order matters
	x := digest.NewDigest()
	test.DemandSuccess(t, x.Add(module(t, 1)))
	test.DemandSuccess(t, x.Add(module(t, 2)))
	y := digest.NewDigest()
	test.DemandSuccess(t, y.Add(module(t, 2)))
	test.DemandSuccess(t, y.Add(module(t, 1)))
	test.ExpectInequality(t, x.Hash(), y.Hash())

	dig.ResetDigest()
	test.ExpectEquality(t, dig.Hash(), zero)
	test.ExpectEquality(t, dig.Count(), 0)
	test.DemandSuccess(t, dig.Add(module(t, 1)))
	test.ExpectEquality(t, dig.Hash(), single)
}
