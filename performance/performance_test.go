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

package performance_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/jetsetilly/timercore/curated"
	"github.com/jetsetilly/timercore/hardware"
	"github.com/jetsetilly/timercore/hardware/clocks"
	"github.com/jetsetilly/timercore/hardware/via"
	"github.com/jetsetilly/timercore/performance"
	"github.com/jetsetilly/timercore/test"
	"github.com/spf13/afero"
)

func TestParseProfile(t *testing.T) {
	p, err := performance.ParseProfile("cpu,MEM")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileCPU|performance.ProfileMem)

	p, err = performance.ParseProfile("none")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileNone)

	_, err = performance.ParseProfile("cpu,disk")
	test.ExpectSuccess(t, curated.Is(err, performance.ProfileError))
}

func TestCalcSpeed(t *testing.T) {
	speed, accuracy := performance.CalcSpeed(clocks.PET, 2000000, 1.0)
	test.ExpectApproximate(t, speed, 2.0, 0.0001)
	test.ExpectApproximate(t, accuracy, 200.0, 0.0001)

	speed, _ = performance.CalcSpeed(clocks.PET, 2000000, 0)
	test.ExpectEquality(t, speed, 0.0)
}

func TestCheck(t *testing.T) {
	b := hardware.NewBoard("PET")
	v, err := b.AddVIA(via.Config{Name: "VIA"})
	test.DemandSuccess(t, err)

	b.Clock = 100
	// free running timer 1
	v.Store(uint16(via.ACR), 0x40)
	v.Store(uint16(via.T1LL), 0x10)
	v.Store(uint16(via.T1CH), 0x00)

	fs := afero.NewMemMapFs()
	w := &test.Writer{}

	err = performance.Check(w, b, 100000, clocks.PET, false, performance.ProfileMem, fs)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, b.Clock, 100100)
	test.ExpectSuccess(t, strings.Contains(w.String(), "MHz (100000 cycles"))

	ok, err := afero.Exists(fs, "performance_mem.profile")
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, ok)
}

// brokenOutput fails every write.
type brokenOutput struct{}

func (brokenOutput) Write(p []byte) (int, error) {
	return 0, errors.New("output closed")
}

func TestCheckBrokenOutput(t *testing.T) {
	b := hardware.NewBoard("PET")
	_, err := b.AddVIA(via.Config{Name: "VIA"})
	test.DemandSuccess(t, err)

	err = performance.Check(brokenOutput{}, b, 100000, clocks.PET, false, performance.ProfileNone, afero.NewMemMapFs())
	test.ExpectSuccess(t, curated.Is(err, performance.ProgressError))

	// the board stops after the first failed update
	test.ExpectEquality(t, b.Clock, clocks.Clock(hardware.PerformanceBrake))
}
