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

package wavwriter_test

import (
	"testing"

	"github.com/go-audio/wav"
	"github.com/jetsetilly/timercore/curated"
	"github.com/jetsetilly/timercore/hardware/clocks"
	"github.com/jetsetilly/timercore/test"
	"github.com/jetsetilly/timercore/wavwriter"
	"github.com/spf13/afero"
)

func TestNew(t *testing.T) {
	var clk clocks.Clock
	_, err := wavwriter.New(afero.NewMemMapFs(), "out.wav", &clk, 1.0, 0)
	test.ExpectSuccess(t, curated.Is(err, wavwriter.WavWriterError))
}

func TestWrite(t *testing.T) {
	fs := afero.NewMemMapFs()

	// one sample every 100 cycles
	var clk clocks.Clock = 1000
	aw, err := wavwriter.New(fs, "out.wav", &clk, 1.0, 10000)
	test.DemandSuccess(t, err)

	clk = 1250
	aw.SetLevel(true)
	clk = 1500
	aw.SetLevel(false)
	clk = 1900
	aw.Sync()

	// samples at 1000, 1100, 1200, 1300, 1400, 1500, 1600, 1700, 1800, 1900
	test.ExpectEquality(t, aw.Samples(), 10)

	test.DemandSuccess(t, aw.Close())

	f, err := fs.Open("out.wav")
	test.DemandSuccess(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	test.DemandSuccess(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, dec.SampleRate, 10000)
	test.DemandEquality(t, len(buf.Data), 10)

	levels := []bool{false, false, false, true, true, false, false, false, false, false}
	for i, l := range levels {
		test.ExpectEquality(t, buf.Data[i] > 0, l, i)
	}
}
