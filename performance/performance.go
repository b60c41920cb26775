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

package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/timercore/curated"
	"github.com/jetsetilly/timercore/hardware"
	"github.com/jetsetilly/timercore/hardware/clocks"
	"github.com/jetsetilly/timercore/performance/limiter"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
)

// ProgressError is returned when the progress bar cannot be written to the
// output.
const ProgressError = "performance: progress: %v"

// number of times per second the limiter allows the board to advance when
// the speed is capped.
const limiterRate = 100

// Check the performance of the emulation by running the board for the number
// of cycles. The board is assumed to be a machine running at mhz.
//
// If capped is true then the emulation is limited to the speed of the
// machine.
func Check(output io.Writer, board *hardware.Board, cycles clocks.Clock, mhz float64, capped bool, profile Profile, fs afero.Fs) error {
	bar := progressbar.NewOptions64(int64(cycles),
		progressbar.OptionSetWriter(output),
		progressbar.OptionSetDescription(board.Name),
	)
	defer bar.Close()

	step := clocks.Clock(hardware.PerformanceBrake)

	var lim *limiter.Limiter
	if capped {
		var err error
		lim, err = limiter.NewLimiter(limiterRate)
		if err != nil {
			return err
		}
		defer lim.Stop()
		step = clocks.Cycles(mhz, 1.0/limiterRate)
	}

	var elapsed time.Duration

	runner := func() error {
		start := time.Now()
		remaining := cycles
		for remaining > 0 {
			if lim != nil {
				lim.Wait()
			}
			n := min(step, remaining)
			board.Advance(n)
			remaining -= n
			if err := bar.Add64(int64(n)); err != nil {
				return curated.Errorf(ProgressError, err)
			}
		}
		elapsed = time.Since(start)
		return nil
	}

	if err := RunProfiler(fs, profile, "performance", runner); err != nil {
		return err
	}

	speed, accuracy := CalcSpeed(mhz, cycles, elapsed.Seconds())
	fmt.Fprintf(output, "\n%.2f MHz (%d cycles in %.2f seconds) %.1f%%\n", speed, cycles, elapsed.Seconds(), accuracy)

	return nil
}

// CalcSpeed takes the number of cycles and the duration (in seconds) and
// returns the emulated speed in MHz and the speed as a percentage of the
// emulated machine.
func CalcSpeed(mhz float64, cycles clocks.Clock, duration float64) (speed float64, accuracy float64) {
	if duration <= 0 {
		return 0, 0
	}
	speed = float64(cycles) / duration / 1000000
	accuracy = 100 * speed / mhz
	return speed, accuracy
}
