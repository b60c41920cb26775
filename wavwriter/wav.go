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

// Package wavwriter records the level of a line against the virtual clock and
// writes the result as a WAV file. The PET, for example, produces sound by
// running the VIA shift register freely with CB2 connected to a speaker.
//
// Note that audio data is buffered in memory in its entirity and is written
// to disk when Close() is called. It is therefore only suitable for short
// recordings.
package wavwriter

import (
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jetsetilly/timercore/curated"
	"github.com/jetsetilly/timercore/hardware/clocks"
	"github.com/jetsetilly/timercore/logger"
	"github.com/spf13/afero"
)

// sentinal error patterns.
const (
	WavWriterError = "wavwriter: %v"
)

// sample values for the two levels of the line.
const (
	high = 0x3fff
	low  = -0x4000
)

const bitDepth = 16

// WavWriter buffers samples of a line.
type WavWriter struct {
	fs       afero.Fs
	filename string

	clk        *clocks.Clock
	sampleRate int

	// number of cycles between samples
	cyclesPerSample float64

	// the clock of the next sample and the fractional part of a cycle
	// carried between samples
	next clocks.Clock
	frac float64

	level  bool
	buffer []int
}

// New is the preferred method of initialisation for the WavWriter type.
// Sampling begins at the current value of the clock. The clock is running at
// mhz.
func New(fs afero.Fs, filename string, clk *clocks.Clock, mhz float64, sampleRate int) (*WavWriter, error) {
	if sampleRate <= 0 {
		return nil, curated.Errorf(WavWriterError, "sample rate must be positive")
	}
	if mhz <= 0 {
		return nil, curated.Errorf(WavWriterError, "clock speed must be positive")
	}

	aw := &WavWriter{
		fs:              fs,
		filename:        filename,
		clk:             clk,
		sampleRate:      sampleRate,
		cyclesPerSample: mhz * 1000000 / float64(sampleRate),
		next:            *clk,
	}

	return aw, nil
}

// fill the buffer with samples up to and including the clock.
func (aw *WavWriter) fill(to clocks.Clock) {
	v := low
	if aw.level {
		v = high
	}

	for aw.next <= to {
		aw.buffer = append(aw.buffer, v)
		aw.frac += aw.cyclesPerSample
		step := clocks.Clock(aw.frac)
		aw.frac -= float64(step)
		aw.next += step
	}
}

// SetLevel changes the level of the line at the current clock. Suitable as
// the output of a VIA control line.
func (aw *WavWriter) SetLevel(level bool) {
	if *aw.clk > 0 {
		aw.fill(*aw.clk - 1)
	}
	aw.level = level
}

// Sync fills the buffer with samples up to the current clock.
func (aw *WavWriter) Sync() {
	aw.fill(*aw.clk)
}

// Samples returns the number of samples in the buffer.
func (aw *WavWriter) Samples() int {
	return len(aw.buffer)
}

// ShiftTime rebases the clock of the next sample. Suitable for use as a
// clocks.Guard callback.
func (aw *WavWriter) ShiftTime(sub clocks.Clock) {
	if aw.next > sub {
		aw.next -= sub
	} else {
		aw.next = 0
	}
}

// Close writes the buffered samples to the file.
func (aw *WavWriter) Close() (rerr error) {
	aw.Sync()

	f, err := aw.fs.Create(aw.filename)
	if err != nil {
		return curated.Errorf(WavWriterError, err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf(WavWriterError, err)
		}
	}()

	enc := wav.NewEncoder(f, aw.sampleRate, bitDepth, 1, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  aw.sampleRate,
		},
		Data:           aw.buffer,
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return curated.Errorf(WavWriterError, err)
	}
	if err := enc.Close(); err != nil {
		return curated.Errorf(WavWriterError, err)
	}

	logger.Logf(logger.Allow, "wavwriter", "%d samples written to %s", len(aw.buffer), aw.filename)

	return nil
}
