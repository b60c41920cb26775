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

package linefeed

import (
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jetsetilly/timercore/curated"
	"github.com/jetsetilly/timercore/hardware/clocks"
	"github.com/jetsetilly/timercore/logger"
	"github.com/spf13/afero"
)

// sentinal error patterns.
const (
	DecodeError = "linefeed: %s: %v"
	UnknownType = "linefeed: unsupported file type (%s)"
)

const logTag = "linefeed"

// Recording is mono PCM data. In the case of a stereo source only the first
// channel is kept.
type Recording struct {
	SampleRate float64
	Data       []float32
}

// Duration of the recording in seconds.
func (rec Recording) Duration() float64 {
	if rec.SampleRate == 0 {
		return 0
	}
	return float64(len(rec.Data)) / rec.SampleRate
}

// Open the named file and decode it. The type of file is decided by the
// filename extension.
func Open(fs afero.Fs, filename string) (Recording, error) {
	f, err := fs.Open(filename)
	if err != nil {
		return Recording{}, curated.Errorf(DecodeError, filename, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		return DecodeWAV(f)
	case ".mp3":
		return DecodeMP3(f)
	}

	return Recording{}, curated.Errorf(UnknownType, filepath.Ext(filename))
}

// DecodeWAV decodes a WAV file.
func DecodeWAV(r io.ReadSeeker) (Recording, error) {
	var rec Recording

	dec := wav.NewDecoder(r)
	if dec == nil || !dec.IsValidFile() {
		return rec, curated.Errorf(DecodeError, "wav", "not a valid wav file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return rec, curated.Errorf(DecodeError, "wav", err)
	}
	floatBuf := buf.AsFloat32Buffer()

	chans := int(dec.NumChans)
	if chans < 1 {
		chans = 1
	}

	rec.Data = make([]float32, 0, len(floatBuf.Data)/chans)
	for i := 0; i < len(floatBuf.Data); i += chans {
		rec.Data = append(rec.Data, floatBuf.Data[i])
	}
	rec.SampleRate = float64(dec.SampleRate)

	logger.Logf(logger.Allow, logTag, "wav: %d samples at %.0fHz", len(rec.Data), rec.SampleRate)

	return rec, nil
}

// DecodeMP3 decodes an MP3 file.
func DecodeMP3(r io.Reader) (Recording, error) {
	var rec Recording

	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return rec, curated.Errorf(DecodeError, "mp3", err)
	}

	// the decoded stream is always 16bit little endian with two channels.
	// only the left channel is used
	chunk := make([]byte, 4096)
	for {
		n, err := dec.Read(chunk)
		for i := 0; i+1 < n; i += 4 {
			rec.Data = append(rec.Data, float32(int16(uint16(chunk[i])|uint16(chunk[i+1])<<8)))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return rec, curated.Errorf(DecodeError, "mp3", err)
		}
	}
	rec.SampleRate = float64(dec.SampleRate())

	logger.Logf(logger.Allow, logTag, "mp3: %d samples at %.0fHz", len(rec.Data), rec.SampleRate)

	return rec, nil
}

// Edge is a change in level at a clock relative to the start of a recording.
type Edge struct {
	At    clocks.Clock
	Level bool
}

// Edges reduces the recording to a list of edges, timed for a clock running
// at mhz. A crossing is only detected once the signal has moved beyond the
// hysteresis level, which is a fraction of the peak amplitude of the
// recording.
//
// The first edge is always at the first sample and gives the initial level.
func (rec Recording) Edges(mhz float64, hysteresis float64) []Edge {
	if len(rec.Data) == 0 || rec.SampleRate == 0 {
		return nil
	}

	var peak float64
	for _, s := range rec.Data {
		peak = math.Max(peak, math.Abs(float64(s)))
	}
	threshold := peak * hysteresis

	cyclesPerSample := mhz * 1000000 / rec.SampleRate

	level := rec.Data[0] > 0
	edges := []Edge{{At: 0, Level: level}}

	for i, s := range rec.Data {
		v := float64(s)
		if !level && v > threshold {
			level = true
		} else if level && v < -threshold {
			level = false
		} else {
			continue
		}
		edges = append(edges, Edge{
			At:    clocks.Clock(math.Round(float64(i) * cyclesPerSample)),
			Level: level,
		})
	}

	return edges
}
