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

package main

import (
	"strings"
	"testing"

	"github.com/jetsetilly/timercore/test"
	"github.com/jetsetilly/timercore/version"
	"github.com/spf13/afero"
)

const scenarioFile = `
machine: PET
chips:
  - {name: VIA, kind: via}
steps:
  - at: 100
    store: {chip: VIA, addr: 0x0b, value: 0x40}
  - store: {chip: VIA, addr: 0x04, value: 0x10}
  - store: {chip: VIA, addr: 0x05, value: 0x00}
  - advance: 50
    pending: 153
`

func TestHelp(t *testing.T) {
	w := &test.Writer{}
	test.ExpectEquality(t, launch(w, afero.NewMemMapFs(), []string{"-help"}), 0)
}

func TestRunMode(t *testing.T) {
	fs := afero.NewMemMapFs()
	test.DemandSuccess(t, afero.WriteFile(fs, "t1.yaml", []byte(scenarioFile), 0644))

	w := &test.Writer{}
	test.ExpectEquality(t, launch(w, fs, []string{"RUN", "-dump", "t1.yaml"}), 0)
	test.ExpectSuccess(t, strings.Contains(w.String(), "t1.yaml: 4 steps ok"))
	test.ExpectSuccess(t, strings.Contains(w.String(), "PET: clock 150"))

	w.Clear()
	test.ExpectEquality(t, launch(w, fs, []string{"RUN", "-digest", "t1.yaml"}), 0)
	first := w.String()
	test.ExpectSuccess(t, strings.Contains(first, "digest: "))
	w.Clear()
	test.ExpectEquality(t, launch(w, fs, []string{"RUN", "-digest", "t1.yaml"}), 0)
	test.ExpectEquality(t, w.String(), first)

	w.Clear()
	test.ExpectEquality(t, launch(w, fs, []string{"RUN", "missing.yaml"}), 20)

	w.Clear()
	test.ExpectEquality(t, launch(w, fs, []string{"RUN"}), 20)
}

func TestWAVMode(t *testing.T) {
	fs := afero.NewMemMapFs()

	w := &test.Writer{}
	test.ExpectEquality(t, launch(w, fs, []string{"WAV", "-seconds", "0.01", "-rate", "8000", "tone.wav"}), 0)

	info, err := fs.Stat("tone.wav")
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, info.Size() > 44)
}

func TestDumpMode(t *testing.T) {
	fs := afero.NewMemMapFs()

	w := &test.Writer{}
	test.ExpectEquality(t, launch(w, fs, []string{"DUMP"}), 0)
	test.ExpectSuccess(t, strings.Contains(w.String(), "VIA1"))
	test.ExpectSuccess(t, strings.Contains(w.String(), "RIOT"))
}

func TestBenchMode(t *testing.T) {
	fs := afero.NewMemMapFs()

	w := &test.Writer{}
	test.ExpectEquality(t, launch(w, fs, []string{"BENCH", "-cycles", "50000"}), 0)
	test.ExpectSuccess(t, strings.Contains(w.String(), "MHz"))

	w.Clear()
	test.ExpectEquality(t, launch(w, fs, []string{"BENCH", "-profile", "disk"}), 20)
}

func TestVersionMode(t *testing.T) {
	w := &test.Writer{}
	test.ExpectEquality(t, launch(w, afero.NewMemMapFs(), []string{"VERSION"}), 0)
	v, _, _ := version.Version()
	test.ExpectEquality(t, w.String(), v+"\n")
}

func TestArgumentErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := &test.Writer{}

	test.ExpectEquality(t, launch(w, fs, []string{"RUN"}), 20)
	test.ExpectSuccess(t, strings.Contains(w.String(), "arguments: a single scenario file is required"))

	w.Clear()
	test.ExpectEquality(t, launch(w, fs, []string{"WAV"}), 20)
	test.ExpectSuccess(t, strings.Contains(w.String(), "arguments: an output file is required"))
}
