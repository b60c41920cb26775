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
	"fmt"
	"io"
	"os"

	"github.com/jetsetilly/timercore/curated"
	"github.com/jetsetilly/timercore/digest"
	"github.com/jetsetilly/timercore/dump"
	"github.com/jetsetilly/timercore/hardware"
	"github.com/jetsetilly/timercore/hardware/clocks"
	"github.com/jetsetilly/timercore/hardware/riot"
	"github.com/jetsetilly/timercore/hardware/via"
	"github.com/jetsetilly/timercore/logger"
	"github.com/jetsetilly/timercore/modalflag"
	"github.com/jetsetilly/timercore/performance"
	"github.com/jetsetilly/timercore/scenario"
	"github.com/jetsetilly/timercore/statsview"
	"github.com/jetsetilly/timercore/version"
	"github.com/jetsetilly/timercore/wavwriter"
	"github.com/spf13/afero"
)

// ArgumentError is the pattern for errors in the command line arguments of
// a mode.
const ArgumentError = "arguments: %s"

func main() {
	os.Exit(launch(os.Stdout, afero.NewOsFs(), os.Args[1:]))
}

// launch the program with the arguments. the return value is suitable for
// os.Exit().
func launch(output io.Writer, fs afero.Fs, args []string) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("RUN", "WAV", "BENCH", "DUMP", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0
	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return 10
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, fs)
	case "WAV":
		err = wav(md, fs)
	case "BENCH":
		err = bench(md, fs)
	case "DUMP":
		err = dumpBoard(md, fs)
	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		return 20
	}

	return 0
}

func run(md *modalflag.Modes, fs afero.Fs) error {
	md.NewMode()

	log := md.AddBool("log", false, "echo debugging log to output")
	dumpEnd := md.AddBool("dump", false, "dump the board when the scenario has finished")
	showDigest := md.AddBool("digest", false, "print the digest of the board when the scenario has finished")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return curated.Errorf(ArgumentError, "a single scenario file is required")
	}

	if *log {
		logger.SetEcho(md.Output, false)
		defer logger.SetEcho(nil, false)
	}

	sc, err := scenario.Load(fs, md.GetArg(0))
	if err != nil {
		return err
	}

	b, err := sc.Run(md.Output)
	if err != nil {
		return err
	}

	fmt.Fprintf(md.Output, "%s: %d steps ok\n", md.GetArg(0), len(sc.Steps))

	if *dumpEnd {
		b.Dump(md.Output)
	}

	if *showDigest {
		s, err := b.Snapshot()
		if err != nil {
			return err
		}
		h, err := digest.Snapshot(s)
		if err != nil {
			return err
		}
		fmt.Fprintf(md.Output, "digest: %s\n", h)
	}

	return nil
}

// speaker is a via.Peripheral that passes the level of CB2 to a WavWriter.
type speaker struct {
	via.NullPeripheral
	aw *wavwriter.WavWriter
}

func (s speaker) SetCB2(level bool) {
	s.aw.SetLevel(level)
}

func wav(md *modalflag.Modes, fs afero.Fs) error {
	md.NewMode()

	rate := md.AddInt("rate", 44100, "sample rate of the wav file")
	seconds := md.AddFloat64("seconds", 1.0, "length of recording in seconds")
	note := md.AddInt("note", 0x40, "value of the timer 2 latch (sets the pitch)")
	pattern := md.AddInt("pattern", 0x0f, "value of the shift register (sets the timbre)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return curated.Errorf(ArgumentError, "an output file is required")
	}

	b := hardware.NewBoard("PET")

	aw, err := wavwriter.New(fs, md.GetArg(0), &b.Clock, clocks.PET, *rate)
	if err != nil {
		return err
	}
	b.Guard.AddCallback(aw.ShiftTime)

	v, err := b.AddVIA(via.Config{
		Name:       "VIA",
		Peripheral: speaker{aw: aw},
	})
	if err != nil {
		return err
	}

	// the PET makes sound by running the shift register freely under the
	// control of timer 2, with CB2 connected to a speaker
	b.Advance(1)
	v.Store(uint16(via.T2LL), uint8(*note))
	b.Advance(1)
	v.Store(uint16(via.ACR), 0x10)
	b.Advance(1)
	v.Store(uint16(via.SR), uint8(*pattern))

	if err := b.RunFor(clocks.Cycles(clocks.PET, *seconds), nil); err != nil {
		return err
	}

	return aw.Close()
}

func bench(md *modalflag.Modes, fs afero.Fs) error {
	md.NewMode()

	cycles := md.AddUint64("cycles", 10000000, "number of cycles to run")
	capped := md.AddBool("capped", false, "limit speed to that of the emulated machine")
	profile := md.AddString("profile", "none", "profiles to create: cpu, mem, trace")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	prof, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	if *stats {
		if !statsview.Available() {
			return curated.Errorf(ArgumentError, "statsview not available in this build")
		}
		statsview.Launch(md.Output, "BENCH")
	}

	b, err := benchBoard()
	if err != nil {
		return err
	}

	return performance.Check(md.Output, b, clocks.Clock(*cycles), clocks.PET, *capped, prof, fs)
}

// benchBoard is a board with two VIAs and a RIOT, with every timer running.
func benchBoard() (*hardware.Board, error) {
	b := hardware.NewBoard("BENCH")

	for _, name := range []string{"VIA1", "VIA2"} {
		v, err := b.AddVIA(via.Config{Name: name})
		if err != nil {
			return nil, err
		}
		b.Advance(1)
		v.Store(uint16(via.IER), via.IntIRQ|via.IntT1|via.IntT2)
		v.Store(uint16(via.ACR), 0x50)
		v.Store(uint16(via.T1LL), 0x80)
		v.Store(uint16(via.T1CH), 0x00)
		v.Store(uint16(via.T2LL), 0x20)
		v.Store(uint16(via.SR), 0x55)
	}

	r, err := b.AddRIOT(riot.Config{Name: "RIOT"})
	if err != nil {
		return nil, err
	}
	r.Store(riot.TimerAddress(riot.TIM8T, true), 0xff)

	return b, nil
}

func dumpBoard(md *modalflag.Modes, fs afero.Fs) error {
	md.NewMode()

	graph := md.AddString("graph", "", "write a graphviz description of the board to the file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	b, err := benchBoard()
	if err != nil {
		return err
	}

	if *graph != "" {
		return dump.GraphFile(fs, *graph, b)
	}

	for _, c := range b.Chips() {
		switch c.(type) {
		case *via.VIA:
			dump.Registers(md.Output, c, 16)
		case *riot.RIOT:
			dump.Registers(md.Output, c, 8)
		}
	}
	b.Dump(md.Output)

	return nil
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("revision", false, "display revision information")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	v, r, _ := version.Version()
	if *revision {
		fmt.Fprintf(md.Output, "%s %s\n", v, r)
	} else {
		fmt.Fprintln(md.Output, v)
	}

	return nil
}
