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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// Whereas with flag.FlagSet you call Parse() with the array of strings as the
// only argument, with modalflag you first call NewArgs() with the array of
// arguments and then Parse() with no arguments:
//
//	md = Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	_, _ = md.Parse()
//
// A mode is a special command line argument that puts the program into a
// different mode of operation, each with its own set of flags. Modes are
// added with AddSubModes(). The first mode in the list is the default mode
// and is selected if the first non-flag argument is not a listed mode.
//
//	md.AddSubModes("run", "wav", "bench")
//	_, _ = md.Parse()
//	switch md.Mode() {
//	case "WAV":
//		md.NewMode()
//		rate := md.AddInt("rate", 44100, "sample rate")
//		_, _ = md.Parse()
//		...
//	}
//
// Mode comparisons are case insensitive and modes are always reported in
// upper case. Modes can be nested as deeply as required. The Path() function
// returns all the modes encountered, separated by a forward slash.
package modalflag
