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

// Package digest reduces the state of a board to a short hash value. The
// hash is created from the serialised form of a snapshot and so two boards
// with the same digest are in the same state, to the extent that the
// snapshot captures that state.
//
// The Digest type chains hashes together. Each call to Add() hashes the new
// snapshot along with the previous hash, so that a sequence of snapshots
// taken over the course of a run is reduced to a single value. This is useful
// for regression checking.
package digest
