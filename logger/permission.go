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

package logger

// Permission decides whether a log request is turned into an entry. Chips
// implement Permission themselves and only allow logging when they were
// configured for debugging, so that a busy timer does not fill the log.
type Permission interface {
	AllowLogging() bool
}

type permission bool

func (p permission) AllowLogging() bool {
	return bool(p)
}

// Allow is the Permission for entries that should always be made, such as
// the outcome of a scenario or a failed file operation.
var Allow Permission = permission(true)

// Deny is the Permission that never allows an entry.
var Deny Permission = permission(false)

// Allowed returns true if the Permission allows logging. Callers in hot
// paths should test this before building an expensive detail string.
func Allowed(perm Permission) bool {
	return perm == Allow || perm.AllowLogging()
}
