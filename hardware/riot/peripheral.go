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

package riot

// Peripheral is implemented by the machine specific layer that connects the
// RIOT ports to the rest of the machine.
type Peripheral interface {
	// a value has been written to a port. the value has had the data
	// direction register applied, input pins are high
	StorePRA(value uint8)
	StorePRB(value uint8)

	// the level of the port pins
	ReadPRA() uint8
	ReadPRB() uint8

	// the RIOT has been reset
	Reset()

	// state is being restored from a snapshot
	UndumpPRA(value uint8)
	UndumpPRB(value uint8)
}

// NullPeripheral implements the Peripheral interface. Nothing is connected to
// the ports, input pins read high.
type NullPeripheral struct{}

func (NullPeripheral) StorePRA(_ uint8)  {}
func (NullPeripheral) StorePRB(_ uint8)  {}
func (NullPeripheral) ReadPRA() uint8    { return 0xff }
func (NullPeripheral) ReadPRB() uint8    { return 0xff }
func (NullPeripheral) Reset()            {}
func (NullPeripheral) UndumpPRA(_ uint8) {}
func (NullPeripheral) UndumpPRB(_ uint8) {}
