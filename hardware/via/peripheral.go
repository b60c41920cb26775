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

package via

// Peripheral is implemented by the machine specific layer that connects the
// VIA to the rest of the machine. The same VIA core is used in many
// different machines and the Peripheral is what makes a VIA in one machine
// different to a VIA in another.
//
// Implementations will usually embed NullPeripheral and implement only the
// functions they are interested in.
type Peripheral interface {
	// a value has been written to port A. the value has had the data
	// direction register applied, input pins are high. the reg argument is
	// the register that was written to
	StorePRA(value uint8, old uint8, reg uint8)

	// a value has been written to port B
	StorePRB(value uint8, old uint8, reg uint8)

	// the electrical level of the port A pins
	ReadPRA(reg uint8) uint8

	// the electrical level of the port B pins
	ReadPRB() uint8

	// the output level of CA2 and CB2 has changed
	SetCA2(level bool)
	SetCB2(level bool)

	// control registers have been written to
	StorePCR(value uint8)
	StoreACR(value uint8)
	StoreSR(value uint8)
	StoreT2L(value uint8)

	// the VIA has been reset
	Reset()

	// state is being restored from a snapshot. the functions should restore
	// the state of the peripheral without causing any further side effects
	UndumpPRA(value uint8)
	UndumpPRB(value uint8)
	UndumpPCR(value uint8)
	UndumpACR(value uint8)
}

// ShiftObserver can be implemented by a Peripheral that wants to know when
// the shift register has completed a byte. The PET uses this to produce
// sound.
type ShiftObserver interface {
	ShiftComplete(sr uint8)
}

// CB1Output can be implemented by a Peripheral that is interested in the
// level of CB1 when the shift register is driving it.
type CB1Output interface {
	SetCB1(level bool)
}

// NullPeripheral implements the Peripheral interface. Nothing is connected to
// the ports, input pins read high.
type NullPeripheral struct{}

func (NullPeripheral) StorePRA(_ uint8, _ uint8, _ uint8) {}
func (NullPeripheral) StorePRB(_ uint8, _ uint8, _ uint8) {}
func (NullPeripheral) ReadPRA(_ uint8) uint8              { return 0xff }
func (NullPeripheral) ReadPRB() uint8                     { return 0xff }
func (NullPeripheral) SetCA2(_ bool)                      {}
func (NullPeripheral) SetCB2(_ bool)                      {}
func (NullPeripheral) StorePCR(_ uint8)                   {}
func (NullPeripheral) StoreACR(_ uint8)                   {}
func (NullPeripheral) StoreSR(_ uint8)                    {}
func (NullPeripheral) StoreT2L(_ uint8)                   {}
func (NullPeripheral) Reset()                             {}
func (NullPeripheral) UndumpPRA(_ uint8)                  {}
func (NullPeripheral) UndumpPRB(_ uint8)                  {}
func (NullPeripheral) UndumpPCR(_ uint8)                  {}
func (NullPeripheral) UndumpACR(_ uint8)                  {}
