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

// Register offsets. Only the low four bits of an address are significant.
const (
	PRB    uint8 = 0x0 // port B
	PRA    uint8 = 0x1 // port A
	DDRB   uint8 = 0x2 // data direction B
	DDRA   uint8 = 0x3 // data direction A
	T1CL   uint8 = 0x4 // timer 1 counter low (write to latch)
	T1CH   uint8 = 0x5 // timer 1 counter high (write loads counter)
	T1LL   uint8 = 0x6 // timer 1 latch low
	T1LH   uint8 = 0x7 // timer 1 latch high
	T2CL   uint8 = 0x8 // timer 2 counter low (write to latch)
	T2CH   uint8 = 0x9 // timer 2 counter high (write loads counter)
	SR     uint8 = 0xa // shift register
	ACR    uint8 = 0xb // auxiliary control
	PCR    uint8 = 0xc // peripheral control
	IFR    uint8 = 0xd // interrupt flag
	IER    uint8 = 0xe // interrupt enable
	PRANHS uint8 = 0xf // port A, no handshake

	// the timer 2 latch shares storage with the counter addresses
	T2LL = T2CL
	T2LH = T2CH
)

// RegisterNames is indexed by register offset.
var RegisterNames = [16]string{
	"PRB", "PRA", "DDRB", "DDRA",
	"T1CL", "T1CH", "T1LL", "T1LH",
	"T2CL", "T2CH", "SR", "ACR",
	"PCR", "IFR", "IER", "PRANHS",
}

// Interrupt flag and enable bits.
const (
	IntCA2 uint8 = 0x01
	IntCA1 uint8 = 0x02
	IntSR  uint8 = 0x04
	IntCB2 uint8 = 0x08
	IntCB1 uint8 = 0x10
	IntT2  uint8 = 0x20
	IntT1  uint8 = 0x40

	// bit 7 of IFR is set when any enabled interrupt is active. writing to
	// IER with bit 7 set enables the interrupts in the low bits, otherwise
	// they are disabled
	IntIRQ uint8 = 0x80
)

// Line is one of the four control lines.
type Line int

// List of valid Line values.
const (
	CA1 Line = iota
	CA2
	CB1
	CB2
)

func (l Line) String() string {
	switch l {
	case CA1:
		return "CA1"
	case CA2:
		return "CA2"
	case CB1:
		return "CB1"
	case CB2:
		return "CB2"
	}
	panic("unknown VIA line")
}

// Edge of a signal on a control line.
type Edge int

// List of valid Edge values.
const (
	Fall Edge = iota
	Rise
)

func (e Edge) String() string {
	if e == Rise {
		return "rise"
	}
	return "fall"
}

// PCR helpers. CA2 and CB2 modes occupy bits 1-3 and 5-7 respectively.

func (via *VIA) isCA2Output() bool {
	return via.regs[PCR]&0x0c == 0x0c
}

func (via *VIA) isCA2IndInput() bool {
	return via.regs[PCR]&0x0a == 0x02
}

func (via *VIA) isCA2Handshake() bool {
	return via.regs[PCR]&0x0c == 0x08
}

func (via *VIA) isCA2PulseMode() bool {
	return via.regs[PCR]&0x0e == 0x0a
}

func (via *VIA) isCA2ToggleMode() bool {
	return via.regs[PCR]&0x0e == 0x08
}

func (via *VIA) isCB2Output() bool {
	return via.regs[PCR]&0xc0 == 0xc0
}

func (via *VIA) isCB2IndInput() bool {
	return via.regs[PCR]&0xa0 == 0x20
}

func (via *VIA) isCB2Handshake() bool {
	return via.regs[PCR]&0xc0 == 0x80
}

func (via *VIA) isCB2PulseMode() bool {
	return via.regs[PCR]&0xe0 == 0xa0
}

func (via *VIA) isCB2ToggleMode() bool {
	return via.regs[PCR]&0xe0 == 0x80
}
