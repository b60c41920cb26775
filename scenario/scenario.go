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

package scenario

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/timercore/curated"
	"github.com/jetsetilly/timercore/hardware/clocks"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// sentinal error patterns.
const (
	ParseError = "scenario: %v"
	StepError  = "scenario: step %d: %v"
	Mismatch   = "scenario: step %d: %s"
)

// Scenario is the content of a scenario file.
type Scenario struct {
	Machine string  `yaml:"machine"`
	Speed   float64 `yaml:"speed"`
	Chips   []Chip  `yaml:"chips"`
	Steps   []Step  `yaml:"steps"`

	// filesystem used to open recordings. set by Load()
	Fs afero.Fs `yaml:"-"`
}

// Chip describes a chip to be added to the board.
type Chip struct {
	Name  string `yaml:"name"`
	Kind  string `yaml:"kind"`
	Debug bool   `yaml:"debug"`

	// VIA only. zero means the default offset
	WriteOffset int `yaml:"write_offset"`

	// VIA only. alternative snapshot module names
	AltNames []string `yaml:"alt_names"`
}

// Access is a register access.
type Access struct {
	Chip  string `yaml:"chip"`
	Addr  uint16 `yaml:"addr"`
	Value uint8  `yaml:"value"`

	// the expected value of a read or peek
	Expect *uint8 `yaml:"expect"`

	// store is the second write of a read-modify-write instruction
	RMW bool `yaml:"rmw"`
}

// Signal is an edge on a chip line.
type Signal struct {
	Chip string `yaml:"chip"`
	Line string `yaml:"line"`
	Edge string `yaml:"edge"`
}

// Feed replays a recording onto a chip line, starting at the clock of the
// step.
type Feed struct {
	Chip string `yaml:"chip"`
	Line string `yaml:"line"`
	File string `yaml:"file"`

	// fraction of the peak amplitude. zero means the default of 0.25
	Hysteresis float64 `yaml:"hysteresis"`
}

// Step is a single step of the scenario.
type Step struct {
	At      *clocks.Clock `yaml:"at"`
	Advance clocks.Clock  `yaml:"advance"`

	Signal *Signal `yaml:"signal"`
	Feed   *Feed   `yaml:"feed"`
	Store  *Access `yaml:"store"`
	Read   *Access `yaml:"read"`
	Peek   *Access `yaml:"peek"`

	Snapshot string `yaml:"snapshot"`
	Restore  string `yaml:"restore"`

	// the first digest step with a label records the digest of the board.
	// later steps with the same label compare against it
	Digest string `yaml:"digest"`

	IRQ     *bool         `yaml:"irq"`
	Pending *clocks.Clock `yaml:"pending"`

	// print a description of the board to the output
	Dump bool `yaml:"dump"`
}

// Parse scenario data.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, curated.Errorf(ParseError, err)
	}

	if sc.Machine == "" {
		sc.Machine = "board"
	}
	if sc.Speed == 0 {
		sc.Speed = clocks.PET
	}

	if len(sc.Chips) == 0 {
		return nil, curated.Errorf(ParseError, "no chips")
	}

	names := make(map[string]bool)
	for _, c := range sc.Chips {
		if c.Name == "" {
			return nil, curated.Errorf(ParseError, "chip without a name")
		}
		if names[c.Name] {
			return nil, curated.Errorf(ParseError, fmt.Sprintf("duplicate chip name (%s)", c.Name))
		}
		names[c.Name] = true

		switch strings.ToLower(c.Kind) {
		case "via", "riot":
		default:
			return nil, curated.Errorf(ParseError, fmt.Sprintf("unknown chip kind (%s)", c.Kind))
		}
	}

	return &sc, nil
}

// Load a scenario file.
func Load(fs afero.Fs, filename string) (*Scenario, error) {
	data, err := afero.ReadFile(fs, filename)
	if err != nil {
		return nil, curated.Errorf(ParseError, err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	sc.Fs = fs
	return sc, nil
}
