// Package esq1 implements the Ensoniq ESQ-1 program (patch) data format and
// its system-exclusive bulk dump protocol.
//
// A patch is a set of named integer parameters. The wire form of one patch is
// the Program Control Block (PCB), a fixed sequence of 7-bit bytes whose
// field layout is described by the package's parameter table. Dumps wrap one
// PCB (single program) or forty PCBs (all programs) in a checksummed sysex
// envelope.
package esq1

import (
	"errors"
	"fmt"
)

// Section identifies a front-panel page of related parameters.
type Section string

const (
	SecEnv1 Section = "env1"
	SecEnv2 Section = "env2"
	SecEnv3 Section = "env3"
	SecEnv4 Section = "env4"

	SecLFO1 Section = "lfo1"
	SecLFO2 Section = "lfo2"
	SecLFO3 Section = "lfo3"

	SecOsc1 Section = "osc1"
	SecOsc2 Section = "osc2"
	SecOsc3 Section = "osc3"

	SecModes  Section = "modes"
	SecFilter Section = "filter"
	SecOutput Section = "output"
	SecSplit  Section = "split"
)

// Param describes one patch parameter: where its bits live in the PCB and
// which values are legal. All parameters are integers in display convention,
// i.e. bipolar amounts range over -63..63 even though the wire stores them
// center-folded.
type Param struct {
	Name    string
	Section Section

	// Wire location.
	Byte    int  // offset of the first wire byte within the PCB
	Bit     uint // bit offset within that byte, 0 = least significant
	Width   uint // value width in bits
	Nibbles bool // value split into low/high nibble across Byte and Byte+1

	// Legal domain. For selector parameters Enum holds the value names and
	// the legal values are the indices 0..len(Enum)-1.
	Min, Max int
	Enum     []string

	Default int
}

// Errors reported by the codec and table lookups.
var (
	ErrUnknownParam    = errors.New("unknown parameter")
	ErrUnknownSection  = errors.New("unknown section")
	ErrMalformedPCB    = errors.New("malformed program control block")
	ErrWrongPatchCount = errors.New("wrong patch count")
	ErrChecksum        = errors.New("checksum mismatch")
	ErrOutOfRange      = errors.New("value out of range")
	ErrInvalidEnum     = errors.New("invalid selector value")
	ErrMissingParam    = errors.New("missing parameter")
	ErrDumpMode        = errors.New("unexpected dump mode")
	ErrNotSysex        = errors.New("not an ESQ-1 sysex message")
)

// Lookup returns the descriptor of the named parameter.
func Lookup(name string) (*Param, error) {
	p := tableByName[name]
	if p == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	return p, nil
}

// Params returns all parameter descriptors in PCB layout order.
func Params() []*Param {
	return append([]*Param(nil), table...)
}

// Sections returns all sections in PCB layout order.
func Sections() []Section {
	return append([]Section(nil), sectionOrder...)
}

// SectionParams returns the descriptors of one section in PCB layout order.
func SectionParams(sec Section) ([]*Param, error) {
	if !knownSection[sec] {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, sec)
	}
	var out []*Param
	for _, p := range table {
		if p.Section == sec {
			out = append(out, p)
		}
	}
	return out, nil
}

// check reports whether v is legal for the parameter.
func (p *Param) check(v int) error {
	if p.Enum != nil {
		if v < 0 || v >= len(p.Enum) {
			return fmt.Errorf("%w: %s = %d, want 0..%d", ErrInvalidEnum, p.Name, v, len(p.Enum)-1)
		}
		return nil
	}
	if v < p.Min || v > p.Max {
		return fmt.Errorf("%w: %s = %d, want %d..%d", ErrOutOfRange, p.Name, v, p.Min, p.Max)
	}
	return nil
}
