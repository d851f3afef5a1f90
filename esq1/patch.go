package esq1

import (
	"fmt"
	"strings"
)

// Patch holds the parameter values of one program. The zero value has no
// parameters set; use NewPatch for a patch with every parameter at its
// device default.
//
// Name is the six-character program name shown on the display. It is
// uppercased and space-padded when encoded.
type Patch struct {
	Name   string
	values map[string]int
}

// NewPatch returns a patch with all parameters at their default values.
func NewPatch() *Patch {
	p := &Patch{Name: strings.Repeat(" ", NameLen), values: make(map[string]int, len(table))}
	for _, par := range table {
		p.values[par.Name] = par.Default
	}
	return p
}

// Get returns the current value of the named parameter.
func (p *Patch) Get(name string) (int, error) {
	if _, err := Lookup(name); err != nil {
		return 0, err
	}
	v, ok := p.values[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingParam, name)
	}
	return v, nil
}

// Set stores a value for the named parameter. The value must be within the
// parameter's legal domain.
func (p *Patch) Set(name string, v int) error {
	par, err := Lookup(name)
	if err != nil {
		return err
	}
	if err := par.check(v); err != nil {
		return err
	}
	p.set(par, v)
	return nil
}

func (p *Patch) set(par *Param, v int) {
	if p.values == nil {
		p.values = make(map[string]int, len(table))
	}
	p.values[par.Name] = v
}

// SetOctave sets an oscillator's semitone parameter from an octave -3..5.
func (p *Patch) SetOctave(osc, octave int) error {
	if octave < -3 || octave > 5 {
		return fmt.Errorf("%w: octave = %d, want -3..5", ErrOutOfRange, octave)
	}
	return p.Set(fmt.Sprintf("osc%d.semi", osc), (octave+3)*12)
}

// Equal reports whether two patches have the same name and parameter values.
func (p *Patch) Equal(q *Patch) bool {
	if p.Name != q.Name || len(p.values) != len(q.values) {
		return false
	}
	for name, v := range p.values {
		w, ok := q.values[name]
		if !ok || v != w {
			return false
		}
	}
	return true
}

// cleanName returns the name as stored in the PCB: six uppercase bytes,
// truncated or space-padded.
func (p *Patch) cleanName() []byte {
	name := strings.ToUpper(p.Name)
	if len(name) > NameLen {
		name = name[:NameLen]
	}
	b := []byte(name + strings.Repeat(" ", NameLen-len(name)))
	for i := range b {
		b[i] &= 0x7F
	}
	return b
}
