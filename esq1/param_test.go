package esq1

import (
	"errors"
	"testing"
)

// TestTableLayout checks the descriptor table's structural invariants: every
// claimed bit belongs to exactly one parameter, bit 7 of a wire byte is never
// used, and every payload byte past the name is claimed by some parameter.
func TestTableLayout(t *testing.T) {
	var claimed [PCBSize][8]string
	claim := func(p *Param, byteOff int, bit uint) {
		if byteOff < NameLen || byteOff >= PCBSize {
			t.Fatalf("%s: byte offset %d outside payload", p.Name, byteOff)
		}
		if bit > 6 {
			t.Fatalf("%s: claims bit %d of byte %d, bit 7 must stay clear", p.Name, bit, byteOff)
		}
		if prev := claimed[byteOff][bit]; prev != "" {
			t.Fatalf("byte %d bit %d claimed by both %s and %s", byteOff, bit, prev, p.Name)
		}
		claimed[byteOff][bit] = p.Name
	}

	for _, p := range Params() {
		if p.Nibbles {
			for b := 0; b < 2; b++ {
				for bit := uint(0); bit < 4; bit++ {
					claim(p, p.Byte+b, bit)
				}
			}
			continue
		}
		for bit := p.Bit; bit < p.Bit+p.Width; bit++ {
			claim(p, p.Byte, bit)
		}
	}

	for off := NameLen; off < PCBSize; off++ {
		any := false
		for _, name := range claimed[off] {
			any = any || name != ""
		}
		if !any {
			t.Errorf("payload byte %d not claimed by any parameter", off)
		}
	}
}

func TestTableOrder(t *testing.T) {
	params := Params()
	if len(params) != 130 {
		t.Fatalf("table has %d parameters, want 130", len(params))
	}
	if params[0].Byte != NameLen {
		t.Errorf("first parameter at byte %d, want %d", params[0].Byte, NameLen)
	}
	for i := 1; i < len(params); i++ {
		if params[i].Byte < params[i-1].Byte {
			t.Errorf("parameter %s at byte %d after %s at byte %d",
				params[i].Name, params[i].Byte, params[i-1].Name, params[i-1].Byte)
		}
	}
}

func TestTableDomains(t *testing.T) {
	for _, p := range Params() {
		if p.Min > p.Max {
			t.Errorf("%s: min %d > max %d", p.Name, p.Min, p.Max)
		}
		if p.Enum != nil && (p.Min != 0 || p.Max != len(p.Enum)-1) {
			t.Errorf("%s: selector range %d..%d does not match %d names", p.Name, p.Min, p.Max, len(p.Enum))
		}
		if p.Min < 0 && p.Width != 7 {
			t.Errorf("%s: bipolar parameter has width %d, want 7", p.Name, p.Width)
		}
		if err := p.check(p.Default); err != nil {
			t.Errorf("%s: default %d illegal: %v", p.Name, p.Default, err)
		}
		max := 1<<p.Width - 1
		if p.Min >= 0 && p.Max > max {
			t.Errorf("%s: max %d does not fit in %d bits", p.Name, p.Max, p.Width)
		}
	}
}

func TestLookup(t *testing.T) {
	p, err := Lookup("lfo2.freq")
	if err != nil {
		t.Fatal(err)
	}
	if p.Section != SecLFO2 || p.Max != 63 {
		t.Fatalf("wrong descriptor: %+v", p)
	}
	if _, err := Lookup("lfo9.freq"); !errors.Is(err, ErrUnknownParam) {
		t.Fatalf("Lookup(lfo9.freq) = %v, want ErrUnknownParam", err)
	}
}

func TestSectionParams(t *testing.T) {
	params, err := SectionParams(SecEnv2)
	if err != nil {
		t.Fatal(err)
	}
	if len(params) != 10 {
		t.Fatalf("env2 has %d parameters, want 10", len(params))
	}
	for i, p := range params {
		if p.Section != SecEnv2 {
			t.Errorf("parameter %s in wrong section %s", p.Name, p.Section)
		}
		if i > 0 && p.Byte < params[i-1].Byte {
			t.Errorf("section parameters not in layout order at %s", p.Name)
		}
	}

	if _, err := SectionParams(Section("env9")); !errors.Is(err, ErrUnknownSection) {
		t.Fatalf("SectionParams(env9) = %v, want ErrUnknownSection", err)
	}
}

func TestSections(t *testing.T) {
	secs := Sections()
	if len(secs) != 14 {
		t.Fatalf("have %d sections, want 14", len(secs))
	}
	total := 0
	for _, sec := range secs {
		params, err := SectionParams(sec)
		if err != nil {
			t.Fatal(err)
		}
		if len(params) == 0 {
			t.Errorf("section %s is empty", sec)
		}
		total += len(params)
	}
	if total != len(Params()) {
		t.Errorf("sections cover %d parameters, table has %d", total, len(Params()))
	}
}
