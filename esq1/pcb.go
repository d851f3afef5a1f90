package esq1

import "fmt"

// DecodePCB unpacks a Program Control Block into a patch. The input must be
// exactly PCBSize bytes. Field values are stored as extracted; exact round
// trips are guaranteed only for encoder-produced input, since the encoder
// zeroes the bits no descriptor claims.
func DecodePCB(b []byte) (*Patch, error) {
	if len(b) != PCBSize {
		return nil, fmt.Errorf("%w: %d bytes, want %d", ErrMalformedPCB, len(b), PCBSize)
	}
	p := &Patch{
		Name:   string(b[:NameLen]),
		values: make(map[string]int, len(table)),
	}
	for _, par := range table {
		p.values[par.Name] = par.fromWire(b)
	}
	return p, nil
}

// EncodePCB packs the patch into a fresh Program Control Block.
func (p *Patch) EncodePCB() ([]byte, error) {
	return p.AppendPCB(nil)
}

// AppendPCB appends the patch's Program Control Block to buf. Every
// parameter must be present and legal; on failure buf is returned unchanged.
func (p *Patch) AppendPCB(buf []byte) ([]byte, error) {
	out := make([]byte, PCBSize)
	copy(out, p.cleanName())
	for _, par := range table {
		v, ok := p.values[par.Name]
		if !ok {
			return buf, fmt.Errorf("%w: %s", ErrMissingParam, par.Name)
		}
		if err := par.check(v); err != nil {
			return buf, err
		}
		par.toWire(out, v)
	}
	return append(buf, out...), nil
}

// fromWire extracts the parameter's value from a PCB. Bipolar parameters are
// stored center-folded: wire 0..63 is 0..63, wire 65..127 is -63..-1.
func (par *Param) fromWire(b []byte) int {
	var raw uint
	if par.Nibbles {
		raw = uint(b[par.Byte]&0x0F) | uint(b[par.Byte+1]&0x0F)<<4
	} else {
		raw = uint(b[par.Byte]) >> par.Bit & (1<<par.Width - 1)
	}
	if par.Min < 0 && raw >= 64 {
		return int(raw) - 128
	}
	return int(raw)
}

// toWire writes the parameter's value into a zero-initialized PCB. Nibble
// pairs go low nibble first with the upper nibble of each wire byte zero.
func (par *Param) toWire(b []byte, v int) {
	raw := uint(v)
	if v < 0 {
		raw = uint(128 + v)
	}
	if par.Nibbles {
		b[par.Byte] = byte(raw & 0x0F)
		b[par.Byte+1] = byte(raw >> 4 & 0x0F)
		return
	}
	b[par.Byte] |= byte((raw & (1<<par.Width - 1)) << par.Bit)
}
