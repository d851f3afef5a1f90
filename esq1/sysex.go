package esq1

import (
	"bytes"
	"fmt"
)

// Bulk dump framing bytes.
const (
	sysexStart = 0xF0
	sysexEnd   = 0xF7
	idEnsoniq  = 0x0F
	idESQ1     = 0x02

	modeProgramDump    = 0x01
	modeAllProgramDump = 0x02
)

// BankSize is the number of program slots on the device.
const BankSize = 40

// Bank is a full set of programs in slot order.
type Bank [BankSize]*Patch

// Message sizes on the wire.
const (
	headerSize         = 5 // F0, Ensoniq ID, ESQ-1 ID, channel, mode
	trailerSize        = 2 // checksum, F7
	ProgramDumpSize    = headerSize + PCBSize + trailerSize
	AllProgramDumpSize = headerSize + BankSize*PCBSize + trailerSize
)

// Message represents any ESQ-1 bulk dump message.
type Message interface {
	// Encode appends the encoding of the message to buf. On failure buf is
	// returned unchanged.
	Encode(buf []byte) ([]byte, error)
}

// ProgramDump transfers a single program.
type ProgramDump struct {
	Channel byte
	Patch   *Patch
}

// AllProgramDump transfers the full bank of forty programs. Nil slots are
// encoded as default patches.
type AllProgramDump struct {
	Channel byte
	Bank    Bank
}

func (msg *ProgramDump) Encode(b []byte) ([]byte, error) {
	patch := msg.Patch
	if patch == nil {
		patch = NewPatch()
	}
	pcb, err := patch.EncodePCB()
	if err != nil {
		return b, err
	}
	b = append(b, sysexStart, idEnsoniq, idESQ1, msg.Channel&0x0F, modeProgramDump)
	b = append(b, pcb...)
	return append(b, checksum7(pcb), sysexEnd), nil
}

func (msg *AllProgramDump) Encode(b []byte) ([]byte, error) {
	payload := make([]byte, 0, BankSize*PCBSize)
	for i, p := range msg.Bank {
		if p == nil {
			p = NewPatch()
		}
		var err error
		payload, err = p.AppendPCB(payload)
		if err != nil {
			return b, fmt.Errorf("slot %d: %w", i, err)
		}
	}
	b = append(b, sysexStart, idEnsoniq, idESQ1, msg.Channel&0x0F, modeAllProgramDump)
	b = append(b, payload...)
	return append(b, checksum7(payload), sysexEnd), nil
}

// checksum7 is the running 7-bit sum over the payload bytes. In all-program
// mode the sum runs cumulatively over all forty PCBs.
func checksum7(payload []byte) byte {
	var sum byte
	for _, v := range payload {
		sum = (sum + v) & 0x7F
	}
	return sum
}

var dumpPrefix = []byte{sysexStart, idEnsoniq, idESQ1}

// Decode decodes an ESQ-1 bulk dump message. The buffer must contain a
// complete sysex message.
func Decode(sysex []byte) (Message, error) {
	if err := checkEnvelope(sysex); err != nil {
		return nil, err
	}
	switch mode := sysex[4]; mode {
	case modeProgramDump:
		return DecodeProgramDump(sysex)
	case modeAllProgramDump:
		return DecodeAllProgramDump(sysex)
	default:
		return nil, fmt.Errorf("%w: %#x", ErrDumpMode, mode)
	}
}

// DecodeProgramDump decodes a single-program dump message.
func DecodeProgramDump(sysex []byte) (*ProgramDump, error) {
	payload, channel, err := unframe(sysex, modeProgramDump)
	if err != nil {
		return nil, err
	}
	if len(payload) != PCBSize {
		return nil, fmt.Errorf("%w: payload is %d bytes, want %d", ErrMalformedPCB, len(payload), PCBSize)
	}
	if err := verifyChecksum(payload, sysex); err != nil {
		return nil, err
	}
	patch, err := DecodePCB(payload)
	if err != nil {
		return nil, err
	}
	return &ProgramDump{Channel: channel, Patch: patch}, nil
}

// DecodeAllProgramDump decodes an all-program dump message. The payload must
// hold exactly forty PCBs.
func DecodeAllProgramDump(sysex []byte) (*AllProgramDump, error) {
	payload, channel, err := unframe(sysex, modeAllProgramDump)
	if err != nil {
		return nil, err
	}
	if len(payload) != BankSize*PCBSize {
		return nil, fmt.Errorf("%w: payload holds %d programs, want %d",
			ErrWrongPatchCount, len(payload)/PCBSize, BankSize)
	}
	if err := verifyChecksum(payload, sysex); err != nil {
		return nil, err
	}
	dump := &AllProgramDump{Channel: channel}
	for i := range dump.Bank {
		patch, err := DecodePCB(payload[i*PCBSize : (i+1)*PCBSize])
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", i, err)
		}
		dump.Bank[i] = patch
	}
	return dump, nil
}

func checkEnvelope(sysex []byte) error {
	if len(sysex) < headerSize+trailerSize || !bytes.HasPrefix(sysex, dumpPrefix) || sysex[len(sysex)-1] != sysexEnd {
		return ErrNotSysex
	}
	return nil
}

func unframe(sysex []byte, wantMode byte) (payload []byte, channel byte, err error) {
	if err := checkEnvelope(sysex); err != nil {
		return nil, 0, err
	}
	if mode := sysex[4]; mode != wantMode {
		return nil, 0, fmt.Errorf("%w: %#x, want %#x", ErrDumpMode, mode, wantMode)
	}
	return sysex[headerSize : len(sysex)-trailerSize], sysex[3], nil
}

func verifyChecksum(payload, sysex []byte) error {
	want := sysex[len(sysex)-2]
	if sum := checksum7(payload); sum != want {
		return fmt.Errorf("%w: computed %#x, message has %#x", ErrChecksum, sum, want)
	}
	return nil
}
