package esq1

import "fmt"

// PCB layout. Bytes 0..5 hold the six-character program name; the parameter
// sections follow at fixed offsets. Bit 7 of every wire byte is unused so
// that the payload stays within the sysex data range.
const (
	PCBSize = 127
	NameLen = 6

	envBase   = 6
	envStride = 10
	lfoBase   = 46
	lfoStride = 9
	oscBase   = 73
	oscStride = 12
	miscBase  = 109
)

// Modulation source selector, shared by the oscillators, the filter, the
// pan stage and the LFO depth ramps.
var modSources = []string{
	"LFO1", "LFO2", "LFO3",
	"ENV1", "ENV2", "ENV3", "ENV4",
	"VEL", "VEL2", "KYBD", "KYBD2",
	"WHEEL", "PEDAL", "XCTRL", "PRESS",
	"OFF",
}

const modSourceOff = 15

// The 32 internal waveforms plus OCT+5.
var oscWaves = []string{
	"SAW", "BELL", "SINE", "SQUARE", "PULSE",
	"NOISE1", "NOISE2", "NOISE3",
	"BASS", "PIANO", "EL PNO",
	"VOICE1", "VOICE2", "VOICE3",
	"KICK", "REED", "ORGAN",
	"SYNTH1", "SYNTH2", "SYNTH3",
	"FORMT1", "FORMT2", "FORMT3", "FORMT4", "FORMT5",
	"PULSE2", "SQR2", "4 OCTS", "PRIME",
	"BASS2", "E PNO2", "OCTAVE", "OCT+5",
}

var lfoWaves = []string{"TRI", "SAW", "SQR", "NOISE"}

var (
	table       = buildTable()
	tableByName = make(map[string]*Param, len(table))

	sectionOrder = []Section{
		SecEnv1, SecEnv2, SecEnv3, SecEnv4,
		SecLFO1, SecLFO2, SecLFO3,
		SecOsc1, SecOsc2, SecOsc3,
		SecModes, SecFilter, SecOutput, SecSplit,
	}
	knownSection = make(map[Section]bool, len(sectionOrder))
)

func init() {
	for _, p := range table {
		if tableByName[p.Name] != nil {
			panic("esq1: duplicate parameter " + p.Name)
		}
		tableByName[p.Name] = p
	}
	for _, s := range sectionOrder {
		knownSection[s] = true
	}
}

func buildTable() []*Param {
	var t []*Param
	add := func(sec Section, field string, p Param) {
		p.Name = string(sec) + "." + field
		p.Section = sec
		t = append(t, &p)
	}
	enum := func(names []string) Param {
		return Param{Width: bitsFor(len(names) - 1), Max: len(names) - 1, Enum: names}
	}

	// Envelopes 1-4: three target levels, four transition times, then the
	// velocity and keyboard scaling amounts (LV, T1V, TK).
	envSections := []Section{SecEnv1, SecEnv2, SecEnv3, SecEnv4}
	for i, sec := range envSections {
		base := envBase + i*envStride
		add(sec, "l1", Param{Byte: base + 0, Width: 7, Min: -63, Max: 63})
		add(sec, "l2", Param{Byte: base + 1, Width: 7, Min: -63, Max: 63})
		add(sec, "l3", Param{Byte: base + 2, Width: 7, Min: -63, Max: 63})
		add(sec, "t1", Param{Byte: base + 3, Width: 6, Max: 63})
		add(sec, "t2", Param{Byte: base + 4, Width: 6, Max: 63})
		add(sec, "t3", Param{Byte: base + 5, Width: 6, Max: 63})
		add(sec, "t4", Param{Byte: base + 6, Width: 6, Max: 63})
		add(sec, "lv", Param{Byte: base + 7, Width: 6, Max: 63})
		add(sec, "t1v", Param{Byte: base + 8, Width: 6, Max: 63})
		add(sec, "tk", Param{Byte: base + 9, Width: 6, Max: 63})
	}

	// LFOs 1-3. The wire order is waveform nibble-pair first, then the
	// frequency byte, then the two depth-level nibble-pairs. The printed
	// manual lists the frequency byte first; hardware dumps disagree, and
	// the hardware wins.
	lfoSections := []Section{SecLFO1, SecLFO2, SecLFO3}
	for i, sec := range lfoSections {
		base := lfoBase + i*lfoStride
		wave := enum(lfoWaves)
		wave.Byte, wave.Nibbles, wave.Width = base+0, true, 8
		add(sec, "wave", wave)
		add(sec, "freq", Param{Byte: base + 2, Width: 6, Max: 63})
		add(sec, "l1", Param{Byte: base + 3, Nibbles: true, Width: 8, Max: 63})
		add(sec, "l2", Param{Byte: base + 5, Nibbles: true, Width: 8, Max: 63})
		add(sec, "delay", Param{Byte: base + 7, Width: 6, Max: 63})
		add(sec, "reset", Param{Byte: base + 7, Bit: 6, Width: 1, Max: 1})
		mod := enum(modSources)
		mod.Byte, mod.Default = base+8, modSourceOff
		add(sec, "mod", mod)
		add(sec, "humanize", Param{Byte: base + 8, Bit: 4, Width: 1, Max: 1})
	}

	// Oscillators 1-3, each with its DCA stage.
	oscSections := []Section{SecOsc1, SecOsc2, SecOsc3}
	for i, sec := range oscSections {
		base := oscBase + i*oscStride
		add(sec, "semi", Param{Byte: base + 0, Width: 7, Max: 96, Default: 36})
		add(sec, "fine", Param{Byte: base + 1, Width: 5, Max: 31})
		for j := 0; j < 2; j++ {
			src := enum(modSources)
			src.Byte, src.Default = base+2+j, modSourceOff
			add(sec, fmt.Sprintf("fmsrc%d", j+1), src)
		}
		add(sec, "fmamt1", Param{Byte: base + 4, Width: 7, Min: -63, Max: 63})
		add(sec, "fmamt2", Param{Byte: base + 5, Width: 7, Min: -63, Max: 63})
		wave := enum(oscWaves)
		wave.Byte = base + 6
		add(sec, "wave", wave)
		add(sec, "dcalevel", Param{Byte: base + 7, Width: 6, Max: 63})
		add(sec, "dcaenable", Param{Byte: base + 7, Bit: 6, Width: 1, Max: 1})
		for j := 0; j < 2; j++ {
			src := enum(modSources)
			src.Byte, src.Default = base+8+j, modSourceOff
			add(sec, fmt.Sprintf("dcasrc%d", j+1), src)
		}
		add(sec, "dcaamt1", Param{Byte: base + 10, Width: 7, Min: -63, Max: 63})
		add(sec, "dcaamt2", Param{Byte: base + 11, Width: 7, Min: -63, Max: 63})
	}

	// MODES page flags share one byte.
	add(SecModes, "am", Param{Byte: miscBase + 0, Bit: 0, Width: 1, Max: 1})
	add(SecModes, "sync", Param{Byte: miscBase + 0, Bit: 1, Width: 1, Max: 1})
	add(SecModes, "mono", Param{Byte: miscBase + 0, Bit: 2, Width: 1, Max: 1})
	add(SecModes, "voicereset", Param{Byte: miscBase + 0, Bit: 3, Width: 1, Max: 1})
	add(SecModes, "envreset", Param{Byte: miscBase + 0, Bit: 4, Width: 1, Max: 1})
	add(SecModes, "oscreset", Param{Byte: miscBase + 0, Bit: 5, Width: 1, Max: 1})
	add(SecModes, "cycle", Param{Byte: miscBase + 0, Bit: 6, Width: 1, Max: 1})
	add(SecModes, "glide", Param{Byte: miscBase + 1, Width: 6, Max: 63})

	// FILTER page.
	add(SecFilter, "freq", Param{Byte: miscBase + 2, Width: 7, Max: 127})
	add(SecFilter, "q", Param{Byte: miscBase + 3, Width: 5, Max: 31})
	for j := 0; j < 2; j++ {
		src := enum(modSources)
		src.Byte, src.Default = miscBase+4+j, modSourceOff
		add(SecFilter, fmt.Sprintf("modsrc%d", j+1), src)
	}
	add(SecFilter, "modamt1", Param{Byte: miscBase + 6, Width: 7, Min: -63, Max: 63})
	add(SecFilter, "modamt2", Param{Byte: miscBase + 7, Width: 7, Min: -63, Max: 63})
	add(SecFilter, "keybd", Param{Byte: miscBase + 8, Width: 6, Max: 63})

	// OUTPUT page: the final DCA and pan.
	add(SecOutput, "dca4modamt", Param{Byte: miscBase + 9, Width: 6, Max: 63})
	add(SecOutput, "pan", Param{Byte: miscBase + 10, Width: 4, Max: 15, Default: 8})
	pansrc := enum(modSources)
	pansrc.Byte, pansrc.Default = miscBase+11, modSourceOff
	add(SecOutput, "panmodsrc", pansrc)
	add(SecOutput, "panmodamt", Param{Byte: miscBase + 12, Width: 7, Min: -63, Max: 63})

	// SPLIT/LAYER page.
	add(SecSplit, "layer", Param{Byte: miscBase + 13, Bit: 0, Width: 1, Max: 1})
	add(SecSplit, "split", Param{Byte: miscBase + 13, Bit: 1, Width: 1, Max: 1})
	add(SecSplit, "splitlayer", Param{Byte: miscBase + 13, Bit: 2, Width: 1, Max: 1})
	add(SecSplit, "dir", Param{Byte: miscBase + 13, Bit: 3, Width: 1, Max: 1})
	add(SecSplit, "point", Param{Byte: miscBase + 14, Width: 7, Max: 108})
	add(SecSplit, "layerprog", Param{Byte: miscBase + 15, Width: 6, Max: 39})
	add(SecSplit, "splitprog", Param{Byte: miscBase + 16, Width: 6, Max: 39})
	add(SecSplit, "splitlayerprog", Param{Byte: miscBase + 17, Width: 6, Max: 39})

	return t
}

// bitsFor returns the width needed to store values 0..max.
func bitsFor(max int) uint {
	var w uint
	for v := max; v > 0; v >>= 1 {
		w++
	}
	return w
}
