// Command esq1-preview renders a rough audible approximation of a program
// dump to a .wav file. It is a sketch of the sound, not an emulation: the
// three oscillators are reduced to basic waveform shapes, the amplitude
// follows envelope 4, and the filter is ignored.
package main

import (
	"flag"
	"log"
	"math"
	"math/rand"
	"os"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/transforms"
	"github.com/go-audio/wav"
	"github.com/synthkit/esq1/esq1"
)

const sampleRate = 44100

func main() {
	var (
		out  = flag.String("o", "preview.wav", "output .wav file")
		slot = flag.Int("slot", 0, "program slot to preview in a bank dump")
		hold = flag.Float64("hold", 1.5, "seconds to hold the key")
	)
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("need .syx file as argument")
	}

	raw, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	msg, err := esq1.Decode(raw)
	if err != nil {
		log.Fatal(err)
	}

	var patch *esq1.Patch
	switch msg := msg.(type) {
	case *esq1.ProgramDump:
		patch = msg.Patch
	case *esq1.AllProgramDump:
		if *slot < 0 || *slot >= esq1.BankSize {
			log.Fatalf("slot %d out of range 0..%d", *slot, esq1.BankSize-1)
		}
		patch = msg.Bank[*slot]
	}
	log.Printf("previewing program %q", patch.Name)

	buf := render(patch, *hold)
	transforms.NormalizeMax(buf)
	if err := transforms.PCMScale(buf, 16); err != nil {
		log.Fatal(err)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	intBuf := buf.AsIntBuffer()
	intBuf.SourceBitDepth = 16
	if err := enc.Write(intBuf); err != nil {
		log.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s (%.1fs)", *out, float64(len(buf.Data))/sampleRate)
}

type voice struct {
	freq  float64
	level float64
	shape func(phase float64) float64
}

func render(p *esq1.Patch, hold float64) *audio.FloatBuffer {
	get := func(name string) int {
		v, err := p.Get(name)
		if err != nil {
			log.Fatal(err)
		}
		return v
	}

	var voices []voice
	for osc := 1; osc <= 3; osc++ {
		pfx := "osc" + string(rune('0'+osc)) + "."
		if get(pfx+"dcaenable") == 0 || get(pfx+"dcalevel") == 0 {
			continue
		}
		semi := float64(get(pfx+"semi")) + float64(get(pfx+"fine"))/31
		waveParam, err := esq1.Lookup(pfx + "wave")
		if err != nil {
			log.Fatal(err)
		}
		voices = append(voices, voice{
			// Semitone 36 is concert pitch on the default patch.
			freq:  440 * math.Pow(2, (semi-36)/12),
			level: float64(get(pfx+"dcalevel")) / 63,
			shape: shapeFor(waveParam.Enum[get(pfx+"wave")]),
		})
	}
	if len(voices) == 0 {
		log.Print("no oscillator enabled, preview will be silent")
	}

	env := ampEnvelope(
		[3]float64{level(get("env4.l1")), level(get("env4.l2")), level(get("env4.l3"))},
		[4]float64{seconds(get("env4.t1")), seconds(get("env4.t2")), seconds(get("env4.t3")), seconds(get("env4.t4"))},
		hold,
	)

	buf := &audio.FloatBuffer{
		Format: audio.FormatMono44100,
		Data:   make([]float64, len(env)),
	}
	for _, v := range voices {
		phase := 0.0
		step := v.freq / sampleRate
		for i := range buf.Data {
			buf.Data[i] += v.shape(phase) * v.level * env[i]
			phase += step
			if phase >= 1 {
				phase -= 1
			}
		}
	}
	return buf
}

// shapeFor maps a waveform name to a basic shape. The sampled and formant
// waves fall back to a saw, which is at least harmonically busy.
func shapeFor(name string) func(float64) float64 {
	noise := rand.New(rand.NewSource(1))
	switch {
	case strings.Contains(name, "NOISE"):
		return func(float64) float64 { return noise.Float64()*2 - 1 }
	case strings.Contains(name, "SINE"), strings.Contains(name, "BELL"),
		strings.Contains(name, "VOICE"), strings.Contains(name, "ORGAN"):
		return func(phase float64) float64 { return math.Sin(2 * math.Pi * phase) }
	case strings.Contains(name, "SQ"), strings.Contains(name, "PULSE"):
		return func(phase float64) float64 {
			if phase < 0.5 {
				return 1
			}
			return -1
		}
	default:
		return func(phase float64) float64 { return 2*phase - 1 }
	}
}

func level(v int) float64 {
	if v < 0 {
		v = -v
	}
	return float64(v) / 63
}

// seconds maps an envelope time 0..63 to a rough segment duration.
func seconds(t int) float64 {
	return float64(t) / 63 * 2
}

// ampEnvelope renders the level curve: rise to L1 over T1, fall to L2 over
// T2, settle at L3 over T3, hold until key release, then release over T4.
func ampEnvelope(levels [3]float64, times [4]float64, hold float64) []float64 {
	var out []float64
	segment := func(from, to, dur float64) {
		n := int(dur * sampleRate)
		for i := 0; i < n; i++ {
			out = append(out, from+(to-from)*float64(i)/float64(n))
		}
	}
	segment(0, levels[0], times[0])
	segment(levels[0], levels[1], times[1])
	segment(levels[1], levels[2], times[2])
	sustain := hold - times[0] - times[1] - times[2]
	if sustain > 0 {
		segment(levels[2], levels[2], sustain)
	}
	segment(levels[2], 0, times[3])
	return out
}
