// Command esq1-random writes randomized program dumps to a .syx file.
//
// By default it produces a single random program; -bank produces a full
// 40-program bank. -section limits randomization to one front-panel page,
// leaving the rest of the program at device defaults.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/synthkit/esq1/esq1"
)

func main() {
	var (
		bank    = flag.Bool("bank", false, "write a full 40-program bank")
		channel = flag.Int("ch", 0, "sysex channel number")
		name    = flag.String("name", "RANDOM", "program name (6 characters)")
		section = flag.String("section", "", "randomize only this section (e.g. lfo1, filter)")
		seed    = flag.Int64("seed", 0, "random seed (default: current time)")
	)
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("need output .syx file as argument")
	}
	filename := flag.Arg(0)

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))
	log.Println("seed:", *seed)

	var msg esq1.Message
	if *bank {
		dump := &esq1.AllProgramDump{Channel: byte(*channel)}
		for i := range dump.Bank {
			dump.Bank[i] = makePatch(rng, fmt.Sprintf("RND %02d", i), *section)
		}
		msg = dump
	} else {
		msg = &esq1.ProgramDump{
			Channel: byte(*channel),
			Patch:   makePatch(rng, *name, *section),
		}
	}

	enc, err := msg.Encode(nil)
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(filename, enc, 0644); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %d bytes to %s", len(enc), filename)
}

func makePatch(rng *rand.Rand, name, section string) *esq1.Patch {
	p := esq1.NewPatch()
	p.Name = name
	if section == "" {
		p.Randomize(rng)
		return p
	}
	if err := p.RandomizeSection(esq1.Section(section), rng); err != nil {
		log.Fatal(err)
	}
	return p
}
