package esq1

import (
	"errors"
	"math/rand"
	"testing"
)

func TestRandomizeParamSelector(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := NewPatch()
	for i := 0; i < 10000; i++ {
		if err := p.RandomizeParam("lfo1.mod", rng); err != nil {
			t.Fatal(err)
		}
		v, err := p.Get("lfo1.mod")
		if err != nil {
			t.Fatal(err)
		}
		if v < 0 || v >= len(modSources) {
			t.Fatalf("draw %d: lfo1.mod = %d outside the selector set", i, v)
		}
	}
}

func TestRandomizeParamRange(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	p := NewPatch()
	sawMin, sawMax := false, false
	for i := 0; i < 10000; i++ {
		if err := p.RandomizeParam("env1.l1", rng); err != nil {
			t.Fatal(err)
		}
		v, err := p.Get("env1.l1")
		if err != nil {
			t.Fatal(err)
		}
		if v < -63 || v > 63 {
			t.Fatalf("draw %d: env1.l1 = %d outside -63..63", i, v)
		}
		sawMin = sawMin || v == -63
		sawMax = sawMax || v == 63
	}
	if !sawMin || !sawMax {
		t.Errorf("endpoints not covered over 10000 draws: min %v, max %v", sawMin, sawMax)
	}
}

func TestRandomizeParamUnknown(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	if err := NewPatch().RandomizeParam("nosuch", rng); !errors.Is(err, ErrUnknownParam) {
		t.Fatalf("RandomizeParam(nosuch) = %v, want ErrUnknownParam", err)
	}
}

func TestRandomizeSectionScope(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	p := NewPatch()
	before := make(map[string]int, len(p.values))
	for name, v := range p.values {
		before[name] = v
	}

	if err := p.RandomizeSection(SecLFO2, rng); err != nil {
		t.Fatal(err)
	}
	for _, par := range Params() {
		if par.Section == SecLFO2 {
			continue
		}
		if p.values[par.Name] != before[par.Name] {
			t.Errorf("%s changed by lfo2 randomization", par.Name)
		}
	}

	if err := p.RandomizeSection(Section("lfo9"), rng); !errors.Is(err, ErrUnknownSection) {
		t.Fatalf("RandomizeSection(lfo9) = %v, want ErrUnknownSection", err)
	}
}

func TestRandomizeDeterministic(t *testing.T) {
	p, q := NewPatch(), NewPatch()
	p.Randomize(rand.New(rand.NewSource(5)))
	q.Randomize(rand.New(rand.NewSource(5)))
	if !p.Equal(q) {
		t.Fatal("same seed produced different patches")
	}

	r := NewPatch()
	r.Randomize(rand.New(rand.NewSource(6)))
	if p.Equal(r) {
		t.Fatal("different seeds produced identical patches")
	}
}

func TestRandomizeCoversTable(t *testing.T) {
	p := &Patch{Name: "EMPTY "}
	p.Randomize(rand.New(rand.NewSource(7)))
	if len(p.values) != len(Params()) {
		t.Fatalf("randomize set %d parameters, table has %d", len(p.values), len(Params()))
	}
	if _, err := p.EncodePCB(); err != nil {
		t.Fatalf("randomized patch does not encode: %v", err)
	}
}
