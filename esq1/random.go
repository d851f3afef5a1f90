package esq1

import "math/rand"

// RandomizeParam sets the named parameter to a value drawn uniformly from
// its legal domain.
func (p *Patch) RandomizeParam(name string, rng *rand.Rand) error {
	par, err := Lookup(name)
	if err != nil {
		return err
	}
	p.setRandom(par, rng)
	return nil
}

// RandomizeSection randomizes every parameter of one section and touches
// nothing outside it.
func (p *Patch) RandomizeSection(sec Section, rng *rand.Rand) error {
	params, err := SectionParams(sec)
	if err != nil {
		return err
	}
	for _, par := range params {
		p.setRandom(par, rng)
	}
	return nil
}

// Randomize randomizes every parameter of the patch, each drawn once in PCB
// layout order.
func (p *Patch) Randomize(rng *rand.Rand) {
	for _, par := range table {
		p.setRandom(par, rng)
	}
}

func (p *Patch) setRandom(par *Param, rng *rand.Rand) {
	p.set(par, par.Min+rng.Intn(par.Max-par.Min+1))
}
