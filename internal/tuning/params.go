package tuning

import "math/rand"

// Params is the tunable subset of search configuration. Every field stays
// inside its legal range; mutate and crossover re-clamp after each change.
type Params struct {
	PopulationSize int
	TournamentSize int
	MutationRate   float64
	SubtreeBias    float64
	PerturbStd     float64
	ConstProb      float64
}

const (
	minPopulation = 20
	maxPopulation = 300
	minTournament = 2
	maxTournament = 7
	minPerturbStd = 0.05
	maxPerturbStd = 3
)

// fieldMutationProb is the per-field chance that a mutation touches it.
const fieldMutationProb = 0.35

func randomParams(rng *rand.Rand) Params {
	return Params{
		PopulationSize: minPopulation + rng.Intn(maxPopulation-minPopulation+1),
		TournamentSize: minTournament + rng.Intn(maxTournament-minTournament+1),
		MutationRate:   rng.Float64(),
		SubtreeBias:    rng.Float64(),
		PerturbStd:     minPerturbStd + rng.Float64()*(maxPerturbStd-minPerturbStd),
		ConstProb:      rng.Float64(),
	}
}

func (p Params) mutate(rng *rand.Rand) Params {
	out := p
	if rng.Float64() < fieldMutationProb {
		out.PopulationSize += int(rng.NormFloat64() * 30)
	}
	if rng.Float64() < fieldMutationProb {
		out.TournamentSize += rng.Intn(3) - 1
	}
	if rng.Float64() < fieldMutationProb {
		out.MutationRate += rng.NormFloat64() * 0.1
	}
	if rng.Float64() < fieldMutationProb {
		out.SubtreeBias += rng.NormFloat64() * 0.1
	}
	if rng.Float64() < fieldMutationProb {
		out.PerturbStd += rng.NormFloat64() * 0.25
	}
	if rng.Float64() < fieldMutationProb {
		out.ConstProb += rng.NormFloat64() * 0.1
	}
	return out.clamp()
}

// crossoverParams picks each field uniformly from one of the two parents.
func crossoverParams(rng *rand.Rand, a, b Params) Params {
	out := a
	if rng.Float64() < 0.5 {
		out.PopulationSize = b.PopulationSize
	}
	if rng.Float64() < 0.5 {
		out.TournamentSize = b.TournamentSize
	}
	if rng.Float64() < 0.5 {
		out.MutationRate = b.MutationRate
	}
	if rng.Float64() < 0.5 {
		out.SubtreeBias = b.SubtreeBias
	}
	if rng.Float64() < 0.5 {
		out.PerturbStd = b.PerturbStd
	}
	if rng.Float64() < 0.5 {
		out.ConstProb = b.ConstProb
	}
	return out.clamp()
}

func (p Params) clamp() Params {
	out := p
	out.PopulationSize = clampInt(out.PopulationSize, minPopulation, maxPopulation)
	out.TournamentSize = clampInt(out.TournamentSize, minTournament, maxTournament)
	out.MutationRate = clampFloat(out.MutationRate, 0, 1)
	out.SubtreeBias = clampFloat(out.SubtreeBias, 0, 1)
	out.PerturbStd = clampFloat(out.PerturbStd, minPerturbStd, maxPerturbStd)
	out.ConstProb = clampFloat(out.ConstProb, 0, 1)
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
