package evo

import (
	"fmt"
	"math/rand"
)

// Selector chooses a parent from a fully scored population.
type Selector interface {
	Name() string
	Pick(rng *rand.Rand, population []*Individual) (*Individual, error)
}

// TournamentSelector samples Size individuals uniformly with replacement and
// returns the one with the lowest score. Larger Size raises selection
// pressure.
type TournamentSelector struct {
	Size int
}

func (TournamentSelector) Name() string {
	return "tournament"
}

func (s TournamentSelector) Pick(rng *rand.Rand, population []*Individual) (*Individual, error) {
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}
	if len(population) == 0 {
		return nil, fmt.Errorf("population is empty")
	}

	size := s.Size
	if size <= 0 {
		size = 3
	}

	best := population[rng.Intn(len(population))]
	for i := 1; i < size; i++ {
		candidate := population[rng.Intn(len(population))]
		if candidate.Fitness() < best.Fitness() {
			best = candidate
		}
	}
	return best, nil
}
