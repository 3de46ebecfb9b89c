package symreg

import (
	"context"

	"symreg/internal/tuning"
)

type TuneRequest struct {
	// MetaPopulation is the number of parameter candidates evolved side by
	// side. Default 16.
	MetaPopulation int
	// MetaGenerations bounds the meta-search. Default 10.
	MetaGenerations int
	// RunsPerTarget is how many searches score one candidate on one benchmark
	// target. Default 2.
	RunsPerTarget int
	// InnerGenerations bounds each scoring search. Default 80.
	InnerGenerations int
	Seed             int64
	Workers          int
}

type TuneSummary struct {
	MetaGenerations int
	// Score is the best candidate's mean of fitness*10000 plus
	// generations-to-best over all benchmark runs; lower is better.
	Score float64
	// Best carries the winning parameters, ready to pass to New.
	Best Config
}

// Tune searches for search parameters: it evolves a population of candidate
// configurations, scoring each by how well and how quickly full runs with
// those parameters learn a fixed set of benchmark functions.
func Tune(ctx context.Context, req TuneRequest) (TuneSummary, error) {
	if req.MetaPopulation <= 0 {
		req.MetaPopulation = 16
	}
	if req.MetaGenerations <= 0 {
		req.MetaGenerations = 10
	}
	if req.RunsPerTarget <= 0 {
		req.RunsPerTarget = 2
	}
	if req.InnerGenerations <= 0 {
		req.InnerGenerations = 80
	}

	tuner, err := tuning.NewTuner(tuning.Config{
		MetaPopulation:   req.MetaPopulation,
		RunsPerTarget:    req.RunsPerTarget,
		InnerGenerations: req.InnerGenerations,
		MaxDepth:         6,
		Workers:          req.Workers,
		Seed:             req.Seed,
	})
	if err != nil {
		return TuneSummary{}, err
	}

	for g := 0; g < req.MetaGenerations; g++ {
		if err := ctx.Err(); err != nil {
			return TuneSummary{}, err
		}
		tuner.Step(1)
	}

	best := tuner.Best()
	return TuneSummary{
		MetaGenerations: tuner.Generation(),
		Score:           tuner.BestScore(),
		Best: Config{
			PopulationSize: best.PopulationSize,
			MaxDepth:       6,
			TournamentSize: best.TournamentSize,
			MutationRate:   zeroAsNegative(best.MutationRate),
			SubtreeBias:    zeroAsNegative(best.SubtreeBias),
			PerturbStd:     best.PerturbStd,
			ConstProb:      zeroAsNegative(best.ConstProb),
			ConstantRange:  [2]float64{-5, 5},
		},
	}, nil
}

// zeroAsNegative keeps a tuned value of exactly 0 meaningful in a Config,
// where zero means "use the default" and negative means "exactly 0".
func zeroAsNegative(v float64) float64 {
	if v == 0 {
		return -1
	}
	return v
}
