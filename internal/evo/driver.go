package evo

import (
	"fmt"
	"math/rand"
	"runtime"
	"sync"

	"symreg/internal/expr"
	"symreg/internal/model"
)

// Config fixes every tunable of a search. Zero values are rejected rather
// than defaulted here; the public facade owns defaulting.
type Config struct {
	PopulationSize int
	MaxDepth       int
	TournamentSize int
	MutationRate   float64
	SubtreeBias    float64
	PerturbStd     float64
	ConstProb      float64
	ConstMin       float64
	ConstMax       float64
	Unary          []expr.UnaryOp
	Binary         []expr.BinaryOp
	Workers        int
	Seed           int64
}

// Driver owns one evolving population and its random source. All methods are
// meant for a single logical caller; stepping is CPU-bound and never fails.
type Driver struct {
	cfg      Config
	rng      *rand.Rand
	data     *Dataset
	selector Selector

	population []*Individual
	generation int

	bestEver    *Individual
	bestFoundAt int

	stats []model.GenerationStats
}

func NewDriver(data *Dataset, cfg Config) (*Driver, error) {
	if data == nil {
		return nil, fmt.Errorf("dataset is required")
	}
	if cfg.PopulationSize <= 0 {
		return nil, fmt.Errorf("population size must be > 0")
	}
	if cfg.MaxDepth <= 0 {
		return nil, fmt.Errorf("max depth must be > 0")
	}
	if cfg.TournamentSize <= 0 {
		return nil, fmt.Errorf("tournament size must be > 0")
	}
	if cfg.MutationRate < 0 || cfg.MutationRate > 1 {
		return nil, fmt.Errorf("mutation rate must be in [0, 1]")
	}
	if cfg.ConstMax < cfg.ConstMin {
		return nil, fmt.Errorf("constant range is inverted: [%g, %g]", cfg.ConstMin, cfg.ConstMax)
	}
	if len(cfg.Unary)+len(cfg.Binary) == 0 {
		return nil, fmt.Errorf("operator set must not be empty")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}

	d := &Driver{
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		data:     data,
		selector: TournamentSelector{Size: cfg.TournamentSize},
	}

	d.population = make([]*Individual, cfg.PopulationSize)
	for i := range d.population {
		d.population[i] = NewIndividual(expr.Grow(d.rng, d.growConfig()))
	}
	return d, nil
}

// Step advances the search by n generations. Step(0) is a no-op.
func (d *Driver) Step(n int) {
	for i := 0; i < n; i++ {
		d.stepOnce()
	}
}

func (d *Driver) stepOnce() {
	d.scorePopulation()

	best := d.population[0]
	for _, ind := range d.population[1:] {
		if ind.Fitness() < best.Fitness() {
			best = ind
		}
	}
	if d.bestEver == nil || best.Fitness() < d.bestEver.Fitness() {
		d.bestEver = best.Clone()
		d.bestFoundAt = d.generation + 1
	}

	d.stats = append(d.stats, d.summarize(best))
	d.population = d.nextGeneration(best)
	d.generation++
}

// scorePopulation fills every missing fitness cache. Scoring is a pure read
// of the tree and the shared dataset, so individuals are scored in parallel
// and gathered before selection starts.
func (d *Driver) scorePopulation() {
	workers := d.cfg.Workers
	if workers > len(d.population) {
		workers = len(d.population)
	}
	if workers <= 1 {
		for _, ind := range d.population {
			ind.ensureScored(d.data)
		}
		return
	}

	jobs := make(chan *Individual)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for ind := range jobs {
				ind.ensureScored(d.data)
			}
		}()
	}
	for _, ind := range d.population {
		jobs <- ind
	}
	close(jobs)
	wg.Wait()
}

func (d *Driver) nextGeneration(elite *Individual) []*Individual {
	next := make([]*Individual, 0, d.cfg.PopulationSize)
	next = append(next, elite.Clone())

	mcfg := MutationConfig{
		Rate:        d.cfg.MutationRate,
		SubtreeBias: d.cfg.SubtreeBias,
		PerturbStd:  d.cfg.PerturbStd,
		MaxDepth:    d.cfg.MaxDepth,
		Grow:        d.growConfig(),
	}

	for len(next) < d.cfg.PopulationSize {
		parentA, err := d.selector.Pick(d.rng, d.population)
		if err != nil {
			parentA = elite
		}
		parentB, err := d.selector.Pick(d.rng, d.population)
		if err != nil {
			parentB = elite
		}

		child := Crossover(d.rng, parentA.Tree, parentB.Tree, d.cfg.MaxDepth)
		child = Mutate(d.rng, child, mcfg)
		next = append(next, NewIndividual(child))
	}
	return next
}

func (d *Driver) summarize(best *Individual) model.GenerationStats {
	total := 0.0
	sizes := 0
	worst := best.Fitness()
	for _, ind := range d.population {
		total += ind.Fitness()
		sizes += ind.Tree.Size()
		if ind.Fitness() > worst {
			worst = ind.Fitness()
		}
	}
	return model.GenerationStats{
		Generation:   d.generation + 1,
		BestFitness:  best.Fitness(),
		MeanFitness:  total / float64(len(d.population)),
		WorstFitness: worst,
		BestSize:     best.Tree.Size(),
		BestDepth:    best.Tree.Depth(),
		MeanSize:     float64(sizes) / float64(len(d.population)),
	}
}

func (d *Driver) growConfig() expr.GrowConfig {
	return expr.GrowConfig{
		MaxDepth:  d.cfg.MaxDepth,
		ConstProb: d.cfg.ConstProb,
		ConstMin:  d.cfg.ConstMin,
		ConstMax:  d.cfg.ConstMax,
		Unary:     d.cfg.Unary,
		Binary:    d.cfg.Binary,
	}
}

// Best returns the best-ever individual, falling back to the first seeded
// individual before any generation has been scored.
func (d *Driver) Best() *Individual {
	if d.bestEver != nil {
		return d.bestEver
	}
	return d.population[0]
}

// BestFitness is 0 until the first generation has been scored; afterwards it
// is the best-ever score and never increases across steps.
func (d *Driver) BestFitness() float64 {
	if d.bestEver == nil {
		return 0
	}
	return d.bestEver.Fitness()
}

func (d *Driver) Generation() int {
	return d.generation
}

// GenerationsToBest reports the generation at which the best-ever individual
// was found; 0 before the first step.
func (d *Driver) GenerationsToBest() int {
	return d.bestFoundAt
}

// Stats returns a copy of the per-generation diagnostics collected so far.
func (d *Driver) Stats() []model.GenerationStats {
	out := make([]model.GenerationStats, len(d.stats))
	copy(out, d.stats)
	return out
}
