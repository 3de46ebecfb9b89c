package tuning

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"
	"sync"

	"symreg/internal/evo"
	"symreg/internal/expr"
)

// Target is a known function the tuned parameters must learn quickly. Targets
// are sampled at the integer points of [-5, 5].
type Target struct {
	Name string
	F    func(x float64) float64
}

// DefaultTargets are the benchmark functions candidate parameters are scored
// against.
var DefaultTargets = []Target{
	{Name: "poly", F: func(x float64) float64 { return 2*x*x - 3*x*x*x }},
	{Name: "cosine", F: func(x float64) float64 { return math.Cos(x) + 1 }},
	{Name: "exponential", F: func(x float64) float64 { return math.Pow(3, x) }},
	{Name: "quadratic", F: func(x float64) float64 { return x*x - x - 1 }},
}

// Config fixes every tunable of a meta-search. Zero values are rejected
// rather than defaulted here; the public facade owns defaulting.
type Config struct {
	// MetaPopulation is the number of parameter candidates per generation.
	MetaPopulation int
	// RunsPerTarget is how many independent runs score one candidate on one
	// target; more runs reduce seed luck at linear cost.
	RunsPerTarget int
	// InnerGenerations bounds each scoring run.
	InnerGenerations int
	MaxDepth         int
	Workers          int
	Seed             int64
	Targets          []Target
}

type candidate struct {
	params Params
	seed   int64
	score  float64
	scored bool
}

// Tuner evolves search parameters with a small generational loop of its own:
// candidates are scored by running full searches against the targets, the
// best candidate survives unchanged, ranked candidates mutate, and the
// remainder is refilled by crossover.
type Tuner struct {
	cfg      Config
	rng      *rand.Rand
	datasets []*evo.Dataset

	population []*candidate
	generation int
}

func NewTuner(cfg Config) (*Tuner, error) {
	if cfg.MetaPopulation < 2 {
		return nil, fmt.Errorf("meta population must be >= 2")
	}
	if cfg.RunsPerTarget <= 0 {
		return nil, fmt.Errorf("runs per target must be > 0")
	}
	if cfg.InnerGenerations <= 0 {
		return nil, fmt.Errorf("inner generations must be > 0")
	}
	if cfg.MaxDepth <= 0 {
		return nil, fmt.Errorf("max depth must be > 0")
	}
	if len(cfg.Targets) == 0 {
		cfg.Targets = DefaultTargets
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}

	datasets := make([]*evo.Dataset, len(cfg.Targets))
	for i, target := range cfg.Targets {
		var xs, ys []float64
		for x := -5.0; x <= 5; x++ {
			xs = append(xs, x)
			ys = append(ys, target.F(x))
		}
		data, err := evo.NewDataset(xs, ys)
		if err != nil {
			return nil, fmt.Errorf("target %s: %w", target.Name, err)
		}
		datasets[i] = data
	}

	t := &Tuner{
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		datasets: datasets,
	}
	t.population = make([]*candidate, cfg.MetaPopulation)
	for i := range t.population {
		t.population[i] = t.newCandidate(randomParams(t.rng))
	}
	return t, nil
}

// newCandidate draws the candidate's scoring seed from the sequential rng, so
// later parallel scoring cannot affect the trajectory.
func (t *Tuner) newCandidate(p Params) *candidate {
	return &candidate{params: p, seed: t.rng.Int63()}
}

// Step advances the meta-search by n generations. Step(0) is a no-op.
func (t *Tuner) Step(n int) {
	for i := 0; i < n; i++ {
		t.stepOnce()
	}
}

func (t *Tuner) stepOnce() {
	t.scorePopulation()
	sort.SliceStable(t.population, func(i, j int) bool {
		return t.population[i].score < t.population[j].score
	})

	pop := t.population
	next := make([]*candidate, 0, len(pop))
	next = append(next, pop[0])

	// Ranked mutation: better candidates are more likely to spawn a mutant.
	for i := 0; i < len(pop)/2 && len(next) < len(pop); i++ {
		if t.rng.Float64() < float64(len(pop)-i)/float64(len(pop)) {
			next = append(next, t.newCandidate(pop[i].params.mutate(t.rng)))
		}
	}
	for len(next) < len(pop) {
		a := pop[t.rng.Intn(len(pop))]
		b := pop[t.rng.Intn(len(pop))]
		next = append(next, t.newCandidate(crossoverParams(t.rng, a.params, b.params)))
	}

	t.population = next
	t.generation++
}

func (t *Tuner) scorePopulation() {
	workers := t.cfg.Workers
	if workers > len(t.population) {
		workers = len(t.population)
	}
	if workers <= 1 {
		for _, c := range t.population {
			t.ensureScored(c)
		}
		return
	}

	jobs := make(chan *candidate)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for c := range jobs {
				t.ensureScored(c)
			}
		}()
	}
	for _, c := range t.population {
		jobs <- c
	}
	close(jobs)
	wg.Wait()
}

func (t *Tuner) ensureScored(c *candidate) {
	if c.scored {
		return
	}
	c.score = t.scoreParams(c.params, c.seed)
	c.scored = true
}

// scoreParams runs full searches for every target and averages
// fitness*10000 + generations-to-best, so parameters are rewarded both for
// accuracy and for finding their best quickly.
func (t *Tuner) scoreParams(p Params, seed int64) float64 {
	total := 0.0
	runs := 0
	for ti, data := range t.datasets {
		for r := 0; r < t.cfg.RunsPerTarget; r++ {
			driver, err := evo.NewDriver(data, evo.Config{
				PopulationSize: p.PopulationSize,
				MaxDepth:       t.cfg.MaxDepth,
				TournamentSize: p.TournamentSize,
				MutationRate:   p.MutationRate,
				SubtreeBias:    p.SubtreeBias,
				PerturbStd:     p.PerturbStd,
				ConstProb:      p.ConstProb,
				ConstMin:       -5,
				ConstMax:       5,
				Unary:          []expr.UnaryOp{expr.OpNeg, expr.OpSin, expr.OpCos, expr.OpLog},
				Binary:         []expr.BinaryOp{expr.OpAdd, expr.OpSub, expr.OpMul, expr.OpDiv, expr.OpPow},
				Workers:        1,
				Seed:           seed + int64(ti)*1000 + int64(r),
			})
			if err != nil {
				// Clamped params are always legal; treat a failure as a
				// maximally bad candidate rather than aborting the search.
				total += math.MaxFloat64 / 1e10
				runs++
				continue
			}
			driver.Step(t.cfg.InnerGenerations)
			total += driver.BestFitness()*10000 + float64(driver.GenerationsToBest())
			runs++
		}
	}
	return total / float64(runs)
}

// Best returns the best-scored parameters. Before the first step it returns
// the first random candidate.
func (t *Tuner) Best() Params {
	return t.population[0].params
}

// BestScore is 0 until the first step; afterwards it never increases, since
// the best candidate always survives.
func (t *Tuner) BestScore() float64 {
	return t.population[0].score
}

func (t *Tuner) Generation() int {
	return t.generation
}
