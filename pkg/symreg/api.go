package symreg

import (
	"fmt"

	"symreg/internal/evo"
	"symreg/internal/expr"
	"symreg/internal/model"
)

// ErrInvalidInput is returned by New for mismatched or empty datasets.
var ErrInvalidInput = evo.ErrInvalidInput

// Config tunes a search. Zero-valued fields take the documented defaults.
type Config struct {
	// PopulationSize trades pool breadth against per-generation cost.
	// Default 200.
	PopulationSize int
	// MaxDepth caps expression complexity and bloat. Default 6.
	MaxDepth int
	// TournamentSize sets selection pressure. Default 3.
	TournamentSize int
	// MutationRate is the probability a fresh child is mutated, in [0, 1].
	// Default 0.1; a negative value requests exactly 0.
	MutationRate float64
	// SubtreeBias splits mutation kinds between subtree replacement and
	// constant perturbation. Default 0.5; a negative value requests exactly 0.
	SubtreeBias float64
	// PerturbStd is the Gaussian noise deviation for constant perturbation.
	// Default 1; a negative value requests exactly 0.
	PerturbStd float64
	// ConstProb is the probability a random leaf is a constant rather than
	// the variable. Default 0.5; a negative value requests exactly 0.
	ConstProb float64
	// ConstantRange bounds random leaf constants. Default [-5, 5].
	ConstantRange [2]float64
	// Operators enables a subset of add, sub, mul, div, pow, neg, sin, cos,
	// log. Empty enables all of them.
	Operators []string
	// Workers bounds fitness-evaluation parallelism. Default GOMAXPROCS.
	Workers int
	// Seed fixes the engine's private random source; a fixed seed makes the
	// whole trajectory reproducible.
	Seed int64
}

// Engine is the externally visible surface of one evolving population. One
// logical caller owns an Engine; Step and the accessors are sequential.
type Engine struct {
	driver *evo.Driver
}

// New builds an engine over the supplied samples and seeds a random
// population. It fails with ErrInvalidInput when the dataset is empty or the
// sample lengths differ.
func New(xs, ys []float64, cfg Config) (*Engine, error) {
	data, err := evo.NewDataset(xs, ys)
	if err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	unary, binary, err := operatorSet(cfg.Operators)
	if err != nil {
		return nil, err
	}

	driver, err := evo.NewDriver(data, evo.Config{
		PopulationSize: cfg.PopulationSize,
		MaxDepth:       cfg.MaxDepth,
		TournamentSize: cfg.TournamentSize,
		MutationRate:   cfg.MutationRate,
		SubtreeBias:    cfg.SubtreeBias,
		PerturbStd:     cfg.PerturbStd,
		ConstProb:      cfg.ConstProb,
		ConstMin:       cfg.ConstantRange[0],
		ConstMax:       cfg.ConstantRange[1],
		Unary:          unary,
		Binary:         binary,
		Workers:        cfg.Workers,
		Seed:           cfg.Seed,
	})
	if err != nil {
		return nil, err
	}
	return &Engine{driver: driver}, nil
}

// Step advances the search by n generations. Step(0) is a no-op; stepping
// cannot fail, it can only be slow.
func (e *Engine) Step(n int) {
	e.driver.Step(n)
}

// BestString renders the best expression found so far as infix text.
func (e *Engine) BestString() string {
	return e.driver.Best().Tree.String()
}

// BestEval evaluates the best expression at x.
func (e *Engine) BestEval(x float64) float64 {
	return e.driver.Best().Tree.Eval(x)
}

// BestFitness is the mean squared error of the best expression: 0 before the
// first step, non-increasing afterwards.
func (e *Engine) BestFitness() float64 {
	return e.driver.BestFitness()
}

// BestSimplified renders an algebraically reduced copy of the best
// expression. BestString stays the exact evolved form.
func (e *Engine) BestSimplified() string {
	return expr.Simplify(e.driver.Best().Tree).String()
}

func (e *Engine) Generation() int {
	return e.driver.Generation()
}

// GenerationsToBest reports the generation at which the current best-ever
// individual was first seen.
func (e *Engine) GenerationsToBest() int {
	return e.driver.GenerationsToBest()
}

// Stats returns per-generation diagnostics collected across all steps.
func (e *Engine) Stats() []model.GenerationStats {
	return e.driver.Stats()
}

func applyDefaults(cfg *Config) {
	if cfg.PopulationSize <= 0 {
		cfg.PopulationSize = 200
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 6
	}
	if cfg.TournamentSize <= 0 {
		cfg.TournamentSize = 3
	}
	// The probability fields cannot distinguish "unset" from "off" at zero, so
	// a negative value is the way to request exactly 0.
	if cfg.MutationRate == 0 {
		cfg.MutationRate = 0.1
	} else if cfg.MutationRate < 0 {
		cfg.MutationRate = 0
	}
	if cfg.SubtreeBias == 0 {
		cfg.SubtreeBias = 0.5
	} else if cfg.SubtreeBias < 0 {
		cfg.SubtreeBias = 0
	}
	if cfg.PerturbStd == 0 {
		cfg.PerturbStd = 1
	} else if cfg.PerturbStd < 0 {
		cfg.PerturbStd = 0
	}
	if cfg.ConstProb == 0 {
		cfg.ConstProb = 0.5
	} else if cfg.ConstProb < 0 {
		cfg.ConstProb = 0
	}
	if cfg.ConstantRange == [2]float64{} {
		cfg.ConstantRange = [2]float64{-5, 5}
	}
}

func operatorSet(names []string) ([]expr.UnaryOp, []expr.BinaryOp, error) {
	if len(names) == 0 {
		names = []string{"add", "sub", "mul", "div", "pow", "neg", "sin", "cos", "log"}
	}

	var unary []expr.UnaryOp
	var binary []expr.BinaryOp
	for _, name := range names {
		switch name {
		case "add":
			binary = append(binary, expr.OpAdd)
		case "sub":
			binary = append(binary, expr.OpSub)
		case "mul":
			binary = append(binary, expr.OpMul)
		case "div":
			binary = append(binary, expr.OpDiv)
		case "pow":
			binary = append(binary, expr.OpPow)
		case "neg":
			unary = append(unary, expr.OpNeg)
		case "sin":
			unary = append(unary, expr.OpSin)
		case "cos":
			unary = append(unary, expr.OpCos)
		case "log":
			unary = append(unary, expr.OpLog)
		default:
			return nil, nil, fmt.Errorf("unsupported operator: %s", name)
		}
	}
	return unary, binary, nil
}
