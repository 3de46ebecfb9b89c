package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"symreg/internal/storage"
	symreg "symreg/pkg/symreg"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "run":
		return runRun(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "best":
		return runBest(ctx, args[1:])
	case "fitness":
		return runFitness(ctx, args[1:])
	case "stats":
		return runStats(ctx, args[1:])
	case "tune":
		return runTune(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "symreg.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := symreg.NewClient(symreg.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}

	fmt.Printf("initialized store=%s\n", *storeKind)
	return nil
}

func runRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	configPath := fs.String("config", "", "JSON run config file")
	csvPath := fs.String("csv", "", "CSV dataset with x,y rows")
	target := fs.String("target", "square", "preset target: zero|identity|square|sine")
	from := fs.Float64("from", -3, "preset sample range start")
	to := fs.Float64("to", 3, "preset sample range end")
	step := fs.Float64("step", 0.1, "preset sample spacing")
	pop := fs.Int("pop", 0, "population size")
	gens := fs.Int("gens", 0, "generations to run")
	depth := fs.Int("depth", 0, "maximum expression depth")
	rate := fs.Float64("mutation-rate", 0, "mutation probability per child")
	operators := fs.String("operators", "", "comma-separated operator set")
	seed := fs.Int64("seed", 0, "random seed")
	workers := fs.Int("workers", 0, "fitness evaluation workers")
	runID := fs.String("run-id", "", "run id (generated when empty)")
	evalAt := fs.String("eval-at", "", "comma-separated x values to evaluate the best expression at")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "symreg.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := symreg.RunRequest{}
	if *configPath != "" {
		loaded, err := loadRunRequestFromConfig(*configPath)
		if err != nil {
			return err
		}
		req = loaded
	}
	overrideFromFlags(&req, fs, flagValues{
		pop: *pop, gens: *gens, depth: *depth, rate: *rate,
		operators: *operators, seed: *seed, workers: *workers, runID: *runID,
	})

	if *csvPath != "" {
		xs, ys, err := loadCSVDataset(*csvPath)
		if err != nil {
			return err
		}
		req.XS, req.YS = xs, ys
	}
	if len(req.XS) == 0 {
		xs, ys, err := presetDataset(*target, *from, *to, *step)
		if err != nil {
			return err
		}
		req.XS, req.YS = xs, ys
	}
	if *evalAt != "" {
		points, err := parseFloatList(*evalAt)
		if err != nil {
			return err
		}
		req.EvalAt = points
	}

	client, err := symreg.NewClient(symreg.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Run(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("run %s finished: %s generations over %s samples\n",
		summary.RunID, humanize.Comma(int64(summary.Generations)), humanize.Comma(int64(len(req.XS))))
	fmt.Printf("  best fitness: %.6g (first seen at generation %d)\n",
		summary.FinalBestFitness, summary.GenerationsToBest)
	fmt.Printf("  best: %s\n", summary.BestExpression)
	fmt.Printf("  simplified: %s\n", summary.BestSimplified)
	for i, x := range req.EvalAt {
		fmt.Printf("  best(%g) = %g\n", x, summary.EvalResults[i])
	}
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "maximum runs to list")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "symreg.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := symreg.NewClient(symreg.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	runs, err := client.Runs(ctx, symreg.RunsRequest{Limit: *limit})
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}

	for _, r := range runs {
		fmt.Printf("%s  created=%s seed=%d pop=%s gens=%s fitness=%.6g best=%s\n",
			r.ID, r.CreatedAtUTC, r.Seed,
			humanize.Comma(int64(r.PopulationSize)), humanize.Comma(int64(r.Generations)),
			r.FinalBestFitness, r.BestExpression)
	}
	return nil
}

func runBest(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("best", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	simplify := fs.Bool("simplify", false, "print the simplified form")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "symreg.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return usageError("best requires -run-id")
	}

	client, err := symreg.NewClient(symreg.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	record, err := client.GetRun(ctx, *runID)
	if err != nil {
		return err
	}
	if *simplify {
		fmt.Println(record.BestSimplified)
		return nil
	}
	fmt.Println(record.BestExpression)
	return nil
}

func runFitness(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("fitness", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	limit := fs.Int("limit", 0, "print at most N generations (0 = all)")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "symreg.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return usageError("fitness requires -run-id")
	}
	if *limit < 0 {
		return usageError("limit must be >= 0")
	}

	client, err := symreg.NewClient(symreg.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	history, err := client.FitnessHistory(ctx, *runID)
	if err != nil {
		return err
	}
	if *limit > 0 && len(history) > *limit {
		history = history[:*limit]
	}
	for i, fitness := range history {
		fmt.Printf("gen %d: %.6g\n", i+1, fitness)
	}
	return nil
}

func runStats(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	limit := fs.Int("limit", 0, "print at most N generations (0 = all)")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "symreg.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return usageError("stats requires -run-id")
	}
	if *limit < 0 {
		return usageError("limit must be >= 0")
	}

	client, err := symreg.NewClient(symreg.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	stats, err := client.GenerationStats(ctx, *runID)
	if err != nil {
		return err
	}
	if *limit > 0 && len(stats) > *limit {
		stats = stats[:*limit]
	}
	for _, s := range stats {
		fmt.Printf("gen %d: best=%.6g mean=%.6g worst=%.6g best_size=%d best_depth=%d mean_size=%.2f\n",
			s.Generation, s.BestFitness, s.MeanFitness, s.WorstFitness,
			s.BestSize, s.BestDepth, s.MeanSize)
	}
	return nil
}

func runTune(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tune", flag.ContinueOnError)
	metaPop := fs.Int("meta-pop", 16, "parameter candidates per meta-generation")
	metaGens := fs.Int("meta-gens", 10, "meta-generations to run")
	runsPerTarget := fs.Int("runs-per-target", 2, "scoring runs per benchmark target")
	innerGens := fs.Int("inner-gens", 80, "generations per scoring run")
	seed := fs.Int64("seed", 0, "random seed")
	workers := fs.Int("workers", 0, "candidate scoring workers")
	if err := fs.Parse(args); err != nil {
		return err
	}

	summary, err := symreg.Tune(ctx, symreg.TuneRequest{
		MetaPopulation:   *metaPop,
		MetaGenerations:  *metaGens,
		RunsPerTarget:    *runsPerTarget,
		InnerGenerations: *innerGens,
		Seed:             *seed,
		Workers:          *workers,
	})
	if err != nil {
		return err
	}

	best := summary.Best
	fmt.Printf("tuned over %s meta-generations, score %.6g\n",
		humanize.Comma(int64(summary.MetaGenerations)), summary.Score)
	fmt.Printf("  -pop %d\n", best.PopulationSize)
	fmt.Printf("  tournament size %d\n", best.TournamentSize)
	fmt.Printf("  -mutation-rate %g\n", zeroFromNegative(best.MutationRate))
	fmt.Printf("  subtree bias %g\n", zeroFromNegative(best.SubtreeBias))
	fmt.Printf("  perturb std %g\n", best.PerturbStd)
	fmt.Printf("  const prob %g\n", zeroFromNegative(best.ConstProb))
	return nil
}

// zeroFromNegative undoes the Config convention that negative means exactly 0,
// so printed values read as the rates actually used.
func zeroFromNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: symregctl <init|run|runs|best|fitness|stats|tune> [flags]", msg)
}
