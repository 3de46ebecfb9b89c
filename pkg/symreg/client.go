package symreg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"symreg/internal/model"
	"symreg/internal/storage"
)

const defaultDBPath = "symreg.db"

type Options struct {
	StoreKind string
	DBPath    string
}

// Client wraps the engine with run persistence. Each Run executes a full
// search and records its outcome so later invocations can inspect it.
type Client struct {
	store       storage.Store
	initialized bool
}

type RunRequest struct {
	// RunID names the stored run; empty requests a generated ID.
	RunID       string
	XS          []float64
	YS          []float64
	Generations int
	// EvalAt lists x values to evaluate the final best expression at.
	EvalAt []float64
	Config Config
}

type RunSummary struct {
	RunID             string
	Generations       int
	FinalBestFitness  float64
	BestExpression    string
	BestSimplified    string
	GenerationsToBest int
	BestByGeneration  []float64
	// EvalResults holds best(x) for each requested EvalAt point, in order.
	EvalResults []float64
}

type RunsRequest struct {
	Limit int
}

func NewClient(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}
	return &Client{store: store}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	return c.ensureInit(ctx)
}

// Run executes a complete search and persists the run record, its
// best-fitness history, and its per-generation statistics.
func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	if req.Generations <= 0 {
		req.Generations = 50
	}
	runID := req.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	if err := c.ensureInit(ctx); err != nil {
		return RunSummary{}, err
	}

	applyDefaults(&req.Config)
	engine, err := New(req.XS, req.YS, req.Config)
	if err != nil {
		return RunSummary{}, err
	}

	history := make([]float64, 0, req.Generations)
	for g := 0; g < req.Generations; g++ {
		if err := ctx.Err(); err != nil {
			return RunSummary{}, err
		}
		engine.Step(1)
		history = append(history, engine.BestFitness())
	}

	best := engine.BestString()
	simplified := engine.BestSimplified()

	record := model.RunRecord{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: storage.CurrentSchemaVersion,
			CodecVersion:  storage.CurrentCodecVersion,
		},
		ID:                runID,
		CreatedAtUTC:      time.Now().UTC().Format(time.RFC3339Nano),
		Seed:              req.Config.Seed,
		PopulationSize:    req.Config.PopulationSize,
		Generations:       req.Generations,
		MaxDepth:          req.Config.MaxDepth,
		DatasetSize:       len(req.XS),
		FinalBestFitness:  engine.BestFitness(),
		BestExpression:    best,
		BestSimplified:    simplified,
		GenerationsToBest: engine.GenerationsToBest(),
	}
	if err := c.store.SaveRun(ctx, record); err != nil {
		return RunSummary{}, err
	}
	if err := c.store.SaveFitnessHistory(ctx, runID, history); err != nil {
		return RunSummary{}, err
	}
	if err := c.store.SaveGenerationStats(ctx, runID, engine.Stats()); err != nil {
		return RunSummary{}, err
	}

	var evals []float64
	for _, x := range req.EvalAt {
		evals = append(evals, engine.BestEval(x))
	}

	return RunSummary{
		RunID:             runID,
		Generations:       req.Generations,
		FinalBestFitness:  engine.BestFitness(),
		BestExpression:    best,
		BestSimplified:    simplified,
		GenerationsToBest: engine.GenerationsToBest(),
		BestByGeneration:  history,
		EvalResults:       evals,
	}, nil
}

func (c *Client) Runs(ctx context.Context, req RunsRequest) ([]model.RunRecord, error) {
	if req.Limit < 0 {
		return nil, errors.New("limit must be >= 0")
	}
	if req.Limit == 0 {
		req.Limit = 20
	}

	if err := c.ensureInit(ctx); err != nil {
		return nil, err
	}
	runs, err := c.store.ListRuns(ctx)
	if err != nil {
		return nil, err
	}
	if len(runs) > req.Limit {
		runs = runs[:req.Limit]
	}
	return runs, nil
}

func (c *Client) GetRun(ctx context.Context, runID string) (model.RunRecord, error) {
	if runID == "" {
		return model.RunRecord{}, errors.New("run id is required")
	}
	if err := c.ensureInit(ctx); err != nil {
		return model.RunRecord{}, err
	}
	run, ok, err := c.store.GetRun(ctx, runID)
	if err != nil {
		return model.RunRecord{}, err
	}
	if !ok {
		return model.RunRecord{}, fmt.Errorf("run not found: %s", runID)
	}
	return run, nil
}

func (c *Client) FitnessHistory(ctx context.Context, runID string) ([]float64, error) {
	if runID == "" {
		return nil, errors.New("run id is required")
	}
	if err := c.ensureInit(ctx); err != nil {
		return nil, err
	}
	history, ok, err := c.store.GetFitnessHistory(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("fitness history not found for run id: %s", runID)
	}
	return history, nil
}

func (c *Client) GenerationStats(ctx context.Context, runID string) ([]model.GenerationStats, error) {
	if runID == "" {
		return nil, errors.New("run id is required")
	}
	if err := c.ensureInit(ctx); err != nil {
		return nil, err
	}
	stats, ok, err := c.store.GetGenerationStats(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("generation stats not found for run id: %s", runID)
	}
	return stats, nil
}

func (c *Client) ensureInit(ctx context.Context) error {
	if c.initialized {
		return nil
	}
	if err := c.store.Init(ctx); err != nil {
		return err
	}
	c.initialized = true
	return nil
}
