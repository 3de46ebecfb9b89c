package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	symreg "symreg/pkg/symreg"
)

func loadRunRequestFromConfig(path string) (symreg.RunRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return symreg.RunRequest{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return symreg.RunRequest{}, err
	}

	var req symreg.RunRequest
	if v, ok := asString(raw["run_id"]); ok {
		req.RunID = v
	}
	if v, ok := asFloatSlice(raw["xs"]); ok {
		req.XS = v
	}
	if v, ok := asFloatSlice(raw["ys"]); ok {
		req.YS = v
	}
	if v, ok := asInt(raw["generations"]); ok {
		req.Generations = v
	}
	if v, ok := asFloatSlice(raw["eval_at"]); ok {
		req.EvalAt = v
	}
	if v, ok := asInt(raw["population"]); ok {
		req.Config.PopulationSize = v
	}
	if v, ok := asInt(raw["max_depth"]); ok {
		req.Config.MaxDepth = v
	}
	if v, ok := asInt(raw["tournament_size"]); ok {
		req.Config.TournamentSize = v
	}
	if v, ok := asFloat64(raw["mutation_rate"]); ok {
		req.Config.MutationRate = v
	}
	if v, ok := asFloat64(raw["subtree_bias"]); ok {
		req.Config.SubtreeBias = v
	}
	if v, ok := asFloat64(raw["perturb_std"]); ok {
		req.Config.PerturbStd = v
	}
	if v, ok := asFloat64(raw["const_prob"]); ok {
		req.Config.ConstProb = v
	}
	if v, ok := asFloatSlice(raw["constant_range"]); ok {
		if len(v) != 2 {
			return symreg.RunRequest{}, fmt.Errorf("constant_range requires exactly two values, got %d", len(v))
		}
		req.Config.ConstantRange = [2]float64{v[0], v[1]}
	}
	if v, ok := asStringSlice(raw["operators"]); ok {
		req.Config.Operators = v
	}
	if v, ok := asInt(raw["workers"]); ok {
		req.Config.Workers = v
	}
	if v, ok := asInt64(raw["seed"]); ok {
		req.Config.Seed = v
	}

	// A preset dataset can be requested in place of explicit samples, mirroring
	// the -target/-from/-to/-step flags. Explicit xs/ys win when both appear.
	if target, ok := asString(raw["target"]); ok && len(req.XS) == 0 {
		from, to, step := -3.0, 3.0, 0.1
		if v, ok := asFloat64(raw["from"]); ok {
			from = v
		}
		if v, ok := asFloat64(raw["to"]); ok {
			to = v
		}
		if v, ok := asFloat64(raw["step"]); ok {
			step = v
		}
		xs, ys, err := presetDataset(target, from, to, step)
		if err != nil {
			return symreg.RunRequest{}, err
		}
		req.XS, req.YS = xs, ys
	}
	return req, nil
}

type flagValues struct {
	pop       int
	gens      int
	depth     int
	rate      float64
	operators string
	seed      int64
	workers   int
	runID     string
}

// overrideFromFlags applies only the flags the caller actually set, so a
// config file keeps its values for untouched knobs.
func overrideFromFlags(req *symreg.RunRequest, fs *flag.FlagSet, values flagValues) {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})

	if set["pop"] {
		req.Config.PopulationSize = values.pop
	}
	if set["gens"] {
		req.Generations = values.gens
	}
	if set["depth"] {
		req.Config.MaxDepth = values.depth
	}
	if set["mutation-rate"] {
		req.Config.MutationRate = values.rate
	}
	if set["operators"] {
		req.Config.Operators = splitList(values.operators)
	}
	if set["seed"] {
		req.Config.Seed = values.seed
	}
	if set["workers"] {
		req.Config.Workers = values.workers
	}
	if set["run-id"] {
		req.RunID = values.runID
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseFloatList(s string) ([]float64, error) {
	parts := splitList(s)
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", part, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case float64:
		return int(x), true
	default:
		return 0, false
	}
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case float64:
		return int64(x), true
	default:
		return 0, false
	}
}

func asFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}

func asFloatSlice(v any) ([]float64, bool) {
	raw, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]float64, 0, len(raw))
	for _, item := range raw {
		f, ok := asFloat64(item)
		if !ok {
			return nil, false
		}
		out = append(out, f)
	}
	return out, true
}

func asStringSlice(v any) ([]string, bool) {
	raw, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
