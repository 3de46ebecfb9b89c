package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// RunRecord summarizes one completed search run.
type RunRecord struct {
	VersionedRecord
	ID                string  `json:"id"`
	CreatedAtUTC      string  `json:"created_at_utc"`
	Seed              int64   `json:"seed"`
	PopulationSize    int     `json:"population_size"`
	Generations       int     `json:"generations"`
	MaxDepth          int     `json:"max_depth"`
	DatasetSize       int     `json:"dataset_size"`
	FinalBestFitness  float64 `json:"final_best_fitness"`
	BestExpression    string  `json:"best_expression"`
	BestSimplified    string  `json:"best_simplified"`
	GenerationsToBest int     `json:"generations_to_best"`
}

// GenerationStats is the per-generation diagnostic snapshot taken after
// scoring and before replacement.
type GenerationStats struct {
	Generation   int     `json:"generation"`
	BestFitness  float64 `json:"best_fitness"`
	MeanFitness  float64 `json:"mean_fitness"`
	WorstFitness float64 `json:"worst_fitness"`
	BestSize     int     `json:"best_size"`
	BestDepth    int     `json:"best_depth"`
	MeanSize     float64 `json:"mean_size"`
}
