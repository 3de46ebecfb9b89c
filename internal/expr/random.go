package expr

import "math/rand"

// GrowConfig bounds random tree construction.
type GrowConfig struct {
	MaxDepth  int
	ConstProb float64
	ConstMin  float64
	ConstMax  float64
	Unary     []UnaryOp
	Binary    []BinaryOp
}

// Grow builds a random tree top-down. The probability of terminating in a
// leaf rises linearly with depth and reaches 1 at MaxDepth, so the result
// never exceeds the configured depth.
func Grow(rng *rand.Rand, cfg GrowConfig) Node {
	maxDepth := cfg.MaxDepth
	if maxDepth < 1 {
		maxDepth = 1
	}
	return grow(rng, 1, maxDepth, cfg)
}

func grow(rng *rand.Rand, depth, maxDepth int, cfg GrowConfig) Node {
	opCount := len(cfg.Unary) + len(cfg.Binary)
	if depth >= maxDepth || opCount == 0 || rng.Float64() < leafProb(depth, maxDepth) {
		return growLeaf(rng, cfg)
	}

	pick := rng.Intn(opCount)
	if pick < len(cfg.Unary) {
		return &Unary{
			Op:    cfg.Unary[pick],
			Child: grow(rng, depth+1, maxDepth, cfg),
		}
	}
	return &Binary{
		Op:    cfg.Binary[pick-len(cfg.Unary)],
		Left:  grow(rng, depth+1, maxDepth, cfg),
		Right: grow(rng, depth+1, maxDepth, cfg),
	}
}

func leafProb(depth, maxDepth int) float64 {
	return float64(depth-1) / float64(maxDepth)
}

func growLeaf(rng *rand.Rand, cfg GrowConfig) Node {
	if rng.Float64() < cfg.ConstProb {
		return &Constant{Value: cfg.ConstMin + rng.Float64()*(cfg.ConstMax-cfg.ConstMin)}
	}
	return &Variable{}
}
