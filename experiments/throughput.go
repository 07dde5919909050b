package experiments

import (
	"recon/config"
	"recon/experiments/metrics"
)

// RunThroughputExperiment pits each search depth against itself. Both players search with the
// same config, so games run long and the move records show how node counts and search time
// grow with depth.
func RunThroughputExperiment(cfg config.Config, out string, games int) (string, error) {
	configs := []metrics.AgentConfig{}
	matchUps := [][]metrics.AgentConfig{}
	for depth := 0; depth <= cfg.Search.MaxDepth; depth++ {
		ac := metrics.AgentConfig{
			ID:       depth + 1,
			MaxDepth: depth,
			Discount: cfg.Search.Discount,
			Seed:     cfg.Seed + uint64(depth+1),
		}
		configs = append(configs, ac)
		// Same config for both players in each game
		matchUps = append(matchUps, []metrics.AgentConfig{ac, ac})
	}
	return runExperiment("throughput", cfg, out, games, configs, matchUps)
}
