package experiments

import (
	"fmt"

	"recon/agent"
	"recon/config"
	"recon/engine"
	"recon/experiments/metrics"
	"recon/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Discounts swept by RunDiscountExperiment
var DiscountLevels = []float64{0.25, 0.5, 0.75, 0.95}

// RunDepthExperiment pairs search agents of every depth from 0 to the configured maximum
// against the random baseline. It returns the directory holding the records.
func RunDepthExperiment(cfg config.Config, out string, games int) (string, error) {
	configs := []metrics.AgentConfig{}
	for depth := 0; depth <= cfg.Search.MaxDepth; depth++ {
		configs = append(configs, metrics.AgentConfig{
			ID:       depth + 1,
			MaxDepth: depth,
			Discount: cfg.Search.Discount,
			Seed:     cfg.Seed + uint64(depth+1),
		})
	}
	return runAgainstBaseline("depth", cfg, out, games, configs)
}

// RunDiscountExperiment pairs search agents at the configured depth and each of DiscountLevels
// against the random baseline.
func RunDiscountExperiment(cfg config.Config, out string, games int) (string, error) {
	configs := []metrics.AgentConfig{}
	for i, discount := range DiscountLevels {
		configs = append(configs, metrics.AgentConfig{
			ID:       i + 1,
			MaxDepth: cfg.Search.MaxDepth,
			Discount: discount,
			Seed:     cfg.Seed + uint64(i+1),
		})
	}
	return runAgainstBaseline("discount", cfg, out, games, configs)
}

func runAgainstBaseline(name string, cfg config.Config, out string, games int, configs []metrics.AgentConfig) (string, error) {
	baseline := metrics.AgentConfig{ID: 0, Random: true, Seed: cfg.Seed}
	matchUps := [][]metrics.AgentConfig{}
	for _, ac := range configs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, ac})
	}
	return runExperiment(name, cfg, out, games, append(configs, baseline), matchUps)
}

func runExperiment(name string, cfg config.Config, out string, games int, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) (string, error) {
	// Run a number of games for each matchup
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), matchup[0], matchup[1])

		for i := 0; i < games; i++ {
			// Alternate colors so neither agent always moves first
			white, black := matchup[1], matchup[0]
			if i%2 == 1 {
				white, black = black, white
			}
			count++

			result, err := runGame(cfg, white, black, count)
			if err != nil {
				return "", fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				White:      white.ID,
				Black:      black.ID,
				GameMetric: result.Game,
			})
			for _, mm := range result.Moves {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s (%s)", mi+1, len(matchUps), i+1, result.Winner, result.Reason)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(out, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}

// runGame plays a single game between two agents. Seeds are offset by the game number so
// repeated matchups differ but whole experiments stay reproducible.
func runGame(cfg config.Config, white, black metrics.AgentConfig, gameID int) (engine.Result, error) {
	w, err := newPlayer(cfg, white, uint64(gameID))
	if err != nil {
		return engine.Result{}, err
	}
	b, err := newPlayer(cfg, black, uint64(gameID))
	if err != nil {
		return engine.Result{}, err
	}
	return newEngine(cfg, w, b).Run(), nil
}

func newEngine(cfg config.Config, white, black agent.Player) engine.Engine {
	return engine.NewLocalEngine(white, black,
		engine.WithMaxTurns(cfg.Harness.MaxTurns),
		engine.WithTimeBudget(cfg.Harness.TimeBudget),
	)
}

func newPlayer(cfg config.Config, ac metrics.AgentConfig, offset uint64) (agent.Player, error) {
	seed := ac.Seed + offset
	name := fmt.Sprintf("agent-%d", ac.ID)
	if ac.Random {
		return agent.NewRandomAgent(name, rand.New(rand.NewSource(seed))), nil
	}

	options, err := cfg.Search.Options()
	if err != nil {
		return nil, err
	}
	options = append(options,
		searcher.WithMaxDepth(ac.MaxDepth),
		searcher.WithDiscount(ac.Discount),
		searcher.WithSeed(seed),
		searcher.WithMetrics(),
	)
	perimeter, err := cfg.Sense.PerimeterSquares()
	if err != nil {
		return nil, err
	}
	sense := agent.NewSenseSelector(perimeter, rand.New(rand.NewSource(seed+1)))
	fs := searcher.NewForwardSearch(options...)
	log.Debug().Str("agent", name).Int("max_depth", fs.MaxDepth()).Float64("discount", fs.Discount()).Uint64("seed", seed).Msg("created search agent")
	return agent.NewSearchAgent(name, fs, sense), nil
}
