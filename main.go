package main

import (
	"flag"
	"os"
	"time"

	"recon/config"
	"recon/experiments"
	"recon/meta"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML file overriding the default config")
	experiment := flag.String("experiment", "depth", "Experiment to run: depth, discount or throughput")
	games := flag.Int("games", meta.GAMES_PER_MATCHUP, "Games per matchup")
	out := flag.String("out", "results", "Directory for the experiment records")
	level := flag.String("log-level", "info", "Log level: debug, info, warn or error")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	lvl, err := zerolog.ParseLevel(*level)
	if err != nil {
		log.Fatal().Err(err).Msg("bad log level")
	}
	zerolog.SetGlobalLevel(lvl)

	cfg := config.Default()
	if *configPath != "" {
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}

	var dir string
	switch *experiment {
	case "depth":
		dir, err = experiments.RunDepthExperiment(cfg, *out, *games)
	case "discount":
		dir, err = experiments.RunDiscountExperiment(cfg, *out, *games)
	case "throughput":
		dir, err = experiments.RunThroughputExperiment(cfg, *out, *games)
	default:
		log.Fatal().Msgf("unknown experiment %q", *experiment)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s experiment failed", *experiment)
	}
	log.Info().Msgf("records written to %s", dir)
}
