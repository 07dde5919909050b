// Package config holds every tunable of the agent and the local harness. Values start from
// Default and can be overridden field by field from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"recon/game"
	"recon/meta"
	"recon/searcher"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Seed    uint64        `yaml:"seed"`
	Search  SearchConfig  `yaml:"search"`
	Sense   SenseConfig   `yaml:"sense"`
	Harness HarnessConfig `yaml:"harness"`
}

type SearchConfig struct {
	MaxDepth       int                `yaml:"max_depth"`
	Discount       float64            `yaml:"discount"`
	PieceValues    map[string]float64 `yaml:"piece_values"` // Keyed by piece kind name, "none" for no capture
	CheckPenalties CheckPenalties     `yaml:"check_penalties"`
}

type CheckPenalties struct {
	Check   float64 `yaml:"check"`
	NoCheck float64 `yaml:"no_check"`
}

type SenseConfig struct {
	Perimeter []string `yaml:"perimeter"` // Squares never sensed unless nothing else is left
}

type HarnessConfig struct {
	MaxTurns   int           `yaml:"max_turns"`
	TimeBudget time.Duration `yaml:"time_budget"`
}

func Default() Config {
	values := make(map[string]float64)
	for kind, value := range searcher.DefaultPieceValues() {
		values[kind.String()] = value
	}
	perimeter := []string{}
	for _, sq := range game.Perimeter() {
		perimeter = append(perimeter, sq.String())
	}
	penalties := searcher.DefaultCheckPenalties()

	return Config{
		Seed: 1,
		Search: SearchConfig{
			MaxDepth:       searcher.DefaultMaxDepth,
			Discount:       searcher.DefaultDiscount,
			PieceValues:    values,
			CheckPenalties: CheckPenalties{Check: penalties.Check, NoCheck: penalties.NoCheck},
		},
		Sense: SenseConfig{
			Perimeter: perimeter,
		},
		Harness: HarnessConfig{
			MaxTurns:   meta.MAX_TURNS,
			TimeBudget: meta.TIME_BUDGET,
		},
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults. Piece values merge into the default table; a
// perimeter list replaces the default one.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.Search.MaxDepth < 0 {
		return fmt.Errorf("%w: max_depth %d is negative", ErrInvalidConfig, c.Search.MaxDepth)
	}
	if c.Search.Discount <= 0 || c.Search.Discount >= 1 {
		return fmt.Errorf("%w: discount %v is outside (0, 1)", ErrInvalidConfig, c.Search.Discount)
	}
	if _, err := c.Search.pieceValues(); err != nil {
		return err
	}
	if _, err := c.Sense.PerimeterSquares(); err != nil {
		return err
	}
	if c.Harness.MaxTurns <= 0 {
		return fmt.Errorf("%w: max_turns must be positive", ErrInvalidConfig)
	}
	if c.Harness.TimeBudget <= 0 {
		return fmt.Errorf("%w: time_budget must be positive", ErrInvalidConfig)
	}
	return nil
}

// Options converts the search section into forward search options. The random source is left
// to the caller.
func (c SearchConfig) Options() ([]searcher.Option, error) {
	values, err := c.pieceValues()
	if err != nil {
		return nil, err
	}
	return []searcher.Option{
		searcher.WithMaxDepth(c.MaxDepth),
		searcher.WithDiscount(c.Discount),
		searcher.WithPieceValues(values),
		searcher.WithCheckPenalties(searcher.CheckPenalties{
			Check:   c.CheckPenalties.Check,
			NoCheck: c.CheckPenalties.NoCheck,
		}),
	}, nil
}

func (c SearchConfig) pieceValues() (searcher.PieceValues, error) {
	values := make(searcher.PieceValues, len(c.PieceValues))
	for name, value := range c.PieceValues {
		kind, err := game.ParsePieceKind(name)
		if err != nil {
			return nil, fmt.Errorf("%w: piece_values: %w", ErrInvalidConfig, err)
		}
		values[kind] = value
	}
	return values, nil
}

func (c SenseConfig) PerimeterSquares() ([]game.Square, error) {
	squares := make([]game.Square, 0, len(c.Perimeter))
	for _, name := range c.Perimeter {
		sq, err := game.ParseSquare(name)
		if err != nil {
			return nil, fmt.Errorf("%w: perimeter: %w", ErrInvalidConfig, err)
		}
		squares = append(squares, sq)
	}
	return squares, nil
}
