package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"recon/game"
	"recon/meta"
	"recon/searcher"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	require.NoError(t, c.Validate())
	require.Equal(t, searcher.DefaultMaxDepth, c.Search.MaxDepth)
	require.Equal(t, 0.75, c.Search.Discount)
	require.Equal(t, 100.0, c.Search.PieceValues["king"])
	require.Equal(t, 0.0, c.Search.PieceValues["none"])
	require.Equal(t, -80.0, c.Search.CheckPenalties.Check)
	require.Equal(t, meta.MAX_TURNS, c.Harness.MaxTurns)

	perimeter, err := c.Sense.PerimeterSquares()
	require.NoError(t, err)
	require.Equal(t, game.Perimeter(), perimeter)
}

func TestParse(t *testing.T) {
	t.Run("overriding selected fields", func(t *testing.T) {
		data := []byte(`
seed: 7
search:
  max_depth: 1
  discount: 0.5
  piece_values:
    queen: 10
  check_penalties:
    check: -40
sense:
  perimeter: [a1, h8]
harness:
  time_budget: 30s
`)

		c, err := Parse(data)

		require.NoError(t, err)
		require.Equal(t, uint64(7), c.Seed)
		require.Equal(t, 1, c.Search.MaxDepth)
		require.Equal(t, 0.5, c.Search.Discount)
		require.Equal(t, 10.0, c.Search.PieceValues["queen"])
		require.Equal(t, 5.0, c.Search.PieceValues["rook"], "Unlisted piece values should keep their defaults")
		require.Equal(t, -40.0, c.Search.CheckPenalties.Check)
		require.Equal(t, 0.0, c.Search.CheckPenalties.NoCheck)
		require.Equal(t, []string{"a1", "h8"}, c.Sense.Perimeter)
		require.Equal(t, 30*time.Second, c.Harness.TimeBudget)
		require.Equal(t, meta.MAX_TURNS, c.Harness.MaxTurns)
	})

	t.Run("empty document keeps defaults", func(t *testing.T) {
		c, err := Parse(nil)

		require.NoError(t, err)
		require.Equal(t, Default(), c)
	})

	t.Run("rejecting invalid values", func(t *testing.T) {
		for name, data := range map[string]string{
			"discount":   "search: {discount: 1.5}",
			"depth":      "search: {max_depth: -1}",
			"piece kind": "search: {piece_values: {archbishop: 7}}",
			"square":     "sense: {perimeter: [z9]}",
			"turns":      "harness: {max_turns: 0}",
			"malformed":  "search: [",
		} {
			t.Run(name, func(t *testing.T) {
				_, err := Parse([]byte(data))

				require.Error(t, err)
			})
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("reading a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "agent.yaml")
		require.NoError(t, os.WriteFile(path, []byte("search: {max_depth: 3}\n"), 0o644))

		c, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, 3, c.Search.MaxDepth)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		require.Error(t, err)
	})
}

func TestSearchOptions(t *testing.T) {
	c := Default()
	c.Search.MaxDepth = 0

	options, err := c.Search.Options()
	require.NoError(t, err)

	fs := searcher.NewForwardSearch(append(options, searcher.WithSeed(1))...)
	require.Equal(t, 0, fs.MaxDepth())
	require.Equal(t, 0.75, fs.Discount())
}
