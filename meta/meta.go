// meta/meta.go
package meta

import "time"

// MAX_TURNS caps a locally refereed game; reaching it is a draw.
const MAX_TURNS = 300

// TIME_BUDGET is each player's clock for a whole game.
const TIME_BUDGET = 900 * time.Second

// SENSE_RADIUS defines the sensed window: 1 reveals the 3x3 squares around the chosen square.
const SENSE_RADIUS = 1

// GAMES_PER_MATCHUP defines the number of games played per experiment matchup.
const GAMES_PER_MATCHUP = 10
