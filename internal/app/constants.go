package app

import "time"

// MinPlayersToStartGame defines the minimum number of occupied seats required to start a game.
// Keep this centralized so tests or local runs can adjust the rule without touching multiple call sites.
const MinPlayersToStartGame = 2

// DefaultSettleDelay is how long a finished room shows final ranks before returning to seating.
const DefaultSettleDelay = 3 * time.Second
