package bot

import (
	"tienlen/internal/bot/internal"
	"tienlen/internal/ports"
)

// Move represents the decision made by the AI.
type Move = ports.AIMove

// Candidate is one legal play with its spend cost.
type Candidate = internal.Candidate

// Analysis lists a seat's legal plays for the current turn.
type Analysis = internal.Analysis

// RNG is the randomness a persona may consume. *rand.Rand satisfies it.
type RNG interface {
	Float64() float64
	Intn(n int) int
}
