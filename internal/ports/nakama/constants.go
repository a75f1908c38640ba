package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a table that is still seating.
	RpcQuickMatch = "quick_match"
	// RpcVoiceToken issues a signed voice chat token for the caller.
	RpcVoiceToken = "voice_token"

	// MatchNameTienLen is the authoritative match handler name registered with Nakama.
	MatchNameTienLen = "tienlen_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpChooseSeat  int64 = 1
	OpSetStage    int64 = 2
	OpPlayCards   int64 = 3
	OpPassTurn    int64 = 4
	OpForfeit     int64 = 5
	OpFillWithAI  int64 = 6
	OpRequestSync int64 = 7

	// Server -> Client events
	OpSnapshot int64 = 101 // redacted per recipient
	OpError    int64 = 102
)

const (
	// tickRate is high enough for persona delays to land within 200ms of their target.
	tickRate = 5
	// emptyGraceTicks is how long a match with no connected humans lingers before terminating.
	emptyGraceTicks = tickRate * 10
)
