package bot

import (
	"encoding/json"
	"fmt"
	"os"
)

// BotIdentity is the public face of an AI seat.
type BotIdentity struct {
	DisplayName string `json:"display_name"`
	Persona     string `json:"persona"`
	AvatarIndex int    `json:"avatar_index"`
}

// DefaultIdentities seeds the pool when no identities file is configured.
var DefaultIdentities = []BotIdentity{
	{DisplayName: "Steady Sam", Persona: "steady", AvatarIndex: 0},
	{DisplayName: "Careful Cam", Persona: "cautious", AvatarIndex: 1},
	{DisplayName: "Rapid Rae", Persona: "aggressive", AvatarIndex: 2},
	{DisplayName: "Runner Reese", Persona: "sequencer", AvatarIndex: 3},
	{DisplayName: "Shifty Quinn", Persona: "adaptive", AvatarIndex: 4},
	{DisplayName: "Lucky Lou", Persona: "gambler", AvatarIndex: 5},
	{DisplayName: "Wall Wren", Persona: "blocker", AvatarIndex: 6},
	{DisplayName: "Count Cass", Persona: "counter", AvatarIndex: 7},
}

// LoadIdentities reads a JSON list of identities from path.
func LoadIdentities(path string) ([]BotIdentity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bot identities: %w", err)
	}
	var ids []BotIdentity
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bot identities: %w", err)
	}
	for _, id := range ids {
		if _, ok := Lookup(id.Persona); !ok {
			return nil, fmt.Errorf("bot identity %q: unknown persona %q", id.DisplayName, id.Persona)
		}
	}
	return ids, nil
}

// identityFor picks the display name for the n-th recruit playing persona.
func identityFor(pool []BotIdentity, persona string, n int) BotIdentity {
	var matching []BotIdentity
	for _, id := range pool {
		if id.Persona == persona {
			matching = append(matching, id)
		}
	}
	if len(matching) == 0 {
		return BotIdentity{DisplayName: fmt.Sprintf("AI Player %d", n+1), Persona: persona}
	}
	return matching[n%len(matching)]
}
