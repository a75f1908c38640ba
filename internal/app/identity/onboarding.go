package identity

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"tienlen/internal/ports"
)

// Result captures non-fatal onboarding outcomes.
type Result struct {
	DisplayName string
	// ProfileUpdateErr is set when the account update failed but the identity was still registered.
	ProfileUpdateErr error
}

// Onboarder gives new accounts a friendly display name and a seat color.
type Onboarder struct {
	accounts ports.AccountPort
	dir      *Directory
	rng      *rand.Rand
}

// NewOnboarder constructs an onboarder. rng may be nil to use a time-seeded default.
func NewOnboarder(accounts ports.AccountPort, dir *Directory, rng *rand.Rand) *Onboarder {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Onboarder{accounts: accounts, dir: dir, rng: rng}
}

// OnboardNewUser names userID, pushes the name to the account store and registers it in the directory.
func (s *Onboarder) OnboardNewUser(ctx context.Context, userID string) (Result, error) {
	if s.accounts == nil || s.dir == nil {
		return Result{}, errors.New("onboarding service not configured")
	}
	if userID == "" {
		return Result{}, errors.New("user id is required")
	}

	result := Result{DisplayName: s.friendlyName()}
	if err := s.accounts.UpdateProfile(ctx, userID, result.DisplayName, result.DisplayName); err != nil {
		result.ProfileUpdateErr = fmt.Errorf("update profile: %w", err)
	}
	s.dir.Register(userID, result.DisplayName)
	return result, nil
}

func (s *Onboarder) friendlyName() string {
	adjectives := []string{"Happy", "Shiny", "Brave", "Clever", "Swift", "Calm", "Mighty", "Witty", "Sly", "Wild"}
	nouns := []string{"Panda", "Tiger", "Eagle", "Dolphin", "Wolf", "Otter", "Falcon", "Bear", "Fox", "Lion"}

	adj := adjectives[s.rng.Intn(len(adjectives))]
	noun := nouns[s.rng.Intn(len(nouns))]
	num := s.rng.Intn(9000) + 1000

	return fmt.Sprintf("%s%s%d", adj, noun, num)
}
