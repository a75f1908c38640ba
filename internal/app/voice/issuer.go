package voice

import (
	"errors"
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
	"github.com/google/uuid"

	"tienlen/internal/config"
)

const (
	ActionLogin = "login"
	ActionJoin  = "join"

	defaultTTL = 90 * time.Second
)

var (
	ErrNotConfigured   = errors.New("voice config is incomplete")
	ErrUserRequired    = errors.New("user is required")
	ErrRoomRequired    = errors.New("room is required for join tokens")
	ErrUnsupportedVerb = errors.New("unsupported voice action")
)

// Issuer signs voice access tokens. Each room maps to one voice channel.
type Issuer struct {
	cfg   config.VoiceConfig
	ttl   time.Duration
	clock func() time.Time
}

func NewIssuer(cfg config.VoiceConfig) *Issuer {
	return &Issuer{cfg: cfg, ttl: defaultTTL, clock: time.Now}
}

// WithClock replaces the time source used for expiry claims.
func (s *Issuer) WithClock(clock func() time.Time) *Issuer {
	s.clock = clock
	return s
}

func (s *Issuer) Enabled() bool {
	return s != nil && s.cfg.Enabled()
}

// Token signs an HS256 token for user. Join tokens target the voice channel of roomID.
func (s *Issuer) Token(user, action, roomID string) (string, error) {
	if !s.Enabled() {
		return "", ErrNotConfigured
	}
	if user == "" {
		return "", ErrUserRequired
	}

	from := s.UserURI(user)
	var to string
	switch action {
	case ActionLogin:
		to = from
	case ActionJoin:
		if roomID == "" {
			return "", ErrRoomRequired
		}
		to = s.ChannelURI(roomID)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedVerb, action)
	}

	claims := jwt.MapClaims{
		"iss": s.cfg.Issuer,
		"sub": user,
		"exp": s.clock().Add(s.ttl).Unix(),
		"vxa": action,
		"vxi": uuid.NewString(),
		"f":   from,
		"t":   to,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
}

func (s *Issuer) UserURI(user string) string {
	return "sip:." + s.cfg.Issuer + "." + user + ".@" + s.cfg.Domain
}

// ChannelURI is the group channel for a room. Room ids are uuids so they are safe in a SIP URI.
func (s *Issuer) ChannelURI(roomID string) string {
	return "sip:confctl-g-tienlen-" + roomID + "@" + s.cfg.Domain
}
