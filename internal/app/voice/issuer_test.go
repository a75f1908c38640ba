package voice

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/form3tech-oss/jwt-go"

	"tienlen/internal/config"
)

var testConfig = config.VoiceConfig{Secret: "test-secret", Issuer: "issuer", Domain: "example.com"}

func TestIssuerLoginToken(t *testing.T) {
	svc := NewIssuer(testConfig)
	tokenString, err := svc.Token("user123", ActionLogin, "")
	if err != nil {
		t.Fatalf("login token error: %v", err)
	}

	claims := parseClaims(t, tokenString, testConfig.Secret)
	userURI := "sip:.issuer.user123.@example.com"

	if got := stringClaim(t, claims, "vxa"); got != ActionLogin {
		t.Fatalf("vxa = %s, want %s", got, ActionLogin)
	}
	if got := stringClaim(t, claims, "f"); got != userURI {
		t.Fatalf("f = %s, want %s", got, userURI)
	}
	if got := stringClaim(t, claims, "t"); got != userURI {
		t.Fatalf("t = %s, want %s", got, userURI)
	}
	if got := stringClaim(t, claims, "sub"); got != "user123" {
		t.Fatalf("sub = %s, want user123", got)
	}
}

func TestIssuerJoinTokenTargetsRoomChannel(t *testing.T) {
	svc := NewIssuer(testConfig)
	tokenString, err := svc.Token("user123", ActionJoin, "room-456")
	if err != nil {
		t.Fatalf("join token error: %v", err)
	}

	claims := parseClaims(t, tokenString, testConfig.Secret)
	want := fmt.Sprintf("sip:confctl-g-tienlen-%s@%s", "room-456", testConfig.Domain)
	if got := stringClaim(t, claims, "t"); got != want {
		t.Fatalf("t = %s, want %s", got, want)
	}
}

func TestIssuerExpiry(t *testing.T) {
	now := time.Now()
	svc := NewIssuer(testConfig).WithClock(func() time.Time { return now })
	tokenString, err := svc.Token("u", ActionLogin, "")
	if err != nil {
		t.Fatal(err)
	}
	claims := parseClaims(t, tokenString, testConfig.Secret)
	exp, ok := claims["exp"].(float64)
	if !ok {
		t.Fatalf("exp claim missing: %v", claims["exp"])
	}
	if int64(exp) != now.Add(defaultTTL).Unix() {
		t.Fatalf("exp = %d, want %d", int64(exp), now.Add(defaultTTL).Unix())
	}
}

func TestIssuerRejections(t *testing.T) {
	tests := []struct {
		name   string
		cfg    config.VoiceConfig
		user   string
		action string
		room   string
		want   error
	}{
		{"missing config", config.VoiceConfig{Issuer: "i", Domain: "d"}, "u", ActionLogin, "", ErrNotConfigured},
		{"missing user", testConfig, "", ActionLogin, "", ErrUserRequired},
		{"join without room", testConfig, "u", ActionJoin, "", ErrRoomRequired},
		{"unknown action", testConfig, "u", "mute", "", ErrUnsupportedVerb},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewIssuer(tt.cfg).Token(tt.user, tt.action, tt.room)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNilIssuerIsDisabled(t *testing.T) {
	var svc *Issuer
	if svc.Enabled() {
		t.Fatal("nil issuer reports enabled")
	}
	if _, err := svc.Token("u", ActionLogin, ""); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err = %v", err)
	}
}

func parseClaims(t *testing.T, tokenString, secret string) jwt.MapClaims {
	t.Helper()

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		t.Fatalf("parse token error: %v", err)
	}
	if !token.Valid {
		t.Fatal("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not map claims")
	}
	return claims
}

func stringClaim(t *testing.T, claims jwt.MapClaims, name string) string {
	t.Helper()
	value, ok := claims[name]
	if !ok {
		t.Fatalf("missing %s claim", name)
	}
	str, ok := value.(string)
	if !ok {
		t.Fatalf("%s claim is not a string", name)
	}
	return str
}
