package steam

import (
	"encoding/base64"
	"errors"
	"net/http/cookiejar"
	"strings"
	"testing"
	"time"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return NewSession(jar)
}

func TestSessionIDBeforeLogin(t *testing.T) {
	session := newTestSession(t)

	if _, err := session.SessionID(); !errors.Is(err, ErrLoginRequired) {
		t.Errorf("expected ErrLoginRequired, got %v", err)
	}
}

func TestSessionIDAfterLogin(t *testing.T) {
	session := newTestSession(t)
	session.LoginByCookies(map[string]string{"sessionid": "deadbeef"})

	sessionId, err := session.SessionID()
	if err != nil {
		t.Fatal(err)
	}
	if sessionId != "deadbeef" {
		t.Errorf("SessionID() = %q, want deadbeef", sessionId)
	}
}

func TestLoginSynthesizesPlatformCookies(t *testing.T) {
	session := newTestSession(t)
	session.LoginByCookies(map[string]string{"sessionid": "deadbeef"})

	var language, eligibility string
	for _, cookie := range session.jar.Cookies(communityCookieUrl) {
		switch cookie.Name {
		case "Steam_Language":
			language = cookie.Value
		case "webTradeEligibility":
			eligibility = cookie.Value
		}
	}

	if language != "english" {
		t.Errorf("Steam_Language = %q, want english", language)
	}
	if !strings.Contains(eligibility, "time_checked") {
		t.Errorf("webTradeEligibility missing time_checked: %q", eligibility)
	}
	if !strings.HasPrefix(eligibility, "%7B") {
		t.Errorf("webTradeEligibility should be url-encoded json, got %q", eligibility)
	}
}

func unsignedJwt(t *testing.T, claims string) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	payload := base64.RawURLEncoding.EncodeToString([]byte(claims))
	return header + "." + payload + "."
}

func TestLoginIntrospectsSteamLoginSecure(t *testing.T) {
	session := newTestSession(t)

	token := unsignedJwt(t, `{"sub":"76561198012345678","exp":4102444800}`)
	session.LoginByCookies(map[string]string{
		"sessionid":        "deadbeef",
		"steamLoginSecure": "76561198012345678%7C%7C" + token,
	})

	if got := session.SteamID().String(); got != "76561198012345678" {
		t.Errorf("SteamID() = %q, want 76561198012345678", got)
	}

	expiry := session.TokenExpiresAt()
	if expiry.IsZero() {
		t.Fatal("TokenExpiresAt() is zero, expected exp claim to be read")
	}
	if expiry.Unix() != 4102444800 {
		t.Errorf("TokenExpiresAt() = %v, want %v", expiry, time.Unix(4102444800, 0))
	}
}

func TestLoginToleratesMalformedLoginSecure(t *testing.T) {
	session := newTestSession(t)
	session.LoginByCookies(map[string]string{
		"sessionid":        "deadbeef",
		"steamLoginSecure": "not a login secure value",
	})

	if !session.LoggedIn() {
		t.Error("malformed steamLoginSecure must not fail the login")
	}
	if !session.TokenExpiresAt().IsZero() {
		t.Error("expected zero expiry for malformed cookie")
	}
}
