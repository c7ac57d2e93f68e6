package steam

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tradewind-gg/steam/steamid"
)

var communityCookieUrl = &url.URL{Scheme: "https", Host: "steamcommunity.com", Path: "/"}

// Session owns the community cookies and the logged-in flag. Credential
// login is out of scope: the caller obtains cookies elsewhere (browser
// export, separate login service) and hands them over once. The jar is
// written only by LoginByCookies and read by every subsequent call, which
// is what makes concurrent use safe.
type Session struct {
	jar         http.CookieJar
	loggedIn    bool
	steamId     steamid.SteamID
	tokenExpiry time.Time
}

func NewSession(jar http.CookieJar) *Session {
	return &Session{jar: jar}
}

// webTradeEligibility is a cookie the community site expects on pre-vetted
// sessions; without it every trade page detours through an eligibility
// interstitial. time_checked must be recent.
func webTradeEligibility(now time.Time) string {
	blob := fmt.Sprintf(
		`{"allowed":1,"allowed_at_time":0,"steamguard_required_days":15,"new_device_cooldown_days":7,"time_checked":%d}`,
		now.Unix(),
	)
	return url.QueryEscape(blob)
}

// LoginByCookies stores the caller-supplied cookies verbatim plus the two
// synthesized values the platform expects (Steam_Language and
// webTradeEligibility) and marks the session logged in. No network call is
// made; whether the cookies actually work only shows on the first request.
func (s *Session) LoginByCookies(cookies map[string]string) {
	jarCookies := make([]*http.Cookie, 0, len(cookies)+2)
	for name, value := range cookies {
		jarCookies = append(jarCookies, &http.Cookie{Name: name, Value: value})
	}
	jarCookies = append(jarCookies,
		&http.Cookie{Name: "Steam_Language", Value: "english"},
		&http.Cookie{Name: "webTradeEligibility", Value: webTradeEligibility(time.Now())},
	)

	s.jar.SetCookies(communityCookieUrl, jarCookies)
	s.introspectLoginSecure(cookies["steamLoginSecure"])
	s.loggedIn = true
}

// introspectLoginSecure derives the session's own identity from the
// steamLoginSecure cookie, which carries "<steamid64>||<access token JWT>".
// Best effort: a missing or malformed cookie leaves the zero values, it
// never fails the login.
func (s *Session) introspectLoginSecure(value string) {
	if value == "" {
		return
	}

	if unescaped, err := url.QueryUnescape(value); err == nil {
		value = unescaped
	}

	parts := strings.SplitN(value, "||", 2)
	if id, err := steamid.ParseSteamID64(parts[0]); err == nil {
		s.steamId = id
	}

	if len(parts) != 2 {
		return
	}

	token, _, err := jwt.NewParser().ParseUnverified(parts[1], jwt.MapClaims{})
	if err != nil {
		return
	}

	if expiry, err := token.Claims.GetExpirationTime(); err == nil && expiry != nil {
		s.tokenExpiry = expiry.Time
	}
}

// SessionID returns the sessionid cookie required by every mutating
// community call, or ErrLoginRequired when the session was never
// initialized or the cookie is missing.
func (s *Session) SessionID() (string, error) {
	if !s.loggedIn {
		return "", ErrLoginRequired
	}

	for _, cookie := range s.jar.Cookies(communityCookieUrl) {
		if strings.EqualFold(cookie.Name, "sessionid") {
			return cookie.Value, nil
		}
	}

	return "", ErrLoginRequired
}

func (s *Session) LoggedIn() bool {
	return s.loggedIn
}

// SteamID is the session's own id as read from steamLoginSecure; zero value
// when the cookie was absent.
func (s *Session) SteamID() steamid.SteamID {
	return s.steamId
}

// TokenExpiresAt reports when the access token inside steamLoginSecure
// expires; zero when unknown. The token is parsed unverified, this is
// advisory only.
func (s *Session) TokenExpiresAt() time.Time {
	return s.tokenExpiry
}
