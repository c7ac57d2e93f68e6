// Package classify turns Steam's loosely-structured response bodies into
// typed failures. The community site reports almost everything as markup:
// visible text snippets, script variable assignments, or ad-hoc JSON fields.
// All of those markers live here, in one ordered table, so the fragile
// surface stays auditable in a single place.
package classify

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Context selects which marker rules apply to a body. A trade offer page is
// served to logged-out visitors too, so the logged-in navigation check must
// not fire there.
type Context int

//goland:noinspection GoUnusedConst
const (
	// LoggedInPage - a community page that must render the logged-in
	// navigation (home page, privacy settings page).
	LoggedInPage Context = 1 << iota
	// TradePage - a trade offer page or trade URL landing page.
	TradePage
	// APIBody - a web API response body.
	APIBody
)

// Literal markers as Steam renders them. These are an undocumented contract
// and break whenever Valve edits copy; keep them byte-identical to the pages.
const (
	markerLoggedInNav      = "javascript:Logout()"
	markerPrivateInventory = `inventory privacy is set to "Private"`
	markerStaleTradeURL    = "This Trade URL is no longer valid for sending a trade offer to"
	markerOwnRestriction   = "You must have had Steam Guard enabled for at least 15 days"
	markerPartnerLimited   = "This person has a limited account"
	markerGenericError     = "Sorry, some kind of error has occurred:"
	markerNewDeviceHold    = "You have logged in from a new device. In order to protect the items"
	markerAccessDenied     = "Access is denied. Retrying will not help. Please verify your <pre>key=</pre> parameter"
)

type rule struct {
	contexts Context
	kind     Kind
	marker   string
	match    func(body string) bool
}

func contains(marker string) func(string) bool {
	return func(body string) bool {
		return strings.Contains(body, marker)
	}
}

// rules are evaluated in order and the first match wins. Several markers can
// coincide on one page (an error page still contains navigation), so the
// ordering is part of the contract, not an implementation detail.
var rules = []rule{
	{
		contexts: LoggedInPage,
		kind:     SessionExpired,
		marker:   "missing " + markerLoggedInNav,
		match: func(body string) bool {
			return !hasLogoutAction(body)
		},
	},
	{
		contexts: LoggedInPage | TradePage,
		kind:     InventoryNotPublic,
		marker:   markerPrivateInventory,
		match:    contains(markerPrivateInventory),
	},
	{
		contexts: LoggedInPage | TradePage,
		kind:     InvalidTradeURL,
		marker:   markerStaleTradeURL,
		match:    contains(markerStaleTradeURL),
	},
	{
		contexts: LoggedInPage | TradePage,
		kind:     TradeRestrictionOwn,
		marker:   markerOwnRestriction,
		match:    contains(markerOwnRestriction),
	},
	{
		contexts: LoggedInPage | TradePage,
		kind:     TradeRestrictionPartner,
		marker:   markerPartnerLimited,
		match:    contains(markerPartnerLimited),
	},
	{
		contexts: LoggedInPage | TradePage,
		kind:     GenericTradeError,
		marker:   markerGenericError,
		match:    contains(markerGenericError),
	},
	{
		contexts: LoggedInPage | TradePage,
		kind:     SevenDayHold,
		marker:   markerNewDeviceHold,
		match:    contains(markerNewDeviceHold),
	},
	{
		contexts: APIBody,
		kind:     InvalidAPIKey,
		marker:   markerAccessDenied,
		match:    contains(markerAccessDenied),
	},
	{
		contexts: APIBody,
		kind:     GenericAPIError,
		marker:   "success != 1",
		match:    jsonSuccessNotOK,
	},
}

// Check runs the marker table against a raw body under the given context and
// returns a *Failure for the first matching rule, or nil when nothing
// matched and the body may be parsed further by the caller.
func Check(body string, context Context) error {
	for _, r := range rules {
		if r.contexts&context == 0 {
			continue
		}
		if r.match(body) {
			return &Failure{Kind: r.kind, Marker: r.marker}
		}
	}
	return nil
}

// hasLogoutAction reports whether the page renders the logged-in navigation,
// identified by an anchor wired to the Logout script action.
func hasLogoutAction(body string) bool {
	document, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return strings.Contains(body, markerLoggedInNav)
	}

	found := false
	document.Find("a[href]").EachWithBreak(func(_ int, selection *goquery.Selection) bool {
		href, _ := selection.Attr("href")
		if strings.Contains(href, markerLoggedInNav) {
			found = true
			return false
		}
		return true
	})
	return found
}

// jsonSuccessNotOK probes a body for a top-level JSON "success" field that is
// present and not equal to 1. Non-JSON bodies never match.
func jsonSuccessNotOK(body string) bool {
	var probe struct {
		Success *json.Number `json:"success"`
	}
	if err := json.Unmarshal([]byte(body), &probe); err != nil {
		return false
	}
	if probe.Success == nil {
		return false
	}
	value, err := probe.Success.Int64()
	if err != nil {
		return true
	}
	return value != 1
}
