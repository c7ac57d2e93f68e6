package classify

import (
	"errors"
	"fmt"
)

// Kind identifies which marker rule matched a response body.
type Kind int

//goland:noinspection GoUnusedConst
const (
	// SessionExpired - the community site no longer renders the logged-in
	// navigation, so the cookies are stale or were never valid.
	SessionExpired Kind = iota + 1
	// InventoryNotPublic - the partner's inventory privacy is set to private.
	InventoryNotPublic
	// InvalidTradeURL - the trade URL token was revoked or regenerated.
	InvalidTradeURL
	// TradeRestrictionOwn - our account fails the Steam Guard 15-day rule.
	TradeRestrictionOwn
	// TradeRestrictionPartner - the partner has a limited account and can't trade.
	TradeRestrictionPartner
	// GenericTradeError - the community site rendered its catch-all trade
	// error page with no further detail.
	GenericTradeError
	// SevenDayHold - a login from a new device put the account under the
	// seven day item hold.
	SevenDayHold
	// InvalidAPIKey - the web API rejected the key with its fixed denial body.
	InvalidAPIKey
	// GenericAPIError - a JSON body carried success != 1.
	GenericAPIError
)

var kindNames = map[Kind]string{
	SessionExpired:          "session expired",
	InventoryNotPublic:      "inventory not public",
	InvalidTradeURL:         "invalid trade url",
	TradeRestrictionOwn:     "own account cannot trade",
	TradeRestrictionPartner: "partner account cannot trade",
	GenericTradeError:       "trade error",
	SevenDayHold:            "seven day hold",
	InvalidAPIKey:           "invalid api key",
	GenericAPIError:         "api error",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("classify.Kind(%d)", int(k))
}

// Failure is the typed outcome of a matched marker rule. The Marker field
// carries the literal marker (or a short description of it) so callers can
// log exactly which upstream signal fired.
type Failure struct {
	Kind   Kind
	Marker string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("steam response classified as %q (marker: %s)", f.Kind, f.Marker)
}

// IsKind reports whether err is (or wraps) a Failure of the given kind.
func IsKind(err error, kind Kind) bool {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure.Kind == kind
	}
	return false
}
