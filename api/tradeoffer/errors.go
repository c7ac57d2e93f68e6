package tradeoffer

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/tradewind-gg/steam/steamlang"
)

var (
	InvalidStateError = errors.New("this trade offer is in an invalid state, and cannot be acted upon; usually you'll need to send a new trade offer")
	AccessDeniedError = errors.New(`You can't send or accept this trade offer because either you can't trade with the other user, or one of the parties in this trade can't send or receive one of the items in the trade. Possible causes:

    You aren't friends with the other user and you didn't provide a trade token
    The provided trade token was wrong
    You are trying to send or receive an item for a game in which you or the other user can't trade (e.g. due to a VAC ban)
    You are trying to send an item and the other user's inventory is full for that game`)
	TimeoutError                    = errors.New("the Steam Community web server did not receive a timely reply from the trade offers server while sending/accepting this trade offer. It is possible (and not unlikely) that the operation actually succeeded")
	ServiceUnavailableError         = errors.New("the trade offers service is currently unavailable")
	TooManyTradeOffersError         = errors.New("you are exceeding your limit of 5 active offers per partner, or 30 active offers total")
	ItemsDontExistError             = errors.New("one or more of the items in this trade offer does not exist in the inventory from which it was requested")
	ChangedPersonaNameRecentlyError = errors.New("you cannot send this trade offer because you have recently changed your persona name")

	ErrTradeURLMalformed       = errors.New("trade url is missing the partner or token parameter")
	ErrTradeURLPartnerMismatch = errors.New("trade url partner does not match the expected account")
)

//	There was an error accepting this trade offer. Please try again later. (11)
var strErrorCodeExp = regexp.MustCompile(`\((\d+)\)\s*$`)

// ErrorForStrError maps the strError body field of a rejected offer call to
// a described error. The message usually ends with the numeric result code
// in parentheses; when it does, the code drives the mapping and texts with
// no recognizable code come back verbatim.
func ErrorForStrError(message string) error {
	if match := strErrorCodeExp.FindStringSubmatch(message); match != nil {
		if code, convErr := strconv.Atoi(match[1]); convErr == nil {
			if mapped := ErrorForEResult(steamlang.EResult(code)); mapped != nil {
				return mapped
			}
		}
	}
	return fmt.Errorf("steam rejected the call: %s", message)
}

// ErrorForEResult maps the X-eresult header of a rejected trade offer call
// to a described error. Unknown non-OK codes get a generic error carrying
// the code; OK and an absent header map to nil.
func ErrorForEResult(result steamlang.EResult) error {
	switch result {
	case steamlang.InvalidResult, steamlang.OKResult:
		return nil
	case steamlang.InvalidStateResult:
		return InvalidStateError
	case steamlang.AccessDeniedResult:
		return AccessDeniedError
	case steamlang.TimeoutResult:
		return TimeoutError
	case steamlang.ServiceUnavailableResult:
		return ServiceUnavailableError
	case steamlang.LimitExceededResult:
		return TooManyTradeOffersError
	case steamlang.RevokedResult:
		return ItemsDontExistError
	case steamlang.DuplicateRequestResult:
		return ChangedPersonaNameRecentlyError
	default:
		return fmt.Errorf("trade offer call rejected with result %v", result)
	}
}
