package steam

import (
	"errors"
	"fmt"

	"github.com/tradewind-gg/steam/api/econ"
)

// ErrLoginRequired aborts mutating operations before any network I/O when
// the session has no usable sessionid cookie.
var ErrLoginRequired = errors.New("login required: call LoginByCookies with a sessionid cookie first")

// InvalidOfferStateError reports a lifecycle operation attempted against an
// offer whose observed state does not permit it.
type InvalidOfferStateError struct {
	OfferId uint64
	State   econ.OfferState
}

func (e *InvalidOfferStateError) Error() string {
	return fmt.Sprintf("trade offer %d is %s (%d), operation requires Active", e.OfferId, e.State, uint(e.State))
}

// ErrOfferNotFound - the API answered without an offer body for the id.
var ErrOfferNotFound = errors.New("trade offer not found")
