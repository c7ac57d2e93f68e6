package tradeoffer

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/tradewind-gg/steam/steamid"
)

// TradeURL is the parsed form of a steamcommunity trade offer link:
// /tradeoffer/new/?partner=<accountid>&token=<token>.
type TradeURL struct {
	Partner uint32
	Token   string
}

func (u TradeURL) PartnerID() steamid.SteamID {
	return steamid.FromAccountID(u.Partner)
}

// Matches reports whether the URL belongs to the given account.
func (u TradeURL) Matches(id steamid.SteamID) bool {
	return u.Partner == id.AccountId()
}

// ParseTradeURL extracts the partner account id and access token. With
// caseSensitive false the whole URL is lowercased first; tokens are case
// sensitive, so that mode is only safe for URLs from sources that already
// normalize them.
func ParseTradeURL(raw string, caseSensitive bool) (TradeURL, error) {
	if !caseSensitive {
		raw = strings.ToLower(raw)
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return TradeURL{}, eris.Wrapf(err, "unparsable trade url")
	}

	query := parsed.Query()
	partner := query.Get("partner")
	token := query.Get("token")
	if partner == "" || token == "" {
		return TradeURL{}, ErrTradeURLMalformed
	}

	accountId, err := strconv.ParseUint(partner, 10, 32)
	if err != nil {
		return TradeURL{}, eris.Wrapf(err, "trade url partner is not an account id")
	}

	return TradeURL{Partner: uint32(accountId), Token: token}, nil
}

// CheckTradeURL validates offline that a trade URL's partner parameter
// matches the given account. The token's validity can only be proven by the
// platform; this check catches pasting someone else's link.
func CheckTradeURL(id steamid.SteamID, raw string) error {
	tradeUrl, err := ParseTradeURL(raw, true)
	if err != nil {
		return err
	}

	if !tradeUrl.Matches(id) {
		return ErrTradeURLPartnerMismatch
	}

	return nil
}
