package community

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"

	"github.com/tradewind-gg/steam/api"
	"github.com/tradewind-gg/steam/api/classify"
	"github.com/tradewind-gg/steam/steamid"
	"github.com/tradewind-gg/steam/steamlang"
)

type Client struct {
	Transport api.Transport
}

func NewClient(transport api.Transport) *Client {
	return &Client{Transport: transport}
}

// OfferURL is the human-facing page of a trade offer, also used as the
// Referer for mutating calls against it.
func OfferURL(offerId uint64) string {
	return fmt.Sprintf("%s/tradeoffer/%d", api.CommunityURL, offerId)
}

// pageRequest fetches a human-facing community page.
type pageRequest struct {
	url     string
	headers http.Header
}

func (p pageRequest) Retryable() bool           { return false }
func (p pageRequest) CacheTTL() time.Duration   { return 0 }
func (p pageRequest) RequiresApiKey() bool      { return false }
func (p pageRequest) Method() string            { return http.MethodGet }
func (p pageRequest) Url() string               { return p.url }
func (p pageRequest) Values() (url.Values, error) { return nil, nil }
func (p pageRequest) Headers() (http.Header, error) {
	return p.headers, nil
}
func (p pageRequest) EnsureResponseSuccess(httpResponse *http.Response) error {
	return steamlang.EnsureSuccessResponse(httpResponse)
}

// IsSessionAlive fetches the community home page and reports whether the
// session cookies still render the logged-in navigation.
func (c *Client) IsSessionAlive(ctx context.Context) (bool, error) {
	body, err := c.Transport.Fetch(ctx, pageRequest{url: api.CommunityURL})
	if err != nil {
		return false, err
	}

	if err := classify.Check(body, classify.LoggedInPage); err != nil {
		if classify.IsKind(err, classify.SessionExpired) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// TradePartnerID resolves the numeric id of an offer's partner by scraping
// the offer's web page. The seven-day-hold marker surfaces here because the
// page replaces the offer body with the lockout notice.
func (c *Client) TradePartnerID(ctx context.Context, offerId uint64) (steamid.SteamID, error) {
	body, err := c.Transport.Fetch(ctx, pageRequest{url: OfferURL(offerId)})
	if err != nil {
		return steamid.SteamID{}, err
	}

	if err := classify.Check(body, classify.TradePage); err != nil {
		return steamid.SteamID{}, err
	}

	partnerId, err := scrapeTradePartnerId(body)
	if err != nil {
		return steamid.SteamID{}, eris.Wrapf(err, "couldn't resolve partner for offer %d", offerId)
	}

	return steamid.ParseSteamID64(partnerId)
}

// EscrowDays fetches a trade offer URL and returns both embedded escrow
// durations. The binding hold time is whichever side is longer; callers
// usually want max(myDays, theirDays).
func (c *Client) EscrowDays(ctx context.Context, tradeOfferUrl string) (myDays int, theirDays int, err error) {
	parsed, parseErr := url.Parse(tradeOfferUrl)
	if parseErr != nil {
		return 0, 0, eris.Wrapf(parseErr, "invalid trade offer url")
	}

	request := pageRequest{
		url: tradeOfferUrl,
		headers: http.Header{
			"Referer": []string{api.CommunityURL + parsed.Path},
			"Origin":  []string{api.CommunityURL},
		},
	}

	body, fetchErr := c.Transport.Fetch(ctx, request)
	if fetchErr != nil {
		return 0, 0, fetchErr
	}

	if err := classify.Check(body, classify.TradePage); err != nil {
		return 0, 0, err
	}

	return scrapeEscrowDays(body)
}

// TradeToken scrapes the account's own offer-creation token from its trade
// offers privacy page.
func (c *Client) TradeToken(ctx context.Context, steamId steamid.SteamID) (string, error) {
	privacyUrl := fmt.Sprintf("%s/profiles/%s/tradeoffers/privacy", api.CommunityURL, url.PathEscape(steamId.String()))

	body, err := c.Transport.Fetch(ctx, pageRequest{url: privacyUrl})
	if err != nil {
		return "", err
	}

	if err := classify.Check(body, classify.LoggedInPage); err != nil {
		return "", err
	}

	return scrapeTradeToken(body)
}

type playerInventoryRequest struct {
	steamId      steamid.SteamID
	appId        string
	contextId    string
	language     string
	count        uint
	start        string
	tradableOnly bool
}

func (p playerInventoryRequest) Retryable() bool         { return true }
func (p playerInventoryRequest) CacheTTL() time.Duration { return 0 }
func (p playerInventoryRequest) RequiresApiKey() bool    { return false }
func (p playerInventoryRequest) Method() string          { return http.MethodGet }

func (p playerInventoryRequest) Url() string {
	steamIdEncoded := url.PathEscape(p.steamId.String())
	appIdEncoded := url.PathEscape(p.appId)
	contextIdEncoded := url.PathEscape(p.contextId)
	return fmt.Sprintf("%s/inventory/%s/%s/%s", api.CommunityURL, steamIdEncoded, appIdEncoded, contextIdEncoded)
}

func (p playerInventoryRequest) Values() (url.Values, error) {
	values := make(url.Values)
	values.Add("l", p.language)
	values.Add("count", strconv.FormatUint(uint64(p.count), 10))
	if p.start != "" {
		values.Add("start_assetid", p.start)
	}
	if p.tradableOnly {
		values.Add("trading", "1")
	}
	return values, nil
}

func (p playerInventoryRequest) Headers() (http.Header, error) {
	return nil, nil
}

func (p playerInventoryRequest) EnsureResponseSuccess(httpResponse *http.Response) error {
	// A private inventory answers 403 before any body marker shows up.
	if httpResponse.StatusCode == http.StatusForbidden {
		return &classify.Failure{Kind: classify.InventoryNotPublic, Marker: "403 on inventory endpoint"}
	}
	return steamlang.EnsureSuccessResponse(httpResponse)
}

type InventoryOptions struct {
	Language     string
	Count        uint
	StartAssetId string
	TradableOnly bool
}

// GetPlayerInventory lists one page of a player's inventory for a game and
// context. The transport's API classification covers the success field.
func (c *Client) GetPlayerInventory(
	ctx context.Context,
	steamId steamid.SteamID,
	appId, contextId string,
	options InventoryOptions,
) (*PlayerInventory, error) {
	if options.Language == "" {
		options.Language = "english"
	}
	if options.Count == 0 {
		options.Count = 1000
	}

	request := playerInventoryRequest{
		steamId:      steamId,
		appId:        appId,
		contextId:    contextId,
		language:     options.Language,
		count:        options.Count,
		start:        options.StartAssetId,
		tradableOnly: options.TradableOnly,
	}

	response := &PlayerInventory{}
	if sendErr := c.Transport.Send(ctx, request, response); sendErr != nil {
		return nil, sendErr
	}
	return response, nil
}
