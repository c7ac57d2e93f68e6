// Package steam is a session-holding client for automating steam trade
// offers. It talks to two surfaces with very different manners: the JSON web
// API, and the community site, whose "protocol" is markup with embedded
// state. The lifecycle operations here reconcile both into typed results.
//
// The platform owns every offer state transition. This client only observes
// states and requests transitions; it never advances a state locally without
// a confirming response.
package steam

import (
	"context"

	"go.uber.org/zap"

	"github.com/tradewind-gg/steam/api"
	"github.com/tradewind-gg/steam/api/community"
	"github.com/tradewind-gg/steam/api/econ"
	"github.com/tradewind-gg/steam/api/tradeoffer"
	"github.com/tradewind-gg/steam/api/user"
	"github.com/tradewind-gg/steam/steamid"
)

type Client struct {
	session   *Session
	transport api.Transport

	econ        econ.Api
	community   community.Api
	tradeOffers tradeoffer.Api
	users       user.Api
}

type ClientOptions struct {
	WebApiKey     string
	ResponseCache api.CacheAdaptor

	// InsecureSkipVerify is passed through to the transport; see
	// api.WebTransportOptions.
	InsecureSkipVerify bool

	Logger *zap.Logger
}

func NewClient(options ClientOptions) *Client {
	transport := api.NewTransport(api.WebTransportOptions{
		WebApiKey:          options.WebApiKey,
		ResponseCache:      options.ResponseCache,
		InsecureSkipVerify: options.InsecureSkipVerify,
		Logger:             options.Logger,
	})

	session := NewSession(transport.CookieJar())

	return &Client{
		session:     session,
		transport:   transport,
		econ:        econ.NewClient(transport),
		community:   community.NewClient(transport),
		tradeOffers: tradeoffer.NewClient(transport, session.SessionID),
		users:       user.NewClient(transport),
	}
}

func (c *Client) Session() *Session {
	return c.session
}

// LoginByCookies initializes the session from caller-supplied cookies; see
// Session.LoginByCookies.
func (c *Client) LoginByCookies(cookies map[string]string) {
	c.session.LoginByCookies(cookies)
}

func (c *Client) requireLogin() error {
	_, err := c.session.SessionID()
	return err
}

// IsSessionAlive reports whether the community site still recognizes the
// session cookies.
func (c *Client) IsSessionAlive(ctx context.Context) (bool, error) {
	if err := c.requireLogin(); err != nil {
		return false, err
	}
	return c.community.IsSessionAlive(ctx)
}

// GetTradeOffers lists sent and received offers with descriptions attached.
// Non-active offers are dropped before the merge: attaching metadata to a
// dead offer wastes the lookup and risks carrying stale descriptions.
func (c *Client) GetTradeOffers(ctx context.Context) (econ.MergedOffers, error) {
	response, err := c.econ.GetTradeOffers(ctx, econ.GetTradeOffersOptions{
		GetSent:         true,
		GetReceived:     true,
		GetDescriptions: true,
		ActiveOnly:      true,
	})
	if err != nil {
		return econ.MergedOffers{}, err
	}

	// active_only is advisory upstream; filter locally as well
	response.Sent = econ.FilterActive(response.Sent)
	response.Received = econ.FilterActive(response.Received)

	return econ.MergeOffers(response), nil
}

// GetTradeOffersRaw exposes the unfiltered, unmerged query for callers that
// need historical or non-active offers.
func (c *Client) GetTradeOffersRaw(ctx context.Context, options econ.GetTradeOffersOptions) (*econ.GetTradeOffersResponse, error) {
	return c.econ.GetTradeOffers(ctx, options)
}

// GetTradeOffer fetches one offer and attaches descriptions when the
// response carries them.
func (c *Client) GetTradeOffer(ctx context.Context, offerId uint64) (econ.MergedOffer, error) {
	response, err := c.econ.GetTradeOffer(ctx, offerId)
	if err != nil {
		return econ.MergedOffer{}, err
	}
	if response.Offer == nil {
		return econ.MergedOffer{}, ErrOfferNotFound
	}

	return econ.MergeOffer(response.Offer, response.Descriptions), nil
}

func (c *Client) GetTradeHistory(ctx context.Context, options econ.GetTradeHistoryOptions) (*econ.GetTradeHistoryResponse, error) {
	return c.econ.GetTradeHistory(ctx, options)
}

func (c *Client) GetTradeOffersSummary(ctx context.Context) (*econ.TradeOffersSummary, error) {
	return c.econ.GetTradeOffersSummary(ctx)
}

// AcceptTradeOffer accepts an active offer. The current state is read first
// and anything but Active fails with InvalidOfferStateError before a
// mutating call goes out. The read and the accept are two round trips and
// the state can change upstream in between; the accept response's own
// rejection is authoritative over the earlier read.
func (c *Client) AcceptTradeOffer(ctx context.Context, offerId uint64) (*tradeoffer.AcceptResponse, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}

	response, err := c.econ.GetTradeOffer(ctx, offerId)
	if err != nil {
		return nil, err
	}
	if response.Offer == nil {
		return nil, ErrOfferNotFound
	}
	if response.Offer.State != econ.ActiveOfferState {
		return nil, &InvalidOfferStateError{OfferId: offerId, State: response.Offer.State}
	}

	// the accept endpoint wants the partner's SteamID64, which only the
	// offer's web page carries; the seven-day-hold lockout surfaces there
	partner, err := c.community.TradePartnerID(ctx, offerId)
	if err != nil {
		return nil, err
	}

	return c.tradeOffers.Accept(ctx, offerId, partner)
}

// DeclineTradeOffer declines a received offer. No local state check: the
// platform rejects invalid transitions itself.
func (c *Client) DeclineTradeOffer(ctx context.Context, offerId uint64) (*tradeoffer.ActionResponse, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}
	return c.tradeOffers.Decline(ctx, offerId)
}

// CancelTradeOffer cancels a sent offer. No local state check, same as
// DeclineTradeOffer.
func (c *Client) CancelTradeOffer(ctx context.Context, offerId uint64) (*tradeoffer.ActionResponse, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}
	return c.tradeOffers.Cancel(ctx, offerId)
}

// MakeOffer sends a new trade offer to a partner the account is friends
// with (no access token needed).
func (c *Client) MakeOffer(
	ctx context.Context,
	partner steamid.SteamID,
	myItems, theirItems []tradeoffer.Item,
	message string,
) (*tradeoffer.CreateResponse, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}
	return c.tradeOffers.Create(ctx, partner, "", myItems, theirItems, message)
}

// MakeOfferWithURL sends a new trade offer addressed by the partner's trade
// URL, deriving identity and access token from it.
func (c *Client) MakeOfferWithURL(
	ctx context.Context,
	rawTradeUrl string,
	myItems, theirItems []tradeoffer.Item,
	message string,
	caseSensitive bool,
) (*tradeoffer.CreateResponse, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}
	return c.tradeOffers.CreateWithTradeURL(ctx, rawTradeUrl, myItems, theirItems, message, caseSensitive)
}

// GetEscrowDuration returns the hold the platform would put on a trade with
// the given trade URL, in days. The binding constraint is whichever side
// has the longer escrow, so this is the maximum of the two scraped values.
func (c *Client) GetEscrowDuration(ctx context.Context, tradeOfferUrl string) (int, error) {
	if err := c.requireLogin(); err != nil {
		return 0, err
	}

	myDays, theirDays, err := c.community.EscrowDays(ctx, tradeOfferUrl)
	if err != nil {
		return 0, err
	}

	if myDays > theirDays {
		return myDays, nil
	}
	return theirDays, nil
}

// CheckTradeURL validates offline that a trade URL belongs to the given
// account.
func (c *Client) CheckTradeURL(id steamid.SteamID, rawTradeUrl string) error {
	return tradeoffer.CheckTradeURL(id, rawTradeUrl)
}

// GetTradeToken scrapes the session account's own offer-creation token.
func (c *Client) GetTradeToken(ctx context.Context) (string, error) {
	if err := c.requireLogin(); err != nil {
		return "", err
	}
	return c.community.TradeToken(ctx, c.session.SteamID())
}

// GetProfile fetches a player summary from the web API.
func (c *Client) GetProfile(ctx context.Context, steamId steamid.SteamID) (*user.PlayerSummary, error) {
	return c.users.GetPlayerSummary(ctx, steamId)
}

func (c *Client) GetFriendList(ctx context.Context, steamId steamid.SteamID, relationship string) ([]*user.Friend, error) {
	return c.users.GetFriendList(ctx, steamId, relationship)
}

// GetPartnerInventory lists a partner's inventory for one game/context.
func (c *Client) GetPartnerInventory(
	ctx context.Context,
	partner steamid.SteamID,
	appId, contextId string,
	options community.InventoryOptions,
) (*community.PlayerInventory, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}
	return c.community.GetPlayerInventory(ctx, partner, appId, contextId, options)
}

// GetPartnerInventoryItems is GetPartnerInventory with descriptions
// attached.
func (c *Client) GetPartnerInventoryItems(
	ctx context.Context,
	partner steamid.SteamID,
	appId, contextId string,
	options community.InventoryOptions,
) ([]community.InventoryItem, error) {
	inventory, err := c.GetPartnerInventory(ctx, partner, appId, contextId, options)
	if err != nil {
		return nil, err
	}
	return community.MergeInventory(inventory), nil
}
