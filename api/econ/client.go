package econ

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tradewind-gg/steam/api"
	"github.com/tradewind-gg/steam/api/community"
	"github.com/tradewind-gg/steam/steamid"
	"github.com/tradewind-gg/steam/steamlang"
)

// OfferState is assigned by the platform and only ever observed here; the
// client never advances a state locally without a confirming response.
type OfferState uint

//goland:noinspection GoUnusedConst
const (
	// InvalidOfferState - Invalid
	InvalidOfferState OfferState = 1
	// ActiveOfferState - This trade offer has been sent, neither party has acted on it yet.
	ActiveOfferState OfferState = 2
	// AcceptedOfferState - The trade offer was accepted by the recipient and items were exchanged.
	AcceptedOfferState OfferState = 3
	// CounteredOfferState - The recipient made a counter-offer
	CounteredOfferState OfferState = 4
	// ExpiredOfferState - The trade offer was not accepted before the expiration date
	ExpiredOfferState OfferState = 5
	// CanceledOfferState - The sender cancelled the offer
	CanceledOfferState OfferState = 6
	// DeclinedOfferState - The recipient declined the offer
	DeclinedOfferState OfferState = 7
	// InvalidItemsOfferState - Some of the items in the offer are no longer available (indicated by the
	// missing flag in the output)
	InvalidItemsOfferState OfferState = 8
	// CreatedNeedsConfirmationOfferState - The offer hasn't been sent yet and is awaiting email/mobile
	// confirmation. The offer is only visible to the sender.
	CreatedNeedsConfirmationOfferState OfferState = 9
	// CanceledBySecondFactorOfferState - Either party canceled the offer via email/mobile. The offer is
	// visible to both parties, even if the sender canceled it before it was sent.
	CanceledBySecondFactorOfferState OfferState = 10
	// InEscrowOfferState - The trade has been placed on hold. The items involved in the trade have all
	// been removed from both parties' inventories and will be automatically delivered in the future.
	InEscrowOfferState OfferState = 11
)

var offerStateNames = map[OfferState]string{
	InvalidOfferState:                  "Invalid",
	ActiveOfferState:                   "Active",
	AcceptedOfferState:                 "Accepted",
	CounteredOfferState:                "Countered",
	ExpiredOfferState:                  "Expired",
	CanceledOfferState:                 "Canceled",
	DeclinedOfferState:                 "Declined",
	InvalidItemsOfferState:             "InvalidItems",
	CreatedNeedsConfirmationOfferState: "CreatedNeedsConfirmation",
	CanceledBySecondFactorOfferState:   "CanceledBySecondFactor",
	InEscrowOfferState:                 "InEscrow",
}

func (s OfferState) String() string {
	if name, ok := offerStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("OfferState(%d)", uint(s))
}

type OfferConfirmationMethod uint

//goland:noinspection GoUnusedConst
const (
	InvalidOfferConfirmationMethod   OfferConfirmationMethod = 0
	EmailOfferConfirmationMethod     OfferConfirmationMethod = 1
	MobileAppOfferConfirmationMethod OfferConfirmationMethod = 2
)

type TradeOffer struct {
	TradeOfferId       uint64                  `json:"tradeofferid,string"`
	TradeId            uint64                  `json:"tradeid,string"`
	OtherAccountId     uint32                  `json:"accountid_other"`
	Message            string                  `json:"message"`
	ExpirationTime     uint32                  `json:"expiration_time"`
	State              OfferState              `json:"trade_offer_state"`
	ToGive             []*community.Asset      `json:"items_to_give"`
	ToReceive          []*community.Asset      `json:"items_to_receive"`
	IsOurOffer         bool                    `json:"is_our_offer"`
	TimeCreated        uint32                  `json:"time_created"`
	TimeUpdated        uint32                  `json:"time_updated"`
	EscrowEndDate      uint32                  `json:"escrow_end_date"`
	ConfirmationMethod OfferConfirmationMethod `json:"confirmation_method"`
}

// PartnerID rebuilds the partner's SteamID64 from the account id the API
// reports.
func (o *TradeOffer) PartnerID() steamid.SteamID {
	return steamid.FromAccountID(o.OtherAccountId)
}

type Client struct {
	Transport api.Transport
}

func NewClient(transport api.Transport) *Client {
	return &Client{Transport: transport}
}

type getTradeOfferRequest struct {
	id       uint64
	language string
}

func (g getTradeOfferRequest) Retryable() bool         { return true }
func (g getTradeOfferRequest) CacheTTL() time.Duration { return 0 }
func (g getTradeOfferRequest) RequiresApiKey() bool    { return true }
func (g getTradeOfferRequest) Method() string          { return http.MethodGet }

func (g getTradeOfferRequest) Url() string {
	return fmt.Sprintf("%s/IEconService/GetTradeOffer/v1/", api.BaseURL)
}

func (g getTradeOfferRequest) Values() (url.Values, error) {
	values := make(url.Values)
	values.Add("tradeofferid", strconv.FormatUint(g.id, 10))
	values.Add("language", g.language)
	return values, nil
}

func (g getTradeOfferRequest) Headers() (http.Header, error) {
	return nil, nil
}

func (g getTradeOfferRequest) EnsureResponseSuccess(httpResponse *http.Response) error {
	return steamlang.EnsureSuccessResponse(httpResponse)
}

type GetTradeOfferResponse struct {
	Offer        *TradeOffer              `json:"offer"`
	Descriptions []*community.Description `json:"descriptions"`
}

type getTradeOfferEnvelope struct {
	Response GetTradeOfferResponse `json:"response"`
}

func (c *Client) GetTradeOffer(ctx context.Context, id uint64) (*GetTradeOfferResponse, error) {
	request := getTradeOfferRequest{
		id:       id,
		language: "english",
	}
	var envelope getTradeOfferEnvelope
	if sendErr := c.Transport.Send(ctx, request, &envelope); sendErr != nil {
		return nil, sendErr
	}

	return &envelope.Response, nil
}

// GetTradeOffersOptions mirrors the IEconService/GetTradeOffers parameters.
type GetTradeOffersOptions struct {
	GetSent          bool
	GetReceived      bool
	GetDescriptions  bool
	ActiveOnly       bool
	HistoricalOnly   bool
	HistoricalCutoff uint32
	Language         string
}

type getTradeOffersRequest struct {
	options GetTradeOffersOptions
}

func (g getTradeOffersRequest) Retryable() bool         { return true }
func (g getTradeOffersRequest) CacheTTL() time.Duration { return 0 }
func (g getTradeOffersRequest) RequiresApiKey() bool    { return true }
func (g getTradeOffersRequest) Method() string          { return http.MethodGet }

func (g getTradeOffersRequest) Url() string {
	return fmt.Sprintf("%s/IEconService/GetTradeOffers/v1/", api.BaseURL)
}

func (g getTradeOffersRequest) Values() (url.Values, error) {
	values := make(url.Values)
	language := g.options.Language
	if language == "" {
		language = "english"
	}
	values.Add("language", language)
	if g.options.GetSent {
		values.Add("get_sent_offers", "1")
	}
	if g.options.GetReceived {
		values.Add("get_received_offers", "1")
	}
	if g.options.GetDescriptions {
		values.Add("get_descriptions", "1")
	}
	if g.options.ActiveOnly {
		values.Add("active_only", "1")
	}
	if g.options.HistoricalOnly {
		values.Add("historical_only", "1")
	}
	if g.options.HistoricalCutoff != 0 {
		values.Add("time_historical_cutoff", strconv.FormatUint(uint64(g.options.HistoricalCutoff), 10))
	}
	return values, nil
}

func (g getTradeOffersRequest) Headers() (http.Header, error) {
	return nil, nil
}

func (g getTradeOffersRequest) EnsureResponseSuccess(httpResponse *http.Response) error {
	return steamlang.EnsureSuccessResponse(httpResponse)
}

type GetTradeOffersResponse struct {
	Sent         []*TradeOffer            `json:"trade_offers_sent"`
	Received     []*TradeOffer            `json:"trade_offers_received"`
	Descriptions []*community.Description `json:"descriptions"`
	NextCursor   uint32                   `json:"next_cursor"`
}

type getTradeOffersEnvelope struct {
	Response GetTradeOffersResponse `json:"response"`
}

func (c *Client) GetTradeOffers(ctx context.Context, options GetTradeOffersOptions) (*GetTradeOffersResponse, error) {
	var envelope getTradeOffersEnvelope
	if sendErr := c.Transport.Send(ctx, getTradeOffersRequest{options: options}, &envelope); sendErr != nil {
		return nil, sendErr
	}

	return &envelope.Response, nil
}

// GetTradeHistoryOptions mirrors the IEconService/GetTradeHistory parameters.
type GetTradeHistoryOptions struct {
	MaxTrades         uint
	StartAfterTime    uint32
	StartAfterTradeId uint64
	NavigatingBack    bool
	GetDescriptions   bool
	IncludeFailed     bool
	IncludeTotal      bool
}

type getTradeHistoryRequest struct {
	options GetTradeHistoryOptions
}

func (g getTradeHistoryRequest) Retryable() bool         { return true }
func (g getTradeHistoryRequest) CacheTTL() time.Duration { return 0 }
func (g getTradeHistoryRequest) RequiresApiKey() bool    { return true }
func (g getTradeHistoryRequest) Method() string          { return http.MethodGet }

func (g getTradeHistoryRequest) Url() string {
	return fmt.Sprintf("%s/IEconService/GetTradeHistory/v1/", api.BaseURL)
}

func (g getTradeHistoryRequest) Values() (url.Values, error) {
	values := make(url.Values)
	maxTrades := g.options.MaxTrades
	if maxTrades == 0 {
		maxTrades = 100
	}
	values.Add("max_trades", strconv.FormatUint(uint64(maxTrades), 10))
	if g.options.StartAfterTime != 0 {
		values.Add("start_after_time", strconv.FormatUint(uint64(g.options.StartAfterTime), 10))
	}
	if g.options.StartAfterTradeId != 0 {
		values.Add("start_after_tradeid", strconv.FormatUint(g.options.StartAfterTradeId, 10))
	}
	if g.options.NavigatingBack {
		values.Add("navigating_back", "1")
	}
	if g.options.GetDescriptions {
		values.Add("get_descriptions", "1")
	}
	if g.options.IncludeFailed {
		values.Add("include_failed", "1")
	}
	if g.options.IncludeTotal {
		values.Add("include_total", "1")
	}
	return values, nil
}

func (g getTradeHistoryRequest) Headers() (http.Header, error) {
	return nil, nil
}

func (g getTradeHistoryRequest) EnsureResponseSuccess(httpResponse *http.Response) error {
	return steamlang.EnsureSuccessResponse(httpResponse)
}

type HistoricalTrade struct {
	TradeId        uint64             `json:"tradeid,string"`
	SteamIdOther   string             `json:"steamid_other"`
	TimeInit       uint32             `json:"time_init"`
	Status         int                `json:"status"`
	AssetsGiven    []*community.Asset `json:"assets_given"`
	AssetsReceived []*community.Asset `json:"assets_received"`
}

type GetTradeHistoryResponse struct {
	More         bool                     `json:"more"`
	Trades       []*HistoricalTrade       `json:"trades"`
	Descriptions []*community.Description `json:"descriptions"`
	TotalTrades  uint                     `json:"total_trades"`
}

type getTradeHistoryEnvelope struct {
	Response GetTradeHistoryResponse `json:"response"`
}

func (c *Client) GetTradeHistory(ctx context.Context, options GetTradeHistoryOptions) (*GetTradeHistoryResponse, error) {
	var envelope getTradeHistoryEnvelope
	if sendErr := c.Transport.Send(ctx, getTradeHistoryRequest{options: options}, &envelope); sendErr != nil {
		return nil, sendErr
	}

	return &envelope.Response, nil
}

// offerActionRequest is the web API twin of the community-side decline and
// cancel posts. It needs the API key instead of session cookies, which
// makes it the right variant for key-only deployments.
type offerActionRequest struct {
	id     uint64
	action string
}

func (o offerActionRequest) Retryable() bool         { return false }
func (o offerActionRequest) CacheTTL() time.Duration { return 0 }
func (o offerActionRequest) RequiresApiKey() bool    { return true }
func (o offerActionRequest) Method() string          { return http.MethodPost }

func (o offerActionRequest) Url() string {
	return fmt.Sprintf("%s/IEconService/%s/v1/", api.BaseURL, o.action)
}

func (o offerActionRequest) Values() (url.Values, error) {
	values := make(url.Values)
	values.Add("tradeofferid", strconv.FormatUint(o.id, 10))
	return values, nil
}

func (o offerActionRequest) Headers() (http.Header, error) {
	return nil, nil
}

func (o offerActionRequest) EnsureResponseSuccess(httpResponse *http.Response) error {
	return steamlang.EnsureSuccessResponse(httpResponse)
}

func (c *Client) DeclineTradeOffer(ctx context.Context, id uint64) error {
	return c.Transport.Send(ctx, offerActionRequest{id: id, action: "DeclineTradeOffer"}, nil)
}

func (c *Client) CancelTradeOffer(ctx context.Context, id uint64) error {
	return c.Transport.Send(ctx, offerActionRequest{id: id, action: "CancelTradeOffer"}, nil)
}

type getTradeOffersSummaryRequest struct{}

func (g getTradeOffersSummaryRequest) Retryable() bool { return true }

// The summary is a cheap liveness-style poll; a short cache keeps tight bot
// loops from hammering the API.
func (g getTradeOffersSummaryRequest) CacheTTL() time.Duration { return 15 * time.Second }
func (g getTradeOffersSummaryRequest) RequiresApiKey() bool    { return true }
func (g getTradeOffersSummaryRequest) Method() string          { return http.MethodGet }

func (g getTradeOffersSummaryRequest) Url() string {
	return fmt.Sprintf("%s/IEconService/GetTradeOffersSummary/v1/", api.BaseURL)
}

func (g getTradeOffersSummaryRequest) Values() (url.Values, error) {
	return nil, nil
}

func (g getTradeOffersSummaryRequest) Headers() (http.Header, error) {
	return nil, nil
}

func (g getTradeOffersSummaryRequest) EnsureResponseSuccess(httpResponse *http.Response) error {
	return steamlang.EnsureSuccessResponse(httpResponse)
}

type TradeOffersSummary struct {
	PendingReceivedCount    uint `json:"pending_received_count"`
	NewReceivedCount        uint `json:"new_received_count"`
	UpdatedReceivedCount    uint `json:"updated_received_count"`
	HistoricalReceivedCount uint `json:"historical_received_count"`
	PendingSentCount        uint `json:"pending_sent_count"`
	NewlyAcceptedSentCount  uint `json:"newly_accepted_sent_count"`
	UpdatedSentCount        uint `json:"updated_sent_count"`
	HistoricalSentCount     uint `json:"historical_sent_count"`
	EscrowReceivedCount     uint `json:"escrow_received_count"`
	EscrowSentCount         uint `json:"escrow_sent_count"`
}

type getTradeOffersSummaryEnvelope struct {
	Response TradeOffersSummary `json:"response"`
}

func (c *Client) GetTradeOffersSummary(ctx context.Context) (*TradeOffersSummary, error) {
	var envelope getTradeOffersSummaryEnvelope
	if sendErr := c.Transport.Send(ctx, getTradeOffersSummaryRequest{}, &envelope); sendErr != nil {
		return nil, sendErr
	}

	return &envelope.Response, nil
}
