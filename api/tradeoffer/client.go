package tradeoffer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"

	"github.com/tradewind-gg/steam/api"
	"github.com/tradewind-gg/steam/steamid"
	"github.com/tradewind-gg/steam/steamlang"
)

// SessionIdFunc resolves the current sessionid cookie. Mutating community
// calls are rejected without it, so the resolution failure aborts the call
// before any network traffic.
type SessionIdFunc func() (string, error)

type Client struct {
	Transport     api.Transport
	SessionIdFunc SessionIdFunc
}

func NewClient(transport api.Transport, sessionIdFunc SessionIdFunc) *Client {
	return &Client{Transport: transport, SessionIdFunc: sessionIdFunc}
}

type actionRequest struct {
	id      uint64
	verb    string
	values  url.Values
	referer string
}

func (t actionRequest) Retryable() bool         { return false }
func (t actionRequest) CacheTTL() time.Duration { return 0 }
func (t actionRequest) RequiresApiKey() bool    { return false }
func (t actionRequest) Method() string          { return http.MethodPost }

func (t actionRequest) Url() string {
	return fmt.Sprintf("%s/tradeoffer/%d/%s", api.CommunityURL, t.id, t.verb)
}

func (t actionRequest) Values() (url.Values, error) {
	return t.values, nil
}

func (t actionRequest) Headers() (http.Header, error) {
	if t.referer == "" {
		return nil, nil
	}
	return http.Header{"Referer": []string{t.referer}}, nil
}

func (t actionRequest) EnsureResponseSuccess(httpResponse *http.Response) error {
	if err := ErrorForEResult(steamlang.FromResponse(httpResponse)); err != nil {
		return err
	}
	return steamlang.EnsureSuccessResponse(httpResponse)
}

type ActionResponse struct {
	TradeOfferId uint64 `json:"tradeofferid,string"`
}

// AcceptResponse is the raw confirmation payload of an accept call. When
// NeedsMobileConfirmation is set the items have NOT moved yet; completing
// the mobile confirmation flow is outside this client and the caller must
// treat the offer as CreatedNeedsConfirmation.
type AcceptResponse struct {
	TradeId                 uint64 `json:"tradeid,string"`
	NeedsMobileConfirmation bool   `json:"needs_mobile_confirmation"`
	NeedsEmailConfirmation  bool   `json:"needs_email_confirmation"`
	EmailDomain             string `json:"email_domain"`
	Error                   string `json:"strError"`
}

// Accept submits the accept request for an offer. The partner's SteamID64
// is required by the endpoint and is resolved from the offer's web page by
// the caller.
func (c *Client) Accept(ctx context.Context, id uint64, partner steamid.SteamID) (*AcceptResponse, error) {
	sessionId, sessionIdErr := c.SessionIdFunc()
	if sessionIdErr != nil {
		return nil, sessionIdErr
	}

	offerId := strconv.FormatUint(id, 10)
	request := actionRequest{
		id:   id,
		verb: "accept",
		values: url.Values{
			"sessionid":    []string{sessionId},
			"tradeofferid": []string{offerId},
			"serverid":     []string{"1"},
			"partner":      []string{partner.String()},
			"captcha":      []string{""},
		},
		referer: fmt.Sprintf("%s/tradeoffer/%s", api.CommunityURL, offerId),
	}

	var response AcceptResponse
	if sendErr := c.Transport.Send(ctx, request, &response); sendErr != nil {
		return nil, sendErr
	}

	if response.Error != "" {
		return nil, eris.Wrapf(ErrorForStrError(response.Error), "error accepting offer %d", id)
	}

	return &response, nil
}

func (c *Client) act(ctx context.Context, id uint64, verb string) (*ActionResponse, error) {
	sessionId, sessionIdErr := c.SessionIdFunc()
	if sessionIdErr != nil {
		return nil, sessionIdErr
	}

	request := actionRequest{
		id:   id,
		verb: verb,
		values: url.Values{
			"sessionid": []string{sessionId},
		},
	}

	var response ActionResponse
	if sendErr := c.Transport.Send(ctx, request, &response); sendErr != nil {
		return nil, sendErr
	}
	return &response, nil
}

// Decline and Cancel have no local precondition: the platform itself rejects
// invalid transitions and the rejection propagates typed through
// ErrorForEResult.

func (c *Client) Decline(ctx context.Context, id uint64) (*ActionResponse, error) {
	return c.act(ctx, id, "decline")
}

func (c *Client) Cancel(ctx context.Context, id uint64) (*ActionResponse, error) {
	return c.act(ctx, id, "cancel")
}

// tradeVersion tags the offer payload format; the community endpoint
// rejects anything else.
const tradeVersion = 2

type Item struct {
	AppId      uint64 `json:"appid"`
	ContextId  string `json:"contextid"`
	Amount     uint64 `json:"amount"`
	AssetId    string `json:"assetid,omitempty"`
	CurrencyId string `json:"currencyid,omitempty"`
}

type Offer struct {
	NewVersion bool  `json:"newversion"`
	Version    int   `json:"version"`
	Me         Party `json:"me"`
	Them       Party `json:"them"`
}

type Party struct {
	Assets   []Item     `json:"assets"`
	Currency []struct{} `json:"currency"`
	Ready    bool       `json:"ready"`
}

// NewOffer builds the json_tradeoffer payload from the two asset lists.
func NewOffer(myItems, theirItems []Item) Offer {
	if myItems == nil {
		myItems = []Item{}
	}
	if theirItems == nil {
		theirItems = []Item{}
	}
	return Offer{
		NewVersion: true,
		Version:    tradeVersion,
		Me: Party{
			Assets:   myItems,
			Currency: []struct{}{},
			Ready:    false,
		},
		Them: Party{
			Assets:   theirItems,
			Currency: []struct{}{},
			Ready:    false,
		},
	}
}

type createParams struct {
	AccessToken string `json:"trade_offer_access_token"`
}

type createRequest struct {
	sessionId        string
	partner          string
	message          string
	offerJson        string
	createParamsJson string
	partnerAccountId uint32
	partnerToken     string
}

func (c createRequest) Retryable() bool         { return false }
func (c createRequest) CacheTTL() time.Duration { return 0 }
func (c createRequest) RequiresApiKey() bool    { return false }
func (c createRequest) Method() string          { return http.MethodPost }

func (c createRequest) Url() string {
	return api.CommunityURL + "/tradeoffer/new/send"
}

func (c createRequest) Values() (url.Values, error) {
	values := make(url.Values)
	values.Add("sessionid", c.sessionId)
	values.Add("serverid", "1")
	values.Add("partner", c.partner)
	values.Add("tradeoffermessage", c.message)
	values.Add("json_tradeoffer", c.offerJson)
	values.Add("captcha", "")
	values.Add("trade_offer_create_params", c.createParamsJson)
	return values, nil
}

func (c createRequest) Headers() (http.Header, error) {
	referer := fmt.Sprintf(
		"%s/tradeoffer/new/?partner=%s",
		api.CommunityURL,
		strconv.FormatUint(uint64(c.partnerAccountId), 10),
	)
	if c.partnerToken != "" {
		referer += "&token=" + url.QueryEscape(c.partnerToken)
	}
	return http.Header{
		"Referer": []string{referer},
		"Origin":  []string{api.CommunityURL},
	}, nil
}

func (c createRequest) EnsureResponseSuccess(httpResponse *http.Response) error {
	if err := ErrorForEResult(steamlang.FromResponse(httpResponse)); err != nil {
		return err
	}
	return steamlang.EnsureSuccessResponse(httpResponse)
}

// CreateResponse reports the new offer. An offer needing mobile or email
// confirmation exists but is only visible to the sender until confirmed;
// see AcceptResponse for the capability gap.
type CreateResponse struct {
	TradeOfferId            uint64 `json:"tradeofferid,string"`
	NeedsMobileConfirmation bool   `json:"needs_mobile_confirmation"`
	NeedsEmailConfirmation  bool   `json:"needs_email_confirmation"`
	EmailDomain             string `json:"email_domain"`
	Error                   string `json:"strError"`
}

// Create sends a new trade offer to partner. The partnerToken is required
// when the accounts are not friends; pass "" otherwise.
func (c *Client) Create(
	ctx context.Context,
	partner steamid.SteamID,
	partnerToken string,
	myItems, theirItems []Item,
	message string,
) (*CreateResponse, error) {
	sessionId, sessionIdErr := c.SessionIdFunc()
	if sessionIdErr != nil {
		return nil, sessionIdErr
	}

	offerJson, err := json.Marshal(NewOffer(myItems, theirItems))
	if err != nil {
		return nil, eris.Wrapf(err, "error marshalling offer")
	}

	createParamsJson := "{}"
	if partnerToken != "" {
		marshalled, marshalErr := json.Marshal(createParams{AccessToken: partnerToken})
		if marshalErr != nil {
			return nil, eris.Wrapf(marshalErr, "error marshalling create params")
		}
		createParamsJson = string(marshalled)
	}

	request := createRequest{
		sessionId:        sessionId,
		partner:          partner.String(),
		message:          message,
		offerJson:        string(offerJson),
		createParamsJson: createParamsJson,
		partnerAccountId: partner.AccountId(),
		partnerToken:     partnerToken,
	}

	var response CreateResponse
	if sendErr := c.Transport.Send(ctx, request, &response); sendErr != nil {
		return nil, eris.Wrapf(sendErr, "error creating offer")
	}

	if response.Error != "" {
		return nil, eris.Wrap(ErrorForStrError(response.Error), "error sending offer")
	}

	if response.TradeOfferId == 0 && !response.NeedsMobileConfirmation && !response.NeedsEmailConfirmation {
		return nil, eris.New("error creating offer: steam returned tradeofferid 0")
	}

	return &response, nil
}

// CreateWithTradeURL derives the partner identity and access token from a
// trade URL and sends the offer. With caseSensitive false, the URL is
// lowercased before extraction to tolerate hand-copied links; note the token
// itself is case sensitive, so this only suits tokens already known to be
// lower case.
func (c *Client) CreateWithTradeURL(
	ctx context.Context,
	rawTradeUrl string,
	myItems, theirItems []Item,
	message string,
	caseSensitive bool,
) (*CreateResponse, error) {
	tradeUrl, parseErr := ParseTradeURL(rawTradeUrl, caseSensitive)
	if parseErr != nil {
		return nil, parseErr
	}

	return c.Create(ctx, tradeUrl.PartnerID(), tradeUrl.Token, myItems, theirItems, message)
}
