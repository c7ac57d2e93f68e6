package user

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/tradewind-gg/steam/api"
	"github.com/tradewind-gg/steam/steamid"
	"github.com/tradewind-gg/steam/steamlang"
)

type Client struct {
	Transport api.Transport
}

func NewClient(transport api.Transport) *Client {
	return &Client{Transport: transport}
}

type PlayerSummary struct {
	SteamId                  string `json:"steamid"`
	CommunityVisibilityState int    `json:"communityvisibilitystate"`
	ProfileState             int    `json:"profilestate"`
	PersonaName              string `json:"personaname"`
	ProfileUrl               string `json:"profileurl"`
	Avatar                   string `json:"avatar"`
	AvatarMedium             string `json:"avatarmedium"`
	AvatarFull               string `json:"avatarfull"`
	PersonaState             int    `json:"personastate"`
	RealName                 string `json:"realname,omitempty"`
	PrimaryClanId            string `json:"primaryclanid,omitempty"`
	TimeCreated              uint32 `json:"timecreated,omitempty"`
	LocCountryCode           string `json:"loccountrycode,omitempty"`
	LastLogoff               uint32 `json:"lastlogoff,omitempty"`
}

type playerSummariesRequest struct {
	steamIds string
}

func (p playerSummariesRequest) Retryable() bool { return true }

// Profiles change rarely; a minute of caching absorbs repeated lookups while
// iterating offers from the same partner.
func (p playerSummariesRequest) CacheTTL() time.Duration { return time.Minute }
func (p playerSummariesRequest) RequiresApiKey() bool    { return true }
func (p playerSummariesRequest) Method() string          { return http.MethodGet }

func (p playerSummariesRequest) Url() string {
	return fmt.Sprintf("%s/ISteamUser/GetPlayerSummaries/v0002/", api.BaseURL)
}

func (p playerSummariesRequest) Values() (url.Values, error) {
	values := make(url.Values)
	values.Add("steamids", p.steamIds)
	return values, nil
}

func (p playerSummariesRequest) Headers() (http.Header, error) {
	return nil, nil
}

func (p playerSummariesRequest) EnsureResponseSuccess(httpResponse *http.Response) error {
	return steamlang.EnsureSuccessResponse(httpResponse)
}

type playerSummariesEnvelope struct {
	Response struct {
		Players []*PlayerSummary `json:"players"`
	} `json:"response"`
}

// GetPlayerSummary fetches one player's profile; nil when the id is unknown
// to the platform.
func (c *Client) GetPlayerSummary(ctx context.Context, steamId steamid.SteamID) (*PlayerSummary, error) {
	request := playerSummariesRequest{steamIds: steamId.String()}

	var envelope playerSummariesEnvelope
	if sendErr := c.Transport.Send(ctx, request, &envelope); sendErr != nil {
		return nil, sendErr
	}

	if len(envelope.Response.Players) == 0 {
		return nil, nil
	}
	return envelope.Response.Players[0], nil
}

type Friend struct {
	SteamId      string `json:"steamid"`
	Relationship string `json:"relationship"`
	FriendSince  uint32 `json:"friend_since"`
}

type friendListRequest struct {
	steamId      string
	relationship string
}

func (f friendListRequest) Retryable() bool         { return true }
func (f friendListRequest) CacheTTL() time.Duration { return 0 }
func (f friendListRequest) RequiresApiKey() bool    { return true }
func (f friendListRequest) Method() string          { return http.MethodGet }

func (f friendListRequest) Url() string {
	return fmt.Sprintf("%s/ISteamUser/GetFriendList/v1/", api.BaseURL)
}

func (f friendListRequest) Values() (url.Values, error) {
	values := make(url.Values)
	values.Add("steamid", f.steamId)
	values.Add("relationship", f.relationship)
	return values, nil
}

func (f friendListRequest) Headers() (http.Header, error) {
	return nil, nil
}

func (f friendListRequest) EnsureResponseSuccess(httpResponse *http.Response) error {
	return steamlang.EnsureSuccessResponse(httpResponse)
}

type friendListEnvelope struct {
	FriendsList struct {
		Friends []*Friend `json:"friends"`
	} `json:"friendslist"`
}

// GetFriendList lists friends of a public profile. relationship filters by
// relation type; "all" for everything.
func (c *Client) GetFriendList(ctx context.Context, steamId steamid.SteamID, relationship string) ([]*Friend, error) {
	if relationship == "" {
		relationship = "all"
	}

	request := friendListRequest{
		steamId:      steamId.String(),
		relationship: relationship,
	}

	var envelope friendListEnvelope
	if sendErr := c.Transport.Send(ctx, request, &envelope); sendErr != nil {
		return nil, sendErr
	}

	return envelope.FriendsList.Friends, nil
}
