package tradeoffer

import (
	"context"

	"github.com/tradewind-gg/steam/steamid"
)

type Api interface {
	Accept(ctx context.Context, id uint64, partner steamid.SteamID) (*AcceptResponse, error)
	Decline(ctx context.Context, id uint64) (*ActionResponse, error)
	Cancel(ctx context.Context, id uint64) (*ActionResponse, error)
	Create(
		ctx context.Context,
		partner steamid.SteamID,
		partnerToken string,
		myItems, theirItems []Item,
		message string,
	) (*CreateResponse, error)
	CreateWithTradeURL(
		ctx context.Context,
		rawTradeUrl string,
		myItems, theirItems []Item,
		message string,
		caseSensitive bool,
	) (*CreateResponse, error)
}
