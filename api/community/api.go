package community

import (
	"context"

	"github.com/tradewind-gg/steam/steamid"
)

type Api interface {
	IsSessionAlive(ctx context.Context) (bool, error)
	TradePartnerID(ctx context.Context, offerId uint64) (steamid.SteamID, error)
	EscrowDays(ctx context.Context, tradeOfferUrl string) (myDays int, theirDays int, err error)
	TradeToken(ctx context.Context, steamId steamid.SteamID) (string, error)
	GetPlayerInventory(
		ctx context.Context,
		steamId steamid.SteamID,
		appId, contextId string,
		options InventoryOptions,
	) (*PlayerInventory, error)
}
