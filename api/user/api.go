package user

import (
	"context"

	"github.com/tradewind-gg/steam/steamid"
)

type Api interface {
	GetPlayerSummary(ctx context.Context, steamId steamid.SteamID) (*PlayerSummary, error)
	GetFriendList(ctx context.Context, steamId steamid.SteamID, relationship string) ([]*Friend, error)
}
