package econ

import "context"

type Api interface {
	GetTradeOffer(ctx context.Context, id uint64) (*GetTradeOfferResponse, error)
	GetTradeOffers(ctx context.Context, options GetTradeOffersOptions) (*GetTradeOffersResponse, error)
	GetTradeHistory(ctx context.Context, options GetTradeHistoryOptions) (*GetTradeHistoryResponse, error)
	GetTradeOffersSummary(ctx context.Context) (*TradeOffersSummary, error)
	DeclineTradeOffer(ctx context.Context, id uint64) error
	CancelTradeOffer(ctx context.Context, id uint64) error
}
