package econ

import "github.com/tradewind-gg/steam/api/community"

// MergedOffer is a trade offer whose asset lists carry display metadata.
// Like community.InventoryItem it is a read view; the offer itself stays
// authoritative.
type MergedOffer struct {
	Offer     *TradeOffer
	ToGive    []community.InventoryItem
	ToReceive []community.InventoryItem
}

// MergeOffer attaches a separate descriptions array to one offer's asset
// lists.
func MergeOffer(offer *TradeOffer, descriptions []*community.Description) MergedOffer {
	return mergeOffer(offer, community.NewDescriptionMap(descriptions))
}

func mergeOffer(offer *TradeOffer, lookup community.DescriptionMap) MergedOffer {
	return MergedOffer{
		Offer:     offer,
		ToGive:    community.MergeAssets(offer.ToGive, lookup),
		ToReceive: community.MergeAssets(offer.ToReceive, lookup),
	}
}

type MergedOffers struct {
	Sent     []MergedOffer
	Received []MergedOffer
}

// MergeOffers denormalizes a GetTradeOffers response; the response-level
// descriptions array covers both directions.
func MergeOffers(response *GetTradeOffersResponse) MergedOffers {
	lookup := community.NewDescriptionMap(response.Descriptions)

	merged := MergedOffers{
		Sent:     make([]MergedOffer, 0, len(response.Sent)),
		Received: make([]MergedOffer, 0, len(response.Received)),
	}
	for _, offer := range response.Sent {
		merged.Sent = append(merged.Sent, mergeOffer(offer, lookup))
	}
	for _, offer := range response.Received {
		merged.Received = append(merged.Received, mergeOffer(offer, lookup))
	}
	return merged
}

// FilterActive drops every offer whose state is not Active. List queries
// apply this before merging so stale offers never pay for a description
// lookup.
func FilterActive(offers []*TradeOffer) []*TradeOffer {
	active := make([]*TradeOffer, 0, len(offers))
	for _, offer := range offers {
		if offer.State == ActiveOfferState {
			active = append(active, offer)
		}
	}
	return active
}
