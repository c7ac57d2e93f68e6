package econ

import (
	"testing"

	"github.com/tradewind-gg/steam/api/community"
)

func offersResponse() *GetTradeOffersResponse {
	return &GetTradeOffersResponse{
		Sent: []*TradeOffer{
			{TradeOfferId: 1, State: ActiveOfferState, ToGive: []*community.Asset{
				{AssetId: "11", ClassId: "c1", InstanceId: "i1"},
			}},
			{TradeOfferId: 2, State: DeclinedOfferState},
		},
		Received: []*TradeOffer{
			{TradeOfferId: 3, State: ActiveOfferState, ToReceive: []*community.Asset{
				{AssetId: "12", ClassId: "c2", InstanceId: "i2"},
			}},
		},
		Descriptions: []*community.Description{
			{ClassId: "c1", InstanceId: "i1", Name: "Mann Co. Supply Crate Key"},
		},
	}
}

func TestMergeOffersAttachesSharedDescriptions(t *testing.T) {
	merged := MergeOffers(offersResponse())

	if len(merged.Sent) != 2 || len(merged.Received) != 1 {
		t.Fatalf("merged %d sent / %d received, want 2 / 1", len(merged.Sent), len(merged.Received))
	}

	give := merged.Sent[0].ToGive
	if len(give) != 1 || give[0].Description.Name != "Mann Co. Supply Crate Key" {
		t.Errorf("sent offer give-list not merged: %+v", give)
	}

	receive := merged.Received[0].ToReceive
	if len(receive) != 1 || receive[0].HasDescription() {
		t.Errorf("asset without description should survive with zero description: %+v", receive)
	}
}

func TestFilterActive(t *testing.T) {
	response := offersResponse()
	active := FilterActive(response.Sent)

	if len(active) != 1 {
		t.Fatalf("len(active) = %d, want 1", len(active))
	}
	if active[0].TradeOfferId != 1 {
		t.Errorf("active[0].TradeOfferId = %d, want 1", active[0].TradeOfferId)
	}
}

func TestOfferStateString(t *testing.T) {
	if InEscrowOfferState.String() != "InEscrow" {
		t.Errorf("InEscrowOfferState.String() = %q", InEscrowOfferState.String())
	}
	if OfferState(42).String() != "OfferState(42)" {
		t.Errorf("unknown state String() = %q", OfferState(42).String())
	}
}
