package tradeoffer

import (
	"encoding/json"
	"testing"
)

func TestNewOfferPayloadShape(t *testing.T) {
	offer := NewOffer(nil, []Item{
		{AppId: 730, ContextId: "2", Amount: 1, AssetId: "1001"},
	})

	if !offer.NewVersion {
		t.Error("offer must carry newversion=true")
	}
	if offer.Version != 2 {
		t.Errorf("offer.Version = %d, want 2", offer.Version)
	}
	if len(offer.Me.Assets) != 0 {
		t.Errorf("give-list should be empty, got %d assets", len(offer.Me.Assets))
	}
	if len(offer.Them.Assets) != 1 {
		t.Errorf("receive-list should have 1 asset, got %d", len(offer.Them.Assets))
	}
}

func TestNewOfferMarshalsEmptyListsAsArrays(t *testing.T) {
	payload, err := json.Marshal(NewOffer(nil, nil))
	if err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		NewVersion bool `json:"newversion"`
		Version    int  `json:"version"`
		Me         struct {
			Assets   []json.RawMessage `json:"assets"`
			Currency []json.RawMessage `json:"currency"`
		} `json:"me"`
	}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatal(err)
	}

	if decoded.Version != 2 {
		t.Errorf("marshalled version = %d, want 2", decoded.Version)
	}

	// the endpoint rejects null where it expects [], so the marshalled
	// payload must spell the empty lists out
	if decoded.Me.Assets == nil || decoded.Me.Currency == nil {
		t.Error("empty asset/currency lists must marshal as [], not null")
	}
}
