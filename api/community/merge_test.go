package community

import (
	"reflect"
	"testing"
)

func sampleInventory() *PlayerInventory {
	return &PlayerInventory{
		Assets: []*Asset{
			{AppId: 730, ContextId: "2", AssetId: "1001", ClassId: "310776543", InstanceId: "302028390", Amount: "1"},
			{AppId: 730, ContextId: "2", AssetId: "1002", ClassId: "310776543", InstanceId: "302028390", Amount: "1"},
			{AppId: 730, ContextId: "2", AssetId: "1003", ClassId: "99999", InstanceId: "0", Amount: "1"},
		},
		Descriptions: []*Description{
			{ClassId: "310776543", InstanceId: "302028390", Name: "AK-47 | Redline", Tradable: 1},
		},
		Success: 1,
	}
}

func TestMergeInventoryAttachesDescriptions(t *testing.T) {
	items := MergeInventory(sampleInventory())
	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}

	if !items[0].HasDescription() || items[0].Description.Name != "AK-47 | Redline" {
		t.Errorf("first item missing description: %+v", items[0].Description)
	}

	// two assets of the same class share one description record
	if items[1].Description.Name != items[0].Description.Name {
		t.Error("second asset of the same class should carry the same description")
	}
}

func TestMergeInventoryKeepsAssetsWithoutDescription(t *testing.T) {
	items := MergeInventory(sampleInventory())

	last := items[2]
	if last.Asset.AssetId != "1003" {
		t.Fatalf("expected asset 1003 to survive the merge, got %q", last.Asset.AssetId)
	}
	if last.HasDescription() {
		t.Error("asset without a matching description should carry a zero description")
	}
}

func TestMergeInventoryIsIdempotent(t *testing.T) {
	inventory := sampleInventory()

	first := MergeInventory(inventory)
	second := MergeInventory(inventory)

	if !reflect.DeepEqual(first, second) {
		t.Error("merging the same input twice produced different output")
	}
}
