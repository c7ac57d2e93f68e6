package community

// InventoryItem is an asset denormalized with its class description. It is a
// read view built on demand, never a second source of truth: the asset keeps
// its identity and a missing description degrades to the zero value instead
// of dropping the asset.
type InventoryItem struct {
	Asset       Asset
	Description Description
}

// HasDescription reports whether the merge found display metadata for the
// asset's class.
func (i InventoryItem) HasDescription() bool {
	return i.Description.ClassId != ""
}

type DescriptionMap map[string]*Description

func descriptionKey(classId, instanceId string) string {
	return classId + "_" + instanceId
}

func NewDescriptionMap(descriptions []*Description) DescriptionMap {
	lookup := make(DescriptionMap, len(descriptions))
	for _, description := range descriptions {
		if description == nil {
			continue
		}
		lookup[descriptionKey(description.ClassId, description.InstanceId)] = description
	}
	return lookup
}

func (m DescriptionMap) Lookup(classId, instanceId string) (*Description, bool) {
	description, ok := m[descriptionKey(classId, instanceId)]
	return description, ok
}

// MergeAssets attaches descriptions to assets by (classid, instanceid).
// Assets without a matching description are passed through with a zero
// description; partial metadata beats silent data loss.
func MergeAssets(assets []*Asset, descriptions DescriptionMap) []InventoryItem {
	items := make([]InventoryItem, 0, len(assets))
	for _, asset := range assets {
		if asset == nil {
			continue
		}
		item := InventoryItem{Asset: *asset}
		if description, ok := descriptions.Lookup(asset.ClassId, asset.InstanceId); ok {
			item.Description = *description
		}
		items = append(items, item)
	}
	return items
}

// MergeInventory denormalizes a raw inventory response.
func MergeInventory(inventory *PlayerInventory) []InventoryItem {
	return MergeAssets(inventory.Assets, NewDescriptionMap(inventory.Descriptions))
}
