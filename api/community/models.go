package community

// Asset identifies one tradable item instance inside a game inventory
// partition. Amount is a stack count, "1" for non-stackable items.
type Asset struct {
	AppId      uint   `json:"appid"`
	ContextId  string `json:"contextid"`
	AssetId    string `json:"assetid"`
	ClassId    string `json:"classid"`
	InstanceId string `json:"instanceid"`
	Amount     string `json:"amount"`
}

// Description is display metadata for an item class, keyed by
// (classid, instanceid). Many assets share one description.
type Description struct {
	AppId                       uint     `json:"appid"`
	ClassId                     string   `json:"classid"`
	InstanceId                  string   `json:"instanceid"`
	Currency                    int      `json:"currency"`
	BackgroundColor             string   `json:"background_color"`
	IconUrl                     string   `json:"icon_url"`
	IconUrlLarge                string   `json:"icon_url_large"`
	Tradable                    int      `json:"tradable"`
	Name                        string   `json:"name"`
	NameColor                   string   `json:"name_color"`
	Type                        string   `json:"type"`
	MarketName                  string   `json:"market_name"`
	MarketHashName              string   `json:"market_hash_name"`
	Commodity                   int      `json:"commodity"`
	MarketTradableRestriction   string   `json:"market_tradable_restriction"`
	MarketMarketableRestriction string   `json:"market_marketable_restriction"`
	Marketable                  string   `json:"marketable"`
	FraudWarnings               []string `json:"fraudwarnings,omitempty"`
	Tags                        []Tag    `json:"tags"`
	Lines                       []Line   `json:"descriptions,omitempty"`
	Actions                     []Action `json:"actions,omitempty"`
	MarketActions               []Action `json:"market_actions,omitempty"`
}

type Tag struct {
	Category              string `json:"category"`
	InternalName          string `json:"internal_name"`
	LocalizedCategoryName string `json:"localized_category_name"`
	LocalizedTagName      string `json:"localized_tag_name"`
	Color                 string `json:"color,omitempty"`
}

type Line struct {
	Value string `json:"value"`
	Color string `json:"color,omitempty"`
	Type  string `json:"type,omitempty"`
	Name  string `json:"name"`
}

type Action struct {
	Link string `json:"link"`
	Name string `json:"name"`
}

type PlayerInventory struct {
	Assets              []*Asset       `json:"assets"`
	Descriptions        []*Description `json:"descriptions"`
	MoreItems           int            `json:"more_items,omitempty"`
	LastAssetId         string         `json:"last_assetid,omitempty"`
	TotalInventoryCount int            `json:"total_inventory_count"`
	Success             int            `json:"success"`
	Rwgrsn              int            `json:"rwgrsn"`
}
