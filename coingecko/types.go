package coingecko

// ROI is the return-on-investment summary attached to some markets rows
type ROI struct {
	Times      float64 `json:"times"`
	Currency   string  `json:"currency"`
	Percentage float64 `json:"percentage"`
}

// CoinSummary is one row of market data for a single asset, with every
// monetary field denominated in the reference currency. Supply fields
// that can legitimately be unknown or unbounded are pointers: nil means
// "not applicable", which is distinct from zero.
type CoinSummary struct {
	ID                           string   `json:"id"`
	Symbol                       string   `json:"symbol"`
	Name                         string   `json:"name"`
	Image                        string   `json:"image"`
	CurrentPrice                 float64  `json:"current_price"`
	MarketCap                    float64  `json:"market_cap"`
	MarketCapRank                int      `json:"market_cap_rank"`
	FullyDilutedValuation        *float64 `json:"fully_diluted_valuation"`
	TotalVolume                  float64  `json:"total_volume"`
	High24h                      float64  `json:"high_24h"`
	Low24h                       float64  `json:"low_24h"`
	PriceChange24h               float64  `json:"price_change_24h"`
	PriceChangePercentage24h     float64  `json:"price_change_percentage_24h"`
	MarketCapChange24h           float64  `json:"market_cap_change_24h"`
	MarketCapChangePercentage24h float64  `json:"market_cap_change_percentage_24h"`
	CirculatingSupply            float64  `json:"circulating_supply"`
	TotalSupply                  *float64 `json:"total_supply"`
	MaxSupply                    *float64 `json:"max_supply"`
	ATH                          float64  `json:"ath"`
	ATHChangePercentage          float64  `json:"ath_change_percentage"`
	ATHDate                      string   `json:"ath_date"`
	ATL                          float64  `json:"atl"`
	ATLChangePercentage          float64  `json:"atl_change_percentage"`
	ATLDate                      string   `json:"atl_date"`
	ROI                          *ROI     `json:"roi"`
	LastUpdated                  string   `json:"last_updated"`
}

// Description holds the long-form coin description
type Description struct {
	EN string `json:"en"`
}

// ReposURL groups source repository links
type ReposURL struct {
	Github    []string `json:"github"`
	Bitbucket []string `json:"bitbucket"`
}

// Links is the set of external reference links on a detail record
type Links struct {
	Homepage                  []string `json:"homepage"`
	BlockchainSite            []string `json:"blockchain_site"`
	OfficialForumURL          []string `json:"official_forum_url"`
	ChatURL                   []string `json:"chat_url"`
	AnnouncementURL           []string `json:"announcement_url"`
	TwitterScreenName         string   `json:"twitter_screen_name"`
	FacebookUsername          string   `json:"facebook_username"`
	TelegramChannelIdentifier string   `json:"telegram_channel_identifier"`
	SubredditURL              string   `json:"subreddit_url"`
	ReposURL                  ReposURL `json:"repos_url"`
}

// CoinDetail is a CoinSummary plus the optional long-form description
// and external links. It is produced from CoinDetailRaw by
// NormalizeCoinDetail only.
type CoinDetail struct {
	CoinSummary
	Description *Description `json:"description,omitempty"`
	Links       *Links       `json:"links,omitempty"`
}

// ImageRaw carries the available logo resolutions of a detail payload
type ImageRaw struct {
	Thumb string `json:"thumb"`
	Small string `json:"small"`
	Large string `json:"large"`
}

// MarketDataRaw is the nested market data of a /coins/{id} response.
// Most numeric fields are mappings from currency code to value; scalar
// fields are pointers so absence is visible to normalization.
type MarketDataRaw struct {
	CurrentPrice                 map[string]float64 `json:"current_price"`
	MarketCap                    map[string]float64 `json:"market_cap"`
	MarketCapRank                *int               `json:"market_cap_rank"`
	TotalVolume                  map[string]float64 `json:"total_volume"`
	High24h                      map[string]float64 `json:"high_24h"`
	Low24h                       map[string]float64 `json:"low_24h"`
	PriceChange24h               *float64           `json:"price_change_24h"`
	PriceChangePercentage24h     *float64           `json:"price_change_percentage_24h"`
	MarketCapChange24h           *float64           `json:"market_cap_change_24h"`
	MarketCapChangePercentage24h *float64           `json:"market_cap_change_percentage_24h"`
	CirculatingSupply            *float64           `json:"circulating_supply"`
	TotalSupply                  *float64           `json:"total_supply"`
	MaxSupply                    *float64           `json:"max_supply"`
	ATH                          map[string]float64 `json:"ath"`
	ATHChangePercentage          map[string]float64 `json:"ath_change_percentage"`
	ATHDate                      map[string]string  `json:"ath_date"`
	ATL                          map[string]float64 `json:"atl"`
	ATLChangePercentage          map[string]float64 `json:"atl_change_percentage"`
	ATLDate                      map[string]string  `json:"atl_date"`
	LastUpdated                  string             `json:"last_updated"`
}

// CoinDetailRaw is the /coins/{id} response as it comes off the wire
type CoinDetailRaw struct {
	ID          string         `json:"id"`
	Symbol      string         `json:"symbol"`
	Name        string         `json:"name"`
	Image       *ImageRaw      `json:"image"`
	Description *Description   `json:"description"`
	Links       *Links         `json:"links"`
	MarketData  *MarketDataRaw `json:"market_data"`
	LastUpdated string         `json:"last_updated"`
}

// SearchHit is a lightweight coin reference returned by text search;
// it carries no price or market fields
type SearchHit struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	MarketCapRank *int   `json:"market_cap_rank"`
	Thumb         string `json:"thumb"`
	Large         string `json:"large"`
}

// searchResponse is the /search wire shape
type searchResponse struct {
	Coins []SearchHit `json:"coins"`
}

// ChartPoint is a single (timestamp, price) pair in the reference
// currency. Timestamps are upstream milliseconds; series order is
// passed through from the API and never re-sorted.
type ChartPoint struct {
	Timestamp int64   `json:"timestamp"`
	Price     float64 `json:"price"`
}

// marketChartResponse is the /coins/{id}/market_chart wire shape
type marketChartResponse struct {
	Prices [][2]float64 `json:"prices"`
}

// TrendingItem is one coin of the trending list
type TrendingItem struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Symbol        string  `json:"symbol"`
	MarketCapRank int     `json:"market_cap_rank"`
	Thumb         string  `json:"thumb"`
	Small         string  `json:"small"`
	Large         string  `json:"large"`
	Score         int     `json:"score"`
	PriceBTC      float64 `json:"price_btc"`
}

// TrendingCoin wraps the item envelope of /search/trending
type TrendingCoin struct {
	Item TrendingItem `json:"item"`
}

// TrendingResponse is the /search/trending response
type TrendingResponse struct {
	Coins []TrendingCoin `json:"coins"`
}
