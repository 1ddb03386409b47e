package coingecko

import "math"

// NormalizeCoinDetail flattens a raw /coins/{id} payload into a
// CoinDetail, selecting the reference currency's entry from every
// currency-keyed map. Fallback rules:
//   - currency-keyed metric absent: 0 (empty string for dates)
//   - scalar metric missing or NaN: 0
//   - total_supply / max_supply absent: nil, never 0; unknown supply
//     is not the same as zero supply
//   - image: largest available resolution first
//   - roi and fully_diluted_valuation are never present on the detail
//     endpoint and normalize to nil
//   - last_updated: market-data timestamp, then payload timestamp,
//     then ""
//
// The transform is one-way: it only accepts the raw wire shape.
func NormalizeCoinDetail(raw *CoinDetailRaw, currency string) CoinDetail {
	md := raw.MarketData

	detail := CoinDetail{
		CoinSummary: CoinSummary{
			ID:     raw.ID,
			Symbol: raw.Symbol,
			Name:   raw.Name,
			Image:  selectImage(raw.Image),

			FullyDilutedValuation: nil,
			ROI:                   nil,
		},
		Description: raw.Description,
		Links:       raw.Links,
	}

	if md == nil {
		detail.LastUpdated = raw.LastUpdated
		return detail
	}

	detail.CurrentPrice = currencyValue(md.CurrentPrice, currency)
	detail.MarketCap = currencyValue(md.MarketCap, currency)
	detail.TotalVolume = currencyValue(md.TotalVolume, currency)
	detail.High24h = currencyValue(md.High24h, currency)
	detail.Low24h = currencyValue(md.Low24h, currency)

	if md.MarketCapRank != nil {
		detail.MarketCapRank = *md.MarketCapRank
	}

	detail.PriceChange24h = safeNumber(md.PriceChange24h)
	detail.PriceChangePercentage24h = safeNumber(md.PriceChangePercentage24h)
	detail.MarketCapChange24h = safeNumber(md.MarketCapChange24h)
	detail.MarketCapChangePercentage24h = safeNumber(md.MarketCapChangePercentage24h)
	detail.CirculatingSupply = safeNumber(md.CirculatingSupply)

	detail.TotalSupply = md.TotalSupply
	detail.MaxSupply = md.MaxSupply

	detail.ATH = currencyValue(md.ATH, currency)
	detail.ATHChangePercentage = currencyValue(md.ATHChangePercentage, currency)
	detail.ATHDate = currencyDate(md.ATHDate, currency)
	detail.ATL = currencyValue(md.ATL, currency)
	detail.ATLChangePercentage = currencyValue(md.ATLChangePercentage, currency)
	detail.ATLDate = currencyDate(md.ATLDate, currency)

	detail.LastUpdated = md.LastUpdated
	if detail.LastUpdated == "" {
		detail.LastUpdated = raw.LastUpdated
	}

	return detail
}

// selectImage prefers the largest available resolution
func selectImage(img *ImageRaw) string {
	if img == nil {
		return ""
	}
	if img.Large != "" {
		return img.Large
	}
	if img.Small != "" {
		return img.Small
	}
	return img.Thumb
}

// currencyValue looks up the reference currency's entry, 0 when absent
func currencyValue(values map[string]float64, currency string) float64 {
	if values == nil {
		return 0
	}
	v, ok := values[currency]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// currencyDate looks up the reference currency's date entry, "" when absent
func currencyDate(dates map[string]string, currency string) string {
	if dates == nil {
		return ""
	}
	return dates[currency]
}

// safeNumber dereferences a scalar metric, 0 when missing or NaN
func safeNumber(v *float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0
	}
	return *v
}
