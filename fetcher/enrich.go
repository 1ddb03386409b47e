package fetcher

import "github.com/coindash/market-data/coingecko"

// MergeEnriched merges lightweight search hits with the batch of full
// market summaries fetched for their ids, preserving the original
// search order. A hit missing from the enrichment batch keeps its
// display fields with every numeric field at the CoinSummary zero
// value rather than being dropped.
//
// A hit without a rank is merged as rank 0, matching the upstream
// fallback. That makes a miss indistinguishable from a literal rank
// zero; rank zero cannot occur upstream, so the ambiguity is accepted.
func MergeEnriched(hits []coingecko.SearchHit, enriched []coingecko.CoinSummary) []coingecko.CoinSummary {
	byID := make(map[string]coingecko.CoinSummary, len(enriched))
	for _, coin := range enriched {
		byID[coin.ID] = coin
	}

	merged := make([]coingecko.CoinSummary, 0, len(hits))
	for _, hit := range hits {
		if coin, ok := byID[hit.ID]; ok {
			merged = append(merged, coin)
			continue
		}
		merged = append(merged, zeroDefaulted(hit))
	}

	return merged
}

// zeroDefaulted converts a search hit into a CoinSummary with only the
// display fields populated
func zeroDefaulted(hit coingecko.SearchHit) coingecko.CoinSummary {
	rank := 0
	if hit.MarketCapRank != nil {
		rank = *hit.MarketCapRank
	}

	return coingecko.CoinSummary{
		ID:            hit.ID,
		Symbol:        hit.Symbol,
		Name:          hit.Name,
		Image:         hit.Large,
		MarketCapRank: rank,
	}
}
