package suitability

import "agrosense/crop-advisor-backend/internal/catalog"

// DefaultTopN is how many crops a recommendation surfaces by default.
const DefaultTopN = 3

// RankAll scores every crop in the catalog against the region and
// returns the results sorted descending by suitability score. Crops the
// scorer cannot evaluate are omitted. Iteration follows the catalog's
// declaration order, so ties sort deterministically.
func RankAll(features RegionFeatures) []Result {
	results := make([]Result, 0, catalog.Len())

	for _, cropID := range catalog.Order() {
		if res, ok := Score(features, cropID); ok {
			results = append(results, *res)
		}
	}

	sortByScore(results)
	return results
}

// TopN returns the best n crops for the region. A non-positive n falls
// back to DefaultTopN.
func TopN(features RegionFeatures, n int) []Result {
	if n <= 0 {
		n = DefaultTopN
	}

	ranked := RankAll(features)
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
