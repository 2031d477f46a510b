package matcher

// ScoreWeights carries the per-field point values and fallback weights used
// by the scoring function. The ordering name > sku > category > brand >
// description is load-bearing; the absolute point values are tunable.
type ScoreWeights struct {
	NameExact        float64
	SKUExact         float64
	CategoryExact    float64
	BrandExact       float64
	DescriptionExact float64

	NameSimilarity        float64
	DescriptionSimilarity float64

	Substring float64

	InStockBonus float64
}

// DefaultScoreWeights returns the production weight set.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		NameExact:             100,
		SKUExact:              90,
		CategoryExact:         85,
		BrandExact:            75,
		DescriptionExact:      60,
		NameSimilarity:        0.8,
		DescriptionSimilarity: 0.5,
		Substring:             40,
		InStockBonus:          1.10,
	}
}
