package services

// SquaredL2 returns the squared Euclidean distance between two vectors of
// equal length. Raw distances are compared directly everywhere inside the
// engine; only DistanceToScore converts to a bounded figure, and only at the
// boundary, to avoid compounding normalization error across queries.
func SquaredL2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}

// DistanceToScore maps a squared-L2 distance between normalized embeddings
// to a percentage match score, clamped to [0, 100]. Diagnostic only: the
// evaluator's overall score is authoritative for categorization and the two
// are never averaged.
func DistanceToScore(distance float64) float64 {
	score := (1 - distance/2) * 100
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
