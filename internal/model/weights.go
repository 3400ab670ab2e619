package model

import "math"

// Weight dimension keys. Every weight vector carries exactly these seven.
const (
	DimBase       = "base"
	DimLiving     = "living"
	DimTraffic    = "traffic"
	DimSchool     = "school"
	DimHospital   = "hospital"
	DimPark       = "park"
	DimRestaurant = "restaurant"
)

// Dimensions lists the weight keys in canonical order
var Dimensions = []string{
	DimBase,
	DimLiving,
	DimTraffic,
	DimSchool,
	DimHospital,
	DimPark,
	DimRestaurant,
}

// WeightVector maps the seven dimension keys to non-negative weights.
// A well-formed vector sums to 1.0 within rounding.
type WeightVector map[string]float64

// DefaultWeights returns the fixed fallback weight vector
func DefaultWeights() WeightVector {
	return WeightVector{
		DimBase:       0.15,
		DimLiving:     0.20,
		DimTraffic:    0.20,
		DimSchool:     0.15,
		DimHospital:   0.10,
		DimPark:       0.10,
		DimRestaurant: 0.10,
	}
}

// FillDefaults returns a copy with any missing dimension filled from the
// default vector. Unknown keys are dropped.
func (w WeightVector) FillDefaults() WeightVector {
	defaults := DefaultWeights()
	filled := make(WeightVector, len(Dimensions))
	for _, dim := range Dimensions {
		if v, ok := w[dim]; ok {
			filled[dim] = v
		} else {
			filled[dim] = defaults[dim]
		}
	}
	return filled
}

// Normalize returns a copy scaled so the weights sum to 1.
// A vector summing to zero is returned unchanged.
func (w WeightVector) Normalize() WeightVector {
	var total float64
	for _, dim := range Dimensions {
		total += w[dim]
	}
	normalized := make(WeightVector, len(Dimensions))
	if total == 0 {
		for _, dim := range Dimensions {
			normalized[dim] = w[dim]
		}
		return normalized
	}
	for _, dim := range Dimensions {
		normalized[dim] = w[dim] / total
	}
	return normalized
}

// Stretch raises every weight to the power alpha and renormalizes,
// widening the gap between emphasized and incidental dimensions.
// alpha = 1 is a no-op beyond normalization. The result is rounded to
// three decimals; the small sum drift from rounding is tolerated.
func (w WeightVector) Stretch(alpha float64) WeightVector {
	stretched := make(WeightVector, len(Dimensions))
	var total float64
	for _, dim := range Dimensions {
		v := math.Pow(w[dim], alpha)
		stretched[dim] = v
		total += v
	}
	for _, dim := range Dimensions {
		if total > 0 {
			stretched[dim] /= total
		}
		stretched[dim] = math.Round(stretched[dim]*1000) / 1000
	}
	return stretched
}

// Score combines per-dimension sub-scores into a final score, rounded to
// two decimals. get returns the sub-score for a dimension key.
func (w WeightVector) Score(get func(dim string) float64) float64 {
	var sum float64
	for _, dim := range Dimensions {
		sum += w[dim] * get(dim)
	}
	return math.Round(sum*100) / 100
}
