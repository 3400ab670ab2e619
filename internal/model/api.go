package model

// RecommendRequest asks for a ranked list of communities or circles.
// ParsedRequirement is mandatory; weights, limit and random factor are
// optional and fall back to server defaults.
type RecommendRequest struct {
	ParsedRequirement *StructuredRequirement `json:"parsed_requirement" binding:"required"`
	CustomWeights     WeightVector           `json:"custom_weights,omitempty"`
	Limit             int                    `json:"limit,omitempty"`
	RandomFactor      *float64               `json:"random_factor,omitempty"`
}

// RecommendResponse carries the ranked communities
type RecommendResponse struct {
	SearchID       string                    `json:"search_id"`
	TopCommunities []CommunityRecommendation `json:"top_communities"`
	Took           int64                     `json:"took_ms"`
}

// CircleRecommendResponse carries the ranked circles
type CircleRecommendResponse struct {
	SearchID   string                 `json:"search_id"`
	TopCircles []CircleRecommendation `json:"top_circles"`
	Took       int64                  `json:"took_ms"`
}

// WeightInferRequest asks for a weight vector inferred from free text
type WeightInferRequest struct {
	Requirement string  `json:"requirement" binding:"required"`
	Alpha       float64 `json:"alpha,omitempty"`
}

// WeightInferResponse carries the inferred weight vector
type WeightInferResponse struct {
	Weights WeightVector `json:"weights"`
}

// CommunityScoreRequest looks up score cards by community id
type CommunityScoreRequest struct {
	CommunityIDs []string `json:"community_ids" binding:"required"`
}

// CommunityScoreResponse carries the looked-up score cards
type CommunityScoreResponse struct {
	Communities []CommunityScore `json:"communities"`
}

// CircleScoreRequest looks up score cards by circle code
type CircleScoreRequest struct {
	CircleCodes []string `json:"circle_codes" binding:"required"`
}

// CircleScoreResponse carries the looked-up circle score cards
type CircleScoreResponse struct {
	Circles []CircleScore `json:"circles"`
}

// SuggestResponse carries ranked autocomplete candidates
type SuggestResponse struct {
	Suggestions []CommunitySuggestion `json:"suggestions"`
}

// MarketStatsResponse wraps the file-backed market statistics snapshot
type MarketStatsResponse struct {
	Data map[string]interface{} `json:"data"`
}

// MarketTrendResponse wraps the oracle-sourced market trend report
type MarketTrendResponse struct {
	Data map[string]interface{} `json:"data"`
}
