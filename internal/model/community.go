package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// CommunityRecommendation is one ranked community from the scored relation
type CommunityRecommendation struct {
	ID              string   `json:"id" db:"id"`
	Name            string   `json:"name" db:"name"`
	DistrictCode    *string  `json:"district_code,omitempty" db:"district_code"`
	DistrictName    *string  `json:"district_name,omitempty" db:"district_name"`
	CircleCode      *string  `json:"circle_code,omitempty" db:"circle_code"`
	CircleName      *string  `json:"circle_name,omitempty" db:"circle_name"`
	AvgListingPrice *float64 `json:"avg_listing_price,omitempty" db:"avg_listing_price"`
	BaseScore       *float64 `json:"base_score,omitempty" db:"base_score"`
	LivingScore     *float64 `json:"living_score,omitempty" db:"living_score"`
	TrafficScore    *float64 `json:"traffic_score,omitempty" db:"traffic_score"`
	SchoolScore     *float64 `json:"school_score,omitempty" db:"school_score"`
	HospitalScore   *float64 `json:"hospital_score,omitempty" db:"hospital_score"`
	ParkScore       *float64 `json:"park_score,omitempty" db:"park_score"`
	RestaurantScore *float64 `json:"restaurant_score,omitempty" db:"restaurant_score"`
	FinalScore      float64  `json:"final_score" db:"final_score"`
}

// CircleRecommendation is one ranked circle with its aggregated scores and
// the latest transaction statistics joined in for display
type CircleRecommendation struct {
	CircleCode         string   `json:"circle_code" db:"circle_code"`
	CircleName         string   `json:"circle_name" db:"circle_name"`
	DistrictName       *string  `json:"district_name,omitempty" db:"district_name"`
	AvgListPrice       *float64 `json:"avg_list_price,omitempty" db:"avg_list_price"`
	AvgSignPrice       *float64 `json:"avg_sign_price,omitempty" db:"avg_sign_price"`
	TransactionCount   *int     `json:"transaction_count,omitempty" db:"transaction_count"`
	CommunityCount     *int     `json:"community_count,omitempty" db:"community_count"`
	AvgBaseScore       *float64 `json:"avg_base_score,omitempty" db:"avg_base_score"`
	AvgLivingScore     *float64 `json:"avg_living_score,omitempty" db:"avg_living_score"`
	AvgTrafficScore    *float64 `json:"avg_traffic_score,omitempty" db:"avg_traffic_score"`
	AvgSchoolScore     *float64 `json:"avg_school_score,omitempty" db:"avg_school_score"`
	AvgHospitalScore   *float64 `json:"avg_hospital_score,omitempty" db:"avg_hospital_score"`
	AvgParkScore       *float64 `json:"avg_park_score,omitempty" db:"avg_park_score"`
	AvgRestaurantScore *float64 `json:"avg_restaurant_score,omitempty" db:"avg_restaurant_score"`
	FinalScore         float64  `json:"final_score" db:"final_score"`
}

// CommunityScore is the full score card for a single community, merging
// the ranking row with the latest listing-price month-over-month row
type CommunityScore struct {
	ID              string   `json:"id" db:"id"`
	Name            string   `json:"name" db:"name"`
	Alias           *string  `json:"alias,omitempty" db:"alias"`
	DistrictCode    *string  `json:"district_code,omitempty" db:"district_code"`
	DistrictName    *string  `json:"district_name,omitempty" db:"district_name"`
	CircleCode      *string  `json:"circle_code,omitempty" db:"circle_code"`
	CircleName      *string  `json:"circle_name,omitempty" db:"circle_name"`
	Ring            *string  `json:"ring,omitempty" db:"ring"`
	YearRange       *string  `json:"year_range,omitempty" db:"year_range"`
	Grade           *string  `json:"grade,omitempty" db:"grade"`
	BaseScore       *float64 `json:"base_score,omitempty" db:"base_score"`
	LivingScore     *float64 `json:"living_score,omitempty" db:"living_score"`
	TrafficScore    *float64 `json:"traffic_score,omitempty" db:"traffic_score"`
	SchoolScore     *float64 `json:"school_score,omitempty" db:"school_score"`
	HospitalScore   *float64 `json:"hospital_score,omitempty" db:"hospital_score"`
	ParkScore       *float64 `json:"park_score,omitempty" db:"park_score"`
	RestaurantScore *float64 `json:"restaurant_score,omitempty" db:"restaurant_score"`
	AvgListingPrice *float64 `json:"avg_listing_price,omitempty" db:"avg_listing_price"`
	LatestMonth     *string  `json:"latest_month,omitempty" db:"latest_month"`
	LatestAvgPrice  *float64 `json:"latest_avg_price,omitempty" db:"latest_avg_price"`
	PrevAvgPrice    *float64 `json:"prev_avg_price,omitempty" db:"prev_avg_price"`
	MomRatio        *float64 `json:"mom_ratio,omitempty" db:"mom_ratio"`
}

// CircleScore is the full score card for a single circle: averaged
// sub-scores with city-wide rank and percentile per dimension
type CircleScore struct {
	DistrictCode           *string  `json:"district_code,omitempty" db:"district_code"`
	DistrictName           *string  `json:"district_name,omitempty" db:"district_name"`
	CircleCode             string   `json:"circle_code" db:"circle_code"`
	CircleName             string   `json:"circle_name" db:"circle_name"`
	CommunityCount         *int     `json:"community_count,omitempty" db:"community_count"`
	AvgBaseScore           *float64 `json:"avg_base_score,omitempty" db:"avg_base_score"`
	AvgBaseScoreRank       *int     `json:"avg_base_score_rank,omitempty" db:"avg_base_score_rank"`
	AvgBaseScorePct        *float64 `json:"avg_base_score_percentile,omitempty" db:"avg_base_score_percentile"`
	AvgLivingScore         *float64 `json:"avg_living_score,omitempty" db:"avg_living_score"`
	AvgLivingScoreRank     *int     `json:"avg_living_score_rank,omitempty" db:"avg_living_score_rank"`
	AvgLivingScorePct      *float64 `json:"avg_living_score_percentile,omitempty" db:"avg_living_score_percentile"`
	AvgTrafficScore        *float64 `json:"avg_traffic_score,omitempty" db:"avg_traffic_score"`
	AvgTrafficScoreRank    *int     `json:"avg_traffic_score_rank,omitempty" db:"avg_traffic_score_rank"`
	AvgTrafficScorePct     *float64 `json:"avg_traffic_score_percentile,omitempty" db:"avg_traffic_score_percentile"`
	AvgSchoolScore         *float64 `json:"avg_school_score,omitempty" db:"avg_school_score"`
	AvgSchoolScoreRank     *int     `json:"avg_school_score_rank,omitempty" db:"avg_school_score_rank"`
	AvgSchoolScorePct      *float64 `json:"avg_school_score_percentile,omitempty" db:"avg_school_score_percentile"`
	AvgHospitalScore       *float64 `json:"avg_hospital_score,omitempty" db:"avg_hospital_score"`
	AvgHospitalScoreRank   *int     `json:"avg_hospital_score_rank,omitempty" db:"avg_hospital_score_rank"`
	AvgHospitalScorePct    *float64 `json:"avg_hospital_score_percentile,omitempty" db:"avg_hospital_score_percentile"`
	AvgParkScore           *float64 `json:"avg_park_score,omitempty" db:"avg_park_score"`
	AvgParkScoreRank       *int     `json:"avg_park_score_rank,omitempty" db:"avg_park_score_rank"`
	AvgParkScorePct        *float64 `json:"avg_park_score_percentile,omitempty" db:"avg_park_score_percentile"`
	AvgRestaurantScore     *float64 `json:"avg_restaurant_score,omitempty" db:"avg_restaurant_score"`
	AvgRestaurantScoreRank *int     `json:"avg_restaurant_score_rank,omitempty" db:"avg_restaurant_score_rank"`
	AvgRestaurantScorePct  *float64 `json:"avg_restaurant_score_percentile,omitempty" db:"avg_restaurant_score_percentile"`
	LatestMonth            *string  `json:"latest_month,omitempty" db:"latest_month"`
	LatestAvgPrice         *float64 `json:"latest_avg_price,omitempty" db:"latest_avg_price"`
	PrevAvgPrice           *float64 `json:"prev_avg_price,omitempty" db:"prev_avg_price"`
	MomRatio               *float64 `json:"mom_ratio,omitempty" db:"mom_ratio"`
}

// CommunitySuggestion is one autocomplete candidate.
// MatchType: 0 = name prefix, 1 = alias prefix, 2 = fuzzy substring.
type CommunitySuggestion struct {
	ID           string  `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	Alias        *string `json:"alias,omitempty" db:"alias"`
	DisplayName  string  `json:"display_name" db:"-"`
	CircleCode   *string `json:"circle_code,omitempty" db:"circle_code"`
	CircleName   *string `json:"circle_name,omitempty" db:"circle_name"`
	DistrictCode *string `json:"district_code,omitempty" db:"district_code"`
	DistrictName *string `json:"district_name,omitempty" db:"district_name"`
	MatchType    int     `json:"-" db:"match_type"`
}

// MarketOverview is the latest market snapshot row
type MarketOverview struct {
	ID           int64     `json:"id" db:"id"`
	SnapshotDate time.Time `json:"snapshot_date" db:"snapshot_date"`
	OverviewData JSONMap   `json:"overview_data" db:"overview_data"`
	DataSource   string    `json:"data_source" db:"data_source"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// PropertyPolicy is the latest purchase-policy row
type PropertyPolicy struct {
	ID         int64     `json:"id" db:"id"`
	PolicyDate time.Time `json:"policy_date" db:"policy_date"`
	PolicyData JSONMap   `json:"policy_data" db:"policy_data"`
	DataSource string    `json:"data_source" db:"data_source"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// JSONMap represents a JSON object column
type JSONMap map[string]interface{}

// Value implements driver.Valuer interface
func (j JSONMap) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), j)
	}
	return json.Unmarshal(bytes, j)
}
