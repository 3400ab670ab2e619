package model

import (
	"encoding/json"
	"fmt"
)

// RawTextRequest carries a free-text housing requirement
type RawTextRequest struct {
	Text string `json:"text" binding:"required"`
}

// BudgetRange is a [min, max] budget in ten-thousand-yuan units.
// Either bound may be nil, meaning unconstrained on that side.
// Serialized as a two-element JSON array for compatibility with
// upstream consumers, e.g. [750, 850].
type BudgetRange struct {
	Min *int
	Max *int
}

// MarshalJSON implements json.Marshaler
func (b BudgetRange) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]*int{b.Min, b.Max})
}

// UnmarshalJSON implements json.Unmarshaler
func (b *BudgetRange) UnmarshalJSON(data []byte) error {
	var pair []*int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("budget must be a [min, max] array: %w", err)
	}
	if len(pair) > 2 {
		return fmt.Errorf("budget must have at most two elements, got %d", len(pair))
	}
	b.Min, b.Max = nil, nil
	if len(pair) > 0 {
		b.Min = pair[0]
	}
	if len(pair) > 1 {
		b.Max = pair[1]
	}
	return nil
}

// IsZero reports whether neither bound is set
func (b *BudgetRange) IsZero() bool {
	return b == nil || (b.Min == nil && b.Max == nil)
}

// StructuredRequirement is the parsed form of a housing requirement.
// It is built once per request cycle and never mutated afterwards.
type StructuredRequirement struct {
	// Region is a derived free-text label, not authoritative
	Region *string `json:"region,omitempty"`

	// District and circle names in first-seen order, with their codes.
	// Codes may be shorter than names: unresolvable names are dropped.
	DistrictNames []string `json:"district_names,omitempty"`
	DistrictCodes []string `json:"district_codes,omitempty"`
	CircleNames   []string `json:"circle_names,omitempty"`
	CircleCodes   []string `json:"circle_codes,omitempty"`

	Budget *BudgetRange `json:"budget,omitempty"`

	BedroomCount *int `json:"bedroom_count,omitempty"`

	Purpose      []string `json:"purpose,omitempty"`
	FamilyStatus []string `json:"family_status,omitempty"`
	Preferences  []string `json:"preferences,omitempty"`
}
