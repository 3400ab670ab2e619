package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"realtorai/internal/model"
)

// RequirementParser turns free-text housing requirements into structured
// requirements. Local extraction (gazetteer, regex, keyword classes)
// always runs; when an oracle client is available it fills fields the
// local pass left empty.
type RequirementParser struct {
	gazetteer *Gazetteer
	oracle    *OracleClient
}

// NewRequirementParser wires a parser; oracle may be nil
func NewRequirementParser(gazetteer *Gazetteer, oracle *OracleClient) *RequirementParser {
	return &RequirementParser{gazetteer: gazetteer, oracle: oracle}
}

// Parse extracts a structured requirement from text.
// Empty or whitespace-only text is a validation error.
func (p *RequirementParser) Parse(ctx context.Context, text string) (*model.StructuredRequirement, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: requirement text is empty", ErrValidation)
	}

	req := &model.StructuredRequirement{}

	districts, circles := p.gazetteer.Extract(text)
	req.DistrictNames = districts
	req.CircleNames = circles
	req.DistrictCodes = p.gazetteer.ResolveDistricts(districts)
	req.CircleCodes = p.gazetteer.ResolveCircles(circles)
	if region := buildRegion(districts, circles); region != "" {
		req.Region = &region
	}

	if min, max, ok := ExtractBudget(text); ok {
		req.Budget = &model.BudgetRange{Min: &min, Max: &max}
	}

	if n, ok := ExtractBedroomCount(text); ok {
		req.BedroomCount = &n
	}

	req.Purpose = matchClasses(text, purposeClasses)
	req.FamilyStatus = matchClasses(text, familyStatusClasses)
	req.Preferences = matchClasses(text, preferenceClasses)

	if p.oracle != nil && p.oracle.Enabled() {
		p.enrich(ctx, text, req)
	}

	return req, nil
}

// buildRegion joins recognized location names into a display region
func buildRegion(districts, circles []string) string {
	names := append(append([]string{}, districts...), circles...)
	return strings.Join(names, "、")
}

const parsePrompt = `从下面的购房需求中提取结构化信息，返回JSON对象，字段（缺失的字段省略）：
- region: 区域描述（字符串）
- budget: [最低, 最高] 预算区间，单位万元（两个数字的数组）
- bedroom_count: 卧室数量（整数）
- purpose: 购房目的列表（字符串数组）
- family_status: 家庭情况列表（字符串数组）
- preferences: 偏好列表（字符串数组）

购房需求：%s

只返回JSON对象。`

// enrich asks the oracle for fields the local pass missed. Oracle
// failures are logged and ignored; local extraction always wins on
// conflicts.
func (p *RequirementParser) enrich(ctx context.Context, text string, req *model.StructuredRequirement) {
	raw, err := p.oracle.Complete(ctx, fmt.Sprintf(parsePrompt, text), false)
	if err != nil {
		log.Printf("⚠️ Oracle requirement enrichment failed: %v", err)
		return
	}

	if req.Region == nil {
		if region, ok := raw["region"].(string); ok && strings.TrimSpace(region) != "" {
			region = strings.TrimSpace(region)
			req.Region = &region
		}
	}
	if req.Budget == nil {
		if pair, ok := raw["budget"].([]interface{}); ok && len(pair) == 2 {
			if min, okMin := toInt(pair[0]); okMin {
				if max, okMax := toInt(pair[1]); okMax && min <= max {
					req.Budget = &model.BudgetRange{Min: &min, Max: &max}
				}
			}
		}
	}
	if req.BedroomCount == nil {
		if n, ok := toInt(raw["bedroom_count"]); ok && n > 0 {
			req.BedroomCount = &n
		}
	}
	if len(req.Purpose) == 0 {
		req.Purpose = toStringList(raw["purpose"])
	}
	if len(req.FamilyStatus) == 0 {
		req.FamilyStatus = toStringList(raw["family_status"])
	}
	if len(req.Preferences) == 0 {
		req.Preferences = toStringList(raw["preferences"])
	}
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}

func toStringList(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}
