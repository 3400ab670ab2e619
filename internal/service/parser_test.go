package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestParseFullRequirement(t *testing.T) {
	p := NewRequirementParser(DefaultGazetteer(), nil)

	req, err := p.Parse(context.Background(),
		"我们夫妻俩带孩子，想在浦东新区的张江买个三房自住，预算750万到850万，最好有学区")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if !reflect.DeepEqual(req.DistrictNames, []string{"浦东"}) {
		t.Errorf("district names = %v", req.DistrictNames)
	}
	if !reflect.DeepEqual(req.DistrictCodes, []string{"310115"}) {
		t.Errorf("district codes = %v", req.DistrictCodes)
	}
	if !reflect.DeepEqual(req.CircleNames, []string{"张江"}) {
		t.Errorf("circle names = %v", req.CircleNames)
	}
	if !reflect.DeepEqual(req.CircleCodes, []string{"613000136"}) {
		t.Errorf("circle codes = %v", req.CircleCodes)
	}

	if req.Region == nil || *req.Region != "浦东、张江" {
		t.Errorf("region = %v", req.Region)
	}

	if req.Budget == nil || req.Budget.Min == nil || req.Budget.Max == nil {
		t.Fatal("budget missing")
	}
	if *req.Budget.Min != 750 || *req.Budget.Max != 850 {
		t.Errorf("budget = [%d, %d], want [750, 850]", *req.Budget.Min, *req.Budget.Max)
	}

	if req.BedroomCount == nil || *req.BedroomCount != 3 {
		t.Errorf("bedroom count = %v, want 3", req.BedroomCount)
	}

	if !reflect.DeepEqual(req.Purpose, []string{"自住优先"}) {
		t.Errorf("purpose = %v", req.Purpose)
	}
	if !reflect.DeepEqual(req.FamilyStatus, []string{"已婚", "有子女"}) {
		t.Errorf("family status = %v", req.FamilyStatus)
	}
	if !reflect.DeepEqual(req.Preferences, []string{"靠近学校"}) {
		t.Errorf("preferences = %v", req.Preferences)
	}
}

func TestParseSparseRequirement(t *testing.T) {
	p := NewRequirementParser(DefaultGazetteer(), nil)

	req, err := p.Parse(context.Background(), "帮我看看房子")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if req.Region != nil {
		t.Errorf("region should be nil, got %v", *req.Region)
	}
	if req.Budget != nil {
		t.Error("budget should be nil")
	}
	if req.BedroomCount != nil {
		t.Error("bedroom count should be nil")
	}
	if len(req.DistrictCodes) != 0 || len(req.CircleCodes) != 0 {
		t.Errorf("codes should be empty: %v %v", req.DistrictCodes, req.CircleCodes)
	}
}

func TestParseEmptyTextIsValidationError(t *testing.T) {
	p := NewRequirementParser(DefaultGazetteer(), nil)

	for _, text := range []string{"", "   ", "\n\t"} {
		if _, err := p.Parse(context.Background(), text); !errors.Is(err, ErrValidation) {
			t.Errorf("Parse(%q) error = %v, want ErrValidation", text, err)
		}
	}
}
