package service

import (
	"context"
	"math"
	"testing"

	"realtorai/internal/model"
)

func TestInferLocalEmphasizesMentionedDimensions(t *testing.T) {
	inf := NewWeightInferencer(nil)

	// Traffic mentioned twice, school once, everything else absent
	weights := inf.Infer(context.Background(), "要靠近地铁，通勤方便，最好是学区房", 1.0)

	if len(weights) != len(model.Dimensions) {
		t.Fatalf("expected %d dimensions, got %d", len(model.Dimensions), len(weights))
	}
	if weights[model.DimTraffic] <= weights[model.DimSchool] {
		t.Errorf("traffic (%f) should outweigh school (%f)",
			weights[model.DimTraffic], weights[model.DimSchool])
	}
	if weights[model.DimSchool] <= weights[model.DimPark] {
		t.Errorf("school (%f) should outweigh unmentioned park (%f)",
			weights[model.DimSchool], weights[model.DimPark])
	}

	var sum float64
	for _, dim := range model.Dimensions {
		if weights[dim] <= 0 {
			t.Errorf("%s weight is non-positive: %f", dim, weights[dim])
		}
		sum += weights[dim]
	}
	if math.Abs(sum-1.0) > 0.004 {
		t.Errorf("weights sum to %f, want ~1.0", sum)
	}
}

func TestInferLocalNoKeywordsYieldsUniform(t *testing.T) {
	inf := NewWeightInferencer(nil)

	weights := inf.Infer(context.Background(), "随便推荐一下", 1.0)

	uniform := 1.0 / float64(len(model.Dimensions))
	for _, dim := range model.Dimensions {
		if math.Abs(weights[dim]-uniform) > 0.001 {
			t.Errorf("%s = %f, want uniform %f", dim, weights[dim], uniform)
		}
	}
}

func TestInferLocalCountsOverlappingKeywordsOnce(t *testing.T) {
	inf := NewWeightInferencer(nil)

	// "地铁站" contains the shorter pattern "地铁"; a single mention must
	// count as one traffic hit, so both spellings infer the same vector
	long := inf.Infer(context.Background(), "要离地铁站近一点", 1.0)
	short := inf.Infer(context.Background(), "要离地铁近一点", 1.0)

	for _, dim := range model.Dimensions {
		if math.Abs(long[dim]-short[dim]) > 1e-9 {
			t.Errorf("%s = %f with suffix variant, %f without", dim, long[dim], short[dim])
		}
	}
}

func TestInferSharpensWithAlpha(t *testing.T) {
	inf := NewWeightInferencer(nil)
	text := "地铁通勤要方便"

	flat := inf.Infer(context.Background(), text, 1.0)
	sharp := inf.Infer(context.Background(), text, 3.0)

	flatRatio := flat[model.DimTraffic] / flat[model.DimPark]
	sharpRatio := sharp[model.DimTraffic] / sharp[model.DimPark]
	if sharpRatio <= flatRatio {
		t.Errorf("alpha=3 should sharpen: ratio %f vs %f", sharpRatio, flatRatio)
	}
}

func TestInferDefaultAlpha(t *testing.T) {
	inf := NewWeightInferencer(nil)

	// alpha <= 0 selects the default exponent, which must still produce a
	// full normalized vector
	weights := inf.Infer(context.Background(), "学区房", 0)

	var sum float64
	for _, dim := range model.Dimensions {
		sum += weights[dim]
	}
	if math.Abs(sum-1.0) > 0.004 {
		t.Errorf("weights sum to %f, want ~1.0", sum)
	}
	if weights[model.DimSchool] <= weights[model.DimHospital] {
		t.Errorf("school (%f) should outweigh hospital (%f)",
			weights[model.DimSchool], weights[model.DimHospital])
	}
}
