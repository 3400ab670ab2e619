package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	ahocorasick "github.com/BobuSumisu/aho-corasick"

	"realtorai/internal/model"
)

// keywordBaseline is the floor given to every dimension before
// normalization, so dimensions with zero keyword hits still carry
// non-zero weight.
const keywordBaseline = 0.2

// WeightInferencer derives per-dimension scoring weights from a free-text
// requirement. The local path counts keyword hits; when an oracle client
// is supplied it is asked first and the local path serves as fallback.
type WeightInferencer struct {
	oracle *OracleClient

	trie  *ahocorasick.Trie
	dimOf map[string]string
}

// NewWeightInferencer builds an inferencer; oracle may be nil for a
// purely local setup
func NewWeightInferencer(oracle *OracleClient) *WeightInferencer {
	dimOf := make(map[string]string)
	var patterns []string
	for _, dim := range model.Dimensions {
		for _, word := range weightKeywords[dim] {
			lower := strings.ToLower(word)
			dimOf[lower] = dim
			patterns = append(patterns, lower)
		}
	}
	return &WeightInferencer{
		oracle: oracle,
		trie:   ahocorasick.NewTrieBuilder().AddStrings(patterns).Build(),
		dimOf:  dimOf,
	}
}

// Infer produces a normalized, sharpened weight vector for the given
// requirement text. alpha <= 0 selects the default sharpening exponent.
func (w *WeightInferencer) Infer(ctx context.Context, requirement string, alpha float64) model.WeightVector {
	if alpha <= 0 {
		alpha = 2.0
	}

	if w.oracle != nil && w.oracle.Enabled() {
		weights, err := w.inferWithOracle(ctx, requirement)
		if err == nil {
			return weights.Stretch(alpha)
		}
		log.Printf("⚠️ Oracle weight inference failed, falling back to keyword counting: %v", err)
	}

	return w.inferLocal(requirement).Stretch(alpha)
}

// inferLocal counts keyword hits per dimension over a single trie pass,
// applies the baseline floor and normalizes. Overlapping patterns
// ("地铁" inside "地铁站") count once: only the longest match per
// position is kept.
func (w *WeightInferencer) inferLocal(requirement string) model.WeightVector {
	longest := make(map[int64]string)
	for _, m := range w.trie.MatchString(strings.ToLower(requirement)) {
		if len(m.MatchString()) > len(longest[m.Pos()]) {
			longest[m.Pos()] = m.MatchString()
		}
	}

	counts := make(map[string]int)
	for _, word := range longest {
		if dim, ok := w.dimOf[word]; ok {
			counts[dim]++
		}
	}

	weights := make(model.WeightVector, len(model.Dimensions))
	for _, dim := range model.Dimensions {
		v := float64(counts[dim])
		if v == 0 {
			v = keywordBaseline
		}
		weights[dim] = v
	}
	return weights.Normalize()
}

const weightInferPrompt = `你是一个房产推荐系统的权重分析器。根据用户的购房需求，为以下7个维度分配权重（权重之和为1）：
- base: 房屋基础品质（房龄、物业、品牌）
- living: 居住舒适度（环境、绿化、安静）
- traffic: 交通便利度（地铁、通勤）
- school: 教育资源（学区、学校）
- hospital: 医疗资源（医院）
- park: 公园绿地
- restaurant: 商业餐饮

用户需求：%s

只返回JSON对象，例如：{"base": 0.15, "living": 0.20, "traffic": 0.20, "school": 0.15, "hospital": 0.10, "park": 0.10, "restaurant": 0.10}`

// inferWithOracle asks the oracle for a weight allocation. Keys may come
// back with a _score suffix; non-numeric values are dropped and missing
// dimensions are filled with defaults before normalization.
func (w *WeightInferencer) inferWithOracle(ctx context.Context, requirement string) (model.WeightVector, error) {
	raw, err := w.oracle.Complete(ctx, fmt.Sprintf(weightInferPrompt, requirement), false)
	if err != nil {
		return nil, err
	}

	weights := make(model.WeightVector)
	for key, value := range raw {
		dim := strings.TrimSuffix(key, "_score")
		num, ok := toWeightValue(value)
		if !ok {
			continue
		}
		for _, known := range model.Dimensions {
			if dim == known {
				weights[known] = num
				break
			}
		}
	}
	if len(weights) == 0 {
		return nil, fmt.Errorf("%w: no usable weight keys", ErrMalformedResponse)
	}
	return weights.FillDefaults().Normalize(), nil
}

func toWeightValue(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, n >= 0
	case int:
		return float64(n), n >= 0
	default:
		return 0, false
	}
}
