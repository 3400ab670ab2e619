package service

import (
	"regexp"
	"strconv"
	"strings"

	"realtorai/internal/model"
)

// Keyword tables driving local extraction and weight inference. The
// vocabulary is unconstrained downstream; these sets only decide which
// tags a given text produces.

// weightKeywords maps each scoring dimension to the words that signal it
var weightKeywords = map[string][]string{
	model.DimBase:       {"品质", "房龄", "次新", "新房", "物业", "品牌", "开发商", "电梯"},
	model.DimLiving:     {"舒适", "舒适度", "安静", "绿化", "宜居", "居住", "环境", "采光"},
	model.DimTraffic:    {"地铁", "地铁站", "交通", "通勤", "公交", "轨交", "出行", "高架"},
	model.DimSchool:     {"学校", "学区", "小学", "中学", "幼儿园", "教育", "名校"},
	model.DimHospital:   {"医院", "医疗", "三甲", "就医", "体检"},
	model.DimPark:       {"公园", "绿地", "滨江", "江景", "湖景", "步道"},
	model.DimRestaurant: {"餐饮", "美食", "商场", "商业", "吃饭", "夜市", "超市"},
}

// keywordClass labels a group of trigger words; classes are ordered so
// the extracted tag lists are deterministic
type keywordClass struct {
	Label string
	Words []string
}

var purposeClasses = []keywordClass{
	{Label: "自住优先", Words: []string{"自住", "刚需", "首套", "婚房"}},
	{Label: "投资升值", Words: []string{"投资", "升值", "保值", "出租"}},
	{Label: "改善置换", Words: []string{"改善", "换房", "置换"}},
}

var familyStatusClasses = []keywordClass{
	{Label: "已婚", Words: []string{"已婚", "结婚", "夫妻", "两口"}},
	{Label: "有子女", Words: []string{"孩子", "小孩", "子女", "儿子", "女儿", "上学"}},
	{Label: "有老人", Words: []string{"老人", "父母", "养老", "同住"}},
}

var preferenceClasses = []keywordClass{
	{Label: "靠近地铁", Words: []string{"地铁", "轨交", "通勤"}},
	{Label: "靠近学校", Words: []string{"学校", "学区", "小学", "中学"}},
	{Label: "靠近公园", Words: []string{"公园", "绿地", "绿化"}},
	{Label: "靠近医院", Words: []string{"医院", "医疗"}},
	{Label: "环境安静", Words: []string{"安静", "清静", "闹中取静"}},
}

// matchClasses returns the labels whose trigger words appear in text,
// in class order; nil when nothing matched
func matchClasses(text string, classes []keywordClass) []string {
	var labels []string
	for _, class := range classes {
		for _, word := range class.Words {
			if strings.Contains(text, word) {
				labels = append(labels, class.Label)
				break
			}
		}
	}
	return labels
}

// Bedroom-count patterns: Chinese numerals and digits followed by a
// room-type marker (房/室/居)
var bedroomPatterns = []*regexp.Regexp{
	regexp.MustCompile(`([一二两三四五六七八九])房`),
	regexp.MustCompile(`([一二两三四五六七八九])室`),
	regexp.MustCompile(`([一二两三四五六七八九])居`),
	regexp.MustCompile(`([0-9])房`),
	regexp.MustCompile(`([0-9])室`),
	regexp.MustCompile(`([0-9])居`),
}

var chineseNumerals = map[string]int{
	"一": 1, "二": 2, "两": 2, "三": 3, "四": 4,
	"五": 5, "六": 6, "七": 7, "八": 8, "九": 9,
}

// ExtractBedroomCount recovers a bedroom count from text.
// Returns ok=false when no room-type pattern is present.
func ExtractBedroomCount(text string) (int, bool) {
	for _, pattern := range bedroomPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		if n, ok := chineseNumerals[match[1]]; ok {
			return n, true
		}
		if n, err := strconv.Atoi(match[1]); err == nil && n > 0 {
			return n, true
		}
	}
	return 0, false
}
