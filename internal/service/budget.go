package service

import (
	"math"
	"regexp"
	"strconv"
)

// Budget extraction works in ten-thousand-yuan units. Values above this
// threshold are assumed to be raw yuan and divided down. The threshold is
// a heuristic carried over from production traffic; revisit it against
// real input distributions before relying on it elsewhere.
const rawYuanThreshold = 10000

// The patterns are ordered most-specific first and the first match wins.
// RE2 has no lookarounds, so digit runs are anchored with consumed
// non-digit boundary classes to keep a four-digit window from binding
// inside a longer number.
var budgetPatterns = []*regexp.Regexp{
	// two-sided range with connector, optional 万/w unit markers
	regexp.MustCompile(`(?:^|[^0-9])(?P<min>[0-9]{2,4})\s*[万wW]?\s*(?:到|[-~—～至])\s*(?P<max>[0-9]{2,4})\s*[万wW]?(?:之间|以内|左右)?(?:[^0-9]|$)`),
	// two-sided range in raw yuan
	regexp.MustCompile(`(?:^|[^0-9])(?P<min>[0-9]{5,8})\s*(?:到|[-~—～至])\s*(?P<max>[0-9]{5,8})(?:[^0-9]|$)`),
	// single value with optional qualifier words
	regexp.MustCompile(`(?:^|[^0-9])(?:预算[是为在]?)?\s*(?P<value>[0-9]{2,4})\s*[万wW]?\s*(?:左右|以内)?(?:[^0-9]|$)`),
	// single large raw-yuan value
	regexp.MustCompile(`(?:^|[^0-9])(?P<value>[0-9]{6,8})(?:[^0-9万wW]|$)`),
}

// ExtractBudget recovers a [min, max] budget range from text, in
// ten-thousand-yuan units. A single recognized value is expanded to a
// symmetric range. Returns ok=false when nothing is recognized, which
// downstream treats as unconstrained.
func ExtractBudget(text string) (min, max int, ok bool) {
	for _, pattern := range budgetPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		groups := make(map[string]string)
		for i, name := range pattern.SubexpNames() {
			if name != "" && i < len(match) {
				groups[name] = match[i]
			}
		}

		if minStr, hasMin := groups["min"]; hasMin {
			minVal, _ := strconv.Atoi(minStr)
			maxVal, _ := strconv.Atoi(groups["max"])
			if minVal > rawYuanThreshold && maxVal > rawYuanThreshold {
				minVal /= rawYuanThreshold
				maxVal /= rawYuanThreshold
			}
			// Reversed ranges ("800万到500万") still yield min <= max
			if minVal > maxVal {
				minVal, maxVal = maxVal, minVal
			}
			return minVal, maxVal, true
		}

		if valueStr, hasValue := groups["value"]; hasValue {
			value, _ := strconv.Atoi(valueStr)
			if value > rawYuanThreshold {
				value /= rawYuanThreshold
			}
			min, max = ExpandBudget(value)
			return min, max, true
		}
	}
	return 0, 0, false
}

// ExpandBudget synthesizes a symmetric range around a single budget
// value: ±10%, but never narrower than ±50
func ExpandBudget(value int) (min, max int) {
	delta := int(math.Round(float64(value) * 0.10))
	if delta < 50 {
		delta = 50
	}
	return value - delta, value + delta
}
