package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	ahocorasick "github.com/BobuSumisu/aho-corasick"
)

// Gazetteer recognizes district and circle names (and their common suffix
// variants) inside arbitrary text and resolves them to stable codes.
// It is built once at startup and read-only afterwards, so it is safe to
// share across concurrent requests.
type Gazetteer struct {
	districtCodes map[string]string
	circleCodes   map[string]string

	// lowercased registered variant -> canonical name
	districtCanon map[string]string
	circleCanon   map[string]string

	districtTrie *ahocorasick.Trie
	circleTrie   *ahocorasick.Trie
}

// Suffix variants registered for every name. Matching "浦东", "浦东区"
// and "浦东新区" all canonicalize back to "浦东".
var (
	districtSuffixes = []string{"区", "新区"}
	circleSuffixes   = []string{"板块", "片区", "商圈"}
)

// NewGazetteer compiles a gazetteer from name→code tables
func NewGazetteer(districts, circles map[string]string) *Gazetteer {
	g := &Gazetteer{
		districtCodes: districts,
		circleCodes:   circles,
		districtCanon: make(map[string]string),
		circleCanon:   make(map[string]string),
	}
	g.districtTrie = buildTrie(districts, districtSuffixes, g.districtCanon)
	g.circleTrie = buildTrie(circles, circleSuffixes, g.circleCanon)
	return g
}

func buildTrie(names map[string]string, suffixes []string, canon map[string]string) *ahocorasick.Trie {
	patterns := make([]string, 0, len(names)*(len(suffixes)+1))
	for name := range names {
		variants := append([]string{name}, suffixed(name, suffixes)...)
		for _, variant := range variants {
			lower := strings.ToLower(variant)
			canon[lower] = name
			patterns = append(patterns, lower)
		}
	}
	return ahocorasick.NewTrieBuilder().AddStrings(patterns).Build()
}

func suffixed(name string, suffixes []string) []string {
	out := make([]string, len(suffixes))
	for i, s := range suffixes {
		out[i] = name + s
	}
	return out
}

// Extract pulls district and circle mentions out of text, canonicalized
// and deduplicated, in order of first appearance. All registered variants
// are searched in a single pass per trie; matching is case-insensitive.
func (g *Gazetteer) Extract(text string) (districts, circles []string) {
	lower := strings.ToLower(text)
	districts = g.scan(g.districtTrie, g.districtCanon, lower)
	circles = g.scan(g.circleTrie, g.circleCanon, lower)
	return districts, circles
}

func (g *Gazetteer) scan(trie *ahocorasick.Trie, canon map[string]string, lower string) []string {
	matches := trie.MatchString(lower)
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Pos() < matches[j].Pos()
	})

	names := []string{}
	seen := make(map[string]bool)
	for _, m := range matches {
		name, ok := canon[m.MatchString()]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// DistrictCode resolves a canonical district name to its code
func (g *Gazetteer) DistrictCode(name string) (string, bool) {
	code, ok := g.districtCodes[strings.TrimSpace(name)]
	return code, ok
}

// CircleCode resolves a canonical circle name to its code
func (g *Gazetteer) CircleCode(name string) (string, bool) {
	code, ok := g.circleCodes[strings.TrimSpace(name)]
	return code, ok
}

// ResolveDistricts maps names to codes, silently dropping names with no
// resolvable code, so the result may be shorter than the input
func (g *Gazetteer) ResolveDistricts(names []string) []string {
	codes := []string{}
	for _, name := range names {
		if code, ok := g.DistrictCode(name); ok {
			codes = append(codes, code)
		}
	}
	return codes
}

// ResolveCircles maps circle names to codes, dropping unresolvable names
func (g *Gazetteer) ResolveCircles(names []string) []string {
	codes := []string{}
	for _, name := range names {
		if code, ok := g.CircleCode(name); ok {
			codes = append(codes, code)
		}
	}
	return codes
}

// LoadGazetteerCSV builds a gazetteer from district and circle CSV files
// with "name,code" header rows, matching the upstream data exports
func LoadGazetteerCSV(districtPath, circlePath string) (*Gazetteer, error) {
	districts, err := readNameCodeCSV(districtPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load districts: %w", err)
	}
	circles, err := readNameCodeCSV(circlePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load circles: %w", err)
	}
	return NewGazetteer(districts, circles), nil
}

func readNameCodeCSV(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}
	nameIdx, codeIdx := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF")) {
		case "name":
			nameIdx = i
		case "code":
			codeIdx = i
		}
	}
	if nameIdx < 0 || codeIdx < 0 {
		return nil, fmt.Errorf("csv %s missing name/code columns", path)
	}

	table := make(map[string]string)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		name := strings.TrimSpace(record[nameIdx])
		code := strings.TrimSpace(record[codeIdx])
		if name != "" && code != "" {
			table[name] = code
		}
	}
	return table, nil
}

// DefaultGazetteer returns a gazetteer over the built-in Shanghai
// district and circle tables, used when no CSV paths are configured
func DefaultGazetteer() *Gazetteer {
	districts := map[string]string{
		"黄浦": "310101",
		"徐汇": "310104",
		"长宁": "310105",
		"静安": "310106",
		"普陀": "310107",
		"虹口": "310109",
		"杨浦": "310110",
		"闵行": "310112",
		"宝山": "310113",
		"嘉定": "310114",
		"浦东": "310115",
		"金山": "310116",
		"松江": "310117",
		"青浦": "310118",
		"奉贤": "310120",
		"崇明": "310151",
	}
	circles := map[string]string{
		"陆家嘴":  "613000101",
		"联洋":   "613000105",
		"金桥":   "613000112",
		"世纪公园": "613000118",
		"张江":   "613000136",
		"徐家汇":  "613000201",
		"南京西路": "613000301",
		"大宁":   "613000305",
		"五角场":  "613000401",
		"古北":   "613000501",
		"莘庄":   "613000601",
	}
	return NewGazetteer(districts, circles)
}
