package domain

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// minContentWordLen filters out articles, prepositions and other glue
// words when comparing a candidate title against a POI name.
const minContentWordLen = 4

var htmlTagRe = regexp.MustCompile(`<[^>]*>?`)

// StripHTML removes markup from a search snippet.
// Example: `the <span class="searchmatch">Old</span> Fort` -> `the Old Fort`
func StripHTML(s string) string {
	return htmlTagRe.ReplaceAllString(s, "")
}

// ContentWords splits a name into lowercase content words, dropping
// punctuation and words shorter than four characters.
// Example: "St. Michael's Cathedral" -> ["michael", "cathedral"]
func ContentWords(name string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, name)

	words := make([]string, 0, 4)
	for _, w := range strings.Fields(cleaned) {
		// Length in runes, so a short diacritic word does not slip
		// through on its byte count.
		if utf8.RuneCountInString(w) >= minContentWordLen {
			words = append(words, w)
		}
	}
	return words
}

// NameOverlap reports whether a candidate title is lexically related to
// the POI: either the title contains the POI name verbatim, or it shares
// a content word with the POI name or its English alias.
func NameOverlap(title, poiName, englishName string) bool {
	titleLower := strings.ToLower(title)

	if poiName != "" && strings.Contains(titleLower, strings.ToLower(poiName)) {
		return true
	}

	words := ContentWords(poiName)
	words = append(words, ContentWords(englishName)...)
	if len(words) == 0 {
		// A name made entirely of short words carries no usable signal;
		// let the city-context check decide.
		return true
	}
	for _, w := range words {
		if strings.Contains(titleLower, w) {
			return true
		}
	}
	return false
}

// CityContext reports whether a candidate is anchored to the searched
// city: the city appears in the title or the snippet, or the title
// contains the POI name verbatim (a sufficiently specific title is
// accepted without explicit city context).
func CityContext(title, snippet, cityName, poiName string) bool {
	titleLower := strings.ToLower(title)
	cityLower := strings.ToLower(cityName)

	if strings.Contains(titleLower, cityLower) {
		return true
	}
	if strings.Contains(strings.ToLower(StripHTML(snippet)), cityLower) {
		return true
	}
	return poiName != "" && strings.Contains(titleLower, strings.ToLower(poiName))
}

// TitleIsCity rejects the city's own article as a POI match.
func TitleIsCity(title, cityName string) bool {
	return strings.EqualFold(strings.TrimSpace(title), strings.TrimSpace(cityName))
}

// disambiguationMarkers are phrases identifying list-of-homonyms pages
// in the supported encyclopedia languages.
var disambiguationMarkers = []string{
	"(disambiguation)",
	"(dezambiguizare)",
	"may refer to",
	"se poate referi la",
}

// IsDisambiguation reports whether a candidate looks like a
// disambiguation page rather than an article about one subject.
func IsDisambiguation(title, snippet string) bool {
	t := strings.ToLower(title)
	s := strings.ToLower(StripHTML(snippet))
	for _, m := range disambiguationMarkers {
		if strings.Contains(t, m) || strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// KeywordRule names two sets of mutually exclusive keywords. When the
// POI name matches one side and the candidate text matches the other,
// the candidate is about a different subject sharing the name.
//
// The built-in table covers denominational mismatches (a "Cathedral"
// existing in many confessions); deployments can extend it via the
// rules file.
type KeywordRule struct {
	A []string `yaml:"a"`
	B []string `yaml:"b"`
}

// DefaultKeywordRules is used when no rules file is configured.
func DefaultKeywordRules() []KeywordRule {
	return []KeywordRule{
		{
			A: []string{"orthodox", "ortodox"},
			B: []string{"catholic", "catolic", "roman-catholic", "romano-catolic"},
		},
		{
			A: []string{"orthodox", "ortodox"},
			B: []string{"lutheran", "luteran", "evangelical", "evanghelic"},
		},
		{
			A: []string{"catholic", "catolic"},
			B: []string{"reformed", "reformat", "calvinist"},
		},
		{
			A: []string{"synagogue", "sinagog"},
			B: []string{"church", "biseric", "cathedral", "catedral"},
		},
	}
}

// Conflicts reports whether poiName and candidateText sit on opposite
// sides of any rule.
func Conflicts(rules []KeywordRule, poiName, candidateText string) bool {
	poi := strings.ToLower(poiName)
	cand := strings.ToLower(StripHTML(candidateText))

	for _, rule := range rules {
		if matchesAny(poi, rule.A) && matchesAny(cand, rule.B) && !matchesAny(cand, rule.A) {
			return true
		}
		if matchesAny(poi, rule.B) && matchesAny(cand, rule.A) && !matchesAny(cand, rule.B) {
			return true
		}
	}
	return false
}

func matchesAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// nonRepresentativeTokens flag assets that are graphics about a place
// rather than pictures of it.
var nonRepresentativeTokens = []string{"icon", "logo", "map", "location"}

// UsableImage rejects vector/icon-style assets whose filename marks
// them as non-representative.
func UsableImage(imageURL string) bool {
	if imageURL == "" {
		return false
	}
	lower := strings.ToLower(imageURL)
	if strings.HasSuffix(lower, ".svg") || strings.Contains(lower, ".svg.") {
		return false
	}
	for _, tok := range nonRepresentativeTokens {
		if strings.Contains(lower, tok) {
			return false
		}
	}
	return true
}
