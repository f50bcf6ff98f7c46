package domain

import (
	"testing"
)

func TestContentWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "punctuation stripped",
			input:    "St. Michael's Cathedral",
			expected: []string{"michael", "cathedral"},
		},
		{
			name:     "short words dropped",
			input:    "The Old Fort",
			expected: []string{"fort"},
		},
		{
			name:     "diacritic words measured in runes",
			input:    "Așa Biserica Bună",
			expected: []string{"biserica", "bună"},
		},
		{
			name:     "empty input",
			input:    "",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ContentWords(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("ContentWords() = %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("ContentWords()[%d] = %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestNameOverlap(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		poiName     string
		englishName string
		expected    bool
	}{
		{
			name:     "shared content word",
			title:    "Charleville Citadel",
			poiName:  "Citadel of the Moselle",
			expected: true,
		},
		{
			name:     "verbatim name in title",
			title:    "Old Fort (Givet)",
			poiName:  "Old Fort",
			expected: true,
		},
		{
			name:        "match through english alias",
			title:       "Union Square, Timișoara",
			poiName:     "Piața Unirii",
			englishName: "Union Square",
			expected:    true,
		},
		{
			name:     "unrelated title",
			title:    "Botanical Garden",
			poiName:  "Saint Nicholas Cathedral",
			expected: false,
		},
		{
			name:     "name with only short words defers to city context",
			title:    "Anything",
			poiName:  "Big Top",
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NameOverlap(tt.title, tt.poiName, tt.englishName); got != tt.expected {
				t.Errorf("NameOverlap() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCityContext(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		snippet  string
		cityName string
		poiName  string
		expected bool
	}{
		{
			name:     "city in title",
			title:    "Old Fort (Givet)",
			cityName: "Givet",
			poiName:  "Old Fort",
			expected: true,
		},
		{
			name:     "city in snippet behind markup",
			title:    "Charlemont",
			snippet:  `a fortress above <span class="searchmatch">Givet</span> on the Meuse`,
			cityName: "Givet",
			poiName:  "Charlemont",
			expected: true,
		},
		{
			name:     "exact-title relaxation",
			title:    "Palace of Culture Târgu Mureș",
			snippet:  "an art nouveau building",
			cityName: "Tirgu Mures",
			poiName:  "Palace of Culture Târgu Mureș",
			expected: true,
		},
		{
			name:     "no city anywhere",
			title:    "Phoenix Tower (Shanghai)",
			snippet:  "a tower in Shanghai",
			cityName: "Baia Mare",
			poiName:  "Phoenix Tower",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CityContext(tt.title, tt.snippet, tt.cityName, tt.poiName); got != tt.expected {
				t.Errorf("CityContext() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTitleIsCity(t *testing.T) {
	if !TitleIsCity("Cluj", "cluj") {
		t.Error("TitleIsCity() should match case-insensitively")
	}
	if TitleIsCity("Cluj Arena", "Cluj") {
		t.Error("TitleIsCity() should not match a longer title")
	}
}

func TestIsDisambiguation(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		snippet  string
		expected bool
	}{
		{
			name:     "flagged title",
			title:    "Old Fort (disambiguation)",
			expected: true,
		},
		{
			name:     "flagged snippet",
			title:    "Old Fort",
			snippet:  "Old Fort may refer to: Old Fort (Givet), Old Fort (Ontario)",
			expected: true,
		},
		{
			name:     "regular article",
			title:    "Old Fort (Givet)",
			snippet:  "a fortification overlooking the Meuse",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDisambiguation(tt.title, tt.snippet); got != tt.expected {
				t.Errorf("IsDisambiguation() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestConflicts(t *testing.T) {
	rules := DefaultKeywordRules()

	tests := []struct {
		name          string
		poiName       string
		candidateText string
		expected      bool
	}{
		{
			name:          "denomination mismatch",
			poiName:       "Orthodox Cathedral",
			candidateText: "St. Michael's, the Roman-Catholic cathedral of the city",
			expected:      true,
		},
		{
			name:          "mismatch in the other direction",
			poiName:       "Catedrala Romano-Catolică",
			candidateText: "the Orthodox cathedral completed in 1933",
			expected:      true,
		},
		{
			name:          "same denomination on both sides",
			poiName:       "Orthodox Cathedral",
			candidateText: "the Orthodox cathedral of the archdiocese",
			expected:      false,
		},
		{
			name:          "no religious keywords at all",
			poiName:       "Central Park",
			candidateText: "a public park in the city centre",
			expected:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Conflicts(rules, tt.poiName, tt.candidateText); got != tt.expected {
				t.Errorf("Conflicts() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUsableImage(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected bool
	}{
		{name: "photo thumbnail", url: "https://upload.example.org/thumb/Old_fort_givet.jpg", expected: true},
		{name: "svg asset", url: "https://upload.example.org/Coat_of_arms.svg", expected: false},
		{name: "svg with size suffix", url: "https://upload.example.org/thumb/Flag.svg.png", expected: false},
		{name: "icon token", url: "https://upload.example.org/Church_icon.png", expected: false},
		{name: "map token", url: "https://upload.example.org/City_map_1900.png", expected: false},
		{name: "location pin", url: "https://upload.example.org/Location_dot.png", expected: false},
		{name: "empty", url: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UsableImage(tt.url); got != tt.expected {
				t.Errorf("UsableImage(%q) = %v, want %v", tt.url, got, tt.expected)
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input    string
		expected Category
	}{
		{"Tourist Attraction", CategoryTouristAttraction},
		{"TouristAttraction", CategoryTouristAttraction},
		{"Hotel", CategoryHotel},
		{"Guesthouse", CategoryGuesthouse},
		{"Street Market", Category("Street Market")},
	}

	for _, tt := range tests {
		if got := ParseCategory(tt.input); got != tt.expected {
			t.Errorf("ParseCategory(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}

	if !CategoryTouristAttraction.NeedsReference() {
		t.Error("tourist attractions must get encyclopedia lookups")
	}
	for _, c := range []Category{CategoryHotel, CategoryRestaurant, CategoryGuesthouse} {
		if c.NeedsReference() {
			t.Errorf("%v must not get encyclopedia lookups", c)
		}
	}
}
