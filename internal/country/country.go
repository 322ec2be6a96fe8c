// Package country holds the static country reference table and resolves
// free-text nationality descriptors to canonical ISO 3166-1 alpha-2 codes.
package country

import "strings"

// Country is immutable reference data; there is no lifecycle beyond this table.
type Country struct {
	Code      string
	Name      string
	FlagEmoji string
}

const (
	// UnknownName is returned for codes missing from the table.
	UnknownName = "Unknown"
	// UnknownFlag is the globe fallback for codes missing from the table.
	UnknownFlag = "\U0001F310"
)

var countries = map[string]Country{
	"AR": {Code: "AR", Name: "Argentina", FlagEmoji: "🇦🇷"},
	"AT": {Code: "AT", Name: "Austria", FlagEmoji: "🇦🇹"},
	"AU": {Code: "AU", Name: "Australia", FlagEmoji: "🇦🇺"},
	"BE": {Code: "BE", Name: "Belgium", FlagEmoji: "🇧🇪"},
	"BR": {Code: "BR", Name: "Brazil", FlagEmoji: "🇧🇷"},
	"CA": {Code: "CA", Name: "Canada", FlagEmoji: "🇨🇦"},
	"CH": {Code: "CH", Name: "Switzerland", FlagEmoji: "🇨🇭"},
	"CL": {Code: "CL", Name: "Chile", FlagEmoji: "🇨🇱"},
	"CN": {Code: "CN", Name: "China", FlagEmoji: "🇨🇳"},
	"CO": {Code: "CO", Name: "Colombia", FlagEmoji: "🇨🇴"},
	"CZ": {Code: "CZ", Name: "Czechia", FlagEmoji: "🇨🇿"},
	"DE": {Code: "DE", Name: "Germany", FlagEmoji: "🇩🇪"},
	"DK": {Code: "DK", Name: "Denmark", FlagEmoji: "🇩🇰"},
	"EG": {Code: "EG", Name: "Egypt", FlagEmoji: "🇪🇬"},
	"ES": {Code: "ES", Name: "Spain", FlagEmoji: "🇪🇸"},
	"FI": {Code: "FI", Name: "Finland", FlagEmoji: "🇫🇮"},
	"FR": {Code: "FR", Name: "France", FlagEmoji: "🇫🇷"},
	"GB": {Code: "GB", Name: "United Kingdom", FlagEmoji: "🇬🇧"},
	"GR": {Code: "GR", Name: "Greece", FlagEmoji: "🇬🇷"},
	"HU": {Code: "HU", Name: "Hungary", FlagEmoji: "🇭🇺"},
	"IE": {Code: "IE", Name: "Ireland", FlagEmoji: "🇮🇪"},
	"IL": {Code: "IL", Name: "Israel", FlagEmoji: "🇮🇱"},
	"IN": {Code: "IN", Name: "India", FlagEmoji: "🇮🇳"},
	"IR": {Code: "IR", Name: "Iran", FlagEmoji: "🇮🇷"},
	"IT": {Code: "IT", Name: "Italy", FlagEmoji: "🇮🇹"},
	"JP": {Code: "JP", Name: "Japan", FlagEmoji: "🇯🇵"},
	"KR": {Code: "KR", Name: "South Korea", FlagEmoji: "🇰🇷"},
	"LB": {Code: "LB", Name: "Lebanon", FlagEmoji: "🇱🇧"},
	"MA": {Code: "MA", Name: "Morocco", FlagEmoji: "🇲🇦"},
	"MX": {Code: "MX", Name: "Mexico", FlagEmoji: "🇲🇽"},
	"NG": {Code: "NG", Name: "Nigeria", FlagEmoji: "🇳🇬"},
	"NL": {Code: "NL", Name: "Netherlands", FlagEmoji: "🇳🇱"},
	"NO": {Code: "NO", Name: "Norway", FlagEmoji: "🇳🇴"},
	"NZ": {Code: "NZ", Name: "New Zealand", FlagEmoji: "🇳🇿"},
	"PL": {Code: "PL", Name: "Poland", FlagEmoji: "🇵🇱"},
	"PS": {Code: "PS", Name: "Palestine", FlagEmoji: "🇵🇸"},
	"PT": {Code: "PT", Name: "Portugal", FlagEmoji: "🇵🇹"},
	"RO": {Code: "RO", Name: "Romania", FlagEmoji: "🇷🇴"},
	"RU": {Code: "RU", Name: "Russia", FlagEmoji: "🇷🇺"},
	"SA": {Code: "SA", Name: "Saudi Arabia", FlagEmoji: "🇸🇦"},
	"SE": {Code: "SE", Name: "Sweden", FlagEmoji: "🇸🇪"},
	"TR": {Code: "TR", Name: "Türkiye", FlagEmoji: "🇹🇷"},
	"UA": {Code: "UA", Name: "Ukraine", FlagEmoji: "🇺🇦"},
	"US": {Code: "US", Name: "United States", FlagEmoji: "🇺🇸"},
	"ZA": {Code: "ZA", Name: "South Africa", FlagEmoji: "🇿🇦"},
}

// aliases maps lowercase demonyms, full names and common abbreviations to
// canonical codes. Checked only after an exact code match fails.
var aliases = map[string]string{
	"american":       "US",
	"usa":            "US",
	"united states":  "US",
	"u.s.":           "US",
	"u.s.a.":         "US",
	"british":        "GB",
	"uk":             "GB",
	"united kingdom": "GB",
	"english":        "GB",
	"scottish":       "GB",
	"welsh":          "GB",
	"french":         "FR",
	"france":         "FR",
	"german":         "DE",
	"germany":        "DE",
	"israeli":        "IL",
	"israel":         "IL",
	"palestinian":    "PS",
	"palestine":      "PS",
	"irish":          "IE",
	"ireland":        "IE",
	"italian":        "IT",
	"italy":          "IT",
	"spanish":        "ES",
	"spain":          "ES",
	"portuguese":     "PT",
	"portugal":       "PT",
	"dutch":          "NL",
	"netherlands":    "NL",
	"belgian":        "BE",
	"belgium":        "BE",
	"swiss":          "CH",
	"switzerland":    "CH",
	"austrian":       "AT",
	"austria":        "AT",
	"swedish":        "SE",
	"sweden":         "SE",
	"norwegian":      "NO",
	"norway":         "NO",
	"danish":         "DK",
	"denmark":        "DK",
	"finnish":        "FI",
	"finland":        "FI",
	"polish":         "PL",
	"poland":         "PL",
	"czech":          "CZ",
	"hungarian":      "HU",
	"romanian":       "RO",
	"greek":          "GR",
	"greece":         "GR",
	"turkish":        "TR",
	"ukrainian":      "UA",
	"ukraine":        "UA",
	"russian":        "RU",
	"russia":         "RU",
	"canadian":       "CA",
	"canada":         "CA",
	"mexican":        "MX",
	"mexico":         "MX",
	"brazilian":      "BR",
	"brazil":         "BR",
	"argentine":      "AR",
	"argentinian":    "AR",
	"argentina":      "AR",
	"chilean":        "CL",
	"colombian":      "CO",
	"australian":     "AU",
	"australia":      "AU",
	"new zealander":  "NZ",
	"kiwi":           "NZ",
	"chinese":        "CN",
	"china":          "CN",
	"japanese":       "JP",
	"japan":          "JP",
	"korean":         "KR",
	"south korean":   "KR",
	"indian":         "IN",
	"india":          "IN",
	"iranian":        "IR",
	"persian":        "IR",
	"lebanese":       "LB",
	"egyptian":       "EG",
	"moroccan":       "MA",
	"saudi":          "SA",
	"saudi arabian":  "SA",
	"nigerian":       "NG",
	"south african":  "ZA",
}

// Normalize resolves a free-text country descriptor ("American", "UK", "usa")
// to a canonical code. The exact code match wins over the alias table.
// Unrecognized input returns ok=false; callers decide how to handle it.
func Normalize(input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", false
	}

	upper := strings.ToUpper(trimmed)
	if _, ok := countries[upper]; ok {
		return upper, true
	}

	if code, ok := aliases[strings.ToLower(trimmed)]; ok {
		return code, true
	}
	return "", false
}

// NormalizeAll accepts a comma-separated string, normalizes each entry,
// deduplicates, and returns resolved codes in first-seen order.
// Unresolvable entries are silently dropped.
func NormalizeAll(input string) []string {
	return NormalizeList(strings.Split(input, ","))
}

// NormalizeList is NormalizeAll for callers that already hold a slice.
func NormalizeList(inputs []string) []string {
	seen := make(map[string]struct{}, len(inputs))
	var codes []string
	for _, raw := range inputs {
		code, ok := Normalize(raw)
		if !ok {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes
}

// Name returns the display name for a code, "Unknown" if unrecognized.
func Name(code string) string {
	if c, ok := countries[strings.ToUpper(code)]; ok {
		return c.Name
	}
	return UnknownName
}

// Flag returns the flag emoji for a code, a globe if unrecognized.
func Flag(code string) string {
	if c, ok := countries[strings.ToUpper(code)]; ok {
		return c.FlagEmoji
	}
	return UnknownFlag
}

// Known reports whether the code is present in the reference table.
func Known(code string) bool {
	_, ok := countries[strings.ToUpper(code)]
	return ok
}
