// Package parsing provides pure free-text parsers for candidate and job
// fields: location strings and experience-level brackets. These functions do
// no I/O so they can be unit-tested independently of the provider adapters.
package parsing

import (
	"strings"
)

// Location is a location string broken into comparable segments. Empty
// fields mean the segment was not present in the input.
type Location struct {
	City    string
	State   string
	Country string
}

// usStateAbbrevs covers the two-letter codes used to disambiguate
// "City, XX" from "City, Country".
var usStateAbbrevs = map[string]bool{
	"al": true, "ak": true, "az": true, "ar": true, "ca": true, "co": true,
	"ct": true, "de": true, "fl": true, "ga": true, "hi": true, "id": true,
	"il": true, "in": true, "ia": true, "ks": true, "ky": true, "la": true,
	"me": true, "md": true, "ma": true, "mi": true, "mn": true, "ms": true,
	"mo": true, "mt": true, "ne": true, "nv": true, "nh": true, "nj": true,
	"nm": true, "ny": true, "nc": true, "nd": true, "oh": true, "ok": true,
	"or": true, "pa": true, "ri": true, "sc": true, "sd": true, "tn": true,
	"tx": true, "ut": true, "vt": true, "va": true, "wa": true, "wv": true,
	"wi": true, "wy": true, "dc": true,
}

// usStateNames maps full state names to their two-letter codes so
// "Austin, Texas" parses the same as "Austin, TX".
var usStateNames = map[string]string{
	"alabama": "al", "alaska": "ak", "arizona": "az", "arkansas": "ar",
	"california": "ca", "colorado": "co", "connecticut": "ct",
	"delaware": "de", "florida": "fl", "georgia": "ga", "hawaii": "hi",
	"idaho": "id", "illinois": "il", "indiana": "in", "iowa": "ia",
	"kansas": "ks", "kentucky": "ky", "louisiana": "la", "maine": "me",
	"maryland": "md", "massachusetts": "ma", "michigan": "mi",
	"minnesota": "mn", "mississippi": "ms", "missouri": "mo",
	"montana": "mt", "nebraska": "ne", "nevada": "nv",
	"new hampshire": "nh", "new jersey": "nj", "new mexico": "nm",
	"new york": "ny", "north carolina": "nc", "north dakota": "nd",
	"ohio": "oh", "oklahoma": "ok", "oregon": "or", "pennsylvania": "pa",
	"rhode island": "ri", "south carolina": "sc", "south dakota": "sd",
	"tennessee": "tn", "texas": "tx", "utah": "ut", "vermont": "vt",
	"virginia": "va", "washington": "wa", "west virginia": "wv",
	"wisconsin": "wi", "wyoming": "wy",
}

// remoteKeywords mark a location string as not tied to a place.
var remoteKeywords = []string{"remote", "anywhere", "worldwide", "work from home"}

// ParseLocation splits a free-text location into city/state/country using
// comma-segment heuristics:
//
//	3 segments -> city, state, country
//	2 segments -> city, state when the second looks like a US state,
//	              otherwise city, country
//	1 segment  -> country
func ParseLocation(s string) Location {
	var loc Location

	segments := splitSegments(s)
	switch len(segments) {
	case 0:
		return loc
	case 1:
		loc.Country = segments[0]
	case 2:
		loc.City = segments[0]
		if isUSState(segments[1]) {
			loc.State = canonicalState(segments[1])
		} else {
			loc.Country = segments[1]
		}
	default:
		loc.City = segments[0]
		loc.State = canonicalState(segments[1])
		loc.Country = segments[2]
	}
	return loc
}

// IsRemoteKeyword reports whether the string contains a remote-work keyword.
func IsRemoteKeyword(s string) bool {
	lower := strings.ToLower(s)
	for _, kw := range remoteKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// MatchLocations applies the strict matching rule used for validation.
// It succeeds when cities match (and state/country also match when both
// sides carry one), when states match, when countries match, or when one
// string contains the other.
func MatchLocations(a, b string) bool {
	an := normalizeSegment(a)
	bn := normalizeSegment(b)
	if an == "" || bn == "" {
		return false
	}
	if an == bn {
		return true
	}

	la := ParseLocation(a)
	lb := ParseLocation(b)

	if la.City != "" && la.City == lb.City {
		if la.State != "" && lb.State != "" && la.State != lb.State {
			return false
		}
		if la.Country != "" && lb.Country != "" && la.Country != lb.Country {
			return false
		}
		return true
	}
	if la.State != "" && la.State == lb.State {
		return true
	}
	if la.Country != "" && la.Country == lb.Country {
		return true
	}

	// Last resort: substring containment either way.
	return strings.Contains(an, bn) || strings.Contains(bn, an)
}

// SameState reports whether both locations parse to the same state.
func SameState(a, b string) bool {
	la, lb := ParseLocation(a), ParseLocation(b)
	return la.State != "" && la.State == lb.State
}

// SameCountry reports whether both locations parse to the same country.
func SameCountry(a, b string) bool {
	la, lb := ParseLocation(a), ParseLocation(b)
	return la.Country != "" && la.Country == lb.Country
}

// SameCity reports whether both locations parse to the same city.
func SameCity(a, b string) bool {
	la, lb := ParseLocation(a), ParseLocation(b)
	return la.City != "" && la.City == lb.City
}

func splitSegments(s string) []string {
	parts := strings.Split(s, ",")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if seg := normalizeSegment(p); seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

func normalizeSegment(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func isUSState(seg string) bool {
	if len(seg) == 2 {
		return usStateAbbrevs[seg]
	}
	_, ok := usStateNames[seg]
	return ok
}

// canonicalState collapses full US state names to their two-letter code so
// segments from different providers compare equal.
func canonicalState(seg string) string {
	if abbrev, ok := usStateNames[seg]; ok {
		return abbrev
	}
	return seg
}
