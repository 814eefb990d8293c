package persistence

import (
	"regexp"
	"strconv"
	"strings"

	. "github.com/Masterminds/squirrel"
)

// ParsedSearch represents a parsed search query with operators
type ParsedSearch struct {
	// Keywords contains the remaining words for keyword matching
	Keywords []string
	// Filters contains field-specific filters parsed from the query
	Filters And
}

// TrackSearchFields defines the supported search operators over the track
// catalog.
var TrackSearchFields = map[string]string{
	"title":    "track.name",
	"artist":   "track.artist_display_name",
	"comment":  "track.comment",
	"year":     "cast(substr(track.date, 1, 4) as integer)",
	"bitrate":  "track.bitrate",
	"number":   "track.track_number",
	"channels": "track.channel_count",
	"path":     "track.absolute_file_path",
}

// Patterns for parsing search operators
var (
	// field:value pattern (e.g., artist:Beatles, year:2020)
	fieldPattern = regexp.MustCompile(`(\w+):([^\s"]+|"[^"]+")`)
	// range pattern for numeric values (e.g., year:2010-2020)
	rangePattern = regexp.MustCompile(`^(\d+)-(\d+)$`)
	// comparison pattern (e.g., year:>2000)
	comparisonPattern = regexp.MustCompile(`^([<>]=?)(\d+)$`)
	// numeric plus pattern (e.g., channels:2+)
	plusPattern = regexp.MustCompile(`^(\d+)\+$`)
)

// ParseTrackSearch parses a search query for field-specific operators.
// Supported syntax:
//   - field:value - substring match on text fields (e.g., artist:Beatles),
//     equality on numeric fields
//   - field:"multi word" - quoted value for multi-word matches
//   - field:min-max - range query (e.g., year:2010-2020)
//   - field:n+ - greater than or equal (e.g., channels:2+)
//   - field:>n, field:<n, field:>=n, field:<=n - comparisons
//
// Remaining words become keywords for the regular keyword filter.
func ParseTrackSearch(query string) ParsedSearch {
	result := ParsedSearch{Filters: And{}}
	remaining := query

	for _, match := range fieldPattern.FindAllStringSubmatch(query, -1) {
		field := strings.ToLower(match[1])
		value := match[2]
		if strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
			value = value[1 : len(value)-1]
		}

		dbField, ok := TrackSearchFields[field]
		if !ok {
			continue
		}
		if filter := buildSearchFilter(dbField, value); filter != nil {
			result.Filters = append(result.Filters, filter)
			remaining = strings.Replace(remaining, match[0], "", 1)
		}
	}

	result.Keywords = strings.Fields(remaining)
	return result
}

// buildSearchFilter creates a Sqlizer filter based on the value pattern
func buildSearchFilter(field, value string) Sqlizer {
	if matches := rangePattern.FindStringSubmatch(value); matches != nil {
		lo, _ := strconv.Atoi(matches[1])
		hi, _ := strconv.Atoi(matches[2])
		return And{
			GtOrEq{field: lo},
			LtOrEq{field: hi},
		}
	}

	if matches := plusPattern.FindStringSubmatch(value); matches != nil {
		num, _ := strconv.Atoi(matches[1])
		return GtOrEq{field: num}
	}

	if matches := comparisonPattern.FindStringSubmatch(value); matches != nil {
		num, _ := strconv.Atoi(matches[2])
		switch matches[1] {
		case ">":
			return Gt{field: num}
		case "<":
			return Lt{field: num}
		case ">=":
			return GtOrEq{field: num}
		case "<=":
			return LtOrEq{field: num}
		}
	}

	if isStringSearchField(field) {
		return Expr(field+" LIKE ? ESCAPE '"+likeEscapeChar+"'", "%"+escapeLike(value)+"%")
	}
	return Eq{field: value}
}

// isStringSearchField returns true if the field should use LIKE matching
func isStringSearchField(field string) bool {
	switch field {
	case "track.name", "track.artist_display_name", "track.comment", "track.absolute_file_path":
		return true
	}
	return false
}

// ApplyTrackSearch applies parsed search filters to a SelectBuilder
func ApplyTrackSearch(sq SelectBuilder, parsed ParsedSearch) SelectBuilder {
	if len(parsed.Filters) > 0 {
		sq = sq.Where(parsed.Filters)
	}
	if len(parsed.Keywords) > 0 {
		sq = sq.Where(keywordFilter([]string{"track.name"}, parsed.Keywords))
	}
	return sq
}
