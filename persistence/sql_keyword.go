package persistence

import (
	"strings"

	. "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

const likeEscapeChar = `\`

// escapeLike neutralizes SQL wildcards inside a keyword so "100%_pure"
// matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(
		likeEscapeChar, likeEscapeChar+likeEscapeChar,
		"%", likeEscapeChar+"%",
		"_", likeEscapeChar+"_",
	)
	return r.Replace(s)
}

// keywordFilter requires every keyword to substring-match at least one of
// the columns (case-insensitive; SQLite LIKE). Artists pass name and
// sort_name, other entities just their name.
func keywordFilter(columns []string, keywords []string) Sqlizer {
	filters := And{}
	for _, kw := range keywords {
		pattern := "%" + escapeLike(kw) + "%"
		match := Or{}
		for _, col := range columns {
			match = append(match, Expr(col+" LIKE ? ESCAPE '"+likeEscapeChar+"'", pattern))
		}
		filters = append(filters, match)
	}
	return filters
}

// mbidExpr matches any of the MBID columns, after validating the input is a
// UUID at all. Returns nil for non-UUIDs so callers can skip the branch.
func mbidExpr(mbid string, mbidColumns ...string) Sqlizer {
	if uuid.Validate(mbid) != nil || len(mbidColumns) == 0 {
		return nil
	}
	mbid = strings.ToLower(mbid)
	var cond Or
	for _, col := range mbidColumns {
		cond = append(cond, Eq{col: mbid})
	}
	return cond
}
