package metadata

import (
	"regexp"
	"strings"
)

var (
	moreArtistsExpr = regexp.MustCompile(`(?i)\[(?:(?:w-)|(?:feat-)|(?:with)|(?:featuring)) ([^\]]*)\]`)
	variationExpr   = regexp.MustCompile(`\[([^\]]+)\]`)
	manySpacesExpr  = regexp.MustCompile(`  +`)
)

// pullArtists removes the first featured artist clause, like
// "[feat- A & B]", from title and returns the artists it named.
func pullArtists(title string) (string, []string) {
	loc := moreArtistsExpr.FindStringSubmatchIndex(title)
	if loc == nil {
		return tidy(title), nil
	}
	artists := SplitArtistString(title[loc[2]:loc[3]])
	return tidy(title[:loc[0]] + title[loc[1]:]), artists
}

// pullVariations removes every remaining bracketed clause from title, left
// to right, returning their contents.
func pullVariations(title string) (string, []string) {
	var variations []string
	for {
		loc := variationExpr.FindStringSubmatchIndex(title)
		if loc == nil {
			return title, variations
		}
		variations = append(variations, title[loc[2]:loc[3]])
		title = tidy(title[:loc[0]] + title[loc[1]:])
	}
}

func tidy(s string) string {
	return strings.TrimSpace(manySpacesExpr.ReplaceAllString(s, " "))
}

// FormatTitle is the inverse of stripping a title, it writes the featured
// artists and variations back as bracketed clauses.
func FormatTitle(title string, moreArtists, variations []string) string {
	var sb strings.Builder
	sb.WriteString(title)
	if len(moreArtists) > 0 {
		sb.WriteString(" [feat- ")
		sb.WriteString(Artists(moreArtists).String())
		sb.WriteString("]")
	}
	for _, v := range variations {
		sb.WriteString(" [")
		sb.WriteString(v)
		sb.WriteString("]")
	}
	return sb.String()
}
