package metadata

import "strings"

// SplitArtistString splits a credit like "A, B & C" into its names. Only a
// credit containing " & " is split. Anything else is returned as is, so
// "A, B" stays one name.
func SplitArtistString(artists string) []string {
	if !strings.Contains(artists, " & ") {
		return []string{artists}
	}
	names := strings.Split(strings.ReplaceAll(artists, ", ", " & "), " & ")
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}
	return names
}
