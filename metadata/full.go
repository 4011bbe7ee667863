package metadata

import "strconv"

// FullFromObj composes typed metadata for file from attrs. It fails unless
// attrs has an artist or album artist, plus an album, a numeric track, and a
// title.
//
// Without an explicit disc number, a track over 99 carries the disc in its
// hundreds, so track 1234 becomes disc 12 track 34.
func FullFromObj(file string, attrs Attributes) (Full, bool) {
	artist, hasArtist := attrs[AttrArtist]
	albumArtist, hasAlbumArtist := attrs[AttrAlbumArtist]
	album, hasAlbum := attrs[AttrAlbum]
	rawTrack, hasTrack := attrs[AttrTrack]
	rawTitle, hasTitle := attrs[AttrTitle]
	if !(hasArtist || hasAlbumArtist) || !hasAlbum || !hasTrack || !hasTitle {
		return Full{}, false
	}
	track, ok := parseInt(rawTrack)
	if !ok {
		return Full{}, false
	}

	res := Full{
		OriginalPath: file,
		Album:        album,
	}

	primary := artist
	if hasAlbumArtist {
		primary = albumArtist
	}
	if names := SplitArtistString(primary); len(names) > 1 {
		res.Artist = names
	} else {
		res.Artist = Artists{primary}
	}

	if discNum, ok := attrs[AttrDiscNum]; ok {
		res.Track = track
		if disk, ok := parseInt(discNum); ok {
			res.Disk = &disk
		}
	} else {
		res.Track = track % 100
		if res.Track != track {
			disk := floorDiv(track, 100)
			res.Disk = &disk
		}
	}

	title, moreArtists := pullArtists(rawTitle)
	title, variations := pullVariations(title)
	res.Title = title
	res.MoreArtists = moreArtists
	res.Variations = variations

	if rawYear, ok := attrs[AttrYear]; ok {
		if year, ok := parseInt(rawYear); ok {
			res.Year = &year
		}
	}

	// a track artist that differs from the album artist is a secondary artist
	if hasArtist && hasAlbumArtist && artist != albumArtist {
		res.MoreArtists = append(res.MoreArtists, artist)
	}
	if more, ok := attrs[AttrMoreArtists]; ok {
		res.MoreArtists = append(res.MoreArtists, more)
	}
	if len(res.MoreArtists) == 0 {
		res.MoreArtists = nil
	}

	if vaType, ok := ParseVAType(attrs[AttrCompilation]); ok {
		res.VAType = vaType
	}
	if discName, ok := attrs[AttrDiscName]; ok {
		res.DiskName = discName
	}
	return res, true
}

// parseInt reads the leading decimal integer of s, after any leading space
// and an optional sign. "07 of 12" is 7.
func parseInt(s string) (int, bool) {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	n, err := strconv.Atoi(s[start:i])
	if err != nil {
		// no digits, or out of range
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
