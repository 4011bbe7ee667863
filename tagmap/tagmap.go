// Package tagmap maps embedded file tags to metadata attributes and back,
// and compares path derived metadata with tag derived metadata.
package tagmap

import (
	"cmp"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/araddon/dateparse"
	"github.com/sergi/go-diff/diffmatchpatch"
	"golang.org/x/text/unicode/norm"

	"go.senan.xyz/pathtag/metadata"
	"go.senan.xyz/pathtag/tags"
)

const (
	performerSep = " / "

	variousArtists = "various artists"
	soundtrack     = "soundtrack"
)

// Attributes reads the metadata attributes of a file from its tags. It fails
// unless the tags have a title, album, artist and a numeric track number.
//
// Some taggers write a compilation as "Various Artists / Artist", or
// "Soundtrack / Artist". That prefix is dropped and sets the compilation
// attribute instead.
func Attributes(t tags.Tags) (metadata.Attributes, bool) {
	title := strings.TrimSpace(t.Get(tags.Title))
	album := strings.TrimSpace(t.Get(tags.Album))
	artist := strings.TrimSpace(t.Get(tags.Artist))
	track, ok := leadingNum(t.Get(tags.TrackNumber))
	if title == "" || album == "" || artist == "" || !ok {
		return nil, false
	}

	artist, artistComp := splitPerformer(artist)
	albumArtist, albumArtistComp := splitPerformer(strings.TrimSpace(t.Get(tags.AlbumArtist)))

	attrs := metadata.Attributes{
		metadata.AttrArtist: artist,
		metadata.AttrAlbum:  album,
		metadata.AttrTrack:  strconv.Itoa(track),
		metadata.AttrTitle:  title,
	}
	if albumArtist != "" && albumArtist != artist {
		attrs[metadata.AttrAlbumArtist] = albumArtist
	}
	if comp := cmp.Or(artistComp, albumArtistComp); comp != "" {
		attrs[metadata.AttrCompilation] = string(comp)
	}
	if year, ok := parseYear(t.Get(tags.Date)); ok {
		attrs[metadata.AttrYear] = strconv.Itoa(year)
	}
	if disc, ok := leadingNum(t.Get(tags.DiscNumber)); ok {
		attrs[metadata.AttrDiscNum] = strconv.Itoa(disc)
	}
	if discName := strings.TrimSpace(t.Get(tags.DiscSubtitle)); discName != "" {
		attrs[metadata.AttrDiscName] = discName
	}
	return attrs, true
}

// Full reads composed metadata for file from its tags.
func Full(file string, t tags.Tags) (metadata.Full, bool) {
	attrs, ok := Attributes(t)
	if !ok {
		return metadata.Full{}, false
	}
	return metadata.FullFromObj(file, attrs)
}

// WriteFull sets the tags describing f, in a form [Attributes] reads back.
// Tags for fields f doesn't have are removed.
func WriteFull(t *tags.Tags, f metadata.Full) {
	artist := f.Artist.String()
	switch f.VAType {
	case metadata.VA:
		artist = "Various Artists" + performerSep + artist
	case metadata.OST:
		artist = "Soundtrack" + performerSep + artist
	}

	t.Set(tags.Artist, artist)
	t.Delete(tags.AlbumArtist)
	t.Set(tags.Album, f.Album)
	t.Set(tags.Title, metadata.FormatTitle(f.Title, f.MoreArtists, f.Variations))
	t.Set(tags.TrackNumber, strconv.Itoa(f.Track))
	setOrDelete(t, tags.Date, f.Year)
	setOrDelete(t, tags.DiscNumber, f.Disk)
	if f.DiskName != "" {
		t.Set(tags.DiscSubtitle, f.DiskName)
	} else {
		t.Delete(tags.DiscSubtitle)
	}
}

// splitPerformer undoes the "X / X" doubling some taggers produce and pulls
// out a leading compilation marker.
func splitPerformer(s string) (string, metadata.VAType) {
	if s == "" {
		return "", ""
	}
	parts := strings.Split(s, performerSep)
	if len(parts) == 2 && strings.TrimSpace(parts[0]) == strings.TrimSpace(parts[1]) {
		return strings.TrimSpace(parts[0]), ""
	}
	if len(parts) > 1 {
		switch first := strings.ToLower(parts[0]); {
		case strings.HasPrefix(first, variousArtists):
			return strings.Join(parts[1:], performerSep), metadata.VA
		case strings.HasPrefix(first, soundtrack):
			return strings.Join(parts[1:], performerSep), metadata.OST
		}
	}
	return s, ""
}

var leadingYearExpr = regexp.MustCompile(`^\s*(\d{4})`)

func parseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if t, err := dateparse.ParseAny(s); err == nil {
		return t.Year(), true
	}
	if m := leadingYearExpr.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		return year, true
	}
	return 0, false
}

// leadingNum parses numbers like "3" or "03/12".
func leadingNum(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if end < 0 {
		end = len(s)
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func setOrDelete(t *tags.Tags, k string, v *int) {
	if v == nil {
		t.Delete(k)
		return
	}
	t.Set(k, strconv.Itoa(*v))
}

var dmp = diffmatchpatch.New()

type Diff struct {
	Field         string
	Before, After []diffmatchpatch.Diff
	Equal         bool
}

type TagWeights map[string]float64

func (tw TagWeights) For(field string) float64 {
	if field == "" {
		return 1
	}
	for f, w := range tw {
		if strings.HasPrefix(field, f) {
			return w
		}
	}
	return 1
}

// DiffFull compares the metadata a path implies with the metadata its tags
// imply. The score is out of 100.
func DiffFull(weights TagWeights, fromPath, fromTags metadata.Full) (float64, []Diff) {
	var score float64
	diff := Differ(weights, &score)

	var diffs []Diff
	diffs = append(diffs,
		diff("artist", fromPath.Artist.String(), fromTags.Artist.String()),
		diff("album", fromPath.Album, fromTags.Album),
		diff("year", fmtInt(fromPath.Year), fmtInt(fromTags.Year)),
		diff("disc", fmtInt(fromPath.Disk), fmtInt(fromTags.Disk)),
		diff("disc name", fromPath.DiskName, fromTags.DiskName),
		diff("track", strconv.Itoa(fromPath.Track), strconv.Itoa(fromTags.Track)),
		diff("title", fromPath.Title, fromTags.Title),
		diff("more artists", strings.Join(fromPath.MoreArtists, ", "), strings.Join(fromTags.MoreArtists, ", ")),
		diff("variations", strings.Join(fromPath.Variations, ", "), strings.Join(fromTags.Variations, ", ")),
		diff("compilation", string(fromPath.VAType), string(fromTags.VAType)),
	)
	return score, diffs
}

func Differ(weights TagWeights, score *float64) func(field string, a, b string) Diff {
	var total float64
	var dist float64

	return func(field, a, b string) Diff {
		// separate, normalised diff only for score. if we have both fields
		if a != "" && b != "" {
			a, b := normText(a), normText(b)

			diffs := dmp.DiffMain(a, b, false)
			dist += float64(dmp.DiffLevenshtein(diffs)) * weights.For(field)
			total += float64(len([]rune(b)))

			if total > 0 {
				*score = 100 - (dist * 100 / total)
			}
		}

		diffs := dmp.DiffMain(a, b, false)
		dist := float64(dmp.DiffLevenshtein(diffs))
		return Diff{
			Field:  field,
			Before: filterFunc(diffs, func(d diffmatchpatch.Diff) bool { return d.Type <= diffmatchpatch.DiffEqual }),
			After:  filterFunc(diffs, func(d diffmatchpatch.Diff) bool { return d.Type >= diffmatchpatch.DiffEqual }),
			Equal:  dist == 0,
		}
	}
}

// normText folds case and accents, and drops anything that isn't a letter or
// number.
func normText(input string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return unicode.ToLower(r)
		}
		if unicode.IsNumber(r) {
			return r
		}
		return -1
	}, norm.NFKD.String(input))
}

func fmtInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func filterFunc[T any](diffs []T, f func(T) bool) []T {
	var r []T
	for _, diff := range diffs {
		if f(diff) {
			r = append(r, diff)
		}
	}
	return r
}
