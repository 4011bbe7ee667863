// tags wraps go-taglib to normalise known tag variants
package tags

import (
	"iter"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"go.senan.xyz/taglib"
)

// https://taglib.org/api/p_propertymapping.html
// https://picard-docs.musicbrainz.org/downloads/MusicBrainz_Picard_Tag_Map.html

const (
	Album        = "ALBUM"
	AlbumArtist  = "ALBUMARTIST" // alts "ALBUM_ARTIST" "ALBUM ARTIST"
	Date         = "DATE"        // alts "YEAR"
	OriginalDate = "ORIGINALDATE"
	Compilation  = "COMPILATION"

	Title        = "TITLE"
	Artist       = "ARTIST"
	Genre        = "GENRE"
	TrackNumber  = "TRACKNUMBER"  // alts "TRACK" "TRACKC"
	DiscNumber   = "DISCNUMBER"   // alts "DISC" "DISK" "DISKNUMBER"
	DiscSubtitle = "DISCSUBTITLE" // alts "SETSUBTITLE"
)

var alternatives = map[string]string{
	"ALBUM_ARTIST": AlbumArtist,
	"ALBUM ARTIST": AlbumArtist,
	"YEAR":         Date,
	"TRACK":        TrackNumber,
	"TRACKC":       TrackNumber,
	"DISC":         DiscNumber,
	"DISK":         DiscNumber,
	"DISKNUMBER":   DiscNumber,
	"SETSUBTITLE":  DiscSubtitle,
}

func CanRead(absPath string) bool {
	switch ext := strings.ToLower(filepath.Ext(absPath)); ext {
	case ".mp3", ".flac", ".opus", ".aac", ".aiff", ".ape", ".m4a", ".m4b", ".mp2", ".mpc", ".oga", ".ogg", ".spx", ".tak", ".wav", ".wma", ".wv":
		return true
	case PointerExt:
		return true
	}
	return false
}

// ReadTags reads the tags of the media file at path, following it first if
// it is a pointer file.
func ReadTags(path string) (Tags, error) {
	path, err := ResolvePointer(path)
	if err != nil {
		return Tags{}, err
	}
	t, err := taglib.ReadTags(path)
	if err != nil {
		return Tags{}, err
	}
	var tags Tags
	for k, vs := range t {
		if nk := NormKey(k); nk != k {
			if _, ok := t[nk]; ok {
				continue // canonical key wins
			}
		}
		tags.Set(k, vs...)
	}
	return tags, nil
}

// ReplaceTags writes tags to path, removing any tag not in tags.
func ReplaceTags(path string, tags Tags) error {
	path, err := ResolvePointer(path)
	if err != nil {
		return err
	}
	return taglib.WriteTags(path, tags.t, taglib.Clear)
}

type Tags struct {
	t map[string][]string
}

func NewTags(vs ...string) Tags {
	if len(vs)%2 != 0 {
		panic("vs should be kv pairs")
	}
	var t Tags
	for i := 0; i < len(vs)-1; i += 2 {
		t.Set(vs[i], vs[i+1])
	}
	return t
}

func (t Tags) Iter() iter.Seq2[string, []string] {
	return func(yield func(string, []string) bool) {
		for _, k := range slices.Sorted(maps.Keys(t.t)) {
			if !yield(k, t.t[k]) {
				break
			}
		}
	}
}

func (t *Tags) Set(key string, values ...string) {
	if t.t == nil {
		t.t = map[string][]string{}
	}
	t.t[NormKey(key)] = values
}

func (t *Tags) Delete(key string) {
	delete(t.t, NormKey(key))
}

func (t Tags) Get(key string) string {
	if vs := t.t[NormKey(key)]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

func (t Tags) Values(key string) []string {
	return t.t[NormKey(key)]
}

func (t Tags) Len() int {
	return len(t.t)
}

func Equal(a, b Tags) bool {
	return maps.EqualFunc(a.t, b.t, slices.Equal)
}

func NormKey(k string) string {
	k = strings.ToUpper(k)
	if nk, ok := alternatives[k]; ok {
		return nk
	}
	return k
}
