// Package metadata turns a music file path, or a loose map of tag attributes,
// into typed and disambiguated track metadata.
//
// A path is matched against an ordered [Registry] of templates. The first
// template that yields artist, album, track and title wins and produces a
// [Simple] record of path substrings. [FullFromObj] then composes a [Full]
// record with numeric track, disc and year fields, a split artist list, and
// the featured artists and variations pulled out of the title.
//
// A failed match is reported with a false ok value. It is a normal outcome,
// not an error.
package metadata

import (
	"encoding/json"
	"strings"
)

type VAType string

const (
	VA  VAType = "va"
	OST VAType = "ost"
)

// ParseVAType reports whether s names a compilation type.
func ParseVAType(s string) (VAType, bool) {
	switch v := VAType(s); v {
	case VA, OST:
		return v, true
	}
	return "", false
}

// Attribute keys understood by [FullFromObj] and produced by [Simple.Attributes].
const (
	AttrArtist      = "artist"
	AttrAlbumArtist = "albumArtist"
	AttrAlbum       = "album"
	AttrTrack       = "track"
	AttrTitle       = "title"
	AttrYear        = "year"
	AttrDiscNum     = "discNum"
	AttrDiscName    = "discName"
	AttrMoreArtists = "moreArtists"
	AttrCompilation = "compilation"
)

// Attributes is a loosely typed bag of string values, usually read from
// embedded file tags. A key that is absent has no value.
type Attributes map[string]string

// Simple is metadata as it appears in a path. Numeric fields are kept as the
// substrings they were matched from. Empty optional fields are absent.
type Simple struct {
	Artist      string `json:"artist"`
	Album       string `json:"album"`
	Year        string `json:"year,omitempty"`
	Track       string `json:"track"`
	Title       string `json:"title"`
	DiscNum     string `json:"discNum,omitempty"`
	DiscName    string `json:"discName,omitempty"`
	Compilation VAType `json:"compilation,omitempty"`
}

// Valid reports whether all required fields are set and the compilation type,
// if any, is known.
func (s Simple) Valid() bool {
	if s.Artist == "" || s.Album == "" || s.Track == "" || s.Title == "" {
		return false
	}
	if s.Compilation != "" {
		if _, ok := ParseVAType(string(s.Compilation)); !ok {
			return false
		}
	}
	return true
}

func (s Simple) Attributes() Attributes {
	attrs := Attributes{
		AttrArtist: s.Artist,
		AttrAlbum:  s.Album,
		AttrTrack:  s.Track,
		AttrTitle:  s.Title,
	}
	setNonZero(attrs, AttrYear, s.Year)
	setNonZero(attrs, AttrDiscNum, s.DiscNum)
	setNonZero(attrs, AttrDiscName, s.DiscName)
	setNonZero(attrs, AttrCompilation, string(s.Compilation))
	return attrs
}

// IsSimple reports whether attrs carries the shape of a [Simple] record. It is
// meant for callers that receive attributes from elsewhere and want to check
// them before use. Extra keys are allowed.
func IsSimple(attrs Attributes) bool {
	s := Simple{
		Artist:      attrs[AttrArtist],
		Album:       attrs[AttrAlbum],
		Track:       attrs[AttrTrack],
		Title:       attrs[AttrTitle],
		Compilation: VAType(attrs[AttrCompilation]),
	}
	if c, ok := attrs[AttrCompilation]; ok && c == "" {
		return false
	}
	return s.Valid()
}

// Full is composed, typed metadata. Nil pointers and slices are absent values.
type Full struct {
	OriginalPath string   `json:"originalPath"`
	Artist       Artists  `json:"artist"`
	Album        string   `json:"album"`
	Year         *int     `json:"year,omitempty"`
	Track        int      `json:"track"`
	Title        string   `json:"title"`
	Disk         *int     `json:"disk,omitempty"`
	DiskName     string   `json:"diskName,omitempty"`
	VAType       VAType   `json:"vaType,omitempty"`
	MoreArtists  []string `json:"moreArtists,omitempty"`
	Variations   []string `json:"variations,omitempty"`
}

// Valid reports whether f keeps the invariants [FullFromObj] guarantees.
func (f Full) Valid() bool {
	if len(f.Artist) == 0 {
		return false
	}
	if f.VAType != "" {
		if _, ok := ParseVAType(string(f.VAType)); !ok {
			return false
		}
	}
	if f.MoreArtists != nil && len(f.MoreArtists) == 0 {
		return false
	}
	if f.Variations != nil && len(f.Variations) == 0 {
		return false
	}
	return true
}

// Artists holds either one name, exactly as written, or the list a
// multi-artist credit was split into. It encodes to JSON as a string or an
// array to match.
type Artists []string

func (a Artists) IsList() bool { return len(a) > 1 }

// String formats the artists as a credit, "A, B & C".
func (a Artists) String() string {
	switch len(a) {
	case 0:
		return ""
	case 1:
		return a[0]
	}
	return strings.Join(a[:len(a)-1], ", ") + " & " + a[len(a)-1]
}

func (a Artists) MarshalJSON() ([]byte, error) {
	if len(a) == 1 {
		return json.Marshal(a[0])
	}
	return json.Marshal([]string(a))
}

func (a *Artists) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*a = Artists{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	*a = many
	return nil
}

func setNonZero(attrs Attributes, k, v string) {
	if v != "" {
		attrs[k] = v
	}
}
