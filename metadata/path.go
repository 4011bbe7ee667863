package metadata

import (
	"path"
	"strings"
	"unicode/utf8"
)

// RawFields are the groups captured by one template match. Groups that no
// standard template uses are kept in Extra.
type RawFields struct {
	Artist      string
	Album       string
	Track       string
	Title       string
	Year        string
	DiscNum     string
	DiscName    string
	Compilation VAType
	Extra       map[string]string
}

func (f *RawFields) set(name, value string) {
	switch name {
	case AttrArtist:
		f.Artist = value
	case AttrAlbum:
		f.Album = value
	case AttrTrack:
		f.Track = value
	case AttrTitle:
		f.Title = value
	case AttrYear:
		f.Year = value
	case AttrDiscNum:
		f.DiscNum = value
	case AttrDiscName:
		f.DiscName = value
	default:
		// including "compilation", which only a template's hint may set
		if f.Extra == nil {
			f.Extra = map[string]string{}
		}
		f.Extra[name] = value
	}
}

func (f RawFields) Simple() Simple {
	return Simple{
		Artist:      f.Artist,
		Album:       f.Album,
		Year:        f.Year,
		Track:       f.Track,
		Title:       f.Title,
		DiscNum:     f.DiscNum,
		DiscName:    f.DiscName,
		Compilation: f.Compilation,
	}
}

// SplitTrackDisc splits a track number longer than two digits into a disc
// number and a two digit track number, so "1234" is disc "12" track "34".
func SplitTrackDisc(track string) (disc, rest string, ok bool) {
	n := utf8.RuneCountInString(track)
	if n <= 2 {
		return "", track, false
	}
	i := len(track)
	for range 2 {
		_, size := utf8.DecodeLastRuneInString(track[:i])
		i -= size
	}
	return track[:i], track[i:], true
}

// splitTrackDisc applies [SplitTrackDisc] only when the template had no disc
// of its own.
func (f *RawFields) splitTrackDisc() {
	if f.Track == "" || f.DiscNum != "" {
		return
	}
	if disc, track, ok := SplitTrackDisc(f.Track); ok {
		f.DiscNum, f.Track = disc, track
	}
}

func (p Pattern) match(stem string) (RawFields, bool) {
	loc := p.Expr.FindStringSubmatchIndex(stem)
	if loc == nil {
		return RawFields{}, false
	}
	var f RawFields
	for i, name := range p.Expr.SubexpNames() {
		if name == "" || loc[2*i] < 0 {
			continue
		}
		f.set(name, stem[loc[2*i]:loc[2*i+1]])
	}
	if p.Compilation != "" {
		f.Compilation = p.Compilation
	}
	return f, true
}

// Match returns the fields of the first template that fully describes
// pathname. Templates that match but leave a required field empty are
// skipped.
func (r *Registry) Match(pathname string) (RawFields, bool) {
	pathname = strings.ReplaceAll(pathname, `\`, "/")

	ext := strings.TrimPrefix(path.Ext(pathname), ".")
	if utf8.RuneCountInString(ext) < 3 {
		// no extension, or something like "file.a"
		return RawFields{}, false
	}
	stem := pathname[:len(pathname)-len(ext)-1]

	for _, p := range r.patterns {
		f, ok := p.match(stem)
		if !ok {
			continue
		}
		f.splitTrackDisc()
		if f.Simple().Valid() {
			return f, true
		}
	}
	return RawFields{}, false
}

// FromPath extracts metadata from pathname with the first template that
// matches it.
func (r *Registry) FromPath(pathname string) (Simple, bool) {
	f, ok := r.Match(pathname)
	if !ok {
		return Simple{}, false
	}
	return f.Simple(), true
}

// FullFromPath is [Registry.FromPath] followed by [FullFromObj].
func (r *Registry) FullFromPath(pathname string) (Full, bool) {
	md, ok := r.FromPath(pathname)
	if !ok {
		return Full{}, false
	}
	return FullFromObj(pathname, md.Attributes())
}

// FromPath extracts metadata from pathname using [DefaultRegistry].
func FromPath(pathname string) (Simple, bool) {
	return DefaultRegistry.FromPath(pathname)
}

// FullFromPath composes metadata for pathname using [DefaultRegistry].
func FullFromPath(pathname string) (Full, bool) {
	return DefaultRegistry.FullFromPath(pathname)
}
