package pathformat

import (
	"errors"
	"fmt"
	"path"
	"strings"
	texttemplate "text/template"

	"github.com/rainycape/unidecode"

	"go.senan.xyz/pathtag/fileutil"
	"go.senan.xyz/pathtag/metadata"
)

var (
	ErrInvalidFormat   = errors.New("invalid format")
	ErrAmbiguousFormat = errors.New("ambiguous format")
	ErrBadData         = errors.New("bad data")
)

// Default renders paths that parse back to the same metadata with the
// standard templates. A disc name must be at least two characters long to
// be read back.
const Default = `{{ if eq .Compilation "va" }}Various Artists{{ else if eq .Compilation "ost" }}Soundtrack{{ else }}{{ .Artist | safepath }}{{ end }}/` +
	`{{ if .Year }}{{ .Year }} - {{ end }}{{ .Album | safepath }}/` +
	`{{ if .Disc }}CD {{ .Disc }}{{ if .DiscName }} {{ .DiscName | safepath }}{{ end }}/{{ end }}` +
	`{{ pad0 2 .Track }}{{ if .Compilation }} - {{ .Artist | safepath }}{{ end }} - {{ .Title | safepath }}{{ .Ext }}`

// Data is the view of a track a path format is executed with. Zero values
// are absent.
type Data struct {
	Artist      string // credit, "A, B & C"
	Artists     []string
	Album       string
	Year        int
	Disc        int
	DiscName    string
	Track       int
	Title       string // with featured artists and variations
	BaseTitle   string
	MoreArtists []string
	Variations  []string
	Compilation metadata.VAType
	Ext         string
}

func NewData(f metadata.Full, ext string) Data {
	return Data{
		Artist:      f.Artist.String(),
		Artists:     f.Artist,
		Album:       f.Album,
		Year:        deref(f.Year),
		Disc:        deref(f.Disk),
		DiscName:    f.DiskName,
		Track:       f.Track,
		Title:       metadata.FormatTitle(f.Title, f.MoreArtists, f.Variations),
		BaseTitle:   f.Title,
		MoreArtists: f.MoreArtists,
		Variations:  f.Variations,
		Compilation: f.VAType,
		Ext:         ext,
	}
}

type Format struct {
	tt   *texttemplate.Template
	root string
}

func (pf *Format) Parse(str string) error {
	str = strings.TrimSpace(str)
	if str == "" {
		return fmt.Errorf("%w: empty format", ErrInvalidFormat)
	}
	if !strings.Contains(str, "/") {
		return fmt.Errorf("%w: need at least one directory", ErrInvalidFormat)
	}
	tt, err := texttemplate.
		New("template").
		Funcs(funcMap).
		Option("missingkey=error").
		Parse(str)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	if err := validate(tt); err != nil {
		return err
	}
	pf.tt = tt
	pf.root = root(str)
	return nil
}

func (pf *Format) Execute(d Data) (string, error) {
	if pf.tt == nil {
		return "", errors.New("format not parsed")
	}
	return execute(pf.tt, d)
}

// Root is the leading directory of the format that does not depend on data.
func (pf *Format) Root() string {
	return pf.root
}

func (pf *Format) String() string {
	if pf.tt == nil {
		return ""
	}
	return pf.tt.Root.String()
}

func (pf *Format) UnmarshalText(text []byte) error { return pf.Parse(string(text)) }
func (pf *Format) MarshalText() ([]byte, error)   { return []byte(pf.String()), nil }

func execute(tt *texttemplate.Template, d Data) (string, error) {
	var sb strings.Builder
	if err := tt.Execute(&sb, d); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	p := sb.String()
	if strings.HasSuffix(p, "/") || strings.Contains(p, "//") || path.Base(p) == d.Ext {
		return "", fmt.Errorf("%w: empty path element in %q", ErrBadData, p)
	}
	return p, nil
}

// validate renders tracks that differ only by track or by album, which a
// usable format must place at different paths.
func validate(tt *texttemplate.Template) error {
	base := Data{
		Artist: "Artist", Artists: []string{"Artist"},
		Album: "Album", Year: 2000, Disc: 1, DiscName: "Disc",
		Track: 1, Title: "Title", BaseTitle: "Title",
		Ext: ".flac",
	}
	otherTrack := base
	otherTrack.Track, otherTrack.Title, otherTrack.BaseTitle = 2, "Other Title", "Other Title"
	otherAlbum := base
	otherAlbum.Album = "Other Album"

	var paths []string
	for _, d := range []Data{base, otherTrack, otherAlbum} {
		p, err := execute(tt, d)
		if err != nil {
			return err
		}
		paths = append(paths, p)
	}
	if paths[0] == paths[1] {
		return fmt.Errorf("%w: tracks of one album share a path", ErrAmbiguousFormat)
	}
	if paths[0] == paths[2] {
		return fmt.Errorf("%w: albums share a path", ErrAmbiguousFormat)
	}
	return nil
}

func root(str string) string {
	if i := strings.Index(str, "{{"); i >= 0 {
		str = str[:i]
	}
	i := strings.LastIndex(str, "/")
	if i < 0 {
		return ""
	}
	return path.Clean(str[:i+1])
}

var funcMap = texttemplate.FuncMap{
	"join":     func(delim string, items []string) string { return strings.Join(items, delim) },
	"pad0":     func(amount, n int) string { return fmt.Sprintf("%0*d", amount, n) },
	"safepath": fileutil.SafePath,
	"ascii":    unidecode.Unidecode,
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
