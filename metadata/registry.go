package metadata

import (
	"fmt"
	"regexp"
	"slices"
)

// Pattern is a path template. Expr is matched against a path with its
// extension removed and forward slashes as separators. Its named groups
// (artist, album, track, title, year, discNum, discName) become fields.
// A non-empty Compilation marks every match as part of a compilation.
type Pattern struct {
	Expr        *regexp.Regexp
	Compilation VAType
}

// Registry is an ordered list of templates, tried first to last. Templates
// can only be appended.
//
// A Registry is not safe for mutation concurrent with matching. Add any
// extra templates before the registry is shared.
type Registry struct {
	patterns []Pattern
}

// NewRegistry returns a registry seeded with the standard templates.
func NewRegistry() *Registry {
	return &Registry{patterns: slices.Clone(standardPatterns)}
}

// DefaultRegistry backs the package level [FromPath] and [AddPattern].
var DefaultRegistry = NewRegistry()

// AddPattern appends a template to [DefaultRegistry].
func AddPattern(expr *regexp.Regexp, compilation VAType) {
	DefaultRegistry.Add(expr, compilation)
}

// Add appends a template with the lowest priority. Templates always match
// case-insensitively. A template missing required groups is accepted, it
// just never produces a match.
func (r *Registry) Add(expr *regexp.Regexp, compilation VAType) {
	r.patterns = append(r.patterns, Pattern{
		Expr:        regexp.MustCompile("(?i)" + expr.String()),
		Compilation: compilation,
	})
}

// AddString compiles and appends a template.
func (r *Registry) AddString(expr string, compilation VAType) error {
	if compilation != "" {
		if _, ok := ParseVAType(string(compilation)); !ok {
			return fmt.Errorf("unknown compilation type %q", compilation)
		}
	}
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return fmt.Errorf("compile pattern: %w", err)
	}
	r.patterns = append(r.patterns, Pattern{Expr: re, Compilation: compilation})
	return nil
}

func (r *Registry) Patterns() []Pattern {
	return slices.Clone(r.patterns)
}

func (r *Registry) Len() int {
	return len(r.patterns)
}

const (
	compilationVA  = `((va(rious artists)?)|(compilation))`
	compilationOST = `((ost)|(soundtrack))`

	// "cd 2", "disc 2- name", "disk 12 name"
	discDir = `(cd|dis[ck]) *(?P<discNum>\d+)(-? +(?P<discName>[^ /][^/]+))?`
)

// most specific first
var standardPatterns = []Pattern{
	// va - (year - )album/(cd # name/)## - artist - title
	{Compilation: VA, Expr: mustCompile(`^(.*/)?` + compilationVA + ` - ((?P<year>\d{4}) - )?(?P<album>[^/]+)(/` + discDir + `)?/(?P<track>\d+)[-. ]+(?P<artist>[^/]+) - (?P<title>[^/]+)$`)},
	// soundtrack - (year - )album/(cd # name/)## - artist - title
	{Compilation: OST, Expr: mustCompile(`^(.*/)?` + compilationOST + ` - ((?P<year>\d{4}) - )?(?P<album>[^/]+)(/` + discDir + `)?/(?P<track>\d+)[-. ]+(?P<artist>[^/]+) - (?P<title>[^/]+)$`)},
	// artist - year - album/(cd # name/)## - title
	{Expr: mustCompile(`^(.*/)?(?P<artist>[^/]+) - (?P<year>\d{4}) - (?P<album>[^/]+)(/` + discDir + `)?/(?P<track>\d+)[-. ]+(?P<title>[^/]+)$`)},
	// va/(year - )album/(cd # name/)## - artist - title
	{Compilation: VA, Expr: mustCompile(`^(.*/)?` + compilationVA + `/((?P<year>\d{4}) - )?(?P<album>[^/]+)(/` + discDir + `)?/(?P<track>\d+)[-. ]+(?P<artist>[^/]+) - (?P<title>[^/]+)$`)},
	// soundtrack/(year - )album/(cd # name/)## - artist - title
	{Compilation: OST, Expr: mustCompile(`^(.*/)?` + compilationOST + `/((?P<year>\d{4}) - )?(?P<album>[^/]+)(/` + discDir + `)?/(?P<track>\d+)[-. ]+(?P<artist>[^/]+) - (?P<title>[^/]+)$`)},
	// artist/year - album/cd # name/## - title
	{Expr: mustCompile(`^(.*/)?(?P<artist>[^/]+)/(?P<year>\d{4}) - (?P<album>[^/]+)/` + discDir + `/(?P<track>\d+)[-. ]+ (?P<title>[^/]+)$`)},
	// artist/year - album/## - title
	{Expr: mustCompile(`^(.*/)?(?P<artist>[^/]+)/(?P<year>\d{4}) - (?P<album>[^/]+)/(?P<track>\d+)[-. ]+ (?P<title>[^/]+)$`)},
	// artist - album/cd # name/## - title
	{Expr: mustCompile(`^(.*/)?(?P<artist>[^/]+) - (?P<album>[^/]+)/` + discDir + `/(?P<track>\d+)[-. ]+(?P<title>[^/]+)$`)},
	// artist/album/cd # name/## - title
	{Expr: mustCompile(`^(.*/)?(?P<artist>[^/]+)/(?P<album>[^/]+)/` + discDir + `/(?P<track>\d+)[-. ]+ (?P<title>[^/]+)$`)},
	// artist - album/## - title
	{Expr: mustCompile(`^(.*/)?(?P<artist>[^/]+) - (?P<album>[^/]+)/(?P<track>\d+)[-. ]+(?P<title>[^/]+)$`)},
	// artist/album/## - title
	{Expr: mustCompile(`^(.*/)?(?P<artist>[^/]+)/(?P<album>[^/]+)/(?P<track>\d+)[-. ]+ (?P<title>[^/]+)$`)},
}

func mustCompile(expr string) *regexp.Regexp {
	return regexp.MustCompile("(?i)" + expr)
}
