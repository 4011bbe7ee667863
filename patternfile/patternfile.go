// Package patternfile loads extra path templates from a YAML file, a list of
//
//	- pattern: ^(?P<artist>[^/]+)/(?P<album>[^/]+)/(?P<track>\d+)_(?P<title>[^/]+)$
//	  compilation: va
package patternfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"gopkg.in/yaml.v2"

	"go.senan.xyz/pathtag/fileutil"
	"go.senan.xyz/pathtag/metadata"
)

const dirPat = "patterns.y*ml"

var ErrInvalidEntry = errors.New("invalid entry")

type Entry struct {
	Pattern     string          `yaml:"pattern"`
	Compilation metadata.VAType `yaml:"compilation"`
}

type PatternFile struct {
	Path    string
	Entries []Entry
}

// Find parses the first pattern file in dir, if there is one.
func Find(dir string) (*PatternFile, error) {
	matches, err := fileutil.GlobBase(dir, dirPat)
	if err != nil {
		return nil, fmt.Errorf("glob for pattern file: %w", err)
	}
	if len(matches) == 0 {
		return nil, nil
	}

	match := matches[0]
	res, err := Parse(match)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return res, nil
}

func Parse(path string) (*PatternFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	res, err := Decode(f)
	if err != nil {
		return nil, err
	}
	res.Path = path
	return res, nil
}

func Decode(r io.Reader) (*PatternFile, error) {
	var res PatternFile
	if err := yaml.NewDecoder(r).Decode(&res.Entries); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse pattern file: %w", err)
	}
	return &res, nil
}

// Apply appends every entry to reg in file order. If any entry is invalid,
// nothing is appended.
func (pf *PatternFile) Apply(reg *metadata.Registry) error {
	exprs := make([]*regexp.Regexp, 0, len(pf.Entries))
	for i, e := range pf.Entries {
		if e.Pattern == "" {
			return fmt.Errorf("%w %d: no pattern", ErrInvalidEntry, i)
		}
		if e.Compilation != "" {
			if _, ok := metadata.ParseVAType(string(e.Compilation)); !ok {
				return fmt.Errorf("%w %d: unknown compilation type %q", ErrInvalidEntry, i, e.Compilation)
			}
		}
		expr, err := regexp.Compile(e.Pattern)
		if err != nil {
			return fmt.Errorf("%w %d: %w", ErrInvalidEntry, i, err)
		}
		exprs = append(exprs, expr)
	}
	for i, expr := range exprs {
		reg.Add(expr, pf.Entries[i].Compilation)
	}
	return nil
}

func (pf *PatternFile) String() string {
	return fmt.Sprintf("%s (%d patterns)", pf.Path, len(pf.Entries))
}
