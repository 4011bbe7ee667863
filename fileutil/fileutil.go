package fileutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.senan.xyz/natcmp"
)

func GlobEscape(path string) string {
	var r strings.Builder
	for _, c := range path {
		switch c {
		case '*', '?', '[':
			r.WriteRune('[')
			r.WriteRune(c)
			r.WriteRune(']')
		default:
			r.WriteRune(c)
		}
	}
	return r.String()
}

func GlobBase(dir, pattern string) ([]string, error) {
	return filepath.Glob(filepath.Join(GlobEscape(dir), pattern))
}

var safePathReplacer = strings.NewReplacer(
	"\x00", "",
	":", "",
	"/", " ",
	`\`, " ",
)

// SafePath makes s usable as a single path element.
func SafePath(s string) string {
	s = safePathReplacer.Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// WalkAudio calls fn for every file under root that accept reports true for,
// visiting each directory's entries in natural order so "2 x" comes before
// "10 x". An error from fn stops the walk.
func WalkAudio(root string, accept func(string) bool, fn func(path string) error) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	slices.SortFunc(entries, func(a, b fs.DirEntry) int {
		return natcmp.Compare(a.Name(), b.Name())
	})
	for _, e := range entries {
		path := filepath.Join(root, e.Name())
		if e.IsDir() {
			if err := WalkAudio(path, accept, fn); err != nil {
				return err
			}
			continue
		}
		if !accept(path) {
			continue
		}
		if err := fn(path); err != nil {
			return err
		}
	}
	return nil
}
