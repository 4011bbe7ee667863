package tags

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PointerExt marks small JSON files that stand in for a media file stored
// elsewhere, {"original": "../where/it/is.flac"}.
const PointerExt = ".emp"

var ErrPointer = errors.New("invalid pointer file")

type pointer struct {
	Original string `json:"original"`
}

// ResolvePointer returns the media file path points to. A relative original is
// taken from the pointer's directory. Paths that are not pointer files are
// returned unchanged.
func ResolvePointer(path string) (string, error) {
	if !strings.EqualFold(filepath.Ext(path), PointerExt) {
		return path, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read pointer: %w", err)
	}
	var p pointer
	if err := json.Unmarshal(data, &p); err != nil {
		return "", fmt.Errorf("%w: %w", ErrPointer, err)
	}
	if p.Original == "" {
		return "", fmt.Errorf("%w: no original", ErrPointer)
	}
	if strings.EqualFold(filepath.Ext(p.Original), PointerExt) {
		return "", fmt.Errorf("%w: points to another pointer", ErrPointer)
	}
	if filepath.IsAbs(p.Original) {
		return p.Original, nil
	}
	return filepath.Join(filepath.Dir(path), filepath.FromSlash(p.Original)), nil
}
