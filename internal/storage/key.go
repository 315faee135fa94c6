package storage

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTile is returned when nothing usable is left of a tile id after
// sanitization.
var ErrInvalidTile = errors.New("invalid tile identifier")

const artifactExt = ".json"

// SanitizeTile strips the decoration upstream callers tend to add to tile
// ids (surrounding quotes, a b'...' byte-string marker) so that logically
// identical ids map to the same key. Path separators are replaced so a key
// never escapes the storage root.
func SanitizeTile(tile string) (string, error) {
	s := strings.TrimSpace(tile)
	if strings.HasPrefix(s, "b'") || strings.HasPrefix(s, `b"`) {
		s = s[1:]
	}
	s = strings.NewReplacer("'", "", `"`, "").Replace(s)
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("/", "_", `\`, "_").Replace(s)

	if s == "" || s == "." || s == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidTile, tile)
	}
	return s, nil
}

// ArtifactKey is the storage key for a tile's artifact.
func ArtifactKey(tile string) (string, error) {
	s, err := SanitizeTile(tile)
	if err != nil {
		return "", err
	}
	return s + artifactExt, nil
}
