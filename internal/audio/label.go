package audio

import (
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
)

// ReadLabel returns the ID3v2 title of an asset, falling back to the
// filename without extension.
func ReadLabel(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".mp3") {
		tag, err := id3v2.Open(path, id3v2.Options{Parse: true, ParseFrames: []string{"Title"}})
		if err == nil {
			defer tag.Close()
			if title := strings.TrimSpace(tag.Title()); title != "" {
				return title
			}
		}
	}

	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
