package media

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var assetExts = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".flac": true,
	".ogg":  true,
}

// IsSupportedExt returns true if the extension is a decodable string asset format.
func IsSupportedExt(ext string) bool {
	return assetExts[strings.ToLower(ext)]
}

// SupportedExtsList returns a human-readable list of supported asset formats.
func SupportedExtsList() string {
	return ".mp3, .wav, .flac, .ogg"
}

// ScanAssets returns the supported asset files directly inside dir, sorted
// case-insensitively by name.
func ScanAssets(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !IsSupportedExt(filepath.Ext(e.Name())) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}

	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(filepath.Base(files[i])) < strings.ToLower(filepath.Base(files[j]))
	})
	return files, nil
}
