package media

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsSupportedExt(t *testing.T) {
	for _, ext := range []string{".mp3", ".MP3", ".wav", ".flac", ".ogg"} {
		if !IsSupportedExt(ext) {
			t.Fatalf("expected %s to be supported", ext)
		}
	}
	for _, ext := range []string{".aac", ".m4a", ".txt", ""} {
		if IsSupportedExt(ext) {
			t.Fatalf("expected %q to be unsupported", ext)
		}
	}
}

func TestSupportedExtsListMatchesSet(t *testing.T) {
	list := SupportedExtsList()
	for ext := range assetExts {
		if !strings.Contains(list, ext) {
			t.Fatalf("expected supported ext list to include %s, got %q", ext, list)
		}
	}
}

func TestScanAssetsFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"6th_E.mp3", "1st_e.MP3", "notes.txt", "3rd_G.wav"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.mp3"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := ScanAssets(dir)
	if err != nil {
		t.Fatalf("ScanAssets() error = %v", err)
	}
	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	if got, want := strings.Join(names, ","), "1st_e.MP3,3rd_G.wav,6th_E.mp3"; got != want {
		t.Fatalf("ScanAssets() = %s, want %s", got, want)
	}
}
