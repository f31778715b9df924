package audio

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

func pcmFrames(b []byte) [][2]int16 {
	frames := make([][2]int16, len(b)/playbackFrameSize)
	for i := range frames {
		off := i * playbackFrameSize
		frames[i][0] = int16(binary.LittleEndian.Uint16(b[off:]))
		frames[i][1] = int16(binary.LittleEndian.Uint16(b[off+2:]))
	}
	return frames
}

func TestNormalizePassthrough(t *testing.T) {
	in := []int16{1, -1, 2, -2, 3, -3}
	got := pcmFrames(normalize(in, playbackSampleRate, 2))
	want := [][2]int16{{1, -1}, {2, -2}, {3, -3}}
	if len(got) != len(want) {
		t.Fatalf("got %d frames, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frame %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNormalizeMonoDuplicatesChannel(t *testing.T) {
	got := pcmFrames(normalize([]int16{100, 200}, playbackSampleRate, 1))
	if len(got) != 2 || got[0] != [2]int16{100, 100} || got[1] != [2]int16{200, 200} {
		t.Fatalf("unexpected frames %v", got)
	}
}

func TestNormalizeUpsamplesByInterpolation(t *testing.T) {
	got := pcmFrames(normalize([]int16{0, 0, 1000, 1000}, 24000, 2))
	if len(got) != 4 {
		t.Fatalf("got %d frames, want 4", len(got))
	}
	if got[1][0] != 500 || got[2][0] != 1000 || got[3][0] != 1000 {
		t.Fatalf("unexpected interpolation %v", got)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	if got := normalize(nil, 44100, 2); got != nil {
		t.Fatalf("expected nil for empty input, got %d bytes", len(got))
	}
}

func TestTrimFrames(t *testing.T) {
	s := []int16{1, 1, 2, 2, 3, 3, 4, 4}
	got := trimFrames(s, 2, 1, 1)
	if len(got) != 4 || got[0] != 2 || got[3] != 3 {
		t.Fatalf("trimFrames = %v", got)
	}
	if got := trimFrames(s, 2, 3, 1); len(got) != 0 {
		t.Fatalf("expected over-trim to empty, got %v", got)
	}
}

func writeWAV(t *testing.T, path string, rate, channels int, data []int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, rate, 16, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode wav: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close wav: %v", err)
	}
}

func TestDecodeWAVNormalizesToPlaybackFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "1st_e.wav")
	data := make([]int, 24000)
	for i := range data {
		data[i] = (i % 200) * 100
	}
	writeWAV(t, path, 24000, 1, data)

	pcm, err := Decode(context.Background(), path)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if want := 48000 * playbackFrameSize; len(pcm) != want {
		t.Fatalf("Decode() = %d bytes, want %d", len(pcm), want)
	}
	frames := pcmFrames(pcm)
	if frames[2][0] != 100 || frames[2][1] != 100 {
		t.Fatalf("frame 2 = %v, want {100 100}", frames[2])
	}
}

func TestDecodeRejectsUnsupportedExtension(t *testing.T) {
	_, err := Decode(context.Background(), "take.aac")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Decode() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestDecodeMalformedAsset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.wav")
	if err := os.WriteFile(path, []byte("not a riff file"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(context.Background(), path); err == nil {
		t.Fatal("expected malformed WAV to fail")
	}
}

func TestDecodeHonoursCancellation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2nd_B.wav")
	writeWAV(t, path, 48000, 2, make([]int, 4096))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Decode(ctx, path); !errors.Is(err, context.Canceled) {
		t.Fatalf("Decode() error = %v, want context.Canceled", err)
	}
}

type chunkSource struct {
	chunks [][]int16
	start  int64
	end    int64
}

func (s *chunkSource) next(dst []int16) ([]int16, error) {
	if len(s.chunks) == 0 {
		return dst, io.EOF
	}
	dst = append(dst, s.chunks[0]...)
	s.chunks = s.chunks[1:]
	return dst, nil
}

func (s *chunkSource) rate() int            { return playbackSampleRate }
func (s *chunkSource) channels() int        { return 1 }
func (s *chunkSource) trim() (int64, int64) { return s.start, s.end }

func TestDecodeAllJoinsChunksAndTrims(t *testing.T) {
	src := &chunkSource{chunks: [][]int16{{1, 2}, {3, 4}, {5}}, start: 1, end: 1}
	pcm, err := decodeAll(context.Background(), src)
	if err != nil {
		t.Fatalf("decodeAll() error = %v", err)
	}
	got := pcmFrames(pcm)
	want := [][2]int16{{2, 2}, {3, 3}, {4, 4}}
	if len(got) != len(want) {
		t.Fatalf("got %d frames, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frame %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestToInt16(t *testing.T) {
	tests := []struct {
		v, depth int
		want     int16
	}{
		{128, 8, 0},
		{255, 8, 127 << 8},
		{-1234, 16, -1234},
		{0x7FFFFF, 24, 0x7FFF},
		{-0x800000, 24, -0x8000},
		{0x7FFFFFFF, 32, 0x7FFF},
		{40000, 16, 32767},
	}
	for _, tt := range tests {
		if got := toInt16(tt.v, tt.depth); got != tt.want {
			t.Errorf("toInt16(%d, %d) = %d, want %d", tt.v, tt.depth, got, tt.want)
		}
	}
}
