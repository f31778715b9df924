package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// ErrUnsupportedFormat is returned for assets whose extension has no decoder.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// source produces interleaved 16-bit samples at the asset's native rate,
// one chunk per call.
type source interface {
	// next appends the next chunk to dst. It returns io.EOF once the asset
	// is exhausted.
	next(dst []int16) ([]int16, error)
	rate() int
	channels() int
}

// trimmer is implemented by sources that know how many priming and padding
// frames to discard.
type trimmer interface {
	trim() (start, end int64)
}

// openSource picks a source by the extension of name.
func openSource(r io.ReadSeeker, name string) (source, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".mp3":
		return newMP3Source(r)
	case ".wav":
		return newWAVSource(r)
	case ".flac":
		return newFLACSource(r)
	case ".ogg":
		return newOGGSource(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

type mp3Source struct {
	dec        *mp3.Decoder
	buf        []byte
	start, end int64
}

func newMP3Source(r io.ReadSeeker) (*mp3Source, error) {
	start, end, err := readMP3GaplessTrim(r)
	if err != nil {
		return nil, fmt.Errorf("reading mp3 gapless info: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("decoding mp3: %w", err)
	}
	return &mp3Source{dec: dec, buf: make([]byte, decodeChunk), start: start, end: end}, nil
}

func (s *mp3Source) next(dst []int16) ([]int16, error) {
	n, err := s.dec.Read(s.buf)
	for i := 0; i+1 < n; i += 2 {
		dst = append(dst, int16(binary.LittleEndian.Uint16(s.buf[i:])))
	}
	if n > 0 && err == io.EOF {
		err = nil
	}
	return dst, err
}

func (s *mp3Source) rate() int { return s.dec.SampleRate() }

// go-mp3 always emits stereo.
func (s *mp3Source) channels() int        { return 2 }
func (s *mp3Source) trim() (int64, int64) { return s.start, s.end }

type wavSource struct {
	dec   *wav.Decoder
	buf   *goaudio.IntBuffer
	depth int
}

func newWAVSource(r io.ReadSeeker) (*wavSource, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, errors.New("invalid wav file")
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("reading wav pcm data: %w", err)
	}
	depth := int(dec.BitDepth)
	switch depth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d-bit wav", ErrUnsupportedFormat, depth)
	}
	return &wavSource{
		dec: dec,
		buf: &goaudio.IntBuffer{
			Format:         dec.Format(),
			Data:           make([]int, decodeChunk/2),
			SourceBitDepth: depth,
		},
		depth: depth,
	}, nil
}

func (s *wavSource) next(dst []int16) ([]int16, error) {
	n, err := s.dec.PCMBuffer(s.buf)
	if err != nil && err != io.EOF {
		return dst, err
	}
	if n == 0 {
		return dst, io.EOF
	}
	for _, v := range s.buf.Data[:n] {
		dst = append(dst, toInt16(v, s.depth))
	}
	return dst, nil
}

func (s *wavSource) rate() int     { return int(s.dec.SampleRate) }
func (s *wavSource) channels() int { return int(s.dec.NumChans) }

// toInt16 rescales a wav sample of the given bit depth. 8-bit wav is
// unsigned.
func toInt16(v, depth int) int16 {
	switch depth {
	case 8:
		return int16((v - 128) << 8)
	case 24:
		return int16(v >> 8)
	case 32:
		return int16(v >> 16)
	default:
		return clampPCM16(v)
	}
}

type flacSource struct {
	stream *flac.Stream
}

func newFLACSource(r io.Reader) (*flacSource, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("decoding flac: %w", err)
	}
	return &flacSource{stream: stream}, nil
}

func (s *flacSource) next(dst []int16) ([]int16, error) {
	frame, err := s.stream.ParseNext()
	if err != nil {
		return dst, err
	}
	shift := int(s.stream.Info.BitsPerSample) - 16
	for i := range int(frame.Subframes[0].NSamples) {
		for _, sub := range frame.Subframes {
			v := int(sub.Samples[i])
			if shift > 0 {
				v >>= shift
			} else {
				v <<= -shift
			}
			dst = append(dst, clampPCM16(v))
		}
	}
	return dst, nil
}

func (s *flacSource) rate() int     { return int(s.stream.Info.SampleRate) }
func (s *flacSource) channels() int { return int(s.stream.Info.NChannels) }

type oggSource struct {
	reader *oggvorbis.Reader
	buf    []float32
}

func newOGGSource(r io.Reader) (*oggSource, error) {
	reader, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("decoding ogg: %w", err)
	}
	return &oggSource{reader: reader, buf: make([]float32, decodeChunk/2)}, nil
}

func (s *oggSource) next(dst []int16) ([]int16, error) {
	n, err := s.reader.Read(s.buf)
	for _, v := range s.buf[:n] {
		dst = append(dst, int16(min(max(v, -1), 1)*32767))
	}
	if n > 0 && err == io.EOF {
		err = nil
	}
	return dst, err
}

func (s *oggSource) rate() int     { return s.reader.SampleRate() }
func (s *oggSource) channels() int { return s.reader.Channels() }

func clampPCM16(v int) int16 {
	return int16(min(max(v, -32768), 32767))
}
