package audio

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/olivier-w/strumspace/internal/media"
)

const (
	playbackSampleRate     = 48000
	playbackChannels       = 2
	playbackBytesPerSample = 2
	playbackFrameSize      = playbackChannels * playbackBytesPerSample

	decodeChunk = 64 * 1024
)

// DecodeFunc turns an asset path into playback-ready PCM.
type DecodeFunc func(ctx context.Context, path string) ([]byte, error)

// Decode reads the whole asset at path and returns it as 48 kHz stereo
// s16le PCM. Cancelling ctx abandons the decode between chunks.
func Decode(ctx context.Context, path string) ([]byte, error) {
	if ext := filepath.Ext(path); !media.IsSupportedExt(ext) {
		return nil, fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedFormat, ext, media.SupportedExtsList())
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, err := openSource(f, path)
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, src)
}

func decodeAll(ctx context.Context, src source) ([]byte, error) {
	channels := src.channels()
	if channels < 1 {
		return nil, fmt.Errorf("unsupported channel count: %d", channels)
	}
	rate := src.rate()
	if rate <= 0 {
		return nil, fmt.Errorf("unsupported sample rate: %d", rate)
	}

	var samples []int16
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var err error
		samples, err = src.next(samples)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	if t, ok := src.(trimmer); ok {
		start, end := t.trim()
		samples = trimFrames(samples, channels, start, end)
	}
	return normalize(samples, rate, channels), nil
}

// trimFrames drops start leading and end trailing frames.
func trimFrames(samples []int16, channels int, start, end int64) []int16 {
	frames := int64(len(samples) / channels)
	if start+end >= frames {
		return samples[:0]
	}
	return samples[start*int64(channels) : (frames-end)*int64(channels)]
}

// normalize converts interleaved samples at rate/channels to 48 kHz stereo
// s16le, resampling by linear interpolation. Mono is duplicated to both
// channels; channels past the second are dropped.
func normalize(samples []int16, rate, channels int) []byte {
	srcFrames := int64(len(samples) / channels)
	if srcFrames == 0 {
		return nil
	}

	frameAt := func(i int64) (l, r int16) {
		base := i * int64(channels)
		l = samples[base]
		r = l
		if channels > 1 {
			r = samples[base+1]
		}
		return l, r
	}

	outFrames := srcFrames * playbackSampleRate / int64(rate)
	if outFrames == 0 {
		outFrames = 1
	}
	out := make([]byte, outFrames*playbackFrameSize)

	for i := range outFrames {
		var l, r int16
		if rate == playbackSampleRate {
			l, r = frameAt(i)
		} else {
			num := i * int64(rate)
			src := num / playbackSampleRate
			frac := float64(num%playbackSampleRate) / playbackSampleRate
			l0, r0 := frameAt(src)
			l1, r1 := l0, r0
			if src+1 < srcFrames {
				l1, r1 = frameAt(src + 1)
			}
			l = lerp16(l0, l1, frac)
			r = lerp16(r0, r1, frac)
		}
		off := i * playbackFrameSize
		binary.LittleEndian.PutUint16(out[off:], uint16(l))
		binary.LittleEndian.PutUint16(out[off+playbackBytesPerSample:], uint16(r))
	}
	return out
}

func lerp16(a, b int16, t float64) int16 {
	return clampPCM16(int(float64(a) + (float64(b)-float64(a))*t))
}
