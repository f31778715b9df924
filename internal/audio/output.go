package audio

import (
	"bytes"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Output starts voices. Every Play call must begin a new, independent voice
// from the first sample; earlier voices keep sounding.
type Output interface {
	Play(pcm []byte) error
}

var (
	globalOtoCtx *oto.Context
	otoOnce      sync.Once
	otoInitErr   error
)

func initOto() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   playbackSampleRate,
			ChannelCount: playbackChannels,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return globalOtoCtx, otoInitErr
}

// otoOutput plays voices on the process-wide oto context.
type otoOutput struct {
	ctx    *oto.Context
	volume float64

	mu     sync.Mutex
	voices []*oto.Player
}

// NewOutput opens the audio device. volume is clamped to [0,1].
func NewOutput(volume float64) (Output, error) {
	ctx, err := initOto()
	if err != nil {
		return nil, err
	}
	return &otoOutput{ctx: ctx, volume: min(max(volume, 0), 1)}, nil
}

func (o *otoOutput) Play(pcm []byte) error {
	p := o.ctx.NewPlayer(bytes.NewReader(pcm))
	p.SetVolume(o.volume)
	p.Play()

	o.mu.Lock()
	defer o.mu.Unlock()

	// Players stay referenced until they drain.
	live := o.voices[:0]
	for _, v := range o.voices {
		if v.IsPlaying() {
			live = append(live, v)
		} else {
			v.Close()
		}
	}
	o.voices = append(live, p)
	return nil
}

// Silent discards every voice. It stands in when no audio device is present.
type Silent struct{}

func (Silent) Play([]byte) error { return nil }
