package audio

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type recordingOutput struct {
	mu    sync.Mutex
	plays [][]byte
	err   error
}

func (o *recordingOutput) Play(pcm []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return o.err
	}
	o.plays = append(o.plays, pcm)
	return nil
}

func (o *recordingOutput) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.plays)
}

// gatedDecoder blocks until release is closed.
func gatedDecoder(release <-chan struct{}, pcm []byte, err error) DecodeFunc {
	return func(ctx context.Context, _ string) ([]byte, error) {
		select {
		case <-release:
			return pcm, err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func waitDone(t *testing.T, c *Cue) {
	t.Helper()
	select {
	case <-c.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for cue decode")
	}
}

func openUnlock() *Unlock {
	u := new(Unlock)
	u.Open()
	return u
}

func TestTriggerBeforeDecodeIsSilentNoop(t *testing.T) {
	out := &recordingOutput{}
	release := make(chan struct{})
	c := NewCue("1st_e.mp3", out, openUnlock(), WithDecoder(gatedDecoder(release, []byte{1, 2, 3, 4}, nil)))
	defer c.Close()

	if c.Trigger() {
		t.Fatal("expected Trigger before Preload to report no playback")
	}
	c.Preload(context.Background())
	if c.Ready() || c.Trigger() {
		t.Fatal("expected cue to stay silent while decoding")
	}
	if out.count() != 0 {
		t.Fatalf("expected no voices, got %d", out.count())
	}

	close(release)
	waitDone(t, c)

	if !c.Ready() {
		t.Fatalf("expected ready after decode, err = %v", c.Err())
	}
	if !c.Trigger() {
		t.Fatal("expected Trigger to start a voice once ready")
	}
	if out.count() != 1 {
		t.Fatalf("expected 1 voice, got %d", out.count())
	}
}

func TestTriggerOverlapsVoices(t *testing.T) {
	out := &recordingOutput{}
	release := make(chan struct{})
	close(release)
	pcm := []byte{9, 9, 9, 9}
	c := NewCue("2nd_B.mp3", out, openUnlock(), WithDecoder(gatedDecoder(release, pcm, nil)))
	c.Preload(context.Background())
	waitDone(t, c)

	for range 3 {
		c.Trigger()
	}
	if out.count() != 3 {
		t.Fatalf("expected 3 overlapping voices, got %d", out.count())
	}
	for _, p := range out.plays {
		if &p[0] != &pcm[0] {
			t.Fatal("expected every voice to start from the shared buffer head")
		}
	}
}

func TestTriggerRespectsUnlockGate(t *testing.T) {
	out := &recordingOutput{}
	release := make(chan struct{})
	close(release)
	unlock := new(Unlock)
	c := NewCue("3rd_G.mp3", out, unlock, WithDecoder(gatedDecoder(release, []byte{1, 1, 1, 1}, nil)))
	c.Preload(context.Background())
	waitDone(t, c)

	if c.Trigger() {
		t.Fatal("expected closed unlock gate to suppress playback")
	}
	unlock.Open()
	if !c.Trigger() {
		t.Fatal("expected playback after unlock")
	}
}

func TestDecodeFailureIsTerminal(t *testing.T) {
	out := &recordingOutput{}
	release := make(chan struct{})
	close(release)
	boom := errors.New("malformed asset")
	c := NewCue("4th_D.mp3", out, openUnlock(), WithDecoder(gatedDecoder(release, nil, boom)))
	c.Preload(context.Background())
	waitDone(t, c)

	if c.Ready() {
		t.Fatal("expected failed cue to stay not ready")
	}
	if !errors.Is(c.Err(), boom) {
		t.Fatalf("Err() = %v, want %v", c.Err(), boom)
	}
	if c.Trigger() || out.count() != 0 {
		t.Fatal("expected failed cue to stay silent")
	}

	// A second Preload does not retry.
	c.Preload(context.Background())
	if c.Ready() {
		t.Fatal("expected no retry")
	}
}

func TestCloseAbandonsPendingDecode(t *testing.T) {
	out := &recordingOutput{}
	c := NewCue("5th_A.mp3", out, openUnlock(), WithDecoder(gatedDecoder(make(chan struct{}), []byte{1, 1, 1, 1}, nil)))
	c.Preload(context.Background())
	c.Close()
	waitDone(t, c)

	if !errors.Is(c.Err(), ErrClosed) {
		t.Fatalf("Err() = %v, want ErrClosed", c.Err())
	}
	if c.Ready() || c.Trigger() {
		t.Fatal("expected closed cue to stay silent")
	}
}

func TestCloseReleasesBuffer(t *testing.T) {
	out := &recordingOutput{}
	release := make(chan struct{})
	close(release)
	c := NewCue("6th_E.mp3", out, openUnlock(), WithDecoder(gatedDecoder(release, []byte{1, 1, 1, 1}, nil)))
	c.Preload(context.Background())
	waitDone(t, c)
	c.Trigger()

	c.Close()
	c.Close()
	if c.Ready() || c.Trigger() {
		t.Fatal("expected no playback after Close")
	}
	if out.count() != 1 {
		t.Fatalf("expected the earlier voice only, got %d", out.count())
	}
}

func TestCloseWithoutPreloadSignalsDone(t *testing.T) {
	c := NewCue("x.mp3", nil, nil)
	c.Close()
	waitDone(t, c)
	c.Preload(context.Background())
	if c.Ready() {
		t.Fatal("expected Preload after Close to do nothing")
	}
}

func TestPlaybackErrorReportsNoVoice(t *testing.T) {
	out := &recordingOutput{err: errors.New("device lost")}
	release := make(chan struct{})
	close(release)
	c := NewCue("1st_e.mp3", out, nil, WithDecoder(gatedDecoder(release, []byte{1, 1, 1, 1}, nil)))
	c.Preload(context.Background())
	waitDone(t, c)
	if c.Trigger() {
		t.Fatal("expected Trigger to report failure when the output errors")
	}
}
