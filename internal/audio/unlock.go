package audio

import "sync/atomic"

// Unlock is the first-interaction gate. Hosts that only permit audio after a
// user gesture keep it closed until that gesture arrives. A nil *Unlock is
// always open.
type Unlock struct {
	open atomic.Bool
}

// Open permits playback from now on. It cannot be closed again.
func (u *Unlock) Open() { u.open.Store(true) }

func (u *Unlock) IsOpen() bool {
	return u == nil || u.open.Load()
}
