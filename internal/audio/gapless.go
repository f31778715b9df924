package audio

import (
	"encoding/binary"
	"errors"
	"io"
)

// mp3SynthesisDelay is the fixed decoder delay added on top of the encoder
// delay recorded in the LAME tag.
const mp3SynthesisDelay = 529

// gaplessProbe is how much of the first frame is read to find the LAME tag.
// It covers the frame header, side info and a Xing header with a full TOC.
const gaplessProbe = 512

var errNotLayer3 = errors.New("not an mpeg layer iii frame")

// readMP3GaplessTrim returns the priming and padding frames recorded by the
// encoder so a pluck starts on its attack instead of encoder silence. Assets
// without a LAME tag report zero trim.
func readMP3GaplessTrim(r io.ReadSeeker) (start, end int64, err error) {
	var id3 [10]byte
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, 0, err
	}
	if _, err := io.ReadFull(r, id3[:]); err != nil {
		return 0, 0, nil
	}
	if _, err := r.Seek(id3TagLength(id3[:]), io.SeekStart); err != nil {
		return 0, 0, err
	}

	frame := make([]byte, gaplessProbe)
	n, err := io.ReadFull(r, frame)
	if err != nil && err != io.ErrUnexpectedEOF {
		return 0, 0, nil
	}
	start, end, _ = lameTrim(frame[:n])
	return start, end, nil
}

// id3TagLength is the byte length of a leading ID3v2 tag, footer included,
// or 0 when the asset starts with audio.
func id3TagLength(h []byte) int64 {
	if len(h) < 10 || string(h[:3]) != "ID3" {
		return 0
	}
	size := int64(h[6]&0x7f)<<21 | int64(h[7]&0x7f)<<14 | int64(h[8]&0x7f)<<7 | int64(h[9]&0x7f)
	if h[5]&0x10 != 0 {
		size += 10
	}
	return 10 + size
}

// xingOffset locates the Xing/Info header inside a layer III frame: it
// follows the 4-byte header, the optional CRC and the side info.
func xingOffset(h []byte) (int, error) {
	if len(h) < 4 {
		return 0, io.ErrUnexpectedEOF
	}
	w := binary.BigEndian.Uint32(h)
	field := func(shift, mask uint32) uint32 { return (w >> shift) & mask }

	if field(21, 0x7ff) != 0x7ff || field(17, 0x3) != 0x1 || field(19, 0x3) == 0x1 {
		return 0, errNotLayer3
	}
	mpeg1 := field(19, 0x3) == 0x3
	mono := field(6, 0x3) == 0x3

	off := 4
	if field(16, 0x1) == 0 {
		off += 2
	}
	switch {
	case mpeg1 && !mono:
		off += 32
	case !mpeg1 && mono:
		off += 9
	default:
		off += 17
	}
	return off, nil
}

// lameTrim reads encoder delay and padding from the first frame of an mp3.
func lameTrim(frame []byte) (start, end int64, ok bool) {
	off, err := xingOffset(frame)
	if err != nil || len(frame) < off {
		return 0, 0, false
	}
	return parseLAMETag(frame[off:])
}

// parseLAMETag decodes the 12-bit delay and padding fields of a Xing/Info
// header followed by a LAME extension.
func parseLAMETag(b []byte) (start, end int64, ok bool) {
	if len(b) < 8 {
		return 0, 0, false
	}
	if tag := string(b[:4]); tag != "Xing" && tag != "Info" {
		return 0, 0, false
	}

	flags := binary.BigEndian.Uint32(b[4:8])
	off := 8
	for _, f := range []struct {
		bit  uint32
		size int
	}{{0x1, 4}, {0x2, 4}, {0x4, 100}, {0x8, 4}} {
		if flags&f.bit != 0 {
			off += f.size
		}
	}
	if len(b) < off+24 {
		return 0, 0, false
	}

	dp := b[off+21 : off+24]
	delay := int64(dp[0])<<4 | int64(dp[1]>>4)
	padding := int64(dp[1]&0x0f)<<8 | int64(dp[2])
	if delay == 0 && padding == 0 {
		return 0, 0, false
	}
	return delay + mp3SynthesisDelay, max(padding-mp3SynthesisDelay, 0), true
}
