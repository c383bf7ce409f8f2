package lmp

import (
	"encoding/binary"
	"io"
)

// PCMStream adapts a Player to io.Reader, producing 16-bit little-endian
// PCM bytes regardless of host byte order. This is the format audio device
// layers such as oto expect, so a PCMStream can be handed straight to
// an audio context's player.
//
// Reads return io.EOF once a non-looping song has ended; a looping song
// streams forever.
type PCMStream struct {
	player *Player
	mode   MixMode

	scratch []int16
	done    bool
}

const streamScratchLen = 4096 // samples, grown on demand

// NewPCMStream returns a byte stream of p's output in the given mix mode.
// The stream drives p's playback position; do not mix Read with direct
// FillBuffer calls on the same player.
func NewPCMStream(p *Player, mode MixMode) *PCMStream {
	return &PCMStream{
		player:  p,
		mode:    mode,
		scratch: make([]int16, streamScratchLen),
	}
}

// Read fills b with little-endian s16 PCM. It always consumes b in whole
// samples, and in whole frames for the stereo modes.
func (s *PCMStream) Read(b []byte) (int, error) {
	if s.done {
		return 0, io.EOF
	}

	n := len(b) / 2
	if s.mode != MixMono {
		n &^= 1
	}
	if n == 0 {
		return 0, nil
	}
	if n > len(s.scratch) {
		s.scratch = make([]int16, n)
	}

	more := s.player.FillBuffer(s.scratch[:n], s.mode)
	for i, v := range s.scratch[:n] {
		binary.LittleEndian.PutUint16(b[i*2:], uint16(v))
	}
	if !more {
		s.done = true
	}

	return n * 2, nil
}
