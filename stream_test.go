package lmp

import (
	"encoding/binary"
	"io"
	"testing"
)

func TestPCMStreamLittleEndian(t *testing.T) {
	b := newModBuilder(1).
		setInstrument(1, 64, rampBytes(4096), 0, 4096).
		setNote(0, 0, 0, 254, 1, 0, 0)

	// Render the same module twice, once through FillBuffer and once
	// through the byte stream; the stream must be the little-endian
	// encoding of the sample stream.
	pRef := newTestPlayer(t, b, 44100)
	want := make([]int16, 2048)
	pRef.FillBuffer(want, MixStereoSoft)

	pStream := newTestPlayer(t, b, 44100)
	s := NewPCMStream(pStream, MixStereoSoft)
	got := make([]byte, 4096)
	n, err := io.ReadFull(s, got)
	if err != nil || n != len(got) {
		t.Fatalf("ReadFull = %d, %v", n, err)
	}

	for i, w := range want {
		if v := int16(binary.LittleEndian.Uint16(got[i*2:])); v != w {
			t.Fatalf("sample %d: stream has %d, player produced %d", i, v, w)
		}
	}
}

func TestPCMStreamWholeFrames(t *testing.T) {
	p := newTestPlayer(t, newModBuilder(1), 44100)
	s := NewPCMStream(p, MixStereoHard)

	// Stereo reads are truncated to whole frames (4 bytes).
	buf := make([]byte, 7)
	n, err := s.Read(buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Errorf("expected a single whole frame (4 bytes), got %d", n)
	}

	// A buffer too small for one frame reads nothing.
	if n, _ := s.Read(buf[:3]); n != 0 {
		t.Errorf("undersized read should return 0 bytes, got %d", n)
	}
}

func TestPCMStreamEOFAfterSongEnds(t *testing.T) {
	p := newTestPlayer(t, newModBuilder(1), 44100)
	p.SetOption(OptionSongLoop, false)
	s := NewPCMStream(p, MixMono)

	// One tick per read so the stream ends on a read boundary.
	buf := make([]byte, 882*2)
	var total int
	for i := 0; ; i++ {
		n, err := s.Read(buf)
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		if i > 1000 {
			t.Fatal("stream of a non-looping song never ended")
		}
	}

	// One silent pattern: 64 rows x 6 ticks less the 5 unplayed lead-out
	// ticks, at 882 frames per tick, 2 bytes per frame.
	if want := 379 * 882 * 2; total != want {
		t.Errorf("expected %d bytes before EOF, got %d", want, total)
	}

	if n, err := s.Read(buf); n != 0 || err != io.EOF {
		t.Errorf("expected persistent EOF, got %d, %v", n, err)
	}
}
