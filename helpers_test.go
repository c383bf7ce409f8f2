package lmp

import (
	"encoding/binary"
	"testing"
)

// modBuilder assembles a synthetic 31-instrument MOD image in memory so
// tests can exercise the loader and player without fixture files.
type modBuilder struct {
	title     string
	sequence  []byte
	patterns  [][]byte // 1024 bytes each
	instdata  [31][]byte
	instvol   [31]int
	loopStart [31]int
	loopLen   [31]int
}

func newModBuilder(numPatterns int) *modBuilder {
	b := &modBuilder{
		title:    "testsong",
		sequence: []byte{0},
	}
	for i := 0; i < numPatterns; i++ {
		b.patterns = append(b.patterns, make([]byte, patternBytes))
	}
	for i := range b.instvol {
		b.instvol[i] = maxVolume
	}
	return b
}

func (b *modBuilder) setSequence(seq ...byte) *modBuilder {
	b.sequence = seq
	return b
}

// setInstrument assigns sample data and loop window (in bytes) to the
// 1-based instrument number used in note cells.
func (b *modBuilder) setInstrument(num int, vol int, data []byte, loopStart, loopLen int) *modBuilder {
	b.instdata[num-1] = data
	b.instvol[num-1] = vol
	b.loopStart[num-1] = loopStart
	b.loopLen[num-1] = loopLen
	return b
}

// setNote places a cell. inst is 1-based, 0 = no instrument change.
func (b *modBuilder) setNote(pattern, row, ch, period, inst int, command, param byte) *modBuilder {
	cell := b.patterns[pattern][(row*numChannels+ch)*4:]
	cell[0] = byte(period>>8)&0x0F | byte(inst)&0xF0
	cell[1] = byte(period)
	cell[2] = byte(inst)<<4 | command&0x0F
	cell[3] = param
	return b
}

func (b *modBuilder) build() []byte {
	size := offPatterns31 + len(b.patterns)*patternBytes
	for _, d := range b.instdata {
		size += len(d)
	}
	mod := make([]byte, 0, size)

	title := make([]byte, 20)
	copy(title, b.title)
	mod = append(mod, title...)

	for i := 0; i < 31; i++ {
		rec := make([]byte, instRecordLen)
		copy(rec, "ins")
		binary.BigEndian.PutUint16(rec[22:24], uint16(len(b.instdata[i])/2))
		rec[25] = byte(b.instvol[i])
		binary.BigEndian.PutUint16(rec[26:28], uint16(b.loopStart[i]/2))
		binary.BigEndian.PutUint16(rec[28:30], uint16(b.loopLen[i]/2))
		mod = append(mod, rec...)
	}

	mod = append(mod, byte(len(b.sequence)), 0x7F)
	seq := make([]byte, sequenceEntries)
	copy(seq, b.sequence)
	mod = append(mod, seq...)
	mod = append(mod, "M.K."...)

	for _, p := range b.patterns {
		mod = append(mod, p...)
	}
	for _, d := range b.instdata {
		mod = append(mod, d...)
	}

	return mod
}

func newTestPlayer(t *testing.T, b *modBuilder, rate int) *Player {
	t.Helper()
	song, err := NewSongFromBytes(b.build())
	if err != nil {
		t.Fatalf("could not parse test module: %v", err)
	}
	return NewPlayer(song, rate)
}

// rampBytes returns n bytes counting up from 0, i.e. a sawtooth when read
// as signed 8-bit: rising to 127, wrapping to -128, rising again to -1.
func rampBytes(n int) []byte {
	d := make([]byte, n)
	for i := range d {
		d[i] = byte(i)
	}
	return d
}

// flatBytes returns n copies of value v.
func flatBytes(v byte, n int) []byte {
	d := make([]byte, n)
	for i := range d {
		d[i] = v
	}
	return d
}

// advanceToNextRow runs sequencer ticks until the row cursor moves.
func advanceToNextRow(p *Player) bool {
	old := p.row
	done := false
	for old == p.row {
		done = p.sequenceTick() || done
	}
	return done
}
