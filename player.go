package lmp

const (
	numChannels    = 4
	rowsPerPattern = 64
	maxVolume      = 64 // channel maximum volume

	defaultSpeed = 6
	defaultTempo = 125

	// 20.12 fixed-point split used for sample phase accumulators.
	fpShift = 12
	fpOne   = 1 << fpShift

	// Amiga period clamps, C-1 to B-3.
	periodMin = 113
	periodMax = 856

	// MOD note effects
	effectArpeggio       = 0x0
	effectPortamentoUp   = 0x1
	effectPortamentoDown = 0x2
	effectVolumeSlide    = 0xA
	effectPositionJump   = 0xB
	effectSetVolume      = 0xC
	effectPatternBrk     = 0xD
	effectExtended       = 0xE
	effectSetSpeed       = 0xF
)

// posRestart is parked in Player.pos by a jump-to-zero so the end-of-sequence
// check below the command loop catches B00 loops and off-the-end jumps alike.
const posRestart = 1 << 30

// MixMode selects how the four channels are folded into output samples.
type MixMode int

const (
	// MixMono averages all four channels into single samples.
	MixMono MixMode = iota
	// MixStereoHard applies the classic Amiga LRRL hard panning.
	MixStereoHard
	// MixStereoSoft blends the two channel pairs 3:1 for a gentler image.
	MixStereoSoft
)

// Option selects a Player behaviour toggle for SetOption.
type Option int

const (
	// OptionSongLoop controls whether the song restarts after the final
	// sequence position (default on).
	OptionSongLoop Option = iota
	// OptionTempo controls whether Fxx with a parameter >= 0x20 changes the
	// tempo (default on).
	OptionTempo
)

type slideKind uint8

const (
	slideNone slideKind = iota
	slideUp
	slideDown
)

// Loop progression for a playing sample: one-shot, first pass of a looped
// sample, or wrapped into the repeat window.
type loopState uint8

const (
	loopNone loopState = iota
	loopPending
	looping
)

type channel struct {
	on     bool
	inst   int // 0-based instrument index
	volume int
	pitch  int // Amiga period of the playing note

	pos uint32 // 20.12 position into the sample
	inc uint32 // 20.12 advance per output sample

	sample      []byte
	lenFP       uint32
	repeatPosFP uint32
	repeatEndFP uint32
	loop        loopState

	slide      slideKind
	slideParam byte
}

// Player generates audio from a Song. It must be initialized with NewPlayer.
// A Player is not safe for concurrent use; independent Players are.
type Player struct {
	*Song
	rate int

	Speed int // ticks per row
	Tempo int // MOD tempo, 125 = 50 ticks/s

	samplesPerTick int
	sampleCounter  int // output frames until the next tick
	tickCounter    int // ticks until the next row

	pos int // current sequence position
	row int // next row to process within the pattern

	songLoop     bool
	supportTempo bool
	done         bool

	channels [numChannels]channel
}

// ChannelState is a snapshot of one channel for display purposes.
type ChannelState struct {
	On         bool
	Instrument int // 0-based, meaningful while On
	Volume     int
	Period     int
}

// PlayerState is a point-in-time snapshot of the player position.
type PlayerState struct {
	Position int
	Pattern  int
	Row      int // next row to be processed
	Speed    int
	Tempo    int

	Channels [numChannels]ChannelState
}

// NewPlayer returns a Player producing audio at rate Hz. The player starts
// at the beginning of the song with the format defaults: speed 6, tempo 125,
// song looping on and tempo changes honoured.
func NewPlayer(song *Song, rate int) *Player {
	p := &Player{
		Song:         song,
		rate:         rate,
		Speed:        defaultSpeed,
		Tempo:        defaultTempo,
		songLoop:     true,
		supportTempo: true,
	}

	p.samplesPerTick = samplesFromTempo(p.Tempo, rate)
	p.sampleCounter = p.samplesPerTick
	// tickCounter 0 makes the first tick a row tick, so row 0 is processed
	// as soon as the clock fires.
	p.tickCounter = 0

	for i := range p.channels {
		p.channels[i].volume = maxVolume
	}

	return p
}

// SetOption toggles a player behaviour. Unrecognised options are ignored.
func (p *Player) SetOption(opt Option, enabled bool) {
	switch opt {
	case OptionSongLoop:
		p.songLoop = enabled
	case OptionTempo:
		p.supportTempo = enabled
	}
}

// Length returns the number of active entries in the song sequence.
func (p *Player) Length() int {
	return p.SequenceLength
}

// SetPosition jumps to a sequence position at row 0. Out of range positions
// are ignored. Jumping also clears the end-of-song state, so a stopped
// non-looping player resumes from the new position.
func (p *Player) SetPosition(pos int) {
	if pos < 0 || pos >= p.SequenceLength {
		return
	}
	p.pos = pos
	p.row = 0
	p.tickCounter = 0
	p.done = false
}

// State returns the current player position and channel snapshot.
func (p *Player) State() PlayerState {
	st := PlayerState{
		Position: p.pos,
		Row:      p.row,
		Speed:    p.Speed,
		Tempo:    p.Tempo,
	}
	if p.pos >= 0 && p.pos < p.SequenceLength {
		st.Pattern = int(p.Sequence[p.pos])
	}
	for i := range p.channels {
		c := &p.channels[i]
		st.Channels[i] = ChannelState{
			On:         c.on,
			Instrument: c.inst,
			Volume:     c.volume,
			Period:     c.pitch,
		}
	}
	return st
}

func samplesFromTempo(tempo, rate int) int {
	// 125 = 50Hz = rate/50 samples per tick.
	return (125 * rate / 50) / tempo
}

// phaseIncFromPeriod maps an Amiga period to a 20.12 phase increment.
// Period 254 (A-2) plays the nominally-14kHz instrument data 1:1, so the
// increment is (254*14000)/(rate*period) in fixed point. The numerator
// exceeds 32 bits, hence the 64-bit arithmetic.
func phaseIncFromPeriod(period, rate int) uint32 {
	if period <= 0 {
		return 0
	}
	return uint32((uint64(fpOne) * 254 * 14000) / (uint64(rate) * uint64(period)))
}

func (p *Player) setTempo(tempo int) {
	p.Tempo = tempo
	p.samplesPerTick = samplesFromTempo(tempo, p.rate)
}

// clockFrame advances the tick clock by one emitted output frame and fires
// the sequencer when a tick boundary is crossed. Returns true when the song
// has ended and looping is disabled.
func (p *Player) clockFrame() bool {
	p.sampleCounter--
	if p.sampleCounter == 0 {
		p.sampleCounter = p.samplesPerTick
		return p.sequenceTick()
	}
	return false
}

// sequenceTick processes one tick. On intermediate ticks only per-channel
// slide effects run; every Speed ticks the current row is read and its notes
// and commands applied. Returns true when the end of a non-looping song was
// reached.
func (p *Player) sequenceTick() bool {
	if p.tickCounter > 1 {
		for i := range p.channels {
			c := &p.channels[i]
			switch c.slide {
			case slideUp:
				c.pitch -= int(c.slideParam)
				if c.pitch < periodMin {
					c.pitch = periodMin
				}
				c.inc = phaseIncFromPeriod(c.pitch, p.rate)
			case slideDown:
				c.pitch += int(c.slideParam)
				if c.pitch > periodMax {
					c.pitch = periodMax
				}
				c.inc = phaseIncFromPeriod(c.pitch, p.rate)
			}
		}

		p.tickCounter--
		return false
	}

	p.tickCounter = p.Speed

	pattern := int(p.Sequence[p.pos])
	row := p.row

	debugf(2, "%02d(%02d):%02d\n", p.pos, pattern, row)

	// Advance first: the break and jump commands below overwrite p.row with
	// an absolute target.
	p.row++

	for ch := 0; ch < numChannels; ch++ {
		n := p.Song.NoteAt(pattern, row, ch)
		c := &p.channels[ch]

		// Slides only persist for the row that armed them.
		c.slide = slideNone

		if n.Period != 0 && n.Instrument <= len(p.Instruments) {
			p.trigger(c, n)
		}

		p.processCommand(c, n.Command, n.Param)
	}

	if p.row > rowsPerPattern-1 {
		p.pos++
		p.row = 0
		debugf(1, "Pos %d\n", p.pos)
	}

	if p.pos >= p.SequenceLength {
		p.pos = 0
		// This fires on the tick that reads the final row, so the ticks
		// that row would have lasted are not rendered.
		if !p.songLoop {
			return true
		}
	}

	return false
}

// trigger starts a note on a channel. Instrument 0 keeps the channel's
// current instrument and volume.
func (p *Player) trigger(c *channel, n Note) {
	if n.Instrument != 0 {
		c.inst = n.Instrument - 1
		c.volume = p.Instruments[c.inst].Volume
	}

	inst := &p.Instruments[c.inst]
	if inst.Length == 0 {
		c.on = false
		return
	}

	c.on = true
	c.sample = inst.Sample
	c.pos = 0
	c.lenFP = uint32(inst.Length) << fpShift
	if inst.LoopLen > 0 {
		c.loop = loopPending
		c.repeatPosFP = uint32(inst.LoopStart) << fpShift
		c.repeatEndFP = uint32(inst.LoopStart+inst.LoopLen) << fpShift
	} else {
		c.loop = loopNone
	}

	c.inc = phaseIncFromPeriod(n.Period, p.rate)
	c.pitch = n.Period
}

func (p *Player) processCommand(c *channel, command, param byte) {
	switch command {
	case effectArpeggio:
		// Param 0 is the no-op filler in unused cells; a real arpeggio is
		// not supported.
		if param != 0 {
			debugf(1, "Unsupported effect: Arpeggio %02x\n", param)
		}

	case effectPortamentoUp:
		c.slide = slideUp
		c.slideParam = param

	case effectPortamentoDown:
		c.slide = slideDown
		c.slideParam = param

	case effectVolumeSlide:
		// Signed parameter, clamped to 0-64.
		vol := c.volume + int(int8(param))
		if vol > maxVolume {
			vol = maxVolume
		}
		if vol < 0 {
			vol = 0
		}
		c.volume = vol

	case effectPositionJump:
		p.row = 0
		p.pos = int(param)
		if param == 0 {
			// Crude loop back to the start; the end-of-sequence check
			// catches this.
			p.pos = posRestart
		}

	case effectSetVolume:
		vol := int(param)
		if vol > maxVolume {
			vol = maxVolume
		}
		c.volume = vol

	case effectPatternBrk:
		// Note DECIMAL parameter.
		target := int(param>>4)*10 + int(param&0x0F)
		if target > rowsPerPattern-1 {
			debugf(1, "Pattern break to strange position %02x\n", param)
		} else {
			p.row = target
			p.pos++
		}

	case effectSetSpeed:
		if param > 0 && param < 0x1F {
			p.Speed = int(param)
			p.tickCounter = p.Speed
			debugf(2, "Set speed %02x\n", param)
		}
		if param >= 0x20 {
			if p.supportTempo {
				p.setTempo(int(param))
				debugf(2, "Set tempo %02x\n", param)
			} else {
				debugf(1, "Unsupported effect: Set tempo %02x\n", param)
			}
		}

	case effectExtended:
		debugf(1, "Unsupported effect: Extended cmd %02x\n", param)

	default:
		debugf(1, "Unsupported effect: %x:%02x\n", command, param)
	}
}
