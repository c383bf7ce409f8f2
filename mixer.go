package lmp

// Per-frame synthesis and mixdown. Each emitted output frame renders all
// four channels and then advances the tick clock, so tempo changes land on
// exact frame boundaries regardless of the caller's buffer sizes.

// renderFrame produces one output sample per channel, advancing channel
// phase and loop state. Channel samples fit in 17 bits signed (8-bit data
// scaled by 256 then volume-scaled), so four of them sum safely in an int32.
func (p *Player) renderFrame(frame *[numChannels]int32) {
	for i := range p.channels {
		c := &p.channels[i]
		if !c.on {
			frame[i] = 0
			continue
		}

		ip := int(c.pos >> fpShift)
		frac := int32(c.pos & (fpOne - 1))
		if ip >= len(c.sample) {
			// Can only happen with degenerate loop metadata; hold the final
			// sample rather than run off the module blob.
			ip = len(c.sample) - 1
		}

		c1 := int32(int8(c.sample[ip])) * 0x100
		c2 := c1
		if ip+1 < int(c.lenFP>>fpShift) {
			c2 = int32(int8(c.sample[ip+1])) * 0x100
		}

		// Linear interpolate between c1 and c2 on the fractional phase.
		s := (c1*(fpOne-frac) + c2*frac) >> fpShift
		s = s * int32(c.volume) / maxVolume

		c.pos += c.inc

		if c.loop != looping && c.pos > c.lenFP {
			if c.loop == loopNone {
				c.on = false
			} else {
				c.loop = looping
			}
		}
		if c.loop == looping && c.pos > c.repeatEndFP {
			c.pos = c.repeatPosFP
		}

		frame[i] = s
	}
}

// The three mixdown formulas. Channels 0 and 3 form the Amiga left pair,
// 1 and 2 the right pair.

func mixMono(f *[numChannels]int32) int16 {
	return int16((f[0] + f[1] + f[2] + f[3]) / 4)
}

func mixStereoHard(f *[numChannels]int32) (int16, int16) {
	return int16((f[0] + f[3]) / 2), int16((f[1] + f[2]) / 2)
}

func mixStereoSoft(f *[numChannels]int32) (int16, int16) {
	l := f[0] + f[3]
	r := f[1] + f[2]
	return int16((l*3 + r) / 8), int16((r*3 + l) / 8)
}

// FillBuffer fills out with signed 16-bit samples and returns whether the
// song is still going. len(out) counts individual samples, so the stereo
// modes consume it two at a time and it must be even for them; stereo output
// is interleaved L,R.
//
// The buffer is always filled completely. Once a non-looping song has ended
// FillBuffer keeps producing silence and returning false until SetPosition
// restarts playback.
func (p *Player) FillBuffer(out []int16, mode MixMode) bool {
	if p.done {
		clear(out)
		return false
	}

	var end int
	switch mode {
	case MixMono:
		end = p.fillMono(out)
	case MixStereoHard:
		end = p.fillStereoHard(out)
	case MixStereoSoft:
		end = p.fillStereoSoft(out)
	default:
		end = 0
	}

	if p.done || end < len(out) {
		clear(out[end:])
	}

	return !p.done
}

func (p *Player) fillMono(out []int16) int {
	var frame [numChannels]int32
	for i := range out {
		p.renderFrame(&frame)
		out[i] = mixMono(&frame)

		if p.clockFrame() {
			p.done = true
			return i + 1
		}
	}
	return len(out)
}

func (p *Player) fillStereoHard(out []int16) int {
	var frame [numChannels]int32
	i := 0
	for i+1 < len(out) {
		p.renderFrame(&frame)
		out[i], out[i+1] = mixStereoHard(&frame)
		i += 2

		if p.clockFrame() {
			p.done = true
			break
		}
	}
	return i
}

func (p *Player) fillStereoSoft(out []int16) int {
	var frame [numChannels]int32
	i := 0
	for i+1 < len(out) {
		p.renderFrame(&frame)
		out[i], out[i+1] = mixStereoSoft(&frame)
		i += 2

		if p.clockFrame() {
			p.done = true
			break
		}
	}
	return i
}
