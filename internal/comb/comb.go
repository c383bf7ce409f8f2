package comb

// A Reverber post-processes interleaved stereo s16 audio. Implementations
// accept samples incrementally and hand processed audio back on demand, so
// they can sit between Player.FillBuffer and an audio device callback.
type Reverber interface {
	// InputSamples feeds samples in; returns how many were accepted.
	InputSamples(in []int16) int
	// GetAudio copies processed samples into out; returns how many.
	GetAudio(out []int16) int
}

// Reverb is a feedback comb filter over interleaved stereo samples. Each
// incoming sample is mixed with the output from delayMs earlier, scaled by
// decay. The delay history is a fixed-size ring; processed samples queue
// until GetAudio drains them, and the queue's storage is reused only once
// it has been drained completely.
type Reverb struct {
	decay float32

	hist    []int16 // ring of the last delay window of wet output
	histPos int

	queue    []int16 // wet samples awaiting GetAudio
	queuePos int
}

// New returns a Reverb with the given decay factor (0..1) and delay in
// milliseconds at the given sample rate.
func New(decay float32, delayMs, sampleRate int) *Reverb {
	delay := (delayMs * sampleRate) / 1000
	if delay < 1 {
		delay = 1
	}
	return &Reverb{
		decay: decay,
		hist:  make([]int16, delay*2), // stereo pairs
	}
}

func (r *Reverb) InputSamples(in []int16) int {
	for _, s := range in {
		wet := int32(s) + int32(float32(r.hist[r.histPos])*r.decay)
		if wet > 32767 {
			wet = 32767
		} else if wet < -32768 {
			wet = -32768
		}
		r.hist[r.histPos] = int16(wet)
		r.histPos++
		if r.histPos == len(r.hist) {
			r.histPos = 0
		}
		r.queue = append(r.queue, int16(wet))
	}
	return len(in)
}

func (r *Reverb) GetAudio(out []int16) int {
	n := copy(out, r.queue[r.queuePos:])
	r.queuePos += n
	if r.queuePos == len(r.queue) {
		// Fully drained; reuse the backing array.
		r.queue = r.queue[:0]
		r.queuePos = 0
	}
	return n
}

// PassThrough implements Reverber without touching the audio. It buffers up
// to bufSize samples between InputSamples and GetAudio.
type PassThrough struct {
	audio             []int16
	readPos, writePos int
	n                 int
}

// NewPassThrough creates a PassThrough with an internal buffer of bufSize
// samples.
func NewPassThrough(bufSize int) *PassThrough {
	return &PassThrough{audio: make([]int16, bufSize)}
}

func (p *PassThrough) InputSamples(in []int16) int {
	free := len(p.audio) - p.n
	n := len(in)
	if n > free {
		n = free
	}
	if n == 0 {
		return 0
	}

	if p.writePos+n > len(p.audio) {
		// Wraps; copy in two parts.
		n1 := len(p.audio) - p.writePos
		copy(p.audio[p.writePos:], in[:n1])
		copy(p.audio, in[n1:n])
		p.writePos = n - n1
	} else {
		copy(p.audio[p.writePos:], in[:n])
		p.writePos += n
	}
	p.n += n

	return n
}

func (p *PassThrough) GetAudio(out []int16) int {
	n := len(out)
	if n > p.n {
		n = p.n
	}
	if n == 0 {
		return 0
	}

	if p.readPos+n > len(p.audio) {
		n1 := len(p.audio) - p.readPos
		copy(out[:n1], p.audio[p.readPos:])
		copy(out[n1:n], p.audio)
		p.readPos = n - n1
	} else {
		copy(out[:n], p.audio[p.readPos:p.readPos+n])
		p.readPos += n
	}
	p.n -= n

	return n
}
