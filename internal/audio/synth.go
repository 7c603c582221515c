package audio

import (
	"math"
	"sync"
)

const (
	SampleRate = 44100
	BufferSize = 512

	dripLength = 0.25 // seconds
	dripHigh   = 1400.0
	dripLow    = 450.0
	dripDecay  = 18.0
	maxVoices  = 16
)

type voice struct {
	t     float64
	phase float64
}

// Synth renders water-drip voices: a sine that glides down in pitch
// under an exponential envelope, smoothed by a one pole low pass.
type Synth struct {
	mu     sync.Mutex
	voices []voice
	volume float64
	filter [2]float64
}

func NewSynth(volume float64) *Synth {
	return &Synth{volume: volume}
}

// Trigger starts a new drip. The oldest voice is stolen once maxVoices
// are sounding.
func (s *Synth) Trigger() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.voices) >= maxVoices {
		s.voices = s.voices[1:]
	}
	s.voices = append(s.voices, voice{})
}

func (s *Synth) Voices() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.voices)
}

func lpf(sample, cutoff, dt, state float64) float64 {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	return state + alpha*(sample-state)
}

// Fill writes the next len(out[0]) stereo frames.
func (s *Synth) Fill(out [][]float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dt := 1.0 / float64(SampleRate)
	for i := range out[0] {
		sample := 0.0
		for j := range s.voices {
			v := &s.voices[j]
			if v.t >= dripLength {
				continue
			}
			glide := v.t / dripLength
			freq := dripHigh + (dripLow-dripHigh)*math.Sqrt(glide)
			v.phase += 2 * math.Pi * freq * dt
			sample += math.Sin(v.phase) * math.Exp(-dripDecay*v.t)
			v.t += dt
		}

		s.filter[0] = lpf(sample, 3000, dt, s.filter[0])
		s.filter[1] = lpf(sample, 2800, dt, s.filter[1])
		for ch := range out {
			out[ch][i] = float32(s.filter[ch%2] * s.volume)
		}
	}

	live := s.voices[:0]
	for _, v := range s.voices {
		if v.t < dripLength {
			live = append(live, v)
		}
	}
	s.voices = live
}
