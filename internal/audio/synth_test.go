package audio

import (
	"errors"
	"math"
	"testing"
)

func frames(n int) [][]float32 {
	return [][]float32{make([]float32, n), make([]float32, n)}
}

func peak(buf []float32) float64 {
	m := 0.0
	for _, v := range buf {
		m = math.Max(m, math.Abs(float64(v)))
	}
	return m
}

func TestSynthSilentWithoutTrigger(t *testing.T) {
	s := NewSynth(0.5)
	out := frames(256)
	s.Fill(out)
	if p := peak(out[0]); p != 0 {
		t.Errorf("expected silence, got peak %f", p)
	}
}

func TestSynthDripDecays(t *testing.T) {
	s := NewSynth(0.5)
	s.Trigger()

	first := frames(1024)
	s.Fill(first)
	if peak(first[0]) == 0 {
		t.Fatal("expected sound after trigger")
	}

	n := int(dripLength*SampleRate) + 1
	rest := frames(n)
	s.Fill(rest)
	if s.Voices() != 0 {
		t.Errorf("expected finished voice to be released, got %d", s.Voices())
	}
}

func TestSynthVoiceLimit(t *testing.T) {
	s := NewSynth(0.1)
	for i := 0; i < maxVoices+5; i++ {
		s.Trigger()
	}
	if s.Voices() != maxVoices {
		t.Errorf("expected %d voices, got %d", maxVoices, s.Voices())
	}
}

func TestPlayBeforeStart(t *testing.T) {
	p := NewPlayer(0.1)
	if err := p.Play(); !errors.Is(err, ErrNotStarted) {
		t.Errorf("expected ErrNotStarted, got %v", err)
	}
	p.Stop()
}
