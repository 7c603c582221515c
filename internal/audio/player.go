package audio

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

var ErrNotStarted = errors.New("audio: stream not started")

// Player is the drop cue. It keeps one output stream open and mixes a
// drip into it on every Play.
type Player struct {
	synth *Synth

	mu     sync.Mutex
	stream *portaudio.Stream
	active bool
}

func NewPlayer(volume float64) *Player {
	return &Player{synth: NewSynth(volume)}
}

func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active {
		return nil
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("audio: initialize: %w", err)
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, p.synth.Fill)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("audio: open stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("audio: start stream: %w", err)
	}

	p.stream = stream
	p.active = true
	return nil
}

func (p *Player) Play() error {
	p.mu.Lock()
	active := p.active
	p.mu.Unlock()
	if !active {
		return ErrNotStarted
	}
	p.synth.Trigger()
	return nil
}

func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active {
		return
	}
	p.stream.Stop()
	p.stream.Close()
	portaudio.Terminate()
	p.stream = nil
	p.active = false
}
