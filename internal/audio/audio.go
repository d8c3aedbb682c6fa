// Package audio plays a continuous brown-noise bed for focus mode.
package audio

import (
	"io"
	"math"
	"math/rand"
	"sync"

	"github.com/ebitengine/oto/v3"
)

const sampleRate = 44100

// brownNoise is an infinite mono float32 LE sample stream. Brown noise
// is integrated white noise: each sample is the running sum of small
// random steps, soft-clamped and decayed so it stays centered on zero.
type brownNoise struct {
	mu   sync.Mutex
	rng  *rand.Rand
	last float32
}

func newBrownNoise(seed int64) *brownNoise {
	return &brownNoise{rng: rand.New(rand.NewSource(seed))}
}

func (n *brownNoise) next() float32 {
	white := n.rng.Float32()*2 - 1
	n.last += white * 0.02
	if n.last > 1 {
		n.last = 1
	} else if n.last < -1 {
		n.last = -1
	}
	n.last *= 0.999
	return n.last * 0.3
}

// Read fills p with little-endian float32 samples. It never returns
// io.EOF; the player drains it for as long as it is playing.
func (n *brownNoise) Read(p []byte) (int, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	count := len(p) / 4
	for i := 0; i < count; i++ {
		bits := math.Float32bits(n.next())
		p[i*4] = byte(bits)
		p[i*4+1] = byte(bits >> 8)
		p[i*4+2] = byte(bits >> 16)
		p[i*4+3] = byte(bits >> 24)
	}
	return count * 4, nil
}

// Player owns the audio device and a paused/playing noise stream.
type Player struct {
	ctx    *oto.Context
	player *oto.Player

	stateMu sync.Mutex
	playing bool
}

// NewPlayer opens the default audio device and prepares a paused
// brown-noise stream. The device stays open until Close.
func NewPlayer() (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	var src io.Reader = newBrownNoise(rand.Int63())
	return &Player{ctx: ctx, player: ctx.NewPlayer(src)}, nil
}

// Play starts or resumes playback.
func (p *Player) Play() {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()
	if p.player == nil || p.playing {
		return
	}
	p.player.Play()
	p.playing = true
}

// Pause suspends playback without releasing the device.
func (p *Player) Pause() {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()
	if p.player == nil || !p.playing {
		return
	}
	p.player.Pause()
	p.playing = false
}

// Playing reports whether the stream is currently audible.
func (p *Player) Playing() bool {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()
	return p.playing
}

// Toggle flips between playing and paused and reports the new state.
func (p *Player) Toggle() bool {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()
	if p.player == nil {
		return false
	}
	if p.playing {
		p.player.Pause()
	} else {
		p.player.Play()
	}
	p.playing = !p.playing
	return p.playing
}

// Close stops playback and releases the player. The oto context has no
// close; it lives for the process.
func (p *Player) Close() error {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()
	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	p.playing = false
	return err
}
