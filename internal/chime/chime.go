// Package chime plays a short tone when a curve finishes a cycle.
package chime

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	noteLength = 80 * time.Millisecond
	volume     = 0.25
)

// Two rising notes, a fifth apart.
var notes = []float64{660, 990}

// Chime plays the cycle-complete tone. A disabled Chime does nothing.
type Chime struct {
	mu      sync.Mutex
	enabled bool
}

// New initialises the speaker if enabled. On error the returned Chime is
// disabled but still usable, so callers can log the error and carry on.
func New(enabled bool) (*Chime, error) {
	c := &Chime{}
	if !enabled {
		return c, nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return c, fmt.Errorf("initializing speaker: %w", err)
	}
	c.enabled = true
	return c, nil
}

// Enabled reports whether the chime makes any sound.
func (c *Chime) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Play starts the tone without waiting for it to finish.
func (c *Chime) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled {
		return
	}
	s, err := tune(sampleRate, notes, noteLength, volume)
	if err != nil {
		return
	}
	speaker.Play(s)
}

// Close stops playback and releases the audio device.
func (c *Chime) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled {
		return
	}
	speaker.Clear()
	speaker.Close()
	c.enabled = false
}

// tune plays each frequency in turn for the given length.
func tune(sr beep.SampleRate, freqs []float64, length time.Duration, vol float64) (beep.Streamer, error) {
	streamers := make([]beep.Streamer, 0, len(freqs))
	for _, freq := range freqs {
		sine, err := generators.SineTone(sr, freq)
		if err != nil {
			return nil, fmt.Errorf("generating %.0fHz tone: %w", freq, err)
		}
		streamers = append(streamers, beep.Take(sr.N(length), sine))
	}
	return withVolume(beep.Seq(streamers...), vol), nil
}

// withVolume scales s linearly; log2(0) is -Inf, so zero means silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
