// Package audio provides ambience playback for rooms. Each room may
// carry one looping ambience track; navigating away stops it.
package audio

import (
	"bytes"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the playback sample rate.
const DefaultSampleRate = beep.SampleRate(44100)

// Manager plays one looping ambience stream at a time.
type Manager struct {
	mu sync.Mutex

	initialized bool
	sampleRate  beep.SampleRate

	ambience *beep.Ctrl
	volume   *effects.Volume

	masterVolume float64
	muted        bool
}

// New creates an audio manager with the given master volume.
func New(masterVolume float64, muted bool) *Manager {
	return &Manager{
		masterVolume: clamp(masterVolume, 0, 1),
		muted:        muted,
	}
}

// Init opens the speaker. Safe to call more than once.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	m.sampleRate = DefaultSampleRate
	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	m.initialized = true
	return nil
}

// Close stops playback and shuts the speaker down.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return
	}
	speaker.Clear()
	m.ambience = nil
	m.volume = nil
	m.initialized = false
}

// PlayAmbience starts looping the given WAV data, replacing any current
// ambience. A nil manager or uninitialized speaker is a no-op.
func (m *Manager) PlayAmbience(wavData []byte) error {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return nil
	}

	streamer, format, err := wav.Decode(bytes.NewReader(wavData))
	if err != nil {
		return fmt.Errorf("decoding ambience: %w", err)
	}

	m.volume = &effects.Volume{
		Streamer: ambienceLoop(streamer, format.SampleRate, m.sampleRate),
		Base:     2,
		Volume:   volumeToExp(m.effectiveVolume()),
		Silent:   m.effectiveVolume() <= 0,
	}
	m.ambience = &beep.Ctrl{Streamer: m.volume}

	speaker.Clear()
	speaker.Play(m.ambience)
	return nil
}

// StopAmbience stops the current ambience.
func (m *Manager) StopAmbience() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized || m.ambience == nil {
		return
	}
	speaker.Clear()
	m.ambience = nil
	m.volume = nil
}

// SetMuted toggles mute without losing the ambience stream.
func (m *Manager) SetMuted(muted bool) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
	if m.volume != nil {
		speaker.Lock()
		m.volume.Silent = m.effectiveVolume() <= 0
		speaker.Unlock()
	}
}

// effectiveVolume folds mute into the master volume.
func (m *Manager) effectiveVolume() float64 {
	if m.muted {
		return 0
	}
	return m.masterVolume
}

// volumeToExp converts a 0-1 volume into the exponent the Volume effect
// expects (base 2): 1.0 -> 0, 0.5 -> -1, and so on.
func volumeToExp(vol float64) float64 {
	if vol <= 0 {
		return -10
	}
	return math.Log2(vol)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ambienceLoop builds the endless playback stream for a decoded track.
// The loop wraps the seeker directly, in source-rate samples; resampling
// to the speaker rate happens outside the loop so the two never mix units.
func ambienceLoop(src beep.StreamSeeker, from, to beep.SampleRate) beep.Streamer {
	loop := beep.Loop(-1, src)
	if from == to {
		return loop
	}
	return beep.Resample(4, from, to, loop)
}
