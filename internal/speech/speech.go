// Package speech pronounces words through a text-to-speech engine.
package speech

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ErrUnavailable is returned when no speech engine can be used.
var ErrUnavailable = errors.New("speech engine unavailable")

// Request is one utterance. Rate and Volume are factors around 1.0.
type Request struct {
	Text   string
	Lang   string
	Rate   float64
	Volume float64
}

// Backend speaks a request and returns when the utterance is over.
type Backend interface {
	Speak(ctx context.Context, req Request) error
	Name() string
}

// ESpeakConfig holds the espeak-ng settings.
type ESpeakConfig struct {
	Command   string // binary, "espeak-ng" when empty
	Voice     string // fallback voice when a request has no Lang
	WPM       int    // words per minute at rate 1.0
	Amplitude int    // 0 to 200 at volume 1.0
}

// DefaultESpeakConfig returns settings for English pronunciation.
func DefaultESpeakConfig() ESpeakConfig {
	return ESpeakConfig{
		Command:   "espeak-ng",
		Voice:     "en-us",
		WPM:       160,
		Amplitude: 100,
	}
}

// ESpeak runs espeak-ng for each utterance.
type ESpeak struct {
	cfg  ESpeakConfig
	path string
}

// NewESpeak checks that the engine is installed.
func NewESpeak(cfg ESpeakConfig) (*ESpeak, error) {
	def := DefaultESpeakConfig()
	if cfg.Command == "" {
		cfg.Command = def.Command
	}
	if cfg.Voice == "" {
		cfg.Voice = def.Voice
	}
	if cfg.WPM <= 0 {
		cfg.WPM = def.WPM
	}
	if cfg.Amplitude <= 0 {
		cfg.Amplitude = def.Amplitude
	}
	path, err := exec.LookPath(cfg.Command)
	if err != nil {
		return nil, fmt.Errorf("%w: %s not found", ErrUnavailable, cfg.Command)
	}
	return &ESpeak{cfg: cfg, path: path}, nil
}

// Name returns the engine name.
func (e *ESpeak) Name() string {
	return "espeak-ng"
}

// Args builds the command line for req.
func (e *ESpeak) Args(req Request) []string {
	voice := req.Lang
	if voice == "" {
		voice = e.cfg.Voice
	}
	rate := req.Rate
	if rate <= 0 {
		rate = 1
	}
	volume := req.Volume
	if volume <= 0 {
		volume = 1
	}
	amp := int(float64(e.cfg.Amplitude) * volume)
	if amp > 200 {
		amp = 200
	}
	return []string{
		"-v", voice,
		"-s", strconv.Itoa(int(float64(e.cfg.WPM) * rate)),
		"-a", strconv.Itoa(amp),
		"--", strings.TrimSpace(req.Text),
	}
}

// Speak runs the engine and waits for it to finish.
func (e *ESpeak) Speak(ctx context.Context, req Request) error {
	cmd := exec.CommandContext(ctx, e.path, e.Args(req)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("failed to run %s: %w: %s", e.cfg.Command, err, strings.TrimSpace(string(out)))
	}
	return nil
}
