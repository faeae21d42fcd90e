package main

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/verte-zerg/tuivoca/internal/config"
	"github.com/verte-zerg/tuivoca/internal/model"
	"github.com/verte-zerg/tuivoca/internal/player"
)

func intPtr(v int) *int          { return &v }
func boolPtr(v bool) *bool       { return &v }
func stringPtr(v string) *string { return &v }

func TestResolveConfigFlagsWinOverFile(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.Flags().Set("interval-ms", "5000"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	fileCfg := config.FileConfig{
		Home: config.HomeConfig{
			IntervalMs: intPtr(4000),
			Sound:      boolPtr(false),
		},
		Review: config.ReviewConfig{Mode: stringPtr("meaning-first")},
		Player: config.PlayerConfig{Socket: stringPtr("/tmp/custom.sock")},
	}
	cfg, err := resolveConfig(cmd, fileCfg)
	if err != nil {
		t.Fatalf("resolve config: %v", err)
	}
	if cfg.IntervalMs != 5000 {
		t.Fatalf("expected flag interval, got %d", cfg.IntervalMs)
	}
	if cfg.Sound || !cfg.AutoPlay {
		t.Fatalf("expected sound from file and autoplay default, got %+v", cfg)
	}
	if cfg.ReviewMode != "meaning-first" || cfg.PlayerSocket != "/tmp/custom.sock" {
		t.Fatalf("unexpected file values %+v", cfg)
	}
}

func TestResolveConfigDefaultsSocket(t *testing.T) {
	cfg, err := resolveConfig(newRootCmd(), config.FileConfig{})
	if err != nil {
		t.Fatalf("resolve config: %v", err)
	}
	if cfg.PlayerSocket != config.DefaultPlayerSocket() {
		t.Fatalf("expected default socket, got %q", cfg.PlayerSocket)
	}
	if cfg.SwipeThreshold <= 0 || cfg.IntervalMs != defaultIntervalMs {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestValidateConfigRejectsBadValues(t *testing.T) {
	good := model.Config{IntervalMs: 3000, ReviewMode: "word-first", SpeechRate: 1, SpeechVolume: 1, SwipeThreshold: 6}
	if err := validateConfig(good); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	bad := good
	bad.ReviewMode = "sideways"
	if err := validateConfig(bad); err == nil || !strings.Contains(err.Error(), "--review-mode") {
		t.Fatalf("expected review mode error, got %v", err)
	}
	bad = good
	bad.SpeechVolume = 3
	if err := validateConfig(bad); err == nil {
		t.Fatalf("expected volume error")
	}
	bad = good
	bad.IntervalMs = 0
	if err := validateConfig(bad); err == nil {
		t.Fatalf("expected interval error")
	}
}

func TestPlayerFactoryFallsBackToClock(t *testing.T) {
	factory := playerFactory(model.Config{PlayerCommand: "tuivoca-missing-mpv"})
	video := model.VideoChapter{
		Chapter:   1,
		VideoID:   "vid",
		Subtitles: []model.Subtitle{{ID: 1, Start: 0}, {ID: 2, Start: 42}},
	}
	p, err := factory(context.Background(), video)
	if err != nil {
		t.Fatalf("expected fallback player, got %v", err)
	}
	defer func() { _ = p.Close() }()
	if _, ok := p.(*player.Clock); !ok {
		t.Fatalf("expected clock fallback, got %T", p)
	}
	if got := videoDuration(video); got != 42+clockTail {
		t.Fatalf("unexpected duration %d", got)
	}
	if got := videoDuration(model.VideoChapter{}); got != 0 {
		t.Fatalf("expected open-ended clock without captions, got %d", got)
	}
}

func TestConfigTemplateDecodes(t *testing.T) {
	tmpl := defaultConfigTemplate()
	for _, section := range []string{"[home]", "[review]", "[speech]", "[player]", "[data]", "[input]"} {
		if !strings.Contains(tmpl, section) {
			t.Fatalf("template missing %s", section)
		}
	}
	path := t.TempDir() + "/config.toml"
	if err := os.WriteFile(path, []byte(tmpl), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if _, err := config.LoadConfig(path); err != nil {
		t.Fatalf("template should decode: %v", err)
	}
}
