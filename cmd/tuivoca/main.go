// Package main provides the CLI entrypoint for tuivoca.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuivoca/internal/browser"
	"github.com/verte-zerg/tuivoca/internal/config"
	"github.com/verte-zerg/tuivoca/internal/content"
	"github.com/verte-zerg/tuivoca/internal/generator"
	"github.com/verte-zerg/tuivoca/internal/model"
	"github.com/verte-zerg/tuivoca/internal/player"
	"github.com/verte-zerg/tuivoca/internal/promo"
	"github.com/verte-zerg/tuivoca/internal/review"
	"github.com/verte-zerg/tuivoca/internal/speech"
	"github.com/verte-zerg/tuivoca/internal/stats"
	"github.com/verte-zerg/tuivoca/internal/store"
	"github.com/verte-zerg/tuivoca/internal/tui"
)

const (
	defaultIntervalMs  = 3000
	defaultReviewMode  = string(review.WordFirst)
	defaultRate        = 1.0
	defaultVolume      = 1.0
	defaultHistoryDays = 14

	// clockTail keeps the fallback clock running past the last caption.
	clockTail = 10
)

var (
	trainerData           string
	trainerIntervalMs     int
	trainerAutoPlay       bool
	trainerSound          bool
	trainerReviewMode     string
	trainerRandom         bool
	trainerSpeechCommand  string
	trainerVoice          string
	trainerRate           float64
	trainerVolume         float64
	trainerPlayerCommand  string
	trainerPlayerSocket   string
	trainerSwipeThreshold int
	trainerDebugLog       string

	chaptersData string

	historyDays int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuivoca",
		Short:         "TUI vocabulary trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTrainerCmd,
	}

	rootCmd.Flags().StringVar(&trainerData, "data", "", "content directory (default: built-in content)")
	rootCmd.Flags().IntVar(&trainerIntervalMs, "interval-ms", defaultIntervalMs, "flashcard auto-play interval in milliseconds")
	rootCmd.Flags().BoolVar(&trainerAutoPlay, "autoplay", true, "start flashcards in auto-play")
	rootCmd.Flags().BoolVar(&trainerSound, "sound", true, "pronounce words")
	rootCmd.Flags().StringVar(&trainerReviewMode, "review-mode", defaultReviewMode, "review mode (word-first or meaning-first)")
	rootCmd.Flags().BoolVar(&trainerRandom, "random", false, "review words in random order")
	rootCmd.Flags().StringVar(&trainerSpeechCommand, "speech-command", "", "espeak-ng binary")
	rootCmd.Flags().StringVar(&trainerVoice, "voice", "", "speech voice")
	rootCmd.Flags().Float64Var(&trainerRate, "rate", defaultRate, "speech rate factor")
	rootCmd.Flags().Float64Var(&trainerVolume, "volume", defaultVolume, "speech volume factor (0-2)")
	rootCmd.Flags().StringVar(&trainerPlayerCommand, "player-command", "", "mpv binary")
	rootCmd.Flags().StringVar(&trainerPlayerSocket, "socket", "", "mpv IPC socket path")
	rootCmd.Flags().IntVar(&trainerSwipeThreshold, "swipe-threshold", tui.DefaultSwipeThreshold, "horizontal drag in cells that counts as a swipe")
	rootCmd.Flags().StringVar(&trainerDebugLog, "debug-log", "", "write debug log to file")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newChaptersCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func runTrainerCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg, err := resolveConfig(cmd, fileCfg)
	if err != nil {
		return err
	}

	if trainerDebugLog != "" {
		f, err := tea.LogToFile(trainerDebugLog, "tuivoca")
		if err != nil {
			return fmt.Errorf("failed to open debug log: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				// Best-effort close of the debug log.
				_ = cerr
			}
		}()
	}

	data, err := loadContent(cfg.DataDir)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	var backend speech.Backend
	engine, err := speech.NewESpeak(speech.ESpeakConfig{Command: cfg.SpeechCommand, Voice: cfg.SpeechVoice})
	if err != nil {
		logErrf("pronunciation disabled: %v\n", err)
	} else {
		backend = engine
	}
	pronouncer := speech.NewPronouncer(backend, nil)
	defer pronouncer.Close()

	m := tui.NewModel(tui.Options{
		Content:   data,
		Config:    cfg,
		Prefs:     st,
		History:   st,
		Speaker:   pronouncer,
		Promo:     promo.NewClient(),
		Open:      browser.Open,
		NewPlayer: playerFactory(cfg),
		Shuffler:  generator.New(),
		Now:       time.Now,
	})
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func resolveConfig(cmd *cobra.Command, fileCfg config.FileConfig) (model.Config, error) {
	applyStringConfig(cmd, "data", &trainerData, fileCfg.Data.Dir)
	applyIntConfig(cmd, "interval-ms", &trainerIntervalMs, fileCfg.Home.IntervalMs)
	applyBoolConfig(cmd, "autoplay", &trainerAutoPlay, fileCfg.Home.AutoPlay)
	applyBoolConfig(cmd, "sound", &trainerSound, fileCfg.Home.Sound)
	applyStringConfig(cmd, "review-mode", &trainerReviewMode, fileCfg.Review.Mode)
	applyBoolConfig(cmd, "random", &trainerRandom, fileCfg.Review.Random)
	applyStringConfig(cmd, "speech-command", &trainerSpeechCommand, fileCfg.Speech.Command)
	applyStringConfig(cmd, "voice", &trainerVoice, fileCfg.Speech.Voice)
	applyFloatConfig(cmd, "rate", &trainerRate, fileCfg.Speech.Rate)
	applyFloatConfig(cmd, "volume", &trainerVolume, fileCfg.Speech.Volume)
	applyStringConfig(cmd, "player-command", &trainerPlayerCommand, fileCfg.Player.Command)
	applyStringConfig(cmd, "socket", &trainerPlayerSocket, fileCfg.Player.Socket)
	applyIntConfig(cmd, "swipe-threshold", &trainerSwipeThreshold, fileCfg.Input.SwipeThreshold)

	cfg := model.Config{
		DataDir:        trainerData,
		IntervalMs:     trainerIntervalMs,
		AutoPlay:       trainerAutoPlay,
		Sound:          trainerSound,
		ReviewMode:     trainerReviewMode,
		ReviewRandom:   trainerRandom,
		SpeechCommand:  trainerSpeechCommand,
		SpeechVoice:    trainerVoice,
		SpeechRate:     trainerRate,
		SpeechVolume:   trainerVolume,
		PlayerCommand:  trainerPlayerCommand,
		PlayerSocket:   trainerPlayerSocket,
		SwipeThreshold: trainerSwipeThreshold,
	}
	if cfg.PlayerSocket == "" {
		cfg.PlayerSocket = config.DefaultPlayerSocket()
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func loadContent(dir string) (*content.Store, error) {
	if dir == "" {
		data, err := content.Default()
		if err != nil {
			return nil, fmt.Errorf("failed to load built-in content: %w", err)
		}
		return data, nil
	}
	data, err := content.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load content from %s: %w", dir, err)
	}
	return data, nil
}

// playerFactory starts mpv for each video. Without mpv the captions still
// follow a wall clock.
func playerFactory(cfg model.Config) tui.PlayerFactory {
	return func(ctx context.Context, video model.VideoChapter) (player.Player, error) {
		mpv, err := player.StartMPV(ctx, player.MPVOptions{
			Command: cfg.PlayerCommand,
			Socket:  cfg.PlayerSocket,
		})
		if err == nil {
			return mpv, nil
		}
		logErrf("mpv unavailable, using clock: %v\n", err)
		return player.NewClock(player.WithDuration(videoDuration(video))), nil
	}
}

func videoDuration(video model.VideoChapter) int {
	if len(video.Subtitles) == 0 {
		return 0
	}
	return video.Subtitles[len(video.Subtitles)-1].Start + clockTail
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newChaptersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chapters",
		Short: "List chapters with word counts and review totals",
		Args:  cobra.NoArgs,
		RunE:  runChaptersCmd,
	}
	cmd.Flags().StringVar(&chaptersData, "data", "", "content directory (default: built-in content)")
	return cmd
}

func runChaptersCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "data", &chaptersData, fileCfg.Data.Dir)

	data, err := loadContent(chaptersData)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	history, err := st.ListChapterHistory(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load chapter history: %w", err)
	}
	rows := stats.ChapterOverview(data.Words(), data.Videos(), history)
	if err := stats.RenderChapters(cmd.OutOrStdout(), rows, stats.TerminalWidth()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show review history",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyDays, "days", defaultHistoryDays, "days to include (0 for all)")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	if historyDays < 0 {
		return fmt.Errorf("--days must be >= 0")
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	report, err := stats.BuildReport(context.Background(), st, historyDays, time.Now())
	if err != nil {
		return fmt.Errorf("failed to build history: %w", err)
	}
	if len(report.Passes) == 0 && len(report.Chapters) == 0 {
		logErrln("No review passes recorded yet. Finish a chapter in the Review view first.")
		return nil
	}
	if err := stats.RenderHistory(cmd.OutOrStdout(), report, stats.TerminalWidth()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuivoca configuration
# Uncomment a value to enable it. CLI flags override config values.

[home]
# interval-ms = %d        # Flashcard auto-play interval
# autoplay = true          # Start flashcards in auto-play
# sound = true             # Pronounce words

[review]
# mode = %q      # word-first or meaning-first
# random = false           # Random review order

[speech]
# command = "espeak-ng"    # Speech engine binary
# voice = "en-us"          # Voice used for pronunciation
# rate = %.1f               # Speech rate factor
# volume = %.1f             # Speech volume factor (0-2)

[player]
# command = "mpv"          # Video player binary
# socket = %q

[data]
# dir = ""                 # Content directory (default: built-in content)

[input]
# swipe-threshold = %d      # Horizontal drag in cells that counts as a swipe
`,
		defaultIntervalMs,
		defaultReviewMode,
		defaultRate,
		defaultVolume,
		config.DefaultPlayerSocket(),
		tui.DefaultSwipeThreshold,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.IntervalMs <= 0 {
		return fmt.Errorf("--interval-ms must be > 0")
	}
	if _, err := review.ParseMode(cfg.ReviewMode); err != nil {
		return fmt.Errorf("--review-mode: %w", err)
	}
	if cfg.SpeechRate <= 0 {
		return fmt.Errorf("--rate must be > 0")
	}
	if cfg.SpeechVolume < 0 || cfg.SpeechVolume > 2 {
		return fmt.Errorf("--volume must be between 0 and 2")
	}
	if cfg.SwipeThreshold <= 0 {
		return fmt.Errorf("--swipe-threshold must be > 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
