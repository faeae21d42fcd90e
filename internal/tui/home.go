package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuivoca/internal/content"
	"github.com/verte-zerg/tuivoca/internal/flashcard"
	"github.com/verte-zerg/tuivoca/internal/gesture"
	"github.com/verte-zerg/tuivoca/internal/promo"
	"github.com/verte-zerg/tuivoca/internal/store"
)

const promoTimeout = 10 * time.Second

type tickMsg struct {
	gen int
}

type promoMsg struct {
	info promo.Info
	err  error
}

// homeView is the flashcard view.
type homeView struct {
	svc     *services
	session *flashcard.Session
	chapter int
	gen     int
	active  bool

	promo        promo.Info
	promoPending bool
}

func newHomeView(svc *services) *homeView {
	s := flashcard.New(nil)
	interval := svc.cfg.IntervalMs
	if interval <= 0 {
		interval = int(flashcard.DefaultInterval / time.Millisecond)
	}
	s.SetInterval(time.Duration(svc.prefInt(store.KeyInterval, interval)) * time.Millisecond)
	s.SetAutoPlay(svc.prefBool(store.KeyAutoPlay, svc.cfg.AutoPlay))
	s.SetSound(svc.prefBool(store.KeySound, svc.cfg.Sound))
	h := &homeView{svc: svc, session: s}
	if id := svc.content.Promo().VideoID; id != "" {
		h.promo = promo.Placeholder(id)
		h.promoPending = svc.promo != nil
	}
	return h
}

func (h *homeView) load(chapter int, _ bool) tea.Cmd {
	h.chapter = chapter
	h.session.SetWords(h.svc.content.ChapterWords(chapter))
	if !h.active {
		return nil
	}
	h.speakCurrent()
	return h.restart()
}

func (h *homeView) loaded() int {
	return h.chapter
}

func (h *homeView) enter() tea.Cmd {
	h.active = true
	h.speakCurrent()
	return h.restart()
}

func (h *homeView) leave() {
	h.active = false
	h.gen++
	if h.session.SettingsOpen() {
		h.session.ToggleSettings()
	}
}

func (h *homeView) resize(int, int) {}

func (h *homeView) modal() *dialog {
	return nil
}

// restart drops any live timer and starts a new one when auto-play runs.
func (h *homeView) restart() tea.Cmd {
	h.gen++
	if !h.active || !h.session.Running() {
		return nil
	}
	gen := h.gen
	return tea.Tick(h.session.TickPeriod(), func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (h *homeView) onTick(msg tickMsg) tea.Cmd {
	if msg.gen != h.gen || !h.active {
		return nil
	}
	if h.session.Tick() {
		h.speakCurrent()
	}
	return h.restart()
}

func (h *homeView) speakCurrent() {
	if !h.session.Sound() {
		return
	}
	if w, ok := h.session.Current(); ok {
		h.svc.say(w.Word)
	}
}

func (h *homeView) move(delta int) tea.Cmd {
	var changed bool
	if delta > 0 {
		changed = h.session.Next()
	} else {
		changed = h.session.Prev()
	}
	if changed {
		h.speakCurrent()
	}
	return h.restart()
}

func (h *homeView) update(msg tea.KeyMsg) tea.Cmd {
	if h.session.SettingsOpen() {
		switch {
		case key.Matches(msg, homeKeyMap.Settings), msg.Type == tea.KeyEsc:
			h.session.ToggleSettings()
			return h.restart()
		case key.Matches(msg, homeKeyMap.Faster):
			h.session.AdjustInterval(-1)
			h.saveInterval()
		case key.Matches(msg, homeKeyMap.Slower):
			h.session.AdjustInterval(1)
			h.saveInterval()
		case key.Matches(msg, homeKeyMap.Sound):
			h.toggleSound()
		}
		return nil
	}
	switch {
	case key.Matches(msg, homeKeyMap.Next):
		return h.move(1)
	case key.Matches(msg, homeKeyMap.Prev):
		return h.move(-1)
	case key.Matches(msg, homeKeyMap.Flip):
		h.session.ToggleDetail()
		return h.restart()
	case key.Matches(msg, homeKeyMap.AutoPlay):
		h.session.ToggleAutoPlay()
		h.svc.setPref(store.KeyAutoPlay, strconv.FormatBool(h.session.AutoPlay()))
		return h.restart()
	case key.Matches(msg, homeKeyMap.Settings):
		h.session.ToggleSettings()
		return h.restart()
	case key.Matches(msg, homeKeyMap.Sound):
		h.toggleSound()
	case key.Matches(msg, homeKeyMap.Speak):
		if w, ok := h.session.Current(); ok {
			h.svc.say(w.Word)
		}
	case key.Matches(msg, homeKeyMap.Promo):
		if h.promo.VideoID != "" {
			return h.svc.openLink(h.promo.URL())
		}
	}
	return nil
}

func (h *homeView) toggleSound() {
	h.session.SetSound(!h.session.Sound())
	h.svc.setPref(store.KeySound, strconv.FormatBool(h.session.Sound()))
}

func (h *homeView) saveInterval() {
	h.svc.setPref(store.KeyInterval, strconv.Itoa(int(h.session.Interval()/time.Millisecond)))
}

func (h *homeView) swipe(dir gesture.Direction) tea.Cmd {
	if h.session.SettingsOpen() {
		return nil
	}
	switch dir {
	case gesture.Forward:
		return h.move(1)
	case gesture.Backward:
		return h.move(-1)
	default:
		return nil
	}
}

func (h *homeView) fetchPromo() tea.Cmd {
	if !h.promoPending {
		return nil
	}
	fetcher, id := h.svc.promo, h.promo.VideoID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), promoTimeout)
		defer cancel()
		info, err := fetcher.Fetch(ctx, id)
		return promoMsg{info: info, err: err}
	}
}

func (h *homeView) onPromo(msg promoMsg) {
	h.promoPending = false
	if msg.err != nil {
		h.svc.fail(fmt.Errorf("failed to load video details: %w", msg.err))
	}
	if msg.info.VideoID != "" {
		h.promo = msg.info
	}
}

func (h *homeView) render(width, height int) string {
	w := contentWidth(width)
	var card string
	word, ok := h.session.Current()
	if !ok {
		card = mutedStyle.Render("No word")
	} else {
		lines := []string{
			titleStyle.Render(fmt.Sprintf("Word %d / %d", h.session.Index()+1, h.session.Len())),
			"",
			wordStyle.Render(word.Word),
		}
		if h.session.Phase() == flashcard.WordWithDetail {
			lines = append(lines, "")
			for _, mn := range content.ParseMeanings(word.POS, word.Meaning) {
				line := mn.Text
				if mn.POS != "" {
					line = accentStyle.Render(mn.POS) + " " + textStyle.Render(mn.Text)
				} else {
					line = textStyle.Render(line)
				}
				lines = append(lines, line)
			}
			if word.Example != "" {
				lines = append(lines, "", textStyle.Render(wrapText(word.Example, max(10, w-8))))
			}
			if word.ExampleMeaning != "" {
				lines = append(lines, mutedStyle.Render(wrapText(word.ExampleMeaning, max(10, w-8))))
			}
		}
		card = cardStyle.Width(w).Render(strings.Join(lines, "\n"))
	}

	parts := []string{card, h.renderStatus()}
	if h.session.SettingsOpen() {
		parts = append(parts, h.renderSettings())
	}
	if h.promo.VideoID != "" {
		parts = append(parts, h.renderPromo(w))
	}
	body := lipgloss.JoinVertical(lipgloss.Center, parts...)
	if width <= 0 || height <= 0 {
		return body
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (h *homeView) renderStatus() string {
	dwell := ""
	if h.session.Running() {
		dots := make([]string, flashcard.TicksPerPhase)
		for i := range dots {
			if i < h.session.DwellTicks()+1 {
				dots[i] = "●"
			} else {
				dots[i] = "○"
			}
		}
		dwell = "  " + accentStyle.Render(strings.Join(dots, ""))
	}
	return footerStyle.Render(fmt.Sprintf("autoplay %s · %.1fs · sound %s", onOff(h.session.AutoPlay()), h.session.Interval().Seconds(), onOff(h.session.Sound()))) + dwell
}

func (h *homeView) renderSettings() string {
	lines := []string{
		wordStyle.Render("Settings"),
		"",
		fmt.Sprintf("Interval  %s  %.1fs  %s", accentStyle.Render("-"), h.session.Interval().Seconds(), accentStyle.Render("+")),
		fmt.Sprintf("Sound     %s  %s", accentStyle.Render("m"), onOff(h.session.Sound())),
		"",
		mutedStyle.Render("s or esc to close"),
	}
	return modalStyle.Render(strings.Join(lines, "\n"))
}

func (h *homeView) renderPromo(width int) string {
	title := h.promo.Title
	if title == "" {
		if h.promoPending {
			title = "Loading..."
		} else {
			title = "Watch on YouTube"
		}
	}
	line := accentStyle.Render("▶ ") + textStyle.Render(truncateLine(title, max(10, width-12))) + mutedStyle.Render("  (o)")
	return lipgloss.NewStyle().MarginTop(1).Render(line)
}

func (h *homeView) help() []key.Binding {
	if h.session.SettingsOpen() {
		return []key.Binding{homeKeyMap.Faster, homeKeyMap.Slower, homeKeyMap.Sound, homeKeyMap.Settings}
	}
	bindings := []key.Binding{homeKeyMap.Prev, homeKeyMap.Next, homeKeyMap.Flip, homeKeyMap.AutoPlay, homeKeyMap.Settings, homeKeyMap.Speak}
	if h.promo.VideoID != "" {
		bindings = append(bindings, homeKeyMap.Promo)
	}
	return bindings
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
