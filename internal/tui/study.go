package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuivoca/internal/gesture"
	"github.com/verte-zerg/tuivoca/internal/model"
	"github.com/verte-zerg/tuivoca/internal/playback"
	"github.com/verte-zerg/tuivoca/internal/player"
)

const (
	playerStartTimeout = 15 * time.Second
	playerCallTimeout  = 5 * time.Second
	studyChromeLines   = 4
)

type playerStartedMsg struct {
	gen    int
	player player.Player
	err    error
}

type playerEventMsg struct {
	gen   int
	event player.Event
	ok    bool
}

// studyView plays a chapter video with its subtitles.
type studyView struct {
	svc      *services
	chapter  int
	video    model.VideoChapter
	fallback bool
	hasVideo bool

	sync   *playback.Sync
	vp     viewport.Model
	cursor int
	width  int

	gen      int
	player   player.Player
	starting bool
	active   bool
}

func newStudyView(svc *services) *studyView {
	return &studyView{
		svc:   svc,
		sync:  playback.New(nil),
		vp:    viewport.New(80, playback.SubtitlesPerPage),
		width: 80,
	}
}

func (s *studyView) load(chapter int, _ bool) tea.Cmd {
	s.teardown()
	s.chapter = chapter
	s.video, s.fallback, s.hasVideo = s.svc.content.VideoFor(chapter)
	s.sync.Reset(s.video.Subtitles)
	s.cursor = 0
	s.refresh()
	s.vp.GotoTop()
	if !s.active {
		return nil
	}
	return s.start()
}

func (s *studyView) loaded() int {
	return s.chapter
}

func (s *studyView) enter() tea.Cmd {
	s.active = true
	if s.player != nil || s.starting {
		return nil
	}
	return s.start()
}

func (s *studyView) leave() {
	s.active = false
	s.teardown()
}

// teardown stops listening to the current player and closes it.
func (s *studyView) teardown() {
	s.gen++
	s.starting = false
	if s.player != nil {
		if err := s.player.Close(); err != nil {
			s.svc.fail(fmt.Errorf("failed to close player: %w", err))
		}
		s.player = nil
	}
	s.sync.SetPlaying(false)
}

func (s *studyView) start() tea.Cmd {
	if !s.hasVideo || s.svc.newPlayer == nil {
		return nil
	}
	s.starting = true
	gen, factory, video := s.gen, s.svc.newPlayer, s.video
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), playerStartTimeout)
		defer cancel()
		p, err := factory(ctx, video)
		if err != nil {
			return playerStartedMsg{gen: gen, err: fmt.Errorf("failed to start player: %w", err)}
		}
		if err := p.Load(ctx, video.VideoID); err != nil {
			_ = p.Close()
			return playerStartedMsg{gen: gen, err: fmt.Errorf("failed to load video %s: %w", video.VideoID, err)}
		}
		return playerStartedMsg{gen: gen, player: p}
	}
}

func listen(gen int, p player.Player) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-p.Events()
		return playerEventMsg{gen: gen, event: ev, ok: ok}
	}
}

func (s *studyView) onStarted(msg playerStartedMsg) tea.Cmd {
	if msg.gen != s.gen {
		if msg.player != nil {
			_ = msg.player.Close()
		}
		return nil
	}
	s.starting = false
	if msg.err != nil {
		s.svc.fail(msg.err)
		return nil
	}
	s.player = msg.player
	return listen(s.gen, s.player)
}

func (s *studyView) onEvent(msg playerEventMsg) tea.Cmd {
	if msg.gen != s.gen || !msg.ok || s.player == nil {
		return nil
	}
	switch msg.event.Kind {
	case player.Playing:
		s.sync.SetPlaying(true)
		s.followActive()
	case player.Paused, player.Ended:
		s.sync.SetPlaying(false)
	case player.Time:
		page := s.sync.Page()
		if s.sync.SetTime(msg.event.Seconds) {
			s.followActive()
		}
		if s.sync.Page() != page {
			s.cursor = 0
		}
	}
	s.refresh()
	return listen(s.gen, s.player)
}

// followActive puts the cursor on the highlighted line while it is on the
// visible page.
func (s *studyView) followActive() {
	if !s.sync.Playing() {
		return
	}
	i := s.sync.Active() - s.sync.PageStart()
	if i >= 0 && i < len(s.sync.PageItems()) {
		s.cursor = i
	}
}

func (s *studyView) resize(width, height int) {
	s.width = width
	s.vp.Width = width
	s.vp.Height = max(1, height-studyChromeLines)
	s.refresh()
}

func (s *studyView) modal() *dialog {
	return nil
}

func (s *studyView) update(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, studyKeyMap.Play):
		return s.togglePlay()
	case key.Matches(msg, studyKeyMap.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(msg, studyKeyMap.Down):
		if s.cursor < len(s.sync.PageItems())-1 {
			s.cursor++
		}
	case key.Matches(msg, studyKeyMap.Seek):
		return s.seek(s.sync.PageStart() + s.cursor)
	case key.Matches(msg, studyKeyMap.NextPage):
		s.turnPage(1)
		return nil
	case key.Matches(msg, studyKeyMap.PrevPage):
		s.turnPage(-1)
		return nil
	default:
		return nil
	}
	s.refresh()
	return nil
}

func (s *studyView) swipe(dir gesture.Direction) tea.Cmd {
	switch dir {
	case gesture.Forward:
		s.turnPage(1)
	case gesture.Backward:
		s.turnPage(-1)
	}
	return nil
}

func (s *studyView) scroll(msg tea.MouseMsg) tea.Cmd {
	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return cmd
}

func (s *studyView) turnPage(delta int) {
	page := s.sync.Page()
	if delta > 0 {
		s.sync.NextPage()
	} else {
		s.sync.PrevPage()
	}
	if s.sync.Page() != page {
		s.cursor = 0
		s.refresh()
		s.vp.GotoTop()
	}
}

func (s *studyView) togglePlay() tea.Cmd {
	if s.player == nil {
		return nil
	}
	p, playing := s.player, s.sync.Playing()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), playerCallTimeout)
		defer cancel()
		var err error
		if playing {
			err = p.Pause(ctx)
		} else {
			err = p.Play(ctx)
		}
		if err != nil {
			return errMsg{err: fmt.Errorf("failed to toggle playback: %w", err)}
		}
		return nil
	}
}

// seek jumps to subtitle i and resumes playback from its start.
func (s *studyView) seek(i int) tea.Cmd {
	start, ok := s.sync.Select(i)
	if !ok {
		return nil
	}
	s.cursor = i - s.sync.PageStart()
	s.refresh()
	if s.player == nil {
		return nil
	}
	p := s.player
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), playerCallTimeout)
		defer cancel()
		if err := p.Seek(ctx, start); err != nil {
			return errMsg{err: fmt.Errorf("failed to seek: %w", err)}
		}
		if err := p.Play(ctx); err != nil {
			return errMsg{err: fmt.Errorf("failed to resume playback: %w", err)}
		}
		return nil
	}
}

// refresh renders the subtitle page into the viewport and scrolls the
// followed line into view.
func (s *studyView) refresh() {
	items := s.sync.PageItems()
	textWidth := max(10, s.width-10)
	var b strings.Builder
	lineOf := make([]int, len(items))
	line := 0
	for i, sub := range items {
		lineOf[i] = line
		idx := s.sync.PageStart() + i
		marker := "  "
		if i == s.cursor {
			marker = accentStyle.Render("› ")
		}
		stamp := mutedStyle.Render(fmt.Sprintf("%7s ", playback.FormatTime(sub.Start)))
		style := textStyle
		if idx == s.sync.Active() {
			style = activeStyle
		}
		wrapped := strings.Split(wrapText(sub.Text, textWidth), "\n")
		for j, part := range wrapped {
			if j == 0 {
				b.WriteString(marker + stamp + style.Render(part))
			} else {
				b.WriteString(strings.Repeat(" ", 10) + style.Render(part))
			}
			b.WriteString("\n")
			line++
		}
	}
	s.vp.SetContent(strings.TrimSuffix(b.String(), "\n"))

	if len(items) == 0 {
		return
	}
	follow := s.cursor
	if s.sync.Playing() {
		if i := s.sync.Active() - s.sync.PageStart(); i >= 0 && i < len(items) {
			follow = i
		}
	}
	if follow >= len(items) {
		follow = len(items) - 1
	}
	s.vp.SetYOffset(playback.ScrollTarget(lineOf[follow], s.vp.YOffset, s.vp.Height, line))
}

func (s *studyView) render(width, height int) string {
	if !s.hasVideo {
		return lipgloss.Place(max(width, 1), max(height, 1), lipgloss.Center, lipgloss.Center, mutedStyle.Render("No subtitles"))
	}
	title := wordStyle.Render(truncateLine(s.video.VideoTitle, max(10, width-2)))
	notice := ""
	if s.fallback {
		notice = noticeStyle.Render(fmt.Sprintf("No video for chapter %d; showing chapter %d.", s.chapter, s.video.Chapter))
	}
	var body string
	if len(s.sync.Subtitles()) == 0 {
		body = mutedStyle.Render("No subtitles")
	} else {
		body = s.vp.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, notice, body, s.renderStatus())
}

func (s *studyView) renderStatus() string {
	state := "⏸"
	if s.sync.Playing() {
		state = "▶"
	}
	parts := []string{
		accentStyle.Render(state) + " " + playback.FormatTime(s.sync.Time()),
		"page " + s.sync.PageLabel(),
	}
	switch {
	case s.starting:
		parts = append(parts, "starting player...")
	case s.player == nil && s.svc.newPlayer == nil:
		parts = append(parts, "no player")
	case s.player == nil:
		parts = append(parts, "player stopped")
	}
	return footerStyle.Render(strings.Join(parts, " · "))
}

func (s *studyView) help() []key.Binding {
	return []key.Binding{
		studyKeyMap.Play,
		studyKeyMap.Up,
		studyKeyMap.Seek,
		studyKeyMap.PrevPage,
		studyKeyMap.NextPage,
	}
}
