// Package tui provides the Bubble Tea vocabulary trainer.
package tui

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuivoca/internal/content"
	"github.com/verte-zerg/tuivoca/internal/gesture"
	"github.com/verte-zerg/tuivoca/internal/model"
	"github.com/verte-zerg/tuivoca/internal/nav"
	"github.com/verte-zerg/tuivoca/internal/player"
	"github.com/verte-zerg/tuivoca/internal/promo"
	"github.com/verte-zerg/tuivoca/internal/speech"
	"github.com/verte-zerg/tuivoca/internal/store"
)

// DefaultSwipeThreshold is the horizontal drag, in cells, that counts as a
// swipe.
const DefaultSwipeThreshold = 6

// Prefs is the key-value store for user choices.
type Prefs interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// History records completed review passes.
type History interface {
	InsertReviewPass(ctx context.Context, pass model.ReviewPass) (string, error)
}

// Speaker pronounces text without blocking.
type Speaker interface {
	Say(req speech.Request) bool
}

// PromoFetcher looks up the promo video details.
type PromoFetcher interface {
	Fetch(ctx context.Context, videoID string) (promo.Info, error)
}

// Shuffler produces random permutations for the review order.
type Shuffler interface {
	Permutation(n int) []int
}

// PlayerFactory starts a player for a chapter video.
type PlayerFactory func(ctx context.Context, video model.VideoChapter) (player.Player, error)

// Options wires the trainer to its collaborators. Only Content is required.
type Options struct {
	Content   *content.Store
	Config    model.Config
	Prefs     Prefs
	History   History
	Speaker   Speaker
	Promo     PromoFetcher
	Open      func(target string) error
	NewPlayer PlayerFactory
	Shuffler  Shuffler
	Now       func() time.Time
}

type chapterRequestMsg struct {
	chapter int
	atEnd   bool
}

type errMsg struct {
	err error
}

func requestChapter(chapter int, atEnd bool) tea.Cmd {
	return func() tea.Msg {
		return chapterRequestMsg{chapter: chapter, atEnd: atEnd}
	}
}

// services is what every view shares.
type services struct {
	content   *content.Store
	cfg       model.Config
	prefs     Prefs
	history   History
	speaker   Speaker
	promo     PromoFetcher
	open      func(string) error
	newPlayer PlayerFactory
	shuffler  Shuffler
	now       func() time.Time

	status string
}

func (s *services) fail(err error) {
	if err == nil {
		return
	}
	log.Printf("tuivoca: %v", err)
	s.status = err.Error()
}

func (s *services) say(text string) {
	if s.speaker == nil || strings.TrimSpace(text) == "" {
		return
	}
	s.speaker.Say(speech.Request{
		Text:   text,
		Lang:   s.cfg.SpeechVoice,
		Rate:   s.cfg.SpeechRate,
		Volume: s.cfg.SpeechVolume,
	})
}

func (s *services) pref(key string) (string, bool) {
	if s.prefs == nil {
		return "", false
	}
	v, ok, err := s.prefs.Get(context.Background(), key)
	if err != nil {
		s.fail(err)
		return "", false
	}
	return v, ok
}

func (s *services) prefInt(key string, fallback int) int {
	v, ok := s.pref(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func (s *services) prefBool(key string, fallback bool) bool {
	v, ok := s.pref(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func (s *services) setPref(key, value string) {
	if s.prefs == nil {
		return
	}
	s.fail(s.prefs.Set(context.Background(), key, value))
}

func (s *services) openLink(target string) tea.Cmd {
	if s.open == nil || target == "" {
		return nil
	}
	open := s.open
	return func() tea.Msg {
		if err := open(target); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

// screen is one shell view.
type screen interface {
	// load switches the view to chapter, opening it at its end when atEnd.
	load(chapter int, atEnd bool) tea.Cmd
	loaded() int
	enter() tea.Cmd
	leave()
	resize(width, height int)
	update(msg tea.KeyMsg) tea.Cmd
	swipe(dir gesture.Direction) tea.Cmd
	modal() *dialog
	render(width, height int) string
	help() []key.Binding
}

// Model implements the Bubble Tea trainer shell.
type Model struct {
	svc   *services
	state nav.State

	home     *homeView
	wordList *wordListView
	review   *reviewView
	study    *studyView
	about    *aboutView

	picker  *picker
	tracker *gesture.Tracker
	help    help.Model

	width  int
	height int
}

// NewModel builds the shell on the last chapter the user viewed.
func NewModel(opts Options) *Model {
	if opts.Content == nil {
		opts.Content = content.New(nil, nil, model.Meta{}, model.Promo{})
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	svc := &services{
		content:   opts.Content,
		cfg:       opts.Config,
		prefs:     opts.Prefs,
		history:   opts.History,
		speaker:   opts.Speaker,
		promo:     opts.Promo,
		open:      opts.Open,
		newPlayer: opts.NewPlayer,
		shuffler:  opts.Shuffler,
		now:       opts.Now,
	}
	threshold := opts.Config.SwipeThreshold
	if threshold <= 0 {
		threshold = DefaultSwipeThreshold
	}
	m := &Model{
		svc:      svc,
		state:    nav.NewState(svc.prefInt(store.KeyLastChapter, 1), svc.content.MaxChapter()),
		home:     newHomeView(svc),
		wordList: newWordListView(svc),
		review:   newReviewView(svc),
		study:    newStudyView(svc),
		about:    newAboutView(svc),
		tracker:  gesture.NewTracker(threshold),
		help:     help.New(),
	}
	for _, v := range nav.Views {
		m.screen(v).load(m.state.Chapter(), false)
	}
	return m
}

// Chapter returns the selected chapter.
func (m *Model) Chapter() int {
	return m.state.Chapter()
}

// ActiveView returns the visible view.
func (m *Model) ActiveView() nav.View {
	return m.state.View()
}

func (m *Model) screen(v nav.View) screen {
	switch v {
	case nav.ViewWordList:
		return m.wordList
	case nav.ViewReview:
		return m.review
	case nav.ViewStudy:
		return m.study
	case nav.ViewAbout:
		return m.about
	default:
		return m.home
	}
}

func (m *Model) active() screen {
	return m.screen(m.state.View())
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.active().enter(), m.home.fetchPromo())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		m.svc.status = ""
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case chapterRequestMsg:
		return m, m.changeChapter(msg.chapter, msg.atEnd)
	case tickMsg:
		return m, m.home.onTick(msg)
	case promoMsg:
		m.home.onPromo(msg)
		return m, nil
	case playerStartedMsg:
		return m, m.study.onStarted(msg)
	case playerEventMsg:
		return m, m.study.onEvent(msg)
	case errMsg:
		m.svc.fail(msg.err)
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	if m.picker != nil {
		ch, closed := m.picker.update(msg)
		if !closed {
			return nil
		}
		m.picker = nil
		if ch == 0 {
			return nil
		}
		return m.changeChapter(ch, false)
	}
	if m.active().modal() != nil {
		return m.active().update(msg)
	}
	switch {
	case key.Matches(msg, global.Quit):
		return m.quit()
	case key.Matches(msg, global.NextView):
		return m.switchView(m.state.CycleView(1).View())
	case key.Matches(msg, global.PrevView):
		return m.switchView(m.state.CycleView(-1).View())
	case key.Matches(msg, global.Chapter):
		m.openPicker()
		return nil
	}
	for i, b := range global.Views {
		if key.Matches(msg, b) {
			return m.switchView(nav.Views[i])
		}
	}
	return m.active().update(msg)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if tea.MouseEvent(msg).IsWheel() {
		if m.state.View() == nav.ViewStudy && m.picker == nil {
			return m.study.scroll(msg)
		}
		return nil
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.tracker.Start(msg.X, msg.Y)
		}
		return nil
	case tea.MouseActionMotion:
		m.tracker.Move(msg.X, msg.Y)
		return nil
	case tea.MouseActionRelease:
		dir := m.tracker.End(msg.X, msg.Y)
		return m.handleSwipe(dir)
	default:
		return nil
	}
}

func (m *Model) handleSwipe(dir gesture.Direction) tea.Cmd {
	if dir == gesture.None {
		return nil
	}
	if m.picker != nil {
		m.picker.swipe(dir)
		return nil
	}
	if m.active().modal() != nil {
		return nil
	}
	return m.active().swipe(dir)
}

func (m *Model) openPicker() {
	switch m.state.View() {
	case nav.ViewAbout:
		return
	case nav.ViewStudy:
		chapters := m.svc.content.VideoChapters()
		if len(chapters) == 0 {
			return
		}
		m.picker = newPicker("Select a video chapter", nav.NewSelector(chapters), m.state.Chapter())
	default:
		m.picker = newPicker("Select a chapter", nav.RangeSelector(m.state.MaxChapter()), m.state.Chapter())
	}
}

func (m *Model) switchView(v nav.View) tea.Cmd {
	if v == m.state.View() {
		return nil
	}
	m.active().leave()
	m.picker = nil
	m.state = m.state.WithView(v)
	// Views start fresh on every entry.
	next := m.active()
	return tea.Batch(next.load(m.state.Chapter(), false), next.enter())
}

// changeChapter selects chapter, remembers it and reloads the active view.
func (m *Model) changeChapter(chapter int, atEnd bool) tea.Cmd {
	m.state, _ = m.state.WithChapter(chapter)
	m.svc.setPref(store.KeyLastChapter, strconv.Itoa(m.state.Chapter()))
	return m.active().load(m.state.Chapter(), atEnd)
}

func (m *Model) quit() tea.Cmd {
	m.active().leave()
	return tea.Quit
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.svc.status != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.help.Width = m.width
	for _, v := range nav.Views {
		m.screen(v).resize(m.width, bodyHeight)
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return m.renderBody(0, 0)
	}
	_, bodyHeight, _ := m.layoutHeights()
	return m.renderHeader() + "\n" + fitLines(m.renderBody(m.width, bodyHeight), m.width, bodyHeight) + "\n" + m.renderFooter()
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(nav.Views))
	for i, v := range nav.Views {
		label := fmt.Sprintf("%d %s", i+1, v.Title())
		if v == m.state.View() {
			parts = append(parts, activeNavStyle.Render(label))
		} else {
			parts = append(parts, inactiveNavStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := fillWidth(m.renderTabs(), m.width)
	title := fmt.Sprintf("%s · Chapter %d / %d", m.state.View().Title(), m.state.Chapter(), m.state.MaxChapter())
	return tabs + "\n" + fillWidth(headerStyle.Render(title), m.width)
}

func (m *Model) renderBody(width, height int) string {
	switch {
	case m.picker != nil:
		return m.picker.view(width, height)
	case m.active().modal() != nil:
		return m.active().modal().view(width, height)
	default:
		return m.active().render(width, height)
	}
}

func (m *Model) renderFooter() string {
	var bindings []key.Binding
	switch {
	case m.picker != nil:
		bindings = m.picker.help()
	case m.active().modal() != nil:
		for _, c := range m.active().modal().choices {
			bindings = append(bindings, c.binding)
		}
	default:
		bindings = append(m.active().help(), global.NextView)
		if m.state.View() != nav.ViewAbout {
			bindings = append(bindings, global.Chapter)
		}
		bindings = append(bindings, global.Quit)
	}
	footer := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footerStyle.Render(m.help.ShortHelpView(bindings)))
	if m.svc.status == "" {
		return footer
	}
	return footer + "\n" + fillWidth(errorStyle.Render(truncateLine(m.svc.status, m.width)), m.width)
}
