package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuivoca/internal/gesture"
	"github.com/verte-zerg/tuivoca/internal/store"
	"github.com/verte-zerg/tuivoca/internal/wordlist"
)

const hiddenCell = "•••"

// wordListView is the paginated word table.
type wordListView struct {
	svc     *services
	session *wordlist.Session
	table   table.Model
	chapter int
	dialog  *dialog
}

func newWordListView(svc *services) *wordListView {
	mode := wordlist.Both
	if v, ok := svc.pref(store.KeyWordListMode); ok {
		mode = wordlist.ParseMode(v)
	}
	t := table.New(
		table.WithColumns(wordColumns(80)),
		table.WithHeight(wordlist.WordsPerPage+1),
		table.WithFocused(true),
	)
	t.SetStyles(wordTableStyles())
	return &wordListView{svc: svc, session: wordlist.New(mode), table: t}
}

func wordColumns(width int) []table.Column {
	rest := max(20, width-4-8-4)
	wordWidth := max(10, rest/3)
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Word", Width: wordWidth},
		{Title: "POS", Width: 8},
		{Title: "Meaning", Width: max(10, rest-wordWidth)},
	}
}

func (v *wordListView) load(chapter int, atEnd bool) tea.Cmd {
	v.chapter = chapter
	v.dialog = nil
	v.session.SetChapter(chapter, v.svc.content.MaxChapter(), v.svc.content.ChapterWords(chapter), atEnd)
	v.refresh()
	v.table.SetCursor(0)
	return nil
}

func (v *wordListView) loaded() int {
	return v.chapter
}

func (v *wordListView) enter() tea.Cmd {
	return nil
}

func (v *wordListView) leave() {}

func (v *wordListView) resize(width, _ int) {
	v.table.SetColumns(wordColumns(width))
	v.table.SetWidth(width)
	v.refresh()
}

func (v *wordListView) modal() *dialog {
	return v.dialog
}

func (v *wordListView) refresh() {
	rows := v.session.Rows()
	out := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		word, pos, meaning := r.Entry.Word, r.Entry.POS, r.Entry.Meaning
		if !r.ShowWord {
			word = hiddenCell
		}
		if !r.ShowMeaning {
			pos, meaning = hiddenCell, hiddenCell
		}
		out = append(out, table.Row{strconv.Itoa(r.Index + 1), word, pos, meaning})
	}
	v.table.SetRows(out)
	if v.table.Cursor() >= len(out) {
		v.table.SetCursor(max(0, len(out)-1))
	}
}

func (v *wordListView) update(msg tea.KeyMsg) tea.Cmd {
	if v.dialog != nil {
		return v.answer(v.dialog.answer(msg))
	}
	switch {
	case key.Matches(msg, wordListKeyMap.Up):
		v.table.MoveUp(1)
	case key.Matches(msg, wordListKeyMap.Down):
		v.table.MoveDown(1)
	case key.Matches(msg, wordListKeyMap.Toggle):
		v.session.Toggle(v.table.Cursor())
		v.refresh()
	case key.Matches(msg, wordListKeyMap.NextPage):
		page := v.session.Page()
		v.prompt(v.session.NextPage(), page)
	case key.Matches(msg, wordListKeyMap.PrevPage):
		page := v.session.Page()
		v.prompt(v.session.PrevPage(), page)
	case key.Matches(msg, wordListKeyMap.Mode):
		mode := v.session.CycleMode()
		v.svc.setPref(store.KeyWordListMode, string(mode))
		v.refresh()
	case key.Matches(msg, wordListKeyMap.Speak):
		words := v.session.PageWords()
		if i := v.table.Cursor(); i >= 0 && i < len(words) {
			v.svc.say(words[i].Word)
		}
	}
	return nil
}

func (v *wordListView) swipe(dir gesture.Direction) tea.Cmd {
	page := v.session.Page()
	v.prompt(v.session.Swipe(dir), page)
	return nil
}

// prompt refreshes the table after a move from page and opens a dialog for
// a chapter crossing.
func (v *wordListView) prompt(p *wordlist.Prompt, page int) {
	if v.session.Page() != page {
		v.table.SetCursor(0)
	}
	v.refresh()
	if p == nil {
		return
	}
	var body string
	switch {
	case p.Wrap && p.Forward:
		body = fmt.Sprintf("This is the last chapter. Start again from chapter %d?", p.Target)
	case p.Wrap:
		body = fmt.Sprintf("This is the first chapter. Go to the last chapter, %d?", p.Target)
	case p.Forward:
		body = fmt.Sprintf("Continue with chapter %d?", p.Target)
	default:
		body = fmt.Sprintf("Go back to chapter %d?", p.Target)
	}
	v.dialog = confirmDialog("End of chapter", body, "go", "stay")
}

func (v *wordListView) answer(a answer) tea.Cmd {
	switch a {
	case answerAccept:
		v.dialog = nil
		target, atEnd := v.session.Accept()
		if target != 0 {
			return requestChapter(target, atEnd)
		}
	case answerDecline:
		v.dialog = nil
		v.session.Decline()
	}
	return nil
}

func (v *wordListView) render(width, height int) string {
	title := wordStyle.Render(v.session.Title())
	meta := mutedStyle.Render(fmt.Sprintf("  %s · page %s", v.session.Mode().Label(), v.session.PageLabel()))
	if v.session.Len() == 0 {
		body := lipgloss.JoinVertical(lipgloss.Left, title+meta, "", mutedStyle.Render("No word"))
		return lipgloss.Place(max(width, 1), max(height, 1), lipgloss.Center, lipgloss.Top, body)
	}
	hint := ""
	if v.session.Mode() != wordlist.Both && !v.session.PageRevealed() {
		hint = hiddenStyle.Render("space reveals a row; swipe to reveal the page")
	}
	return lipgloss.JoinVertical(lipgloss.Left, title+meta, "", v.table.View(), "", hint)
}

func (v *wordListView) help() []key.Binding {
	return []key.Binding{
		wordListKeyMap.Up,
		wordListKeyMap.Toggle,
		wordListKeyMap.PrevPage,
		wordListKeyMap.NextPage,
		wordListKeyMap.Mode,
		wordListKeyMap.Speak,
	}
}
