package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuivoca/internal/content"
	"github.com/verte-zerg/tuivoca/internal/gesture"
	"github.com/verte-zerg/tuivoca/internal/model"
	"github.com/verte-zerg/tuivoca/internal/review"
)

// reviewView is the strict review view.
type reviewView struct {
	svc       *services
	session   *review.Session
	chapter   int
	passStart time.Time
	dialog    *dialog
}

func newReviewView(svc *services) *reviewView {
	s := review.New(svc.shuffler)
	if mode, err := review.ParseMode(svc.cfg.ReviewMode); err == nil {
		s.SetMode(mode)
	}
	if svc.shuffler != nil {
		s.SetRandom(svc.cfg.ReviewRandom)
	}
	return &reviewView{svc: svc, session: s}
}

func (r *reviewView) load(chapter int, atEnd bool) tea.Cmd {
	r.chapter = chapter
	r.dialog = nil
	r.session.SetChapter(chapter, r.svc.content.MaxChapter(), r.svc.content.ChapterWords(chapter), atEnd)
	r.startPass()
	return nil
}

func (r *reviewView) loaded() int {
	return r.chapter
}

func (r *reviewView) enter() tea.Cmd {
	return nil
}

func (r *reviewView) leave() {}

func (r *reviewView) resize(int, int) {}

func (r *reviewView) modal() *dialog {
	return r.dialog
}

func (r *reviewView) startPass() {
	r.passStart = r.svc.now()
}

func (r *reviewView) update(msg tea.KeyMsg) tea.Cmd {
	if r.dialog != nil {
		return r.answer(r.dialog.answer(msg))
	}
	switch {
	case key.Matches(msg, reviewKeyMap.Next):
		return r.next()
	case key.Matches(msg, reviewKeyMap.Prev):
		return r.prev()
	case key.Matches(msg, reviewKeyMap.Reveal):
		r.session.Reveal()
	case key.Matches(msg, reviewKeyMap.Mode):
		r.session.SetMode(r.session.Mode().Other())
		r.startPass()
	case key.Matches(msg, reviewKeyMap.Random):
		if r.svc.shuffler == nil {
			return nil
		}
		r.session.ToggleRandom()
		r.startPass()
	case key.Matches(msg, reviewKeyMap.Speak):
		if w, ok := r.session.Current(); ok {
			r.svc.say(w.Word)
		}
	}
	return nil
}

func (r *reviewView) swipe(dir gesture.Direction) tea.Cmd {
	switch dir {
	case gesture.Forward:
		return r.next()
	case gesture.Backward:
		return r.prev()
	default:
		return nil
	}
}

func (r *reviewView) next() tea.Cmd {
	p := r.session.Next()
	if p.Kind == review.Completion {
		r.recordPass()
	}
	r.dialog = r.promptDialog(p)
	return nil
}

func (r *reviewView) prev() tea.Cmd {
	r.dialog = r.promptDialog(r.session.Prev())
	return nil
}

func (r *reviewView) answer(a answer) tea.Cmd {
	switch a {
	case answerAccept:
		r.dialog = nil
		target, atEnd := r.session.Accept()
		if target != 0 {
			return requestChapter(target, atEnd)
		}
	case answerRepeat:
		r.dialog = nil
		r.session.Repeat()
		r.startPass()
	case answerDecline:
		r.dialog = nil
		r.session.Decline()
	}
	return nil
}

func (r *reviewView) recordPass() {
	if r.svc.history == nil {
		return
	}
	pass := model.ReviewPass{
		Chapter:   r.chapter,
		Mode:      string(r.session.Mode()),
		Random:    r.session.Random(),
		Words:     r.session.Len(),
		StartedAt: r.passStart,
		EndedAt:   r.svc.now(),
	}
	if _, err := r.svc.history.InsertReviewPass(context.Background(), pass); err != nil {
		r.svc.fail(err)
	}
}

func (r *reviewView) promptDialog(p review.Prompt) *dialog {
	switch p.Kind {
	case review.Completion:
		d := &dialog{
			title: fmt.Sprintf("Chapter %d complete", r.chapter),
			body:  fmt.Sprintf("You studied all %d words.", r.session.Len()),
		}
		if p.Target != 0 {
			d.choices = append(d.choices, acceptChoice(fmt.Sprintf("chapter %d", p.Target)))
		}
		d.choices = append(d.choices, repeatChoice("repeat"), declineChoice("stay"))
		return d
	case review.Boundary:
		switch {
		case p.Target != 0 && p.Forward:
			return confirmDialog("Last word", fmt.Sprintf("Go to chapter %d?", p.Target), "go", "stay")
		case p.Target != 0:
			return confirmDialog("First word", fmt.Sprintf("Go back to chapter %d?", p.Target), "go", "stay")
		case p.Forward:
			return confirmDialog("Last word", "Start over from the first word?", "start over", "stay")
		default:
			return confirmDialog("First word", "Jump to the last word?", "jump", "stay")
		}
	default:
		return nil
	}
}

func (r *reviewView) render(width, height int) string {
	w := contentWidth(width)
	var card string
	word, ok := r.session.Current()
	if !ok {
		card = mutedStyle.Render("No word")
	} else {
		front, back := r.faces(word, w-8)
		mark := ""
		if r.session.IsStudied(r.session.WordIndex()) {
			mark = accentStyle.Render(" ✓")
		}
		lines := []string{
			titleStyle.Render(fmt.Sprintf("Card %d / %d", r.session.Position()+1, r.session.Len())) + mark,
			"",
			front,
			"",
		}
		if r.session.Revealed() {
			lines = append(lines, back)
		} else {
			lines = append(lines, hiddenStyle.Render("space to reveal"))
		}
		card = cardStyle.Width(w).Render(strings.Join(lines, "\n"))
	}
	order := "in order"
	if r.session.Random() {
		order = "random"
	}
	status := footerStyle.Render(fmt.Sprintf("Studied %s · %s · %s", r.session.Progress(), r.session.Mode(), order))
	body := lipgloss.JoinVertical(lipgloss.Center, card, status)
	if width <= 0 || height <= 0 {
		return body
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

// faces returns the shown and hidden halves of the card.
func (r *reviewView) faces(word model.WordEntry, width int) (string, string) {
	wordFace := wordStyle.Render(word.Word)
	lines := make([]string, 0, 4)
	for _, mn := range content.ParseMeanings(word.POS, word.Meaning) {
		if mn.POS != "" {
			lines = append(lines, accentStyle.Render(mn.POS)+" "+textStyle.Render(mn.Text))
		} else {
			lines = append(lines, textStyle.Render(mn.Text))
		}
	}
	if word.Example != "" {
		lines = append(lines, mutedStyle.Render(wrapText(word.Example, max(10, width))))
	}
	meaningFace := strings.Join(lines, "\n")
	if r.session.Mode() == review.MeaningFirst {
		return meaningFace, wordFace
	}
	return wordFace, meaningFace
}

func (r *reviewView) help() []key.Binding {
	bindings := []key.Binding{reviewKeyMap.Prev, reviewKeyMap.Next, reviewKeyMap.Reveal, reviewKeyMap.Mode}
	if r.svc.shuffler != nil {
		bindings = append(bindings, reviewKeyMap.Random)
	}
	return append(bindings, reviewKeyMap.Speak)
}
