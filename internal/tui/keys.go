package tui

import "github.com/charmbracelet/bubbles/key"

type globalKeys struct {
	Quit     key.Binding
	NextView key.Binding
	PrevView key.Binding
	Views    [5]key.Binding
	Chapter  key.Binding
}

var global = globalKeys{
	Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	NextView: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
	PrevView: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev view")),
	Views: [5]key.Binding{
		key.NewBinding(key.WithKeys("1")),
		key.NewBinding(key.WithKeys("2")),
		key.NewBinding(key.WithKeys("3")),
		key.NewBinding(key.WithKeys("4")),
		key.NewBinding(key.WithKeys("5")),
	},
	Chapter: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "chapter")),
}

type homeKeys struct {
	Next     key.Binding
	Prev     key.Binding
	Flip     key.Binding
	AutoPlay key.Binding
	Settings key.Binding
	Faster   key.Binding
	Slower   key.Binding
	Sound    key.Binding
	Speak    key.Binding
	Promo    key.Binding
}

var homeKeyMap = homeKeys{
	Next:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next")),
	Prev:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev")),
	Flip:     key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "flip")),
	AutoPlay: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "autoplay")),
	Settings: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
	Faster:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "shorter")),
	Slower:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "longer")),
	Sound:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "sound")),
	Speak:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pronounce")),
	Promo:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open video")),
}

type reviewKeys struct {
	Next   key.Binding
	Prev   key.Binding
	Reveal key.Binding
	Mode   key.Binding
	Random key.Binding
	Speak  key.Binding
}

var reviewKeyMap = reviewKeys{
	Next:   key.NewBinding(key.WithKeys("right", "l", "enter"), key.WithHelp("→", "next")),
	Prev:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev")),
	Reveal: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "reveal")),
	Mode:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mode")),
	Random: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "random")),
	Speak:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pronounce")),
}

type wordListKeys struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Mode     key.Binding
	Speak    key.Binding
}

var wordListKeyMap = wordListKeys{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "row")),
	Down:     key.NewBinding(key.WithKeys("down", "j")),
	Toggle:   key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "reveal")),
	NextPage: key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→", "next page")),
	PrevPage: key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←", "prev page")),
	Mode:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mode")),
	Speak:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pronounce")),
}

type studyKeys struct {
	Play     key.Binding
	Up       key.Binding
	Down     key.Binding
	Seek     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
}

var studyKeyMap = studyKeys{
	Play:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "line")),
	Down:     key.NewBinding(key.WithKeys("down", "j")),
	Seek:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play line")),
	NextPage: key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→", "next page")),
	PrevPage: key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←", "prev page")),
}

type aboutKeys struct {
	Email key.Binding
}

var aboutKeyMap = aboutKeys{
	Email: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "email developer")),
}

type pickerKeys struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Select   key.Binding
	Close    key.Binding
}

var pickerKeyMap = pickerKeys{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("←↑↓→", "move")),
	Down:     key.NewBinding(key.WithKeys("down", "j")),
	Left:     key.NewBinding(key.WithKeys("left", "h")),
	Right:    key.NewBinding(key.WithKeys("right", "l")),
	NextPage: key.NewBinding(key.WithKeys("pgdown", "]"), key.WithHelp("]", "next page")),
	PrevPage: key.NewBinding(key.WithKeys("pgup", "["), key.WithHelp("[", "prev page")),
	Select:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
	Close:    key.NewBinding(key.WithKeys("esc", "c"), key.WithHelp("esc", "close")),
}
