package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	back    key.Binding
	tab     key.Binding
	backtab key.Binding
	quit    key.Binding
	signOut key.Binding
	signUp  key.Binding
	search  key.Binding
	reload  key.Binding
	delete  key.Binding
}

var keys = keyMap{
	up:      key.NewBinding(key.WithKeys("up", "k")),
	down:    key.NewBinding(key.WithKeys("down", "j")),
	enter:   key.NewBinding(key.WithKeys("enter")),
	back:    key.NewBinding(key.WithKeys("esc", "backspace")),
	tab:     key.NewBinding(key.WithKeys("tab")),
	backtab: key.NewBinding(key.WithKeys("shift+tab")),
	quit:    key.NewBinding(key.WithKeys("ctrl+c")),
	signOut: key.NewBinding(key.WithKeys("x")),
	signUp:  key.NewBinding(key.WithKeys("ctrl+n")),
	search:  key.NewBinding(key.WithKeys("/")),
	reload:  key.NewBinding(key.WithKeys("r")),
	delete:  key.NewBinding(key.WithKeys("d")),
}
