package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up         key.Binding
	down       key.Binding
	enter      key.Binding
	esc        key.Binding
	quit       key.Binding
	logout     key.Binding
	newSession key.Binding
	notes      key.Binding
	reload     key.Binding
	rename     key.Binding
	delete     key.Binding
	copy       key.Binding
	copyAll    key.Binding
	retry      key.Binding
	save       key.Binding
	yes        key.Binding
	no         key.Binding
}

var keys = keyMap{
	up:         key.NewBinding(key.WithKeys("up", "k")),
	down:       key.NewBinding(key.WithKeys("down", "j")),
	enter:      key.NewBinding(key.WithKeys("enter")),
	esc:        key.NewBinding(key.WithKeys("esc")),
	quit:       key.NewBinding(key.WithKeys("q", "ctrl+c")),
	logout:     key.NewBinding(key.WithKeys("l")),
	newSession: key.NewBinding(key.WithKeys("n")),
	notes:      key.NewBinding(key.WithKeys("o")),
	reload:     key.NewBinding(key.WithKeys("g")),
	rename:     key.NewBinding(key.WithKeys("e")),
	delete:     key.NewBinding(key.WithKeys("d")),
	copy:       key.NewBinding(key.WithKeys("c")),
	copyAll:    key.NewBinding(key.WithKeys("t")),
	retry:      key.NewBinding(key.WithKeys("r")),
	save:       key.NewBinding(key.WithKeys("s")),
	yes:        key.NewBinding(key.WithKeys("y")),
	no:         key.NewBinding(key.WithKeys("n")),
}
