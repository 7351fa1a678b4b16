package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Add      key.Binding
	Increase key.Binding
	Decrease key.Binding
	Remove   key.Binding
	ToCart   key.Binding
	ToShop   key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Add:      key.NewBinding(key.WithKeys("enter", "a"), key.WithHelp("enter", "add to cart")),
		Increase: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more")),
		Decrease: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "less")),
		Remove:   key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "remove")),
		ToCart:   key.NewBinding(key.WithKeys("c", "tab"), key.WithHelp("c", "cart")),
		ToShop:   key.NewBinding(key.WithKeys("p", "esc", "tab"), key.WithHelp("p", "products")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) catalogHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Add, k.ToCart, k.Quit}
}

func (k keyMap) cartHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Increase, k.Decrease, k.Remove, k.ToShop, k.Quit}
}
