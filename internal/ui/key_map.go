package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/desertthunder/songdash/internal/models"
)

// sortKeys picks a sort column by position in [models.Fields].
var sortKeys = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0", "-", "="}

// rateKeys are shift+1..5 on a US layout.
var rateKeys = []string{"!", "@", "#", "$", "%"}

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up     key.Binding
	down   key.Binding
	prev   key.Binding
	next   key.Binding
	search key.Binding
	submit key.Binding
	clear  key.Binding
	sort   key.Binding
	rate   key.Binding
	export key.Binding
	charts key.Binding
	sync   key.Binding
	reload key.Binding
	help   key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		prev:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev page")),
		next:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next page")),
		search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		clear:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		sort:   key.NewBinding(key.WithKeys(sortKeys...), key.WithHelp("1-9 0 - =", "sort")),
		rate:   key.NewBinding(key.WithKeys(rateKeys...), key.WithHelp("!@#$%", "rate 1-5")),
		export: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export csv")),
		charts: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "charts")),
		sync:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sync cache")),
		reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.search, k.sort, k.rate, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.prev, k.next},
		{k.search, k.submit, k.clear, k.sort},
		{k.rate, k.export, k.charts},
		{k.sync, k.reload, k.help, k.quit},
	}
}

// sortField maps a sort key to its column.
func sortField(s string) (models.SortField, bool) {
	for i, k := range sortKeys {
		if k == s && i < len(models.Fields) {
			return models.Fields[i], true
		}
	}
	return "", false
}

// stars maps a rate key to 1..5.
func stars(s string) (int, bool) {
	for i, k := range rateKeys {
		if k == s {
			return i + 1, true
		}
	}
	return 0, false
}
