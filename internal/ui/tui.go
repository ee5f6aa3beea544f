// ABOUTME: TUI initialization and control
// ABOUTME: Builds the browser entries from a bank graph and wraps bubbletea
package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marijnvdwerf/pokemonsnap-splat/pkg/albank"
)

// NewModel creates a new TUI model. player may be nil to browse without
// audio.
func NewModel(title string, graph *albank.Graph, player Player) Model {
	users := waveUsers(graph)

	refs := graph.WaveTableRefs()
	entries := make([]Entry, len(refs))
	for i, ref := range refs {
		wt := graph.WaveTable(ref)
		entries[i] = Entry{
			Name:  fmt.Sprintf("sound-%X", wt.Base),
			Ref:   ref,
			Wave:  wt,
			Users: users[ref.Offset],
		}
	}

	return Model{
		graph:   graph,
		player:  player,
		entries: entries,
		title:   title,
		volume:  100,
	}
}

// waveUsers maps wave table offsets to the programs that play them.
func waveUsers(graph *albank.Graph) map[uint32][]string {
	users := make(map[uint32][]string)
	add := func(label string, inst *albank.Instrument) {
		if inst == nil {
			return
		}
		seen := make(map[uint32]bool)
		for _, sref := range inst.Sounds {
			snd := graph.Sound(sref)
			if snd == nil || seen[snd.WaveTable.Offset] {
				continue
			}
			seen[snd.WaveTable.Offset] = true
			users[snd.WaveTable.Offset] = append(users[snd.WaveTable.Offset], label)
		}
	}

	for b, bank := range graph.Banks() {
		if bank == nil {
			continue
		}
		add(fmt.Sprintf("bank %d perc", b), graph.Instrument(bank.Percussion))
		for p, iref := range bank.Instruments {
			add(fmt.Sprintf("bank %d prog %d", b, p), graph.Instrument(iref))
		}
	}
	return users
}

// Run starts the TUI
func Run(title string, graph *albank.Graph, player Player) (*tea.Program, error) {
	p := tea.NewProgram(NewModel(title, graph, player), tea.WithAltScreen())
	return p, nil
}
