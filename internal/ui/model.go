// ABOUTME: Bubbletea model for the bank browser TUI
// ABOUTME: Lists wave tables, shows their records and previews them on demand
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marijnvdwerf/pokemonsnap-splat/pkg/aifc"
	"github.com/marijnvdwerf/pokemonsnap-splat/pkg/albank"
)

// Player previews a wave table
type Player interface {
	Play(ref albank.Ref) error
	SetVolume(volume int)
	SetMuted(muted bool)
}

// Entry is one row of the browser
type Entry struct {
	Name  string
	Ref   albank.Ref
	Wave  *albank.WaveTable
	Users []string // "bank 0 prog 3", "bank 1 perc"
}

// Model represents the TUI state
type Model struct {
	graph   *albank.Graph
	player  Player
	entries []Entry
	title   string

	cursor int
	offset int

	// Playback
	playing string
	status  string
	volume  int
	muted   bool

	// Dimensions
	width  int
	height int
}

// PlayedMsg reports the end of a preview
type PlayedMsg struct {
	Name string
	Err  error
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scroll()
	case PlayedMsg:
		if msg.Name == m.playing {
			m.playing = ""
		}
		if msg.Err != nil {
			m.status = fmt.Sprintf("%s: %v", msg.Name, msg.Err)
		} else {
			m.status = fmt.Sprintf("played %s", msg.Name)
		}
	}

	return m, nil
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		if len(m.entries) > 0 {
			m.cursor = len(m.entries) - 1
		}
	case "+", "=":
		m.setVolume(m.volume + 5)
	case "-":
		m.setVolume(m.volume - 5)
	case "m":
		m.muted = !m.muted
		if m.player != nil {
			m.player.SetMuted(m.muted)
		}
	case "p", "enter":
		return m.play()
	}

	m.scroll()
	return m, nil
}

func (m *Model) setVolume(volume int) {
	if volume > 100 {
		volume = 100
	}
	if volume < 0 {
		volume = 0
	}
	m.volume = volume
	if m.player != nil {
		m.player.SetVolume(volume)
	}
}

func (m Model) play() (tea.Model, tea.Cmd) {
	if m.player == nil || len(m.entries) == 0 || m.playing != "" {
		return m, nil
	}

	entry := m.entries[m.cursor]
	m.playing = entry.Name
	m.status = fmt.Sprintf("playing %s", entry.Name)

	player := m.player
	return m, func() tea.Msg {
		return PlayedMsg{Name: entry.Name, Err: player.Play(entry.Ref)}
	}
}

// listHeight is how many rows fit next to the header and help lines.
func (m Model) listHeight() int {
	h := m.height - 4
	if h < 1 {
		return 1
	}
	return h
}

// scroll keeps the cursor inside the visible window
func (m *Model) scroll() {
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := headerStyle.Render(fmt.Sprintf("%s  %d samples", m.title, len(m.entries)))

	listWidth := 34
	detailWidth := m.width - listWidth - 3
	if detailWidth < 20 {
		detailWidth = 20
	}

	list := lipgloss.NewStyle().Width(listWidth).Render(m.renderList())
	divider := dividerStyle.Render(strings.Repeat("│\n", m.listHeight()))
	detail := lipgloss.NewStyle().Width(detailWidth).Render(m.renderDetail())

	body := lipgloss.JoinHorizontal(lipgloss.Top, list, divider, detail)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderStatus(), m.renderHelp())
}

// renderList renders the visible window of wave tables
func (m Model) renderList() string {
	if len(m.entries) == 0 {
		return faintStyle.Render("no wave tables")
	}

	var b strings.Builder
	end := min(m.offset+m.listHeight(), len(m.entries))
	for i := m.offset; i < end; i++ {
		e := m.entries[i]
		line := fmt.Sprintf("%-14s %6d B", e.Name, e.Wave.Len)
		if e.Wave.Book.IsNil() {
			line += " !"
		}
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// renderDetail renders the records behind the selected wave table
func (m Model) renderDetail() string {
	if len(m.entries) == 0 {
		return ""
	}
	e := m.entries[m.cursor]
	wt := e.Wave

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", labelStyle.Render(e.Name))
	fmt.Fprintf(&b, "record   0x%X\n", e.Ref.Offset)
	fmt.Fprintf(&b, "base     0x%X\n", wt.Base)
	fmt.Fprintf(&b, "length   %d bytes, %d frames\n", wt.Len, aifc.FrameCount(int(wt.Len)))
	fmt.Fprintf(&b, "type     %s  flags 0x%02X\n", wt.Type, wt.Flags)

	if book := m.graph.Book(wt.Book); book != nil {
		fmt.Fprintf(&b, "book     order %d, %d predictors\n", book.Order, book.NPredictors)
	} else {
		b.WriteString(warnStyle.Render("book     none, cannot decode") + "\n")
	}

	if loop := m.graph.Loop(wt.Loop); loop != nil {
		count := fmt.Sprintf("%d", loop.Count)
		if loop.Count == 0xFFFFFFFF {
			count = "forever"
		}
		fmt.Fprintf(&b, "loop     %d..%d x %s\n", loop.Start, loop.End, count)
	} else {
		b.WriteString("loop     none\n")
	}

	b.WriteString("\n" + labelStyle.Render("used by") + "\n")
	for _, u := range e.Users {
		b.WriteString("  " + u + "\n")
	}
	return b.String()
}

// renderStatus renders volume and playback state
func (m Model) renderStatus() string {
	muteIcon := ""
	if m.muted {
		muteIcon = " (muted)"
	}
	return fmt.Sprintf("Volume [%s] %d%%%s  %s", renderBar(m.volume, 100, 10), m.volume, muteIcon, truncate(m.status, 60))
}

// renderHelp renders keyboard shortcuts
func (m Model) renderHelp() string {
	return faintStyle.Render("↑/↓:Select  p:Play  +/-:Volume  m:Mute  q:Quit")
}

// Utility functions
func renderBar(value, max, width int) string {
	filled := (value * width) / max
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}
