// ABOUTME: Tests for TUI model and state management
// ABOUTME: Tests navigation, playback commands and rendering
package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marijnvdwerf/pokemonsnap-splat/pkg/albank"
	"github.com/marijnvdwerf/pokemonsnap-splat/pkg/albank/albanktest"
)

type fakePlayer struct {
	played []albank.Ref
	volume int
	muted  bool
	err    error
}

func (f *fakePlayer) Play(ref albank.Ref) error {
	f.played = append(f.played, ref)
	return f.err
}

func (f *fakePlayer) SetVolume(volume int) { f.volume = volume }
func (f *fakePlayer) SetMuted(muted bool)  { f.muted = muted }

func loadGraph(t *testing.T) *albank.Graph {
	t.Helper()
	g, err := albank.Load(albanktest.TwoSampleBank())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return g
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", next)
	}
	return model, cmd
}

func TestNewModel(t *testing.T) {
	model := NewModel("music.ctl", loadGraph(t), nil)

	if len(model.entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(model.entries))
	}
	if model.entries[0].Name != "sound-0" || model.entries[1].Name != "sound-12" {
		t.Errorf("unexpected entry names: %s, %s", model.entries[0].Name, model.entries[1].Name)
	}
	if model.volume != 100 {
		t.Errorf("expected default volume 100, got %d", model.volume)
	}
	if model.muted {
		t.Error("expected muted to be false initially")
	}

	users := model.entries[0].Users
	if len(users) != 1 || users[0] != "bank 0 prog 0" {
		t.Errorf("expected sound-0 used by bank 0 prog 0, got %v", users)
	}
}

func TestNavigation(t *testing.T) {
	model := NewModel("music.ctl", loadGraph(t), nil)

	tests := []struct {
		key    string
		cursor int
	}{
		{"up", 0},
		{"down", 1},
		{"down", 1},
		{"k", 0},
		{"G", 1},
		{"g", 0},
		{"j", 1},
	}
	for _, tt := range tests {
		model, _ = update(t, model, key(tt.key))
		if model.cursor != tt.cursor {
			t.Errorf("after %q: expected cursor %d, got %d", tt.key, tt.cursor, model.cursor)
		}
	}
}

func TestVolumeKeys(t *testing.T) {
	player := &fakePlayer{}
	model := NewModel("music.ctl", loadGraph(t), player)

	model, _ = update(t, model, key("+"))
	if model.volume != 100 {
		t.Errorf("expected volume capped at 100, got %d", model.volume)
	}

	model, _ = update(t, model, key("-"))
	model, _ = update(t, model, key("-"))
	if model.volume != 90 || player.volume != 90 {
		t.Errorf("expected volume 90, got model %d player %d", model.volume, player.volume)
	}

	model, _ = update(t, model, key("m"))
	if !model.muted || !player.muted {
		t.Error("expected mute to reach the player")
	}
}

func TestPlayCommand(t *testing.T) {
	player := &fakePlayer{}
	model := NewModel("music.ctl", loadGraph(t), player)

	model, cmd := update(t, model, key("p"))
	if cmd == nil {
		t.Fatal("expected a play command")
	}
	if model.playing != "sound-0" {
		t.Errorf("expected sound-0 playing, got %q", model.playing)
	}

	// A second press while playing is ignored.
	if _, again := update(t, model, key("enter")); again != nil {
		t.Error("expected no command while a preview is playing")
	}

	msg := cmd()
	played, ok := msg.(PlayedMsg)
	if !ok {
		t.Fatalf("expected PlayedMsg, got %T", msg)
	}
	if len(player.played) != 1 || player.played[0].Offset != albanktest.WaveA {
		t.Errorf("expected WaveA to be played, got %v", player.played)
	}

	model, _ = update(t, model, played)
	if model.playing != "" {
		t.Error("expected playback to finish")
	}
	if !strings.Contains(model.status, "played sound-0") {
		t.Errorf("unexpected status %q", model.status)
	}
}

func TestPlayError(t *testing.T) {
	model := NewModel("music.ctl", loadGraph(t), &fakePlayer{})
	model, _ = update(t, model, PlayedMsg{Name: "sound-12", Err: errors.New("no codebook")})
	if !strings.Contains(model.status, "no codebook") {
		t.Errorf("expected error in status, got %q", model.status)
	}
}

func TestPlayWithoutPlayer(t *testing.T) {
	model := NewModel("music.ctl", loadGraph(t), nil)
	if _, cmd := update(t, model, key("p")); cmd != nil {
		t.Error("expected no command without a player")
	}
}

func TestQuit(t *testing.T) {
	model := NewModel("music.ctl", loadGraph(t), nil)
	_, cmd := update(t, model, key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestView(t *testing.T) {
	model := NewModel("music.ctl", loadGraph(t), nil)
	if model.View() != "Loading..." {
		t.Error("expected loading view before the first window size")
	}

	model, _ = update(t, model, tea.WindowSizeMsg{Width: 100, Height: 20})
	view := model.View()
	for _, want := range []string{"music.ctl", "sound-0", "sound-12", "order 2, 1 predictors", "bank 0 prog 0"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view", want)
		}
	}

	model, _ = update(t, model, key("down"))
	if !strings.Contains(model.View(), "cannot decode") {
		t.Error("expected missing codebook warning for sound-12")
	}
}

func TestScrollKeepsCursorVisible(t *testing.T) {
	model := NewModel("music.ctl", loadGraph(t), nil)
	model, _ = update(t, model, tea.WindowSizeMsg{Width: 80, Height: 5})

	model, _ = update(t, model, key("down"))
	if model.offset != 1 {
		t.Errorf("expected list to scroll to 1, got %d", model.offset)
	}
	model, _ = update(t, model, key("up"))
	if model.offset != 0 {
		t.Errorf("expected list to scroll back to 0, got %d", model.offset)
	}
}

func TestRenderBar(t *testing.T) {
	tests := []struct {
		value int
		want  string
	}{
		{0, "░░░░"},
		{50, "██░░"},
		{100, "████"},
	}
	for _, tt := range tests {
		if got := renderBar(tt.value, 100, 4); got != tt.want {
			t.Errorf("renderBar(%d): expected %q, got %q", tt.value, tt.want, got)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("expected unchanged string, got %q", got)
	}
	if got := truncate("a very long status line", 10); got != "a very ..." {
		t.Errorf("unexpected truncation %q", got)
	}
}
