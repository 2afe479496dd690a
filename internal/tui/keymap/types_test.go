package keymap

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestKeyBindingMatches(t *testing.T) {
	tests := []struct {
		name     string
		binding  KeyBinding
		msg      tea.KeyMsg
		expected bool
	}{
		{
			name:     "simple rune match",
			binding:  KeyBinding{KeyType: tea.KeyRunes, Rune: 'q'},
			msg:      tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}},
			expected: true,
		},
		{
			name:     "simple rune mismatch",
			binding:  KeyBinding{KeyType: tea.KeyRunes, Rune: 'q'},
			msg:      tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}},
			expected: false,
		},
		{
			name:     "special key match",
			binding:  KeyBinding{KeyType: tea.KeyEnter},
			msg:      tea.KeyMsg{Type: tea.KeyEnter},
			expected: true,
		},
		{
			name:     "special key mismatch",
			binding:  KeyBinding{KeyType: tea.KeyLeft},
			msg:      tea.KeyMsg{Type: tea.KeyRight},
			expected: false,
		},
		{
			name:     "alt modifier required",
			binding:  KeyBinding{KeyType: tea.KeyRunes, Rune: 'q', Modifiers: ModAlt},
			msg:      tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}},
			expected: false,
		},
		{
			name:     "alt modifier present",
			binding:  KeyBinding{KeyType: tea.KeyRunes, Rune: 'q', Modifiers: ModAlt},
			msg:      tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}, Alt: true},
			expected: true,
		},
		{
			name:     "unexpected alt",
			binding:  KeyBinding{KeyType: tea.KeyUp},
			msg:      tea.KeyMsg{Type: tea.KeyUp, Alt: true},
			expected: false,
		},
		{
			name:     "rune binding against empty runes",
			binding:  KeyBinding{KeyType: tea.KeyRunes, Rune: 'q'},
			msg:      tea.KeyMsg{Type: tea.KeyRunes},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.binding.Matches(tt.msg); got != tt.expected {
				t.Errorf("Matches() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestKeyBindingString(t *testing.T) {
	tests := []struct {
		binding  KeyBinding
		expected string
	}{
		{KeyBinding{KeyType: tea.KeyRunes, Rune: 'q'}, "q"},
		{KeyBinding{KeyType: tea.KeyRunes, Rune: ' '}, "space"},
		{KeyBinding{KeyType: tea.KeyEnter}, "enter"},
		{KeyBinding{KeyType: tea.KeyLeft}, "←"},
		{KeyBinding{KeyType: tea.KeyDown}, "↓"},
		{KeyBinding{KeyType: tea.KeyRunes, Rune: 'x', Modifiers: ModAlt}, "alt+x"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.binding.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDefaultKeymap(t *testing.T) {
	km := DefaultKeymap()

	tests := []struct {
		name    string
		mode    Mode
		msg     tea.KeyMsg
		wantCmd Command
		wantOK  bool
	}{
		{"browse left", ModeBrowse, tea.KeyMsg{Type: tea.KeyLeft}, CmdMoveLeft, true},
		{"browse right", ModeBrowse, tea.KeyMsg{Type: tea.KeyRight}, CmdMoveRight, true},
		{"browse up", ModeBrowse, tea.KeyMsg{Type: tea.KeyUp}, CmdMoveUp, true},
		{"browse down", ModeBrowse, tea.KeyMsg{Type: tea.KeyDown}, CmdMoveDown, true},
		{"browse enter", ModeBrowse, tea.KeyMsg{Type: tea.KeyEnter}, CmdSelect, true},
		{"browse q", ModeBrowse, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, CmdQuit, true},
		{"browse ctrl+c", ModeBrowse, tea.KeyMsg{Type: tea.KeyCtrlC}, CmdQuit, true},
		{"browse ignores hjkl", ModeBrowse, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}}, "", false},
		{"browse ignores r", ModeBrowse, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}, "", false},
		{"loading ignores arrows", ModeLoading, tea.KeyMsg{Type: tea.KeyRight}, "", false},
		{"loading ignores enter", ModeLoading, tea.KeyMsg{Type: tea.KeyEnter}, "", false},
		{"loading quit", ModeLoading, tea.KeyMsg{Type: tea.KeyCtrlC}, CmdQuit, true},
		{"error r retries", ModeError, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}, CmdRetry, true},
		{"error enter retries", ModeError, tea.KeyMsg{Type: tea.KeyEnter}, CmdRetry, true},
		{"error ignores arrows", ModeError, tea.KeyMsg{Type: tea.KeyDown}, "", false},
		{"unknown mode", Mode("nope"), tea.KeyMsg{Type: tea.KeyEnter}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, ok := km.GetBinding(tt.msg, tt.mode)
			if ok != tt.wantOK || cmd != tt.wantCmd {
				t.Errorf("GetBinding() = (%q, %v), want (%q, %v)", cmd, ok, tt.wantCmd, tt.wantOK)
			}
		})
	}
}

func TestKeymap_UnknownMode(t *testing.T) {
	km := DefaultKeymap()

	if cmd, ok := km.GetBinding(tea.KeyMsg{Type: tea.KeyEnter}, Mode("nope")); ok {
		t.Errorf("GetBinding(unknown mode) = %q, want no binding", cmd)
	}
	if got := km.Help(Mode("nope")); len(got) != 0 {
		t.Errorf("Help(unknown mode) = %v, want empty", got)
	}
}

func TestHelp(t *testing.T) {
	km := DefaultKeymap()

	tests := []struct {
		mode Mode
		want []HelpEntry
	}{
		{ModeBrowse, []HelpEntry{
			{Keys: "←/→/↑/↓", Label: "move"},
			{Keys: "enter", Label: "select"},
			{Keys: "q", Label: "quit"},
		}},
		{ModeError, []HelpEntry{
			{Keys: "r/enter", Label: "retry"},
			{Keys: "q", Label: "quit"},
		}},
		{ModeLoading, []HelpEntry{
			{Keys: "q", Label: "quit"},
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			got := km.Help(tt.mode)
			if len(got) != len(tt.want) {
				t.Fatalf("Help() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Help()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestModifierString(t *testing.T) {
	if got := ModNone.String(); got != "" {
		t.Errorf("ModNone.String() = %q", got)
	}
	if got := (ModCtrl | ModShift).String(); got != "ctrl+shift+" {
		t.Errorf("String() = %q, want ctrl+shift+", got)
	}
}
