package keymap

import tea "github.com/charmbracelet/bubbletea"

// DefaultKeymap returns the built-in hubview key bindings.
func DefaultKeymap() *Keymap {
	return &Keymap{
		Name:        "default",
		Description: "Default hubview key bindings",
		Modes: map[Mode]*ModeBindings{
			ModeLoading: defaultLoadingBindings(),
			ModeBrowse:  defaultBrowseBindings(),
			ModeError:   defaultErrorBindings(),
		},
	}
}

func quitBindings() []KeyBinding {
	return []KeyBinding{
		{KeyType: tea.KeyRunes, Rune: 'q', Command: CmdQuit, Description: "Quit", Short: "quit"},
		{KeyType: tea.KeyCtrlC, Command: CmdQuit, Description: "Quit"},
	}
}

func defaultLoadingBindings() *ModeBindings {
	return &ModeBindings{
		Mode:     ModeLoading,
		Bindings: quitBindings(),
	}
}

func defaultBrowseBindings() *ModeBindings {
	bindings := []KeyBinding{
		{KeyType: tea.KeyLeft, Command: CmdMoveLeft, Description: "Focus previous tile", Short: "move"},
		{KeyType: tea.KeyRight, Command: CmdMoveRight, Description: "Focus next tile", Short: "move"},
		{KeyType: tea.KeyUp, Command: CmdMoveUp, Description: "Focus previous row", Short: "move"},
		{KeyType: tea.KeyDown, Command: CmdMoveDown, Description: "Focus next row", Short: "move"},
		{KeyType: tea.KeyEnter, Command: CmdSelect, Description: "Select focused tile", Short: "select"},
	}
	return &ModeBindings{
		Mode:     ModeBrowse,
		Bindings: append(bindings, quitBindings()...),
	}
}

func defaultErrorBindings() *ModeBindings {
	bindings := []KeyBinding{
		{KeyType: tea.KeyRunes, Rune: 'r', Command: CmdRetry, Description: "Retry", Short: "retry"},
		{KeyType: tea.KeyEnter, Command: CmdRetry, Description: "Retry", Short: "retry"},
	}
	return &ModeBindings{
		Mode:     ModeError,
		Bindings: append(bindings, quitBindings()...),
	}
}
