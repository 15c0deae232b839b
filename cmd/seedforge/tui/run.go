package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/seedforge/seedforge/pkg/registry"
	"github.com/seedforge/seedforge/pkg/settings"
)

// Run launches the interactive seed browser.
func Run(registryStore *registry.Store, settingsStore *settings.Store) {
	p := tea.NewProgram(
		NewModel(registryStore, settingsStore),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running browser: %v\n", err)
		os.Exit(1)
	}
}
