package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/seedforge/seedforge/pkg/registry"
	"github.com/seedforge/seedforge/pkg/settings"
)

const (
	tabSeeds    = 0
	tabSettings = 1
)

var tabNames = []string{"Seeds", "Settings"}

// Snapshot is everything the browser needs from disk, fetched in one
// async pass so the UI never blocks on I/O.
type Snapshot struct {
	Registry     registry.Data
	RegistryPath string
	Settings     map[string]string
	SettingKeys  []string
}

type snapshotMsg struct {
	snapshot Snapshot
	err      error
}

// Model is the root browser model.
type Model struct {
	registryStore *registry.Store
	settingsStore *settings.Store

	tabs      []string
	activeTab int
	width     int
	height    int

	snapshot    *Snapshot
	snapshotErr error
	loading     bool
	spinner     spinner.Model
	lastRefresh time.Time

	cursor     int
	showDetail bool
}

func NewModel(registryStore *registry.Store, settingsStore *settings.Store) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorAccent)

	return Model{
		registryStore: registryStore,
		settingsStore: settingsStore,
		tabs:          tabNames,
		spinner:       s,
		loading:       true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, fetchSnapshotCmd(m.registryStore, m.settingsStore))
}

func fetchSnapshotCmd(registryStore *registry.Store, settingsStore *settings.Store) tea.Cmd {
	return func() tea.Msg {
		snap := Snapshot{
			Registry:     registryStore.Load(),
			RegistryPath: registryStore.Path(),
		}
		values, keys, err := settingsStore.All()
		if err != nil {
			return snapshotMsg{err: err}
		}
		snap.Settings = values
		snap.SettingKeys = keys
		return snapshotMsg{snapshot: snap}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab", "shift+tab":
			if msg.String() == "tab" {
				m.activeTab = (m.activeTab + 1) % len(m.tabs)
			} else {
				m.activeTab = (m.activeTab - 1 + len(m.tabs)) % len(m.tabs)
			}
			m.cursor = 0
			m.showDetail = false
			return m, nil
		case "r":
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, fetchSnapshotCmd(m.registryStore, m.settingsStore))
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "j":
			if m.cursor < m.listLen()-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			if m.activeTab == tabSeeds && m.listLen() > 0 {
				m.showDetail = !m.showDetail
			}
			return m, nil
		case "esc":
			m.showDetail = false
			return m, nil
		}

	case snapshotMsg:
		m.loading = false
		m.lastRefresh = time.Now()
		if msg.err != nil {
			m.snapshotErr = msg.err
			return m, nil
		}
		snap := msg.snapshot
		m.snapshot = &snap
		m.snapshotErr = nil
		if m.cursor >= m.listLen() {
			m.cursor = 0
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) listLen() int {
	if m.snapshot == nil {
		return 0
	}
	if m.activeTab == tabSeeds {
		return len(m.snapshot.Registry.Entries)
	}
	return len(m.snapshot.SettingKeys)
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	header := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("seedforge browser")
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(m.renderTabBar())
	b.WriteString("\n")

	switch {
	case m.loading && m.snapshot == nil:
		b.WriteString(fmt.Sprintf("\n  %s Loading...\n", m.spinner.View()))
	case m.snapshotErr != nil:
		b.WriteString("\n  " + styleErr.Render(m.snapshotErr.Error()) + "\n")
	case m.activeTab == tabSeeds:
		b.WriteString(m.renderSeedsTab())
	default:
		b.WriteString(m.renderSettingsTab())
	}

	rendered := b.String()
	lines := strings.Count(rendered, "\n") + 1
	for lines < m.height-1 {
		rendered += "\n"
		lines++
	}
	return rendered + m.renderStatusBar()
}

func (m Model) renderTabBar() string {
	var cells []string
	for i, name := range m.tabs {
		if i == m.activeTab {
			cells = append(cells, styleTabActive.Render(name))
		} else {
			cells = append(cells, styleTabInactive.Render(name))
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	return styleTabBar.Width(m.width).Render(row)
}

func (m Model) renderSeedsTab() string {
	entries := m.snapshot.Registry.Entries
	if len(entries) == 0 {
		return "\n  " + styleDim.Render("No validated seeds yet. Run: seedforge sweep --count 10") + "\n"
	}

	var b strings.Builder
	b.WriteString(stylePanelTitle.Render(fmt.Sprintf("Validated seeds (%d)", m.snapshot.Registry.TotalEntries)))
	b.WriteString("\n")
	for i, entry := range entries {
		line := formatSeedLine(entry)
		if i == m.cursor {
			b.WriteString("  " + styleSelected.Render(line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if m.showDetail && m.cursor < len(entries) {
		b.WriteString("\n")
		b.WriteString(stylePanel.Width(m.width - 4).Render(formatSeedDetail(entries[m.cursor])))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderSettingsTab() string {
	if len(m.snapshot.SettingKeys) == 0 {
		return "\n  " + styleDim.Render("No settings stored. Run: seedforge settings set <key> <value>") + "\n"
	}

	var b strings.Builder
	b.WriteString(stylePanelTitle.Render("Settings"))
	b.WriteString("\n")
	for i, key := range m.snapshot.SettingKeys {
		line := fmt.Sprintf("%s = %s", styleKey.Render(key), m.snapshot.Settings[key])
		if i == m.cursor {
			b.WriteString("  " + styleSelected.Render(key+" = "+m.snapshot.Settings[key]))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatSeedLine(entry registry.SeedEntry) string {
	tags := strings.Join(entry.Tags, ", ")
	return fmt.Sprintf("%8d  %3d file(s)  [%s]", entry.Seed, len(entry.Files), tags)
}

func formatSeedDetail(entry registry.SeedEntry) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Seed %d\n", entry.Seed))
	b.WriteString(styleDim.Render("Validated: "+entry.ValidatedAt) + "\n")

	if len(entry.Stack) > 0 {
		b.WriteString("\nStack:\n")
		keys := make([]string, 0, len(entry.Stack))
		for k := range entry.Stack {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString(fmt.Sprintf("  %s: %v\n", k, entry.Stack[k]))
		}
	}

	if len(entry.Files) > 0 {
		b.WriteString("\nFiles:\n")
		for _, f := range entry.Files {
			b.WriteString("  " + f + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderStatusBar() string {
	left := ""
	if m.loading {
		left = fmt.Sprintf(" %s Refreshing...", m.spinner.View())
	} else if m.snapshot != nil {
		left = " " + styleOK.Render(fmt.Sprintf("%d seeds", m.snapshot.Registry.TotalEntries))
	}

	right := "Tab: switch  Enter: detail  r: refresh  q: quit"
	if !m.lastRefresh.IsZero() {
		ago := time.Since(m.lastRefresh).Truncate(time.Second)
		right = fmt.Sprintf("Updated %s ago | %s", ago, right)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return styleStatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}
