package cli

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/keyforge/keyforge/internal/session"
	"github.com/keyforge/keyforge/internal/vault"
)

type model struct {
	sess     *session.Session
	entries  []vault.Password
	cursor   int
	state    string // "table", "showEntry"
	selected *vault.Password
	msg      string
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	msgStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("57")).Foreground(lipgloss.Color("0"))
)

// RunTUI starts the interactive bubbletea browser over sess's
// password records (spec §6 `interactive` command).
func RunTUI(sess *session.Session) {
	m := model{
		sess:    sess,
		entries: sess.Store.ListPasswords(),
		state:   "table",
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		fmt.Println("Error starting TUI:", err)
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case "table":
		return updateTable(m, msg)
	case "showEntry":
		return updateShowEntry(m, msg)
	default:
		return m, nil
	}
}

func (m model) View() string {
	switch m.state {
	case "table":
		return viewTable(m)
	case "showEntry":
		return viewShowEntry(m)
	default:
		return "Unknown state"
	}
}

func updateTable(m model, msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "j", "down":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "enter":
			if len(m.entries) > 0 {
				m.selected = &m.entries[m.cursor]
				m.state = "showEntry"
			}
		case "a":
			AddPasswordCLI(m.sess)
			m.entries = m.sess.Store.ListPasswords()
		case "d":
			if len(m.entries) > 0 {
				e := m.entries[m.cursor]
				m.sess.Store.DeletePassword(e.Site)
				m.entries = m.sess.Store.ListPasswords()
				if m.cursor >= len(m.entries) && m.cursor > 0 {
					m.cursor--
				}
			}
		case "c":
			if len(m.entries) > 0 {
				e := m.entries[m.cursor]
				clipboard.WriteAll(e.Password)
				m.msg = "Password copied! (clears in 30s)"
				go func() {
					time.Sleep(30 * time.Second)
					clipboard.WriteAll("")
				}()
			}
		}
	}
	return m, nil
}

func viewTable(m model) string {
	s := titleStyle.Render("Keyforge Vault") + "\n\n"
	for i, e := range m.entries {
		line := fmt.Sprintf("%-32s  %-20s", e.Site, e.Username)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		s += line + "\n"
	}
	if m.msg != "" {
		s += "\n" + msgStyle.Render(m.msg)
	}
	s += "\nCommands: j/k=move, enter=show, a=add, d=delete, c=copy, q=quit"
	return s
}

func updateShowEntry(m model, msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.state = "table"
			m.selected = nil
		case "v":
			m.msg = fmt.Sprintf("Password: %s", m.selected.Password)
		}
	}
	return m, nil
}

func viewShowEntry(m model) string {
	e := m.selected
	s := fmt.Sprintf("Site: %s\nUsername: %s\nNotes: %s\nPassword: %s\n",
		e.Site, e.Username, e.Notes, "********")
	if m.msg != "" {
		s += "\n" + msgStyle.Render(m.msg)
	}
	s += "\nPress 'v' to reveal, Esc to return"
	return s
}
