package installer

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/sejarahbot/internal/config"
)

type choice struct {
	value string
	label string
}

// StorageStep selects the storage driver
type StorageStep struct {
	choices []choice
	cursor  int
}

func NewStorageStep() Step {
	return &StorageStep{
		choices: []choice{
			{config.StorageSQLite, "SQLite file in the runtime directory"},
			{config.StoragePostgres, "PostgreSQL server"},
			{config.StorageMemory, "In-memory (data is lost on exit)"},
		},
	}
}

func (s *StorageStep) Init() tea.Cmd {
	return nil
}

func (s *StorageStep) Update(msg tea.Msg, state *InstallState) (Step, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.choices)-1 {
				s.cursor++
			}
		case "enter":
			state.App.StorageDriver = s.choices[s.cursor].value
			return nil, nil
		}
	}
	return s, nil
}

func (s *StorageStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString("Select storage:\n\n")
	for i, c := range s.choices {
		if s.cursor == i {
			b.WriteString(selStyle.Render("❯ "+c.label) + "\n")
			continue
		}
		b.WriteString(itemStyle.Render("  "+c.label) + "\n")
	}
	return b.String()
}
