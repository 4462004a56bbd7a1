package installer

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sandevgo/sejarahbot/internal/core"
)

var ErrInterrupted = errors.New("setup interrupted")

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	itemStyle  = lipgloss.NewStyle().PaddingLeft(2)
	selStyle   = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("5"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Step represents a single step in the setup wizard. Update returns nil
// once the step is answered.
type Step interface {
	Init() tea.Cmd
	Update(msg tea.Msg, state *InstallState) (Step, tea.Cmd)
	View(state *InstallState) string
}

// skipper is implemented by steps that only apply to some answers.
type skipper interface {
	Skip(state *InstallState) bool
}

func getSteps() []Step {
	return []Step{
		NewStorageStep(),
		NewDatabaseURLStep(),
		NewAddrStep(),
		NewTelegramTokenStep(),
	}
}

// model is the main Bubble Tea model that orchestrates the steps
type model struct {
	steps       []Step
	currentStep int
	state       *InstallState
	quitting    bool
}

func newModel(steps []Step) model {
	m := model{steps: steps, state: NewInstallState()}
	m.currentStep = m.nextStep(-1)
	return m
}

// nextStep returns the index of the first applicable step after i.
func (m model) nextStep(i int) int {
	for i++; i < len(m.steps); i++ {
		if s, ok := m.steps[i].(skipper); ok && s.Skip(m.state) {
			continue
		}
		break
	}
	return i
}

func (m model) done() bool {
	return m.currentStep >= len(m.steps)
}

func (m model) Init() tea.Cmd {
	if m.done() {
		return tea.Quit
	}
	return m.steps[m.currentStep].Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}
	if m.done() {
		return m, tea.Quit
	}

	next, cmd := m.steps[m.currentStep].Update(msg, m.state)
	if next != nil {
		m.steps[m.currentStep] = next
		return m, cmd
	}

	m.currentStep = m.nextStep(m.currentStep)
	if m.done() {
		return m, tea.Quit
	}
	return m, m.steps[m.currentStep].Init()
}

func (m model) View() string {
	if m.quitting {
		return "Setup cancelled.\n"
	}
	if m.done() {
		return "Configuration complete!\n"
	}
	return titleStyle.Render("Setting up "+core.AppName+" 📜") + "\n\n" +
		m.steps[m.currentStep].View(m.state) +
		hintStyle.Render("\n(press ctrl+c to quit)") + "\n"
}

// RunWizard starts the TUI and returns the collected answers.
func RunWizard() (*InstallState, error) {
	p := tea.NewProgram(newModel(getSteps()))
	m, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run setup wizard: %w", err)
	}

	final := m.(model)
	if final.quitting {
		return nil, ErrInterrupted
	}
	return final.state, nil
}
