package main

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jwebster45206/animus-mundi/pkg/engine"
	"github.com/jwebster45206/animus-mundi/pkg/results"
)

const toastLifetime = 2500 * time.Millisecond

type tab int

const (
	tabNarrative tab = iota
	tabGrimoire
	tabIntel
	tabLeads
	tabCodex
	tabInventory
	tabCraft
	tabCount
)

var tabNames = [tabCount]string{"Narrative", "Grimoire", "Intel", "Leads", "Codex", "Inventory", "Craft"}

type toast struct {
	id   int
	line results.Line
}

type toastExpiredMsg struct{ id int }

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	engine       *engine.Engine
	mainViewport viewport.Model
	metaViewport viewport.Model
	ready        bool
	width        int
	height       int
	notice       string // why the last action was refused

	tab      tab
	selected int // choice on the narrative tab, recipe on the craft tab

	toasts      []toast
	nextToastID int

	showQuitModal  bool
	showResetModal bool
}

var (
	mainPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("160")). // blood red
			Bold(true)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("160")).
			Bold(true).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("205")).
			Bold(true)

	disabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")). // dark grey
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	toastStyles = map[results.Kind]lipgloss.Style{
		results.KindIntel:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),  // teal
		results.KindItem:     lipgloss.NewStyle().Foreground(lipgloss.Color("86")),  // green
		results.KindCurrency: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		results.KindHumanity: lipgloss.NewStyle().Foreground(lipgloss.Color("160")), // red
		results.KindSystem:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")), // purple
	}
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(e *engine.Engine) ConsoleUI {
	mainVp := viewport.New(50, 20)
	mainVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		engine:       e,
		mainViewport: mainVp,
		metaViewport: metaVp,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return nil
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}
	if m.showResetModal {
		return m.updateResetModal(msg)
	}

	var (
		vpCmd tea.Cmd
		mvCmd tea.Cmd
		cmd   tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		m.refresh()

	case toastExpiredMsg:
		for i, t := range m.toasts {
			if t.id == msg.id {
				m.toasts = append(m.toasts[:i:i], m.toasts[i+1:]...)
				break
			}
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyTab, tea.KeyRight:
			m.switchTab((m.tab + 1) % tabCount)
			return m, nil
		case tea.KeyShiftTab, tea.KeyLeft:
			m.switchTab((m.tab + tabCount - 1) % tabCount)
			return m, nil
		case tea.KeyUp:
			if m.selected > 0 {
				m.selected--
				m.refresh()
			}
			return m, nil
		case tea.KeyDown:
			if m.selected < m.selectableCount()-1 {
				m.selected++
				m.refresh()
			}
			return m, nil
		case tea.KeyEnter:
			cmd = m.activate()
			m.refresh()
			return m, cmd
		}

		switch msg.String() {
		case "r", "R":
			m.showResetModal = true
			return m, nil
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			if m.tab == tabNarrative || m.tab == tabCraft {
				idx := int(msg.String()[0] - '1')
				if idx < m.selectableCount() {
					m.selected = idx
					cmd = m.activate()
					m.refresh()
					return m, cmd
				}
			}
			return m, nil
		}
	}

	m.mainViewport, vpCmd = m.mainViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)
	return m, tea.Batch(vpCmd, mvCmd)
}

func (m *ConsoleUI) resize() {
	mainWidth := int(float64(m.width)*0.72) - 4
	metaWidth := m.width - mainWidth - 6

	m.mainViewport.Width = mainWidth - 2
	m.mainViewport.Height = m.height - 5
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 3
}

func (m *ConsoleUI) switchTab(t tab) {
	m.tab = t
	m.selected = 0
	m.notice = ""
	m.refresh()
	m.mainViewport.GotoTop()
}

func (m ConsoleUI) selectableCount() int {
	switch m.tab {
	case tabNarrative:
		return len(m.engine.Choices())
	case tabCraft:
		return len(m.engine.KnownRecipes())
	default:
		return 0
	}
}

// activate runs the selected choice or recipe and queues its result toasts
func (m *ConsoleUI) activate() tea.Cmd {
	ctx := context.Background()
	var (
		lines []results.Line
		err   error
	)

	switch m.tab {
	case tabNarrative:
		lines, err = m.engine.Choose(ctx, m.selected)
		if err == nil {
			m.selected = 0
			m.mainViewport.GotoTop()
		}
	case tabCraft:
		recipes := m.engine.KnownRecipes()
		if m.selected >= len(recipes) {
			return nil
		}
		lines, err = m.engine.Craft(ctx, recipes[m.selected].Recipe.ID)
	default:
		return nil
	}

	m.notice = ""
	if err != nil {
		m.notice = describeError(err)
		return nil
	}
	return m.pushToasts(lines)
}

func (m *ConsoleUI) pushToasts(lines []results.Line) tea.Cmd {
	if len(lines) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(lines))
	fresh := make([]toast, 0, len(lines))
	for _, l := range lines {
		m.nextToastID++
		id := m.nextToastID
		fresh = append(fresh, toast{id: id, line: l})
		cmds = append(cmds, tea.Tick(toastLifetime, func(time.Time) tea.Msg {
			return toastExpiredMsg{id: id}
		}))
	}
	// Newest toasts go on top
	m.toasts = append(fresh, m.toasts...)
	return tea.Batch(cmds...)
}

func describeError(err error) string {
	switch {
	case errors.Is(err, engine.ErrChoiceUnavailable):
		return "You cannot do that yet."
	case errors.Is(err, engine.ErrNotCraftable):
		return "You lack the materials."
	default:
		return err.Error()
	}
}

// refresh re-renders both panels from the engine
func (m *ConsoleUI) refresh() {
	if !m.ready {
		return
	}
	width := m.mainViewport.Width - 4
	var body string
	switch m.tab {
	case tabNarrative:
		body = renderNarrative(m.engine, m.selected, width)
	case tabGrimoire:
		body = renderGrimoire(m.engine, width)
	case tabIntel:
		body = renderIntel(m.engine, width)
	case tabLeads:
		body = renderLeads(m.engine, width)
	case tabCodex:
		body = renderCodex(m.engine, width)
	case tabInventory:
		body = renderInventory(m.engine)
	case tabCraft:
		body = renderCraft(m.engine, m.selected, width)
	}
	if m.notice != "" {
		body += "\n" + errorStyle.Render(m.notice) + "\n"
	}
	m.mainViewport.SetContent(body)
	m.metaViewport.SetContent(renderMeta(m.engine, m.toasts, m.metaViewport.Width))
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) updateResetModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		switch msg.String() {
		case "y", "Y":
			m.engine.Reset(context.Background())
			m.showResetModal = false
			m.toasts = nil
			m.notice = ""
			m.switchTab(tabNarrative)
		case "n", "N", "esc", "ctrl+c":
			m.showResetModal = false
		}
	}

	return m, nil
}

func (m ConsoleUI) renderModal(title, body, prompt string) string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render(title))
	content.WriteString("\n\n")
	content.WriteString(body)
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render(prompt))

	modal := modalStyle.Width(50).Render(content.String())

	// Center the modal
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderModal("Quit?", "Your progress is saved after every choice.", "Press Y to quit, N to continue")
	}
	if m.showResetModal {
		return m.renderModal("Reset Save?", "This erases your save and starts over at the shrine.", "Press Y to reset, N to cancel")
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	mainWidth := int(float64(m.width)*0.72) - 4
	metaWidth := m.width - mainWidth - 6

	mainPanel := mainPanelStyle.Width(mainWidth).Height(m.height - 2).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.renderTabs(),
			separatorStyle.Render(strings.Repeat("─", max(0, mainWidth-4))),
			m.mainViewport.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, mainPanel, metaPanel)
}

func (m ConsoleUI) renderTabs() string {
	rendered := make([]string, 0, tabCount)
	for i, name := range tabNames {
		if tab(i) == m.tab {
			rendered = append(rendered, activeTabStyle.Render(name))
		} else {
			rendered = append(rendered, tabStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
