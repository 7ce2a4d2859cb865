package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

const placeholderText = "Type a command (look, go north, take sword)..."

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config   *ConsoleConfig
	client   *http.Client
	game     *GameView
	viewport viewport.Model
	textarea textarea.Model
	lines    []string
	ready    bool
	width    int
	height   int
	loading  bool
	err      error
}

type commandResponseMsg struct {
	response *CommandView
	err      error
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client, g *GameView) *ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = placeholderText
	ta.Focus()
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	ui := &ConsoleUI{
		config:   cfg,
		client:   client,
		game:     g,
		textarea: ta,
	}
	if g.Text != "" {
		ui.appendNarration(g.Text)
	}
	return ui
}

func (ui *ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (ui *ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		ui.width = msg.Width
		ui.height = msg.Height
		if !ui.ready {
			ui.viewport = viewport.New(msg.Width, msg.Height-4)
			ui.ready = true
		} else {
			ui.viewport.Width = msg.Width
			ui.viewport.Height = msg.Height - 4
		}
		ui.textarea.SetWidth(msg.Width - 2)
		ui.refreshViewport()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return ui, tea.Quit
		case tea.KeyEnter:
			input := strings.TrimSpace(ui.textarea.Value())
			if input == "" || ui.loading {
				break
			}
			ui.textarea.Reset()
			ui.lines = append(ui.lines, userStyle.Render("> "+input))
			ui.loading = true
			ui.refreshViewport()
			return ui, ui.sendCommandCmd(input)
		}

	case commandResponseMsg:
		ui.loading = false
		if msg.err != nil {
			ui.err = msg.err
			ui.lines = append(ui.lines, errorStyle.Render(msg.err.Error()))
		} else {
			ui.game.Turn = msg.response.Turn
			ui.game.Clock = msg.response.Clock
			ui.appendNarration(msg.response.Text)
		}
		ui.refreshViewport()
	}

	var taCmd, vpCmd tea.Cmd
	ui.textarea, taCmd = ui.textarea.Update(msg)
	ui.viewport, vpCmd = ui.viewport.Update(msg)
	cmds = append(cmds, taCmd, vpCmd)
	return ui, tea.Batch(cmds...)
}

func (ui *ConsoleUI) View() string {
	if !ui.ready {
		return "Loading..."
	}

	status := statusStyle.Render(fmt.Sprintf(" turn %d | clock %d", ui.game.Turn, ui.game.Clock))
	if ui.loading {
		status += statusStyle.Render(" | thinking...")
	}

	header := titleStyle.Render(ui.game.WorldName) + status
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		ui.viewport.View(),
		ui.textarea.View(),
	)
}

func (ui *ConsoleUI) appendNarration(text string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		ui.lines = append(ui.lines, narratorStyle.Render(line))
	}
	ui.lines = append(ui.lines, "")
}

func (ui *ConsoleUI) refreshViewport() {
	if !ui.ready {
		return
	}
	content := strings.Join(ui.lines, "\n")
	ui.viewport.SetContent(wordwrap.String(content, ui.viewport.Width))
	ui.viewport.GotoBottom()
}

func (ui *ConsoleUI) sendCommandCmd(input string) tea.Cmd {
	return func() tea.Msg {
		resp, err := sendCommand(ui.client, ui.config.APIBaseURL, ui.game.ID, input)
		return commandResponseMsg{response: resp, err: err}
	}
}
