package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Elekrisk/moba-try-5/internal/engine"
)

var (
	dashTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dashLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

type statsTickMsg time.Time
type lobbiesTickMsg []lobbyRow

type lobbyRow struct {
	name    string
	players string
}

// dashboardModel is a read-only view over engine state (SPEC_FULL.md §4): it
// polls Stats() directly and LobbyShortInfos() via Callback, never mutating
// anything.
type dashboardModel struct {
	e     *engine.Engine
	stats engine.Stats
	table table.Model
	quit  bool
}

func newDashboardModel(e *engine.Engine) dashboardModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Lobby", Width: 28},
			{Title: "Players", Width: 10},
		}),
		table.WithFocused(false),
		table.WithHeight(10),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).Bold(true)
	t.SetStyles(s)

	return dashboardModel{e: e, stats: e.Stats(), table: t}
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(tickStats(), pollLobbies(m.e))
}

func tickStats() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return statsTickMsg(t)
	})
}

func pollLobbies(e *engine.Engine) tea.Cmd {
	return func() tea.Msg {
		result := make(chan []lobbyRow, 1)
		e.Post(engine.Callback{Fn: func(e *engine.Engine) {
			infos := e.LobbyShortInfos()
			rows := make([]lobbyRow, len(infos))
			for i, info := range infos {
				rows[i] = lobbyRow{
					name:    info.Name,
					players: fmt.Sprintf("%d/%d", info.PlayerCount, info.MaxPlayerCount),
				}
			}
			result <- rows
		}})
		return lobbiesTickMsg(<-result)
	}
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quit = true
			return m, tea.Quit
		}
	case statsTickMsg:
		m.stats = m.e.Stats()
		return m, tickStats()
	case lobbiesTickMsg:
		rows := make([]table.Row, len(msg))
		for i, r := range msg {
			rows[i] = table.Row{r.name, r.players}
		}
		m.table.SetRows(rows)
		return m, tea.Tick(time.Second, func(time.Time) tea.Msg { return pollLobbies(m.e)() })
	}
	return m, nil
}

func (m dashboardModel) View() string {
	if m.quit {
		return ""
	}
	s := m.stats
	status := "running"
	if s.ShuttingDown {
		status = "shutting down"
	}
	header := dashTitleStyle.Render("lobby service") + "\n\n" +
		dashLabelStyle.Render("status:          ") + status + "\n" +
		dashLabelStyle.Render("players:         ") + fmt.Sprintf("%d", s.Players) + "\n" +
		dashLabelStyle.Render("lobbies:         ") + fmt.Sprintf("%d", s.Lobbies) + "\n" +
		dashLabelStyle.Render("in-game lobbies: ") + fmt.Sprintf("%d", s.InGameLobbies) + "\n\n"
	footer := "\n" + dashLabelStyle.Render("press q to quit the dashboard (server keeps running)") + "\n"
	return header + m.table.View() + footer
}

func runDashboard(e *engine.Engine) error {
	p := tea.NewProgram(newDashboardModel(e))
	_, err := p.Run()
	return err
}
