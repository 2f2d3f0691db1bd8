package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.err != nil {
		return m.renderError()
	}

	if m.loading {
		return m.renderLoading()
	}

	var content string
	switch m.currentScene {
	case SceneExplore:
		content = m.exploreModel.View()
	case SceneDetail:
		content = m.detailModel.View()
	case SceneHelp:
		content = renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	return AppStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		"",
		content,
		"",
		m.renderStatusBar(),
	))
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("Moovely - Is the grass greener?")

	breadcrumb := m.currentScene.String()
	if m.home.ID != "" {
		breadcrumb = fmt.Sprintf("%s / from %s", breadcrumb, m.home.Name)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(breadcrumb))
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	var shortcuts []string
	switch m.currentScene {
	case SceneDetail, SceneHelp:
		shortcuts = []string{formatShortcut("esc", "back")}
	default:
		shortcuts = []string{
			formatShortcut("enter", "details"),
			formatShortcut("s", "sort"),
			formatShortcut("/", "search"),
			formatShortcut("r", "region"),
		}
	}
	shortcuts = append(shortcuts, formatShortcut("?", "help"), formatShortcut("q", "quit"))

	return StatusBarStyle.Width(m.width).Render(strings.Join(shortcuts, " • "))
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

// renderLoading renders the loading message
func (m Model) renderLoading() string {
	message := m.loadingMessage
	if message == "" {
		message = "Loading..."
	}
	return m.renderApp(BorderStyle.Render("⠋ " + message))
}

// renderError renders an error message
func (m Model) renderError() string {
	hint := "Press any key to continue..."
	if m.locations == nil {
		hint = "Press any key to exit."
	}
	content := ErrorStyle.Render(fmt.Sprintf("Error: %s", m.err)) + "\n\n" + SubtitleStyle.Render(hint)
	return m.renderApp(content)
}

// renderHelp lists the keyboard shortcuts
func renderHelp() string {
	rows := [][2]string{
		{"↑/↓", "move through the league table"},
		{"enter", "compare home with the highlighted location"},
		{"s", "cycle sort: annual difference, rent, salary, house price"},
		{"/", "search by name, region or county (enter keeps, esc clears)"},
		{"r", "cycle the region filter"},
		{"c", "clear search and region filter"},
		{"esc", "go back"},
		{"q", "quit"},
	}

	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("Keyboard shortcuts"))
	for _, r := range rows {
		sb.WriteString("\n")
		sb.WriteString(HelpKeyStyle.Render(fmt.Sprintf("  %-6s", r[0])))
		sb.WriteString(" ")
		sb.WriteString(HelpDescStyle.Render(r[1]))
	}
	return BorderStyle.Render(sb.String())
}
