package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/moovely/greener/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.exploreModel.SetSize(msg.Width, msg.Height)
		m.detailModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case tuimsg.ErrorMsg:
		m.err = msg.Err
		return m, nil

	case LocationsLoadedMsg:
		m.loading = false
		loaded, err := m.applyLoaded(msg)
		if err != nil {
			m.err = err
			return m, nil
		}
		return loaded, nil

	case tuimsg.LocationSelectedMsg:
		shown, err := m.showLocation(msg.LocationID)
		if err != nil {
			m.err = err
			return m, nil
		}
		shown.previousScene = shown.currentScene
		shown.currentScene = SceneDetail
		return shown, nil

	case tuimsg.BackMsg:
		m.previousScene = m.currentScene
		m.currentScene = SceneExplore
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Keys go to the search box while it has focus
	if m.currentScene == SceneExplore && m.exploreModel.Filtering() {
		return m.updateCurrentScene(msg)
	}

	// An error screen is dismissed by any key, unless nothing loaded
	if m.err != nil {
		if m.locations == nil || msg.String() == "q" {
			return m, tea.Quit
		}
		m.err = nil
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "?":
		if m.currentScene != SceneHelp {
			return m, func() tea.Msg {
				return NavigateMsg{Scene: SceneHelp}
			}
		}

	case "esc":
		if m.currentScene == SceneHelp {
			back := m.previousScene
			return m, func() tea.Msg {
				return NavigateMsg{Scene: back}
			}
		}
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneExplore:
		m.exploreModel, cmd = m.exploreModel.Update(msg)
	case SceneDetail:
		m.detailModel, cmd = m.detailModel.Update(msg)
	}
	return m, cmd
}
