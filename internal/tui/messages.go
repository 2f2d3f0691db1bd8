package tui

import (
	"github.com/moovely/greener/internal/config"
	"github.com/moovely/greener/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneExplore Scene = iota
	SceneDetail
	SceneHelp
)

// String returns the breadcrumb name of the scene
func (s Scene) String() string {
	switch s {
	case SceneExplore:
		return "Explore"
	case SceneDetail:
		return "Details"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// LocationsLoadedMsg carries the location table and tax rules once read
type LocationsLoadedMsg struct {
	Table *config.LocationTable
	Rules domain.TaxRules
}
