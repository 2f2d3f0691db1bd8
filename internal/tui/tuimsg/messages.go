package tuimsg

// Messages shared between the root model and its scenes

// LocationSelectedMsg asks for the detail view of a location
type LocationSelectedMsg struct {
	LocationID string
}

// BackMsg returns from a detail view to the league table
type BackMsg struct{}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}
