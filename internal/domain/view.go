package domain

// View represents the current active view
type View int

const (
	ViewIntro View = iota
	ViewWizard
	ViewResults
	ViewDocument
)

// String returns the display name of the view
func (v View) String() string {
	switch v {
	case ViewIntro:
		return "Welcome"
	case ViewWizard:
		return "Wizard"
	case ViewResults:
		return "Results"
	case ViewDocument:
		return "Document"
	default:
		return "Unknown"
	}
}
