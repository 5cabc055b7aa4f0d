// Package suggest completes partial job titles from the titles a finder was
// built with, for the lookup command and IPC action.
package suggest

// ICompleter defines the interface for title completion
type ICompleter interface {
	// Complete returns up to limit titles starting with prefix, case-insensitively
	Complete(prefix string, limit int) []Suggestion

	// AddTitle registers a title
	AddTitle(title string)

	// Stats returns statistics about the registered titles
	Stats() map[string]int
}
