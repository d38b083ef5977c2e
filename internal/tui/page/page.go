// Package page defines the page identifiers for the TUI.
package page

// ID identifies a page.
type ID string

// Page identifiers.
const (
	Welcome ID = "welcome"
	Chat    ID = "chat"
)

// ChangeMsg requests a page change.
type ChangeMsg struct {
	Page ID
}
