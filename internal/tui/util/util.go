// Package util provides shared helpers for TUI components.
package util

import (
	tea "charm.land/bubbletea/v2"
)

// Model is the interface implemented by page-level components.
type Model interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Model, tea.Cmd)
	View() string
}

// CmdHandler wraps a message in a command.
func CmdHandler(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}

// InfoType classifies an InfoMsg.
type InfoType int

// Info type constants.
const (
	InfoTypeInfo InfoType = iota
	InfoTypeSuccess
	InfoTypeWarn
	InfoTypeError
)

// InfoMsg carries a user-visible status notification.
type InfoMsg struct {
	Msg  string
	Type InfoType
}

// ReportInfo returns a command that shows an informational message.
func ReportInfo(msg string) tea.Cmd {
	return CmdHandler(InfoMsg{Type: InfoTypeInfo, Msg: msg})
}

// ReportSuccess returns a command that shows a success message.
func ReportSuccess(msg string) tea.Cmd {
	return CmdHandler(InfoMsg{Type: InfoTypeSuccess, Msg: msg})
}

// ReportWarn returns a command that shows a warning message.
func ReportWarn(msg string) tea.Cmd {
	return CmdHandler(InfoMsg{Type: InfoTypeWarn, Msg: msg})
}

// ReportError returns a command that shows an error message.
func ReportError(err error) tea.Cmd {
	return CmdHandler(InfoMsg{Type: InfoTypeError, Msg: err.Error()})
}
