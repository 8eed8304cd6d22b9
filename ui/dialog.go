package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type dialogKind int

const (
	dialogInfo dialogKind = iota
	dialogError
)

// dialog is a blocking message box; while one is open every key except the
// dismiss keys is swallowed.
type dialog struct {
	kind  dialogKind
	title string
	body  string
}

func infoDialog(title, body string) *dialog {
	return &dialog{kind: dialogInfo, title: title, body: body}
}

func isDismissKey(key string) bool {
	switch key {
	case "enter", "esc", " ":
		return true
	}
	return false
}

func (d *dialog) view() string {
	style := infoDialogStyle
	if d.kind == dialogError {
		style = errorDialogStyle
	}
	var b strings.Builder
	b.WriteString(dialogTitleStyle.Render(d.title))
	b.WriteString("\n")
	b.WriteString(d.body)
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter: OK"))
	return style.Render(b.String())
}

func (d *dialog) place(width, height int, background string) string {
	if width <= 0 || height <= 0 {
		return lipgloss.JoinVertical(lipgloss.Left, background, d.view())
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, d.view())
}
