package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/catbot/internal/colors"
	"github.com/cristianoliveira/catbot/internal/errors"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(ansiColor(colors.Cyan))
	userStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle = lipgloss.NewStyle().Bold(true).Foreground(ansiColor(colors.Red))

	messageStyles = map[errors.MessageType]lipgloss.Style{
		errors.MessageTypeError:   lipgloss.NewStyle().Foreground(ansiColor(colors.Red)),
		errors.MessageTypeWarning: lipgloss.NewStyle().Foreground(ansiColor(colors.Yellow)),
		errors.MessageTypeInfo:    lipgloss.NewStyle().Foreground(ansiColor(colors.Blue)),
		errors.MessageTypeSuccess: lipgloss.NewStyle().Foreground(ansiColor(colors.Green)),
		errors.MessageTypePlain:   lipgloss.NewStyle(),
	}
)

const headerTitle = "catbot  ·  enter: send  ·  pgup/pgdn: scroll  ·  esc: quit"

func renderHeader(width int) string {
	return headerStyle.MaxWidth(width).Render(headerTitle)
}

func renderEntry(e entry, width int) string {
	if e.user {
		return userStyle.Width(width).Render("> " + e.text)
	}
	style, ok := messageStyles[e.msgType]
	if !ok {
		style = lipgloss.NewStyle()
	}
	if e.msgType == errors.MessageTypePlain && strings.Contains(e.text, "\n") {
		// keep preformatted text such as the banner unwrapped
		return style.Render(strings.TrimRight(e.text, "\n"))
	}
	return style.Width(width).Render(e.text)
}

func renderStatus(status string, width int) string {
	if status == "" {
		return ""
	}
	return statusStyle.MaxWidth(width).Render(status)
}

// ansiColorNumber extracts the SGR color number from an escape such as
// "\033[0;31m".
func ansiColorNumber(ansi string) string {
	if len(ansi) < 2 {
		return ""
	}
	lastSemicolon := strings.LastIndex(ansi, ";")
	if lastSemicolon == -1 {
		return ""
	}
	return ansi[lastSemicolon+1 : len(ansi)-1]
}

// ansiColor maps a foreground escape from the colors package to the
// matching basic terminal color.
func ansiColor(ansi string) lipgloss.Color {
	n, err := strconv.Atoi(ansiColorNumber(ansi))
	if err != nil || n < 30 || n > 37 {
		return lipgloss.Color("")
	}
	return lipgloss.Color(strconv.Itoa(n - 30))
}
