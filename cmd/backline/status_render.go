package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"

	"backline/internal/deps"
)

type statusKind int

const (
	statusOK statusKind = iota
	statusWarn
	statusError
)

var statusStyles = map[statusKind]struct {
	label  string
	colors text.Colors
}{
	statusOK:    {"OK", text.Colors{text.FgGreen}},
	statusWarn:  {"WARN", text.Colors{text.FgYellow}},
	statusError: {"ERROR", text.Colors{text.FgRed}},
}

var sectionColors = text.Colors{text.FgBlue, text.Bold}

// renderStatusLine formats "  Label:   [KIND] message" with labels padded to
// a common width.
func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	style := statusStyles[kind]
	line := fmt.Sprintf("  %-20s [%s]", label+":", style.label)
	if message != "" {
		line += " " + message
	}
	if colorize {
		return style.colors.Sprint(line)
	}
	return line
}

func renderSectionHeader(title string, colorize bool) string {
	line := "== " + strings.TrimSpace(title) + " =="
	if colorize {
		return sectionColors.Sprint(line)
	}
	return line
}

// dependencyLines renders one status line per checked program. Missing
// optional programs are warnings.
func dependencyLines(statuses []deps.Status, colorize bool) []string {
	lines := []string{renderSectionHeader("Dependencies", colorize)}
	for _, s := range statuses {
		kind := statusOK
		switch {
		case s.Available:
		case s.Optional:
			kind = statusWarn
		default:
			kind = statusError
		}
		lines = append(lines, renderStatusLine(s.Name, kind, s.Detail, colorize))
	}
	return lines
}
