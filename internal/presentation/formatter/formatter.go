package formatter

import (
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/mattn/go-runewidth"
	"github.com/penwyp/go-session-window/internal/core/profile"
	"github.com/penwyp/go-session-window/internal/core/window"
	"github.com/penwyp/go-session-window/internal/util"
	"golang.org/x/term"
)

const defaultTerminalWidth = 120

// windowsJSON is the JSON rendering of a single specification.
type windowsJSON struct {
	InactivityGapMs int64 `json:"inactivity_gap_ms"`
	MaxSpanMs       int64 `json:"max_span_ms"`
	GraceMs         int64 `json:"grace_ms"`
}

// RenderWindows renders one specification as an aligned parameter table.
func RenderWindows(w window.SessionWindows) string {
	rows := [][]string{
		{"PARAMETER", "MILLISECONDS", "DURATION"},
		{"inactivity-gap", fmt.Sprintf("%d", w.InactivityGap()), util.FormatMillis(w.InactivityGap())},
		{"max-span", fmt.Sprintf("%d", w.MaxSpan()), util.FormatMillis(w.MaxSpan())},
		{"grace", fmt.Sprintf("%d", w.GracePeriod()), util.FormatMillis(w.GracePeriod())},
	}
	return renderTable(rows)
}

// RenderWindowsJSON renders one specification as indented JSON.
func RenderWindowsJSON(w window.SessionWindows) (string, error) {
	data, err := sonic.MarshalIndent(windowsJSON{
		InactivityGapMs: w.InactivityGap(),
		MaxSpanMs:       w.MaxSpan(),
		GraceMs:         w.GracePeriod(),
	}, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// RenderProfiles renders a profile list as an aligned table.
func RenderProfiles(profiles []profile.Profile) string {
	rows := [][]string{{"NAME", "GAP", "MAX SPAN", "GRACE", "UPDATED"}}
	for _, p := range profiles {
		rows = append(rows, []string{
			p.Name,
			util.FormatMillis(p.InactivityGapMs),
			util.FormatMillis(p.MaxSpanMs),
			util.FormatMillis(p.GraceMs),
			util.FormatUnix(p.UpdatedAt),
		})
	}
	return renderTable(rows)
}

// RenderProfilesJSON renders a profile list as indented JSON.
func RenderProfilesJSON(profiles []profile.Profile) (string, error) {
	data, err := sonic.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// renderTable pads every cell to its column width and truncates lines
// that would overflow the terminal.
func renderTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	maxWidth := terminalWidth()
	var sb strings.Builder
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = pad(cell, widths[i])
		}
		line := strings.TrimRight(strings.Join(cells, "  "), " ")
		sb.WriteString(runewidth.Truncate(line, maxWidth, "…"))
		sb.WriteString("\n")
	}
	return sb.String()
}

func pad(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultTerminalWidth
}
