package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dm/ctrack/internal/model"
)

// maxHeaderErrLen caps the unclassified error text shown next to DISCONNECTED.
const maxHeaderErrLen = 40

// renderHeader renders the top header bar as a single line of exactly the
// terminal width.
//
// Layout:
//
//	left:   "COVID-19 Tracker · <region>" (or "Connecting to <URL>..." on first connect)
//	center: "● LIVE", "● LOADING" while a new region is being fetched, or "● DISCONNECTED  <reason>"
//	right:  "Last: HH:MM:SS  Poll: Ns" (or the retry countdown when offline)
//
// When space runs out the right part is dropped first, then the left part is
// truncated.
func renderHeader(app *App) string {
	width := app.width
	if width <= 0 {
		width = 80
	}

	var left, center, right string

	if app.current == nil {
		baseURL := ""
		if app.client != nil {
			baseURL = app.client.BaseURL()
		}
		left = "Connecting to " + sanitize(baseURL) + "..."
	} else {
		left = "COVID-19 Tracker · " + sanitize(app.selection.Label())
	}

	switch {
	case app.connState == stateDisconnected && app.lastError != nil:
		center = StyleError.Render("● DISCONNECTED  " + classifyError(app.lastError))
		right = StyleError.Render(retryCountdown(app.nextRetryAt))
	case app.current == nil:
		// initial connect, nothing to show yet
	default:
		if app.fetching && app.current.Selection != app.selection {
			center = StyleDim.Render("● LOADING")
		} else {
			center = StyleOK.Render("● LIVE")
		}
		lastStr := "Connecting..."
		if !app.lastUpdated.IsZero() {
			lastStr = app.lastUpdated.Format("15:04:05")
		}
		right = StyleDim.Render(fmt.Sprintf("Last: %s  Poll: %s", lastStr, formatDuration(app.pollInterval)))
	}

	// StyleHeader has Padding(0, 1) so inner content width = total width - 2.
	innerWidth := max(width-2, 0)
	if lipgloss.Width(left)+lipgloss.Width(center)+lipgloss.Width(right)+2 > innerWidth {
		right = ""
	}
	if lipgloss.Width(center) > innerWidth {
		center = ""
	}
	leftMax := innerWidth - lipgloss.Width(center) - lipgloss.Width(right)
	if lipgloss.Width(center) > 0 {
		leftMax--
	}
	left = truncateName(left, max(leftMax, 0))

	spacing := max(innerWidth-lipgloss.Width(left)-lipgloss.Width(center)-lipgloss.Width(right), 0)
	leftSpacing := spacing / 2
	rightSpacing := spacing - leftSpacing

	row := left +
		strings.Repeat(" ", leftSpacing) +
		center +
		strings.Repeat(" ", rightSpacing) +
		right

	return StyleHeader.Width(width).MaxWidth(width).Render(row)
}

// classifyError maps a fetch error to a short human-readable reason.
func classifyError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ToLower(err.Error())
	switch {
	case errors.Is(err, model.ErrMalformedInput):
		return "Malformed response"
	case errors.Is(err, context.DeadlineExceeded),
		strings.Contains(msg, "deadline exceeded"),
		strings.Contains(msg, "timeout"):
		return "Timeout"
	case strings.Contains(msg, "connection refused"):
		return "Connection refused"
	case strings.Contains(msg, "no such host"):
		return "Host not found"
	case strings.Contains(msg, "unexpected status 404"):
		return "Not found (404)"
	case strings.Contains(msg, "unexpected status 429"):
		return "Rate limited (429)"
	case isTLSError(err):
		return "TLS error"
	}
	return truncateErr(err, maxHeaderErrLen)
}

// isTLSError reports whether err looks like a certificate or handshake failure.
func isTLSError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "x509") ||
		strings.Contains(msg, "tls") ||
		strings.Contains(msg, "certificate")
}

// retryCountdown describes when the next poll after a failure will run.
func retryCountdown(next time.Time) string {
	if next.IsZero() {
		return "Press r to retry"
	}
	remaining := time.Until(next)
	if remaining <= 0 {
		return "Retrying..."
	}
	return fmt.Sprintf("Retrying in %ds  r: retry now", int(remaining.Round(time.Second).Seconds()))
}

// truncateErr returns the sanitized error text cut to n cells plus "...".
func truncateErr(err error, n int) string {
	msg := sanitize(err.Error())
	if len(msg) <= n {
		return msg
	}
	return truncateName(msg, n+3)
}

// formatDuration formats a poll interval compactly, e.g. "10s", "2m" or "1m30s".
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	m := int(d / time.Minute)
	s := int((d % time.Minute) / time.Second)
	if s == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dm%ds", m, s)
}
