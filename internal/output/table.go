// Package output renders terminal output for snapguard: the snapshot
// request history table and human-readable timestamps. ANSI colors are only
// emitted when stdout is a TTY and NO_COLOR is unset.
package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/blackwell-systems/snapguard/internal/store"
)

const (
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorGray  = "\033[90m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// RenderRequestTable renders the snapshot request history. Requests are
// expected newest-first, as the store returns them.
func RenderRequestTable(requests []*store.Request) string {
	if len(requests) == 0 {
		return "No snapshot requests recorded.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-5s %-14s %-20s %-18s %-13s %-6s %s\n",
		"ID", "When", "Target", "Suffix", "Tier", "Paths", "Status"))
	sb.WriteString(strings.Repeat("─", 86))
	sb.WriteString("\n")

	for _, req := range requests {
		status := req.Status
		if IsColorEnabled() {
			status = statusColor(req.Status) + status + colorReset
		}

		sb.WriteString(fmt.Sprintf("%-5d %-14s %-20s %-18s %-13s %-6d %s\n",
			req.ID,
			formatRelativeTime(req.CreatedAt),
			truncate(req.Target, 20),
			truncate(req.Suffix, 18),
			req.Tier,
			req.PathCount,
			status))
	}

	return sb.String()
}

// RenderRequestPaths renders the path set of one request as an indented
// block under a header line, in recorded scan order.
func RenderRequestPaths(req *store.Request, paths []string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("\nRequest %d \u00b7 %s \u00b7 %s:\n",
		req.ID, req.Target, formatRelativeTime(req.CreatedAt)))
	if len(paths) == 0 {
		sb.WriteString("  (no paths recorded)\n")
		return sb.String()
	}
	for _, path := range paths {
		sb.WriteString("  " + path + "\n")
	}
	return sb.String()
}

// statusColor returns the ANSI color for a request status.
func statusColor(status string) string {
	switch status {
	case store.StatusCreated:
		return colorGreen
	case store.StatusFailed:
		return colorRed
	default:
		return colorGray
	}
}

// formatRelativeTime converts a timestamp to relative time (e.g., "2 days ago").
func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	case diff < 30*24*time.Hour:
		weeks := int(diff.Hours() / 24 / 7)
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	case diff < 365*24*time.Hour:
		months := int(diff.Hours() / 24 / 30)
		if months == 1 {
			return "1 month ago"
		}
		return fmt.Sprintf("%d months ago", months)
	default:
		years := int(diff.Hours() / 24 / 365)
		if years == 1 {
			return "1 year ago"
		}
		return fmt.Sprintf("%d years ago", years)
	}
}

// truncate truncates a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
