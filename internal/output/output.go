// Package output provides styled terminal output helpers (success, error,
// warning, collection entry formatting) using lipgloss.
package output

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/meeple/internal/models"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	ratingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	dirtyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	statusStyles = map[models.Status]lipgloss.Style{
		models.StatusOwn:        lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		models.StatusPrevOwned:  lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		models.StatusForTrade:   lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
		models.StatusWant:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		models.StatusWantToPlay: lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
		models.StatusWantToBuy:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		models.StatusWishlist:   lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
		models.StatusPreOrdered: lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
	}
)

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Println(successStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Println(errorStyle.Render("ERROR: " + fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Println(warningStyle.Render("Warning: " + fmt.Sprintf(format, args...)))
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Println(fmt.Sprintf(format, args...))
}

// JSON outputs data as JSON
func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// FormatStatus formats a status category with color
func FormatStatus(s models.Status) string {
	style, ok := statusStyles[s]
	if !ok {
		return string(s)
	}
	return style.Render(fmt.Sprintf("[%s]", s))
}

// FormatRating renders a rating as "7.5★", or empty when unrated
func FormatRating(rating float64) string {
	if rating == 0 {
		return ""
	}
	return ratingStyle.Render(fmt.Sprintf("%.1f★", rating))
}

// DirtyMarker returns a marker for rows with unsynced local edits
func DirtyMarker(d models.DirtyStamps) string {
	if !d.Any() {
		return ""
	}
	return dirtyStyle.Render("*")
}

// FormatEntryShort formats a collection entry on one line:
// name, year, rating, statuses, dirty marker.
func FormatEntryShort(e *models.CollectionEntry) string {
	var parts []string
	name := e.Name
	if marker := DirtyMarker(e.Dirty); marker != "" {
		name += marker
	}
	parts = append(parts, titleStyle.Render(name))
	if e.YearPublished != 0 {
		parts = append(parts, subtleStyle.Render(fmt.Sprintf("(%d)", e.YearPublished)))
	}
	if r := FormatRating(e.Rating); r != "" {
		parts = append(parts, r)
	}
	for _, s := range e.Status.Set() {
		parts = append(parts, FormatStatus(s))
	}
	return strings.Join(parts, "  ")
}

// FormatEntryLong formats a collection entry with full detail. The game row
// contributes player counts and play stats; nil when unavailable.
func FormatEntryLong(e *models.CollectionEntry, g *models.Game) string {
	var sb strings.Builder

	header := e.Name
	if e.YearPublished != 0 {
		header = fmt.Sprintf("%s (%d)", e.Name, e.YearPublished)
	}
	sb.WriteString(titleStyle.Render(header))
	sb.WriteString("\n")

	if statuses := e.Status.Set(); len(statuses) > 0 {
		labels := make([]string, len(statuses))
		for i, s := range statuses {
			labels[i] = FormatStatus(s)
		}
		sb.WriteString(fmt.Sprintf("Status: %s\n", strings.Join(labels, " ")))
	}
	if e.Rating != 0 {
		sb.WriteString(fmt.Sprintf("Rating: %s\n", FormatRating(e.Rating)))
	}

	if g != nil {
		if g.MinPlayers > 0 {
			players := fmt.Sprintf("%d", g.MinPlayers)
			if g.MaxPlayers > g.MinPlayers {
				players = fmt.Sprintf("%d-%d", g.MinPlayers, g.MaxPlayers)
			}
			sb.WriteString(fmt.Sprintf("Players: %s", players))
			if g.PlayingTime > 0 {
				sb.WriteString(fmt.Sprintf(" | Playing time: %dmin", g.PlayingTime))
			}
			sb.WriteString("\n")
		}
		if g.NumPlays > 0 {
			sb.WriteString(fmt.Sprintf("Plays: %d\n", g.NumPlays))
		}
	}

	if e.ConditionText != "" {
		sb.WriteString(fmt.Sprintf("Condition: %s\n", e.ConditionText))
	}
	if e.WishlistComment != "" {
		sb.WriteString(fmt.Sprintf("Wishlist note: %s\n", e.WishlistComment))
	}
	if e.Quantity > 1 {
		sb.WriteString(fmt.Sprintf("Quantity: %d\n", e.Quantity))
	}
	if e.PricePaid > 0 {
		sb.WriteString(fmt.Sprintf("Paid: %.2f %s", e.PricePaid, e.PricePaidCurrency))
		if e.AcquiredFrom != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", e.AcquiredFrom))
		}
		sb.WriteString("\n")
	}

	if e.Dirty.Any() {
		sb.WriteString(warningStyle.Render("Unsynced local edits pending"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatSyncRun formats one sync history row for `meeple sync --history`.
func FormatSyncRun(started time.Time, saved, skipped, pruned int, brief bool, errMsg string) string {
	line := fmt.Sprintf("%s  saved %d, skipped %d, pruned %d",
		started.Local().Format("2006-01-02 15:04"), saved, skipped, pruned)
	if brief {
		line += subtleStyle.Render("  (brief)")
	}
	if errMsg != "" {
		line += "  " + errorStyle.Render("failed: "+errMsg)
	}
	return line
}

// FormatTimeAgo formats a time as a human-readable "ago" string
func FormatTimeAgo(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1h ago"
		}
		return fmt.Sprintf("%dh ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1d ago"
		}
		return fmt.Sprintf("%dd ago", days)
	default:
		return t.Format("2006-01-02")
	}
}
