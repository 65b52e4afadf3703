package output

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

const (
	defaultCommentWidth = 80
	minCommentWidth     = 20
)

// TerminalWidth returns the current terminal width or a fallback when
// unavailable.
func TerminalWidth(fallback int) int {
	if fallback <= 0 {
		fallback = defaultCommentWidth
	}

	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}

	if cols := os.Getenv("COLUMNS"); cols != "" {
		if parsed, err := strconv.Atoi(cols); err == nil && parsed > 0 {
			return parsed
		}
	}

	return fallback
}

// RenderComment renders a collection comment as markdown with
// terminal-aware wrapping. Comments on the remote service commonly carry
// markdown-ish formatting.
func RenderComment(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	width := TerminalWidth(defaultCommentWidth)
	if width < minCommentWidth {
		width = minCommentWidth
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}

	rendered, err := renderer.Render(text)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(rendered, "\n"), nil
}
