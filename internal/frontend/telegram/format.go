package telegram

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vadimtrunov/MovieBuddy/internal/metadata/omdb"
)

const (
	// maxPlotLen keeps photo captions well under Telegram's 1024-character limit.
	maxPlotLen = 300

	minYear = 1870
)

// mdV2Replacer escapes special characters for Telegram MarkdownV2.
var mdV2Replacer = strings.NewReplacer(
	`\`, `\\`,
	"_", "\\_",
	"*", "\\*",
	"[", "\\[",
	"]", "\\]",
	"(", "\\(",
	")", "\\)",
	"~", "\\~",
	"`", "\\`",
	">", "\\>",
	"#", "\\#",
	"+", "\\+",
	"-", "\\-",
	"=", "\\=",
	"|", "\\|",
	"{", "\\{",
	"}", "\\}",
	".", "\\.",
	"!", "\\!",
)

// linkReplacer escapes the characters MarkdownV2 reserves inside (...) of an inline link.
var linkReplacer = strings.NewReplacer(`\`, `\\`, ")", "\\)")

// EscapeMdV2 escapes a string for safe use in Telegram MarkdownV2.
func EscapeMdV2(s string) string {
	return mdV2Replacer.Replace(s)
}

// FormatBold returns MarkdownV2 bold text.
func FormatBold(s string) string {
	return "*" + EscapeMdV2(s) + "*"
}

// FormatItalic returns MarkdownV2 italic text.
func FormatItalic(s string) string {
	return "_" + EscapeMdV2(s) + "_"
}

// FormatLink returns a MarkdownV2 inline link.
func FormatLink(text, url string) string {
	return "[" + EscapeMdV2(text) + "](" + linkReplacer.Replace(url) + ")"
}

// formatMovieCaption renders one movie as a MarkdownV2 caption.
func formatMovieCaption(m omdb.MovieDetail) string {
	var sb strings.Builder
	sb.WriteString(FormatBold(m.Title))
	if omdb.Known(m.Year) {
		sb.WriteString(" " + EscapeMdV2("("+m.Year+")"))
	}
	sb.WriteString("\n")

	var facts []string
	if omdb.Known(m.Runtime) {
		facts = append(facts, m.Runtime)
	}
	if omdb.Known(m.IMDbRating) {
		facts = append(facts, "IMDb "+m.IMDbRating)
	}
	if len(facts) > 0 {
		sb.WriteString(EscapeMdV2(strings.Join(facts, " · ")) + "\n")
	}
	if omdb.Known(m.Actors) {
		sb.WriteString(EscapeMdV2("Starring: "+m.Actors) + "\n")
	}
	if omdb.Known(m.Plot) {
		sb.WriteString("\n" + FormatItalic(truncate(m.Plot, maxPlotLen)) + "\n")
	}
	if m.DetailPageURL != "" {
		sb.WriteString("\n" + FormatLink("Open on IMDb", m.DetailPageURL))
	}
	return sb.String()
}

// formatMoviePlain is the fallback when MarkdownV2 is rejected.
func formatMoviePlain(m omdb.MovieDetail) string {
	lines := []string{fmt.Sprintf("%s (%s)", m.Title, m.Year)}
	if omdb.Known(m.Runtime) {
		lines = append(lines, "Runtime: "+m.Runtime)
	}
	if omdb.Known(m.IMDbRating) {
		lines = append(lines, "IMDb rating: "+m.IMDbRating)
	}
	if omdb.Known(m.Actors) {
		lines = append(lines, "Starring: "+m.Actors)
	}
	if omdb.Known(m.Plot) {
		lines = append(lines, "", truncate(m.Plot, maxPlotLen))
	}
	if m.DetailPageURL != "" {
		lines = append(lines, "", m.DetailPageURL)
	}
	return strings.Join(lines, "\n")
}

// truncate shortens s to at most n runes, appending an ellipsis when cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:n-1])) + "…"
}

// parseQuery splits a message into a title and an optional trailing release
// year, e.g. "Casablanca 1942" or "Casablanca (1942)". A lone number is a title.
func parseQuery(text string) (title, year string) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return strings.TrimSpace(text), ""
	}
	last := strings.Trim(fields[len(fields)-1], "()")
	if !isYear(last) {
		return strings.Join(fields, " "), ""
	}
	return strings.Join(fields[:len(fields)-1], " "), last
}

// isYear accepts four digits within the span of cinema history.
// "Blade Runner 2049" keeps its number as part of the title.
func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return false
	}
	return n >= minYear && n <= time.Now().Year()+5
}
