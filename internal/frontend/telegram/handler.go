package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vadimtrunov/MovieBuddy/internal/metadata/omdb"
)

const (
	unauthorizedMsg = "Sorry, you are not authorized to use this bot."
	errorMsg        = "Movie search is temporarily unavailable. Please try again later."
	busyMsg         = "Still working on your previous search, hang on."
	noResultsMsg    = "No movies found"
	rateLimitMsg    = "The daily movie lookup quota has been used up. Please try again tomorrow."

	helpMsg = "Welcome to MovieBuddy!\n\n" +
		"Send me a movie title to search by title or title contents.\n" +
		"Add a release year at the end to narrow it down, e.g.:\n\n" +
		"Casablanca\n" +
		"Casablanca 1942"

	maxResults = 10 // movies sent per search
)

// handleMessage processes an incoming text message.
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil || msg.Chat == nil {
		return
	}
	userID := msg.From.ID
	chatID := msg.Chat.ID

	b.logger.Debug("received message",
		slog.Int64("user_id", userID),
	)

	if !b.sessions.isAllowed(userID) {
		b.sendText(chatID, unauthorizedMsg)
		return
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	switch command(text) {
	case "start", "help":
		b.sendText(chatID, helpMsg)
		return
	case "search":
		text = strings.TrimSpace(strings.TrimPrefix(text, strings.Fields(text)[0]))
	case "":
	default:
		b.sendText(chatID, helpMsg)
		return
	}

	title, year := parseQuery(text)
	if title == "" {
		b.sendText(chatID, helpMsg)
		return
	}

	if !b.sessions.begin(userID) {
		b.sendText(chatID, busyMsg)
		return
	}
	defer b.sessions.end(userID)

	// Show typing indicator.
	typing := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)
	b.out.Send(typing) //nolint:errcheck // best-effort typing indicator

	movies, err := b.searcher.Search(ctx, title, year)
	if err != nil {
		b.logger.Error("search failed",
			slog.Int64("user_id", userID),
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		if errors.Is(err, omdb.ErrRateLimitExceeded) {
			b.sendText(chatID, rateLimitMsg)
			return
		}
		b.sendText(chatID, errorMsg)
		return
	}

	b.sendResults(chatID, movies)
}

// command returns the bot command in text without the leading slash and any
// @botname suffix, or "" when text is not a command.
func command(text string) string {
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	cmd := strings.Fields(text)[0][1:]
	if i := strings.IndexByte(cmd, '@'); i >= 0 {
		cmd = cmd[:i]
	}
	return strings.ToLower(cmd)
}

// sendResults sends up to maxResults movies followed by a note about the rest.
func (b *Bot) sendResults(chatID int64, movies []omdb.MovieDetail) {
	if len(movies) == 0 {
		b.sendText(chatID, noResultsMsg)
		return
	}

	shown := movies
	if len(shown) > maxResults {
		shown = shown[:maxResults]
	}
	for _, m := range shown {
		b.sendMovie(chatID, m)
	}

	if rest := len(movies) - len(shown); rest > 0 {
		b.sendText(chatID, fmt.Sprintf("…and %d more", rest))
	}
}

// sendMovie sends one movie as a poster with caption, or as text when there
// is no poster. MarkdownV2 failures fall back to plain text.
func (b *Bot) sendMovie(chatID int64, m omdb.MovieDetail) {
	caption := formatMovieCaption(m)

	if m.HasPoster() {
		// Telegram fetches the URL itself.
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(m.PosterURL))
		photo.Caption = caption
		photo.ParseMode = tgbotapi.ModeMarkdownV2
		_, err := b.out.Send(photo)
		if err == nil {
			return
		}
		b.logger.Debug("failed to send poster, sending text",
			slog.String("imdb_id", m.ID),
			slog.String("error", err.Error()),
		)
	}

	msg := tgbotapi.NewMessage(chatID, caption)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	if _, err := b.out.Send(msg); err != nil {
		b.logger.Warn("failed to send markdown, retrying plain",
			slog.String("error", err.Error()),
		)
		b.sendText(chatID, formatMoviePlain(m))
	}
}

// sendText sends a plain text message (no parse mode).
func (b *Bot) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.out.Send(msg); err != nil {
		b.logger.Error("failed to send message",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()),
		)
	}
}
